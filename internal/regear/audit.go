package regear

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

// AuditHeader is the column layout of the completion export
var AuditHeader = []string{"date", "recipient", "head", "chest", "shoes", "main-hand", "off-hand", "tier", "issuer"}

// AuditRow is the machine-readable record of a completed reservation.
// Each slot column holds "name (tier)" or is empty.
func AuditRow(res *domain.Reservation) []string {
	date := res.ReservedAt
	if res.CompletedAt != nil {
		date = *res.CompletedAt
	}

	row := make([]string, 0, len(AuditHeader))
	row = append(row, date.UTC().Format(AuditDateLayout), res.RecipientID)
	for _, slot := range domain.Slots {
		cell := ""
		if item, ok := res.Item(slot); ok {
			cell = fmt.Sprintf("%s (%s)", item.Name, item.TierEquivalent)
		}
		row = append(row, cell)
	}
	return append(row, res.SelectedTier, res.IssuerID)
}

// AuditCSV renders the header and the reservation's row as a CSV attachment
func AuditCSV(res *domain.Reservation) (*panel.Attachment, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll([][]string{AuditHeader, AuditRow(res)}); err != nil {
		return nil, fmt.Errorf("failed to write audit row: %w", err)
	}
	return &panel.Attachment{
		Name:        fmt.Sprintf("regear-%s.csv", res.ID),
		ContentType: AuditCSVContentType,
		Data:        buf.Bytes(),
	}, nil
}
