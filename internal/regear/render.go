package regear

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

var statusLabels = map[domain.RegearStatus]string{
	domain.RegearReserved:  "Reserved",
	domain.RegearPickedUp:  "Picked Up",
	domain.RegearCompleted: "Completed",
	domain.RegearCancelled: "Cancelled",
}

var statusColors = map[domain.RegearStatus]int{
	domain.RegearReserved:  panel.ColorInfo,
	domain.RegearPickedUp:  panel.ColorWarning,
	domain.RegearCompleted: panel.ColorSuccess,
	domain.RegearCancelled: panel.ColorNeutral,
}

// StatusLabel returns the display text of a status
func StatusLabel(status domain.RegearStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// ReservationCustomID builds the custom id of a reservation control
func ReservationCustomID(verb, regearID string) string {
	return ReservationPrefix + verb + ":" + regearID
}

// ParseReservationControl reads the event and regear id out of a reservation
// control custom id
func ParseReservationControl(customID string) (domain.RegearEvent, string, bool) {
	rest, ok := strings.CutPrefix(customID, ReservationPrefix)
	if !ok {
		return "", "", false
	}
	verb, id, ok := strings.Cut(rest, ":")
	if !ok || id == "" {
		return "", "", false
	}
	switch verb {
	case VerbComplete:
		return domain.EventComplete, id, true
	case VerbCancel:
		return domain.EventCancel, id, true
	case VerbPickup:
		return domain.EventPickedUp, id, true
	}
	return "", "", false
}

// IssuerPanel is the control panel posted where the regear was requested
func IssuerPanel(res *domain.Reservation) panel.Panel {
	p := reservationPanel(res, TitleReservation)
	p.Description = fmt.Sprintf("**Recipient:** <@%s>\n**Issuer:** <@%s>\n**Tier:** %s\n**Status:** %s",
		res.RecipientID, res.IssuerID, res.SelectedTier, StatusLabel(res.Status))

	if !res.Status.IsTerminal() {
		p.Rows = []panel.Row{panel.ButtonRow(
			panel.Control{CustomID: ReservationCustomID(VerbComplete, res.ID), Label: "Confirm Completion", Style: panel.StyleSuccess},
			panel.Control{CustomID: ReservationCustomID(VerbCancel, res.ID), Label: "Cancel Regear", Style: panel.StyleDanger},
		)}
	}
	return p
}

// RecipientPanel is the notification sent to the recipient. While the
// reservation is RESERVED it carries the Picked Up control.
func RecipientPanel(res *domain.Reservation) panel.Panel {
	p := reservationPanel(res, TitleRecipient)
	p.Content = fmt.Sprintf("<@%s>", res.RecipientID)

	switch res.Status {
	case domain.RegearReserved:
		p.Description = fmt.Sprintf("<@%s> reserved a %s regear for you. Collect it and press Picked Up.",
			res.IssuerID, res.SelectedTier)
		p.Rows = []panel.Row{panel.ButtonRow(
			panel.Control{CustomID: ReservationCustomID(VerbPickup, res.ID), Label: "Picked Up", Style: panel.StylePrimary},
		)}
	case domain.RegearPickedUp:
		p.Description = "You marked this regear as picked up. An officer will confirm it."
	case domain.RegearCompleted:
		p.Description = "Your regear has been completed."
	case domain.RegearCancelled:
		p.Description = "Your regear was cancelled."
	}
	return p
}

// AuditPanel is the audit log entry for the reservation's current status
func AuditPanel(res *domain.Reservation) panel.Panel {
	p := reservationPanel(res, TitleAuditPrefix+StatusLabel(res.Status))
	p.Description = fmt.Sprintf("**Recipient:** <@%s>\n**Issuer:** <@%s>\n**Tier:** %s",
		res.RecipientID, res.IssuerID, res.SelectedTier)
	if res.CompletedAt != nil {
		p.Timestamp = *res.CompletedAt
	}
	return p
}

// StatusPanel is the read-only summary shown by /regear-status
func StatusPanel(res *domain.Reservation) panel.Panel {
	p := reservationPanel(res, TitleReservation)
	p.Description = fmt.Sprintf("**Recipient:** <@%s>\n**Issuer:** <@%s>\n**Tier:** %s\n**Status:** %s\n**Reserved:** %s",
		res.RecipientID, res.IssuerID, res.SelectedTier, StatusLabel(res.Status), discordTime(res.ReservedAt))
	if res.CompletedAt != nil {
		p.Description += "\n**Completed:** " + discordTime(*res.CompletedAt)
	}
	if res.CancelledAt != nil {
		p.Description += "\n**Cancelled:** " + discordTime(*res.CancelledAt)
	}
	p.Ephemeral = true
	return p
}

// SubmittedPanel replaces the wizard once its selection became a reservation
func SubmittedPanel(sel Selection) panel.Panel {
	return panel.Panel{
		Title:       TitleSubmitted,
		Description: fmt.Sprintf("**Recipient:** <@%s>\n**Tier:** %s", sel.RecipientID, sel.Tier),
		Color:       panel.ColorSuccess,
		Fields:      []panel.Field{{Name: FieldSelectedItems, Value: sel.summary()}},
	}
}

// CancelledWizardPanel replaces a dismissed wizard
func CancelledWizardPanel(sel Selection) panel.Panel {
	p := panel.Panel{
		Title:       TitleWizardCanceled,
		Description: TextWizardCanceled,
		Color:       panel.ColorNeutral,
	}
	if sel.RecipientID != "" {
		p.Description = fmt.Sprintf("%s\n**Recipient:** <@%s>", TextWizardCanceled, sel.RecipientID)
	}
	return p
}

func reservationPanel(res *domain.Reservation, title string) panel.Panel {
	return panel.Panel{
		Title:     panel.Truncate(title, panel.MaxTitleLength),
		Color:     statusColor(res.Status),
		Fields:    []panel.Field{{Name: FieldItems, Value: itemLines(res.Items)}},
		Footer:    "Regear ID: " + res.ID,
		Timestamp: res.ReservedAt,
	}
}

func statusColor(status domain.RegearStatus) int {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return panel.ColorInfo
}

func itemLines(items []domain.ReservationItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := fmt.Sprintf("**%s:** %s (%s)", SlotLabel(item.Slot), item.Name, item.TierEquivalent)
		if item.Quantity > 1 {
			line += fmt.Sprintf(" x%d", item.Quantity)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return TextNothingSelected
	}
	return panel.Lines(lines, panel.MaxFieldValue)
}

func discordTime(t time.Time) string {
	return fmt.Sprintf("<t:%d:f>", t.Unix())
}
