package sse

// RegearPayload is the SSE payload for a reservation status change
type RegearPayload struct {
	RegearID    string   `json:"regear_id"`
	IssuerID    string   `json:"issuer_id"`
	RecipientID string   `json:"recipient_id"`
	Status      string   `json:"status"`
	Tier        string   `json:"tier"`
	Slots       []string `json:"slots"`
}
