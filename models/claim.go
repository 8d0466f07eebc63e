package models

// TicketClaim is the seller-asserted ticket data submitted for verification.
// Artist, Venue and Date are mandatory; everything else is best-effort and may
// be backfilled from OCR raw text before the claim reaches the engine.
type TicketClaim struct {
	Barcode    string `json:"barcode,omitempty"`
	Artist     string `json:"artist"`
	EventName  string `json:"event_name,omitempty"`
	Venue      string `json:"venue"`
	Date       string `json:"date"` // DD/MM/YYYY, "." accepted as separator
	Time       string `json:"time,omitempty"`
	Section    string `json:"section,omitempty"`
	Row        string `json:"row,omitempty"`
	Seat       string `json:"seat,omitempty"`
	IsStanding bool   `json:"is_standing,omitempty"`

	// RawText is the OCR output for the uploaded ticket image, when available.
	RawText string `json:"raw_text,omitempty"`
}

// MissingRequiredFields returns the names of required claim fields that are
// empty. A non-empty result means verification must not be attempted.
func (c TicketClaim) MissingRequiredFields() []string {
	var missing []string
	if c.Artist == "" {
		missing = append(missing, "artist")
	}
	if c.Venue == "" {
		missing = append(missing, "venue")
	}
	if c.Date == "" {
		missing = append(missing, "date")
	}
	return missing
}
