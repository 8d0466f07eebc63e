package models

import "github.com/shopspring/decimal"

// Seat type values used by the official ticketing systems.
const (
	SeatTypeSeated   = "seated"
	SeatTypeStanding = "standing"
)

// OfficialTicketRecord is a trusted reference entry from a venue ticketing
// system. Records are read-only within a verification call.
type OfficialTicketRecord struct {
	TicketID        string `json:"ticket_id"`
	EventID         string `json:"event_id"`
	TicketingSystem string `json:"ticketing_system"`

	Barcode       string          `json:"barcode"`
	EventName     string          `json:"event_name"`
	ArtistName    string          `json:"artist_name"`
	VenueName     string          `json:"venue_name"`
	EventDate     string          `json:"event_date"` // DD/MM/YYYY
	EventTime     string          `json:"event_time"` // HH:MM
	Section       string          `json:"section"`
	Row           string          `json:"row"`
	Seat          string          `json:"seat"`
	SeatType      string          `json:"seat_type"` // seated, standing
	TicketStatus  string          `json:"ticket_status"`
	OriginalPrice decimal.Decimal `json:"original_price"`
}
