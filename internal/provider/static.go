package provider

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"ticket-verify/models"
	"ticket-verify/monitoring"
)

// sampleOfficialTickets is the built-in reference set used when the venue
// endpoint is unreachable. Demo data, not production data.
var sampleOfficialTickets = []models.OfficialTicketRecord{
	{
		TicketID:        "OT-2025-001",
		EventID:         "EV-1001",
		TicketingSystem: "Eventim",
		Barcode:         "7290016353891",
		EventName:       "עומר אדם בהיכל",
		ArtistName:      "עומר אדם",
		VenueName:       "היכל מנורה מבטחים",
		EventDate:       "15/03/2025",
		EventTime:       "21:00",
		Section:         "A",
		Row:             "12",
		Seat:            "15",
		SeatType:        models.SeatTypeSeated,
		TicketStatus:    "valid",
		OriginalPrice:   decimal.NewFromInt(450),
	},
	{
		TicketID:        "OT-2025-002",
		EventID:         "EV-1002",
		TicketingSystem: "Leaan",
		Barcode:         "7290014782358",
		EventName:       "נועה קירל - סיבוב הופעות",
		ArtistName:      "נועה קירל",
		VenueName:       "היכל מנורה מבטחים",
		EventDate:       "05/04/2025",
		EventTime:       "20:30",
		SeatType:        models.SeatTypeStanding,
		TicketStatus:    "valid",
		OriginalPrice:   decimal.NewFromInt(380),
	},
	{
		TicketID:        "OT-2025-003",
		EventID:         "EV-1003",
		TicketingSystem: "Bravo",
		Barcode:         "7290018816349",
		EventName:       "אייל גולן באמפי",
		ArtistName:      "אייל גולן",
		VenueName:       "אמפיתאטרון קיסריה",
		EventDate:       "20/06/2025",
		EventTime:       "21:30",
		Section:         "B",
		Row:             "4",
		Seat:            "22",
		SeatType:        models.SeatTypeSeated,
		TicketStatus:    "valid",
		OriginalPrice:   decimal.NewFromInt(520),
	},
}

// StaticProvider serves the built-in sample set. With simulateLatency on
// (development only) it sleeps 0.5-1.5s to emulate a real venue API round
// trip.
type StaticProvider struct {
	simulateLatency bool
}

func NewStaticProvider(simulateLatency bool) *StaticProvider {
	return &StaticProvider{simulateLatency: simulateLatency}
}

func (p *StaticProvider) FetchOfficialTickets(ctx context.Context) ([]models.OfficialTicketRecord, error) {
	if p.simulateLatency {
		delay := 500*time.Millisecond + time.Duration(rand.Int63n(int64(time.Second)))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	monitoring.RecordProviderFetch("static", "ok")

	tickets := make([]models.OfficialTicketRecord, len(sampleOfficialTickets))
	copy(tickets, sampleOfficialTickets)
	return tickets, nil
}
