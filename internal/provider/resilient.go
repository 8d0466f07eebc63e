package provider

import (
	"context"
	"log/slog"

	"ticket-verify/models"
	"ticket-verify/monitoring"
)

// ResilientProvider falls back to a secondary source on any primary failure.
// It never returns an error: verification availability must not depend on
// the venue endpoint being reachable.
type ResilientProvider struct {
	primary  OfficialTicketProvider
	fallback OfficialTicketProvider
}

func NewResilientProvider(primary, fallback OfficialTicketProvider) *ResilientProvider {
	return &ResilientProvider{primary: primary, fallback: fallback}
}

func (p *ResilientProvider) FetchOfficialTickets(ctx context.Context) ([]models.OfficialTicketRecord, error) {
	tickets, err := p.primary.FetchOfficialTickets(ctx)
	if err == nil {
		return tickets, nil
	}

	slog.Warn("primary official ticket source failed, using fallback", "error", err)
	monitoring.RecordProviderFallback()

	return p.fallback.FetchOfficialTickets(ctx)
}
