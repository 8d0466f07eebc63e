// Package provider supplies the set of official ticket records the
// verification engine scores against. The production chain is
// resilient(cache(remote)) falling back to the built-in static set, so a
// fetch never fails and never blocks past its timeout.
package provider

import (
	"context"

	"ticket-verify/models"
)

// OfficialTicketProvider returns the current official ticket reference set.
type OfficialTicketProvider interface {
	FetchOfficialTickets(ctx context.Context) ([]models.OfficialTicketRecord, error)
}
