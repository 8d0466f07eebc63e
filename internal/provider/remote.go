package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ticket-verify/models"
	"ticket-verify/monitoring"
	"ticket-verify/utils"
)

// RemoteProvider fetches the official ticket set from the configured venue
// endpoint. Caching is disabled on the request so every call can observe
// fresh data; a circuit breaker keeps a dead endpoint from eating the full
// timeout on every verification.
type RemoteProvider struct {
	url     string
	hc      *http.Client
	breaker *utils.CircuitBreaker
}

func NewRemoteProvider(url string, timeout time.Duration) *RemoteProvider {
	return &RemoteProvider{
		url:     url,
		hc:      &http.Client{Timeout: timeout},
		breaker: utils.NewCircuitBreaker("official-tickets"),
	}
}

func (p *RemoteProvider) FetchOfficialTickets(ctx context.Context) ([]models.OfficialTicketRecord, error) {
	result, err := p.breaker.Execute(ctx, func() (any, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		monitoring.RecordProviderFetch("remote", "error")
		return nil, err
	}

	monitoring.RecordProviderFetch("remote", "ok")
	return result.([]models.OfficialTicketRecord), nil
}

func (p *RemoteProvider) fetch(ctx context.Context) ([]models.OfficialTicketRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetchOfficialTickets: http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchOfficialTickets: hc.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rbody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetchOfficialTickets: resp.StatusCode: %d, resp.Body: %s", resp.StatusCode, rbody)
	}

	var reply struct {
		OfficialTickets []models.OfficialTicketRecord `json:"official_tickets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("fetchOfficialTickets: json.Decode: %w", err)
	}

	return reply.OfficialTickets, nil
}
