package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-verify/models"
)

// stubProvider lets tests script provider behavior.
type stubProvider struct {
	tickets []models.OfficialTicketRecord
	err     error
	calls   int
}

func (s *stubProvider) FetchOfficialTickets(ctx context.Context) ([]models.OfficialTicketRecord, error) {
	s.calls++
	return s.tickets, s.err
}

func TestRemoteProvider_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"official_tickets":[{
			"ticket_id":"OT-2025-001",
			"ticketing_system":"Eventim",
			"barcode":"7290016353891",
			"artist_name":"עומר אדם",
			"original_price":"450"
		}]}`))
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, 2*time.Second)
	tickets, err := p.FetchOfficialTickets(context.Background())

	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "OT-2025-001", tickets[0].TicketID)
	assert.Equal(t, "עומר אדם", tickets[0].ArtistName)
	assert.True(t, tickets[0].OriginalPrice.Equal(decimal.NewFromInt(450)))
}

func TestRemoteProvider_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, 2*time.Second)
	_, err := p.FetchOfficialTickets(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRemoteProvider_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"official_tickets": not json`))
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, 2*time.Second)
	_, err := p.FetchOfficialTickets(context.Background())

	require.Error(t, err)
}

func TestResilientProvider_PrimarySuccess(t *testing.T) {
	primary := &stubProvider{tickets: sampleOfficialTickets[:1]}
	fallback := &stubProvider{}

	p := NewResilientProvider(primary, fallback)
	tickets, err := p.FetchOfficialTickets(context.Background())

	require.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.Zero(t, fallback.calls)
}

func TestResilientProvider_FallsBackOnPrimaryError(t *testing.T) {
	primary := &stubProvider{err: errors.New("connection refused")}

	p := NewResilientProvider(primary, NewStaticProvider(false))
	tickets, err := p.FetchOfficialTickets(context.Background())

	require.NoError(t, err)
	assert.Len(t, tickets, 3)
	assert.Equal(t, 1, primary.calls)
}

func TestStaticProvider_ReturnsIsolatedCopy(t *testing.T) {
	p := NewStaticProvider(false)

	first, err := p.FetchOfficialTickets(context.Background())
	require.NoError(t, err)
	first[0].Barcode = "tampered"

	second, err := p.FetchOfficialTickets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7290016353891", second[0].Barcode)
}

func TestStaticProvider_LatencyRespectsCancellation(t *testing.T) {
	p := NewStaticProvider(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.FetchOfficialTickets(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
