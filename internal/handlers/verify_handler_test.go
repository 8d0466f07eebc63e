package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-verify/internal/provider"
	"ticket-verify/internal/services"
	"ticket-verify/models"
)

type failingProvider struct{}

func (failingProvider) FetchOfficialTickets(ctx context.Context) ([]models.OfficialTicketRecord, error) {
	return nil, assert.AnError
}

func newVerifyHandler() *VerifyHandler {
	svc := services.NewVerificationService(nil, provider.NewStaticProvider(false), nil)
	return NewVerifyHandler(nil, svc)
}

func newJSONEvent(method, target, body string) (*core.RequestEvent, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	event := &core.RequestEvent{}
	event.Request = req
	event.Response = rec
	return event, rec
}

func TestVerifyTicket_FullMatch(t *testing.T) {
	body := `{
		"barcode": "7290016353891",
		"artist": "עומר אדם",
		"venue": "היכל מנורה מבטחים",
		"date": "15/03/2025",
		"time": "21:00",
		"section": "A",
		"row": "12",
		"seat": "15"
	}`
	event, rec := newJSONEvent(http.MethodPost, "/api/tickets/verify", body)

	require.NoError(t, newVerifyHandler().VerifyTicket(event))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.VerificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Verified)
	assert.Equal(t, 100, result.Confidence)
}

func TestVerifyTicket_PartialMatchAnswersOK(t *testing.T) {
	body := `{
		"artist": "נועה קירל",
		"venue": "היכל מנורה מבטחים",
		"date": "05/04/2025",
		"is_standing": true
	}`
	event, rec := newJSONEvent(http.MethodPost, "/api/tickets/verify", body)

	require.NoError(t, newVerifyHandler().VerifyTicket(event))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.VerificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.Equal(t, 65, result.Confidence)
}

func TestVerifyTicket_MissingRequiredFieldsIs400(t *testing.T) {
	event, rec := newJSONEvent(http.MethodPost, "/api/tickets/verify",
		`{"artist": "עומר אדם", "date": "15/03/2025"}`)

	require.NoError(t, newVerifyHandler().VerifyTicket(event))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var result models.VerificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.StatusRejected, result.Status)
}

func TestVerifyTicket_ServiceFailureDegradesToReview(t *testing.T) {
	svc := services.NewVerificationService(nil, failingProvider{}, nil)
	handler := NewVerifyHandler(nil, svc)

	event, rec := newJSONEvent(http.MethodPost, "/api/tickets/verify",
		`{"artist": "עומר אדם", "venue": "היכל", "date": "15/03/2025"}`)

	require.NoError(t, handler.VerifyTicket(event))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.VerificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.Equal(t, 0, result.Confidence)
}

func TestExtractFields(t *testing.T) {
	event, rec := newJSONEvent(http.MethodPost, "/api/tickets/extract",
		`{"text": "מחיר: 450 ₪ תאריך: 15/03/2025 שורה 12 מושב 15 ברקוד 7290016353891"}`)

	require.NoError(t, newVerifyHandler().ExtractFields(event))
	assert.Equal(t, http.StatusOK, rec.Code)

	var reply map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Contains(t, reply, "normalized")
	assert.Contains(t, reply, "prices")
	assert.Contains(t, reply, "dates")
	assert.Contains(t, reply, "seating")
	assert.Contains(t, reply, "barcode")
}

func TestExtractFields_EmptyTextRejected(t *testing.T) {
	event, _ := newJSONEvent(http.MethodPost, "/api/tickets/extract", `{"text": ""}`)

	err := newVerifyHandler().ExtractFields(event)

	require.Error(t, err)
	var apiErr *router.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
