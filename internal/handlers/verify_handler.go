package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-verify/internal/extract"
	"ticket-verify/internal/hebrew"
	"ticket-verify/internal/services"
	"ticket-verify/internal/verify"
	"ticket-verify/models"
)

type VerifyHandler struct {
	app          *pocketbase.PocketBase
	verification *services.VerificationService
}

func NewVerifyHandler(app *pocketbase.PocketBase, verification *services.VerificationService) *VerifyHandler {
	return &VerifyHandler{
		app:          app,
		verification: verification,
	}
}

// VerifyTicket - POST /api/tickets/verify
//
// Always answers 200 with a verdict (including needs_review), except when
// required claim fields are missing (400). Internal failures degrade to a
// needs_review verdict instead of an error response: blocking an upload on
// a verification outage is worse than over-routing to manual review.
func (h *VerifyHandler) VerifyTicket(e *core.RequestEvent) error {
	var claim models.TicketClaim
	if err := e.BindBody(&claim); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	result, err := h.verifySafely(e.Request.Context(), claim)
	if err != nil {
		slog.Error("verification service failure", "error", err, "artist", claim.Artist)
		return e.JSON(http.StatusOK, verify.ServiceUnavailableResult())
	}

	if result.Status == models.StatusRejected {
		return e.JSON(http.StatusBadRequest, result)
	}
	return e.JSON(http.StatusOK, result)
}

// verifySafely converts panics (malformed reference records, extractor
// bugs) into errors so the caller can degrade to manual review.
func (h *VerifyHandler) verifySafely(ctx context.Context, claim models.TicketClaim) (result models.VerificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("verification panic: %v", r)
		}
	}()
	return h.verification.VerifyClaim(ctx, claim)
}

// ExtractFields - POST /api/tickets/extract
//
// Runs the OCR field extractors over raw ticket text so the upload wizard
// can pre-fill the claim form.
func (h *VerifyHandler) ExtractFields(e *core.RequestEvent) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if req.Text == "" {
		return apis.NewBadRequestError("text is required", nil)
	}

	normalized := hebrew.Normalize(req.Text)
	seating, seatingConfidence := hebrew.ExtractSeating(normalized.Text)

	return e.JSON(http.StatusOK, map[string]any{
		"normalized": normalized,
		"prices":     hebrew.ExtractPrices(normalized.Text),
		"dates":      hebrew.ExtractDates(normalized.Text),
		"seating": map[string]any{
			"fields":     seating,
			"confidence": seatingConfidence,
		},
		"barcode": extract.Barcode(normalized.Text),
	})
}
