package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	pubnub "github.com/pubnub/go"

	"ticket-verify/internal/extract"
	"ticket-verify/internal/hebrew"
	"ticket-verify/internal/provider"
	"ticket-verify/internal/verify"
	"ticket-verify/models"
	"ticket-verify/monitoring"
	"ticket-verify/utils"
)

const reviewChannel = "admin-review-queue"

// VerificationService runs the full verification pipeline for one claim:
// OCR backfill, reference fetch, scoring, persistence and review
// notification. App and PubNub may be nil (tests, degraded deployments);
// the verdict itself never depends on them.
type VerificationService struct {
	app      *pocketbase.PocketBase
	provider provider.OfficialTicketProvider
	pubnub   *pubnub.PubNub
}

func NewVerificationService(app *pocketbase.PocketBase, refProvider provider.OfficialTicketProvider, pn *pubnub.PubNub) *VerificationService {
	return &VerificationService{
		app:      app,
		provider: refProvider,
		pubnub:   pn,
	}
}

// VerifyClaim verifies a single claim and returns the terminal verdict.
func (s *VerificationService) VerifyClaim(ctx context.Context, claim models.TicketClaim) (models.VerificationResult, error) {
	start := time.Now()

	claim = s.backfillFromRawText(claim)

	official, err := s.provider.FetchOfficialTickets(ctx)
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("VerifyClaim: provider.FetchOfficialTickets: %w", err)
	}

	result := verify.Verify(claim, official)
	monitoring.RecordVerification(result.Status, time.Since(start))

	s.persistResult(claim, result)
	if result.Status == models.StatusNeedsReview {
		s.notifyReviewers(claim, result)
	}

	return result, nil
}

// backfillFromRawText fills missing structured claim fields from the OCR
// text. Extraction is best effort: a miss leaves the field empty.
func (s *VerificationService) backfillFromRawText(claim models.TicketClaim) models.TicketClaim {
	if claim.RawText == "" {
		return claim
	}

	normalized := hebrew.Normalize(claim.RawText)
	text := normalized.Text

	if claim.Barcode == "" {
		if candidate := extract.Barcode(text); candidate != nil {
			claim.Barcode = candidate.Value
		}
	}

	if claim.Date == "" {
		if dates := hebrew.ExtractDates(text); len(dates) > 0 {
			claim.Date = dates[0].Value
		}
	}

	if claim.Section == "" || claim.Row == "" || claim.Seat == "" {
		seating, _ := hebrew.ExtractSeating(text)
		if claim.Section == "" {
			claim.Section = seating.Section
		}
		if claim.Row == "" {
			claim.Row = seating.Row
		}
		if claim.Seat == "" {
			claim.Seat = seating.Seat
		}
	}

	return claim
}

// persistResult stores the verdict for the admin audit trail.
func (s *VerificationService) persistResult(claim models.TicketClaim, result models.VerificationResult) {
	if s.app == nil {
		return
	}

	collection, err := s.app.FindCollectionByNameOrId("verifications")
	if err != nil {
		slog.Error("verifications collection missing", "error", err)
		return
	}

	claimJSON, _ := json.Marshal(claim)
	matchedJSON, _ := json.Marshal(result.MatchedFields)
	unmatchedJSON, _ := json.Marshal(result.UnmatchedFields)

	record := core.NewRecord(collection)
	record.Set("status", result.Status)
	record.Set("verified", result.Verified)
	record.Set("confidence", result.Confidence)
	record.Set("reason", result.Reason)
	record.Set("claim", string(claimJSON))
	record.Set("matched_fields", string(matchedJSON))
	record.Set("unmatched_fields", string(unmatchedJSON))
	if result.Details != nil {
		record.Set("official_ticket_id", result.Details.OfficialTicketID)
		record.Set("ticketing_system", result.Details.TicketingSystem)
	}

	if err := s.app.Save(record); err != nil {
		slog.Error("failed to persist verification result", "error", err)
	}
}

// notifyReviewers pushes needs_review verdicts to the admin dashboard.
func (s *VerificationService) notifyReviewers(claim models.TicketClaim, result models.VerificationResult) {
	if s.pubnub == nil {
		return
	}

	ref, err := utils.GenerateCode(4)
	if err != nil {
		ref = "UNKNOWN"
	}

	_, _, err = s.pubnub.Publish().
		Channel(reviewChannel).
		Message(map[string]interface{}{
			"type":       "verification_review",
			"ref":        ref,
			"artist":     claim.Artist,
			"venue":      claim.Venue,
			"date":       claim.Date,
			"confidence": result.Confidence,
			"reason":     result.Reason,
		}).
		Execute()
	if err != nil {
		slog.Warn("failed to publish review notification", "error", err)
	}
}
