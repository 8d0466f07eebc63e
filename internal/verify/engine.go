// Package verify implements the ticket verification engine: weighted
// multi-field scoring of a seller claim against the official reference set,
// with confidence-based decisioning.
package verify

import (
	"fmt"
	"strings"
	"time"

	"ticket-verify/internal/match"
	"ticket-verify/models"
)

// Field weights. The full scheme sums to exactly 100:
// barcode 40 + artist 20 + date 20 + venue 15 + time 5 + seat details 10.
const (
	barcodePoints  = 40
	artistPoints   = 20
	datePoints     = 20
	venuePoints    = 15
	timePoints     = 5
	sectionPoints  = 4
	rowPoints      = 3
	seatPoints     = 3
	standingPoints = 10
)

// verifiedThreshold is the confidence a best candidate must reach to
// auto-verify. Everything below routes to manual review.
const verifiedThreshold = 90

// Verify scores the claim against every official record and maps the best
// score to a verdict. The scoring path never rejects: anything short of a
// verified-grade match is deferred to a human reviewer, because OCR and
// reference noise make false rejection costly. Only the missing-required-
// fields precondition rejects outright.
func Verify(claim models.TicketClaim, official []models.OfficialTicketRecord) models.VerificationResult {
	if missing := claim.MissingRequiredFields(); len(missing) > 0 {
		return models.VerificationResult{
			Verified:        false,
			Confidence:      0,
			Status:          models.StatusRejected,
			MatchedFields:   []string{},
			UnmatchedFields: []string{"artist", "venue", "date"},
			Reason:          "חסרים שדות חובה לאימות: אמן, מקום, תאריך",
			Timestamp:       time.Now(),
		}
	}

	var (
		best      *models.OfficialTicketRecord
		bestMatch models.MatchResult
	)
	for i := range official {
		result := scoreRecord(claim, official[i])
		// Strictly greater: the first record to reach a score keeps it, and
		// a zero-scoring record never becomes the best match.
		if result.Score > bestMatch.Score {
			best = &official[i]
			bestMatch = result
		}
	}

	confidence := bestMatch.Score
	if confidence > 100 {
		confidence = 100
	}

	result := models.VerificationResult{
		Confidence:      confidence,
		MatchedFields:   bestMatch.MatchedFields,
		UnmatchedFields: bestMatch.UnmatchedFields,
		Timestamp:       time.Now(),
	}
	if result.MatchedFields == nil {
		result.MatchedFields = []string{}
	}
	if result.UnmatchedFields == nil {
		result.UnmatchedFields = []string{}
	}

	if best != nil {
		result.Details = &models.MatchDetails{
			OfficialTicketID: best.TicketID,
			EventID:          best.EventID,
			TicketingSystem:  best.TicketingSystem,
			OriginalPrice:    best.OriginalPrice,
		}
	}

	switch {
	case confidence >= verifiedThreshold:
		result.Status = models.StatusVerified
		result.Verified = true
		result.Reason = fmt.Sprintf("הכרטיס אומת בהצלחה: %d שדות תואמים מול %s",
			len(result.MatchedFields), best.TicketingSystem)
	case len(result.MatchedFields) > 0:
		result.Status = models.StatusNeedsReview
		result.Reason = fmt.Sprintf("נדרשת בדיקה ידנית: התאמה חלקית בשדות %s",
			strings.Join(result.MatchedFields, ", "))
	default:
		result.Status = models.StatusNeedsReview
		result.Reason = "לא נמצא כרטיס תואם במאגר הרשמי - נדרשת בדיקה ידנית"
	}

	return result
}

// ServiceUnavailableResult is the degraded verdict the request boundary
// returns when the engine itself fails unexpectedly. The upload flow is
// never hard-blocked by a verification outage.
func ServiceUnavailableResult() models.VerificationResult {
	return models.VerificationResult{
		Verified:        false,
		Confidence:      0,
		Status:          models.StatusNeedsReview,
		MatchedFields:   []string{},
		UnmatchedFields: []string{},
		Reason:          "שירות האימות אינו זמין כרגע - הכרטיס הועבר לבדיקה ידנית",
		Timestamp:       time.Now(),
	}
}

// scoreRecord accumulates independent field checks for one claim/record
// pair. Optional claim fields that are absent contribute nothing and are
// not listed as unmatched.
func scoreRecord(claim models.TicketClaim, record models.OfficialTicketRecord) models.MatchResult {
	var result models.MatchResult

	award := func(field string, points int, ok bool) {
		if ok {
			result.Score += points
			result.MatchedFields = append(result.MatchedFields, field)
		} else {
			result.UnmatchedFields = append(result.UnmatchedFields, field)
		}
	}

	if claim.Barcode != "" {
		award("barcode", barcodePoints, claim.Barcode == record.Barcode)
	}

	award("artist", artistPoints, match.Contains(claim.Artist, record.ArtistName))
	award("date", datePoints, normalizeDate(claim.Date) == normalizeDate(record.EventDate))
	award("venue", venuePoints, match.Contains(claim.Venue, record.VenueName))

	if claim.Time != "" {
		award("time", timePoints, claim.Time == record.EventTime)
	}

	if record.SeatType == models.SeatTypeSeated {
		if claim.Section != "" {
			award("section", sectionPoints, claim.Section == record.Section)
		}
		if claim.Row != "" {
			award("row", rowPoints, claim.Row == record.Row)
		}
		if claim.Seat != "" {
			award("seat", seatPoints, claim.Seat == record.Seat)
		}
	}
	if claim.IsStanding && record.SeatType == models.SeatTypeStanding {
		award("seat_type", standingPoints, true)
	}

	// The award scheme is capped at 100 across all fields.
	if result.Score > 100 {
		result.Score = 100
	}

	return result
}

// normalizeDate maps "15.03.2025" and "15/03/2025" to the same key.
func normalizeDate(date string) string {
	return strings.TrimSpace(strings.ReplaceAll(date, ".", "/"))
}
