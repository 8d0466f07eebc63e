package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Verification statuses handed to the upload pipeline.
const (
	StatusVerified    = "verified"
	StatusNeedsReview = "needs_review"
	StatusRejected    = "rejected"
)

// MatchResult is the per-record outcome of scoring a claim against one
// official ticket. The field point scheme caps the total at 100.
type MatchResult struct {
	Score           int      `json:"score"`
	MatchedFields   []string `json:"matched_fields"`
	UnmatchedFields []string `json:"unmatched_fields"`
}

// MatchDetails identifies the best-scoring official record so a reviewer
// always sees what was closest, even at low confidence.
type MatchDetails struct {
	OfficialTicketID string          `json:"official_ticket_id"`
	EventID          string          `json:"event_id"`
	TicketingSystem  string          `json:"ticketing_system"`
	OriginalPrice    decimal.Decimal `json:"original_price"`
}

// VerificationResult is the terminal judgment for one verification call.
type VerificationResult struct {
	Verified        bool          `json:"verified"`
	Confidence      int           `json:"confidence"` // 0..100
	Status          string        `json:"status"`
	MatchedFields   []string      `json:"matched_fields"`
	UnmatchedFields []string      `json:"unmatched_fields"`
	Details         *MatchDetails `json:"details,omitempty"`
	Reason          string        `json:"reason"`
	Timestamp       time.Time     `json:"timestamp"`
}

// ExtractedField is a single OCR extraction candidate. Confidence is 0..1,
// Position is the rune offset of the match inside the scanned text and
// Context carries the surrounding text for reviewer display.
type ExtractedField[T any] struct {
	Value      T       `json:"value"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context"`
	Position   int     `json:"position"`
}
