package handlers

import (
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-verify/internal/match"
	"ticket-verify/internal/provider"
	"ticket-verify/models"
)

type AdminHandler struct {
	app      *pocketbase.PocketBase
	provider provider.OfficialTicketProvider
}

func NewAdminHandler(app *pocketbase.PocketBase, refProvider provider.OfficialTicketProvider) *AdminHandler {
	return &AdminHandler{
		app:      app,
		provider: refProvider,
	}
}

// GetReviewQueue - GET /api/admin/review-queue
func (h *AdminHandler) GetReviewQueue(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	records, err := h.app.FindRecordsByFilter(
		"verifications",
		"status = {:status}",
		"-created",
		50,
		0,
		dbx.Params{"status": models.StatusNeedsReview},
	)
	if err != nil {
		return apis.NewBadRequestError("Failed to load review queue", err)
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, map[string]any{
			"id":         record.Id,
			"confidence": record.GetInt("confidence"),
			"reason":     record.GetString("reason"),
			"claim":      record.GetString("claim"),
			"created":    record.GetDateTime("created"),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"total": len(items),
		"items": items,
	})
}

// SearchOfficialTickets - GET /api/admin/official-tickets/search?q=
//
// Fuzzy search over artist and event names in the reference set, for the
// manual review screen.
func (h *AdminHandler) SearchOfficialTickets(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	query := e.Request.URL.Query().Get("q")
	if query == "" {
		return apis.NewBadRequestError("q is required", nil)
	}

	official, err := h.provider.FetchOfficialTickets(e.Request.Context())
	if err != nil {
		return apis.NewBadRequestError("Failed to fetch official tickets", err)
	}

	// Each record is addressable by its artist or its event name.
	byName := map[string][]models.OfficialTicketRecord{}
	names := make([]string, 0, 2*len(official))
	for _, record := range official {
		for _, name := range []string{record.ArtistName, record.EventName} {
			if name == "" {
				continue
			}
			if _, ok := byName[name]; !ok {
				names = append(names, name)
			}
			byName[name] = append(byName[name], record)
		}
	}

	results := []map[string]any{}
	seen := map[string]bool{}
	for _, m := range match.FuzzyMatch(query, names, match.DefaultThreshold) {
		for _, record := range byName[m.Match] {
			if seen[record.TicketID] {
				continue
			}
			seen[record.TicketID] = true
			results = append(results, map[string]any{
				"ticket":     record,
				"matched_on": m.Match,
				"score":      m.Score,
				"confidence": m.Confidence,
			})
		}
	}

	return e.JSON(http.StatusOK, map[string]any{
		"query":   query,
		"total":   len(results),
		"results": results,
	})
}
