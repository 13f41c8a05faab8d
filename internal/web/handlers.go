package web

import (
	"database/sql"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/ops"
	"github.com/jmonzo/atril/internal/solution"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleList handles GET /solutions — list archived solutions.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		Limit:  parseIntParam(r, "limit", 20),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.List(h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	items := make([]solutionItem, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, newSolutionItem(s))
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Solutions",
			Version: h.renderer.version,
			Nav:     "solutions",
		},
		Items:      items,
		Pagination: result.Pagination,
	})
}

// HandleDetail handles GET /solutions/{id} — the timetable view for one
// solution. Query parameters dimension and selection drive the schedule
// projection; htmx swaps just the schedule block when the filter changes.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("solution ID is required"))
		return
	}

	includePayloads := false
	sol, err := ops.Fetch(h.db, ops.FetchInput{
		ID:              id,
		IncludePayloads: &includePayloads,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	sched, err := ops.Schedule(h.db, h.cfg, ops.ScheduleInput{
		ID:        id,
		Dimension: r.URL.Query().Get("dimension"),
		Selection: r.URL.Query().Get("selection"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := DetailPageData{
		PageData: PageData{
			Title:   displayName(sol.LabelRaw, sol.ID),
			Version: h.renderer.version,
			Nav:     "solutions",
		},
		Solution:    sol,
		Schedule:    sched,
		DisplayName: displayName(sol.LabelRaw, sol.ID),
	}
	if sol.Source != nil {
		data.SourceHTML = renderMarkdown(*sol.Source)
	}

	// Filter change: swap only the schedule block
	if r.Header.Get("HX-Target") == "schedule" {
		h.renderer.renderBlock(w, http.StatusOK, "detail", "schedule-view", data)
		return
	}

	h.renderer.renderPage(w, r, "detail", data)
}

// HandleInsights handles GET /solutions/{id}/insights — quality metrics.
func (h *Handlers) HandleInsights(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("solution ID is required"))
		return
	}

	result, err := ops.Insights(h.db, ops.InsightsInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "insights", InsightsPageData{
		PageData: PageData{
			Title:   "Insights",
			Version: h.renderer.version,
			Nav:     "solutions",
		},
		Insights:    result,
		DisplayName: result.ID,
	})
}

// HandleCongestion handles GET /solutions/{id}/congestion — the weekly
// student-presence heat map.
func (h *Handlers) HandleCongestion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("solution ID is required"))
		return
	}

	result, err := ops.Congestion(h.db, ops.CongestionInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "congestion", CongestionPageData{
		PageData: PageData{
			Title:   "Congestion",
			Version: h.renderer.version,
			Nav:     "solutions",
		},
		Congestion:  result,
		DisplayName: result.ID,
	})
}

// HandleDelete handles DELETE /solutions/{id} — soft-delete a solution.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("solution ID is required"))
		return
	}

	result, err := ops.Delete(h.db, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/solutions")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": result.Deleted,
			"id":      result.ID,
		})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/solutions", http.StatusFound)
}

// HandlePurge handles POST /solutions/purge — permanently delete
// soft-deleted solutions.
func (h *Handlers) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	input := ops.PurgeInput{}
	if days := r.FormValue("older_than_days"); days != "" {
		d, err := strconv.Atoi(days)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("older_than_days must be an integer"))
			return
		}
		input.OlderThanDays = &d
	}

	result, err := ops.Purge(h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: return HTML fragment
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="purge-result">` + template.HTMLEscapeString(result.Message) + `</div>`))
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"purged":  result.Purged,
			"message": result.Message,
		})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/solutions", http.StatusFound)
}

// newSolutionItem flattens a summary's nullable fields for the list template.
func newSolutionItem(s solution.SolutionSummary) solutionItem {
	item := solutionItem{
		ID:        s.ID,
		RowCount:  s.RowCount,
		UpdatedAt: s.UpdatedAt,
	}
	item.Label = displayName(s.Label, s.ID)
	if s.Source != nil {
		item.Source = *s.Source
	}
	return item
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// displayName returns the solution label if present, or a truncated ID.
func displayName(label *string, id string) string {
	if label != nil && *label != "" {
		return *label
	}
	if len(id) > 10 {
		return id[:10] + "..."
	}
	return id
}
