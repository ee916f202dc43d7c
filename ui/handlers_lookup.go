package ui

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"reglookup/internal/api"
	"reglookup/ui/templates/fragments"
)

const pageTitle = "Employee Verification"

// handleIndex renders the search page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, fragments.IndexPage, newPageView("", nil))
}

// handleSearch runs a search for the submitted registration number.
// HTMX requests get the result fragment, plain requests the whole page.
// A blank key performs no lookup.
func (a *App) handleSearch(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("regNo")

	var view *ResultView
	if strings.TrimSpace(key) != "" {
		result, err := a.finder.Lookup(r.Context(), key)
		if err != nil {
			log.Printf("[Search] request %s: lookup failed: %v", middleware.GetReqID(r.Context()), err)
		}
		view = newResultView(key, result, err)
	}

	if isHTMX(r) {
		if view == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		a.renderPartial(w, fragments.ResultPanel, view)
		return
	}
	a.renderTemplate(w, fragments.IndexPage, newPageView(key, view))
}

// handleLookup is the JSON lookup endpoint
func (a *App) handleLookup(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "registrationNo")
	// chi matches on the raw path when one is present, leaving params escaped
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(key); err == nil {
			key = unescaped
		}
	}

	result, err := a.finder.Lookup(r.Context(), key)
	if err != nil {
		log.Printf("[API] request %s: lookup failed: %v", middleware.GetReqID(r.Context()), err)
	}
	status, body := api.LookupResponse(result, err)
	writeJSON(w, status, body)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Source: a.source.Describe()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
