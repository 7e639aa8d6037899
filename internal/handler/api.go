package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"buswatch/internal/delay"
	"buswatch/internal/transit"
)

// Resolving all stops means up to two upstream round-trips per stop,
// issued sequentially; give the full pass room to finish.
const resolveTimeout = 30 * time.Second

const minSearchLen = 2

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}{Status: "OK", Timestamp: time.Now().UTC()})
}

type delaysResponse struct {
	Success    bool                      `json:"success"`
	Route      string                    `json:"route"`
	Data       []delay.StopDelaySnapshot `json:"data"`
	Summary    delaysSummary             `json:"summary"`
	DataSource string                    `json:"dataSource"`
	IsRealData bool                      `json:"isRealData"`
	Timestamp  time.Time                 `json:"timestamp"`
}

type delaysSummary struct {
	AverageDelayMinutes int `json:"averageDelayMinutes"`
	StopsWithData       int `json:"stopsWithData"`
	StopsWithoutData    int `json:"stopsWithoutData"`
}

// Delays handles GET /api/delays: the full ordered snapshot list.
func (h *Handler) Delays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), resolveTimeout)
	defer cancel()

	snaps, simulated := h.resolver.SnapshotAll(ctx)
	summary := delay.Summarize(snaps)

	h.writeJSON(w, http.StatusOK, delaysResponse{
		Success: true,
		Route:   h.cfg.RouteName,
		Data:    snaps,
		Summary: delaysSummary{
			AverageDelayMinutes: summary.AverageDelayMinutes,
			StopsWithData:       summary.StopsWithData,
			StopsWithoutData:    summary.TotalStops - summary.StopsWithData,
		},
		DataSource: h.dataSource(simulated),
		IsRealData: !simulated,
		Timestamp:  time.Now().UTC(),
	})
}

// DelayByStop handles GET /api/delays/{stopID}.
func (h *Handler) DelayByStop(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), resolveTimeout)
	defer cancel()

	stopID := chi.URLParam(r, "stopID")
	snap, simulated, found := h.resolver.SnapshotByStopID(ctx, stopID)
	if !found {
		h.writeError(w, http.StatusNotFound, "Stop not found", "")
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		Success    bool                     `json:"success"`
		Data       *delay.StopDelaySnapshot `json:"data"`
		DataSource string                   `json:"dataSource"`
		IsRealData bool                     `json:"isRealData"`
		Timestamp  time.Time                `json:"timestamp"`
	}{true, snap, h.dataSource(simulated), !simulated, time.Now().UTC()})
}

type stopInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Stops handles GET /api/stops: the static stop list.
func (h *Handler) Stops(w http.ResponseWriter, r *http.Request) {
	stops := h.resolver.Stops()
	data := make([]stopInfo, 0, len(stops))
	for _, s := range stops {
		data = append(data, stopInfo{ID: s.ID, Name: s.Name, Order: s.Order})
	}

	h.writeJSON(w, http.StatusOK, struct {
		Success   bool       `json:"success"`
		Data      []stopInfo `json:"data"`
		Timestamp time.Time  `json:"timestamp"`
	}{true, data, time.Now().UTC()})
}

// Summary handles GET /api/summary: aggregate route statistics.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), resolveTimeout)
	defer cancel()

	summary, _ := h.resolver.Summary(ctx)

	h.writeJSON(w, http.StatusOK, struct {
		Success   bool               `json:"success"`
		Summary   delay.RouteSummary `json:"summary"`
		Timestamp time.Time          `json:"timestamp"`
	}{true, summary, time.Now().UTC()})
}

// Search handles GET /api/search?q=: free-text station directory search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) < minSearchLen {
		h.writeError(w, http.StatusBadRequest, "invalid query",
			"query parameter 'q' must be at least 2 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	results, err := h.resolver.SearchStations(ctx, query, 10)
	if err != nil {
		h.logger.Error("station search failed", "query", query, "error", err)
		h.writeError(w, http.StatusInternalServerError, "search failed",
			"upstream station search is unavailable")
		return
	}
	if results == nil {
		results = []transit.Location{}
	}

	h.writeJSON(w, http.StatusOK, struct {
		Success   bool               `json:"success"`
		Query     string             `json:"query"`
		Results   []transit.Location `json:"results"`
		Timestamp time.Time          `json:"timestamp"`
	}{true, query, results, time.Now().UTC()})
}
