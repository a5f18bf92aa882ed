package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/coursehub-dev/coursehub/shared/api"
	"github.com/coursehub-dev/coursehub/shared/utils"
)

// parseWindow turns "7d" (or a bare "7") into a day count; 0 means "use the
// configured default".
func parseWindow(raw string) int {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "d")
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// GetTrending returns the current decay-weighted course ranking.
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	windowDays := parseWindow(r.URL.Query().Get("window"))
	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	entries, err := h.trending.Trending(windowDays, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.TrendingResponse(entries))
}

// GetActivity returns the most recent activity entries, newest first.
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.Public.ActivityFeedLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	events, err := h.activity.Recent(limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.ActivityResponse(events))
}

// GetDashboard bundles trending, recent activity and the most recently active
// threads into a single response.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	windowDays := parseWindow(r.URL.Query().Get("window"))
	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	trending, err := h.trending.Trending(windowDays, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	activity, err := h.activity.Recent(10)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topThreads, err := h.thread.TopThreads(h.cfg.Public.TopThreadsLimit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.DashboardResponse{
		Trending:   trending,
		Activity:   activity,
		TopThreads: topThreads,
	})
}
