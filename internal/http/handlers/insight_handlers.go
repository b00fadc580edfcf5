package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/inventory-insights/internal/insight"
	"github.com/rogerio-castellano/inventory-insights/internal/http/middleware"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

func currentInsights() InsightsResult {
	insights, generation := inventory.Insights()
	return InsightsResult{
		Insights:   insights,
		Loading:    refresher.Loading(),
		Generation: generation,
		Offline:    modeSwitch.Offline(),
	}
}

// GetInsightsHandler godoc
// @Summary Current AI insights
// @Description Returns the latest applied insight sequence and whether a refresh is in flight.
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} InsightsResult
// @Router /insights [get]
func GetInsightsHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, currentInsights())
}

// RefreshInsightsHandler godoc
// @Summary Run an insight refresh and wait for it
// @Description applied is false when a newer refresh superseded this one.
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RefreshResult
// @Router /insights/refresh [post]
func RefreshInsightsHandler(w http.ResponseWriter, r *http.Request) {
	applied := refresher.Refresh(r.Context())
	respond(w, http.StatusOK, RefreshResult{Applied: applied, InsightsResult: currentInsights()})
}

// SetModeHandler godoc
// @Summary Switch between online and offline analysis
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mode body ModeRequest true "Offline flag"
// @Success 200 {object} ModeResult
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "No online provider configured"
// @Router /settings/mode [put]
func SetModeHandler(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := readJSON(w, r, &req); err != nil || req.Offline == nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if err := modeSwitch.SetOffline(*req.Offline); err != nil {
		if errors.Is(err, insight.ErrNoOnlineProvider) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "could not change mode", http.StatusInternalServerError)
		return
	}

	logger.Log.Info().Bool("offline", *req.Offline).Str("by", middleware.GetUsername(r)).Msg("analysis mode changed")
	refresher.Trigger()
	respond(w, http.StatusOK, ModeResult{Offline: modeSwitch.Offline()})
}
