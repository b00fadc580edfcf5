package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

// watchlistSize is how many near-depletion products the dashboard shows.
const watchlistSize = 3

// GetDashboardSummaryHandler godoc
// @Summary Portfolio metrics and depletion watchlist
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardSummary
// @Failure 500 {string} string "Internal error"
// @Router /dashboard/summary [get]
func GetDashboardSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := inventory.Summary()
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to aggregate portfolio")
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, DashboardSummary{
		Summary:   summary,
		Watchlist: toProductResponses(inventory.Watchlist(watchlistSize)),
	})
}
