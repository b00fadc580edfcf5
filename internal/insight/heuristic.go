package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/inventory-insights/internal/stock"
)

// HeuristicProvider is the offline stand-in for the analysis service. It applies the
// classifier thresholds to each summary and emits records in the collaborator's shape,
// so its output goes through the same normalization as a remote response.
type HeuristicProvider struct{}

// surplusRatio is the fill level above which an optimal product can donate stock.
const surplusRatio = 80.0

func (HeuristicProvider) Analyze(ctx context.Context, summaries []ProductSummary) ([]RawInsight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []RawInsight
	var short []ProductSummary
	var surplus []ProductSummary

	for _, s := range summaries {
		c := stock.Classify(s.Stock, s.Min, s.Max)
		switch c.Status {
		case stock.StatusCritical:
			short = append(short, s)
			severity := "medium"
			if s.Stock*2 <= s.Min {
				severity = "high"
			}
			out = append(out, RawInsight{
				"type":        "understock",
				"productName": s.Name,
				"severity":    severity,
				"message":     fmt.Sprintf("%s has %d units at the %s Hub, at or below the minimum of %d.", s.Name, s.Stock, s.Location, s.Min),
				"action":      fmt.Sprintf("Reorder at least %d units.", reorderQuantity(s)),
			})
		case stock.StatusOverstocked:
			severity := "medium"
			if float64(s.Stock) > float64(s.Max)*1.5 {
				severity = "high"
			}
			out = append(out, RawInsight{
				"type":        "overstock",
				"productName": s.Name,
				"severity":    severity,
				"message":     fmt.Sprintf("%s holds %d units above its maximum of %d.", s.Name, s.Stock-s.Max, s.Max),
				"action":      "Pause replenishment and consider a promotion.",
			})
		default:
			if float64(s.Stock) <= float64(s.Min)*1.5 {
				out = append(out, RawInsight{
					"type":        "understock",
					"productName": s.Name,
					"severity":    "low",
					"message":     fmt.Sprintf("%s is approaching its minimum (%d of %d).", s.Name, s.Stock, s.Min),
					"action":      "Schedule a replenishment order.",
				})
			}
			if c.Ratio >= surplusRatio {
				surplus = append(surplus, s)
			}
		}
	}

	for _, s := range surplus {
		hubs := shortHubs(short, s)
		if len(hubs) == 0 {
			continue
		}
		out = append(out, RawInsight{
			"type":        "rebalance",
			"productName": s.Name,
			"severity":    "low",
			"message":     fmt.Sprintf("%s is at %.0f%% capacity at the %s Hub while %s report shortages.", s.Name, stock.Classify(s.Stock, s.Min, s.Max).Ratio, s.Location, strings.Join(hubs, ", ")),
			"action":      fmt.Sprintf("Move surplus units from %s to %s.", s.Location, hubs[0]),
		})
	}

	return out, nil
}

// reorderQuantity tops the product back up to the midpoint of its band.
func reorderQuantity(s ProductSummary) int {
	target := (s.Min + s.Max) / 2
	if q := target - s.Stock; q > 0 {
		return q
	}
	return 1
}

func shortHubs(short []ProductSummary, donor ProductSummary) []string {
	seen := map[string]bool{}
	var hubs []string
	for _, s := range short {
		hub := string(s.Location)
		if s.Location == donor.Location || seen[hub] {
			continue
		}
		seen[hub] = true
		hubs = append(hubs, hub)
	}
	return hubs
}
