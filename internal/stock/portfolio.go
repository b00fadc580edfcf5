package stock

import (
	"sort"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// ScoreMode selects how the optimization score is produced.
type ScoreMode string

const (
	ScoreFixed   ScoreMode = "fixed"
	ScoreDerived ScoreMode = "derived"
)

// Scoring configures the optimization score of a Summary.
type Scoring struct {
	Mode  ScoreMode
	Fixed float64
}

// DefaultScoring reproduces the dashboard's hardcoded score.
var DefaultScoring = Scoring{Mode: ScoreFixed, Fixed: 94}

// Summary holds portfolio-level metrics for the dashboard.
type Summary struct {
	TotalProducts     int     `json:"total_products"`
	TotalValue        float64 `json:"total_value"`
	UnderstockCount   int     `json:"understock_count"`
	OverstockCount    int     `json:"overstock_count"`
	OverstockValue    float64 `json:"overstock_value"`
	OptimizationScore float64 `json:"optimization_score"`
}

// Aggregate computes the portfolio metrics in one pass over products. Understock and
// overstock use the same comparisons as Classify; overstock value counts only the
// units above max.
func Aggregate(products []models.Product, scoring Scoring) Summary {
	s := Summary{TotalProducts: len(products)}

	for _, p := range products {
		s.TotalValue += float64(p.CurrentStock) * p.Price
		if isUnderstocked(p.CurrentStock, p.MinStock) {
			s.UnderstockCount++
		}
		// Evaluated independently of the understock rule so that a record with
		// min above max still contributes its excess units.
		if isOverstocked(p.CurrentStock, p.MaxStock) {
			s.OverstockCount++
			s.OverstockValue += float64(p.CurrentStock-p.MaxStock) * p.Price
		}
	}

	s.OptimizationScore = score(s, scoring)
	return s
}

func score(s Summary, scoring Scoring) float64 {
	if scoring.Mode != ScoreDerived {
		return scoring.Fixed
	}
	if s.TotalProducts == 0 {
		return 100
	}
	flagged := float64(s.UnderstockCount + s.OverstockCount)
	return clamp(100*(1-flagged/float64(s.TotalProducts)), 0, 100)
}

// depletionFactor widens the min threshold for the early-warning watchlist.
const depletionFactor = 1.5

// DepletionWatchlist returns up to limit products whose stock is within 1.5x of their
// minimum, lowest fill first. A non-positive limit returns every match.
func DepletionWatchlist(products []models.Product, limit int) []models.Product {
	var out []models.Product
	for _, p := range products {
		if float64(p.CurrentStock) <= float64(p.MinStock)*depletionFactor {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Classify(out[i].CurrentStock, out[i].MinStock, out[i].MaxStock).Ratio <
			Classify(out[j].CurrentStock, out[j].MinStock, out[j].MaxStock).Ratio
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
