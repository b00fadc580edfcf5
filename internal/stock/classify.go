// Package stock holds the pure inventory rules: stock classification, portfolio
// aggregation and hub transfers. Nothing in here performs I/O.
package stock

// Status is the stock category derived from current, min and max levels.
type Status string

const (
	StatusCritical    Status = "critical"
	StatusOverstocked Status = "overstocked"
	StatusOptimal     Status = "optimal"
)

// Label returns the text shown next to a product card.
func (s Status) Label() string {
	switch s {
	case StatusCritical:
		return "Low Stock"
	case StatusOverstocked:
		return "Overstock"
	default:
		return "Optimal"
	}
}

// Classification is the outcome of Classify.
//
// Ratio is current/max as a percentage and is left unclamped so alerting can see
// values above 100. DisplayRatio is the same number clamped to [0, 100].
type Classification struct {
	Status       Status  `json:"status"`
	Label        string  `json:"label"`
	Ratio        float64 `json:"ratio"`
	DisplayRatio float64 `json:"display_ratio"`
}

// Classify derives the stock status and fill ratio. The first matching rule wins:
// at or below min is critical, above max is overstocked, anything else is optimal.
// A non-positive max yields a zero ratio.
func Classify(current, min, max int) Classification {
	var ratio float64
	if max > 0 {
		ratio = float64(current) / float64(max) * 100
	}

	status := StatusOptimal
	switch {
	case isUnderstocked(current, min):
		status = StatusCritical
	case isOverstocked(current, max):
		status = StatusOverstocked
	}

	return Classification{
		Status:       status,
		Label:        status.Label(),
		Ratio:        ratio,
		DisplayRatio: clamp(ratio, 0, 100),
	}
}

func isUnderstocked(current, min int) bool { return current <= min }

func isOverstocked(current, max int) bool { return current > max }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
