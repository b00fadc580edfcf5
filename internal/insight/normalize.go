// Package insight turns loosely typed analysis output into validated insights and
// drives the refresh cycle against a pluggable AnalysisProvider.
package insight

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// RawInsight is one record as returned by an analysis collaborator, before validation.
type RawInsight map[string]any

// ValidationError reports a malformed insight record.
type ValidationError struct {
	Index       int    `json:"index"`
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("insight %d: %s: %s", e.Index, e.Field, e.Description)
}

var requiredFields = []string{"type", "productName", "severity", "message", "action"}

var insightTypes = map[string]models.InsightType{
	string(models.InsightUnderstock): models.InsightUnderstock,
	string(models.InsightOverstock):  models.InsightOverstock,
	string(models.InsightRebalance):  models.InsightRebalance,
}

var severities = map[string]models.Severity{
	string(models.SeverityLow):    models.SeverityLow,
	string(models.SeverityMedium): models.SeverityMedium,
	string(models.SeverityHigh):   models.SeverityHigh,
}

// Normalize validates every record and fails on the first invalid one.
func Normalize(raw []RawInsight) ([]models.Insight, error) {
	out := make([]models.Insight, 0, len(raw))
	for i, r := range raw {
		in, err := normalizeOne(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// NormalizeValid keeps the valid records and reports the rejected ones.
func NormalizeValid(raw []RawInsight) ([]models.Insight, []error) {
	out := make([]models.Insight, 0, len(raw))
	var rejected []error
	for i, r := range raw {
		in, err := normalizeOne(i, r)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		out = append(out, in)
	}
	return out, rejected
}

func normalizeOne(i int, r RawInsight) (models.Insight, error) {
	if r == nil {
		return models.Insight{}, &ValidationError{Index: i, Field: "record", Description: "record is empty"}
	}

	fields := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		v, ok := r[name]
		if !ok || v == nil {
			return models.Insight{}, &ValidationError{Index: i, Field: name, Description: "field is required"}
		}
		s, ok := v.(string)
		if !ok {
			return models.Insight{}, &ValidationError{Index: i, Field: name, Description: fmt.Sprintf("expected a string, got %T", v)}
		}
		fields[name] = s
	}

	typ, ok := insightTypes[fields["type"]]
	if !ok {
		return models.Insight{}, &ValidationError{Index: i, Field: "type", Description: fmt.Sprintf("%q is not one of understock, overstock, rebalance", fields["type"])}
	}
	sev, ok := severities[fields["severity"]]
	if !ok {
		return models.Insight{}, &ValidationError{Index: i, Field: "severity", Description: fmt.Sprintf("%q is not one of low, medium, high", fields["severity"])}
	}

	id, _ := r["id"].(string)
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	return models.Insight{
		ID:          id,
		Type:        typ,
		ProductName: fields["productName"],
		Severity:    sev,
		Message:     fields["message"],
		Action:      fields["action"],
	}, nil
}
