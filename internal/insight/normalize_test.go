package insight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

func validRaw() RawInsight {
	return RawInsight{
		"id":          "ins-1",
		"type":        "understock",
		"productName": "Apple iPhone 15",
		"severity":    "high",
		"message":     "Stock is below minimum.",
		"action":      "Reorder 120 units.",
	}
}

func TestNormalize_Valid(t *testing.T) {
	got, err := Normalize([]RawInsight{validRaw()})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, models.Insight{
		ID:          "ins-1",
		Type:        models.InsightUnderstock,
		ProductName: "Apple iPhone 15",
		Severity:    models.SeverityHigh,
		Message:     "Stock is below minimum.",
		Action:      "Reorder 120 units.",
	}, got[0])
}

func TestNormalize_AssignsMissingID(t *testing.T) {
	r := validRaw()
	delete(r, "id")
	r2 := validRaw()
	r2["id"] = "   "

	got, err := Normalize([]RawInsight{r, r2})
	require.NoError(t, err)
	assert.NotEmpty(t, got[0].ID)
	assert.NotEmpty(t, got[1].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestNormalize_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(RawInsight)
		field  string
	}{
		{name: "unknown type", mutate: func(r RawInsight) { r["type"] = "restock" }, field: "type"},
		{name: "unknown severity", mutate: func(r RawInsight) { r["severity"] = "critical" }, field: "severity"},
		{name: "missing message", mutate: func(r RawInsight) { delete(r, "message") }, field: "message"},
		{name: "missing product", mutate: func(r RawInsight) { delete(r, "productName") }, field: "productName"},
		{name: "null action", mutate: func(r RawInsight) { r["action"] = nil }, field: "action"},
		{name: "non string severity", mutate: func(r RawInsight) { r["severity"] = 3 }, field: "severity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRaw()
			tt.mutate(r)

			got, err := Normalize([]RawInsight{validRaw(), r})
			assert.Nil(t, got)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 1, verr.Index)
		})
	}
}

func TestNormalize_VocabularyIsExact(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{"type", " Rebalance "},
		{"type", "OVERSTOCK"},
		{"severity", "LOW"},
		{"severity", "high "},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			r := validRaw()
			r[tt.field] = tt.value

			got, err := Normalize([]RawInsight{r})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Nil(t, got)
		})
	}
}

func TestNormalizeValid_DropsInvalid(t *testing.T) {
	bad := validRaw()
	bad["type"] = "panic"

	got, rejected := NormalizeValid([]RawInsight{validRaw(), bad, nil, validRaw()})
	assert.Len(t, got, 2)
	assert.Len(t, rejected, 2)
}

func TestNormalize_Empty(t *testing.T) {
	got, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
