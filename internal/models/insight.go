package models

type InsightType string

const (
	InsightUnderstock InsightType = "understock"
	InsightOverstock  InsightType = "overstock"
	InsightRebalance  InsightType = "rebalance"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Insight is a generated recommendation. ProductName is a denormalized label, not a key.
type Insight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	ProductName string      `json:"productName"`
	Severity    Severity    `json:"severity"`
	Message     string      `json:"message"`
	Action      string      `json:"action"`
}
