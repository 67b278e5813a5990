package models

type InsightType string

const (
	InsightTypePrediction     InsightType = "Prediction"
	InsightTypeRecommendation InsightType = "Recommendation"
	InsightTypeAnalysis       InsightType = "Analysis"
)

// InsightSubject names the dataset an insight is about.
type InsightSubject string

const (
	InsightSubjectAlerts    InsightSubject = "Alerts"
	InsightSubjectResources InsightSubject = "Resources"
	InsightSubjectIncidents InsightSubject = "Incidents"
)

type AIInsight struct {
	ID        int            `json:"id" yaml:"id"`
	Type      InsightType    `json:"type" yaml:"type"`
	Content   string         `json:"content" yaml:"content"`
	RelatedTo InsightSubject `json:"related_to,omitempty" yaml:"related_to,omitempty"`
	Time      Timestamp      `json:"time" yaml:"time"`
}
