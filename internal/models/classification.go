package models

// Confidence levels attached to every category assignment.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Classification sources, recorded for debugging and review.
const (
	SourceLearned  = "learned"
	SourceCoffee   = "coffee-detection"
	SourceDatabase = "database"
	SourcePattern  = "pattern"
	SourceAI       = "ai"
)

// Classification is the result of categorizing a transaction description.
type Classification struct {
	Category   string `json:"category"`
	Confidence string `json:"confidence"`
	Source     string `json:"source"`
}
