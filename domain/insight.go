package domain

import "context"

type InsightTopic string

const (
	TopicComparison           InsightTopic = "comparison"
	TopicTenureRecommendation InsightTopic = "tenure_recommendation"
)

// InsightGenerator turns a calculation result into a short narrative.
// Implementations may call out to a language model; callers treat the text as
// decoration and never depend on it for numbers.
type InsightGenerator interface {
	Generate(ctx context.Context, topic InsightTopic, data any) (string, error)
}
