package backend

import "context"

// Service abstracts the negotiation backend.
// This interface allows for easy mocking in tests.
type Service interface {
	// Analyze requests a market valuation and negotiation strategy.
	Analyze(ctx context.Context, input ListingInput) (*AnalysisResult, error)

	// Learn reports the outcome of a negotiation.
	Learn(ctx context.Context, feedback LearningFeedback) error

	// MarketTrends fetches the current trend data for an item.
	MarketTrends(ctx context.Context, itemName string) (*TrendInfo, error)

	// Brands returns brand suggestions for a partial query, best match first.
	Brands(ctx context.Context, query string) ([]string, error)
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)
