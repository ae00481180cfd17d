package backend

import (
	"context"
	"sync"
)

// MockService is a test double for Service.
// Each method can be overridden with a custom function.
// If not overridden, methods return sensible defaults.
// Thread-safe for use in concurrent tests.
type MockService struct {
	AnalyzeFunc      func(ctx context.Context, input ListingInput) (*AnalysisResult, error)
	LearnFunc        func(ctx context.Context, feedback LearningFeedback) error
	MarketTrendsFunc func(ctx context.Context, itemName string) (*TrendInfo, error)
	BrandsFunc       func(ctx context.Context, query string) ([]string, error)

	mu sync.Mutex

	// Calls tracks all method invocations for assertions
	Calls []MockCall
}

// MockCall records a method call for test assertions.
type MockCall struct {
	Method string
	Args   []any
}

// Ensure MockService implements Service
var _ Service = (*MockService)(nil)

func (m *MockService) record(method string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

func (m *MockService) Analyze(ctx context.Context, input ListingInput) (*AnalysisResult, error) {
	m.record("Analyze", input)
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, input)
	}
	return &AnalysisResult{
		MarketPrice: input.Price,
		Strategy: Strategy{
			Method:     MethodStandardOffer,
			OfferPrice: input.Price,
			Confidence: 3,
			Message:    "Hi! Would you consider a small discount?",
		},
		Analysis: Analysis{
			NegotiationStrength: 50,
			SellerMotivation:    TypicalSeller,
			MarketPosition:      PositionFair,
		},
	}, nil
}

func (m *MockService) Learn(ctx context.Context, feedback LearningFeedback) error {
	m.record("Learn", feedback)
	if m.LearnFunc != nil {
		return m.LearnFunc(ctx, feedback)
	}
	return nil
}

func (m *MockService) MarketTrends(ctx context.Context, itemName string) (*TrendInfo, error) {
	m.record("MarketTrends", itemName)
	if m.MarketTrendsFunc != nil {
		return m.MarketTrendsFunc(ctx, itemName)
	}
	return &TrendInfo{PriceTrend: TrendStable, SeasonalFactor: 1}, nil
}

func (m *MockService) Brands(ctx context.Context, query string) ([]string, error) {
	m.record("Brands", query)
	if m.BrandsFunc != nil {
		return m.BrandsFunc(ctx, query)
	}
	return nil, nil
}

// CallCount returns how many times method was called.
func (m *MockService) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// CallsTo returns the recorded calls to method, oldest first.
func (m *MockService) CallsTo(method string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []MockCall
	for _, c := range m.Calls {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}
