package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/recent"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, service backend.Service) (*Controller, *recent.Cache) {
	t.Helper()
	store, err := storage.NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cache := recent.New(storage.NewState(store))
	return NewController(service, cache), cache
}

func validInput() backend.ListingInput {
	return backend.ListingInput{ItemName: "Nike Air Max", Price: 40, DaysListed: 45, InterestedCount: 0}
}

func TestSubmit_ValidationFailuresNeverCallBackend(t *testing.T) {
	tests := []struct {
		name  string
		field string
		input backend.ListingInput
	}{
		{"short name", "item name", backend.ListingInput{ItemName: "ab", Price: 10}},
		{"name short after trim", "item name", backend.ListingInput{ItemName: "  ab  ", Price: 10}},
		{"zero price", "price", backend.ListingInput{ItemName: "Nike", Price: 0}},
		{"negative price", "price", backend.ListingInput{ItemName: "Nike", Price: -5}},
		{"price too high", "price", backend.ListingInput{ItemName: "Nike", Price: 10000.01}},
		{"negative days", "days listed", backend.ListingInput{ItemName: "Nike", Price: 10, DaysListed: -1}},
		{"too many days", "days listed", backend.ListingInput{ItemName: "Nike", Price: 10, DaysListed: 366}},
		{"negative interest", "interested count", backend.ListingInput{ItemName: "Nike", Price: 10, InterestedCount: -1}},
		{"too much interest", "interested count", backend.ListingInput{ItemName: "Nike", Price: 10, InterestedCount: 1001}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &backend.MockService{}
			c, cache := newTestController(t, mock)

			result, err := c.Submit(context.Background(), tt.input)

			assert.Nil(t, result)
			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
			assert.Equal(t, Failed, c.State())
			assert.Equal(t, 0, mock.CallCount("Analyze"))
			assert.Empty(t, cache.List())
			assert.Nil(t, c.Session())
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	_, err := Validate(backend.ListingInput{ItemName: "abc", Price: 10000, DaysListed: 365, InterestedCount: 1000})
	assert.NoError(t, err)

	_, err = Validate(backend.ListingInput{ItemName: "abc", Price: 0.01})
	assert.NoError(t, err)

	input, err := Validate(backend.ListingInput{ItemName: "  Nike Dunk ", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, "Nike Dunk", input.ItemName)
}

func TestSubmit_Success(t *testing.T) {
	mock := &backend.MockService{}
	c, cache := newTestController(t, mock)

	input := validInput()
	input.ItemName = "  Nike Air Max "
	result, err := c.Submit(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, Succeeded, c.State())
	assert.NoError(t, c.Err())

	calls := mock.CallsTo("Analyze")
	require.Len(t, calls, 1)
	assert.Equal(t, "Nike Air Max", calls[0].Args[0].(backend.ListingInput).ItemName)

	session := c.Session()
	require.NotNil(t, session)
	assert.Equal(t, "Nike Air Max", session.OriginalInput.ItemName)
	assert.Same(t, result, session.Result)

	items := cache.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Nike Air Max", items[0].ItemName)
}

func TestSubmit_BackendErrorIsNetworkError(t *testing.T) {
	mock := &backend.MockService{
		AnalyzeFunc: func(ctx context.Context, input backend.ListingInput) (*backend.AnalysisResult, error) {
			return nil, &backend.APIError{StatusCode: http.StatusInternalServerError}
		},
	}
	c, cache := newTestController(t, mock)

	_, err := c.Submit(context.Background(), validInput())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	assert.Equal(t, "HTTP 500", netErr.Error())

	var apiErr *backend.APIError
	assert.True(t, errors.As(err, &apiErr))

	assert.Equal(t, Failed, c.State())
	assert.Equal(t, err, c.Err())
	assert.Nil(t, c.Session())
	assert.Empty(t, cache.List())
}

func TestSubmit_BackendMessageIsKept(t *testing.T) {
	mock := &backend.MockService{
		AnalyzeFunc: func(ctx context.Context, input backend.ListingInput) (*backend.AnalysisResult, error) {
			return nil, &backend.APIError{StatusCode: http.StatusOK, Message: "Analysis failed"}
		},
	}
	c, _ := newTestController(t, mock)

	_, err := c.Submit(context.Background(), validInput())
	assert.EqualError(t, err, "Analysis failed")
}

func TestSubmit_FailureKeepsPreviousSession(t *testing.T) {
	fail := false
	mock := &backend.MockService{}
	mock.AnalyzeFunc = func(ctx context.Context, input backend.ListingInput) (*backend.AnalysisResult, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return &backend.AnalysisResult{MarketPrice: 30}, nil
	}
	c, _ := newTestController(t, mock)

	_, err := c.Submit(context.Background(), validInput())
	require.NoError(t, err)
	first := c.Session()

	fail = true
	_, err = c.Submit(context.Background(), backend.ListingInput{ItemName: "Adidas Samba", Price: 50})
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, 0, netErr.StatusCode)

	assert.Same(t, first, c.Session())
}

func TestSubmit_NewSessionReplacesOld(t *testing.T) {
	c, cache := newTestController(t, &backend.MockService{})

	_, err := c.Submit(context.Background(), validInput())
	require.NoError(t, err)
	first := c.Session()

	_, err = c.Submit(context.Background(), backend.ListingInput{ItemName: "Adidas Samba", Price: 50})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, c.Session().ID)
	assert.Equal(t, "Adidas Samba", c.Session().OriginalInput.ItemName)
	assert.Len(t, cache.List(), 2)
}

func TestSubmit_ConcurrentSubmissionRejected(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	mock := &backend.MockService{
		AnalyzeFunc: func(ctx context.Context, input backend.ListingInput) (*backend.AnalysisResult, error) {
			close(started)
			<-release
			return &backend.AnalysisResult{MarketPrice: 42}, nil
		},
	}
	c, _ := newTestController(t, mock)

	type outcome struct {
		result *backend.AnalysisResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := c.Submit(context.Background(), validInput())
		done <- outcome{result, err}
	}()

	<-started
	assert.Equal(t, Submitting, c.State())

	_, err := c.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrConcurrentSubmission)
	assert.Equal(t, 1, mock.CallCount("Analyze"))
	assert.Equal(t, Submitting, c.State())

	close(release)
	first := <-done
	require.NoError(t, first.err)
	assert.Equal(t, 42.0, first.result.MarketPrice)
	assert.Equal(t, Succeeded, c.State())
}

func TestReportOutcome(t *testing.T) {
	mock := &backend.MockService{
		AnalyzeFunc: func(ctx context.Context, input backend.ListingInput) (*backend.AnalysisResult, error) {
			return &backend.AnalysisResult{
				Strategy: backend.Strategy{Method: backend.MethodQuickOffer, OfferPrice: 32},
			}, nil
		},
	}
	c, _ := newTestController(t, mock)

	err := c.ReportOutcome(context.Background(), backend.OutcomeAccepted)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Equal(t, 0, mock.CallCount("Learn"))

	_, err = c.Submit(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, c.ReportOutcome(context.Background(), backend.OutcomeCountered))

	calls := mock.CallsTo("Learn")
	require.Len(t, calls, 1)
	assert.Equal(t, backend.LearningFeedback{
		ItemName:      "Nike Air Max",
		OriginalPrice: 40,
		OfferedPrice:  32,
		StrategyUsed:  backend.MethodQuickOffer,
		Outcome:       backend.OutcomeCountered,
	}, calls[0].Args[0])
}

func TestReportOutcome_NetworkFailure(t *testing.T) {
	mock := &backend.MockService{
		LearnFunc: func(ctx context.Context, feedback backend.LearningFeedback) error {
			return &backend.APIError{StatusCode: http.StatusServiceUnavailable}
		},
	}
	c, _ := newTestController(t, mock)
	_, err := c.Submit(context.Background(), validInput())
	require.NoError(t, err)

	err = c.ReportOutcome(context.Background(), backend.OutcomeRejected)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)

	// The session survives a failed report
	assert.NotNil(t, c.Session())
}

func TestRetry(t *testing.T) {
	c, _ := newTestController(t, &backend.MockService{})

	_, err := c.Retry()
	assert.ErrorIs(t, err, ErrNoActiveSession)

	views := 12
	input := validInput()
	input.ViewCount = &views
	_, err = c.Submit(context.Background(), input)
	require.NoError(t, err)

	again, err := c.Retry()
	require.NoError(t, err)
	assert.Equal(t, input, again)

	// Editing the copy must not touch the session
	*again.ViewCount = 99
	assert.Equal(t, 12, *c.Session().OriginalInput.ViewCount)
}

func TestReset(t *testing.T) {
	c, _ := newTestController(t, &backend.MockService{})
	_, err := c.Submit(context.Background(), backend.ListingInput{ItemName: "x"})
	require.Error(t, err)
	assert.Equal(t, Failed, c.State())

	c.Reset()
	assert.Equal(t, Idle, c.State())
	assert.NoError(t, c.Err())
	assert.Equal(t, "idle", c.State().String())
}
