package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "http://localhost:5000"

// APIError is returned when the backend answers with a non-2xx status or a
// {success:false} payload.
type APIError struct {
	StatusCode int
	Message    string // Backend-supplied message, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

type ClientOpts struct {
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

type Client struct {
	httpClient *resty.Client
	baseURL    string
}

func NewClient(opts ClientOpts) *Client {
	c := Client{baseURL: DefaultBaseURL}
	if opts.BaseURL != "" {
		c.baseURL = opts.BaseURL
	}
	c.httpClient = resty.New().
		SetDebug(false).
		SetBaseURL(c.baseURL).
		SetHeaders(
			map[string]string{
				"Accept":     "application/json",
				"User-Agent": "dealfinder-cli",
			},
		)
	if opts.Timeout > 0 {
		c.httpClient.SetTimeout(opts.Timeout)
	}

	return &c
}

func (c *Client) req(ctx context.Context, result any) *resty.Request {
	request := c.httpClient.
		NewRequest().
		SetContext(ctx).
		ForceContentType("application/json").
		SetError(&errorResponse{})

	if result != nil {
		request.SetResult(result)
	}

	return request
}

// Analyze posts the listing to /analyze.
func (c *Client) Analyze(ctx context.Context, input ListingInput) (*AnalysisResult, error) {
	result := &analyzeResponse{}

	_, err := handleError(c.req(ctx, result).
		SetBody(input).
		Post("/analyze"))
	if err != nil {
		return nil, err
	}

	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "Analysis failed"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: msg}
	}

	log.Debug().
		Str("item", input.ItemName).
		Float64("marketPrice", result.MarketPrice).
		Str("method", string(result.Strategy.Method)).
		Msg("analysis received")

	return &result.AnalysisResult, nil
}

// Learn posts negotiation feedback to /api/learn.
func (c *Client) Learn(ctx context.Context, feedback LearningFeedback) error {
	_, err := handleError(c.req(ctx, nil).
		SetBody(feedback).
		Post("/api/learn"))
	return err
}

// MarketTrends fetches /api/market-trends/{itemName}.
func (c *Client) MarketTrends(ctx context.Context, itemName string) (*TrendInfo, error) {
	result := &trendsResponse{}

	_, err := handleError(c.req(ctx, result).
		SetPathParam("itemName", itemName).
		Get("/api/market-trends/{itemName}"))
	if err != nil {
		return nil, err
	}

	if !result.Success || result.Trends == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: result.Error}
	}

	return result.Trends, nil
}

// Brands fetches /api/brands?q={query}.
func (c *Client) Brands(ctx context.Context, query string) ([]string, error) {
	var brands []string

	_, err := handleError(c.req(ctx, &brands).
		SetQueryParam("q", query).
		Get("/api/brands"))
	if err != nil {
		return nil, err
	}

	return brands, nil
}

// handleError turns failing responses (>399 status code) into an *APIError.
// Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		apiErr := &APIError{StatusCode: res.StatusCode()}
		if body, ok := res.Error().(*errorResponse); ok && body != nil {
			apiErr.Message = body.Error
		}
		log.Debug().
			Str("method", res.Request.Method).
			Str("url", res.Request.URL).
			Int("status", res.StatusCode()).
			Msg("backend request failed")
		return res, apiErr
	}

	return res, nil
}
