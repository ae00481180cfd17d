package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/advisor"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/recent"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/session"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/suggest"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/watcher"
	"github.com/stretchr/testify/assert"
)

func TestAnalysis(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, storage.ThemeDark)

	r.Analysis(session.View{
		ItemName:        "Nike Air Max",
		AskingPrice:     40,
		MarketPrice:     35,
		PriceBand:       advisor.BandAboveMarket,
		Savings:         "£10.00 (25%)",
		SavingsPositive: true,
		Method:          backend.MethodWatchAndWait,
		MethodIcon:      "👀",
		OfferPrice:      30,
		ConfidenceStars: "★★★★☆",
		Probability:     80,
		SellerType:      "Motivated Seller",
		SellerBadge:     "motivated-seller",
		Strength:        72,
		Message:         "Would you accept £30?",
		Tone:            advisor.Polite,
		ProTips:         []string{advisor.TipBePolite},
		MarketAdvice:    []string{advisor.AdviceBuyersMarket},
	})

	out := buf.String()
	assert.Contains(t, out, "Nike Air Max")
	assert.Contains(t, out, "£35.00")
	assert.Contains(t, out, "£40.00 (above market)")
	assert.Contains(t, out, "£10.00 (25%)")
	assert.Contains(t, out, "👀 Watch and Wait")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "[motivated-seller]")
	assert.Contains(t, out, "72/100")
	assert.Contains(t, out, "Tone: Polite")
	assert.Contains(t, out, advisor.TipBePolite)
	assert.Contains(t, out, advisor.AdviceBuyersMarket)
	assert.NotContains(t, out, "Brand")
	assert.NotContains(t, out, "Timing")
}

func TestRecentItems(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, storage.ThemeLight)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	r.RecentItems(nil, now)
	assert.Contains(t, buf.String(), "No recent items.")

	buf.Reset()
	r.RecentItems([]recent.Item{
		{ItemName: "Nike Dunk", Price: 55, DaysListed: 3, Timestamp: now.Add(-2 * time.Hour).UnixMilli()},
		{ItemName: "Adidas Samba", Price: 40, Timestamp: now.Add(-72 * time.Hour).UnixMilli()},
	}, now)

	out := buf.String()
	assert.Contains(t, out, "0. Nike Dunk £55.00")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "1. Adidas Samba £40.00")
	assert.Contains(t, out, "3d ago")
}

func TestSuggestions(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, storage.ThemeLight)

	r.Suggestions(suggest.Suggestions{})
	assert.Empty(t, buf.String())

	r.Suggestions(suggest.Suggestions{Visible: true, Query: "nik", Items: []string{"Nike", "Nikon"}})
	assert.Equal(t, "  Nike\n  Nikon\n", buf.String())
}

func TestMarketReports(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, storage.ThemeLight)
	price := 60.0

	r.MarketReports([]watcher.Report{
		{
			ItemName: "Nike Dunk",
			Trends:   &backend.TrendInfo{PriceTrend: backend.TrendRising, EstimatedMarketPrice: &price},
			Advice:   []string{advisor.AdviceSellersMarket},
			Changed:  true,
			Previous: backend.TrendStable,
		},
		{ItemName: "Broken", Err: errors.New("boom")},
	})

	out := buf.String()
	assert.Contains(t, out, "Nike Dunk rising (was stable)")
	assert.Contains(t, out, "£60.00")
	assert.Contains(t, out, advisor.AdviceSellersMarket)
	assert.Contains(t, out, "Broken unavailable")
}

func TestErrorText(t *testing.T) {
	assert.Equal(t,
		"Please fill in all required fields correctly. (invalid price: must be greater than 0 and at most 10000)",
		ErrorText(&session.ValidationError{Field: "price", Reason: "must be greater than 0 and at most 10000"}))
	assert.Equal(t, "Analysis failed: HTTP 500", ErrorText(&session.NetworkError{StatusCode: 500, Message: "HTTP 500"}))
	assert.Equal(t, "No active session, analyse a listing first.", ErrorText(session.ErrNoActiveSession))
	assert.Equal(t, "An analysis is already in progress.", ErrorText(session.ErrConcurrentSubmission))
}

func TestInstallHint(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, storage.ThemeLight).InstallHint("/home/me/.config/dealfinder")

	assert.Contains(t, buf.String(), "Tip: settings live in /home/me/.config/dealfinder/config.env.\nRun 'dealfinder analyze'")
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "No response", OutcomeLabel(backend.OutcomeNoResponse))
	assert.Equal(t, "Accepted", OutcomeLabel(backend.OutcomeAccepted))
}

func TestRecentItems_Pluralizes(t *testing.T) {
	var buf bytes.Buffer
	now := time.Now()
	New(&buf, storage.ThemeLight).RecentItems([]recent.Item{
		{ItemName: "Nike Dunk", Price: 55, DaysListed: 1, InterestedCount: 2, Timestamp: now.UnixMilli()},
	}, now)

	assert.Contains(t, buf.String(), "(listed 1 day, 2 interested buyers, just now)")
}
