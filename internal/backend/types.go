package backend

// ListingInput is what the user knows about a listing.
type ListingInput struct {
	ItemName        string  `json:"item_name"`
	Price           float64 `json:"price"`
	DaysListed      int     `json:"days"`
	InterestedCount int     `json:"interested"`
	ViewCount       *int    `json:"views,omitempty"`
}

// Clone returns a deep copy of the input.
func (in ListingInput) Clone() ListingInput {
	out := in
	if in.ViewCount != nil {
		views := *in.ViewCount
		out.ViewCount = &views
	}
	return out
}

// AnalysisResult is the market valuation and strategy for a listing.
type AnalysisResult struct {
	MarketPrice      float64           `json:"market_price"`
	Strategy         Strategy          `json:"strategy"`
	Analysis         Analysis          `json:"analysis"`
	Insights         Insights          `json:"insights"`
	EnhancedFeatures *EnhancedFeatures `json:"enhanced_features,omitempty"`
}

// Rationale returns the strategy rationale, which older backends report
// under insights instead of analysis.
func (r *AnalysisResult) Rationale() string {
	if r.Analysis.StrategyRationale != "" {
		return r.Analysis.StrategyRationale
	}
	return r.Insights.StrategyRationale
}

// Trends returns the market trends if the backend included them.
func (r *AnalysisResult) Trends() *TrendInfo {
	if r.EnhancedFeatures == nil {
		return nil
	}
	return r.EnhancedFeatures.MarketTrends
}

type Strategy struct {
	Method          Method  `json:"method"`
	OfferPrice      float64 `json:"offer_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Confidence      int     `json:"confidence"` // 1..5
	Message         string  `json:"message"`
}

type Analysis struct {
	NegotiationStrength int              `json:"negotiation_strength"` // 0..100
	SellerMotivation    SellerMotivation `json:"seller_motivation"`
	StrategyRationale   string           `json:"strategy_rationale,omitempty"`
	MarketPosition      MarketPosition   `json:"market_position"`
	BrandInfo           *BrandInfo       `json:"brand_info,omitempty"`
}

type BrandInfo struct {
	Brand            string      `json:"brand"`
	DemandLevel      DemandLevel `json:"demand_level"`
	BaseValue        float64     `json:"base_value"`
	DepreciationRate float64     `json:"depreciation_rate"`
}

// Known reports whether the backend recognised the brand. The backend sends
// an empty object or the literal "Unknown" when it didn't.
func (b *BrandInfo) Known() bool {
	return b != nil && b.Brand != "" && b.Brand != "Unknown"
}

type Insights struct {
	MarketComparison  string `json:"market_comparison"`
	SellerInsights    string `json:"seller_insights"`
	StrategyRationale string `json:"strategy_rationale,omitempty"`
	TrendInsights     string `json:"trend_insights,omitempty"`
}

type EnhancedFeatures struct {
	MarketTrends   *TrendInfo     `json:"market_trends,omitempty"`
	SellerProfile  *SellerProfile `json:"seller_profile,omitempty"`
	TimingAnalysis *TimingInfo    `json:"timing_analysis,omitempty"`
}

type TrendInfo struct {
	PriceTrend           PriceTrend `json:"price_trend"`
	SeasonalFactor       float64    `json:"seasonal_factor"`
	DemandSurge          bool       `json:"demand_surge"`
	HypeScore            float64    `json:"hype_score"` // 0..1
	EstimatedMarketPrice *float64   `json:"estimated_market_price,omitempty"`
	DataSources          int        `json:"data_sources,omitempty"`
}

type SellerProfile struct {
	AvgResponseTimeHours   float64 `json:"avg_response_time_hours"`
	NegotiationFlexibility float64 `json:"negotiation_flexibility"` // 0..1
}

type TimingInfo struct {
	TimingScore          float64 `json:"timing_score"` // 0..1
	RecommendedWaitHours float64 `json:"recommended_wait_hours"`
	FollowUpScheduleDays []int   `json:"follow_up_schedule_days"`
}

// LearningFeedback reports how a negotiation went so the backend can learn.
type LearningFeedback struct {
	ItemName      string  `json:"item_name"`
	OriginalPrice float64 `json:"original_price"`
	OfferedPrice  float64 `json:"offered_price"`
	StrategyUsed  Method  `json:"strategy_used"`
	Outcome       Outcome `json:"outcome"`
}

type analyzeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	AnalysisResult
}

type trendsResponse struct {
	Success bool       `json:"success"`
	Error   string     `json:"error,omitempty"`
	Trends  *TrendInfo `json:"trends"`
}

type errorResponse struct {
	Error string `json:"error"`
}
