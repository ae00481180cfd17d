package session

import (
	"github.com/Spoonthedogl/vinted-deal-finger/internal/advisor"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
)

// View is everything the presentation layer shows for one analysis. It is
// plain data; nothing in it refers back to the controller.
type View struct {
	SessionID string

	ItemName    string
	AskingPrice float64
	MarketPrice float64
	PriceTier   advisor.PriceTier
	PriceBand   advisor.PriceBand

	Savings         string
	SavingsPositive bool

	Method          backend.Method
	MethodIcon      string
	OfferPrice      float64
	DiscountPercent float64
	Confidence      int
	ConfidenceStars string
	Probability     int
	ProbabilityLvl  advisor.Level

	Strength    int
	StrengthLvl advisor.Level
	SellerType  string
	SellerBadge string

	Rationale        string
	MarketComparison string
	SellerInsights   string
	TrendInsights    string

	// Brand is nil unless the backend recognised the brand.
	Brand *BrandView

	Message       string
	Tone          advisor.Tone
	Effectiveness advisor.Effectiveness

	ProTips      []string
	MarketAdvice []string // empty without trend data
	Timing       *backend.TimingInfo
}

type BrandView struct {
	Name             string
	Tier             string
	BaseValue        float64
	DepreciationRate float64
}

// BuildView runs the advisory rules over result.
func BuildView(input backend.ListingInput, result *backend.AnalysisResult) View {
	strategy := result.Strategy
	analysis := result.Analysis

	savings, positive := advisor.Savings(input.Price, strategy.OfferPrice, strategy.DiscountPercent)
	probability := advisor.ProbabilityFromConfidence(strategy.Confidence)

	v := View{
		ItemName:    input.ItemName,
		AskingPrice: input.Price,
		MarketPrice: result.MarketPrice,
		PriceTier:   advisor.PriceIndicator(input.Price),
		PriceBand:   advisor.PriceIndicatorVsMarket(input.Price, result.MarketPrice),

		Savings:         savings,
		SavingsPositive: positive,

		Method:          strategy.Method,
		MethodIcon:      advisor.MethodIcon(strategy.Method),
		OfferPrice:      strategy.OfferPrice,
		DiscountPercent: strategy.DiscountPercent,
		Confidence:      strategy.Confidence,
		ConfidenceStars: advisor.ConfidenceStars(strategy.Confidence),
		Probability:     probability,
		ProbabilityLvl:  advisor.ProbabilityClass(probability),

		Strength:    analysis.NegotiationStrength,
		StrengthLvl: advisor.StrengthClass(analysis.NegotiationStrength),
		SellerType:  advisor.FormatSellerType(analysis.SellerMotivation),
		SellerBadge: advisor.SellerBadge(analysis.SellerMotivation),

		Rationale:        result.Rationale(),
		MarketComparison: result.Insights.MarketComparison,
		SellerInsights:   result.Insights.SellerInsights,
		TrendInsights:    result.Insights.TrendInsights,

		Message:       strategy.Message,
		Tone:          advisor.AnalyzeTone(strategy.Message),
		Effectiveness: advisor.AnalyzeEffectiveness(strategy.Message),

		ProTips: advisor.GenerateProTips(result, input),
	}

	if b := analysis.BrandInfo; b.Known() {
		v.Brand = &BrandView{
			Name:             b.Brand,
			Tier:             advisor.FormatBrandTier(b.DemandLevel),
			BaseValue:        b.BaseValue,
			DepreciationRate: b.DepreciationRate,
		}
	}

	if trends := result.Trends(); trends != nil {
		v.MarketAdvice = advisor.GenerateMarketAdvice(*trends)
	}
	if result.EnhancedFeatures != nil {
		v.Timing = result.EnhancedFeatures.TimingAnalysis
	}

	return v
}
