package advisor

import "github.com/Spoonthedogl/vinted-deal-finger/internal/backend"

const (
	TipOverpriced     = "💡 This item is overpriced - you have strong negotiating power!"
	TipUnderpriced    = "⚠️ This is already a good deal - don't push too hard on price."
	TipOldListing     = "⏰ Old listings often mean motivated sellers - mention the listing age."
	TipNewListing     = "🆕 For new listings, consider waiting a few days if not urgent."
	TipNoInterest     = "🎯 No other interest gives you negotiating power - be confident!"
	TipHighInterest   = "🏃‍♂️ High interest means act quickly with a reasonable offer."
	TipWatchAndWait   = "👀 Patience pays off - favorite the item and monitor for changes."
	TipDirectMessage  = "💬 Personal messages work better than automated offers for this situation."
	TipBePolite       = "🤝 Always be polite and respectful - it goes a long way!"
	TipRespondQuickly = "📱 Respond quickly if the seller counters your offer."
	oldListingDays    = 30
	newListingDays    = 2
	highInterestCount = 10
)

// GenerateProTips returns situational tips for a listing followed by the two
// general tips. Tips appear in rule order; at most one tip per rule group.
func GenerateProTips(result *backend.AnalysisResult, input backend.ListingInput) []string {
	var tips []string

	switch result.Analysis.MarketPosition {
	case backend.PositionOverpriced:
		tips = append(tips, TipOverpriced)
	case backend.PositionUnderpriced:
		tips = append(tips, TipUnderpriced)
	}

	if input.DaysListed > oldListingDays {
		tips = append(tips, TipOldListing)
	} else if input.DaysListed <= newListingDays {
		tips = append(tips, TipNewListing)
	}

	if input.InterestedCount == 0 {
		tips = append(tips, TipNoInterest)
	} else if input.InterestedCount > highInterestCount {
		tips = append(tips, TipHighInterest)
	}

	switch result.Strategy.Method {
	case backend.MethodWatchAndWait:
		tips = append(tips, TipWatchAndWait)
	case backend.MethodDirectMessage:
		tips = append(tips, TipDirectMessage)
	}

	return append(tips, TipBePolite, TipRespondQuickly)
}

const (
	AdviceBuyersMarket      = "📉 Prices are declining - it's a buyer's market."
	AdviceOfferBelow        = "💰 Offer below asking; the seller may struggle to get their price."
	AdviceSellersMarket     = "📈 Prices are rising - it's a seller's market."
	AdviceOfferNearAsking   = "🤝 Offer close to the asking price to stay competitive."
	AdviceStableMarket      = "➡️ Prices are stable - a standard offer should work."
	AdviceHighDemand        = "🔥 Demand is surging for this item."
	AdviceActQuickly        = "⚡ Act quickly - good listings won't last long."
	AdviceLowDemand         = "🧊 Demand is low for this item."
	AdviceLowerOffer        = "💸 Low demand gives you room for a lower offer."
	AdvicePeakSeason        = "🌞 It's peak season - expect higher prices."
	AdvicePeakSeasonWait    = "📅 Consider waiting for the off-season if you're not in a hurry."
	AdviceOffSeason         = "❄️ It's the off-season - a good time to buy."
	AdviceOffSeasonLeverage = "🎯 Sellers have fewer buyers now; use that in your offer."
	AdviceHighConfidence    = "✅ Trend data comes from multiple sources - high confidence."
	AdviceLimitedData       = "ℹ️ Limited trend data available - treat this advice as a rough guide."

	lowHypeScore        = 0.3
	peakSeasonFactor    = 1.1
	offSeasonFactor     = 0.9
	confidentDataSource = 2
)

// GenerateMarketAdvice narrates trend data. Exactly one trend branch and one
// data-confidence note always fire; the demand and seasonal groups fire at
// most one branch each.
func GenerateMarketAdvice(trends backend.TrendInfo) []string {
	var advice []string

	switch trends.PriceTrend {
	case backend.TrendDeclining:
		advice = append(advice, AdviceBuyersMarket, AdviceOfferBelow)
	case backend.TrendRising:
		advice = append(advice, AdviceSellersMarket, AdviceOfferNearAsking)
	default:
		advice = append(advice, AdviceStableMarket)
	}

	if trends.DemandSurge {
		advice = append(advice, AdviceHighDemand, AdviceActQuickly)
	} else if trends.HypeScore < lowHypeScore {
		advice = append(advice, AdviceLowDemand, AdviceLowerOffer)
	}

	if trends.SeasonalFactor > peakSeasonFactor {
		advice = append(advice, AdvicePeakSeason, AdvicePeakSeasonWait)
	} else if trends.SeasonalFactor < offSeasonFactor {
		advice = append(advice, AdviceOffSeason, AdviceOffSeasonLeverage)
	}

	if trends.DataSources >= confidentDataSource {
		advice = append(advice, AdviceHighConfidence)
	} else {
		advice = append(advice, AdviceLimitedData)
	}

	return advice
}
