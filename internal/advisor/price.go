package advisor

import (
	"fmt"
	"strconv"
)

// PriceTier describes the absolute price range of a listing.
type PriceTier int

const (
	TierStandard PriceTier = iota
	TierHighValue
	TierBudget
)

func (t PriceTier) String() string {
	switch t {
	case TierHighValue:
		return "high-value, research thoroughly"
	case TierBudget:
		return "budget item, quick negotiations work"
	default:
		return "standard price range"
	}
}

// PriceIndicator classifies an asking price on its own.
func PriceIndicator(price float64) PriceTier {
	switch {
	case price > 100:
		return TierHighValue
	case price < 10:
		return TierBudget
	default:
		return TierStandard
	}
}

// PriceBand says where an asking price sits relative to the market price.
type PriceBand int

const (
	BandNearMarket PriceBand = iota
	BandOverpriced
	BandAboveMarket
	BandBelowMarket
	BandGreatDeal
)

func (b PriceBand) String() string {
	switch b {
	case BandOverpriced:
		return "overpriced"
	case BandAboveMarket:
		return "above market"
	case BandBelowMarket:
		return "below market"
	case BandGreatDeal:
		return "great deal"
	default:
		return "close to market average"
	}
}

// PriceIndicatorVsMarket bands the percentage difference between userPrice
// and marketPrice. Only differences strictly beyond ±20% count as far off, so
// exactly +20% is above market and exactly -20% is below market.
// The ±10% edges are asymmetric: exactly +10% is already above market (110
// against 100 must read "above market"), while exactly -10% stays close to
// the market average. Without a positive market price there is nothing to
// compare against.
func PriceIndicatorVsMarket(userPrice, marketPrice float64) PriceBand {
	if marketPrice <= 0 {
		return BandNearMarket
	}

	diff := (userPrice - marketPrice) / marketPrice * 100
	switch {
	case diff > 20:
		return BandOverpriced
	case diff >= 10:
		return BandAboveMarket
	case diff < -20:
		return BandGreatDeal
	case diff < -10:
		return BandBelowMarket
	default:
		return BandNearMarket
	}
}

// Savings describes how much the suggested offer saves on the asking price.
func Savings(askingPrice, offerPrice, discountPercent float64) (string, bool) {
	saved := askingPrice - offerPrice
	if saved <= 0 {
		return "Item is well-priced", false
	}
	return fmt.Sprintf("£%.2f (%s%%)", saved, strconv.FormatFloat(discountPercent, 'f', -1, 64)), true
}
