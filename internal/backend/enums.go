package backend

// SellerMotivation classifies why the seller appears to be selling.
type SellerMotivation int

const (
	// SellerUnknown covers any value the backend sends that isn't listed below.
	SellerUnknown SellerMotivation = iota
	MotivatedSeller
	TestingMarket
	FirmOnPrice
	TypicalSeller
)

var sellerMotivationNames = map[SellerMotivation]string{
	MotivatedSeller: "motivated_seller",
	TestingMarket:   "testing_market",
	FirmOnPrice:     "firm_on_price",
	TypicalSeller:   "typical_seller",
}

func (m SellerMotivation) String() string {
	if name, ok := sellerMotivationNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m SellerMotivation) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SellerMotivation) UnmarshalText(text []byte) error {
	*m = parseEnum(string(text), sellerMotivationNames, SellerUnknown)
	return nil
}

// DemandLevel is the backend's demand tier for a recognised brand.
type DemandLevel int

const (
	DemandUnknown DemandLevel = iota
	DemandLuxury
	DemandHigh
	DemandMedium
	DemandLow
	DemandTrend
)

var demandLevelNames = map[DemandLevel]string{
	DemandLuxury: "luxury",
	DemandHigh:   "high",
	DemandMedium: "medium",
	DemandLow:    "low",
	DemandTrend:  "trend",
}

func (d DemandLevel) String() string {
	if name, ok := demandLevelNames[d]; ok {
		return name
	}
	return "unknown"
}

func (d DemandLevel) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DemandLevel) UnmarshalText(text []byte) error {
	*d = parseEnum(string(text), demandLevelNames, DemandUnknown)
	return nil
}

// MarketPosition says how the listing price compares to the market.
type MarketPosition int

const (
	PositionUnknown MarketPosition = iota
	PositionOverpriced
	PositionUnderpriced
	PositionFair
)

var marketPositionNames = map[MarketPosition]string{
	PositionOverpriced:  "overpriced",
	PositionUnderpriced: "underpriced",
	PositionFair:        "fair",
}

func (p MarketPosition) String() string {
	if name, ok := marketPositionNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p MarketPosition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *MarketPosition) UnmarshalText(text []byte) error {
	*p = parseEnum(string(text), marketPositionNames, PositionUnknown)
	return nil
}

// PriceTrend is the direction of recent market prices.
type PriceTrend int

const (
	TrendUnknown PriceTrend = iota
	TrendRising
	TrendDeclining
	TrendStable
)

var priceTrendNames = map[PriceTrend]string{
	TrendRising:    "rising",
	TrendDeclining: "declining",
	TrendStable:    "stable",
}

func (t PriceTrend) String() string {
	if name, ok := priceTrendNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t PriceTrend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PriceTrend) UnmarshalText(text []byte) error {
	*t = parseEnum(string(text), priceTrendNames, TrendUnknown)
	return nil
}

func parseEnum[T comparable](s string, names map[T]string, fallback T) T {
	for v, name := range names {
		if name == s {
			return v
		}
	}
	return fallback
}

// Method is the negotiation approach recommended by the backend. The set is
// open-ended so it stays a string; the constants name the ones the client
// treats specially.
type Method string

const (
	MethodQuickOffer      Method = "Quick Offer"
	MethodStandardOffer   Method = "Standard Offer"
	MethodDirectMessage   Method = "Direct Message"
	MethodConfidentOffer  Method = "Confident Offer"
	MethodPatientApproach Method = "Patient Approach"
	MethodWatchAndWait    Method = "Watch and Wait"
)

// Outcome is what happened after the user acted on a strategy.
type Outcome string

const (
	OutcomeAccepted   Outcome = "accepted"
	OutcomeCountered  Outcome = "countered"
	OutcomeRejected   Outcome = "rejected"
	OutcomeNoResponse Outcome = "no_response"
)

// Outcomes lists the outcomes offered to the user, in display order.
var Outcomes = []Outcome{OutcomeAccepted, OutcomeCountered, OutcomeRejected, OutcomeNoResponse}
