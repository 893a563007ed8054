package pricing

// TierID identifies one of the five pricing strategies.
type TierID string

const (
	TierBreakEven TierID = "BreakEven"
	TierBudget    TierID = "Budget"
	TierStandard  TierID = "Standard"
	TierPremium   TierID = "Premium"
	TierCustom    TierID = "Custom"
)

// PriceTier is one suggested sale price together with what it earns.
// MarginPercent is nil for the custom tier, whose margin is derived from its price.
type PriceTier struct {
	ID                   TierID    `json:"id"`
	Label                string    `json:"label"`
	MarginPercent        *float64  `json:"margin_percent"`
	DerivedMarginPercent float64   `json:"derived_margin_percent"`
	PriceHT              float64   `json:"price_ht"`
	PriceTTC             float64   `json:"price_ttc"`
	Meta                 PriceMeta `json:"meta"`
}

type marginTier struct {
	id     TierID
	label  string
	margin float64
}

var marginTiers = []marginTier{
	{id: TierBreakEven, label: "Break-even", margin: 0},
	{id: TierBudget, label: "Budget (25% margin)", margin: 25},
	{id: TierStandard, label: "Standard (50% margin)", margin: 50},
	{id: TierPremium, label: "Premium (100% margin)", margin: 100},
}

const customTierLabel = "Custom (desired)"

// Quote is the complete result of one computation pass.
type Quote struct {
	Inputs      CostInputs    `json:"inputs"`
	CustomPrice float64       `json:"custom_price"`
	Costs       CostBreakdown `json:"costs"`
	Tiers       []PriceTier   `json:"tiers"`
}

// NewQuote computes costs and all five tiers for the given inputs.
func NewQuote(in CostInputs, customPrice float64) Quote {
	costs := ComputeCosts(in)
	return Quote{
		Inputs:      in,
		CustomPrice: customPrice,
		Costs:       costs,
		Tiers:       BuildTiers(in.NumUnits, costs, customPrice),
	}
}

// BuildTiers returns BreakEven, Budget, Standard, Premium and Custom, in that order.
func BuildTiers(numUnits int, costs CostBreakdown, customPrice float64) []PriceTier {
	tiers := make([]PriceTier, 0, len(marginTiers)+1)

	for _, mt := range marginTiers {
		margin := mt.margin
		price := ComputeTierRoundedByTTC(costs.CostPerUnitOut, margin, RoundingStep)
		tiers = append(tiers, PriceTier{
			ID:                   mt.id,
			Label:                mt.label,
			MarginPercent:        &margin,
			DerivedMarginPercent: margin,
			PriceHT:              price.HT,
			PriceTTC:             price.TTC,
			Meta:                 ComputePriceMeta(price.HT, numUnits, costs.TotalCost),
		})
	}

	custom := CustomTierPrice(customPrice)
	tiers = append(tiers, PriceTier{
		ID:                   TierCustom,
		Label:                customTierLabel,
		DerivedMarginPercent: DerivedMarginPercent(custom.HT, costs.CostPerUnitOut),
		PriceHT:              custom.HT,
		PriceTTC:             custom.TTC,
		Meta:                 ComputePriceMeta(custom.HT, numUnits, costs.TotalCost),
	})

	return tiers
}

// Tier returns the tier with the given id.
func (q Quote) Tier(id TierID) (PriceTier, bool) {
	for _, t := range q.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return PriceTier{}, false
}
