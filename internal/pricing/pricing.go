package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// TaxMultiplier converts a tax-exclusive (HT) price into a tax-inclusive (TTC) one.
	TaxMultiplier = 1.20
	// RoundingStep is the currency step every TTC suggestion is rounded to.
	RoundingStep = 0.10
)

var (
	hundred = decimal.NewFromInt(100)
	taxRate = decimal.NewFromFloat(TaxMultiplier)
)

// CostInputs holds the already-normalized numeric inputs of one computation.
type CostInputs struct {
	CostPerUnit       float64 `json:"cost_per_unit"`
	ShippingMaterials float64 `json:"shipping_materials"`
	NumUnits          int     `json:"num_units"`
	TimeHours         float64 `json:"time_hours"`
	HourlyRate        float64 `json:"hourly_rate"`
	DesignHours       float64 `json:"design_hours"`
	CommsHours        float64 `json:"comms_hours"`
	ShippingHours     float64 `json:"shipping_hours"`
}

// CostBreakdown contains the cost categories derived from CostInputs.
type CostBreakdown struct {
	MaterialsTotal  float64 `json:"materials_total"`
	ProductionTotal float64 `json:"production_total"`
	OverheadTotal   float64 `json:"overhead_total"`
	LabourTotal     float64 `json:"labour_total"`
	TotalCost       float64 `json:"total_cost"`
	CostPerUnitOut  float64 `json:"cost_per_unit_out"`
}

// TierPrice is a tax-exclusive/tax-inclusive price pair.
type TierPrice struct {
	HT  float64 `json:"ht"`
	TTC float64 `json:"ttc"`
}

// PriceMeta summarizes what selling every unit at one price yields.
type PriceMeta struct {
	TotalRevenue float64 `json:"total_revenue"`
	Profit       float64 `json:"profit"`
	MarginOnCost float64 `json:"margin_on_cost"`
}

// ComputeCosts aggregates materials and labour into a full cost breakdown.
func ComputeCosts(in CostInputs) CostBreakdown {
	units := float64(in.NumUnits)

	materialsTotal := in.CostPerUnit*units + in.ShippingMaterials
	productionTotal := in.TimeHours * in.HourlyRate
	overheadTotal := (in.DesignHours + in.CommsHours + in.ShippingHours) * in.HourlyRate
	labourTotal := productionTotal + overheadTotal
	totalCost := materialsTotal + labourTotal

	costPerUnitOut := 0.0
	if in.NumUnits > 0 {
		costPerUnitOut = totalCost / units
	}

	return CostBreakdown{
		MaterialsTotal:  materialsTotal,
		ProductionTotal: productionTotal,
		OverheadTotal:   overheadTotal,
		LabourTotal:     labourTotal,
		TotalCost:       totalCost,
		CostPerUnitOut:  costPerUnitOut,
	}
}

// PriceWithMargin applies a margin, expressed in percent of cost, to a unit cost.
func PriceWithMargin(costPerUnit, marginPercent float64) float64 {
	return costPerUnit * (1 + marginPercent/100)
}

// PriceWithOptionalMargin is PriceWithMargin where a missing margin counts as zero.
func PriceWithOptionalMargin(costPerUnit float64, marginPercent *float64) float64 {
	if marginPercent == nil {
		return PriceWithMargin(costPerUnit, 0)
	}
	return PriceWithMargin(costPerUnit, *marginPercent)
}

// RoundToNearest rounds value to the nearest multiple of step, halves away from zero.
// A step <= 0 disables rounding.
func RoundToNearest(value, step float64) float64 {
	if step <= 0 || !finite(value) || !finite(step) {
		return value
	}
	return roundDecimal(decimal.NewFromFloat(value), decimal.NewFromFloat(step)).InexactFloat64()
}

// ComputeTierRoundedByTTC prices a unit at the given margin, rounds the tax-inclusive
// price to roundingStep and derives the tax-exclusive price back from it.
func ComputeTierRoundedByTTC(baseCostPerUnit, marginPercent, roundingStep float64) TierPrice {
	htPrice := PriceWithMargin(baseCostPerUnit, marginPercent)
	ttcPrice := toDecimal(htPrice).Mul(taxRate)

	roundedTTC := ttcPrice
	if roundingStep > 0 && finite(roundingStep) {
		roundedTTC = roundDecimal(ttcPrice, decimal.NewFromFloat(roundingStep))
	}
	derivedHT := roundedTTC.Div(taxRate)

	return TierPrice{
		HT:  derivedHT.InexactFloat64(),
		TTC: roundedTTC.InexactFloat64(),
	}
}

// ComputePriceMeta returns revenue, profit and margin-on-cost for selling numUnits at pricePerUnit.
func ComputePriceMeta(pricePerUnit float64, numUnits int, totalCost float64) PriceMeta {
	totalRevenue := pricePerUnit * float64(numUnits)
	profit := totalRevenue - totalCost

	marginOnCost := 0.0
	if totalCost > 0 {
		marginOnCost = (profit / totalCost) * 100
	}

	return PriceMeta{
		TotalRevenue: totalRevenue,
		Profit:       profit,
		MarginOnCost: marginOnCost,
	}
}

// CustomTierPrice turns a desired tax-exclusive price into a tier price.
// Unlike the margin tiers, HT is kept as given and only TTC is rounded.
func CustomTierPrice(customPrice float64) TierPrice {
	ht := customPrice
	if !(ht > 0) || math.IsInf(ht, 1) {
		ht = 0
	}
	ttc := roundDecimal(decimal.NewFromFloat(ht).Mul(taxRate), decimal.NewFromFloat(RoundingStep))

	return TierPrice{HT: ht, TTC: ttc.InexactFloat64()}
}

// DerivedMarginPercent reports the whole-percent margin a price represents over costPerUnit.
// Halves round up, so -12.5 gives -12.
func DerivedMarginPercent(priceHT, costPerUnit float64) float64 {
	if costPerUnit == 0 {
		return 0
	}
	return math.Floor(((priceHT-costPerUnit)/costPerUnit)*100 + 0.5)
}

func roundDecimal(value, step decimal.Decimal) decimal.Decimal {
	return value.Div(step).Round(0).Mul(step)
}

func toDecimal(v float64) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
