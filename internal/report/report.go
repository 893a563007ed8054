package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Simplici0/lavender/internal/money"
	"github.com/Simplici0/lavender/internal/pricing"
)

// TierView is one tier formatted for display.
type TierView struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Price       string `json:"price"`
	PriceTTC    string `json:"price_ttc"`
	Revenue     string `json:"revenue"`
	Profit      string `json:"profit"`
	MarginLabel string `json:"margin_label"`
}

// View is a quote formatted for display.
type View struct {
	Currency    string     `json:"currency"`
	TotalCost   string     `json:"total_cost"`
	CostPerUnit string     `json:"cost_per_unit"`
	Units       string     `json:"units"`
	Materials   string     `json:"materials"`
	Production  string     `json:"production"`
	Overhead    string     `json:"overhead"`
	Labour      string     `json:"labour"`
	Tiers       []TierView `json:"tiers"`
}

// NewView formats every amount of q with f.
func NewView(q pricing.Quote, f *money.Formatter) View {
	v := View{
		Currency:    money.Code,
		TotalCost:   f.Format(q.Costs.TotalCost),
		CostPerUnit: f.Format(q.Costs.CostPerUnitOut),
		Units:       fmt.Sprintf("%d", q.Inputs.NumUnits),
		Materials:   f.Format(q.Costs.MaterialsTotal),
		Production:  f.Format(q.Costs.ProductionTotal),
		Overhead:    f.Format(q.Costs.OverheadTotal),
		Labour:      f.Format(q.Costs.LabourTotal),
		Tiers:       make([]TierView, 0, len(q.Tiers)),
	}

	for _, t := range q.Tiers {
		v.Tiers = append(v.Tiers, TierView{
			ID:          string(t.ID),
			Label:       t.Label,
			Price:       f.Format(t.PriceHT),
			PriceTTC:    "TTC: " + f.Format(t.PriceTTC),
			Revenue:     f.Format(t.Meta.TotalRevenue),
			Profit:      f.Format(t.Meta.Profit),
			MarginLabel: marginLabel(t),
		})
	}

	return v
}

// The custom tier's margin follows its price, so it is shown as approximate.
func marginLabel(t pricing.PriceTier) string {
	if t.MarginPercent == nil {
		return fmt.Sprintf("Margin: ~%.0f%%", t.DerivedMarginPercent)
	}
	return fmt.Sprintf("Margin: %.0f%%", *t.MarginPercent)
}

// WriteText writes v as a plain-text breakdown table.
func WriteText(w io.Writer, v View) error {
	var b strings.Builder

	b.WriteString("Costs\n")
	b.WriteString("-----\n")
	fmt.Fprintf(&b, "  %-16s %14s\n", "Materials", v.Materials)
	fmt.Fprintf(&b, "  %-16s %14s\n", "Production", v.Production)
	fmt.Fprintf(&b, "  %-16s %14s\n", "Overhead", v.Overhead)
	fmt.Fprintf(&b, "  %-16s %14s\n", "Total cost", v.TotalCost)
	fmt.Fprintf(&b, "  %-16s %14s\n", "Units", v.Units)
	fmt.Fprintf(&b, "  %-16s %14s\n", "Cost per unit", v.CostPerUnit)
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-24s %12s %18s %14s %14s  %s\n", "Tier", "Price (HT)", "Price (TTC)", "Revenue (HT)", "Profit (HT)", "Margin")
	fmt.Fprintf(&b, "%-24s %12s %18s %14s %14s  %s\n",
		strings.Repeat("-", 24), strings.Repeat("-", 12), strings.Repeat("-", 18), strings.Repeat("-", 14), strings.Repeat("-", 14), strings.Repeat("-", 12))
	for _, t := range v.Tiers {
		fmt.Fprintf(&b, "%-24s %12s %18s %14s %14s  %s\n", t.Label, t.Price, t.PriceTTC, t.Revenue, t.Profit, t.MarginLabel)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
