// Package chart builds Chart.js configurations for a quote and manages their lifetime.
package chart

import (
	"math"

	"github.com/Simplici0/lavender/internal/pricing"
)

// Color is a fill/border pair.
type Color struct {
	Background string
	Border     string
}

// Palette used by both charts.
var (
	ColorMaterials  = Color{Background: "rgba(199,162,245,0.95)", Border: "rgba(167,139,250,1)"}
	ColorProduction = Color{Background: "rgba(147,51,234,0.95)", Border: "rgba(126,34,206,1)"}
	ColorOverhead   = Color{Background: "rgba(59,130,246,0.95)", Border: "rgba(37,99,235,1)"}
	ColorProfit     = Color{Background: "rgba(34,197,94,0.95)", Border: "rgba(22,163,74,1)"}
)

// Spec is a Chart.js chart configuration.
type Spec struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderColor     []string  `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
	Stack           string    `json:"stack,omitempty"`
}

type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Cutout              string  `json:"cutout,omitempty"`
	Plugins             Plugins `json:"plugins"`
	Scales              *Scales `json:"scales,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
}

type Legend struct {
	Position string `json:"position"`
}

type Scales struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
}

type Axis struct {
	Stacked bool `json:"stacked"`
}

const stackID = "stack0"

// Strategies compares the tiers as stacked bars of cost categories plus profit.
// Profit below zero is drawn as zero.
func Strategies(q pricing.Quote) Spec {
	labels := make([]string, 0, len(q.Tiers))
	profit := make([]float64, 0, len(q.Tiers))
	for _, t := range q.Tiers {
		labels = append(labels, t.Label)
		revenue := t.PriceHT * float64(q.Inputs.NumUnits)
		profit = append(profit, math.Max(0, revenue-q.Costs.TotalCost))
	}

	n := len(labels)
	return Spec{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{
				stacked("Materials", repeat(q.Costs.MaterialsTotal, n), ColorMaterials),
				stacked("Production", repeat(q.Costs.ProductionTotal, n), ColorProduction),
				stacked("Overhead", repeat(q.Costs.OverheadTotal, n), ColorOverhead),
				stacked("Profit", profit, ColorProfit),
			},
		},
		Options: Options{
			Responsive: true,
			Plugins:    Plugins{Legend: Legend{Position: "bottom"}},
			Scales:     &Scales{X: Axis{Stacked: true}, Y: Axis{Stacked: true}},
		},
	}
}

// Breakdown is a doughnut of the cost categories.
func Breakdown(costs pricing.CostBreakdown) Spec {
	colors := []Color{ColorMaterials, ColorProduction, ColorOverhead}
	ds := Dataset{
		Data:        []float64{costs.MaterialsTotal, costs.ProductionTotal, costs.OverheadTotal},
		BorderWidth: 1,
	}
	for _, c := range colors {
		ds.BackgroundColor = append(ds.BackgroundColor, c.Background)
		ds.BorderColor = append(ds.BorderColor, c.Border)
	}

	return Spec{
		Type: "doughnut",
		Data: Data{
			Labels:   []string{"Materials", "Production", "Overhead"},
			Datasets: []Dataset{ds},
		},
		Options: Options{
			Responsive: true,
			Cutout:     "65%",
			Plugins:    Plugins{Legend: Legend{Position: "bottom"}},
		},
	}
}

func stacked(label string, data []float64, c Color) Dataset {
	return Dataset{
		Label:           label,
		Data:            data,
		BackgroundColor: []string{c.Background},
		BorderColor:     []string{c.Border},
		BorderWidth:     1,
		Stack:           stackID,
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
