package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/lavender/internal/chart"
	"github.com/Simplici0/lavender/internal/input"
	"github.com/Simplici0/lavender/internal/pricing"
	"github.com/Simplici0/lavender/internal/report"
)

// rawValues adapts flag text to input.Getter.
type rawValues map[string]string

func (v rawValues) Get(key string) string { return v[key] }

type quoteOutput struct {
	Quote pricing.Quote `json:"quote"`
	View  report.View   `json:"view"`
}

func quoteCmd(opts *globalOptions) *cobra.Command {
	values := make(map[string]*string, len(input.Fields))
	var (
		asJSON    bool
		fill      bool
		chartsDir string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute costs and the five price tiers for one batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw := make(rawValues, len(values))
			for field, value := range values {
				raw[field] = *value
			}

			form := input.Parse(raw)
			if fill {
				defaults, err := opts.formDefaults()
				if err != nil {
					return err
				}
				form = form.Merge(defaults)
			}

			q := form.Quote()
			opts.logger.Debug("quote computed",
				zap.Float64("total_cost", q.Costs.TotalCost),
				zap.Int("units", q.Inputs.NumUnits),
			)

			if chartsDir != "" {
				manager, err := newChartManager(chartsDir)
				if err != nil {
					return err
				}
				if err := replaceCharts(manager, q, opts.logger); err != nil {
					return err
				}
			}

			return writeQuote(cmd.OutOrStdout(), q, opts, asJSON)
		},
	}

	for _, field := range input.Fields {
		values[field] = cmd.Flags().String(field, "", fmt.Sprintf("%s value", field))
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the quote as JSON")
	cmd.Flags().BoolVar(&fill, "fill", false, "fill fields left unset from the default form values")
	cmd.Flags().StringVar(&chartsDir, "charts-dir", "", "write Chart.js configurations into this directory")

	return cmd
}

func writeQuote(w io.Writer, q pricing.Quote, opts *globalOptions, asJSON bool) error {
	view := report.NewView(q, opts.formatter)
	if !asJSON {
		return report.WriteText(w, view)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(quoteOutput{Quote: q, View: view}); err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	return nil
}

func newChartManager(dir string) (*chart.Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create charts directory: %w", err)
	}
	return chart.NewManager(chart.FileRenderer{Dir: dir}), nil
}

func replaceCharts(m *chart.Manager, q pricing.Quote, logger *zap.Logger) error {
	if err := m.Replace(chart.SlotStrategies, chart.Strategies(q)); err != nil {
		return err
	}
	if err := m.Replace(chart.SlotBreakdown, chart.Breakdown(q.Costs)); err != nil {
		return err
	}
	logger.Debug("charts replaced")
	return nil
}
