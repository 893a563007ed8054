package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/lavender/internal/chart"
	"github.com/Simplici0/lavender/internal/input"
	"github.com/Simplici0/lavender/internal/report"
)

func interactiveCmd(opts *globalOptions) *cobra.Command {
	var chartsDir string

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Edit inputs line by line (field=value, reset, quit) and reprice on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaults, err := opts.formDefaults()
			if err != nil {
				return err
			}

			var manager *chart.Manager
			if chartsDir != "" {
				manager, err = newChartManager(chartsDir)
				if err != nil {
					return err
				}
			}

			return runInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), input.Blank().Merge(defaults), manager, opts)
		},
	}

	cmd.Flags().StringVar(&chartsDir, "charts-dir", "", "keep Chart.js configurations for the current inputs in this directory")
	return cmd
}

func runInteractive(in io.Reader, out io.Writer, form input.Form, manager *chart.Manager, opts *globalOptions) error {
	render := func() error {
		q := form.Quote()
		if manager != nil {
			if err := replaceCharts(manager, q, opts.logger); err != nil {
				return err
			}
		}
		if err := report.WriteText(out, report.NewView(q, opts.formatter)); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err
	}

	if err := render(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		case line == "reset":
			form = input.Blank()
		default:
			field, value, ok := strings.Cut(line, "=")
			if !ok {
				fmt.Fprintf(out, "expected field=value, reset or quit, got %q\n", line)
				continue
			}
			next, known := form.Set(strings.TrimSpace(field), value)
			if !known {
				fmt.Fprintf(out, "unknown field %q (fields: %s)\n", strings.TrimSpace(field), strings.Join(input.Fields, ", "))
				continue
			}
			form = next
			opts.logger.Debug("input changed", zap.String("field", strings.TrimSpace(field)))
		}

		if err := render(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
