package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/lavender/internal/config"
	"github.com/Simplici0/lavender/internal/logging"
	"github.com/Simplici0/lavender/internal/money"
)

type globalOptions struct {
	locale       string
	defaultsFile string
	logLevel     string

	logger    *zap.Logger
	formatter *money.Formatter
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:          "lavender",
		Short:        "Price handmade product batches from material and labour costs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = logging.NewWithWriter(logging.Config{Level: opts.logLevel, Format: "console"}, cmd.ErrOrStderr())
			opts.formatter = money.NewFormatter(opts.locale)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "en", "locale used to format amounts")
	rootCmd.PersistentFlags().StringVar(&opts.defaultsFile, "defaults-file", os.Getenv("DEFAULTS_FILE"), "YAML file of default form values")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(quoteCmd(opts))
	rootCmd.AddCommand(interactiveCmd(opts))
	rootCmd.AddCommand(defaultsCmd(opts))

	return rootCmd
}

func (o *globalOptions) formDefaults() (map[string]string, error) {
	return config.LoadFormDefaults(o.defaultsFile)
}
