package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comparison-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "comparison-cli",
	Short:        "Competitor comparison reports and scoring",
	Long:         "Builds feature comparisons against competitors, rolls features up into hubs and modules, scores each competitor, and stores scoring runs.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "comparison-cli: load config")
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			c.Log.Level = level
		}
		cfg = c

		return eris.Wrap(config.InitLogger(cfg.Log), "comparison-cli: init logger")
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "override log.level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
