package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/comparison-cli/internal/model"
	"github.com/sells-group/comparison-cli/internal/scorer"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show and validate the configured scoring weights",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cfg.Scoring.Weights
		formatWeights(os.Stdout, w)
		return scorer.ValidateWeights(w)
	},
}

// formatWeights writes each weight and the total to out.
func formatWeights(out io.Writer, weights model.ScoreWeights) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Feature coverage:\t%g\n", weights.FeatureCoverage)
	_, _ = fmt.Fprintf(w, "Price competitiveness:\t%g\n", weights.PriceCompetitiveness)
	_, _ = fmt.Fprintf(w, "Value ratio:\t%g\n", weights.ValueRatio)
	_, _ = fmt.Fprintf(w, "Transparency:\t%g\n", weights.Transparency)
	_, _ = fmt.Fprintf(w, "Total:\t%g\n", scorer.WeightSum(weights))
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(weightsCmd)
}
