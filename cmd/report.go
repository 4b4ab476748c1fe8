package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comparison-cli/internal/export"
	"github.com/sells-group/comparison-cli/internal/fetcher"
	"github.com/sells-group/comparison-cli/internal/format"
	"github.com/sells-group/comparison-cli/internal/model"
	"github.com/sells-group/comparison-cli/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a comparison report for one section",
	Long:  "Loads a section snapshot from a file or the data API, builds the comparison, and writes it as a table, JSON, CSV, or XLSX.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("report"); err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		section, _ := cmd.Flags().GetString("section")
		org, _ := cmd.Flags().GetString("org")
		formatName, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		save, _ := cmd.Flags().GetBool("save")

		opts := reportOptions(cmd)
		if err := checkFormat(formatName, output); err != nil {
			return err
		}

		var (
			vm  *model.ViewModel
			err error
		)
		switch {
		case file != "" && section != "":
			return eris.New("report: --file and --section are mutually exclusive")
		case file != "":
			vm, err = fetcher.LoadFile(file)
		case section != "":
			src, closeSrc, serr := initSource(ctx)
			if serr != nil {
				return serr
			}
			defer closeSrc()
			vm, err = src.Fetch(ctx, fetcher.SectionRequest{
				SectionID:      section,
				OrganizationID: org,
				PlanID:         opts.PlanID,
				CompetitorIDs:  opts.CompetitorIDs,
			})
		default:
			return eris.New("report: one of --file or --section is required")
		}
		if err != nil {
			return err
		}

		rep := report.NewBuilder(&cfg.Scoring.Weights).Build(vm, opts)

		if save {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			sectionID := section
			if sectionID == "" {
				sectionID = file
			}
			run := rep.Run(sectionID)
			if err := st.SaveRun(ctx, run); err != nil {
				return eris.Wrap(err, "report: save run")
			}
			zap.L().Info("saved run", zap.String("id", run.ID), zap.String("section_id", sectionID))
		}

		return writeReport(rep, formatName, output)
	},
}

func reportOptions(cmd *cobra.Command) report.Options {
	plan, _ := cmd.Flags().GetString("plan")
	competitors, _ := cmd.Flags().GetStringSlice("competitors")
	query, _ := cmd.Flags().GetString("query")
	differences, _ := cmd.Flags().GetBool("differences")
	yearly, _ := cmd.Flags().GetBool("yearly")

	ids := make([]string, 0, len(competitors))
	for _, id := range competitors {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return report.Options{
		PlanID:          plan,
		CompetitorIDs:   ids,
		Query:           query,
		DifferencesOnly: differences,
		Yearly:          yearly,
	}
}

func checkFormat(name, output string) error {
	switch name {
	case "table", "json", "csv":
		return nil
	case "xlsx":
		if output == "" {
			return eris.New("report: --output is required for xlsx")
		}
		return nil
	default:
		return eris.Errorf("report: unknown format %q (table, json, csv, xlsx)", name)
	}
}

// writeReport renders rep to output, or stdout when output is empty.
func writeReport(rep *report.Report, formatName, output string) error {
	if formatName == "xlsx" {
		return export.WriteXLSX(output, rep)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrapf(err, "report: create %s", output)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch formatName {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "csv":
		return export.WriteCSV(w, rep)
	default:
		formatScorecards(w, rep)
		return nil
	}
}

// formatScorecards writes a tabular score summary to w.
func formatScorecards(out io.Writer, rep *report.Report) {
	plan := "-"
	if rep.Plan != nil {
		plan = rep.Plan.ID
	}
	m := rep.Metrics
	_, _ = fmt.Fprintf(out, "%s: plan %s, %d features, %d competitors\n",
		rep.SiteName, plan, len(rep.Features), m.CompetitorCount)
	_, _ = fmt.Fprintf(out, "%s advantage: %d of %d features, price range %s\n\n",
		rep.SiteName, m.AdvantageCount, m.FeatureCount, m.PriceRange(format.CurrencySymbol(rep.Currency)))

	if len(rep.Scorecards) == 0 {
		_, _ = fmt.Fprintln(out, "Scoring is disabled for this section.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPETITOR\tOVERALL\tCOVERAGE\tPRICE\tVALUE\tTRANSPARENCY\tINCLUDED\tPARTIAL\tTOTAL")
	_, _ = fmt.Fprintln(w, "----------\t-------\t--------\t-----\t-----\t------------\t--------\t-------\t-----")
	for _, sc := range rep.Scorecards {
		b, in := sc.Result.Breakdown, sc.Input
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.0f\t%.0f\t%d\t%d\t%d\n",
			sc.CompetitorName,
			sc.Result.Overall,
			b.FeatureCoverage, b.PriceCompetitiveness, b.ValueRatio, b.Transparency,
			in.IncludedFeatures, in.PartialFeatures, in.TotalFeatures,
		)
	}
	_ = w.Flush()
}

func init() {
	reportCmd.Flags().String("file", "", "path to a JSON or YAML section snapshot")
	reportCmd.Flags().String("section", "", "comparison section id to fetch from the data API")
	reportCmd.Flags().String("org", "", "organization id for the data API")
	reportCmd.Flags().String("plan", "", "our plan id to compare (default first plan)")
	reportCmd.Flags().StringSlice("competitors", nil, "competitor ids to include, in display order")
	reportCmd.Flags().String("query", "", "only show features matching this text")
	reportCmd.Flags().Bool("differences", false, "only show features some competitor lacks")
	reportCmd.Flags().Bool("yearly", false, "compare yearly prices")
	reportCmd.Flags().String("format", "table", "output format: table, json, csv, xlsx")
	reportCmd.Flags().String("output", "", "output file (default stdout; required for xlsx)")
	reportCmd.Flags().Bool("save", false, "persist the scorecards as a run")
	rootCmd.AddCommand(reportCmd)
}
