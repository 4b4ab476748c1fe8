// Package export writes comparison reports as CSV or XLSX.
package export

import (
	"strconv"
	"strings"

	"github.com/sells-group/comparison-cli/internal/format"
	"github.com/sells-group/comparison-cli/internal/model"
	"github.com/sells-group/comparison-cli/internal/report"
)

// FeatureRows flattens the hub tree into a header plus one row per hub
// record, module and feature. Module rows leave the feature column blank and
// carry the aggregated status per competitor, except leaf modules, which show
// their own record.
func FeatureRows(r *report.Report) [][]string {
	header := []string{"hub", "module", "feature"}
	for _, c := range r.Competitors {
		header = append(header, c.Name)
	}
	rows := [][]string{header}

	cells := func(f model.Feature) []string {
		out := make([]string, 0, len(r.Competitors))
		for _, c := range r.Competitors {
			out = append(out, CellText(r, c.ID, f))
		}
		return out
	}

	for _, hub := range r.Hierarchy.Hubs {
		if hub.Feature != nil {
			rows = append(rows, append([]string{hub.Name, "", hub.Feature.Name}, cells(*hub.Feature)...))
		}
		for _, m := range hub.Modules {
			row := []string{hub.Name, m.Name, ""}
			if len(m.Features) == 0 && m.Feature != nil {
				row = append(row, cells(*m.Feature)...)
			} else {
				for _, c := range r.Competitors {
					row = append(row, string(r.Hierarchy.StatusFor(hub.Name, m.Name, c.ID)))
				}
			}
			rows = append(rows, row)

			for _, f := range m.Features {
				rows = append(rows, append([]string{hub.Name, m.Name, f.Name}, cells(f)...))
			}
		}
	}
	return rows
}

// CellText renders one competitor's record for a feature. Missing records
// are blank; amounts are formatted in the report currency.
func CellText(r *report.Report, competitorID string, f model.Feature) string {
	cf, ok := r.Cell(competitorID, f)
	if !ok {
		return ""
	}

	text := string(cf.Status)
	if cf.Status == model.StatusAmount {
		if amount := format.FormatAmount(cf); amount != "" {
			text = amount
			if cf.EffectiveUnit() == model.UnitCurrency {
				text = format.CurrencySymbol(r.Currency) + amount
			}
		}
	}
	if cf.Status == model.StatusUnknown {
		text = ""
	}
	if cf.HasNote() {
		note := strings.TrimSpace(cf.Note)
		if text == "" {
			return note
		}
		text += " (" + note + ")"
	}
	return text
}

// ScoreRows renders one row per scorecard with the breakdown and inputs.
func ScoreRows(r *report.Report) [][]string {
	rows := [][]string{{
		"competitor", "overall",
		"feature_coverage", "price_competitiveness", "value_ratio", "transparency",
		"included", "partial", "paid", "custom", "total",
		"competitor_price", "our_price",
	}}
	for _, sc := range r.Scorecards {
		b, in := sc.Result.Breakdown, sc.Input
		rows = append(rows, []string{
			sc.CompetitorName,
			strconv.Itoa(sc.Result.Overall),
			num(b.FeatureCoverage), num(b.PriceCompetitiveness), num(b.ValueRatio), num(b.Transparency),
			strconv.Itoa(in.IncludedFeatures), strconv.Itoa(in.PartialFeatures),
			strconv.Itoa(in.PaidFeatures), strconv.Itoa(in.CustomFeatures), strconv.Itoa(in.TotalFeatures),
			format.FormatMoney(in.CompetitorPrice), format.FormatMoney(in.OurPrice),
		})
	}
	return rows
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
