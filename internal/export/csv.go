package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comparison-cli/internal/report"
)

// WriteCSV writes the feature table.
func WriteCSV(w io.Writer, r *report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(FeatureRows(r)); err != nil {
		return eris.Wrap(err, "export: write csv")
	}
	return nil
}

// WriteScoresCSV writes the scorecard table.
func WriteScoresCSV(w io.Writer, r *report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(ScoreRows(r)); err != nil {
		return eris.Wrap(err, "export: write scores csv")
	}
	return nil
}
