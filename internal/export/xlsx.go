package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/comparison-cli/internal/report"
)

// Sheet names in the XLSX workbook.
const (
	FeaturesSheet = "Features"
	ScoresSheet   = "Scores"
)

// WriteXLSX saves a workbook with a Features sheet and a Scores sheet.
func WriteXLSX(path string, r *report.Report) error {
	f := xlsx.NewFile()
	if err := addSheet(f, FeaturesSheet, FeatureRows(r)); err != nil {
		return err
	}
	if err := addSheet(f, ScoresSheet, ScoreRows(r)); err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addSheet(f *xlsx.File, name string, rows [][]string) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}
	for i, data := range rows {
		row := sheet.AddRow()
		for _, v := range data {
			cell := row.AddCell()
			cell.SetString(v)
			if i == 0 {
				cell.GetStyle().Font.Bold = true
			}
		}
	}
	return nil
}
