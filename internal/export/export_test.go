package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/comparison-cli/internal/model"
	"github.com/sells-group/comparison-cli/internal/report"
)

func fptr(v float64) *float64 { return &v }

func testReport(t *testing.T) *report.Report {
	t.Helper()

	vm := &model.ViewModel{
		SiteName: "Acme",
		Currency: "USD",
		OurFeatures: []model.Feature{
			{ID: "f1", Name: "SSO", PlanID: "pro", Hub: "Security", Module: "Access", Order: fptr(1)},
			{ID: "f2", Name: "SCIM", PlanID: "pro", Hub: "Security", Module: "Access", Order: fptr(2)},
			{ID: "f3", Name: "Seats", PlanID: "pro", Hub: "Pricing", Order: fptr(0)},
		},
		OurPricingPlans: []model.Plan{{ID: "pro", Price: 5000, Type: model.PlanTypeRecurring}},
		Competitors: []model.Competitor{
			{
				ID: "globex", Name: "Globex",
				Plans: []model.CompetitorPlan{{ID: "pro", Monthly: fptr(40)}},
				Features: []model.CompetitorFeature{
					{FeatureID: "f1", PlanID: "pro", Status: model.StatusAvailable},
					{FeatureID: "f2", PlanID: "pro", Status: model.StatusAmount, Amount: "1200", Unit: model.UnitCurrency, Note: " per year "},
					{FeatureID: "f3", PlanID: "pro", Status: model.StatusAmount, Amount: "25", Unit: "seats", Note: "minimum"},
				},
			},
			{
				ID: "initech", Name: "Initech",
				Features: []model.CompetitorFeature{
					{FeatureID: "f1", PlanID: "pro", Status: model.StatusUnavailable},
				},
			},
		},
		Config: model.SectionConfig{Scoring: model.ScoringConfig{Enabled: true}},
	}
	return report.NewBuilder(nil).Build(vm, report.Options{PlanID: "pro"})
}

func TestFeatureRows(t *testing.T) {
	t.Parallel()

	rows := FeatureRows(testReport(t))

	want := [][]string{
		{"hub", "module", "feature", "Globex", "Initech"},
		{"Pricing", "Seats", "", "25 seats (minimum)", ""},
		{"Security", "Access", "", "partial", "unavailable"},
		{"Security", "Access", "SSO", "available", "unavailable"},
		{"Security", "Access", "SCIM", "$1,200 (per year)", ""},
	}
	assert.Equal(t, want, rows)
}

func TestFeatureRows_LeafModuleRecord(t *testing.T) {
	t.Parallel()

	r := testReport(t)
	seats := model.Feature{ID: "f3", PlanID: "pro"}
	assert.Equal(t, "25 seats (minimum)", CellText(r, "globex", seats))

	rows := FeatureRows(r)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Pricing", "Seats", "", "25 seats (minimum)", ""}, rows[1],
		"a leaf module shows its own amount and note, and a missing record stays blank")
}

func TestCellText(t *testing.T) {
	t.Parallel()

	r := testReport(t)
	sso := model.Feature{ID: "f1", PlanID: "pro"}
	missing := model.Feature{ID: "nope", PlanID: "pro"}

	assert.Equal(t, "available", CellText(r, "globex", sso))
	assert.Equal(t, "", CellText(r, "globex", missing))
	assert.Equal(t, "", CellText(r, "umbrella", sso))
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testReport(t)))

	got, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "SCIM", got[4][2])
	assert.Equal(t, "$1,200 (per year)", got[4][3])
}

func TestWriteScoresCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteScoresCSV(&buf, testReport(t)))

	got, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "competitor", got[0][0])
	assert.Equal(t, "Globex", got[1][0])
	assert.Equal(t, "Initech", got[2][0])
	assert.Len(t, got[1], len(got[0]))
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, testReport(t)))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	features, ok := f.Sheet[FeaturesSheet]
	require.True(t, ok)
	require.Len(t, features.Rows, 5)
	assert.Equal(t, "Globex", features.Rows[0].Cells[3].String())
	assert.Equal(t, "SSO", features.Rows[3].Cells[2].String())

	scores, ok := f.Sheet[ScoresSheet]
	require.True(t, ok)
	require.Len(t, scores.Rows, 3)
	assert.Equal(t, "Initech", scores.Rows[2].Cells[0].String())
}

func TestWriteXLSX_BadPath(t *testing.T) {
	t.Parallel()

	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "report.xlsx"), testReport(t))
	assert.Error(t, err)
}
