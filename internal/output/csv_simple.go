package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/taxwise/taxwise/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Scenario", "FiscalYear", "GrossIncome", "OldRegimeTax", "NewRegimeTax", "RecommendedRegime", "RecommendedTax", "PotentialSavings", "EffectiveRate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	comparisons := append([]domain.RegimeComparison(nil), report.Comparisons...)
	sort.Slice(comparisons, func(i, j int) bool { return comparisons[i].ScenarioName < comparisons[j].ScenarioName })

	for i := range comparisons {
		comp := &comparisons[i]
		recommended := comp.Recommended()
		row := []string{
			comp.ScenarioName,
			comp.FiscalYear,
			comp.OldRegime.GrossIncome.StringFixed(2),
			comp.OldRegime.TotalTaxLiability.StringFixed(2),
			comp.NewRegime.TotalTaxLiability.StringFixed(2),
			comp.RecommendedRegime,
			recommended.TotalTaxLiability.StringFixed(2),
			comp.PotentialSavings.StringFixed(2),
			recommended.EffectiveRate.StringFixed(4),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
