package output

import (
	"bytes"
	"encoding/csv"

	"github.com/taxwise/taxwise/internal/domain"
)

// DetailedCSVFormatter emits one row per slab, deduction line and summary
// figure so the full computation can be rebuilt in a spreadsheet.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Scenario", "Regime", "Section", "Label", "Rate", "Amount", "Tax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range report.Comparisons {
		comp := &report.Comparisons[i]

		if err := writeDeductionRows(w, comp.ScenarioName, &comp.OldRegime); err != nil {
			return nil, err
		}
		if err := writeRegimeRows(w, comp.ScenarioName, &comp.OldRegime); err != nil {
			return nil, err
		}
		if err := writeRegimeRows(w, comp.ScenarioName, &comp.NewRegime); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeDeductionRows(w *csv.Writer, scenario string, result *domain.RegimeResult) error {
	deductions := result.Deductions
	rows := []struct {
		label  string
		amount string
	}{
		{"Section 80C", deductions.Section80C.StringFixed(2)},
		{"Section 80D", deductions.Section80D.StringFixed(2)},
		{"HRA Exemption", deductions.HRA.StringFixed(2)},
		{"Standard Deduction", deductions.StandardDeduction.StringFixed(2)},
		{"Other", deductions.Other.StringFixed(2)},
		{"Total Deductions", deductions.Total().StringFixed(2)},
	}
	for _, row := range rows {
		if err := w.Write([]string{scenario, result.Regime, "deduction", row.label, "", row.amount, ""}); err != nil {
			return err
		}
	}
	return nil
}

func writeRegimeRows(w *csv.Writer, scenario string, result *domain.RegimeResult) error {
	for _, slab := range result.SlabContributions {
		row := []string{
			scenario,
			result.Regime,
			"slab",
			slab.Label,
			slab.Rate.StringFixed(2),
			slab.TaxableAmount.StringFixed(2),
			slab.Tax.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	summaries := []struct {
		label  string
		amount string
	}{
		{"Taxable Income", result.TaxableIncome.StringFixed(2)},
		{"Tax Before Cess", result.TaxBeforeCess.StringFixed(2)},
		{"Cess", result.Cess.StringFixed(2)},
		{"Total Tax Liability", result.TotalTaxLiability.StringFixed(2)},
	}
	for _, row := range summaries {
		if err := w.Write([]string{scenario, result.Regime, "summary", row.label, "", "", row.amount}); err != nil {
			return err
		}
	}
	return nil
}
