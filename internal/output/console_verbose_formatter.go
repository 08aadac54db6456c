package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
)

// ConsoleVerboseFormatter renders the full per-scenario breakdown with slab
// tables for both regimes.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED TAX REGIME ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, assumption := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", assumption)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Fiscal Year:        %s\n", report.FiscalYear)
	fmt.Fprintf(&buf, "Scenarios Compared: %d\n", len(report.Comparisons))
	fmt.Fprintln(&buf)

	for i := range report.Comparisons {
		comp := &report.Comparisons[i]

		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, comp.ScenarioName)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Gross Income:           %s\n", FormatCurrency(comp.OldRegime.GrossIncome))
		fmt.Fprintln(&buf)

		writeDeductionBreakdown(&buf, comp.OldRegime.Deductions)

		writeSlabTable(&buf, "OLD REGIME", &comp.OldRegime)
		writeSlabTable(&buf, "NEW REGIME", &comp.NewRegime)

		fmt.Fprintln(&buf, "REGIME COMPARISON:")
		fmt.Fprintln(&buf, "------------------")
		fmt.Fprintf(&buf, "  Old Regime Tax:       %s (effective %s)\n",
			FormatCurrency(comp.OldRegime.TotalTaxLiability),
			FormatPercentage(comp.OldRegime.EffectiveRate.Mul(decimal.NewFromInt(100))))
		fmt.Fprintf(&buf, "  New Regime Tax:       %s (effective %s)\n",
			FormatCurrency(comp.NewRegime.TotalTaxLiability),
			FormatPercentage(comp.NewRegime.EffectiveRate.Mul(decimal.NewFromInt(100))))
		fmt.Fprintf(&buf, "  RECOMMENDED:          %s\n", domain.RegimeDisplayName(comp.RecommendedRegime))
		fmt.Fprintf(&buf, "  ANNUAL SAVINGS:       %s\n", FormatCurrency(comp.PotentialSavings))
		fmt.Fprintf(&buf, "  Monthly Savings:      %s\n",
			FormatCurrency(comp.PotentialSavings.Div(decimal.NewFromInt(12))))
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeReport(report)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s (%s)\n", rec.ScenarioName, domain.RegimeDisplayName(rec.RecommendedRegime))
		fmt.Fprintf(&buf, "Tax Liability: %s\n", FormatCurrency(rec.TotalTax))
		fmt.Fprintf(&buf, "Change vs Base: %s (%s)\n", FormatCurrency(rec.TaxChange), FormatPercentage(rec.PercentageChange))
		fmt.Fprintf(&buf, "Monthly Change: %s\n", FormatCurrency(rec.TaxChange.Div(decimal.NewFromInt(12))))
	}

	return buf.Bytes(), nil
}

func writeDeductionBreakdown(buf *bytes.Buffer, deductions domain.DeductionBreakdown) {
	fmt.Fprintln(buf, "OLD REGIME DEDUCTIONS (allowed after caps):")
	fmt.Fprintf(buf, "  Section 80C:          %s\n", FormatCurrency(deductions.Section80C))
	fmt.Fprintf(buf, "  Section 80D:          %s\n", FormatCurrency(deductions.Section80D))
	fmt.Fprintf(buf, "  HRA Exemption:        %s\n", FormatCurrency(deductions.HRA))
	fmt.Fprintf(buf, "  Standard Deduction:   %s\n", FormatCurrency(deductions.StandardDeduction))
	fmt.Fprintf(buf, "  Other:                %s\n", FormatCurrency(deductions.Other))
	fmt.Fprintf(buf, "  TOTAL DEDUCTIONS:     %s\n", FormatCurrency(deductions.Total()))
	fmt.Fprintln(buf)
}

func writeSlabTable(buf *bytes.Buffer, title string, result *domain.RegimeResult) {
	fmt.Fprintf(buf, "%s SLAB BREAKDOWN (taxable income %s):\n", title, FormatCurrency(result.TaxableIncome))
	fmt.Fprintf(buf, "  %-22s %6s %16s %16s\n", "SLAB", "RATE", "TAXABLE", "TAX")
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 63))

	for _, slab := range result.SlabContributions {
		fmt.Fprintf(buf, "  %-22s %5s%% %16s %16s\n",
			slab.Label,
			slab.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0),
			FormatCurrency(slab.TaxableAmount),
			FormatCurrency(slab.Tax),
		)
	}

	fmt.Fprintf(buf, "  Tax Before Cess:        %s\n", FormatCurrency(result.TaxBeforeCess))
	fmt.Fprintf(buf, "  Health & Education Cess: %s\n", FormatCurrency(result.Cess))
	fmt.Fprintf(buf, "  TOTAL TAX LIABILITY:    %s\n", FormatCurrency(result.TotalTaxLiability))
	fmt.Fprintln(buf)
}
