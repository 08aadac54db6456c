package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	sb.WriteString(fmt.Sprintf("Fiscal Year:   %s\n", compSet.FiscalYear))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	// Create table with all scenarios

	// Column widths
	nameWidth := 25
	numWidth := 15

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Gross Income",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		numWidth, "Recommended"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base scenario row
	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	// Alternative scenarios
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))

			// Tax difference (lower is better)
			taxSymbol := tf.deltaSymbol(alt.TaxDiffFromBase.Neg())
			sb.WriteString(fmt.Sprintf("  Tax Impact:       %s₹%s (%s%%)\n",
				taxSymbol,
				tf.formatDecimal(alt.TaxDiffFromBase.Abs()),
				alt.TaxPctFromBase.StringFixed(1)))

			// Regime gap difference
			if !alt.SavingsDiffFromBase.IsZero() {
				gapSymbol := tf.deltaSymbol(alt.SavingsDiffFromBase)
				sb.WriteString(fmt.Sprintf("  Regime Gap:       %s₹%s\n",
					gapSymbol,
					tf.formatDecimal(alt.SavingsDiffFromBase.Abs())))
			}

			// Regime switch
			if alt.RecommendedRegime != base.RecommendedRegime {
				sb.WriteString(fmt.Sprintf("  Recommended:      %s (base prefers %s)\n",
					domain.RegimeDisplayName(alt.RecommendedRegime),
					domain.RegimeDisplayName(base.RecommendedRegime)))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "₹"+tf.formatDecimal(result.GrossIncome),
		numWidth, "₹"+tf.formatDecimal(result.OldRegimeTax),
		numWidth, "₹"+tf.formatDecimal(result.NewRegimeTax),
		numWidth, domain.RegimeDisplayName(result.RecommendedRegime))
}

// formatDecimal formats a decimal for display (in lakh/crore units)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000000)) {
		// Format in crore
		crore := d.Div(decimal.NewFromInt(10000000))
		return crore.StringFixed(2) + "Cr"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		// Format in lakh
		lakh := d.Div(decimal.NewFromInt(100000))
		return lakh.StringFixed(2) + "L"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		// Format in thousands
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas (positive is green concept)
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		taxChange := "="
		if alt.TaxDiffFromBase.IsPositive() {
			taxChange = fmt.Sprintf("+₹%s", tf.formatDecimal(alt.TaxDiffFromBase))
		} else if alt.TaxDiffFromBase.IsNegative() {
			taxChange = fmt.Sprintf("-₹%s", tf.formatDecimal(alt.TaxDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, taxChange))
	}

	return sb.String()
}
