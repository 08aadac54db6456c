package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/domain"
)

// AdviceFormatter defines a formatter for deduction optimization advice
type AdviceFormatter interface {
	FormatAdvice(advice *advise.Advice) (string, error)
	Name() string
}

// NewAdviceFormatter creates an advice formatter based on the format name
func NewAdviceFormatter(format string) AdviceFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return AdviceCSVFormatter{}
	case "json":
		return AdviceJSONFormatter{}
	default:
		return AdviceConsoleFormatter{}
	}
}

// AdviceConsoleFormatter formats optimization advice for console output
type AdviceConsoleFormatter struct{}

func (acf AdviceConsoleFormatter) Name() string { return "console" }

func (acf AdviceConsoleFormatter) FormatAdvice(advice *advise.Advice) (string, error) {
	if advice == nil {
		return "", fmt.Errorf("advice cannot be nil")
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "DEDUCTION OPTIMIZATION: %s\n", strings.ToUpper(advice.ScenarioName))
	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintf(&buf, "Fiscal Year:  %s\n", advice.FiscalYear)

	comparison := advice.Comparison
	fmt.Fprintf(&buf, "Gross Income: %s\n\n", FormatCurrency(comparison.OldRegime.GrossIncome))

	fmt.Fprintf(&buf, "Old Regime Tax:  %s\n", FormatCurrency(comparison.OldRegime.TotalTaxLiability))
	fmt.Fprintf(&buf, "New Regime Tax:  %s\n", FormatCurrency(comparison.NewRegime.TotalTaxLiability))
	fmt.Fprintf(&buf, "Recommended:     %s\n", domain.RegimeDisplayName(comparison.RecommendedRegime))
	fmt.Fprintf(&buf, "Marginal Rate:   %s (old regime)\n\n",
		FormatPercentage(advice.MarginalRate.Mul(decimal.NewFromInt(100))))

	if len(advice.Suggestions) > 0 {
		fmt.Fprintln(&buf, "SUGGESTIONS:")
		fmt.Fprintf(&buf, "%-14s %14s %14s %14s %14s\n", "CATEGORY", "CURRENT", "CAP", "HEADROOM", "TAX SAVING")
		fmt.Fprintln(&buf, strings.Repeat("-", 75))
		for _, suggestion := range advice.Suggestions {
			fmt.Fprintf(&buf, "%-14s %14s %14s %14s %14s\n",
				suggestion.Category,
				FormatCurrencyShort(suggestion.Current),
				FormatCurrencyShort(suggestion.Cap),
				FormatCurrencyShort(suggestion.Headroom),
				FormatCurrencyShort(suggestion.TaxSaving))
			if suggestion.Note != "" {
				fmt.Fprintf(&buf, "  %s\n", suggestion.Note)
			}
		}
		fmt.Fprintln(&buf)
	} else {
		fmt.Fprintln(&buf, "All capped deduction categories are already exhausted.")
		fmt.Fprintln(&buf)
	}

	if advice.BreakEven != nil {
		fmt.Fprintln(&buf, "BREAK-EVEN:")
		fmt.Fprintf(&buf, "  Break-Even Deductions: %s\n", FormatCurrency(advice.BreakEven.BreakEvenDeductions))
		if advice.BreakEven.AlreadyAhead {
			fmt.Fprintln(&buf, "  The old regime is already ahead at the current deductions.")
		} else {
			fmt.Fprintf(&buf, "  Additional Needed:     %s\n", FormatCurrency(advice.BreakEven.AdditionalNeeded))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "SUMMARY:")
	for _, line := range advice.Summary {
		fmt.Fprintf(&buf, "  • %s\n", line)
	}

	return buf.String(), nil
}

// AdviceCSVFormatter formats the suggestion table as CSV
type AdviceCSVFormatter struct{}

func (acf AdviceCSVFormatter) Name() string { return "csv" }

func (acf AdviceCSVFormatter) FormatAdvice(advice *advise.Advice) (string, error) {
	if advice == nil {
		return "", fmt.Errorf("advice cannot be nil")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"category", "current", "cap", "headroom", "tax_saving", "note"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, suggestion := range advice.Suggestions {
		row := []string{
			suggestion.Category,
			suggestion.Current.StringFixed(2),
			suggestion.Cap.StringFixed(2),
			suggestion.Headroom.StringFixed(2),
			suggestion.TaxSaving.StringFixed(2),
			suggestion.Note,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// AdviceJSONFormatter emits the full advice payload as indented JSON
type AdviceJSONFormatter struct{}

func (ajf AdviceJSONFormatter) Name() string { return "json" }

func (ajf AdviceJSONFormatter) FormatAdvice(advice *advise.Advice) (string, error) {
	if advice == nil {
		return "", fmt.Errorf("advice cannot be nil")
	}

	data, err := json.MarshalIndent(advice, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
