package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/taxwise/taxwise/internal/breakeven"
)

// BreakEvenFormatter defines a formatter for break-even solver output
type BreakEvenFormatter interface {
	FormatBreakEvenResult(result *breakeven.Result) (string, error)
	FormatBreakEvenCurve(points []breakeven.CurvePoint) (string, error)
	Name() string
}

// NewBreakEvenFormatter creates a formatter based on the format name
func NewBreakEvenFormatter(format string) BreakEvenFormatter {
	switch NormalizeFormatName(format) {
	case "json":
		return &BreakEvenJSONFormatter{}
	default:
		return &BreakEvenTableFormatter{}
	}
}

// BreakEvenTableFormatter renders break-even output as console text
type BreakEvenTableFormatter struct{}

func (f *BreakEvenTableFormatter) Name() string {
	return "table"
}

func (f *BreakEvenTableFormatter) FormatBreakEvenResult(result *breakeven.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	var output strings.Builder

	output.WriteString("BREAK-EVEN DEDUCTION ANALYSIS\n")
	output.WriteString("=================================================================\n")
	output.WriteString(fmt.Sprintf("Scenario:    %s\n", result.ScenarioName))
	output.WriteString(fmt.Sprintf("Fiscal Year: %s\n\n", result.FiscalYear))

	output.WriteString(fmt.Sprintf("Gross Income:                %s\n", FormatCurrency(result.GrossIncome)))
	output.WriteString(fmt.Sprintf("New Regime Tax:              %s\n", FormatCurrency(result.NewRegimeTax)))
	output.WriteString(fmt.Sprintf("Current Itemized Deductions: %s\n", FormatCurrency(result.CurrentItemized)))
	output.WriteString(fmt.Sprintf("Current Old Regime Tax:      %s\n\n", FormatCurrency(result.CurrentOldTax)))

	output.WriteString(fmt.Sprintf("Break-Even Deductions:       %s\n", FormatCurrency(result.BreakEvenDeductions)))

	if result.AlreadyAhead {
		output.WriteString("\nThe old regime already matches or beats the new regime at the\ncurrent deduction level.\n")
	} else {
		output.WriteString(fmt.Sprintf("Additional Needed:           %s\n", FormatCurrency(result.AdditionalNeeded)))
		output.WriteString("\nClaim at least the break-even total to make the old regime worthwhile.\n")
	}

	output.WriteString(fmt.Sprintf("\nConverged in %d iterations\n", result.Iterations))

	return output.String(), nil
}

func (f *BreakEvenTableFormatter) FormatBreakEvenCurve(points []breakeven.CurvePoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("no curve points to format")
	}

	var output strings.Builder

	output.WriteString("BREAK-EVEN CURVE\n")
	output.WriteString("=================================================================\n")
	output.WriteString(fmt.Sprintf("%-18s %-18s %s\n", "INCOME", "NEW REGIME TAX", "BREAK-EVEN DEDUCTIONS"))
	output.WriteString(strings.Repeat("-", 60) + "\n")

	for _, point := range points {
		output.WriteString(fmt.Sprintf("%-18s %-18s %s\n",
			FormatCurrency(point.Income),
			FormatCurrency(point.NewRegimeTax),
			FormatCurrency(point.BreakEvenDeductions)))
	}

	return output.String(), nil
}

// BreakEvenJSONFormatter renders break-even output as indented JSON
type BreakEvenJSONFormatter struct{}

func (f *BreakEvenJSONFormatter) Name() string {
	return "json"
}

func (f *BreakEvenJSONFormatter) FormatBreakEvenResult(result *breakeven.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *BreakEvenJSONFormatter) FormatBreakEvenCurve(points []breakeven.CurvePoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("no curve points to format")
	}

	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
