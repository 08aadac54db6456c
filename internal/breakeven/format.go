package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN DEDUCTION ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if result.ScenarioName != "" {
		sb.WriteString(fmt.Sprintf("Scenario:            %s\n", result.ScenarioName))
	}
	sb.WriteString(fmt.Sprintf("Fiscal Year:         %s\n", result.FiscalYear))
	sb.WriteString(fmt.Sprintf("Gross Income:        ₹%s\n", tf.formatCurrency(result.GrossIncome)))
	sb.WriteString("\n")

	sb.WriteString("CURRENT POSITION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("New Regime Tax:      ₹%s\n", tf.formatCurrency(result.NewRegimeTax)))
	sb.WriteString(fmt.Sprintf("Old Regime Tax:      ₹%s\n", tf.formatCurrency(result.CurrentOldTax)))
	sb.WriteString(fmt.Sprintf("Itemized Claimed:    ₹%s\n", tf.formatCurrency(result.CurrentItemized)))
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Deductions Needed:   ₹%s\n", tf.formatCurrency(result.BreakEvenDeductions)))
	sb.WriteString(fmt.Sprintf("Additional Needed:   ₹%s\n", tf.formatCurrency(result.AdditionalNeeded)))
	sb.WriteString("\n")

	sb.WriteString("VERDICT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.AlreadyAhead {
		sb.WriteString("✓ The old regime already matches or beats the new regime at current deductions.\n")
	} else {
		sb.WriteString(fmt.Sprintf("• Claim ₹%s more in deductions for the old regime to catch up.\n",
			tf.formatShort(result.AdditionalNeeded)))
	}

	return sb.String()
}

// FormatSweep generates a table across an income range
func (tf *TableFormatter) FormatSweep(points []CurvePoint) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SWEEP\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %20s %25s\n", "Income", "New Regime Tax", "Break-Even Deductions"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%-20s %20s %25s\n",
			"₹"+tf.formatShort(p.Income),
			"₹"+tf.formatShort(p.NewRegimeTax),
			"₹"+tf.formatShort(p.BreakEvenDeductions)))
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// FormatSweep generates JSON output for sweep points
func (jf *JSONFormatter) FormatSweep(points []CurvePoint) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(points, "", "  ")
	} else {
		data, err = json.Marshal(points)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000000)) {
		crores := d.Div(decimal.NewFromInt(10000000))
		return crores.StringFixed(2) + "Cr"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		lakhs := d.Div(decimal.NewFromInt(100000))
		return lakhs.StringFixed(2) + "L"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}
