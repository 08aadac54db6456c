package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
)

// ReportGenerator routes a tax report to the requested formatter. Console
// formats go to Out, file formats are written to timestamped files.
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a generator writing console output to stdout.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{Out: os.Stdout}
}

// GenerateReport generates a report in the specified format.
func GenerateReport(report *domain.TaxReport, format string) error {
	return NewReportGenerator().Generate(report, format)
}

// Generate renders the report with the named formatter or alias.
func (rg *ReportGenerator) Generate(report *domain.TaxReport, format string) error {
	formatter := GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)",
			format, strings.Join(AvailableFormatterNames(), ", "))
	}

	if isConsoleFormat(formatter.Name()) {
		data, err := formatter.Format(report)
		if err != nil {
			return err
		}
		_, err = rg.Out.Write(data)
		return err
	}

	filename, err := WriteFormatted(formatter, report, extensionFor(formatter.Name()))
	if err != nil {
		return err
	}
	fmt.Fprintf(rg.Out, "Report written to %s\n", filename)
	return nil
}

func isConsoleFormat(name string) bool {
	return name == "console" || name == "console-lite"
}

func extensionFor(name string) string {
	switch name {
	case "csv", "detailed-csv":
		return "csv"
	case "json":
		return "json"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

// FormatCurrency formats a decimal as rupees with Indian digit grouping, so
// 1234567.5 renders as ₹12,34,567.50.
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart := fixed[:len(fixed)-3]
	fraction := fixed[len(fixed)-2:]

	return sign + "₹" + groupIndian(intPart) + "." + fraction
}

// FormatCurrencyShort renders rupees in lakh/crore shorthand for dense rows.
func FormatCurrencyShort(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	crore := decimal.New(1, 7)
	lakh := decimal.New(1, 5)
	thousand := decimal.NewFromInt(1000)

	switch {
	case amount.GreaterThanOrEqual(crore):
		return sign + "₹" + amount.Div(crore).StringFixed(2) + "Cr"
	case amount.GreaterThanOrEqual(lakh):
		return sign + "₹" + amount.Div(lakh).StringFixed(2) + "L"
	case amount.GreaterThanOrEqual(thousand):
		return sign + "₹" + amount.Div(thousand).StringFixed(1) + "K"
	default:
		return sign + "₹" + amount.StringFixed(0)
	}
}

// FormatPercentage formats a decimal as percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// toPercent renders a rate fraction like 0.0596 as 5.96%.
func toPercent(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// groupIndian inserts commas Indian style: the last three digits form one
// group, everything before that groups in twos.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
