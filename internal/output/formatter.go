package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
)

// Formatter renders a tax report into a byte payload for one output format.
type Formatter interface {
	Name() string
	Format(report *domain.TaxReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *domain.TaxReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.TaxReport) ([]byte, error) { return f.F(report) }

// registeredFormatters lists every built-in formatter.
var registeredFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	DetailedCSVFormatter{},
	JSONFormatter{},
	HTMLFormatter{},
}

// formatAliases maps accepted spellings to canonical formatter names.
var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"summary":         "console-lite",
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registeredFormatters))
	for _, formatter := range registeredFormatters {
		names = append(names, formatter.Name())
	}
	return names
}

// AvailableFormatAliases returns the accepted alias spellings.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// NormalizeFormatName lowercases a format name and resolves aliases to the
// canonical formatter name.
func NormalizeFormatName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[name]; ok {
		return canonical
	}
	return name
}

// GetFormatterByName resolves a name or alias, returning nil when unknown.
func GetFormatterByName(name string) Formatter {
	name = NormalizeFormatName(name)
	for _, formatter := range registeredFormatters {
		if formatter.Name() == name {
			return formatter
		}
	}
	return nil
}

// WriteFormatted renders the report and writes it to a timestamped file in the
// working directory, returning the filename.
func WriteFormatted(formatter Formatter, report *domain.TaxReport, extension string) (string, error) {
	data, err := formatter.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("taxwise_report_%s.%s", time.Now().Format("20060102_150405"), extension)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// Recommendation summarizes the cheapest scenario measured against the first
// scenario in the report.
type Recommendation struct {
	ScenarioName      string
	RecommendedRegime string
	TotalTax          decimal.Decimal
	TaxChange         decimal.Decimal
	PercentageChange  decimal.Decimal
}

// AnalyzeReport picks the scenario with the lowest recommended liability. The
// change fields are relative to the first scenario, which is the base by
// configuration convention.
func AnalyzeReport(report *domain.TaxReport) Recommendation {
	best := report.BestScenario()
	if best == nil {
		return Recommendation{}
	}

	rec := Recommendation{
		ScenarioName:      best.ScenarioName,
		RecommendedRegime: best.RecommendedRegime,
		TotalTax:          best.Recommended().TotalTaxLiability,
	}

	baseline := report.Comparisons[0].Recommended().TotalTaxLiability
	rec.TaxChange = rec.TotalTax.Sub(baseline)
	if !baseline.IsZero() {
		rec.PercentageChange = rec.TaxChange.Div(baseline).Mul(decimal.NewFromInt(100))
	}
	return rec
}

// ConsoleFormatter renders the compact one-line-per-scenario summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "TAX SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "====================")
	fmt.Fprintf(&buf, "Fiscal Year: %s\n", report.FiscalYear)
	fmt.Fprintln(&buf)

	if len(report.Comparisons) > 0 {
		fmt.Fprintf(&buf, "%-25s %16s %16s  %s\n", "SCENARIO", "OLD REGIME", "NEW REGIME", "RECOMMENDED")
		for i := range report.Comparisons {
			comp := &report.Comparisons[i]
			fmt.Fprintf(&buf, "%-25s %16s %16s  %s\n",
				comp.ScenarioName,
				FormatCurrency(comp.OldRegime.TotalTaxLiability),
				FormatCurrency(comp.NewRegime.TotalTaxLiability),
				domain.RegimeDisplayName(comp.RecommendedRegime),
			)
		}
	}

	rec := AnalyzeReport(report)
	if rec.ScenarioName != "" {
		fmt.Fprintf(&buf, "\nRecommended: %s (%s) Δ %s (%s)\n",
			rec.ScenarioName,
			domain.RegimeDisplayName(rec.RecommendedRegime),
			FormatCurrency(rec.TaxChange),
			FormatPercentage(rec.PercentageChange),
		)
	}

	return buf.Bytes(), nil
}

// JSONFormatter emits the report as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
