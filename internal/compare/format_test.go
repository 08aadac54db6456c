package compare

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

func testComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "Base Scenario",
		FiscalYear:       "2024-25",
		ConfigPath:       "/path/to/config.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:      "Base Scenario",
			GrossIncome:       decimal.NewFromInt(1200000),
			OldRegimeTax:      decimal.NewFromInt(34840),
			NewRegimeTax:      decimal.NewFromInt(71500),
			RecommendedRegime: domain.RegimeOld,
			RecommendedTax:    decimal.NewFromInt(34840),
			PotentialSavings:  decimal.NewFromInt(36660),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:        "Alternative 1",
				GrossIncome:         decimal.NewFromInt(1200000),
				OldRegimeTax:        decimal.NewFromInt(163800),
				NewRegimeTax:        decimal.NewFromInt(71500),
				RecommendedRegime:   domain.RegimeNew,
				RecommendedTax:      decimal.NewFromInt(71500),
				PotentialSavings:    decimal.NewFromInt(92300),
				TaxDiffFromBase:     decimal.NewFromInt(36660),
				TaxPctFromBase:      decimal.NewFromFloat(105.2),
				SavingsDiffFromBase: decimal.NewFromInt(55640),
			},
		},
		Recommendations: []string{
			"Biggest Regime Gap: Alternative 1 shows ₹92300 between regimes",
			"Regime Switch: Alternative 1 flips the recommendation to the New Regime",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()

	result := formatter.Format(compSet)

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	// Check that key elements are present
	if !contains(result, "TAX REGIME COMPARISON") {
		t.Error("Expected header in output")
	}

	if !contains(result, "Base Scenario: Base Scenario") {
		t.Error("Expected base scenario name in output")
	}

	if !contains(result, "Fiscal Year:   2024-25") {
		t.Error("Expected fiscal year in output")
	}

	if !contains(result, "Configuration: /path/to/config.yaml") {
		t.Error("Expected config path in output")
	}

	if !contains(result, "(base)") {
		t.Error("Expected base marker in table")
	}

	if !contains(result, "Alternative 1") {
		t.Error("Expected alternative scenario in table")
	}

	if !contains(result, "COMPARISON TO BASE") {
		t.Error("Expected comparison section")
	}

	if !contains(result, "RECOMMENDATIONS") {
		t.Error("Expected recommendations section")
	}

	// The alternative flips the recommendation, so the switch line shows
	if !contains(result, "base prefers Old Regime") {
		t.Error("Expected regime switch note in comparison section")
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()
	compSet.AlternativeResults = []ComparisonResult{}
	compSet.Recommendations = []string{}

	result := formatter.Format(compSet)

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	// Should still have header and base scenario
	if !contains(result, "TAX REGIME COMPARISON") {
		t.Error("Expected header in output")
	}

	if !contains(result, "Base Scenario") {
		t.Error("Expected base scenario in table")
	}

	// Should not have alternative sections
	if contains(result, "Alternative") {
		t.Error("Should not have alternative scenarios in output")
	}

	if contains(result, "COMPARISON TO BASE") {
		t.Error("Should not have comparison section without alternatives")
	}
}

func TestTableFormatter_formatRow(t *testing.T) {
	formatter := &TableFormatter{}

	result := &ComparisonResult{
		ScenarioName:      "Test Scenario",
		GrossIncome:       decimal.NewFromInt(1200000),
		OldRegimeTax:      decimal.NewFromInt(34840),
		NewRegimeTax:      decimal.NewFromInt(71500),
		RecommendedRegime: domain.RegimeOld,
		RecommendedTax:    decimal.NewFromInt(34840),
	}

	// Test base scenario row
	baseRow := formatter.formatRow(result, 25, 15, true)
	if baseRow == "" {
		t.Fatal("Expected formatted row, got empty string")
	}

	if !contains(baseRow, "Test Scenario (base)") {
		t.Error("Expected base marker in row")
	}

	if !contains(baseRow, "Old Regime") {
		t.Error("Expected recommended regime name in row")
	}

	// Test alternative scenario row
	altRow := formatter.formatRow(result, 25, 15, false)
	if altRow == "" {
		t.Fatal("Expected formatted row, got empty string")
	}

	if contains(altRow, "(base)") {
		t.Error("Did not expect base marker in alternative row")
	}
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	formatter := &TableFormatter{}

	cases := []struct {
		value int64
		want  string
	}{
		{500, "500"},
		{2500, "2.5K"},
		{34840, "34.8K"},
		{150000, "1.50L"},
		{1200000, "12.00L"},
		{12000000, "1.20Cr"},
	}

	for _, tc := range cases {
		got := formatter.formatDecimal(decimal.NewFromInt(tc.value))
		if got != tc.want {
			t.Errorf("formatDecimal(%d) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("short", 25); got != "short" {
		t.Errorf("Expected short name unchanged, got %q", got)
	}

	long := "a scenario name that runs well past the column"
	got := formatter.truncate(long, 25)
	if len(got) != 25 {
		t.Errorf("Expected truncated length 25, got %d", len(got))
	}
	if got[len(got)-3:] != "..." {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{
		ScenarioName:    "Alternative 2",
		TaxDiffFromBase: decimal.NewFromInt(-5000),
	})

	result := formatter.FormatCompact(compSet)

	if !contains(result, "Base: Base Scenario") {
		t.Error("Expected base scenario in compact output")
	}

	if !contains(result, "Alternative 1: +₹36.7K") {
		t.Errorf("Expected positive tax delta in compact output, got %q", result)
	}

	if !contains(result, "Alternative 2: -₹5.0K") {
		t.Errorf("Expected negative tax delta in compact output, got %q", result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	compSet := testComparisonSet()

	result, err := formatter.Format(compSet)

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result == "" {
		t.Fatal("Expected CSV output, got empty string")
	}

	// Check that CSV structure is present
	if !contains(result, "Scenario") {
		t.Error("Expected CSV header")
	}

	if !contains(result, "Recommended Regime") {
		t.Error("Expected recommendation column in CSV header")
	}

	if !contains(result, "Base Scenario,base") {
		t.Error("Expected base scenario row in CSV")
	}

	if !contains(result, "Alternative 1,alternative") {
		t.Error("Expected alternative scenario row in CSV")
	}

	// Check that values are properly formatted
	if !contains(result, "1200000.00") {
		t.Error("Expected gross income value in CSV")
	}

	if !contains(result, "34840.00") {
		t.Error("Expected old regime tax value in CSV")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := &JSONFormatter{}

	compSet := testComparisonSet()

	result, err := formatter.Format(compSet)

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result == "" {
		t.Fatal("Expected JSON output, got empty string")
	}

	// Check that JSON structure is present
	if !contains(result, "\"baseScenarioName\"") {
		t.Error("Expected baseScenarioName field in JSON")
	}

	if !contains(result, "\"fiscalYear\"") {
		t.Error("Expected fiscalYear field in JSON")
	}

	if !contains(result, "\"Base Scenario\"") {
		t.Error("Expected base scenario name in JSON")
	}

	if !contains(result, "\"alternativeResults\"") {
		t.Error("Expected alternativeResults field in JSON")
	}

	if !contains(result, "\"recommendations\"") {
		t.Error("Expected recommendations field in JSON")
	}
}

func TestJSONFormatter_FormatPretty(t *testing.T) {
	formatter := &JSONFormatter{Pretty: true}

	result, err := formatter.Format(testComparisonSet())

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !contains(result, "\n  \"") {
		t.Error("Expected indented output in pretty mode")
	}
}
