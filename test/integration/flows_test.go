package integration

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/breakeven"
	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/compare"
	"github.com/taxwise/taxwise/internal/config"
	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/ingest"
	"github.com/taxwise/taxwise/internal/output"
)

// TestStatementIngestionFlow runs a bank statement through parsing,
// summarization, scenario derivation, and regime comparison.
func TestStatementIngestionFlow(t *testing.T) {
	file, err := os.Open("../testdata/statement.csv")
	require.NoError(t, err, "Failed to open statement fixture")
	defer file.Close()

	analyzer := ingest.NewStatementAnalyzer()
	scenario, summary, err := analyzer.AnalyzeStatement(file, "Statement Derived")
	require.NoError(t, err, "Statement analysis failed")
	require.NotNil(t, scenario)

	t.Run("Summary", func(t *testing.T) {
		assert.Equal(t, 9, summary.Transactions)
		assert.Equal(t, 2, summary.MonthsObserved)
		assert.Equal(t, "2024-01-01", summary.From.Format("2006-01-02"))
		assert.Equal(t, "2024-02-12", summary.To.Format("2006-01-02"))

		assert.True(t, summary.SalaryCredits.Equal(decimal.NewFromInt(170000)),
			"Salary credits should be 170000, got %s", summary.SalaryCredits)
		assert.True(t, summary.Investments80C.Equal(decimal.NewFromInt(46000)))
		assert.True(t, summary.InsurancePremiums.Equal(decimal.NewFromInt(6000)))
		assert.True(t, summary.LoanInterest.Equal(decimal.NewFromInt(70000)))

		require.Len(t, summary.ExpensesByCategory, 4)
		assert.True(t, summary.ExpensesByCategory["groceries"].Equal(decimal.NewFromInt(8000)))
		assert.True(t, summary.ExpensesByCategory["investment"].Equal(decimal.NewFromInt(46000)))
		assert.True(t, summary.ExpensesByCategory["emi"].Equal(decimal.NewFromInt(70000)))
		assert.True(t, summary.ExpensesByCategory["insurance"].Equal(decimal.NewFromInt(6000)))
	})

	t.Run("DerivedScenario", func(t *testing.T) {
		// Two observed months annualize at a factor of six.
		assert.Equal(t, "Statement Derived", scenario.Name)
		assert.True(t, scenario.Income.Equal(decimal.NewFromInt(1020000)),
			"Annualized income should be 1020000, got %s", scenario.Income)
		assert.True(t, scenario.Section80C.Equal(decimal.NewFromInt(276000)))
		assert.True(t, scenario.Section80D.Equal(decimal.NewFromInt(36000)))
		assert.True(t, scenario.HomeLoanInterest.Equal(decimal.NewFromInt(420000)))
		assert.True(t, scenario.HRA.IsZero(), "HRA cannot be inferred from a statement")
	})

	t.Run("DerivedComparison", func(t *testing.T) {
		engine := newTestEngine(t)
		comparison, err := engine.Compare(scenario)
		require.NoError(t, err)

		assert.True(t, comparison.OldRegime.TotalTaxLiability.Equal(decimal.NewFromInt(6500)),
			"Derived old-regime liability should be 6500, got %s", comparison.OldRegime.TotalTaxLiability)
		assert.True(t, comparison.NewRegime.TotalTaxLiability.Equal(decimal.NewFromInt(46280)),
			"Derived new-regime liability should be 46280, got %s", comparison.NewRegime.TotalTaxLiability)
		assert.Equal(t, domain.RegimeOld, comparison.RecommendedRegime)
		assert.True(t, comparison.PotentialSavings.Equal(decimal.NewFromInt(39780)))
	})

	t.Run("Formatting", func(t *testing.T) {
		formatter := output.StatementConsoleFormatter{}

		text, err := formatter.FormatStatementSummary(&summary)
		require.NoError(t, err)
		assert.Contains(t, text, "BANK STATEMENT ANALYSIS")
		assert.Contains(t, text, "Transactions: 9")
		assert.Contains(t, text, "EXPENSES BY CATEGORY")

		derived, err := formatter.FormatDerivedScenario(scenario, summary.MonthsObserved)
		require.NoError(t, err)
		assert.Contains(t, derived, "DERIVED ANNUAL SCENARIO: Statement Derived")
		assert.Contains(t, derived, "Annualized from 2 observed months")

		jsonText, err := formatter.FormatStatementSummaryJSON(&summary)
		require.NoError(t, err)
		var parsed map[string]any
		require.NoError(t, json.Unmarshal([]byte(jsonText), &parsed))
		assert.Equal(t, float64(9), parsed["transactions"])
	})
}

// TestCustomRulesFlow loads a regulatory rules file and prices a scenario
// under a fiscal year that is not built in.
func TestCustomRulesFlow(t *testing.T) {
	parser := config.NewInputParser()
	reg, err := parser.LoadRules("../testdata/rules_2025.yaml")
	require.NoError(t, err, "Failed to load rules fixture")
	require.NotNil(t, reg)
	require.Contains(t, reg.FiscalYears, "2025-26")

	cfg := &domain.Configuration{
		FiscalYear: "2025-26",
		Scenarios: []domain.TaxScenario{
			{Name: "High Earner", Income: decimal.NewFromInt(2400000)},
		},
	}

	rules, err := config.ResolveFiscalYear(cfg, reg)
	require.NoError(t, err)
	assert.Equal(t, "2025-26", rules.FiscalYear)

	engine := calculation.NewCalculationEngineWithRules(rules)
	comparison, err := engine.Compare(&cfg.Scenarios[0])
	require.NoError(t, err)

	// Budget 2025 slabs: 24L gross less the 75K standard deduction.
	assert.True(t, comparison.NewRegime.TaxableIncome.Equal(decimal.NewFromInt(2325000)))
	assert.True(t, comparison.NewRegime.TotalTaxLiability.Equal(decimal.NewFromInt(292500)),
		"New-regime liability under 2025-26 rules should be 292500, got %s", comparison.NewRegime.TotalTaxLiability)
	assert.True(t, comparison.OldRegime.TotalTaxLiability.Equal(decimal.NewFromInt(538200)))
	assert.Equal(t, domain.RegimeNew, comparison.RecommendedRegime)
	assert.True(t, comparison.PotentialSavings.Equal(decimal.NewFromInt(245700)))

	t.Run("BuiltinFallback", func(t *testing.T) {
		// Years absent from the rules file still resolve from the builtins.
		fallback := &domain.Configuration{
			FiscalYear: "2024-25",
			Scenarios:  cfg.Scenarios,
		}
		rules, err := config.ResolveFiscalYear(fallback, reg)
		require.NoError(t, err)
		assert.Equal(t, "2024-25", rules.FiscalYear)
	})
}

// TestBreakEvenFlow solves the break-even deduction level for a scenario with
// no deductions and checks both formatter surfaces.
func TestBreakEvenFlow(t *testing.T) {
	cfg := loadTestConfiguration(t)
	engine := newTestEngine(t)
	solver := breakeven.NewDefaultSolver(engine)

	scenario := cfg.FindScenario("No Investments")
	require.NotNil(t, scenario)

	result, err := solver.Solve(context.Background(), scenario)
	require.NoError(t, err, "Break-even solve failed")

	assert.False(t, result.AlreadyAhead)
	assert.True(t, result.NewRegimeTax.Equal(decimal.NewFromInt(71500)))
	assert.True(t, result.CurrentOldTax.Equal(decimal.NewFromInt(163800)))
	assert.True(t, result.CurrentItemized.IsZero())
	assert.True(t, result.BreakEvenDeductions.Equal(decimal.NewFromInt(368748)),
		"Break-even deductions should be 368748, got %s", result.BreakEvenDeductions)
	assert.True(t, result.AdditionalNeeded.Equal(decimal.NewFromInt(368748)))
	assert.Greater(t, result.Iterations, 0)
	assert.LessOrEqual(t, result.Iterations, 64)

	t.Run("AlreadyAhead", func(t *testing.T) {
		salaried := cfg.FindScenario("Salaried")
		require.NotNil(t, salaried)

		result, err := solver.Solve(context.Background(), salaried)
		require.NoError(t, err)
		assert.True(t, result.AlreadyAhead)
		assert.True(t, result.AdditionalNeeded.IsZero())
	})

	t.Run("Formatting", func(t *testing.T) {
		table := &breakeven.TableFormatter{}
		text := table.Format(result)
		assert.Contains(t, text, "BREAK-EVEN DEDUCTION ANALYSIS")
		assert.Contains(t, text, "Scenario:            No Investments")
		assert.Contains(t, text, "Deductions Needed:   ₹368748.00")

		jf := &breakeven.JSONFormatter{Pretty: true}
		jsonText, err := jf.Format(result)
		require.NoError(t, err)
		var parsed map[string]any
		require.NoError(t, json.Unmarshal([]byte(jsonText), &parsed))
		assert.Equal(t, "No Investments", parsed["scenario_name"])
	})
}

// TestAdviseFlow generates deduction advice for the fully-deducted scenario.
func TestAdviseFlow(t *testing.T) {
	cfg := loadTestConfiguration(t)
	engine := newTestEngine(t)
	advisor := advise.NewAdvisor(engine)

	scenario := cfg.FindScenario("Salaried")
	require.NotNil(t, scenario)

	advice, err := advisor.Advise(context.Background(), scenario)
	require.NoError(t, err, "Advise failed")

	assert.Equal(t, "Salaried", advice.ScenarioName)
	assert.Equal(t, "2024-25", advice.FiscalYear)
	assert.True(t, advice.MarginalRate.Equal(decimal.NewFromFloat(0.20)),
		"Marginal rate should be 0.20, got %s", advice.MarginalRate)
	require.NotNil(t, advice.BreakEven)
	assert.True(t, advice.BreakEven.AlreadyAhead)

	// 80C and 80D are already at their caps, so HRA is the only lever left.
	require.Len(t, advice.Suggestions, 1)
	suggestion := advice.Suggestions[0]
	assert.Equal(t, "hra", suggestion.Category)
	assert.True(t, suggestion.Current.Equal(decimal.NewFromInt(120000)))
	assert.True(t, suggestion.Cap.Equal(decimal.NewFromInt(600000)))
	assert.True(t, suggestion.Headroom.Equal(decimal.NewFromInt(480000)))
	assert.True(t, suggestion.TaxSaving.Equal(decimal.NewFromInt(34840)),
		"Maxing HRA should save 34840, got %s", suggestion.TaxSaving)

	require.NotEmpty(t, advice.Summary)
	joined := strings.Join(advice.Summary, "\n")
	assert.Contains(t, joined, "Recommended regime:")
	assert.Contains(t, joined, "already matches or beats")

	t.Run("Formatting", func(t *testing.T) {
		console := output.NewAdviceFormatter("console")
		text, err := console.FormatAdvice(advice)
		require.NoError(t, err)
		assert.Contains(t, text, "DEDUCTION OPTIMIZATION: SALARIED")
		assert.Contains(t, text, "BREAK-EVEN:")
		assert.Contains(t, text, "SUMMARY:")

		csvFormatter := output.NewAdviceFormatter("csv")
		csvText, err := csvFormatter.FormatAdvice(advice)
		require.NoError(t, err)
		assert.Contains(t, csvText, "category,current,cap,headroom,tax_saving,note")
		assert.Contains(t, csvText, "hra")
	})
}

// TestTemplateComparisonFlow compares a base scenario against template-derived
// alternatives.
func TestTemplateComparisonFlow(t *testing.T) {
	cfg := loadTestConfiguration(t)
	engine := newTestEngine(t)
	compareEngine := compare.NewCompareEngine(engine)

	compSet, err := compareEngine.Compare(context.Background(), cfg, compare.CompareOptions{
		BaseScenarioName: "Salaried",
		Templates:        []string{"no_deductions", "max_deductions"},
	})
	require.NoError(t, err, "Template comparison failed")

	assert.Equal(t, "Salaried", compSet.BaseScenarioName)
	assert.Equal(t, "2024-25", compSet.FiscalYear)
	require.NotNil(t, compSet.BaseResult)
	assert.True(t, compSet.BaseResult.RecommendedTax.Equal(decimal.NewFromInt(34840)))

	require.Len(t, compSet.AlternativeResults, 2)

	stripped := compSet.AlternativeResults[0]
	assert.Equal(t, "Salaried_no_deductions", stripped.ScenarioName)
	assert.True(t, stripped.OldRegimeTax.Equal(decimal.NewFromInt(163800)))
	assert.True(t, stripped.NewRegimeTax.Equal(decimal.NewFromInt(71500)))
	assert.Equal(t, domain.RegimeNew, stripped.RecommendedRegime)
	assert.True(t, stripped.RecommendedTax.Equal(decimal.NewFromInt(71500)))
	assert.True(t, stripped.TaxDiffFromBase.Equal(decimal.NewFromInt(36660)),
		"Dropping all deductions should cost 36660 against the base, got %s", stripped.TaxDiffFromBase)

	maxed := compSet.AlternativeResults[1]
	assert.Equal(t, "Salaried_max_deductions", maxed.ScenarioName)
	// 80C and 80D are already maxed in the base, so nothing changes.
	assert.True(t, maxed.RecommendedTax.Equal(decimal.NewFromInt(34840)))
	assert.True(t, maxed.TaxDiffFromBase.IsZero())

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, strings.Join(compSet.Recommendations, "\n"), "Salaried_no_deductions")

	t.Run("UnknownBase", func(t *testing.T) {
		_, err := compareEngine.Compare(context.Background(), cfg, compare.CompareOptions{
			BaseScenarioName: "Ghost",
			Templates:        []string{"no_deductions"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base scenario Ghost not found")
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		_, err := compareEngine.Compare(context.Background(), cfg, compare.CompareOptions{
			BaseScenarioName: "Salaried",
			Templates:        []string{"bogus"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "template bogus not found")
	})

	t.Run("Formatting", func(t *testing.T) {
		table := &compare.TableFormatter{}
		text := table.Format(compSet)
		assert.Contains(t, text, "Salaried_no_deductions")

		jf := &compare.JSONFormatter{Pretty: true}
		jsonText, err := jf.Format(compSet)
		require.NoError(t, err)
		var parsed map[string]any
		require.NoError(t, json.Unmarshal([]byte(jsonText), &parsed))
		assert.Equal(t, "Salaried", parsed["baseScenarioName"])

		cf := &compare.CSVFormatter{}
		csvText, err := cf.Format(compSet)
		require.NoError(t, err)
		assert.Contains(t, csvText, "Salaried_no_deductions")
	})
}
