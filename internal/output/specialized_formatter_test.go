package output

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/breakeven"
	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/ingest"
)

func buildBreakEvenResult() *breakeven.Result {
	return &breakeven.Result{
		ScenarioName:        "Salaried",
		FiscalYear:          "2024-25",
		GrossIncome:         decimal.NewFromInt(1200000),
		NewRegimeTax:        decimal.NewFromInt(71500),
		CurrentItemized:     decimal.NewFromInt(545000),
		CurrentOldTax:       decimal.NewFromInt(34840),
		BreakEvenDeductions: decimal.NewFromInt(425000),
		AdditionalNeeded:    decimal.Zero,
		AlreadyAhead:        true,
		Iterations:          21,
	}
}

func TestNewBreakEvenFormatter(t *testing.T) {
	assert.Equal(t, "table", NewBreakEvenFormatter("table").Name())
	assert.Equal(t, "json", NewBreakEvenFormatter("json").Name())
	assert.Equal(t, "table", NewBreakEvenFormatter("unknown").Name(), "Should default to table")
}

func TestBreakEvenTableFormatter_FormatResult(t *testing.T) {
	formatter := &BreakEvenTableFormatter{}

	output, err := formatter.FormatBreakEvenResult(buildBreakEvenResult())

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "BREAK-EVEN DEDUCTION ANALYSIS", "Should have header")
	assert.Contains(t, output, "Scenario:    Salaried", "Should name the scenario")
	assert.Contains(t, output, "Break-Even Deductions:       ₹4,25,000.00", "Should show break-even level")
	assert.Contains(t, output, "already matches or beats", "Should note the old regime is ahead")
	assert.Contains(t, output, "Converged in 21 iterations", "Should show iteration count")
}

func TestBreakEvenTableFormatter_FormatResult_Nil(t *testing.T) {
	formatter := &BreakEvenTableFormatter{}

	_, err := formatter.FormatBreakEvenResult(nil)

	assert.Error(t, err, "Should error on nil result")
}

func TestBreakEvenTableFormatter_FormatCurve(t *testing.T) {
	formatter := &BreakEvenTableFormatter{}

	points := []breakeven.CurvePoint{
		{Income: decimal.NewFromInt(800000), NewRegimeTax: decimal.NewFromInt(23400), BreakEvenDeductions: decimal.NewFromInt(180000)},
		{Income: decimal.NewFromInt(1200000), NewRegimeTax: decimal.NewFromInt(71500), BreakEvenDeductions: decimal.NewFromInt(425000)},
	}

	output, err := formatter.FormatBreakEvenCurve(points)

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "BREAK-EVEN CURVE", "Should have header")
	assert.Contains(t, output, "₹8,00,000.00", "Should list each income point")
	assert.Contains(t, output, "₹4,25,000.00", "Should list break-even deductions")
}

func TestBreakEvenTableFormatter_FormatCurve_Empty(t *testing.T) {
	formatter := &BreakEvenTableFormatter{}

	_, err := formatter.FormatBreakEvenCurve(nil)

	assert.Error(t, err, "Should error on empty curve")
}

func TestBreakEvenJSONFormatter_FormatResult(t *testing.T) {
	formatter := &BreakEvenJSONFormatter{}

	output, err := formatter.FormatBreakEvenResult(buildBreakEvenResult())

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "\"scenario_name\": \"Salaried\"", "Should marshal snake_case fields")
	assert.Contains(t, output, "\"already_ahead\": true", "Should include the flag")
}

func buildTestAdvice() *advise.Advice {
	comparison := buildTestComparison("Salaried", 34840, 71500)
	return &advise.Advice{
		ScenarioName: "Salaried",
		FiscalYear:   "2024-25",
		Comparison:   &comparison,
		BreakEven:    buildBreakEvenResult(),
		MarginalRate: decimal.NewFromFloat(0.20),
		Suggestions: []advise.Suggestion{
			{
				Category:  "hra",
				Current:   decimal.NewFromInt(120000),
				Cap:       decimal.NewFromInt(600000),
				Headroom:  decimal.NewFromInt(480000),
				TaxSaving: decimal.NewFromInt(34840),
				Note:      "Claimable only against rent actually paid",
			},
		},
		Summary: []string{
			"Recommended regime: Old Regime (saves ₹36660 over the New Regime)",
		},
	}
}

func TestNewAdviceFormatter(t *testing.T) {
	assert.Equal(t, "console", NewAdviceFormatter("console").Name())
	assert.Equal(t, "csv", NewAdviceFormatter("csv").Name())
	assert.Equal(t, "json", NewAdviceFormatter("json").Name())
	assert.Equal(t, "console", NewAdviceFormatter("bogus").Name(), "Should default to console")
}

func TestAdviceConsoleFormatter_FormatAdvice(t *testing.T) {
	formatter := AdviceConsoleFormatter{}

	output, err := formatter.FormatAdvice(buildTestAdvice())

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "DEDUCTION OPTIMIZATION: SALARIED", "Should have header")
	assert.Contains(t, output, "Marginal Rate:   20.00% (old regime)", "Should show marginal rate")
	assert.Contains(t, output, "hra", "Should list the suggestion")
	assert.Contains(t, output, "Claimable only against rent actually paid", "Should show the note")
	assert.Contains(t, output, "BREAK-EVEN:", "Should include break-even section")
	assert.Contains(t, output, "SUMMARY:", "Should include summary section")
}

func TestAdviceConsoleFormatter_NoSuggestions(t *testing.T) {
	formatter := AdviceConsoleFormatter{}

	advice := buildTestAdvice()
	advice.Suggestions = nil

	output, err := formatter.FormatAdvice(advice)

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "already exhausted", "Should note exhausted categories")
}

func TestAdviceCSVFormatter_FormatAdvice(t *testing.T) {
	formatter := AdviceCSVFormatter{}

	output, err := formatter.FormatAdvice(buildTestAdvice())

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "category,current,cap,headroom,tax_saving,note", "Should have CSV header")
	assert.Contains(t, output, "hra,120000.00,600000.00,480000.00,34840.00", "Should have suggestion row")
}

func TestAdviceJSONFormatter_FormatAdvice(t *testing.T) {
	formatter := AdviceJSONFormatter{}

	output, err := formatter.FormatAdvice(buildTestAdvice())

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "\"suggestions\"", "Should marshal suggestions")
	assert.Contains(t, output, "\"marginal_rate\"", "Should marshal marginal rate")
}

func TestAdviceFormatters_NilAdvice(t *testing.T) {
	_, err := AdviceConsoleFormatter{}.FormatAdvice(nil)
	assert.Error(t, err, "Console formatter should reject nil")

	_, err = AdviceCSVFormatter{}.FormatAdvice(nil)
	assert.Error(t, err, "CSV formatter should reject nil")

	_, err = AdviceJSONFormatter{}.FormatAdvice(nil)
	assert.Error(t, err, "JSON formatter should reject nil")
}

func buildStatementSummary() *ingest.FinancialSummary {
	return &ingest.FinancialSummary{
		SalaryCredits:     decimal.NewFromInt(170000),
		Investments80C:    decimal.NewFromInt(46000),
		InsurancePremiums: decimal.NewFromInt(6000),
		LoanInterest:      decimal.NewFromInt(70000),
		ExpensesByCategory: map[string]decimal.Decimal{
			"emi":        decimal.NewFromInt(70000),
			"investment": decimal.NewFromInt(46000),
		},
		Transactions:   9,
		MonthsObserved: 2,
		From:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:             time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestStatementConsoleFormatter_FormatSummary(t *testing.T) {
	formatter := StatementConsoleFormatter{}

	output, err := formatter.FormatStatementSummary(buildStatementSummary())

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "BANK STATEMENT ANALYSIS", "Should have header")
	assert.Contains(t, output, "2024-01-01 to 2024-02-15 (2 months observed)", "Should show the period")
	assert.Contains(t, output, "Transactions: 9", "Should count transactions")
	assert.Contains(t, output, "Salary Credits:      ₹1,70,000.00", "Should show salary total")
	assert.Contains(t, output, "emi:", "Should list expense categories")
}

func TestStatementConsoleFormatter_FormatDerivedScenario(t *testing.T) {
	formatter := StatementConsoleFormatter{}

	scenario := &domain.TaxScenario{
		Name:             "Statement",
		Income:           decimal.NewFromInt(1020000),
		Section80C:       decimal.NewFromInt(276000),
		Section80D:       decimal.NewFromInt(36000),
		HomeLoanInterest: decimal.NewFromInt(420000),
	}

	output, err := formatter.FormatDerivedScenario(scenario, 2)

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "DERIVED ANNUAL SCENARIO: Statement", "Should have header")
	assert.Contains(t, output, "Annualized from 2 observed months", "Should show observation window")
	assert.Contains(t, output, "Annual Income:       ₹10,20,000.00", "Should show annualized income")
}

func TestStatementConsoleFormatter_Nil(t *testing.T) {
	formatter := StatementConsoleFormatter{}

	_, err := formatter.FormatStatementSummary(nil)
	assert.Error(t, err, "Should reject nil summary")

	_, err = formatter.FormatDerivedScenario(nil, 0)
	assert.Error(t, err, "Should reject nil scenario")
}

func TestStatementConsoleFormatter_JSON(t *testing.T) {
	formatter := StatementConsoleFormatter{}

	output, err := formatter.FormatStatementSummaryJSON(buildStatementSummary())

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, output, "\"salary_credits\"", "Should marshal snake_case fields")
	assert.Contains(t, output, "\"months_observed\": 2", "Should include months observed")
}
