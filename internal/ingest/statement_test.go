package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `date,amount,category,description
2024-01-01,85000,Income,SALARY CREDIT TCS
2024-01-05,-15000,Investment,PPF DEPOSIT
2024-01-10,-8000,Investment,ELSS SIP AXIS
2024-01-15,-35000,EMI,HOME LOAN EMI HDFC
2024-01-20,-6000,Insurance,HEALTH INSURANCE STAR
2024-02-01,85000,Income,SALARY CREDIT TCS
2024-02-05,-15000,Investment,PPF DEPOSIT
2024-02-10,-8000,Investment,ELSS SIP AXIS
2024-02-15,-35000,EMI,HOME LOAN EMI HDFC
`

func TestStatementAnalyzer_ParseCSV(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	transactions, err := analyzer.ParseCSV(strings.NewReader(sampleStatement))

	require.NoError(t, err, "Should parse a well-formed statement")
	require.Len(t, transactions, 9, "Should parse every data row")

	first := transactions[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(85000)))
	assert.Equal(t, "Income", first.Category)
	assert.Equal(t, "SALARY CREDIT TCS", first.Description)

	debit := transactions[1]
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(-15000)), "Debits should stay negative")
}

func TestStatementAnalyzer_ParseCSV_BadHeader(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	_, err := analyzer.ParseCSV(strings.NewReader("when,how_much,kind,note\n2024-01-01,100,x,y\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected header")
}

func TestStatementAnalyzer_ParseCSV_BadDate(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	_, err := analyzer.ParseCSV(strings.NewReader("date,amount,category,description\n01/01/2024,100,Income,SALARY\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
	assert.Contains(t, err.Error(), "row 2")
}

func TestStatementAnalyzer_ParseCSV_BadAmount(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	_, err := analyzer.ParseCSV(strings.NewReader("date,amount,category,description\n2024-01-01,eighty,Income,SALARY\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestStatementAnalyzer_Summarize(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	transactions, err := analyzer.ParseCSV(strings.NewReader(sampleStatement))
	require.NoError(t, err)

	summary := analyzer.Summarize(transactions)

	assert.True(t, summary.SalaryCredits.Equal(decimal.NewFromInt(170000)),
		"Should total two salary credits, got %s", summary.SalaryCredits)
	assert.True(t, summary.Investments80C.Equal(decimal.NewFromInt(46000)),
		"Should total PPF and ELSS debits, got %s", summary.Investments80C)
	assert.True(t, summary.InsurancePremiums.Equal(decimal.NewFromInt(6000)),
		"Should total insurance debits, got %s", summary.InsurancePremiums)
	assert.True(t, summary.LoanInterest.Equal(decimal.NewFromInt(70000)),
		"Should total loan EMIs, got %s", summary.LoanInterest)

	assert.Equal(t, 9, summary.Transactions)
	assert.Equal(t, 2, summary.MonthsObserved, "January and February give two observed months")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), summary.From)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), summary.To)

	assert.True(t, summary.ExpensesByCategory["emi"].Equal(decimal.NewFromInt(70000)),
		"Expense totals should aggregate by category")
	assert.True(t, summary.ExpensesByCategory["investment"].Equal(decimal.NewFromInt(46000)))
	assert.True(t, summary.ExpensesByCategory["insurance"].Equal(decimal.NewFromInt(6000)))
}

func TestStatementAnalyzer_Summarize_FirstMatchWins(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	transactions := []Transaction{
		// Matches both the 80C and insurance word lists; 80C is checked first
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-5000), Description: "SIP INSURANCE PREMIUM"},
		// Only an insurance keyword
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-3000), Description: "LIC PREMIUM"},
		// Credits never classify as deductions
		{Date: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(2000), Description: "INTEREST CREDIT"},
		// Unmatched credits are not income
		{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1500), Description: "CASHBACK REFUND"},
		// Keyword match through the category column
		{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-9000), Category: "Loan", Description: "MONTHLY PAYMENT"},
	}

	summary := analyzer.Summarize(transactions)

	assert.True(t, summary.Investments80C.Equal(decimal.NewFromInt(5000)),
		"SIP match should win over the premium match")
	assert.True(t, summary.InsurancePremiums.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.LoanInterest.Equal(decimal.NewFromInt(9000)),
		"Category keywords should classify too")
	assert.True(t, summary.SalaryCredits.IsZero(), "Non-salary credits should not count as income")
	assert.Equal(t, 1, summary.MonthsObserved)
}

func TestStatementAnalyzer_BuildScenario(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	transactions, err := analyzer.ParseCSV(strings.NewReader(sampleStatement))
	require.NoError(t, err)

	summary := analyzer.Summarize(transactions)
	scenario := analyzer.BuildScenario("From Statement", summary)

	require.NotNil(t, scenario)
	assert.Equal(t, "From Statement", scenario.Name)

	// Two observed months scale by 6
	assert.True(t, scenario.Income.Equal(decimal.NewFromInt(1020000)),
		"Expected annualized income 1020000, got %s", scenario.Income)
	assert.True(t, scenario.Section80C.Equal(decimal.NewFromInt(276000)))
	assert.True(t, scenario.Section80D.Equal(decimal.NewFromInt(36000)))
	assert.True(t, scenario.HomeLoanInterest.Equal(decimal.NewFromInt(420000)))
	assert.True(t, scenario.HRA.IsZero(), "HRA is not inferred from statements")
	assert.True(t, scenario.OtherDeductions.IsZero())

	assert.NoError(t, scenario.Validate(), "Annualized scenario should be valid input")
}

func TestStatementAnalyzer_BuildScenario_Empty(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	scenario := analyzer.BuildScenario("Empty", FinancialSummary{})

	require.NotNil(t, scenario)
	assert.True(t, scenario.Income.IsZero(), "No observed months should produce a zero scenario")
}

func TestStatementAnalyzer_AnalyzeStatement(t *testing.T) {
	analyzer := NewStatementAnalyzer()

	scenario, summary, err := analyzer.AnalyzeStatement(strings.NewReader(sampleStatement), "Statement")

	require.NoError(t, err)
	require.NotNil(t, scenario)
	assert.Equal(t, 2, summary.MonthsObserved)
	assert.True(t, scenario.Income.Equal(decimal.NewFromInt(1020000)))
}
