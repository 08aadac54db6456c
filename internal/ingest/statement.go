package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
)

const dateLayout = "2006-01-02"

var statementColumns = []string{"date", "amount", "category", "description"}

// Transaction is one bank statement row. Credits are positive, debits
// negative.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// FinancialSummary holds the totals observed in a statement window, before
// annualization.
type FinancialSummary struct {
	SalaryCredits      decimal.Decimal            `json:"salary_credits"`
	Investments80C     decimal.Decimal            `json:"investments_80c"`
	InsurancePremiums  decimal.Decimal            `json:"insurance_premiums"`
	LoanInterest       decimal.Decimal            `json:"loan_interest"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category"`
	Transactions       int                        `json:"transactions"`
	MonthsObserved     int                        `json:"months_observed"`
	From               time.Time                  `json:"from"`
	To                 time.Time                  `json:"to"`
}

// StatementAnalyzer turns bank statement CSVs into tax scenarios
type StatementAnalyzer struct{}

// NewStatementAnalyzer creates a new statement analyzer
func NewStatementAnalyzer() *StatementAnalyzer {
	return &StatementAnalyzer{}
}

// ParseCSV reads a statement with the columns date,amount,category,description.
// Dates use YYYY-MM-DD.
func (sa *StatementAnalyzer) ParseCSV(r io.Reader) ([]Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read statement header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var transactions []Transaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read statement: %w", err)
		}
		line++

		date, err := time.Parse(dateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", line, record[0], err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q: %w", line, record[1], err)
		}

		transactions = append(transactions, Transaction{
			Date:        date,
			Amount:      amount,
			Category:    strings.TrimSpace(record[2]),
			Description: strings.TrimSpace(record[3]),
		})
	}

	return transactions, nil
}

func validateHeader(header []string) error {
	if len(header) != len(statementColumns) {
		return fmt.Errorf("unexpected header %v, want %s", header, strings.Join(statementColumns, ","))
	}
	for i, want := range statementColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("unexpected header %v, want %s", header, strings.Join(statementColumns, ","))
		}
	}
	return nil
}

// Summarize classifies transactions into tax-relevant buckets. Matching is
// case-insensitive over description and category, first match wins:
// credits mentioning salary or income count as income; debits mentioning
// ppf/elss/investment/sip as 80C; insurance/premium as 80D; emi/loan/interest
// as home loan interest. Everything negative also rolls into the per-category
// expense totals.
func (sa *StatementAnalyzer) Summarize(transactions []Transaction) FinancialSummary {
	summary := FinancialSummary{
		ExpensesByCategory: map[string]decimal.Decimal{},
		Transactions:       len(transactions),
	}

	months := map[string]bool{}

	for _, tx := range transactions {
		months[tx.Date.Format("2006-01")] = true

		if summary.From.IsZero() || tx.Date.Before(summary.From) {
			summary.From = tx.Date
		}
		if tx.Date.After(summary.To) {
			summary.To = tx.Date
		}

		if tx.Amount.IsNegative() {
			category := strings.ToLower(strings.TrimSpace(tx.Category))
			if category == "" {
				category = "uncategorized"
			}
			summary.ExpensesByCategory[category] = summary.ExpensesByCategory[category].Add(tx.Amount.Abs())
		}

		description := strings.ToLower(tx.Description)
		category := strings.ToLower(tx.Category)

		switch {
		case tx.Amount.IsPositive() && (strings.Contains(description, "salary") || strings.Contains(category, "income")):
			summary.SalaryCredits = summary.SalaryCredits.Add(tx.Amount)
		case tx.Amount.IsNegative() && matchesAny(description, category, "ppf", "elss", "investment", "sip"):
			summary.Investments80C = summary.Investments80C.Add(tx.Amount.Abs())
		case tx.Amount.IsNegative() && matchesAny(description, category, "insurance", "premium"):
			summary.InsurancePremiums = summary.InsurancePremiums.Add(tx.Amount.Abs())
		case tx.Amount.IsNegative() && matchesAny(description, category, "emi", "loan", "interest"):
			summary.LoanInterest = summary.LoanInterest.Add(tx.Amount.Abs())
		}
	}

	summary.MonthsObserved = len(months)

	return summary
}

func matchesAny(description, category string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(description, word) || strings.Contains(category, word) {
			return true
		}
	}
	return false
}

// BuildScenario annualizes the summary by the number of observed months and
// returns a scenario ready for a regime comparison. HRA cannot be inferred
// from statement rows and stays zero.
func (sa *StatementAnalyzer) BuildScenario(name string, summary FinancialSummary) *domain.TaxScenario {
	scenario := &domain.TaxScenario{Name: name}

	if summary.MonthsObserved == 0 {
		return scenario
	}

	factor := decimal.NewFromInt(12).Div(decimal.NewFromInt(int64(summary.MonthsObserved)))

	scenario.Income = summary.SalaryCredits.Mul(factor).Round(0)
	scenario.Section80C = summary.Investments80C.Mul(factor).Round(0)
	scenario.Section80D = summary.InsurancePremiums.Mul(factor).Round(0)
	scenario.HomeLoanInterest = summary.LoanInterest.Mul(factor).Round(0)

	return scenario
}

// AnalyzeStatement parses, summarizes and annualizes a statement in one call.
func (sa *StatementAnalyzer) AnalyzeStatement(r io.Reader, scenarioName string) (*domain.TaxScenario, FinancialSummary, error) {
	transactions, err := sa.ParseCSV(r)
	if err != nil {
		return nil, FinancialSummary{}, err
	}

	summary := sa.Summarize(transactions)

	return sa.BuildScenario(scenarioName, summary), summary, nil
}
