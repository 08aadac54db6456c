package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/ingest"
)

// StatementConsoleFormatter formats bank statement analysis output for console
type StatementConsoleFormatter struct{}

func (scf StatementConsoleFormatter) Name() string { return "console" }

func (scf StatementConsoleFormatter) FormatStatementSummary(summary *ingest.FinancialSummary) (string, error) {
	if summary == nil {
		return "", fmt.Errorf("summary cannot be nil")
	}

	var buf bytes.Buffer

	fmt.Fprintln(&buf, "BANK STATEMENT ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))

	if summary.MonthsObserved > 0 {
		fmt.Fprintf(&buf, "Period:       %s to %s (%d months observed)\n",
			summary.From.Format("2006-01-02"),
			summary.To.Format("2006-01-02"),
			summary.MonthsObserved)
	}
	fmt.Fprintf(&buf, "Transactions: %d\n", summary.Transactions)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "OBSERVED TOTALS:")
	fmt.Fprintf(&buf, "  Salary Credits:      %s\n", FormatCurrency(summary.SalaryCredits))
	fmt.Fprintf(&buf, "  80C Investments:     %s\n", FormatCurrency(summary.Investments80C))
	fmt.Fprintf(&buf, "  Insurance Premiums:  %s\n", FormatCurrency(summary.InsurancePremiums))
	fmt.Fprintf(&buf, "  Loan Payments:       %s\n", FormatCurrency(summary.LoanInterest))
	fmt.Fprintln(&buf)

	if len(summary.ExpensesByCategory) > 0 {
		fmt.Fprintln(&buf, "EXPENSES BY CATEGORY:")
		categories := make([]string, 0, len(summary.ExpensesByCategory))
		for category := range summary.ExpensesByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Fprintf(&buf, "  %-20s %s\n", category+":", FormatCurrency(summary.ExpensesByCategory[category]))
		}
		fmt.Fprintln(&buf)
	}

	return buf.String(), nil
}

// FormatDerivedScenario renders the annualized scenario built from a
// statement summary.
func (scf StatementConsoleFormatter) FormatDerivedScenario(scenario *domain.TaxScenario, monthsObserved int) (string, error) {
	if scenario == nil {
		return "", fmt.Errorf("scenario cannot be nil")
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "DERIVED ANNUAL SCENARIO: %s\n", scenario.Name)
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	if monthsObserved > 0 {
		fmt.Fprintf(&buf, "Annualized from %d observed months\n\n", monthsObserved)
	}

	fmt.Fprintf(&buf, "  Annual Income:       %s\n", FormatCurrency(scenario.Income))
	fmt.Fprintf(&buf, "  Section 80C:         %s\n", FormatCurrency(scenario.Section80C))
	fmt.Fprintf(&buf, "  Section 80D:         %s\n", FormatCurrency(scenario.Section80D))
	fmt.Fprintf(&buf, "  Home Loan Interest:  %s\n", FormatCurrency(scenario.HomeLoanInterest))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Review the derived figures before comparing regimes: statement")
	fmt.Fprintln(&buf, "classification is keyword based and EMI amounts include principal.")

	return buf.String(), nil
}

// FormatStatementSummaryJSON formats statement analysis for JSON output
func (scf StatementConsoleFormatter) FormatStatementSummaryJSON(summary *ingest.FinancialSummary) (string, error) {
	if summary == nil {
		return "", fmt.Errorf("summary cannot be nil")
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
