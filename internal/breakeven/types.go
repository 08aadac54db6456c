package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SolverOptions bound the search.
type SolverOptions struct {
	MaxIterations int `json:"max_iterations"`
}

// DefaultSolverOptions returns solver defaults. Bisection over a rupee range
// converges in well under 64 steps for any realistic income.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{MaxIterations: 64}
}

// Result describes the deduction level at which the old regime catches up
// with the new regime for one scenario.
type Result struct {
	ScenarioName string          `json:"scenario_name,omitempty"`
	FiscalYear   string          `json:"fiscal_year"`
	GrossIncome  decimal.Decimal `json:"gross_income"`

	// NewRegimeTax is the fixed target: deductions cannot move it.
	NewRegimeTax decimal.Decimal `json:"new_regime_tax"`

	// CurrentItemized is the scenario's allowed itemized total under the old
	// regime, after caps.
	CurrentItemized decimal.Decimal `json:"current_itemized"`
	CurrentOldTax   decimal.Decimal `json:"current_old_tax"`

	// BreakEvenDeductions is the smallest whole-rupee itemized total at
	// which the old regime liability drops to or below the new regime's.
	BreakEvenDeductions decimal.Decimal `json:"break_even_deductions"`

	// AdditionalNeeded is how much more the taxpayer would have to claim on
	// top of CurrentItemized. Zero when the old regime is already ahead.
	AdditionalNeeded decimal.Decimal `json:"additional_needed"`

	// AlreadyAhead reports that the current deductions already put the old
	// regime at or below the new regime.
	AlreadyAhead bool `json:"already_ahead"`

	Iterations int `json:"iterations"`
}

// CurvePoint is one income level of a break-even sweep.
type CurvePoint struct {
	Income              decimal.Decimal `json:"income"`
	NewRegimeTax        decimal.Decimal `json:"new_regime_tax"`
	BreakEvenDeductions decimal.Decimal `json:"break_even_deductions"`
}

// BreakEvenError describes a solver failure.
type BreakEvenError struct {
	Operation string
	Message   string
}

func (e *BreakEvenError) Error() string {
	return fmt.Sprintf("break-even %s: %s", e.Operation, e.Message)
}
