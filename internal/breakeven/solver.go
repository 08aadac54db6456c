package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/domain"
)

// Solver finds the itemized deduction level at which the old regime stops
// losing to the new regime. Old-regime tax is monotone non-increasing in
// allowed deductions, so the crossing point is found by bisection on whole
// rupees.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a break-even solver.
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve computes the break-even deduction level for a scenario. The search
// treats deductions as a single uncapped total replacing the scenario's
// claims, since capped categories cannot exceed their caps anyway.
func (s *Solver) Solve(ctx context.Context, scenario *domain.TaxScenario) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	newResult, err := s.CalcEngine.NewRegime.Calculate(scenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: err.Error()}
	}
	oldResult, err := s.CalcEngine.OldRegime.Calculate(scenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: err.Error()}
	}

	result := &Result{
		ScenarioName:    scenario.Name,
		FiscalYear:      s.CalcEngine.FiscalYear,
		GrossIncome:     scenario.Income,
		NewRegimeTax:    newResult.TotalTaxLiability,
		CurrentItemized: oldResult.Deductions.ItemizedTotal(),
		CurrentOldTax:   oldResult.TotalTaxLiability,
		AlreadyAhead:    oldResult.TotalTaxLiability.LessThanOrEqual(newResult.TotalTaxLiability),
	}

	target := newResult.TotalTaxLiability

	// Bisection on integer rupees. oldTaxAt(income) is always zero, so the
	// invariant oldTaxAt(hi) <= target holds from the start.
	lo := int64(0)
	hi := scenario.Income.IntPart()
	iterations := 0

	for lo < hi {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		iterations++
		if iterations > s.Options.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("no convergence after %d iterations", s.Options.MaxIterations),
			}
		}

		mid := lo + (hi-lo)/2
		tax, err := s.oldTaxAt(scenario, decimal.NewFromInt(mid))
		if err != nil {
			return nil, err
		}

		if tax.LessThanOrEqual(target) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	result.BreakEvenDeductions = decimal.NewFromInt(lo)
	result.Iterations = iterations

	additional := result.BreakEvenDeductions.Sub(result.CurrentItemized)
	if additional.IsNegative() {
		additional = decimal.Zero
	}
	result.AdditionalNeeded = additional

	return result, nil
}

// Sweep computes break-even deductions across an income range. Step must be
// positive and from must not exceed to.
func (s *Solver) Sweep(ctx context.Context, from, to, step decimal.Decimal) ([]CurvePoint, error) {
	if !step.IsPositive() {
		return nil, &BreakEvenError{Operation: "sweep", Message: "step must be positive"}
	}
	if from.GreaterThan(to) {
		return nil, &BreakEvenError{Operation: "sweep", Message: "from exceeds to"}
	}
	if from.IsNegative() {
		return nil, &BreakEvenError{Operation: "sweep", Message: "income cannot be negative"}
	}

	var points []CurvePoint
	for income := from; income.LessThanOrEqual(to); income = income.Add(step) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		probe := &domain.TaxScenario{Name: "sweep", Income: income}
		res, err := s.Solve(ctx, probe)
		if err != nil {
			return nil, err
		}
		points = append(points, CurvePoint{
			Income:              income,
			NewRegimeTax:        res.NewRegimeTax,
			BreakEvenDeductions: res.BreakEvenDeductions,
		})
	}

	return points, nil
}

// oldTaxAt prices the scenario under the old regime with its itemized claims
// replaced by a single uncapped deduction total.
func (s *Solver) oldTaxAt(scenario *domain.TaxScenario, deductions decimal.Decimal) (decimal.Decimal, error) {
	probe := scenario.DeepCopy()
	probe.HRA = decimal.Zero
	probe.Section80C = decimal.Zero
	probe.Section80D = decimal.Zero
	probe.HomeLoanInterest = decimal.Zero
	probe.OtherDeductions = deductions

	result, err := s.CalcEngine.OldRegime.Calculate(probe)
	if err != nil {
		return decimal.Zero, &BreakEvenError{Operation: "solve", Message: err.Error()}
	}
	return result.TotalTaxLiability, nil
}
