package advise

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/breakeven"
	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/domain"
)

// Suggestion is one deduction lever with remaining headroom. TaxSaving is the
// exact liability drop from claiming the full cap, recomputed through the
// engine rather than estimated from the marginal rate, so the new-regime
// floor is respected.
type Suggestion struct {
	Category  string          `json:"category"`
	Current   decimal.Decimal `json:"current"`
	Cap       decimal.Decimal `json:"cap"`
	Headroom  decimal.Decimal `json:"headroom"`
	TaxSaving decimal.Decimal `json:"tax_saving"`
	Note      string          `json:"note"`
}

// Advice bundles everything the optimize command reports for one scenario.
type Advice struct {
	ScenarioName string                   `json:"scenario_name"`
	FiscalYear   string                   `json:"fiscal_year"`
	Comparison   *domain.RegimeComparison `json:"comparison"`
	BreakEven    *breakeven.Result        `json:"break_even"`
	MarginalRate decimal.Decimal          `json:"marginal_rate"`
	Suggestions  []Suggestion             `json:"suggestions"`
	Summary      []string                 `json:"summary"`
}

// Advisor produces deduction suggestions for a scenario
type Advisor struct {
	Engine *calculation.CalculationEngine
	Solver *breakeven.Solver
}

// NewAdvisor creates an advisor backed by the given engine
func NewAdvisor(engine *calculation.CalculationEngine) *Advisor {
	return &Advisor{
		Engine: engine,
		Solver: breakeven.NewDefaultSolver(engine),
	}
}

// Advise compares both regimes, solves the break-even point and builds
// per-category suggestions for the scenario.
func (a *Advisor) Advise(ctx context.Context, scenario *domain.TaxScenario) (*Advice, error) {
	comparison, err := a.Engine.Compare(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to compare regimes: %w", err)
	}

	breakEven, err := a.Solver.Solve(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to solve break-even: %w", err)
	}

	rules := a.Engine.Rules()

	advice := &Advice{
		ScenarioName: scenario.Name,
		FiscalYear:   a.Engine.FiscalYear,
		Comparison:   comparison,
		BreakEven:    breakEven,
		MarginalRate: marginalRate(rules.OldRegime.Slabs, comparison.OldRegime.TaxableIncome),
	}

	suggestions, err := a.buildSuggestions(scenario, comparison, rules)
	if err != nil {
		return nil, err
	}
	advice.Suggestions = suggestions
	advice.Summary = buildSummary(advice)

	return advice, nil
}

// marginalRate returns the rate of the slab the taxable income falls in.
func marginalRate(slabs []domain.TaxSlab, taxable decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, slab := range slabs {
		if taxable.GreaterThan(slab.Lower) {
			rate = slab.Rate
		}
	}
	return rate
}

func (a *Advisor) buildSuggestions(scenario *domain.TaxScenario, comparison *domain.RegimeComparison, rules domain.FiscalYearRules) ([]Suggestion, error) {
	old := rules.OldRegime
	allowed := comparison.OldRegime.Deductions

	levers := []struct {
		category string
		current  decimal.Decimal
		cap      decimal.Decimal
		apply    func(*domain.TaxScenario, decimal.Decimal)
		note     string
	}{
		{
			category: "section_80c",
			current:  allowed.Section80C,
			cap:      old.Section80CCap,
			apply:    func(s *domain.TaxScenario, v decimal.Decimal) { s.Section80C = v },
			note:     "Invest the remaining 80C headroom (PPF, ELSS, life insurance)",
		},
		{
			category: "section_80d",
			current:  allowed.Section80D,
			cap:      old.Section80DCap,
			apply:    func(s *domain.TaxScenario, v decimal.Decimal) { s.Section80D = v },
			note:     "Top up health insurance premiums",
		},
		{
			category: "hra",
			current:  allowed.HRA,
			cap:      scenario.Income.Mul(old.HRAIncomeFraction),
			apply:    func(s *domain.TaxScenario, v decimal.Decimal) { s.HRA = v },
			note:     "Claimable only against rent actually paid",
		},
	}

	var suggestions []Suggestion
	for _, lever := range levers {
		headroom := lever.cap.Sub(lever.current)
		if !headroom.IsPositive() {
			continue
		}

		clone := scenario.DeepCopy()
		lever.apply(clone, lever.cap)

		maxed, err := a.Engine.Compare(clone)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s headroom: %w", lever.category, err)
		}

		saving := comparison.Recommended().TotalTaxLiability.
			Sub(maxed.Recommended().TotalTaxLiability)
		if saving.IsNegative() {
			saving = decimal.Zero
		}

		suggestions = append(suggestions, Suggestion{
			Category:  lever.category,
			Current:   lever.current,
			Cap:       lever.cap,
			Headroom:  headroom,
			TaxSaving: saving,
			Note:      lever.note,
		})
	}

	return suggestions, nil
}

func buildSummary(advice *Advice) []string {
	comparison := advice.Comparison

	summary := []string{
		fmt.Sprintf("Recommended regime: %s (saves ₹%s over the %s)",
			domain.RegimeDisplayName(comparison.RecommendedRegime),
			comparison.PotentialSavings.StringFixed(0),
			domain.RegimeDisplayName(otherRegime(comparison.RecommendedRegime))),
		fmt.Sprintf("Old-regime marginal slab rate: %s%%",
			advice.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(0)),
	}

	if best := largestLever(advice.Suggestions); best != nil {
		summary = append(summary, fmt.Sprintf("Largest single lever: %s headroom of ₹%s saves ₹%s",
			best.Category, best.Headroom.StringFixed(0), best.TaxSaving.StringFixed(0)))
	}

	if advice.BreakEven.AlreadyAhead {
		summary = append(summary, "The old regime already matches or beats the new regime at the current deductions")
	} else {
		summary = append(summary, fmt.Sprintf("Claim ₹%s more in deductions to break even with the new regime",
			advice.BreakEven.AdditionalNeeded.StringFixed(0)))
	}

	return summary
}

func otherRegime(regime string) string {
	if regime == domain.RegimeOld {
		return domain.RegimeNew
	}
	return domain.RegimeOld
}

func largestLever(suggestions []Suggestion) *Suggestion {
	var best *Suggestion
	for i := range suggestions {
		if best == nil || suggestions[i].TaxSaving.GreaterThan(best.TaxSaving) {
			best = &suggestions[i]
		}
	}
	return best
}
