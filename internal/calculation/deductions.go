package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// REGIME CALCULATION ASSUMPTIONS:
//
// 1. HRA exemption uses a simplified proxy: min(claimed HRA, 50% of gross
//    income). The full statutory three-way HRA test needs basic salary and
//    rent paid, which scenarios do not carry.
//
// 2. Section 24(b) home loan interest is applied uncapped under the old
//    regime and grouped with other deductions.
//
// 3. Health and education cess is a flat 4% on tax after slabs. Surcharge
//    for incomes above 50L is not modelled.
//
// 4. Rounding happens once, on the final liability, half away from zero.
//    Intermediate amounts keep full precision.

// RegimeCalculator computes the tax liability under a single regime for one
// fiscal year.
type RegimeCalculator struct {
	Regime     string
	FiscalYear string
	Rules      domain.RegimeRules
	CessRate   decimal.Decimal

	slabs *SlabCalculator
}

// NewOldRegimeFY2024 creates an old-regime calculator with the 2024-25
// statutory tables.
func NewOldRegimeFY2024() *RegimeCalculator {
	rules := domain.FY2024Rules()
	return NewRegimeCalculator(domain.RegimeOld, rules.FiscalYear, rules.OldRegime, rules.CessRate)
}

// NewNewRegimeFY2024 creates a new-regime calculator with the 2024-25
// statutory tables.
func NewNewRegimeFY2024() *RegimeCalculator {
	rules := domain.FY2024Rules()
	return NewRegimeCalculator(domain.RegimeNew, rules.FiscalYear, rules.NewRegime, rules.CessRate)
}

// NewRegimeCalculator creates a calculator with configurable regime rules, so
// loaded regulatory files can swap in other fiscal years.
func NewRegimeCalculator(regime, fiscalYear string, rules domain.RegimeRules, cessRate decimal.Decimal) *RegimeCalculator {
	return &RegimeCalculator{
		Regime:     regime,
		FiscalYear: fiscalYear,
		Rules:      rules,
		CessRate:   cessRate,
		slabs:      NewSlabCalculator(rules.Slabs),
	}
}

// ResolveDeductions applies the regime's caps to the scenario's claimed
// amounts. The standard deduction is granted unconditionally. Regimes that
// disallow itemization ignore every claimed amount.
func (rc *RegimeCalculator) ResolveDeductions(scenario *domain.TaxScenario) domain.DeductionBreakdown {
	breakdown := domain.DeductionBreakdown{
		StandardDeduction: rc.Rules.StandardDeduction,
	}

	if !rc.Rules.AllowsItemized {
		return breakdown
	}

	breakdown.Section80C = decimal.Min(scenario.Section80C, rc.Rules.Section80CCap)
	breakdown.Section80D = decimal.Min(scenario.Section80D, rc.Rules.Section80DCap)

	hraCap := scenario.Income.Mul(rc.Rules.HRAIncomeFraction)
	breakdown.HRA = decimal.Min(scenario.HRA, hraCap)

	breakdown.Other = scenario.HomeLoanInterest.Add(scenario.OtherDeductions)

	return breakdown
}

// Calculate runs the full pipeline for one scenario: validation, deduction
// resolution, slab tax, cess, and the final rounded liability.
func (rc *RegimeCalculator) Calculate(scenario *domain.TaxScenario) (*domain.RegimeResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	deductions := rc.ResolveDeductions(scenario)

	taxableIncome := scenario.Income.Sub(deductions.Total())
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	taxBeforeCess, contributions := rc.slabs.CalculateWithBreakdown(taxableIncome)
	cess := taxBeforeCess.Mul(rc.CessRate)
	totalTax := taxBeforeCess.Add(cess).Round(0)

	effectiveRate := decimal.Zero
	if scenario.Income.IsPositive() {
		effectiveRate = totalTax.Div(scenario.Income)
	}

	return &domain.RegimeResult{
		Regime:            rc.Regime,
		RegimeName:        rc.Rules.Name,
		FiscalYear:        rc.FiscalYear,
		GrossIncome:       scenario.Income,
		TaxableIncome:     taxableIncome,
		TaxBeforeCess:     taxBeforeCess,
		Cess:              cess,
		TotalTaxLiability: totalTax,
		EffectiveRate:     effectiveRate,
		Deductions:        deductions,
		SlabContributions: contributions,
	}, nil
}

// SlabTable exposes the full audit breakdown for the calculator's slab table
// at a given taxable income.
func (rc *RegimeCalculator) SlabTable(taxableIncome decimal.Decimal) []domain.SlabContribution {
	return rc.slabs.FullBreakdown(taxableIncome)
}
