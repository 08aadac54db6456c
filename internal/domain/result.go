package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionBreakdown maps each deduction category to the amount actually
// allowed after caps, not the raw claimed amount.
type DeductionBreakdown struct {
	Section80C        decimal.Decimal `json:"section_80c"`
	Section80D        decimal.Decimal `json:"section_80d"`
	HRA               decimal.Decimal `json:"hra"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	Other             decimal.Decimal `json:"other"`
}

// Total sums every allowed category.
func (db DeductionBreakdown) Total() decimal.Decimal {
	return db.Section80C.
		Add(db.Section80D).
		Add(db.HRA).
		Add(db.StandardDeduction).
		Add(db.Other)
}

// ItemizedTotal sums the allowed categories excluding the standard deduction.
func (db DeductionBreakdown) ItemizedTotal() decimal.Decimal {
	return db.Total().Sub(db.StandardDeduction)
}

// SlabContribution records the tax attributable to a single slab.
type SlabContribution struct {
	Label         string           `json:"label"`
	Lower         decimal.Decimal  `json:"lower"`
	Upper         *decimal.Decimal `json:"upper,omitempty"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Tax           decimal.Decimal  `json:"tax"`
}

// RegimeResult is the full tax computation for one regime.
type RegimeResult struct {
	Regime            string             `json:"regime"`
	RegimeName        string             `json:"regime_name"`
	FiscalYear        string             `json:"fiscal_year"`
	GrossIncome       decimal.Decimal    `json:"gross_income"`
	TaxableIncome     decimal.Decimal    `json:"taxable_income"`
	TaxBeforeCess     decimal.Decimal    `json:"tax_before_cess"`
	Cess              decimal.Decimal    `json:"cess"`
	TotalTaxLiability decimal.Decimal    `json:"total_tax_liability"`
	EffectiveRate     decimal.Decimal    `json:"effective_rate"`
	Deductions        DeductionBreakdown `json:"deductions"`
	SlabContributions []SlabContribution `json:"slab_contributions"`
}

// RegimeComparison pairs both regime results with the recommendation and the
// savings delta.
type RegimeComparison struct {
	ScenarioName      string          `json:"scenario_name,omitempty"`
	FiscalYear        string          `json:"fiscal_year"`
	OldRegime         RegimeResult    `json:"old_regime"`
	NewRegime         RegimeResult    `json:"new_regime"`
	RecommendedRegime string          `json:"recommended_regime"`
	PotentialSavings  decimal.Decimal `json:"potential_savings"`
}

// Recommended returns the result of the recommended regime.
func (rc *RegimeComparison) Recommended() *RegimeResult {
	if rc.RecommendedRegime == RegimeOld {
		return &rc.OldRegime
	}
	return &rc.NewRegime
}

// TaxReport aggregates regime comparisons for every scenario in a
// configuration run.
type TaxReport struct {
	FiscalYear  string             `json:"fiscal_year"`
	GeneratedAt time.Time          `json:"generated_at"`
	Comparisons []RegimeComparison `json:"comparisons"`
}

// BestScenario returns the comparison with the lowest recommended liability,
// or nil for an empty report.
func (tr *TaxReport) BestScenario() *RegimeComparison {
	var best *RegimeComparison
	for i := range tr.Comparisons {
		comp := &tr.Comparisons[i]
		if best == nil || comp.Recommended().TotalTaxLiability.LessThan(best.Recommended().TotalTaxLiability) {
			best = comp
		}
	}
	return best
}
