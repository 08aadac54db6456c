package transform

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// SetIncome replaces the scenario's gross income with an absolute amount.
type SetIncome struct {
	Amount decimal.Decimal
}

func (si *SetIncome) Name() string {
	return "set_income"
}

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Set gross income to ₹%s", si.Amount.StringFixed(0))
}

func (si *SetIncome) Validate(base *domain.TaxScenario) error {
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", si.Amount), nil)
	}
	return nil
}

func (si *SetIncome) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.Income = si.Amount
	return modified, nil
}

// RaiseIncome adjusts gross income by a percentage. Positive values model a
// hike, negative values a pay cut down to -100%.
type RaiseIncome struct {
	Percent decimal.Decimal
}

func (ri *RaiseIncome) Name() string {
	return "raise_income"
}

func (ri *RaiseIncome) Description() string {
	if ri.Percent.IsNegative() {
		return fmt.Sprintf("Cut gross income by %s%%", ri.Percent.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Raise gross income by %s%%", ri.Percent.StringFixed(0))
}

func (ri *RaiseIncome) Validate(base *domain.TaxScenario) error {
	if base == nil {
		return NewTransformError(ri.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if ri.Percent.LessThan(decimal.NewFromInt(-100)) {
		return NewTransformError(ri.Name(), "validate",
			fmt.Sprintf("percent cannot cut income below zero, got %s", ri.Percent), nil)
	}
	return nil
}

func (ri *RaiseIncome) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	factor := decimal.NewFromInt(1).Add(ri.Percent.Div(decimal.NewFromInt(100)))
	modified.Income = modified.Income.Mul(factor)
	return modified, nil
}
