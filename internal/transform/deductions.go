package transform

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// Set80C replaces the Section 80C claim with an absolute amount.
type Set80C struct {
	Amount decimal.Decimal
}

func (s *Set80C) Name() string {
	return "set_80c"
}

func (s *Set80C) Description() string {
	return fmt.Sprintf("Set Section 80C investments to ₹%s", s.Amount.StringFixed(0))
}

func (s *Set80C) Validate(base *domain.TaxScenario) error {
	return validateAmount(s.Name(), base, s.Amount)
}

func (s *Set80C) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.Section80C = s.Amount
	return modified, nil
}

// Max80C raises the Section 80C claim to the statutory cap.
type Max80C struct {
	Cap decimal.Decimal
}

func (m *Max80C) Name() string {
	return "max_80c"
}

func (m *Max80C) Description() string {
	return fmt.Sprintf("Claim the full Section 80C cap of ₹%s", m.Cap.StringFixed(0))
}

func (m *Max80C) Validate(base *domain.TaxScenario) error {
	return validateAmount(m.Name(), base, m.Cap)
}

func (m *Max80C) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.Section80C = m.Cap
	return modified, nil
}

// Set80D replaces the Section 80D claim with an absolute amount.
type Set80D struct {
	Amount decimal.Decimal
}

func (s *Set80D) Name() string {
	return "set_80d"
}

func (s *Set80D) Description() string {
	return fmt.Sprintf("Set health insurance premium to ₹%s", s.Amount.StringFixed(0))
}

func (s *Set80D) Validate(base *domain.TaxScenario) error {
	return validateAmount(s.Name(), base, s.Amount)
}

func (s *Set80D) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.Section80D = s.Amount
	return modified, nil
}

// Max80D raises the Section 80D claim to the statutory cap.
type Max80D struct {
	Cap decimal.Decimal
}

func (m *Max80D) Name() string {
	return "max_80d"
}

func (m *Max80D) Description() string {
	return fmt.Sprintf("Claim the full Section 80D cap of ₹%s", m.Cap.StringFixed(0))
}

func (m *Max80D) Validate(base *domain.TaxScenario) error {
	return validateAmount(m.Name(), base, m.Cap)
}

func (m *Max80D) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.Section80D = m.Cap
	return modified, nil
}

// SetHRA replaces the HRA claim with an absolute amount.
type SetHRA struct {
	Amount decimal.Decimal
}

func (s *SetHRA) Name() string {
	return "set_hra"
}

func (s *SetHRA) Description() string {
	return fmt.Sprintf("Set HRA claim to ₹%s", s.Amount.StringFixed(0))
}

func (s *SetHRA) Validate(base *domain.TaxScenario) error {
	return validateAmount(s.Name(), base, s.Amount)
}

func (s *SetHRA) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.HRA = s.Amount
	return modified, nil
}

// SetHomeLoanInterest replaces the home loan interest claim.
type SetHomeLoanInterest struct {
	Amount decimal.Decimal
}

func (s *SetHomeLoanInterest) Name() string {
	return "set_home_loan_interest"
}

func (s *SetHomeLoanInterest) Description() string {
	return fmt.Sprintf("Set home loan interest to ₹%s", s.Amount.StringFixed(0))
}

func (s *SetHomeLoanInterest) Validate(base *domain.TaxScenario) error {
	return validateAmount(s.Name(), base, s.Amount)
}

func (s *SetHomeLoanInterest) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.HomeLoanInterest = s.Amount
	return modified, nil
}

// SetOtherDeductions replaces the residual deduction bucket.
type SetOtherDeductions struct {
	Amount decimal.Decimal
}

func (s *SetOtherDeductions) Name() string {
	return "set_other_deductions"
}

func (s *SetOtherDeductions) Description() string {
	return fmt.Sprintf("Set other deductions to ₹%s", s.Amount.StringFixed(0))
}

func (s *SetOtherDeductions) Validate(base *domain.TaxScenario) error {
	return validateAmount(s.Name(), base, s.Amount)
}

func (s *SetOtherDeductions) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.OtherDeductions = s.Amount
	return modified, nil
}

// ZeroDeductions clears every itemized claim, leaving income untouched. The
// result shows what the old regime costs with nothing to deduct.
type ZeroDeductions struct{}

func (z *ZeroDeductions) Name() string {
	return "no_deductions"
}

func (z *ZeroDeductions) Description() string {
	return "Clear all itemized deduction claims"
}

func (z *ZeroDeductions) Validate(base *domain.TaxScenario) error {
	if base == nil {
		return NewTransformError(z.Name(), "validate", "base scenario cannot be nil", nil)
	}
	return nil
}

func (z *ZeroDeductions) Apply(base *domain.TaxScenario) (*domain.TaxScenario, error) {
	modified := base.DeepCopy()
	modified.HRA = decimal.Zero
	modified.Section80C = decimal.Zero
	modified.Section80D = decimal.Zero
	modified.HomeLoanInterest = decimal.Zero
	modified.OtherDeductions = decimal.Zero
	return modified, nil
}

func validateAmount(name string, base *domain.TaxScenario, amount decimal.Decimal) error {
	if base == nil {
		return NewTransformError(name, "validate", "base scenario cannot be nil", nil)
	}
	if amount.IsNegative() {
		return NewTransformError(name, "validate", fmt.Sprintf("amount must be non-negative, got %s", amount), nil)
	}
	return nil
}
