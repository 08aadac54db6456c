package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxScenario is the input to a regime comparison: one year of gross income
// plus the deduction amounts the taxpayer claims. All amounts are annual and
// non-negative; Validate enforces the contract before any calculation runs.
type TaxScenario struct {
	Name             string          `yaml:"name" json:"name"`
	Income           decimal.Decimal `yaml:"income" json:"income"`
	HRA              decimal.Decimal `yaml:"hra" json:"hra"`
	Section80C       decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80D       decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	HomeLoanInterest decimal.Decimal `yaml:"home_loan_interest" json:"home_loan_interest"`
	OtherDeductions  decimal.Decimal `yaml:"other_deductions" json:"other_deductions"`
}

// ValidationError reports a scenario field that violates the input contract.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validate checks every monetary field against the input contract. Negative
// amounts are rejected, never clamped; clamping would hide caller bugs.
func (s *TaxScenario) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"income", s.Income},
		{"hra", s.HRA},
		{"section_80c", s.Section80C},
		{"section_80d", s.Section80D},
		{"home_loan_interest", s.HomeLoanInterest},
		{"other_deductions", s.OtherDeductions},
	}

	for _, f := range fields {
		if f.value.IsNegative() {
			return NewValidationError(f.name, "amount cannot be negative")
		}
	}

	return nil
}

// ItemizedTotal returns the raw (pre-cap) sum of all claimed deductions.
func (s *TaxScenario) ItemizedTotal() decimal.Decimal {
	return s.HRA.
		Add(s.Section80C).
		Add(s.Section80D).
		Add(s.HomeLoanInterest).
		Add(s.OtherDeductions)
}

// DeepCopy creates an independent copy of the scenario.
func (s *TaxScenario) DeepCopy() *TaxScenario {
	copied := *s
	return &copied
}

// Configuration is the top-level input file: one or more named scenarios and
// the fiscal year whose statutory tables apply.
type Configuration struct {
	FiscalYear string        `yaml:"fiscal_year,omitempty" json:"fiscal_year,omitempty"`
	Scenarios  []TaxScenario `yaml:"scenarios" json:"scenarios"`
}

// FindScenario returns the named scenario, or nil if absent.
func (c *Configuration) FindScenario(name string) *TaxScenario {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i]
		}
	}
	return nil
}
