package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime identifiers used throughout results and the CLI.
const (
	RegimeOld = "old"
	RegimeNew = "new"
)

// DefaultFiscalYear is the assessment year applied when a configuration does
// not name one.
const DefaultFiscalYear = "2024-25"

// RegimeDisplayName maps a regime identifier to its user-facing name.
func RegimeDisplayName(regime string) string {
	switch regime {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return regime
	}
}

// TaxSlab is one bracket of a progressive slab table. A nil Upper marks the
// open-ended top slab.
type TaxSlab struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Label produces a display string for the slab's income range.
func (s TaxSlab) Label() string {
	if s.Upper == nil {
		return fmt.Sprintf("Above %s", s.Lower.StringFixed(0))
	}
	if s.Lower.IsZero() {
		return fmt.Sprintf("Up to %s", s.Upper.StringFixed(0))
	}
	return fmt.Sprintf("%s to %s", s.Lower.StringFixed(0), s.Upper.StringFixed(0))
}

// RegimeRules holds one regime's statutory parameters: its slab table,
// standard deduction, and (for regimes that allow itemization) the caps
// applied to claimed deductions.
type RegimeRules struct {
	Name              string          `yaml:"name" json:"name"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	AllowsItemized    bool            `yaml:"allows_itemized" json:"allows_itemized"`
	Section80CCap     decimal.Decimal `yaml:"section_80c_cap,omitempty" json:"section_80c_cap,omitempty"`
	Section80DCap     decimal.Decimal `yaml:"section_80d_cap,omitempty" json:"section_80d_cap,omitempty"`
	HRAIncomeFraction decimal.Decimal `yaml:"hra_income_fraction,omitempty" json:"hra_income_fraction,omitempty"`
	Slabs             []TaxSlab       `yaml:"slabs" json:"slabs"`
}

// Validate checks the slab table invariants: lower bounds strictly increasing
// from 0, contiguous ranges, non-decreasing rates, unbounded final slab.
func (r *RegimeRules) Validate() error {
	if len(r.Slabs) == 0 {
		return fmt.Errorf("regime %s: no slabs defined", r.Name)
	}

	if !r.Slabs[0].Lower.IsZero() {
		return fmt.Errorf("regime %s: first slab must start at 0, got %s", r.Name, r.Slabs[0].Lower)
	}

	for i, slab := range r.Slabs {
		last := i == len(r.Slabs)-1

		if last {
			if slab.Upper != nil {
				return fmt.Errorf("regime %s: final slab must be unbounded", r.Name)
			}
		} else {
			if slab.Upper == nil {
				return fmt.Errorf("regime %s: slab %d is unbounded but not final", r.Name, i)
			}
			if slab.Upper.LessThanOrEqual(slab.Lower) {
				return fmt.Errorf("regime %s: slab %d upper bound %s not above lower bound %s",
					r.Name, i, slab.Upper, slab.Lower)
			}
			next := r.Slabs[i+1]
			if !next.Lower.Equal(*slab.Upper) {
				return fmt.Errorf("regime %s: slab %d upper bound %s does not meet next lower bound %s",
					r.Name, i, slab.Upper, next.Lower)
			}
		}

		if slab.Rate.IsNegative() {
			return fmt.Errorf("regime %s: slab %d has negative rate", r.Name, i)
		}
		if i > 0 && slab.Rate.LessThan(r.Slabs[i-1].Rate) {
			return fmt.Errorf("regime %s: slab %d rate %s decreases from previous rate %s",
				r.Name, i, slab.Rate, r.Slabs[i-1].Rate)
		}
	}

	if r.StandardDeduction.IsNegative() {
		return fmt.Errorf("regime %s: standard deduction cannot be negative", r.Name)
	}
	if r.AllowsItemized {
		if r.Section80CCap.IsNegative() || r.Section80DCap.IsNegative() {
			return fmt.Errorf("regime %s: deduction caps cannot be negative", r.Name)
		}
		if r.HRAIncomeFraction.IsNegative() || r.HRAIncomeFraction.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("regime %s: hra income fraction must be between 0 and 1", r.Name)
		}
	}

	return nil
}

// FiscalYearRules groups both regimes plus the cess rate for one assessment
// year.
type FiscalYearRules struct {
	FiscalYear string          `yaml:"fiscal_year" json:"fiscal_year"`
	CessRate   decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
	OldRegime  RegimeRules     `yaml:"old_regime" json:"old_regime"`
	NewRegime  RegimeRules     `yaml:"new_regime" json:"new_regime"`
}

// Validate checks both regime tables and the cess rate.
func (fy *FiscalYearRules) Validate() error {
	if fy.FiscalYear == "" {
		return fmt.Errorf("fiscal year is required")
	}
	if fy.CessRate.IsNegative() || fy.CessRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("fiscal year %s: cess rate must be in [0, 1)", fy.FiscalYear)
	}
	if err := fy.OldRegime.Validate(); err != nil {
		return fmt.Errorf("fiscal year %s: %w", fy.FiscalYear, err)
	}
	if err := fy.NewRegime.Validate(); err != nil {
		return fmt.Errorf("fiscal year %s: %w", fy.FiscalYear, err)
	}
	return nil
}

// RegulatoryMetadata describes the provenance of a rules file.
type RegulatoryMetadata struct {
	Description string `yaml:"description" json:"description"`
	Source      string `yaml:"source" json:"source"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
}

// RegulatoryConfig is a loadable set of fiscal-year tables. It supplements or
// overrides the built-in years, so future assessment years can be added
// without touching the calculation code.
type RegulatoryConfig struct {
	Metadata    RegulatoryMetadata         `yaml:"metadata" json:"metadata"`
	FiscalYears map[string]FiscalYearRules `yaml:"fiscal_years" json:"fiscal_years"`
}

// Validate checks every fiscal year in the config.
func (rc *RegulatoryConfig) Validate() error {
	if len(rc.FiscalYears) == 0 {
		return fmt.Errorf("no fiscal years defined")
	}
	for year, rules := range rc.FiscalYears {
		if rules.FiscalYear == "" {
			rules.FiscalYear = year
			rc.FiscalYears[year] = rules
		}
		if rules.FiscalYear != year {
			return fmt.Errorf("fiscal year key %q does not match entry %q", year, rules.FiscalYear)
		}
		if err := rules.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func dec(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func decPtr(value int64) *decimal.Decimal {
	d := decimal.NewFromInt(value)
	return &d
}

// FY2024Rules returns the statutory tables for assessment year 2024-25.
func FY2024Rules() FiscalYearRules {
	return FiscalYearRules{
		FiscalYear: "2024-25",
		CessRate:   decimal.NewFromFloat(0.04),
		OldRegime: RegimeRules{
			Name:              "Old Regime",
			StandardDeduction: dec(50000),
			AllowsItemized:    true,
			Section80CCap:     dec(150000),
			Section80DCap:     dec(25000),
			HRAIncomeFraction: decimal.NewFromFloat(0.5),
			Slabs: []TaxSlab{
				{Lower: dec(0), Upper: decPtr(250000), Rate: decimal.Zero},
				{Lower: dec(250000), Upper: decPtr(500000), Rate: decimal.NewFromFloat(0.05)},
				{Lower: dec(500000), Upper: decPtr(1000000), Rate: decimal.NewFromFloat(0.20)},
				{Lower: dec(1000000), Upper: nil, Rate: decimal.NewFromFloat(0.30)},
			},
		},
		NewRegime: RegimeRules{
			Name:              "New Regime",
			StandardDeduction: dec(75000),
			AllowsItemized:    false,
			Slabs: []TaxSlab{
				{Lower: dec(0), Upper: decPtr(300000), Rate: decimal.Zero},
				{Lower: dec(300000), Upper: decPtr(700000), Rate: decimal.NewFromFloat(0.05)},
				{Lower: dec(700000), Upper: decPtr(1000000), Rate: decimal.NewFromFloat(0.10)},
				{Lower: dec(1000000), Upper: decPtr(1200000), Rate: decimal.NewFromFloat(0.15)},
				{Lower: dec(1200000), Upper: decPtr(1500000), Rate: decimal.NewFromFloat(0.20)},
				{Lower: dec(1500000), Upper: nil, Rate: decimal.NewFromFloat(0.30)},
			},
		},
	}
}

// FY2023Rules returns the statutory tables for assessment year 2023-24.
func FY2023Rules() FiscalYearRules {
	return FiscalYearRules{
		FiscalYear: "2023-24",
		CessRate:   decimal.NewFromFloat(0.04),
		OldRegime: RegimeRules{
			Name:              "Old Regime",
			StandardDeduction: dec(50000),
			AllowsItemized:    true,
			Section80CCap:     dec(150000),
			Section80DCap:     dec(25000),
			HRAIncomeFraction: decimal.NewFromFloat(0.5),
			Slabs: []TaxSlab{
				{Lower: dec(0), Upper: decPtr(250000), Rate: decimal.Zero},
				{Lower: dec(250000), Upper: decPtr(500000), Rate: decimal.NewFromFloat(0.05)},
				{Lower: dec(500000), Upper: decPtr(1000000), Rate: decimal.NewFromFloat(0.20)},
				{Lower: dec(1000000), Upper: nil, Rate: decimal.NewFromFloat(0.30)},
			},
		},
		NewRegime: RegimeRules{
			Name:              "New Regime",
			StandardDeduction: dec(50000),
			AllowsItemized:    false,
			Slabs: []TaxSlab{
				{Lower: dec(0), Upper: decPtr(300000), Rate: decimal.Zero},
				{Lower: dec(300000), Upper: decPtr(600000), Rate: decimal.NewFromFloat(0.05)},
				{Lower: dec(600000), Upper: decPtr(900000), Rate: decimal.NewFromFloat(0.10)},
				{Lower: dec(900000), Upper: decPtr(1200000), Rate: decimal.NewFromFloat(0.15)},
				{Lower: dec(1200000), Upper: decPtr(1500000), Rate: decimal.NewFromFloat(0.20)},
				{Lower: dec(1500000), Upper: nil, Rate: decimal.NewFromFloat(0.30)},
			},
		},
	}
}

// BuiltinFiscalYears returns every fiscal year shipped with the binary, keyed
// by assessment year.
func BuiltinFiscalYears() map[string]FiscalYearRules {
	return map[string]FiscalYearRules{
		"2024-25": FY2024Rules(),
		"2023-24": FY2023Rules(),
	}
}

// LookupFiscalYear resolves a built-in assessment year.
func LookupFiscalYear(year string) (FiscalYearRules, bool) {
	rules, ok := BuiltinFiscalYears()[year]
	return rules, ok
}
