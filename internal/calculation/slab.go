package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// SlabCalculator applies a progressive slab table to taxable income. Each
// rupee is taxed at the rate of the slab it falls in, so marginal rate changes
// never produce a discontinuity in total tax.
type SlabCalculator struct {
	Slabs []domain.TaxSlab
}

// NewSlabCalculator creates a calculator for the given slab table. The table
// is assumed validated (contiguous, first slab at zero, unbounded final slab).
func NewSlabCalculator(slabs []domain.TaxSlab) *SlabCalculator {
	return &SlabCalculator{Slabs: slabs}
}

// Calculate returns the total slab tax on taxable income.
func (sc *SlabCalculator) Calculate(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, slab := range sc.Slabs {
		if taxableIncome.LessThanOrEqual(slab.Lower) {
			break
		}
		upper := taxableIncome
		if slab.Upper != nil {
			upper = decimal.Min(taxableIncome, *slab.Upper)
		}
		incomeInSlab := upper.Sub(slab.Lower)
		if incomeInSlab.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInSlab.Mul(slab.Rate))
		}
	}

	return totalTax
}

// CalculateWithBreakdown returns the total slab tax along with the
// contribution of each slab that actually taxed income. Zero-contribution
// slabs are omitted; use FullBreakdown for the complete table.
func (sc *SlabCalculator) CalculateWithBreakdown(taxableIncome decimal.Decimal) (decimal.Decimal, []domain.SlabContribution) {
	var totalTax decimal.Decimal
	var contributions []domain.SlabContribution

	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, contributions
	}

	for _, slab := range sc.Slabs {
		if taxableIncome.LessThanOrEqual(slab.Lower) {
			break
		}
		upper := taxableIncome
		if slab.Upper != nil {
			upper = decimal.Min(taxableIncome, *slab.Upper)
		}
		incomeInSlab := upper.Sub(slab.Lower)
		if incomeInSlab.GreaterThan(decimal.Zero) {
			slabTax := incomeInSlab.Mul(slab.Rate)
			totalTax = totalTax.Add(slabTax)
			if slabTax.GreaterThan(decimal.Zero) {
				contributions = append(contributions, domain.SlabContribution{
					Label:         slab.Label(),
					Lower:         slab.Lower,
					Upper:         slab.Upper,
					Rate:          slab.Rate,
					TaxableAmount: incomeInSlab,
					Tax:           slabTax,
				})
			}
		}
	}

	return totalTax, contributions
}

// FullBreakdown returns one row per slab in the table, including slabs the
// taxable income never reached. Intended for audit display.
func (sc *SlabCalculator) FullBreakdown(taxableIncome decimal.Decimal) []domain.SlabContribution {
	rows := make([]domain.SlabContribution, 0, len(sc.Slabs))

	for _, slab := range sc.Slabs {
		row := domain.SlabContribution{
			Label: slab.Label(),
			Lower: slab.Lower,
			Upper: slab.Upper,
			Rate:  slab.Rate,
		}
		if taxableIncome.GreaterThan(slab.Lower) {
			upper := taxableIncome
			if slab.Upper != nil {
				upper = decimal.Min(taxableIncome, *slab.Upper)
			}
			row.TaxableAmount = upper.Sub(slab.Lower)
			row.Tax = row.TaxableAmount.Mul(slab.Rate)
		}
		rows = append(rows, row)
	}

	return rows
}
