package main

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/domain"
)

func main() {
	years := domain.BuiltinFiscalYears()
	names := make([]string, 0, len(years))
	for name := range years {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rules := years[name]
		fmt.Printf("FISCAL YEAR %s (cess %s%%)\n", name,
			rules.CessRate.Mul(decimal.NewFromInt(100)).StringFixed(0))
		printRegime(rules.OldRegime)
		printRegime(rules.NewRegime)
	}

	fmt.Println("Sample liabilities (no itemized claims, 2024-25):")
	engine := calculation.NewCalculationEngine()
	for _, income := range []int64{300000, 500000, 750000, 1000000, 1200000, 1500000, 2500000} {
		scenario := &domain.TaxScenario{
			Name:   fmt.Sprintf("income_%d", income),
			Income: decimal.NewFromInt(income),
		}
		comparison, err := engine.Compare(scenario)
		if err != nil {
			panic(err)
		}
		fmt.Printf("  %10d  old=%-12s new=%-12s -> %s\n",
			income,
			comparison.OldRegime.TotalTaxLiability.StringFixed(0),
			comparison.NewRegime.TotalTaxLiability.StringFixed(0),
			domain.RegimeDisplayName(comparison.RecommendedRegime))
	}

	fmt.Println("\nPer-slab contributions for a bare 12L income:")
	for _, regime := range []string{domain.RegimeOld, domain.RegimeNew} {
		result, err := engine.CalculateRegime(&domain.TaxScenario{
			Name:   "bare_12L",
			Income: decimal.NewFromInt(1200000),
		}, regime)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s (taxable %s):\n", result.RegimeName, result.TaxableIncome.StringFixed(0))
		for _, slab := range result.SlabContributions {
			fmt.Printf("  %-22s rate=%-4s taxable=%-10s tax=%s\n",
				slab.Label,
				slab.Rate.StringFixed(2),
				slab.TaxableAmount.StringFixed(0),
				slab.Tax.StringFixed(0))
		}
		fmt.Printf("  before cess=%s cess=%s total=%s\n",
			result.TaxBeforeCess.StringFixed(2),
			result.Cess.StringFixed(2),
			result.TotalTaxLiability.StringFixed(0))
	}
}

func printRegime(regime domain.RegimeRules) {
	fmt.Printf("  %s (standard deduction %s):\n", regime.Name, regime.StandardDeduction.StringFixed(0))
	for _, slab := range regime.Slabs {
		fmt.Printf("    %-22s %s%%\n", slab.Label(),
			slab.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0))
	}
	if regime.AllowsItemized {
		fmt.Printf("    caps: 80C=%s 80D=%s HRA<=%s%% of income\n",
			regime.Section80CCap.StringFixed(0),
			regime.Section80DCap.StringFixed(0),
			regime.HRAIncomeFraction.Mul(decimal.NewFromInt(100)).StringFixed(0))
	}
	fmt.Println()
}
