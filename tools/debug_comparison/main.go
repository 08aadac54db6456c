package main

import (
	"fmt"
	"os"

	calc "github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/config"
	"github.com/taxwise/taxwise/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_comparison <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	rules, err := config.ResolveFiscalYear(cfg, nil)
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngineWithRules(rules)
	report, err := engine.RunScenarios(cfg)
	if err != nil {
		panic(err)
	}
	if len(report.Comparisons) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Header
	fmt.Println("Scenario,Gross,OldTaxable,OldTax,NewTaxable,NewTax,Recommended,Savings")
	for i := range report.Comparisons {
		comp := &report.Comparisons[i]
		fmt.Printf("%s,%s,%s,%s,%s,%s,%s,%s\n",
			comp.ScenarioName,
			comp.OldRegime.GrossIncome.StringFixed(0),
			comp.OldRegime.TaxableIncome.StringFixed(0),
			comp.OldRegime.TotalTaxLiability.StringFixed(2),
			comp.NewRegime.TaxableIncome.StringFixed(0),
			comp.NewRegime.TotalTaxLiability.StringFixed(2),
			comp.RecommendedRegime,
			comp.PotentialSavings.StringFixed(2),
		)
	}

	// Slab-level detail for every scenario, both regimes
	for i := range report.Comparisons {
		comp := &report.Comparisons[i]
		fmt.Printf("\n%s:\n", comp.ScenarioName)
		printSlabs(&comp.OldRegime)
		printSlabs(&comp.NewRegime)
		printDeductions(&comp.OldRegime.Deductions)
	}

	// If at least two scenarios, show how the recommended liabilities diverge
	if len(report.Comparisons) >= 2 {
		a := &report.Comparisons[0]
		b := &report.Comparisons[1]
		diff := a.Recommended().TotalTaxLiability.Sub(b.Recommended().TotalTaxLiability)
		fmt.Printf("\nRecommended liability diff (%s - %s): %s\n",
			a.ScenarioName, b.ScenarioName, diff.StringFixed(2))
	}
}

func printSlabs(result *domain.RegimeResult) {
	fmt.Printf("  %s: taxable=%s beforeCess=%s cess=%s total=%s\n",
		result.Regime,
		result.TaxableIncome.StringFixed(0),
		result.TaxBeforeCess.StringFixed(2),
		result.Cess.StringFixed(2),
		result.TotalTaxLiability.StringFixed(2))
	for _, slab := range result.SlabContributions {
		fmt.Printf("    %s,%s,%s,%s\n",
			slab.Label,
			slab.Rate.StringFixed(2),
			slab.TaxableAmount.StringFixed(0),
			slab.Tax.StringFixed(2))
	}
}

func printDeductions(deductions *domain.DeductionBreakdown) {
	fmt.Printf("  old regime deductions: 80C=%s 80D=%s HRA=%s std=%s other=%s total=%s\n",
		deductions.Section80C.StringFixed(0),
		deductions.Section80D.StringFixed(0),
		deductions.HRA.StringFixed(0),
		deductions.StandardDeduction.StringFixed(0),
		deductions.Other.StringFixed(0),
		deductions.Total().StringFixed(0))
}
