package compare

import (
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`
	Comparison   *domain.RegimeComparison

	// Key Metrics
	GrossIncome       decimal.Decimal `json:"grossIncome"`
	OldRegimeTax      decimal.Decimal `json:"oldRegimeTax"`
	NewRegimeTax      decimal.Decimal `json:"newRegimeTax"`
	RecommendedRegime string          `json:"recommendedRegime"`
	RecommendedTax    decimal.Decimal `json:"recommendedTax"`
	PotentialSavings  decimal.Decimal `json:"potentialSavings"`
	EffectiveRate     decimal.Decimal `json:"effectiveRate"`

	// Comparison to Base
	TaxDiffFromBase     decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase      decimal.Decimal `json:"taxPctFromBase"`
	SavingsDiffFromBase decimal.Decimal `json:"savingsDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	FiscalYear         string             `json:"fiscalYear"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from regime comparisons
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a regime comparison
func (mc *MetricsCalculator) CalculateMetrics(comparison *domain.RegimeComparison) ComparisonResult {
	recommended := comparison.Recommended()

	return ComparisonResult{
		ScenarioName:      comparison.ScenarioName,
		Comparison:        comparison,
		GrossIncome:       recommended.GrossIncome,
		OldRegimeTax:      comparison.OldRegime.TotalTaxLiability,
		NewRegimeTax:      comparison.NewRegime.TotalTaxLiability,
		RecommendedRegime: comparison.RecommendedRegime,
		RecommendedTax:    recommended.TotalTaxLiability,
		PotentialSavings:  comparison.PotentialSavings,
		EffectiveRate:     recommended.EffectiveRate,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.RecommendedTax.Sub(base.RecommendedTax)

	if !base.RecommendedTax.IsZero() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.
			Div(base.RecommendedTax).
			Mul(decimal.NewFromInt(100))
	}

	scenario.SavingsDiffFromBase = scenario.PotentialSavings.Sub(base.PotentialSavings)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find lowest recommended tax
	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.RecommendedTax.LessThan(lowestTax.RecommendedTax) {
			lowestTax = alt
		}
	}

	if lowestTax != compSet.BaseResult {
		taxSavings := compSet.BaseResult.RecommendedTax.Sub(lowestTax.RecommendedTax)
		recommendations = append(recommendations,
			"Lowest Tax: "+lowestTax.ScenarioName+" pays ₹"+taxSavings.StringFixed(0)+
				" less than the base scenario")
	}

	// Find the widest regime gap
	widestGap := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PotentialSavings.GreaterThan(widestGap.PotentialSavings) {
			widestGap = alt
		}
	}

	if widestGap != compSet.BaseResult {
		recommendations = append(recommendations,
			"Biggest Regime Gap: "+widestGap.ScenarioName+" shows ₹"+
				widestGap.PotentialSavings.StringFixed(0)+" between regimes")
	}

	// Flag scenarios that flip the recommended regime
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.RecommendedRegime != compSet.BaseResult.RecommendedRegime {
			recommendations = append(recommendations,
				"Regime Switch: "+alt.ScenarioName+" flips the recommendation to the "+
					domain.RegimeDisplayName(alt.RecommendedRegime))
		}
	}

	return recommendations
}
