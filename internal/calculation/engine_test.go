package calculation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxwise/taxwise/internal/domain"
)

// TestLogger collects log lines for assertions.
type TestLogger struct {
	Lines []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.Lines = append(l.Lines, format) }
func (l *TestLogger) Infof(format string, args ...any)  { l.Lines = append(l.Lines, format) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.Lines = append(l.Lines, format) }
func (l *TestLogger) Errorf(format string, args ...any) { l.Lines = append(l.Lines, format) }

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.OldRegime, "Should initialize old regime calculator")
	assert.NotNil(t, engine.NewRegime, "Should initialize new regime calculator")
	assert.Equal(t, "2024-25", engine.FiscalYear, "Should default to the current fiscal year")
}

func TestNewCalculationEngineWithRules(t *testing.T) {
	engine := NewCalculationEngineWithRules(domain.FY2023Rules())

	assert.Equal(t, "2023-24", engine.FiscalYear)
	assert.True(t, engine.NewRegime.Rules.StandardDeduction.Equal(decimal.NewFromInt(50000)),
		"Should carry the 2023-24 new regime standard deduction")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()
	engine.Debug = true

	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.Compare(&domain.TaxScenario{Name: "Logged", Income: decimal.NewFromInt(1000000)})
	assert.NoError(t, err)
	assert.NotEmpty(t, logger.Lines, "Debug mode should emit log lines")

	// Nil logger keeps the previous one rather than panicking.
	engine.SetLogger(nil)
	_, err = engine.Compare(&domain.TaxScenario{Name: "Still logged", Income: decimal.NewFromInt(1000000)})
	assert.NoError(t, err)
}

func TestCalculationEngine_CalculateRegime(t *testing.T) {
	engine := NewCalculationEngine()
	scenario := &domain.TaxScenario{Income: decimal.NewFromInt(1200000)}

	oldResult, err := engine.CalculateRegime(scenario, domain.RegimeOld)
	assert.NoError(t, err)
	assert.Equal(t, domain.RegimeOld, oldResult.Regime)

	newResult, err := engine.CalculateRegime(scenario, domain.RegimeNew)
	assert.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, newResult.Regime)

	_, err = engine.CalculateRegime(scenario, "flat")
	assert.Error(t, err, "Should reject unknown regime names")
	assert.Contains(t, err.Error(), "unknown regime")
}

func TestCalculationEngine_Compare_WorkedExample(t *testing.T) {
	engine := NewCalculationEngine()

	scenario := &domain.TaxScenario{
		Name:             "Worked example",
		Income:           decimal.NewFromInt(1200000),
		HRA:              decimal.NewFromInt(120000),
		Section80C:       decimal.NewFromInt(150000),
		Section80D:       decimal.NewFromInt(25000),
		HomeLoanInterest: decimal.NewFromInt(200000),
		OtherDeductions:  decimal.NewFromInt(50000),
	}

	comparison, err := engine.Compare(scenario)
	assert.NoError(t, err)

	assert.True(t, comparison.OldRegime.TotalTaxLiability.Equal(decimal.NewFromInt(34840)))
	assert.True(t, comparison.NewRegime.TotalTaxLiability.Equal(decimal.NewFromInt(71500)))
	assert.Equal(t, domain.RegimeOld, comparison.RecommendedRegime,
		"Heavy deductions should favour the old regime")
	assert.True(t, comparison.PotentialSavings.Equal(decimal.NewFromInt(36660)),
		"Savings should be the absolute liability gap, got %s", comparison.PotentialSavings)
	assert.Equal(t, "Worked example", comparison.ScenarioName)
}

func TestCalculationEngine_Compare_NoDeductionsFavoursNew(t *testing.T) {
	engine := NewCalculationEngine()

	comparison, err := engine.Compare(&domain.TaxScenario{
		Name:   "No deductions",
		Income: decimal.NewFromInt(1200000),
	})
	assert.NoError(t, err)

	assert.Equal(t, domain.RegimeNew, comparison.RecommendedRegime,
		"Without itemized deductions the new regime should win")
	assert.True(t, comparison.NewRegime.TotalTaxLiability.LessThan(comparison.OldRegime.TotalTaxLiability))
}

func TestCalculationEngine_Compare_TieGoesToNewRegime(t *testing.T) {
	// Identical slab tables for both regimes force an exact tie.
	shared := domain.RegimeRules{
		Name:              "Flat",
		StandardDeduction: decimal.NewFromInt(50000),
		Slabs: []domain.TaxSlab{
			{Lower: decimal.Zero, Upper: nil, Rate: decimal.NewFromFloat(0.10)},
		},
	}
	rules := domain.FiscalYearRules{
		FiscalYear: "test",
		CessRate:   decimal.NewFromFloat(0.04),
		OldRegime:  shared,
		NewRegime:  shared,
	}

	engine := NewCalculationEngineWithRules(rules)
	comparison, err := engine.Compare(&domain.TaxScenario{Income: decimal.NewFromInt(800000)})
	assert.NoError(t, err)

	assert.True(t, comparison.OldRegime.TotalTaxLiability.Equal(comparison.NewRegime.TotalTaxLiability),
		"Setup should produce a tie")
	assert.Equal(t, domain.RegimeNew, comparison.RecommendedRegime, "Ties should resolve to the new regime")
	assert.True(t, comparison.PotentialSavings.IsZero())
}

func TestCalculationEngine_Compare_Deterministic(t *testing.T) {
	engine := NewCalculationEngine()

	scenario := &domain.TaxScenario{
		Name:       "Repeatable",
		Income:     decimal.NewFromInt(987654),
		Section80C: decimal.NewFromInt(100000),
	}

	first, err := engine.Compare(scenario)
	assert.NoError(t, err)
	second, err := engine.Compare(scenario)
	assert.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	assert.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	assert.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON, "Identical input should produce byte-identical output")
}

func TestCalculationEngine_Compare_InvalidScenario(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.Compare(&domain.TaxScenario{Income: decimal.NewFromInt(-100)})
	assert.Error(t, err, "Should propagate validation failures")
}

func TestCalculationEngine_RunScenarios(t *testing.T) {
	engine := NewCalculationEngine()

	config := &domain.Configuration{
		FiscalYear: "2024-25",
		Scenarios: []domain.TaxScenario{
			{Name: "Base", Income: decimal.NewFromInt(1200000)},
			{
				Name:       "Max 80C",
				Income:     decimal.NewFromInt(1200000),
				Section80C: decimal.NewFromInt(150000),
			},
		},
	}

	report, err := engine.RunScenarios(config)
	assert.NoError(t, err)

	assert.Equal(t, "2024-25", report.FiscalYear)
	assert.Len(t, report.Comparisons, 2)
	assert.Equal(t, "Base", report.Comparisons[0].ScenarioName)
	assert.Equal(t, "Max 80C", report.Comparisons[1].ScenarioName)
	assert.False(t, report.GeneratedAt.IsZero())

	best := report.BestScenario()
	assert.NotNil(t, best)
}

func TestCalculationEngine_RunScenarios_NamesFailingScenario(t *testing.T) {
	engine := NewCalculationEngine()

	config := &domain.Configuration{
		Scenarios: []domain.TaxScenario{
			{Name: "Fine", Income: decimal.NewFromInt(500000)},
			{Name: "Broken", Income: decimal.NewFromInt(-1)},
		},
	}

	_, err := engine.RunScenarios(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Broken", "Error should name the failing scenario")
}
