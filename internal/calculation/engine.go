package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// Logger receives diagnostic output from the engine. The CLI installs an
// implementation; the default discards everything.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// CalculationEngine orchestrates regime calculations for one fiscal year. It
// holds a calculator per regime so a scenario can be priced under both and
// compared.
type CalculationEngine struct {
	FiscalYear string
	CessRate   decimal.Decimal
	OldRegime  *RegimeCalculator
	NewRegime  *RegimeCalculator
	Debug      bool // Enable debug output for detailed calculations

	logger Logger
}

// NewCalculationEngine creates an engine loaded with the 2024-25 statutory
// tables.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.FY2024Rules())
}

// NewCalculationEngineWithRules creates an engine from explicit fiscal-year
// rules, typically loaded from a regulatory file.
func NewCalculationEngineWithRules(rules domain.FiscalYearRules) *CalculationEngine {
	return &CalculationEngine{
		FiscalYear: rules.FiscalYear,
		CessRate:   rules.CessRate,
		OldRegime:  NewRegimeCalculator(domain.RegimeOld, rules.FiscalYear, rules.OldRegime, rules.CessRate),
		NewRegime:  NewRegimeCalculator(domain.RegimeNew, rules.FiscalYear, rules.NewRegime, rules.CessRate),
		logger:     noopLogger{},
	}
}

// SetLogger installs a logger for diagnostic output.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l != nil {
		ce.logger = l
	}
}

func (ce *CalculationEngine) log() Logger {
	if ce.logger == nil {
		return noopLogger{}
	}
	return ce.logger
}

// Rules reassembles the fiscal-year rules the engine was built from.
func (ce *CalculationEngine) Rules() domain.FiscalYearRules {
	return domain.FiscalYearRules{
		FiscalYear: ce.FiscalYear,
		CessRate:   ce.CessRate,
		OldRegime:  ce.OldRegime.Rules,
		NewRegime:  ce.NewRegime.Rules,
	}
}

// CalculateRegime prices a scenario under a single named regime.
func (ce *CalculationEngine) CalculateRegime(scenario *domain.TaxScenario, regime string) (*domain.RegimeResult, error) {
	switch regime {
	case domain.RegimeOld:
		return ce.OldRegime.Calculate(scenario)
	case domain.RegimeNew:
		return ce.NewRegime.Calculate(scenario)
	default:
		return nil, fmt.Errorf("unknown regime %q", regime)
	}
}

// Compare prices a scenario under both regimes and recommends the one with
// the lower total liability. Ties resolve to the new regime.
func (ce *CalculationEngine) Compare(scenario *domain.TaxScenario) (*domain.RegimeComparison, error) {
	oldResult, err := ce.OldRegime.Calculate(scenario)
	if err != nil {
		return nil, err
	}
	newResult, err := ce.NewRegime.Calculate(scenario)
	if err != nil {
		return nil, err
	}

	recommended := domain.RegimeNew
	if oldResult.TotalTaxLiability.LessThan(newResult.TotalTaxLiability) {
		recommended = domain.RegimeOld
	}
	savings := oldResult.TotalTaxLiability.Sub(newResult.TotalTaxLiability).Abs()

	if ce.Debug {
		ce.log().Debugf("scenario %s: old=%s new=%s recommended=%s savings=%s",
			scenario.Name,
			oldResult.TotalTaxLiability.StringFixed(0),
			newResult.TotalTaxLiability.StringFixed(0),
			recommended,
			savings.StringFixed(0))
	}

	return &domain.RegimeComparison{
		ScenarioName:      scenario.Name,
		FiscalYear:        ce.FiscalYear,
		OldRegime:         *oldResult,
		NewRegime:         *newResult,
		RecommendedRegime: recommended,
		PotentialSavings:  savings,
	}, nil
}

// RunScenarios compares every scenario in a configuration and aggregates the
// results into a report.
func (ce *CalculationEngine) RunScenarios(config *domain.Configuration) (*domain.TaxReport, error) {
	report := &domain.TaxReport{
		FiscalYear:  ce.FiscalYear,
		GeneratedAt: time.Now(),
		Comparisons: make([]domain.RegimeComparison, 0, len(config.Scenarios)),
	}

	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		comparison, err := ce.Compare(scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		report.Comparisons = append(report.Comparisons, *comparison)
	}

	return report, nil
}
