// Package tuimsg defines the messages scenes emit back to the root model.
// Keeping them out of the tui package avoids an import cycle between the
// scenes and the model that consumes them.
package tuimsg

import (
	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/breakeven"
	"github.com/taxwise/taxwise/internal/domain"
)

// ScenarioSelectedMsg signals a scenario has been selected
type ScenarioSelectedMsg struct {
	ScenarioName string
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ParameterChangedMsg signals a scenario field has been edited
type ParameterChangedMsg struct {
	Scenario  string
	Parameter string
	Value     decimal.Decimal
}

// CalculationStartedMsg signals a regime comparison has begun
type CalculationStartedMsg struct {
	ScenarioName string
}

// CalculationCompleteMsg signals a regime comparison has finished
type CalculationCompleteMsg struct {
	ScenarioName string
	Comparison   *domain.RegimeComparison
	Err          error
}

// ComparisonStartedMsg signals a multi-scenario comparison has begun.
// Templates name what-if variants priced against the first selected scenario.
type ComparisonStartedMsg struct {
	ScenarioNames []string
	Templates     []string
}

// ComparisonCompleteMsg signals a multi-scenario comparison has finished
type ComparisonCompleteMsg struct {
	Comparisons map[string]*domain.RegimeComparison
	Err         error
}

// BreakEvenStartedMsg signals a break-even solve has begun. Income overrides
// the scenario's gross income when non-zero.
type BreakEvenStartedMsg struct {
	ScenarioName string
	Income       decimal.Decimal
}

// BreakEvenCompleteMsg signals a break-even solve has finished. Advice
// carries the deduction suggestions computed alongside the solve.
type BreakEvenCompleteMsg struct {
	ScenarioName string
	Result       *breakeven.Result
	Curve        []breakeven.CurvePoint
	Advice       *advise.Advice
	Err          error
}

// SaveScenarioMsg signals a request to save the modified scenario
type SaveScenarioMsg struct {
	Scenario *TaxScenario
	Filename string
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}

// TaxScenario is aliased from domain so scenes can build messages without a
// second import.
type TaxScenario = domain.TaxScenario
