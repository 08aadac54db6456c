package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/breakeven"
	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/config"
	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/transform"
	"github.com/taxwise/taxwise/internal/tui/components"
	"github.com/taxwise/taxwise/internal/tui/scenes"
)

const tickInterval = 120 * time.Millisecond

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration

	// Calculation engine and deduction advisor (which carries the break-even
	// solver), rebuilt when a configuration with a different fiscal year loads
	calcEngine *calculation.CalculationEngine
	advisor    *advise.Advisor

	// Current selections
	selectedScenario string
	selectedResults  *domain.RegimeComparison

	// Comparison data
	comparisonScenarios []string
	comparisonResults   map[string]*domain.RegimeComparison

	// Scene-specific models
	homeModel       *scenes.HomeModel
	scenariosModel  *scenes.ScenariosModel
	parametersModel *scenes.ParametersModel
	compareModel    *scenes.CompareModel
	optimizeModel   *scenes.OptimizeModel
	resultsModel    *scenes.ResultsModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
	spinner        *components.Spinner

	// Transient status line, cleared on the next scene change
	statusMessage string
}

// NewModel creates a new application model
func NewModel(configPath string) Model {
	engine := calculation.NewCalculationEngine()

	return Model{
		currentScene:      SceneHome,
		configPath:        configPath,
		calcEngine:        engine,
		advisor:           advise.NewAdvisor(engine),
		comparisonResults: make(map[string]*domain.RegimeComparison),
		homeModel:         scenes.NewHomeModel(),
		scenariosModel:    scenes.NewScenariosModel(),
		parametersModel:   scenes.NewParametersModel(),
		compareModel:      scenes.NewCompareModel(),
		optimizeModel:     scenes.NewOptimizeModel(),
		resultsModel:      scenes.NewResultsModel(),
		spinner:           components.NewSpinner(),
		loading:           true,
		loadingMessage:    "Loading configuration...",
		width:             80,
		height:            24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadConfigCmd(m.configPath), tickCmd())
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return ConfigLoadedMsg{Config: cfg}
	}
}

// calculateScenarioCmd returns a command that compares both regimes for one
// scenario
func calculateScenarioCmd(engine *calculation.CalculationEngine, scenario *domain.TaxScenario) tea.Cmd {
	return func() tea.Msg {
		if scenario == nil {
			return CalculationCompleteMsg{Err: fmt.Errorf("no scenario selected")}
		}

		comparison, err := engine.Compare(scenario)
		return CalculationCompleteMsg{
			ScenarioName: scenario.Name,
			Comparison:   comparison,
			Err:          err,
		}
	}
}

// compareScenariosCmd returns a command that compares regimes for several
// scenarios at once. Template names add what-if variants of the first
// selected scenario, named the way the compare command names them.
func compareScenariosCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, names, templates []string) tea.Cmd {
	return func() tea.Msg {
		results := make(map[string]*domain.RegimeComparison, len(names)+len(templates))

		for _, name := range names {
			scenario := cfg.FindScenario(name)
			if scenario == nil {
				return ComparisonCompleteMsg{Err: fmt.Errorf("scenario %q not found", name)}
			}

			comparison, err := engine.Compare(scenario)
			if err != nil {
				return ComparisonCompleteMsg{Err: err}
			}
			results[name] = comparison
		}

		if len(templates) > 0 && len(names) > 0 {
			base := cfg.FindScenario(names[0])
			if base == nil {
				return ComparisonCompleteMsg{Err: fmt.Errorf("scenario %q not found", names[0])}
			}

			registry := transform.CreateBuiltInTemplates(engine.Rules())
			for _, templateName := range templates {
				template, ok := registry.Get(templateName)
				if !ok {
					return ComparisonCompleteMsg{Err: fmt.Errorf("template %q not found", templateName)}
				}

				variant, err := transform.ApplyTemplate(base, template)
				if err != nil {
					return ComparisonCompleteMsg{Err: err}
				}
				variant.Name = base.Name + "_" + template.Name

				comparison, err := engine.Compare(variant)
				if err != nil {
					return ComparisonCompleteMsg{Err: err}
				}
				results[variant.Name] = comparison
			}
		}

		return ComparisonCompleteMsg{Comparisons: results}
	}
}

// breakEvenCmd returns a command that solves the break-even deduction level
// for a scenario and builds deduction suggestions around it, plus a short
// curve around its income for the chart. A non-zero income overrides the
// scenario's gross income.
func breakEvenCmd(advisor *advise.Advisor, scenario *domain.TaxScenario, income decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		if scenario == nil {
			return BreakEvenCompleteMsg{Err: fmt.Errorf("no scenario selected")}
		}

		target := scenario.DeepCopy()
		if income.IsPositive() {
			target.Income = income
		}

		ctx := context.Background()
		advice, err := advisor.Advise(ctx, target)
		if err != nil {
			return BreakEvenCompleteMsg{ScenarioName: scenario.Name, Err: err}
		}

		var curve []breakeven.CurvePoint
		if target.Income.IsPositive() {
			half := target.Income.Div(decimal.NewFromInt(2))
			step := target.Income.Div(decimal.NewFromInt(8)).Round(0)
			if step.IsPositive() {
				from := target.Income.Sub(half)
				to := target.Income.Add(half)
				curve, err = advisor.Solver.Sweep(ctx, from, to, step)
				if err != nil {
					return BreakEvenCompleteMsg{ScenarioName: scenario.Name, Err: err}
				}
			}
		}

		return BreakEvenCompleteMsg{
			ScenarioName: scenario.Name,
			Result:       advice.BreakEven,
			Curve:        curve,
			Advice:       advice,
		}
	}
}

// saveConfigCmd returns a command that writes the configuration back to disk
func saveConfigCmd(cfg *domain.Configuration, path string) tea.Cmd {
	return func() tea.Msg {
		if cfg == nil {
			return SaveCompleteMsg{Filename: path, Err: fmt.Errorf("no configuration loaded")}
		}

		err := config.SaveConfiguration(cfg, path)
		return SaveCompleteMsg{Filename: path, Err: err}
	}
}

// tickCmd schedules the next animation tick
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
