package tui

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/config"
	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/transform"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		m.optimizeModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		return m, nil

	// Custom messages
	case NavigateMsg:
		return m.navigate(msg.Scene)

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		return m.applyConfig(msg)

	case ScenarioSelectedMsg:
		m.selectedScenario = msg.ScenarioName
		name := msg.ScenarioName
		return m, func() tea.Msg {
			return CalculationStartedMsg{ScenarioName: name}
		}

	case ParameterChangedMsg:
		// Sliders write straight into the shared scenario; nothing to do here
		return m, nil

	case CalculationStartedMsg:
		if m.config == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing regimes for " + msg.ScenarioName + "..."
		scenario := m.config.FindScenario(msg.ScenarioName)
		return m, tea.Batch(calculateScenarioCmd(m.calcEngine, scenario), tickCmd())

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.selectedScenario = msg.ScenarioName
		m.selectedResults = msg.Comparison
		m.resultsModel.SetResults(msg.ScenarioName, msg.Comparison)
		return m.navigate(SceneResults)

	case ComparisonStartedMsg:
		if m.config == nil {
			return m, nil
		}
		m.comparisonScenarios = msg.ScenarioNames
		return m, compareScenariosCmd(m.calcEngine, m.config, msg.ScenarioNames, msg.Templates)

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.compareModel.SetResults(nil)
			return m, nil
		}
		m.comparisonResults = msg.Comparisons
		m.compareModel.SetResults(msg.Comparisons)
		return m, nil

	case BreakEvenStartedMsg:
		if m.config == nil {
			return m, nil
		}
		scenario := m.config.FindScenario(msg.ScenarioName)
		return m, breakEvenCmd(m.advisor, scenario, msg.Income)

	case BreakEvenCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.optimizeModel.SetResult(nil, nil, nil)
			return m, nil
		}
		m.optimizeModel.SetResult(msg.Result, msg.Curve, msg.Advice)
		return m, nil

	case SaveScenarioMsg:
		path := msg.Filename
		if path == "" {
			path = m.configPath
		}
		return m, saveConfigCmd(m.config, path)

	case SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.statusMessage = "Saved " + msg.Filename
		}
		return m, nil

	case TickMsg:
		if m.loading {
			m.spinner.Next()
			return m, tickCmd()
		}
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// navigate switches scenes and refreshes the data the target scene reads
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	m.previousScene = m.currentScene
	m.currentScene = scene
	m.statusMessage = ""

	if scene == SceneParameters && m.config != nil {
		m.parametersModel.SetScenarios(m.config.Scenarios)
		if m.selectedScenario != "" {
			m.parametersModel.SelectScenario(m.selectedScenario)
		}
	}

	return m, nil
}

// applyConfig installs a freshly loaded configuration and rebuilds the
// engine and solver for its fiscal year
func (m Model) applyConfig(msg ConfigLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.config = msg.Config
	if msg.Config == nil {
		return m, nil
	}

	rules, err := config.ResolveFiscalYear(msg.Config, nil)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.calcEngine = calculation.NewCalculationEngineWithRules(rules)
	m.advisor = advise.NewAdvisor(m.calcEngine)

	m.homeModel.SetConfig(msg.Config)
	m.homeModel.SetFiscalYear(m.calcEngine.FiscalYear)
	m.scenariosModel.SetScenarios(msg.Config.Scenarios)
	m.parametersModel.SetScenarios(msg.Config.Scenarios)
	m.compareModel.SetScenarios(msg.Config.Scenarios)
	m.compareModel.SetTemplates(builtInTemplates(rules))
	m.optimizeModel.SetScenarios(msg.Config.Scenarios)
	m.scenariosModel.SetSize(m.width, m.height)

	return m, nil
}

// builtInTemplates lists the what-if templates for the fiscal year, sorted
// by name for a stable selection list
func builtInTemplates(rules domain.FiscalYearRules) []transform.Template {
	registry := transform.CreateBuiltInTemplates(rules)

	names := registry.List()
	sort.Strings(names)

	templates := make([]transform.Template, 0, len(names))
	for _, name := range names {
		if template, ok := registry.Get(name); ok {
			templates = append(templates, template)
		}
	}
	return templates
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error overlay
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// The break-even scene owns the keyboard while its income field has focus
	if m.currentScene == SceneOptimize && m.optimizeModel.CapturesInput() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateCurrentScene(msg)
	}

	// Parameters binds most letters to slider editing, so only quit, help,
	// and escape stay global there
	if m.currentScene == SceneParameters {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			return m.navigate(SceneHelp)
		case "esc":
			return m.navigateBack()
		}
		return m.updateCurrentScene(msg)
	}

	// Global keyboard shortcuts
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m.navigate(SceneHelp)
		}

	case "esc":
		if m.currentScene != SceneHome {
			return m.navigateBack()
		}

	case "h":
		if m.currentScene != SceneHome {
			return m.navigate(SceneHome)
		}

	case "s":
		if m.currentScene != SceneScenarios {
			return m.navigate(SceneScenarios)
		}

	case "p":
		if m.currentScene != SceneParameters {
			return m.navigate(SceneParameters)
		}

	case "c":
		if m.currentScene != SceneCompare {
			return m.navigate(SceneCompare)
		}

	case "o":
		if m.currentScene != SceneOptimize {
			return m.navigate(SceneOptimize)
		}

	case "r":
		if m.currentScene != SceneResults {
			return m.navigate(SceneResults)
		}
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

// navigateBack returns to the previous scene, or home
func (m Model) navigateBack() (tea.Model, tea.Cmd) {
	if m.previousScene != SceneHome && m.previousScene != m.currentScene {
		return m.navigate(m.previousScene)
	}
	return m.navigate(SceneHome)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneHome:
		updated, cmd := m.homeModel.Update(msg)
		m.homeModel = updated
		return m, cmd
	case SceneScenarios:
		updated, cmd := m.scenariosModel.Update(msg)
		m.scenariosModel = updated
		return m, cmd
	case SceneParameters:
		updated, cmd := m.parametersModel.Update(msg)
		m.parametersModel = updated
		return m, cmd
	case SceneCompare:
		updated, cmd := m.compareModel.Update(msg)
		m.compareModel = updated
		return m, cmd
	case SceneOptimize:
		updated, cmd := m.optimizeModel.Update(msg)
		m.optimizeModel = updated
		return m, cmd
	case SceneResults:
		updated, cmd := m.resultsModel.Update(msg)
		m.resultsModel = updated
		return m, cmd
	case SceneHelp:
		return m, nil
	}

	return m, nil
}
