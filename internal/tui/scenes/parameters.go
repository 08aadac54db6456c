package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/tui/components"
	"github.com/taxwise/taxwise/internal/tui/tuimsg"
	"github.com/taxwise/taxwise/internal/tui/tuistyles"
)

// ParametersModel represents the deduction editing scene. Slider edits write
// straight into the shared scenario slice, so a calculation triggered from
// here sees the adjusted values.
type ParametersModel struct {
	scenarios        []domain.TaxScenario
	selectedScenario int
	original         *domain.TaxScenario
	sliders          []*components.ParameterSlider
	focusedSlider    int
	width            int
	height           int
	modified         bool
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{
		scenarios:        []domain.TaxScenario{},
		sliders:          []*components.ParameterSlider{},
		selectedScenario: 0,
		focusedSlider:    0,
		modified:         false,
	}
}

// SetScenarios updates the scenarios available for editing
func (m *ParametersModel) SetScenarios(scenarios []domain.TaxScenario) {
	m.scenarios = scenarios
	if m.selectedScenario >= len(scenarios) {
		m.selectedScenario = 0
	}

	if len(m.scenarios) > 0 {
		m.snapshotOriginal()
		m.buildSliders()
	} else {
		m.sliders = []*components.ParameterSlider{}
	}
}

// SelectScenario switches the editing tab to the named scenario
func (m *ParametersModel) SelectScenario(name string) {
	for i := range m.scenarios {
		if m.scenarios[i].Name == name {
			m.selectedScenario = i
			m.snapshotOriginal()
			m.buildSliders()
			m.modified = false
			return
		}
	}
}

// snapshotOriginal keeps a pristine copy of the selected scenario so reset
// can undo slider edits
func (m *ParametersModel) snapshotOriginal() {
	if m.selectedScenario < len(m.scenarios) {
		m.original = m.scenarios[m.selectedScenario].DeepCopy()
	}
}

// buildSliders creates deduction sliders for the selected scenario
func (m *ParametersModel) buildSliders() {
	if m.selectedScenario >= len(m.scenarios) {
		return
	}

	scenario := m.scenarios[m.selectedScenario]

	m.sliders = []*components.ParameterSlider{}

	incomeSlider := components.NewParameterSlider("Gross Income", scenario.Income.InexactFloat64(), 0, 10000000, 50000).
		WithPrefix("₹").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("Annual gross salary income")
	m.sliders = append(m.sliders, incomeSlider)

	hraSlider := components.NewParameterSlider("HRA Exemption", scenario.HRA.InexactFloat64(), 0, 1000000, 10000).
		WithPrefix("₹").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("House rent allowance exemption claimed")
	m.sliders = append(m.sliders, hraSlider)

	c80Slider := components.NewParameterSlider("Section 80C", scenario.Section80C.InexactFloat64(), 0, 150000, 10000).
		WithPrefix("₹").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("PPF, ELSS, EPF and life insurance premiums")
	m.sliders = append(m.sliders, c80Slider)

	d80Slider := components.NewParameterSlider("Section 80D", scenario.Section80D.InexactFloat64(), 0, 100000, 5000).
		WithPrefix("₹").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("Health insurance premiums")
	m.sliders = append(m.sliders, d80Slider)

	loanSlider := components.NewParameterSlider("Home Loan Interest", scenario.HomeLoanInterest.InexactFloat64(), 0, 500000, 10000).
		WithPrefix("₹").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("Section 24(b) interest on a self-occupied property")
	m.sliders = append(m.sliders, loanSlider)

	otherSlider := components.NewParameterSlider("Other Deductions", scenario.OtherDeductions.InexactFloat64(), 0, 500000, 10000).
		WithPrefix("₹").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("80E, 80G, NPS and other Chapter VI-A claims")
	m.sliders = append(m.sliders, otherSlider)

	// Set focus on first slider
	if m.focusedSlider >= len(m.sliders) {
		m.focusedSlider = 0
	}
	for i, slider := range m.sliders {
		slider.SetFocused(i == m.focusedSlider)
	}
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocusUp()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocusDown()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h"))):
		m.decrementValue()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l"))):
		m.incrementValue()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		m.nextScenario()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab"))):
		m.prevScenario()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		// Trigger calculation with modified deductions
		return m, m.calculateScenario()

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.resetScenario()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		// Save modified scenario
		if m.modified {
			return m, m.saveScenario()
		}
		return m, nil
	}

	return m, nil
}

// moveFocusUp moves focus to previous slider
func (m *ParametersModel) moveFocusUp() {
	if m.focusedSlider > 0 {
		m.sliders[m.focusedSlider].SetFocused(false)
		m.focusedSlider--
		m.sliders[m.focusedSlider].SetFocused(true)
	}
}

// moveFocusDown moves focus to next slider
func (m *ParametersModel) moveFocusDown() {
	if m.focusedSlider < len(m.sliders)-1 {
		m.sliders[m.focusedSlider].SetFocused(false)
		m.focusedSlider++
		m.sliders[m.focusedSlider].SetFocused(true)
	}
}

// incrementValue increases the focused slider's value
func (m *ParametersModel) incrementValue() {
	if m.focusedSlider < len(m.sliders) {
		m.sliders[m.focusedSlider].Increment()
		m.modified = true
		m.applyChanges()
	}
}

// decrementValue decreases the focused slider's value
func (m *ParametersModel) decrementValue() {
	if m.focusedSlider < len(m.sliders) {
		m.sliders[m.focusedSlider].Decrement()
		m.modified = true
		m.applyChanges()
	}
}

// applyChanges applies slider values back to the scenario
func (m *ParametersModel) applyChanges() {
	if m.selectedScenario >= len(m.scenarios) {
		return
	}

	scenario := &m.scenarios[m.selectedScenario]

	for i, slider := range m.sliders {
		value := decimal.NewFromFloat(slider.Value)
		switch i {
		case 0:
			scenario.Income = value
		case 1:
			scenario.HRA = value
		case 2:
			scenario.Section80C = value
		case 3:
			scenario.Section80D = value
		case 4:
			scenario.HomeLoanInterest = value
		case 5:
			scenario.OtherDeductions = value
		}
	}
}

// resetScenario restores the pristine values captured when the scenario was
// selected
func (m *ParametersModel) resetScenario() {
	if m.original == nil || m.selectedScenario >= len(m.scenarios) {
		return
	}

	m.scenarios[m.selectedScenario] = *m.original.DeepCopy()
	m.buildSliders()
	m.modified = false
}

// nextScenario switches to the next scenario tab
func (m *ParametersModel) nextScenario() {
	if m.selectedScenario < len(m.scenarios)-1 {
		m.selectedScenario++
		m.snapshotOriginal()
		m.buildSliders()
		m.modified = false
	}
}

// prevScenario switches to the previous scenario tab
func (m *ParametersModel) prevScenario() {
	if m.selectedScenario > 0 {
		m.selectedScenario--
		m.snapshotOriginal()
		m.buildSliders()
		m.modified = false
	}
}

// calculateScenario triggers a regime comparison
func (m *ParametersModel) calculateScenario() tea.Cmd {
	if m.selectedScenario >= len(m.scenarios) {
		return nil
	}

	name := m.scenarios[m.selectedScenario].Name
	return func() tea.Msg {
		return tuimsg.CalculationStartedMsg{
			ScenarioName: name,
		}
	}
}

// saveScenario triggers a save operation for the modified scenario
func (m *ParametersModel) saveScenario() tea.Cmd {
	if m.selectedScenario >= len(m.scenarios) {
		return nil
	}

	scenario := &m.scenarios[m.selectedScenario]
	return func() tea.Msg {
		return tuimsg.SaveScenarioMsg{
			Scenario: scenario,
			Filename: "", // Will be filled in by main model with config path
		}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if len(m.scenarios) == 0 {
		return renderNoScenarioState()
	}

	// Build header with scenario selector
	header := renderScenarioTabs(m.scenarios, m.selectedScenario)

	// Build sliders section
	slidersView := renderSliders(m.sliders)

	// Build status section
	status := renderParameterStatus(m.modified)

	// Build help section
	help := renderParameterHelp()

	// Combine sections
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		slidersView,
		"",
		status,
		"",
		help,
	)

	return content
}

// renderNoScenarioState renders empty state
func renderNoScenarioState() string {
	return `No scenario selected.

Please select a scenario from the Scenarios screen (press 's').

Press ESC to return to home.`
}

// renderScenarioTabs renders the scenario selection header
func renderScenarioTabs(scenarios []domain.TaxScenario, selected int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	tabStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorForeground).
		Padding(0, 1)

	selectedStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorAccent).
		Bold(true).
		Padding(0, 1).
		Background(tuistyles.ColorBorder)

	title := titleStyle.Render("Edit Deductions")

	var tabs []string
	for i, scenario := range scenarios {
		if i == selected {
			tabs = append(tabs, selectedStyle.Render(scenario.Name))
		} else {
			tabs = append(tabs, tabStyle.Render(scenario.Name))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	hint := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true).
		Render("Tab / Shift+Tab to switch scenarios")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		tabBar,
		hint,
	)
}

// renderSliders renders all deduction sliders
func renderSliders(sliders []*components.ParameterSlider) string {
	if len(sliders) == 0 {
		return "No adjustable parameters for this scenario."
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(2, 4).
		Width(70)

	var rendered []string
	for _, slider := range sliders {
		rendered = append(rendered, slider.Render())
		rendered = append(rendered, "") // Spacer
	}

	content := strings.Join(rendered, "\n")
	return containerStyle.Render(content)
}

// renderParameterStatus renders modification status
func renderParameterStatus(modified bool) string {
	if !modified {
		return ""
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorInfo).
		Bold(true)

	return statusStyle.Render("⚠ Modified - Press Enter to calculate or 'r' to reset")
}

// renderParameterHelp renders keyboard shortcuts
func renderParameterHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render("↑/↓ navigate • ←/→ adjust • Enter calculate • r reset • Ctrl+S save • Tab switch scenario • ESC back")
}
