package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/breakeven"
	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/output"
	"github.com/taxwise/taxwise/internal/tui/components"
	"github.com/taxwise/taxwise/internal/tui/tuimsg"
	"github.com/taxwise/taxwise/internal/tui/tuistyles"
)

// OptimizeModel represents the break-even solver and deduction advice scene
type OptimizeModel struct {
	scenarios        []domain.TaxScenario
	selectedScenario int
	mode             OptimizeMode
	incomeInput      textinput.Model
	optimizing       bool
	result           *breakeven.Result
	curve            []breakeven.CurvePoint
	advice           *advise.Advice
	width            int
	height           int
}

// OptimizeMode represents the solver scene's input stage
type OptimizeMode int

const (
	ModeSelectScenario OptimizeMode = iota
	ModeSetIncome
	ModeShowResults
)

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "e.g., 1500000"
	ti.CharLimit = 10
	ti.Width = 20

	return &OptimizeModel{
		scenarios:        []domain.TaxScenario{},
		selectedScenario: 0,
		mode:             ModeSelectScenario,
		incomeInput:      ti,
		optimizing:       false,
	}
}

// SetScenarios updates the scenarios list and discards any stale results
func (m *OptimizeModel) SetScenarios(scenarios []domain.TaxScenario) {
	m.scenarios = scenarios
	m.selectedScenario = 0
	m.mode = ModeSelectScenario
	m.result = nil
	m.curve = nil
	m.advice = nil
	m.optimizing = false
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CapturesInput reports whether the scene owns the keyboard, so the parent
// must not treat letters as navigation shortcuts
func (m *OptimizeModel) CapturesInput() bool {
	return m.mode == ModeSetIncome
}

// GetSelectedScenario returns the currently selected scenario
func (m *OptimizeModel) GetSelectedScenario() *domain.TaxScenario {
	if m.selectedScenario >= 0 && m.selectedScenario < len(m.scenarios) {
		return &m.scenarios[m.selectedScenario]
	}
	return nil
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch m.mode {
	case ModeSelectScenario:
		return m.updateScenarioSelection(msg)
	case ModeSetIncome:
		return m.updateIncomeInput(msg)
	case ModeShowResults:
		return m.updateResults(msg)
	}
	return m, nil
}

// updateScenarioSelection handles scenario selection
func (m *OptimizeModel) updateScenarioSelection(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.selectedScenario > 0 {
				m.selectedScenario--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.selectedScenario < len(m.scenarios)-1 {
				m.selectedScenario++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if len(m.scenarios) == 0 {
				return m, nil
			}
			// Move to income input mode
			m.mode = ModeSetIncome
			m.incomeInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// updateIncomeInput handles the optional gross income override
func (m *OptimizeModel) updateIncomeInput(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			raw := strings.TrimSpace(m.incomeInput.Value())
			if raw == "" {
				// Blank means solve at the scenario's own income
				m.optimizing = true
				m.incomeInput.Blur()
				return m, m.startBreakEvenCmd(decimal.Zero)
			}
			if income, err := strconv.ParseFloat(raw, 64); err == nil && income > 0 {
				m.optimizing = true
				m.incomeInput.Blur()
				return m, m.startBreakEvenCmd(decimal.NewFromFloat(income))
			}
			return m, nil

		case tea.KeyEsc:
			// Go back to scenario selection
			m.mode = ModeSelectScenario
			m.incomeInput.Blur()
			return m, nil
		}
	}

	// Update text input
	var cmd tea.Cmd
	m.incomeInput, cmd = m.incomeInput.Update(msg)
	return m, cmd
}

// updateResults handles results display
func (m *OptimizeModel) updateResults(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
			// Start a new solve
			m.mode = ModeSelectScenario
			m.result = nil
			m.curve = nil
			m.advice = nil
			m.incomeInput.SetValue("")
			return m, nil
		}
	}
	return m, nil
}

// startBreakEvenCmd creates a command to start the break-even solve
func (m *OptimizeModel) startBreakEvenCmd(income decimal.Decimal) tea.Cmd {
	scenario := m.GetSelectedScenario()
	if scenario == nil {
		return func() tea.Msg {
			return tuimsg.BreakEvenCompleteMsg{
				Err: fmt.Errorf("no scenario selected"),
			}
		}
	}

	name := scenario.Name
	return func() tea.Msg {
		return tuimsg.BreakEvenStartedMsg{
			ScenarioName: name,
			Income:       income,
		}
	}
}

// SetResult stores the solver outcome and the deduction advice computed with
// it. A nil result returns the scene to scenario selection after a failed
// solve.
func (m *OptimizeModel) SetResult(result *breakeven.Result, curve []breakeven.CurvePoint, advice *advise.Advice) {
	m.optimizing = false

	if result == nil {
		m.mode = ModeSelectScenario
		m.result = nil
		m.curve = nil
		m.advice = nil
		return
	}

	m.result = result
	m.curve = curve
	m.advice = advice
	m.mode = ModeShowResults
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	if m.optimizing {
		return m.renderOptimizing()
	}

	switch m.mode {
	case ModeSelectScenario:
		return m.renderScenarioSelection()
	case ModeSetIncome:
		return m.renderIncomeInput()
	case ModeShowResults:
		return m.renderResults()
	}

	return ""
}

// renderScenarioSelection shows scenario selection interface
func (m *OptimizeModel) renderScenarioSelection() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Break-Even Deduction Solver")
	content.WriteString(title)
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	description := subtleStyle.Render(
		"Find the itemised deduction total where the old regime catches up with the new regime,\nwith suggestions for the deduction levers still open.",
	)
	content.WriteString(description)
	content.WriteString("\n\n")

	if len(m.scenarios) == 0 {
		content.WriteString(tuistyles.ErrorStyle.Render("No scenarios available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	instructions := subtleStyle.Render("Use ↑/↓ to navigate • Enter to select")
	content.WriteString(instructions)
	content.WriteString("\n\n")

	// Scenario list
	for idx, scenario := range m.scenarios {
		var line strings.Builder

		// Cursor
		cursorStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
		if idx == m.selectedScenario {
			line.WriteString(cursorStyle.Render("❯ "))
		} else {
			line.WriteString("  ")
		}

		// Scenario name
		scenarioName := scenario.Name
		if idx == m.selectedScenario {
			highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
			scenarioName = highlightStyle.Render(scenarioName)
		}
		line.WriteString(scenarioName)

		// Show income and current itemised claims
		scenarioInfo := subtleStyle.Render(
			fmt.Sprintf(" (%s gross, %s itemised)",
				output.FormatCurrencyShort(scenario.Income),
				output.FormatCurrencyShort(scenario.ItemizedTotal())),
		)
		line.WriteString(scenarioInfo)

		content.WriteString(line.String())
		content.WriteString("\n")
	}

	return tuistyles.BorderStyle.Render(content.String())
}

// renderIncomeInput shows the optional gross income override prompt
func (m *OptimizeModel) renderIncomeInput() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Set Gross Income")
	content.WriteString(title)
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	scenario := m.GetSelectedScenario()
	if scenario != nil {
		content.WriteString(subtleStyle.Render("Scenario: "))
		content.WriteString(scenario.Name)
		content.WriteString(subtleStyle.Render(fmt.Sprintf(" (%s gross)", output.FormatCurrencyShort(scenario.Income))))
		content.WriteString("\n\n")
	}

	content.WriteString(subtleStyle.Render("Enter a gross income to solve at, or leave blank to use the scenario's:"))
	content.WriteString("\n\n")

	// Input field
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(0, 1)

	content.WriteString(inputStyle.Render("₹ " + m.incomeInput.View()))
	content.WriteString("\n\n")

	help := subtleStyle.Render("Enter to solve • ESC to go back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// renderOptimizing shows solver progress
func (m *OptimizeModel) renderOptimizing() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Solving Break-Even Deductions...")
	content.WriteString(title)
	content.WriteString("\n\n")

	content.WriteString("⠋ Bisecting the deduction range...")
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("This may take a few moments..."))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderResults shows the break-even outcome
func (m *OptimizeModel) renderResults() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Break-Even Results")
	content.WriteString(title)
	content.WriteString("\n\n")

	if m.result == nil {
		subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		content.WriteString(subtleStyle.Render("No results available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess).Bold(true)
	warningStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	content.WriteString(labelStyle.Render("Scenario: "))
	content.WriteString(m.result.ScenarioName)
	content.WriteString(labelStyle.Render("  •  FY " + m.result.FiscalYear))
	content.WriteString("\n\n")

	content.WriteString(labelStyle.Render("Gross Income: "))
	content.WriteString(output.FormatCurrency(m.result.GrossIncome))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("New Regime Tax (target): "))
	content.WriteString(output.FormatCurrency(m.result.NewRegimeTax))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Current Itemised Deductions: "))
	content.WriteString(output.FormatCurrency(m.result.CurrentItemized))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Current Old Regime Tax: "))
	content.WriteString(output.FormatCurrency(m.result.CurrentOldTax))
	content.WriteString("\n\n")

	content.WriteString(labelStyle.Render("Break-Even Deductions: "))
	content.WriteString(successStyle.Render(output.FormatCurrency(m.result.BreakEvenDeductions)))
	content.WriteString("\n")

	if m.result.AlreadyAhead {
		content.WriteString(successStyle.Render("Your itemised deductions already put the old regime at or below the new regime."))
		content.WriteString("\n")
	} else {
		content.WriteString(labelStyle.Render("Additional Deductions Needed: "))
		content.WriteString(warningStyle.Render(output.FormatCurrency(m.result.AdditionalNeeded)))
		content.WriteString("\n")
	}

	// Progress toward the break-even total
	if m.result.BreakEvenDeductions.IsPositive() {
		bar := components.NewProgressBar(
			int(m.result.CurrentItemized.IntPart()),
			int(m.result.BreakEvenDeductions.IntPart()),
		).WithLabel("Itemised progress toward break-even").
			WithWidth(40).
			WithCount(false)

		content.WriteString("\n")
		content.WriteString(bar.Render())
		content.WriteString("\n")
	}

	// Deduction levers still open under the old regime
	if m.advice != nil {
		content.WriteString("\n")
		content.WriteString(m.renderSuggestions())
	}

	// Sweep chart across nearby incomes
	if len(m.curve) > 1 {
		content.WriteString("\n")
		content.WriteString(m.renderCurveChart())
		content.WriteString("\n")
	}

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render(fmt.Sprintf("Solved in %d iteration%s", m.result.Iterations, pluralS(m.result.Iterations))))
	content.WriteString("\n\n")

	help := subtleStyle.Render("n for new break-even • ESC to go back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// renderSuggestions lists the deduction levers with remaining headroom and
// the exact liability drop from maxing each one
func (m *OptimizeModel) renderSuggestions() string {
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	savingStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)

	content.WriteString(headerStyle.Render("Deduction Suggestions"))
	content.WriteString("\n")
	content.WriteString(labelStyle.Render("Old-regime marginal slab rate: "))
	content.WriteString(output.FormatPercentage(m.advice.MarginalRate.Mul(decimal.NewFromInt(100))))
	content.WriteString("\n")

	if len(m.advice.Suggestions) == 0 {
		content.WriteString(labelStyle.Render("All capped deduction categories are already exhausted."))
		content.WriteString("\n")
		return content.String()
	}

	for _, suggestion := range m.advice.Suggestions {
		content.WriteString(fmt.Sprintf("  %-12s %8s headroom, saves %s\n",
			leverLabel(suggestion.Category),
			output.FormatCurrencyShort(suggestion.Headroom),
			savingStyle.Render(output.FormatCurrencyShort(suggestion.TaxSaving)),
		))
	}

	return content.String()
}

// leverLabel maps suggestion categories to display names
func leverLabel(category string) string {
	switch category {
	case "section_80c":
		return "Section 80C"
	case "section_80d":
		return "Section 80D"
	case "hra":
		return "HRA"
	default:
		return category
	}
}

// renderCurveChart plots the sweep around the solved income
func (m *OptimizeModel) renderCurveChart() string {
	taxes := make([]float64, 0, len(m.curve))
	deductions := make([]float64, 0, len(m.curve))
	labels := make([]string, 0, len(m.curve))

	for _, point := range m.curve {
		taxes = append(taxes, point.NewRegimeTax.InexactFloat64())
		deductions = append(deductions, point.BreakEvenDeductions.InexactFloat64())
		labels = append(labels, output.FormatCurrencyShort(point.Income))
	}

	chart := components.NewASCIIChart("Break-Even Across Nearby Incomes").
		AddSeries("New regime tax", taxes, tuistyles.ColorChartLine1).
		AddSeries("Break-even deductions", deductions, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(70, 12).
		WithAxisLabels("Gross income", "")

	return chart.Render()
}
