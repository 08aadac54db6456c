package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/output"
	"github.com/taxwise/taxwise/internal/transform"
	"github.com/taxwise/taxwise/internal/tui/components"
	"github.com/taxwise/taxwise/internal/tui/tuimsg"
	"github.com/taxwise/taxwise/internal/tui/tuistyles"
)

// CompareModel represents the multi-scenario comparison scene. The selection
// list offers the configured scenarios plus what-if template variants priced
// against the first selected scenario.
type CompareModel struct {
	scenarios         []domain.TaxScenario
	templates         []transform.Template
	selectedScenarios map[int]bool // Track which scenarios are selected for comparison
	selectedTemplates map[int]bool
	cursorIndex       int
	comparedNames     []string // Column order of the last comparison, including variants
	results           map[string]*domain.RegimeComparison
	comparing         bool
	width             int
	height            int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{
		scenarios:         []domain.TaxScenario{},
		selectedScenarios: make(map[int]bool),
		selectedTemplates: make(map[int]bool),
		results:           make(map[string]*domain.RegimeComparison),
		cursorIndex:       0,
		comparing:         false,
	}
}

// SetScenarios updates the scenarios list
func (m *CompareModel) SetScenarios(scenarios []domain.TaxScenario) {
	m.scenarios = scenarios
	m.selectedScenarios = make(map[int]bool)
	m.selectedTemplates = make(map[int]bool)
	m.comparedNames = nil
	m.cursorIndex = 0
}

// SetTemplates updates the what-if templates offered below the scenarios
func (m *CompareModel) SetTemplates(templates []transform.Template) {
	m.templates = templates
	m.selectedTemplates = make(map[int]bool)
}

// SetResults stores comparison results. A nil map clears the in-flight state
// after a failed run.
func (m *CompareModel) SetResults(results map[string]*domain.RegimeComparison) {
	if results == nil {
		results = make(map[string]*domain.RegimeComparison)
	}
	m.results = results
	m.comparing = false
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursorIndex > 0 {
				m.cursorIndex--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursorIndex < len(m.scenarios)+len(m.templates)-1 {
				m.cursorIndex++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys(" ", "x"))):
			// Toggle selection. The cursor walks the scenario list first,
			// then the template list.
			if m.cursorIndex < len(m.scenarios) {
				m.selectedScenarios[m.cursorIndex] = !m.selectedScenarios[m.cursorIndex]
			} else {
				templateIdx := m.cursorIndex - len(m.scenarios)
				m.selectedTemplates[templateIdx] = !m.selectedTemplates[templateIdx]
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			// Start comparison. Two scenarios make a comparison on their
			// own; a template variant only needs one scenario to price
			// against.
			scenarios := m.getSelectedScenarios()
			templates := m.getSelectedTemplates()
			if len(scenarios) == 0 {
				return m, nil
			}
			if len(scenarios) < 2 && len(templates) == 0 {
				return m, nil
			}
			m.comparedNames = make([]string, 0, len(scenarios)+len(templates))
			m.comparedNames = append(m.comparedNames, scenarios...)
			for _, template := range templates {
				m.comparedNames = append(m.comparedNames, scenarios[0]+"_"+template)
			}
			m.comparing = true
			return m, startComparisonCmd(scenarios, templates)

		case key.Matches(msg, key.NewBinding(key.WithKeys("c"))):
			// Clear selections
			m.selectedScenarios = make(map[int]bool)
			m.selectedTemplates = make(map[int]bool)
			m.comparedNames = nil
			m.results = make(map[string]*domain.RegimeComparison)
			return m, nil
		}
	}

	return m, nil
}

// getSelectedScenarios returns the list of selected scenario names in index order
func (m *CompareModel) getSelectedScenarios() []string {
	var selected []string
	// Iterate in order by index to maintain consistent ordering
	for idx := 0; idx < len(m.scenarios); idx++ {
		if m.selectedScenarios[idx] {
			selected = append(selected, m.scenarios[idx].Name)
		}
	}
	return selected
}

// getSelectedTemplates returns the selected template names in index order
func (m *CompareModel) getSelectedTemplates() []string {
	var selected []string
	for idx := 0; idx < len(m.templates); idx++ {
		if m.selectedTemplates[idx] {
			selected = append(selected, m.templates[idx].Name)
		}
	}
	return selected
}

// startComparisonCmd creates a command to start scenario comparison
func startComparisonCmd(scenarios, templates []string) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.ComparisonStartedMsg{
			ScenarioNames: scenarios,
			Templates:     templates,
		}
	}
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.comparing {
		return m.renderLoading()
	}

	if len(m.results) > 0 {
		return m.renderComparison()
	}

	return m.renderSelection()
}

// renderSelection shows scenario selection interface
func (m *CompareModel) renderSelection() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Select Scenarios to Compare")
	content.WriteString(title)
	content.WriteString("\n\n")

	if len(m.scenarios) == 0 {
		content.WriteString(tuistyles.ErrorStyle.Render("No scenarios available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	// Instructions
	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	instructions := subtleStyle.Render(
		"Use ↑/↓ to navigate • Space/x to select • Enter to compare • c to clear",
	)
	content.WriteString(instructions)
	content.WriteString("\n\n")

	// Scenario list with checkboxes
	for idx, scenario := range m.scenarios {
		var line strings.Builder

		// Cursor
		cursorStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
		if idx == m.cursorIndex {
			line.WriteString(cursorStyle.Render("❯ "))
		} else {
			line.WriteString("  ")
		}

		// Checkbox
		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
		if m.selectedScenarios[idx] {
			line.WriteString(highlightStyle.Render("[✓] "))
		} else {
			line.WriteString(subtleStyle.Render("[ ] "))
		}

		// Scenario name
		scenarioName := scenario.Name
		if idx == m.cursorIndex {
			scenarioName = highlightStyle.Render(scenarioName)
		}
		line.WriteString(scenarioName)

		// Show gross income
		incomeInfo := subtleStyle.Render(
			fmt.Sprintf(" (%s gross)", output.FormatCurrencyShort(scenario.Income)),
		)
		line.WriteString(incomeInfo)

		content.WriteString(line.String())
		content.WriteString("\n")
	}

	// Template variants, priced against the first selected scenario
	if len(m.templates) > 0 {
		content.WriteString("\n")
		content.WriteString(subtleStyle.Render("Template variants (priced against the first selected scenario):"))
		content.WriteString("\n")

		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
		cursorStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
		for idx, template := range m.templates {
			var line strings.Builder
			listIdx := len(m.scenarios) + idx

			if listIdx == m.cursorIndex {
				line.WriteString(cursorStyle.Render("❯ "))
			} else {
				line.WriteString("  ")
			}

			if m.selectedTemplates[idx] {
				line.WriteString(highlightStyle.Render("[✓] "))
			} else {
				line.WriteString(subtleStyle.Render("[ ] "))
			}

			templateName := template.Name
			if listIdx == m.cursorIndex {
				templateName = highlightStyle.Render(templateName)
			}
			line.WriteString(templateName)
			if template.Description != "" {
				line.WriteString(subtleStyle.Render(fmt.Sprintf(" (%s)", template.Description)))
			}

			content.WriteString(line.String())
			content.WriteString("\n")
		}
	}

	// Selection summary
	selectedScenarios := len(m.getSelectedScenarios())
	selectedTemplates := len(m.getSelectedTemplates())
	content.WriteString("\n")
	warningStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)
	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	switch {
	case selectedScenarios == 0 && selectedTemplates == 0:
		content.WriteString(subtleStyle.Render("Select at least 2 scenarios, or a scenario plus a template"))
	case selectedScenarios == 0:
		content.WriteString(warningStyle.Render(
			fmt.Sprintf("Selected: %d template%s (templates need a base scenario)", selectedTemplates, pluralS(selectedTemplates)),
		))
	case selectedScenarios == 1 && selectedTemplates == 0:
		content.WriteString(warningStyle.Render(
			"Selected: 1 scenario (add another scenario or a template)",
		))
	case selectedTemplates == 0:
		content.WriteString(successStyle.Render(
			fmt.Sprintf("Selected: %d scenarios • Press Enter to compare", selectedScenarios),
		))
	default:
		content.WriteString(successStyle.Render(
			fmt.Sprintf("Selected: %d scenario%s + %d template%s • Press Enter to compare",
				selectedScenarios, pluralS(selectedScenarios), selectedTemplates, pluralS(selectedTemplates)),
		))
	}

	return tuistyles.BorderStyle.Render(content.String())
}

// comparisonColumns returns the column order of the current comparison,
// falling back to the scenario selection before any run has started
func (m *CompareModel) comparisonColumns() []string {
	if len(m.comparedNames) > 0 {
		return m.comparedNames
	}
	return m.getSelectedScenarios()
}

// renderLoading shows loading state during comparison
func (m *CompareModel) renderLoading() string {
	columns := m.comparisonColumns()

	panel := components.NewProgressPanel(
		fmt.Sprintf("Comparing %d scenario%s under both regimes", len(columns), pluralS(len(columns))),
	)
	for _, name := range columns {
		panel.AddItem(components.ProgressItem{
			Label:  name,
			Status: "running",
		})
	}

	return panel.Render()
}

// renderComparison shows the comparison results
func (m *CompareModel) renderComparison() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Scenario Comparison")
	content.WriteString(title)
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	if len(m.results) == 0 {
		content.WriteString(subtleStyle.Render("No comparison results available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	// Build comparison table
	content.WriteString(m.renderComparisonTable())
	content.WriteString("\n")

	// Winner callout
	if callout := m.renderBestScenario(); callout != "" {
		content.WriteString("\n")
		content.WriteString(callout)
		content.WriteString("\n")
	}

	// Help text
	content.WriteString("\n")
	help := subtleStyle.Render("c to start new comparison • ESC to go back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// renderComparisonTable creates a side-by-side comparison table
func (m *CompareModel) renderComparisonTable() string {
	var table strings.Builder

	// Column order: selected scenarios first, template variants after
	scenarioNames := m.comparisonColumns()
	if len(scenarioNames) == 0 {
		return ""
	}

	// Table header
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)

	// Metric column
	metricWidth := 22
	table.WriteString(headerStyle.Render(padRight("Metric", metricWidth)))
	table.WriteString(" ")

	// Scenario columns
	colWidth := 18
	for _, name := range scenarioNames {
		shortName := truncate(name, colWidth)
		table.WriteString(headerStyle.Render(padRight(shortName, colWidth)))
		table.WriteString(" ")
	}
	table.WriteString("\n")

	// Separator
	totalWidth := metricWidth + (len(scenarioNames) * (colWidth + 1))
	table.WriteString(strings.Repeat("─", totalWidth))
	table.WriteString("\n")

	// Metrics rows. Tax rows star the lowest value, the savings row the
	// highest.
	const (
		starNone    = ""
		starLowest  = "lowest"
		starHighest = "highest"
	)

	metrics := []struct {
		label   string
		display func(*domain.RegimeComparison) string
		numeric func(*domain.RegimeComparison) decimal.Decimal
		star    string
	}{
		{
			label: "Gross Income",
			display: func(c *domain.RegimeComparison) string {
				return output.FormatCurrencyShort(c.OldRegime.GrossIncome)
			},
			numeric: func(c *domain.RegimeComparison) decimal.Decimal {
				return c.OldRegime.GrossIncome
			},
			star: starNone,
		},
		{
			label: "Old Regime Tax",
			display: func(c *domain.RegimeComparison) string {
				return output.FormatCurrencyShort(c.OldRegime.TotalTaxLiability)
			},
			numeric: func(c *domain.RegimeComparison) decimal.Decimal {
				return c.OldRegime.TotalTaxLiability
			},
			star: starLowest,
		},
		{
			label: "New Regime Tax",
			display: func(c *domain.RegimeComparison) string {
				return output.FormatCurrencyShort(c.NewRegime.TotalTaxLiability)
			},
			numeric: func(c *domain.RegimeComparison) decimal.Decimal {
				return c.NewRegime.TotalTaxLiability
			},
			star: starLowest,
		},
		{
			label: "Recommended Regime",
			display: func(c *domain.RegimeComparison) string {
				return domain.RegimeDisplayName(c.RecommendedRegime)
			},
			numeric: nil,
			star:    starNone,
		},
		{
			label: "Recommended Tax",
			display: func(c *domain.RegimeComparison) string {
				return output.FormatCurrencyShort(c.Recommended().TotalTaxLiability)
			},
			numeric: func(c *domain.RegimeComparison) decimal.Decimal {
				return c.Recommended().TotalTaxLiability
			},
			star: starLowest,
		},
		{
			label: "Annual Savings",
			display: func(c *domain.RegimeComparison) string {
				return output.FormatCurrencyShort(c.PotentialSavings)
			},
			numeric: func(c *domain.RegimeComparison) decimal.Decimal {
				return c.PotentialSavings
			},
			star: starHighest,
		},
	}

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)

	for _, metric := range metrics {
		// Metric label
		table.WriteString(subtleStyle.Render(padRight(metric.label, metricWidth)))
		table.WriteString(" ")

		// Find best value for highlighting
		var bestValue decimal.Decimal
		bestValueSet := false
		if metric.star != starNone && metric.numeric != nil {
			for _, name := range scenarioNames {
				result, ok := m.results[name]
				if !ok {
					continue
				}
				value := metric.numeric(result)
				if !bestValueSet {
					bestValue = value
					bestValueSet = true
					continue
				}
				if metric.star == starLowest && value.LessThan(bestValue) {
					bestValue = value
				}
				if metric.star == starHighest && value.GreaterThan(bestValue) {
					bestValue = value
				}
			}
		}

		// Values for each scenario
		for _, name := range scenarioNames {
			result, ok := m.results[name]
			if !ok {
				table.WriteString(padRight("-", colWidth))
				table.WriteString(" ")
				continue
			}

			valueStr := metric.display(result)
			if bestValueSet && metric.numeric(result).Equal(bestValue) {
				valueStr = successStyle.Render(valueStr + " ★")
			}
			table.WriteString(padRight(valueStr, colWidth))
			table.WriteString(" ")
		}
		table.WriteString("\n")
	}

	return table.String()
}

// renderBestScenario names the scenario with the lowest recommended liability
func (m *CompareModel) renderBestScenario() string {
	var best *domain.RegimeComparison
	var bestName string

	for _, name := range m.comparisonColumns() {
		result, ok := m.results[name]
		if !ok {
			continue
		}
		if best == nil || result.Recommended().TotalTaxLiability.LessThan(best.Recommended().TotalTaxLiability) {
			best = result
			bestName = name
		}
	}

	if best == nil {
		return ""
	}

	return tuistyles.TableHighlightStyle.Render(fmt.Sprintf(
		"★ Best: %s pays %s under the %s",
		bestName,
		output.FormatCurrency(best.Recommended().TotalTaxLiability),
		domain.RegimeDisplayName(best.RecommendedRegime),
	))
}

// Helper functions

func padRight(s string, width int) string {
	// Use lipgloss.Width to account for ANSI escape codes
	currentWidth := lipgloss.Width(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
