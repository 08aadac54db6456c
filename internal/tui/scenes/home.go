package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/output"
	"github.com/taxwise/taxwise/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	config     *domain.Configuration
	fiscalYear string
	width      int
	height     int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetConfig updates the configuration
func (m *HomeModel) SetConfig(config *domain.Configuration) {
	m.config = config
}

// SetFiscalYear records the fiscal year the engine resolved for this run
func (m *HomeModel) SetFiscalYear(fy string) {
	m.fiscalYear = fy
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Home scene is mostly passive - navigation handled by parent
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	if m.config == nil {
		return m.renderLoading()
	}

	var content strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render("TaxWise - Old vs New Regime Planner"))
	content.WriteString("\n\n")

	// Configuration Overview
	content.WriteString(m.renderConfigOverview())
	content.WriteString("\n\n")

	// Scenarios Overview
	content.WriteString(m.renderScenariosOverview())
	content.WriteString("\n\n")

	// Quick Actions
	content.WriteString(m.renderQuickActions())
	content.WriteString("\n\n")

	// Help
	content.WriteString(m.renderHelp())

	return tuistyles.BorderStyle.Render(content.String())
}

// renderLoading shows loading state
func (m *HomeModel) renderLoading() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("TaxWise - Old vs New Regime Planner"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("Loading configuration..."))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderConfigOverview shows fiscal year and configuration summary
func (m *HomeModel) renderConfigOverview() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("📋 Configuration Overview"))
	content.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	fiscalYear := m.fiscalYear
	if fiscalYear == "" {
		fiscalYear = m.config.FiscalYear
	}
	if fiscalYear == "" {
		fiscalYear = domain.DefaultFiscalYear
	}
	content.WriteString(labelStyle.Render("  Fiscal Year: "))
	content.WriteString(valueStyle.Render(fiscalYear))
	content.WriteString("\n")

	// Scenarios count
	scenarioCount := len(m.config.Scenarios)
	content.WriteString(labelStyle.Render("  Scenarios: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%d configured", scenarioCount)))
	content.WriteString("\n")

	// Combined gross income across scenarios gives a quick sense of scale
	if scenarioCount > 0 {
		lowest := m.config.Scenarios[0].Income
		highest := m.config.Scenarios[0].Income
		for _, scenario := range m.config.Scenarios[1:] {
			if scenario.Income.LessThan(lowest) {
				lowest = scenario.Income
			}
			if scenario.Income.GreaterThan(highest) {
				highest = scenario.Income
			}
		}
		content.WriteString(labelStyle.Render("  Income Range: "))
		if lowest.Equal(highest) {
			content.WriteString(valueStyle.Render(output.FormatCurrencyShort(lowest)))
		} else {
			content.WriteString(valueStyle.Render(fmt.Sprintf("%s - %s",
				output.FormatCurrencyShort(lowest), output.FormatCurrencyShort(highest))))
		}
		content.WriteString("\n")
	}

	return content.String()
}

// renderScenariosOverview shows quick scenario summary
func (m *HomeModel) renderScenariosOverview() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("📊 Available Scenarios"))
	content.WriteString("\n")

	if len(m.config.Scenarios) == 0 {
		subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		content.WriteString(subtleStyle.Render("  No scenarios configured"))
		return content.String()
	}

	nameStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	// Show up to 5 scenarios
	displayCount := min(5, len(m.config.Scenarios))
	for i := 0; i < displayCount; i++ {
		scenario := m.config.Scenarios[i]
		content.WriteString("  ")
		content.WriteString(nameStyle.Render(fmt.Sprintf("%d. %s", i+1, scenario.Name)))
		content.WriteString(subtleStyle.Render(fmt.Sprintf(" (%s gross, %s itemised)",
			output.FormatCurrencyShort(scenario.Income),
			output.FormatCurrencyShort(scenario.ItemizedTotal()))))
		content.WriteString("\n")
	}

	if len(m.config.Scenarios) > 5 {
		content.WriteString(subtleStyle.Render(fmt.Sprintf("  ... and %d more",
			len(m.config.Scenarios)-5)))
		content.WriteString("\n")
	}

	return content.String()
}

// renderQuickActions shows available navigation shortcuts
func (m *HomeModel) renderQuickActions() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("⚡ Quick Actions"))
	content.WriteString("\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	actions := []struct {
		key  string
		desc string
	}{
		{"s", "Browse and select scenarios"},
		{"p", "Edit scenario deductions"},
		{"c", "Compare multiple scenarios"},
		{"o", "Solve break-even deductions"},
		{"r", "View calculation results"},
		{"?", "Show help"},
	}

	for _, action := range actions {
		content.WriteString("  ")
		content.WriteString(keyStyle.Render(action.key))
		content.WriteString(descStyle.Render("  " + action.desc))
		content.WriteString("\n")
	}

	return content.String()
}

// renderHelp shows getting started tips
func (m *HomeModel) renderHelp() string {
	var content strings.Builder

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)

	content.WriteString(subtleStyle.Render("💡 Tip: Press 's' to browse scenarios and compare both regimes"))
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render("    Press '?' at any time for help"))

	return content.String()
}

// Helper functions

func pluralS(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
