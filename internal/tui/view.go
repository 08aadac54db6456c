package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	// Render the current scene
	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	// Wrap content with app styling and status bar
	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// Calculate available height for content
	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("TaxWise - Old vs New Regime Planner")

	// Build breadcrumb
	breadcrumb := ""
	if m.config != nil && m.selectedScenario != "" {
		breadcrumb = SubtitleStyle.Render(
			fmt.Sprintf("%s / %s", m.currentScene.String(), m.selectedScenario),
		)
	} else {
		breadcrumb = SubtitleStyle.Render(m.currentScene.String())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		breadcrumb,
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("s", "scenarios"),
		formatShortcut("p", "parameters"),
		formatShortcut("c", "compare"),
		formatShortcut("o", "break-even"),
		formatShortcut("r", "results"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	// Right-align the save confirmation or the loaded fiscal year
	right := ""
	if m.statusMessage != "" {
		right = SubtitleStyle.Render(m.statusMessage)
	} else if m.config != nil {
		right = SubtitleStyle.Render("FY " + m.calcEngine.FiscalYear)
	}

	if right != "" {
		width := m.width - lipgloss.Width(statusText) - 4
		spacer := strings.Repeat(" ", max(0, width))
		statusText = statusText + spacer + right
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading spinner/message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := BorderStyle.Render(
		m.spinner.WithMessage(message).Render(),
	)

	return m.renderApp(content)
}

// renderError renders an error message
func (m Model) renderError() string {
	errorMsg := "An error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", errorMsg),
	)

	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
TaxWise - Old vs New Regime Planner

KEYBOARD SHORTCUTS:
  h        Navigate to Home
  s        Navigate to Scenarios
  p        Navigate to Parameters
  c        Navigate to Compare
  o        Navigate to Break-Even
  r        Navigate to Results
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

NAVIGATION:
  Use arrow keys (or j/k) to move through lists
  Enter to select items
  Tab to switch between scenarios while editing

EDITING:
  ←/→ adjust the focused slider
  Enter recalculates with the edited values
  Ctrl+S writes the edited scenarios back to the config file

ANALYSIS:
  Compare prices each selected scenario under both regimes,
  plus what-if template variants of the first selection
  Break-Even finds the deduction total where the old regime
  catches up with the new regime for a given income, and lists
  the deduction levers still open with the saving from maxing each
`

	return BorderStyle.Render(helpText)
}

// Helper function
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
