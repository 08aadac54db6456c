package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/output"
	"github.com/taxwise/taxwise/internal/tui/components"
	"github.com/taxwise/taxwise/internal/tui/tuistyles"
)

// ResultsModel represents the regime comparison display scene
type ResultsModel struct {
	scenarioName string
	comparison   *domain.RegimeComparison
	width        int
	height       int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResults updates the comparison to display
func (m *ResultsModel) SetResults(scenarioName string, comparison *domain.RegimeComparison) {
	m.scenarioName = scenarioName
	m.comparison = comparison
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// Results scene is mostly read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.comparison == nil {
		return renderNoResultsState()
	}

	// Build header
	header := renderResultsHeader(m.scenarioName, m.comparison.FiscalYear)

	// Build key metrics cards
	metrics := renderKeyMetrics(m.comparison)

	// Build slab breakdowns for both regimes side by side
	slabTables := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderRegimeBreakdown(&m.comparison.OldRegime),
		"  ",
		renderRegimeBreakdown(&m.comparison.NewRegime),
	)

	// Old regime deduction summary
	deductions := renderDeductionSummary(m.comparison.OldRegime.Deductions)

	// Build help
	help := renderResultsHelp()

	// Combine sections
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		metrics,
		"",
		slabTables,
		"",
		deductions,
		"",
		help,
	)

	return content
}

// renderNoResultsState renders empty state
func renderNoResultsState() string {
	return `No results to display.

Please select a scenario first (press 's') and hit Enter to compare regimes.

Press ESC to go back.`
}

// renderResultsHeader renders the header with scenario name
func renderResultsHeader(scenarioName, fiscalYear string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)

	title := titleStyle.Render("Regime Comparison")
	subtitle := subtitleStyle.Render(fmt.Sprintf("Scenario: %s  •  FY %s", scenarioName, fiscalYear))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
	)
}

// renderKeyMetrics renders the key metrics as cards
func renderKeyMetrics(comparison *domain.RegimeComparison) string {
	cards := []*components.MetricCard{}

	recommendedOld := comparison.RecommendedRegime == domain.RegimeOld

	card := components.NewMetricCard(
		"Old Regime Tax",
		output.FormatCurrency(comparison.OldRegime.TotalTaxLiability),
	).WithDescription("Effective rate " + ratePercent(comparison.OldRegime.EffectiveRate)).
		WithHighlight(recommendedOld).
		WithWidth(30)
	cards = append(cards, card)

	card = components.NewMetricCard(
		"New Regime Tax",
		output.FormatCurrency(comparison.NewRegime.TotalTaxLiability),
	).WithDescription("Effective rate " + ratePercent(comparison.NewRegime.EffectiveRate)).
		WithHighlight(!recommendedOld).
		WithWidth(30)
	cards = append(cards, card)

	card = components.NewMetricCard(
		"Recommended",
		domain.RegimeDisplayName(comparison.RecommendedRegime),
	).WithTrend(true, "saves "+output.FormatCurrencyShort(comparison.PotentialSavings)+"/yr").
		WithHighlight(true).
		WithWidth(30)
	cards = append(cards, card)

	card = components.NewMetricCard(
		"Taxable Income (Old)",
		output.FormatCurrency(comparison.OldRegime.TaxableIncome),
	).WithDescription("After " + output.FormatCurrencyShort(comparison.OldRegime.Deductions.Total()) + " deductions").
		WithWidth(30)
	cards = append(cards, card)

	card = components.NewMetricCard(
		"Taxable Income (New)",
		output.FormatCurrency(comparison.NewRegime.TaxableIncome),
	).WithDescription("Standard deduction only").
		WithWidth(30)
	cards = append(cards, card)

	// Display in grid (3 columns)
	return components.MetricGrid(cards, 3)
}

// renderRegimeBreakdown renders the slab-by-slab table for one regime
func renderRegimeBreakdown(result *domain.RegimeResult) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2)

	var content strings.Builder
	content.WriteString(titleStyle.Render(result.RegimeName))
	content.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)

	header := fmt.Sprintf("%-18s  %-7s  %-12s  %-12s",
		"Slab", "Rate", "Taxable", "Tax")
	content.WriteString(headerStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 56))
	content.WriteString("\n")

	if len(result.SlabContributions) == 0 {
		subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		content.WriteString(subtleStyle.Render("No slab reaches taxable income"))
		content.WriteString("\n")
	}

	for _, slab := range result.SlabContributions {
		row := fmt.Sprintf("%-18s  %-7s  %-12s  %-12s",
			slab.Label,
			ratePercent(slab.Rate),
			output.FormatCurrencyShort(slab.TaxableAmount),
			output.FormatCurrencyShort(slab.Tax))
		content.WriteString(row)
		content.WriteString("\n")
	}

	content.WriteString(strings.Repeat("─", 56))
	content.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	totalStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground)

	content.WriteString(labelStyle.Render(fmt.Sprintf("%-29s", "Tax before cess")))
	content.WriteString(totalStyle.Render(output.FormatCurrency(result.TaxBeforeCess)))
	content.WriteString("\n")
	content.WriteString(labelStyle.Render(fmt.Sprintf("%-29s", "Health & education cess")))
	content.WriteString(totalStyle.Render(output.FormatCurrency(result.Cess)))
	content.WriteString("\n")
	content.WriteString(labelStyle.Render(fmt.Sprintf("%-29s", "Total liability")))
	content.WriteString(totalStyle.Render(output.FormatCurrency(result.TotalTaxLiability)))
	content.WriteString("\n")

	return tableStyle.Render(content.String())
}

// renderDeductionSummary lists the amounts the old regime actually allowed
// after caps
func renderDeductionSummary(deductions domain.DeductionBreakdown) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2)

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Deductions Allowed (Old Regime)"))
	content.WriteString("\n\n")

	rows := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Standard Deduction", deductions.StandardDeduction},
		{"Section 80C", deductions.Section80C},
		{"Section 80D", deductions.Section80D},
		{"HRA Exemption", deductions.HRA},
		{"Home Loan & Other", deductions.Other},
	}

	for _, row := range rows {
		content.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", row.label)))
		content.WriteString(valueStyle.Render(output.FormatCurrency(row.amount)))
		content.WriteString("\n")
	}

	content.WriteString(strings.Repeat("─", 40))
	content.WriteString("\n")
	totalStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSuccess)
	content.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", "Total")))
	content.WriteString(totalStyle.Render(output.FormatCurrency(deductions.Total())))

	return panelStyle.Render(content.String())
}

// renderResultsHelp renders keyboard shortcuts
func renderResultsHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render("ESC back • s scenarios • p edit deductions • c compare • o break-even")
}

// ratePercent renders a rate fraction like 0.0596 as 5.96%
func ratePercent(rate decimal.Decimal) string {
	return output.FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}
