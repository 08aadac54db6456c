package compare

import (
	"context"
	"fmt"

	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // List of template names to apply
}

// Compare runs the base scenario against template-derived alternatives
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	// Template caps come from the engine's fiscal year rules
	ce.TemplateRegistry = transform.CreateBuiltInTemplates(ce.CalcEngine.Rules())

	// Find base scenario
	var baseScenario *domain.TaxScenario
	for i := range config.Scenarios {
		if config.Scenarios[i].Name == options.BaseScenarioName {
			baseScenario = &config.Scenarios[i]
			break
		}
	}

	if baseScenario == nil {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	// Calculate base scenario
	baseComparison, err := ce.CalcEngine.Compare(baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseComparison)

	// Calculate alternative scenarios using templates
	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		// Apply template to create modified scenario
		modifiedScenario, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		// Update scenario name to reflect the template
		modifiedScenario.Name = baseScenario.Name + "_" + templateName

		// Calculate the modified scenario
		altComparison, err := ce.CalcEngine.Compare(modifiedScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}

		// Calculate metrics and comparison
		altResult := ce.MetricsCalculator.CalculateMetrics(altComparison)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	// Create comparison set
	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseScenarioName,
		FiscalYear:         ce.CalcEngine.FiscalYear,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	// Generate recommendations
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	// Find and calculate base scenario
	var baseComparison *domain.RegimeComparison
	for i := range config.Scenarios {
		if config.Scenarios[i].Name == baseScenarioName {
			comparison, err := ce.CalcEngine.Compare(&config.Scenarios[i])
			if err != nil {
				return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
			}
			baseComparison = comparison
			break
		}
	}

	if baseComparison == nil {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseComparison)

	// Calculate alternative scenarios
	alternatives := []ComparisonResult{}

	for _, altName := range alternativeScenarioNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var altComparison *domain.RegimeComparison
		for i := range config.Scenarios {
			if config.Scenarios[i].Name == altName {
				comparison, err := ce.CalcEngine.Compare(&config.Scenarios[i])
				if err != nil {
					return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
				}
				altComparison = comparison
				break
			}
		}

		if altComparison == nil {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altComparison)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	// Create comparison set
	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenarioName,
		FiscalYear:         ce.CalcEngine.FiscalYear,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	// Generate recommendations
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
