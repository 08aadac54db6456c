package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates a new template registry with built-in templates
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if
// scenarios. Cap amounts come from the fiscal year's rules.
func CreateBuiltInTemplates(rules domain.FiscalYearRules) *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Deduction strategy templates
	registry.Register(Template{
		Name:        "max_deductions",
		Description: "Claim the full 80C and 80D caps",
		Transforms: []ScenarioTransform{
			&Max80C{Cap: rules.OldRegime.Section80CCap},
			&Max80D{Cap: rules.OldRegime.Section80DCap},
		},
	})

	registry.Register(Template{
		Name:        "no_deductions",
		Description: "Clear every itemized claim",
		Transforms: []ScenarioTransform{
			&ZeroDeductions{},
		},
	})

	registry.Register(Template{
		Name:        "home_loan_200k",
		Description: "Add ₹2,00,000 of home loan interest",
		Transforms: []ScenarioTransform{
			&SetHomeLoanInterest{Amount: decimal.NewFromInt(200000)},
		},
	})

	// Income change templates
	registry.Register(Template{
		Name:        "salary_hike_10",
		Description: "Raise gross income by 10%",
		Transforms: []ScenarioTransform{
			&RaiseIncome{Percent: decimal.NewFromInt(10)},
		},
	})

	registry.Register(Template{
		Name:        "salary_hike_20",
		Description: "Raise gross income by 20%",
		Transforms: []ScenarioTransform{
			&RaiseIncome{Percent: decimal.NewFromInt(20)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.TaxScenario, template Template) (*domain.TaxScenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Deduction Strategies": {},
		"Income Changes":       {},
		"Other":                {},
	}

	for _, template := range registry.templates {
		name := template.Name
		if strings.HasPrefix(name, "salary_") {
			categories["Income Changes"] = append(categories["Income Changes"], template)
		} else if strings.HasPrefix(name, "max_") || strings.HasPrefix(name, "no_") || strings.HasPrefix(name, "home_loan_") {
			categories["Deduction Strategies"] = append(categories["Deduction Strategies"], template)
		} else {
			categories["Other"] = append(categories["Other"], template)
		}
	}

	for _, category := range []string{"Deduction Strategies", "Income Changes", "Other"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ./taxwise compare config.yaml --with max_deductions,no_deductions\n")
	sb.WriteString("  ./taxwise compare config.yaml --with salary_hike_10,home_loan_200k\n")

	return sb.String()
}
