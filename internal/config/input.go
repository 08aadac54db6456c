package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
	"gopkg.in/yaml.v3"
)

func dec(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.FiscalYear == "" {
		config.FiscalYear = domain.DefaultFiscalYear
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := map[string]bool{}
	for i, scenario := range config.Scenarios {
		if scenario.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name: %s", scenario.Name)
		}
		seen[scenario.Name] = true

		if err := scenario.Validate(); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
	}

	return nil
}

// LoadRules loads a regulatory table file with slab and deduction rules
// for one or more fiscal years.
func (ip *InputParser) LoadRules(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}

	return &rules, nil
}

// ResolveFiscalYear resolves the configuration's fiscal year to its statutory
// tables. A loaded regulatory config takes precedence over the built-in years.
func ResolveFiscalYear(config *domain.Configuration, reg *domain.RegulatoryConfig) (domain.FiscalYearRules, error) {
	year := config.FiscalYear
	if year == "" {
		year = domain.DefaultFiscalYear
	}

	if reg != nil {
		if rules, ok := reg.FiscalYears[year]; ok {
			return rules, nil
		}
	}

	if rules, ok := domain.LookupFiscalYear(year); ok {
		return rules, nil
	}

	return domain.FiscalYearRules{}, fmt.Errorf("unknown fiscal year %q (known: %s)", year, knownFiscalYears(reg))
}

func knownFiscalYears(reg *domain.RegulatoryConfig) string {
	known := map[string]bool{}
	for year := range domain.BuiltinFiscalYears() {
		known[year] = true
	}
	if reg != nil {
		for year := range reg.FiscalYears {
			known[year] = true
		}
	}

	years := make([]string, 0, len(known))
	for year := range known {
		years = append(years, year)
	}
	sort.Strings(years)

	return strings.Join(years, ", ")
}

// SaveConfiguration writes a configuration back to a YAML file.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}

	return nil
}

// CreateExampleConfiguration builds a starter configuration a user can edit.
func CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		FiscalYear: domain.DefaultFiscalYear,
		Scenarios: []domain.TaxScenario{
			{
				Name:             "Base",
				Income:           dec(1200000),
				HRA:              dec(120000),
				Section80C:       dec(150000),
				Section80D:       dec(25000),
				HomeLoanInterest: dec(200000),
				OtherDeductions:  dec(50000),
			},
			{
				Name:   "No Investments",
				Income: dec(1200000),
			},
		},
	}
}
