package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

func TestConfigurationValidation(t *testing.T) {
	validConfig := &domain.Configuration{
		FiscalYear: "2024-25",
		Scenarios: []domain.TaxScenario{
			{
				Name:             "Salaried",
				Income:           decimal.NewFromInt(1200000),
				HRA:              decimal.NewFromInt(120000),
				Section80C:       decimal.NewFromInt(150000),
				Section80D:       decimal.NewFromInt(25000),
				HomeLoanInterest: decimal.NewFromInt(200000),
				OtherDeductions:  decimal.NewFromInt(50000),
			},
			{
				Name:   "No Investments",
				Income: decimal.NewFromInt(1200000),
			},
		},
	}

	parser := NewInputParser()
	err := parser.ValidateConfiguration(validConfig)
	if err != nil {
		t.Errorf("Expected valid configuration but got error: %s", err.Error())
	}
}
