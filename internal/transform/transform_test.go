package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// Helper function to create a basic test scenario
func createTestScenario() *domain.TaxScenario {
	return &domain.TaxScenario{
		Name:             "Test Scenario",
		Income:           decimal.NewFromInt(1200000),
		HRA:              decimal.NewFromInt(120000),
		Section80C:       decimal.NewFromInt(50000),
		Section80D:       decimal.NewFromInt(10000),
		HomeLoanInterest: decimal.NewFromInt(100000),
		OtherDeductions:  decimal.NewFromInt(5000),
	}
}

func TestApplyTransforms_NilScenario(t *testing.T) {
	transforms := []ScenarioTransform{
		&SetIncome{Amount: decimal.NewFromInt(1000000)},
	}

	_, err := ApplyTransforms(nil, transforms)
	if err == nil {
		t.Error("Expected error for nil scenario, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestScenario()
	transforms := []ScenarioTransform{}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if result == base {
		t.Error("Expected a copy, not the same instance")
	}
	if !result.Income.Equal(base.Income) {
		t.Error("Copy should preserve values")
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestScenario()

	transforms := []ScenarioTransform{
		&SetIncome{Amount: decimal.NewFromInt(1500000)},
		&Max80C{Cap: decimal.NewFromInt(150000)},
		&SetHRA{Amount: decimal.NewFromInt(200000)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("ApplyTransforms failed: %v", err)
	}

	if !result.Income.Equal(decimal.NewFromInt(1500000)) {
		t.Errorf("Expected income 1500000, got %s", result.Income)
	}
	if !result.Section80C.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected 80C 150000, got %s", result.Section80C)
	}
	if !result.HRA.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("Expected HRA 200000, got %s", result.HRA)
	}

	// Base scenario must be untouched
	if !base.Income.Equal(decimal.NewFromInt(1200000)) {
		t.Error("Base scenario was modified")
	}
	if !base.Section80C.Equal(decimal.NewFromInt(50000)) {
		t.Error("Base scenario 80C was modified")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	base := createTestScenario()

	_, err := ApplyTransforms(base, []ScenarioTransform{nil})
	if err == nil {
		t.Error("Expected error for nil transform")
	}
	if !strings.Contains(err.Error(), "index 0") {
		t.Errorf("Expected index in error, got: %v", err)
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestScenario()

	transforms := []ScenarioTransform{
		&SetIncome{Amount: decimal.NewFromInt(-1)},
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "set_income") {
		t.Errorf("Expected transform name in error, got: %v", err)
	}

	var terr *TransformError
	if !errors.As(err, &terr) {
		t.Error("Expected a TransformError in the chain")
	}
}

func TestSetIncome(t *testing.T) {
	base := createTestScenario()
	transform := &SetIncome{Amount: decimal.NewFromInt(900000)}

	if transform.Name() != "set_income" {
		t.Errorf("Unexpected name: %s", transform.Name())
	}
	if !strings.Contains(transform.Description(), "900000") {
		t.Errorf("Expected amount in description: %s", transform.Description())
	}

	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Income.Equal(decimal.NewFromInt(900000)) {
		t.Errorf("Expected income 900000, got %s", result.Income)
	}
	if !result.Section80C.Equal(base.Section80C) {
		t.Error("Other fields should be preserved")
	}
}

func TestRaiseIncome(t *testing.T) {
	base := createTestScenario()

	hike := &RaiseIncome{Percent: decimal.NewFromInt(10)}
	result, err := hike.Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Income.Equal(decimal.NewFromInt(1320000)) {
		t.Errorf("Expected 10%% hike to 1320000, got %s", result.Income)
	}

	cut := &RaiseIncome{Percent: decimal.NewFromInt(-50)}
	result, err = cut.Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Income.Equal(decimal.NewFromInt(600000)) {
		t.Errorf("Expected 50%% cut to 600000, got %s", result.Income)
	}

	tooDeep := &RaiseIncome{Percent: decimal.NewFromInt(-150)}
	if err := tooDeep.Validate(base); err == nil {
		t.Error("Expected validation error for a cut below -100%")
	}
}

func TestDeductionTransforms_SetEachField(t *testing.T) {
	tests := []struct {
		name      string
		transform ScenarioTransform
		check     func(*domain.TaxScenario) decimal.Decimal
	}{
		{"set_80c", &Set80C{Amount: decimal.NewFromInt(111)}, func(s *domain.TaxScenario) decimal.Decimal { return s.Section80C }},
		{"set_80d", &Set80D{Amount: decimal.NewFromInt(111)}, func(s *domain.TaxScenario) decimal.Decimal { return s.Section80D }},
		{"set_hra", &SetHRA{Amount: decimal.NewFromInt(111)}, func(s *domain.TaxScenario) decimal.Decimal { return s.HRA }},
		{"set_home_loan_interest", &SetHomeLoanInterest{Amount: decimal.NewFromInt(111)}, func(s *domain.TaxScenario) decimal.Decimal { return s.HomeLoanInterest }},
		{"set_other_deductions", &SetOtherDeductions{Amount: decimal.NewFromInt(111)}, func(s *domain.TaxScenario) decimal.Decimal { return s.OtherDeductions }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.transform.Name() != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, tt.transform.Name())
			}

			base := createTestScenario()
			result, err := tt.transform.Apply(base)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			if !tt.check(result).Equal(decimal.NewFromInt(111)) {
				t.Errorf("Expected field set to 111, got %s", tt.check(result))
			}
			if !result.Income.Equal(base.Income) {
				t.Error("Income should be preserved")
			}
		})
	}
}

func TestMaxTransforms(t *testing.T) {
	base := createTestScenario()

	max80c := &Max80C{Cap: decimal.NewFromInt(150000)}
	result, err := max80c.Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Section80C.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected 80C at cap, got %s", result.Section80C)
	}

	max80d := &Max80D{Cap: decimal.NewFromInt(25000)}
	result, err = max80d.Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Section80D.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected 80D at cap, got %s", result.Section80D)
	}
}

func TestZeroDeductions(t *testing.T) {
	base := createTestScenario()
	transform := &ZeroDeductions{}

	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for name, value := range map[string]decimal.Decimal{
		"hra":                result.HRA,
		"section_80c":        result.Section80C,
		"section_80d":        result.Section80D,
		"home_loan_interest": result.HomeLoanInterest,
		"other_deductions":   result.OtherDeductions,
	} {
		if !value.IsZero() {
			t.Errorf("Expected %s cleared, got %s", name, value)
		}
	}

	if !result.Income.Equal(base.Income) {
		t.Error("Income should be preserved")
	}
}

func TestTransformError_Error(t *testing.T) {
	plain := &TransformError{TransformName: "set_income", Operation: "validate", Reason: "negative amount"}
	if !strings.Contains(plain.Error(), "set_income") || !strings.Contains(plain.Error(), "negative amount") {
		t.Errorf("Unexpected message: %s", plain.Error())
	}

	inner := errors.New("boom")
	wrapped := &TransformError{TransformName: "set_80c", Operation: "apply", Reason: "failed", Err: inner}
	if !errors.Is(wrapped, inner) {
		t.Error("Expected Unwrap to expose the inner error")
	}
}

func TestTransformRegistry_CreateAndParse(t *testing.T) {
	registry := NewTransformRegistry(domain.FY2024Rules())

	transform, err := registry.Create("set_income", map[string]string{"amount": "1500000"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if transform.Name() != "set_income" {
		t.Errorf("Unexpected transform: %s", transform.Name())
	}

	// Cap transforms inherit the fiscal year's caps without parameters.
	maxed, err := registry.Create("max_80c", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	result, err := maxed.Apply(createTestScenario())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Section80C.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected the 2024-25 cap, got %s", result.Section80C)
	}

	if _, err := registry.Create("unknown", nil); err == nil {
		t.Error("Expected error for unknown transform")
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry(domain.FY2024Rules())

	transform, err := registry.ParseTransformSpec("set_80c:amount=120000")
	if err != nil {
		t.Fatalf("ParseTransformSpec failed: %v", err)
	}
	result, err := transform.Apply(createTestScenario())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Section80C.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("Expected 80C 120000, got %s", result.Section80C)
	}

	// Parameterless transforms may omit the colon.
	if _, err := registry.ParseTransformSpec("no_deductions"); err != nil {
		t.Errorf("Expected bare spec to parse, got: %v", err)
	}

	if _, err := registry.ParseTransformSpec("set_80c:amount"); err == nil {
		t.Error("Expected error for malformed parameter")
	}
	if _, err := registry.ParseTransformSpec("set_80c:amount=abc"); err == nil {
		t.Error("Expected error for non-numeric amount")
	}
	if _, err := registry.ParseTransformSpec(":amount=1"); err == nil {
		t.Error("Expected error for empty name")
	}
}

func TestTransformRegistry_List(t *testing.T) {
	registry := NewTransformRegistry(domain.FY2024Rules())

	names := registry.List()
	if len(names) < 10 {
		t.Errorf("Expected at least 10 registered transforms, got %d", len(names))
	}

	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}
	for _, want := range []string{"set_income", "raise_income", "max_80c", "max_80d", "no_deductions"} {
		if !found[want] {
			t.Errorf("Expected %s in registry", want)
		}
	}
}
