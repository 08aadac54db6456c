package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxwise/taxwise/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a registry with all built-in transforms
// registered. Cap-dependent transforms close over the fiscal year's rules so
// "max_80c" always means the loaded year's cap.
func NewTransformRegistry(rules domain.FiscalYearRules) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_income", createSetIncome)
	registry.Register("raise_income", createRaiseIncome)
	registry.Register("set_80c", createSet80C)
	registry.Register("set_80d", createSet80D)
	registry.Register("set_hra", createSetHRA)
	registry.Register("set_home_loan_interest", createSetHomeLoanInterest)
	registry.Register("set_other_deductions", createSetOtherDeductions)
	registry.Register("no_deductions", createZeroDeductions)

	registry.Register("max_80c", func(params map[string]string) (ScenarioTransform, error) {
		return &Max80C{Cap: rules.OldRegime.Section80CCap}, nil
	})
	registry.Register("max_80d", func(params map[string]string) (ScenarioTransform, error) {
		return &Max80D{Cap: rules.OldRegime.Section80DCap}, nil
	})

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Transforms without parameters may omit the colon entirely.
// Example: "set_80c:amount=150000" or "no_deductions"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec, empty name: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		paramsStr := strings.TrimSpace(parts[1])
		if paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func parseAmountParam(transformName string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transformName, key)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}

	return amount, nil
}

func createSetIncome(params map[string]string) (ScenarioTransform, error) {
	amount, err := parseAmountParam("set_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Amount: amount}, nil
}

func createRaiseIncome(params map[string]string) (ScenarioTransform, error) {
	percent, err := parseAmountParam("raise_income", params, "percent")
	if err != nil {
		return nil, err
	}
	return &RaiseIncome{Percent: percent}, nil
}

func createSet80C(params map[string]string) (ScenarioTransform, error) {
	amount, err := parseAmountParam("set_80c", params, "amount")
	if err != nil {
		return nil, err
	}
	return &Set80C{Amount: amount}, nil
}

func createSet80D(params map[string]string) (ScenarioTransform, error) {
	amount, err := parseAmountParam("set_80d", params, "amount")
	if err != nil {
		return nil, err
	}
	return &Set80D{Amount: amount}, nil
}

func createSetHRA(params map[string]string) (ScenarioTransform, error) {
	amount, err := parseAmountParam("set_hra", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetHRA{Amount: amount}, nil
}

func createSetHomeLoanInterest(params map[string]string) (ScenarioTransform, error) {
	amount, err := parseAmountParam("set_home_loan_interest", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetHomeLoanInterest{Amount: amount}, nil
}

func createSetOtherDeductions(params map[string]string) (ScenarioTransform, error) {
	amount, err := parseAmountParam("set_other_deductions", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetOtherDeductions{Amount: amount}, nil
}

func createZeroDeductions(params map[string]string) (ScenarioTransform, error) {
	return &ZeroDeductions{}, nil
}
