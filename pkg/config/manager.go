package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PlanManager loads and validates investment plans from files
type PlanManager struct{}

// NewPlanManager creates a new plan manager
func NewPlanManager() *PlanManager {
	return &PlanManager{}
}

// LoadPlan reads a plan from a JSON or YAML file, applies defaults for
// unset strategy parameters, env overrides, and validates the result.
func (m *PlanManager) LoadPlan(path string) (*InvestmentPlan, error) {
	// .env values override file values for the keys they cover
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read plan file: %w", err)
	}

	plan := NewDefaultPlan()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, plan); err != nil {
			return nil, fmt.Errorf("could not parse YAML plan %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, plan); err != nil {
			return nil, fmt.Errorf("could not parse JSON plan %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported plan file format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}

	applyEnvOverrides(plan)

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return plan, nil
}

func applyEnvOverrides(plan *InvestmentPlan) {
	if v := os.Getenv("DCA_SYMBOL"); v != "" {
		plan.Symbol = v
	}
	if v := os.Getenv("DCA_START_DATE"); v != "" {
		plan.StartDate = v
	}
	if v := os.Getenv("DCA_END_DATE"); v != "" {
		plan.EndDate = v
	}
}

// SavePlan writes a plan back out as indented JSON.
func (m *PlanManager) SavePlan(plan *InvestmentPlan, path string) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
