package application

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ApprovalPolicy carries the configurable thresholds of the decision
// engine. Fields absent from a loaded file keep their defaults.
type ApprovalPolicy struct {
	MinAge               int     `yaml:"min_age"`
	AgeTolerance         int     `yaml:"age_tolerance"`
	RatioCeiling         float64 `yaml:"ratio_ceiling"`          // percent, no mortgage
	RatioCeilingMortgage float64 `yaml:"ratio_ceiling_mortgage"` // percent, with mortgage
	CitizenToken         string  `yaml:"citizen_token"`
	ResidentToken        string  `yaml:"resident_token"`
}

func DefaultPolicy() ApprovalPolicy {
	return ApprovalPolicy{
		MinAge:               20,
		AgeTolerance:         1,
		RatioCeiling:         43,
		RatioCeilingMortgage: 55,
		CitizenToken:         "citizen",
		ResidentToken:        "resident",
	}
}

// LoadPolicy reads a YAML override file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadPolicy(path string) (ApprovalPolicy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("parse policy file: %w", err)
	}
	return policy, nil
}
