package config

import (
	"fmt"
	"os"
	"parcel-kpi-service/internal/services"

	"gopkg.in/yaml.v3"
)

// LoadRules reads classification rules from a YAML file. Fields the file omits keep
// their default values.
func LoadRules(path string) (services.Rules, error) {
	rules := services.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return services.Rules{}, fmt.Errorf("rules config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return services.Rules{}, fmt.Errorf("rules config: parse yaml: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return services.Rules{}, fmt.Errorf("rules config: %w", err)
	}

	return rules, nil
}
