package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// CompaniesFile is an optional side file holding just the watch list, so
// operators can swap target companies without touching the main config.
type CompaniesFile struct {
	Companies []string          `yaml:"companies"`
	Overrides map[string]string `yaml:"overrides"`
}

func OverlayCompanies(cfg *Config, companiesPath string) error {
	b, err := os.ReadFile(companiesPath)
	if err != nil {
		// Missing companies file should not kill startup
		return nil
	}

	var cf CompaniesFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return err
	}

	if len(cf.Companies) > 0 {
		cfg.Companies = cf.Companies
	}
	for name, url := range cf.Overrides {
		if cfg.Overrides == nil {
			cfg.Overrides = map[string]string{}
		}
		cfg.Overrides[name] = url
	}
	return nil
}
