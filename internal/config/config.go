package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scrape struct {
		Workers        int     `yaml:"workers"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		DetailFanout   int     `yaml:"detail_fanout"`
		PerHostRPS     float64 `yaml:"per_host_rps"`
		PerHostBurst   int     `yaml:"per_host_burst"`
	} `yaml:"scrape"`

	Recency struct {
		MaxAgeMinutes int `yaml:"max_age_minutes"`
		// AcceptUndated relaxes the conservative default of rejecting
		// postings whose age cannot be verified.
		AcceptUndated bool `yaml:"accept_undated"`
	} `yaml:"recency"`

	Companies []string `yaml:"companies"`

	// Overrides maps a company name to a known career page URL, checked
	// before any domain guessing.
	Overrides map[string]string `yaml:"overrides"`

	Keywords Keywords `yaml:"keywords"`

	Tracker struct {
		Path string `yaml:"path"`
	} `yaml:"tracker"`

	Notify Notify `yaml:"notify"`
}

// Keywords holds every classifier vocabulary. All lists are matched as
// lowercase substrings.
type Keywords struct {
	Intern          []string `yaml:"intern"`
	Exclude         []string `yaml:"exclude"`
	Corroborate     []string `yaml:"corroborate"`
	SubjectRoles    []string `yaml:"subject_roles"`
	CloudIndicators []string `yaml:"cloud_indicators"`
	TechSkills      []string `yaml:"tech_skills"`
	DataTech        []string `yaml:"data_tech"`
	DataSkills      []string `yaml:"data_skills"`
}

type Notify struct {
	Enabled   bool     `yaml:"enabled"`
	SMTPHost  string   `yaml:"smtp_host"`
	SMTPPort  int      `yaml:"smtp_port"`
	From      string   `yaml:"from"`
	To        []string `yaml:"to"`
	Username  string   `yaml:"username"`
	// Password comes from the OS keyring or EMAIL_PASSWORD, never the file.
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
