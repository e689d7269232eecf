package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yml", `
scrape:
  workers: 10
  timeout_seconds: 5
recency:
  max_age_minutes: 45
  accept_undated: true
companies:
  - Acme
  - Globex
overrides:
  acme: https://boards.greenhouse.io/acme
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Scrape.Workers)
	assert.Equal(t, 45, cfg.Recency.MaxAgeMinutes)
	assert.True(t, cfg.Recency.AcceptUndated)
	assert.Equal(t, []string{"Acme", "Globex"}, cfg.Companies)
	assert.Equal(t, "https://boards.greenhouse.io/acme", cfg.Overrides["acme"])
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := Config{Companies: []string{"Acme"}}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), "errors: %v", res.Errors)

	assert.Equal(t, 30, out.Scrape.Workers)
	assert.Equal(t, 8, out.Scrape.TimeoutSeconds)
	assert.Equal(t, 4, out.Scrape.DetailFanout)
	assert.Equal(t, 30, out.Recency.MaxAgeMinutes)
	assert.Equal(t, "seen_jobs.json", out.Tracker.Path)

	assert.NotEmpty(t, out.Keywords.Intern)
	assert.NotEmpty(t, out.Keywords.Exclude)
	assert.NotEmpty(t, out.Keywords.Corroborate)
	assert.NotEmpty(t, out.Keywords.SubjectRoles)

	// compiled-in career page mappings arrive even with no overrides set
	assert.NotEmpty(t, out.Overrides)
}

func TestNormalizeKeepsExplicitSettings(t *testing.T) {
	cfg := Config{Companies: []string{"Acme"}}
	cfg.Scrape.Workers = 3
	cfg.Keywords.Intern = []string{"praktikant"}
	cfg.Overrides = map[string]string{"amazon": "https://example.com/custom"}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())

	assert.Equal(t, 3, out.Scrape.Workers)
	assert.Equal(t, []string{"praktikant"}, out.Keywords.Intern)
	assert.Equal(t, "https://example.com/custom", out.Overrides["amazon"])
	assert.NotContains(t, out.Overrides, "Amazon", "compiled-in mapping should be shadowed by the explicit one")
}

func TestNormalizeTrimsAndDedupsCompanies(t *testing.T) {
	cfg := Config{Companies: []string{" Acme ", "acme", "", "Globex"}}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	assert.Equal(t, []string{"Acme", "Globex"}, out.Companies)
}

func TestEmptyCompaniesIsFatal(t *testing.T) {
	_, res := NormalizeAndValidate(Config{})
	assert.False(t, res.OK())
}

func TestNotifyValidation(t *testing.T) {
	cfg := Config{Companies: []string{"Acme"}}
	cfg.Notify.Enabled = true

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK(), "enabled notify with no smtp settings must fail")

	cfg.Notify.SMTPHost = "smtp.example.com"
	cfg.Notify.From = "alerts@example.com"
	cfg.Notify.To = []string{"me@example.com"}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, 587, out.Notify.SMTPPort)
	assert.Equal(t, "alerts@example.com", out.Notify.Username)
}

func TestHighWorkerCountWarns(t *testing.T) {
	cfg := Config{Companies: []string{"Acme"}}
	cfg.Scrape.Workers = 500

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	assert.NotEmpty(t, res.Warnings)
	assert.Equal(t, 500, out.Scrape.Workers)
}

func TestOverlayCompanies(t *testing.T) {
	cfg := Config{
		Companies: []string{"Old"},
		Overrides: map[string]string{"old": "https://old.example/careers"},
	}

	path := writeFile(t, "companies.yml", `
companies:
  - New One
  - New Two
overrides:
  new one: https://newone.example/jobs
`)
	require.NoError(t, OverlayCompanies(&cfg, path))

	assert.Equal(t, []string{"New One", "New Two"}, cfg.Companies)
	assert.Equal(t, "https://newone.example/jobs", cfg.Overrides["new one"])
	assert.Equal(t, "https://old.example/careers", cfg.Overrides["old"])
}

func TestOverlayMissingFileIsNoop(t *testing.T) {
	cfg := Config{Companies: []string{"Acme"}}
	require.NoError(t, OverlayCompanies(&cfg, filepath.Join(t.TempDir(), "absent.yml")))
	assert.Equal(t, []string{"Acme"}, cfg.Companies)
}
