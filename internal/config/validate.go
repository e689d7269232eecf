package config

import (
	"fmt"
	"strings"

	"internwatch/internal/domain"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg with missing
// settings filled from compiled-in defaults. A non-OK Validation is fatal
// at startup; warnings are logged and ignored.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Companies = trimList(out.Companies)
	if len(out.Companies) == 0 {
		res.addErr("companies list is empty")
	}

	if out.Scrape.Workers <= 0 {
		out.Scrape.Workers = 30
	}
	if out.Scrape.TimeoutSeconds <= 0 {
		out.Scrape.TimeoutSeconds = 8
	}
	if out.Scrape.DetailFanout <= 0 {
		out.Scrape.DetailFanout = 4
	}
	if out.Scrape.PerHostRPS <= 0 {
		out.Scrape.PerHostRPS = 2
	}
	if out.Scrape.PerHostBurst <= 0 {
		out.Scrape.PerHostBurst = 4
	}
	if out.Recency.MaxAgeMinutes <= 0 {
		out.Recency.MaxAgeMinutes = 30
	}
	if out.Tracker.Path == "" {
		out.Tracker.Path = "seen_jobs.json"
	}

	fill := func(dst *[]string, def []string) {
		*dst = trimList(*dst)
		if len(*dst) == 0 {
			*dst = def
		}
	}
	fill(&out.Keywords.Intern, defaultIntern)
	fill(&out.Keywords.Exclude, defaultExclude)
	fill(&out.Keywords.Corroborate, defaultCorroborate)
	fill(&out.Keywords.SubjectRoles, defaultSubjectRoles)
	fill(&out.Keywords.CloudIndicators, defaultCloudIndicators)
	fill(&out.Keywords.TechSkills, defaultTechSkills)
	fill(&out.Keywords.DataTech, defaultDataTech)
	fill(&out.Keywords.DataSkills, defaultDataSkills)

	if out.Overrides == nil {
		out.Overrides = map[string]string{}
	}
	// merge by normalized name so an explicit "amazon" entry shadows the
	// compiled-in "Amazon" mapping
	have := make(map[string]bool, len(out.Overrides))
	for name := range out.Overrides {
		have[domain.NormalizeCompanyName(name)] = true
	}
	for name, url := range defaultOverrides {
		if !have[domain.NormalizeCompanyName(name)] {
			out.Overrides[name] = url
		}
	}

	if out.Notify.Enabled {
		if out.Notify.SMTPHost == "" {
			res.addErr("notify enabled but smtp_host is empty")
		}
		if out.Notify.From == "" || len(out.Notify.To) == 0 {
			res.addErr("notify enabled but from/to missing")
		}
		if out.Notify.SMTPPort == 0 {
			out.Notify.SMTPPort = 587
		}
		if out.Notify.Username == "" {
			out.Notify.Username = out.Notify.From
		}
	}

	if out.Scrape.Workers > 100 {
		res.addWarn("scrape.workers=%d is high; outbound connections are capped per host but not globally", out.Scrape.Workers)
	}

	return out, res
}
