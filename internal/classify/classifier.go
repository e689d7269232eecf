package classify

import (
	"strings"
	"time"

	"internwatch/internal/config"
	"internwatch/internal/domain"
)

// Descriptions at or above this length are expected to corroborate a
// title-only internship hit.
const substantialDescLen = 100

// Classifier decides whether a raw posting is a genuinely entry-level
// internship in the target subject area, recent enough to report. Stages
// run in order and the first rejection wins; running the chain twice on
// the same posting always yields the same answer.
type Classifier struct {
	kw        config.Keywords
	maxAge    time.Duration
	undatedOK bool
	now       func() time.Time
}

func New(kw config.Keywords, maxAge time.Duration, undatedOK bool) *Classifier {
	return &Classifier{kw: kw, maxAge: maxAge, undatedOK: undatedOK, now: time.Now}
}

// Classify runs the full chain. The reason names the rejecting stage for
// logging; accepted postings return ("", true) style: ok plus empty reason.
func (c *Classifier) Classify(p domain.RawPosting) (ok bool, reason string) {
	title := strings.ToLower(p.Title)
	desc := strings.ToLower(p.Description)
	combined := title + " " + desc

	if !c.isInternship(combined) {
		return false, "not_internship"
	}
	if !c.corroborated(title, desc, combined) {
		return false, "uncorroborated_title"
	}
	if !c.subjectRelevant(combined) {
		return false, "not_relevant"
	}
	if !c.recent(p) {
		return false, "stale_or_undated"
	}
	return true, ""
}

// IsInternshipTitle is the lexical check alone, for extractors that
// pre-filter listing entries by title.
func (c *Classifier) IsInternshipTitle(title string) bool {
	return c.isInternship(strings.ToLower(title))
}

// stage 1: internship keyword present, no "internal ..." exclusion phrase.
// Exclusions take precedence over keyword hits.
func (c *Classifier) isInternship(combined string) bool {
	if !containsAny(combined, c.kw.Intern) {
		return false
	}
	return !containsAny(combined, c.kw.Exclude)
}

// stage 2: a title-only hit with a substantial description must be backed
// by an explicit corroborating phrase somewhere in the text. Short or
// absent descriptions cannot contradict the title and pass through.
func (c *Classifier) corroborated(title, desc, combined string) bool {
	if !containsAny(title, c.kw.Intern) {
		return true
	}
	if len(desc) <= substantialDescLen {
		return true
	}
	return containsAny(combined, c.kw.Corroborate)
}

// stage 3: subject relevance, any of five routes.
func (c *Classifier) subjectRelevant(combined string) bool {
	// (a) explicit subject-role keyword
	if containsAny(combined, c.kw.SubjectRoles) {
		return true
	}

	// (b) cloud-support internship: >=2 program indicators + a tech skill
	if countHits(combined, c.kw.CloudIndicators) >= 2 && containsAny(combined, c.kw.TechSkills) {
		return true
	}

	hasPython := strings.Contains(combined, "python")

	// (c) general-purpose language + query language
	if hasPython && strings.Contains(combined, "sql") {
		return true
	}

	// (d) general-purpose language + a data technology
	if hasPython && containsAny(combined, c.kw.DataTech) {
		return true
	}

	// (e) two or more data-skill terms carry it even without python
	return countHits(combined, c.kw.DataSkills) >= 2
}

// stage 4: bounded staleness. A parsed publication date is authoritative;
// the detail response's Last-Modified header substitutes when there is
// none. Unverifiable age rejects unless the relaxed policy is configured.
func (c *Classifier) recent(p domain.RawPosting) bool {
	now := c.now()

	when := p.PostedAt
	if when == nil {
		when = p.LastModified
	}
	if when == nil {
		return c.undatedOK
	}

	age := now.Sub(*when)
	return age >= 0 && age <= c.maxAge
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func countHits(text string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if needle != "" && strings.Contains(text, strings.ToLower(needle)) {
			n++
		}
	}
	return n
}
