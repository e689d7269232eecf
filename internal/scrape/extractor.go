package scrape

import (
	"context"
	"strings"

	"internwatch/internal/domain"
	"internwatch/internal/resolve"
)

// Extractor turns one career-listing URL into raw postings. Extractors
// never fail a company: every network or parse error aborts only its own
// call, and whatever partial list was accumulated comes back.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, careerURL string, company string) []domain.RawPosting
}

// Registry is the platform -> extractor strategy table.
type Registry struct {
	m        map[resolve.Platform]Extractor
	fallback Extractor
}

func NewRegistry(fallback Extractor) *Registry {
	return &Registry{
		m:        make(map[resolve.Platform]Extractor),
		fallback: fallback,
	}
}

func (r *Registry) Register(p resolve.Platform, e Extractor) {
	r.m[p] = e
}

// For returns the extractor for a platform, or the generic fallback when
// the platform has no dedicated one.
func (r *Registry) For(p resolve.Platform) Extractor {
	if e, ok := r.m[p]; ok {
		return e
	}
	return r.fallback
}

// HasKeyword reports whether text contains any of the (lowercase) needles.
func HasKeyword(needles []string, text string) bool {
	lt := strings.ToLower(text)
	for _, n := range needles {
		if n != "" && strings.Contains(lt, n) {
			return true
		}
	}
	return false
}
