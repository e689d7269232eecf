package resolve

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"internwatch/internal/domain"
	"internwatch/internal/fetch"
)

// Resolver turns a company name into a verified career-listing URL. All
// transport failures are treated as "candidate yields nothing"; Resolve
// never returns an error, only Verified=false.
type Resolver struct {
	client    *fetch.Client
	overrides map[string]string
	cache     Cache
}

// Cache is an optional persisted company -> CareerSource memo. Lookups
// that miss or fail fall through to full resolution.
type Cache interface {
	Get(ctx context.Context, company string) (CareerSource, bool, error)
	Put(ctx context.Context, company string, src CareerSource) error
}

// Paths commonly serving career listings, probed against each candidate
// domain before falling back to a homepage link scan.
var careerPaths = []string{
	"/careers",
	"/jobs",
	"/careers/jobs",
	"/career",
	"/job",
	"/hiring",
	"/opportunities",
	"/work-with-us",
	"/join-us",
	"/open-positions",
	"/current-openings",
}

// Terms whose presence marks a page as career-related; verification
// requires at least three distinct hits.
var careerIndicators = []string{
	"job", "career", "open position", "hiring", "opportunity",
	"apply", "internship", "intern", "full-time", "part-time",
}

// Anchor text / href fragments that suggest a homepage link leads to the
// careers section.
var careerLinkKeywords = []string{
	"career", "job", "hiring", "opportunity", "work with us", "join us",
}

// Normalized company names with domains that plain slug guessing misses.
var specialCaseDomains = map[string]string{
	"meta":      "https://www.meta.com",
	"facebook":  "https://www.meta.com",
	"google":    "https://careers.google.com",
	"microsoft": "https://careers.microsoft.com",
	"amazon":    "https://www.amazon.jobs",
}

// New builds a resolver. Override keys are normalized so "Amazon, Inc."
// in the watch list still hits an "Amazon" mapping.
func New(client *fetch.Client, overrides map[string]string, cache Cache) *Resolver {
	normalized := make(map[string]string, len(overrides))
	for name, u := range overrides {
		normalized[domain.NormalizeCompanyName(name)] = u
	}
	return &Resolver{client: client, overrides: normalized, cache: cache}
}

// Resolve finds and verifies a career source for co. Order: cache,
// override table, candidate domains x career paths, homepage link scan.
func (r *Resolver) Resolve(ctx context.Context, co domain.Company) CareerSource {
	if r.cache != nil {
		if src, ok, err := r.cache.Get(ctx, co.Name); err == nil && ok && src.Verified {
			return src
		}
	}

	src := r.resolve(ctx, co)

	if r.cache != nil && src.Verified {
		if err := r.cache.Put(ctx, co.Name, src); err != nil {
			log.Printf("[resolver] cache put company=%q err=%v", co.Name, err)
		}
	}
	return src
}

func (r *Resolver) resolve(ctx context.Context, co domain.Company) CareerSource {
	if mapped, ok := r.overrides[co.Slug]; ok {
		if final, ok := r.verify(ctx, mapped); ok {
			return CareerSource{URL: mapped, Platform: DetectPlatform(final), Verified: true}
		}
	}

	for _, base := range candidateDomains(co.Slug) {
		for _, path := range careerPaths {
			candidate := base + path
			if final, ok := r.verify(ctx, candidate); ok {
				return CareerSource{URL: candidate, Platform: DetectPlatform(final), Verified: true}
			}
		}

		if found, final := r.scanHomepage(ctx, base); found != "" {
			return CareerSource{URL: found, Platform: DetectPlatform(final), Verified: true}
		}
	}

	return CareerSource{Platform: PlatformUnknown}
}

// candidateDomains builds the ordered guess list for a normalized name:
// special cases first, then {www, bare} x {.com, .io, .co}.
func candidateDomains(slug string) []string {
	slug = strings.ReplaceAll(slug, " ", "")
	if slug == "" {
		return nil
	}

	domains := []string{
		"https://www." + slug + ".com",
		"https://" + slug + ".com",
		"https://www." + slug + ".io",
		"https://" + slug + ".io",
		"https://www." + slug + ".co",
		"https://" + slug + ".co",
	}
	if special, ok := specialCaseDomains[slug]; ok {
		domains = append([]string{special}, domains...)
	}
	return domains
}

// verify fetches candidate and decides whether it is a career page. The
// returned string is the final URL after redirects, used for platform
// detection.
func (r *Resolver) verify(ctx context.Context, candidate string) (string, bool) {
	res, err := r.client.Get(ctx, candidate)
	if err != nil {
		return "", false
	}

	if matchesKnownATS(res.FinalURL) {
		return res.FinalURL, true
	}

	doc, err := res.Doc()
	if err != nil {
		return "", false
	}
	text := strings.ToLower(doc.Text())

	hits := 0
	for _, ind := range careerIndicators {
		if strings.Contains(text, ind) {
			hits++
		}
	}
	return res.FinalURL, hits >= 3
}

// scanHomepage looks for a careers link on the company homepage and
// verifies whatever it finds. Returns the accepted URL plus its final
// redirect target, or empty strings.
func (r *Resolver) scanHomepage(ctx context.Context, base string) (string, string) {
	res, err := r.client.Get(ctx, base)
	if err != nil {
		return "", ""
	}
	doc, err := res.Doc()
	if err != nil {
		return "", ""
	}

	baseURL, err := url.Parse(res.FinalURL)
	if err != nil {
		return "", ""
	}

	var accepted, final string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return true
		}

		lowHref := strings.ToLower(href)
		lowText := strings.ToLower(strings.TrimSpace(a.Text()))

		match := false
		for _, kw := range careerLinkKeywords {
			if strings.Contains(lowHref, kw) || strings.Contains(lowText, kw) {
				match = true
				break
			}
		}
		if !match {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := baseURL.ResolveReference(ref).String()

		if f, ok := r.verify(ctx, abs); ok {
			accepted, final = abs, f
			return false
		}
		return true
	})

	return accepted, final
}
