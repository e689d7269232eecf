package lyft

import (
	"context"
	"strings"

	"internwatch/internal/domain"
	"internwatch/internal/scrape/generic"
)

// Scraper covers the Lyft careers site, which has no listing API. Early-
// career sub-pages are tried first, then keyword search queries.
type Scraper struct {
	heuristic *generic.Scraper
}

func New(heuristic *generic.Scraper) *Scraper {
	return &Scraper{heuristic: heuristic}
}

func (s *Scraper) Name() string { return "lyft" }

func candidateURLs(careerURL string) []string {
	base := strings.TrimRight(careerURL, "/")
	return []string{
		base + "/early-careers",
		base + "/university",
		base + "?q=intern",
		base + "?q=internship",
	}
}

func (s *Scraper) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	return s.heuristic.ExtractPages(ctx, candidateURLs(careerURL), company)
}
