package amazon

import (
	"context"
	"strings"

	"internwatch/internal/domain"
	"internwatch/internal/scrape/generic"
)

// Scraper probes the amazon.jobs search and university-program pages. The
// pages themselves are heavily scripted, so extraction leans on the
// heuristic engine, including its inline-script scan.
type Scraper struct {
	heuristic *generic.Scraper
}

func New(heuristic *generic.Scraper) *Scraper {
	return &Scraper{heuristic: heuristic}
}

func (s *Scraper) Name() string { return "amazon" }

// candidateURLs lists the internship-bearing entry points under the
// careers root.
func candidateURLs(careerURL string) []string {
	base := strings.TrimRight(careerURL, "/")
	return []string{
		base + "/content/en/career-programs/university/internships-for-students?country%5B%5D=US",
		base + "/en/search?base_query=intern&loc_query=United%20States",
		base + "/en/search?base_query=internship&loc_query=United%20States",
		base + "/en/search?base_query=data+intern&loc_query=United%20States",
	}
}

func (s *Scraper) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	return s.heuristic.ExtractPages(ctx, candidateURLs(careerURL), company)
}
