package greenhouse

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/fetch"
	"internwatch/internal/scrape"
	"internwatch/internal/scrape/htmlx"
)

// Scraper reads Greenhouse boards through the public board JSON endpoint
// and hydrates each internship hit from its posting page. If the listing
// call fails it hands the whole company to the generic fallback.
type Scraper struct {
	client   *fetch.Client
	kw       config.Keywords
	fanout   int
	fallback scrape.Extractor
}

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

type boardJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

func New(client *fetch.Client, kw config.Keywords, fanout int, fallback scrape.Extractor) *Scraper {
	if fanout <= 0 {
		fanout = 4
	}
	return &Scraper{client: client, kw: kw, fanout: fanout, fallback: fallback}
}

func (s *Scraper) Name() string { return "greenhouse" }

// listingEndpoint derives the board JSON URL from the career URL.
func listingEndpoint(careerURL string) string {
	u := strings.TrimRight(careerURL, "/")
	if i := strings.Index(u, "/jobs"); i >= 0 {
		return u[:i] + "/jobs.json"
	}
	return u + "/jobs.json"
}

func (s *Scraper) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	res, err := s.client.Get(ctx, listingEndpoint(careerURL))
	if err != nil {
		log.Printf("[ats:greenhouse] company=%q listing err=%v; using generic", company, err)
		return s.fallback.Extract(ctx, careerURL, company)
	}

	var board boardResponse
	if err := json.Unmarshal(res.Body, &board); err != nil {
		log.Printf("[ats:greenhouse] company=%q decode err=%v; using generic", company, err)
		return s.fallback.Extract(ctx, careerURL, company)
	}

	var picked []boardJob
	for _, j := range board.Jobs {
		if j.AbsoluteURL == "" || !scrape.HasKeyword(s.kw.Intern, j.Title) {
			continue
		}
		picked = append(picked, j)
	}

	out := make([]domain.RawPosting, len(picked))
	var g errgroup.Group
	g.SetLimit(s.fanout)

	for i, j := range picked {
		g.Go(func() error {
			out[i] = s.hydrate(ctx, j, company)
			return nil
		})
	}
	_ = g.Wait()

	final := out[:0]
	for _, p := range out {
		if p.URL != "" {
			final = append(final, p)
		}
	}
	return final
}

// hydrate builds the posting from the board entry plus its detail page.
// A failed detail fetch keeps the board-level fields.
func (s *Scraper) hydrate(ctx context.Context, j boardJob, company string) domain.RawPosting {
	p := domain.RawPosting{
		Title:       htmlx.CleanText(j.Title),
		CompanyName: company,
		Location:    htmlx.CleanText(j.Location.Name),
		URL:         strings.TrimSpace(j.AbsoluteURL),
		PostedAt:    htmlx.ParseDate(j.UpdatedAt),
	}
	if p.Location == "" {
		p.Location = "United States"
	}

	res, err := s.client.Get(ctx, p.URL)
	if err != nil {
		return p
	}
	doc, err := res.Doc()
	if err != nil {
		return p
	}

	if t := htmlx.CleanText(doc.Find("h1#header").First().Text()); t != "" {
		p.Title = t
	} else if t := htmlx.CleanText(doc.Find("h1").First().Text()); t != "" {
		p.Title = t
	}
	if d := htmlx.CleanText(doc.Find("div#content").First().Text()); d != "" {
		p.Description = d
	}
	if l := htmlx.CleanText(doc.Find("div.location").First().Text()); l != "" {
		p.Location = l
	}
	if p.PostedAt == nil {
		p.PostedAt = htmlx.PostingDate(doc)
	}
	p.LastModified = res.LastModified
	return p
}
