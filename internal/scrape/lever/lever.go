package lever

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/fetch"
	"internwatch/internal/scrape"
	"internwatch/internal/scrape/htmlx"
)

// Scraper reads Lever boards through api.lever.co. The board slug is the
// first path segment of the hosted site (jobs.lever.co/<slug>).
type Scraper struct {
	client   *fetch.Client
	kw       config.Keywords
	fanout   int
	fallback scrape.Extractor
}

type posting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
	DescriptionPlain string `json:"descriptionPlain"`
	Description      string `json:"description"` // html
}

func New(client *fetch.Client, kw config.Keywords, fanout int, fallback scrape.Extractor) *Scraper {
	if fanout <= 0 {
		fanout = 4
	}
	return &Scraper{client: client, kw: kw, fanout: fanout, fallback: fallback}
}

func (s *Scraper) Name() string { return "lever" }

func boardSlug(careerURL string) string {
	u, err := url.Parse(careerURL)
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

func (s *Scraper) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	slug := boardSlug(careerURL)
	if slug == "" {
		return s.fallback.Extract(ctx, careerURL, company)
	}

	apiURL := "https://api.lever.co/v0/postings/" + slug + "?mode=json"
	res, err := s.client.Get(ctx, apiURL)
	if err != nil {
		log.Printf("[ats:lever] company=%q slug=%q listing err=%v; using generic", company, slug, err)
		return s.fallback.Extract(ctx, careerURL, company)
	}

	var postings []posting
	if err := json.Unmarshal(res.Body, &postings); err != nil {
		log.Printf("[ats:lever] company=%q decode err=%v; using generic", company, err)
		return s.fallback.Extract(ctx, careerURL, company)
	}

	var out []domain.RawPosting
	for _, p := range postings {
		title := htmlx.CleanText(p.Text)
		if p.HostedURL == "" || !scrape.HasKeyword(s.kw.Intern, title) {
			continue
		}

		rp := domain.RawPosting{
			Title:       title,
			CompanyName: company,
			Location:    htmlx.CleanText(p.Categories.Location),
			URL:         p.HostedURL,
			Description: htmlx.CleanText(p.DescriptionPlain),
		}
		if rp.Description == "" {
			rp.Description = htmlx.CleanText(p.Description)
		}
		if rp.Location == "" {
			rp.Location = "United States"
		}
		if p.CreatedAt > 0 {
			t := time.UnixMilli(p.CreatedAt)
			rp.PostedAt = &t
		}
		out = append(out, rp)
	}

	s.hydrate(ctx, out)
	return out
}

// hydrate pulls the posting page for entries the API returned without a
// usable description.
func (s *Scraper) hydrate(ctx context.Context, postings []domain.RawPosting) {
	var g errgroup.Group
	g.SetLimit(s.fanout)

	for i := range postings {
		if postings[i].Description != "" {
			continue
		}
		g.Go(func() error {
			res, err := s.client.Get(ctx, postings[i].URL)
			if err != nil {
				return nil
			}
			doc, err := res.Doc()
			if err != nil {
				return nil
			}
			if d := htmlx.CleanText(doc.Find("div.content").First().Text()); d != "" {
				postings[i].Description = d
			}
			postings[i].LastModified = res.LastModified
			return nil
		})
	}
	_ = g.Wait()
}
