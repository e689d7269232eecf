package generic

import (
	"context"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/fetch"
	"internwatch/internal/scrape"
	"internwatch/internal/scrape/htmlx"
)

// Inline descriptions shorter than this trigger a detail-page fetch.
const shortDescLen = 100

// Pages with less visible text than this are probably JS-rendered; the
// embedded-script scan kicks in.
const thinPageLen = 500

// Scraper is the fallback for career pages without a stable API. It runs
// three strategies over each page: job-card structure matching, link-text
// matching, and a last-resort inline-script scan.
type Scraper struct {
	client *fetch.Client
	kw     config.Keywords
	fanout int
}

func New(client *fetch.Client, kw config.Keywords, fanout int) *Scraper {
	if fanout <= 0 {
		fanout = 4
	}
	return &Scraper{client: client, kw: kw, fanout: fanout}
}

func (s *Scraper) Name() string { return "generic" }

func (s *Scraper) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	return s.ExtractPages(ctx, []string{careerURL}, company)
}

// ExtractPages scans several candidate listing pages and merges their
// postings, deduplicating by canonical source URL. The custom extractors
// reuse it with their own candidate URL lists.
func (s *Scraper) ExtractPages(ctx context.Context, urls []string, company string) []domain.RawPosting {
	seen := map[string]bool{}
	var out []domain.RawPosting

	for _, u := range urls {
		res, err := s.client.Get(ctx, u)
		if err != nil {
			log.Printf("[generic] company=%q url=%q err=%v", company, u, err)
			continue
		}
		doc, err := res.Doc()
		if err != nil {
			continue
		}

		for _, p := range s.scanPage(doc, u, company) {
			key := scrape.CanonicalURL(p.URL)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, p)
		}
	}

	s.hydrate(ctx, out)
	return out
}

func (s *Scraper) scanPage(doc *goquery.Document, pageURL, company string) []domain.RawPosting {
	var out []domain.RawPosting

	// structural pass: containers that look like job cards
	for _, card := range htmlx.CandidateCards(doc) {
		title := htmlx.CardTitle(card)
		if title == "" || !scrape.HasKeyword(s.kw.Intern, title) {
			continue
		}
		href := htmlx.CardLink(card)
		if href == "" {
			continue
		}
		jobURL := scrape.ResolveRef(pageURL, href)
		if jobURL == "" {
			continue
		}

		out = append(out, domain.RawPosting{
			Title:       title,
			CompanyName: company,
			Location:    htmlx.CardLocation(card),
			URL:         jobURL,
			Description: htmlx.CardDescription(card),
		})
	}

	// link pass: anchors whose text or href smells like an internship
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		text := htmlx.CleanText(a.Text())
		if href == "" || text == "" {
			return
		}

		lowHref := strings.ToLower(href)
		jobbyHref := strings.Contains(lowHref, "/job/") ||
			strings.Contains(lowHref, "/jobs/") ||
			strings.Contains(lowHref, "jobid")
		if !scrape.HasKeyword(s.kw.Intern, text) && !jobbyHref {
			return
		}
		// href-only hits still need an internship keyword somewhere
		if !scrape.HasKeyword(s.kw.Intern, text) && !scrape.HasKeyword(s.kw.Intern, lowHref) {
			return
		}

		jobURL := scrape.ResolveRef(pageURL, href)
		if jobURL == "" {
			return
		}

		out = append(out, domain.RawPosting{
			Title:       text,
			CompanyName: company,
			Location:    "United States",
			URL:         jobURL,
		})
	})

	// script pass, only when the visible page is suspiciously thin
	if len(htmlx.CleanText(doc.Text())) < thinPageLen {
		for _, sj := range htmlx.ScanScripts(doc) {
			if !scrape.HasKeyword(s.kw.Intern, sj.Title) {
				continue
			}
			jobURL := pageURL
			if sj.Href != "" {
				jobURL = scrape.ResolveRef(pageURL, sj.Href)
			}
			out = append(out, domain.RawPosting{
				Title:       sj.Title,
				CompanyName: company,
				Location:    "United States",
				URL:         jobURL,
			})
		}
	}

	return out
}

// hydrate fetches detail pages for postings whose inline description is
// short or absent, bounded by the local fan-out limit. Failures leave the
// posting as-is.
func (s *Scraper) hydrate(ctx context.Context, postings []domain.RawPosting) {
	var g errgroup.Group
	g.SetLimit(s.fanout)

	for i := range postings {
		if len(postings[i].Description) >= shortDescLen {
			continue
		}
		g.Go(func() error {
			d, ok := htmlx.FetchDetail(ctx, s.client, postings[i].URL)
			if !ok {
				return nil
			}
			if d.Description != "" {
				postings[i].Description = d.Description
			}
			if postings[i].PostedAt == nil {
				postings[i].PostedAt = d.PostedAt
			}
			postings[i].LastModified = d.LastModified
			if postings[i].Location == "" || postings[i].Location == "United States" {
				if d.Location != "" {
					postings[i].Location = d.Location
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}
