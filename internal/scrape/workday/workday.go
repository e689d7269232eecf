package workday

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/fetch"
	"internwatch/internal/scrape"
	"internwatch/internal/scrape/htmlx"
)

// Scraper talks to the Workday cxs endpoint behind a tenant's job board.
// The board HTML itself is JS-rendered, so listing and detail both go
// through the JSON API; if the endpoint rejects us the company falls back
// to the generic extractor.
type Scraper struct {
	client   *fetch.Client
	hc       *http.Client
	kw       config.Keywords
	fanout   int
	fallback scrape.Extractor
}

type board struct {
	Scheme string
	Host   string
	Tenant string
	Site   string
}

type jobsRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type jobsResponse struct {
	Total       int `json:"total"`
	JobPostings []struct {
		Title         string `json:"title"`
		ExternalPath  string `json:"externalPath"`
		LocationsText string `json:"locationsText"`
		PostedOnDate  string `json:"postedOnDate"`
	} `json:"jobPostings"`
}

type jobDetailResponse struct {
	JobPostingInfo struct {
		JobDescription string `json:"jobDescription"`
		Location       string `json:"location"`
		StartDate      string `json:"startDate"`
		PostedOn       string `json:"postedOn"`
		ExternalURL    string `json:"externalUrl"`
	} `json:"jobPostingInfo"`
}

func New(client *fetch.Client, timeout time.Duration, kw config.Keywords, fanout int, fallback scrape.Extractor) *Scraper {
	if fanout <= 0 {
		fanout = 4
	}
	return &Scraper{
		client:   client,
		hc:       &http.Client{Timeout: timeout},
		kw:       kw,
		fanout:   fanout,
		fallback: fallback,
	}
}

func (s *Scraper) Name() string { return "workday" }

func parseBoardURL(raw string) (board, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return board{}, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	parts := strings.Split(u.Host, ".")
	if len(parts) < 3 {
		return board{}, fmt.Errorf("unexpected workday host %q", u.Host)
	}
	tenant := parts[0]

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	// skip a leading locale segment like en-US
	if len(segs) >= 2 && len(segs[0]) == 5 && segs[0][2] == '-' {
		segs = segs[1:]
	}
	site := segs[len(segs)-1]
	if site == "" {
		return board{}, errors.New("could not derive workday site")
	}
	return board{Scheme: u.Scheme, Host: u.Host, Tenant: tenant, Site: site}, nil
}

func (b board) jobsEndpoint() string {
	return fmt.Sprintf("%s://%s/wday/cxs/%s/%s/jobs", b.Scheme, b.Host, b.Tenant, b.Site)
}

func (s *Scraper) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	b, err := parseBoardURL(careerURL)
	if err != nil {
		log.Printf("[ats:workday] company=%q url=%q err=%v; using generic", company, careerURL, err)
		return s.fallback.Extract(ctx, careerURL, company)
	}

	type hit struct {
		title    string
		path     string
		location string
		posted   *time.Time
	}
	var hits []hit

	const limit = 50
	for offset := 0; ; offset += limit {
		jr, err := s.postJobs(ctx, b, offset, limit)
		if err != nil {
			if offset == 0 {
				log.Printf("[ats:workday] company=%q listing err=%v; using generic", company, err)
				return s.fallback.Extract(ctx, careerURL, company)
			}
			break // keep what we have
		}
		if len(jr.JobPostings) == 0 {
			break
		}
		for _, p := range jr.JobPostings {
			title := htmlx.CleanText(p.Title)
			if p.ExternalPath == "" || !scrape.HasKeyword(s.kw.Intern, title) {
				continue
			}
			hits = append(hits, hit{
				title:    title,
				path:     p.ExternalPath,
				location: htmlx.CleanText(p.LocationsText),
				posted:   htmlx.ParseDate(p.PostedOnDate),
			})
		}
		if offset+limit >= jr.Total {
			break
		}
	}

	out := make([]domain.RawPosting, len(hits))
	var g errgroup.Group
	g.SetLimit(s.fanout)

	for i, h := range hits {
		g.Go(func() error {
			p := domain.RawPosting{
				Title:       h.title,
				CompanyName: company,
				Location:    h.location,
				URL:         fmt.Sprintf("%s://%s%s", b.Scheme, b.Host, h.path),
				PostedAt:    h.posted,
			}
			if p.Location == "" {
				p.Location = "United States"
			}
			s.hydrate(ctx, b, h.path, &p)
			out[i] = p
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// postJobs runs one page of the cxs jobs search, biased toward internships
// via searchText.
func (s *Scraper) postJobs(ctx context.Context, b board, offset, limit int) (*jobsResponse, error) {
	payload, _ := json.Marshal(jobsRequest{
		AppliedFacets: map[string]any{},
		Limit:         limit,
		Offset:        offset,
		SearchText:    "intern",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.jobsEndpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workday post jobs: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("workday status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	var jr jobsResponse
	if err := json.Unmarshal(data, &jr); err != nil {
		return nil, fmt.Errorf("workday decode: %w", err)
	}
	return &jr, nil
}

// hydrate fills description/location from the cxs job detail document.
func (s *Scraper) hydrate(ctx context.Context, b board, path string, p *domain.RawPosting) {
	detailURL := fmt.Sprintf("%s://%s/wday/cxs/%s/%s%s", b.Scheme, b.Host, b.Tenant, b.Site, path)
	res, err := s.client.Get(ctx, detailURL)
	if err != nil {
		return
	}

	var jd jobDetailResponse
	if err := json.Unmarshal(res.Body, &jd); err != nil {
		return
	}
	info := jd.JobPostingInfo

	if info.JobDescription != "" {
		// description arrives as HTML
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(info.JobDescription)); err == nil {
			p.Description = htmlx.CleanText(doc.Text())
		}
	}
	if l := htmlx.CleanText(info.Location); l != "" {
		p.Location = l
	}
	if info.ExternalURL != "" {
		p.URL = strings.TrimSpace(info.ExternalURL)
	}
	if p.PostedAt == nil {
		if t := htmlx.ParseDate(info.StartDate); t != nil {
			p.PostedAt = t
		}
	}
	p.LastModified = res.LastModified
}
