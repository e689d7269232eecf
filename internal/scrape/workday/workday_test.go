package workday

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/fetch"
)

var testKeywords = config.Keywords{Intern: []string{"intern", "internship"}}

type recordingFallback struct {
	mu    sync.Mutex
	calls int
}

func (f *recordingFallback) Name() string { return "generic" }

func (f *recordingFallback) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return nil
}

func TestParseBoardURL(t *testing.T) {
	cases := []struct {
		in      string
		tenant  string
		site    string
		wantErr bool
	}{
		{"https://acme.wd1.myworkdayjobs.com/External", "acme", "External", false},
		{"https://acme.wd1.myworkdayjobs.com/en-US/External", "acme", "External", false},
		{"acme.wd1.myworkdayjobs.com/Careers", "acme", "Careers", false},
		{"https://localhost/External", "", "", true},
	}
	for _, c := range cases {
		b, err := parseBoardURL(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseBoardURL(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseBoardURL(%q): %v", c.in, err)
			continue
		}
		if b.Tenant != c.tenant || b.Site != c.site {
			t.Errorf("parseBoardURL(%q) = tenant %q site %q, want %q %q", c.in, b.Tenant, b.Site, c.tenant, c.site)
		}
	}
}

func TestJobsEndpoint(t *testing.T) {
	b := board{Scheme: "https", Host: "acme.wd1.myworkdayjobs.com", Tenant: "acme", Site: "External"}
	want := "https://acme.wd1.myworkdayjobs.com/wday/cxs/acme/External/jobs"
	if got := b.jobsEndpoint(); got != want {
		t.Fatalf("jobsEndpoint = %q, want %q", got, want)
	}
}

func TestExtractPaginatesAndHydrates(t *testing.T) {
	var pages []jobsResponse
	page := func(total int, entries ...[3]string) jobsResponse {
		var jr jobsResponse
		jr.Total = total
		for _, e := range entries {
			jr.JobPostings = append(jr.JobPostings, struct {
				Title         string `json:"title"`
				ExternalPath  string `json:"externalPath"`
				LocationsText string `json:"locationsText"`
				PostedOnDate  string `json:"postedOnDate"`
			}{Title: e[0], ExternalPath: e[1], PostedOnDate: e[2]})
		}
		return jr
	}
	pages = []jobsResponse{
		page(51, [3]string{"Software Engineering Intern", "/job/sw-intern", "2024-06-15"}),
		page(51, [3]string{"Machine Learning Intern", "/job/ml-intern", ""}, [3]string{"Principal Engineer", "/job/principal", ""}),
	}

	var postCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/jobs") && r.Method == http.MethodPost:
			var req jobsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.SearchText != "intern" {
				t.Errorf("searchText = %q, want intern", req.SearchText)
			}
			idx := req.Offset / 50
			postCalls++
			if idx >= len(pages) {
				json.NewEncoder(w).Encode(jobsResponse{Total: 51})
				return
			}
			json.NewEncoder(w).Encode(pages[idx])
		case strings.Contains(r.URL.Path, "/job/sw-intern"):
			var jd jobDetailResponse
			jd.JobPostingInfo.JobDescription = "<p>Work on <b>distributed systems</b> with the core team.</p>"
			jd.JobPostingInfo.Location = "Dallas, TX"
			json.NewEncoder(w).Encode(jd)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := New(fetch.New(5*time.Second, nil), 5*time.Second, testKeywords, 2, &recordingFallback{})
	got := s.Extract(context.Background(), srv.URL+"/External", "Acme")

	if postCalls != 2 {
		t.Fatalf("listing POST calls = %d, want 2 pages", postCalls)
	}
	if len(got) != 2 {
		t.Fatalf("got %d postings, want 2: %+v", len(got), got)
	}

	byTitle := map[string]domain.RawPosting{}
	for _, p := range got {
		byTitle[p.Title] = p
	}

	sw, ok := byTitle["Software Engineering Intern"]
	if !ok {
		t.Fatalf("missing first-page posting: %v", byTitle)
	}
	if sw.Description != "Work on distributed systems with the core team." {
		t.Fatalf("description = %q, want stripped detail HTML", sw.Description)
	}
	if sw.Location != "Dallas, TX" {
		t.Fatalf("location = %q, want detail location", sw.Location)
	}
	if sw.PostedAt == nil || sw.PostedAt.Format("2006-01-02") != "2024-06-15" {
		t.Fatalf("PostedAt = %v, want listing date", sw.PostedAt)
	}

	ml, ok := byTitle["Machine Learning Intern"]
	if !ok {
		t.Fatalf("missing second-page posting: %v", byTitle)
	}
	if ml.Location != "United States" {
		t.Fatalf("location = %q, want default when detail fetch fails", ml.Location)
	}

	if _, ok := byTitle["Principal Engineer"]; ok {
		t.Fatal("non-internship title passed the listing filter")
	}
}

func TestExtractFallsBackOnFirstPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	fb := &recordingFallback{}
	s := New(fetch.New(5*time.Second, nil), 5*time.Second, testKeywords, 2, fb)
	s.Extract(context.Background(), srv.URL+"/External", "Acme")

	if fb.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fb.calls)
	}
}

func TestExtractFallsBackOnUnparseableBoardURL(t *testing.T) {
	fb := &recordingFallback{}
	s := New(fetch.New(5*time.Second, nil), 5*time.Second, testKeywords, 2, fb)
	s.Extract(context.Background(), "https://localhost/careers", "Acme")

	if fb.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fb.calls)
	}
}
