package lever

import (
	"context"
	"testing"
	"time"

	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/fetch"
)

type recordingFallback struct {
	calls int
}

func (f *recordingFallback) Name() string { return "generic" }

func (f *recordingFallback) Extract(ctx context.Context, careerURL, company string) []domain.RawPosting {
	f.calls++
	return nil
}

func TestBoardSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://jobs.lever.co/acme", "acme"},
		{"https://jobs.lever.co/acme/", "acme"},
		{"https://jobs.lever.co/acme/123-abc", "acme"},
		{"https://jobs.lever.co/", ""},
		{"https://jobs.lever.co", ""},
	}
	for _, c := range cases {
		if got := boardSlug(c.in); got != c.want {
			t.Errorf("boardSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractFallsBackWithoutSlug(t *testing.T) {
	fb := &recordingFallback{}
	s := New(fetch.New(5*time.Second, nil), config.Keywords{Intern: []string{"intern"}}, 2, fb)
	s.Extract(context.Background(), "https://jobs.lever.co/", "Acme")

	if fb.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fb.calls)
	}
}
