package notify

import (
	"strings"
	"testing"
	"time"

	"internwatch/internal/config"
	"internwatch/internal/domain"
)

func TestSendDisabledIsNoop(t *testing.T) {
	m := NewMailer(config.Notify{})
	posting := domain.ClassifiedPosting{RawPosting: domain.RawPosting{Title: "Intern"}, ID: "x"}
	if err := m.Send([]domain.ClassifiedPosting{posting}); err != nil {
		t.Fatalf("disabled mailer returned %v", err)
	}
}

func TestSendEmptyBatchIsNoop(t *testing.T) {
	m := NewMailer(config.Notify{Enabled: true, SMTPHost: "smtp.example.com", SMTPPort: 587})
	if err := m.Send(nil); err != nil {
		t.Fatalf("empty batch returned %v", err)
	}
}

func TestComposeProducesMIMEMessage(t *testing.T) {
	m := NewMailer(config.Notify{
		From: "alerts@example.com",
		To:   []string{"me@example.com"},
	})
	m.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }

	posted := time.Date(2024, 6, 15, 11, 50, 0, 0, time.UTC)
	msg, err := m.compose([]domain.ClassifiedPosting{{
		RawPosting: domain.RawPosting{
			Title:       "Software <Intern>",
			CompanyName: "Acme & Co",
			Location:    "Seattle, WA",
			URL:         "https://acme.example/jobs/1",
			PostedAt:    &posted,
		},
		ID: "abc",
	}})
	if err != nil {
		t.Fatal(err)
	}

	s := string(msg)
	for _, want := range []string{
		"Subject: 1 new internship posting(s) found",
		"From: <alerts@example.com>",
		"To: <me@example.com>",
		"Content-Type: text/html",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if strings.Contains(s, "Software <Intern>") {
		t.Error("title not HTML-escaped")
	}
}

func TestHTMLBodyShowsAge(t *testing.T) {
	m := NewMailer(config.Notify{})
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	posted := now.Add(-10 * time.Minute)
	body := m.htmlBody([]domain.ClassifiedPosting{{
		RawPosting: domain.RawPosting{Title: "Intern", PostedAt: &posted},
	}})
	if !strings.Contains(body, "posted 10 minute(s) ago") {
		t.Fatalf("body missing age line: %s", body)
	}

	undated := m.htmlBody([]domain.ClassifiedPosting{{
		RawPosting: domain.RawPosting{Title: "Intern"},
	}})
	if strings.Contains(undated, "posted") && strings.Contains(undated, "ago") {
		t.Fatal("undated posting rendered an age line")
	}
}

func TestFormatAge(t *testing.T) {
	if got := formatAge(25 * time.Minute); got != "25 minute(s)" {
		t.Fatalf("formatAge = %q", got)
	}
	if got := formatAge(90 * time.Minute); got != "1.5 hour(s)" {
		t.Fatalf("formatAge = %q", got)
	}
}
