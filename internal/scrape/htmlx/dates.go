package htmlx

import (
	"net/mail"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var dateHints = []string{"date", "posted", "published"}

// calendar formats tried after RFC 2822 and ISO 8601 both fail.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a date string trying RFC 2822, then ISO 8601, then the
// fixed calendar layouts. First hit wins; a nil return is a valid outcome.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if t, err := mail.ParseDate(s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return &t
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// PostingDate scans a page for an explicit publication date: elements
// whose class or id hints at a date first, then <time datetime=...>.
func PostingDate(doc *goquery.Document) *time.Time {
	var found *time.Time

	doc.Find("div, span, time").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		hinted := HasClassHint(s, dateHints)
		if !hinted {
			if id, ok := s.Attr("id"); ok {
				lid := strings.ToLower(id)
				for _, h := range dateHints {
					if strings.Contains(lid, h) {
						hinted = true
						break
					}
				}
			}
		}
		if !hinted {
			return true
		}
		if t := ParseDate(s.Text()); t != nil {
			found = t
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	doc.Find("time[datetime]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		dt, _ := s.Attr("datetime")
		if t := ParseDate(dt); t != nil {
			found = t
			return false
		}
		return true
	})
	return found
}
