package htmlx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Class/attribute substring hints per element role. One table shared by
// every heuristic extractor instead of per-platform selector lists.
var (
	CardHints     = []string{"job", "position", "opening", "card", "listing", "result", "row", "item", "posting"}
	TitleHints    = []string{"title", "heading", "name"}
	DescHints     = []string{"description", "summary", "detail"}
	LocationHints = []string{"location"}
)

var cardTags = "div, article, li, section, tr"

// HasClassHint reports whether the element's class attribute contains any
// of the hint substrings.
func HasClassHint(s *goquery.Selection, hints []string) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	lc := strings.ToLower(class)
	for _, h := range hints {
		if strings.Contains(lc, h) {
			return true
		}
	}
	return false
}

// CandidateCards returns container elements that look like job cards.
func CandidateCards(doc *goquery.Document) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find(cardTags).Each(func(_ int, s *goquery.Selection) {
		if HasClassHint(s, CardHints) {
			out = append(out, s)
		}
	})
	return out
}

// CardTitle locates the title-like child of a card: a heading/link/span
// with a title-ish class first, then any plain heading.
func CardTitle(card *goquery.Selection) string {
	var title string
	card.Find("h2, h3, h4, a, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if HasClassHint(s, TitleHints) {
			title = CleanText(s.Text())
			return title == ""
		}
		return true
	})
	if title != "" {
		return title
	}
	return CleanText(card.Find("h2, h3, h4").First().Text())
}

// CardLink returns the card's first hyperlink href, preferring the title
// element when it is itself an anchor.
func CardLink(card *goquery.Selection) string {
	href, _ := card.Find("a[href]").First().Attr("href")
	return strings.TrimSpace(href)
}

// CardDescription returns inline description text, which is often a
// truncated teaser; callers fetch the detail page when it is short.
func CardDescription(card *goquery.Selection) string {
	var desc string
	card.Find("div, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if HasClassHint(s, DescHints) {
			desc = CleanText(s.Text())
			return desc == ""
		}
		return true
	})
	return desc
}

// CardLocation extracts a location string, defaulting to United States
// when the card carries none.
func CardLocation(card *goquery.Selection) string {
	var loc string
	card.Find("div, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if HasClassHint(s, LocationHints) {
			loc = CleanText(s.Text())
			return loc == ""
		}
		return true
	})
	if loc == "" {
		return "United States"
	}
	return loc
}

// PageLocation is CardLocation over a whole detail page.
func PageLocation(doc *goquery.Document) string {
	return CardLocation(doc.Selection)
}
