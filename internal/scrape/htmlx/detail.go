package htmlx

import (
	"context"
	"time"

	"internwatch/internal/fetch"
)

// Detail is what a posting's own page yields beyond the listing: the full
// description, an explicit publication date if one is visible, and the
// response's Last-Modified header as a recency fallback.
type Detail struct {
	Description  string
	PostedAt     *time.Time
	LastModified *time.Time
	Location     string
}

// Selectors tried in order for the description container before falling
// back to the whole page's visible text.
var descSelectors = []string{
	"#jobDescriptionText",
	".job-description",
	".description",
	".job-details",
	"#content",
	".content",
}

// FetchDetail fetches a posting page and extracts description, date and
// location. A failed fetch returns ok=false; the caller keeps whatever it
// already has.
func FetchDetail(ctx context.Context, client *fetch.Client, url string) (Detail, bool) {
	res, err := client.Get(ctx, url)
	if err != nil {
		return Detail{}, false
	}
	doc, err := res.Doc()
	if err != nil {
		return Detail{}, false
	}

	var desc string
	for _, sel := range descSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			desc = CleanText(s.Text())
			if desc != "" {
				break
			}
		}
	}
	if desc == "" {
		desc = CleanText(doc.Text())
	}

	return Detail{
		Description:  desc,
		PostedAt:     PostingDate(doc),
		LastModified: res.LastModified,
		Location:     PageLocation(doc),
	}, true
}
