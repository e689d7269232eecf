package htmlx

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScriptJob is a posting reference dug out of an inline script payload.
type ScriptJob struct {
	Title string
	Href  string
}

// flat JSON objects mentioning a job; nested objects are out of reach of
// this last-resort scan.
var scriptJSONRe = regexp.MustCompile(`(?i)\{[^{}]*"(?:job|title|jobtitle)"[^{}]*\}`)

// ScanScripts searches inline <script> payloads for JSON fragments that
// name a job title, for pages whose visible HTML is rendered client-side.
func ScanScripts(doc *goquery.Document) []ScriptJob {
	var out []ScriptJob

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		body := s.Text()
		low := strings.ToLower(body)
		if !strings.Contains(low, "job") && !strings.Contains(low, "position") {
			return
		}

		for _, frag := range scriptJSONRe.FindAllString(body, 50) {
			var obj map[string]any
			if err := json.Unmarshal([]byte(frag), &obj); err != nil {
				continue
			}

			title := stringField(obj, "title", "jobTitle")
			if title == "" {
				continue
			}
			href := stringField(obj, "url", "link")
			out = append(out, ScriptJob{Title: title, Href: href})
		}
	})
	return out
}

func stringField(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
