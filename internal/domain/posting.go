package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// RawPosting is one job listing as an extractor found it. Description may
// be empty when a detail page could not be reached; PostedAt is nil when no
// machine-readable date exists. LastModified mirrors the detail response's
// Last-Modified header for use as a recency fallback.
type RawPosting struct {
	Title        string
	CompanyName  string
	Location     string
	URL          string
	Description  string
	PostedAt     *time.Time
	LastModified *time.Time
}

// ClassifiedPosting is a RawPosting that survived the classifier chain,
// plus its stable identity. It lives for one run only.
type ClassifiedPosting struct {
	RawPosting
	ID string
}

// Age returns how long ago the posting was published, if known.
func (p RawPosting) Age(now time.Time) (time.Duration, bool) {
	if p.PostedAt == nil {
		return 0, false
	}
	return now.Sub(*p.PostedAt), true
}

// Fingerprint derives the posting identity from (title, company, url).
// It must stay deterministic across runs: the seen-set keys on it.
func Fingerprint(title, company, url string) string {
	combined := strings.TrimSpace(title) + "|" + strings.TrimSpace(company) + "|" + strings.TrimSpace(url)
	sum := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(sum[:])
}

func (p RawPosting) Fingerprint() string {
	return Fingerprint(p.Title, p.CompanyName, p.URL)
}
