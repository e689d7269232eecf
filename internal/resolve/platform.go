package resolve

import "strings"

// Platform identifies which publishing system serves a career page. The
// set is closed: extractors dispatch on it.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAmazon     Platform = "amazon"
	PlatformLyft       Platform = "lyft"
	PlatformGeneric    Platform = "generic"
	PlatformUnknown    Platform = "unknown"
)

// CareerSource is the outcome of resolving one company: where its listings
// live and which extractor should read them. Verified=false means "no
// source found", never an error.
type CareerSource struct {
	URL      string
	Platform Platform
	Verified bool
}

// atsHostPatterns maps known applicant-tracking hosts to a platform. A URL
// landing on any of these is accepted as a career page without counting
// indicator terms.
var atsHostPatterns = []struct {
	platform Platform
	patterns []string
}{
	{PlatformGreenhouse, []string{"greenhouse.io", "boards.greenhouse.io"}},
	{PlatformLever, []string{"lever.co", "jobs.lever.co"}},
	{PlatformWorkday, []string{"myworkdayjobs.com"}},
	{PlatformGeneric, []string{"smartrecruiters.com", "icims.com", "taleo.net", "jobvite.com"}},
}

// matchesKnownATS reports whether url sits on any recognized ATS host.
func matchesKnownATS(url string) bool {
	lu := strings.ToLower(url)
	for _, e := range atsHostPatterns {
		for _, p := range e.patterns {
			if strings.Contains(lu, p) {
				return true
			}
		}
	}
	return false
}

// DetectPlatform classifies a verified career URL. The two company-custom
// pages get their own extractors; everything unrecognized is generic.
func DetectPlatform(url string) Platform {
	lu := strings.ToLower(url)

	if strings.Contains(lu, "amazon.jobs") {
		return PlatformAmazon
	}
	if strings.Contains(lu, "lyft.com") {
		return PlatformLyft
	}

	for _, e := range atsHostPatterns {
		if e.platform == PlatformGeneric {
			continue
		}
		for _, p := range e.patterns {
			if strings.Contains(lu, p) {
				return e.platform
			}
		}
	}

	switch {
	case strings.Contains(lu, "workday"):
		return PlatformWorkday
	case strings.Contains(lu, "greenhouse"):
		return PlatformGreenhouse
	case strings.Contains(lu, "lever"):
		return PlatformLever
	}
	return PlatformGeneric
}
