package domain

import "strings"

// Company is a target company to monitor. Name is the display form; Slug
// is the normalized form used to derive candidate domains.
type Company struct {
	Name string
	Slug string
}

// legal suffixes stripped from the end of a company name, longest first so
// "corp." wins over "corp".
var legalSuffixes = []string{
	"corporation", "corp.", "corp", "inc.", "inc", "llc", "ltd.", "ltd",
}

func NewCompany(name string) Company {
	return Company{
		Name: strings.TrimSpace(name),
		Slug: NormalizeCompanyName(name),
	}
}

// NormalizeCompanyName lowercases and strips trailing legal suffixes
// ("Acme, Inc." -> "acme"). Only whole trailing tokens are removed, so
// "Lincoln" is never mangled by the "inc" rule.
func NormalizeCompanyName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	for {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ","))

		stripped := false
		for _, suf := range legalSuffixes {
			if strings.HasSuffix(s, " "+suf) || strings.HasSuffix(s, ","+suf) {
				s = strings.TrimSpace(s[:len(s)-len(suf)-1])
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}
