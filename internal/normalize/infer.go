package normalize

import (
	"regexp"
	"strings"
)

var urlDate = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)

// DateFromURL extracts an ISO date from publisher URLs that embed one,
// e.g. techcrunch.com/2026/02/05/... -> "2026-02-05". Returns "" when the
// URL carries no date.
func DateFromURL(url string) string {
	m := urlDate.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2] + "-" + m[3]
}

var (
	titlePrefix = regexp.MustCompile(`(?i)^(startup|company|fintech|healthtech|edtech|ai)\s+`)
	capitalRun  = regexp.MustCompile(`^([A-Z][a-zA-Z0-9]*(?:\s+[A-Z][a-zA-Z0-9]*)*)`)
	stopChasers = map[string]bool{"Raises": true, "Raised": true, "Lands": true, "Closes": true, "Secures": true, "Announces": true}
)

// CompanyFromTitle infers a company name from a headline as the first run
// of capitalized tokens, stopping at common funding verbs. Items that need
// this fallback must be flagged low confidence by the caller.
func CompanyFromTitle(title string) string {
	t := strings.TrimSpace(title)
	for {
		stripped := titlePrefix.ReplaceAllString(t, "")
		if stripped == t {
			break
		}
		t = stripped
	}

	m := capitalRun.FindString(t)
	if m != "" {
		words := strings.Fields(m)
		kept := words[:0]
		for _, w := range words {
			if stopChasers[w] {
				break
			}
			kept = append(kept, w)
		}
		if len(kept) > 0 {
			return strings.Join(kept, " ")
		}
	}

	words := strings.Fields(t)
	if len(words) > 0 {
		return words[0]
	}
	return ""
}
