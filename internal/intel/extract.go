package intel

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Group ties extracted items to the file they were found in. Path is
// HTML-escaped so templates can embed it without further treatment.
type Group struct {
	Items []string `json:"items"`
	Path  string   `json:"path"`
}

// Result is the secondary intelligence pulled out of one file's text.
type Result struct {
	URLs        []string `json:"urls"`
	URLGroups   []Group  `json:"url_groups"`
	EmailGroups []Group  `json:"email_groups"`
}

var (
	// Scheme-prefixed tokens plus bare www hosts, followed by a maximal run
	// of URL-safe characters.
	urlRegex = regexp.MustCompile(
		`(?i)((?:https?://|s?ftps?://|file://|javascript:|data:|www\d{0,3}[.])` +
			`[\w().=/;,#:@?&~*+!$%'{}-]+)`)

	// Deliberately bounded: runaway local parts in minified blobs are
	// overwhelmingly false positives.
	emailRegex = regexp.MustCompile(`[\w.-]{1,20}@[\w-]{1,20}\.\w{2,10}`)
)

// Extract scans text for URLs and email addresses, attaching sourcePath as
// provenance. Deduplication is order-preserving and scoped to this call:
// a group record is emitted only when the call found at least one item.
// URLs are matched case-insensitively but deduplicated exactly; emails are
// matched against the lower-cased text.
func Extract(text, sourcePath string) Result {
	var res Result

	seenURL := make(map[string]struct{})
	for _, m := range urlRegex.FindAllString(text, -1) {
		if _, ok := seenURL[m]; ok {
			continue
		}
		seenURL[m] = struct{}{}
		res.URLs = append(res.URLs, m)
	}
	if len(res.URLs) > 0 {
		res.URLGroups = append(res.URLGroups, Group{
			Items: res.URLs,
			Path:  html.EscapeString(sourcePath),
		})
	}

	var emails []string
	seenEmail := make(map[string]struct{})
	for _, m := range emailRegex.FindAllString(strings.ToLower(text), -1) {
		// Protocol-relative URL fragments can look like emails.
		if strings.HasPrefix(m, "//") {
			continue
		}
		if _, ok := seenEmail[m]; ok {
			continue
		}
		seenEmail[m] = struct{}{}
		emails = append(emails, m)
	}
	if len(emails) > 0 {
		res.EmailGroups = append(res.EmailGroups, Group{
			Items: emails,
			Path:  html.EscapeString(sourcePath),
		})
	}

	return res
}
