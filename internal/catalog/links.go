package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// VisaLink holds the official application portals for a destination.
type VisaLink struct {
	Name     string `json:"name"`
	VisaURL  string `json:"visaUrl,omitempty"`
	EVisaURL string `json:"evisaUrl,omitempty"`
	ETAURL   string `json:"etaUrl,omitempty"`
}

// VisaLinks is the read-only destination → portal table.
type VisaLinks struct {
	links map[string]VisaLink
}

// LoadVisaLinks parses and validates a {code: link} JSON table.
func LoadVisaLinks(data []byte) (*VisaLinks, error) {
	var raw map[string]VisaLink
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Problems: []string{"visa links: malformed JSON: " + err.Error()}}
	}

	links := make(map[string]VisaLink, len(raw))
	var problems []string
	codes := make([]string, 0, len(raw))
	for code := range raw {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		link := raw[code]
		norm := strings.ToUpper(strings.TrimSpace(code))
		if !IsCountryCode(norm) {
			problems = append(problems, fmt.Sprintf("visa links: %q is not an ISO 3166-1 alpha-2 country", code))
			continue
		}
		for label, u := range map[string]string{"visaUrl": link.VisaURL, "evisaUrl": link.EVisaURL, "etaUrl": link.ETAURL} {
			if u != "" && !isHTTPURL(u) {
				problems = append(problems, fmt.Sprintf("visa links: %s %s is not a valid url", norm, label))
			}
		}
		links[norm] = link
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, &ValidationError{Problems: problems}
	}
	return &VisaLinks{links: links}, nil
}

// Lookup returns the portal links for a destination. A nil table has no
// entries.
func (v *VisaLinks) Lookup(code string) (VisaLink, bool) {
	if v == nil {
		return VisaLink{}, false
	}
	l, ok := v.links[code]
	return l, ok
}

// Len is the number of destinations in the table.
func (v *VisaLinks) Len() int {
	if v == nil {
		return 0
	}
	return len(v.links)
}
