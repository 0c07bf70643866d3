package catalog

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type indexKey struct {
	country string
	purpose Purpose
}

// Catalog is the validated, immutable rule set. It is safe for concurrent use;
// nothing mutates it after Load returns. Slices handed out by accessors are
// shared and must be treated as read-only.
type Catalog struct {
	version     string
	semver      *semver.Version
	lastUpdated string
	policy      Policy
	rules       []Rule
	byID        map[string]int
	byKey       map[indexKey][]int
	byCountry   map[string][]int
	countries   []Country
	warnings    []string
}

func newCatalog(doc Document) *Catalog {
	v, _ := semver.NewVersion(doc.Version)
	c := &Catalog{
		version:     doc.Version,
		semver:      v,
		lastUpdated: doc.LastUpdated,
		policy:      doc.Policy,
		rules:       doc.Rules,
		byID:        make(map[string]int, len(doc.Rules)),
		byKey:       make(map[indexKey][]int),
		byCountry:   make(map[string][]int),
	}
	for i, r := range c.rules {
		c.byID[r.ID] = i
		c.byCountry[r.CountryCode] = append(c.byCountry[r.CountryCode], i)
		for _, p := range r.Purposes {
			k := indexKey{country: r.CountryCode, purpose: p}
			c.byKey[k] = append(c.byKey[k], i)
		}
	}
	c.countries = deriveCountries(c.rules)
	c.warnings = findOverlaps(c.rules, c.byKey)
	return c
}

func (c *Catalog) Version() string {
	return c.version
}

// SemVer is the parsed catalog version.
func (c *Catalog) SemVer() *semver.Version {
	return c.semver
}

func (c *Catalog) LastUpdated() string {
	return c.lastUpdated
}

func (c *Catalog) Policy() Policy {
	return c.policy
}

func (c *Catalog) Len() int {
	return len(c.rules)
}

// Rules returns every rule in catalog order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Rule looks a rule up by id.
func (c *Catalog) Rule(id string) (Rule, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// Candidates returns the rules for (country, purpose) in catalog order,
// before any citizenship filtering.
func (c *Catalog) Candidates(country string, purpose Purpose) []Rule {
	idx := c.byKey[indexKey{country: country, purpose: purpose}]
	out := make([]Rule, len(idx))
	for i, j := range idx {
		out[i] = c.rules[j]
	}
	return out
}

// RulesForCountry returns every rule for a destination in catalog order.
func (c *Catalog) RulesForCountry(country string) []Rule {
	idx := c.byCountry[country]
	out := make([]Rule, len(idx))
	for i, j := range idx {
		out[i] = c.rules[j]
	}
	return out
}

// CountryName is the display name of the first rule for code.
func (c *Catalog) CountryName(code string) (string, bool) {
	idx := c.byCountry[code]
	if len(idx) == 0 {
		return "", false
	}
	return c.rules[idx[0]].CountryName, true
}

// Countries is the deduplicated (code, name) list sorted by display name.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// Warnings lists non-fatal catalog findings such as overlapping rules.
func (c *Catalog) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func deriveCountries(rules []Rule) []Country {
	seen := make(map[string]bool)
	var countries []Country
	for _, r := range rules {
		if seen[r.CountryCode] {
			continue
		}
		seen[r.CountryCode] = true
		countries = append(countries, Country{Code: r.CountryCode, Name: r.CountryName})
	}

	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(countries, func(i, j int) bool {
		if cmp := coll.CompareString(countries[i].Name, countries[j].Name); cmp != 0 {
			return cmp < 0
		}
		return countries[i].Code < countries[j].Code
	})
	return countries
}

// findOverlaps reports rule pairs that can both match the same triple with
// equal specificity. The matcher resolves these by catalog order.
func findOverlaps(rules []Rule, byKey map[indexKey][]int) []string {
	keys := make([]indexKey, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].country != keys[j].country {
			return keys[i].country < keys[j].country
		}
		return keys[i].purpose < keys[j].purpose
	})

	var warnings []string
	for _, k := range keys {
		idx := byKey[k]
		for a := 0; a < len(idx); a++ {
			for b := a + 1; b < len(idx); b++ {
				ra, rb := rules[idx[a]], rules[idx[b]]
				switch {
				case ra.IsWildcard() && rb.IsWildcard():
					warnings = append(warnings, fmt.Sprintf("rules %q and %q both apply to all citizenships for %s/%s; %q wins",
						ra.ID, rb.ID, k.country, k.purpose, ra.ID))
				case !ra.IsWildcard() && !rb.IsWildcard():
					if shared := sharedCitizenship(ra, rb); shared != "" {
						warnings = append(warnings, fmt.Sprintf("rules %q and %q both apply to citizenship %s for %s/%s; %q wins",
							ra.ID, rb.ID, shared, k.country, k.purpose, ra.ID))
					}
				}
			}
		}
	}
	return warnings
}

func sharedCitizenship(a, b Rule) string {
	for _, c := range a.Citizenships {
		if b.AppliesTo(c) {
			return c
		}
	}
	return ""
}
