package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// IsCountryCode reports whether code is an uppercase ISO 3166-1 alpha-2 code
// for a real country. Reserved and macro-region codes (ZZ, EU, UN) and
// aliases that canonicalise to another code are rejected.
func IsCountryCode(code string) bool {
	if !isTwoUpper(code) {
		return false
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return false
	}
	return region.IsCountry() && region.String() == code
}

// IsRegionShaped reports whether code looks like a two-letter region code
// without checking that the country exists.
func IsRegionShaped(code string) bool {
	return isTwoUpper(strings.ToUpper(code))
}

func isTwoUpper(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// DisplayName returns the English CLDR name for code, or "" when unknown.
func DisplayName(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return ""
	}
	return display.English.Regions().Name(region)
}
