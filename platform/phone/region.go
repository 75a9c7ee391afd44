package phone

import (
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Region is a canonical two-letter region code known to the numbering engine.
type Region string

// ResolveRegion upper-cases text and checks it against the engine's region set.
func ResolveRegion(text string) (Region, error) {
	code := strings.ToUpper(text)
	if !phonenumbers.GetSupportedRegions()[code] {
		return "", invalidRegion()
	}
	return Region(code), nil
}

// SupportedRegions returns every region the engine knows, sorted.
func SupportedRegions() []Region {
	supported := phonenumbers.GetSupportedRegions()
	regions := make([]Region, 0, len(supported))
	for code := range supported {
		regions = append(regions, Region(code))
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })
	return regions
}

// CountryCode returns the calling code of the region, e.g. 41 for CH.
func (r Region) CountryCode() int {
	return phonenumbers.GetCountryCodeForRegion(string(r))
}
