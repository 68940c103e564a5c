// Package normalize converts raw extracted field values of uncertain format
// into canonical typed values. Every function is total: bad input degrades to
// a default or passes through verbatim, it never produces an error, so the
// extraction pipeline cannot fail on a cosmetic formatting mismatch.
package normalize

import (
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/luxonlabs/luxon-tms/internal/domain"
)

// DateLayout is the single canonical output format for dates. Downstream
// consumers are format-sensitive, so this must not change without a contract
// version bump.
const DateLayout = "2006-01-02"

// Date converts a date string of uncertain format to canonical YYYY-MM-DD.
// Ambiguous numeric dates (11/21/2025) are read US-style month-first.
// Input already in canonical form is returned unchanged; unparseable input
// passes through trimmed so the original value is never lost.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(true))
	if err != nil {
		return s
	}
	return t.Format(DateLayout)
}

// Amount converts a numeric string to a non-negative float. Currency symbols,
// thousands separators, and surrounding whitespace are stripped. Non-numeric,
// absent, or negative input yields 0.
func Amount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// equipmentCodes maps lowercased broker shorthand to canonical equipment
// codes. The set of shorthands in the wild is open-ended; anything not listed
// passes through verbatim.
var equipmentCodes = map[string]domain.EquipmentType{
	"v":             domain.EquipmentVan,
	"van":           domain.EquipmentVan,
	"dry van":       domain.EquipmentVan,
	"r":             domain.EquipmentReefer,
	"reefer":        domain.EquipmentReefer,
	"refrigerated":  domain.EquipmentReefer,
	"f":             domain.EquipmentFlatbed,
	"fb":            domain.EquipmentFlatbed,
	"flatbed":       domain.EquipmentFlatbed,
	"vr":            domain.EquipmentVanOrReefer,
	"v/r":           domain.EquipmentVanOrReefer,
	"van or reefer": domain.EquipmentVanOrReefer,
	"van/reefer":    domain.EquipmentVanOrReefer,
}

// Equipment converts equipment free text to a canonical code. Unrecognized
// text is returned trimmed but otherwise verbatim.
func Equipment(s string) domain.EquipmentType {
	trimmed := strings.TrimSpace(s)
	if code, ok := equipmentCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	return domain.EquipmentType(trimmed)
}

// Location splits location free text into a city and a two-letter region
// code. "City, ST" splits on the last comma; otherwise the last
// whitespace-delimited token is taken as the region when it looks like one.
// Text with no recognizable region yields {city: text, state: ""}.
func Location(s string) (city, state string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	if idx := strings.LastIndex(s, ","); idx >= 0 {
		city = strings.TrimSpace(s[:idx])
		state = strings.TrimSpace(s[idx+1:])
		if isRegionCode(state) {
			return city, strings.ToUpper(state)
		}
		// Comma present but the tail is not a region code; fall through and
		// retry on whitespace with the comma removed.
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", " "))
	}

	if idx := strings.LastIndexAny(s, " \t"); idx >= 0 {
		tail := strings.TrimSpace(s[idx+1:])
		if isRegionCode(tail) {
			return strings.TrimSpace(s[:idx]), strings.ToUpper(tail)
		}
	}
	return s, ""
}

func isRegionCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
