package phone

import "github.com/nyaruka/phonenumbers"

// Format names one of the four supported phone number notations.
//
// INTERNATIONAL and NATIONAL follow ITU-T E.123 with local separator
// conventions, e.g. "+41 44 668 18 00" and "044 668 18 00". E164 is the
// international form without formatting ("+41446681800"). RFC3966 is the
// international form with hyphen separators, a "tel:" prefix and ";ext="
// for extensions ("tel:+41-44-668-18-00").
type Format string

const (
	E164          Format = "E164"
	INTERNATIONAL Format = "INTERNATIONAL"
	NATIONAL      Format = "NATIONAL"
	RFC3966       Format = "RFC3966"
)

// Adding a Format means extending both the constants above and this table.
var modes = map[Format]phonenumbers.PhoneNumberFormat{
	E164:          phonenumbers.E164,
	INTERNATIONAL: phonenumbers.INTERNATIONAL,
	NATIONAL:      phonenumbers.NATIONAL,
	RFC3966:       phonenumbers.RFC3966,
}

// Formats returns every supported format in declaration order.
func Formats() []Format {
	return []Format{E164, INTERNATIONAL, NATIONAL, RFC3966}
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := modes[f]
	return ok
}

// LookupMode maps a format name to the engine formatting mode.
// Matching is exact and case-sensitive; an unknown name is not an error,
// it returns false so callers can fall back to the default rendering.
func LookupMode(name string) (phonenumbers.PhoneNumberFormat, bool) {
	mode, ok := modes[Format(name)]
	return mode, ok
}
