package phone

import "github.com/nyaruka/phonenumbers"

// Parse parses text that must carry its own country calling code
// (a leading '+' or international prefix).
//
// The text may contain formatting such as +, ( and -, an extension, or be in
// RFC3966 form. Text that is not a viable phone number (too few or too many
// digits, no country code) yields a *ParseError carrying the engine message.
func Parse(text string) (PhoneNumber, error) {
	return parse(text, "")
}

// ParseInRegion parses text, using region to interpret numbers written in
// national format. An unknown region fails with ErrInvalidRegion before the
// number text is looked at.
func ParseInRegion(text, region string) (PhoneNumber, error) {
	resolved, err := ResolveRegion(region)
	if err != nil {
		return PhoneNumber{}, err
	}
	return parse(text, resolved)
}

func parse(text string, region Region) (PhoneNumber, error) {
	num, err := phonenumbers.Parse(text, string(region))
	if err != nil {
		return PhoneNumber{}, engineFailure(err)
	}
	return newPhoneNumber(num), nil
}

// IsValidNumber reports whether num matches a valid numbering pattern.
func IsValidNumber(num PhoneNumber) bool {
	return num.IsValid()
}

// FormatNumber renders num in the named format, falling back to the default
// rendering for unknown names.
func FormatNumber(num PhoneNumber, name string) string {
	return num.Format(name)
}
