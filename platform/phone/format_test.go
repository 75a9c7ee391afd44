package phone

import (
	"testing"

	"github.com/nyaruka/phonenumbers"
)

func TestLookupMode_ReservedNames(t *testing.T) {
	want := map[string]phonenumbers.PhoneNumberFormat{
		"E164":          phonenumbers.E164,
		"INTERNATIONAL": phonenumbers.INTERNATIONAL,
		"NATIONAL":      phonenumbers.NATIONAL,
		"RFC3966":       phonenumbers.RFC3966,
	}
	for name, expected := range want {
		mode, ok := LookupMode(name)
		if !ok {
			t.Fatalf("expected %s to be registered", name)
		}
		if mode != expected {
			t.Fatalf("expected %s to map to %v, got %v", name, expected, mode)
		}
	}
}

func TestLookupMode_NoMatch(t *testing.T) {
	for _, name := range []string{"", "e164", "International", "BOGUS", "E.164", "RFC 3966"} {
		if _, ok := LookupMode(name); ok {
			t.Fatalf("expected %q to have no mode", name)
		}
	}
}

func TestFormats_AreValidAndDistinct(t *testing.T) {
	seen := make(map[phonenumbers.PhoneNumberFormat]Format)
	for _, format := range Formats() {
		if !format.Valid() {
			t.Fatalf("expected %s to be valid", format)
		}
		mode, _ := LookupMode(string(format))
		if prev, dup := seen[mode]; dup {
			t.Fatalf("%s and %s map to the same mode", prev, format)
		}
		seen[mode] = format
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 formats, got %d", len(seen))
	}
	if Format("BOGUS").Valid() {
		t.Fatal("expected BOGUS to be invalid")
	}
}
