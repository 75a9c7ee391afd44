package phone

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"google.golang.org/protobuf/proto"
)

const typeName = "PhoneNumber"

// Operator is a comparison operator applied to two phone numbers.
type Operator string

const (
	OpEq Operator = "=="
	OpNe Operator = "!="
	OpLt Operator = "<"
	OpGt Operator = ">"
	OpLe Operator = "<="
	OpGe Operator = ">="
)

// PhoneNumber is an immutable parsed phone number.
// Values are created by Parse and ParseInRegion; the zero value renders
// as an empty number and is never valid.
type PhoneNumber struct {
	wrap *phonenumbers.PhoneNumber
}

func newPhoneNumber(num *phonenumbers.PhoneNumber) PhoneNumber {
	return PhoneNumber{wrap: proto.Clone(num).(*phonenumbers.PhoneNumber)}
}

func (n PhoneNumber) number() *phonenumbers.PhoneNumber {
	if n.wrap == nil {
		return &phonenumbers.PhoneNumber{}
	}
	return n.wrap
}

// CountryCode returns the country calling code, e.g. 41.
func (n PhoneNumber) CountryCode() uint32 {
	return uint32(n.number().GetCountryCode())
}

// NationalNumber returns the national significant number as digits.
// Leading zeros are not part of it.
func (n PhoneNumber) NationalNumber() string {
	return strconv.FormatUint(n.number().GetNationalNumber(), 10)
}

// Extension returns the extension and whether one is present.
func (n PhoneNumber) Extension() (string, bool) {
	ext := n.number().GetExtension()
	return ext, ext != ""
}

// Carrier returns the preferred domestic carrier code and whether one is present.
func (n PhoneNumber) Carrier() (string, bool) {
	carrier := n.number().GetPreferredDomesticCarrierCode()
	return carrier, carrier != ""
}

// IsValid reports whether the number matches a valid pattern for its region.
// It does not tell whether the number is in use.
func (n PhoneNumber) IsValid() bool {
	return phonenumbers.IsValidNumber(n.number())
}

// Format renders the number in the named format. Unknown names fall back to
// DefaultRendering.
func (n PhoneNumber) Format(name string) string {
	mode, ok := LookupMode(name)
	if !ok {
		return n.DefaultRendering()
	}
	return phonenumbers.Format(n.number(), mode)
}

// DefaultRendering is the unformatted textual form of the number (E.164).
func (n PhoneNumber) DefaultRendering() string {
	return phonenumbers.Format(n.number(), phonenumbers.E164)
}

// String returns a human readable summary.
func (n PhoneNumber) String() string {
	var b strings.Builder
	b.WriteString("Country Code: ")
	b.WriteString(strconv.FormatUint(uint64(n.CountryCode()), 10))
	b.WriteString(" National Number: ")
	b.WriteString(n.NationalNumber())
	if ext, ok := n.Extension(); ok {
		b.WriteString(" Extension: ")
		b.WriteString(ext)
	}
	if carrier, ok := n.Carrier(); ok {
		b.WriteString(" Carrier: ")
		b.WriteString(carrier)
	}
	return b.String()
}

// GoString returns a constructor-style rendering, used by the %#v verb.
func (n PhoneNumber) GoString() string {
	var b strings.Builder
	b.WriteString("PhoneNumber(country_code=")
	b.WriteString(strconv.FormatUint(uint64(n.CountryCode()), 10))
	b.WriteString(", national_number=")
	b.WriteString(n.NationalNumber())
	if ext, ok := n.Extension(); ok {
		b.WriteString(", extension='")
		b.WriteString(ext)
		b.WriteString("'")
	}
	if carrier, ok := n.Carrier(); ok {
		b.WriteString(", carrier='")
		b.WriteString(carrier)
		b.WriteString("'")
	}
	b.WriteString(")")
	return b.String()
}

// Equal compares the full engine representation of both numbers, including
// engine-internal flags such as the Italian leading zero.
func (n PhoneNumber) Equal(other PhoneNumber) bool {
	return proto.Equal(n.number(), other.number())
}

// Compare applies op to n and other. Equality operators return a result;
// ordering operators always fail with *UnsupportedOperationError.
func (n PhoneNumber) Compare(op Operator, other PhoneNumber) (bool, error) {
	switch op {
	case OpEq:
		return n.Equal(other), nil
	case OpNe:
		return !n.Equal(other), nil
	default:
		return false, &UnsupportedOperationError{Op: string(op), Type: typeName}
	}
}
