package phone

import "fmt"

// ParseErrorKind tags the cause of a ParseError.
type ParseErrorKind int

const (
	// ErrorNotANumber means the engine rejected the number text.
	ErrorNotANumber ParseErrorKind = iota
	// ErrorInvalidRegion means the region code is not a known region.
	ErrorInvalidRegion
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrorInvalidRegion:
		return "invalid_region"
	default:
		return "not_a_number"
	}
}

const invalidRegionMessage = "invalid region"

// ParseError is the single error kind returned when a number cannot be parsed.
// Message holds the engine diagnostic verbatim, or "invalid region" for
// region failures.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	err     error
}

var (
	// ErrInvalidRegion matches any ParseError of kind ErrorInvalidRegion.
	ErrInvalidRegion = &ParseError{Kind: ErrorInvalidRegion, Message: invalidRegionMessage}
	// ErrNotANumber matches any ParseError of kind ErrorNotANumber.
	ErrNotANumber = &ParseError{Kind: ErrorNotANumber, Message: "not a number"}
)

func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap returns the engine error, if any.
func (e *ParseError) Unwrap() error {
	return e.err
}

// Is matches another ParseError by kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func invalidRegion() *ParseError {
	return &ParseError{Kind: ErrorInvalidRegion, Message: invalidRegionMessage}
}

func engineFailure(err error) *ParseError {
	return &ParseError{Kind: ErrorNotANumber, Message: err.Error(), err: err}
}

// UnsupportedOperationError is returned for ordering comparisons between
// phone numbers, which have no defined order.
type UnsupportedOperationError struct {
	Op   string
	Type string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("'%s' not supported between instances of '%s' and '%s'", e.Op, e.Type, e.Type)
}
