package clap

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes parse failures. Kinds drive exit-code mapping (see
// ExitCodeManager) and errors.Is matching against the Err* sentinels.
type ErrorKind string

const (
	KindParseFailed             ErrorKind = "parse_failed"
	KindUnknownSwitch           ErrorKind = "unknown_switch"
	KindTooManyPositional       ErrorKind = "too_many_positional"
	KindMissingRequiredArgument ErrorKind = "missing_required_argument"
	KindMissingValue            ErrorKind = "missing_value"
	KindUnexpectedValue         ErrorKind = "unexpected_value"
	KindInvalidUtf8             ErrorKind = "invalid_utf8"
	KindOther                   ErrorKind = "other"
)

// Sentinels for errors.Is. A *Error matches the sentinel of its kind.
var (
	ErrParseFailed             = &Error{Kind: KindParseFailed, Message: "invalid value"}
	ErrUnknownSwitch           = &Error{Kind: KindUnknownSwitch, Message: "unknown switch"}
	ErrTooManyPositional       = &Error{Kind: KindTooManyPositional, Message: "too many positional arguments"}
	ErrMissingRequiredArgument = &Error{Kind: KindMissingRequiredArgument, Message: "missing required argument"}
	ErrMissingValue            = &Error{Kind: KindMissingValue, Message: "missing value"}
	ErrUnexpectedValue         = &Error{Kind: KindUnexpectedValue, Message: "unexpected value"}
	ErrInvalidUtf8             = &Error{Kind: KindInvalidUtf8, Message: "invalid utf-8"}
	ErrOther                   = &Error{Kind: KindOther, Message: "error"}
)

// Error is the single error type returned by parsing.
type Error struct {
	Kind    ErrorKind
	Message string

	// Name is the spec name involved, when known.
	Name string
	// Switch is the offending switch for switch-related kinds.
	Switch Switch
	// Token is the raw token for TooManyPositional.
	Token string
	// Suggestion holds a "did you mean" hint for UnknownSwitch, if enabled.
	Suggestion string
	Cause      error
}

func (e *Error) Error() string {
	if e.Suggestion != "" {
		return e.Message + " (did you mean '" + e.Suggestion + "'?)"
	}
	return e.Message
}

// Unwrap returns the underlying cause, e.g. the conversion error of ParseFailed.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches sentinels by kind. A missing value for a trailing option is also
// a missing required argument.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return e.Kind == KindMissingValue && t.Kind == KindMissingRequiredArgument
}

// WithSuggestion sets the suggestion shown alongside the message.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithCause sets the underlying cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// KindOf returns the kind of err, or "" when err is not a *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Errorf builds an Other error for caller-raised failures such as custom
// validation.
func Errorf(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Kind: KindOther, Message: err.Error(), Cause: err}
}

func parseFailed(name string, cause error) *Error {
	return &Error{
		Kind:    KindParseFailed,
		Message: fmt.Sprintf("Invalid value for '%s': %v", name, cause),
		Name:    name,
		Cause:   cause,
	}
}

func unknownSwitch(sw Switch) *Error {
	return &Error{
		Kind:    KindUnknownSwitch,
		Message: fmt.Sprintf("Did not recognize argument '%s'", sw),
		Switch:  sw,
	}
}

func tooManyPositional(token string) *Error {
	return &Error{
		Kind:    KindTooManyPositional,
		Message: fmt.Sprintf("Too many positional arguments, starting with '%s'", token),
		Token:   token,
	}
}

func missingRequiredArgument(name string) *Error {
	return &Error{
		Kind:    KindMissingRequiredArgument,
		Message: fmt.Sprintf("Missing required argument '%s'", name),
		Name:    name,
	}
}

func missingValue(name string, sw Switch) *Error {
	return &Error{
		Kind:    KindMissingValue,
		Message: fmt.Sprintf("Missing value for '%s'", sw),
		Name:    name,
		Switch:  sw,
	}
}

func unexpectedValue(name string, sw Switch) *Error {
	return &Error{
		Kind:    KindUnexpectedValue,
		Message: fmt.Sprintf("Flag '%s' cannot take a value", sw),
		Name:    name,
		Switch:  sw,
	}
}

func invalidUtf8() *Error {
	return &Error{
		Kind:    KindInvalidUtf8,
		Message: "Invalid UTF-8 was detected in one or more arguments",
	}
}

// validationFailed wraps a Validate hook failure as an Other error.
func validationFailed(name string, cause error) *Error {
	return &Error{
		Kind:    KindOther,
		Message: fmt.Sprintf("Invalid value for '%s': %v", name, cause),
		Name:    name,
		Cause:   cause,
	}
}
