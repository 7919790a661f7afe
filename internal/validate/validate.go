package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ArgumentError reports one caller-supplied argument that failed a
// semantic check. It is the only error type this package produces; the
// dispatcher translates it into an InvalidArgument invocation failure
// before any handler business logic runs.
type ArgumentError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

func argErr(field, format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// AsArgument extracts an *ArgumentError from err, unwrapping as needed.
// Returns nil when err is not an argument error.
func AsArgument(err error) *ArgumentError {
	var ae *ArgumentError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

var (
	domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// String asserts that value is a non-empty string. Whitespace-only
// strings are rejected. On success the string is returned unchanged.
func String(value interface{}, field string) (string, error) {
	s, ok := value.(string)
	if !ok {
		if value == nil {
			return "", argErr(field, "required string argument is missing")
		}
		return "", argErr(field, "expected a string, got %T", value)
	}
	if strings.TrimSpace(s) == "" {
		return "", argErr(field, "must not be empty")
	}
	return s, nil
}

// DomainName asserts that value is a syntactically valid DNS domain
// name (dot-separated labels, letters/digits/hyphens, alphabetic TLD).
func DomainName(value interface{}, field string) (string, error) {
	s, err := String(value, field)
	if err != nil {
		return "", err
	}
	if !domainPattern.MatchString(s) {
		return "", argErr(field, "%q is not a valid domain name", s)
	}
	return s, nil
}

// Email asserts that value is a plausible email address
// (local@domain with a dotted domain part).
func Email(value interface{}, field string) (string, error) {
	s, err := String(value, field)
	if err != nil {
		return "", err
	}
	if !emailPattern.MatchString(s) {
		return "", argErr(field, "%q is not a valid email address", s)
	}
	return s, nil
}

// PositiveNumber asserts that value is a finite number greater than
// zero. JSON decoding delivers numbers as float64; integer Go values
// are accepted for handlers invoked directly in tests.
func PositiveNumber(value interface{}, field string) (float64, error) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	default:
		if value == nil {
			return 0, argErr(field, "required numeric argument is missing")
		}
		return 0, argErr(field, "expected a number, got %T", value)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, argErr(field, "must be a finite number")
	}
	if n <= 0 {
		return 0, argErr(field, "must be greater than zero, got %v", n)
	}
	return n, nil
}

// Boolean asserts that value is a bool.
func Boolean(value interface{}, field string) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		if value == nil {
			return false, argErr(field, "required boolean argument is missing")
		}
		return false, argErr(field, "expected a boolean, got %T", value)
	}
	return b, nil
}

// StringArray asserts that value is an array whose elements are all
// non-empty strings. Both []string and the []interface{} shape
// produced by JSON decoding are accepted.
func StringArray(value interface{}, field string) ([]string, error) {
	switch v := value.(type) {
	case []string:
		for i, s := range v {
			if strings.TrimSpace(s) == "" {
				return nil, argErr(field, "element %d must not be empty", i)
			}
		}
		return v, nil
	case []interface{}:
		out := make([]string, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, argErr(field, "element %d: expected a string, got %T", i, elem)
			}
			if strings.TrimSpace(s) == "" {
				return nil, argErr(field, "element %d must not be empty", i)
			}
			out[i] = s
		}
		return out, nil
	case nil:
		return nil, argErr(field, "required array argument is missing")
	default:
		return nil, argErr(field, "expected an array of strings, got %T", value)
	}
}

// Object asserts that value is a JSON object (a string-keyed map).
// Nested fields are validated by the caller, field by field, with the
// other checks in this package.
func Object(value interface{}, field string) (map[string]interface{}, error) {
	obj, ok := value.(map[string]interface{})
	if !ok {
		if value == nil {
			return nil, argErr(field, "required object argument is missing")
		}
		return nil, argErr(field, "expected an object, got %T", value)
	}
	return obj, nil
}

// Enum asserts that value is a string equal to one of allowed. The
// error message enumerates the allowed set.
func Enum(value interface{}, allowed []string, field string) (string, error) {
	s, err := String(value, field)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", argErr(field, "%q is not one of [%s]", s, strings.Join(allowed, ", "))
}

// Optional passes an absent value (nil) through untouched and reports
// presence via the second return. A present value is delegated to
// check and validated normally.
func Optional[T any](value interface{}, field string, check func(interface{}, string) (T, error)) (T, bool, error) {
	var zero T
	if value == nil {
		return zero, false, nil
	}
	v, err := check(value, field)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}
