package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Error representa un error de validación de un campo de entrada
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf construye un error de validación para un campo
func Errorf(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Present reporta si el body trae un valor utilizable para el campo.
// nil y strings vacíos cuentan como ausentes (los formularios HTML envían "").
func Present(body map[string]interface{}, field string) bool {
	v, ok := body[field]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// Str coerces a value into a trimmed non-empty string.
func Str(v interface{}, field string) (string, *Error) {
	s, ok := v.(string)
	if !ok {
		return "", Errorf(field, "%s must be a string", field)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", Errorf(field, "%s must not be empty", field)
	}
	return s, nil
}

// Int coerces a JSON number or numeric string into an integer.
// Rejects anything else instead of silently defaulting.
func Int(v interface{}, field string) (int64, *Error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, Errorf(field, "%s must be an integer", field)
		}
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, Errorf(field, "%s must be an integer", field)
		}
		return parsed, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, Errorf(field, "%s must be an integer", field)
	}
}

// Float coerces a JSON number or numeric string into a float.
func Float(v interface{}, field string) (float64, *Error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, Errorf(field, "%s must be a number", field)
		}
		return n, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, Errorf(field, "%s must be a number", field)
		}
		return parsed, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, Errorf(field, "%s must be a number", field)
	}
}

// PositiveInt is Int restricted to values greater than zero.
func PositiveInt(v interface{}, field string) (int64, *Error) {
	n, err := Int(v, field)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, Errorf(field, "%s must be a positive integer", field)
	}
	return n, nil
}

// NonNegativeInt is Int restricted to zero or greater.
func NonNegativeInt(v interface{}, field string) (int64, *Error) {
	n, err := Int(v, field)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, Errorf(field, "%s must not be negative", field)
	}
	return n, nil
}

// NonNegativeFloat is Float restricted to zero or greater.
func NonNegativeFloat(v interface{}, field string) (float64, *Error) {
	n, err := Float(v, field)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, Errorf(field, "%s must not be negative", field)
	}
	return n, nil
}

// Bool coerces a JSON bool, 0/1 number or "true"/"false" string.
func Bool(v interface{}, field string) (bool, *Error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case float64:
		if b == 0 {
			return false, nil
		}
		if b == 1 {
			return true, nil
		}
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err == nil {
			return parsed, nil
		}
	}
	return false, Errorf(field, "%s must be a boolean", field)
}

// Date coerces a value into a YYYY-MM-DD date string.
func Date(v interface{}, field string) (string, *Error) {
	s, err := Str(v, field)
	if err != nil {
		return "", err
	}
	if !isDate(s) {
		return "", Errorf(field, "%s must be a date in YYYY-MM-DD format", field)
	}
	return s, nil
}

// OneOf coerces a string restricted to a fixed set of values.
func OneOf(v interface{}, field string, allowed ...string) (string, *Error) {
	s, err := Str(v, field)
	if err != nil {
		return "", err
	}
	s = strings.ToLower(s)
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", Errorf(field, "%s must be one of: %s", field, strings.Join(allowed, ", "))
}

func isDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil || year < 1 {
		return false
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil || day < 1 || day > 31 {
		return false
	}
	return true
}
