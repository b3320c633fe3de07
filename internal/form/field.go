package form

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual layout accepted for date defaults and submissions.
const DateLayout = "2006-01-02 15:04:05"

const dayLayout = "2006-01-02"

// ErrInvalidValue is returned when submitted text does not parse for its field kind.
var ErrInvalidValue = errors.New("invalid value")

type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindNumeric:
		return "number"
	default:
		return "text"
	}
}

// Classify picks the field kind for a declared column type.
func Classify(declaredType string) Kind {
	t := strings.ToUpper(declaredType)
	switch {
	case strings.Contains(t, "DATE") || strings.Contains(t, "TIMESTAMP"):
		return KindDate
	case strings.Contains(t, "NUMBER") || strings.Contains(t, "INTEGER"):
		return KindNumeric
	default:
		return KindText
	}
}

// Field is one editable input. The set of implementations is closed:
// DateField, NumericField and TextField.
type Field interface {
	Column() string
	Kind() Kind
	// Default is the value shown before the user edits anything.
	Default() any
	// Parse converts submitted text into the value bound to the statement.
	Parse(raw string) (any, error)

	isField()
}

type DateField struct {
	Name  string    `json:"name"`
	Value time.Time `json:"value"`
}

func (f DateField) Column() string { return f.Name }
func (f DateField) Kind() Kind     { return KindDate }
func (f DateField) Default() any   { return f.Value }
func (DateField) isField()         {}

// Parse accepts either a bare calendar date or the full DateLayout and keeps only the date.
func (f DateField) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{dayLayout, DateLayout} {
		if t, err := time.ParseInLocation(layout, raw, f.Value.Location()); err == nil {
			return calendarDate(t), nil
		}
	}
	return nil, fmt.Errorf("%w: %s: %q is not a date (want YYYY-MM-DD)", ErrInvalidValue, f.Name, raw)
}

type NumericField struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (f NumericField) Column() string { return f.Name }
func (f NumericField) Kind() Kind     { return KindNumeric }
func (f NumericField) Default() any   { return f.Value }
func (NumericField) isField()         {}

func (f NumericField) Parse(raw string) (any, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s: %q is not a number", ErrInvalidValue, f.Name, raw)
	}
	return v, nil
}

type TextField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (f TextField) Column() string                { return f.Name }
func (f TextField) Kind() Kind                    { return KindText }
func (f TextField) Default() any                  { return f.Value }
func (f TextField) Parse(raw string) (any, error) { return raw, nil }
func (TextField) isField()                        {}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateDefault resolves a snapshot value to a calendar date, falling back to today.
func dateDefault(val any, today time.Time) time.Time {
	switch v := val.(type) {
	case time.Time:
		if v.IsZero() {
			return today
		}
		return calendarDate(v)
	case *time.Time:
		if v == nil || v.IsZero() {
			return today
		}
		return calendarDate(*v)
	case string:
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return today
		}
		return calendarDate(t)
	case []byte:
		return dateDefault(string(v), today)
	default:
		return today
	}
}

// numericDefault coerces a snapshot value to float64. Absent, falsy and
// unparsable values all become 0.
func numericDefault(val any) float64 {
	if isFalsy(val) {
		return 0
	}
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		return 1
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	case []byte:
		return numericDefault(string(v))
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil {
			return 0
		}
		return numericDefault(inner)
	case fmt.Stringer:
		return numericDefault(v.String())
	default:
		return 0
	}
}

// textDefault renders a snapshot value as text; falsy values become "".
func textDefault(val any) string {
	if isFalsy(val) {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(DateLayout)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// isFalsy mirrors the "absent or empty" test used for defaults: nil, zero
// numbers, false and empty strings.
func isFalsy(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	case bool:
		return !v
	case float64:
		return v == 0
	case float32:
		return v == 0
	case int:
		return v == 0
	case int8:
		return v == 0
	case int16:
		return v == 0
	case int32:
		return v == 0
	case int64:
		return v == 0
	case uint:
		return v == 0
	case uint8:
		return v == 0
	case uint16:
		return v == 0
	case uint32:
		return v == 0
	case uint64:
		return v == 0
	default:
		return false
	}
}
