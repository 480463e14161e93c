// Provides the tagged scalar cell value and its comparison semantics.

package gridstore

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies the scalar type held by a [Value].
type Kind uint8

const (
	// KindEmpty is an absent or blank cell. The zero Value is empty.
	KindEmpty Kind = iota
	// KindText is a Unicode string.
	KindText
	// KindNumber is a float64.
	KindNumber
	// KindBool is a boolean.
	KindBool
	// KindDate is an instant in time.
	KindDate
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a scalar cell value: text, number, boolean, date or empty.
//
// The zero Value is the empty cell. A blank string is normalized to empty,
// matching how spreadsheets treat "" and an absent cell interchangeably.
type Value struct {
	kind Kind
	text string
	num  float64
	b    bool
	t    time.Time
}

// Empty is the blank cell value.
var Empty = Value{}

// Text returns a text value. An empty string yields [Empty].
func Text(s string) Value {
	if s == "" {
		return Empty
	}
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int returns a numeric value from an int.
func Int(i int) Value {
	return Value{kind: KindNumber, num: float64(i)}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Date returns a date value for the given instant.
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t}
}

// Kind returns the scalar type of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether the value is the blank cell.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// String renders the value the way a spreadsheet cell would display it.
// Dates render as RFC 3339, numbers without trailing zeros, empty as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		// Integral values in int64 range render without a decimal point.
		// Larger magnitudes stay on the float path since the conversion
		// would overflow. MaxInt64 rounds up to 2^63 in float64, so the
		// upper bound must be strict.
		if v.num == math.Trunc(v.num) && v.num >= math.MinInt64 && v.num < math.MaxInt64 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Float returns the numeric value, or false if the value is not a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Bool returns the boolean value, or false if the value is not a boolean.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Time returns the date value, or false if the value is not a date.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindDate
}

// Equal reports whether two values are equal by value.
//
// Dates compare by underlying instant, so two distinct [time.Time] values
// representing the same moment in different locations compare equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// Compare returns -1, 0 or 1 ordering v against o.
//
// Values of the same kind order naturally (numeric, lexical, temporal;
// false before true). An empty value sorts before every non-empty value.
// Values of different kinds fall back to comparing their string renderings.
func (v Value) Compare(o Value) int {
	if v.kind == KindEmpty || o.kind == KindEmpty {
		return cmp.Compare(boolToInt(v.kind != KindEmpty), boolToInt(o.kind != KindEmpty))
	}
	if v.kind == o.kind {
		switch v.kind {
		case KindText:
			return cmp.Compare(v.text, o.text)
		case KindNumber:
			return cmp.Compare(v.num, o.num)
		case KindBool:
			return cmp.Compare(boolToInt(v.b), boolToInt(o.b))
		case KindDate:
			return v.t.Compare(o.t)
		}
	}
	return cmp.Compare(v.String(), o.String())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MarshalJSON implements [json.Marshaler]. Empty cells encode as "".
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.t.Format(time.RFC3339))
	default:
		return json.Marshal(v.String())
	}
}

// UnmarshalJSON implements [json.Unmarshaler].
//
// Strings that parse as RFC 3339 timestamps or calendar dates (2006-01-02)
// decode as dates; JSON null and "" decode as empty.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Empty
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	case string:
		*v = parseCell(x)
	default:
		return fmt.Errorf("unsupported cell value %q", data)
	}
	return nil
}

// Parse interprets user input the way a spreadsheet entry bar would:
// booleans, then numbers, then dates, then text.
func Parse(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return parseCell(s)
}

// parseCell turns a raw string cell into a Value, detecting date formats.
func parseCell(s string) Value {
	if s == "" {
		return Empty
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date(t)
	}
	return Value{kind: KindText, text: s}
}
