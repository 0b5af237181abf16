package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that tolerates every numeric representation the
// backend has historically used: a native JSON number, a quoted numeric
// string (whitespace allowed), or a native integer.
//
// It always marshals back as a native number — the canonical form.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("numeric string %q: %w", s, err)
		}
		*f = FlexFloat(parsed)
		return nil
	}

	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexFloat(i)
		return nil
	}

	return fmt.Errorf("value %s is neither number, numeric string, nor integer", snippet(data))
}

// MarshalJSON implements json.Marshaler, emitting a native number.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// FlexBool is a bool that tolerates a native JSON boolean or its string
// forms ("true", "false", "1", "0", case-insensitive, whitespace allowed).
// It always marshals back as a native boolean.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return fmt.Errorf("boolean string %q: %w", s, err)
		}
		*b = FlexBool(parsed)
		return nil
	}

	return fmt.Errorf("value %s is neither boolean nor boolean string", snippet(data))
}

// MarshalJSON implements json.Marshaler, emitting a native boolean.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
