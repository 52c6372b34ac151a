// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToBool coerces any value to a bool. Never fails: nonzero numbers are
// true, empty strings and quotes are false, commands are true.
func ToBool(v Value) Bool {
	switch t := v.(type) {
	case Bool:
		return t
	case Int:
		return t != 0
	case Float:
		return t != 0
	case Str:
		return len(t) > 0
	case Quote:
		return len(t) > 0
	default: // Command, Deferred
		return true
	}
}

// ToInt coerces to a signed 64-bit integer. Floats truncate toward
// zero; NaN and out-of-range floats fail; strings parse as decimal.
func ToInt(v Value) (Int, error) {
	switch t := v.(type) {
	case Bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case Int:
		return t, nil
	case Float:
		f := float64(t)
		if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, fmt.Errorf("cannot make %s into an int", t)
		}
		return Int(f), nil
	case Str:
		n, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot make %s into an int", t)
		}
		return Int(n), nil
	}
	return 0, fmt.Errorf("cannot make a %s into an int", v.Kind())
}

// ToFloat coerces to a binary64 float.
func ToFloat(v Value) (Float, error) {
	switch t := v.(type) {
	case Bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case Int:
		return Float(t), nil
	case Float:
		return t, nil
	case Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot make %s into a float", t)
		}
		return Float(f), nil
	}
	return 0, fmt.Errorf("cannot make a %s into a float", v.Kind())
}

// ToStr coerces to a string: commands yield their identifier, scalars
// their canonical decimal or true/false form. Quotes do not coerce.
func ToStr(v Value) (Str, error) {
	switch t := v.(type) {
	case Str:
		return t, nil
	case Command:
		return Str(t), nil
	case Deferred:
		return Str(t), nil
	case Bool, Int, Float:
		return Str(v.String()), nil
	}
	return "", fmt.Errorf("cannot make a %s into a string", v.Kind())
}

// ToQuote coerces to a quote: quotes pass through, anything else is
// wrapped as a singleton.
func ToQuote(v Value) Quote {
	if q, ok := v.(Quote); ok {
		return q
	}
	return Quote{v}
}
