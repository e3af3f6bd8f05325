package clap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// Decoder converts a raw token into a typed value. Errors are wrapped by the
// parser into ParseFailed errors naming the spec.
type Decoder[T any] func(raw string) (T, error)

// String returns the raw token unchanged.
func String(raw string) (string, error) { return raw, nil }

// Int decodes a signed integer. Base prefixes 0x, 0o and 0b are honored.
func Int(raw string) (int, error) {
	v, err := strconv.ParseInt(raw, intBase(raw), strconv.IntSize)
	if err != nil {
		return 0, numError(err)
	}
	return int(v), nil
}

// Int64 decodes a 64-bit signed integer.
func Int64(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, intBase(raw), 64)
	if err != nil {
		return 0, numError(err)
	}
	return v, nil
}

// Uint64 decodes a 64-bit unsigned integer.
func Uint64(raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, intBase(raw), 64)
	if err != nil {
		return 0, numError(err)
	}
	return v, nil
}

// Uint8 decodes a byte-sized unsigned integer.
func Uint8(raw string) (uint8, error) {
	v, err := strconv.ParseUint(raw, intBase(raw), 8)
	if err != nil {
		return 0, numError(err)
	}
	return uint8(v), nil
}

// Float64 decodes a floating point number.
func Float64(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, numError(err)
	}
	return v, nil
}

// Bool decodes the strconv boolean spellings plus yes/no and on/off.
func Bool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
	return v, nil
}

// numError drops the strconv function prefix ("strconv.ParseInt: parsing ...")
// so messages read "Invalid value for 'num': invalid syntax".
func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// Enum returns a decoder accepting only the listed values.
func Enum(values ...string) Decoder[string] {
	return func(raw string) (string, error) {
		for _, v := range values {
			if raw == v {
				return raw, nil
			}
		}
		return "", fmt.Errorf("%q is not one of: %s", raw, strings.Join(values, ", "))
	}
}

// Semver decodes a semantic version such as "1.2.3" or "v2.0.0-rc.1".
func Semver(raw string) (*semver.Version, error) {
	return semver.NewVersion(raw)
}

// UUID decodes a UUID in any of the forms accepted by uuid.Parse.
func UUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// Duration decodes a time.Duration. On top of the Go syntax ("1h30m") it
// accepts "MM:SS", "HH:MM:SS" and whole days or weeks ("2d", "1w").
func Duration(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n := strings.Count(raw, ":"); n > 0 {
		return colonDuration(raw, n)
	}
	if d, ok := extendedDuration(raw); ok {
		return d, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}

func colonDuration(raw string, colons int) (time.Duration, error) {
	if colons > 2 {
		return 0, fmt.Errorf("invalid duration %q: too many colons", raw)
	}
	parts := strings.Split(raw, ":")
	units := []time.Duration{time.Second, time.Minute, time.Hour}
	var total time.Duration
	for i := range parts {
		part := parts[len(parts)-1-i]
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", raw)
		}
		total += time.Duration(n) * units[i]
	}
	return total, nil
}

func extendedDuration(raw string) (time.Duration, bool) {
	if len(raw) < 2 {
		return 0, false
	}
	var unit time.Duration
	switch raw[len(raw)-1] {
	case 'd', 'D':
		unit = 24 * time.Hour
	case 'w', 'W':
		unit = 7 * 24 * time.Hour
	default:
		return 0, false
	}
	n, err := strconv.ParseUint(raw[:len(raw)-1], 10, 32)
	if err != nil {
		return 0, false
	}
	return time.Duration(n) * unit, true
}

// intBase selects base 0 (prefix-driven) only when an explicit 0x, 0o or 0b
// prefix is present, so "010" stays decimal.
func intBase(raw string) int {
	s := strings.TrimLeft(raw, "+-")
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return 0
		}
	}
	return 10
}
