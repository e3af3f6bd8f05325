package clap

import "strings"

// Switch identifies a flag or option on the command line. A zero Short means
// the switch has no short form; an empty Long means it has no long form.
type Switch struct {
	Short rune
	Long  string
}

// HasShort reports whether the switch can be addressed as -c.
func (s Switch) HasShort() bool { return s.Short != 0 }

// HasLong reports whether the switch can be addressed as --name.
func (s Switch) HasLong() bool { return s.Long != "" }

// IsZero reports whether the switch has neither form.
func (s Switch) IsZero() bool { return !s.HasShort() && !s.HasLong() }

// String renders the switch the way a user would type it, preferring the long
// form when both exist.
func (s Switch) String() string {
	switch {
	case s.HasLong():
		return "--" + s.Long
	case s.HasShort():
		return "-" + string(s.Short)
	default:
		return ""
	}
}

// Usage renders both forms, e.g. "-v, --verbose".
func (s Switch) Usage() string {
	var b strings.Builder
	if s.HasShort() {
		b.WriteByte('-')
		b.WriteRune(s.Short)
	}
	if s.HasLong() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString("--")
		b.WriteString(s.Long)
	}
	return b.String()
}

func shortSwitch(c rune) Switch     { return Switch{Short: c} }
func longSwitch(name string) Switch { return Switch{Long: name} }
