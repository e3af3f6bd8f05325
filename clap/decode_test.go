package clap

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDecodeIntegers(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"10", 10},
		{"-7", -7},
		{"+3", 3},
		{"010", 10},
		{"0x1f", 31},
		{"0o17", 15},
		{"0b101", 5},
		{"-0x10", -16},
	}
	for _, tt := range tests {
		got, err := Int64(tt.raw)
		if err != nil || got != tt.want {
			t.Errorf("Int64(%q) = %d, %v; want %d", tt.raw, got, err, tt.want)
		}
	}

	if _, err := Int("1.5"); !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("Int(1.5) err = %v", err)
	}
	if _, err := Uint8("256"); !errors.Is(err, strconv.ErrRange) {
		t.Errorf("Uint8(256) err = %v", err)
	}
	if _, err := Uint64("-1"); err == nil {
		t.Errorf("Uint64(-1) should fail")
	}
	if v, err := Uint8("0xff"); err != nil || v != 255 {
		t.Errorf("Uint8(0xff) = %d, %v", v, err)
	}
}

func TestDecodeFloatAndBool(t *testing.T) {
	if v, err := Float64("2.5e3"); err != nil || v != 2500 {
		t.Errorf("Float64 = %v, %v", v, err)
	}
	if _, err := Float64("x"); !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("Float64(x) err = %v", err)
	}

	for raw, want := range map[string]bool{
		"true": true, "1": true, "YES": true, "on": true, "y": true,
		"false": false, "0": false, "no": false, "Off": false, "n": false,
	} {
		got, err := Bool(raw)
		if err != nil || got != want {
			t.Errorf("Bool(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := Bool("maybe"); err == nil {
		t.Errorf("Bool(maybe) should fail")
	}
}

func TestDecodeDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"1h30m", 90 * time.Minute},
		{"250ms", 250 * time.Millisecond},
		{"05:30", 5*time.Minute + 30*time.Second},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"2d", 48 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
	}
	for _, tt := range tests {
		got, err := Duration(tt.raw)
		if err != nil || got != tt.want {
			t.Errorf("Duration(%q) = %v, %v; want %v", tt.raw, got, err, tt.want)
		}
	}
	for _, raw := range []string{"", "1:2:3:4", "a:b", "soon", "xd"} {
		if _, err := Duration(raw); err == nil {
			t.Errorf("Duration(%q) should fail", raw)
		}
	}
}

func TestDecodeEnumSemverUUID(t *testing.T) {
	color := Enum("red", "green")
	if v, err := color("green"); err != nil || v != "green" {
		t.Errorf("Enum = %q, %v", v, err)
	}
	if _, err := color("blue"); err == nil || err.Error() != `"blue" is not one of: red, green` {
		t.Errorf("Enum(blue) err = %v", err)
	}

	v, err := Semver("v1.2.3-rc.1")
	if err != nil || v.Major() != 1 || v.Minor() != 2 || v.Prerelease() != "rc.1" {
		t.Errorf("Semver = %v, %v", v, err)
	}
	if _, err := Semver("one"); err == nil {
		t.Errorf("Semver(one) should fail")
	}

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	if got, err := UUID("urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err != nil || got != id {
		t.Errorf("UUID = %v, %v", got, err)
	}
	if _, err := UUID("nope"); err == nil {
		t.Errorf("UUID(nope) should fail")
	}
}

func TestTypedDecodersThroughParser(t *testing.T) {
	var id uuid.UUID
	var wait time.Duration
	b := New("prog")
	Option(b, "id", UUID, &id).Long("")
	b.DurationOption("wait", &wait).Short('w').Default(time.Second)
	s := b.MustBuild()

	if err := s.TryParse([]string{"prog", "--id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "-w1:30"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if id.String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" || wait != 90*time.Second {
		t.Fatalf("got id=%v wait=%v", id, wait)
	}

	requireKind(t, s.TryParse([]string{"prog", "--id", "zzz"}), KindParseFailed)
}
