package clapio

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestColorOverrides(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")

	var buf bytes.Buffer
	m := New().WithOut(&buf).WithErr(&buf)
	if m.SupportsColor() {
		t.Fatalf("buffer is not a terminal")
	}
	if !m.ForceColor().SupportsColor() {
		t.Fatalf("ForceColor should enable")
	}
	if m.NoColor().SupportsColorErr() {
		t.Fatalf("NoColor should disable")
	}

	t.Setenv("NO_COLOR", "1")
	if m.ForceColor().SupportsColor() {
		t.Fatalf("NO_COLOR should win over ForceColor")
	}
}

func TestPaint(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	m := New().WithOut(&bytes.Buffer{}).ForceColor()

	out := m.Paint("x", DefaultTheme().Error)
	if !strings.Contains(out, "\x1b[") || !strings.HasSuffix(out, "\x1b[0m") {
		t.Fatalf("missing ANSI: %q", out)
	}
	if got := m.NoColor().Paint("x", DefaultTheme().Error); got != "x" {
		t.Fatalf("want plain text, got %q", got)
	}
}

func TestWidthFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "101")
	if w := New().WithOut(&bytes.Buffer{}).Width(); w != 101 {
		t.Fatalf("want 101, got %d", w)
	}
	t.Setenv("COLUMNS", "wide")
	if w := New().WithOut(&bytes.Buffer{}).Width(); w != 80 {
		t.Fatalf("want fallback 80, got %d", w)
	}
}

func TestLoggerFormats(t *testing.T) {
	var out, errOut bytes.Buffer
	m := New().WithOut(&out).WithErr(&errOut).NoColor()
	l := NewLogger(m)

	l.Info("hello %d", 1)
	l.Error("boom")
	if got := out.String(); got != "[INFO] hello 1\n" {
		t.Fatalf("stdout = %q", got)
	}
	if got := errOut.String(); got != "[ERROR] boom\n" {
		t.Fatalf("stderr = %q", got)
	}

	out.Reset()
	l.WithFormat(LogFormatPlain).Debug("trace")
	if got := out.String(); got != "trace\n" {
		t.Fatalf("plain = %q", got)
	}

	out.Reset()
	l.WithFormat(LogFormatSymbols).ErrorsToStderr(false).Warning("careful")
	if got := out.String(); got != "▲ careful\n" {
		t.Fatalf("symbols = %q", got)
	}
}

func TestLoggerLevelAndTimestamp(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(New().WithOut(&out).NoColor()).WithLevel(LevelInfo).WithTimestamp(true)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("dropped")
	l.Info("kept")
	if got := out.String(); got != "[INFO] 03:04:05 kept\n" {
		t.Fatalf("got %q", got)
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	if l.Enabled(LevelError) {
		t.Fatalf("nil logger must be disabled")
	}
	l.Debug("nothing %s", "happens")
}

func TestLoggerPrefixTimeFormatAndTheme(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var out bytes.Buffer
	l := NewLogger(New().WithOut(&out).NoColor()).
		SetPrefix(LevelDebug, "clap:").
		WithTimestamp(true).
		WithTimeFormat("2006-01-02")
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("--num: option num")
	if got := out.String(); got != "clap: 2024-01-02 --num: option num\n" {
		t.Fatalf("got %q", got)
	}

	out.Reset()
	theme := DefaultTheme()
	theme.Debug = theme.Muted
	l = NewLogger(New().WithOut(&out).ForceColor()).WithTheme(theme)
	l.Debug("trace")
	if got, want := out.String(), theme.Muted.Sprint(true, "[DEBUG] trace")+"\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTerminalDetectionAndFaint(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")

	m := New().WithOut(&bytes.Buffer{})
	if m.IsTTY() {
		t.Fatalf("buffer is not a terminal")
	}
	if got := m.Faint("dim"); got != "dim" {
		t.Fatalf("want plain text off a terminal, got %q", got)
	}
	if got := m.ForceColor().Faint("dim"); !strings.HasPrefix(got, "\x1b[2") {
		t.Fatalf("want faint SGR, got %q", got)
	}
}
