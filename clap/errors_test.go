package clap

import (
	"errors"
	"testing"
)

func TestErrorfKeepsEveryCause(t *testing.T) {
	a := errors.New("a")
	c := errors.New("c")

	err := Errorf("x %w %w", a, c)
	if err.Kind != KindOther || err.Error() != "x a c" {
		t.Fatalf("got %s: %q", err.Kind, err.Error())
	}
	if !errors.Is(err, a) || !errors.Is(err, c) {
		t.Fatalf("causes lost: %v", err.Cause)
	}
	if !errors.Is(Errorf("single %w", a), a) {
		t.Fatalf("single cause lost")
	}
	if !errors.Is(err, ErrOther) || errors.Is(err, ErrParseFailed) {
		t.Fatalf("kind matching broken")
	}
}
