package clap

import (
	"iter"

	"github.com/kballard/go-shellquote"
)

// Tokens is a pull-based stream of argument tokens. The first token is the
// program name.
type Tokens interface {
	Next() (string, bool)
}

type sliceTokens struct {
	args []string
	pos  int
}

// FromSlice streams args in order.
func FromSlice(args []string) Tokens {
	return &sliceTokens{args: args}
}

func (t *sliceTokens) Next() (string, bool) {
	if t.pos >= len(t.args) {
		return "", false
	}
	tok := t.args[t.pos]
	t.pos++
	return tok, true
}

type seqTokens struct {
	next func() (string, bool)
}

func (t seqTokens) Next() (string, bool) { return t.next() }

// FromSeq streams an iterator. The returned stop function must be called once
// the stream is no longer needed.
func FromSeq(seq iter.Seq[string]) (Tokens, func()) {
	next, stop := iter.Pull(seq)
	return seqTokens{next: next}, stop
}

// FromBytes streams byte tokens, e.g. raw argv read from /proc. Tokens are
// not validated here; the parser reports invalid UTF-8.
func FromBytes(args [][]byte) Tokens {
	strs := make([]string, len(args))
	for i, a := range args {
		strs[i] = string(a)
	}
	return FromSlice(strs)
}

// SplitLine splits a shell-quoted command line into tokens, program name
// included.
func SplitLine(line string) ([]string, error) {
	return shellquote.Split(line)
}
