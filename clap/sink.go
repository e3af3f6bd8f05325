package clap

import "slices"

// FlagSink stores the side effect of a flag occurrence (toggle, increment).
type FlagSink interface {
	Assign() error
}

// ValueSink decodes and stores one raw value. Returning a plain error marks
// a conversion failure and is reported as ParseFailed; returning a *Error
// passes that error through unchanged.
type ValueSink interface {
	Assign(raw string) error
}

// Seeder is implemented by value sinks that carry a pre-seeded default. The
// parser calls Seed once before consuming tokens. fallback holds raw values
// from the environment or a defaults file and takes precedence over the
// builder default. Seed reports whether a default is now in place.
type Seeder interface {
	Seed(fallback []string) (bool, error)
}

// FlagSinkFunc adapts a function to FlagSink.
type FlagSinkFunc func() error

// Assign calls f.
func (f FlagSinkFunc) Assign() error { return f() }

// ValueSinkFunc adapts a function to ValueSink.
type ValueSinkFunc func(raw string) error

// Assign calls f.
func (f ValueSinkFunc) Assign(raw string) error { return f(raw) }

// flagResetter is implemented by the built-in flag sinks; the parser clears
// them before each parse.
type flagResetter interface {
	reset()
}

type boolSink struct{ dst *bool }

func (s boolSink) Assign() error {
	*s.dst = true
	return nil
}

func (s boolSink) reset() { *s.dst = false }

type countSink struct{ dst *int }

func (s countSink) Assign() error {
	*s.dst++
	return nil
}

func (s countSink) reset() { *s.dst = 0 }

// typedSink is the builder-facing side of the sinks created by the typed
// registration helpers; T is the declared value type of the spec.
type typedSink[T any] interface {
	ValueSink
	Seeder
	setName(name string)
	setDefault(v T)
	setValidate(fn func(T) error)
}

// valueSink stores a single decoded value; later occurrences overwrite.
type valueSink[T any] struct {
	name     string
	dst      *T
	decode   Decoder[T]
	validate func(T) error
	def      *T
}

func newValueSink[T any](dst *T, decode Decoder[T]) *valueSink[T] {
	return &valueSink[T]{dst: dst, decode: decode}
}

func (s *valueSink[T]) Assign(raw string) error {
	v, err := s.decode(raw)
	if err != nil {
		return err
	}
	if s.validate != nil {
		if err := s.validate(v); err != nil {
			return validationFailed(s.name, err)
		}
	}
	*s.dst = v
	return nil
}

func (s *valueSink[T]) Seed(fallback []string) (bool, error) {
	if len(fallback) > 0 {
		v, err := s.decode(fallback[len(fallback)-1])
		if err != nil {
			return false, err
		}
		*s.dst = v
		return true, nil
	}
	if s.def != nil {
		*s.dst = *s.def
		return true, nil
	}
	return false, nil
}

func (s *valueSink[T]) setName(name string)          { s.name = name }
func (s *valueSink[T]) setDefault(v T)               { s.def = &v }
func (s *valueSink[T]) setValidate(fn func(T) error) { s.validate = fn }

// sliceSink appends each decoded value. A seeded slice (default, fallback or
// pre-existing contents) is replaced by the first occurrence, not extended.
type sliceSink[T any] struct {
	name     string
	dst      *[]T
	decode   Decoder[T]
	validate func([]T) error
	def      []T
	seeded   bool
}

func newSliceSink[T any](dst *[]T, decode Decoder[T]) *sliceSink[T] {
	return &sliceSink[T]{dst: dst, decode: decode}
}

func (s *sliceSink[T]) Assign(raw string) error {
	v, err := s.decode(raw)
	if err != nil {
		return err
	}
	var next []T
	if !s.seeded {
		next = *s.dst
	}
	next = append(next, v)
	if s.validate != nil {
		if err := s.validate(next); err != nil {
			return validationFailed(s.name, err)
		}
	}
	*s.dst = next
	s.seeded = false
	return nil
}

func (s *sliceSink[T]) Seed(fallback []string) (bool, error) {
	if len(fallback) > 0 {
		vals := make([]T, 0, len(fallback))
		for _, raw := range fallback {
			v, err := s.decode(raw)
			if err != nil {
				return false, err
			}
			vals = append(vals, v)
		}
		*s.dst = vals
		s.seeded = true
		return true, nil
	}
	if s.def != nil {
		*s.dst = slices.Clone(s.def)
		s.seeded = true
		return true, nil
	}
	s.seeded = len(*s.dst) > 0
	return false, nil
}

func (s *sliceSink[T]) setName(name string)            { s.name = name }
func (s *sliceSink[T]) setDefault(v []T)               { s.def = v }
func (s *sliceSink[T]) setValidate(fn func([]T) error) { s.validate = fn }

// rawSink lets caller-supplied ValueSinks use the builder's Default and
// Validate, both expressed on the raw text.
type rawSink struct {
	name     string
	sink     ValueSink
	validate func(string) error
	def      *string
}

func (s *rawSink) Assign(raw string) error {
	if s.validate != nil {
		if err := s.validate(raw); err != nil {
			return validationFailed(s.name, err)
		}
	}
	return s.sink.Assign(raw)
}

func (s *rawSink) Seed(fallback []string) (bool, error) {
	if len(fallback) == 0 && s.def != nil {
		fallback = []string{*s.def}
	}
	if seeder, ok := s.sink.(Seeder); ok {
		return seeder.Seed(fallback)
	}
	for _, raw := range fallback {
		if err := s.sink.Assign(raw); err != nil {
			return false, err
		}
	}
	return len(fallback) > 0, nil
}

func (s *rawSink) setName(name string)               { s.name = name }
func (s *rawSink) setDefault(v string)               { s.def = &v }
func (s *rawSink) setValidate(fn func(string) error) { s.validate = fn }

// Slot records what happened to one spec during a parse. Slots are indexed
// in declaration order: flags, then options, then positionals.
type Slot struct {
	Name        string
	Type        SpecType
	Assigned    bool
	Defaulted   bool
	Occurrences int
}

// Slots is the index-addressed table of per-spec parse state.
type Slots []Slot

// Lookup finds the slot of the named spec.
func (s Slots) Lookup(name string) (Slot, bool) {
	for _, slot := range s {
		if slot.Name == name {
			return slot, true
		}
	}
	return Slot{}, false
}

// Provided reports whether the named spec received a value from the
// command line.
func (s Slots) Provided(name string) bool {
	slot, ok := s.Lookup(name)
	return ok && slot.Assigned
}
