package clap

import (
	"sort"
	"sync"

	clapio "github.com/dzonerzy/go-clap/io"
	"github.com/samber/lo"
)

// SpecType tells the three kinds of argument specs apart.
type SpecType int

const (
	SpecFlag SpecType = iota
	SpecOption
	SpecPositional
)

// String returns a lowercase name for the spec type.
func (t SpecType) String() string {
	switch t {
	case SpecFlag:
		return "flag"
	case SpecOption:
		return "option"
	case SpecPositional:
		return "positional"
	default:
		return "unknown"
	}
}

// FlagSpec is a switch that takes no value.
type FlagSpec struct {
	Name   string
	Switch Switch
	Sink   FlagSink

	index int
}

// OptionSpec is a switch that takes exactly one value per occurrence.
type OptionSpec struct {
	Name       string
	Switch     Switch
	Multiple   bool
	Required   bool
	HasDefault bool
	// Env lists environment variables consulted for a default, in order.
	Env  []string
	Sink ValueSink

	index int
}

// PositionalSpec is addressed by declaration order rather than a switch.
type PositionalSpec struct {
	Name       string
	Multiple   bool
	Required   bool
	HasDefault bool
	Env        []string
	Sink       ValueSink

	index int
}

// settings carries schema-wide behavior configured on the Builder.
type settings struct {
	suggest   bool
	logger    *clapio.Logger
	io        *clapio.IOManager
	exitCodes *ExitCodeManager
	envPrefix string
	lookupEnv func(string) (string, bool)
	// fileDefaults holds raw values loaded from the defaults file, keyed by spec name.
	fileDefaults map[string][]string
}

// Schema is the immutable description of everything one program accepts.
// Build it with a Builder. Its sinks are bound to the targets given at
// registration, so parses over one Schema run one at a time.
type Schema struct {
	// mu serializes parses; sinks and their targets are shared state.
	mu sync.Mutex

	program     string
	flags       []*FlagSpec
	options     []*OptionSpec
	positionals []*PositionalSpec

	shortFlags   map[rune]*FlagSpec
	longFlags    map[string]*FlagSpec
	shortOptions map[rune]*OptionSpec
	longOptions  map[string]*OptionSpec

	settings settings
}

// Program returns the program name the schema was built for.
func (s *Schema) Program() string { return s.program }

// FlagByShort looks up a flag by its short character.
func (s *Schema) FlagByShort(c rune) (*FlagSpec, bool) {
	f, ok := s.shortFlags[c]
	return f, ok
}

// FlagByLong looks up a flag by its long name.
func (s *Schema) FlagByLong(name string) (*FlagSpec, bool) {
	f, ok := s.longFlags[name]
	return f, ok
}

// OptionByShort looks up an option by its short character.
func (s *Schema) OptionByShort(c rune) (*OptionSpec, bool) {
	o, ok := s.shortOptions[c]
	return o, ok
}

// OptionByLong looks up an option by its long name.
func (s *Schema) OptionByLong(name string) (*OptionSpec, bool) {
	o, ok := s.longOptions[name]
	return o, ok
}

// Flags returns the declared flags in order.
func (s *Schema) Flags() []*FlagSpec { return s.flags }

// Options returns the declared options in order.
func (s *Schema) Options() []*OptionSpec { return s.options }

// Positionals returns the declared positionals in order.
func (s *Schema) Positionals() []*PositionalSpec { return s.positionals }

// slotCount is the size of the per-parse slot table.
func (s *Schema) slotCount() int {
	return len(s.flags) + len(s.options) + len(s.positionals)
}

// longNames returns every long switch name, sorted, for suggestions.
func (s *Schema) longNames() []string {
	names := append(lo.Keys(s.longFlags), lo.Keys(s.longOptions)...)
	sort.Strings(names)
	return names
}
