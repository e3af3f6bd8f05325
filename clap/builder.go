package clap

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	clapio "github.com/dzonerzy/go-clap/io"
	"github.com/spf13/afero"
)

// Construction errors returned (joined) by Builder.Build.
var (
	ErrInvalidName     = errors.New("clap: invalid name")
	ErrDuplicateName   = errors.New("clap: duplicate name")
	ErrDuplicateSwitch = errors.New("clap: duplicate switch")
	ErrMissingSwitch   = errors.New("clap: switch needs a short or long form")
	ErrNilTarget       = errors.New("clap: nil target")
	ErrPositionalOrder = errors.New("clap: required positional declared after an optional one")
	ErrMultipleNotLast = errors.New("clap: multiple positional must be declared last")
)

// Builder registers flags, options and positionals and produces an
// immutable Schema.
type Builder struct {
	program     string
	flags       []*FlagSpec
	options     []*OptionSpec
	positionals []*PositionalSpec

	settings     settings
	defaultsFS   afero.Fs
	defaultsPath string

	errs []error
}

// New starts a schema for the named program.
func New(program string) *Builder {
	return &Builder{program: program, settings: settings{exitCodes: newExitCodeManager()}}
}

// SuggestSwitches enables "did you mean" hints on unknown long switches.
func (b *Builder) SuggestSwitches(enabled bool) *Builder {
	b.settings.suggest = enabled
	return b
}

// Logger sets a logger that receives debug traces of token classification.
func (b *Builder) Logger(l *clapio.Logger) *Builder {
	b.settings.logger = l
	return b
}

// IO sets the streams used by ParseOrExit; defaults to process stdio.
func (b *Builder) IO(m *clapio.IOManager) *Builder {
	b.settings.io = m
	return b
}

// ExitCodes returns the exit-code manager used by ParseOrExit. Resolution
// precedence is ExitError > error kind (DefineKind) > default.
func (b *Builder) ExitCodes() *ExitCodeManager {
	return b.settings.exitCodes
}

// EnvPrefix derives an environment variable for every option and positional
// without explicit Env names: PREFIX_NAME, upper-cased, '-' replaced by '_'.
func (b *Builder) EnvPrefix(prefix string) *Builder {
	b.settings.envPrefix = prefix
	return b
}

// LookupEnv replaces os.LookupEnv, mostly for tests.
func (b *Builder) LookupEnv(fn func(string) (string, bool)) *Builder {
	b.settings.lookupEnv = fn
	return b
}

// DefaultsFile loads defaults keyed by spec name from a JSON, TOML or YAML
// file when the schema is built. A missing file is not an error.
func (b *Builder) DefaultsFile(fs afero.Fs, path string) *Builder {
	b.defaultsFS = fs
	b.defaultsPath = path
	return b
}

// Flags

// SwitchBuilder configures a flag.
type SwitchBuilder struct {
	spec   *FlagSpec
	parent *Builder
}

// BoolFlag registers a flag that sets *dst to true.
func (b *Builder) BoolFlag(name string, dst *bool) *SwitchBuilder {
	if dst == nil {
		b.nilTarget(name)
		return b.Flag(name, FlagSinkFunc(func() error { return nil }))
	}
	return b.Flag(name, boolSink{dst: dst})
}

// CountFlag registers a flag that increments *dst on every occurrence.
func (b *Builder) CountFlag(name string, dst *int) *SwitchBuilder {
	if dst == nil {
		b.nilTarget(name)
		return b.Flag(name, FlagSinkFunc(func() error { return nil }))
	}
	return b.Flag(name, countSink{dst: dst})
}

// Flag registers a flag with a caller-supplied sink.
func (b *Builder) Flag(name string, sink FlagSink) *SwitchBuilder {
	spec := &FlagSpec{Name: name, Sink: sink}
	b.flags = append(b.flags, spec)
	return &SwitchBuilder{spec: spec, parent: b}
}

// Short sets the short character.
func (s *SwitchBuilder) Short(c rune) *SwitchBuilder {
	s.spec.Switch.Short = c
	return s
}

// Long sets the long name; an empty name uses the flag name.
func (s *SwitchBuilder) Long(name string) *SwitchBuilder {
	if name == "" {
		name = s.spec.Name
	}
	s.spec.Switch.Long = name
	return s
}

// Back returns to the Builder.
func (s *SwitchBuilder) Back() *Builder { return s.parent }

// Options

// OptionBuilder configures an option whose declared value type is T.
type OptionBuilder[T any] struct {
	spec   *OptionSpec
	sink   typedSink[T]
	parent *Builder
}

// Option registers a single-valued option decoded with decode into *dst.
// It is required unless given a Default or marked Optional.
func Option[T any](b *Builder, name string, decode Decoder[T], dst *T) *OptionBuilder[T] {
	if dst == nil {
		b.nilTarget(name)
		dst = new(T)
	}
	return addOption[T](b, name, newValueSink(dst, decode), false)
}

// Options registers a multiple option collecting every occurrence into *dst.
func Options[T any](b *Builder, name string, decode Decoder[T], dst *[]T) *OptionBuilder[[]T] {
	if dst == nil {
		b.nilTarget(name)
		dst = new([]T)
	}
	return addOption[[]T](b, name, newSliceSink(dst, decode), true)
}

func addOption[T any](b *Builder, name string, sink typedSink[T], multiple bool) *OptionBuilder[T] {
	sink.setName(name)
	spec := &OptionSpec{Name: name, Multiple: multiple, Required: !multiple, Sink: sink}
	b.options = append(b.options, spec)
	return &OptionBuilder[T]{spec: spec, sink: sink, parent: b}
}

// OptionSink registers an option with a caller-supplied sink. Default and
// Validate operate on the raw text.
func (b *Builder) OptionSink(name string, sink ValueSink) *OptionBuilder[string] {
	return addOption[string](b, name, &rawSink{sink: sink}, false)
}

// StringOption registers a string option.
func (b *Builder) StringOption(name string, dst *string) *OptionBuilder[string] {
	return Option(b, name, String, dst)
}

// IntOption registers an int option.
func (b *Builder) IntOption(name string, dst *int) *OptionBuilder[int] {
	return Option(b, name, Int, dst)
}

// Int64Option registers an int64 option.
func (b *Builder) Int64Option(name string, dst *int64) *OptionBuilder[int64] {
	return Option(b, name, Int64, dst)
}

// Uint64Option registers a uint64 option.
func (b *Builder) Uint64Option(name string, dst *uint64) *OptionBuilder[uint64] {
	return Option(b, name, Uint64, dst)
}

// Float64Option registers a float64 option.
func (b *Builder) Float64Option(name string, dst *float64) *OptionBuilder[float64] {
	return Option(b, name, Float64, dst)
}

// BoolOption registers an option taking an explicit boolean value.
func (b *Builder) BoolOption(name string, dst *bool) *OptionBuilder[bool] {
	return Option(b, name, Bool, dst)
}

// DurationOption registers a time.Duration option.
func (b *Builder) DurationOption(name string, dst *time.Duration) *OptionBuilder[time.Duration] {
	return Option(b, name, Duration, dst)
}

// StringsOption registers a multiple string option.
func (b *Builder) StringsOption(name string, dst *[]string) *OptionBuilder[[]string] {
	return Options(b, name, String, dst)
}

// Short sets the short character.
func (o *OptionBuilder[T]) Short(c rune) *OptionBuilder[T] {
	o.spec.Switch.Short = c
	return o
}

// Long sets the long name; an empty name uses the option name.
func (o *OptionBuilder[T]) Long(name string) *OptionBuilder[T] {
	if name == "" {
		name = o.spec.Name
	}
	o.spec.Switch.Long = name
	return o
}

// Required marks the option as required.
func (o *OptionBuilder[T]) Required() *OptionBuilder[T] {
	o.spec.Required = true
	return o
}

// Optional marks the option as optional without giving it a default.
func (o *OptionBuilder[T]) Optional() *OptionBuilder[T] {
	o.spec.Required = false
	return o
}

// Multiple marks the option as collecting; only meaningful for OptionSink.
func (o *OptionBuilder[T]) Multiple() *OptionBuilder[T] {
	o.spec.Multiple = true
	o.spec.Required = false
	return o
}

// Default pre-seeds the value; the first occurrence overwrites it.
func (o *OptionBuilder[T]) Default(v T) *OptionBuilder[T] {
	o.sink.setDefault(v)
	o.spec.HasDefault = true
	o.spec.Required = false
	return o
}

// Env lists environment variables consulted, in order, for a default.
func (o *OptionBuilder[T]) Env(vars ...string) *OptionBuilder[T] {
	o.spec.Env = vars
	return o
}

// Validate runs fn on every decoded value; failures are reported as Other.
func (o *OptionBuilder[T]) Validate(fn func(T) error) *OptionBuilder[T] {
	o.sink.setValidate(fn)
	return o
}

// Back returns to the Builder.
func (o *OptionBuilder[T]) Back() *Builder { return o.parent }

// Positionals

// ArgBuilder configures a positional whose declared value type is T.
type ArgBuilder[T any] struct {
	spec   *PositionalSpec
	sink   typedSink[T]
	parent *Builder
}

// Arg registers a single positional. It is required unless given a Default
// or marked Optional.
func Arg[T any](b *Builder, name string, decode Decoder[T], dst *T) *ArgBuilder[T] {
	if dst == nil {
		b.nilTarget(name)
		dst = new(T)
	}
	return addArg[T](b, name, newValueSink(dst, decode), false)
}

// Args registers the trailing multiple positional.
func Args[T any](b *Builder, name string, decode Decoder[T], dst *[]T) *ArgBuilder[[]T] {
	if dst == nil {
		b.nilTarget(name)
		dst = new([]T)
	}
	return addArg[[]T](b, name, newSliceSink(dst, decode), true)
}

func addArg[T any](b *Builder, name string, sink typedSink[T], multiple bool) *ArgBuilder[T] {
	sink.setName(name)
	spec := &PositionalSpec{Name: name, Multiple: multiple, Required: !multiple, Sink: sink}
	b.positionals = append(b.positionals, spec)
	return &ArgBuilder[T]{spec: spec, sink: sink, parent: b}
}

// ArgSink registers a positional with a caller-supplied sink.
func (b *Builder) ArgSink(name string, sink ValueSink) *ArgBuilder[string] {
	return addArg[string](b, name, &rawSink{sink: sink}, false)
}

// StringArg registers a string positional.
func (b *Builder) StringArg(name string, dst *string) *ArgBuilder[string] {
	return Arg(b, name, String, dst)
}

// IntArg registers an int positional.
func (b *Builder) IntArg(name string, dst *int) *ArgBuilder[int] {
	return Arg(b, name, Int, dst)
}

// Int64Arg registers an int64 positional.
func (b *Builder) Int64Arg(name string, dst *int64) *ArgBuilder[int64] {
	return Arg(b, name, Int64, dst)
}

// Float64Arg registers a float64 positional.
func (b *Builder) Float64Arg(name string, dst *float64) *ArgBuilder[float64] {
	return Arg(b, name, Float64, dst)
}

// StringsArg registers the trailing multiple string positional.
func (b *Builder) StringsArg(name string, dst *[]string) *ArgBuilder[[]string] {
	return Args(b, name, String, dst)
}

// Required marks the positional as required. For a multiple positional this
// demands at least one value.
func (a *ArgBuilder[T]) Required() *ArgBuilder[T] {
	a.spec.Required = true
	return a
}

// Optional marks the positional as optional without giving it a default.
func (a *ArgBuilder[T]) Optional() *ArgBuilder[T] {
	a.spec.Required = false
	return a
}

// Multiple marks the positional as collecting; only meaningful for ArgSink.
func (a *ArgBuilder[T]) Multiple() *ArgBuilder[T] {
	a.spec.Multiple = true
	a.spec.Required = false
	return a
}

// Default pre-seeds the value.
func (a *ArgBuilder[T]) Default(v T) *ArgBuilder[T] {
	a.sink.setDefault(v)
	a.spec.HasDefault = true
	a.spec.Required = false
	return a
}

// Env lists environment variables consulted, in order, for a default.
func (a *ArgBuilder[T]) Env(vars ...string) *ArgBuilder[T] {
	a.spec.Env = vars
	return a
}

// Validate runs fn on every decoded value.
func (a *ArgBuilder[T]) Validate(fn func(T) error) *ArgBuilder[T] {
	a.sink.setValidate(fn)
	return a
}

// Back returns to the Builder.
func (a *ArgBuilder[T]) Back() *Builder { return a.parent }

// Build checks the construction invariants and freezes the schema.
func (b *Builder) Build() (*Schema, error) {
	errs := append([]error(nil), b.errs...)

	s := &Schema{
		program:      b.program,
		flags:        b.flags,
		options:      b.options,
		positionals:  b.positionals,
		shortFlags:   make(map[rune]*FlagSpec),
		longFlags:    make(map[string]*FlagSpec),
		shortOptions: make(map[rune]*OptionSpec),
		longOptions:  make(map[string]*OptionSpec),
		settings:     b.settings,
	}

	names := make(map[string]bool)
	shorts := make(map[rune]string)
	longs := make(map[string]string)
	index := 0

	checkName := func(name string) {
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("%w: empty spec name", ErrInvalidName))
		case names[name]:
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateName, name))
		}
		names[name] = true
	}
	checkSwitch := func(name string, sw Switch) {
		if sw.IsZero() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMissingSwitch, name))
			return
		}
		if sw.HasShort() {
			if err := validShort(sw.Short); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s", err, name))
			} else if owner, dup := shorts[sw.Short]; dup {
				errs = append(errs, fmt.Errorf("%w: -%c used by %q and %q", ErrDuplicateSwitch, sw.Short, owner, name))
			}
			shorts[sw.Short] = name
		}
		if sw.HasLong() {
			if err := validLong(sw.Long); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s", err, name))
			} else if owner, dup := longs[sw.Long]; dup {
				errs = append(errs, fmt.Errorf("%w: --%s used by %q and %q", ErrDuplicateSwitch, sw.Long, owner, name))
			}
			longs[sw.Long] = name
		}
	}

	for _, f := range b.flags {
		checkName(f.Name)
		checkSwitch(f.Name, f.Switch)
		if f.Switch.HasShort() {
			s.shortFlags[f.Switch.Short] = f
		}
		if f.Switch.HasLong() {
			s.longFlags[f.Switch.Long] = f
		}
		f.index = index
		index++
	}
	for _, o := range b.options {
		checkName(o.Name)
		checkSwitch(o.Name, o.Switch)
		if o.Switch.HasShort() {
			s.shortOptions[o.Switch.Short] = o
		}
		if o.Switch.HasLong() {
			s.longOptions[o.Switch.Long] = o
		}
		o.index = index
		index++
	}
	optionalSeen := ""
	for i, p := range b.positionals {
		checkName(p.Name)
		if p.Multiple && i != len(b.positionals)-1 {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMultipleNotLast, p.Name))
		}
		if p.Required && optionalSeen != "" {
			errs = append(errs, fmt.Errorf("%w: %q follows %q", ErrPositionalOrder, p.Name, optionalSeen))
		}
		if !p.Required || p.Multiple {
			optionalSeen = p.Name
		}
		p.index = index
		index++
	}

	if b.defaultsFS != nil && b.defaultsPath != "" {
		defaults, err := loadDefaultsFile(b.defaultsFS, b.defaultsPath)
		if err != nil {
			errs = append(errs, err)
		}
		s.settings.fileDefaults = defaults
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustBuild is Build for static schemas; it panics on construction errors.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *Builder) nilTarget(name string) {
	b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrNilTarget, name))
}

func validShort(c rune) error {
	if c == '-' || c == '=' || c == utf8.RuneError || unicode.IsSpace(c) || !unicode.IsPrint(c) {
		return fmt.Errorf("%w: short %q", ErrInvalidName, c)
	}
	return nil
}

func validLong(name string) error {
	if strings.HasPrefix(name, "-") || strings.ContainsRune(name, '=') ||
		strings.IndexFunc(name, unicode.IsSpace) >= 0 || !utf8.ValidString(name) {
		return fmt.Errorf("%w: long %q", ErrInvalidName, name)
	}
	return nil
}
