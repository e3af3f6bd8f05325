package clap

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-clap/internal/fuzzy"
)

// suggestDistance is the maximum edit distance for "did you mean" hints.
const suggestDistance = 2

// Parser runs one schema against token streams. The schema's sinks write
// into caller-owned targets, so parses over the same Schema are serialized:
// concurrent callers wait for each other. Independent concurrent parsing
// needs separate schemas bound to separate targets.
type Parser struct {
	schema *Schema
	tokens Tokens
	slots  Slots

	// positional counts the positional tokens consumed so far.
	positional int
	// positionalOnly is set by a bare "--".
	positionalOnly bool
}

// NewParser creates a parser for s.
func NewParser(s *Schema) *Parser {
	return &Parser{schema: s}
}

// Parse consumes tokens, assigning every recognized argument through its
// sink. The first token is the program name and is discarded. The first
// error aborts the parse.
func (p *Parser) Parse(tokens Tokens) error {
	p.schema.mu.Lock()
	defer p.schema.mu.Unlock()

	p.reset(tokens)

	if err := p.seed(); err != nil {
		return err
	}

	// program name
	if _, ok := p.tokens.Next(); !ok {
		return p.finalize()
	}

	for {
		tok, ok := p.tokens.Next()
		if !ok {
			break
		}
		if err := p.parseToken(tok); err != nil {
			return err
		}
	}

	return p.finalize()
}

// Slots returns the per-spec state of the last parse.
func (p *Parser) Slots() Slots { return p.slots }

func (p *Parser) reset(tokens Tokens) {
	p.tokens = tokens
	p.positional = 0
	p.positionalOnly = false

	s := p.schema
	p.slots = make(Slots, s.slotCount())
	for _, f := range s.flags {
		p.slots[f.index] = Slot{Name: f.Name, Type: SpecFlag}
	}
	for _, o := range s.options {
		p.slots[o.index] = Slot{Name: o.Name, Type: SpecOption}
	}
	for _, a := range s.positionals {
		p.slots[a.index] = Slot{Name: a.Name, Type: SpecPositional}
	}
}

// seed puts defaults in place before any token is read: builder defaults,
// overridden by the defaults file, overridden by the environment. Built-in
// flags start from false or zero.
func (p *Parser) seed() error {
	s := p.schema
	for _, f := range s.flags {
		if r, ok := f.Sink.(flagResetter); ok {
			r.reset()
		}
	}
	for _, o := range s.options {
		if err := p.seedSink(o.index, o.Name, o.Sink, s.fallback(o.Name, o.Env, o.Multiple)); err != nil {
			return err
		}
	}
	for _, a := range s.positionals {
		if err := p.seedSink(a.index, a.Name, a.Sink, s.fallback(a.Name, a.Env, a.Multiple)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) seedSink(index int, name string, sink ValueSink, fallback []string) error {
	seeder, ok := sink.(Seeder)
	if !ok {
		return nil
	}
	seeded, err := seeder.Seed(fallback)
	if err != nil {
		return asParseError(name, err)
	}
	p.slots[index].Defaulted = seeded
	if seeded {
		p.debug("seeded %s from defaults", name)
	}
	return nil
}

func (p *Parser) parseToken(tok string) error {
	if !utf8.ValidString(tok) {
		return invalidUtf8()
	}

	switch {
	case p.positionalOnly:
		return p.parsePositional(tok)
	case tok == "--":
		p.debug("%q: positional-only from here", tok)
		p.positionalOnly = true
		return nil
	case strings.HasPrefix(tok, "--"):
		return p.parseLong(tok[2:])
	case len(tok) > 1 && tok[0] == '-':
		return p.parseShort(tok[1:])
	default:
		return p.parsePositional(tok)
	}
}

// parseLong handles "--name" and "--name=value".
func (p *Parser) parseLong(body string) error {
	name, value, hasValue := strings.Cut(body, "=")
	if name == "" {
		return unknownSwitch(longSwitch(body))
	}

	if f, ok := p.schema.FlagByLong(name); ok {
		p.debug("--%s: flag %s", name, f.Name)
		if hasValue {
			return unexpectedValue(f.Name, longSwitch(name))
		}
		return p.assignFlag(f)
	}

	if o, ok := p.schema.OptionByLong(name); ok {
		p.debug("--%s: option %s", name, o.Name)
		if !hasValue {
			v, err := p.nextValue(o, longSwitch(name))
			if err != nil {
				return err
			}
			value = v
		}
		return p.assignValue(o.index, o.Name, o.Sink, value)
	}

	err := unknownSwitch(longSwitch(name))
	if p.schema.settings.suggest {
		if hint := fuzzy.FindBestFlag(name, p.schema.longNames(), suggestDistance); hint != "" {
			err.WithSuggestion("--" + hint)
		}
	}
	return err
}

// parseShort handles "-c", "-cVALUE", "-c=VALUE" and flag clusters such as
// "-abc" or "-abo VALUE".
func (p *Parser) parseShort(body string) error {
	c, size := utf8.DecodeRuneInString(body)
	rest := body[size:]

	f, ok := p.schema.FlagByShort(c)
	if !ok {
		if o, ok := p.schema.OptionByShort(c); ok {
			p.debug("-%c: option %s", c, o.Name)
			return p.shortValue(o, c, rest)
		}
		return unknownSwitch(shortSwitch(c))
	}
	for {
		p.debug("-%c: flag %s", c, f.Name)
		if strings.HasPrefix(rest, "=") {
			return unexpectedValue(f.Name, shortSwitch(c))
		}
		if err := p.assignFlag(f); err != nil {
			return err
		}
		if rest == "" {
			return nil
		}

		c, size = utf8.DecodeRuneInString(rest)
		rest = rest[size:]
		if next, ok := p.schema.FlagByShort(c); ok {
			f = next
			continue
		}
		if o, ok := p.schema.OptionByShort(c); ok {
			p.debug("-%c: option %s ends cluster", c, o.Name)
			return p.shortValue(o, c, rest)
		}
		return unknownSwitch(shortSwitch(c))
	}
}

// shortValue takes an option value from what follows the option character:
// nothing means the next token, a leading '=' is stripped.
func (p *Parser) shortValue(o *OptionSpec, c rune, rest string) error {
	switch {
	case rest == "":
		v, err := p.nextValue(o, shortSwitch(c))
		if err != nil {
			return err
		}
		rest = v
	case rest[0] == '=':
		rest = rest[1:]
	}
	return p.assignValue(o.index, o.Name, o.Sink, rest)
}

func (p *Parser) parsePositional(tok string) error {
	ps := p.schema.positionals
	var spec *PositionalSpec
	switch {
	case p.positional < len(ps):
		spec = ps[p.positional]
	case len(ps) > 0 && ps[len(ps)-1].Multiple:
		spec = ps[len(ps)-1]
	default:
		return tooManyPositional(tok)
	}

	p.debug("%q: positional %s", tok, spec.Name)
	if err := p.assignValue(spec.index, spec.Name, spec.Sink, tok); err != nil {
		return err
	}
	p.positional++
	return nil
}

// nextValue consumes the following token verbatim as the value of o, which
// was typed as sw.
func (p *Parser) nextValue(o *OptionSpec, sw Switch) (string, error) {
	tok, ok := p.tokens.Next()
	if !ok {
		return "", missingValue(o.Name, sw)
	}
	if !utf8.ValidString(tok) {
		return "", invalidUtf8()
	}
	return tok, nil
}

func (p *Parser) assignFlag(f *FlagSpec) error {
	if err := f.Sink.Assign(); err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			return err
		}
		return &Error{Kind: KindOther, Message: err.Error(), Name: f.Name, Switch: f.Switch, Cause: err}
	}
	p.mark(f.index)
	return nil
}

func (p *Parser) assignValue(index int, name string, sink ValueSink, raw string) error {
	if err := sink.Assign(raw); err != nil {
		return asParseError(name, err)
	}
	p.mark(index)
	return nil
}

func (p *Parser) mark(index int) {
	p.slots[index].Assigned = true
	p.slots[index].Occurrences++
}

// finalize reports the first required option, then the first required
// positional, that ended the parse without a value.
func (p *Parser) finalize() error {
	for _, o := range p.schema.options {
		if o.Required && p.missing(o.index) {
			return missingRequiredArgument(o.Name)
		}
	}
	for _, a := range p.schema.positionals {
		if a.Required && p.missing(a.index) {
			return missingRequiredArgument(a.Name)
		}
	}
	return nil
}

func (p *Parser) missing(index int) bool {
	slot := p.slots[index]
	return !slot.Assigned && !slot.Defaulted
}

func (p *Parser) debug(format string, args ...any) {
	p.schema.settings.logger.Debug(format, args...)
}

// asParseError passes *Error values through and wraps anything else as a
// conversion failure of the named spec.
func asParseError(name string, err error) error {
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return parseFailed(name, err)
}
