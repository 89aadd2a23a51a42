// Package formula parses compact comma-separated formulas such as "C,O2" or
// "H2,S,O4" into an ordered sequence of catalog atoms.
//
// Grammar:
//
//	formula = token { "," token }
//	token   = symbol [ count ] | ""
//	symbol  = letter { letter }
//	count   = digit { digit }        (positive)
//
// Empty tokens are skipped. Whitespace anywhere inside a token, a zero or
// non-numeric count, or a missing symbol make the whole formula illegal.
package formula

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// DefaultMaxAtoms caps the number of atoms one formula may expand to.
const DefaultMaxAtoms = 64

// LookupFunc resolves an element symbol to its catalog record.
type LookupFunc func(symbol string) (atom.Atom, error)

// Parser turns formula text into a Formula. The zero value is not usable;
// construct with NewParser.
type Parser struct {
	lookup   LookupFunc
	maxAtoms int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxAtoms overrides DefaultMaxAtoms. Non-positive values are ignored.
func WithMaxAtoms(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxAtoms = n
		}
	}
}

// WithLookup replaces the catalog lookup, mainly for tests.
func WithLookup(fn LookupFunc) Option {
	return func(p *Parser) {
		if fn != nil {
			p.lookup = fn
		}
	}
}

// NewParser creates a Parser backed by the atom catalog.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		lookup:   atom.Lookup,
		maxAtoms: DefaultMaxAtoms,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses text with the default parser.
func Parse(text string) (*Formula, error) {
	return defaultParser.Parse(text)
}

// MaxAtoms returns the configured atom cap.
func (p *Parser) MaxAtoms() int { return p.maxAtoms }

// Parse parses text. Failures are Illegal Formula errors carrying text, or
// Unknown Element errors carrying the unresolved symbol.
func (p *Parser) Parse(text string) (*Formula, error) {
	f := &Formula{text: text}

	for idx, tok := range strings.Split(text, ",") {
		if tok == "" {
			continue
		}
		symbol, count, ok := splitToken(tok)
		if !ok {
			return nil, errors.IllegalFormula(text)
		}
		a, err := p.lookup(symbol)
		if err != nil {
			return nil, err
		}
		if count > p.maxAtoms-len(f.atoms) {
			return nil, errors.IllegalFormula(text)
		}
		f.groups = append(f.groups, Group{Atom: a, Count: count, Token: idx})
		for i := 0; i < count; i++ {
			f.atoms = append(f.atoms, Occurrence{Atom: a, Token: idx})
		}
	}
	return f, nil
}

// splitToken separates the leading letter run from the count suffix.
func splitToken(tok string) (symbol string, count int, ok bool) {
	if strings.IndexFunc(tok, unicode.IsSpace) >= 0 {
		return "", 0, false
	}
	i := 0
	for i < len(tok) && isASCIILetter(tok[i]) {
		i++
	}
	symbol, digits := tok[:i], tok[i:]
	if symbol == "" {
		return "", 0, false
	}
	if digits == "" {
		return symbol, 1, true
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return "", 0, false
	}
	return symbol, n, true
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

//Personal.AI order the ending
