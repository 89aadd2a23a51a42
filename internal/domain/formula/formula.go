package formula

import (
	"strconv"
	"strings"

	"github.com/turtacn/chemsolver/internal/domain/atom"
)

// Occurrence is one atom of a parsed formula.
type Occurrence struct {
	atom.Atom
	// Token is the position of the comma-separated token the atom was read
	// from. Atoms replicated by a count share the same Token, which is the
	// identity the molecule builder uses to exclude the central atom.
	Token int
}

// SameInstance reports whether o and other were read from the same token.
func (o Occurrence) SameInstance(other Occurrence) bool {
	return o.Token == other.Token
}

// Group is one parsed token: an atom and its count.
type Group struct {
	Atom  atom.Atom
	Count int
	Token int
}

// Formula is the immutable result of parsing. Accessors return copies.
type Formula struct {
	text   string
	atoms  []Occurrence
	groups []Group
}

// Text returns the formula exactly as it was given to the parser.
func (f *Formula) Text() string { return f.text }

// Len returns the number of atoms after replication.
func (f *Formula) Len() int { return len(f.atoms) }

// IsEmpty reports whether the formula holds no atoms.
func (f *Formula) IsEmpty() bool { return len(f.atoms) == 0 }

// At returns the i-th atom.
func (f *Formula) At(i int) Occurrence { return f.atoms[i] }

// Atoms returns the replicated atom sequence in token order, then
// replication order.
func (f *Formula) Atoms() []Occurrence {
	out := make([]Occurrence, len(f.atoms))
	copy(out, f.atoms)
	return out
}

// Groups returns the non-empty tokens in input order.
func (f *Formula) Groups() []Group {
	out := make([]Group, len(f.groups))
	copy(out, f.groups)
	return out
}

// Symbols returns the symbol of every atom in sequence order.
func (f *Formula) Symbols() []string {
	out := make([]string, len(f.atoms))
	for i, a := range f.atoms {
		out[i] = a.Symbol
	}
	return out
}

// Count returns how many atoms of symbol the formula contains.
func (f *Formula) Count(symbol string) int {
	n := 0
	for _, a := range f.atoms {
		if a.Symbol == symbol {
			n++
		}
	}
	return n
}

// Mass returns the summed atomic mass of the formula.
func (f *Formula) Mass() float64 {
	var m float64
	for _, a := range f.atoms {
		m += a.Mass
	}
	return m
}

// Canonical renders the formula without empty tokens and with counts of one
// omitted, e.g. ",C1,,O2" becomes "C,O2". Two texts with the same canonical
// form parse to equivalent formulas.
func (f *Formula) Canonical() string {
	parts := make([]string, len(f.groups))
	for i, g := range f.groups {
		if g.Count == 1 {
			parts[i] = g.Atom.Symbol
		} else {
			parts[i] = g.Atom.Symbol + strconv.Itoa(g.Count)
		}
	}
	return strings.Join(parts, ",")
}

//Personal.AI order the ending
