// Package molecule builds a Molecule from a parsed formula and classifies it.
//
// Building picks the central atom (the least electronegative non-hydrogen
// atom, or the first hydrogen of diatomic hydrogen), reads its lone pairs and
// partitions the remaining atoms into bonded and hydrogen sets. Shape and
// compound family are then derived on demand and cached on the Molecule.
// Every decision is appended to the Molecule's Trace.
package molecule

import (
	"sync"

	"github.com/turtacn/chemsolver/internal/domain/formula"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// Molecule is built once from a Formula. After construction only the cached
// shape, family and element count change, each exactly once.
type Molecule struct {
	formula   *formula.Formula
	atoms     []formula.Occurrence
	central   formula.Occurrence
	lonePairs int
	bonded    []formula.Occurrence
	hydrogens []formula.Occurrence

	mu           sync.Mutex
	trace        Trace
	shape        Shape
	family       Family
	elementCount int
}

// New builds a Molecule from f. It fails with Unusable Atom when f contains a
// flagged atom and with Illegal Molecule when no central atom exists.
func New(f *formula.Formula) (*Molecule, error) {
	if f == nil {
		return nil, errors.InvalidParam("formula is nil")
	}
	m := &Molecule{
		formula: f,
		atoms:   f.Atoms(),
	}
	for _, a := range m.atoms {
		if err := a.CheckUsable(); err != nil {
			return nil, err
		}
	}
	if err := m.findCentralAtom(); err != nil {
		return nil, err
	}
	m.lonePairs = m.central.Doublets
	m.record(TraceEvent{Kind: TraceLonePairs, Count: m.lonePairs})
	m.partition()
	return m, nil
}

// Build parses text with the default parser and builds the Molecule.
func Build(text string) (*Molecule, error) {
	f, err := formula.Parse(text)
	if err != nil {
		return nil, err
	}
	return New(f)
}

// isHydrogenMolecule reports the diatomic hydrogen special case.
func (m *Molecule) isHydrogenMolecule() bool {
	return len(m.atoms) == 2 && m.atoms[0].IsHydrogen() && m.atoms[1].IsHydrogen()
}

// findCentralAtom selects the least electronegative non-hydrogen atom. The
// first such atom seeds the minimum and ties keep the earlier atom.
func (m *Molecule) findCentralAtom() error {
	if m.isHydrogenMolecule() {
		m.central = m.atoms[0]
		m.record(TraceEvent{Kind: TraceCentralAtom, Symbol: m.central.Symbol})
		return nil
	}

	found := false
	for _, a := range m.atoms {
		if a.IsHydrogen() {
			continue
		}
		if !found || a.Electronegativity < m.central.Electronegativity {
			m.central = a
			found = true
		}
	}
	if !found {
		return errors.IllegalMolecule(m.label())
	}
	m.record(TraceEvent{Kind: TraceCentralAtom, Symbol: m.central.Symbol})
	return nil
}

// partition fills the bonded and hydrogen sets. Atoms read from the same
// token as the central atom are the central atom and are skipped. When no
// non-hydrogen atom is bonded, every hydrogen moves to the bonded set.
func (m *Molecule) partition() {
	if m.isHydrogenMolecule() {
		m.bonded = []formula.Occurrence{m.atoms[1]}
		m.record(TraceEvent{Kind: TraceHydrogenMolecule, Symbol: m.atoms[1].Symbol})
		return
	}

	for _, a := range m.atoms {
		switch {
		case a.IsHydrogen():
			m.hydrogens = append(m.hydrogens, a)
		case a.SameInstance(m.central):
		default:
			m.bonded = append(m.bonded, a)
			m.record(TraceEvent{Kind: TraceBondedAtom, Symbol: a.Symbol})
		}
	}

	if len(m.bonded) == 0 && len(m.hydrogens) > 0 {
		m.bonded = m.hydrogens
		m.hydrogens = nil
		m.record(TraceEvent{Kind: TraceHydrogenFallback, Count: len(m.bonded)})
	}
}

func (m *Molecule) record(e TraceEvent) {
	m.trace = append(m.trace, e)
}

// label names the molecule in error details.
func (m *Molecule) label() string {
	if t := m.formula.Canonical(); t != "" {
		return t
	}
	return "(empty)"
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// Formula returns the formula the molecule was built from.
func (m *Molecule) Formula() *formula.Formula { return m.formula }

// Atoms returns the full atom sequence.
func (m *Molecule) Atoms() []formula.Occurrence { return cloneAtoms(m.atoms) }

// Central returns the central atom.
func (m *Molecule) Central() formula.Occurrence { return m.central }

// LonePairs returns the number of lone pairs on the central atom.
func (m *Molecule) LonePairs() int { return m.lonePairs }

// Bonded returns the atoms bonded to the central atom in encounter order.
func (m *Molecule) Bonded() []formula.Occurrence { return cloneAtoms(m.bonded) }

// Hydrogens returns the hydrogen atoms that were not promoted to bonded.
func (m *Molecule) Hydrogens() []formula.Occurrence { return cloneAtoms(m.hydrogens) }

// Trace returns a snapshot of the decision log.
func (m *Molecule) Trace() Trace {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(Trace, len(m.trace))
	copy(out, m.trace)
	return out
}

func cloneAtoms(in []formula.Occurrence) []formula.Occurrence {
	if in == nil {
		return nil
	}
	out := make([]formula.Occurrence, len(in))
	copy(out, in)
	return out
}

//Personal.AI order the ending
