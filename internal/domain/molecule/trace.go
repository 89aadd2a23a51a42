package molecule

import (
	"fmt"
	"strings"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/internal/domain/locale"
)

// TraceKind identifies the decision a TraceEvent records.
type TraceKind int

const (
	TraceCentralAtom TraceKind = iota + 1
	TraceLonePairs
	TraceHydrogenMolecule
	TraceBondedAtom
	TraceHydrogenFallback
	TraceShape
	TraceCompoundFamily
)

var traceKindKeys = map[TraceKind]string{
	TraceCentralAtom:      "central_atom",
	TraceLonePairs:        "lone_pairs",
	TraceHydrogenMolecule: "hydrogen_molecule",
	TraceBondedAtom:       "bonded_atom",
	TraceHydrogenFallback: "hydrogen_fallback",
	TraceShape:            "shape",
	TraceCompoundFamily:   "compound_family",
}

func (k TraceKind) String() string {
	if s, ok := traceKindKeys[k]; ok {
		return s
	}
	return "unknown"
}

// TraceEvent is one recorded decision. Only the fields relevant to Kind are
// set: Symbol for atom events, Count for lone pairs, fallback size and element
// count, Shape and Family for the classification events.
type TraceEvent struct {
	Kind   TraceKind
	Symbol string
	Count  int
	Shape  Shape
	Family Family
}

// Trace is the append-only decision log of a Molecule.
type Trace []TraceEvent

var traceFormats = map[locale.Tag]map[TraceKind]string{
	locale.English: {
		TraceCentralAtom:      "Central atom: %s",
		TraceLonePairs:        "Lone pairs on the central atom: %d",
		TraceHydrogenMolecule: "Diatomic hydrogen: %s bonded to the central hydrogen",
		TraceBondedAtom:       "Bonded atom: %s",
		TraceHydrogenFallback: "No other atom bonded, added %d hydrogen atoms",
		TraceShape:            "Shape: %s",
		TraceCompoundFamily:   "%d distinct elements, compound family: %s",
	},
	locale.Italian: {
		TraceCentralAtom:      "Atomo centrale: %s",
		TraceLonePairs:        "Doppietti sull'atomo centrale: %d",
		TraceHydrogenMolecule: "Idrogeno biatomico: %s legato all'idrogeno centrale",
		TraceBondedAtom:       "Atomo legato: %s",
		TraceHydrogenFallback: "Nessun altro atomo legato, aggiunti %d atomi di idrogeno",
		TraceShape:            "Forma: %s",
		TraceCompoundFamily:   "%d elementi distinti, famiglia del composto: %s",
	},
}

// Line renders a single event in the given language.
func (e TraceEvent) Line(tag locale.Tag) string {
	formats, ok := traceFormats[tag]
	if !ok {
		formats = traceFormats[locale.English]
	}
	f := formats[e.Kind]
	switch e.Kind {
	case TraceCentralAtom, TraceHydrogenMolecule, TraceBondedAtom:
		return fmt.Sprintf(f, atomLabel(e.Symbol, tag))
	case TraceLonePairs, TraceHydrogenFallback:
		return fmt.Sprintf(f, e.Count)
	case TraceShape:
		return fmt.Sprintf(f, e.Shape.DisplayName(tag))
	case TraceCompoundFamily:
		return fmt.Sprintf(f, e.Count, e.Family.DisplayName(tag))
	}
	return e.Kind.String()
}

func atomLabel(symbol string, tag locale.Tag) string {
	a, err := atom.Lookup(symbol)
	if err != nil {
		return symbol
	}
	return fmt.Sprintf("%s(%s)", a.DisplayName(tag), a.Symbol)
}

// Lines renders every event in order.
func (t Trace) Lines(tag locale.Tag) []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Line(tag)
	}
	return out
}

// Render joins Lines with newlines.
func (t Trace) Render(tag locale.Tag) string {
	return strings.Join(t.Lines(tag), "\n")
}

// Kinds returns the kind of every event in order.
func (t Trace) Kinds() []TraceKind {
	out := make([]TraceKind, len(t))
	for i, e := range t {
		out[i] = e.Kind
	}
	return out
}

//Personal.AI order the ending
