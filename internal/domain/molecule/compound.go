package molecule

import (
	"fmt"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// Family is the coarse compound family of a molecule.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyHydride
	FamilyPeroxide
	FamilyBinaryAcid
	FamilyBasicOxide
	FamilyAnhydride
	FamilyBinaryIonic
	FamilyHydroxide
	FamilyOxoacid
	FamilyTernarySalt
)

var familyKeys = map[Family]string{
	FamilyHydride:     "hydride",
	FamilyPeroxide:    "peroxide",
	FamilyBinaryAcid:  "binary_acid",
	FamilyBasicOxide:  "basic_oxide",
	FamilyAnhydride:   "anhydride",
	FamilyBinaryIonic: "binary_ionic",
	FamilyHydroxide:   "hydroxide",
	FamilyOxoacid:     "oxoacid",
	FamilyTernarySalt: "ternary_salt",
}

var familyNames = map[locale.Tag]map[Family]string{
	locale.English: {
		FamilyHydride:     "Hydride",
		FamilyPeroxide:    "Peroxide",
		FamilyBinaryAcid:  "Binary acid",
		FamilyBasicOxide:  "Basic oxide",
		FamilyAnhydride:   "Anhydride",
		FamilyBinaryIonic: "Binary ionic salt",
		FamilyHydroxide:   "Hydroxide",
		FamilyOxoacid:     "Oxoacid",
		FamilyTernarySalt: "Ternary salt",
	},
	locale.Italian: {
		FamilyHydride:     "Idruro",
		FamilyPeroxide:    "Perossido",
		FamilyBinaryAcid:  "Idracido",
		FamilyBasicOxide:  "Ossido basico",
		FamilyAnhydride:   "Anidride",
		FamilyBinaryIonic: "Sale binario",
		FamilyHydroxide:   "Idrossido",
		FamilyOxoacid:     "Ossiacido",
		FamilyTernarySalt: "Sale ternario",
	},
}

// Families returns the nine compound families.
func Families() []Family {
	return []Family{
		FamilyHydride, FamilyPeroxide, FamilyBinaryAcid, FamilyBasicOxide, FamilyAnhydride,
		FamilyBinaryIonic, FamilyHydroxide, FamilyOxoacid, FamilyTernarySalt,
	}
}

// String returns the machine key of the family.
func (f Family) String() string {
	if k, ok := familyKeys[f]; ok {
		return k
	}
	return "unknown"
}

// DisplayName returns the family name in the given language.
func (f Family) DisplayName(tag locale.Tag) string {
	if n, ok := familyNames[tag][f]; ok {
		return n
	}
	if n, ok := familyNames[locale.English][f]; ok {
		return n
	}
	return f.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// Predicates over the full atom sequence
// ─────────────────────────────────────────────────────────────────────────────

func (m *Molecule) anyAtom(pred func(atom.Atom) bool) bool {
	for _, a := range m.atoms {
		if pred(a.Atom) {
			return true
		}
	}
	return false
}

// ContainsMetal reports whether any atom is a metal.
func (m *Molecule) ContainsMetal() bool { return m.anyAtom(atom.Atom.IsMetal) }

// ContainsNonMetal reports whether any atom is a nonmetal, halogen or noble
// gas.
func (m *Molecule) ContainsNonMetal() bool {
	return m.anyAtom(func(a atom.Atom) bool { return !a.IsMetal() })
}

// ContainsHydrogen reports whether any atom is hydrogen.
func (m *Molecule) ContainsHydrogen() bool { return m.anyAtom(atom.Atom.IsHydrogen) }

// ContainsOxygen reports whether any atom is oxygen.
func (m *Molecule) ContainsOxygen() bool { return m.anyAtom(atom.Atom.IsOxygen) }

// ContainsWater reports whether both oxygen and hydrogen are present.
func (m *Molecule) ContainsWater() bool { return m.ContainsOxygen() && m.ContainsHydrogen() }

// OxygenCount returns the number of oxygen atoms.
func (m *Molecule) OxygenCount() int { return m.formula.Count(atom.SymbolOxygen) }

// IsPeroxide reports exactly two oxygen atoms.
func (m *Molecule) IsPeroxide() bool { return m.OxygenCount() == 2 }

// IsSimple reports a central atom surrounded only by atoms of its own element
// or hydrogen.
func (m *Molecule) IsSimple() bool {
	for _, a := range m.atoms {
		if a.Symbol != m.central.Symbol && !a.IsHydrogen() {
			return false
		}
	}
	return true
}

// ElementCount returns the number of distinct elements as seen from the
// central atom: the central element, hydrogen when present in a non-simple
// molecule, then every new bonded element. The value is memoized.
func (m *Molecule) ElementCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elementCountLocked()
}

func (m *Molecule) elementCountLocked() int {
	if m.elementCount > 0 {
		return m.elementCount
	}
	seen := map[string]bool{m.central.Symbol: true}
	if m.ContainsHydrogen() && !m.IsSimple() {
		seen[atom.SymbolHydrogen] = true
	}
	for _, b := range m.bonded {
		seen[b.Symbol] = true
	}
	m.elementCount = len(seen)
	return m.elementCount
}

// Family classifies the molecule into a compound family. The first successful
// result is cached and recorded in the trace.
func (m *Molecule) Family() (Family, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.family != FamilyUnknown {
		return m.family, nil
	}
	n := m.elementCountLocked()
	f := m.classify(n)
	if f == FamilyUnknown {
		return FamilyUnknown, errors.IllegalMolecule(fmt.Sprintf("%s (%d distinct elements)", m.label(), n))
	}
	m.family = f
	m.record(TraceEvent{Kind: TraceCompoundFamily, Count: n, Family: f})
	return f, nil
}

func (m *Molecule) classify(elements int) Family {
	metal := m.ContainsMetal()
	nonMetal := m.ContainsNonMetal()
	hydrogen := m.ContainsHydrogen()
	oxygen := m.ContainsOxygen()

	switch elements {
	case 2:
		switch {
		case metal && hydrogen:
			return FamilyHydride
		case m.IsPeroxide() && (metal || hydrogen):
			return FamilyPeroxide
		case nonMetal && hydrogen:
			return FamilyBinaryAcid
		case metal && oxygen:
			return FamilyBasicOxide
		case nonMetal && oxygen:
			return FamilyAnhydride
		case metal && nonMetal:
			return FamilyBinaryIonic
		}
	case 3, 4:
		switch {
		case m.ContainsWater() && metal:
			return FamilyHydroxide
		case m.ContainsWater() && nonMetal:
			return FamilyOxoacid
		case nonMetal && metal && oxygen:
			return FamilyTernarySalt
		}
	}
	return FamilyUnknown
}

//Personal.AI order the ending
