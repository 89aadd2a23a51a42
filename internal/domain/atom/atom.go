// Package atom provides the static element records chemsolver classifies
// formulas with. Records are immutable values; two atoms with the same symbol
// are interchangeable everywhere in the domain.
package atom

import (
	"fmt"
	"strings"

	"github.com/turtacn/chemsolver/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// ElementClass
// ─────────────────────────────────────────────────────────────────────────────

// ElementClass is the periodic-table family an element belongs to.
type ElementClass int

const (
	ClassUnknown ElementClass = iota
	ClassAlkalineMetal
	ClassAlkalineEarthMetal
	ClassTransitionMetal
	ClassNonmetal
	ClassSemimetal
	ClassPBlockMetal
	ClassHalogen
	ClassNobleGas
	ClassLanthanide
	ClassActinide
)

var classKeys = map[ElementClass]string{
	ClassAlkalineMetal:      "alkaline_metal",
	ClassAlkalineEarthMetal: "alkaline_earth_metal",
	ClassTransitionMetal:    "transition_metal",
	ClassNonmetal:           "nonmetal",
	ClassSemimetal:          "semimetal",
	ClassPBlockMetal:        "p_block_metal",
	ClassHalogen:            "halogen",
	ClassNobleGas:           "noble_gas",
	ClassLanthanide:         "lanthanide",
	ClassActinide:           "actinide",
}

// ElementClasses returns every known class in declaration order.
func ElementClasses() []ElementClass {
	return []ElementClass{
		ClassAlkalineMetal, ClassAlkalineEarthMetal, ClassTransitionMetal,
		ClassNonmetal, ClassSemimetal, ClassPBlockMetal, ClassHalogen,
		ClassNobleGas, ClassLanthanide, ClassActinide,
	}
}

// String returns the stable machine key of the class (e.g. "noble_gas").
func (c ElementClass) String() string {
	if k, ok := classKeys[c]; ok {
		return k
	}
	return "unknown"
}

// IsMetal is true unless the class is halogen, nonmetal or noble gas.
func (c ElementClass) IsMetal() bool {
	switch c {
	case ClassHalogen, ClassNonmetal, ClassNobleGas, ClassUnknown:
		return false
	}
	return true
}

// ParseElementClass resolves a machine key back to its class. Matching is
// case-insensitive and accepts '-' in place of '_'.
func ParseElementClass(s string) (ElementClass, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for c, k := range classKeys {
		if k == key {
			return c, nil
		}
	}
	return ClassUnknown, errors.InvalidParam("unknown element class").WithDetail(s)
}

// ─────────────────────────────────────────────────────────────────────────────
// Atom
// ─────────────────────────────────────────────────────────────────────────────

// Atom is the catalog record for one element.
type Atom struct {
	Symbol       string
	Name         string
	AtomicNumber int
	// Mass is the standard atomic weight in u.
	Mass float64
	// Electronegativity on the Pauling scale. Zero for elements without a
	// Pauling value.
	Electronegativity float64
	// BondingElectrons is the number of valence electrons available for bonds.
	BondingElectrons int
	// Doublets is the number of lone pairs the element holds when it is the
	// central atom of a molecule.
	Doublets int
	// IonizationEnergy is the first ionization energy in kJ/mol.
	IonizationEnergy int
	Class            ElementClass
	// Unusable marks elements excluded from bonding and molecule building.
	Unusable bool
}

// IsMetal reports whether the atom's class is metallic.
func (a Atom) IsMetal() bool { return a.Class.IsMetal() }

// IsHydrogen reports whether the atom is hydrogen.
func (a Atom) IsHydrogen() bool { return a.Symbol == SymbolHydrogen }

// IsOxygen reports whether the atom is oxygen.
func (a Atom) IsOxygen() bool { return a.Symbol == SymbolOxygen }

// CheckUsable returns an Unusable Atom error for flagged atoms and nil
// otherwise.
func (a Atom) CheckUsable() error {
	if a.Unusable {
		return errors.UnusableAtom(a.Name, a.Symbol)
	}
	return nil
}

// String renders the atom as Name(Symbol), e.g. "Carbon(C)".
func (a Atom) String() string {
	return fmt.Sprintf("%s(%s)", a.Name, a.Symbol)
}

//Personal.AI order the ending
