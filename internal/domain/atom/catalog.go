package atom

import (
	"sort"
	"strings"

	"github.com/turtacn/chemsolver/pkg/errors"
)

// Well-known symbols referenced by the molecule rules.
const (
	SymbolHydrogen = "H"
	SymbolOxygen   = "O"
)

// elements is the preloaded table. Doublets follow the lone-pair count of the
// element's simplest hydride; elements without a Pauling electronegativity
// carry 0 and are flagged unusable.
var elements = []Atom{
	{Symbol: "H", Name: "Hydrogen", AtomicNumber: 1, Mass: 1.008, Electronegativity: 2.20, BondingElectrons: 1, Doublets: 0, IonizationEnergy: 1312, Class: ClassNonmetal},
	{Symbol: "He", Name: "Helium", AtomicNumber: 2, Mass: 4.0026, Electronegativity: 0, BondingElectrons: 0, Doublets: 1, IonizationEnergy: 2372, Class: ClassNobleGas, Unusable: true},
	{Symbol: "Li", Name: "Lithium", AtomicNumber: 3, Mass: 6.94, Electronegativity: 0.98, BondingElectrons: 1, Doublets: 0, IonizationEnergy: 520, Class: ClassAlkalineMetal},
	{Symbol: "Be", Name: "Beryllium", AtomicNumber: 4, Mass: 9.0122, Electronegativity: 1.57, BondingElectrons: 2, Doublets: 0, IonizationEnergy: 900, Class: ClassAlkalineEarthMetal},
	{Symbol: "B", Name: "Boron", AtomicNumber: 5, Mass: 10.81, Electronegativity: 2.04, BondingElectrons: 3, Doublets: 0, IonizationEnergy: 801, Class: ClassSemimetal},
	{Symbol: "C", Name: "Carbon", AtomicNumber: 6, Mass: 12.011, Electronegativity: 2.55, BondingElectrons: 4, Doublets: 0, IonizationEnergy: 1086, Class: ClassNonmetal},
	{Symbol: "N", Name: "Nitrogen", AtomicNumber: 7, Mass: 14.007, Electronegativity: 3.04, BondingElectrons: 3, Doublets: 1, IonizationEnergy: 1402, Class: ClassNonmetal},
	{Symbol: "O", Name: "Oxygen", AtomicNumber: 8, Mass: 15.999, Electronegativity: 3.44, BondingElectrons: 2, Doublets: 2, IonizationEnergy: 1314, Class: ClassNonmetal},
	{Symbol: "F", Name: "Fluorine", AtomicNumber: 9, Mass: 18.998, Electronegativity: 3.98, BondingElectrons: 1, Doublets: 3, IonizationEnergy: 1681, Class: ClassHalogen},
	{Symbol: "Ne", Name: "Neon", AtomicNumber: 10, Mass: 20.180, Electronegativity: 0, BondingElectrons: 0, Doublets: 4, IonizationEnergy: 2081, Class: ClassNobleGas, Unusable: true},
	{Symbol: "Na", Name: "Sodium", AtomicNumber: 11, Mass: 22.990, Electronegativity: 0.93, BondingElectrons: 1, Doublets: 0, IonizationEnergy: 496, Class: ClassAlkalineMetal},
	{Symbol: "Mg", Name: "Magnesium", AtomicNumber: 12, Mass: 24.305, Electronegativity: 1.31, BondingElectrons: 2, Doublets: 0, IonizationEnergy: 738, Class: ClassAlkalineEarthMetal},
	{Symbol: "Al", Name: "Aluminium", AtomicNumber: 13, Mass: 26.982, Electronegativity: 1.61, BondingElectrons: 3, Doublets: 0, IonizationEnergy: 578, Class: ClassPBlockMetal},
	{Symbol: "Si", Name: "Silicon", AtomicNumber: 14, Mass: 28.085, Electronegativity: 1.90, BondingElectrons: 4, Doublets: 0, IonizationEnergy: 787, Class: ClassSemimetal},
	{Symbol: "P", Name: "Phosphorus", AtomicNumber: 15, Mass: 30.974, Electronegativity: 2.19, BondingElectrons: 3, Doublets: 1, IonizationEnergy: 1012, Class: ClassNonmetal},
	{Symbol: "S", Name: "Sulfur", AtomicNumber: 16, Mass: 32.06, Electronegativity: 2.58, BondingElectrons: 6, Doublets: 2, IonizationEnergy: 1000, Class: ClassNonmetal},
	{Symbol: "Cl", Name: "Chlorine", AtomicNumber: 17, Mass: 35.45, Electronegativity: 3.16, BondingElectrons: 1, Doublets: 3, IonizationEnergy: 1251, Class: ClassHalogen},
	{Symbol: "Ar", Name: "Argon", AtomicNumber: 18, Mass: 39.948, Electronegativity: 0, BondingElectrons: 0, Doublets: 4, IonizationEnergy: 1521, Class: ClassNobleGas, Unusable: true},
	{Symbol: "K", Name: "Potassium", AtomicNumber: 19, Mass: 39.098, Electronegativity: 0.82, BondingElectrons: 1, Doublets: 0, IonizationEnergy: 419, Class: ClassAlkalineMetal},
	{Symbol: "Ca", Name: "Calcium", AtomicNumber: 20, Mass: 40.078, Electronegativity: 1.00, BondingElectrons: 2, Doublets: 0, IonizationEnergy: 590, Class: ClassAlkalineEarthMetal},
	{Symbol: "V", Name: "Vanadium", AtomicNumber: 23, Mass: 50.942, Electronegativity: 1.63, BondingElectrons: 2, Doublets: 1, IonizationEnergy: 650, Class: ClassTransitionMetal},
	{Symbol: "Fe", Name: "Iron", AtomicNumber: 26, Mass: 55.845, Electronegativity: 1.83, BondingElectrons: 2, Doublets: 0, IonizationEnergy: 762, Class: ClassTransitionMetal},
	{Symbol: "Cu", Name: "Copper", AtomicNumber: 29, Mass: 63.546, Electronegativity: 1.90, BondingElectrons: 1, Doublets: 0, IonizationEnergy: 745, Class: ClassTransitionMetal},
	{Symbol: "Zn", Name: "Zinc", AtomicNumber: 30, Mass: 65.38, Electronegativity: 1.65, BondingElectrons: 2, Doublets: 0, IonizationEnergy: 906, Class: ClassTransitionMetal},
	{Symbol: "Br", Name: "Bromine", AtomicNumber: 35, Mass: 79.904, Electronegativity: 2.96, BondingElectrons: 1, Doublets: 3, IonizationEnergy: 1140, Class: ClassHalogen},
	{Symbol: "Kr", Name: "Krypton", AtomicNumber: 36, Mass: 83.798, Electronegativity: 3.00, BondingElectrons: 2, Doublets: 4, IonizationEnergy: 1351, Class: ClassNobleGas},
	{Symbol: "Y", Name: "Yttrium", AtomicNumber: 39, Mass: 88.906, Electronegativity: 1.22, BondingElectrons: 2, Doublets: 1, IonizationEnergy: 600, Class: ClassTransitionMetal},
	{Symbol: "Zr", Name: "Zirconium", AtomicNumber: 40, Mass: 91.224, Electronegativity: 1.33, BondingElectrons: 2, Doublets: 1, IonizationEnergy: 640, Class: ClassTransitionMetal},
	{Symbol: "Ag", Name: "Silver", AtomicNumber: 47, Mass: 107.87, Electronegativity: 1.93, BondingElectrons: 1, Doublets: 0, IonizationEnergy: 731, Class: ClassTransitionMetal},
	{Symbol: "Sb", Name: "Antimony", AtomicNumber: 51, Mass: 121.76, Electronegativity: 2.05, BondingElectrons: 3, Doublets: 1, IonizationEnergy: 834, Class: ClassSemimetal},
	{Symbol: "Te", Name: "Tellurium", AtomicNumber: 52, Mass: 127.60, Electronegativity: 2.10, BondingElectrons: 2, Doublets: 2, IonizationEnergy: 869, Class: ClassSemimetal},
	{Symbol: "I", Name: "Iodine", AtomicNumber: 53, Mass: 126.90, Electronegativity: 2.66, BondingElectrons: 1, Doublets: 3, IonizationEnergy: 1008, Class: ClassHalogen},
	{Symbol: "Ba", Name: "Barium", AtomicNumber: 56, Mass: 137.33, Electronegativity: 0.89, BondingElectrons: 2, Doublets: 0, IonizationEnergy: 503, Class: ClassAlkalineEarthMetal},
	{Symbol: "Eu", Name: "Europium", AtomicNumber: 63, Mass: 151.96, Electronegativity: 1.20, BondingElectrons: 2, Doublets: 1, IonizationEnergy: 547, Class: ClassLanthanide},
	{Symbol: "Pt", Name: "Platinum", AtomicNumber: 78, Mass: 195.08, Electronegativity: 2.28, BondingElectrons: 1, Doublets: 0, IonizationEnergy: 870, Class: ClassTransitionMetal},
	{Symbol: "Tl", Name: "Thallium", AtomicNumber: 81, Mass: 204.38, Electronegativity: 1.62, BondingElectrons: 3, Doublets: 1, IonizationEnergy: 589, Class: ClassPBlockMetal},
	{Symbol: "Pb", Name: "Lead", AtomicNumber: 82, Mass: 207.2, Electronegativity: 2.33, BondingElectrons: 4, Doublets: 1, IonizationEnergy: 716, Class: ClassPBlockMetal},
	{Symbol: "Th", Name: "Thorium", AtomicNumber: 90, Mass: 232.04, Electronegativity: 1.30, BondingElectrons: 2, Doublets: 1, IonizationEnergy: 587, Class: ClassActinide},
	{Symbol: "Md", Name: "Mendelevium", AtomicNumber: 101, Mass: 258, Electronegativity: 1.30, BondingElectrons: 2, Doublets: 1, IonizationEnergy: 636, Class: ClassActinide, Unusable: true},
}

var bySymbol = func() map[string]Atom {
	m := make(map[string]Atom, len(elements))
	for _, a := range elements {
		m[a.Symbol] = a
	}
	return m
}()

// Lookup returns the catalog record for symbol. Symbols are case-sensitive
// ("Co" and "CO" are different inputs); unknown symbols fail with Unknown
// Element.
func Lookup(symbol string) (Atom, error) {
	a, ok := bySymbol[symbol]
	if !ok {
		return Atom{}, errors.UnknownElement(symbol)
	}
	return a, nil
}

// MustLookup is Lookup for symbols known at compile time. It panics on an
// unknown symbol.
func MustLookup(symbol string) Atom {
	a, err := Lookup(symbol)
	if err != nil {
		panic(err)
	}
	return a
}

// All returns every catalog record ordered by atomic number.
func All() []Atom {
	out := make([]Atom, len(elements))
	copy(out, elements)
	sort.Slice(out, func(i, j int) bool { return out[i].AtomicNumber < out[j].AtomicNumber })
	return out
}

// ByClass returns the records of one class ordered by atomic number.
func ByClass(class ElementClass) []Atom {
	var out []Atom
	for _, a := range All() {
		if a.Class == class {
			out = append(out, a)
		}
	}
	return out
}

// Symbols returns all supported symbols ordered by atomic number.
func Symbols() []string {
	all := All()
	out := make([]string, len(all))
	for i, a := range all {
		out[i] = a.Symbol
	}
	return out
}

// Search returns the records whose symbol or English name starts with prefix,
// case-insensitively.
func Search(prefix string) []Atom {
	p := strings.ToLower(strings.TrimSpace(prefix))
	var out []Atom
	for _, a := range All() {
		if strings.HasPrefix(strings.ToLower(a.Symbol), p) || strings.HasPrefix(strings.ToLower(a.Name), p) {
			out = append(out, a)
		}
	}
	return out
}

//Personal.AI order the ending
