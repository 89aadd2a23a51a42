// Package bonding classifies the bond between two atoms from their
// electronegativity difference.
package bonding

import (
	"math"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/internal/domain/locale"
)

// Bucket boundaries on the Pauling scale. Both are inclusive to the lower
// bucket.
const (
	PureCovalentMax  = 0.4
	PolarCovalentMax = 1.9
)

// Type is the polarity class of a bond.
type Type int

const (
	PureCovalent Type = iota + 1
	PolarCovalent
	Ionic
)

var typeKeys = map[Type]string{
	PureCovalent:  "pure_covalent",
	PolarCovalent: "polar_covalent",
	Ionic:         "ionic",
}

var typeNames = map[locale.Tag]map[Type]string{
	locale.English: {
		PureCovalent:  "Pure covalent",
		PolarCovalent: "Polar covalent",
		Ionic:         "Ionic",
	},
	locale.Italian: {
		PureCovalent:  "Covalente puro",
		PolarCovalent: "Covalente polare",
		Ionic:         "Ionico",
	},
}

// String returns the machine key of the bond type.
func (t Type) String() string {
	if k, ok := typeKeys[t]; ok {
		return k
	}
	return "unknown"
}

// DisplayName returns the bond type name in the given language.
func (t Type) DisplayName(tag locale.Tag) string {
	if n, ok := typeNames[tag][t]; ok {
		return n
	}
	if n, ok := typeNames[locale.English][t]; ok {
		return n
	}
	return t.String()
}

// Difference returns |EN(a) - EN(b)|, rounded to 1e-6 so that catalog values
// with two decimals compare exactly against the bucket boundaries. Both atoms
// must be usable.
func Difference(a, b atom.Atom) (float64, error) {
	if err := checkUsable(a, b); err != nil {
		return 0, err
	}
	return difference(a, b), nil
}

func difference(a, b atom.Atom) float64 {
	d := math.Abs(a.Electronegativity - b.Electronegativity)
	return math.Round(d*1e6) / 1e6
}

// ClassifyDifference maps a difference to its bond type:
// [0, 0.4] pure covalent, (0.4, 1.9] polar covalent, above 1.9 ionic.
func ClassifyDifference(d float64) Type {
	switch {
	case d <= PureCovalentMax:
		return PureCovalent
	case d <= PolarCovalentMax:
		return PolarCovalent
	default:
		return Ionic
	}
}

// Classify returns the bond type between a and b.
func Classify(a, b atom.Atom) (Type, error) {
	d, err := Difference(a, b)
	if err != nil {
		return 0, err
	}
	return ClassifyDifference(d), nil
}

// MostElectronegative returns the atom with the higher electronegativity.
// On a tie a is returned.
func MostElectronegative(a, b atom.Atom) (atom.Atom, error) {
	if err := checkUsable(a, b); err != nil {
		return atom.Atom{}, err
	}
	if a.Electronegativity >= b.Electronegativity {
		return a, nil
	}
	return b, nil
}

// Report bundles every bonding fact about a pair of atoms.
type Report struct {
	A, B                atom.Atom
	Difference          float64
	Type                Type
	MostElectronegative atom.Atom
}

// Describe computes a Report for a and b.
func Describe(a, b atom.Atom) (Report, error) {
	if err := checkUsable(a, b); err != nil {
		return Report{}, err
	}
	d := difference(a, b)
	most := a
	if b.Electronegativity > a.Electronegativity {
		most = b
	}
	return Report{
		A:                   a,
		B:                   b,
		Difference:          d,
		Type:                ClassifyDifference(d),
		MostElectronegative: most,
	}, nil
}

func checkUsable(atoms ...atom.Atom) error {
	for _, a := range atoms {
		if err := a.CheckUsable(); err != nil {
			return err
		}
	}
	return nil
}

//Personal.AI order the ending
