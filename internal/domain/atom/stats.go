package atom

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ClassStats summarizes the catalog records of one element class.
type ClassStats struct {
	Class ElementClass
	Count int
	// Electronegativity statistics cover only members with a Pauling value.
	MeanElectronegativity   float64
	StdDevElectronegativity float64
	MinMass                 float64
	MaxMass                 float64
}

// Summarize groups atoms by class and computes per-class statistics. Classes
// with no members are omitted; output follows ElementClasses order.
func Summarize(atoms []Atom) []ClassStats {
	groups := make(map[ElementClass][]Atom)
	for _, a := range atoms {
		groups[a.Class] = append(groups[a.Class], a)
	}

	out := make([]ClassStats, 0, len(groups))
	for _, class := range ElementClasses() {
		members := groups[class]
		if len(members) == 0 {
			continue
		}
		out = append(out, summarizeClass(class, members))
	}
	return out
}

func summarizeClass(class ElementClass, members []Atom) ClassStats {
	masses := make([]float64, len(members))
	en := make([]float64, 0, len(members))
	for i, a := range members {
		masses[i] = a.Mass
		if a.Electronegativity > 0 {
			en = append(en, a.Electronegativity)
		}
	}

	cs := ClassStats{
		Class:   class,
		Count:   len(members),
		MinMass: floats.Min(masses),
		MaxMass: floats.Max(masses),
	}
	switch len(en) {
	case 0:
	case 1:
		cs.MeanElectronegativity = en[0]
	default:
		cs.MeanElectronegativity, cs.StdDevElectronegativity = stat.MeanStdDev(en, nil)
	}
	return cs
}

//Personal.AI order the ending
