package molecule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/internal/domain/formula"
	"github.com/turtacn/chemsolver/internal/domain/molecule"
	"github.com/turtacn/chemsolver/pkg/errors"
)

func build(t *testing.T, text string) *molecule.Molecule {
	t.Helper()
	m, err := molecule.Build(text)
	require.NoError(t, err, text)
	return m
}

func symbols(atoms []formula.Occurrence) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.Symbol
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Central atom selection
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_CentralAtom(t *testing.T) {
	t.Parallel()

	cases := []struct {
		formula   string
		central   string
		lonePairs int
	}{
		{"C,O2", "C", 0},
		{"H2,O", "O", 2},
		{"N,H3", "N", 1},
		{"H,Cl", "Cl", 3},
		{"Na,Cl", "Na", 0},
		{"H2,S,O4", "S", 2},
		{"Ca,C,O3", "Ca", 0},
		{"O,C", "C", 0},
		{"Cu,Si", "Cu", 0}, // equal electronegativity keeps the first atom
		{"Si,Cu", "Si", 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.formula, func(t *testing.T) {
			t.Parallel()
			m := build(t, tc.formula)
			assert.Equal(t, tc.central, m.Central().Symbol)
			assert.Equal(t, tc.lonePairs, m.LonePairs())
		})
	}
}

func TestBuild_DiatomicHydrogen(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"H2", "H,H"} {
		m := build(t, text)
		assert.Equal(t, "H", m.Central().Symbol)
		assert.Equal(t, []string{"H"}, symbols(m.Bonded()))
		assert.Empty(t, m.Hydrogens())
		assert.Equal(t, []molecule.TraceKind{
			molecule.TraceCentralAtom,
			molecule.TraceLonePairs,
			molecule.TraceHydrogenMolecule,
		}, m.Trace().Kinds())
	}
}

func TestBuild_NoCentralAtom(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "H", "H3", "H,H,H", ",,"} {
		_, err := molecule.Build(text)
		require.Error(t, err, text)
		assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalMolecule), text)
	}
}

func TestBuild_UnusableAtom(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"He", "Md,O2", "Ar,F2"} {
		_, err := molecule.Build(text)
		require.Error(t, err, text)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUnusableAtom), text)
	}
}

func TestBuild_PropagatesParseErrors(t *testing.T) {
	t.Parallel()

	_, err := molecule.Build("C O")
	assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalFormula))
	_, err = molecule.Build("Xx")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
	_, err = molecule.New(nil)
	assert.Error(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Bonded / hydrogen partition
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_Partition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		formula   string
		bonded    []string
		hydrogens []string
	}{
		{"C,O2", []string{"O", "O"}, nil},
		{"H2,O", []string{"H", "H"}, nil},
		{"C,H4", []string{"H", "H", "H", "H"}, nil},
		// one real bonded atom: leftover hydrogens are not promoted
		{"C,O,H2", []string{"O"}, []string{"H", "H"}},
		{"H2,S,O4", []string{"O", "O", "O", "O"}, []string{"H", "H"}},
		// the central token is excluded, a second token of the same element is not
		{"C,C", []string{"C"}, nil},
		{"Na2,O2", []string{"O", "O"}, nil},
		{"H2,O2", []string{"H", "H"}, nil},
		{"C", nil, nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.formula, func(t *testing.T) {
			t.Parallel()
			m := build(t, tc.formula)
			if tc.bonded == nil {
				assert.Empty(t, m.Bonded())
			} else {
				assert.Equal(t, tc.bonded, symbols(m.Bonded()))
			}
			if tc.hydrogens == nil {
				assert.Empty(t, m.Hydrogens())
			} else {
				assert.Equal(t, tc.hydrogens, symbols(m.Hydrogens()))
			}
		})
	}
}

func TestBuild_HydrogenFallbackIsTraced(t *testing.T) {
	t.Parallel()

	m := build(t, "C,H4")
	trace := m.Trace()
	require.Len(t, trace, 3)
	assert.Equal(t, molecule.TraceHydrogenFallback, trace[2].Kind)
	assert.Equal(t, 4, trace[2].Count)
}

func TestMolecule_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	m := build(t, "C,O2")
	bonded := m.Bonded()
	bonded[0].Symbol = "X"
	assert.Equal(t, "O", m.Bonded()[0].Symbol)

	atoms := m.Atoms()
	atoms[0].Symbol = "X"
	assert.Equal(t, "C", m.Atoms()[0].Symbol)
	assert.Equal(t, "C,O2", m.Formula().Text())

	trace := m.Trace()
	trace[0].Symbol = "X"
	assert.Equal(t, "C", m.Trace()[0].Symbol)
}

//Personal.AI order the ending
