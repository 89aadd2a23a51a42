package formula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/internal/domain/formula"
	"github.com/turtacn/chemsolver/pkg/errors"
)

func TestParse_CarbonDioxide(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("C,O2")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "O", "O"}, f.Symbols())
	assert.Equal(t, "Carbon", f.At(0).Name)
	assert.Equal(t, "Oxygen", f.At(1).Name)
	assert.Equal(t, "C,O2", f.Text())
	assert.Equal(t, 3, f.Len())
}

func TestParse_ReplicatedAtomsShareToken(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("C,O2")
	require.NoError(t, err)
	atoms := f.Atoms()
	assert.True(t, atoms[1].SameInstance(atoms[2]))
	assert.False(t, atoms[0].SameInstance(atoms[1]))
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		symbols []string
	}{
		{"single atom", "He", []string{"He"}},
		{"explicit count of one", "Na1,Cl1", []string{"Na", "Cl"}},
		{"two letter symbols", "Na2,O2", []string{"Na", "Na", "O", "O"}},
		{"multi digit count", "C,H12", []string{"C", "H", "H", "H", "H", "H", "H", "H", "H", "H", "H", "H", "H"}},
		{"trailing comma", "H2,O,", []string{"H", "H", "O"}},
		{"doubled comma", "H,,Cl", []string{"H", "Cl"}},
		{"repeated element tokens", "C,C", []string{"C", "C"}},
		{"sulfuric acid", "H2,S,O4", []string{"H", "H", "S", "O", "O", "O", "O"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f, err := formula.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.symbols, f.Symbols())
		})
	}
}

func TestParse_EmptyFormulas(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", ",", ",,,"} {
		f, err := formula.Parse(in)
		require.NoError(t, err, in)
		assert.True(t, f.IsEmpty(), in)
	}
}

func TestParse_IllegalFormula(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{"embedded space", "C O"},
		{"leading space", " C,O2"},
		{"space before count", "O 2"},
		{"tab", "C,\tO"},
		{"non numeric count", "O2x"},
		{"zero count", "O0"},
		{"signed count", "O-2"},
		{"plus count", "O+2"},
		{"count only", "2"},
		{"count overflow", "O99999999999999999999999"},
		{"max int count", "C,O9223372036854775807"},
		{"non ascii", "Cé"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := formula.Parse(tc.in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalFormula), err.Error())

			var ae *errors.AppError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tc.in, ae.Detail)
		})
	}
}

func TestParse_UnknownElement(t *testing.T) {
	t.Parallel()

	_, err := formula.Parse("Xx")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
	assert.Equal(t, "[FRM_002] Unknown Element: Xx", err.Error())

	_, err = formula.Parse("C,Qq2")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
}

func TestParser_MaxAtoms(t *testing.T) {
	t.Parallel()

	p := formula.NewParser(formula.WithMaxAtoms(4))
	assert.Equal(t, 4, p.MaxAtoms())

	_, err := p.Parse("C,H4")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalFormula))

	f, err := p.Parse("C,H3")
	require.NoError(t, err)
	assert.Equal(t, 4, f.Len())

	for _, in := range []string{"O9223372036854775807", "C,O9223372036854775807", "C,H3,O9223372036854775807"} {
		_, err = p.Parse(in)
		require.Error(t, err, in)
		assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalFormula), in)
	}

	assert.Equal(t, formula.DefaultMaxAtoms, formula.NewParser(formula.WithMaxAtoms(0)).MaxAtoms())
}

func TestParser_WithLookup(t *testing.T) {
	t.Parallel()

	fake := atom.Atom{Symbol: "Zz", Name: "Testium", AtomicNumber: 200, Mass: 1, Electronegativity: 1}
	p := formula.NewParser(formula.WithLookup(func(symbol string) (atom.Atom, error) {
		if symbol == "Zz" {
			return fake, nil
		}
		return atom.Lookup(symbol)
	}))

	f, err := p.Parse("Zz2,H")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zz", "Zz", "H"}, f.Symbols())
}

func TestFormula_Accessors(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse(",H2,,S1,O4")
	require.NoError(t, err)

	assert.Equal(t, "H2,S,O4", f.Canonical())
	assert.Equal(t, 4, f.Count("O"))
	assert.Equal(t, 0, f.Count("Na"))
	assert.InDelta(t, 2*1.008+32.06+4*15.999, f.Mass(), 1e-9)

	groups := f.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "S", groups[1].Atom.Symbol)
	assert.Equal(t, 1, groups[1].Count)

	atoms := f.Atoms()
	atoms[0].Symbol = "mutated"
	assert.Equal(t, "H", f.At(0).Symbol)
}

//Personal.AI order the ending
