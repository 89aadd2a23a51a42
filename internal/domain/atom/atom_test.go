package atom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/internal/domain/atom"
	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Catalog lookup
// ─────────────────────────────────────────────────────────────────────────────

func TestLookup_RequiredElements(t *testing.T) {
	t.Parallel()

	for _, sym := range []string{"H", "He", "C", "O"} {
		a, err := atom.Lookup(sym)
		require.NoError(t, err, sym)
		assert.Equal(t, sym, a.Symbol)
	}
}

func TestLookup_KnownValues(t *testing.T) {
	t.Parallel()

	c := atom.MustLookup("C")
	assert.Equal(t, "Carbon", c.Name)
	assert.Equal(t, 6, c.AtomicNumber)
	assert.InDelta(t, 2.55, c.Electronegativity, 1e-9)
	assert.Equal(t, 0, c.Doublets)
	assert.Equal(t, atom.ClassNonmetal, c.Class)

	o := atom.MustLookup("O")
	assert.Equal(t, 2, o.Doublets)
	assert.True(t, o.IsOxygen())
	assert.True(t, atom.MustLookup("H").IsHydrogen())
}

func TestLookup_UnknownElement(t *testing.T) {
	t.Parallel()

	cases := []string{"Xx", "", "co", "CO"}
	for _, sym := range cases {
		_, err := atom.Lookup(sym)
		require.Error(t, err, sym)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement), sym)
	}
}

func TestMustLookup_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { atom.MustLookup("Qq") })
}

func TestCatalog_Invariants(t *testing.T) {
	t.Parallel()

	all := atom.All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for i, a := range all {
		assert.False(t, seen[a.Symbol], "duplicate symbol %s", a.Symbol)
		seen[a.Symbol] = true
		assert.Positive(t, a.AtomicNumber, a.Symbol)
		assert.Positive(t, a.Mass, a.Symbol)
		assert.Positive(t, a.IonizationEnergy, a.Symbol)
		assert.GreaterOrEqual(t, a.Doublets, 0, a.Symbol)
		assert.GreaterOrEqual(t, a.BondingElectrons, 0, a.Symbol)
		assert.NotEqual(t, atom.ClassUnknown, a.Class, a.Symbol)
		if !a.Unusable {
			assert.Positive(t, a.Electronegativity, "usable %s needs electronegativity", a.Symbol)
		}
		if i > 0 {
			assert.Less(t, all[i-1].AtomicNumber, a.AtomicNumber)
		}
	}
}

func TestCatalog_EveryClassRepresented(t *testing.T) {
	t.Parallel()

	for _, class := range atom.ElementClasses() {
		assert.NotEmpty(t, atom.ByClass(class), class.String())
	}
	assert.Len(t, atom.Symbols(), len(atom.All()))
}

func TestAll_ReturnsCopy(t *testing.T) {
	t.Parallel()

	all := atom.All()
	all[0].Name = "mutated"
	assert.Equal(t, "Hydrogen", atom.All()[0].Name)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	res := atom.Search("ca")
	symbols := make([]string, 0, len(res))
	for _, a := range res {
		symbols = append(symbols, a.Symbol)
	}
	assert.ElementsMatch(t, []string{"C", "Ca"}, symbols)
	assert.Empty(t, atom.Search("zzz"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Classes and predicates
// ─────────────────────────────────────────────────────────────────────────────

func TestElementClass_IsMetal(t *testing.T) {
	t.Parallel()

	metals := map[atom.ElementClass]bool{
		atom.ClassAlkalineMetal:      true,
		atom.ClassAlkalineEarthMetal: true,
		atom.ClassTransitionMetal:    true,
		atom.ClassSemimetal:          true,
		atom.ClassPBlockMetal:        true,
		atom.ClassLanthanide:         true,
		atom.ClassActinide:           true,
		atom.ClassNonmetal:           false,
		atom.ClassHalogen:            false,
		atom.ClassNobleGas:           false,
	}
	for class, want := range metals {
		assert.Equal(t, want, class.IsMetal(), class.String())
	}
	assert.True(t, atom.MustLookup("Na").IsMetal())
	assert.False(t, atom.MustLookup("Cl").IsMetal())
}

func TestParseElementClass(t *testing.T) {
	t.Parallel()

	for _, class := range atom.ElementClasses() {
		got, err := atom.ParseElementClass(class.String())
		require.NoError(t, err)
		assert.Equal(t, class, got)
	}

	got, err := atom.ParseElementClass("Noble-Gas")
	require.NoError(t, err)
	assert.Equal(t, atom.ClassNobleGas, got)

	_, err = atom.ParseElementClass("plasma")
	assert.Error(t, err)
	assert.Equal(t, "unknown", atom.ClassUnknown.String())
}

func TestCheckUsable(t *testing.T) {
	t.Parallel()

	assert.NoError(t, atom.MustLookup("C").CheckUsable())

	err := atom.MustLookup("He").CheckUsable()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnusableAtom))
	assert.Contains(t, err.Error(), "Atom Helium(He) is not usable")
}

func TestAtom_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Carbon(C)", atom.MustLookup("C").String())
}

// ─────────────────────────────────────────────────────────────────────────────
// Display names
// ─────────────────────────────────────────────────────────────────────────────

func TestClassName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Noble gasses", atom.ClassName(atom.ClassNobleGas, locale.English))
	assert.Equal(t, "Gas nobili", atom.ClassName(atom.ClassNobleGas, locale.Italian))
	assert.Equal(t, "Halogens", atom.ClassName(atom.ClassHalogen, locale.Tag("fr")))
	assert.Equal(t, "unknown", atom.ClassName(atom.ClassUnknown, locale.English))

	for _, tag := range locale.Supported() {
		for _, class := range atom.ElementClasses() {
			assert.NotEqual(t, class.String(), atom.ClassName(class, tag), "%s/%s", tag, class)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	o := atom.MustLookup("O")
	assert.Equal(t, "Oxygen", o.DisplayName(locale.English))
	assert.Equal(t, "Ossigeno", o.DisplayName(locale.Italian))
	assert.Equal(t, "Neon", atom.MustLookup("Ne").DisplayName(locale.Italian))
}
