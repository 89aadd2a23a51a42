package molecule_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/internal/domain/molecule"
)

func TestTrace_RenderEnglish(t *testing.T) {
	t.Parallel()

	m := build(t, "C,O2")
	_, err := m.Shape()
	require.NoError(t, err)
	_, err = m.Family()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Central atom: Carbon(C)",
		"Lone pairs on the central atom: 0",
		"Bonded atom: Oxygen(O)",
		"Bonded atom: Oxygen(O)",
		"Shape: Line",
		"2 distinct elements, compound family: Anhydride",
	}, m.Trace().Lines(locale.English))
}

func TestTrace_RenderItalian(t *testing.T) {
	t.Parallel()

	m := build(t, "N,H3")
	_, err := m.Shape()
	require.NoError(t, err)

	assert.Equal(t,
		"Atomo centrale: Azoto(N)\n"+
			"Doppietti sull'atomo centrale: 1\n"+
			"Nessun altro atomo legato, aggiunti 3 atomi di idrogeno\n"+
			"Forma: Piramide",
		m.Trace().Render(locale.Italian))
}

func TestTrace_HydrogenMoleculeLine(t *testing.T) {
	t.Parallel()

	lines := build(t, "H2").Trace().Lines(locale.English)
	require.Len(t, lines, 3)
	assert.Equal(t, "Diatomic hydrogen: Hydrogen(H) bonded to the central hydrogen", lines[2])
}

func TestTraceEvent_UnknownLanguageFallsBack(t *testing.T) {
	t.Parallel()

	e := molecule.TraceEvent{Kind: molecule.TraceLonePairs, Count: 2}
	assert.Equal(t, "Lone pairs on the central atom: 2", e.Line(locale.Tag("fr")))
	assert.Equal(t, "unknown", molecule.TraceEvent{}.Line(locale.English))
	assert.Equal(t, "shape", molecule.TraceShape.String())
}

func TestMolecule_ConcurrentClassification(t *testing.T) {
	t.Parallel()

	m := build(t, "H2,S,O4")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Shape()
			_, _ = m.Family()
			_ = m.Trace()
		}()
	}
	wg.Wait()

	kinds := m.Trace().Kinds()
	shapes, families := 0, 0
	for _, k := range kinds {
		switch k {
		case molecule.TraceShape:
			shapes++
		case molecule.TraceCompoundFamily:
			families++
		}
	}
	assert.Equal(t, 1, shapes)
	assert.Equal(t, 1, families)
}
