package molecule

import (
	"fmt"

	"github.com/turtacn/chemsolver/internal/domain/locale"
	"github.com/turtacn/chemsolver/pkg/errors"
)

// Shape is the electron geometry around the central atom.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeSquare
	ShapePyramid
	ShapeLine
	ShapeTriangular
	ShapeFivePointedStar
	ShapeSixPointedStar
)

var shapeKeys = map[Shape]string{
	ShapeSquare:          "square",
	ShapePyramid:         "pyramid",
	ShapeLine:            "line",
	ShapeTriangular:      "triangular",
	ShapeFivePointedStar: "five_pointed_star",
	ShapeSixPointedStar:  "six_pointed_star",
}

var shapeNames = map[locale.Tag]map[Shape]string{
	locale.English: {
		ShapeSquare:          "Square",
		ShapePyramid:         "Pyramid",
		ShapeLine:            "Line",
		ShapeTriangular:      "Triangular",
		ShapeFivePointedStar: "Five-pointed star",
		ShapeSixPointedStar:  "Six-pointed star",
	},
	locale.Italian: {
		ShapeSquare:          "Quadrato",
		ShapePyramid:         "Piramide",
		ShapeLine:            "Lineare",
		ShapeTriangular:      "Triangolare",
		ShapeFivePointedStar: "Stella a cinque punte",
		ShapeSixPointedStar:  "Stella a sei punte",
	},
}

// Shapes returns every valid shape.
func Shapes() []Shape {
	return []Shape{ShapeSquare, ShapePyramid, ShapeLine, ShapeTriangular, ShapeFivePointedStar, ShapeSixPointedStar}
}

// String returns the machine key of the shape.
func (s Shape) String() string {
	if k, ok := shapeKeys[s]; ok {
		return k
	}
	return "unknown"
}

// DisplayName returns the shape name in the given language.
func (s Shape) DisplayName(tag locale.Tag) string {
	if n, ok := shapeNames[tag][s]; ok {
		return n
	}
	if n, ok := shapeNames[locale.English][s]; ok {
		return n
	}
	return s.String()
}

type shapeRule struct {
	bonded    int
	lonePairs []int
	shape     Shape
}

// shapeRules is evaluated top to bottom; the first match wins. Rows overlap in
// lone-pair values and are told apart by the bonded count only.
var shapeRules = []shapeRule{
	{bonded: 4, lonePairs: []int{0, 2}, shape: ShapeSquare},
	{bonded: 2, lonePairs: []int{2, 5}, shape: ShapePyramid},
	{bonded: 3, lonePairs: []int{1}, shape: ShapePyramid},
	{bonded: 2, lonePairs: []int{0, 1}, shape: ShapeLine},
	{bonded: 1, lonePairs: []int{0, 2, 3}, shape: ShapeLine},
	{bonded: 3, lonePairs: []int{0, 2, 3}, shape: ShapeTriangular},
	{bonded: 5, lonePairs: []int{2}, shape: ShapeFivePointedStar},
	{bonded: 6, lonePairs: []int{2}, shape: ShapeSixPointedStar},
}

func lookupShape(bonded, lonePairs int) (Shape, bool) {
	for _, r := range shapeRules {
		if r.bonded != bonded {
			continue
		}
		for _, lp := range r.lonePairs {
			if lp == lonePairs {
				return r.shape, true
			}
		}
	}
	return ShapeUnknown, false
}

// ClassifyShape looks up the shape for a bonded-atom count and a lone-pair
// count. Combinations outside the table are Illegal Molecule.
func ClassifyShape(bonded, lonePairs int) (Shape, error) {
	s, ok := lookupShape(bonded, lonePairs)
	if !ok {
		return ShapeUnknown, errors.IllegalMolecule(combination(bonded, lonePairs))
	}
	return s, nil
}

func combination(bonded, lonePairs int) string {
	return fmt.Sprintf("%d bonded atoms with %d lone pairs", bonded, lonePairs)
}

// Shape classifies the molecule's geometry. The first successful result is
// cached and recorded in the trace; later calls return it unchanged.
func (m *Molecule) Shape() (Shape, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shape != ShapeUnknown {
		return m.shape, nil
	}
	s, ok := lookupShape(len(m.bonded), m.lonePairs)
	if !ok {
		return ShapeUnknown, errors.IllegalMolecule(
			fmt.Sprintf("%s (%s)", m.label(), combination(len(m.bonded), m.lonePairs)))
	}
	m.shape = s
	m.record(TraceEvent{Kind: TraceShape, Shape: s})
	return s, nil
}

//Personal.AI order the ending
