package scheme

import (
	"fmt"

	"github.com/forestrie/go-meshforest/hex"
	"github.com/forestrie/go-meshforest/pyra"
	"github.com/forestrie/go-meshforest/quad"
	"github.com/forestrie/go-meshforest/tet"
	"github.com/forestrie/go-meshforest/tri"
)

// Element is the compact value shared by all shapes. Two dimensional shapes
// leave Z at zero, lattice shapes leave Type at zero. An element means
// nothing without the Scheme of its tree.
type Element struct {
	X, Y, Z int32
	Level   int8
	Type    int8
}

func (e Element) String() string {
	return fmt.Sprintf("(%d,%d,%d)@%d/t%d", e.X, e.Y, e.Z, e.Level, e.Type)
}

func (e Element) quad() quad.Quad { return quad.Quad{X: e.X, Y: e.Y, Level: e.Level} }
func (e Element) hex() hex.Hex    { return hex.Hex{X: e.X, Y: e.Y, Z: e.Z, Level: e.Level} }
func (e Element) tri() tri.Tri    { return tri.Tri{X: e.X, Y: e.Y, Level: e.Level, Type: e.Type} }
func (e Element) tet() tet.Tet {
	return tet.Tet{X: e.X, Y: e.Y, Z: e.Z, Level: e.Level, Type: e.Type}
}
func (e Element) pyra() pyra.Pyra {
	return pyra.Pyra{X: e.X, Y: e.Y, Z: e.Z, Level: e.Level, Type: e.Type}
}

func fromQuad(q quad.Quad) Element { return Element{X: q.X, Y: q.Y, Level: q.Level} }
func fromHex(h hex.Hex) Element    { return Element{X: h.X, Y: h.Y, Z: h.Z, Level: h.Level} }
func fromTri(t tri.Tri) Element    { return Element{X: t.X, Y: t.Y, Level: t.Level, Type: t.Type} }
func fromTet(t tet.Tet) Element {
	return Element{X: t.X, Y: t.Y, Z: t.Z, Level: t.Level, Type: t.Type}
}
func fromPyra(p pyra.Pyra) Element {
	return Element{X: p.X, Y: p.Y, Z: p.Z, Level: p.Level, Type: p.Type}
}
