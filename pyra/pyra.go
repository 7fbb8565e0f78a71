package pyra

import (
	"fmt"

	"github.com/forestrie/go-meshforest/morton"
	"github.com/forestrie/go-meshforest/tet"
)

const (
	Dim      = 3
	MaxLevel = tet.MaxLevel

	// NumPyraChildren is the child count of a pyramid. Tetrahedra have
	// tet.NumChildren.
	NumPyraChildren = 10
	NumTypes        = 8

	TypeBaseDown int8 = 6
	TypeBaseUp   int8 = 7
)

const none = -1

var (
	parentTypeIlocToType = [2][NumPyraChildren]int8{
		{6, 3, 6, 0, 6, 0, 3, 6, 7, 6},
		{7, 0, 3, 6, 7, 3, 7, 0, 7, 7},
	}
	parentTypeIlocToCid = [2][NumPyraChildren]int8{
		{0, 1, 1, 2, 2, 3, 3, 3, 3, 7},
		{0, 4, 4, 4, 4, 5, 5, 6, 6, 7},
	}
	// cidTypeToParentType and cidTypeToIloc describe children of pyramids
	// only. Entries for combinations that never occur below a pyramid are
	// none.
	cidTypeToParentType = [8][NumTypes]int8{
		{none, none, none, none, none, none, 6, 7},
		{none, none, none, 6, none, none, 6, none},
		{6, none, none, none, none, none, 6, none},
		{6, none, none, 6, none, none, 6, 6},
		{7, none, none, 7, none, none, 7, 7},
		{none, none, none, 7, none, none, none, 7},
		{7, none, none, none, none, none, none, 7},
		{none, none, none, none, none, none, 6, 7},
	}
	cidTypeToIloc = [8][NumTypes]int8{
		{none, none, none, none, none, none, 0, 0},
		{none, none, none, 1, none, none, 2, none},
		{3, none, none, none, none, none, 4, none},
		{5, none, none, 6, none, none, 7, 8},
		{1, none, none, 2, none, none, 3, 4},
		{none, none, none, 5, none, none, none, 6},
		{7, none, none, none, none, none, none, 8},
		{none, none, none, none, none, none, 9, 9},
	}
)

// Pyra is an element of a pyramid tree, a pyramid when Type is 6 or 7 and a
// tetrahedron otherwise.
type Pyra struct {
	X, Y, Z int32
	Level   int8
	Type    int8
}

func Root() Pyra { return Pyra{Type: TypeBaseDown} }

func Len(level int) int32 { return morton.Len(MaxLevel, level) }

func (p Pyra) Len() int32 { return Len(int(p.Level)) }

func (p Pyra) IsPyramid() bool { return p.Type >= TypeBaseDown }

func (p Pyra) CubeID() int {
	return morton.CubeID3(p.X, p.Y, p.Z, MaxLevel, int(p.Level))
}

func (p Pyra) NumChildren() int {
	if p.IsPyramid() {
		return NumPyraChildren
	}
	return tet.NumChildren
}

// NumSiblings returns the size of p's family, 1 for the root.
func (p Pyra) NumSiblings() int {
	if p.Level == 0 {
		return 1
	}
	return p.Parent().NumChildren()
}

func (p Pyra) tet() tet.Tet {
	return tet.Tet{X: p.X, Y: p.Y, Z: p.Z, Level: p.Level, Type: p.Type}
}

func fromTet(t tet.Tet) Pyra {
	return Pyra{X: t.X, Y: t.Y, Z: t.Z, Level: t.Level, Type: t.Type}
}

func (p Pyra) childAt(cid int, typ int8) Pyra {
	h := Len(int(p.Level) + 1)
	c := Pyra{X: p.X, Y: p.Y, Z: p.Z, Level: p.Level + 1, Type: typ}
	if cid&0x01 != 0 {
		c.X |= h
	}
	if cid&0x02 != 0 {
		c.Y |= h
	}
	if cid&0x04 != 0 {
		c.Z |= h
	}
	return c
}

func (p Pyra) Child(i int) Pyra {
	if !p.IsPyramid() {
		return fromTet(p.tet().Child(i))
	}
	pt := p.Type - TypeBaseDown
	return p.childAt(int(parentTypeIlocToCid[pt][i]), parentTypeIlocToType[pt][i])
}

// Children appends the children of p to cs and returns the result.
func (p Pyra) Children(cs []Pyra) []Pyra {
	for i := 0; i < p.NumChildren(); i++ {
		cs = append(cs, p.Child(i))
	}
	return cs
}

// significantPoint reports whether t, of type 0 or 3, has a vertex on the
// centre of the bottom or top face of the cube one level up, and the type of
// the pyramid owning that face.
func significantPoint(t tet.Tet) (int8, bool) {
	if t.Type != 0 && t.Type != 3 {
		return 0, false
	}
	h := t.Len()
	px, py, pz := t.X&^h, t.Y&^h, t.Z&^h
	for i := 0; i < 4; i++ {
		v := t.Vertex(i)
		if v[0] != px+h || v[1] != py+h {
			continue
		}
		switch v[2] {
		case pz:
			return TypeBaseDown, true
		case pz + 2*h:
			return TypeBaseUp, true
		}
	}
	return 0, false
}

// pyramidAncestry reports whether the Bey ancestors of t at levels 1..t.Level
// all lie inside pyramids.
func pyramidAncestry(t tet.Tet) bool {
	for a := t; a.Level >= 1; a = a.Parent() {
		if a.Type == 0 || a.Type == 3 {
			return false
		}
	}
	return true
}

// parent returns false for the root and for pyramid children that no
// pyramid has.
func (p Pyra) parent() (Pyra, bool) {
	if p.Level <= 0 {
		return Pyra{}, false
	}
	h := p.Len()
	if p.IsPyramid() {
		pt := cidTypeToParentType[p.CubeID()][p.Type]
		if pt == none {
			return Pyra{}, false
		}
		return Pyra{X: p.X &^ h, Y: p.Y &^ h, Z: p.Z &^ h, Level: p.Level - 1, Type: pt}, true
	}
	t := p.tet()
	tp := t.Parent()
	if typ, hit := significantPoint(t); hit && pyramidAncestry(tp) {
		return Pyra{X: tp.X, Y: tp.Y, Z: tp.Z, Level: tp.Level, Type: typ}, true
	}
	return fromTet(tp), true
}

// Parent returns the element one level up containing p. It panics for the
// root and for elements that cannot occur in a pyramid tree.
func (p Pyra) Parent() Pyra {
	parent, ok := p.parent()
	if !ok {
		panic(fmt.Sprintf("pyra: contract violation: no parent for %+v", p))
	}
	return parent
}

// childIDIn returns p's position among the children of parent.
func (p Pyra) childIDIn(parent Pyra) int {
	if !parent.IsPyramid() {
		return p.tet().ChildID()
	}
	i := cidTypeToIloc[p.CubeID()][p.Type]
	if i == none {
		panic(fmt.Sprintf("pyra: contract violation: %+v is not a child of %+v", p, parent))
	}
	return int(i)
}

func (p Pyra) ChildID() int {
	if p.Level == 0 {
		return 0
	}
	return p.childIDIn(p.Parent())
}

func (p Pyra) Sibling(i int) Pyra { return p.Parent().Child(i) }

func (p Pyra) Ancestor(level int) Pyra {
	a := p
	for int(a.Level) > level {
		a = a.Parent()
	}
	return a
}

// IsAncestor reports whether d is a strict descendant of p.
func (p Pyra) IsAncestor(d Pyra) bool {
	return d.Level > p.Level && d.Ancestor(int(p.Level)) == p
}

// NCA returns the finest element of the pyramid tree containing both a and
// b.
func NCA(a, b Pyra) Pyra {
	l := min(int(a.Level), int(b.Level), morton.CommonLevel(MaxLevel, a.X^b.X, a.Y^b.Y, a.Z^b.Z))
	a, b = a.Ancestor(l), b.Ancestor(l)
	for a != b {
		a, b = a.Parent(), b.Parent()
	}
	return a
}

// NumDescendants returns the number of elements levelDiff levels below the
// root pyramid.
func NumDescendants(levelDiff int) uint64 {
	return 2*morton.Pow(8, levelDiff) - morton.Pow(6, levelDiff)
}

// NumDescendants returns the number of elements levelDiff levels below p.
func (p Pyra) NumDescendants(levelDiff int) uint64 {
	if p.IsPyramid() {
		return NumDescendants(levelDiff)
	}
	return tet.NumDescendants(levelDiff)
}

// LinearID returns the position of p's level ancestor among all elements
// at level, or that of its first descendant when level is finer than p.
func (p Pyra) LinearID(level int) uint64 {
	a := p
	if level < int(a.Level) {
		a = a.Ancestor(level)
	}
	var id uint64
	for a.Level > 0 {
		parent := a.Parent()
		d := level - int(a.Level)
		n := a.childIDIn(parent)
		for j := 0; j < n; j++ {
			id += parent.Child(j).NumDescendants(d)
		}
		a = parent
	}
	return id
}

func FromLinearID(level int, id uint64) Pyra {
	p := Root()
	for l := 1; l <= level; l++ {
		for j := 0; j < p.NumChildren(); j++ {
			c := p.Child(j)
			n := c.NumDescendants(level - l)
			if id < n {
				p = c
				break
			}
			id -= n
		}
	}
	return p
}

// FirstDescendant keeps anchor and type, child 0 of either shape sits in
// cube 0 with its parent's type.
func (p Pyra) FirstDescendant(level int) Pyra {
	return Pyra{X: p.X, Y: p.Y, Z: p.Z, Level: int8(level), Type: p.Type}
}

// LastDescendant moves to the far corner, the last child of either shape
// sits in cube 7 with its parent's type.
func (p Pyra) LastDescendant(level int) Pyra {
	off := p.Len() - Len(level)
	return Pyra{X: p.X | off, Y: p.Y | off, Z: p.Z | off, Level: int8(level), Type: p.Type}
}

// Successor returns the element following p's level ancestor in linear
// order. Asking for the successor of the last element at a level panics.
func (p Pyra) Successor(level int) Pyra {
	var a Pyra
	if level <= int(p.Level) {
		a = p.Ancestor(level)
	} else {
		a = p.FirstDescendant(level)
	}
	if a.Level == 0 {
		panic("pyra: contract violation: the root has no successor")
	}
	parent := a.Parent()
	i := a.childIDIn(parent)
	if i == parent.NumChildren()-1 {
		return parent.Successor(level - 1).Child(0)
	}
	return parent.Child(i + 1)
}

func Compare(a, b Pyra) int {
	level := max(int(a.Level), int(b.Level))
	ida, idb := a.LinearID(level), b.LinearID(level)
	if ida == idb {
		return int(a.Level) - int(b.Level)
	}
	if ida < idb {
		return -1
	}
	return 1
}

func IsFamily(fam []Pyra) bool {
	if len(fam) == 0 || fam[0].Level == 0 {
		return false
	}
	parent, ok := fam[0].parent()
	if !ok || len(fam) != parent.NumChildren() {
		return false
	}
	for i, p := range fam {
		if p.Level != fam[0].Level {
			return false
		}
		if pp, ok := p.parent(); !ok || pp != parent || p.childIDIn(parent) != i {
			return false
		}
	}
	return true
}

// IsValid reports whether p is an element of the pyramid tree.
func (p Pyra) IsValid() bool {
	if p.Level < 0 || p.Level > MaxLevel || p.Type < 0 || p.Type >= NumTypes {
		return false
	}
	l := int(p.Level)
	for _, c := range [3]int32{p.X, p.Y, p.Z} {
		if !morton.InRoot(c, MaxLevel) || !morton.IsAligned(c, MaxLevel, l) {
			return false
		}
	}
	a := p
	for a.Level > 0 {
		var ok bool
		if a, ok = a.parent(); !ok {
			return false
		}
	}
	return a == Root()
}
