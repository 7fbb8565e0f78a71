// Package tet implements the codec for Kuhn tetrahedra.
//
// The unit cube splits into six tetrahedra, one per ordering of the axes:
//
//	type 0: x >= z >= y    type 3: y >= z >= x
//	type 1: x >= y >= z    type 4: z >= y >= x
//	type 2: y >= x >= z    type 5: z >= x >= y
//
// The root tetrahedron has type 0. Bey refinement splits a tetrahedron into
// eight children, each again a Kuhn tetrahedron in a subcube. Children are
// numbered in TM order, by cube id and then by type, and that number is the
// Iloc. The TM index of a tetrahedron is the base 8 number made of the Ilocs
// along its ancestry.
package tet

import (
	"github.com/forestrie/go-meshforest/morton"
)

const (
	Dim         = 3
	MaxLevel    = 21
	NumChildren = 8
	NumTypes    = 6
)

var (
	cidTypeToParentType = [8][NumTypes]int8{
		{0, 1, 2, 3, 4, 5},
		{0, 1, 1, 1, 0, 0},
		{2, 2, 2, 3, 3, 3},
		{1, 1, 2, 2, 2, 1},
		{5, 5, 4, 4, 4, 5},
		{0, 0, 0, 5, 5, 5},
		{4, 3, 3, 3, 4, 4},
		{0, 1, 2, 3, 4, 5},
	}
	typeCidToIloc = [NumTypes][8]int8{
		{0, 1, 1, 4, 1, 4, 4, 7},
		{0, 1, 2, 5, 2, 5, 4, 7},
		{0, 2, 3, 4, 1, 6, 5, 7},
		{0, 3, 1, 5, 2, 4, 6, 7},
		{0, 2, 2, 6, 3, 5, 5, 7},
		{0, 3, 3, 6, 3, 6, 6, 7},
	}
	parentTypeIlocToType = [NumTypes][NumChildren]int8{
		{0, 0, 4, 5, 0, 1, 2, 0},
		{1, 1, 2, 3, 0, 1, 5, 1},
		{2, 0, 1, 2, 2, 3, 4, 2},
		{3, 3, 4, 5, 1, 2, 3, 3},
		{4, 2, 3, 4, 0, 4, 5, 4},
		{5, 0, 1, 5, 3, 4, 5, 5},
	}
	// typeAxes lists, per type, the axes from largest to smallest coordinate.
	typeAxes = [NumTypes][3]int{
		{0, 2, 1},
		{0, 1, 2},
		{1, 0, 2},
		{1, 2, 0},
		{2, 1, 0},
		{2, 0, 1},
	}
	parentTypeIlocToCid = [NumTypes][NumChildren]int8{
		{0, 1, 1, 1, 5, 5, 5, 7},
		{0, 1, 1, 1, 3, 3, 3, 7},
		{0, 2, 2, 2, 3, 3, 3, 7},
		{0, 2, 2, 2, 6, 6, 6, 7},
		{0, 4, 4, 4, 6, 6, 6, 7},
		{0, 4, 4, 4, 5, 5, 5, 7},
	}
)

// Tet is a tetrahedron given by the anchor of its cube, its level and its
// Kuhn type.
type Tet struct {
	X, Y, Z int32
	Level   int8
	Type    int8
}

func Root() Tet { return Tet{} }

func Len(level int) int32 { return morton.Len(MaxLevel, level) }

func (t Tet) Len() int32 { return Len(int(t.Level)) }

// CubeID returns the cube id of t's anchor at level.
func (t Tet) CubeID(level int) int {
	return morton.CubeID3(t.X, t.Y, t.Z, MaxLevel, level)
}

// ParentType returns the type of t's parent.
func (t Tet) ParentType() int8 {
	return cidTypeToParentType[t.CubeID(int(t.Level))][t.Type]
}

// ChildID returns the Iloc of t in its parent.
func (t Tet) ChildID() int {
	if t.Level == 0 {
		return 0
	}
	return int(typeCidToIloc[t.Type][t.CubeID(int(t.Level))])
}

// ChildAt returns the child with the given cube id and type. It does not
// check the pair is a child of t.
func (t Tet) ChildAt(cid int, typ int8) Tet {
	h := Len(int(t.Level) + 1)
	c := Tet{X: t.X, Y: t.Y, Z: t.Z, Level: t.Level + 1, Type: typ}
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

func (t Tet) Child(i int) Tet {
	return t.ChildAt(int(parentTypeIlocToCid[t.Type][i]), parentTypeIlocToType[t.Type][i])
}

func (t Tet) Children() [NumChildren]Tet {
	var cs [NumChildren]Tet
	for i := range cs {
		cs[i] = t.Child(i)
	}
	return cs
}

// Vertex returns the coordinates of vertex i, 0..3. Vertex 0 is the anchor
// and vertex 3 the far corner of the cube.
func (t Tet) Vertex(i int) [3]int32 {
	v := [3]int32{t.X, t.Y, t.Z}
	h := t.Len()
	axes := typeAxes[t.Type]
	for k := 0; k < i; k++ {
		v[axes[k]] += h
	}
	return v
}

func (t Tet) Parent() Tet {
	h := t.Len()
	return Tet{
		X:     t.X &^ h,
		Y:     t.Y &^ h,
		Z:     t.Z &^ h,
		Level: t.Level - 1,
		Type:  t.ParentType(),
	}
}

func (t Tet) Sibling(i int) Tet { return t.Parent().Child(i) }

func (t Tet) Ancestor(level int) Tet {
	a := t
	for int(a.Level) > level {
		a = a.Parent()
	}
	return a
}

// IsAncestor reports whether d is a strict descendant of t.
func (t Tet) IsAncestor(d Tet) bool {
	return d.Level > t.Level && d.Ancestor(int(t.Level)) == t
}

// NCA returns the finest tetrahedron containing both a and b.
func NCA(a, b Tet) Tet {
	l := min(int(a.Level), int(b.Level), morton.CommonLevel(MaxLevel, a.X^b.X, a.Y^b.Y, a.Z^b.Z))
	a, b = a.Ancestor(l), b.Ancestor(l)
	for a != b {
		a, b = a.Parent(), b.Parent()
	}
	return a
}

// LinearID returns the TM index of t's level ancestor, or of its first
// descendant when level is finer than t.
func (t Tet) LinearID(level int) uint64 {
	var id uint64
	a := t
	if level < int(a.Level) {
		a = a.Ancestor(level)
	}
	typ := a.Type
	for l := int(a.Level); l > 0; l-- {
		cid := a.CubeID(l)
		id |= uint64(typeCidToIloc[typ][cid]) << (3 * (int(a.Level) - l))
		typ = cidTypeToParentType[cid][typ]
	}
	return id << (3 * (level - int(a.Level)))
}

func FromLinearID(level int, id uint64) Tet {
	t := Root()
	for l := 1; l <= level; l++ {
		t = t.Child(int(id>>(3*(level-l))) & 0x07)
	}
	return t
}

// FirstDescendant keeps the anchor and type: child 0 always sits in cube 0
// with its parent's type.
func (t Tet) FirstDescendant(level int) Tet {
	return Tet{X: t.X, Y: t.Y, Z: t.Z, Level: int8(level), Type: t.Type}
}

// LastDescendant moves to the far corner; child 7 sits in cube 7 with its
// parent's type.
func (t Tet) LastDescendant(level int) Tet {
	off := t.Len() - Len(level)
	return Tet{X: t.X | off, Y: t.Y | off, Z: t.Z | off, Level: int8(level), Type: t.Type}
}

func (t Tet) Successor(level int) Tet {
	return FromLinearID(level, t.LinearID(level)+1)
}

func NumDescendants(levelDiff int) uint64 {
	return uint64(1) << (Dim * levelDiff)
}

func Compare(a, b Tet) int {
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

func IsFamily(fam []Tet) bool {
	if len(fam) != NumChildren || fam[0].Level == 0 {
		return false
	}
	parent := fam[0].Parent()
	for i, t := range fam {
		if t.Level != fam[0].Level || t.Parent() != parent || t.ChildID() != i {
			return false
		}
	}
	return true
}

// IsWellFormed checks level, type and anchor alignment without looking at
// the ancestry.
func (t Tet) IsWellFormed() bool {
	if t.Level < 0 || t.Level > MaxLevel || t.Type < 0 || t.Type >= NumTypes {
		return false
	}
	l := int(t.Level)
	for _, c := range [3]int32{t.X, t.Y, t.Z} {
		if !morton.InRoot(c, MaxLevel) || !morton.IsAligned(c, MaxLevel, l) {
			return false
		}
	}
	return true
}

// IsValid reports whether t is well formed and inside the root tetrahedron.
func (t Tet) IsValid() bool {
	return t.IsWellFormed() && t.Ancestor(0) == Root()
}
