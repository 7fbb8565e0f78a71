// Package tri implements the codec for Kuhn triangles.
//
// The root triangle covers the lower right half, x >= y, of the root square
// and has type 0. Triangles of type 1 cover y >= x of their square. Each
// triangle has four children, numbered in TM order: by cube id first and by
// type second. The local index of a child is its Iloc.
package tri

import (
	"github.com/forestrie/go-meshforest/morton"
)

const (
	Dim         = 2
	MaxLevel    = 29
	NumChildren = 4
	NumTypes    = 2
)

var (
	cidTypeToParentType = [4][NumTypes]int8{
		{0, 1},
		{0, 0},
		{1, 1},
		{0, 1},
	}
	typeCidToIloc = [NumTypes][4]int8{
		{0, 1, 1, 3},
		{0, 2, 2, 3},
	}
	parentTypeIlocToType = [NumTypes][NumChildren]int8{
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	parentTypeIlocToCid = [NumTypes][NumChildren]int8{
		{0, 1, 1, 3},
		{0, 2, 2, 3},
	}
)

type Tri struct {
	X, Y  int32
	Level int8
	Type  int8
}

func Root() Tri { return Tri{} }

func Len(level int) int32 { return morton.Len(MaxLevel, level) }

func (t Tri) Len() int32 { return Len(int(t.Level)) }

func (t Tri) CubeID(level int) int {
	return morton.CubeID2(t.X, t.Y, MaxLevel, level)
}

// ChildID returns the Iloc of t in its parent.
func (t Tri) ChildID() int {
	if t.Level == 0 {
		return 0
	}
	return int(typeCidToIloc[t.Type][t.CubeID(int(t.Level))])
}

func (t Tri) Child(i int) Tri {
	h := Len(int(t.Level) + 1)
	cid := parentTypeIlocToCid[t.Type][i]
	c := Tri{X: t.X, Y: t.Y, Level: t.Level + 1, Type: parentTypeIlocToType[t.Type][i]}
	if cid&0x01 != 0 {
		c.X |= h
	}
	if cid&0x02 != 0 {
		c.Y |= h
	}
	return c
}

func (t Tri) Children() [NumChildren]Tri {
	var cs [NumChildren]Tri
	for i := range cs {
		cs[i] = t.Child(i)
	}
	return cs
}

func (t Tri) Parent() Tri {
	h := t.Len()
	return Tri{
		X:     t.X &^ h,
		Y:     t.Y &^ h,
		Level: t.Level - 1,
		Type:  cidTypeToParentType[t.CubeID(int(t.Level))][t.Type],
	}
}

func (t Tri) Sibling(i int) Tri { return t.Parent().Child(i) }

func (t Tri) Ancestor(level int) Tri {
	a := t
	for int(a.Level) > level {
		a = a.Parent()
	}
	return a
}

// IsAncestor reports whether d is a strict descendant of t.
func (t Tri) IsAncestor(d Tri) bool {
	return d.Level > t.Level && d.Ancestor(int(t.Level)) == t
}

// NCA returns the finest triangle containing both a and b. Their ancestors
// share a cube from the common level of the anchors up but may differ in
// type, so the search continues upwards from there.
func NCA(a, b Tri) Tri {
	l := min(int(a.Level), int(b.Level), morton.CommonLevel(MaxLevel, a.X^b.X, a.Y^b.Y))
	a, b = a.Ancestor(l), b.Ancestor(l)
	for a != b {
		a, b = a.Parent(), b.Parent()
	}
	return a
}

// LinearID returns the TM index of t's level ancestor, or of its first
// descendant when level is finer than t.
func (t Tri) LinearID(level int) uint64 {
	var id uint64
	a := t
	if level < int(a.Level) {
		a = a.Ancestor(level)
	}
	typ := a.Type
	for l := int(a.Level); l > 0; l-- {
		cid := a.CubeID(l)
		id |= uint64(typeCidToIloc[typ][cid]) << (2 * (int(a.Level) - l))
		typ = cidTypeToParentType[cid][typ]
	}
	return id << (2 * (level - int(a.Level)))
}

func FromLinearID(level int, id uint64) Tri {
	t := Root()
	for l := 1; l <= level; l++ {
		t = t.Child(int(id>>(2*(level-l))) & 0x03)
	}
	return t
}

func (t Tri) FirstDescendant(level int) Tri {
	return Tri{X: t.X, Y: t.Y, Level: int8(level), Type: t.Type}
}

func (t Tri) LastDescendant(level int) Tri {
	off := t.Len() - Len(level)
	return Tri{X: t.X | off, Y: t.Y | off, Level: int8(level), Type: t.Type}
}

func (t Tri) Successor(level int) Tri {
	return FromLinearID(level, t.LinearID(level)+1)
}

func NumDescendants(levelDiff int) uint64 {
	return uint64(1) << (Dim * levelDiff)
}

func Compare(a, b Tri) int {
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

func IsFamily(fam []Tri) bool {
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

// IsValid reports whether t is a well formed triangle inside the root.
func (t Tri) IsValid() bool {
	if t.Level < 0 || t.Level > MaxLevel || t.Type < 0 || t.Type >= NumTypes {
		return false
	}
	l := int(t.Level)
	for _, c := range [2]int32{t.X, t.Y} {
		if !morton.InRoot(c, MaxLevel) || !morton.IsAligned(c, MaxLevel, l) {
			return false
		}
	}
	return t.Ancestor(0) == Root()
}
