package quad

import "math/bits"

// Faces of a quad, as used by transition types.
const (
	FaceLeft = iota
	FaceRight
	FaceBottom
	FaceTop
)

// NumTransitionTypes counts the transition types, one bit per face.
const NumTransitionTypes = 16

// TransitionType marks the faces of a quad that carry a hanging node at
// their midpoint, bit f for face f.
type TransitionType uint8

func (t TransitionType) IsSplit(face int) bool { return t&(1<<face) != 0 }

// NumSubelements returns how many triangles a quad of type t splits into:
// one per face plus one more per split face.
func NumSubelements(t TransitionType) int {
	return 4 + bits.OnesCount8(uint8(t)&(NumTransitionTypes-1))
}

// Subelement is a triangle of a transition quad. All subelements of a quad
// share its centre as their last vertex.
type Subelement struct {
	Quad Quad
	Type TransitionType
	ID   int8
}

// boundary returns the corners and hanging nodes of q for type t in
// clockwise order, starting at the lower left corner.
func (q Quad) boundary(t TransitionType) [8][2]int32 {
	h := q.Len()
	m := h >> 1
	var pts [8][2]int32
	n := 0
	add := func(x, y int32) {
		pts[n] = [2]int32{q.X + x, q.Y + y}
		n++
	}
	add(0, 0)
	if t.IsSplit(FaceLeft) {
		add(0, m)
	}
	add(0, h)
	if t.IsSplit(FaceTop) {
		add(m, h)
	}
	add(h, h)
	if t.IsSplit(FaceRight) {
		add(h, m)
	}
	add(h, 0)
	if t.IsSplit(FaceBottom) {
		add(m, 0)
	}
	return pts
}

// Subelements appends the subelements of q for type t to dst. Ids run
// clockwise from the lower part of the left face. q must be finer than
// MaxLevel, so that its centre lies on the lattice.
func (q Quad) Subelements(t TransitionType, dst []Subelement) []Subelement {
	for i := 0; i < NumSubelements(t); i++ {
		dst = append(dst, Subelement{Quad: q, Type: t, ID: int8(i)})
	}
	return dst
}

// Vertices returns the triangle of s: two consecutive boundary points and
// the centre of the quad.
func (s Subelement) Vertices() [3][2]int32 {
	pts := s.Quad.boundary(s.Type)
	n := NumSubelements(s.Type)
	m := s.Quad.Len() >> 1
	return [3][2]int32{
		pts[s.ID],
		pts[(int(s.ID)+1)%n],
		{s.Quad.X + m, s.Quad.Y + m},
	}
}

// IsValid reports whether s is one of the subelements of a valid quad
// below MaxLevel.
func (s Subelement) IsValid() bool {
	return s.Quad.IsValid() && int(s.Quad.Level) < MaxLevel &&
		s.Type < NumTransitionTypes && s.ID >= 0 && int(s.ID) < NumSubelements(s.Type)
}
