package forest_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-meshforest/forest"
	"github.com/forestrie/go-meshforest/morton"
	"github.com/forestrie/go-meshforest/scheme"
)

const (
	ringInner  = 0.35
	ringOuter  = 0.45
	holeRadius = 0.25
	ringLevel  = 4
)

// distance returns how far the centre of e's cube lies from the centre of
// the root, in units of the root side.
func distance(s scheme.Scheme, e scheme.Element) float64 {
	root := float64(morton.Len(s.MaxLevel(), 0))
	h := float64(morton.Len(s.MaxLevel(), int(e.Level)))
	dx := (float64(e.X)+h/2)/root - 0.5
	dy := (float64(e.Y)+h/2)/root - 0.5
	dz := 0.0
	if s.Dim() == 3 {
		dz = (float64(e.Z)+h/2)/root - 0.5
	}
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func inRing(d float64) bool { return d >= ringInner && d <= ringOuter }

func refineRing(_, _ *forest.Forest, _, _ int, s scheme.Scheme, es []scheme.Element) forest.Action {
	if int(es[0].Level) < ringLevel && inRing(distance(s, es[0])) {
		return forest.Refine
	}
	return forest.Keep
}

// weight is the number of ringLevel elements e covers.
func weight(s scheme.Scheme, e scheme.Element) uint64 {
	return s.NumDescendants(ringLevel - int(e.Level))
}

func TestRefineRingThenRemoveHole(t *testing.T) {
	for _, shape := range []scheme.Shape{scheme.Quad, scheme.Triangle, scheme.Hex, scheme.Tet} {
		t.Run(shape.String(), func(t *testing.T) {
			tc := newTestContext(t)
			src := tc.Uniform(2, []scheme.Shape{shape})
			s := scheme.Must(shape)

			ring := tc.Adapt(src, refineRing, true)
			tc.RequireSorted(ring)
			require.NotZero(t, ring.Stats().Refined)
			for _, e := range tc.Elements(ring, 0) {
				if inRing(distance(s, e)) {
					assert.Equal(t, int8(ringLevel), e.Level, "element %s", e)
				}
			}

			var mu sync.Mutex
			var removed uint64
			holed := tc.Adapt(ring, func(_, _ *forest.Forest, _, _ int, s scheme.Scheme, es []scheme.Element) forest.Action {
				if distance(s, es[0]) < holeRadius {
					mu.Lock()
					removed += weight(s, es[0])
					mu.Unlock()
					return forest.Remove
				}
				return forest.Keep
			}, false)

			tc.RequireSorted(holed)
			require.NotZero(t, holed.Stats().Removed)
			var kept uint64
			for _, e := range tc.Elements(holed, 0) {
				assert.GreaterOrEqual(t, distance(s, e), holeRadius, "element %s", e)
				kept += weight(s, e)
			}
			// The hole and the rest still cover the root exactly.
			assert.Equal(t, s.NumDescendants(ringLevel), kept+removed)

			// Coarsening across the hole leaves the gap in place.
			coarse := tc.Adapt(holed, func(_, _ *forest.Forest, _, _ int, _ scheme.Scheme, es []scheme.Element) forest.Action {
				if len(es) > 1 && int(es[0].Level) > 2 {
					return forest.Coarsen
				}
				return forest.Keep
			}, true)
			tc.RequireSorted(coarse)
			var covered uint64
			for _, e := range tc.Elements(coarse, 0) {
				covered += weight(s, e)
			}
			assert.LessOrEqual(t, covered, kept+removed)
			assert.GreaterOrEqual(t, covered, kept)
		})
	}
}
