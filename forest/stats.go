package forest

import "fmt"

// Stats counts what an adaptation did. Refined counts elements replaced by
// their children, Coarsened counts families replaced by their parent and
// Vetoed counts refinements refused at the maximum level.
type Stats struct {
	ElementsIn  uint64
	ElementsOut uint64
	Refined     uint64
	Kept        uint64
	Coarsened   uint64
	Removed     uint64
	Vetoed      uint64
}

func (s *Stats) Add(o Stats) {
	s.ElementsIn += o.ElementsIn
	s.ElementsOut += o.ElementsOut
	s.Refined += o.Refined
	s.Kept += o.Kept
	s.Coarsened += o.Coarsened
	s.Removed += o.Removed
	s.Vetoed += o.Vetoed
}

func (s Stats) String() string {
	return fmt.Sprintf("in=%d out=%d refined=%d kept=%d coarsened=%d removed=%d vetoed=%d",
		s.ElementsIn, s.ElementsOut, s.Refined, s.Kept, s.Coarsened, s.Removed, s.Vetoed)
}
