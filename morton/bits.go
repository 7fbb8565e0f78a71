package morton

import "math/bits"

// Len returns the side length of an element at level on a lattice whose root
// has side 1 << maxLevel.
func Len(maxLevel, level int) int32 {
	return int32(1) << (maxLevel - level)
}

// IsAligned reports whether c is a multiple of the side length at level.
func IsAligned(c int32, maxLevel, level int) bool {
	return c&(Len(maxLevel, level)-1) == 0
}

// InRoot reports whether c is a lattice coordinate inside the root cell.
func InRoot(c int32, maxLevel int) bool {
	return c >= 0 && c < Len(maxLevel, 0)
}

// CubeID2 returns the position, 0..3, of the level cell inside its parent cell.
// Level 0 is always 0.
func CubeID2(x, y int32, maxLevel, level int) int {
	if level == 0 {
		return 0
	}
	h := Len(maxLevel, level)
	id := 0
	if x&h != 0 {
		id |= 0x01
	}
	if y&h != 0 {
		id |= 0x02
	}
	return id
}

// CubeID3 returns the position, 0..7, of the level cell inside its parent cell.
func CubeID3(x, y, z int32, maxLevel, level int) int {
	id := CubeID2(x, y, maxLevel, level)
	if level > 0 && z&Len(maxLevel, level) != 0 {
		id |= 0x04
	}
	return id
}

// Interleave2 builds the Morton index of the level top most bits of x and y.
func Interleave2(x, y int32, maxLevel, level int) uint64 {
	var id uint64
	shift := maxLevel - level
	for i := 0; i < level; i++ {
		id |= uint64((x>>(shift+i))&1) << (2 * i)
		id |= uint64((y>>(shift+i))&1) << (2*i + 1)
	}
	return id
}

// Deinterleave2 is the inverse of Interleave2.
func Deinterleave2(id uint64, maxLevel, level int) (x, y int32) {
	shift := maxLevel - level
	for i := 0; i < level; i++ {
		x |= int32((id>>(2*i))&1) << (shift + i)
		y |= int32((id>>(2*i+1))&1) << (shift + i)
	}
	return x, y
}

// Interleave3 builds the Morton index of the level top most bits of x, y and z.
func Interleave3(x, y, z int32, maxLevel, level int) uint64 {
	var id uint64
	shift := maxLevel - level
	for i := 0; i < level; i++ {
		id |= uint64((x>>(shift+i))&1) << (3 * i)
		id |= uint64((y>>(shift+i))&1) << (3*i + 1)
		id |= uint64((z>>(shift+i))&1) << (3*i + 2)
	}
	return id
}

// Deinterleave3 is the inverse of Interleave3.
func Deinterleave3(id uint64, maxLevel, level int) (x, y, z int32) {
	shift := maxLevel - level
	for i := 0; i < level; i++ {
		x |= int32((id>>(3*i))&1) << (shift + i)
		y |= int32((id>>(3*i+1))&1) << (shift + i)
		z |= int32((id>>(3*i+2))&1) << (shift + i)
	}
	return x, y, z
}

// Pow returns base**exp for the small exponents used in descendant counts.
// Overflow wraps, callers rely on the modular result for the largest counts.
func Pow(base uint64, exp int) uint64 {
	r := uint64(1)
	for ; exp > 0; exp-- {
		r *= base
	}
	return r
}

// CommonLevel returns the finest level at which two anchors, given by the
// xor of their coordinates, fall in the same cell.
func CommonLevel(maxLevel int, diffs ...int32) int {
	var or uint32
	for _, d := range diffs {
		or |= uint32(d)
	}
	return maxLevel - bits.Len32(or)
}
