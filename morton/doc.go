package morton

/*

# Lattice arithmetic shared by the element codecs

Every element of every shape family is addressed by an anchor on an integer
lattice of side 2^MaxLevel, a refinement level and (for the simplex and hybrid
families) a small type. Nothing else is stored. Parents, children, siblings and
linear ids are all recovered from those few integers with shifts and masks: the
position carries the structure.

## Anchors and lengths

An element at level l has side length

	h(l) = 1 << (MaxLevel - l)

and its anchor is always a multiple of h(l). The bit of weight h(l) in each
coordinate tells us in which half of its parent cube the element sits along
that axis. Taken together those bits form the cube id:

	cid = xbit | ybit << 1 | zbit << 2

So for a quad at level 2 on a lattice with MaxLevel 3

	   y
	   8 +-------+-------+
	     |       |       |
	     |   2   |   3   |
	   4 +-------+-------+
	     |       |  [q]  |
	     |   0   |   1   |
	   0 +-------+-------+ x
	     0       4       8

the quad q = (6, 2) at level 2 (h = 2) has x & 2 != 0 and y & 2 != 0, so its
cube id at level 2 is 3, and at level 1 (h = 4) it is 1.

## Morton order

For lattice shapes the linear id at level l is the interleaving of the top l
bits of each coordinate, x least significant. Interleave2/Interleave3 and the
matching Deinterleave functions do this one bit at a time; levels are small
(at most 29) so the loop is not a hot spot compared with the adapt scan.

*/
