/*
Package pyra implements the hybrid pyramid codec.

A pyramid tree mixes two shapes. Pyramids of type 6 have their square base
on the bottom face of their cube and the apex at the far top corner, the
region z <= x, z <= y. Type 7 is the mirror image, base on the top face and
apex at the anchor, the region z >= x, z >= y. The other types, 0 through 5,
are Kuhn tetrahedra exactly as in package tet.

A pyramid refines into ten children, six pyramids and four tetrahedra, all
ordered by cube id and then by type:

	type 6: (0,6) (1,3) (1,6) (2,0) (2,6) (3,0) (3,3) (3,6) (3,7) (7,6)
	type 7: (0,7) (4,0) (4,3) (4,6) (4,7) (5,3) (5,7) (6,0) (6,7) (7,7)

Tetrahedra refine by Bey refinement, so once a region turns simplicial it
stays so. Pyramid type 6 is the union of Kuhn types 1 and 2 and type 7 the
union of types 4 and 5. It follows that the element containing a point at
level k is a pyramid exactly when the point's Kuhn types at levels 1..k avoid
0 and 3.

# Parents of tetrahedra

The parent of a pyramid is a pyramid and is read from a table. The parent of
a tetrahedron needs more care, the shape of the parent is not recorded
anywhere:

 1. Types 1, 2, 4 and 5 never occur as pyramid children, the parent is the
    Bey parent.
 2. Types 0 and 3 are pyramid children only when they touch the significant
    point of the enclosing cube one level up, the centre of its bottom face
    for a type 6 parent or of its top face for a type 7 parent. The test
    compares the tetrahedron's vertices to that point, all integer.
 3. A hit is only a candidate. The parent is a pyramid when every Bey
    ancestor at levels 1 and below the candidate is of type 1, 2, 4 or 5.

# Linear ids

Subtrees have different sizes. A pyramid has 2*8^d - 6^d descendants d
levels down, a tetrahedron 8^d. The linear id of an element at a level sums,
level by level, the descendant counts of the siblings preceding each
ancestor. The count at level 21 of the root is 2^64 - 6^21, which still fits a
uint64 when computed with wrapping arithmetic.
*/
package pyra
