// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import "github.com/galvanized/jello/math/lin"

// lattice.go owns the cubic arrangement of mass points that discretizes
// the soft cube, and the flat indexing and neighbor enumeration that the
// spring and collision assemblies walk every tick.

// lattice is the (P+1)^3 grid of point masses. Positions and velocities
// are stored as flat, parallel slices indexed by idx(i,j,k) so that no
// nested containers or per-node allocation is needed once built.
type lattice struct {
	p    int       // lattice resolution: P+1 nodes per edge.
	rest float64   // rest length between structural neighbors: 1/P.
	pos  []lin.V3  // node positions, length (p+1)^3.
	vel  []lin.V3  // node velocities, length (p+1)^3.
}

// newLattice builds a lattice of resolution p, centered at center,
// filling the unit cube [-1/2,1/2]^3 translated to that center.
func newLattice(p int, center *lin.V3) *lattice {
	n := p + 1
	lt := &lattice{
		p:    p,
		rest: 1.0 / float64(p),
		pos:  make([]lin.V3, n*n*n),
		vel:  make([]lin.V3, n*n*n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				x := center.X - 0.5 + float64(i)*lt.rest
				y := center.Y - 0.5 + float64(j)*lt.rest
				z := center.Z - 0.5 + float64(k)*lt.rest
				lt.pos[lt.idx(i, j, k)] = lin.V3{X: x, Y: y, Z: z}
			}
		}
	}
	return lt
}

// count returns the total number of nodes: (P+1)^3.
func (lt *lattice) count() int { return len(lt.pos) }

// idx returns the flat slice index for lattice coordinate (i,j,k).
// Callers must ensure i,j,k are in [0,P] — use at() for a bounds-checked
// lookup that participates in neighbor enumeration.
func (lt *lattice) idx(i, j, k int) int {
	n := lt.p + 1
	return i*n*n + j*n + k
}

// at returns the flat index for (i,j,k) and true if all three coordinates
// are within [0,P]. Returns (0, false) for any out-of-range coordinate,
// matching the edge policy of the spring force assembly: a neighbor that
// doesn't exist contributes nothing.
func (lt *lattice) at(i, j, k int) (index int, ok bool) {
	if i < 0 || i > lt.p || j < 0 || j > lt.p || k < 0 || k > lt.p {
		return 0, false
	}
	return lt.idx(i, j, k), true
}

// coord recovers the (i,j,k) lattice coordinate for a flat index.
func (lt *lattice) coord(index int) (i, j, k int) {
	n := lt.p + 1
	i = index / (n * n)
	rem := index % (n * n)
	j = rem / n
	k = rem % n
	return i, j, k
}
