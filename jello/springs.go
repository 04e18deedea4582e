// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import (
	"math"

	"github.com/galvanized/jello/math/lin"
)

// springs.go assembles the structural, shear and bend spring network
// that holds the lattice together. Springs are never stored: they are
// regenerated from the neighbor offset pattern around each node every
// time forces are assembled, following the source's own in-place
// traversal rather than building an explicit edge list.

// offset is one neighbor displacement within a spring family, paired
// with the rest length that family expects at that displacement.
type offset struct {
	di, dj, dk int
	rest       float64 // multiple of the lattice rest length L.
}

// neighbor offsets, grouped by family. Order is fixed so that summed
// forces are reproducible across runs and implementations (§4.C).
var (
	structuralOffsets = []offset{
		{1, 0, 0, 1}, {-1, 0, 0, 1},
		{0, 1, 0, 1}, {0, -1, 0, 1},
		{0, 0, 1, 1}, {0, 0, -1, 1},
	}

	shearOffsets = buildShearOffsets()

	bendOffsets = []offset{
		{2, 0, 0, 2}, {-2, 0, 0, 2},
		{0, 2, 0, 2}, {0, -2, 0, 2},
		{0, 0, 2, 2}, {0, 0, -2, 2},
	}
)

// buildShearOffsets enumerates the 12 face-diagonal neighbors (rest L√2)
// followed by the 8 body-diagonal neighbors (rest L√3).
func buildShearOffsets() []offset {
	offs := make([]offset, 0, 20)
	sqrt2 := math.Sqrt2
	sqrt3 := math.Sqrt(3)
	faceSigns := [2]int{1, -1}
	for _, a := range faceSigns {
		for _, b := range faceSigns {
			offs = append(offs, offset{a, b, 0, sqrt2})
			offs = append(offs, offset{a, 0, b, sqrt2})
			offs = append(offs, offset{0, a, b, sqrt2})
		}
	}
	for _, a := range faceSigns {
		for _, b := range faceSigns {
			for _, c := range faceSigns {
				offs = append(offs, offset{a, b, c, sqrt3})
			}
		}
	}
	return offs
}

// hookeForce returns the Hooke restoring force that position p1 feels
// from a spring anchored at p2 with the given rest length and
// elasticity. Returns the zero vector if p1 and p2 coincide
// (normalize-of-zero, §9).
func hookeForce(p1, p2 *lin.V3, restLen, k float64) lin.V3 {
	var delta lin.V3
	delta.Sub(p1, p2)
	length := delta.Len()
	if length == 0 {
		return lin.V3{}
	}
	var dir lin.V3
	dir.Scale(&delta, 1/length)
	var f lin.V3
	f.Scale(&dir, -k*(length-restLen))
	return f
}

// dampingForce returns the velocity-opposing damping force node 1 feels
// given the separation delta = p1-p2 already computed by the caller.
// Returns the zero vector when delta is degenerate.
func dampingForce(v1, v2, delta *lin.V3, d float64) lin.V3 {
	denom := delta.Dot(delta)
	if denom == 0 {
		return lin.V3{}
	}
	var dv lin.V3
	dv.Sub(v1, v2)
	scalar := -d * dv.Dot(delta) / denom
	var f lin.V3
	f.Scale(delta, scalar)
	return f
}

// springForceAt accumulates the net structural + shear + bend spring
// and damping force on node (i,j,k) into out, reading positions and
// velocities from pos/vel rather than lt.pos/lt.vel directly — lt only
// supplies the lattice topology (indexing and neighbor bounds), so the
// same code serves both the live lattice state and the synthetic RK4
// intermediate states (§4.E). out is not zeroed first; callers own
// that so acceleration assembly can add collision terms into the same
// slot.
func springForceAt(lt *lattice, pos, vel []lin.V3, i, j, k int, kElastic, dElastic float64, out *lin.V3) {
	self := lt.idx(i, j, k)
	p1, v1 := &pos[self], &vel[self]
	accumulateFamily(lt, pos, vel, i, j, k, p1, v1, structuralOffsets, kElastic, dElastic, out)
	accumulateFamily(lt, pos, vel, i, j, k, p1, v1, shearOffsets, kElastic, dElastic, out)
	accumulateFamily(lt, pos, vel, i, j, k, p1, v1, bendOffsets, kElastic, dElastic, out)
}

func accumulateFamily(lt *lattice, pos, vel []lin.V3, i, j, k int, p1, v1 *lin.V3, offs []offset, kElastic, dElastic float64, out *lin.V3) {
	for _, o := range offs {
		n, ok := lt.at(i+o.di, j+o.dj, k+o.dk)
		if !ok {
			continue
		}
		p2, v2 := &pos[n], &vel[n]
		restLen := o.rest * lt.rest
		h := hookeForce(p1, p2, restLen, kElastic)
		var delta lin.V3
		delta.Sub(p1, p2)
		d := dampingForce(v1, v2, &delta, dElastic)
		out.X += h.X + d.X
		out.Y += h.Y + d.Y
		out.Z += h.Z + d.Z
	}
}
