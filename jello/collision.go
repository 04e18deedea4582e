// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import "github.com/galvanized/jello/math/lin"

// collision.go assembles the transient, zero-rest-length penalty
// springs described in §3/§4.D: one family against the bounding box,
// one per obstacle the node currently penetrates.

// collisionForceAt accumulates bounding-box and obstacle collision
// forces on the node at position p with velocity v into out. The other
// endpoint of every collision spring has velocity zero, per §4.D.
func collisionForceAt(p, v *lin.V3, bounds float64, obstacles []Obstacle, kCollision, dCollision float64, out *lin.V3) {
	zero := lin.V3{}
	accumulateBounds(p, v, bounds, kCollision, dCollision, out)
	for _, obs := range obstacles {
		b := obs.Bounds()
		if !b.contains(p, 0) {
			continue
		}
		q, ok := obs.ClosestSurfacePoint(p)
		if !ok {
			continue
		}
		var delta lin.V3
		delta.Sub(p, &q)
		h := hookeForce(p, &q, 0, kCollision)
		d := dampingForce(v, &zero, &delta, dCollision)
		out.X += h.X + d.X
		out.Y += h.Y + d.Y
		out.Z += h.Z + d.Z
	}
}

// accumulateBounds applies one collision spring per violated axis of
// the axis-aligned bounding box of half-extent bounds, centered at the
// origin.
func accumulateBounds(p, v *lin.V3, bounds, kCollision, dCollision float64, out *lin.V3) {
	zero := lin.V3{}
	if q, ok := boundsViolation(p.X, bounds); ok {
		surface := lin.V3{X: q, Y: p.Y, Z: p.Z}
		applyCollisionSpring(p, v, &surface, &zero, kCollision, dCollision, out)
	}
	if q, ok := boundsViolation(p.Y, bounds); ok {
		surface := lin.V3{X: p.X, Y: q, Z: p.Z}
		applyCollisionSpring(p, v, &surface, &zero, kCollision, dCollision, out)
	}
	if q, ok := boundsViolation(p.Z, bounds); ok {
		surface := lin.V3{X: p.X, Y: p.Y, Z: q}
		applyCollisionSpring(p, v, &surface, &zero, kCollision, dCollision, out)
	}
}

// boundsViolation returns the snapped coordinate and true if c is
// outside [-bounds,bounds].
func boundsViolation(c, bounds float64) (snapped float64, ok bool) {
	switch {
	case c > bounds:
		return bounds, true
	case c < -bounds:
		return -bounds, true
	}
	return 0, false
}

func applyCollisionSpring(p, v, surface, surfaceVel *lin.V3, kCollision, dCollision float64, out *lin.V3) {
	var delta lin.V3
	delta.Sub(p, surface)
	h := hookeForce(p, surface, 0, kCollision)
	d := dampingForce(v, surfaceVel, &delta, dCollision)
	out.X += h.X + d.X
	out.Y += h.Y + d.Y
	out.Z += h.Z + d.Z
}
