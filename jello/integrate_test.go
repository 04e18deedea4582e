// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import (
	"math"
	"testing"

	"github.com/galvanized/jello/math/lin"
)

// An isolated cube with zero gravity, no obstacles and no initial
// velocity should stay at rest: every spring is already at its rest
// length, so RK4 should not move any node.
func TestRK4RestEquilibrium(t *testing.T) {
	lt := newLattice(3, &lin.V3{})
	tun := DefaultTunables()
	tun.Gravity = 0
	s := newScratch(lt.count())
	before := append([]lin.V3(nil), lt.pos...)

	stepRK4(lt, nil, &tun, s, 100)

	for i := range lt.pos {
		if math.Abs(lt.pos[i].X-before[i].X) > 1e-9 ||
			math.Abs(lt.pos[i].Y-before[i].Y) > 1e-9 ||
			math.Abs(lt.pos[i].Z-before[i].Z) > 1e-9 {
			t.Fatalf("node %d moved at rest: %+v -> %+v", i, before[i], lt.pos[i])
		}
	}
}

// Free fall (no springs engaged, since every node falls together and
// relative positions don't change) should match v = g*t to first order
// for a single RK4 step with zero damping and zero collisions.
func TestRK4FreeFallMatchesGravity(t *testing.T) {
	lt := newLattice(1, &lin.V3{})
	tun := DefaultTunables()
	tun.Gravity = 9.8
	tun.DtMs = 10 // h = 0.01s
	tun.KElastic = 0
	tun.DElastic = 0
	tun.KCollision = 0 // isolate gravity from the bounding-box springs.
	tun.DCollision = 0
	s := newScratch(lt.count())

	stepRK4(lt, nil, &tun, s, 1000)

	h := tun.DtMs / 1000
	wantV := -tun.Gravity * h
	for i := range lt.vel {
		if math.Abs(lt.vel[i].Y-wantV) > 1e-6 {
			t.Errorf("node %d vel.Y = %v, want %v", i, lt.vel[i].Y, wantV)
		}
	}
}

func TestClampAxes(t *testing.T) {
	p := lin.V3{X: 10, Y: -10, Z: 0.5}
	if !clampAxes(&p, 4) {
		t.Errorf("clampAxes should report a clamp occurred")
	}
	if p.X != 4 || p.Y != -4 || p.Z != 0.5 {
		t.Errorf("clamped point = %+v, want (4,-4,0.5)", p)
	}
	q := lin.V3{X: 1, Y: 1, Z: 1}
	if clampAxes(&q, 4) {
		t.Errorf("clampAxes should report no clamp for an in-range point")
	}
}

func TestStepEulerDoesNotClamp(t *testing.T) {
	lt := newLattice(1, &lin.V3{})
	tun := DefaultTunables()
	tun.Gravity = 1e6
	tun.DtMs = 10
	s := newScratch(lt.count())

	// First step accelerates from rest; the resulting velocity only
	// moves positions on the second step.
	stepEuler(lt, nil, &tun, s)
	stepEuler(lt, nil, &tun, s)

	overBounds := false
	for _, p := range lt.pos {
		if p.Y < -tun.Bounds {
			overBounds = true
		}
	}
	if !overBounds {
		t.Fatalf("test setup expected the huge gravity step to push nodes past bounds")
	}
}

func TestAdvance(t *testing.T) {
	base := []lin.V3{{X: 1, Y: 2, Z: 3}}
	delta := []lin.V3{{X: 1, Y: 1, Z: 1}}
	dst := make([]lin.V3, 1)
	advance(dst, base, delta, 0.5)
	if dst[0].X != 1.5 || dst[0].Y != 2.5 || dst[0].Z != 3.5 {
		t.Errorf("advance result = %+v, want (1.5,2.5,3.5)", dst[0])
	}
}
