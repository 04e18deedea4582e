// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import (
	"math"
	"testing"

	"github.com/galvanized/jello/math/lin"
)

func TestHookeForceAtRestIsZero(t *testing.T) {
	p1 := lin.V3{X: 0, Y: 0, Z: 0}
	p2 := lin.V3{X: 1, Y: 0, Z: 0}
	f := hookeForce(&p1, &p2, 1, 500)
	if f.X != 0 || f.Y != 0 || f.Z != 0 {
		t.Errorf("hookeForce at rest length = %+v, want zero", f)
	}
}

func TestHookeForcePullsTogetherWhenStretched(t *testing.T) {
	p1 := lin.V3{X: 0, Y: 0, Z: 0}
	p2 := lin.V3{X: 2, Y: 0, Z: 0}
	f := hookeForce(&p1, &p2, 1, 10)
	if f.X <= 0 {
		t.Errorf("stretched spring should pull p1 toward p2 (positive X), got %+v", f)
	}
}

func TestHookeForceDegenerateIsZero(t *testing.T) {
	p := lin.V3{X: 3, Y: 3, Z: 3}
	f := hookeForce(&p, &p, 1, 500)
	if f.X != 0 || f.Y != 0 || f.Z != 0 {
		t.Errorf("coincident nodes should produce zero force, got %+v", f)
	}
}

func TestDampingForceOpposesApproach(t *testing.T) {
	p1 := lin.V3{X: 0, Y: 0, Z: 0}
	p2 := lin.V3{X: 1, Y: 0, Z: 0}
	v1 := lin.V3{X: 1, Y: 0, Z: 0} // p1 moving toward p2
	v2 := lin.V3{}
	var delta lin.V3
	delta.Sub(&p1, &p2)
	f := dampingForce(&v1, &v2, &delta, 1)
	if f.X >= 0 {
		t.Errorf("approaching nodes should feel a separating damping force, got %+v", f)
	}
}

func TestShearOffsetCount(t *testing.T) {
	if got, want := len(shearOffsets), 20; got != want {
		t.Errorf("len(shearOffsets) = %d, want %d (12 face-diagonal + 8 body-diagonal)", got, want)
	}
	for _, o := range shearOffsets {
		want := math.Sqrt2
		if o.di != 0 && o.dj != 0 && o.dk != 0 {
			want = math.Sqrt(3)
		}
		if math.Abs(o.rest-want) > 1e-12 {
			t.Errorf("offset %+v rest = %v, want %v", o, o.rest, want)
		}
	}
}

func TestSpringForceZeroAtRest(t *testing.T) {
	lt := newLattice(2, &lin.V3{})
	var fA, fB lin.V3
	springForceAt(lt, lt.pos, lt.vel, 0, 0, 0, 500, 1, &fA)
	springForceAt(lt, lt.pos, lt.vel, 1, 0, 0, 500, 1, &fB)
	if fA.X != 0 || fA.Y != 0 || fA.Z != 0 {
		t.Errorf("resting lattice should have zero net spring force at (0,0,0), got %+v", fA)
	}
	if fB.X != 0 || fB.Y != 0 || fB.Z != 0 {
		t.Errorf("resting lattice should have zero net spring force at (1,0,0), got %+v", fB)
	}
}

func TestSpringForcePullsStretchedCorner(t *testing.T) {
	lt := newLattice(1, &lin.V3{})
	// Pull the (0,0,0) corner further away along X; its structural
	// neighbor at (1,0,0) should feel a pull back toward it.
	lt.pos[lt.idx(0, 0, 0)].X -= 1
	var f lin.V3
	springForceAt(lt, lt.pos, lt.vel, 1, 0, 0, 500, 0, &f)
	if f.X >= 0 {
		t.Errorf("neighbor of a stretched corner should be pulled toward it (negative X), got %+v", f)
	}
}
