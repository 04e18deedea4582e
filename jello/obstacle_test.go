// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/galvanized/jello/math/lin"
)

func TestSphereObstacleClosestPoint(t *testing.T) {
	xform := lin.NewT()
	sp := NewSphereObstacle(xform, 1) // unit-radius sphere at origin.
	inside := lin.V3{X: 0.5, Y: 0, Z: 0}
	q, ok := sp.ClosestSurfacePoint(&inside)
	if !ok {
		t.Fatalf("point inside sphere should report ok")
	}
	if math.Abs(q.X-1) > 1e-9 || q.Y != 0 || q.Z != 0 {
		t.Errorf("closest point = %+v, want (1,0,0)", q)
	}

	outside := lin.V3{X: 2, Y: 0, Z: 0}
	if _, ok := sp.ClosestSurfacePoint(&outside); ok {
		t.Errorf("point outside sphere should not report ok")
	}
}

func TestSphereObstacleDegenerateCenter(t *testing.T) {
	xform := lin.NewT()
	sp := NewSphereObstacle(xform, 1)
	center := lin.V3{}
	q, ok := sp.ClosestSurfacePoint(&center)
	if !ok {
		t.Fatalf("center point should be inside the sphere")
	}
	if math.Abs(q.Len()-1) > 1e-9 {
		t.Errorf("closest point from center should lie on the surface, got %+v (len %v)", q, q.Len())
	}
}

func TestCubeObstacleClosestPoint(t *testing.T) {
	xform := lin.NewT()
	cube := NewCubeObstacle(xform, lin.V3{X: 2, Y: 2, Z: 2}) // half-extent 1 on every axis.
	inside := lin.V3{X: 0.9, Y: 0, Z: 0}
	q, ok := cube.ClosestSurfacePoint(&inside)
	if !ok {
		t.Fatalf("point inside cube should report ok")
	}
	if math.Abs(q.X-1) > 1e-9 || q.Y != 0 || q.Z != 0 {
		t.Errorf("closest point = %+v, want (1,0,0)", q)
	}

	outside := lin.V3{X: 5, Y: 0, Z: 0}
	if _, ok := cube.ClosestSurfacePoint(&outside); ok {
		t.Errorf("point outside cube should not report ok")
	}
}

func TestAboxContainsMargin(t *testing.T) {
	b := abox{sx: -1, sy: -1, sz: -1, lx: 1, ly: 1, lz: 1}
	p := lin.V3{X: 1.2, Y: 0, Z: 0}
	if b.contains(&p, 0) {
		t.Errorf("point just outside the box should not be contained with zero margin")
	}
	if !b.contains(&p, 0.5) {
		t.Errorf("point within margin of the box should be contained")
	}
}

func TestRandomObstacleFitsBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 50; i++ {
		obs, err := randomObstacle(rng, 4)
		if err != nil {
			continue
		}
		b := obs.Bounds()
		const bounds = 4.0
		if b.sx < -bounds-1e-6 || b.lx > bounds+1e-6 ||
			b.sy < -bounds-1e-6 || b.ly > bounds+1e-6 ||
			b.sz < -bounds-1e-6 || b.lz > bounds+1e-6 {
			t.Errorf("obstacle %d bounds %+v exceed simulation bounds %v", i, b, bounds)
		}
	}
}

func TestRandomObstacleRejectsImpossibleBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	if _, err := randomObstacle(rng, 0); err == nil {
		t.Errorf("zero bounds should never admit a fitting obstacle")
	}
}
