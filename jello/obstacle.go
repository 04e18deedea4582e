// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import (
	"math"
	"math/rand/v2"

	"github.com/galvanized/jello/math/lin"
)

// obstacle.go defines the closed set of rigid colliders the jello cube
// can bump into. The shape set is small and known ahead of time, so this
// follows the same closed, non-virtual-dispatch style as physics.Shape
// (box/sphere behind unexported structs, reached only through
// constructors) rather than an open interface meant for extension.

// Obstacle is a rigid, convex, affine-transformed shape a jello node can
// collide with. The entire contract is the closest-surface-point query:
// there is no separate inside-test because a shape that isn't penetrated
// simply returns ok == false.
type Obstacle interface {
	// ClosestSurfacePoint returns the nearest point on the obstacle's
	// surface to world-space point p, and ok == true, if p lies strictly
	// inside the obstacle. Returns ok == false otherwise.
	ClosestSurfacePoint(p *lin.V3) (q lin.V3, ok bool)

	// Bounds returns a world-space axis aligned box that contains the
	// obstacle, used as a coarse reject before the exact query above.
	Bounds() abox

	// Transform returns the obstacle's world transform, for read-only
	// access by a host renderer.
	Transform() *lin.T
}

// abox is an axis aligned bounding box, used only for the coarse
// broad-phase reject ahead of an obstacle's exact closest-point query.
// Grounded on physics/shape.go's Abox, trimmed to the one operation
// the jello collision assembly needs.
type abox struct {
	sx, sy, sz float64 // smallest corner.
	lx, ly, lz float64 // largest corner.
}

// contains returns true if point p is within the box, expanded by margin
// on every side so near-miss nodes still trigger the exact query.
func (a *abox) contains(p *lin.V3, margin float64) bool {
	return p.X >= a.sx-margin && p.X <= a.lx+margin &&
		p.Y >= a.sy-margin && p.Y <= a.ly+margin &&
		p.Z >= a.sz-margin && p.Z <= a.lz+margin
}

// cubeObstacle is an axis aligned unit cube ([-1/2,1/2]^3 in object
// space) placed in world space by an affine transform.
type cubeObstacle struct {
	xform *lin.T
	scale lin.V3 // per-axis half-extent scale applied in object space.
}

// NewCubeObstacle places a unit cube at the given world transform,
// scaled per-axis by scale (half-extents relative to the unit cube's
// own [-1/2,1/2] extent).
func NewCubeObstacle(xform *lin.T, scale lin.V3) Obstacle {
	return &cubeObstacle{xform: xform, scale: scale}
}

func (c *cubeObstacle) Transform() *lin.T { return c.xform }

func (c *cubeObstacle) Bounds() abox {
	hx, hy, hz := 0.5*c.scale.X, 0.5*c.scale.Y, 0.5*c.scale.Z
	corners := [8]lin.V3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
		{X: -hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
		{X: -hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: hz},
	}
	var b abox
	for i, cn := range corners {
		wx, wy, wz := c.xform.AppS(cn.X, cn.Y, cn.Z)
		if i == 0 {
			b.sx, b.lx = wx, wx
			b.sy, b.ly = wy, wy
			b.sz, b.lz = wz, wz
			continue
		}
		b.sx, b.lx = math.Min(b.sx, wx), math.Max(b.lx, wx)
		b.sy, b.ly = math.Min(b.sy, wy), math.Max(b.ly, wy)
		b.sz, b.lz = math.Min(b.sz, wz), math.Max(b.lz, wz)
	}
	return b
}

// ClosestSurfacePoint implements Obstacle for a unit cube: walk the six
// face distances in object space, snap the smallest-distance coordinate
// to its face, leave the other two unchanged, transform back.
func (c *cubeObstacle) ClosestSurfacePoint(p *lin.V3) (q lin.V3, ok bool) {
	ox, oy, oz := c.xform.InvS(p.X, p.Y, p.Z)
	ox, oy, oz = ox/c.scale.X, oy/c.scale.Y, oz/c.scale.Z // un-scale into the unit cube's own object space.
	half := 0.5
	if ox < -half || ox > half || oy < -half || oy > half || oz < -half || oz > half {
		return lin.V3{}, false
	}

	// distance to each of the six faces of the unit cube, in the unit
	// cube's own (un-scaled) object space, smallest wins.
	dist := [6]float64{half - ox, ox + half, half - oy, oy + half, half - oz, oz + half}
	best := 0
	for i := 1; i < 6; i++ {
		if dist[i] < dist[best] {
			best = i
		}
	}
	cx, cy, cz := ox, oy, oz
	switch best {
	case 0:
		cx = half
	case 1:
		cx = -half
	case 2:
		cy = half
	case 3:
		cy = -half
	case 4:
		cz = half
	case 5:
		cz = -half
	}
	wx, wy, wz := c.xform.AppS(cx*c.scale.X, cy*c.scale.Y, cz*c.scale.Z)
	return lin.V3{X: wx, Y: wy, Z: wz}, true
}

// sphereObstacle is a unit-diameter sphere (radius 1/2 in object space)
// placed in world space by an affine transform and a uniform radius
// scale.
type sphereObstacle struct {
	xform  *lin.T
	radius float64 // world-space radius; object space is always R=1/2.
}

// NewSphereObstacle places a sphere of the given world-space radius at
// the given world transform.
func NewSphereObstacle(xform *lin.T, radius float64) Obstacle {
	return &sphereObstacle{xform: xform, radius: radius}
}

func (s *sphereObstacle) Transform() *lin.T { return s.xform }

func (s *sphereObstacle) Bounds() abox {
	cx, cy, cz := s.xform.Loc.GetS()
	return abox{
		sx: cx - s.radius, sy: cy - s.radius, sz: cz - s.radius,
		lx: cx + s.radius, ly: cy + s.radius, lz: cz + s.radius,
	}
}

// ClosestSurfacePoint implements Obstacle for a unit sphere: inside iff
// the object-space point's length is within the object radius (1/2);
// closest point is 0.5 * p_obj/||p_obj||, or (0.5,0,0) if p_obj is the
// origin (normalize-of-zero, §9).
func (s *sphereObstacle) ClosestSurfacePoint(p *lin.V3) (q lin.V3, ok bool) {
	scale := s.radius / 0.5
	ox, oy, oz := s.xform.InvS(p.X, p.Y, p.Z)
	ox, oy, oz = ox/scale, oy/scale, oz/scale
	obj := lin.V3{X: ox, Y: oy, Z: oz}
	length := obj.Len()
	if length > 0.5 {
		return lin.V3{}, false
	}
	var dir lin.V3
	if length == 0 {
		dir = lin.V3{X: 1}
	} else {
		dir.Scale(&obj, 1/length)
	}
	cx, cy, cz := 0.5*dir.X, 0.5*dir.Y, 0.5*dir.Z
	wx, wy, wz := s.xform.AppS(cx*scale, cy*scale, cz*scale)
	return lin.V3{X: wx, Y: wy, Z: wz}, true
}

// randomObstacle builds a random cube-or-sphere obstacle that fits
// inside a bounding box of half-extent bounds, per §4.G add_obstacle.
// Returns an error if the obstacle cannot fit (max scale >= 2*bounds).
func randomObstacle(rng *rand.Rand, bounds float64) (Obstacle, error) {
	isCube := rng.Float64() < 0.5

	var scale lin.V3
	var maxScale float64
	if isCube {
		scale = lin.V3{
			X: 0.5 + rng.Float64()*(bounds-0.5),
			Y: 0.5 + rng.Float64()*(bounds-0.5),
			Z: 0.5 + rng.Float64()*(bounds-0.5),
		}
		maxScale = math.Max(scale.X, math.Max(scale.Y, scale.Z))
	} else {
		maxScale = 0.5 + rng.Float64()*(bounds-0.5)
	}
	if maxScale >= 2*bounds {
		return nil, ErrObstacleTooLarge
	}
	// limit is derived from whichever extent the chosen shape actually
	// uses, so a cube's widest axis never places it outside bounds.
	limit := bounds - 0.5*maxScale
	if limit < 0 {
		return nil, ErrObstacleTooLarge
	}
	translate := lin.V3{
		X: -limit + rng.Float64()*2*limit,
		Y: -limit + rng.Float64()*2*limit,
		Z: -limit + rng.Float64()*2*limit,
	}
	axis := lin.V3{
		X: -1 + rng.Float64()*2,
		Y: -1 + rng.Float64()*2,
		Z: -1 + rng.Float64()*2,
	}
	if axis.Len() == 0 {
		axis = lin.V3{X: 1}
	}
	axis.Unit()
	angle := rng.Float64() * 2 * math.Pi

	xform := lin.NewT()
	xform.SetLoc(translate.X, translate.Y, translate.Z)
	xform.SetAa(axis.X, axis.Y, axis.Z, angle)

	if isCube {
		return NewCubeObstacle(xform, scale), nil
	}
	return NewSphereObstacle(xform, maxScale*0.5), nil
}
