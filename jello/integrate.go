// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import "github.com/galvanized/jello/math/lin"

// integrate.go advances the lattice's position and velocity arrays by
// one tick, using either explicit Euler or classical RK4 (§4.E).
//
// The source always evaluates acceleration against its current nodes
// and velocities during every RK4 substage, never against the advanced
// tmpPos/tmpVels intermediates — either a bug or a shortcut. This
// implementation follows classical RK4 with true intermediates instead,
// per the spec's own recommendation; see DESIGN.md for the record.

// scratch holds the (P+1)^3-length buffers RK4 needs (position and
// velocity slopes for each of the four stages, the intermediate state,
// and the acceleration output), preallocated once by the driver and reused every tick so integration never
// allocates on the hot path.
type scratch struct {
	k1p, k1v []lin.V3
	k2p, k2v []lin.V3
	k3p, k3v []lin.V3
	k4p, k4v []lin.V3
	tmpPos   []lin.V3
	tmpVel   []lin.V3
	accel    []lin.V3
}

func newScratch(n int) *scratch {
	mk := func() []lin.V3 { return make([]lin.V3, n) }
	return &scratch{
		k1p: mk(), k1v: mk(),
		k2p: mk(), k2v: mk(),
		k3p: mk(), k3v: mk(),
		k4p: mk(), k4v: mk(),
		tmpPos: mk(), tmpVel: mk(),
		accel: mk(),
	}
}

// accelerate fills accel with the per-node acceleration
// (F_spring + F_collision)/mass + gravity, evaluated against the given
// pos/vel state (which may be the lattice's live state or an RK4
// intermediate).
func accelerate(lt *lattice, pos, vel []lin.V3, obstacles []Obstacle, t *Tunables, accel []lin.V3) {
	n := lt.p + 1
	gravity := lin.V3{Y: -t.Gravity}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				idx := lt.idx(i, j, k)
				var f lin.V3
				springForceAt(lt, pos, vel, i, j, k, t.KElastic, t.DElastic, &f)
				collisionForceAt(&pos[idx], &vel[idx], t.Bounds, obstacles, t.KCollision, t.DCollision, &f)
				accel[idx].X = f.X/t.Mass + gravity.X
				accel[idx].Y = f.Y/t.Mass + gravity.Y
				accel[idx].Z = f.Z/t.Mass + gravity.Z
			}
		}
	}
}

// stepEuler advances lt.pos/lt.vel by h = dt_ms/1000 using explicit
// Euler. Matching the source, the Euler branch does not clamp — only
// RK4 does (§3, §9); Euler is offered for comparison/debugging and is
// expected to be used with small, stable parameters.
func stepEuler(lt *lattice, obstacles []Obstacle, t *Tunables, s *scratch) {
	h := t.DtMs / 1000
	accelerate(lt, lt.pos, lt.vel, obstacles, t, s.accel)
	for i := range lt.pos {
		lt.pos[i].X += h * lt.vel[i].X
		lt.pos[i].Y += h * lt.vel[i].Y
		lt.pos[i].Z += h * lt.vel[i].Z
		lt.vel[i].X += h * s.accel[i].X
		lt.vel[i].Y += h * s.accel[i].Y
		lt.vel[i].Z += h * s.accel[i].Z
	}
}

// stepRK4 advances lt.pos/lt.vel by h = dt_ms/1000 using classical
// fourth order Runge-Kutta with true intermediates (§4.E, §9).
func stepRK4(lt *lattice, obstacles []Obstacle, t *Tunables, s *scratch, pmax float64) (clamps int) {
	h := t.DtMs / 1000
	n := len(lt.pos)

	// k1: evaluated at the current state.
	copy(s.k1p, lt.vel)
	accelerate(lt, lt.pos, lt.vel, obstacles, t, s.accel)
	copy(s.k1v, s.accel)

	// k2: evaluated at state advanced by h/2 along k1.
	advance(s.tmpPos, lt.pos, s.k1p, h/2)
	advance(s.tmpVel, lt.vel, s.k1v, h/2)
	copy(s.k2p, s.tmpVel)
	accelerate(lt, s.tmpPos, s.tmpVel, obstacles, t, s.accel)
	copy(s.k2v, s.accel)

	// k3: evaluated at state advanced by h/2 along k2.
	advance(s.tmpPos, lt.pos, s.k2p, h/2)
	advance(s.tmpVel, lt.vel, s.k2v, h/2)
	copy(s.k3p, s.tmpVel)
	accelerate(lt, s.tmpPos, s.tmpVel, obstacles, t, s.accel)
	copy(s.k3v, s.accel)

	// k4: evaluated at state advanced by h along k3.
	advance(s.tmpPos, lt.pos, s.k3p, h)
	advance(s.tmpVel, lt.vel, s.k3v, h)
	copy(s.k4p, s.tmpVel)
	accelerate(lt, s.tmpPos, s.tmpVel, obstacles, t, s.accel)
	copy(s.k4v, s.accel)

	sixth := h / 6
	for i := 0; i < n; i++ {
		lt.pos[i].X += sixth * (s.k1p[i].X + 2*s.k2p[i].X + 2*s.k3p[i].X + s.k4p[i].X)
		lt.pos[i].Y += sixth * (s.k1p[i].Y + 2*s.k2p[i].Y + 2*s.k3p[i].Y + s.k4p[i].Y)
		lt.pos[i].Z += sixth * (s.k1p[i].Z + 2*s.k2p[i].Z + 2*s.k3p[i].Z + s.k4p[i].Z)
		if clampAxes(&lt.pos[i], pmax) {
			clamps++
		}
		lt.vel[i].X += sixth * (s.k1v[i].X + 2*s.k2v[i].X + 2*s.k3v[i].X + s.k4v[i].X)
		lt.vel[i].Y += sixth * (s.k1v[i].Y + 2*s.k2v[i].Y + 2*s.k3v[i].Y + s.k4v[i].Y)
		lt.vel[i].Z += sixth * (s.k1v[i].Z + 2*s.k2v[i].Z + 2*s.k3v[i].Z + s.k4v[i].Z)
	}
	return clamps
}

// advance writes dst[i] = base[i] + scale*delta[i], elementwise.
func advance(dst, base, delta []lin.V3, scale float64) {
	for i := range base {
		dst[i].X = base[i].X + scale*delta[i].X
		dst[i].Y = base[i].Y + scale*delta[i].Y
		dst[i].Z = base[i].Z + scale*delta[i].Z
	}
}

// safetyRadius is the fixed Pmax a Simulation clamps RK4 positions to:
// a constant far larger than any reasonable Bounds, not a multiple of
// it, so that ordinary bouncing near the bounding box never trips the
// clamp and only genuine numerical blow-up does.
const safetyRadius = 1e6

// clampAxes clamps p's three components to [-pmax,pmax] in place,
// returning true if any component was out of range (§3 invariant,
// §7.2 diagnostic).
func clampAxes(p *lin.V3, pmax float64) (clamped bool) {
	if p.X > pmax {
		p.X, clamped = pmax, true
	} else if p.X < -pmax {
		p.X, clamped = -pmax, true
	}
	if p.Y > pmax {
		p.Y, clamped = pmax, true
	} else if p.Y < -pmax {
		p.Y, clamped = -pmax, true
	}
	if p.Z > pmax {
		p.Z, clamped = pmax, true
	} else if p.Z < -pmax {
		p.Z, clamped = -pmax, true
	}
	return clamped
}
