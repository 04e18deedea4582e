// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/galvanized/jello/math/lin"
)

// simulation.go is the driver a host application actually talks to: it
// owns the lattice, the obstacle list, the tunables snapshot and the
// RK4 scratch buffers, and exposes the per-tick and per-command
// operations of §4 as plain methods. Construction follows config.go's
// functional-options Attr pattern, renamed Option for this domain.

// Simulation is a single deformable cube, its obstacles, and the
// tunables governing how it moves. The zero value is not usable; build
// one with NewSimulation.
type Simulation struct {
	lt         *lattice
	tunables   Tunables
	scratch    *scratch
	obstacles  []Obstacle
	material   Material
	vb         *VertexBuffer
	rng        *rand.Rand
	clampCount uint64
	log        *slog.Logger
}

// Option configures a Simulation at construction time. For use with
// NewSimulation.
//
//	sim, err := jello.NewSimulation(
//	    jello.Resolution(8),
//	    jello.Bounds(4),
//	    jello.Seed(1, 2),
//	)
type Option func(*Simulation)

// Resolution sets the lattice parameter P; the cube has (P+1)^3 nodes.
func Resolution(p int) Option {
	return func(s *Simulation) { s.tunables.Resolution = p }
}

// Bounds sets the bounding box half-extent B.
func Bounds(b float64) Option {
	return func(s *Simulation) { s.tunables.Bounds = b }
}

// UseIntegrator selects RK4 or Euler.
func UseIntegrator(i Integrator) Option {
	return func(s *Simulation) { s.tunables.Integrator = i }
}

// WithTunables replaces the entire tunables block, e.g. one loaded with
// LoadTunables.
func WithTunables(t Tunables) Option {
	return func(s *Simulation) { s.tunables = t }
}

// WithMaterial sets the initial material, overriding DefaultMaterial.
func WithMaterial(m Material) Option {
	return func(s *Simulation) { s.material = m }
}

// Seed fixes the random source used by Scatter and AddObstacle, for
// reproducible tests and demos.
func Seed(seed1, seed2 uint64) Option {
	return func(s *Simulation) { s.rng = rand.New(rand.NewPCG(seed1, seed2)) }
}

// Logger overrides the default slog.Logger used for parameter-rejection
// and obstacle-rejection diagnostics (§7).
func Logger(l *slog.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// NewSimulation builds a cube of the configured resolution, centered at
// the origin, with zero initial velocity and no obstacles, and applies
// opts in order.
func NewSimulation(opts ...Option) (*Simulation, error) {
	s := &Simulation{
		tunables: DefaultTunables(),
		material: DefaultMaterial(),
		rng:      rand.New(rand.NewPCG(1, 1)),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.tunables.validate(); err != nil {
		return nil, err
	}
	s.rebuild()
	return s, nil
}

// rebuild allocates a fresh lattice, scratch and vertex buffer for the
// current Resolution, and remeshes once so the buffer is valid before
// the first Tick.
func (s *Simulation) rebuild() {
	s.lt = newLattice(s.tunables.Resolution, &lin.V3{})
	s.scratch = newScratch(s.lt.count())
	s.vb = newVertexBuffer(s.tunables.Resolution)
	s.material.applyTransparency(s.tunables.Transparent)
	remesh(s.lt, s.vb)
}

// Tick advances the simulation by one integration step (Euler or RK4
// per Tunables.Integrator) and regenerates the surface mesh (§4.E,
// §4.F). RK4 clamps out-of-bounds positions and adds to ClampCount;
// Euler does not (§9).
func (s *Simulation) Tick() {
	t := s.tunables // snapshot read once at tick start.
	switch t.Integrator {
	case Euler:
		stepEuler(s.lt, s.obstacles, &t, s.scratch)
	default:
		s.clampCount += uint64(stepRK4(s.lt, s.obstacles, &t, s.scratch, safetyRadius))
	}
	remesh(s.lt, s.vb)
}

// Reset rebuilds the cube at the origin with zero velocity, clears the
// obstacle list, and resets ClampCount, per §4.G reset.
func (s *Simulation) Reset() {
	s.obstacles = nil
	s.clampCount = 0
	s.rebuild()
}

// Scatter samples one random velocity shift and adds it to every node,
// following the source's scatter(): a uniform side-to-side component
// on X and Z, and a uniform upward-only component on Y (§4.G, §2.C).
func (s *Simulation) Scatter() {
	side := 40*s.rng.Float64() - 20 // U(-20,20)
	up := 30 * s.rng.Float64()      // U(0,30)
	sideZ := 40*s.rng.Float64() - 20
	for i := range s.lt.vel {
		s.lt.vel[i].X += side
		s.lt.vel[i].Y += up
		s.lt.vel[i].Z += sideZ
	}
}

// AddObstacle samples a random cube or sphere obstacle that fits inside
// the current bounds and adds it to the obstacle list (§4.G
// add_obstacle). Returns ErrObstacleTooLarge, logged at warn level, if
// no such obstacle could be placed.
func (s *Simulation) AddObstacle() error {
	obs, err := randomObstacle(s.rng, s.tunables.Bounds)
	if err != nil {
		s.log.Warn("add_obstacle rejected", "error", err)
		return err
	}
	s.obstacles = append(s.obstacles, obs)
	return nil
}

// SetParameter validates and applies a named tunable change (§6,
// §7.1). Unknown names return ErrUnknownParameter; out-of-domain values
// return ErrParameterDomain and leave the tunable untouched. Both are
// logged at warn level before being returned.
func (s *Simulation) SetParameter(name string, value float64) error {
	next := s.tunables
	switch name {
	case "dt_ms":
		next.DtMs = value
	case "k_elastic":
		next.KElastic = value
	case "d_elastic":
		next.DElastic = value
	case "k_collision":
		next.KCollision = value
	case "d_collision":
		next.DCollision = value
	case "mass":
		next.Mass = value
	case "gravity":
		next.Gravity = value
	case "bounds":
		next.Bounds = value
	default:
		err := fmt.Errorf("%w: %s", ErrUnknownParameter, name)
		s.log.Warn("set_parameter rejected", "name", name, "error", err)
		return err
	}
	if err := next.validate(); err != nil {
		s.log.Warn("set_parameter rejected", "name", name, "value", value, "error", err)
		return err
	}
	s.tunables = next
	return nil
}

// ClampCount returns the total number of RK4 position clamps applied
// since the last Reset (§7.2).
func (s *Simulation) ClampCount() uint64 { return s.clampCount }

// VertexBuffer returns the current tick's surface mesh, owned by the
// simulation and overwritten in place on the next Tick (§4.F, §6).
func (s *Simulation) VertexBuffer() *VertexBuffer { return s.vb }

// Material returns the current shading parameters (§2.C).
func (s *Simulation) Material() Material { return s.material }

// Tunables returns a copy of the simulation's current tunables.
func (s *Simulation) Tunables() Tunables { return s.tunables }

// Obstacles returns the current obstacle list, for a host renderer to
// draw or a test to inspect. The slice is owned by the simulation.
func (s *Simulation) Obstacles() []Obstacle { return s.obstacles }

// Positions returns the lattice's current node positions, indexed by
// idx(i,j,k); the slice is owned by the simulation and overwritten on
// the next Tick/Reset.
func (s *Simulation) Positions() []lin.V3 { return s.lt.pos }

// Velocities returns the lattice's current node velocities, under the
// same ownership rules as Positions.
func (s *Simulation) Velocities() []lin.V3 { return s.lt.vel }

// NodeIndex returns the flat Positions/Velocities index for lattice
// coordinate (i,j,k), each in [0,P].
func (s *Simulation) NodeIndex(i, j, k int) int { return s.lt.idx(i, j, k) }
