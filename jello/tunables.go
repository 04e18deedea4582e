// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tunables.go declares the process-wide physical constants of the
// simulation and the two ways a host application supplies them: a
// struct built up with functional options (config.go's Attr pattern,
// generalized here), or a YAML file following load/shd.go's
// read-a-description-from-disk convention.

// Integrator selects how the simulation advances state each tick.
type Integrator int

const (
	RK4 Integrator = iota // classical 4th order Runge-Kutta, default.
	Euler
)

// Tunables holds every physical constant the jello core reads. Field
// names are advisory (§6): semantics are fixed, values are not.
type Tunables struct {
	DtMs        float64    `yaml:"dt_ms"`        // integration step, milliseconds, 0.1-10.
	KElastic    float64    `yaml:"k_elastic"`    // structural/shear/bend spring stiffness.
	DElastic    float64    `yaml:"d_elastic"`    // structural/shear/bend spring damping.
	KCollision  float64    `yaml:"k_collision"`  // collision penalty spring stiffness.
	DCollision  float64    `yaml:"d_collision"`  // collision penalty spring damping.
	Mass        float64    `yaml:"mass"`         // uniform node mass, > 0.
	Gravity     float64    `yaml:"gravity"`      // acceleration along -Y.
	Bounds      float64    `yaml:"bounds"`       // bounding box half-extent B.
	Integrator  Integrator `yaml:"integrator"`   // RK4 or Euler.
	Transparent bool       `yaml:"transparent"`  // passed through to the material block.
	Resolution  int        `yaml:"resolution"`   // lattice parameter P; (P+1)^3 nodes.
}

// DefaultTunables returns the defaults carried over from the original
// implementation's settings.h.
func DefaultTunables() Tunables {
	return Tunables{
		DtMs:        1,
		KElastic:    500,
		DElastic:    1,
		KCollision:  1000,
		DCollision:  10,
		Mass:        0.01,
		Gravity:     1,
		Bounds:      4,
		Integrator:  RK4,
		Transparent: false,
		Resolution:  8,
	}
}

// LoadTunables reads a Tunables block from a YAML file, starting from
// DefaultTunables so a partial file only overrides what it mentions.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("jello: load tunables: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("jello: parse tunables: %w", err)
	}
	if err := t.validate(); err != nil {
		return t, err
	}
	return t, nil
}

// validate checks the domain constraints called out in §6/§7.1.
// It does not mutate t; callers decide what to do with a failure.
func (t *Tunables) validate() error {
	switch {
	case t.Mass <= 0:
		return fmt.Errorf("%w: mass must be > 0, got %v", ErrParameterDomain, t.Mass)
	case t.Resolution <= 0:
		return fmt.Errorf("%w: resolution must be > 0, got %v", ErrParameterDomain, t.Resolution)
	case t.DtMs < 0.1 || t.DtMs > 10:
		return fmt.Errorf("%w: dt_ms must be in [0.1,10], got %v", ErrParameterDomain, t.DtMs)
	case t.Bounds <= 0:
		return fmt.Errorf("%w: bounds must be > 0, got %v", ErrParameterDomain, t.Bounds)
	}
	return nil
}
