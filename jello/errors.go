// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import "errors"

// errors.go declares the sentinel errors the jello core returns: a
// rejected parameter (out of domain or unknown name) and an obstacle
// that does not fit. Every call that can fail reports it through a
// plain returned error, never a panic, matching the rest of
// this module's error handling conventions (see asset.go, loader.go).

var (
	// ErrParameterDomain is returned by SetParameter when the requested
	// value is outside the tunable's valid domain. The tunable keeps its
	// previous value.
	ErrParameterDomain = errors.New("jello: parameter out of domain")

	// ErrUnknownParameter is returned by SetParameter for a name that
	// does not match any tunable field.
	ErrUnknownParameter = errors.New("jello: unknown parameter")

	// ErrObstacleTooLarge is returned by AddObstacle when the randomly
	// generated obstacle could not fit inside the simulation bounds.
	ErrObstacleTooLarge = errors.New("jello: obstacle does not fit bounds")
)
