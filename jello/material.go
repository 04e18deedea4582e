// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

// material.go adapts material.go's rgb/material split into a plain
// value a host renderer reads alongside the vertex buffer: the jello
// core has no shader or GPU resource of its own, so there is nothing
// here beyond colour and the one parameter the source actually derives
// from simulation state, the cube's alpha.

// RGB holds a colour component in [0,1], following material.go's rgb.
type RGB struct {
	R, G, B float32
}

// Material describes how a host renderer should shade the cube's
// surface. Diffuse/Ambient/Specular/Shininess are fixed by the caller;
// Alpha is set from Tunables.Transparent whenever the cube is built
// (NewSimulation and Reset), the same way the source derives
// cDiffuse.a from settings.transparentCube.
type Material struct {
	Diffuse   RGB
	Ambient   RGB
	Specular  RGB
	Shininess float32
	Alpha     float32
}

// DefaultMaterial returns an opaque, neutral grey material, a
// reasonable starting point for a cube with no explicit colour request.
// Shininess matches the source's fixed realtimescene.h value.
func DefaultMaterial() Material {
	return Material{
		Diffuse:   RGB{R: 0.6, G: 0.6, B: 0.6},
		Ambient:   RGB{R: 0.2, G: 0.2, B: 0.2},
		Specular:  RGB{R: 1, G: 1, B: 1},
		Shininess: 25,
		Alpha:     1,
	}
}

// applyTransparency sets m.Alpha from transparent, matching the
// source's cDiffuse.a = transparentCube ? 0.5 : 1.
func (m *Material) applyTransparency(transparent bool) {
	if transparent {
		m.Alpha = 0.5
		return
	}
	m.Alpha = 1
}
