// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jello

import "github.com/galvanized/jello/math/lin"

// mesh.go regenerates the cube's six outer faces into a flat, renderer
// agnostic vertex buffer every tick (§4.F, §6). It follows the source's
// calcVertexData face-by-face traversal and per-quad flat-normal
// convention, but drops the GPU upload and VBO bookkeeping that came
// bundled with it in the source — that belongs to a host renderer, not
// this core.

// VertexBuffer is the interleaved [px,py,pz, nx,ny,nz, u,v] layout of
// §6, rebuilt in place each tick by remesh. Data is exported directly:
// there is no hidden GPU resource behind it, so a host renderer is free
// to copy out of it, upload it, or read it on whatever schedule it
// likes.
type VertexBuffer struct {
	Data   []float32 // len == 8 * 6 faces * P*P quads * 2 tris * 3 verts.
	Stride int       // always 8 (three position + three normal + two uv floats).
}

// floatsPerVertex is the fixed [px,py,pz,nx,ny,nz,u,v] record size.
const floatsPerVertex = 8

// newVertexBuffer preallocates a buffer sized for a lattice of
// resolution p: six faces, each a P*P grid of quads, each quad two
// triangles of three vertices.
func newVertexBuffer(p int) *VertexBuffer {
	quads := p * p
	verts := 6 * quads * 2 * 3
	return &VertexBuffer{
		Data:   make([]float32, verts*floatsPerVertex),
		Stride: floatsPerVertex,
	}
}

// quadInd is a single lattice-face coordinate pair, named the way the
// source names its per-face index pairs before resolving them into a
// flat lattice index.
type quadInd struct{ a, b int }

// faceSpec describes one of the cube's six outer faces: how to turn a
// (j,k)-style quad coordinate into the four lattice corners bounding
// it, in the fixed order the source emits them, and how those same
// coordinates map to a [0,1] UV pair.
type faceSpec struct {
	corners func(a, b int) [4]quadInd
	toIJK   func(ind quadInd, p int) (i, j, k int)
	uv      func(ind quadInd, rest float64) (u, v float32)
}

var faceSpecs = [6]faceSpec{
	{ // +x
		corners: func(a, b int) [4]quadInd { return [4]quadInd{{a + 1, b + 1}, {a + 1, b}, {a, b + 1}, {a, b}} },
		toIJK:   func(ind quadInd, p int) (int, int, int) { return p, ind.a, ind.b },
		uv:      func(ind quadInd, rest float64) (float32, float32) { return float32(1 - float64(ind.a)*rest), float32(float64(ind.b) * rest) },
	},
	{ // -x
		corners: func(a, b int) [4]quadInd { return [4]quadInd{{a + 1, b}, {a + 1, b + 1}, {a, b}, {a, b + 1}} },
		toIJK:   func(ind quadInd, p int) (int, int, int) { return 0, ind.a, ind.b },
		uv:      func(ind quadInd, rest float64) (float32, float32) { return float32(float64(ind.a) * rest), float32(float64(ind.b) * rest) },
	},
	{ // +y
		corners: func(a, b int) [4]quadInd { return [4]quadInd{{a + 1, b + 1}, {a, b + 1}, {a + 1, b}, {a, b}} },
		toIJK:   func(ind quadInd, p int) (int, int, int) { return ind.a, p, ind.b },
		uv:      func(ind quadInd, rest float64) (float32, float32) { return float32(float64(ind.a) * rest), float32(1 - float64(ind.b)*rest) },
	},
	{ // -y
		corners: func(a, b int) [4]quadInd { return [4]quadInd{{a, b + 1}, {a + 1, b + 1}, {a, b}, {a + 1, b}} },
		toIJK:   func(ind quadInd, p int) (int, int, int) { return ind.a, 0, ind.b },
		uv:      func(ind quadInd, rest float64) (float32, float32) { return float32(float64(ind.a) * rest), float32(float64(ind.b) * rest) },
	},
	{ // +z
		corners: func(a, b int) [4]quadInd { return [4]quadInd{{a, b + 1}, {a + 1, b + 1}, {a, b}, {a + 1, b}} },
		toIJK:   func(ind quadInd, p int) (int, int, int) { return ind.a, ind.b, p },
		uv:      func(ind quadInd, rest float64) (float32, float32) { return float32(float64(ind.a) * rest), float32(float64(ind.b) * rest) },
	},
	{ // -z
		corners: func(a, b int) [4]quadInd { return [4]quadInd{{a + 1, b + 1}, {a, b + 1}, {a + 1, b}, {a, b}} },
		toIJK:   func(ind quadInd, p int) (int, int, int) { return ind.a, ind.b, 0 },
		uv:      func(ind quadInd, rest float64) (float32, float32) { return float32(1 - float64(ind.a)*rest), float32(float64(ind.b) * rest) },
	},
}

// remesh rebuilds vb.Data from lt's current node positions, walking the
// six faces in the fixed order of faceSpecs so the buffer's vertex
// order is stable across ticks. Each P*P quad becomes two triangles
// sharing one flat per-quad normal, matching the source's per-tile
// normal rather than an averaged per-vertex normal.
func remesh(lt *lattice, vb *VertexBuffer) {
	p := lt.p
	pos := lt.pos
	off := 0
	for _, spec := range faceSpecs {
		for a := 0; a < p; a++ {
			for b := 0; b < p; b++ {
				inds := spec.corners(a, b)
				var v [4]lin.V3
				var uv [4][2]float32
				for n, ind := range inds {
					i, j, k := spec.toIJK(ind, p)
					v[n] = pos[lt.idx(i, j, k)]
					uv[n][0], uv[n][1] = spec.uv(ind, lt.rest)
				}
				var e1, e2, normal lin.V3
				e1.Sub(&v[3], &v[2])
				e2.Sub(&v[0], &v[2])
				normal.Cross(&e1, &e2)

				// Strip order v0,v1,v2,v3 decomposes into (v0,v1,v2) and
				// (v2,v1,v3), the standard two-triangle unrolling of a
				// GL_TRIANGLE_STRIP quad.
				off = writeVertex(vb.Data, off, &v[0], &normal, uv[0])
				off = writeVertex(vb.Data, off, &v[1], &normal, uv[1])
				off = writeVertex(vb.Data, off, &v[2], &normal, uv[2])
				off = writeVertex(vb.Data, off, &v[2], &normal, uv[2])
				off = writeVertex(vb.Data, off, &v[1], &normal, uv[1])
				off = writeVertex(vb.Data, off, &v[3], &normal, uv[3])
			}
		}
	}
}

// writeVertex appends one [px,py,pz,nx,ny,nz,u,v] record at data[off:]
// and returns the next free offset.
func writeVertex(data []float32, off int, p, n *lin.V3, uv [2]float32) int {
	data[off+0] = float32(p.X)
	data[off+1] = float32(p.Y)
	data[off+2] = float32(p.Z)
	data[off+3] = float32(n.X)
	data[off+4] = float32(n.Y)
	data[off+5] = float32(n.Z)
	data[off+6] = uv[0]
	data[off+7] = uv[1]
	return off + floatsPerVertex
}
