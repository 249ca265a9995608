package fdl

import "github.com/go-gl/mathgl/mgl32"

// sfcLevels is log2 of the grid resolution the hierarchical Hilbert curve
// is defined over (a hierarchical stochastic Hilbert curve over a 2048^2
// grid -> 2^11 == 2048). Kept as an untyped constant rather than derived
// from Config.SFCResolution: SFCResolution scales the projected plane
// before quantization (how tightly particles must cluster to share a grid
// cell), while the curve's own depth is a fixed implementation detail.
const sfcLevels = 11
const sfcGrid = 1 << sfcLevels // 2048

// Two SFC schemes are worth naming here: a hierarchical stochastic Hilbert
// curve over a 2048^2 grid, and a degenerate octahedral projection that just
// returns u.x + 2*u.y. Only the former gives the near-field gravity window
// anything resembling real spatial locality - the degenerate version
// collapses two very different directions to the same scalar far too
// often. This file implements only the hierarchical curve; the degenerate
// one is not ported.

// sfc computes the SFC key for a position - a scalar derived from position
// such that nearby points usually get nearby keys: project through an
// octahedral (butterfly) map to 2D, then through a hierarchical
// Hilbert-like curve, returning an ascending-compare spatial locality
// proxy. resolution scales the octahedral plane before quantization onto
// the Hilbert grid.
func sfc(p mgl32.Vec3, resolution float32) float32 {
	u, v := octahedralEncode(p)

	// octahedralEncode returns (u,v) in [-1,1]; resolution controls how much
	// of that range maps onto one Hilbert grid cell before wrapping, which
	// is what lets SFCResolution trade off "locality within a shell" against
	// "locality across shells" for particles at different radii.
	scaled := resolution
	if scaled <= 0 {
		scaled = 1
	}
	fx := wrapUnit(u*scaled*0.5 + 0.5)
	fy := wrapUnit(v*scaled*0.5 + 0.5)

	gx := uint32(fx * float32(sfcGrid))
	gy := uint32(fy * float32(sfcGrid))
	if gx >= sfcGrid {
		gx = sfcGrid - 1
	}
	if gy >= sfcGrid {
		gy = sfcGrid - 1
	}

	d := hilbertXY2D(sfcLevels, gx, gy)

	// Radius is folded in as a stochastic low-order perturbation so that
	// particles which project to the same octahedral cell but sit at very
	// different distances from the origin do not collapse to an identical
	// key; this is the "stochastic" half of "hierarchical stochastic
	// Hilbert".
	r := p.Len()
	jitter := hash32(uint32(r*1024.0)) & 0xFF

	maxD := uint64(1) << (2 * sfcLevels)
	key := (d << 8) | uint64(jitter)
	maxKey := (maxD << 8) | 0xFF
	return float32(key) / float32(maxKey)
}

// octahedralEncode projects a 3D position onto the octahedron and unfolds it
// to the unit square [-1,1]^2, the standard "butterfly" normal/position
// compression used across real-time engines. Positions near the origin
// (where direction is undefined) encode as the +Z pole.
func octahedralEncode(p mgl32.Vec3) (float32, float32) {
	const eps = 1e-8
	l1 := abs32(p.X()) + abs32(p.Y()) + abs32(p.Z())
	if l1 < eps {
		return 0, 0
	}
	inv := 1.0 / l1
	nx, ny, nz := p.X()*inv, p.Y()*inv, p.Z()*inv

	if nz < 0 {
		ox, oy := nx, ny
		nx = (1 - abs32(oy)) * signNotZero(ox)
		ny = (1 - abs32(ox)) * signNotZero(oy)
	}
	return nx, ny
}

func signNotZero(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// wrapUnit folds v into [0,1] by repeated reflection, avoiding a hard seam
// at the octahedron's edges (a plain modulo would place adjacent faces on
// opposite ends of the Hilbert curve).
func wrapUnit(v float32) float32 {
	for v < 0 {
		v += 2
	}
	for v >= 2 {
		v -= 2
	}
	if v > 1 {
		v = 2 - v
	}
	return v
}

// hash32 is a cheap integer mixer (Murmur3 finalizer), used only to derive
// the stochastic radius jitter above; it is not a cryptographic hash.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x85ebca6b
	x ^= x >> 13
	x *= 0xc2b2ae35
	x ^= x >> 16
	return x
}

// hilbertXY2D maps an (x,y) grid coordinate to its distance along a
// order-bits Hilbert curve, the classic bit-rotation algorithm.
func hilbertXY2D(bits uint, x, y uint32) uint64 {
	var rx, ry uint32
	var d uint64
	for s := uint32(1) << (bits - 1); s > 0; s >>= 1 {
		if x&s > 0 {
			rx = 1
		} else {
			rx = 0
		}
		if y&s > 0 {
			ry = 1
		} else {
			ry = 0
		}
		d += uint64(s) * uint64(s) * uint64((3*rx)^ry)
		x, y = hilbertRotate(s, x, y, rx, ry)
	}
	return d
}

func hilbertRotate(s uint32, x, y, rx, ry uint32) (uint32, uint32) {
	if ry == 0 {
		if rx == 1 {
			x = s - 1 - x
			y = s - 1 - y
		}
		x, y = y, x
	}
	return x, y
}
