package fdl

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RunPhysics executes the physics integrator kernel for every slot in cur,
// writing the result into scratch. cur and scratch must be
// distinct States of equal length; scratch's SFC keys are refreshed from the
// new positions. csr is read-only: the owner's edges at the *old* layout,
// since the reshuffle that will produce the new layout hasn't run yet.
func RunPhysics(cur, scratch *State, csr *CSR, cfg Config) {
	n := cur.Len()
	window := cfg.GravityWindow

	// Springs act on both ends of an edge (an edge is a connection, not a
	// one-sided pull), so the owner-side CSR walk is done as its own pass
	// first, scattering into both the owner's and the target's
	// accumulator. This is the one place the per-slot loop below can't
	// stay embarrassingly parallel in isolation.
	springAcc := make([]mgl32.Vec3, n)
	for i := 0; i < n; i++ {
		for e := csr.Ptr[i]; e < csr.Ptr[i+1]; e++ {
			target := csr.Store[e]
			if target < 0 {
				continue
			}
			d := cur.Pos[target].Sub(cur.Pos[i]).Mul(cfg.SpringK)
			springAcc[i] = springAcc[i].Add(d)
			springAcc[target] = springAcc[target].Sub(d)
		}
	}

	for i := 0; i < n; i++ {
		pi := cur.Pos[i]
		mi := cur.Mass[i]

		var acc mgl32.Vec3

		// Near-field gravity: proximity in slot space is spatial proximity
		// because particles were SFC-sorted last tick.
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window
		if hi >= n {
			hi = n - 1
		}
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			d := cur.Pos[j].Sub(pi)
			distSq := float64(d.Dot(d) + cfg.Eps)
			denom := float32(math.Pow(distSq, 1.5))
			if denom == 0 {
				continue
			}
			acc = acc.Add(d.Mul(cfg.G * cur.Mass[j] / denom))
		}

		acc = acc.Add(springAcc[i])

		// Optional boundary anchor: pulls particles back toward a
		// unit-sphere-ish shell when they drift past BoundaryRadius.
		// Disabled (no-op) when BoundaryStrength is 0.
		if cfg.BoundaryStrength > 0 {
			r := pi.Len()
			if r > 1e-8 {
				over := r - cfg.BoundaryRadius
				if over > 0 {
					acc = acc.Sub(pi.Mul((1.0 / r) * over * cfg.BoundaryStrength))
				}
			}
		}

		v := cur.Vel[i].Add(acc.Mul(cfg.Dt)).Mul(1 - cfg.Damping)
		p := pi.Add(v.Mul(cfg.Dt))

		scratch.Pos[i] = p
		scratch.Vel[i] = v
		scratch.SFC[i] = sfc(p, cfg.SFCResolution)
		scratch.PID[i] = cur.PID[i]
		scratch.Mass[i] = mi
		scratch.Tint[i] = cur.Tint[i]
	}
}
