package fdl

import "github.com/go-gl/mathgl/mgl32"

// NoEdge is the CSR/edge-store sentinel meaning "no edge".
const NoEdge int32 = -1

// State is the struct-of-arrays particle storage, occupying physical slots
// 0..N-1. The engine keeps these as flat Go slices indexed by physical
// slot, not by persistent particle identity; PID recovers the latter.
type State struct {
	Pos  []mgl32.Vec3 // position, index = physical slot
	SFC  []float32    // SFC key derived from Pos, refreshed by the physics kernel
	Vel  []mgl32.Vec3 // velocity
	PID  []uint32     // persistent particle identity, stable across ticks
	Mass []float32
	Tint []mgl32.Vec3 // ancillary render tint, carried through reshuffle untouched

	// EdgePtr mirrors ptr[slot] after the prefix-sum/relocation stages, so a
	// consumer reading only the particle arrays can still find a particle's
	// edge range without also holding on to the CSR. Refreshed by the
	// engine's internal refreshEdgePtr step at the end of every tick; stale
	// until then.
	EdgePtr []uint32
}

// NewState allocates a State for n particles with identity PIDs 0..n-1 and
// zeroed attributes otherwise. Callers seed Pos/Vel/Mass/PID from the
// ingestion collaborator before the first tick.
func NewState(n int) *State {
	s := &State{
		Pos:     make([]mgl32.Vec3, n),
		SFC:     make([]float32, n),
		Vel:     make([]mgl32.Vec3, n),
		PID:     make([]uint32, n),
		Mass:    make([]float32, n),
		Tint:    make([]mgl32.Vec3, n),
		EdgePtr: make([]uint32, n),
	}
	for i := range s.PID {
		s.PID[i] = uint32(i)
	}
	return s
}

// Len returns the particle count.
func (s *State) Len() int { return len(s.Pos) }

// clone allocates a deep copy, used to build the scratch half of the
// ping-pong pair at construction.
func (s *State) clone() *State {
	c := &State{
		Pos:     append([]mgl32.Vec3(nil), s.Pos...),
		SFC:     append([]float32(nil), s.SFC...),
		Vel:     append([]mgl32.Vec3(nil), s.Vel...),
		PID:     append([]uint32(nil), s.PID...),
		Mass:    append([]float32(nil), s.Mass...),
		Tint:    append([]mgl32.Vec3(nil), s.Tint...),
		EdgePtr: append([]uint32(nil), s.EdgePtr...),
	}
	return c
}

// CSR is the compressed-sparse-row edge store: for owner at slot p, its
// edges occupy Store[Ptr[p]:Ptr[p+1]]. Ptr always has length
// N+1, with the sentinel Ptr[N] == len(Store).
type CSR struct {
	Ptr   []int32
	Store []int32
}

// NewCSR validates and wraps caller-supplied ptr/store slices. It copies
// neither slice; the caller must not mutate them after construction.
func NewCSR(ptr, store []int32) (*CSR, error) {
	if len(ptr) == 0 {
		return nil, &ConfigError{Reason: "ptr must not be empty"}
	}
	if int(ptr[len(ptr)-1]) != len(store) {
		return nil, &ConfigError{Reason: "ptr[N] must equal len(store)"}
	}
	for i := 1; i < len(ptr); i++ {
		if ptr[i] < ptr[i-1] {
			return nil, &ConfigError{Reason: "ptr must be monotone non-decreasing"}
		}
	}
	return &CSR{Ptr: ptr, Store: store}, nil
}

// N returns the particle count implied by this CSR (len(Ptr)-1).
func (c *CSR) N() int { return len(c.Ptr) - 1 }

// E returns the total edge count.
func (c *CSR) E() int { return len(c.Store) }

func (c *CSR) clone() *CSR {
	return &CSR{
		Ptr:   append([]int32(nil), c.Ptr...),
		Store: append([]int32(nil), c.Store...),
	}
}

// IdentityMap is the dense PID->physical-slot inverse map, sized to the
// PID space rather than the particle count so that arbitrary
// (but < capacity) PIDs from the ingestion collaborator are addressable.
type IdentityMap struct {
	slots []int32
}

// NewIdentityMap allocates an identity map over PIDs [0, capacity), cleared
// to the sentinel -1 ("unassigned PID").
func NewIdentityMap(capacity int) *IdentityMap {
	m := &IdentityMap{slots: make([]int32, capacity)}
	for i := range m.slots {
		m.slots[i] = NoEdge
	}
	return m
}

// Get returns the physical slot currently holding pid, or -1 if unassigned.
func (m *IdentityMap) Get(pid uint32) int32 {
	if int(pid) >= len(m.slots) {
		return NoEdge
	}
	return m.slots[pid]
}

func (m *IdentityMap) set(pid uint32, slot int32) {
	if int(pid) >= len(m.slots) {
		return
	}
	m.slots[pid] = slot
}

func (m *IdentityMap) clear() {
	for i := range m.slots {
		m.slots[i] = NoEdge
	}
}

// Validator is the optional invariant-checking collaborator: violations are
// only detectable when one is attached. The orchestrator calls these hooks
// at well-defined points in the tick only when a Validator has been
// attached via Engine.Attach; absent one, no extra work happens on the hot
// path.
type Validator interface {
	// AfterPrefixSum is called with the freshly rebuilt CSR pointer array
	// and the expected total edge count.
	AfterPrefixSum(tick uint64, ptr []int32, expectedE int)
	// AfterIdentity is called with the rebuilt identity map and the current
	// particle state, to check identity[PID(slot)] == slot.
	AfterIdentity(tick uint64, identity *IdentityMap, s *State)
	// AfterRelocation is called with the old and new CSR plus both states,
	// to check edge-set preservation.
	AfterRelocation(tick uint64, oldCSR, newCSR *CSR, oldState, newState *State)
}
