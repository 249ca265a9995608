package fdl

import (
	"time"

	"github.com/google/uuid"
)

// Engine is the per-tick orchestrator: it owns every particle/edge array,
// holds the simulation parameters, and issues the seven kernels in order.
// It is strictly single-threaded cooperative: Tick returns only once every
// kernel for that tick has run.
type Engine struct {
	id  string
	cfg Config

	cur     *State // read by physics, written by reshuffle
	scratch *State // written by physics, read by reshuffle and relocation

	csr      *CSR // "old" CSR at the start of a tick; becomes "new" by the end
	identity *IdentityMap

	pass      uint64
	validator Validator
	stats     Stats
}

// NewEngine validates cfg and the required seed arrays and constructs an
// Engine ready for Tick. Configuration errors are returned, never panicked.
// The engine runs entirely on the CPU; nothing GPU- or device-related
// happens at this layer.
func NewEngine(cfg Config, initial *State, ptr, store []int32) (*Engine, error) {
	cfg = cfg.applyDefaults()
	if initial == nil {
		return nil, &ConfigError{Reason: "initial state must not be nil"}
	}
	if err := cfg.validate(len(ptr), len(store)); err != nil {
		return nil, err
	}
	if initial.Len() != cfg.N {
		return nil, &ConfigError{Reason: "initial state length must equal N"}
	}
	csr, err := NewCSR(append([]int32(nil), ptr...), append([]int32(nil), store...))
	if err != nil {
		return nil, err
	}

	maxPID := uint32(0)
	for _, pid := range initial.PID {
		if pid > maxPID {
			maxPID = pid
		}
	}

	e := &Engine{
		id:       uuid.NewString(),
		cfg:      cfg,
		cur:      initial.clone(),
		scratch:  initial.clone(),
		csr:      csr,
		identity: NewIdentityMap(int(maxPID) + 1),
	}
	cfg.Logger.Infof("engine %s constructed: N=%d E=%d", e.id, cfg.N, cfg.E)
	return e, nil
}

// ID returns the engine's run identifier.
func (e *Engine) ID() string { return e.id }

// Tick runs the full per-tick pipeline: physics, sort encoding, reshuffle,
// identity mirroring, prefix-sum rebuild, coarse map, and edge relocation.
// The only state carried between ticks besides the buffers themselves is
// the rolling sort offset; there is no raster state to save or restore,
// since no rasterization pipeline participates here.
func (e *Engine) Tick() {
	cfg := e.cfg
	n := cfg.N

	start := time.Now()
	RunPhysics(e.cur, e.scratch, e.csr, cfg)
	e.stats.Kernels.Physics = time.Since(start)

	start = time.Now()
	offset := int(e.pass%2) * (cfg.SortSpanSize / 2)
	atlas := BuildSortAtlas(e.scratch, offset, cfg.SortSpanSize)
	e.stats.Kernels.SortEncode = time.Since(start)

	start = time.Now()
	RunReshuffle(e.scratch, e.cur, atlas)
	e.stats.Kernels.Reshuffle = time.Since(start)

	start = time.Now()
	RunIdentityMirror(e.cur, e.identity)
	e.stats.Kernels.Identity = time.Since(start)
	if e.validator != nil {
		e.validator.AfterIdentity(e.pass, e.identity, e.cur)
	}

	start = time.Now()
	ptrNew := make([]int32, n+1)
	RunPrefixSum(e.csr, atlas, n, ptrNew)
	e.stats.Kernels.PrefixSum = time.Since(start)
	if e.validator != nil {
		e.validator.AfterPrefixSum(e.pass, ptrNew, e.csr.E())
	}

	start = time.Now()
	stride := cfg.EdgeCoarseMapStride
	numCoarse := (cfg.E + stride - 1) / stride
	if numCoarse < 1 {
		numCoarse = 1
	}
	cm := RunCoarseMap(ptrNew, n, numCoarse, stride)
	e.stats.Kernels.CoarseMap = time.Since(start)

	start = time.Now()
	storeNew := make([]int32, cfg.E)
	RunRelocation(e.csr, ptrNew, cm, atlas, e.scratch, e.identity, storeNew)
	e.stats.Kernels.Relocation = time.Since(start)

	newCSR := &CSR{Ptr: ptrNew, Store: storeNew}
	if e.validator != nil {
		e.validator.AfterRelocation(e.pass, e.csr, newCSR, e.scratch, e.cur)
	}
	e.csr = newCSR

	refreshEdgePtr(e.cur, e.csr)

	e.pass++
	e.stats.Ticks++
}

// State returns the engine's current (post-tick) particle state. Mutating
// it is the caller's responsibility and voids the ping-pong freshness
// invariant; treat it as read-only between ticks.
func (e *Engine) State() *State { return e.cur }

// CSR returns the engine's current (post-tick) edge store.
func (e *Engine) CSR() *CSR { return e.csr }

// Identity returns the engine's current PID->slot map.
func (e *Engine) Identity() *IdentityMap { return e.identity }

// Attach installs the optional invariant-checking collaborator. Pass nil
// to detach.
func (e *Engine) Attach(v Validator) { e.validator = v }

// Stats is a read-only per-engine tick counter snapshot, a host-side
// stand-in for a frame profiler re-targeted at ticks instead of render
// passes.
type Stats struct {
	Ticks   uint64
	Kernels KernelTimes
}

// KernelTimes records how long each stage of the most recent Tick took.
// Wall-clock, not CPU time; each field is overwritten when its stage
// finishes during a tick.
type KernelTimes struct {
	Physics    time.Duration
	SortEncode time.Duration
	Reshuffle  time.Duration
	Identity   time.Duration
	PrefixSum  time.Duration
	CoarseMap  time.Duration
	Relocation time.Duration
}

// Stats returns a snapshot of the engine's tick statistics.
func (e *Engine) Stats() Stats { return e.stats }

func refreshEdgePtr(s *State, csr *CSR) {
	for i := 0; i < s.Len(); i++ {
		s.EdgePtr[i] = uint32(csr.Ptr[i])
	}
}
