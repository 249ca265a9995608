// Command fdldemo drives the layout engine against a randomly seeded
// particle graph, pumping a glfw window's event loop so the demo behaves
// like a real host application rather than a bare benchmark loop. It does
// not render - the engine has no attached renderer of its own, matching
// the rule that it is only ever driven, never self-hosting a GPU device.
package main

import (
	"flag"
	"math/rand"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/graphforge/fdl"
)

func init() {
	runtime.LockOSThread()
}

func seedGraph(n, e int, seed int64) (*fdl.State, []int32, []int32) {
	r := rand.New(rand.NewSource(seed))
	s := fdl.NewState(n)
	for i := 0; i < n; i++ {
		s.Pos[i] = mgl32.Vec3{
			r.Float32()*2 - 1,
			r.Float32()*2 - 1,
			r.Float32()*2 - 1,
		}
		s.Mass[i] = 1.0
	}

	perOwner := make([][]int32, n)
	if n > 1 {
		for k := 0; k < e; k++ {
			owner := r.Intn(n)
			target := r.Intn(n)
			perOwner[owner] = append(perOwner[owner], int32(target))
		}
	}

	ptr := make([]int32, n+1)
	store := make([]int32, 0, e)
	for i := 0; i < n; i++ {
		ptr[i] = int32(len(store))
		store = append(store, perOwner[i]...)
	}
	ptr[n] = int32(len(store))

	return s, ptr, store
}

func main() {
	n := flag.Int("n", 4096, "particle count")
	e := flag.Int("e", 8192, "edge count")
	ticks := flag.Int("ticks", 600, "ticks to run before exiting")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(960, 540, "fdl demo", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	logger := fdl.NewDefaultLogger("fdl", *debug)

	cfg := fdl.DefaultConfig(*n, *e)
	cfg.Logger = logger

	state, ptr, store := seedGraph(*n, *e, 42)
	engine, err := fdl.NewEngine(cfg, state, ptr, store)
	if err != nil {
		panic(err)
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	clock := fdl.NewFrameClock(0.1)

	tick := 0
	for !window.ShouldClose() && tick < *ticks {
		glfw.PollEvents()
		clock.Tick()
		engine.Tick()
		tick++
		if tick%60 == 0 {
			live := engine.State()
			idx := fdl.BuildSpatialIndex(live, 0.25)
			neighbors := idx.QueryRadius(live.Pos[0], 0.25)
			logger.Infof("tick %d/%d, stats=%+v, frame=%d, neighbors(p0)=%d",
				tick, *ticks, engine.Stats(), clock.FrameCount, len(neighbors))
		}
	}
}
