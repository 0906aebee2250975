package beamfx

import (
	"fmt"
	"time"
)

// BeamEmitterComponent configures one converging-beam effect. The emitter
// spawns Count beams on a sphere of Radius around the coordinate origin;
// each accelerates toward the center and respawns on arrival, giving a
// continuous charge-up look.
//
// Parameters may change between ticks. A Count change rebuilds the pool
// wholesale; a Width change applies to subsequent respawns, while a new
// Radius only takes effect when the pool is rebuilt.
// Recommended ranges: Radius 1.0-6.0, Width 0.01-0.2, TimeScale 0.1-10.0.
type BeamEmitterComponent struct {
	Enabled bool

	Count     int
	Radius    float32
	Width     float32
	TimeScale float32

	// Mesh is assigned by the simulation on first update and points at
	// the asset the renderer should draw for this emitter.
	Mesh AssetId
}

// Validate rejects configurations the simulation must never see.
func (em *BeamEmitterComponent) Validate() error {
	if em.Count <= 0 {
		return fmt.Errorf("beam emitter: count must be positive, got %d", em.Count)
	}
	if em.Radius <= 0 {
		return fmt.Errorf("beam emitter: radius must be positive, got %v", em.Radius)
	}
	if em.Width <= 0 {
		return fmt.Errorf("beam emitter: width must be positive, got %v", em.Width)
	}
	if em.TimeScale <= 0 {
		return fmt.Errorf("beam emitter: time scale must be positive, got %v", em.TimeScale)
	}
	return nil
}

// BeamFxState owns the per-emitter beam pools.
type BeamFxState struct {
	pools map[EntityId]*BeamPool
	src   RandomSource
	log   Logger
}

// Pool returns the pool simulated for an emitter entity, if one exists.
func (state *BeamFxState) Pool(eid EntityId) (*BeamPool, bool) {
	pool, ok := state.pools[eid]
	return pool, ok
}

// Release drops an emitter's pool, e.g. after its entity was removed.
func (state *BeamFxState) Release(eid EntityId) {
	delete(state.pools, eid)
}

// ensurePool returns the emitter's pool, rebuilding it when missing or
// when the configured count no longer matches. The bool reports whether
// buffers were reallocated.
func (state *BeamFxState) ensurePool(eid EntityId, em *BeamEmitterComponent) (*BeamPool, bool) {
	pool, ok := state.pools[eid]
	if !ok {
		pool = NewBeamPool(em.Count, em.Radius, em.Width, state.src)
		state.pools[eid] = pool
		return pool, true
	}

	pool.SetShape(em.Radius, em.Width)
	if pool.Count() != em.Count {
		pool.Reset(em.Count)
		return pool, true
	}
	return pool, false
}

// BeamModule runs the beam simulation for every emitter entity, once per
// tick in the Update stage, and publishes each emitter's triangle buffers
// as a mesh asset. Requires AssetServerModule and a Time resource.
type BeamModule struct {
	// Source overrides the default time-seeded randomness.
	Source RandomSource
}

func (mod BeamModule) Install(app *App, cmd *Commands) {
	src := mod.Source
	if src == nil {
		src = NewRandomSource(time.Now().UnixNano())
	}
	cmd.AddResources(&BeamFxState{
		pools: make(map[EntityId]*BeamPool),
		src:   src,
		log:   app.Logger(),
	})
	app.UseSystem(System(beamSystem).InStage(Update))
}

func beamSystem(state *BeamFxState, t *Time, server *AssetServer, cmd *Commands) {
	dt := float32(t.Dt.Seconds())
	if dt <= 0 {
		return
	}

	MakeQuery1[BeamEmitterComponent](cmd).Map(func(eid EntityId, em *BeamEmitterComponent) bool {
		if !em.Enabled {
			return true
		}
		if err := em.Validate(); err != nil {
			state.log.Warnf("skipping emitter %v: %v", eid, err)
			return true
		}

		pool, rebuilt := state.ensurePool(eid, em)

		if em.Mesh == "" {
			em.Mesh = server.CreateMesh()
			rebuilt = true
		}

		pool.Step(dt, em.TimeScale)

		// Vertices mutate in place through the shared slices; only a
		// reallocation needs re-publishing.
		if rebuilt {
			server.SetMeshBuffers(em.Mesh, pool.Vertices, pool.Normals, pool.Indices)
		}
		return true
	})
}
