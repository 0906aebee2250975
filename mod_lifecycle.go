package beamfx

// LifetimeComponent allows an entity to automatically be removed after a
// set duration. Attached to an emitter it makes a one-burst effect.
type LifetimeComponent struct {
	TimeLeft float32
}

type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	app.UseSystem(System(lifetimeSystem).InStage(PostUpdate))
}

func lifetimeSystem(t *Time, state *BeamFxState, server *AssetServer, cmd *Commands) {
	dt := float32(t.Dt.Seconds())
	if dt <= 0 {
		return
	}
	MakeQuery2[LifetimeComponent, BeamEmitterComponent](cmd).Map(func(eid EntityId, lt *LifetimeComponent, em *BeamEmitterComponent) bool {
		lt.TimeLeft -= dt
		if lt.TimeLeft <= 0 {
			if em != nil {
				if em.Mesh != "" {
					server.ReleaseMesh(em.Mesh)
				}
				state.Release(eid)
			}
			cmd.RemoveEntity(eid)
		}
		return true
	}, BeamEmitterComponent{})
}
