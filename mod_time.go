package beamfx

import (
	"time"
)

// Time carries the elapsed delta for the current tick.
type Time struct {
	Time time.Time
	Dt   time.Duration
}

// Advance sets an explicit delta for the tick, for headless drivers and
// tests that do not run on a wall clock.
func (t *Time) Advance(dt time.Duration) {
	t.Dt = dt
	t.Time = t.Time.Add(dt)
}

// TimeModule installs a wall-clock Time resource updated at the start of
// every tick.
type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})
	app.UseSystem(System(timeSystem).InStage(PreUpdate))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}
