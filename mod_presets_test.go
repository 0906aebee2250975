package beamfx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetRoundtrip(t *testing.T) {
	app := NewApp()
	app.UseModules(AssetServerModule{}, BeamModule{Source: NewRandomSource(1)})
	cmd := app.Commands()

	cmd.AddEntity(&BeamEmitterComponent{
		Enabled: true, Count: 12, Radius: 2.5, Width: 0.08, TimeScale: 1.5,
	})
	cmd.AddEntity(
		&BeamEmitterComponent{Enabled: false, Count: 3, Radius: 1.0, Width: 0.2, TimeScale: 0.5},
		&LifetimeComponent{TimeLeft: 4.0},
	)
	app.FlushCommands()

	testFile := filepath.Join(t.TempDir(), "emitters.json")
	require.NoError(t, SavePreset(cmd, testFile))

	jsonContent, err := os.ReadFile(testFile)
	require.NoError(t, err)
	t.Logf("Saved JSON:\n%s", string(jsonContent))

	app2 := NewApp()
	app2.UseModules(AssetServerModule{}, BeamModule{Source: NewRandomSource(1)})
	cmd2 := app2.Commands()

	newEntities, err := LoadPreset(cmd2, testFile)
	require.NoError(t, err)
	require.Len(t, newEntities, 2)
	app2.FlushCommands()

	var emitters []BeamEmitterComponent
	var lifetimes int
	MakeQuery2[BeamEmitterComponent, LifetimeComponent](cmd2).Map(func(eid EntityId, em *BeamEmitterComponent, lt *LifetimeComponent) bool {
		emitters = append(emitters, *em)
		if lt != nil {
			lifetimes++
			assert.InDelta(t, 4.0, lt.TimeLeft, 1e-6)
		}
		return true
	}, LifetimeComponent{})

	require.Len(t, emitters, 2)
	assert.Equal(t, 1, lifetimes)

	for _, em := range emitters {
		assert.Empty(t, em.Mesh, "mesh ids are not persisted")
		if em.Enabled {
			assert.Equal(t, 12, em.Count)
			assert.InDelta(t, 2.5, em.Radius, 1e-6)
			assert.InDelta(t, 0.08, em.Width, 1e-6)
			assert.InDelta(t, 1.5, em.TimeScale, 1e-6)
		} else {
			assert.Equal(t, 3, em.Count)
			assert.InDelta(t, 0.5, em.TimeScale, 1e-6)
		}
	}
}

func TestLoadPreset_MissingFile(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	_, err := LoadPreset(cmd, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
