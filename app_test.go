package beamfx

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func TestApp_addResources(t *testing.T) {
	app := NewApp()

	resource1 := &MockResource1{name: "Resource1"}
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Adding the same type again must panic
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := &MockResource2{name: "Resource2"}
	app.addResources(resource2)

	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

type tickCounter struct {
	ticks int
}

func TestApp_SystemResourceInjection(t *testing.T) {
	app := NewApp()
	app.addResources(&tickCounter{})

	app.UseSystem(System(func(counter *tickCounter, cmd *Commands) {
		counter.ticks++
	}))

	app.Step()
	app.Step()

	counter := getResource[tickCounter](t, app)
	assert.Equal(t, 2, counter.ticks)
}

func TestApp_UnresolvableDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(missing *MockResource1) {}))

	assert.Panics(t, func() { app.Step() })
}

func TestApp_StageOrdering(t *testing.T) {
	app := NewApp()

	var order []string
	record := func(name string) systemScheduleBuilder {
		return System(func() { order = append(order, name) })
	}

	upload := Stage{Name: "Upload"}
	app.UseStage(upload, AfterStage(Update))
	cull := Stage{Name: "Cull"}
	app.UseStage(cull, BeforeStage(Render))

	app.UseSystem(record("render").InStage(Render))
	app.UseSystem(record("update").InStage(Update))
	app.UseSystem(record("upload").InStage(upload))
	app.UseSystem(record("cull").InStage(cull))
	app.UseSystem(record("pre").InStage(PreUpdate))

	app.Step()

	assert.Equal(t, []string{"pre", "update", "upload", "cull", "render"}, order)
}

func TestApp_RunStopsOnQuit(t *testing.T) {
	app := NewApp()

	ticks := 0
	app.UseSystem(System(func() {
		ticks++
		if ticks >= 3 {
			app.Quit()
		}
	}))

	app.Run()

	assert.Equal(t, 3, ticks, "Run should loop until Quit is called")
}

func TestApp_UseSystemUnknownStagePanics(t *testing.T) {
	app := NewApp()

	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nope"}))
	})
}

func TestApp_Logger(t *testing.T) {
	app := NewApp()
	assert.NotNil(t, app.Logger(), "logger accessor never returns nil")

	app.UseModules(LoggingModule{Prefix: "beamfx"})
	logger := app.Logger()
	_, ok := logger.(*DefaultLogger)
	assert.True(t, ok, "installed logger should be returned")
}
