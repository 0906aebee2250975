package beamfx

import (
	"encoding/json"
	"os"
)

type EmitterData struct {
	ID          EntityId `json:"id"`
	Enabled     bool     `json:"enabled"`
	Count       int      `json:"count"`
	Radius      float32  `json:"radius"`
	Width       float32  `json:"width"`
	TimeScale   float32  `json:"time_scale"`
	HasLifetime bool     `json:"has_lifetime"`
	TimeLeft    float32  `json:"time_left,omitempty"`
}

type PresetData struct {
	Emitters []EmitterData `json:"emitters"`
}

// SavePreset writes every emitter entity's configuration to a JSON file.
// Only configuration is persisted; pool state and mesh ids are rebuilt on
// the first tick after loading.
func SavePreset(cmd *Commands, filename string) error {
	var emitters []EmitterData

	MakeQuery1[BeamEmitterComponent](cmd).Map(func(eid EntityId, em *BeamEmitterComponent) bool {
		data := EmitterData{
			ID:        eid,
			Enabled:   em.Enabled,
			Count:     em.Count,
			Radius:    em.Radius,
			Width:     em.Width,
			TimeScale: em.TimeScale,
		}

		// Pick up whatever else lives on the entity
		for _, c := range cmd.GetAllComponents(eid) {
			switch comp := c.(type) {
			case LifetimeComponent:
				data.HasLifetime = true
				data.TimeLeft = comp.TimeLeft
			case *LifetimeComponent:
				data.HasLifetime = true
				data.TimeLeft = comp.TimeLeft
			}
		}

		emitters = append(emitters, data)
		return true
	})

	preset := PresetData{Emitters: emitters}
	bytes, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}

// LoadPreset creates one emitter entity per saved configuration and
// returns the new ids. Saved entity ids are not reused.
func LoadPreset(cmd *Commands, filename string) ([]EntityId, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var preset PresetData
	if err := json.Unmarshal(bytes, &preset); err != nil {
		return nil, err
	}

	var newEntities []EntityId
	for _, data := range preset.Emitters {
		components := []any{
			&BeamEmitterComponent{
				Enabled:   data.Enabled,
				Count:     data.Count,
				Radius:    data.Radius,
				Width:     data.Width,
				TimeScale: data.TimeScale,
			},
		}
		if data.HasLifetime {
			components = append(components, &LifetimeComponent{TimeLeft: data.TimeLeft})
		}

		newEntities = append(newEntities, cmd.AddEntity(components...))
	}

	return newEntities, nil
}
