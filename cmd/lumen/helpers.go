package main

import (
	"fmt"

	"lumen/internal/config"
	"lumen/internal/fixture"
)

// newRegistryFromConfig builds a standalone rig matching the configuration,
// with the configured ceilings applied. Used by commands that inspect the rig
// without running a director.
func newRegistryFromConfig(cfg *config.Config) (*fixture.Registry, error) {
	reg, err := fixture.NewRegistry(cfg.Fixtures.Counts(), cfg.Fixtures.Stage())
	if err != nil {
		return nil, err
	}
	for _, cat := range fixture.Categories() {
		reg.SetCeiling(cat, cfg.Show.CeilingFor(cat))
	}
	return reg, nil
}

func formatVec(v fixture.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}
