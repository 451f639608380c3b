package director

import "lumen/internal/fixture"

// DefaultMasterScale is the global damping factor applied before the
// per-category ceilings.
const DefaultMasterScale = 0.85

// Governor is the single place absolute brightness is bounded. It runs
// unconditionally after program and crossfade evaluation, scales every
// intensity by the master factor, then clamps to the fixture's category
// ceiling. It never inspects which program produced a value, so it commutes
// with program selection and is idempotent on already-governed output.
type Governor struct {
	MasterScale float64
}

// Apply governs the whole rig in place.
func (g Governor) Apply(reg *fixture.Registry) {
	governBatch(reg.SpotLike(), g.MasterScale)
	governBatch(reg.PointLike(), g.MasterScale)
}

func governBatch(batch []*fixture.Fixture, scale float64) {
	for _, f := range batch {
		v := f.Intensity * scale
		if v < 0 {
			v = 0
		}
		if v > f.Ceiling {
			v = f.Ceiling
		}
		f.Intensity = v
	}
}
