package director

import (
	"io"
	"log/slog"

	"lumen/internal/audio"
	"lumen/internal/config"
	"lumen/internal/fixture"
	"lumen/internal/program"
)

// Director is the composition root of the lighting core. It owns one fixture
// registry exclusively; independent Directors never share rig state. All
// methods are single-threaded and frame-driven: one Update per render tick,
// fully synchronous, no background work.
type Director struct {
	log      *slog.Logger
	reg      *fixture.Registry
	selector Selector
	engine   *CrossfadeEngine
	governor Governor
	closed   bool
}

// New builds the rig from configuration and starts settled on the silence
// program. Invalid fixture configuration is the only fatal condition and
// surfaces here.
func New(cfg *config.Config, logger *slog.Logger) (*Director, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1 << 30)}))
	}

	reg, err := fixture.NewRegistry(cfg.Fixtures.Counts(), cfg.Fixtures.Stage())
	if err != nil {
		return nil, err
	}
	for _, cat := range fixture.Categories() {
		reg.SetCeiling(cat, cfg.Show.CeilingFor(cat))
	}

	d := &Director{
		log:      logger,
		reg:      reg,
		selector: Selector{LowEnergyThreshold: cfg.Show.LowEnergyThreshold},
		engine:   NewCrossfadeEngine(program.Silence, cfg.Show.CrossfadeSeconds),
		governor: Governor{MasterScale: cfg.Show.MasterScale},
	}
	d.log.Debug("rig built",
		slog.Int("fixtures", reg.Count()),
		slog.Float64("crossfade_seconds", cfg.Show.CrossfadeSeconds),
		slog.Float64("low_energy_threshold", cfg.Show.LowEnergyThreshold))
	return d, nil
}

// Fixtures exposes the governed rig for the renderer to read after Update
// returns. The director retains exclusive write ownership.
func (d *Director) Fixtures() *fixture.Registry {
	return d.reg
}

// State summarizes the program machine for status output.
type State struct {
	Current     program.ID
	Target      program.ID
	Crossfading bool
	Progress    float64
}

// State returns the current program machine state.
func (d *Director) State() State {
	return State{
		Current:     d.engine.Current(),
		Target:      d.engine.Target(),
		Crossfading: d.engine.Crossfading(),
		Progress:    d.engine.Progress(),
	}
}

// Update advances the show by one frame: select the desired program from
// (mood, energy), run or blend the program library, then govern intensities.
// The frame argument is treated as immutable for the duration of the call.
func (d *Director) Update(t, delta float64, mood audio.Mood, frame audio.Frame) {
	prev := d.engine.Current()
	wasCrossfading := d.engine.Crossfading()

	desired := d.selector.Select(mood, frame.Energy)
	d.engine.Advance(desired, t, delta, frame, d.reg)

	if !wasCrossfading && d.engine.Crossfading() {
		d.log.Debug("transition started",
			slog.String("from", prev.String()),
			slog.String("to", d.engine.Target().String()))
	}
	if cur := d.engine.Current(); cur != prev {
		d.log.Info("program changed",
			slog.String("program", cur.String()),
			slog.String("mood", string(mood)))
	}

	d.governor.Apply(d.reg)
}

// Close releases the rig. Safe to call exactly once; Update afterwards is
// undefined behavior.
func (d *Director) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.reg = nil
	d.log.Debug("director closed")
}
