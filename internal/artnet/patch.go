package artnet

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"lumen/internal/fixture"
)

// Channels maps fixture attributes to 1-based channel offsets within the
// fixture's address block. Zero means the fixture has no such channel.
type Channels struct {
	Dimmer int `yaml:"dimmer"`
	Red    int `yaml:"red"`
	Green  int `yaml:"green"`
	Blue   int `yaml:"blue"`
	Pan    int `yaml:"pan"`
	Tilt   int `yaml:"tilt"`
}

// Entry patches one fixture to a DMX base address. Entries are matched to
// fixtures by position: the Nth entry drives the Nth fixture of the
// registry's flattened view.
type Entry struct {
	ID       string   `yaml:"id"`
	Base     int      `yaml:"base"`
	Channels Channels `yaml:"channels"`
}

// Patch is the YAML patch document.
type Patch struct {
	Fixtures []Entry `yaml:"fixtures"`
}

// LoadPatch reads and validates a patch file.
func LoadPatch(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patch: %w", err)
	}
	var p Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}
	for i, e := range p.Fixtures {
		if e.Base < 1 || e.Base > 512 {
			return nil, fmt.Errorf("patch entry %d (%s): base %d outside 1..512", i, e.ID, e.Base)
		}
		for name, ch := range map[string]int{
			"dimmer": e.Channels.Dimmer,
			"red":    e.Channels.Red,
			"green":  e.Channels.Green,
			"blue":   e.Channels.Blue,
			"pan":    e.Channels.Pan,
			"tilt":   e.Channels.Tilt,
		} {
			if ch < 0 || e.Base+ch-1 > 512 {
				return nil, fmt.Errorf("patch entry %d (%s): channel %s out of frame", i, e.ID, name)
			}
		}
	}
	return &p, nil
}

// DefaultPatch generates a dense RGB+dimmer+pan/tilt patch matching a rig,
// used when no patch file is configured.
func DefaultPatch(reg *fixture.Registry) *Patch {
	p := &Patch{}
	base := 1
	for i, f := range reg.All() {
		width := 4
		ch := Channels{Dimmer: 1, Red: 2, Green: 3, Blue: 4}
		if f.Category.SpotLike() {
			ch.Pan, ch.Tilt = 5, 6
			width = 6
		}
		if base+width-1 > 512 {
			break
		}
		p.Fixtures = append(p.Fixtures, Entry{
			ID:       fmt.Sprintf("%s-%d", f.Category, i),
			Base:     base,
			Channels: ch,
		})
		base += width
	}
	return p
}

// Mapper converts governed fixture state into a 512-byte DMX frame.
type Mapper struct {
	patch *Patch
	frame [512]byte
}

// NewMapper builds a mapper over a patch.
func NewMapper(patch *Patch) *Mapper {
	return &Mapper{patch: patch}
}

// Frame renders the rig into the DMX frame and returns it. The returned slice
// is reused between calls.
func (m *Mapper) Frame(reg *fixture.Registry) []byte {
	all := reg.All()
	for i, e := range m.patch.Fixtures {
		if i >= len(all) {
			break
		}
		f := all[i]

		level := 0.0
		if f.Ceiling > 0 {
			level = f.Intensity / f.Ceiling
		}
		m.set(e, e.Channels.Dimmer, level)
		m.set(e, e.Channels.Red, f.Color.R)
		m.set(e, e.Channels.Green, f.Color.G)
		m.set(e, e.Channels.Blue, f.Color.B)

		if e.Channels.Pan != 0 || e.Channels.Tilt != 0 {
			pan, tilt := aimAngles(f)
			m.set(e, e.Channels.Pan, pan)
			m.set(e, e.Channels.Tilt, tilt)
		}
	}
	return m.frame[:]
}

func (m *Mapper) set(e Entry, channel int, value float64) {
	if channel == 0 {
		return
	}
	idx := e.Base + channel - 2 // base and channel are both 1-based
	if idx < 0 || idx >= len(m.frame) {
		return
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	m.frame[idx] = byte(math.Round(value * 255))
}

// aimAngles converts the position→target direction into normalized pan/tilt.
// Pan sweeps the full circle; tilt runs from straight down (0) to horizontal (1).
func aimAngles(f *fixture.Fixture) (pan, tilt float64) {
	dx := f.Target.X - f.Position.X
	dy := f.Target.Y - f.Position.Y
	dz := f.Target.Z - f.Position.Z

	pan = (math.Atan2(dx, dz) + math.Pi) / (2 * math.Pi)
	horiz := math.Hypot(dx, dz)
	tilt = math.Atan2(horiz, -dy) / math.Pi
	if tilt < 0 {
		tilt = 0
	}
	if tilt > 1 {
		tilt = 1
	}
	return pan, tilt
}
