// Package config loads and validates the TOML configuration for the show.
// Everything tunable lives here; invalid configuration fails at load so the
// per-frame path never has to revalidate.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"lumen/internal/fixture"
)

//go:embed sample_config.toml
var sampleConfig string

// Fixtures configures the rig: how many fixtures of each category to build
// and the stage dimensions the placement policy mounts them in.
type Fixtures struct {
	FrontSpots  int `toml:"front_spots"`
	SideSpots   int `toml:"side_spots"`
	WashLights  int `toml:"wash_lights"`
	EffectSpots int `toml:"effect_spots"`
	Strobes     int `toml:"strobes"`

	StageWidth  float64 `toml:"stage_width"`
	StageDepth  float64 `toml:"stage_depth"`
	StageHeight float64 `toml:"stage_height"`
}

// Counts returns the per-category fixture counts.
func (f Fixtures) Counts() fixture.Counts {
	return fixture.Counts{
		FrontSpots:  f.FrontSpots,
		SideSpots:   f.SideSpots,
		WashLights:  f.WashLights,
		EffectSpots: f.EffectSpots,
		Strobes:     f.Strobes,
	}
}

// Stage returns the placement policy for the configured stage box.
func (f Fixtures) Stage() fixture.Stage {
	return fixture.Stage{Width: f.StageWidth, Depth: f.StageDepth, Height: f.StageHeight}
}

// Show configures the program machine and the intensity governor.
type Show struct {
	CrossfadeSeconds   float64 `toml:"crossfade_seconds"`
	LowEnergyThreshold float64 `toml:"low_energy_threshold"`
	MasterScale        float64 `toml:"master_scale"`
	SpotCeiling        float64 `toml:"spot_ceiling"`
	WashCeiling        float64 `toml:"wash_ceiling"`
	StrobeCeiling      float64 `toml:"strobe_ceiling"`
}

// CeilingFor maps a category to its configured ceiling class. Front, side,
// and effect spots share one class; wash lights and strobes each get their own.
func (s Show) CeilingFor(cat fixture.Category) float64 {
	switch cat {
	case fixture.WashLight:
		return s.WashCeiling
	case fixture.Strobe:
		return s.StrobeCeiling
	default:
		return s.SpotCeiling
	}
}

// ArtNet configures the DMX output transport.
type ArtNet struct {
	Enabled   bool   `toml:"enabled"`
	Broadcast string `toml:"broadcast"`
	Universe  int    `toml:"universe"`
	FPS       int    `toml:"fps"`
	PatchFile string `toml:"patch_file"`
}

// Audio configures the analyzer that turns decoded samples into frames.
type Audio struct {
	// Window is the hop size in samples per analysis frame.
	Window int `toml:"window"`
	// BeatThreshold is the multiple of trailing average energy an onset
	// must exceed.
	BeatThreshold float64 `toml:"beat_threshold"`
	// MoodHoldSeconds is the minimum time between mood changes.
	MoodHoldSeconds float64 `toml:"mood_hold_seconds"`
}

// Logging configures log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	LogDir string `toml:"log_dir"`
}

// Config encapsulates all configuration values for Lumen.
type Config struct {
	Fixtures Fixtures `toml:"fixtures"`
	Show     Show     `toml:"show"`
	ArtNet   ArtNet   `toml:"artnet"`
	Audio    Audio    `toml:"audio"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Fixtures: Fixtures{
			FrontSpots:  4,
			SideSpots:   4,
			WashLights:  6,
			EffectSpots: 4,
			Strobes:     2,
			StageWidth:  12,
			StageDepth:  10,
			StageHeight: 6,
		},
		Show: Show{
			CrossfadeSeconds:   3.0,
			LowEnergyThreshold: 0.15,
			MasterScale:        0.85,
			SpotCeiling:        4.0,
			WashCeiling:        2.5,
			StrobeCeiling:      6.0,
		},
		ArtNet: ArtNet{
			Enabled:   false,
			Broadcast: "255.255.255.255",
			Universe:  0,
			FPS:       40,
		},
		Audio: Audio{
			Window:          1024,
			BeatThreshold:   1.35,
			MoodHoldSeconds: 2.5,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/lumen/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults apply. The returned path is the file that was (or
// would have been) read.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("lumen.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.LogDir != "" {
		expanded, err := ExpandPath(c.Logging.LogDir)
		if err != nil {
			return err
		}
		c.Logging.LogDir = expanded
	}
	if c.ArtNet.PatchFile != "" {
		expanded, err := ExpandPath(c.ArtNet.PatchFile)
		if err != nil {
			return err
		}
		c.ArtNet.PatchFile = expanded
	}
	c.ArtNet.Broadcast = strings.TrimSpace(c.ArtNet.Broadcast)
	return nil
}

// Validate checks every section. Construction-time validation is the only
// place bad configuration may surface; the frame path assumes it passed.
func (c *Config) Validate() error {
	counts := map[string]int{
		"front_spots":  c.Fixtures.FrontSpots,
		"side_spots":   c.Fixtures.SideSpots,
		"wash_lights":  c.Fixtures.WashLights,
		"effect_spots": c.Fixtures.EffectSpots,
		"strobes":      c.Fixtures.Strobes,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("fixtures.%s must not be negative (got %d)", name, n)
		}
	}
	if c.Fixtures.StageWidth <= 0 || c.Fixtures.StageDepth <= 0 || c.Fixtures.StageHeight <= 0 {
		return fmt.Errorf("fixtures stage dimensions must be positive")
	}

	if c.Show.CrossfadeSeconds <= 0 {
		return fmt.Errorf("show.crossfade_seconds must be positive (got %g)", c.Show.CrossfadeSeconds)
	}
	if c.Show.LowEnergyThreshold < 0 || c.Show.LowEnergyThreshold >= 1 {
		return fmt.Errorf("show.low_energy_threshold must be in [0,1) (got %g)", c.Show.LowEnergyThreshold)
	}
	if c.Show.MasterScale <= 0 || c.Show.MasterScale > 1 {
		return fmt.Errorf("show.master_scale must be in (0,1] (got %g)", c.Show.MasterScale)
	}
	for name, ceiling := range map[string]float64{
		"spot_ceiling":   c.Show.SpotCeiling,
		"wash_ceiling":   c.Show.WashCeiling,
		"strobe_ceiling": c.Show.StrobeCeiling,
	} {
		if ceiling <= 0 {
			return fmt.Errorf("show.%s must be positive (got %g)", name, ceiling)
		}
	}

	if c.ArtNet.Enabled {
		if c.ArtNet.FPS <= 0 {
			return fmt.Errorf("artnet.fps must be positive (got %d)", c.ArtNet.FPS)
		}
		if c.ArtNet.Universe < 0 || c.ArtNet.Universe > 0x7FFF {
			return fmt.Errorf("artnet.universe out of range (got %d)", c.ArtNet.Universe)
		}
	}

	if c.Audio.Window <= 0 {
		return fmt.Errorf("audio.window must be positive (got %d)", c.Audio.Window)
	}
	if c.Audio.BeatThreshold <= 1 {
		return fmt.Errorf("audio.beat_threshold must exceed 1 (got %g)", c.Audio.BeatThreshold)
	}
	if c.Audio.MoodHoldSeconds < 0 {
		return fmt.Errorf("audio.mood_hold_seconds must not be negative (got %g)", c.Audio.MoodHoldSeconds)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// Sample returns the embedded annotated sample configuration.
func Sample() string {
	return sampleConfig
}

// ExpandPath resolves ~ and relative components into an absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
