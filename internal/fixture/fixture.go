// Package fixture owns the abstract light rig: the fixed set of fixtures the
// programs drive every frame, partitioned by category with a stable,
// reproducible ordering.
package fixture

import "fmt"

// Category partitions the rig into the classes the programs address.
type Category int

const (
	FrontSpot Category = iota
	SideSpot
	WashLight
	EffectSpot
	Strobe

	categoryCount
)

// Categories returns every category in flattened-view order. The concatenation
// of the per-category lists in this order is the snapshot index used during
// crossfades, so it must never change between runs.
func Categories() []Category {
	return []Category{FrontSpot, SideSpot, WashLight, EffectSpot, Strobe}
}

func (c Category) String() string {
	switch c {
	case FrontSpot:
		return "front_spot"
	case SideSpot:
		return "side_spot"
	case WashLight:
		return "wash_light"
	case EffectSpot:
		return "effect_spot"
	case Strobe:
		return "strobe"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// SpotLike reports whether fixtures of this category aim at a target point.
// Wash lights and strobes are point sources; their Target is ignored.
func (c Category) SpotLike() bool {
	switch c {
	case FrontSpot, SideSpot, EffectSpot:
		return true
	default:
		return false
	}
}

// DefaultCeiling returns the intensity ceiling class for a category. The
// governor clamps to these after the master scale; front, side, and effect
// spots share one class, wash lights a second, strobes a third.
func DefaultCeiling(c Category) float64 {
	switch c {
	case WashLight:
		return 2.5
	case Strobe:
		return 6.0
	default:
		return 4.0
	}
}

// Vec3 is a point in stage space (meters). X spans the stage left to right,
// Y is height, Z runs from the back wall toward the audience.
type Vec3 struct {
	X, Y, Z float64
}

// Color is a linear RGB triple. Components are non-negative and may exceed 1
// before the governor runs; the renderer maps them to device range.
type Color struct {
	R, G, B float64
}

// Lerp interpolates component-wise from c toward to by k in [0,1].
func (c Color) Lerp(to Color, k float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*k,
		G: c.G + (to.G-c.G)*k,
		B: c.B + (to.B-c.B)*k,
	}
}

// Scale multiplies every component by k.
func (c Color) Scale(k float64) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// Fixture is one abstract controllable light source. Fixtures are created
// once at registry construction and mutated in place every frame; they are
// never shared between registries.
type Fixture struct {
	Category Category

	// Position is fixed for the life of the rig.
	Position Vec3

	// Target is the aim point. Programs move it only for spot-like fixtures.
	Target Vec3

	// Color and Intensity are the live targets the programs write and the
	// renderer reads after each update.
	Color     Color
	Intensity float64

	// Ceiling bounds Intensity after the governor's master scale.
	Ceiling float64
}
