package fixture

// Stage is the built-in placement policy: a rectangular room with a front
// truss, side trusses, an overhead wash row, a rear effect truss, and strobes
// along the back wall. Positions are deterministic functions of the category
// and index, so two rigs built from the same counts are identical.
type Stage struct {
	Width  float64 // X extent, centered on 0
	Depth  float64 // Z extent, back wall at -Depth/2
	Height float64 // truss height
}

// DefaultStage returns the placement used when no policy is configured.
func DefaultStage() Stage {
	return Stage{Width: 12, Depth: 10, Height: 6}
}

// Place mounts fixture index of total for a category.
func (s Stage) Place(cat Category, index, total int) Vec3 {
	span := func(width float64) float64 {
		if total <= 1 {
			return 0
		}
		return -width/2 + width*float64(index)/float64(total-1)
	}
	backZ := -s.Depth / 2
	frontZ := s.Depth / 2

	switch cat {
	case FrontSpot:
		return Vec3{X: span(s.Width * 0.9), Y: s.Height, Z: frontZ * 0.8}
	case SideSpot:
		// Alternate left/right wall, stepping toward the back.
		x := s.Width / 2
		if index%2 == 1 {
			x = -x
		}
		step := float64(index/2) + 0.5
		pairs := float64((total + 1) / 2)
		return Vec3{X: x, Y: s.Height * 0.8, Z: frontZ - s.Depth*step/pairs}
	case WashLight:
		return Vec3{X: span(s.Width * 0.7), Y: s.Height, Z: 0}
	case EffectSpot:
		return Vec3{X: span(s.Width * 0.8), Y: s.Height * 0.9, Z: backZ * 0.8}
	case Strobe:
		return Vec3{X: span(s.Width * 0.6), Y: s.Height * 0.6, Z: backZ}
	default:
		return Vec3{}
	}
}
