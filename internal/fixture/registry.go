package fixture

import "fmt"

// Counts configures how many fixtures of each category the rig carries.
// Zero is valid for any category and yields an empty list.
type Counts struct {
	FrontSpots  int
	SideSpots   int
	WashLights  int
	EffectSpots int
	Strobes     int
}

func (c Counts) of(cat Category) int {
	switch cat {
	case FrontSpot:
		return c.FrontSpots
	case SideSpot:
		return c.SideSpots
	case WashLight:
		return c.WashLights
	case EffectSpot:
		return c.EffectSpots
	case Strobe:
		return c.Strobes
	default:
		return 0
	}
}

// Total returns the rig size across all categories.
func (c Counts) Total() int {
	return c.FrontSpots + c.SideSpots + c.WashLights + c.EffectSpots + c.Strobes
}

// PlacementPolicy decides where fixture index (0-based) of total within a
// category is mounted. The registry treats positions as opaque.
type PlacementPolicy interface {
	Place(cat Category, index, total int) Vec3
}

// Registry owns the rig. Its category lists are disjoint and their
// concatenation order (front, side, wash, effect, strobe) is fixed, so the
// flattened view is a stable snapshot index across runs.
type Registry struct {
	byCategory [categoryCount][]*Fixture
	all        []*Fixture
	spotLike   []*Fixture
	pointLike  []*Fixture
}

// NewRegistry instantiates exactly the requested number of fixtures per
// category at policy-determined positions. Negative counts are the only fatal
// condition; they surface here, never during updates.
func NewRegistry(counts Counts, placement PlacementPolicy) (*Registry, error) {
	if placement == nil {
		placement = DefaultStage()
	}
	r := &Registry{}
	for _, cat := range Categories() {
		n := counts.of(cat)
		if n < 0 {
			return nil, fmt.Errorf("fixture count for %s is negative (%d)", cat, n)
		}
		list := make([]*Fixture, 0, n)
		for i := 0; i < n; i++ {
			f := &Fixture{
				Category: cat,
				Position: placement.Place(cat, i, n),
				Ceiling:  DefaultCeiling(cat),
			}
			list = append(list, f)
		}
		r.byCategory[cat] = list
		r.all = append(r.all, list...)
		if cat.SpotLike() {
			r.spotLike = append(r.spotLike, list...)
		} else {
			r.pointLike = append(r.pointLike, list...)
		}
	}
	return r, nil
}

// Category returns the ordered fixture list for one category. The returned
// slice is owned by the registry; callers mutate fixtures, not the slice.
func (r *Registry) Category(cat Category) []*Fixture {
	if cat < 0 || cat >= categoryCount {
		return nil
	}
	return r.byCategory[cat]
}

// All returns the flattened view in fixed category order. Its index is the
// snapshot index used when a crossfade captures fixture state.
func (r *Registry) All() []*Fixture {
	return r.all
}

// SpotLike returns every fixture with a meaningful aim target.
func (r *Registry) SpotLike() []*Fixture {
	return r.spotLike
}

// PointLike returns every fixture whose aim target is ignored.
func (r *Registry) PointLike() []*Fixture {
	return r.pointLike
}

// Count returns the total fixture count.
func (r *Registry) Count() int {
	return len(r.all)
}

// SetCeiling overrides the intensity ceiling for every fixture of a category.
func (r *Registry) SetCeiling(cat Category, ceiling float64) {
	for _, f := range r.Category(cat) {
		f.Ceiling = ceiling
	}
}
