package trajectory

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownTrajectory is returned when a name is not in the registry
var ErrUnknownTrajectory = errors.New("unknown trajectory")

// Family is the structural category of an archetype. It decides which
// per-frame rule the path builder applies: linear delta ramps for the free
// family, resampled keyframe curves for the swing families.
type Family int

const (
	FamilyFree Family = iota
	FamilySwing1
	FamilySwing2
)

// String returns the family tag name
func (f Family) String() string {
	switch f {
	case FamilyFree:
		return "free"
	case FamilySwing1:
		return "swing1"
	case FamilySwing2:
		return "swing2"
	default:
		return "unknown"
	}
}

// FreeParams is the payload of a free-family archetype: total deltas
// applied across the whole path, measured from the initial pose. Offsets
// are fractions of the orbit radius.
type FreeParams struct {
	XOffset     float64
	YOffset     float64
	ZOffset     float64
	DeltaTheta  float64 // total elevation change, degrees
	DeltaPhi    float64 // total azimuth change, degrees
	DeltaRadius float64 // final radius scale; 1.0 keeps the distance
}

// SwingParams is the payload of a swing-family archetype: hand-authored
// keyframe tables resampled to the frame count by the path builder. Radii
// are scale offsets from unity.
type SwingParams struct {
	Phis   []float64
	Thetas []float64
	Radii  []float64
}

// Archetype is one named camera trajectory. The payload matching the
// family tag is set; the other is zero. Archetypes come out of the
// registry and must be treated as read-only.
type Archetype struct {
	Name        string
	Family      Family
	Free        FreeParams
	Swing       SwingParams
	Description string
}

// registry is the fixed table of supported trajectories, built once and
// never mutated afterwards
var registry = map[string]Archetype{
	"free1": {
		Name:        "free1",
		Family:      FamilyFree,
		Free:        FreeParams{DeltaTheta: -15.0, DeltaPhi: 45.0, DeltaRadius: 1.6},
		Description: "Zoom out and rotate to the upper left",
	},
	"free2": {
		Name:        "free2",
		Family:      FamilyFree,
		Free:        FreeParams{XOffset: -0.05, DeltaPhi: -60.0, DeltaRadius: 1.0},
		Description: "Rotate to the right horizontally",
	},
	"free3": {
		Name:        "free3",
		Family:      FamilyFree,
		Free:        FreeParams{XOffset: -0.25, DeltaRadius: 1.7},
		Description: "Move back to the left",
	},
	"free4": {
		Name:        "free4",
		Family:      FamilyFree,
		Free:        FreeParams{DeltaTheta: -15.0, DeltaPhi: -60.0, DeltaRadius: 0.75},
		Description: "Rotate and approach to the upper right",
	},
	"free5": {
		Name:        "free5",
		Family:      FamilyFree,
		Free:        FreeParams{DeltaTheta: -15.0, DeltaPhi: -120.0, DeltaRadius: 1.6},
		Description: "Large-angle camera movement to the upper right",
	},
	"orbit": {
		Name:        "orbit",
		Family:      FamilyFree,
		Free:        FreeParams{DeltaPhi: -360.0, DeltaRadius: 1.0},
		Description: "360-degree counterclockwise rotation",
	},
	"swing1": {
		Name:   "swing1",
		Family: FamilySwing1,
		Swing: SwingParams{
			Phis:   []float64{0, -5, -25, -30, -20, -8, 0},
			Thetas: []float64{0, -8, -12, -20, -17, -12, -5, -2, 1, 5, 3, 1, 0},
			Radii:  []float64{0, 0.2},
		},
		Description: "Swing shot 1",
	},
	"swing2": {
		Name:   "swing2",
		Family: FamilySwing2,
		Swing: SwingParams{
			Phis:   []float64{0, 5, 25, 30, 20, 10, 0},
			Thetas: []float64{0, -5, -14, -11, 0, 1, 5, 3, 0},
			Radii:  []float64{0, -0.03, -0.1, -0.2, -0.17, -0.1, 0},
		},
		Description: "Swing shot 2",
	},
}

// Lookup resolves a trajectory name to its archetype
func Lookup(name string) (Archetype, error) {
	arch, ok := registry[name]
	if !ok {
		return Archetype{}, errors.Wrapf(ErrUnknownTrajectory, "trajectory %q", name)
	}
	return arch, nil
}

// Names returns the registered trajectory names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
