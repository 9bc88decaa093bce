// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package worldgen

import (
	"context"

	"github.com/jice-nospam/wgen/heightmap"
	"github.com/jice-nospam/wgen/worldgen/generators"
)

// Kind tags a step with its generator. The set is closed: dispatch happens
// through a single switch, not open-ended interfaces.
type Kind string

const (
	KindHills        Kind = "hills"
	KindFbm          Kind = "fbm"
	KindMidPoint     Kind = "midPoint"
	KindNormalize    Kind = "normalize"
	KindLandMass     Kind = "landMass"
	KindMudSlide     Kind = "mudSlide"
	KindWaterErosion Kind = "waterErosion"
	KindIsland       Kind = "island"
)

// Kinds lists every generator kind in presentation order.
func Kinds() []Kind {
	return []Kind{
		KindHills, KindFbm, KindMidPoint, KindNormalize,
		KindLandMass, KindMudSlide, KindWaterErosion, KindIsland,
	}
}

// Step is one terrain operation in the pipeline: a generator kind, the
// parameter set for that kind, an optional per-step seed override and an
// optional blend mask. A step is plain data so external serializers can
// persist it verbatim.
type Step struct {
	Kind Kind `json:"kind"`
	// Disabled steps pass the previous field through unchanged.
	Disabled bool `json:"disabled,omitempty"`
	// Seed overrides the pipeline seed for this step only.
	Seed *int64 `json:"seed,omitempty"`
	// Mask attenuates the step's effect per cell. Nil means full effect.
	Mask *Mask `json:"-"`

	Hills        *generators.HillsParams        `json:"hills,omitempty"`
	Fbm          *generators.FbmParams          `json:"fbm,omitempty"`
	MidPoint     *generators.MidPointParams     `json:"midPoint,omitempty"`
	Normalize    *generators.NormalizeParams    `json:"normalize,omitempty"`
	LandMass     *generators.LandMassParams     `json:"landMass,omitempty"`
	MudSlide     *generators.MudSlideParams     `json:"mudSlide,omitempty"`
	WaterErosion *generators.WaterErosionParams `json:"waterErosion,omitempty"`
	Island       *generators.IslandParams       `json:"island,omitempty"`
}

// NewStep returns a step of the given kind with that generator's default
// parameters.
func NewStep(kind Kind) (Step, error) {
	s := Step{Kind: kind}
	switch kind {
	case KindHills:
		p := generators.DefaultHillsParams()
		s.Hills = &p
	case KindFbm:
		p := generators.DefaultFbmParams()
		s.Fbm = &p
	case KindMidPoint:
		p := generators.DefaultMidPointParams()
		s.MidPoint = &p
	case KindNormalize:
		p := generators.DefaultNormalizeParams()
		s.Normalize = &p
	case KindLandMass:
		p := generators.DefaultLandMassParams()
		s.LandMass = &p
	case KindMudSlide:
		p := generators.DefaultMudSlideParams()
		s.MudSlide = &p
	case KindWaterErosion:
		p := generators.DefaultWaterErosionParams()
		s.WaterErosion = &p
	case KindIsland:
		p := generators.DefaultIslandParams()
		s.Island = &p
	default:
		return Step{}, configErrorf("new step", "unknown generator kind %q", kind)
	}
	return s, nil
}

// validate checks that the step carries the parameter set its kind needs.
func (s *Step) validate() error {
	missing := func() error {
		return configErrorf("validate step", "missing %s parameters", s.Kind)
	}
	switch s.Kind {
	case KindHills:
		if s.Hills == nil {
			return missing()
		}
		if s.Hills.Count < 0 {
			return configErrorf("validate step", "negative hill count %d", s.Hills.Count)
		}
	case KindFbm:
		if s.Fbm == nil {
			return missing()
		}
		if s.Fbm.Octaves < 1 {
			return configErrorf("validate step", "fbm octaves %d, need at least 1", s.Fbm.Octaves)
		}
	case KindMidPoint:
		if s.MidPoint == nil {
			return missing()
		}
	case KindNormalize:
		if s.Normalize == nil {
			return missing()
		}
	case KindLandMass:
		if s.LandMass == nil {
			return missing()
		}
		if s.LandMass.LandProportion < 0 || s.LandMass.LandProportion > 1 {
			return configErrorf("validate step", "land proportion %g outside [0,1]", s.LandMass.LandProportion)
		}
	case KindMudSlide:
		if s.MudSlide == nil {
			return missing()
		}
		if s.MudSlide.Iterations < 0 {
			return configErrorf("validate step", "negative mudslide iterations %d", s.MudSlide.Iterations)
		}
	case KindWaterErosion:
		if s.WaterErosion == nil {
			return missing()
		}
		if s.WaterErosion.DropAmount < 0 {
			return configErrorf("validate step", "negative drop amount %g", s.WaterErosion.DropAmount)
		}
	case KindIsland:
		if s.Island == nil {
			return missing()
		}
		// above 50 the border bands overlap and fade interior cells twice
		if s.Island.CoastRange <= 0 || s.Island.CoastRange > 50 {
			return configErrorf("validate step", "coast range %g outside (0,50]", s.Island.CoastRange)
		}
	default:
		return configErrorf("validate step", "unknown generator kind %q", s.Kind)
	}
	return nil
}

// clone deep-copies the step so pipeline-owned state cannot be mutated from
// the outside.
func (s *Step) clone() Step {
	out := *s
	if s.Seed != nil {
		seed := *s.Seed
		out.Seed = &seed
	}
	if s.Mask != nil {
		out.Mask = s.Mask.Clone()
	}
	if s.Hills != nil {
		p := *s.Hills
		out.Hills = &p
	}
	if s.Fbm != nil {
		p := *s.Fbm
		out.Fbm = &p
	}
	if s.MidPoint != nil {
		p := *s.MidPoint
		out.MidPoint = &p
	}
	if s.Normalize != nil {
		p := *s.Normalize
		out.Normalize = &p
	}
	if s.LandMass != nil {
		p := *s.LandMass
		out.LandMass = &p
	}
	if s.MudSlide != nil {
		p := *s.MudSlide
		out.MudSlide = &p
	}
	if s.WaterErosion != nil {
		p := *s.WaterErosion
		out.WaterErosion = &p
	}
	if s.Island != nil {
		p := *s.Island
		out.Island = &p
	}
	return out
}

// apply runs the step's generator at full strength. Masking is applied by
// the pipeline afterwards.
func (s *Step) apply(ctx context.Context, src *heightmap.Field, seed int64) (*heightmap.Field, error) {
	switch s.Kind {
	case KindHills:
		return generators.Hills(ctx, src, *s.Hills, seed)
	case KindFbm:
		return generators.Fbm(ctx, src, *s.Fbm, seed)
	case KindMidPoint:
		return generators.MidPoint(src, *s.MidPoint, seed), nil
	case KindNormalize:
		return generators.Normalize(src, *s.Normalize), nil
	case KindLandMass:
		return generators.LandMass(src, *s.LandMass), nil
	case KindMudSlide:
		return generators.MudSlide(src, *s.MudSlide), nil
	case KindWaterErosion:
		return generators.WaterErosion(src, *s.WaterErosion, seed), nil
	case KindIsland:
		return generators.Island(src, *s.Island), nil
	}
	return nil, configErrorf("apply step", "unknown generator kind %q", s.Kind)
}
