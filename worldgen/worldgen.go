// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

// Package worldgen composes terrain generators into an editable, cached
// pipeline. Steps execute in order, each consuming the previous field;
// mutating a step only invalidates the cache from that step onward, so an
// editor can tweak late steps without recomputing the whole stack.
package worldgen

import (
	"context"
	"time"

	"github.com/jice-nospam/wgen/heightmap"
)

// Pipeline owns an ordered list of steps and one cached field per step.
// It is not safe for concurrent use; recomputes are one logical sequential
// operation, offloaded as a unit if the caller wants a responsive UI.
type Pipeline struct {
	seed  int64
	w, h  int
	steps []Step
	// cache[i] is the field after executing steps [0..i].
	cache     []*heightmap.Field
	durations []time.Duration
	// valid counts the leading cache entries that are still current.
	// Invalidation is monotonic: touching step k clamps valid to k.
	valid int

	// Progress, when set, is called after each step completes.
	Progress func(index int, elapsed time.Duration)
}

// New creates an empty pipeline producing w*h fields.
func New(seed int64, w, h int) (*Pipeline, error) {
	if w < 1 || h < 1 {
		return nil, configErrorf("new pipeline", "invalid world size %dx%d", w, h)
	}
	return &Pipeline{seed: seed, w: w, h: h}, nil
}

// Seed returns the pipeline seed.
func (p *Pipeline) Seed() int64 { return p.seed }

// SetSeed changes the seed driving every stochastic step and invalidates the
// whole cache.
func (p *Pipeline) SetSeed(seed int64) {
	if seed != p.seed {
		p.seed = seed
		p.valid = 0
	}
}

// Size returns the native field dimensions.
func (p *Pipeline) Size() (w, h int) { return p.w, p.h }

// Len returns the number of steps.
func (p *Pipeline) Len() int { return len(p.steps) }

// StepAt returns a copy of step index.
func (p *Pipeline) StepAt(index int) (Step, error) {
	if index < 0 || index >= len(p.steps) {
		return Step{}, configErrorf("step at", "index %d outside pipeline of %d steps", index, len(p.steps))
	}
	return p.steps[index].clone(), nil
}

// Steps returns a deep copy of the step list in a serializer-friendly shape.
func (p *Pipeline) Steps() []Step {
	out := make([]Step, len(p.steps))
	for i := range p.steps {
		out[i] = p.steps[i].clone()
	}
	return out
}

// AppendStep adds a step at the end of the pipeline.
func (p *Pipeline) AppendStep(s Step) error {
	return p.InsertStep(len(p.steps), s)
}

// InsertStep inserts a step before index, invalidating all caches from
// index onward.
func (p *Pipeline) InsertStep(index int, s Step) error {
	if index < 0 || index > len(p.steps) {
		return configErrorf("insert step", "index %d outside [0,%d]", index, len(p.steps))
	}
	if err := s.validate(); err != nil {
		return err
	}
	p.steps = append(p.steps, Step{})
	copy(p.steps[index+1:], p.steps[index:])
	p.steps[index] = s.clone()

	p.cache = append(p.cache, nil)
	copy(p.cache[index+1:], p.cache[index:])
	p.cache[index] = nil
	p.durations = append(p.durations, 0)
	copy(p.durations[index+1:], p.durations[index:])
	p.durations[index] = 0

	p.invalidate(index)
	return nil
}

// RemoveStep deletes step index.
func (p *Pipeline) RemoveStep(index int) error {
	if index < 0 || index >= len(p.steps) {
		return configErrorf("remove step", "index %d outside pipeline of %d steps", index, len(p.steps))
	}
	p.steps = append(p.steps[:index], p.steps[index+1:]...)
	p.cache = append(p.cache[:index], p.cache[index+1:]...)
	p.durations = append(p.durations[:index], p.durations[index+1:]...)
	p.invalidate(index)
	return nil
}

// UpdateStep replaces step index, keeping its mask if the new step carries
// none.
func (p *Pipeline) UpdateStep(index int, s Step) error {
	if index < 0 || index >= len(p.steps) {
		return configErrorf("update step", "index %d outside pipeline of %d steps", index, len(p.steps))
	}
	if err := s.validate(); err != nil {
		return err
	}
	mask := p.steps[index].Mask
	p.steps[index] = s.clone()
	if p.steps[index].Mask == nil {
		p.steps[index].Mask = mask
	}
	p.invalidate(index)
	return nil
}

// SetMask attaches a blend mask to step index (nil removes it). The mask is
// copied; editing the caller's mask afterwards has no effect until the next
// SetMask.
func (p *Pipeline) SetMask(index int, m *Mask) error {
	if index < 0 || index >= len(p.steps) {
		return configErrorf("set mask", "index %d outside pipeline of %d steps", index, len(p.steps))
	}
	if m == nil {
		p.steps[index].Mask = nil
	} else {
		mask := m.Clone()
		mask.Clamp()
		p.steps[index].Mask = mask
	}
	p.invalidate(index)
	return nil
}

// SetStepEnabled toggles a step without removing it. A disabled step passes
// the previous field through unchanged.
func (p *Pipeline) SetStepEnabled(index int, enabled bool) error {
	if index < 0 || index >= len(p.steps) {
		return configErrorf("enable step", "index %d outside pipeline of %d steps", index, len(p.steps))
	}
	if p.steps[index].Disabled == !enabled {
		return nil
	}
	p.steps[index].Disabled = !enabled
	p.invalidate(index)
	return nil
}

// Reorder moves the step at from to position to. Steps below the lowest
// touched index keep their cached fields.
func (p *Pipeline) Reorder(from, to int) error {
	if from < 0 || from >= len(p.steps) {
		return configErrorf("reorder", "from %d outside pipeline of %d steps", from, len(p.steps))
	}
	if to < 0 || to >= len(p.steps) {
		return configErrorf("reorder", "to %d outside pipeline of %d steps", to, len(p.steps))
	}
	if from == to {
		return nil
	}
	s := p.steps[from]
	if from < to {
		copy(p.steps[from:], p.steps[from+1:to+1])
	} else {
		copy(p.steps[to+1:], p.steps[to:from])
	}
	p.steps[to] = s
	p.invalidate(minInt(from, to))
	return nil
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func (p *Pipeline) invalidate(index int) {
	if p.valid > index {
		p.valid = index
	}
}

// StepDuration returns how long the last recompute of step index took.
func (p *Pipeline) StepDuration(index int) time.Duration {
	if index < 0 || index >= len(p.durations) {
		return 0
	}
	return p.durations[index]
}

// Generate recomputes every invalidated step. Cancelling ctx aborts between
// steps (and inside the parallel generators) with ErrAborted; completed
// steps stay cached, the in-progress one is discarded.
func (p *Pipeline) Generate(ctx context.Context) error {
	return p.generateThrough(ctx, len(p.steps)-1)
}

func (p *Pipeline) generateThrough(ctx context.Context, last int) error {
	for i := p.valid; i <= last; i++ {
		if ctx.Err() != nil {
			return ErrAborted
		}
		start := time.Now()
		field, err := p.executeStep(ctx, i)
		if err != nil {
			if ctx.Err() != nil {
				return ErrAborted
			}
			return err
		}
		p.cache[i] = field
		p.durations[i] = time.Since(start)
		p.valid = i + 1
		if p.Progress != nil {
			p.Progress(i, p.durations[i])
		}
	}
	return nil
}

func (p *Pipeline) executeStep(ctx context.Context, index int) (*heightmap.Field, error) {
	var src *heightmap.Field
	if index == 0 {
		src = heightmap.New(p.w, p.h, 0)
	} else {
		src = p.cache[index-1]
	}
	step := &p.steps[index]
	if step.Disabled {
		return src, nil
	}
	seed := p.seed
	if step.Seed != nil {
		seed = *step.Seed
	}
	out, err := step.apply(ctx, src, seed)
	if err != nil {
		return nil, err
	}
	if step.Mask != nil {
		blendMask(src, out, step.Mask)
	}
	return out, nil
}

// blendMask interpolates each cell between the step input and the generator
// output: weight 0 keeps the input bit-identical, weight 1 keeps the
// unmasked result. The rule is uniform across generator kinds, so masking
// stays a pipeline concern.
func blendMask(src, gen *heightmap.Field, m *Mask) {
	w, h := gen.Width(), gen.Height()
	in := src.Values()
	out := gen.Values()
	for y := 0; y < h; y++ {
		v := float32(y) / float32(h)
		row := y * w
		for x := 0; x < w; x++ {
			// exact endpoints: weight 0 and 1 must not round through
			// the interpolation
			switch weight := m.Sample(float32(x)/float32(w), v); weight {
			case 0:
				out[row+x] = in[row+x]
			case 1:
			default:
				out[row+x] = in[row+x] + weight*(out[row+x]-in[row+x])
			}
		}
	}
}

// Field returns the field after step index, resampled to w*h. Only the
// invalidated prefix up to index is recomputed; the resample itself is
// never cached.
func (p *Pipeline) Field(ctx context.Context, index, w, h int) (*heightmap.Field, error) {
	if len(p.steps) == 0 {
		return nil, configErrorf("field", "empty pipeline")
	}
	if index < 0 || index >= len(p.steps) {
		return nil, configErrorf("field", "index %d outside pipeline of %d steps", index, len(p.steps))
	}
	if w < 1 || h < 1 {
		return nil, configErrorf("field", "invalid resolution %dx%d", w, h)
	}
	if err := p.generateThrough(ctx, index); err != nil {
		return nil, err
	}
	return p.cache[index].Resize(w, h), nil
}
