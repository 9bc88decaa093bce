// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package worldgen

import (
	"encoding/base64"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// ProjectVersion is written into every saved project.
const ProjectVersion = 1

var json = jsoniter.Config{
	IndentionStep: 2,
	EscapeHTML:    false,
	SortMapKeys:   true,
	CaseSensitive: true,
}.Froze()

// Project is the persisted form of a pipeline: the seed, the world size and
// every step in order. It contains plain data only, so external tools can
// read or generate project files without this package.
type Project struct {
	Version int          `json:"version"`
	Seed    int64        `json:"seed"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Steps   []StepRecord `json:"steps"`
}

// StepRecord is a Step plus its mask in encoded form.
type StepRecord struct {
	Step
	Mask *MaskRecord `json:"mask,omitempty"`
}

// MaskRecord stores a blend mask quantized, run-length encoded and base64
// wrapped.
type MaskRecord struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   string `json:"data"`
}

// Snapshot captures the pipeline as a Project.
func (p *Pipeline) Snapshot() *Project {
	w, h := p.Size()
	project := &Project{
		Version: ProjectVersion,
		Seed:    p.Seed(),
		Width:   w,
		Height:  h,
	}
	for _, step := range p.Steps() {
		record := StepRecord{Step: step}
		if step.Mask != nil {
			record.Mask = &MaskRecord{
				Width:  step.Mask.W,
				Height: step.Mask.H,
				Data:   base64.StdEncoding.EncodeToString(EncodeMask(step.Mask)),
			}
			record.Step.Mask = nil
		}
		project.Steps = append(project.Steps, record)
	}
	return project
}

// FromProject reconstructs a pipeline from a project. The seed round-trips
// exactly, so a loaded project reproduces bit-identical fields.
func FromProject(project *Project) (*Pipeline, error) {
	p, err := New(project.Seed, project.Width, project.Height)
	if err != nil {
		return nil, err
	}
	for i, record := range project.Steps {
		step := record.Step
		if record.Mask != nil {
			raw, err := base64.StdEncoding.DecodeString(record.Mask.Data)
			if err != nil {
				return nil, fmt.Errorf("worldgen: step %d mask: %w", i, err)
			}
			mask, err := DecodeMask(record.Mask.Width, record.Mask.Height, raw)
			if err != nil {
				return nil, fmt.Errorf("worldgen: step %d: %w", i, err)
			}
			step.Mask = mask
		}
		if err := p.AppendStep(step); err != nil {
			return nil, fmt.Errorf("worldgen: step %d: %w", i, err)
		}
	}
	return p, nil
}

// SaveProject writes the pipeline as an indented JSON project.
func SaveProject(w io.Writer, p *Pipeline) error {
	data, err := json.Marshal(p.Snapshot())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// LoadProject reads a JSON project and rebuilds its pipeline.
func LoadProject(r io.Reader) (*Pipeline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var project Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("worldgen: cannot parse project: %w", err)
	}
	if project.Version > ProjectVersion {
		return nil, fmt.Errorf("worldgen: project version %d newer than supported %d", project.Version, ProjectVersion)
	}
	return FromProject(&project)
}
