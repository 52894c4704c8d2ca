// Package stage defines stage configuration, target rotation, and the
// per-stage simulation state.
package stage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pattern selects how the target solid spins.
type Pattern string

const (
	PatternStatic     Pattern = "static"
	PatternSingleAxis Pattern = "single_axis"
	PatternMultiAxis  Pattern = "multi_axis"
	PatternRandom     Pattern = "random"
	PatternReactive   Pattern = "reactive"
)

var knownShapes = map[string]bool{
	"cube":        true,
	"octahedron":  true,
	"icosahedron": true,
	"icosphere":   true,
}

// Def is one stage's author-configured parameters.
type Def struct {
	Name            string        `yaml:"name"`
	Shape           string        `yaml:"shape"`
	Size            float32       `yaml:"size"`
	Subdivisions    int           `yaml:"subdivisions"`
	RotationSpeed   float32       `yaml:"rotation_speed"` // radians per second
	RotationPattern Pattern       `yaml:"rotation_pattern"`
	RequiredHits    int           `yaml:"required_hits"`
	LinkedFaces     map[int][]int `yaml:"linked_faces"`
}

// Validate checks everything that can be checked without building the
// mesh. Link indices are validated against the group table at stage
// construction.
func (d *Def) Validate() error {
	if !knownShapes[d.Shape] {
		return fmt.Errorf("stage %q: unknown shape %q", d.Name, d.Shape)
	}
	if d.Size <= 0 {
		return fmt.Errorf("stage %q: size must be > 0, got %g", d.Name, d.Size)
	}
	if d.Subdivisions < 0 || d.Subdivisions > 4 {
		return fmt.Errorf("stage %q: subdivisions %d outside [0,4]", d.Name, d.Subdivisions)
	}
	if d.RequiredHits < 1 {
		return fmt.Errorf("stage %q: required_hits must be >= 1, got %d", d.Name, d.RequiredHits)
	}
	switch d.RotationPattern {
	case PatternStatic, PatternSingleAxis, PatternMultiAxis, PatternRandom, PatternReactive:
	default:
		return fmt.Errorf("stage %q: unknown rotation pattern %q", d.Name, d.RotationPattern)
	}
	for from, tos := range d.LinkedFaces {
		if from < 0 {
			return fmt.Errorf("stage %q: negative link source %d", d.Name, from)
		}
		for _, to := range tos {
			if to < 0 {
				return fmt.Errorf("stage %q: negative link target %d", d.Name, to)
			}
			if to == from {
				return fmt.Errorf("stage %q: face %d links to itself", d.Name, from)
			}
		}
	}
	return nil
}

// LoadFile reads and validates a yaml stage list.
func LoadFile(path string) ([]Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stages from %s: %w", path, err)
	}

	var doc struct {
		Stages []Def `yaml:"stages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing stages from %s: %w", path, err)
	}
	if len(doc.Stages) == 0 {
		return nil, fmt.Errorf("%s contains no stages", path)
	}

	for i := range doc.Stages {
		if err := doc.Stages[i].Validate(); err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return doc.Stages, nil
}

// DefaultStages is the built-in progression used when no stages file is
// configured.
func DefaultStages() []Def {
	return []Def{
		{
			Name:            "warmup",
			Shape:           "cube",
			Size:            2,
			RotationSpeed:   0.4,
			RotationPattern: PatternSingleAxis,
			RequiredHits:    1,
		},
		{
			Name:            "mirror",
			Shape:           "cube",
			Size:            2,
			RotationSpeed:   0.6,
			RotationPattern: PatternMultiAxis,
			RequiredHits:    2,
			LinkedFaces:     map[int][]int{0: {1}, 2: {3}},
		},
		{
			Name:            "octa",
			Shape:           "octahedron",
			Size:            1.6,
			RotationSpeed:   0.8,
			RotationPattern: PatternRandom,
			RequiredHits:    3,
		},
		{
			Name:            "gem",
			Shape:           "icosahedron",
			Size:            1.5,
			RotationSpeed:   0.9,
			RotationPattern: PatternReactive,
			RequiredHits:    2,
		},
		{
			Name:            "sphere",
			Shape:           "icosphere",
			Size:            1.5,
			Subdivisions:    1,
			RotationSpeed:   1.2,
			RotationPattern: PatternSingleAxis,
			RequiredHits:    1,
		},
	}
}
