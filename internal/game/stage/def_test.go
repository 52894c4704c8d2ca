package stage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultStagesValid(t *testing.T) {
	defs := DefaultStages()
	if len(defs) == 0 {
		t.Fatal("no default stages")
	}
	for i, d := range defs {
		if err := d.Validate(); err != nil {
			t.Errorf("default stage %d (%s) invalid: %v", i, d.Name, err)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	base := Def{
		Name:            "t",
		Shape:           "cube",
		Size:            1,
		RotationPattern: PatternStatic,
		RequiredHits:    1,
	}

	cases := []struct {
		name   string
		mutate func(*Def)
	}{
		{"unknown shape", func(d *Def) { d.Shape = "teapot" }},
		{"zero size", func(d *Def) { d.Size = 0 }},
		{"zero hits", func(d *Def) { d.RequiredHits = 0 }},
		{"bad pattern", func(d *Def) { d.RotationPattern = "wobble" }},
		{"negative subdivisions", func(d *Def) { d.Subdivisions = -1 }},
		{"excess subdivisions", func(d *Def) { d.Subdivisions = 9 }},
		{"self link", func(d *Def) { d.LinkedFaces = map[int][]int{2: {2}} }},
		{"negative link", func(d *Def) { d.LinkedFaces = map[int][]int{-1: {0}} }},
	}

	for _, tc := range cases {
		d := base
		tc.mutate(&d)
		if err := d.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	if err := base.Validate(); err != nil {
		t.Errorf("base def should validate, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.yaml")
	content := `
stages:
  - name: first
    shape: cube
    size: 2
    rotation_speed: 0.5
    rotation_pattern: single_axis
    required_hits: 2
  - name: second
    shape: icosphere
    size: 1.5
    subdivisions: 1
    rotation_pattern: reactive
    required_hits: 1
    linked_faces:
      0: [1, 2]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing stages file: %v", err)
	}

	defs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("loaded %d stages, want 2", len(defs))
	}
	if defs[0].RequiredHits != 2 || defs[0].RotationPattern != PatternSingleAxis {
		t.Errorf("stage 0 = %+v, fields not parsed", defs[0])
	}
	if got := defs[1].LinkedFaces[0]; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("stage 1 linked faces = %v, want [1 2]", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("stages:\n  - shape: teapot\n"), 0644)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error for bad stage")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	os.WriteFile(empty, []byte("stages: []\n"), 0644)
	if _, err := LoadFile(empty); err == nil {
		t.Error("expected error for empty stage list")
	}
}
