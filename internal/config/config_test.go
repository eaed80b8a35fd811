package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	body := `agent:
  beam_width_early: 24
  beam_width_max: 96
  rollouts: 8
  search_depth: 5
  seed_base: 99
  ojama_rate: 70
  saturation_score: 70000
  weight_set: tuned
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	agent, err := FromYaml(path)
	if err != nil {
		t.Fatalf("FromYaml failed: %v", err)
	}
	if agent.BeamWidthEarly != 24 || agent.BeamWidthMax != 96 {
		t.Errorf("beam widths = %d/%d, want 24/96", agent.BeamWidthEarly, agent.BeamWidthMax)
	}
	if agent.Rollouts != 8 || agent.SearchDepth != 5 || agent.SeedBase != 99 {
		t.Errorf("search params = %+v", agent)
	}
	if agent.WeightSet != "tuned" {
		t.Errorf("weight set = %q, want tuned", agent.WeightSet)
	}

	cfg := agent.ToAIConfig()
	if cfg.SaturationScore != 70000 {
		t.Errorf("SaturationScore = %d, want 70000", cfg.SaturationScore)
	}
	if cfg.HarassScore != 0 {
		t.Errorf("unset HarassScore = %d, want 0 (defaults applied by ai.New)", cfg.HarassScore)
	}
}

func TestFromYamlMissingAgentBlock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	if err := os.WriteFile(path, []byte("other: {}\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := FromYaml(path); err == nil {
		t.Error("missing agent block should fail")
	}
}

func TestFromYamlMissingFile(t *testing.T) {
	if _, err := FromYaml(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
