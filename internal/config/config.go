// Package config loads the driver-side agent configuration. The decision
// core itself never reads files; drivers resolve a Config here and hand the
// pieces to ai.New.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hailam/puyoplay/internal/ai"
)

// Agent is the YAML-facing agent configuration.
type Agent struct {
	BeamWidthEarly  int    `yaml:"beam_width_early" mapstructure:"beam_width_early"`
	BeamWidthMax    int    `yaml:"beam_width_max" mapstructure:"beam_width_max"`
	Rollouts        int    `yaml:"rollouts" mapstructure:"rollouts"`
	SearchDepth     int    `yaml:"search_depth" mapstructure:"search_depth"`
	SeedBase        int64  `yaml:"seed_base" mapstructure:"seed_base"`
	OjamaRate       int    `yaml:"ojama_rate" mapstructure:"ojama_rate"`
	SaturationScore int    `yaml:"saturation_score" mapstructure:"saturation_score"`
	HarassScore     int    `yaml:"harass_score" mapstructure:"harass_score"`
	OpeningTurns    int    `yaml:"opening_turns" mapstructure:"opening_turns"`
	WeightSet       string `yaml:"weight_set" mapstructure:"weight_set"`
	DatabaseDir     string `yaml:"database_dir" mapstructure:"database_dir"`
}

type outerConfig struct {
	Agent map[string]any `mapstructure:"agent"`
}

// FromYaml reads an agent configuration from a YAML file with a top-level
// `agent:` block. Missing fields keep their zero value; ai.New replaces zero
// search parameters with the ai defaults, except seed_base, which stays 0.
func FromYaml(path string) (*Agent, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}
	if outer.Agent == nil {
		return nil, fmt.Errorf("config %s has no agent block", path)
	}

	spec, err := yaml.Marshal(outer.Agent)
	if err != nil {
		return nil, err
	}
	agent := &Agent{}
	if err := yaml.Unmarshal(spec, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// ToAIConfig maps the YAML fields onto the search configuration.
func (a *Agent) ToAIConfig() ai.Config {
	return ai.Config{
		BeamWidthEarly:  a.BeamWidthEarly,
		BeamWidthMax:    a.BeamWidthMax,
		Rollouts:        a.Rollouts,
		SearchDepth:     a.SearchDepth,
		SeedBase:        a.SeedBase,
		OjamaRate:       a.OjamaRate,
		SaturationScore: a.SaturationScore,
		HarassScore:     a.HarassScore,
		OpeningTurns:    a.OpeningTurns,
	}
}
