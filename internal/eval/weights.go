package eval

import (
	"fmt"
)

// WeightPair is one entry of the flat weight-table format produced by the
// optimizer: a feature name and its integer weight.
type WeightPair struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// defaultWeights is the hand-tuned baseline used when no optimizer output is
// supplied. Unlisted features default to zero.
var defaultWeights = map[string]int{
	"shape_u_diff_1": -52,
	"shape_u_diff_2": -52,
	"shape_u_diff_3": -52,
	"shape_u_diff_4": -52,
	"shape_u_diff_5": -52,
	"shape_u_diff_6": -52,

	"shape_valley_1": -120,
	"shape_valley_2": -120,
	"shape_valley_3": -150,
	"shape_valley_4": -150,
	"shape_valley_5": -120,
	"shape_valley_6": -120,

	"shape_ridge_1": -85,
	"shape_ridge_2": -85,
	"shape_ridge_3": -95,
	"shape_ridge_4": -95,
	"shape_ridge_5": -85,
	"shape_ridge_6": -85,

	"shape_total_height": -8,
	"shape_third_column": -45,

	"connection_2": 18,
	"connection_3": 45,
	"ojama_count":  -32,
	"dead_end":     -1000000,

	"potential_best":        120,
	"potential_best_chains": 260,
	"potential_second":      40,

	"pattern_gtr":       320,
	"pattern_newgtr":    280,
	"pattern_submarine": 180,

	"realized_score":   8,
	"realized_chains":  -180,
	"realized_quick":   40,
	"zenkeshi_pending": 900,
	"frame_cost":       -2,
}

// DefaultWeights returns the baseline table in the flat pair format.
func DefaultWeights() []WeightPair {
	pairs := make([]WeightPair, 0, len(featureTable))
	for _, f := range featureTable {
		pairs = append(pairs, WeightPair{Name: f.name, Weight: defaultWeights[f.name]})
	}
	return pairs
}

// resolveWeights aligns a pair list with the feature table order. Unknown
// names are construction errors; omitted names keep the default weight.
func resolveWeights(pairs []WeightPair) ([]int, error) {
	index := make(map[string]int, len(featureTable))
	for i, f := range featureTable {
		index[f.name] = i
	}

	resolved := make([]int, len(featureTable))
	for i, f := range featureTable {
		resolved[i] = defaultWeights[f.name]
	}
	for _, p := range pairs {
		i, ok := index[p.Name]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q in weight table", p.Name)
		}
		resolved[i] = p.Weight
	}
	return resolved, nil
}
