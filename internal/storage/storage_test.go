package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/hailam/puyoplay/internal/eval"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	dir, err := os.MkdirTemp("", "puyoplay-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWeightsRoundtrip(t *testing.T) {
	s := openTestStorage(t)

	in := []eval.WeightPair{
		{Name: "connection_3", Weight: 77},
		{Name: "shape_total_height", Weight: -9},
	}
	if err := s.SaveWeights("tuned", in); err != nil {
		t.Fatalf("SaveWeights failed: %v", err)
	}

	out, err := s.LoadWeights("tuned")
	if err != nil {
		t.Fatalf("LoadWeights failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d pairs, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("pair %d = %+v, want %+v", i, out[i], in[i])
		}
	}

	if _, err := s.LoadWeights("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadWeights(missing) = %v, want ErrNotFound", err)
	}

	if err := s.SaveWeights("", nil); err == nil {
		t.Error("SaveWeights with empty name should fail")
	}
}

func TestOpeningsRoundtrip(t *testing.T) {
	s := openTestStorage(t)

	in := []OpeningRecord{
		{Turn: 1, Board: "", Pair: "AA", Column: 1, Rotation: 0},
		{Turn: 2, Board: "A.....\nA.....", Pair: "AB", Column: 2, Rotation: 1},
	}
	if err := s.SaveOpenings(in); err != nil {
		t.Fatalf("SaveOpenings failed: %v", err)
	}
	out, err := s.LoadOpenings()
	if err != nil {
		t.Fatalf("LoadOpenings failed: %v", err)
	}
	if len(out) != len(in) || out[1] != in[1] {
		t.Errorf("openings roundtrip mismatch: %+v", out)
	}
}

func TestReplayRoundtrip(t *testing.T) {
	s := openTestStorage(t)

	id, err := s.SaveReplay(&Replay{
		Moves: []MoveRecord{{Pair: "RB", Column: 3, Rotation: 0, Chains: 1, Score: 40}},
		Score: 40,
	})
	if err != nil {
		t.Fatalf("SaveReplay failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveReplay returned empty id")
	}

	r, err := s.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay failed: %v", err)
	}
	if len(r.Moves) != 1 || r.Moves[0].Score != 40 {
		t.Errorf("replay mismatch: %+v", r)
	}
	if r.PlayedAt.IsZero() {
		t.Error("PlayedAt was not stamped")
	}

	ids, err := s.ListReplays()
	if err != nil {
		t.Fatalf("ListReplays failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != id {
		t.Errorf("ListReplays = %v, want [%s]", ids, id)
	}
}
