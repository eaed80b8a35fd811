// puyoplay is the batch decision driver: it reads a board and the visible
// pair sequence, runs one think and prints the chosen placement.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/hailam/puyoplay/internal/ai"
	"github.com/hailam/puyoplay/internal/config"
	"github.com/hailam/puyoplay/internal/eval"
	"github.com/hailam/puyoplay/internal/field"
	"github.com/hailam/puyoplay/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	configPath = flag.String("config", "", "agent config YAML")
	boardPath  = flag.String("board", "-", "board text file ('-' for stdin)")
	seqFlag    = flag.String("seq", "", "visible pairs, e.g. RR,BY,GG")
	turnFlag   = flag.Int("turn", 1, "current turn number")
	framesFlag = flag.Int("frames", 0, "think budget in frames (0 = unbounded)")
	dbDir      = flag.String("db", "", "storage directory (default: per-user config dir)")
	weightSet  = flag.String("weights", "", "named weight set to load from storage")
)

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := ai.DefaultConfig()
	agentCfg := (*config.Agent)(nil)
	if *configPath != "" {
		var err error
		agentCfg, err = config.FromYaml(*configPath)
		if err != nil {
			log.Fatalf("[Main] config: %v", err)
		}
		cfg = agentCfg.ToAIConfig()
	}

	ev := eval.Default()
	matcher := (*ai.OpeningMatcher)(nil)
	if name := weightSetName(agentCfg); name != "" || *dbDir != "" {
		ev, matcher = loadFromStorage(agentCfg, name)
	}

	board, err := readBoard(*boardPath)
	if err != nil {
		log.Fatalf("[Main] board: %v", err)
	}
	seq, err := parseSeq(*seqFlag)
	if err != nil {
		log.Fatalf("[Main] seq: %v", err)
	}

	engine, err := ai.New(cfg, ev, matcher, nil)
	if err != nil {
		log.Fatalf("[Main] engine: %v", err)
	}

	state := ai.PlayerState{Field: board, Seq: seq, Turn: *turnFlag}
	decision := engine.Think(&state, nil, *framesFlag)

	log.Printf("[Main] %s (%.1fms)", decision.Message,
		float64(decision.Duration.Microseconds())/1000)
	fmt.Printf("%d %d\n", decision.Decision.Column, decision.Decision.Rotation)
}

func weightSetName(agentCfg *config.Agent) string {
	if *weightSet != "" {
		return *weightSet
	}
	if agentCfg != nil {
		return agentCfg.WeightSet
	}
	return ""
}

// loadFromStorage resolves the evaluator and opening table from the badger
// store, falling back to the defaults for whatever is missing.
func loadFromStorage(agentCfg *config.Agent, name string) (*eval.Evaluator, *ai.OpeningMatcher) {
	dir := *dbDir
	if dir == "" && agentCfg != nil {
		dir = agentCfg.DatabaseDir
	}

	var store *storage.Storage
	var err error
	if dir != "" {
		store, err = storage.Open(dir)
	} else {
		store, err = storage.OpenDefault()
	}
	if err != nil {
		log.Printf("[Main] storage unavailable: %v (using defaults)", err)
		return eval.Default(), nil
	}
	defer store.Close()

	ev := eval.Default()
	if name != "" {
		pairs, err := store.LoadWeights(name)
		if err != nil {
			log.Printf("[Main] weight set %q: %v (using defaults)", name, err)
		} else if ev, err = eval.NewEvaluator(pairs); err != nil {
			log.Fatalf("[Main] weight set %q: %v", name, err)
		}
	}

	var matcher *ai.OpeningMatcher
	if records, err := store.LoadOpenings(); err == nil {
		entries := make([]ai.OpeningEntry, len(records))
		for i, r := range records {
			entries[i] = ai.OpeningEntry{
				Turn:     r.Turn,
				Board:    r.Board,
				Pair:     r.Pair,
				Decision: field.Decision{Column: r.Column, Rotation: r.Rotation},
			}
		}
		if matcher, err = ai.NewOpeningMatcher(entries); err != nil {
			log.Fatalf("[Main] opening table: %v", err)
		}
	}
	return ev, matcher
}

func readBoard(path string) (field.BitBoard, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return field.BitBoard{}, err
	}
	return field.ParseBoard(string(data))
}

func parseSeq(s string) ([]field.PiecePair, error) {
	if s == "" {
		return nil, fmt.Errorf("no visible pairs given")
	}
	var seq []field.PiecePair
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if len(tok) != 2 {
			return nil, fmt.Errorf("pair %q must be two letters", tok)
		}
		axis, ok1 := field.ColorFromChar(tok[0])
		child, ok2 := field.ColorFromChar(tok[1])
		if !ok1 || !ok2 || !axis.IsChromatic() || !child.IsChromatic() {
			return nil, fmt.Errorf("pair %q must use R/B/Y/G", tok)
		}
		seq = append(seq, field.PiecePair{Axis: axis, Child: child})
	}
	return seq, nil
}
