// Package storage provides persistent storage for evaluator weight sets,
// opening template tables and recorded games.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/puyoplay/internal/eval"
)

const appName = "puyoplay"

// Storage keys
const (
	keyWeightsPrefix = "weights:"
	keyOpenings      = "openings"
	keyReplayPrefix  = "replay:"
)

// DefaultDatabaseDir resolves the per-user database directory
// (<user config dir>/puyoplay/db), creating it on first use.
func DefaultDatabaseDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(base, appName, "db")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// MoveRecord is one placement of a recorded game.
type MoveRecord struct {
	Pair     string `json:"pair"`
	Column   int    `json:"column"`
	Rotation int    `json:"rotation"`
	Chains   int    `json:"chains"`
	Score    int    `json:"score"`
}

// Replay is a recorded game: the move list with per-move chain outcomes and
// the puyop interchange URL.
type Replay struct {
	ID       string       `json:"id"`
	PlayedAt time.Time    `json:"played_at"`
	Moves    []MoveRecord `json:"moves"`
	Score    int          `json:"score"`
	URL      string       `json:"url"`
}

// OpeningRecord mirrors ai.OpeningEntry in storable form. The ai package
// stays free of storage concerns; the driver converts between the two.
type OpeningRecord struct {
	Turn     int    `json:"turn"`
	Board    string `json:"board"`
	Pair     string `json:"pair"`
	Column   int    `json:"column"`
	Rotation int    `json:"rotation"`
}

// Storage wraps BadgerDB for persistent storage of weight sets, opening
// tables and replays.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the per-user default directory.
func OpenDefault() (*Storage, error) {
	dir, err := DefaultDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Storage) getJSON(key string, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

// SaveWeights stores a named weight set in the optimizer's flat pair format.
func (s *Storage) SaveWeights(name string, pairs []eval.WeightPair) error {
	if name == "" {
		return fmt.Errorf("weight set name must not be empty")
	}
	return s.putJSON(keyWeightsPrefix+name, pairs)
}

// LoadWeights loads a named weight set.
func (s *Storage) LoadWeights(name string) ([]eval.WeightPair, error) {
	var pairs []eval.WeightPair
	if err := s.getJSON(keyWeightsPrefix+name, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// SaveOpenings stores the opening template table.
func (s *Storage) SaveOpenings(records []OpeningRecord) error {
	return s.putJSON(keyOpenings, records)
}

// LoadOpenings loads the opening template table.
func (s *Storage) LoadOpenings() ([]OpeningRecord, error) {
	var records []OpeningRecord
	if err := s.getJSON(keyOpenings, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveReplay records a game. A missing ID is assigned a fresh UUID; the
// (possibly assigned) ID is returned.
func (s *Storage) SaveReplay(r *Replay) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}
	if err := s.putJSON(keyReplayPrefix+r.ID, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

// LoadReplay fetches a recorded game by ID.
func (s *Storage) LoadReplay(id string) (*Replay, error) {
	var r Replay
	if err := s.getJSON(keyReplayPrefix+id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReplays returns the IDs of all recorded games.
func (s *Storage) ListReplays() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(keyReplayPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return ids, err
}
