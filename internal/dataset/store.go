// Package dataset stores per-user record sets as JSONL snapshots under
// the data directory. It is the repository-side stand-in for the
// external loader: records arrive already parsed and validated, one
// JSON object per line, and the engine never sees a malformed record.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"cdr-mcp/internal/record"
)

// Store provides thread-safe access to per-user record sets.
type Store struct {
	mu    sync.RWMutex
	dir   string
	users map[string]*record.User
}

// NewStore creates a store rooted at the given data directory.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		users: make(map[string]*record.User),
	}
}

// Put inserts or replaces a user's record set in memory.
func (s *Store) Put(u *record.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Get returns the user with the given id.
func (s *Store) Get(id string) (*record.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// UserIDs returns the ids of all loaded users, sorted.
func (s *Store) UserIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Users returns all loaded users in id order.
func (s *Store) Users() []*record.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := make([]*record.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.users[id])
	}
	return users
}

// snapshotHeader is the optional first line of a snapshot, carrying the
// per-user context that is not a record. Record lines never have an
// "antennas" key, so the two line shapes cannot be confused.
type snapshotHeader struct {
	Antennas map[string][2]float64 `json:"antennas"`
}

// Load reads a user's records from <dir>/<id>.jsonl. An antenna header
// line, if present, restores the user's antenna table. Lines that fail
// to decode or validate are skipped with a warning; a missing file is
// not an error (the user simply has no snapshot yet).
func (s *Store) Load(id string) error {
	path := filepath.Join(s.dir, fmt.Sprintf("%s.jsonl", id))
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	var records []record.Record
	var antennas map[string][2]float64
	first := true
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if first {
			first = false
			var hdr snapshotHeader
			if err := json.Unmarshal(scanner.Bytes(), &hdr); err == nil && len(hdr.Antennas) > 0 {
				antennas = hdr.Antennas
				continue
			}
		}

		var r record.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			log.Warn().Err(err).Str("user", id).Msg("Skipping invalid JSON line in dataset")
			continue
		}
		if err := r.Validate(); err != nil {
			log.Warn().Err(err).Str("user", id).Msg("Skipping malformed record in dataset")
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading dataset: %w", err)
	}

	log.Info().Str("user", id).Int("count", len(records)).Msg("Loaded records from dataset")
	u := record.NewUser(id, records)
	u.Antennas = antennas
	s.Put(u)
	return nil
}

// LoadAll loads every *.jsonl snapshot found in the data directory.
func (s *Store) LoadAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to list dataset directory: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		if err := s.Load(strings.TrimSuffix(name, ".jsonl")); err != nil {
			return err
		}
	}
	return nil
}

// Save persists a user's records to <dir>/<id>.jsonl via an atomic
// rename, one JSON object per line. A non-empty antenna table is
// written as a header line so spatial indicators survive a reload.
func (s *Store) Save(id string) error {
	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()

	if !ok || len(u.Records) == 0 {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s.jsonl", id))
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp dataset file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	if len(u.Antennas) > 0 {
		if err := encoder.Encode(snapshotHeader{Antennas: u.Antennas}); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode antenna header: %w", err)
		}
	}
	for _, r := range u.Records {
		if err := encoder.Encode(r); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename dataset file: %w", err)
	}

	log.Info().Str("user", id).Int("count", len(u.Records)).Msg("Records saved to dataset")
	return nil
}
