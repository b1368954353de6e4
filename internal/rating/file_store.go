package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/tobihoff/anirate/pkg/models"
)

// fileDocument is the persisted layout: one JSON document, ratings nested by
// user id (stringified for JSON keys), then rating id. The encoding never
// changes within a store instance.
type fileDocument struct {
	Ratings map[string]map[string]models.AnimeRating `json:"ratings"`
}

// FileStore persists ratings in a single JSON file with whole-file
// read-modify-write sequencing. An in-memory mirror serves reads; every
// mutation updates mirror and file together under one lock, and the file is
// replaced atomically via a temp file and rename so no caller can observe a
// half-written document. A missing file behaves exactly like an empty one.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	mirror map[int]map[string]models.AnimeRating
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, newStorageError("open", fmt.Errorf("file path is required"))
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, newStorageError("open", fmt.Errorf("create directory %s: %w", dir, err))
		}
	}

	s := &FileStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.mirror = make(map[int]map[string]models.AnimeRating)
		return nil
	}
	if err != nil {
		return newStorageError("load", err)
	}

	var doc fileDocument
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return newStorageError("load", fmt.Errorf("decode %s: %w", s.path, err))
		}
	}

	s.mirror = make(map[int]map[string]models.AnimeRating, len(doc.Ratings))
	for key, userRatings := range doc.Ratings {
		userID, err := strconv.Atoi(key)
		if err != nil {
			return newStorageError("load", fmt.Errorf("invalid user key %q in %s", key, s.path))
		}
		bucket := make(map[string]models.AnimeRating, len(userRatings))
		for id, r := range userRatings {
			bucket[id] = r
		}
		s.mirror[userID] = bucket
	}
	return nil
}

// flush serializes the mirror and replaces the file atomically. Callers hold
// the write lock, so the snapshot can never be based on stale mirror state.
func (s *FileStore) flush() error {
	doc := fileDocument{Ratings: make(map[string]map[string]models.AnimeRating, len(s.mirror))}
	for userID, userRatings := range s.mirror {
		doc.Ratings[fmt.Sprintf("%d", userID)] = userRatings
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return newStorageError("save", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ratings-*.json")
	if err != nil {
		return newStorageError("save", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return newStorageError("save", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return newStorageError("save", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return newStorageError("save", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return newStorageError("save", err)
	}
	return nil
}

func (s *FileStore) Save(ctx context.Context, r models.AnimeRating, userID int) (models.AnimeRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userRatings := s.mirror[userID]
	var prior *models.AnimeRating
	if existing, ok := userRatings[r.ID]; ok {
		prior = &existing
	}

	saved, err := normalizeSave(r, prior)
	if err != nil {
		return models.AnimeRating{}, err
	}

	if userRatings == nil {
		userRatings = make(map[string]models.AnimeRating)
		s.mirror[userID] = userRatings
	}

	// Mirror and file move together: a failed flush rolls the mirror back
	// so both copies stay at the prior state.
	userRatings[saved.ID] = cloneRating(saved)
	if err := s.flush(); err != nil {
		if prior != nil {
			userRatings[saved.ID] = *prior
		} else {
			delete(userRatings, saved.ID)
		}
		return models.AnimeRating{}, err
	}
	return saved, nil
}

func (s *FileStore) List(ctx context.Context, userID int) ([]models.AnimeRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userRatings := s.mirror[userID]
	out := make([]models.AnimeRating, 0, len(userRatings))
	for _, r := range userRatings {
		out = append(out, cloneRating(r))
	}
	return out, nil
}

func (s *FileStore) DeleteByID(ctx context.Context, id string, userID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userRatings, ok := s.mirror[userID]
	if !ok {
		return false, nil
	}
	prior, ok := userRatings[id]
	if !ok {
		return false, nil
	}

	delete(userRatings, id)
	if err := s.flush(); err != nil {
		userRatings[id] = prior
		return false, err
	}
	return true, nil
}

func (s *FileStore) Close() error { return nil }
