package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrDatasetNotFound is returned when no dataset exists for a given id.
var ErrDatasetNotFound = errors.New("no dataset with requested id")

// Dataset is an ingested, immutable observation collection. The ID is the
// SHA-256 hex digest of the raw uploaded bytes, so identical uploads map to
// the same dataset and derived results key off content, not upload events.
type Dataset struct {
	ID           string    `json:"id"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Observations []Observation
}

// Cities returns the sorted distinct city names in the dataset.
func (d *Dataset) Cities() []string {
	seen := make(map[string]struct{})
	var cities []string
	for _, o := range d.Observations {
		if _, ok := seen[o.City]; ok {
			continue
		}
		seen[o.City] = struct{}{}
		cities = append(cities, o.City)
	}
	sort.Strings(cities)
	return cities
}

// CityObservations returns the city's observations in original input order.
func (d *Dataset) CityObservations(city string) []Observation {
	var result []Observation
	for _, o := range d.Observations {
		if o.City == city {
			result = append(result, o)
		}
	}
	return result
}

// Store is a concurrency-safe in-memory dataset registry. It holds a bounded
// number of datasets; when the bound is exceeded the oldest upload is
// evicted. All analysis stays a pure function of a dataset's observations;
// the store only deduplicates uploads.
type Store struct {
	mu     sync.RWMutex
	data   map[string]*Dataset
	order  []string
	max    int
	lastID string
}

// NewStore creates a Store keeping at most maxDatasets datasets.
// A non-positive maxDatasets falls back to 16.
func NewStore(maxDatasets int) *Store {
	if maxDatasets <= 0 {
		maxDatasets = 16
	}
	return &Store{
		data: make(map[string]*Dataset),
		max:  maxDatasets,
	}
}

// Add registers a parsed dataset under the content hash of its raw upload
// bytes. Re-uploading identical content returns the existing dataset.
func (s *Store) Add(raw []byte, observations []Observation) *Dataset {
	sum := sha256.Sum256(raw)
	id := hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.data[id]; ok {
		s.lastID = id
		return existing
	}

	ds := &Dataset{
		ID:           id,
		UploadedAt:   time.Now().UTC(),
		Observations: observations,
	}
	s.data[id] = ds
	s.order = append(s.order, id)
	s.lastID = id

	if len(s.order) > s.max {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.data, evicted)
	}

	return ds
}

// Get returns the dataset with the given id.
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.data[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

// Latest returns the most recently uploaded dataset.
func (s *Store) Latest() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.data[s.lastID]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}
