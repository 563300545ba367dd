// Package storage persists headless runs: one directory per run holding
// metadata.json and the collision event log as CSV.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one headless run.
type RunMetadata struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Preset        string    `json:"preset,omitempty"`
	RPM           float64   `json:"rpm"`
	DrumRadius    float64   `json:"drum_radius"`
	VaneCount     int       `json:"vane_count"`
	Ball          string    `json:"ball"`
	Duration      float64   `json:"duration"`
	EventCount    int       `json:"event_count"`
	MeanImpact    float64   `json:"mean_impact"`
	LoudestImpact float64   `json:"loudest_impact"`
}

// EventRecord is one collision event row in events.csv.
type EventRecord struct {
	Time    float64 `csv:"time"`
	Surface string  `csv:"surface"`
	Kind    string  `csv:"kind"`
	Index   int     `csv:"index"`
	Speed   float64 `csv:"speed"`
	Note    int     `csv:"note"`
}

// Save writes a run directory and returns its ID.
func (s *Store) Save(meta RunMetadata, events []EventRecord) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.EventCount = len(events)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "events.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&events, csvFile); err != nil {
		return "", err
	}
	return runID, nil
}

// Load reads a run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadEvents reads a run's collision log.
func (s *Store) LoadEvents(runID string) ([]EventRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "events.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []EventRecord
	if err := gocsv.UnmarshalFile(f, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip unreadable runs
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}
