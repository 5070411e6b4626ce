// Package storage keeps sweep runs on disk, one directory per run holding
// metadata.json and sweep.csv.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/nlolab/internal/analysis"
	"github.com/san-kum/nlolab/internal/export"
)

var ErrNoRun = errors.New("storage: no such run")

const (
	metaFile  = "metadata.json"
	sweepFile = "sweep.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Crystal   string    `json:"crystal"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
	Min       float64   `json:"tau_min"`
	Max       float64   `json:"tau_max"`
	Points    int       `json:"points"`
	TauM      float64   `json:"tau_m"`
	PeakTau   float64   `json:"peak_tau"`
	PeakGamma float64   `json:"peak_gamma"`
}

// Save writes a sweep under a fresh run id and returns the id.
func (s *Store) Save(crystal, method string, cfg analysis.SweepConfig, pts []analysis.Point) (string, error) {
	ts := s.now()
	if crystal == "" {
		crystal = "crystal"
	}
	runID := fmt.Sprintf("%s_%d", crystal, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Crystal:   crystal,
		Method:    method,
		Timestamp: ts,
		Min:       cfg.Min,
		Max:       cfg.Max,
		Points:    len(pts),
		TauM:      cfg.TauM,
	}
	if p, ok := analysis.Peak(pts); ok {
		meta.PeakTau, meta.PeakGamma = p.Tau, p.Gamma
	}

	// metadata.json goes last: List only sees runs whose sweep is on disk.
	if err := writeFile(filepath.Join(runDir, sweepFile), func(f *os.File) error {
		return export.WriteCSV(f, pts)
	}); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, metaFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("storage: %s: %w", runID, err)
	}
	return runID, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first. A missing base directory
// is an empty store.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSweep(runID string) ([]analysis.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, sweepFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer f.Close()
	return export.ReadCSV(f)
}
