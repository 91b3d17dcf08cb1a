// Package storage persists run traces: one directory per run holding
// metadata.json and frames.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/motionlab/internal/scenario"
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

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Preset    string             `json:"preset,omitempty"`
	Emotion   string             `json:"emotion"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Ticks     int                `json:"ticks"`
	Metrics   map[string]float64 `json:"metrics"`
}

var frameHeader = []string{"t", "step_ms", "level", "bodies", "particles", "energy", "awake"}

// Save writes one run directory named <scene>_<shortid> and returns the run
// ID.
func (s *Store) Save(dt float64, seed int64, preset string, result *scenario.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", result.Scene, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     result.Scene,
		Preset:    preset,
		Emotion:   result.Emotion,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  result.Duration,
		Ticks:     result.Ticks,
		Metrics:   result.Metrics,
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		row := []string{
			strconv.FormatFloat(f.T, 'f', 6, 64),
			strconv.FormatFloat(f.StepMs, 'f', 6, 64),
			strconv.Itoa(f.Level),
			strconv.Itoa(f.Bodies),
			strconv.Itoa(f.Particles),
			strconv.FormatFloat(f.Energy, 'f', 6, 64),
			strconv.Itoa(f.Awake),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

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

// LoadFrames reads a run's frame trace back from CSV.
func (s *Store) LoadFrames(runID string) ([]scenario.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []scenario.Frame{}, nil
	}

	frames := make([]scenario.Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		stepMs, _ := strconv.ParseFloat(rec[1], 64)
		level, _ := strconv.Atoi(rec[2])
		bodies, _ := strconv.Atoi(rec[3])
		particlesN, _ := strconv.Atoi(rec[4])
		energy, _ := strconv.ParseFloat(rec[5], 64)
		awake, _ := strconv.Atoi(rec[6])

		frames = append(frames, scenario.Frame{
			T: t, StepMs: stepMs, Level: level,
			Bodies: bodies, Particles: particlesN,
			Energy: energy, Awake: awake,
		})
	}

	return frames, nil
}
