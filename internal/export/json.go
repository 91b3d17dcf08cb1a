package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/motionlab/internal/scenario"
)

type runDocument struct {
	Scene    string             `json:"scene"`
	Preset   string             `json:"preset,omitempty"`
	Emotion  string             `json:"emotion"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Ticks    int                `json:"ticks"`
	Frames   []scenario.Frame   `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

// WriteJSON streams a full run trace as an indented JSON document.
func WriteJSON(w io.Writer, dt float64, result *scenario.Result) error {
	doc := runDocument{
		Scene:    result.Scene,
		Preset:   result.Preset,
		Emotion:  result.Emotion,
		Dt:       dt,
		Duration: result.Duration,
		Ticks:    result.Ticks,
		Frames:   result.Frames,
		Metrics:  result.Metrics,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSONFile writes the run trace to path, creating or truncating it.
func WriteJSONFile(path string, dt float64, result *scenario.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, dt, result)
}
