package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/shot"
)

type ExportData struct {
	Preset   string  `json:"preset"`
	Dt       float64 `json:"dt"`
	Duration float64 `json:"duration"`
	Steps    int     `json:"steps"`

	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	Records [][]float64 `json:"records"`

	Disrupted      bool    `json:"disrupted"`
	DisruptionTime float64 `json:"disruption_time,omitempty"`
	FinalPhase     string  `json:"final_phase"`

	Metrics map[string]float64 `json:"metrics"`
}

// WriteJSON streams a full shot record as indented JSON.
func WriteJSON(out io.Writer, preset string, cfg shot.Config, result *shot.Result) error {
	data := ExportData{
		Preset:   preset,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Steps:    result.StepsTaken,

		Columns: plasma.HistoryColumns,
		Times:   result.Times,
		Records: result.Records,

		Disrupted:      result.Disrupted,
		DisruptionTime: result.DisruptionTime,
		FinalPhase:     result.FinalPhase.String(),

		Metrics: result.Metrics,
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSON writes a full shot record to a file.
func ExportJSON(path, preset string, cfg shot.Config, result *shot.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, preset, cfg, result)
}

// ExportCSV writes the recorded channels to a CSV file.
func ExportCSV(path string, result *shot.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result)
}
