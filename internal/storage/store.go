package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/shot"
)

// Store archives completed shots under a base directory, one directory
// per shot holding metadata.json and states.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ShotMetadata struct {
	ID        string    `json:"id"`
	Preset    string    `json:"preset"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Dt        float64   `json:"dt"`
	Duration  float64   `json:"duration"`
	Steps     int       `json:"steps"`

	Disrupted      bool    `json:"disrupted"`
	DisruptionTime float64 `json:"disruption_time,omitempty"`
	FinalPhase     string  `json:"final_phase"`

	Metrics map[string]float64 `json:"metrics"`
}

func (s *Store) Save(preset string, cfg shot.Config, result *shot.Result) (string, error) {
	shotID := fmt.Sprintf("shot_%s", uuid.New().String())
	shotDir := filepath.Join(s.baseDir, shotID)

	if err := os.MkdirAll(shotDir, 0755); err != nil {
		return "", err
	}

	meta := ShotMetadata{
		ID:        shotID,
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,

		Disrupted:      result.Disrupted,
		DisruptionTime: result.DisruptionTime,
		FinalPhase:     result.FinalPhase.String(),

		Metrics: result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(shotDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(shotDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return shotID, nil
}

// WriteCSV streams the recorded channels as CSV, one row per sample with
// the time column first.
func WriteCSV(out io.Writer, result *shot.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := append([]string{"time"}, plasma.HistoryColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, rec := range result.Records {
		row := make([]string, 0, len(rec)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, val := range rec {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) List() ([]ShotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ShotMetadata{}, nil
		}
		return nil, err
	}

	shots := make([]ShotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta ShotMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		shots = append(shots, meta)
	}

	return shots, nil
}

func (s *Store) Load(shotID string) (*ShotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, shotID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ShotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads back the recorded channels and times for a shot.
func (s *Store) LoadStates(shotID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, shotID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(rows) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(rows)-1)
	records := make([][]float64, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		rec := make([]float64, 0, len(row)-1)
		for _, field := range row[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			rec = append(rec, val)
		}
		records = append(records, rec)
	}

	return records, times, nil
}
