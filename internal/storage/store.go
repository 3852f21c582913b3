package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/grab"
	"github.com/san-kum/grabsim/internal/pose"
	"github.com/san-kum/grabsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	posesFile    = "poses.csv"
)

var ErrMalformed = errors.New("storage: malformed pose file")

var poseHeader = []string{"time", "px", "py", "pz", "qw", "qx", "qy", "qz", "attachments"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SolverParams struct {
	Damping         float64 `json:"damping"`
	ProximityRadius float64 `json:"proximity_radius"`
	AgreementGain   float64 `json:"agreement_gain"`
	AgreementBias   float64 `json:"agreement_bias"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Noise     float64            `json:"noise"`
	RigidBody bool               `json:"rigid_body"`
	Solver    SolverParams       `json:"solver"`
	Steps     int                `json:"steps"`
	Events    []sim.Event        `json:"events"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

// Trace is the pose series of a stored run.
type Trace struct {
	Times       []float64
	Poses       []pose.Pose
	Attachments []int
}

func (s *Store) Save(scenario string, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: now,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Noise:     cfg.Noise,
		RigidBody: cfg.RigidBody,
		Solver:    solverParams(cfg.Solver),
		Steps:     result.StepsTaken,
		Events:    result.Events,
		Metrics:   result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePoses(filepath.Join(runDir, posesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func solverParams(p grab.Params) SolverParams {
	return SolverParams{
		Damping:         p.Damping,
		ProximityRadius: p.ProximityRadius,
		AgreementGain:   p.AgreementGain,
		AgreementBias:   p.AgreementBias,
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePoses(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(poseHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 9, 64) }
	for i, p := range result.Poses {
		attached := 0
		if i < len(result.Attachments) {
			attached = result.Attachments[i]
		}
		row := []string{
			format(result.Times[i]),
			format(p.Position.X()), format(p.Position.Y()), format(p.Position.Z()),
			format(p.Rotation.W), format(p.Rotation.X()), format(p.Rotation.Y()), format(p.Rotation.Z()),
			strconv.Itoa(attached),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadPoses(runID string) (*Trace, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, posesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(poseHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	trace := &Trace{}
	if len(records) < 2 {
		return trace, nil
	}

	for i, record := range records[1:] {
		var vals [8]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i+1, err)
			}
		}
		attached, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i+1, err)
		}

		trace.Times = append(trace.Times, vals[0])
		trace.Poses = append(trace.Poses, pose.New(
			mgl64.Vec3{vals[1], vals[2], vals[3]},
			mgl64.Quat{W: vals[4], V: mgl64.Vec3{vals[5], vals[6], vals[7]}},
		))
		trace.Attachments = append(trace.Attachments, attached)
	}
	return trace, nil
}
