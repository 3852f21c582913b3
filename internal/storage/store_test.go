package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
	"github.com/san-kum/grabsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *sim.Result {
	turned := mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0})
	return &sim.Result{
		Times: []float64{0, 0.02},
		Poses: []pose.Pose{
			pose.Identity(),
			pose.New(mgl64.Vec3{0.1, 1.2, -0.5}, turned),
		},
		Attachments: []int{0, 2},
		Events:      []sim.Event{{Step: 0, Time: 0, Object: "bar", Kind: sim.EventGrabStart}},
		Metrics:     map[string]float64{"drift": 0.3},
		StepsTaken:  1,
		Errors:      []error{errors.New("tracker lost")},
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := newStore(t)
	cfg := sim.DefaultConfig()
	cfg.Seed = 42
	cfg.Noise = 0.001

	runID, err := st.Save("handoff", cfg, sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "handoff", meta.Scenario)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 0.001, meta.Noise)
	assert.Equal(t, cfg.Solver.Damping, meta.Solver.Damping)
	assert.Equal(t, 1, meta.Steps)
	assert.Equal(t, 0.3, meta.Metrics["drift"])
	assert.Equal(t, []string{"tracker lost"}, meta.Errors)
	require.Len(t, meta.Events, 1)
	assert.Equal(t, sim.EventGrabStart, meta.Events[0].Kind)

	trace, err := st.LoadPoses(runID)
	require.NoError(t, err)
	require.Len(t, trace.Poses, 2)
	assert.Equal(t, []float64{0, 0.02}, trace.Times)
	assert.Equal(t, []int{0, 2}, trace.Attachments)

	want := sampleResult().Poses[1]
	assert.True(t, trace.Poses[1].ApproxEqual(want, 1e-6), "got %v want %v", trace.Poses[1], want)
}

func TestStoreList(t *testing.T) {
	st := newStore(t)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := st.Save("steady", sim.DefaultConfig(), sampleResult())
	require.NoError(t, err)
	second, err := st.Save("twist", sim.DefaultConfig(), sampleResult())
	require.NoError(t, err)

	// stray files and unreadable runs are skipped
	require.NoError(t, os.WriteFile(filepath.Join(st.baseDir, "notes.txt"), nil, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(st.baseDir, "broken"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	st := newStore(t)
	runID, err := st.Save("steady", sim.DefaultConfig(), sampleResult())
	require.NoError(t, err)

	runDir := filepath.Join(st.baseDir, runID)
	assert.FileExists(t, filepath.Join(runDir, "metadata.json"))

	data, err := os.ReadFile(filepath.Join(runDir, "poses.csv"))
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "time,px,py,pz,qw,qx,qy,qz,attachments", string(lines[0]))
}

func TestLoadPoses_Malformed(t *testing.T) {
	st := newStore(t)
	runDir := filepath.Join(st.baseDir, "bad")
	require.NoError(t, os.MkdirAll(runDir, 0755))

	body := "time,px,py,pz,qw,qx,qy,qz,attachments\n0,0,0,zero,1,0,0,0,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "poses.csv"), []byte(body), 0644))
	_, err := st.LoadPoses("bad")
	assert.ErrorIs(t, err, ErrMalformed)

	short := "time,px,py,pz,qw,qx,qy,qz,attachments\n0,0,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "poses.csv"), []byte(short), 0644))
	_, err = st.LoadPoses("bad")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = st.LoadPoses("missing")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	st := newStore(t)
	runID, err := st.Save("bar_lift", sim.DefaultConfig(), sampleResult())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var doc struct {
		ID       string `json:"id"`
		Scenario string `json:"scenario"`
		Poses    []struct {
			Time        float64    `json:"time"`
			Position    [3]float64 `json:"position"`
			Rotation    [4]float64 `json:"rotation"`
			Attachments int        `json:"attachments"`
		} `json:"poses"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, runID, doc.ID)
	assert.Equal(t, "bar_lift", doc.Scenario)
	require.Len(t, doc.Poses, 2)
	assert.Equal(t, [4]float64{1, 0, 0, 0}, doc.Poses[0].Rotation)
	assert.InDelta(t, 1.2, doc.Poses[1].Position[1], 1e-9)
	assert.Equal(t, 2, doc.Poses[1].Attachments)

	assert.Error(t, st.ExportJSON(&buf, "missing"))
}
