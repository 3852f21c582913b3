package storage

import (
	"encoding/json"
	"io"
)

type ExportPose struct {
	Time        float64    `json:"time"`
	Position    [3]float64 `json:"position"`
	Rotation    [4]float64 `json:"rotation"`
	Attachments int        `json:"attachments"`
}

type ExportData struct {
	*RunMetadata
	Poses []ExportPose `json:"poses"`
}

// ExportJSON writes a stored run, metadata and poses together, as one JSON
// document. Rotations are written w, x, y, z.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadPoses(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: meta, Poses: make([]ExportPose, len(trace.Poses))}
	for i, p := range trace.Poses {
		data.Poses[i] = ExportPose{
			Time:        trace.Times[i],
			Position:    [3]float64{p.Position.X(), p.Position.Y(), p.Position.Z()},
			Rotation:    [4]float64{p.Rotation.W, p.Rotation.X(), p.Rotation.Y(), p.Rotation.Z()},
			Attachments: trace.Attachments[i],
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
