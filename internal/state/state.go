package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

// PhaseOutput marks a run that failed after every stage succeeded, while
// writing the output directory.
const PhaseOutput = "output"

// State is the persisted record of the most recent build run.
type State struct {
	RunID      string `json:"run_id"`
	Prompt     string `json:"prompt"`
	StageIndex int    `json:"stage_index"` // 0-based index of the next stage to run
	StageCount int    `json:"stage_count"`
	Status     string `json:"status"` // running, completed, failed, interrupted
	Error      string `json:"error,omitempty"`
	Phase      string `json:"phase,omitempty"`
	// PathStage is the 1-based stage that emitted an invalid output path.
	PathStage int `json:"path_stage,omitempty"`
	Files      int    `json:"files,omitempty"`
}

func statePath(artifactsDir string) string {
	return filepath.Join(artifactsDir, "state.json")
}

// Load reads the state from the artifacts directory. Returns an empty state if not found.
func Load(artifactsDir string) (*State, error) {
	data, err := os.ReadFile(statePath(artifactsDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &State{}, nil
		}
		return nil, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the state to the artifacts directory.
func (s *State) Save(artifactsDir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(statePath(artifactsDir), data, 0644)
}

// Advance moves to the next stage.
func (s *State) Advance() {
	s.StageIndex++
}

// Fail records a failed or interrupted run.
func (s *State) Fail(status string, err error) {
	s.Status = status
	if err != nil {
		s.Error = err.Error()
	}
}
