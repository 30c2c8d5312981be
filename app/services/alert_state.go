package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	alertStateFileName = "alerts_state.json"
	// Dismissed and read marks expire after this many days, so an alert
	// that still applies resurfaces instead of staying hidden forever.
	alertStateDaysToKeep = 45
)

// alertMark records when a specific alert id was dismissed or read.
type alertMark struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

// alertState is the persisted dismissed/read bookkeeping.
type alertState struct {
	Dismissed []alertMark `json:"dismissed"`
	Read      []alertMark `json:"read"`
}

// alertStatePath returns the location of the state file.
func alertStatePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	dir := filepath.Join(base, "RetailApp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}
	return filepath.Join(dir, alertStateFileName), nil
}

// loadAlertState reads the state file, dropping expired marks. A missing
// or unreadable file yields an empty state.
func loadAlertState(now time.Time) alertState {
	path, err := alertStatePath()
	if err != nil {
		return alertState{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return alertState{}
	}

	var state alertState
	if err := json.Unmarshal(data, &state); err != nil {
		return alertState{}
	}

	cutoff := now.AddDate(0, 0, -alertStateDaysToKeep)
	state.Dismissed = pruneMarks(state.Dismissed, cutoff)
	state.Read = pruneMarks(state.Read, cutoff)
	return state
}

// saveAlertState writes the state file.
func saveAlertState(state alertState) error {
	path, err := alertStatePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(&state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func pruneMarks(marks []alertMark, cutoff time.Time) []alertMark {
	kept := marks[:0]
	for _, m := range marks {
		if m.At.After(cutoff) {
			kept = append(kept, m)
		}
	}
	return kept
}

func hasMark(marks []alertMark, id string) bool {
	for _, m := range marks {
		if m.ID == id {
			return true
		}
	}
	return false
}

// upsertMark replaces an existing mark for the id or appends a new one.
func upsertMark(marks []alertMark, id string, at time.Time) []alertMark {
	for i := range marks {
		if marks[i].ID == id {
			marks[i].At = at
			return marks
		}
	}
	return append(marks, alertMark{ID: id, At: at})
}
