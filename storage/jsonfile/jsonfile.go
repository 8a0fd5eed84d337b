// Package jsonfile persists user profiles and workout history as flat JSON
// files under a data directory:
//
//	<dataDir>/profiles/<user_id>.json
//	<dataDir>/progress/<user_id>_progress.json
//
// Files are read and overwritten wholesale. Writes go through a temp file
// and rename so a crash never leaves a half-written record.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrProfileNotFound is returned when loading a profile that was never saved.
var ErrProfileNotFound = errors.New("profile not found")

// UserProfile is a gym user's personal profile used to tailor workouts.
type UserProfile struct {
	UserID       string   `json:"user_id"`
	Name         string   `json:"name"`
	Age          int      `json:"age"`
	FitnessLevel string   `json:"fitness_level"` // beginner, intermediate or advanced
	Goals        []string `json:"goals"`
	Equipment    []string `json:"equipment"`
	// Injuries lists physical limitations, e.g. "lower back", "left knee".
	Injuries        []string `json:"injuries,omitempty"`
	SessionsPerWeek int      `json:"sessions_per_week"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// ExerciseRecord is one exercise completed during a session.
type ExerciseRecord struct {
	Name       string `json:"name"`
	SetsDone   int    `json:"sets_done"`
	RepsDone   string `json:"reps_done"`
	WeightUsed string `json:"weight_used"`
}

// WorkoutSession is a single completed workout logged by the user.
type WorkoutSession struct {
	Date               string           `json:"date"` // YYYY-MM-DD
	FocusArea          string           `json:"focus_area"`
	DurationMinutes    int              `json:"duration_minutes"`
	ExercisesCompleted []ExerciseRecord `json:"exercises_completed"`
	EnergyLevel        int              `json:"energy_level"`      // 1 = exhausted, 5 = energised
	DifficultyRating   int              `json:"difficulty_rating"` // 1 = too easy, 5 = too hard
	Notes              string           `json:"notes,omitempty"`
}

// Store reads and writes profile and progress files under a data directory.
type Store struct {
	dataDir string
}

// NewStore creates a Store rooted at dataDir. Directories are created lazily
// on the first write.
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// SaveProfile persists a profile, stamping UpdatedAt (and CreatedAt for new
// records) with the current UTC time.
func (s *Store) SaveProfile(profile *UserProfile) error {
	if profile == nil {
		return errors.New("profile cannot be nil")
	}
	if profile.UserID == "" {
		return errors.New("profile user_id cannot be empty")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if profile.CreatedAt == "" {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	dir := filepath.Join(s.dataDir, "profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profiles dir: %w", err)
	}
	return writeJSON(filepath.Join(dir, profile.UserID+".json"), profile)
}

// LoadProfile loads a profile by user ID. Returns ErrProfileNotFound when
// no profile file exists.
func (s *Store) LoadProfile(userID string) (*UserProfile, error) {
	path := filepath.Join(s.dataDir, "profiles", userID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("read profile %s: %w", userID, err)
	}
	var profile UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return &profile, nil
}

// SaveSession appends a workout session to the user's progress history.
// The whole history is rewritten, matching the flat-file model.
func (s *Store) SaveSession(userID string, session WorkoutSession) error {
	if userID == "" {
		return errors.New("user_id cannot be empty")
	}
	if session.Date == "" {
		session.Date = time.Now().UTC().Format("2006-01-02")
	}
	sessions, err := s.LoadSessions(userID)
	if err != nil {
		return err
	}
	sessions = append(sessions, session)

	dir := filepath.Join(s.dataDir, "progress")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	return writeJSON(filepath.Join(dir, userID+"_progress.json"), sessions)
}

// LoadSessions loads all logged workout sessions for a user. A missing
// progress file yields an empty history, not an error.
func (s *Store) LoadSessions(userID string) ([]WorkoutSession, error) {
	path := filepath.Join(s.dataDir, "progress", userID+"_progress.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read progress for %s: %w", userID, err)
	}
	var sessions []WorkoutSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode progress for %s: %w", userID, err)
	}
	return sessions, nil
}

// writeJSON writes v as indented JSON via a temp file and rename.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Streak returns the number of consecutive days, ending today (UTC), on
// which at least one session was logged. A day without a session breaks the
// streak; an empty history yields 0.
func Streak(sessions []WorkoutSession, today time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	dates := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		dates[s.Date] = true
	}
	streak := 0
	day := today.UTC()
	for dates[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
