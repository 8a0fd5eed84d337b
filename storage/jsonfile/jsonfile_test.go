package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *UserProfile {
	return &UserProfile{
		UserID:          "sam",
		Name:            "Sam",
		Age:             29,
		FitnessLevel:    "intermediate",
		Goals:           []string{"build muscle"},
		Equipment:       []string{"dumbbells"},
		SessionsPerWeek: 3,
	}
}

func TestSaveAndLoadProfile(t *testing.T) {
	store := NewStore(t.TempDir())

	profile := testProfile()
	require.NoError(t, store.SaveProfile(profile))
	assert.NotEmpty(t, profile.CreatedAt)
	assert.NotEmpty(t, profile.UpdatedAt)

	loaded, err := store.LoadProfile("sam")
	require.NoError(t, err)
	assert.Equal(t, "Sam", loaded.Name)
	assert.Equal(t, []string{"build muscle"}, loaded.Goals)
	assert.Equal(t, 3, loaded.SessionsPerWeek)
}

func TestSaveProfileOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	profile := testProfile()
	require.NoError(t, store.SaveProfile(profile))
	created := profile.CreatedAt

	profile.Age = 30
	require.NoError(t, store.SaveProfile(profile))

	loaded, err := store.LoadProfile("sam")
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.Age)
	assert.Equal(t, created, loaded.CreatedAt)
}

func TestLoadProfileNotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.LoadProfile("nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSaveProfileValidation(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.Error(t, store.SaveProfile(nil))
	assert.Error(t, store.SaveProfile(&UserProfile{}))
}

func TestSaveAndLoadSessions(t *testing.T) {
	store := NewStore(t.TempDir())

	sessions, err := store.LoadSessions("sam")
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, store.SaveSession("sam", WorkoutSession{
		FocusArea:       "upper body",
		DurationMinutes: 45,
		ExercisesCompleted: []ExerciseRecord{
			{Name: "Push-ups", SetsDone: 3, RepsDone: "12", WeightUsed: "bodyweight"},
		},
		EnergyLevel:      4,
		DifficultyRating: 3,
	}))
	require.NoError(t, store.SaveSession("sam", WorkoutSession{
		Date:            "2026-08-20",
		FocusArea:       "legs",
		DurationMinutes: 30,
	}))

	sessions, err = store.LoadSessions("sam")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// Date defaults to today when omitted.
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), sessions[0].Date)
	assert.Equal(t, "legs", sessions[1].FocusArea)
	require.Len(t, sessions[0].ExercisesCompleted, 1)
	assert.Equal(t, "Push-ups", sessions[0].ExercisesCompleted[0].Name)
}

func TestLoadSessionsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "progress"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "progress", "sam_progress.json"),
		[]byte("not json"), 0o644))

	_, err := store.LoadSessions("sam")
	require.Error(t, err)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.SaveProfile(testProfile()))

	entries, err := os.ReadDir(filepath.Join(dir, "profiles"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sam.json", entries[0].Name())
}

func TestStreak(t *testing.T) {
	today := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}

	tests := []struct {
		name     string
		sessions []WorkoutSession
		want     int
	}{
		{"empty history", nil, 0},
		{"only today", []WorkoutSession{{Date: day(0)}}, 1},
		{"three consecutive days", []WorkoutSession{
			{Date: day(0)}, {Date: day(-1)}, {Date: day(-2)},
		}, 3},
		{"gap breaks streak", []WorkoutSession{
			{Date: day(0)}, {Date: day(-2)}, {Date: day(-3)},
		}, 1},
		{"no session today", []WorkoutSession{
			{Date: day(-1)}, {Date: day(-2)},
		}, 0},
		{"duplicate dates count once", []WorkoutSession{
			{Date: day(0)}, {Date: day(0)}, {Date: day(-1)},
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.sessions, today))
		})
	}
}
