// Package progress provides the progress-tracker tool: it logs a completed
// workout session to disk, recomputes totals and streak, and asks the model
// for a motivating summary of recent history.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentacademy/go-agents/internal/structured"
	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/storage/jsonfile"
	"github.com/agentacademy/go-agents/tool"
	"github.com/agentacademy/go-agents/tool/function"
)

const systemPrompt = `You are an encouraging personal trainer reviewing a client's workout history.
Summarise their recent progress in 2-3 motivating sentences and identify any
noteworthy achievements (e.g. consistency streak, improving difficulty tolerance,
reaching session milestones). Be specific and positive.`

// recentWindow is how many trailing sessions the summary prompt includes.
const recentWindow = 5

// Input logs one completed session.
type Input struct {
	UserID             string                    `json:"user_id" description:"The user's unique identifier."`
	FocusArea          string                    `json:"focus_area" description:"Muscle group or training style for this session."`
	DurationMinutes    int                       `json:"duration_minutes" description:"How long the session lasted."`
	ExercisesCompleted []jsonfile.ExerciseRecord `json:"exercises_completed" description:"Exercises done this session."`
	EnergyLevel        int                       `json:"energy_level" description:"Energy level 1 (exhausted) - 5 (great)."`
	DifficultyRating   int                       `json:"difficulty_rating" description:"Difficulty 1 (too easy) - 5 (too hard)."`
	Notes              string                    `json:"notes,omitempty" description:"Any extra notes about the session."`
}

// Output reports totals, streak and the model's summary.
type Output struct {
	TotalSessions   int      `json:"total_sessions"`
	StreakDays      int      `json:"streak_days"`
	ProgressSummary string   `json:"progress_summary"`
	Achievements    []string `json:"achievements"`
}

// New creates the progress-tracker tool over the given store and model.
func New(m model.Model, store *jsonfile.Store) *function.FunctionTool[Input, Output] {
	return function.New(
		func(ctx context.Context, input Input) (Output, error) {
			return track(ctx, m, store, input)
		},
		function.WithName("progress_tracker"),
		function.WithDescription(
			"Log a completed workout session and summarise the user's overall progress. "+
				"Requires: user_id, focus_area, duration_minutes, exercises_completed, "+
				"energy_level (1-5), difficulty_rating (1-5), and optional notes. "+
				"Returns total sessions, current streak, a progress summary, and achievements."),
	)
}

func track(ctx context.Context, m model.Model, store *jsonfile.Store, input Input) (Output, error) {
	if input.EnergyLevel < 1 || input.EnergyLevel > 5 {
		return Output{}, fmt.Errorf("energy_level must be 1-5, got %d", input.EnergyLevel)
	}
	if input.DifficultyRating < 1 || input.DifficultyRating > 5 {
		return Output{}, fmt.Errorf("difficulty_rating must be 1-5, got %d", input.DifficultyRating)
	}

	err := store.SaveSession(input.UserID, jsonfile.WorkoutSession{
		FocusArea:          input.FocusArea,
		DurationMinutes:    input.DurationMinutes,
		ExercisesCompleted: input.ExercisesCompleted,
		EnergyLevel:        input.EnergyLevel,
		DifficultyRating:   input.DifficultyRating,
		Notes:              input.Notes,
	})
	if err != nil {
		return Output{}, fmt.Errorf("log session: %w", err)
	}

	sessions, err := store.LoadSessions(input.UserID)
	if err != nil {
		return Output{}, fmt.Errorf("reload history: %w", err)
	}
	total := len(sessions)
	streak := jsonfile.Streak(sessions, time.Now())

	recent := sessions
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	history, err := json.MarshalIndent(recent, "", "  ")
	if err != nil {
		return Output{}, fmt.Errorf("encode history: %w", err)
	}
	userMessage := fmt.Sprintf(
		"The user just completed session #%d.\n"+
			"Streak: %d consecutive day(s).\n\n"+
			"Recent sessions (last %d):\n%s\n\n"+
			"Write a short motivating progress summary and list specific achievements.",
		total, streak, len(recent), history)

	summarySchema, err := structured.SchemaMap(&tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"progress_summary": {Type: "string"},
			"achievements":     {Type: "array", Items: &tool.Schema{Type: "string"}},
		},
		Required:             []string{"progress_summary", "achievements"},
		AdditionalProperties: false,
	})
	if err != nil {
		return Output{}, fmt.Errorf("build summary schema: %w", err)
	}

	var summary struct {
		ProgressSummary string   `json:"progress_summary"`
		Achievements    []string `json:"achievements"`
	}
	if err := structured.CallJSON(ctx, m, systemPrompt, userMessage, "progress_summary", summarySchema, &summary); err != nil {
		return Output{}, err
	}

	return Output{
		TotalSessions:   total,
		StreakDays:      streak,
		ProgressSummary: summary.ProgressSummary,
		Achievements:    summary.Achievements,
	}, nil
}
