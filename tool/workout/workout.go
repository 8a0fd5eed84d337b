// Package workout provides the workout-generator tool: a model-backed
// generator of structured, personalised workout plans.
package workout

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/agentacademy/go-agents/internal/schema"
	"github.com/agentacademy/go-agents/internal/structured"
	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/tool/function"
)

const systemPrompt = `You are an expert personal trainer. Generate a safe, effective, and well-structured
workout plan tailored to the user's fitness level, goals, available equipment, and
any injuries or physical limitations. Always include a warmup, main exercises, and
cooldown. Be specific with sets, reps, and rest periods. Provide clear instructions.`

const defaultDurationMinutes = 45

// Input describes the user and the session to plan.
type Input struct {
	FitnessLevel string   `json:"fitness_level" description:"User's current fitness level." enum:"beginner,intermediate,advanced"`
	Goals        []string `json:"goals" description:"Fitness goals, e.g. ['build muscle', 'lose weight']."`
	Equipment    []string `json:"equipment" description:"Available equipment, e.g. ['dumbbells', 'bodyweight only']."`
	Injuries     []string `json:"injuries" description:"Injuries or limitations to work around. Empty list if none."`
	FocusArea    string   `json:"focus_area" description:"Primary muscle group or training style for this session." enum:"full_body,upper_body,lower_body,cardio,core"`
	// DurationMinutes defaults to 45 when omitted.
	DurationMinutes int `json:"duration_minutes,omitempty" description:"Target total workout duration in minutes."`
}

// WarmupExercise is one warmup or cooldown movement.
type WarmupExercise struct {
	Exercise        string `json:"exercise"`
	DurationSeconds int    `json:"duration_seconds"`
	Instructions    string `json:"instructions"`
}

// MainExercise is one main-block exercise with sets, reps and rest.
type MainExercise struct {
	Exercise     string `json:"exercise"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps" description:"e.g. '10', '8-12', or '30 seconds'"`
	RestSeconds  int    `json:"rest_seconds"`
	Instructions string `json:"instructions"`
}

// Output is the full structured plan.
type Output struct {
	WorkoutName string           `json:"workout_name"`
	Warmup      []WarmupExercise `json:"warmup"`
	Exercises   []MainExercise   `json:"exercises"`
	Cooldown    []WarmupExercise `json:"cooldown"`
	CoachNotes  string           `json:"coach_notes"`
}

// New creates the workout-generator tool backed by m.
func New(m model.Model) *function.FunctionTool[Input, Output] {
	return function.New(
		func(ctx context.Context, input Input) (Output, error) {
			return generate(ctx, m, input)
		},
		function.WithName("workout_generator"),
		function.WithDescription(
			"Generate a complete, personalised workout plan. "+
				"Requires: fitness_level, goals, equipment, injuries, focus_area, and duration_minutes. "+
				"Returns a structured plan with warmup, main exercises (sets/reps/rest), cooldown, and coaching notes."),
	)
}

func generate(ctx context.Context, m model.Model, input Input) (Output, error) {
	duration := input.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	injuries := "none"
	if len(input.Injuries) > 0 {
		injuries = strings.Join(input.Injuries, ", ")
	}
	userMessage := fmt.Sprintf(
		"Create a %d-minute %s workout.\n"+
			"Fitness level: %s\n"+
			"Goals: %s\n"+
			"Equipment: %s\n"+
			"Injuries/limitations: %s",
		duration,
		strings.ReplaceAll(input.FocusArea, "_", " "),
		input.FitnessLevel,
		strings.Join(input.Goals, ", "),
		strings.Join(input.Equipment, ", "),
		injuries,
	)

	planSchema, err := structured.SchemaMap(schema.Generate(reflect.TypeOf(Output{})))
	if err != nil {
		return Output{}, fmt.Errorf("build plan schema: %w", err)
	}

	var out Output
	if err := structured.CallJSON(ctx, m, systemPrompt, userMessage, "workout_plan", planSchema, &out); err != nil {
		return Output{}, err
	}
	return out, nil
}
