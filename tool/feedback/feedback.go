// Package feedback provides the feedback-adapter tool: it reads recent
// workout history and the user's free-text feedback, then asks the model
// whether training intensity should change and how.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/agentacademy/go-agents/internal/schema"
	"github.com/agentacademy/go-agents/internal/structured"
	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/storage/jsonfile"
	"github.com/agentacademy/go-agents/tool/function"
)

const systemPrompt = `You are an expert personal trainer analysing a client's recent workout history and
feedback. Determine whether the training intensity should increase, decrease, or
stay the same. Provide specific, actionable recommendations for the next sessions
and an encouraging message to keep the client motivated.`

const recentWindow = 5

// Input carries the user id and their free-text feedback.
type Input struct {
	UserID       string `json:"user_id" description:"The user's unique identifier."`
	UserFeedback string `json:"user_feedback" description:"The user's free-text feedback about their recent workouts, e.g. 'workouts feel too easy', 'I'm always sore for days', 'loving the progress'."`
}

// Output is the model's adaptation plan.
type Output struct {
	IntensityAdjustment     string   `json:"intensity_adjustment" description:"Whether to increase, decrease, or maintain current training intensity." enum:"increase,decrease,maintain"`
	AdjustedRecommendations []string `json:"adjusted_recommendations" description:"Specific changes to make to future workouts."`
	MotivationMessage       string   `json:"motivation_message" description:"An encouraging personalised message."`
	NextWorkoutSuggestions  []string `json:"next_workout_suggestions" description:"Concrete suggestions for the next 1-2 workout sessions."`
}

// New creates the feedback-adapter tool over the given store and model.
func New(m model.Model, store *jsonfile.Store) *function.FunctionTool[Input, Output] {
	return function.New(
		func(ctx context.Context, input Input) (Output, error) {
			return adapt(ctx, m, store, input)
		},
		function.WithName("feedback_adapter"),
		function.WithDescription(
			"Analyse the user's recent workout history and feedback to adapt their training plan. "+
				"Requires: user_id and user_feedback (free text describing how recent workouts felt). "+
				"Returns an intensity adjustment direction, specific recommendations, a motivational "+
				"message, and suggestions for the next sessions."),
	)
}

func adapt(ctx context.Context, m model.Model, store *jsonfile.Store, input Input) (Output, error) {
	sessions, err := store.LoadSessions(input.UserID)
	if err != nil {
		return Output{}, fmt.Errorf("load history: %w", err)
	}
	if len(sessions) > recentWindow {
		sessions = sessions[len(sessions)-recentWindow:]
	}

	history := "No sessions logged yet."
	if len(sessions) > 0 {
		data, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return Output{}, fmt.Errorf("encode history: %w", err)
		}
		history = string(data)
	}

	userMessage := fmt.Sprintf(
		"User feedback: %s\n\nRecent workout history (last %d sessions):\n%s",
		input.UserFeedback, len(sessions), history)

	adaptSchema, err := structured.SchemaMap(schema.Generate(reflect.TypeOf(Output{})))
	if err != nil {
		return Output{}, fmt.Errorf("build adaptation schema: %w", err)
	}

	var out Output
	if err := structured.CallJSON(ctx, m, systemPrompt, userMessage, "feedback_adaptation", adaptSchema, &out); err != nil {
		return Output{}, err
	}
	return out, nil
}
