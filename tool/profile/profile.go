// Package profile provides the user-profile tool: save or load a gym
// user's profile from persistent JSON storage. No model call is made, so
// the agent always works with accurate on-disk data.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentacademy/go-agents/storage/jsonfile"
	"github.com/agentacademy/go-agents/tool/function"
)

// Input selects the action and carries the profile fields. The fields after
// UserID are required only when action is "save".
type Input struct {
	Action string `json:"action" description:"'save' to create/update the profile, 'load' to retrieve it." enum:"save,load"`
	UserID string `json:"user_id" description:"Unique identifier for the user (e.g. username)."`

	Name         string   `json:"name,omitempty" description:"User's full name."`
	Age          *int     `json:"age,omitempty" description:"User's age in years."`
	FitnessLevel string   `json:"fitness_level,omitempty" description:"Current fitness level." enum:"beginner,intermediate,advanced"`
	Goals        []string `json:"goals,omitempty" description:"Fitness goals, e.g. ['lose weight', 'build muscle']."`
	Equipment    []string `json:"equipment,omitempty" description:"Available equipment, e.g. ['dumbbells', 'bodyweight only']."`
	Injuries     []string `json:"injuries,omitempty" description:"Injuries or physical limitations, e.g. ['lower back']. Use [] if none."`
	SessionsPW   *int     `json:"sessions_per_week,omitempty" description:"How many workout sessions per week the user plans."`
}

// Output reports the result. Failures (missing profile, missing fields) are
// surfaced through Success and Message so the tool loop can feed them back
// to the model instead of crashing.
type Output struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Profile *jsonfile.UserProfile `json:"profile,omitempty"`
}

// New creates the user-profile tool over the given store.
func New(store *jsonfile.Store) *function.FunctionTool[Input, Output] {
	return function.New(
		func(_ context.Context, input Input) (Output, error) {
			switch input.Action {
			case "load":
				return load(store, input)
			case "save":
				return save(store, input)
			default:
				return Output{
					Success: false,
					Message: fmt.Sprintf("Unknown action %q. Use 'save' or 'load'.", input.Action),
				}, nil
			}
		},
		function.WithName("user_profile"),
		function.WithDescription(
			"Save or retrieve a user's fitness profile. "+
				"Use action='save' with all profile fields to create or update a profile. "+
				"Use action='load' with just the user_id to retrieve an existing profile."),
	)
}

func load(store *jsonfile.Store, input Input) (Output, error) {
	p, err := store.LoadProfile(input.UserID)
	if err != nil {
		if errors.Is(err, jsonfile.ErrProfileNotFound) {
			return Output{
				Success: false,
				Message: fmt.Sprintf("No profile found for user '%s'. Please save one first.", input.UserID),
			}, nil
		}
		return Output{}, err
	}
	return Output{
		Success: true,
		Message: fmt.Sprintf("Profile loaded for user '%s'.", input.UserID),
		Profile: p,
	}, nil
}

func save(store *jsonfile.Store, input Input) (Output, error) {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Age == nil {
		missing = append(missing, "age")
	}
	if input.FitnessLevel == "" {
		missing = append(missing, "fitness_level")
	}
	if input.Goals == nil {
		missing = append(missing, "goals")
	}
	if input.Equipment == nil {
		missing = append(missing, "equipment")
	}
	if input.SessionsPW == nil {
		missing = append(missing, "sessions_per_week")
	}
	if len(missing) > 0 {
		return Output{
			Success: false,
			Message: fmt.Sprintf("Cannot save profile - missing required fields: %s.",
				strings.Join(missing, ", ")),
		}, nil
	}

	p := &jsonfile.UserProfile{
		UserID:          input.UserID,
		Name:            input.Name,
		Age:             *input.Age,
		FitnessLevel:    input.FitnessLevel,
		Goals:           input.Goals,
		Equipment:       input.Equipment,
		Injuries:        input.Injuries,
		SessionsPerWeek: *input.SessionsPW,
	}
	if err := store.SaveProfile(p); err != nil {
		return Output{}, err
	}
	return Output{
		Success: true,
		Message: fmt.Sprintf("Profile saved for user '%s'.", input.UserID),
		Profile: p,
	}, nil
}
