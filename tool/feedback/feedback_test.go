package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/storage/jsonfile"
)

type fakeModel struct {
	content  string
	requests []*model.Request
}

func (f *fakeModel) Info() model.Info { return model.Info{Name: "fake"} }

func (f *fakeModel) GenerateContent(_ context.Context, req *model.Request) (*model.Response, error) {
	f.requests = append(f.requests, req)
	return &model.Response{
		Choices: []model.Choice{{Message: model.NewAssistantMessage(f.content)}},
	}, nil
}

const adaptationJSON = `{
	"intensity_adjustment": "increase",
	"adjusted_recommendations": ["add a fourth set"],
	"motivation_message": "You are crushing it!",
	"next_workout_suggestions": ["heavier dumbbell press"]
}`

func TestAdaptWithHistory(t *testing.T) {
	store := jsonfile.NewStore(t.TempDir())
	require.NoError(t, store.SaveSession("sam", jsonfile.WorkoutSession{
		Date: "2026-08-25", FocusArea: "upper body", DurationMinutes: 45,
		EnergyLevel: 5, DifficultyRating: 2,
	}))

	fake := &fakeModel{content: adaptationJSON}
	ft := New(fake, store)

	result, err := ft.Call(context.Background(),
		[]byte(`{"user_id":"sam","user_feedback":"workouts feel too easy"}`))
	require.NoError(t, err)
	out, ok := result.(Output)
	require.True(t, ok)
	assert.Equal(t, "increase", out.IntensityAdjustment)
	assert.Equal(t, []string{"add a fourth set"}, out.AdjustedRecommendations)

	user := fake.requests[0].Messages[1].Content
	assert.Contains(t, user, "workouts feel too easy")
	assert.Contains(t, user, "upper body")
	assert.Contains(t, user, "last 1 sessions")
}

func TestAdaptWithoutHistory(t *testing.T) {
	fake := &fakeModel{content: adaptationJSON}
	ft := New(fake, jsonfile.NewStore(t.TempDir()))

	_, err := ft.Call(context.Background(),
		[]byte(`{"user_id":"new","user_feedback":"just getting started"}`))
	require.NoError(t, err)
	assert.Contains(t, fake.requests[0].Messages[1].Content, "No sessions logged yet.")
}

func TestAdaptKeepsOnlyRecentSessions(t *testing.T) {
	store := jsonfile.NewStore(t.TempDir())
	for i := 0; i < 7; i++ {
		require.NoError(t, store.SaveSession("sam", jsonfile.WorkoutSession{
			Date: "2026-08-19", FocusArea: "legs", DurationMinutes: 20 + i,
		}))
	}

	fake := &fakeModel{content: adaptationJSON}
	ft := New(fake, store)

	_, err := ft.Call(context.Background(),
		[]byte(`{"user_id":"sam","user_feedback":"fine"}`))
	require.NoError(t, err)
	user := fake.requests[0].Messages[1].Content
	assert.Contains(t, user, "last 5 sessions")
	// The two oldest sessions (durations 20 and 21) fall outside the window.
	assert.NotContains(t, user, `"duration_minutes": 20,`)
	assert.Contains(t, user, `"duration_minutes": 26`)
}

func TestDeclaration(t *testing.T) {
	decl := New(&fakeModel{}, jsonfile.NewStore(t.TempDir())).Declaration()
	assert.Equal(t, "feedback_adapter", decl.Name)
	assert.ElementsMatch(t, []string{"user_id", "user_feedback"}, decl.InputSchema.Required)
	require.NotNil(t, decl.OutputSchema)
	assert.Contains(t, decl.OutputSchema.Properties["intensity_adjustment"].Enum, "maintain")
}
