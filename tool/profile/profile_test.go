package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentacademy/go-agents/storage/jsonfile"
)

func callTool(t *testing.T, pt interface {
	Call(ctx context.Context, jsonArgs []byte) (any, error)
}, args string) Output {
	t.Helper()
	result, err := pt.Call(context.Background(), []byte(args))
	require.NoError(t, err)
	out, ok := result.(Output)
	require.True(t, ok)
	return out
}

func TestSaveThenLoad(t *testing.T) {
	store := jsonfile.NewStore(t.TempDir())
	pt := New(store)

	out := callTool(t, pt, `{
		"action": "save",
		"user_id": "sam",
		"name": "Sam",
		"age": 29,
		"fitness_level": "intermediate",
		"goals": ["build muscle"],
		"equipment": ["dumbbells"],
		"sessions_per_week": 3
	}`)
	require.True(t, out.Success)
	assert.Contains(t, out.Message, "saved")
	require.NotNil(t, out.Profile)
	assert.Equal(t, "Sam", out.Profile.Name)

	out = callTool(t, pt, `{"action":"load","user_id":"sam"}`)
	require.True(t, out.Success)
	require.NotNil(t, out.Profile)
	assert.Equal(t, 29, out.Profile.Age)
	assert.Equal(t, []string{"dumbbells"}, out.Profile.Equipment)
}

func TestLoadMissingProfile(t *testing.T) {
	pt := New(jsonfile.NewStore(t.TempDir()))

	out := callTool(t, pt, `{"action":"load","user_id":"nobody"}`)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "No profile found")
	assert.Nil(t, out.Profile)
}

func TestSaveMissingFields(t *testing.T) {
	pt := New(jsonfile.NewStore(t.TempDir()))

	out := callTool(t, pt, `{"action":"save","user_id":"sam","name":"Sam"}`)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "missing required fields")
	assert.Contains(t, out.Message, "age")
	assert.Contains(t, out.Message, "fitness_level")
	assert.Contains(t, out.Message, "sessions_per_week")
	assert.NotContains(t, out.Message, "name,")
}

func TestUnknownAction(t *testing.T) {
	pt := New(jsonfile.NewStore(t.TempDir()))

	out := callTool(t, pt, `{"action":"delete","user_id":"sam"}`)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "Unknown action")
}

func TestDeclaration(t *testing.T) {
	pt := New(jsonfile.NewStore(t.TempDir()))
	decl := pt.Declaration()

	assert.Equal(t, "user_profile", decl.Name)
	require.NotNil(t, decl.InputSchema)
	assert.ElementsMatch(t, []string{"action", "user_id"}, decl.InputSchema.Required)
	require.Contains(t, decl.InputSchema.Properties, "action")
	assert.ElementsMatch(t, []string{"save", "load"}, decl.InputSchema.Properties["action"].Enum)
	require.Contains(t, decl.InputSchema.Properties, "fitness_level")
	assert.Contains(t, decl.InputSchema.Properties["fitness_level"].Enum, "beginner")
}
