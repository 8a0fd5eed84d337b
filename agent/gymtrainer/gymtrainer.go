// Package gymtrainer provides Coach AI, a conversational personal trainer.
//
// The agent runs a bounded tool-calling loop: it sends the conversation to
// the model, executes any tools the model requests, feeds the results back,
// and repeats until the model answers in plain text. History is persisted
// through a session.Service so conversations survive across calls.
package gymtrainer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agentacademy/go-agents/agent"
	"github.com/agentacademy/go-agents/log"
	"github.com/agentacademy/go-agents/model"
	"github.com/agentacademy/go-agents/session"
	"github.com/agentacademy/go-agents/session/inmemory"
	"github.com/agentacademy/go-agents/storage/jsonfile"
	"github.com/agentacademy/go-agents/tool"
	"github.com/agentacademy/go-agents/tool/feedback"
	"github.com/agentacademy/go-agents/tool/profile"
	"github.com/agentacademy/go-agents/tool/progress"
	"github.com/agentacademy/go-agents/tool/workout"
)

const systemPrompt = `You are Coach AI, a friendly, motivating, and knowledgeable personal gym trainer.
You help users achieve their fitness goals through personalised coaching.

You have four tools at your disposal:
- user_profile      : save or load a user's fitness profile (always do this first)
- workout_generator : create a tailored workout plan
- progress_tracker  : log a completed workout and track progress
- feedback_adapter  : adapt the training plan based on user feedback

Guidelines
----------
1. Always ask for the user's name/user_id before calling any tool.
2. Before generating a workout, load the user's profile (action="load").
   If no profile exists, collect: name, age, fitness level, goals, equipment,
   injuries, and sessions per week - then save it (action="save").
3. When logging a session, ask for: exercises done (name, sets, reps, weight),
   energy level (1-5), difficulty rating (1-5), and optional notes.
4. Be encouraging, specific, and concise. Use the user's name when you know it.
5. After tool calls, explain results in plain, motivating language - don't just
   dump raw JSON at the user.`

// DefaultMaxIterations bounds the tool loop within one user turn.
const DefaultMaxIterations = 8

// ErrMaxIterations is returned when the model keeps requesting tools past
// the iteration bound.
var ErrMaxIterations = errors.New("tool loop exceeded iteration limit")

// Option configures the agent.
type Option func(*Agent)

// WithMaxIterations sets the tool-loop bound for one user turn.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		a.maxIterations = n
	}
}

// WithSessionService replaces the default in-memory session service.
func WithSessionService(svc session.Service) Option {
	return func(a *Agent) {
		a.sessions = svc
	}
}

// WithGenerationConfig sets the generation parameters for coach replies.
func WithGenerationConfig(cfg model.GenerationConfig) Option {
	return func(a *Agent) {
		a.genConfig = cfg
	}
}

// Agent is the conversational gym trainer.
type Agent struct {
	model         model.Model
	tools         map[string]tool.CallableTool
	sessions      session.Service
	maxIterations int
	genConfig     model.GenerationConfig
}

// New creates a gym trainer agent. The store backs the profile, progress
// and feedback tools; m powers both the conversation and the tools'
// structured calls.
func New(m model.Model, store *jsonfile.Store, opts ...Option) *Agent {
	a := &Agent{
		model:         m,
		sessions:      inmemory.NewService(),
		maxIterations: DefaultMaxIterations,
		tools: map[string]tool.CallableTool{
			"user_profile":      profile.New(store),
			"workout_generator": workout.New(m),
			"progress_tracker":  progress.New(m, store),
			"feedback_adapter":  feedback.New(m, store),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Info implements agent.Agent.
func (a *Agent) Info() agent.Info {
	return agent.Info{
		Name:        "gym-trainer",
		Description: "Coach AI: a conversational personal trainer with profile, workout, progress and feedback tools.",
	}
}

// Tools implements agent.Agent.
func (a *Agent) Tools() []tool.Tool {
	result := make([]tool.Tool, 0, len(a.tools))
	for _, t := range a.tools {
		result = append(result, t)
	}
	return result
}

// SessionService exposes the agent's session backend, e.g. for inspection
// in example programs.
func (a *Agent) SessionService() session.Service {
	return a.sessions
}

// ProcessMessage handles one user turn: it appends the message to the
// session, runs the tool loop until the model replies in plain text, and
// returns that reply. Unknown tools and tool failures are fed back to the
// model as JSON error payloads rather than aborting the turn.
func (a *Agent) ProcessMessage(ctx context.Context, key session.Key, text string) (string, error) {
	sess, err := a.ensureSession(ctx, key)
	if err != nil {
		return "", err
	}
	key.SessionID = sess.ID

	userMessage := model.NewUserMessage(text)
	if err := a.sessions.AppendMessages(ctx, key, userMessage); err != nil {
		return "", fmt.Errorf("record user message: %w", err)
	}
	messages := append(sess.Messages, userMessage)

	for i := 0; i < a.maxIterations; i++ {
		request := &model.Request{
			Messages:         append([]model.Message{model.NewSystemMessage(systemPrompt)}, messages...),
			GenerationConfig: a.genConfig,
			Tools:            a.declarableTools(),
		}
		response, err := a.model.GenerateContent(ctx, request)
		if err != nil {
			return "", fmt.Errorf("model call failed: %w", err)
		}
		if response.Error != nil {
			return "", fmt.Errorf("model returned error: %s", response.Error.Message)
		}

		assistant := model.Message{Role: model.RoleAssistant}
		if len(response.Choices) > 0 {
			assistant = response.Choices[0].Message
		}
		messages = append(messages, assistant)
		if err := a.sessions.AppendMessages(ctx, key, assistant); err != nil {
			return "", fmt.Errorf("record assistant message: %w", err)
		}

		if !response.IsToolCallResponse() {
			return assistant.Content, nil
		}

		for _, call := range response.ToolCalls() {
			resultMessage := model.NewToolMessage(call.ID, a.executeTool(ctx, call))
			messages = append(messages, resultMessage)
			if err := a.sessions.AppendMessages(ctx, key, resultMessage); err != nil {
				return "", fmt.Errorf("record tool result: %w", err)
			}
		}
	}

	return "", fmt.Errorf("%w (%d)", ErrMaxIterations, a.maxIterations)
}

// executeTool looks up the requested tool, runs it, and returns the result
// as JSON. Failures become {"error": ...} payloads for the model to react to.
func (a *Agent) executeTool(ctx context.Context, call model.ToolCall) string {
	name := call.Function.Name
	t, ok := a.tools[name]
	if !ok {
		log.Warnf("gymtrainer: model requested unknown tool %q", name)
		return errorPayload(fmt.Sprintf("Unknown tool: %s", name))
	}
	log.Debugf("gymtrainer: executing tool %s", name)

	result, err := t.Call(ctx, call.Function.Arguments)
	if err != nil {
		log.Warnf("gymtrainer: tool %s failed: %v", name, err)
		return errorPayload(err.Error())
	}
	data, err := json.Marshal(result)
	if err != nil {
		return errorPayload(fmt.Sprintf("encode %s result: %v", name, err))
	}
	return string(data)
}

func errorPayload(message string) string {
	data, _ := json.Marshal(map[string]string{"error": message})
	return string(data)
}

func (a *Agent) declarableTools() map[string]tool.Tool {
	result := make(map[string]tool.Tool, len(a.tools))
	for name, t := range a.tools {
		result[name] = t
	}
	return result
}

func (a *Agent) ensureSession(ctx context.Context, key session.Key) (*session.Session, error) {
	if key.SessionID != "" {
		sess, err := a.sessions.GetSession(ctx, key)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
	}
	sess, err := a.sessions.CreateSession(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}
