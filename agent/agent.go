// Package agent defines the common contract for orchestrator agents.
//
// Agents sequence model calls and tool executions. Each concrete agent
// exposes its own typed entry point (Summarize, ProcessMessage, ...); the
// shared interface covers identity and tool inventory only.
package agent

import "github.com/agentacademy/go-agents/tool"

// Info describes an agent.
type Info struct {
	Name        string
	Description string
}

// Agent is implemented by all orchestrator agents.
type Agent interface {
	// Info returns the agent's name and description.
	Info() Info
	// Tools returns the tools the agent can invoke.
	Tools() []tool.Tool
}
