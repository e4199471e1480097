package agents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drinkingman/internal/models/providers"
	"drinkingman/internal/monitoring"
)

// AgentRole names the persona an agent speaks as
type AgentRole string

const (
	RoleDrinkingMan AgentRole = "drinkingman"
)

// ErrMissingCredential means no provider could be built, so the service
// cannot be invoked at all
var ErrMissingCredential = providers.ErrMissingCredential

// ErrMalformedReply means the model answered with text that does not decode
// into the expected shape
var ErrMalformedReply = errors.New("malformed language model reply")

// BaseAgent provides common functionality for all agents
type BaseAgent struct {
	role     AgentRole
	provider providers.Provider
	config   providers.GenerationConfig
	timeout  time.Duration
	monitor  *monitoring.Monitor
}

// NewBaseAgent creates a new base agent. provider may be nil, in which case
// every call fails with ErrMissingCredential.
func NewBaseAgent(role AgentRole, provider providers.Provider, config providers.GenerationConfig, timeout time.Duration, monitor *monitoring.Monitor) *BaseAgent {
	return &BaseAgent{
		role:     role,
		provider: provider,
		config:   config,
		timeout:  timeout,
		monitor:  monitor,
	}
}

// GetRole returns the agent's role
func (a *BaseAgent) GetRole() AgentRole {
	return a.role
}

// Available reports whether the agent has a provider to talk to
func (a *BaseAgent) Available() bool {
	return a.provider != nil
}

// generate performs one call under the agent timeout. kind labels the
// generation metrics; success is recorded by the caller once the reply is
// known to be usable.
func (a *BaseAgent) generate(ctx context.Context, kind, prompt string, config providers.GenerationConfig) (string, time.Duration, error) {
	if a.provider == nil {
		a.monitor.RecordGeneration(kind, monitoring.OutcomeMissingCredential, 0)
		return "", 0, ErrMissingCredential
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := a.provider.Generate(ctx, prompt, config)
	elapsed := time.Since(start)
	if err != nil {
		a.monitor.RecordGeneration(kind, monitoring.OutcomeUpstreamError, elapsed)
		return "", elapsed, fmt.Errorf("%s generation via %s: %w", kind, a.provider.Name(), err)
	}
	return text, elapsed, nil
}
