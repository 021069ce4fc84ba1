package server

import (
	"sync"

	"github.com/google/uuid"

	chatx "github.com/maticstudio/chat-agent/agent/chat"
)

// AgentFactory builds a fresh agent for a new session.
type AgentFactory func() (*chatx.Agent, error)

// SessionManager hands out one agent per session id so conversation memory
// never leaks across callers.
type SessionManager struct {
	mu      sync.Mutex
	agents  map[string]*chatx.Agent
	factory AgentFactory
}

func NewSessionManager(factory AgentFactory) *SessionManager {
	return &SessionManager{
		agents:  make(map[string]*chatx.Agent),
		factory: factory,
	}
}

// Acquire returns the agent bound to the session id, creating both when the
// id is blank or unknown. The returned id is always non-empty.
func (s *SessionManager) Acquire(sessionID string) (*chatx.Agent, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if agent, ok := s.agents[sessionID]; ok {
		return agent, sessionID, nil
	}

	agent, err := s.factory()
	if err != nil {
		return nil, "", err
	}
	s.agents[sessionID] = agent
	return agent, sessionID, nil
}

// Drop forgets a session and its memory.
func (s *SessionManager) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.agents, sessionID)
}

// Len reports the number of live sessions.
func (s *SessionManager) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agents)
}
