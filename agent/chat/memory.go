package chat

import (
	"sync"

	contractx "github.com/maticstudio/chat-agent/agent/contract"
)

// Memory is the ordered, append-only turn log for one agent instance. It
// grows by exactly two entries per completed turn and is cleared only by
// Reset. The mutex makes concurrent turns against a shared agent append
// atomically instead of interleaving.
type Memory struct {
	mu    sync.Mutex
	turns []contractx.Turn
}

func NewMemory() *Memory {
	return &Memory{}
}

// AppendTurn records one completed (user, assistant) exchange.
func (m *Memory) AppendTurn(userInput, assistantReply string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns,
		contractx.Turn{Role: "user", Content: userInput},
		contractx.Turn{Role: "assistant", Content: assistantReply},
	)
}

// Snapshot returns a copy of the current history in insertion order.
func (m *Memory) Snapshot() []contractx.Turn {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]contractx.Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

func (m *Memory) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// Reset discards all history. The next turn sends no prior context.
func (m *Memory) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}
