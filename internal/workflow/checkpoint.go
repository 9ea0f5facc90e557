package workflow

import (
	"context"
	"errors"
	"sync"
)

// ErrThreadNotFound is returned when resuming or reading an unknown thread.
var ErrThreadNotFound = errors.New("workflow: thread not found")

// Checkpoint is the persisted snapshot of one conversation thread: the full
// state plus where execution stands in the graph.
type Checkpoint struct {
	State State `json:"state"`
	// Current is the last node that executed; empty before the first step.
	Current Node `json:"current,omitempty"`
	// Pending names a node the engine paused in front of and has not run
	// yet.
	Pending Node `json:"pending,omitempty"`
	Done    bool `json:"done,omitempty"`
}

// CheckpointStore persists checkpoints keyed by thread ID. Get returns
// ErrThreadNotFound for unknown threads.
type CheckpointStore interface {
	Put(ctx context.Context, threadID string, cp Checkpoint) error
	Get(ctx context.Context, threadID string) (Checkpoint, error)
}

// MemoryCheckpoints is the default in-process checkpoint store.
type MemoryCheckpoints struct {
	mu      sync.RWMutex
	threads map[string]Checkpoint
}

// NewMemoryCheckpoints creates an empty in-memory checkpoint store.
func NewMemoryCheckpoints() *MemoryCheckpoints {
	return &MemoryCheckpoints{threads: make(map[string]Checkpoint)}
}

func (m *MemoryCheckpoints) Put(ctx context.Context, threadID string, cp Checkpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threads[threadID] = cp
	return nil
}

func (m *MemoryCheckpoints) Get(ctx context.Context, threadID string) (Checkpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp, ok := m.threads[threadID]
	if !ok {
		return Checkpoint{}, ErrThreadNotFound
	}
	return cp, nil
}
