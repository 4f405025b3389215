package mocks

import (
	"context"
	"sync"

	"github.com/mdforge/mdforge/internal/ports"
)

// Confirmer is a scripted test double for ports.Confirmer.
type Confirmer struct {
	mu      sync.Mutex
	answer  bool
	prompts []string
}

// NewConfirmer creates a Confirmer answering every prompt with answer.
func NewConfirmer(answer bool) *Confirmer {
	return &Confirmer{answer: answer}
}

// Confirm records the prompt and returns the scripted answer.
func (m *Confirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.answer, nil
}

// Prompts returns every prompt shown so far.
func (m *Confirmer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Ensure Confirmer implements ports.Confirmer.
var _ ports.Confirmer = (*Confirmer)(nil)
