package llm

import (
	"context"
	"sync"
)

// Mock is a scripted Generator for tests. Replies are returned in
// order; once exhausted the last reply repeats. A non-nil Err makes
// every call fail.
type Mock struct {
	mu      sync.Mutex
	Replies []string
	Err     error
	Calls   []MockCall
}

// MockCall records the prompts of one Generate invocation.
type MockCall struct {
	SystemPrompt string
	UserPrompt   string
}

// Generate returns the next scripted reply or the configured error.
func (m *Mock) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt})
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Replies) == 0 {
		return "", ErrEmptyCompletion
	}
	reply := m.Replies[0]
	if len(m.Replies) > 1 {
		m.Replies = m.Replies[1:]
	}
	return reply, nil
}

// CallCount returns the number of Generate invocations so far.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ Generator = (*Mock)(nil)
