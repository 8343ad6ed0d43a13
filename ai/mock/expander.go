package mock

import (
	"context"
	"fmt"
	"strings"
)

// MockQueryExpander is a test double for ai.QueryExpander.
// It allows custom behavior injection via function fields.
type MockQueryExpander struct {
	// ExpandQueryFunc is called by ExpandQuery if set.
	// If nil, uses default deterministic behavior.
	ExpandQueryFunc func(ctx context.Context, keyword string) ([]string, error)

	callCount int
}

// NewMockQueryExpander creates a mock expander with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExpander().
func NewMockQueryExpander() *MockQueryExpander {
	return &MockQueryExpander{}
}

// ExpandQuery generates deterministic ask statements from a keyword.
// Default behavior: wraps the keyword in simple ask templates.
func (m *MockQueryExpander) ExpandQuery(ctx context.Context, keyword string) ([]string, error) {
	m.callCount++

	if m.ExpandQueryFunc != nil {
		return m.ExpandQueryFunc(ctx, keyword)
	}

	keyword = strings.TrimSpace(strings.ToLower(keyword))
	if keyword == "" {
		return []string{}, nil
	}

	return []string{
		fmt.Sprintf("looking for help with %s", keyword),
		fmt.Sprintf("wants to learn about %s", keyword),
		fmt.Sprintf("seeking someone experienced in %s", keyword),
	}, nil
}

// CallCount returns the number of times ExpandQuery was called.
func (m *MockQueryExpander) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQueryExpander) Reset() {
	m.callCount = 0
	m.ExpandQueryFunc = nil
}
