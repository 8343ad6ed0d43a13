package mock

import (
	"context"
	"fmt"
	"strings"
)

// MockStatementSuggester is a test double for ai.StatementSuggester.
// It allows custom behavior injection via function fields.
type MockStatementSuggester struct {
	// SuggestStatementsFunc is called by SuggestStatements if set.
	// If nil, uses default deterministic behavior.
	SuggestStatementsFunc func(ctx context.Context, description string) (asks, offers []string, err error)

	callCount int
}

// NewMockStatementSuggester creates a mock suggester with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockSuggester().
func NewMockStatementSuggester() *MockStatementSuggester {
	return &MockStatementSuggester{}
}

// SuggestStatements generates deterministic asks and offers from a profile
// description. Default behavior: one ask and one offer built from the first
// few words of the description.
func (m *MockStatementSuggester) SuggestStatements(ctx context.Context, description string) ([]string, []string, error) {
	m.callCount++

	if m.SuggestStatementsFunc != nil {
		return m.SuggestStatementsFunc(ctx, description)
	}

	words := strings.Fields(strings.ToLower(description))
	if len(words) == 0 {
		return []string{}, []string{}, nil
	}

	subject := words[0]
	if len(words) > 2 {
		subject = strings.Join(words[:3], " ")
	}

	asks := []string{fmt.Sprintf("wants to connect over %s", subject)}
	offers := []string{fmt.Sprintf("can share experience with %s", subject)}
	return asks, offers, nil
}

// CallCount returns the number of times SuggestStatements was called.
func (m *MockStatementSuggester) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockStatementSuggester) Reset() {
	m.callCount = 0
	m.SuggestStatementsFunc = nil
}
