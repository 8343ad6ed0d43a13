package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/kindred/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// StatementSuggester implements ai.StatementSuggester using OpenAI-compatible chat APIs.
type StatementSuggester struct {
	client llms.Model
	logger *slog.Logger
}

// suggestion is the wrapper structure for the LLM's JSON response.
type suggestion struct {
	Asks   []string `json:"asks"`
	Offers []string `json:"offers"`
}

// newStatementSuggester is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newStatementSuggester(config *ai.Config) (*StatementSuggester, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExpanderHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExpanderModel),
	)
	if err != nil {
		return nil, err
	}

	return &StatementSuggester{
		client: client,
		logger: slog.Default().With("component", "openai-suggester"),
	}, nil
}

// NewStatementSuggester creates a new statement suggester using the provided configuration.
//
// Returns ai.StatementSuggester interface to enforce abstraction.
func NewStatementSuggester(config *ai.Config) (ai.StatementSuggester, error) {
	return newStatementSuggester(config)
}

// SuggestStatements proposes plausible asks and offers from a profile description.
func (s *StatementSuggester) SuggestStatements(ctx context.Context, description string) ([]string, []string, error) {
	systemPrompt := buildSuggestionPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(strings.TrimSpace(description)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result suggestion
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, nil, err
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model")
			return []string{}, []string{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			s.logger.Warn("error parsing suggester response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to parse suggester response after retries", "err", lastErr)
		return nil, nil, lastErr
	}

	asks := trimStatements(result.Asks)
	offers := trimStatements(result.Offers)

	s.logger.Debug("suggested statements",
		"asks", len(asks),
		"offers", len(offers))

	return asks, offers, nil
}

// trimStatements drops empty entries and trims whitespace.
func trimStatements(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
