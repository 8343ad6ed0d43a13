// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


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

// QueryExpander implements ai.QueryExpander using OpenAI-compatible chat APIs.
type QueryExpander struct {
	client        llms.Model
	maxExpansions int
	logger        *slog.Logger
}

// expansion is the wrapper structure for the LLM's JSON response.
type expansion struct {
	Statements []string `json:"statements"`
}

// newQueryExpander is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryExpander(config *ai.Config) (*QueryExpander, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/expansion
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExpanderHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExpanderModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryExpander{
		client:        client,
		maxExpansions: config.MaxExpansions,
		logger:        slog.Default().With("component", "openai-expander"),
	}, nil
}

// NewQueryExpander creates a new query expander using the provided configuration.
//
// Returns ai.QueryExpander interface to enforce abstraction.
func NewQueryExpander(config *ai.Config) (ai.QueryExpander, error) {
	return newQueryExpander(config)
}

// ExpandQuery turns a free-text keyword into synthetic ask statements using an LLM.
func (e *QueryExpander) ExpandQuery(ctx context.Context, keyword string) ([]string, error) {
	// Scrub input text
	keyword = scrubString(keyword)

	// Build the system and user prompts
	systemPrompt := buildExpansionPrompt(e.maxExpansions)
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
				llms.TextPart(keyword),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result expansion
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []string{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing expander response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse expander response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Drop empty statements and enforce the expansion cap
	statements := make([]string, 0, len(result.Statements))
	for _, s := range result.Statements {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		statements = append(statements, s)
		if len(statements) >= e.maxExpansions {
			break
		}
	}

	e.logger.Debug("expanded keyword",
		"keyword", keyword,
		"statements", len(statements))

	return statements, nil
}
