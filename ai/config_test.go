package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ExpanderHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.ExpanderModel)
	assert.Equal(t, 5, cfg.MaxExpansions)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ExpanderHost)
		assert.Equal(t, 5, cfg.MaxExpansions)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ExpanderHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithExpanderHost("http://expand:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://expand:9090/v1", cfg.ExpanderHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithExpanderModel("gpt-4o-mini"),
		)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ExpanderModel)
	})

	t.Run("with custom max expansions", func(t *testing.T) {
		cfg := NewConfig(WithMaxExpansions(8))

		assert.Equal(t, 8, cfg.MaxExpansions)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithEmbeddingModel("custom-embed"),
			WithExpanderModel("custom-expand"),
			WithMaxExpansions(7),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ExpanderHost)
		assert.Equal(t, "custom-embed", cfg.EmbeddingModel)
		assert.Equal(t, "custom-expand", cfg.ExpanderModel)
		assert.Equal(t, 7, cfg.MaxExpansions)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name              string
		embeddingHost     string
		expanderHost      string
		expectedEmbedding string
		expectedExpander  string
	}{
		{
			name:              "already has /v1",
			embeddingHost:     "http://localhost:11434/v1",
			expanderHost:      "http://localhost:11434/v1",
			expectedEmbedding: "http://localhost:11434/v1",
			expectedExpander:  "http://localhost:11434/v1",
		},
		{
			name:              "missing /v1",
			embeddingHost:     "http://localhost:11434",
			expanderHost:      "http://localhost:11434",
			expectedEmbedding: "http://localhost:11434/v1",
			expectedExpander:  "http://localhost:11434/v1",
		},
		{
			name:              "has trailing slash",
			embeddingHost:     "http://localhost:11434/",
			expanderHost:      "http://localhost:11434/",
			expectedEmbedding: "http://localhost:11434/v1",
			expectedExpander:  "http://localhost:11434/v1",
		},
		{
			name:              "empty hosts",
			embeddingHost:     "",
			expanderHost:      "",
			expectedEmbedding: "",
			expectedExpander:  "",
		},
		{
			name:              "different formats",
			embeddingHost:     "http://embed:8080",
			expanderHost:      "http://expand:9090/v1",
			expectedEmbedding: "http://embed:8080/v1",
			expectedExpander:  "http://expand:9090/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				EmbeddingHost: tt.embeddingHost,
				ExpanderHost:  tt.expanderHost,
			}

			cfg.Normalize()

			assert.Equal(t, tt.expectedEmbedding, cfg.EmbeddingHost)
			assert.Equal(t, tt.expectedExpander, cfg.ExpanderHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434",
			ExpanderHost:   "http://localhost:11434",
			EmbeddingModel: "embeddinggemma",
			ExpanderModel:  "qwen2.5:3b",
			MaxExpansions:  5,
		}

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ExpanderHost)
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := &Config{
			ExpanderHost:   "http://localhost:11434/v1",
			EmbeddingModel: "embeddinggemma",
			ExpanderModel:  "qwen2.5:3b",
			MaxExpansions:  5,
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing expander host", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434/v1",
			EmbeddingModel: "embeddinggemma",
			ExpanderModel:  "qwen2.5:3b",
			MaxExpansions:  5,
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ExpanderHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost: "http://localhost:11434/v1",
			ExpanderHost:  "http://localhost:11434/v1",
			ExpanderModel: "qwen2.5:3b",
			MaxExpansions: 5,
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("missing expander model", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434/v1",
			ExpanderHost:   "http://localhost:11434/v1",
			EmbeddingModel: "embeddinggemma",
			MaxExpansions:  5,
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ExpanderModel")
	})

	t.Run("invalid max expansions", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434/v1",
			ExpanderHost:   "http://localhost:11434/v1",
			EmbeddingModel: "embeddinggemma",
			ExpanderModel:  "qwen2.5:3b",
			MaxExpansions:  0,
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MaxExpansions")
	})
}
