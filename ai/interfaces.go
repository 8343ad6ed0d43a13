package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryExpander turns a free-text keyword into synthetic ask statements.
// A keyword like "climbing" expands into statements such as "looking for a
// climbing partner" so it can be matched against stored offers the same way
// real asks are. Implementations must be thread-safe for concurrent use.
type QueryExpander interface {
	// ExpandQuery generates ask statements for the given keyword.
	// Returns an empty slice if the keyword yields nothing usable.
	// Returns an error if expansion fails.
	ExpandQuery(ctx context.Context, keyword string) ([]string, error)
}

// StatementSuggester proposes asks and offers a user with a sparse knowledge
// set would plausibly have, based on their profile description. Suggested
// statements are used for the current search only and never persisted.
// Implementations must be thread-safe for concurrent use.
type StatementSuggester interface {
	// SuggestStatements generates plausible asks and offers from a profile
	// description. Either slice may be empty.
	// Returns an error if suggestion fails.
	SuggestStatements(ctx context.Context, description string) (asks, offers []string, err error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, QueryExpander and StatementSuggester
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryExpander returns the keyword expansion service.
	// The returned QueryExpander is safe for concurrent use.
	QueryExpander() QueryExpander

	// StatementSuggester returns the statement suggestion service.
	// The returned StatementSuggester is safe for concurrent use.
	StatementSuggester() StatementSuggester

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
