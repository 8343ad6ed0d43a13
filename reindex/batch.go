package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/kindred/ai"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

// BatchProcessor handles embedding generation for batches of knowledge items.
type BatchProcessor struct {
	repo           storage.KnowledgeRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.KnowledgeRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of items and updates them in the database.
// Vectors are normalized after embedding to ensure compatibility with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, items []*core.KnowledgeItem) error {
	if len(items) == 0 {
		return nil
	}

	// Extract text content
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(items) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(items), len(embeddings))
	}

	// Normalize vectors and assign to items
	for i := range items {
		items[i].Vector = NormalizeVector(embeddings[i])
	}

	// Update items in database
	_, err = bp.repo.UpdateKnowledgeItems(ctx, items...)
	if err != nil {
		return fmt.Errorf("failed to update items: %w", err)
	}

	return nil
}

// TopicBatchProcessor handles embedding generation for batches of topics.
// Topic embeddings are computed from their descriptions.
type TopicBatchProcessor struct {
	repo           storage.TopicRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewTopicBatchProcessor creates a new topic batch processor.
func NewTopicBatchProcessor(repo storage.TopicRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *TopicBatchProcessor {
	return &TopicBatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process regenerates description embeddings for a batch of topics.
func (tp *TopicBatchProcessor) Process(ctx context.Context, topics []*core.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	descriptions := make([]string, len(topics))
	for i, topic := range topics {
		descriptions[i] = topic.Description
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = tp.embedder.EmbedTexts(ctx, descriptions)
		return err
	}, tp.maxRetries, tp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate topic embeddings after %d attempts: %w", tp.maxRetries, err)
	}

	if len(embeddings) != len(topics) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(topics), len(embeddings))
	}

	for i := range topics {
		topics[i].Vector = NormalizeVector(embeddings[i])
	}

	_, err = tp.repo.UpdateTopics(ctx, topics...)
	if err != nil {
		return fmt.Errorf("failed to update topics: %w", err)
	}

	return nil
}
