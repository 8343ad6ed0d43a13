package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/poiesic/kindred/ai"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

// embeddingProcessorType names the checkpoint row for embedding enrichment.
const embeddingProcessorType = "ingest-embeddings"

// embeddingProcessor generates embeddings for stored knowledge items.
type embeddingProcessor struct {
	knowledgeRepository  storage.KnowledgeRepository
	checkpointRepository storage.CheckpointRepository
	embedder             ai.Embedder
	lastID               core.ID
	logger               *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(knowledgeRepository storage.KnowledgeRepository, checkpointRepository storage.CheckpointRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if knowledgeRepository == nil {
		return nil, fmt.Errorf("knowledge repository required")
	}
	if checkpointRepository == nil {
		return nil, fmt.Errorf("checkpoint repository required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		knowledgeRepository:  knowledgeRepository,
		checkpointRepository: checkpointRepository,
		embedder:             embedder,
		logger:               logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified knowledge items.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing items for embeddings", "items", len(ids))

	// Sort first so checkpointing works correctly
	slices.Sort(ids)

	items, err := ep.knowledgeRepository.GetKnowledgeItems(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving knowledge items", "err", err)
		return err
	}
	if len(items) == 0 {
		return nil
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}

	ep.logger.Debug("generating embeddings for knowledge items", "items", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(items) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(items), len(embeddings))
	}

	for i := range embeddings {
		items[i].Vector = embeddings[i]
	}

	updated, err := ep.knowledgeRepository.UpdateKnowledgeItems(ctx, items...)
	if err != nil {
		return err
	}

	highestID := updated[len(updated)-1].Id
	if highestID > ep.lastID {
		ep.lastID = highestID
	}

	return nil
}

// checkpoint saves the highest processed item id.
func (ep *embeddingProcessor) checkpoint() error {
	if ep.lastID == 0 {
		return nil
	}
	return ep.checkpointRepository.SaveCheckpoint(context.Background(), &core.Checkpoint{
		ProcessorType: embeddingProcessorType,
		LastId:        ep.lastID,
		UpdatedAt:     time.Now().UTC(),
	})
}
