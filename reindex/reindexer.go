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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/kindred/ai"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

// checkpointType names the checkpoint row for the knowledge reindex pass.
const checkpointType = "reindex-knowledge"

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of items to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of items)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer re-embeds all knowledge items and topics in a database, for use
// after an embedding model change. An interrupted run resumes from the last
// completed knowledge batch via a persisted checkpoint.
type Reindexer struct {
	knowledgeRepo  storage.KnowledgeRepository
	topicRepo      storage.TopicRepository
	checkpointRepo storage.CheckpointRepository
	embedder       ai.Embedder
	config         *Config
	progress       io.Writer
	processor      *BatchProcessor
	topicProcessor *TopicBatchProcessor
	iterator       *KnowledgeIterator
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(
	knowledgeRepo storage.KnowledgeRepository,
	topicRepo storage.TopicRepository,
	checkpointRepo storage.CheckpointRepository,
	embedder ai.Embedder,
	config *Config,
	progress io.Writer,
) *Reindexer {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reindexer{
		knowledgeRepo:  knowledgeRepo,
		topicRepo:      topicRepo,
		checkpointRepo: checkpointRepo,
		embedder:       embedder,
		config:         config,
		progress:       progress,
		processor:      NewBatchProcessor(knowledgeRepo, embedder, config.MaxRetries, config.RetryDelay),
		topicProcessor: NewTopicBatchProcessor(topicRepo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:       NewKnowledgeIterator(knowledgeRepo, config.BatchSize),
	}
}

// Run executes the reindexing operation: every knowledge item and every
// topic is re-embedded with the configured embedder. Progress is reported
// to the configured writer. A checkpoint is saved after each knowledge
// batch; if the run is interrupted, the next Run picks up where it stopped.
// The checkpoint is reset on successful completion.
func (r *Reindexer) Run(ctx context.Context) error {
	resumeAfter, err := r.loadCheckpoint(ctx)
	if err != nil {
		return err
	}

	allItems, err := r.knowledgeRepo.GetAllKnowledgeItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to query items: %w", err)
	}

	totalItems := len(allItems)
	if totalItems == 0 {
		fmt.Fprintf(r.progress, "No knowledge items found in database (0 items)\n")
	} else {
		if resumeAfter > 0 {
			fmt.Fprintf(r.progress, "Resuming reindexing after item %d\n", resumeAfter)
		}
		fmt.Fprintf(r.progress, "Starting reindexing of %d items (batch size: %d)\n",
			totalItems, r.config.BatchSize)

		tracker := NewProgressTracker(r.progress, totalItems, r.config.ReportInterval)
		tracker.Start()

		processed := 0
		err = r.iterator.ForEach(ctx, resumeAfter, func(items []*core.KnowledgeItem) error {
			if err := r.processor.Process(ctx, items); err != nil {
				return fmt.Errorf("failed to process batch: %w", err)
			}

			processed += len(items)
			tracker.Update(processed)

			return r.saveCheckpoint(ctx, items[len(items)-1].Id)
		})
		if err != nil {
			return err
		}

		tracker.Finish()

		elapsed := tracker.Elapsed()
		fmt.Fprintf(r.progress, "Reindexing complete. Processed %d items in %v (%.1f items/sec)\n",
			processed, elapsed.Round(time.Second), float64(processed)/elapsed.Seconds())
	}

	if err := r.reindexTopics(ctx); err != nil {
		return err
	}

	// Reset so the next run starts from the beginning
	return r.saveCheckpoint(ctx, 0)
}

// reindexTopics re-embeds every topic description in batches.
func (r *Reindexer) reindexTopics(ctx context.Context) error {
	topics, err := r.topicRepo.GetAllTopics(ctx)
	if err != nil {
		return fmt.Errorf("failed to query topics: %w", err)
	}

	if len(topics) == 0 {
		return nil
	}

	fmt.Fprintf(r.progress, "Reindexing %d topics\n", len(topics))

	for i := 0; i < len(topics); i += r.config.BatchSize {
		end := i + r.config.BatchSize
		if end > len(topics) {
			end = len(topics)
		}
		if err := r.topicProcessor.Process(ctx, topics[i:end]); err != nil {
			return fmt.Errorf("failed to process topic batch: %w", err)
		}
	}

	return nil
}

func (r *Reindexer) loadCheckpoint(ctx context.Context) (core.ID, error) {
	checkpoint, err := r.checkpointRepo.LoadCheckpoint(ctx, checkpointType)
	if err != nil {
		return 0, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if checkpoint == nil {
		return 0, nil
	}
	return checkpoint.LastId, nil
}

func (r *Reindexer) saveCheckpoint(ctx context.Context, lastId core.ID) error {
	return r.checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: checkpointType,
		LastId:        lastId,
		UpdatedAt:     time.Now().UTC(),
	})
}
