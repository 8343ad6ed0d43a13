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

	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

const (
	// DefaultBatchSize is the default number of items to fetch in each batch
	DefaultBatchSize = 100
)

// KnowledgeIterator iterates over knowledge items in batches, ordered by id.
type KnowledgeIterator struct {
	repo      storage.KnowledgeRepository
	batchSize int
}

// NewKnowledgeIterator creates a new knowledge iterator.
// batchSize: number of items to fetch in each batch (must be > 0)
func NewKnowledgeIterator(repo storage.KnowledgeRepository, batchSize int) *KnowledgeIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &KnowledgeIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all knowledge items with id greater than resumeAfter,
// calling fn for each batch. Iteration stops on first error from fn or when
// all items are processed. Context cancellation is checked between batches.
func (it *KnowledgeIterator) ForEach(ctx context.Context, resumeAfter core.ID, fn func([]*core.KnowledgeItem) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, err := it.repo.GetAllKnowledgeItems(ctx)
	if err != nil {
		return err
	}

	// Skip items already processed in an earlier, interrupted run
	if resumeAfter > 0 {
		skip := 0
		for skip < len(items) && items[skip].Id <= resumeAfter {
			skip++
		}
		items = items[skip:]
	}

	if len(items) == 0 {
		// Nothing to process
		return nil
	}

	// Process items in batches of batchSize
	for i := 0; i < len(items); i += it.batchSize {
		end := i + it.batchSize
		if end > len(items) {
			end = len(items)
		}

		batch := items[i:end]

		// Call user function with batch
		if err := fn(batch); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
