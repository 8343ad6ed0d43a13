package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

// KnowledgeRepository implements storage.KnowledgeRepository for BadgerDB.
type KnowledgeRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.KnowledgeRepository = (*KnowledgeRepository)(nil)

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(backend *Backend) (*KnowledgeRepository, error) {
	idSeq, err := backend.GetSequence(knowledgeIDSeq)
	if err != nil {
		return nil, err
	}

	return &KnowledgeRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *KnowledgeRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *KnowledgeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddKnowledgeItems adds one or more knowledge items to storage.
func (r *KnowledgeRepository) AddKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if err := core.ValidateKnowledgeItem(item); err != nil {
				return err
			}

			if item.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				item.Id = core.ID(nextID)
			}

			if item.InsertedAt.IsZero() {
				item.InsertedAt = time.Now().UTC()
			}
			item.UpdatedAt = item.InsertedAt

			// Store primary record
			key := makeKnowledgeKey(item.Id)
			value := storage.MarshalKnowledgeItem(item)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update owner index
			ownerKey := makeKnowledgeOwnerKey(item.OwnerId, item.Id)
			if err := tx.Set(ownerKey, storage.MarshalID(item.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return items, err
}

// UpdateKnowledgeItems updates existing knowledge items.
func (r *KnowledgeRepository) UpdateKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			key := makeKnowledgeKey(item.Id)

			// Read old item to detect changes
			old, err := r.readKnowledgeItem(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			item.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalKnowledgeItem(item)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update owner index if the owner changed
			if old.OwnerId != item.OwnerId {
				oldOwnerKey := makeKnowledgeOwnerKey(old.OwnerId, old.Id)
				if err := tx.Delete(oldOwnerKey); err != nil {
					return err
				}
				newOwnerKey := makeKnowledgeOwnerKey(item.OwnerId, item.Id)
				if err := tx.Set(newOwnerKey, storage.MarshalID(item.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return items, err
}

// DeleteKnowledgeItems removes knowledge items by their IDs.
func (r *KnowledgeRepository) DeleteKnowledgeItems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeKnowledgeKey(id)

			// Read item to get metadata for index cleanup
			item, err := r.readKnowledgeItem(tx, key)
			if err != nil {
				return err
			}
			if item == nil {
				return storage.ErrNotFound
			}

			// Delete from owner index
			ownerKey := makeKnowledgeOwnerKey(item.OwnerId, item.Id)
			if err := tx.Delete(ownerKey); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetKnowledgeItem retrieves a single knowledge item by ID.
func (r *KnowledgeRepository) GetKnowledgeItem(ctx context.Context, id core.ID) (*core.KnowledgeItem, error) {
	var result *core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeKnowledgeKey(id)
		var err error
		result, err = r.readKnowledgeItem(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetKnowledgeItems retrieves multiple knowledge items by their IDs.
func (r *KnowledgeRepository) GetKnowledgeItems(ctx context.Context, ids ...core.ID) ([]*core.KnowledgeItem, error) {
	var result []*core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeKnowledgeKey(id)
			item, err := r.readKnowledgeItem(tx, key)
			if err != nil {
				return err
			}
			if item != nil {
				result = append(result, item)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetKnowledgeByOwner retrieves all knowledge items owned by the given user.
func (r *KnowledgeRepository) GetKnowledgeByOwner(ctx context.Context, ownerId core.ID) ([]*core.KnowledgeItem, error) {
	var results []*core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialKnowledgeOwnerKey(ownerId)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our owner prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the item ID from the index
			var itemID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				itemID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full item
			itemKey := makeKnowledgeKey(itemID)
			item, err := r.readKnowledgeItem(tx, itemKey)
			if err != nil {
				return err
			}
			if item != nil {
				results = append(results, item)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetAllKnowledgeItems retrieves every knowledge item in storage.
func (r *KnowledgeRepository) GetAllKnowledgeItems(ctx context.Context) ([]*core.KnowledgeItem, error) {
	var results []*core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(knowledgePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip index keys and the sequence key
			if bytes.Equal(key, []byte(knowledgeIDSeq)) ||
				bytes.HasPrefix(key, []byte(knowledgeOwnerPrefix)) {
				continue
			}

			var record *core.KnowledgeItem
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalKnowledgeItem(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	slices.SortFunc(results, func(a, b *core.KnowledgeItem) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	return results, err
}

// MatchKnowledge finds knowledge items similar to the given vector, filtered
// by statement kind and owner exclusion.
func (r *KnowledgeRepository) MatchKnowledge(ctx context.Context, vector []float32, excludeOwners []core.ID, isAsk bool, minSimilarity float32, limit int) ([]*core.KnowledgeMatch, error) {
	var results []*core.KnowledgeMatch

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Iterate through all knowledge items
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(knowledgePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip index keys and the sequence key
			if bytes.Equal(key, []byte(knowledgeIDSeq)) ||
				bytes.HasPrefix(key, []byte(knowledgeOwnerPrefix)) {
				continue
			}

			var record *core.KnowledgeItem
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalKnowledgeItem(val)
				return err
			})
			if err != nil {
				// Skip malformed rows rather than failing the whole scan
				r.backend.logger.Warn("skipping malformed knowledge row", "key", string(key), "error", err)
				continue
			}
			if record == nil {
				continue
			}

			if record.IsAsk != isAsk {
				continue
			}
			if slices.Contains(excludeOwners, record.OwnerId) {
				continue
			}

			// Skip records without embeddings
			if len(record.Vector) == 0 {
				continue
			}

			// Calculate cosine similarity (dot product for normalized vectors)
			similarity := dotProduct(vector, record.Vector)

			// Filter by threshold
			if similarity >= minSimilarity {
				results = append(results, &core.KnowledgeMatch{
					Item:  record,
					Score: similarity,
				})
			}
		}

		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.KnowledgeMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// readKnowledgeItem reads a knowledge item from the transaction.
func (r *KnowledgeRepository) readKnowledgeItem(tx *badger.Txn, key []byte) (*core.KnowledgeItem, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.KnowledgeItem
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalKnowledgeItem(val)
		return unmarshalErr
	})
	return record, err
}
