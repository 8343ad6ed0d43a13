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

// TopicRepository implements storage.TopicRepository for BadgerDB.
type TopicRepository struct {
	backend *Backend
}

var _ storage.TopicRepository = (*TopicRepository)(nil)

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(backend *Backend) (*TopicRepository, error) {
	return &TopicRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TopicRepository has no resources to release.
func (r *TopicRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TopicRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTopics adds one or more topics to storage.
func (r *TopicRepository) AddTopics(ctx context.Context, topics ...*core.Topic) ([]*core.Topic, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, topic := range topics {
			if err := core.ValidateTopic(topic); err != nil {
				return err
			}

			// Use content-based ID if not set
			if topic.Id == 0 {
				topic.Id = core.IDFromContent(topic.Name)
			}

			// Set timestamps
			if topic.InsertedAt.IsZero() {
				topic.InsertedAt = time.Now().UTC()
			}
			topic.UpdatedAt = topic.InsertedAt

			// Store primary record
			key := makeTopicKey(topic.Id)
			value := storage.MarshalTopic(topic)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store name index
			nameKey := makeTopicNameKey(topic.Name)
			if err := tx.Set(nameKey, storage.MarshalID(topic.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return topics, err
}

// UpdateTopics updates existing topics.
func (r *TopicRepository) UpdateTopics(ctx context.Context, topics ...*core.Topic) ([]*core.Topic, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, topic := range topics {
			key := makeTopicKey(topic.Id)

			// Read old topic to detect changes
			old, err := readTopic(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			topic.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalTopic(topic)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update name index if the name changed
			if old.Name != topic.Name {
				oldNameKey := makeTopicNameKey(old.Name)
				if err := tx.Delete(oldNameKey); err != nil {
					return err
				}
				newNameKey := makeTopicNameKey(topic.Name)
				if err := tx.Set(newNameKey, storage.MarshalID(topic.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return topics, err
}

// GetTopic retrieves a single topic by ID.
func (r *TopicRepository) GetTopic(ctx context.Context, id core.ID) (*core.Topic, error) {
	var result *core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTopicKey(id)
		var err error
		result, err = readTopic(tx, key)
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

// GetTopics retrieves multiple topics by their IDs.
func (r *TopicRepository) GetTopics(ctx context.Context, ids ...core.ID) ([]*core.Topic, error) {
	var result []*core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTopicKey(id)
			topic, err := readTopic(tx, key)
			if err != nil {
				return err
			}
			if topic != nil {
				result = append(result, topic)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindTopicByName finds a topic by its exact name.
func (r *TopicRepository) FindTopicByName(ctx context.Context, name string) (*core.Topic, error) {
	var result *core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Look up ID from name index
		nameKey := makeTopicNameKey(name)
		item, err := tx.Get(nameKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var topicID core.ID
		err = item.Value(func(val []byte) error {
			topicID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		// Look up full topic
		topicKey := makeTopicKey(topicID)
		result, err = readTopic(tx, topicKey)
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

// GetAllTopics retrieves all topics from storage.
func (r *TopicRepository) GetAllTopics(ctx context.Context) ([]*core.Topic, error) {
	var results []*core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(topicPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Stop if we've moved past topic keys
			if !hasPrefix(key, prefix) {
				break
			}

			var topic *core.Topic
			err := item.Value(func(val []byte) error {
				var err error
				topic, err = storage.UnmarshalTopic(val)
				return err
			})
			if err != nil {
				return err
			}

			if topic != nil {
				results = append(results, topic)
			}
		}
		return nil
	}, false)

	return results, err
}

// MatchTopics finds topics whose description embeddings are similar to the
// given vector.
func (r *TopicRepository) MatchTopics(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.TopicMatch, error) {
	var results []*core.TopicMatch

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(topicPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip the name index and the sequence key
			if bytes.Equal(key, []byte(topicIDSeq)) {
				continue
			}
			if !hasPrefix(key, []byte(topicPrefix+":")) {
				continue
			}

			var topic *core.Topic
			err := item.Value(func(val []byte) error {
				var err error
				topic, err = storage.UnmarshalTopic(val)
				return err
			})
			if err != nil {
				return err
			}
			if topic == nil {
				continue
			}

			// Skip topics without embeddings
			if len(topic.Vector) == 0 {
				continue
			}

			similarity := dotProduct(vector, topic.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.TopicMatch{
					Topic: topic,
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
	slices.SortFunc(results, func(a, b *core.TopicMatch) int {
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

// GetOrCreateTopic finds or creates a topic for the given description
// embedding. An existing topic at or above core.MergeSimilarity absorbs the
// mention instead of creating a duplicate.
func (r *TopicRepository) GetOrCreateTopic(ctx context.Context, name, description string, vector []float32) (*core.Topic, error) {
	matches, err := r.MatchTopics(ctx, vector, core.MergeSimilarity, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		existing := matches[0].Topic
		existing.MentionCount++
		updated, err := r.UpdateTopics(ctx, existing)
		if err != nil {
			return nil, err
		}
		return updated[0], nil
	}

	newTopic := &core.Topic{
		Id:           core.IDFromContent(name),
		Name:         name,
		Description:  description,
		Vector:       vector,
		MentionCount: 1,
	}

	// Try to add it (may fail due to race condition)
	added, err := r.AddTopics(ctx, newTopic)
	if err != nil {
		// If add failed, try to find it again (someone else may have created it)
		topic, findErr := r.FindTopicByName(ctx, name)
		if findErr == nil {
			return topic, nil
		}
		return nil, err
	}

	return added[0], nil
}

// readTopic reads a topic from the transaction.
func readTopic(tx *badger.Txn, key []byte) (*core.Topic, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var topic *core.Topic
	err = item.Value(func(val []byte) error {
		var err error
		topic, err = storage.UnmarshalTopic(val)
		return err
	})
	return topic, err
}
