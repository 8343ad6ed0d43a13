package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

// InterestRepository implements storage.InterestRepository for BadgerDB.
type InterestRepository struct {
	backend *Backend
}

var _ storage.InterestRepository = (*InterestRepository)(nil)

// NewInterestRepository creates a new InterestRepository.
func NewInterestRepository(backend *Backend) (*InterestRepository, error) {
	return &InterestRepository{
		backend: backend,
	}, nil
}

// Close releases resources. InterestRepository has no resources to release.
func (r *InterestRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *InterestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddInterestContributions adds weight to both scores of each (user, topic)
// row, creating rows where none exist. All rows are written in a single
// transaction.
func (r *InterestRepository) AddInterestContributions(ctx context.Context, userId core.ID, topicIds []core.ID, weight float64) error {
	if err := core.ValidateWeight(weight); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, topicId := range topicIds {
			key := makeInterestKey(userId, topicId)
			interest, err := readInterest(tx, key)
			if err != nil {
				return err
			}

			if interest == nil {
				interest = &core.UserInterest{
					UserId:         userId,
					TopicId:        topicId,
					AggregateScore: weight,
					MemoryScore:    weight,
					InsertedAt:     now,
					UpdatedAt:      now,
				}

				// New row, add the topic index entry
				topicKey := makeInterestTopicKey(topicId, userId)
				if err := tx.Set(topicKey, storage.MarshalID(userId)); err != nil {
					return err
				}
			} else {
				interest.AggregateScore += weight
				interest.MemoryScore += weight
				interest.UpdatedAt = now
			}

			if err := tx.Set(key, storage.MarshalUserInterest(interest)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ApplyInterestUpdate decays and credits a user's ledger rows in one
// transaction. Rows with MemoryScore > 0 lose decayAmount, then each topic
// gains weight on both scores, with new rows and their topic index entries
// created as needed. A failure rolls the whole update back.
func (r *InterestRepository) ApplyInterestUpdate(ctx context.Context, userId core.ID, topicIds []core.ID, decayAmount, weight float64) error {
	if len(topicIds) > 0 {
		if err := core.ValidateWeight(weight); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		interests, err := scanInterests(tx, makePartialInterestKey(userId))
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		byTopic := make(map[core.ID]*core.UserInterest, len(interests))
		dirty := make(map[core.ID]*core.UserInterest)

		for _, interest := range interests {
			byTopic[interest.TopicId] = interest
			if interest.MemoryScore <= 0 {
				continue
			}
			interest.MemoryScore -= decayAmount
			interest.UpdatedAt = now
			dirty[interest.TopicId] = interest
		}

		for _, topicId := range topicIds {
			interest, ok := byTopic[topicId]
			if !ok {
				interest = &core.UserInterest{
					UserId:     userId,
					TopicId:    topicId,
					InsertedAt: now,
				}
				byTopic[topicId] = interest

				// New row, add the topic index entry
				topicKey := makeInterestTopicKey(topicId, userId)
				if err := tx.Set(topicKey, storage.MarshalID(userId)); err != nil {
					return err
				}
			}
			interest.AggregateScore += weight
			interest.MemoryScore += weight
			interest.UpdatedAt = now
			dirty[topicId] = interest
		}

		for _, interest := range dirty {
			key := makeInterestKey(userId, interest.TopicId)
			if err := tx.Set(key, storage.MarshalUserInterest(interest)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// UpdateInterests writes ledger rows back individually, one transaction per
// row. Slower than the bulk path but immune to transaction size limits.
func (r *InterestRepository) UpdateInterests(ctx context.Context, interests ...*core.UserInterest) error {
	for _, interest := range interests {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			interest.UpdatedAt = time.Now().UTC()
			key := makeInterestKey(interest.UserId, interest.TopicId)
			if err := tx.Set(key, storage.MarshalUserInterest(interest)); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetInterests retrieves all interest rows for a user.
func (r *InterestRepository) GetInterests(ctx context.Context, userId core.ID) ([]*core.UserInterest, error) {
	var results []*core.UserInterest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanInterests(tx, makePartialInterestKey(userId))
		return err
	}, false)
	return results, err
}

// GetTopInterests retrieves the user's interest rows ordered by MemoryScore
// descending, truncated to limit. A negative limit returns nothing.
func (r *InterestRepository) GetTopInterests(ctx context.Context, userId core.ID, limit int) ([]*core.UserInterest, error) {
	if limit < 0 {
		limit = 0
	}

	results, err := r.GetInterests(ctx, userId)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.UserInterest) int {
		if a.MemoryScore > b.MemoryScore {
			return -1
		}
		if a.MemoryScore < b.MemoryScore {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// GetInterestsByTopic retrieves all interest rows on a topic, across users.
func (r *InterestRepository) GetInterestsByTopic(ctx context.Context, topicId core.ID) ([]*core.UserInterest, error) {
	var results []*core.UserInterest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialInterestTopicKey(topicId)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our topic prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the user ID from the index
			var userID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				userID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full row
			interest, err := readInterest(tx, makeInterestKey(userID, topicId))
			if err != nil {
				return err
			}
			if interest != nil {
				results = append(results, interest)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// readInterest reads an interest ledger row from the transaction.
func readInterest(tx *badger.Txn, key []byte) (*core.UserInterest, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var interest *core.UserInterest
	err = item.Value(func(val []byte) error {
		var err error
		interest, err = storage.UnmarshalUserInterest(val)
		return err
	})
	return interest, err
}

// scanInterests reads all ledger rows under a partial key.
func scanInterests(tx *badger.Txn, startKey []byte) ([]*core.UserInterest, error) {
	var results []*core.UserInterest

	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()

	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if len(key) < len(startKey) {
			break
		}
		if slices.Compare(key[:len(startKey)], startKey) != 0 {
			break
		}

		var interest *core.UserInterest
		err := iter.Item().Value(func(val []byte) error {
			var err error
			interest, err = storage.UnmarshalUserInterest(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		if interest != nil {
			results = append(results, interest)
		}
	}

	return results, nil
}
