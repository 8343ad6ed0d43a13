package storage

import (
	"context"

	"github.com/poiesic/kindred/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// KnowledgeRepository provides operations for managing knowledge items and
// nearest-neighbor queries over their embeddings.
//
// Similarity convention: cosine similarity in [0,1] over normalized vectors
// (1 = identical). Threshold parameters are minimum similarity, i.e.
// 1 - distance of the original distance-threshold convention.
type KnowledgeRepository interface {
	Repository
	// AddKnowledgeItems adds one or more knowledge items to storage.
	// For items with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the items with generated IDs and timestamps populated.
	AddKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error)

	// UpdateKnowledgeItems updates existing knowledge items.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any item doesn't exist.
	UpdateKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error)

	// DeleteKnowledgeItems removes knowledge items by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteKnowledgeItems(ctx context.Context, ids ...core.ID) error

	// GetKnowledgeItem retrieves a single knowledge item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetKnowledgeItem(ctx context.Context, id core.ID) (*core.KnowledgeItem, error)

	// GetKnowledgeItems retrieves multiple knowledge items by their IDs.
	// Returns only the items that exist (no error for missing items).
	GetKnowledgeItems(ctx context.Context, ids ...core.ID) ([]*core.KnowledgeItem, error)

	// GetKnowledgeByOwner retrieves all knowledge items (asks and offers)
	// owned by the given user.
	GetKnowledgeByOwner(ctx context.Context, ownerId core.ID) ([]*core.KnowledgeItem, error)

	// GetAllKnowledgeItems retrieves every knowledge item in storage,
	// ordered by ID. Intended for maintenance jobs such as reindexing.
	GetAllKnowledgeItems(ctx context.Context) ([]*core.KnowledgeItem, error)

	// MatchKnowledge finds knowledge items similar to the given vector,
	// filtered to asks (isAsk=true) or offers (isAsk=false), excluding
	// items owned by any of excludeOwners. Returns items with similarity
	// >= minSimilarity, up to limit results, ordered by similarity
	// (highest first). Items with missing or malformed vectors are skipped.
	MatchKnowledge(ctx context.Context, vector []float32, excludeOwners []core.ID, isAsk bool, minSimilarity float32, limit int) ([]*core.KnowledgeMatch, error)
}

// TopicRepository provides operations for managing topics.
type TopicRepository interface {
	Repository
	// AddTopics adds one or more topics to storage.
	// Uses content-based IDs (IDFromContent of the topic name) when unset.
	// Sets InsertedAt timestamp if not already set.
	AddTopics(ctx context.Context, topics ...*core.Topic) ([]*core.Topic, error)

	// UpdateTopics updates existing topics.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any topic doesn't exist.
	UpdateTopics(ctx context.Context, topics ...*core.Topic) ([]*core.Topic, error)

	// GetTopic retrieves a single topic by ID.
	// Returns ErrNotFound if the topic doesn't exist.
	GetTopic(ctx context.Context, id core.ID) (*core.Topic, error)

	// GetTopics retrieves multiple topics by their IDs.
	// Returns only the topics that exist (no error for missing topics).
	GetTopics(ctx context.Context, ids ...core.ID) ([]*core.Topic, error)

	// FindTopicByName finds a topic by its exact name.
	// Returns ErrNotFound if no matching topic exists.
	FindTopicByName(ctx context.Context, name string) (*core.Topic, error)

	// GetAllTopics retrieves all topics from storage.
	GetAllTopics(ctx context.Context) ([]*core.Topic, error)

	// MatchTopics finds topics whose description embeddings are similar to
	// the given vector. Returns topics with similarity >= minSimilarity, up
	// to limit results, ordered by similarity (highest first).
	MatchTopics(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.TopicMatch, error)

	// GetOrCreateTopic finds or creates a topic for the given description
	// embedding. If an existing topic's description embedding is at least
	// core.MergeSimilarity similar, that topic is returned with its
	// MentionCount incremented; otherwise a new topic is created.
	// Thread-safe: handles concurrent creation attempts.
	GetOrCreateTopic(ctx context.Context, name, description string, vector []float32) (*core.Topic, error)
}

// InterestRepository provides operations for the per-(user, topic) interest
// ledger. Rows are created on first contribution and never deleted.
type InterestRepository interface {
	Repository
	// ApplyInterestUpdate performs one full ledger update in a single
	// transaction: every row of the user with MemoryScore > 0 is decayed
	// by decayAmount, then weight is added to both AggregateScore and
	// MemoryScore of each (userId, topicId) row, creating rows where none
	// exist. Either the whole update lands or none of it does.
	ApplyInterestUpdate(ctx context.Context, userId core.ID, topicIds []core.ID, decayAmount, weight float64) error

	// AddInterestContributions adds weight to both AggregateScore and
	// MemoryScore for each (userId, topicId) row, creating rows with both
	// scores equal to weight where none exist. All rows for one user are
	// written in a single transaction.
	AddInterestContributions(ctx context.Context, userId core.ID, topicIds []core.ID, weight float64) error

	// UpdateInterests writes ledger rows back individually. Used by the
	// manual per-row fallback when the transactional path fails.
	UpdateInterests(ctx context.Context, interests ...*core.UserInterest) error

	// GetInterests retrieves all interest rows for a user.
	GetInterests(ctx context.Context, userId core.ID) ([]*core.UserInterest, error)

	// GetTopInterests retrieves the user's interest rows ordered by
	// MemoryScore descending, truncated to limit.
	GetTopInterests(ctx context.Context, userId core.ID, limit int) ([]*core.UserInterest, error)

	// GetInterestsByTopic retrieves all interest rows on a topic, across
	// users. Used to find candidates holding interest in expanded topics.
	GetInterestsByTopic(ctx context.Context, topicId core.ID) ([]*core.UserInterest, error)
}

// ProfileRepository provides operations for user profiles.
type ProfileRepository interface {
	Repository
	// UpsertProfile creates or replaces a profile.
	// Sets InsertedAt on creation and UpdatedAt always.
	UpsertProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error)

	// GetProfile retrieves a profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.Profile, error)

	// DeleteProfile removes a profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	DeleteProfile(ctx context.Context, id core.ID) error
}

// CheckpointRepository provides persistence for processor checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}
