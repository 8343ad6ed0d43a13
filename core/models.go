package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// KnowledgeItem is an atomic statement owned by a single user: either an
// ask (something the user is seeking) or an offer (something the user can
// provide). Items are immutable once extracted; the extraction collaborator
// creates them and the matching engine consumes them read-only.
//
// An item with Id == 0 is synthetic: proposed by an LLM for the current
// search only, with no persisted knowledge backing it. Synthetic items
// participate in matching identically to stored items.
type KnowledgeItem struct {
	Id         ID
	OwnerId    ID
	Text       string
	IsAsk      bool
	Vector     []float32 // Embedding vector (populated by processors)
	TopicIds   []ID      // Topics this statement was tagged with
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Synthetic reports whether the item was proposed for the current search
// only, with no persisted knowledge backing it.
func (k *KnowledgeItem) Synthetic() bool {
	return k.Id == 0
}

// Topic is a deduplicated semantic category shared across users. A candidate
// topic whose description embedding is at least MergeSimilarity similar to an
// existing topic is merged into it rather than duplicated.
type Topic struct {
	Id           ID
	Name         string
	Description  string
	Vector       []float32 // Embedding of the description (populated by processors)
	MentionCount int64
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// MergeSimilarity is the cosine similarity at or above which a candidate
// topic is merged into an existing one instead of creating a new row.
const MergeSimilarity float32 = 0.8

// UserInterest tracks one user's interest in one topic.
// AggregateScore is a monotonic lifetime total; MemoryScore is a decaying
// recency signal and may go negative. Rows are created on first
// contribution and never deleted.
type UserInterest struct {
	UserId         ID
	TopicId        ID
	AggregateScore float64
	MemoryScore    float64
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// Profile is the identity anchor for a user. A search for a user without a
// profile is fatal and returns empty results.
type Profile struct {
	Id          ID
	Name        string
	Description string
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// KnowledgeMatch is a knowledge item returned by vector similarity search.
type KnowledgeMatch struct {
	Item  *KnowledgeItem
	Score float32
}

// TopicMatch is a topic returned by vector similarity search.
type TopicMatch struct {
	Topic *Topic
	Score float32
}

// MatchEvidence records why one statement matched another. It is produced
// per search and never persisted. StatementId or MatchedId may be 0 when the
// statement is synthetic.
type MatchEvidence struct {
	Statement   string
	StatementId ID
	Matched     string
	MatchedId   ID
	Similarity  float64
}

// TopicEvidence records that a candidate holds an interest in a topic
// reached by expanding the searcher's topic set. SourceTopicId names the
// searcher topic the expansion came from; it exists purely for explanation
// and has no effect on scoring.
type TopicEvidence struct {
	TopicId       ID
	SourceTopicId ID
	Similarity    float64
}

// MatchResult is one ranked candidate from a search, with the full evidence
// trail that produced its score.
type MatchResult struct {
	UserId           ID
	Score            float64
	ForwardScore     float64
	BackwardScore    float64
	ForwardEvidence  []MatchEvidence
	BackwardEvidence []MatchEvidence
	TopicEvidence    []TopicEvidence
}

// Checkpoint records how far a long-running processor has advanced, so it
// can resume after interruption.
type Checkpoint struct {
	ProcessorType string
	LastId        ID
	UpdatedAt     time.Time
}
