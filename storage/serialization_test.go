package storage

import (
	"testing"
	"time"

	"github.com/poiesic/kindred/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalKnowledgeItem(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		item *core.KnowledgeItem
	}{
		{
			name: "minimal ask",
			item: &core.KnowledgeItem{
				Id:         core.ID(1),
				OwnerId:    core.ID(7),
				Text:       "looking for a hiking partner",
				IsAsk:      true,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "offer with vector and topics",
			item: &core.KnowledgeItem{
				Id:         core.ID(2),
				OwnerId:    core.ID(7),
				Text:       "can review Go code",
				IsAsk:      false,
				Vector:     []float32{0.1, 0.2, 0.3, 0.4, 0.5},
				TopicIds:   []core.ID{10, 20},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode text",
			item: &core.KnowledgeItem{
				Id:         core.ID(3),
				OwnerId:    core.ID(8),
				Text:       "cherche partenaire d'escalade 🧗",
				IsAsk:      true,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "full embedding size",
			item: &core.KnowledgeItem{
				Id:         core.ID(4),
				OwnerId:    core.ID(9),
				Text:       "offers long-form writing feedback",
				Vector:     make([]float32, 1536), // typical OpenAI embedding size
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalKnowledgeItem(tt.item)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalKnowledgeItem(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.item.Id, decoded.Id)
			assert.Equal(t, tt.item.OwnerId, decoded.OwnerId)
			assert.Equal(t, tt.item.Text, decoded.Text)
			assert.Equal(t, tt.item.IsAsk, decoded.IsAsk)
			assert.True(t, tt.item.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.item.UpdatedAt.Equal(decoded.UpdatedAt))
			// Handle nil vs empty slice
			if len(tt.item.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.item.Vector, decoded.Vector)
			}
			if len(tt.item.TopicIds) == 0 {
				assert.Empty(t, decoded.TopicIds)
			} else {
				assert.Equal(t, tt.item.TopicIds, decoded.TopicIds)
			}
		})
	}
}

func TestUnmarshalKnowledgeItem_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalKnowledgeItem(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalTopic(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	topic := &core.Topic{
		Id:           core.IDFromContent("rock climbing"),
		Name:         "rock climbing",
		Description:  "indoor and outdoor climbing, bouldering, rope work",
		Vector:       []float32{0.1, 0.2, 0.3, 0.4},
		MentionCount: 12,
		InsertedAt:   now,
		UpdatedAt:    now,
	}

	data := MarshalTopic(topic)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalTopic(data)
	require.NoError(t, err)
	assert.Equal(t, topic.Id, decoded.Id)
	assert.Equal(t, topic.Name, decoded.Name)
	assert.Equal(t, topic.Description, decoded.Description)
	assert.Equal(t, topic.Vector, decoded.Vector)
	assert.Equal(t, topic.MentionCount, decoded.MentionCount)
	assert.True(t, topic.InsertedAt.Equal(decoded.InsertedAt))
	assert.True(t, topic.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestMarshalUnmarshalUserInterest(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name     string
		interest *core.UserInterest
	}{
		{
			name: "positive scores",
			interest: &core.UserInterest{
				UserId:         core.ID(7),
				TopicId:        core.ID(10),
				AggregateScore: 6.2,
				MemoryScore:    2.9,
				InsertedAt:     now,
				UpdatedAt:      now,
			},
		},
		{
			name: "negative memory score",
			interest: &core.UserInterest{
				UserId:         core.ID(7),
				TopicId:        core.ID(11),
				AggregateScore: 0.1,
				MemoryScore:    -0.05,
				InsertedAt:     now,
				UpdatedAt:      now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalUserInterest(tt.interest)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalUserInterest(data)
			require.NoError(t, err)
			assert.Equal(t, tt.interest.UserId, decoded.UserId)
			assert.Equal(t, tt.interest.TopicId, decoded.TopicId)
			assert.Equal(t, tt.interest.AggregateScore, decoded.AggregateScore)
			assert.Equal(t, tt.interest.MemoryScore, decoded.MemoryScore)
		})
	}
}

func TestMarshalUnmarshalProfile(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	profile := &core.Profile{
		Id:          core.ID(7),
		Name:        "Alex",
		Description: "software engineer who climbs",
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	data := MarshalProfile(profile)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalProfile(data)
	require.NoError(t, err)
	assert.Equal(t, profile.Id, decoded.Id)
	assert.Equal(t, profile.Name, decoded.Name)
	assert.Equal(t, profile.Description, decoded.Description)
}

func TestSerializerSkip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	item := core.KnowledgeItem{
		Id:         core.ID(1),
		OwnerId:    core.ID(7),
		Text:       "can review Go code",
		Vector:     []float32{0.1, 0.2, 0.3},
		TopicIds:   []core.ID{10, 20},
		InsertedAt: now,
		UpdatedAt:  now,
	}
	interest := core.UserInterest{
		UserId:         core.ID(7),
		TopicId:        core.ID(10),
		AggregateScore: 6.2,
		MemoryScore:    -0.05,
		InsertedAt:     now,
		UpdatedAt:      now,
	}

	// Two records back to back: skipping the first must land exactly on
	// the second.
	bs := make([]byte, core.KnowledgeItemMUS.Size(item)+core.UserInterestMUS.Size(interest))
	n := core.KnowledgeItemMUS.Marshal(item, bs)
	core.UserInterestMUS.Marshal(interest, bs[n:])

	skipped, err := core.KnowledgeItemMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)

	decoded, _, err := core.UserInterestMUS.Unmarshal(bs[skipped:])
	require.NoError(t, err)
	assert.Equal(t, interest.TopicId, decoded.TopicId)
	assert.Equal(t, interest.MemoryScore, decoded.MemoryScore)

	t.Run("truncated data", func(t *testing.T) {
		_, err := core.KnowledgeItemMUS.Skip(bs[:2])
		assert.Error(t, err)
	})
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	checkpoint := &core.Checkpoint{
		ProcessorType: "reindex",
		LastId:        core.ID(1234),
		UpdatedAt:     now,
	}

	data := MarshalCheckpoint(checkpoint)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	assert.Equal(t, checkpoint.ProcessorType, decoded.ProcessorType)
	assert.Equal(t, checkpoint.LastId, decoded.LastId)
	assert.True(t, checkpoint.UpdatedAt.Equal(decoded.UpdatedAt))
}
