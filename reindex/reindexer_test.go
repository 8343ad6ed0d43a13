package reindex

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/kindred/ai/mock"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("succeeds after retry", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			if attempts < 2 {
				return errors.New("temporary error")
			}
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		expected := errors.New("persistent error")
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			return expected
		}, 3, time.Millisecond)
		assert.Equal(t, expected, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("invalid max attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.Equal(t, ErrInvalidMaxAttempts, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		err := RetryWithBackoff(cancelled, func() error {
			cancel()
			return errors.New("error")
		}, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNormalizeVector(t *testing.T) {
	t.Run("normalizes to unit length", func(t *testing.T) {
		// Vector (3, 4) has magnitude 5
		result := NormalizeVector([]float32{3.0, 4.0})
		assert.InDelta(t, 0.6, result[0], 0.001)
		assert.InDelta(t, 0.8, result[1], 0.001)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		result := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, result)
	})

	t.Run("empty vector", func(t *testing.T) {
		result := NormalizeVector(nil)
		assert.Empty(t, result)
	})
}

func TestProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 5)

	// Updates before Start are ignored
	tracker.Update(3)
	assert.Empty(t, buf.String())

	tracker.Start()
	tracker.Update(5)
	assert.Contains(t, buf.String(), "5/10")

	tracker.Finish()
	assert.Contains(t, buf.String(), "10/10")
}

func TestReindexer_Run(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Knowledge.AddKnowledgeItems(ctx,
		&core.KnowledgeItem{OwnerId: 1, Text: "first", IsAsk: true, Vector: []float32{9, 9, 9}},
		&core.KnowledgeItem{OwnerId: 1, Text: "second", IsAsk: false, Vector: []float32{9, 9, 9}})
	require.NoError(t, err)

	_, err = repos.Topics.AddTopics(ctx,
		&core.Topic{Name: "climbing", Description: "rock climbing", Vector: []float32{9, 9, 9}})
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		result := make([][]float32, len(texts))
		for i := range texts {
			result[i] = []float32{1.0, 2.0, 2.0} // magnitude 3, gets normalized
		}
		return result, nil
	}

	var progress bytes.Buffer
	reindexer := NewReindexer(repos.Knowledge, repos.Topics, repos.Checkpoints, embedder,
		&Config{BatchSize: 1, ReportInterval: 1, MaxRetries: 3, RetryDelay: time.Millisecond},
		&progress)

	err = reindexer.Run(ctx)
	require.NoError(t, err)

	// Items carry new normalized vectors
	items, err := repos.Knowledge.GetKnowledgeItems(ctx, added[0].Id, added[1].Id)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		var magnitude float32
		for _, v := range item.Vector {
			magnitude += v * v
		}
		assert.InDelta(t, 1.0, magnitude, 0.01, "vector should be normalized")
	}

	// Topics were re-embedded too
	topics, err := repos.Topics.GetAllTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.InDelta(t, 1.0/3.0, topics[0].Vector[0], 0.001)

	// Checkpoint was reset so the next run starts fresh
	checkpoint, err := repos.Checkpoints.LoadCheckpoint(ctx, checkpointType)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, core.ID(0), checkpoint.LastId)
}

func TestReindexer_ResumesFromCheckpoint(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Knowledge.AddKnowledgeItems(ctx,
		&core.KnowledgeItem{OwnerId: 1, Text: "already done", IsAsk: true, Vector: []float32{1, 0, 0}},
		&core.KnowledgeItem{OwnerId: 1, Text: "still pending", IsAsk: true, Vector: []float32{1, 0, 0}})
	require.NoError(t, err)

	// Simulate an interrupted run that finished the first item
	err = repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: checkpointType,
		LastId:        added[0].Id,
		UpdatedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)

	var embedded []string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embedded = append(embedded, texts...)
		result := make([][]float32, len(texts))
		for i := range texts {
			result[i] = []float32{0, 1, 0}
		}
		return result, nil
	}

	var progress bytes.Buffer
	reindexer := NewReindexer(repos.Knowledge, repos.Topics, repos.Checkpoints, embedder, nil, &progress)

	err = reindexer.Run(ctx)
	require.NoError(t, err)

	// Only the pending item was re-embedded
	assert.Equal(t, []string{"still pending"}, embedded)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	processor := NewBatchProcessor(repos.Knowledge, mock.NewMockEmbedder(), 3, time.Millisecond)
	err = processor.Process(context.Background(), nil)
	require.NoError(t, err, "empty batch should not error")
}

func TestBatchProcessor_EmbeddingError(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Knowledge.AddKnowledgeItems(ctx,
		&core.KnowledgeItem{OwnerId: 1, Text: "statement", IsAsk: true})
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding error")
	}

	processor := NewBatchProcessor(repos.Knowledge, embedder, 2, time.Millisecond)
	err = processor.Process(ctx, added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding error")
}
