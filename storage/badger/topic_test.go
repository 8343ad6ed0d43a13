package badger

import (
	"context"
	"testing"

	"github.com/poiesic/kindred/core"
)

func TestTopicBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	topic := &core.Topic{
		Name:        "rock climbing",
		Description: "indoor and outdoor climbing, bouldering, rope work",
		Vector:      []float32{0.1, 0.2, 0.3},
	}

	added, err := repos.Topics.AddTopics(ctx, topic)
	if err != nil {
		t.Fatalf("Failed to add topic: %v", err)
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := repos.Topics.GetTopic(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get topic: %v", err)
	}
	if retrieved.Name != "rock climbing" {
		t.Fatalf("Unexpected name: %s", retrieved.Name)
	}

	found, err := repos.Topics.FindTopicByName(ctx, "rock climbing")
	if err != nil {
		t.Fatalf("Failed to find topic by name: %v", err)
	}
	if found.Id != added[0].Id {
		t.Fatalf("Expected ID %d, got %d", added[0].Id, found.Id)
	}
}

func TestGetOrCreateTopic_MergesSimilar(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	vector := []float32{1, 0, 0}
	topic1, err := repos.Topics.GetOrCreateTopic(ctx, "climbing", "climbing in all its forms", vector)
	if err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}
	if topic1.MentionCount != 1 {
		t.Fatalf("Expected mention count 1, got %d", topic1.MentionCount)
	}

	// A near-identical description merges into the existing topic
	topic2, err := repos.Topics.GetOrCreateTopic(ctx, "rock climbing", "all kinds of climbing", []float32{0.99, 0.1, 0})
	if err != nil {
		t.Fatalf("Failed to get or create topic: %v", err)
	}
	if topic1.Id != topic2.Id {
		t.Fatalf("Expected merge into topic %d, got %d", topic1.Id, topic2.Id)
	}
	if topic2.MentionCount != 2 {
		t.Fatalf("Expected mention count 2, got %d", topic2.MentionCount)
	}
}

func TestGetOrCreateTopic_CreatesDistinct(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	topic1, err := repos.Topics.GetOrCreateTopic(ctx, "climbing", "climbing", []float32{1, 0, 0})
	if err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}

	// An orthogonal description creates a new topic
	topic2, err := repos.Topics.GetOrCreateTopic(ctx, "baking", "bread and pastry", []float32{0, 1, 0})
	if err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}

	if topic1.Id == topic2.Id {
		t.Fatal("Expected distinct topics")
	}

	all, err := repos.Topics.GetAllTopics(ctx)
	if err != nil {
		t.Fatalf("Failed to get all topics: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(all))
	}
}

func TestMatchTopics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Topics.AddTopics(ctx,
		&core.Topic{Name: "climbing", Description: "climbing", Vector: []float32{1, 0, 0}},
		&core.Topic{Name: "baking", Description: "baking", Vector: []float32{0, 1, 0}},
		&core.Topic{Name: "mountaineering", Description: "alpine climbing", Vector: []float32{0.9, 0.1, 0}},
	)
	if err != nil {
		t.Fatalf("Failed to add topics: %v", err)
	}

	matches, err := repos.Topics.MatchTopics(ctx, []float32{1, 0, 0}, 0.8, 10)
	if err != nil {
		t.Fatalf("Failed to match topics: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Topic.Name != "climbing" {
		t.Fatalf("Expected best match first, got %s", matches[0].Topic.Name)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatal("Expected matches sorted by score descending")
	}
}
