package badger

import (
	"context"
	"testing"

	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

func TestKnowledgeBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	item := &core.KnowledgeItem{
		OwnerId: 7,
		Text:    "looking for a hiking partner",
		IsAsk:   true,
		Vector:  []float32{0.1, 0.2, 0.3},
	}

	added, err := repos.Knowledge.AddKnowledgeItems(ctx, item)
	if err != nil {
		t.Fatalf("Failed to add knowledge item: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := repos.Knowledge.GetKnowledgeItem(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get knowledge item: %v", err)
	}

	if retrieved.Text != "looking for a hiking partner" {
		t.Fatalf("Unexpected text: %s", retrieved.Text)
	}
	if !retrieved.IsAsk {
		t.Fatal("Expected an ask")
	}
}

func TestKnowledgeByOwner(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Knowledge.AddKnowledgeItems(ctx,
		&core.KnowledgeItem{OwnerId: 1, Text: "ask one", IsAsk: true},
		&core.KnowledgeItem{OwnerId: 1, Text: "offer one"},
		&core.KnowledgeItem{OwnerId: 2, Text: "someone else's ask", IsAsk: true},
	)
	if err != nil {
		t.Fatalf("Failed to add knowledge items: %v", err)
	}

	items, err := repos.Knowledge.GetKnowledgeByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get knowledge by owner: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items for owner 1, got %d", len(items))
	}
	for _, item := range items {
		if item.OwnerId != 1 {
			t.Fatalf("Got item for wrong owner: %d", item.OwnerId)
		}
	}
}

func TestDeleteKnowledgeItems(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Knowledge.AddKnowledgeItems(ctx,
		&core.KnowledgeItem{OwnerId: 1, Text: "to be deleted"})
	if err != nil {
		t.Fatalf("Failed to add knowledge item: %v", err)
	}

	if err := repos.Knowledge.DeleteKnowledgeItems(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete knowledge item: %v", err)
	}

	_, err = repos.Knowledge.GetKnowledgeItem(ctx, added[0].Id)
	if err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Owner index entry should be gone too
	items, err := repos.Knowledge.GetKnowledgeByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get knowledge by owner: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("Expected no items after delete, got %d", len(items))
	}
}

func TestMatchKnowledge(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Knowledge.AddKnowledgeItems(ctx,
		&core.KnowledgeItem{OwnerId: 1, Text: "offers climbing lessons", Vector: []float32{1, 0, 0}},
		&core.KnowledgeItem{OwnerId: 2, Text: "offers cooking lessons", Vector: []float32{0, 1, 0}},
		&core.KnowledgeItem{OwnerId: 3, Text: "wants climbing lessons", IsAsk: true, Vector: []float32{1, 0, 0}},
		&core.KnowledgeItem{OwnerId: 4, Text: "offer without embedding"},
	)
	if err != nil {
		t.Fatalf("Failed to add knowledge items: %v", err)
	}

	// Search offers near the climbing axis
	matches, err := repos.Knowledge.MatchKnowledge(ctx, []float32{1, 0, 0}, nil, false, 0.5, 10)
	if err != nil {
		t.Fatalf("Failed to match knowledge: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Item.Text != "offers climbing lessons" {
		t.Fatalf("Unexpected match: %s", matches[0].Item.Text)
	}
	if matches[0].Score < 0.99 {
		t.Fatalf("Expected score near 1.0, got %f", matches[0].Score)
	}

	// Asks only
	matches, err = repos.Knowledge.MatchKnowledge(ctx, []float32{1, 0, 0}, nil, true, 0.5, 10)
	if err != nil {
		t.Fatalf("Failed to match knowledge: %v", err)
	}
	if len(matches) != 1 || !matches[0].Item.IsAsk {
		t.Fatalf("Expected the single ask, got %d matches", len(matches))
	}

	// Excluded owner drops out
	matches, err = repos.Knowledge.MatchKnowledge(ctx, []float32{1, 0, 0}, []core.ID{1}, false, 0.5, 10)
	if err != nil {
		t.Fatalf("Failed to match knowledge: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("Expected no matches with owner excluded, got %d", len(matches))
	}
}

func TestGetAllKnowledgeItems(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Knowledge.AddKnowledgeItems(ctx,
		&core.KnowledgeItem{OwnerId: 1, Text: "first"},
		&core.KnowledgeItem{OwnerId: 2, Text: "second"},
		&core.KnowledgeItem{OwnerId: 3, Text: "third"},
	)
	if err != nil {
		t.Fatalf("Failed to add knowledge items: %v", err)
	}

	items, err := repos.Knowledge.GetAllKnowledgeItems(ctx)
	if err != nil {
		t.Fatalf("Failed to get all knowledge items: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Id > items[i].Id {
			t.Fatal("Expected items ordered by ID")
		}
	}
}
