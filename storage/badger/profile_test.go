package badger

import (
	"context"
	"testing"

	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

func TestProfileUpsert(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	profile := &core.Profile{
		Id:          7,
		Name:        "Alex",
		Description: "software engineer who climbs",
	}

	if _, err := repos.Profiles.UpsertProfile(ctx, profile); err != nil {
		t.Fatalf("Failed to upsert profile: %v", err)
	}

	retrieved, err := repos.Profiles.GetProfile(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.Name != "Alex" {
		t.Fatalf("Unexpected name: %s", retrieved.Name)
	}
	inserted := retrieved.InsertedAt

	// Replace keeps InsertedAt
	profile.Description = "climber who writes software"
	if _, err := repos.Profiles.UpsertProfile(ctx, profile); err != nil {
		t.Fatalf("Failed to upsert profile: %v", err)
	}

	retrieved, err = repos.Profiles.GetProfile(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.Description != "climber who writes software" {
		t.Fatalf("Unexpected description: %s", retrieved.Description)
	}
	if !retrieved.InsertedAt.Equal(inserted) {
		t.Fatal("Expected InsertedAt preserved across upsert")
	}
}

func TestProfileNotFound(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	if _, err := repos.Profiles.GetProfile(ctx, 999); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := repos.Profiles.DeleteProfile(ctx, 999); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	// No checkpoint yet
	loaded, err := repos.Checkpoints.LoadCheckpoint(ctx, "reindex")
	if err != nil {
		t.Fatalf("Failed to load checkpoint: %v", err)
	}
	if loaded != nil {
		t.Fatal("Expected no checkpoint")
	}

	err = repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: "reindex",
		LastId:        1234,
	})
	if err != nil {
		t.Fatalf("Failed to save checkpoint: %v", err)
	}

	loaded, err = repos.Checkpoints.LoadCheckpoint(ctx, "reindex")
	if err != nil {
		t.Fatalf("Failed to load checkpoint: %v", err)
	}
	if loaded == nil || loaded.LastId != 1234 {
		t.Fatalf("Unexpected checkpoint: %+v", loaded)
	}
}
