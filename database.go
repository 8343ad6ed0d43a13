// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package kindred

import (
	"io"
	"log/slog"

	"github.com/poiesic/kindred/ai"
	"github.com/poiesic/kindred/ai/openai"
	"github.com/poiesic/kindred/ingest"
	"github.com/poiesic/kindred/interest"
	"github.com/poiesic/kindred/match"
	"github.com/poiesic/kindred/reindex"
	"github.com/poiesic/kindred/storage"
	"github.com/poiesic/kindred/storage/badger"
)

type Database struct {
	repos    *badger.Repositories
	provider ai.AIProvider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	repos, err := badger.NewRepositories(filePath)
	if err != nil {
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		repos.Close()
		return nil, err
	}

	return &Database{
		repos:    repos,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing repositories", "err", err)
		return err
	}
	return nil
}

func (db *Database) KnowledgeRepository() storage.KnowledgeRepository {
	return db.repos.Knowledge
}

func (db *Database) TopicRepository() storage.TopicRepository {
	return db.repos.Topics
}

func (db *Database) InterestRepository() storage.InterestRepository {
	return db.repos.Interests
}

func (db *Database) ProfileRepository() storage.ProfileRepository {
	return db.repos.Profiles
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.repos.Checkpoints
}

// NewLedger creates an interest ledger over the database's interest rows.
func (db *Database) NewLedger(opts ...interest.Option) (*interest.Ledger, error) {
	return interest.NewLedger(db.repos.Interests, opts...)
}

// NewIngestPipeline creates a statement ingestion pipeline. The pipeline
// shares the database's AI provider and writes interest contributions
// through its own ledger.
func (db *Database) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	ledger, err := interest.NewLedger(db.repos.Interests)
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(db.repos.Knowledge, db.repos.Topics, db.repos.Profiles,
		db.repos.Checkpoints, ledger, db.provider, opts...)
}

// NewMatchEngine creates a matching engine over the database.
func (db *Database) NewMatchEngine(opts ...match.Option) (*match.Engine, error) {
	return match.NewEngine(db.repos.Knowledge, db.repos.Topics, db.repos.Interests,
		db.repos.Profiles, db.provider, opts...)
}

// NewReindexer creates a reindexer that re-embeds all stored knowledge
// items and topics, writing progress to the given writer.
func (db *Database) NewReindexer(config *reindex.Config, progress io.Writer) *reindex.Reindexer {
	return reindex.NewReindexer(db.repos.Knowledge, db.repos.Topics,
		db.repos.Checkpoints, db.provider.Embedder(), config, progress)
}
