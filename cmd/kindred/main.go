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


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/kindred"
	"github.com/poiesic/kindred/ai"
	"github.com/poiesic/kindred/ai/openai"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/ingest"
	"github.com/poiesic/kindred/match"
	"github.com/poiesic/kindred/reindex"
	"github.com/poiesic/kindred/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "kindred",
		Usage: "Semantic matching engine for asks and offers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "match",
				Usage:  "Rank candidates for a user by mutual ask/offer relevance",
				Action: matchCommand,
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Usage:    "Id of the user searching for matches",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "keyword",
						Aliases: []string{"k"},
						Usage:   "Restrict matching to a free-text keyword",
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum cosine similarity for a statement match",
						Value: 0.5,
					},
				),
			},
			{
				Name:   "interests",
				Usage:  "Show a user's strongest topic interests",
				Action: interestsCommand,
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Usage:    "Id of the user",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of topics to show",
						Value: 10,
					},
				),
			},
			{
				Name:   "ingest",
				Usage:  "Ingest ask/offer statements for a user from a file",
				Action: ingestCommand,
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Usage:    "Id of the owning user",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Profile name for the user",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Profile description for the user",
					},
					&cli.StringFlag{
						Name:     "src",
						Usage:    "File of statements, one per line, prefixed with 'ask:' or 'offer:'",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "primary",
						Usage: "Treat statements as coming from the user's primary profile",
						Value: true,
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed all knowledge items and topics with new embeddings",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// databaseFlags are shared by every command that opens the full database
// with its AI provider.
func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "AI service host URL for embeddings and expansion",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "expander-model",
			Usage: "Model name for query expansion and statement suggestion",
			Value: "qwen2.5:3b",
		},
	}
}

func openDatabase(c *cli.Context) (*kindred.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithExpanderModel(c.String("expander-model")),
	)
	return kindred.NewDatabase(c.String("db"), kindred.WithAIConfig(aiConfig))
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := db.NewMatchEngine(
		match.WithMinSimilarity(float32(c.Float64("min-similarity"))),
	)
	if err != nil {
		return fmt.Errorf("failed to create match engine: %w", err)
	}
	defer engine.Release()

	userId := core.ID(c.Uint64("user-id"))

	var results []*core.MatchResult
	if keyword := c.String("keyword"); keyword != "" {
		results, err = engine.MatchKeyword(ctx, userId, keyword)
	} else {
		results, err = engine.Match(ctx, userId)
	}
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	fmt.Printf("Found %d candidates\n", len(results))
	for i, result := range results {
		fmt.Printf("%d: user %d [%.3f] (forward %.3f, backward %.3f)\n",
			i+1, result.UserId, result.Score, result.ForwardScore, result.BackwardScore)
		for _, ev := range result.ForwardEvidence {
			fmt.Printf("   ask %q matched offer %q [%.3f]\n", ev.Statement, ev.Matched, ev.Similarity)
		}
		for _, ev := range result.BackwardEvidence {
			fmt.Printf("   offer %q matched ask %q [%.3f]\n", ev.Statement, ev.Matched, ev.Similarity)
		}
		for _, ev := range result.TopicEvidence {
			fmt.Printf("   shared topic %d via %d [%.3f]\n", ev.TopicId, ev.SourceTopicId, ev.Similarity)
		}
	}

	return nil
}

func interestsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ledger, err := db.NewLedger()
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}

	interests, err := ledger.TopInterestedTopics(ctx, core.ID(c.Uint64("user-id")), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to load interests: %w", err)
	}

	fmt.Printf("Found %d interests\n", len(interests))
	for i, row := range interests {
		fmt.Printf("%d: topic %d memory %.3f lifetime %.3f\n",
			i+1, row.TopicId, row.MemoryScore, row.AggregateScore)
	}

	return nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	statements, err := statementsFromFile(c.String("src"))
	if err != nil {
		return fmt.Errorf("failed to read statements: %w", err)
	}
	if len(statements) == 0 {
		return fmt.Errorf("no statements found in %s", c.String("src"))
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	err = pipeline.IngestStatements(ctx,
		core.ID(c.Uint64("user-id")),
		c.String("name"),
		c.String("description"),
		statements,
		c.Bool("primary"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %d statements\n", len(statements))
	return nil
}

// statementsFromFile parses one statement per line. Lines starting with
// "ask:" become asks, lines starting with "offer:" become offers; blank
// lines and anything else are skipped.
func statementsFromFile(filename string) ([]ingest.Statement, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var statements []ingest.Statement
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "ask:"):
			statements = append(statements, ingest.Statement{
				Text:  strings.TrimSpace(strings.TrimPrefix(line, "ask:")),
				IsAsk: true,
			})
		case strings.HasPrefix(line, "offer:"):
			statements = append(statements, ingest.Statement{
				Text:  strings.TrimSpace(strings.TrimPrefix(line, "offer:")),
				IsAsk: false,
			})
		}
	}
	return statements, scanner.Err()
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	// Validate flags
	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	// Open repositories
	repos, err := badger.NewRepositories(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		// Expander is not used during reindexing
		ai.WithExpanderModel("dummy"),
	)

	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	// Create embedder
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	// Create reindexing config
	reindexConfig := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if reindexConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reindexConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reindexConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	// Create reindexer
	reindexer := reindex.NewReindexer(repos.Knowledge, repos.Topics, repos.Checkpoints,
		embedder, reindexConfig, os.Stderr)

	// Run reindexing
	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reindexer.Run(ctx); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
