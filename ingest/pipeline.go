package ingest

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/kindred/ai"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/interest"
	"github.com/poiesic/kindred/storage"
)

// TopicSeed names a topic a statement should be tagged with. Seeds resolve
// to existing topics when their description embedding is close enough, so
// two users describing the same topic differently still share one row.
type TopicSeed struct {
	Name        string
	Description string
}

// Statement is one pre-extracted ask or offer to ingest.
type Statement struct {
	Text       string
	IsAsk      bool
	TopicSeeds []TopicSeed
}

// Pipeline orchestrates the ingestion of a user's statements. It resolves
// topics, persists knowledge items, enriches them with embeddings
// asynchronously and feeds the interest ledger.
type Pipeline struct {
	knowledgeRepository storage.KnowledgeRepository
	topicRepository     storage.TopicRepository
	profileRepository   storage.ProfileRepository
	ledger              *interest.Ledger
	embedder            ai.Embedder
	embeddingPool       *ants.Pool
	interestPool        *ants.Pool
	embeddingProc       processor
	logger              *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		if p.interestPool != nil {
			p.interestPool.Release()
		}

		// Create new pools
		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		interestPool, err := ants.NewPool(size)
		if err != nil {
			embeddingPool.Release()
			return err
		}

		p.embeddingPool = embeddingPool
		p.interestPool = interestPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	knowledgeRepository storage.KnowledgeRepository,
	topicRepository storage.TopicRepository,
	profileRepository storage.ProfileRepository,
	checkpointRepository storage.CheckpointRepository,
	ledger *interest.Ledger,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if knowledgeRepository == nil {
		return nil, ErrKnowledgeRepositoryRequired
	}
	if topicRepository == nil {
		return nil, ErrTopicRepositoryRequired
	}
	if profileRepository == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if ledger == nil {
		return nil, ErrLedgerRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default logger
	logger := slog.Default()

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	interestPool, err := ants.NewPool(poolSize)
	if err != nil {
		embeddingPool.Release()
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		knowledgeRepository: knowledgeRepository,
		topicRepository:     topicRepository,
		profileRepository:   profileRepository,
		ledger:              ledger,
		embedder:            provider.Embedder(),
		embeddingPool:       embeddingPool,
		interestPool:        interestPool,
		logger:              logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processor after options are applied (so it gets the final config)
	embeddingProc, err := newEmbeddingProcessor(knowledgeRepository, checkpointRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// IngestStatements persists a user's statements and their supporting data.
// The owner profile is upserted, topic seeds resolve to merged-or-created
// topics, and the statements are stored as knowledge items. Embeddings are
// generated asynchronously; the items are searchable once enrichment
// completes. The interest ledger update is fire-and-forget: its failures
// are logged and never surfaced to the caller.
//
// primary marks updates to the user's own profile, which contribute more
// interest weight than portfolio updates.
func (p *Pipeline) IngestStatements(ctx context.Context, ownerId core.ID, name, description string, statements []Statement, primary bool) error {
	profile := &core.Profile{
		Id:          ownerId,
		Name:        name,
		Description: description,
	}
	if _, err := p.profileRepository.UpsertProfile(ctx, profile); err != nil {
		return err
	}

	// Resolve topic seeds. Deduplicate by name so one ingestion never
	// bumps a topic's mention count twice.
	topicsByName := make(map[string]*core.Topic)
	for _, statement := range statements {
		for _, seed := range statement.TopicSeeds {
			if _, ok := topicsByName[seed.Name]; ok {
				continue
			}
			topic, err := p.resolveTopic(ctx, seed)
			if err != nil {
				p.logger.Warn("skipping topic seed",
					"topic", seed.Name,
					"err", err)
				continue
			}
			topicsByName[seed.Name] = topic
		}
	}

	// Create knowledge items
	items := make([]*core.KnowledgeItem, 0, len(statements))
	for _, statement := range statements {
		topicIds := make([]core.ID, 0, len(statement.TopicSeeds))
		for _, seed := range statement.TopicSeeds {
			if topic, ok := topicsByName[seed.Name]; ok {
				topicIds = append(topicIds, topic.Id)
			}
		}
		items = append(items, &core.KnowledgeItem{
			OwnerId:  ownerId,
			Text:     statement.Text,
			IsAsk:    statement.IsAsk,
			TopicIds: topicIds,
		})
	}

	added, err := p.knowledgeRepository.AddKnowledgeItems(ctx, items...)
	if err != nil {
		return err
	}

	if len(added) > 0 {
		// Extract IDs
		ids := make([]core.ID, len(added))
		for i, item := range added {
			ids[i] = item.Id
		}

		// Submit for async embedding enrichment
		p.embeddingPool.Submit(func() {
			if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
				p.logger.Error("error processing embeddings", "err", err)
				return
			}
			if err := p.embeddingProc.checkpoint(); err != nil {
				p.logger.Error("error applying embedding checkpoint", "err", err)
			}
		})
	}

	// Fire-and-forget ledger update
	weight := interest.WeightPortfolio
	if primary {
		weight = interest.WeightPrimaryProfile
	}
	topicIds := make([]core.ID, 0, len(topicsByName))
	for _, topic := range topicsByName {
		topicIds = append(topicIds, topic.Id)
	}
	p.interestPool.Submit(func() {
		if err := p.ledger.UpdateUserInterests(context.Background(), ownerId, topicIds, weight); err != nil {
			p.logger.Error("error updating interest ledger", "userId", ownerId, "err", err)
		}
	})

	return nil
}

// resolveTopic embeds a seed description and finds or creates its topic.
// The same description resolves to the same topic every time: close enough
// embeddings merge instead of creating duplicates.
func (p *Pipeline) resolveTopic(ctx context.Context, seed TopicSeed) (*core.Topic, error) {
	vector, err := p.embedder.EmbedText(ctx, seed.Description)
	if err != nil {
		return nil, err
	}
	return p.topicRepository.GetOrCreateTopic(ctx, seed.Name, seed.Description, vector)
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
	if p.interestPool != nil {
		p.interestPool.Release()
	}
}
