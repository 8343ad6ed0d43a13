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


package match

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"runtime"
	"slices"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/kindred/ai"
	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

const (
	// candidateLimit caps how many knowledge items a single statement query
	// returns from the vector search.
	candidateLimit = 100

	// expansionLimit caps related topics per input topic; expansionThreshold
	// is the minimum similarity for a topic to count as related.
	expansionLimit     = 3
	expansionThreshold = 0.8

	// maxWeight and meanWeight blend a candidate's strongest statement hit
	// with the mean over all of their statement hits.
	maxWeight  = 0.8
	meanWeight = 0.2

	// defaultMinSimilarity is the floor below which a statement pair is not
	// considered a match at all.
	defaultMinSimilarity = 0.5

	// keywordWeight and generalWeight blend a keyword-specific score with
	// the candidate's general match score.
	keywordWeight = 0.8
	generalWeight = 0.2

	// suggestionFloor is the stored statement count below which synthetic
	// suggestions are generated for the searcher.
	suggestionFloor = 3
)

// Engine ranks users by mutual relevance of their asks and offers. A search
// runs a forward pass (searcher asks against candidate offers), a backward
// pass (searcher offers against candidate asks), widens the searcher's topic
// set, and combines the three signals into a final score per candidate.
type Engine struct {
	knowledgeRepository storage.KnowledgeRepository
	topicRepository     storage.TopicRepository
	interestRepository  storage.InterestRepository
	profileRepository   storage.ProfileRepository
	embedder            ai.Embedder
	expander            ai.QueryExpander
	suggester           ai.StatementSuggester
	pool                *ants.Pool
	minSimilarity       float32
	suggestions         bool
	logger              *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for the statement fan-out.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithMinSimilarity sets the minimum similarity for a statement pair to
// count as a match. Default is 0.5.
func WithMinSimilarity(minSimilarity float32) Option {
	return func(e *Engine) error {
		e.minSimilarity = minSimilarity
		return nil
	}
}

// WithSuggestions enables synthetic statement suggestions for searchers
// whose stored knowledge set is small. Suggested statements participate in
// the current search only and are never persisted. Default is disabled.
func WithSuggestions(enabled bool) Option {
	return func(e *Engine) error {
		e.suggestions = enabled
		return nil
	}
}

// NewEngine creates a new matching engine.
func NewEngine(
	knowledgeRepository storage.KnowledgeRepository,
	topicRepository storage.TopicRepository,
	interestRepository storage.InterestRepository,
	profileRepository storage.ProfileRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Engine, error) {
	if knowledgeRepository == nil {
		return nil, ErrKnowledgeRepositoryRequired
	}
	if topicRepository == nil {
		return nil, ErrTopicRepositoryRequired
	}
	if interestRepository == nil {
		return nil, ErrInterestRepositoryRequired
	}
	if profileRepository == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		knowledgeRepository: knowledgeRepository,
		topicRepository:     topicRepository,
		interestRepository:  interestRepository,
		profileRepository:   profileRepository,
		embedder:            provider.Embedder(),
		expander:            provider.QueryExpander(),
		suggester:           provider.StatementSuggester(),
		pool:                pool,
		minSimilarity:       defaultMinSimilarity,
		logger:              slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	return e, nil
}

// Release releases the worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Match ranks all other users by mutual relevance with the searcher.
// Returns results ordered by score descending, with the evidence trail that
// produced each score.
func (e *Engine) Match(ctx context.Context, userId core.ID) ([]*core.MatchResult, error) {
	return e.MatchWithMonitor(ctx, userId, nil)
}

// MatchWithMonitor ranks all other users by mutual relevance with monitoring.
// The monitor receives callbacks after each stage of the pipeline.
func (e *Engine) MatchWithMonitor(ctx context.Context, userId core.ID, monitor MatchMonitor) ([]*core.MatchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(userId)

	profile, err := e.profileRepository.GetProfile(ctx, userId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			e.logger.Error("search for user without profile", "userId", userId)
			return []*core.MatchResult{}, ErrUnknownSearcher
		}
		return nil, err
	}

	items, err := e.knowledgeRepository.GetKnowledgeByOwner(ctx, userId)
	if err != nil {
		e.logger.Error("error loading searcher knowledge", "userId", userId, "err", err)
		return nil, err
	}

	if e.suggestions && len(items) < suggestionFloor {
		items = append(items, e.suggestStatements(ctx, profile)...)
	}

	var asks, offers []*core.KnowledgeItem
	for _, item := range items {
		if item.IsAsk {
			asks = append(asks, item)
		} else {
			offers = append(offers, item)
		}
	}

	excludeOwners := []core.ID{userId}

	// Forward: searcher asks against candidate offers
	forward := e.runDirection(ctx, asks, excludeOwners, false)
	monitor.AfterForward(forward.scores)

	// Backward: searcher offers against candidate asks
	backward := e.runDirection(ctx, offers, excludeOwners, true)
	monitor.AfterBackward(backward.scores)

	expanded := e.expandTopics(ctx, collectTopicIds(items))
	similarities := make(map[core.ID]float64, len(expanded))
	for id, entry := range expanded {
		similarities[id] = entry.similarity
	}
	monitor.AfterTopicExpansion(similarities)

	results := e.combine(ctx, forward, backward, expanded)
	monitor.Finish(results)

	return results, nil
}

// MatchKeyword ranks users against a free-text keyword on behalf of the
// searcher. The keyword is expanded into synthetic ask statements and scored
// forward-only; the result is blended with the searcher's general match
// score so that mutual relevance still influences the ranking. If expansion
// fails or yields nothing, the general results are returned as-is.
func (e *Engine) MatchKeyword(ctx context.Context, userId core.ID, keyword string) ([]*core.MatchResult, error) {
	general, err := e.Match(ctx, userId)
	if err != nil {
		return general, err
	}

	statements, err := e.expander.ExpandQuery(ctx, keyword)
	if err != nil {
		e.logger.Warn("keyword expansion failed, falling back to general results",
			"keyword", keyword,
			"err", err)
		return general, nil
	}
	if len(statements) == 0 {
		return general, nil
	}

	synthetic := make([]*core.KnowledgeItem, len(statements))
	for i, text := range statements {
		synthetic[i] = &core.KnowledgeItem{
			OwnerId: userId,
			Text:    text,
			IsAsk:   true,
		}
	}

	specific := e.runDirection(ctx, synthetic, []core.ID{userId}, false)

	generalByUser := make(map[core.ID]*core.MatchResult, len(general))
	for _, result := range general {
		generalByUser[result.UserId] = result
	}

	// Blend over the union of keyword and general candidates
	results := make([]*core.MatchResult, 0, len(general)+len(specific.scores))
	for owner, specificScore := range specific.scores {
		result := generalByUser[owner]
		if result == nil {
			result = &core.MatchResult{UserId: owner}
		} else {
			delete(generalByUser, owner)
		}
		result.ForwardEvidence = append(specific.evidence[owner], result.ForwardEvidence...)
		result.Score = keywordWeight*specificScore + generalWeight*result.Score
		results = append(results, result)
	}
	for _, result := range generalByUser {
		result.Score = generalWeight * result.Score
		results = append(results, result)
	}

	sortResults(results)
	return results, nil
}

// combine folds the three signals into final per-candidate scores. The
// candidate pool is the union of forward and backward hits; a candidate
// missing from one direction scores zero there. Topic interest acts as a
// multiplier on the combined score and never introduces candidates.
func (e *Engine) combine(ctx context.Context, forward, backward *directionScores, expanded map[core.ID]expandedTopic) []*core.MatchResult {
	candidates := make(map[core.ID]bool, len(forward.scores)+len(backward.scores))
	for owner := range forward.scores {
		candidates[owner] = true
	}
	for owner := range backward.scores {
		candidates[owner] = true
	}

	sums, topicEvidence := e.interestSums(ctx, expanded, candidates)

	results := make([]*core.MatchResult, 0, len(candidates))
	for owner := range candidates {
		forwardScore := forward.scores[owner]
		backwardScore := backward.scores[owner]

		combined := forwardScore * math.Sqrt(1+backwardScore)
		multiplier := math.Sqrt(sums[owner] + 1)

		results = append(results, &core.MatchResult{
			UserId:           owner,
			Score:            combined * multiplier,
			ForwardScore:     forwardScore,
			BackwardScore:    backwardScore,
			ForwardEvidence:  forward.evidence[owner],
			BackwardEvidence: backward.evidence[owner],
			TopicEvidence:    topicEvidence[owner],
		})
	}

	sortResults(results)
	return results
}

// suggestStatements asks the suggester for plausible statements based on the
// profile description. Suggested items carry Id 0 so downstream consumers
// can tell they are synthetic. Suggester failure degrades to no suggestions.
func (e *Engine) suggestStatements(ctx context.Context, profile *core.Profile) []*core.KnowledgeItem {
	asks, offers, err := e.suggester.SuggestStatements(ctx, profile.Description)
	if err != nil {
		e.logger.Warn("statement suggestion failed", "userId", profile.Id, "err", err)
		return nil
	}

	items := make([]*core.KnowledgeItem, 0, len(asks)+len(offers))
	for _, text := range asks {
		items = append(items, &core.KnowledgeItem{OwnerId: profile.Id, Text: text, IsAsk: true})
	}
	for _, text := range offers {
		items = append(items, &core.KnowledgeItem{OwnerId: profile.Id, Text: text, IsAsk: false})
	}

	e.logger.Debug("augmented searcher knowledge with suggestions",
		"userId", profile.Id,
		"asks", len(asks),
		"offers", len(offers))

	return items
}

// collectTopicIds gathers the distinct topic ids across the given items.
func collectTopicIds(items []*core.KnowledgeItem) []core.ID {
	seen := make(map[core.ID]bool)
	var ids []core.ID
	for _, item := range items {
		for _, id := range item.TopicIds {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// sortResults orders results by score descending, breaking ties by user id
// for a stable ordering.
func sortResults(results []*core.MatchResult) {
	slices.SortFunc(results, func(a, b *core.MatchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		case a.UserId < b.UserId:
			return -1
		case a.UserId > b.UserId:
			return 1
		default:
			return 0
		}
	})
}
