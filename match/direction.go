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
	"sync"

	"github.com/poiesic/kindred/core"
)

// statementMatches holds the outcome of querying one statement against the
// candidate pool: the best hit per candidate owner. Each instance is written
// by exactly one worker and only read after the fold, so no locking is needed.
type statementMatches struct {
	perOwner map[core.ID]core.MatchEvidence
}

// directionScores is one direction's aggregated view of the candidate pool.
type directionScores struct {
	scores   map[core.ID]float64
	evidence map[core.ID][]core.MatchEvidence
}

// runDirection scores every statement against the opposite side of the
// knowledge space: asks against offers (targetAsks=false) or offers against
// asks (targetAsks=true). Statements are queried concurrently on the worker
// pool; a statement that fails to embed or query is logged and contributes
// nothing. The per-statement results are folded afterwards, so the outcome
// does not depend on completion order.
func (e *Engine) runDirection(ctx context.Context, statements []*core.KnowledgeItem, excludeOwners []core.ID, targetAsks bool) *directionScores {
	results := make([]*statementMatches, len(statements))

	var wg sync.WaitGroup
	for i, statement := range statements {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = e.matchStatement(ctx, statement, excludeOwners, targetAsks)
		}
		if err := e.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	return foldStatementMatches(results)
}

// matchStatement queries a single statement against the candidate pool and
// keeps the best hit per owner. Returns nil when the statement cannot be
// embedded or queried.
func (e *Engine) matchStatement(ctx context.Context, statement *core.KnowledgeItem, excludeOwners []core.ID, targetAsks bool) *statementMatches {
	vector := statement.Vector
	if len(vector) == 0 {
		var err error
		vector, err = e.embedder.EmbedText(ctx, statement.Text)
		if err != nil {
			e.logger.Warn("skipping statement that failed to embed",
				"statement", statement.Text,
				"err", err)
			return nil
		}
	}

	matches, err := e.knowledgeRepository.MatchKnowledge(ctx, vector, excludeOwners, targetAsks, e.minSimilarity, candidateLimit)
	if err != nil {
		e.logger.Warn("skipping statement that failed to query",
			"statement", statement.Text,
			"err", err)
		return nil
	}

	perOwner := make(map[core.ID]core.MatchEvidence)
	for _, match := range matches {
		owner := match.Item.OwnerId
		similarity := float64(match.Score)
		if best, ok := perOwner[owner]; ok && best.Similarity >= similarity {
			continue
		}
		perOwner[owner] = core.MatchEvidence{
			Statement:   statement.Text,
			StatementId: statement.Id,
			Matched:     match.Item.Text,
			MatchedId:   match.Item.Id,
			Similarity:  similarity,
		}
	}

	return &statementMatches{perOwner: perOwner}
}

// foldStatementMatches aggregates per-statement results into per-candidate
// scores. For each candidate the score is a weighted blend of the strongest
// statement hit and the mean over statements that hit at all; statements
// that found nothing for a candidate are excluded from the mean rather than
// dragging it down.
func foldStatementMatches(results []*statementMatches) *directionScores {
	sims := make(map[core.ID][]float64)
	evidence := make(map[core.ID][]core.MatchEvidence)

	for _, result := range results {
		if result == nil {
			continue
		}
		for owner, best := range result.perOwner {
			sims[owner] = append(sims[owner], best.Similarity)
			evidence[owner] = append(evidence[owner], best)
		}
	}

	scores := make(map[core.ID]float64, len(sims))
	for owner, ownerSims := range sims {
		var max, sum float64
		for _, s := range ownerSims {
			if s > max {
				max = s
			}
			sum += s
		}
		mean := sum / float64(len(ownerSims))
		scores[owner] = maxWeight*max + meanWeight*mean
	}

	return &directionScores{
		scores:   scores,
		evidence: evidence,
	}
}
