package match

import (
	"context"
	"sync"

	"github.com/poiesic/kindred/core"
)

// expandedTopic is one entry of the expanded topic set: the best similarity
// seen for the topic and the searcher topic the expansion came from. The
// source is recorded for evidence only and never affects scoring.
type expandedTopic struct {
	similarity float64
	sourceId   core.ID
}

// expandTopics widens the searcher's topic set with semantically related
// topics. Each input topic keeps similarity 1.0 to itself and contributes up
// to expansionLimit related topics at or above expansionThreshold. When two
// input topics reach the same related topic, the higher similarity wins along
// with its source. Per-topic queries run concurrently; a failed query is
// logged and skipped.
func (e *Engine) expandTopics(ctx context.Context, topicIds []core.ID) map[core.ID]expandedTopic {
	expanded := make(map[core.ID]expandedTopic, len(topicIds))
	for _, id := range topicIds {
		expanded[id] = expandedTopic{similarity: 1.0, sourceId: id}
	}
	if len(topicIds) == 0 {
		return expanded
	}

	topics, err := e.topicRepository.GetTopics(ctx, topicIds...)
	if err != nil {
		e.logger.Warn("failed to load searcher topics for expansion", "err", err)
		return expanded
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, topic := range topics {
		if len(topic.Vector) == 0 {
			continue
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()

			// One extra slot so the topic matching itself does not crowd
			// out a related topic.
			matches, err := e.topicRepository.MatchTopics(ctx, topic.Vector, expansionThreshold, expansionLimit+1)
			if err != nil {
				e.logger.Warn("skipping topic that failed to expand",
					"topic", topic.Name,
					"err", err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			related := 0
			for _, match := range matches {
				if match.Topic.Id == topic.Id {
					continue
				}
				if related >= expansionLimit {
					break
				}
				related++

				similarity := float64(match.Score)
				if existing, ok := expanded[match.Topic.Id]; ok && existing.similarity >= similarity {
					continue
				}
				expanded[match.Topic.Id] = expandedTopic{
					similarity: similarity,
					sourceId:   topic.Id,
				}
			}
		}
		if err := e.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	return expanded
}

// interestSums walks the expanded topic set and, for each candidate holding
// an interest row on an expanded topic, accumulates that topic's expansion
// similarity. Only candidates already present in the pool are considered;
// topic interest never introduces new candidates. Returns the per-candidate
// sums plus the evidence rows explaining them.
func (e *Engine) interestSums(ctx context.Context, expanded map[core.ID]expandedTopic, candidates map[core.ID]bool) (map[core.ID]float64, map[core.ID][]core.TopicEvidence) {
	sums := make(map[core.ID]float64)
	evidence := make(map[core.ID][]core.TopicEvidence)

	for topicId, entry := range expanded {
		interests, err := e.interestRepository.GetInterestsByTopic(ctx, topicId)
		if err != nil {
			e.logger.Warn("skipping interest lookup for expanded topic",
				"topicId", topicId,
				"err", err)
			continue
		}
		for _, interest := range interests {
			if !candidates[interest.UserId] {
				continue
			}
			sums[interest.UserId] += entry.similarity
			evidence[interest.UserId] = append(evidence[interest.UserId], core.TopicEvidence{
				TopicId:       topicId,
				SourceTopicId: entry.sourceId,
				Similarity:    entry.similarity,
			})
		}
	}

	return sums, evidence
}
