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


package interest

import (
	"context"
	"log/slog"

	"github.com/poiesic/kindred/core"
	"github.com/poiesic/kindred/storage"
)

const (
	// DecayAmount is subtracted from every positive MemoryScore on each
	// ledger update, regardless of which topics the update touches.
	DecayAmount = 0.1

	// WeightPrimaryProfile is the contribution weight for a user updating
	// their own primary profile description.
	WeightPrimaryProfile = 3.0

	// WeightPortfolio is the contribution weight for secondary portfolio
	// updates such as projects. Personal-identity signals are meant to
	// dominate the decaying interest model over group-affiliation signals.
	WeightPortfolio = 0.1
)

// Ledger maintains the per-(user, topic) interest scores. Every update
// decays the user's existing recency scores before adding new contributions,
// so interests fade unless continually reinforced.
type Ledger struct {
	interestRepository storage.InterestRepository
	logger             *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLedger creates a new interest ledger.
func NewLedger(interestRepository storage.InterestRepository, opts ...Option) (*Ledger, error) {
	if interestRepository == nil {
		return nil, ErrInterestRepositoryRequired
	}

	l := &Ledger{
		interestRepository: interestRepository,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// UpdateUserInterests decays the user's recency scores and credits the given
// topics with weight. The decay step runs even when topicIds is empty; an
// update call always represents activity, and activity ages everything the
// user was previously interested in.
//
// Decay and contributions are applied in a single repository transaction, so
// a failure never leaves a decayed ledger without its contributions. If the
// transactional path fails the update falls back to a per-row loop, and if
// that fails too the whole update is abandoned for this cycle: the user's
// interests stay stale rather than corrupted.
func (l *Ledger) UpdateUserInterests(ctx context.Context, userId core.ID, topicIds []core.ID, weight float64) error {
	if len(topicIds) > 0 {
		if err := core.ValidateWeight(weight); err != nil {
			return err
		}
	}

	err := l.interestRepository.ApplyInterestUpdate(ctx, userId, topicIds, DecayAmount, weight)
	if err == nil {
		return nil
	}

	l.logger.Warn("transactional interest update failed, falling back to per-row update",
		"userId", userId,
		"err", err)

	if err := l.updatePerRow(ctx, userId, topicIds, weight); err != nil {
		l.logger.Error("abandoning interest update, per-row fallback failed",
			"userId", userId,
			"topics", len(topicIds),
			"err", err)
		return err
	}

	return nil
}

// TopInterestedTopics returns the user's interests ordered by MemoryScore
// descending, truncated to limit. Each row carries its AggregateScore so
// callers can distinguish fresh interests from lifetime ones.
func (l *Ledger) TopInterestedTopics(ctx context.Context, userId core.ID, limit int) ([]*core.UserInterest, error) {
	return l.interestRepository.GetTopInterests(ctx, userId, limit)
}

// updatePerRow is the degraded path used when the single-transaction update
// fails, e.g. when the transaction grows too big. Decay is written row by
// row before the contribution, so a failure partway through can leave decay
// applied without its contributions. The rows are stale in that case, never
// corrupted, and the next update still finds a consistent ledger.
func (l *Ledger) updatePerRow(ctx context.Context, userId core.ID, topicIds []core.ID, weight float64) error {
	interests, err := l.interestRepository.GetInterests(ctx, userId)
	if err != nil {
		return err
	}

	decayed := make([]*core.UserInterest, 0, len(interests))
	for _, interest := range interests {
		if interest.MemoryScore <= 0 {
			continue
		}
		interest.MemoryScore -= DecayAmount
		decayed = append(decayed, interest)
	}
	if len(decayed) > 0 {
		if err := l.interestRepository.UpdateInterests(ctx, decayed...); err != nil {
			return err
		}
	}

	if len(topicIds) == 0 {
		return nil
	}

	return l.interestRepository.AddInterestContributions(ctx, userId, topicIds, weight)
}
