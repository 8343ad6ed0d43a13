// Package interest maintains the time-decaying interest ledger.
//
// Each (user, topic) pair carries two scores: AggregateScore accumulates
// every contribution for the lifetime of the row, while MemoryScore decays
// on every update so that interests fade unless reinforced. Rows are
// created on first contribution and never deleted.
//
// MemoryScore is deliberately not clamped at zero. A row decayed below zero
// is skipped by subsequent decay passes but keeps its position below zero
// until a new contribution lifts it.
package interest
