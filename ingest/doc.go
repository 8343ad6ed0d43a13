// Package ingest provides pipeline orchestration for storing user statements.
//
// The Pipeline type manages the ingestion workflow for pre-extracted asks
// and offers, including:
//   - Upserting the owner's profile
//   - Resolving topic seeds to merged-or-created topics
//   - Persisting knowledge items
//   - Generating embeddings asynchronously
//   - Feeding the interest ledger
//
// Embedding enrichment and ledger updates run on worker pools; their errors
// are logged but do not fail the ingestion operation.
package ingest
