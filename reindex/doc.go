// Package reindex provides functionality for re-embedding stored knowledge
// items and topics with new or updated embedding models.
//
// This package supports batch processing, progress tracking, retry logic
// with exponential backoff, vector normalization for cosine similarity
// compatibility, and checkpointed resume of interrupted runs.
package reindex
