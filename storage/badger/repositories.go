package badger

import (
	"errors"

	"github.com/poiesic/kindred/storage"
)

// Repositories bundles all BadgerDB-backed repositories sharing one backend.
type Repositories struct {
	Knowledge   storage.KnowledgeRepository
	Topics      storage.TopicRepository
	Interests   storage.InterestRepository
	Profiles    storage.ProfileRepository
	Checkpoints storage.CheckpointRepository

	backend *Backend
}

// NewRepositories opens a BadgerDB database at path and wires all
// repositories on top of it. Caller must Close when done.
func NewRepositories(path string) (*Repositories, error) {
	return newRepositories(path, false)
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close when done.
func NewMemoryRepositories() (*Repositories, error) {
	return newRepositories("", true)
}

func newRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	knowledge, err := NewKnowledgeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	topics, err := NewTopicRepository(backend)
	if err != nil {
		knowledge.Close()
		backend.Close()
		return nil, err
	}

	interests, err := NewInterestRepository(backend)
	if err != nil {
		topics.Close()
		knowledge.Close()
		backend.Close()
		return nil, err
	}

	profiles, err := NewProfileRepository(backend)
	if err != nil {
		interests.Close()
		topics.Close()
		knowledge.Close()
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Knowledge:   knowledge,
		Topics:      topics,
		Interests:   interests,
		Profiles:    profiles,
		Checkpoints: NewCheckpointRepository(backend),
		backend:     backend,
	}, nil
}

// Backend exposes the shared backend, mainly for maintenance jobs.
func (r *Repositories) Backend() *Backend {
	return r.backend
}

// Close releases all repositories and the underlying database.
func (r *Repositories) Close() error {
	var errs []error
	if err := r.Knowledge.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := r.Topics.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := r.Interests.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := r.Profiles.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := r.backend.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
