package interest

import "errors"

var (
	// ErrInterestRepositoryRequired is returned when an interest repository is not provided.
	ErrInterestRepositoryRequired = errors.New("interest repository required")
)
