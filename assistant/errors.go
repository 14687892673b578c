package assistant

import "errors"

var (
	// ErrLearnedStoreRequired is returned when the learned store is not provided.
	ErrLearnedStoreRequired = errors.New("learned store required")

	// ErrKnowledgeStoreRequired is returned when the knowledge store is not provided.
	ErrKnowledgeStoreRequired = errors.New("knowledge store required")

	// ErrNoPreviousQuestion is returned when a correction arrives before
	// any question was asked.
	ErrNoPreviousQuestion = errors.New("no previous question to correct")

	// ErrEmptyCorrection is returned when a correction carries no text.
	ErrEmptyCorrection = errors.New("empty correction")
)
