package apperrors

import "errors"

// Domain error taxonomy. Services wrap these with %w so controllers and the
// error-handler middleware can map them to HTTP status codes with errors.Is.
var (
	// ErrIngestion marks a document that could not be read or parsed.
	ErrIngestion = errors.New("document ingestion failed")

	// ErrIndexUnavailable marks a scope with no index yet. Retrieval treats
	// it as an empty result; mutating calls treat it as a no-op.
	ErrIndexUnavailable = errors.New("index unavailable for scope")

	// ErrGeneration marks a failed model call (rewrite, answer or title
	// summarization) or unparseable model output.
	ErrGeneration = errors.New("answer generation failed")

	// ErrLockTimeout marks a scope lock that could not be acquired within
	// the configured wait bound.
	ErrLockTimeout = errors.New("scope lock acquisition timed out")

	// ErrNotFound marks a missing scope, session or source file on a
	// mutating call.
	ErrNotFound = errors.New("resource not found")

	// ErrEmbeddingModelMismatch marks an attempt to add chunks embedded with
	// a different model than the one the scope's index was built with.
	ErrEmbeddingModelMismatch = errors.New("embedding model does not match scope index")

	// ErrDuplicate marks a uniqueness violation (existing user, course, file).
	ErrDuplicate = errors.New("resource already exists")
)
