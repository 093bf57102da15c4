package recovery

import "errors"

var (
	// ErrNoEligibleCandidates means the eligibility filter left nothing
	// to rank. Recoverable; callers render an empty state, not a failure.
	ErrNoEligibleCandidates = errors.New("no eligible candidates")

	// ErrUnknownCandidate means the candidate was not part of the ranked
	// snapshot returned by Open for this session.
	ErrUnknownCandidate = errors.New("candidate not in session snapshot")

	// ErrAlreadyCommitted means the disruption already has a commitment
	// to a different candidate. Committing the same candidate again is a
	// no-op success, not this error.
	ErrAlreadyCommitted = errors.New("disruption already committed to another candidate")

	// ErrSessionNotFound means the session ID is unknown to the store.
	ErrSessionNotFound = errors.New("session not found")
)
