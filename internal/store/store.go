package store

import (
	"context"

	"github.com/campuschain/access-layer/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks
type Store interface {
	// HasEnrollment checks whether a server-asserted enrollment exists
	HasEnrollment(ctx context.Context, actorAddress string, courseTokenID uint64) (bool, error)
	// CreateEnrollment records a server-asserted enrollment; idempotent for
	// the same (actor, token) pair
	CreateEnrollment(ctx context.Context, enrollment *schema.Enrollment) error

	// CreateSubmission creates a contest entry row with a null onchain id
	CreateSubmission(ctx context.Context, submission *schema.Submission) error
	// GetSubmissionByID retrieves a submission, nil when absent
	GetSubmissionByID(ctx context.Context, id string) (*schema.Submission, error)
	// ListSubmissionsByContest lists a contest's entries, newest first
	ListSubmissionsByContest(ctx context.Context, contestID string) ([]schema.Submission, error)
	// SetSubmissionOnchainID backfills the ledger-assigned id. Setting the
	// same id again is a no-op; a different existing id is never
	// overwritten and yields ErrOnchainIDConflict.
	SetSubmissionOnchainID(ctx context.Context, id string, onchainID string) error

	// GetVote retrieves an actor's current vote in a contest, nil when absent
	GetVote(ctx context.Context, voterAddress string, contestID string) (*schema.Vote, error)
	// RecordVote upserts the actor's vote in a contest and maintains the
	// denormalized vote counts
	RecordVote(ctx context.Context, vote *schema.Vote) error
	// RemoveVote deletes the actor's vote in a contest and decrements the
	// vote count; removing an absent vote is an error
	RemoveVote(ctx context.Context, voterAddress string, contestID string) error

	// GetValue retrieves a value from the key-value store
	GetValue(ctx context.Context, key string) (string, error)
	// SetValue stores a value in the key-value store
	SetValue(ctx context.Context, key string, value string) error
}
