package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campuschain/access-layer/internal/store/schema"
)

// ErrOnchainIDConflict is returned when a backfill would overwrite an
// already-resolved ledger id with a different value
var ErrOnchainIDConflict = errors.New("submission already has a different onchain id")

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// HasEnrollment checks whether a server-asserted enrollment exists
func (s *pgStore) HasEnrollment(ctx context.Context, actorAddress string, courseTokenID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Enrollment{}).
		Where("actor_address = ? AND course_token_id = ?", strings.ToLower(actorAddress), courseTokenID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query enrollment: %w", err)
	}
	return count > 0, nil
}

// CreateEnrollment records a server-asserted enrollment
func (s *pgStore) CreateEnrollment(ctx context.Context, enrollment *schema.Enrollment) error {
	enrollment.ActorAddress = strings.ToLower(enrollment.ActorAddress)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_address"}, {Name: "course_token_id"}},
			DoNothing: true,
		}).
		Create(enrollment).Error
	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

// CreateSubmission creates a contest entry row
func (s *pgStore) CreateSubmission(ctx context.Context, submission *schema.Submission) error {
	submission.AuthorAddress = strings.ToLower(submission.AuthorAddress)
	if err := s.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// GetSubmissionByID retrieves a submission, nil when absent
func (s *pgStore) GetSubmissionByID(ctx context.Context, id string) (*schema.Submission, error) {
	var submission schema.Submission
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}
	return &submission, nil
}

// ListSubmissionsByContest lists a contest's entries, newest first
func (s *pgStore) ListSubmissionsByContest(ctx context.Context, contestID string) ([]schema.Submission, error) {
	var submissions []schema.Submission
	err := s.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// SetSubmissionOnchainID backfills the ledger-assigned id, touching only
// the onchain_id column
func (s *pgStore) SetSubmissionOnchainID(ctx context.Context, id string, onchainID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission schema.Submission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&submission).Error; err != nil {
			return fmt.Errorf("failed to query submission %s: %w", id, err)
		}

		if submission.OnchainID != nil && *submission.OnchainID != "" {
			if *submission.OnchainID == onchainID {
				return nil
			}
			return fmt.Errorf("%w: submission %s has %s, got %s",
				ErrOnchainIDConflict, id, *submission.OnchainID, onchainID)
		}

		err := tx.Model(&schema.Submission{}).
			Where("id = ?", id).
			Update("onchain_id", onchainID).Error
		if err != nil {
			return fmt.Errorf("failed to set onchain id on submission %s: %w", id, err)
		}
		return nil
	})
}

// GetVote retrieves an actor's current vote in a contest, nil when absent
func (s *pgStore) GetVote(ctx context.Context, voterAddress string, contestID string) (*schema.Vote, error) {
	var vote schema.Vote
	err := s.db.WithContext(ctx).
		Where("voter_address = ? AND contest_id = ?", strings.ToLower(voterAddress), contestID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	return &vote, nil
}

// RecordVote upserts the actor's vote and maintains the vote counts. A
// re-vote for the same submission is a no-op; a re-vote for a different
// submission moves the count.
func (s *pgStore) RecordVote(ctx context.Context, vote *schema.Vote) error {
	vote.VoterAddress = strings.ToLower(vote.VoterAddress)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing schema.Vote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("voter_address = ? AND contest_id = ?", vote.VoterAddress, vote.ContestID).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(vote).Error; err != nil {
				return fmt.Errorf("failed to create vote: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to query vote: %w", err)
		case existing.SubmissionID == vote.SubmissionID:
			return nil
		default:
			err := tx.Model(&schema.Vote{}).
				Where("id = ?", existing.ID).
				Update("submission_id", vote.SubmissionID).Error
			if err != nil {
				return fmt.Errorf("failed to move vote: %w", err)
			}
			err = tx.Model(&schema.Submission{}).
				Where("id = ?", existing.SubmissionID).
				UpdateColumn("vote_count", gorm.Expr("GREATEST(vote_count - 1, 0)")).Error
			if err != nil {
				return fmt.Errorf("failed to decrement vote count: %w", err)
			}
		}

		err = tx.Model(&schema.Submission{}).
			Where("id = ?", vote.SubmissionID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to increment vote count: %w", err)
		}
		return nil
	})
}

// RemoveVote deletes the actor's vote and decrements the vote count
func (s *pgStore) RemoveVote(ctx context.Context, voterAddress string, contestID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing schema.Vote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("voter_address = ? AND contest_id = ?", strings.ToLower(voterAddress), contestID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query vote: %w", err)
		}

		if err := tx.Delete(&schema.Vote{}, existing.ID).Error; err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}

		err = tx.Model(&schema.Submission{}).
			Where("id = ?", existing.SubmissionID).
			UpdateColumn("vote_count", gorm.Expr("GREATEST(vote_count - 1, 0)")).Error
		if err != nil {
			return fmt.Errorf("failed to decrement vote count: %w", err)
		}
		return nil
	})
}

// GetValue retrieves a value from the key-value store
func (s *pgStore) GetValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query key %s: %w", key, err)
	}
	return kv.Value, nil
}

// SetValue stores a value in the key-value store
func (s *pgStore) SetValue(ctx context.Context, key string, value string) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&schema.KeyValueStore{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
