package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/ledger"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/store"
	"github.com/campuschain/access-layer/internal/store/schema"
)

// Job names one submission row whose ledger-assigned id needs backfilling
type Job struct {
	SubmissionID     string
	ContestNumericID uint64
	AuthorAddress    string
}

// Config holds the reconciliation timing parameters
type Config struct {
	// Grace is the wait before the first ledger read; indexing the new
	// submission takes a moment after the transaction settles
	Grace time.Duration

	// MaxAttempts bounds the ledger re-reads per job
	MaxAttempts int

	// InitialRetryInterval seeds the backoff between re-reads
	InitialRetryInterval time.Duration

	// Workers sizes the pool
	Workers int

	// QueueSize bounds the pending job queue
	QueueSize int
}

// Service backfills ledger-assigned submission ids into the database. The
// ledger is the source of truth for the id; the database rows it repairs
// are never authored by it beyond the onchain_id column. A job that cannot
// resolve leaves the row pending; the next read retries lazily.
type Service struct {
	store  store.Store
	reader ledger.Reader
	clock  adapter.Clock
	config Config
	pool   pond.Pool
}

// NewService creates the reconciliation service and its worker pool
func NewService(st store.Store, reader ledger.Reader, clock adapter.Clock, cfg Config) *Service {
	if cfg.Grace == 0 {
		cfg.Grace = 3 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.InitialRetryInterval == 0 {
		cfg.InitialRetryInterval = 2 * time.Second
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}
	return &Service{
		store:  st,
		reader: reader,
		clock:  clock,
		config: cfg,
		pool:   pond.NewPool(cfg.Workers, pond.WithQueueSize(cfg.QueueSize)),
	}
}

// Enqueue schedules a reconciliation job on the worker pool
func (s *Service) Enqueue(job Job) {
	s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.Reconcile(ctx, job); err != nil {
			logger.Error(err,
				zap.String("submissionID", job.SubmissionID),
				zap.Uint64("contestID", job.ContestNumericID))
		}
	})
}

// StopAndWait drains the worker pool; used on shutdown
func (s *Service) StopAndWait() {
	s.pool.StopAndWait()
}

// Reconcile waits the grace interval then reads the ledger until it reports
// the submission id, backing off between attempts. Resolution failure is not
// an error the submitting user ever sees; the row just stays pending.
func (s *Service) Reconcile(ctx context.Context, job Job) error {
	s.clock.Sleep(s.config.Grace)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.config.InitialRetryInterval

	for attempt := 0; attempt < s.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			s.clock.Sleep(b.NextBackOff())
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", domain.ErrReconciliationTimeout, ctx.Err())
		}

		id, err := s.reader.GetSubmissionID(ctx, job.ContestNumericID, job.AuthorAddress)
		if err != nil {
			logger.WarnCtx(ctx, "reconciliation ledger read failed",
				zap.String("submissionID", job.SubmissionID),
				zap.Error(err))
			continue
		}
		if id.IsZero() {
			continue
		}

		return s.backfill(ctx, job.SubmissionID, id)
	}

	logger.Warn("submission id not resolved, leaving row pending",
		zap.String("submissionID", job.SubmissionID),
		zap.Uint64("contestID", job.ContestNumericID),
		zap.Int("attempts", s.config.MaxAttempts))
	return domain.ErrReconciliationTimeout
}

// ResolvePending retries id resolution for a pending submission at read
// time. Failures are swallowed; the caller gets the row as it stands.
func (s *Service) ResolvePending(ctx context.Context, submission *schema.Submission) *schema.Submission {
	if submission == nil || !submission.Pending() {
		return submission
	}

	id, err := s.reader.GetSubmissionID(ctx, submission.NumericContestID, submission.AuthorAddress)
	if err != nil || id.IsZero() {
		return submission
	}

	if err := s.backfill(ctx, submission.ID, id); err != nil {
		return submission
	}

	resolved := id.String()
	submission.OnchainID = &resolved
	return submission
}

func (s *Service) backfill(ctx context.Context, submissionID string, onchainID domain.SubmissionID) error {
	err := s.store.SetSubmissionOnchainID(ctx, submissionID, onchainID.String())
	if errors.Is(err, store.ErrOnchainIDConflict) {
		// the row resolved to something else concurrently; keep what is there
		logger.WarnCtx(ctx, "submission already resolved to a different id",
			zap.String("submissionID", submissionID),
			zap.String("onchainID", onchainID.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabaseSyncFailure, err)
	}

	logger.InfoCtx(ctx, "submission id reconciled",
		zap.String("submissionID", submissionID),
		zap.String("onchainID", onchainID.String()))
	return nil
}
