package access

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/entity"
	"github.com/campuschain/access-layer/internal/ledger"
	"github.com/campuschain/access-layer/internal/logger"
)

// EnrollmentStore reads the server-asserted access records
//
//go:generate mockgen -source=service.go -destination=../mocks/access.go -package=mocks
type EnrollmentStore interface {
	HasEnrollment(ctx context.Context, actorAddress string, courseTokenID uint64) (bool, error)
}

// Service combines the three access signals into one decision per
// (actor, entity) pair.
type Service struct {
	store      EnrollmentStore
	reader     ledger.Reader
	deriver    *entity.Deriver
	optimistic *OptimisticStore
}

// NewService creates the access decision service
func NewService(store EnrollmentStore, reader ledger.Reader, deriver *entity.Deriver, optimistic *OptimisticStore) *Service {
	return &Service{
		store:      store,
		reader:     reader,
		deriver:    deriver,
		optimistic: optimistic,
	}
}

// Optimistic exposes the optimistic store for post-settlement flagging
func (s *Service) Optimistic() *OptimisticStore {
	return s.optimistic
}

// EntityTokenID derives the ledger token id for a gated entity
func (s *Service) EntityTokenID(ref domain.EntityRef) (uint64, error) {
	if !ref.Valid() {
		return 0, fmt.Errorf("%w: invalid entity reference %q", domain.ErrIdentifierNotFound, ref.Key())
	}
	switch ref.Kind {
	case domain.EntityKindCourse:
		return s.deriver.CourseTokenID(ref.Slug, ref.ID), nil
	default:
		return s.deriver.NumericID(ref.ID), nil
	}
}

// CheckAccess decides whether the actor may access the entity. A ledger
// outage degrades the decision to the remaining signals; only when neither
// the server record nor an optimistic flag grants does the outage surface
// as an error.
func (s *Service) CheckAccess(ctx context.Context, ref domain.EntityRef, actor *domain.Actor) (Decision, error) {
	tokenID, err := s.EntityTokenID(ref)
	if err != nil {
		return Decision{}, err
	}

	serverAsserted, err := s.store.HasEnrollment(ctx, actor.PrimaryAddress, tokenID)
	if err != nil {
		// the database is one signal of three; a read failure only narrows
		// the decision
		logger.ErrorCtx(ctx, fmt.Errorf("failed to read enrollment record: %w", err),
			zap.String("actorAddress", actor.PrimaryAddress),
			zap.String("entity", ref.Key()))
		serverAsserted = false
	}

	// optimistic flags are keyed by the primary address, the stable actor
	// identity; every writer of the flag uses the same key
	locallyOptimistic := s.optimistic.Get(actor.PrimaryAddress, ref.Key())

	ledgerConfirmed, ledgerErr := s.reader.IsEnrolled(ctx, actor.ExecutionAddress(), tokenID)
	if ledgerErr != nil {
		if Decide(serverAsserted, false, locallyOptimistic) {
			return Decision{
				Granted: true,
				Source:  source(serverAsserted, false, locallyOptimistic),
			}, nil
		}
		return Decision{}, ledgerErr
	}

	if ledgerConfirmed && locallyOptimistic {
		// the ledger caught up; the stand-in flag has done its job
		s.optimistic.Clear(actor.PrimaryAddress, ref.Key())
	}

	return Decision{
		Granted: Decide(serverAsserted, ledgerConfirmed, locallyOptimistic),
		Source:  source(serverAsserted, ledgerConfirmed, locallyOptimistic),
	}, nil
}

// GetProgress reports unit completion for a course. totalUnits comes from
// the course definition; bits beyond it are ignored.
func (s *Service) GetProgress(ctx context.Context, ref domain.EntityRef, actor *domain.Actor, totalUnits int) (domain.Progress, error) {
	if ref.Kind != domain.EntityKindCourse || !ref.Valid() {
		return domain.Progress{}, fmt.Errorf("%w: progress requires a course reference", domain.ErrIdentifierNotFound)
	}
	if totalUnits < 0 {
		totalUnits = 0
	}

	tokenID := s.deriver.CourseTokenID(ref.Slug, ref.ID)
	bits, err := s.reader.UnitsCompleted(ctx, actor.ExecutionAddress(), tokenID)
	if err != nil {
		return domain.Progress{}, err
	}

	progress := domain.Progress{
		TotalCount: totalUnits,
		PerUnit:    make([]bool, totalUnits),
	}
	for i := 0; i < totalUnits; i++ {
		if bits.Bit(i) == 1 {
			progress.PerUnit[i] = true
			progress.CompletedCount++
		}
	}
	return progress, nil
}
