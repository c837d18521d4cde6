package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/campuschain/access-layer/internal/access"
	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/entity"
	"github.com/campuschain/access-layer/internal/ledger"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/reconcile"
	"github.com/campuschain/access-layer/internal/relayer"
	"github.com/campuschain/access-layer/internal/store"
	"github.com/campuschain/access-layer/internal/store/schema"
)

// Executor submits sponsored transactions; implemented by relayer.Executor
//
//go:generate mockgen -source=service.go -destination=../mocks/actions.go -package=mocks -mock_names=Executor=MockExecutor,Reconciler=MockReconciler
type Executor interface {
	Execute(ctx context.Context, actor *domain.Actor, entity domain.EntityRef, kind domain.ActionKind, call relayer.Call) (*relayer.Handle, error)
	Handle(id string) (*relayer.Handle, bool)
}

// Reconciler backfills ledger-assigned submission ids; implemented by
// reconcile.Service
type Reconciler interface {
	Enqueue(job reconcile.Job)
	ResolvePending(ctx context.Context, submission *schema.Submission) *schema.Submission
}

// Request describes one gated action to perform on an actor's behalf
type Request struct {
	Kind   domain.ActionKind
	Entity domain.EntityRef

	// UnitIndex is the 0-based unit for complete_unit
	UnitIndex *int

	// SubmissionID is the database id of the voted submission for vote;
	// unused for remove_vote, which targets the actor's current vote
	SubmissionID string
}

// SubmissionInput is the user-authored part of a contest entry
type SubmissionInput struct {
	ContestID   string
	Title       string
	Description string
	Media       json.RawMessage
}

// Service orchestrates gated actions: it derives the ledger identifiers,
// encodes the contract call, runs it through the sponsored executor, and
// performs the database bookkeeping that follows settlement.
type Service struct {
	deriver    *entity.Deriver
	reader     ledger.Reader
	encoder    *ledger.Encoder
	book       *ledger.AddressBook
	executor   Executor
	store      store.Store
	reconciler Reconciler
	optimistic *access.OptimisticStore
	jcs        adapter.JCS
	clock      adapter.Clock
}

// NewService creates the gated action service
func NewService(
	deriver *entity.Deriver,
	reader ledger.Reader,
	encoder *ledger.Encoder,
	book *ledger.AddressBook,
	executor Executor,
	st store.Store,
	reconciler Reconciler,
	optimistic *access.OptimisticStore,
	jcs adapter.JCS,
	clock adapter.Clock,
) *Service {
	return &Service{
		deriver:    deriver,
		reader:     reader,
		encoder:    encoder,
		book:       book,
		executor:   executor,
		store:      st,
		reconciler: reconciler,
		optimistic: optimistic,
		jcs:        jcs,
		clock:      clock,
	}
}

// Handle returns a previously created action handle by id
func (s *Service) Handle(id string) (*relayer.Handle, bool) {
	return s.executor.Handle(id)
}

// Perform executes one gated action. The returned handle tracks the
// transaction; callers poll it rather than blocking on settlement.
func (s *Service) Perform(ctx context.Context, actor *domain.Actor, req Request) (*relayer.Handle, error) {
	if !req.Entity.Valid() {
		return nil, fmt.Errorf("%w: invalid entity reference", domain.ErrIdentifierNotFound)
	}

	data, afterSettled, err := s.prepare(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	handle, err := s.executor.Execute(ctx, actor, req.Entity, req.Kind, relayer.Call{
		To:   s.book.WriteTarget(),
		Data: data,
	})
	if err != nil {
		return nil, err
	}

	// grant locally as soon as the relayer accepts the write; the flag
	// bridges the entire confirming window until the ledger reader
	// observes the new state
	s.optimistic.Set(actor.PrimaryAddress, req.Entity.Key())

	go s.awaitSettlement(handle, afterSettled)

	return handle, nil
}

// prepare encodes the contract call for a request and returns the database
// bookkeeping to run after settlement
func (s *Service) prepare(ctx context.Context, actor *domain.Actor, req Request) ([]byte, func(context.Context), error) {
	switch req.Kind {
	case domain.ActionEnroll:
		tokenID, err := s.entityTokenID(req.Entity)
		if err != nil {
			return nil, nil, err
		}
		data, err := s.encoder.EncodeEnroll(tokenID)
		return data, nil, err

	case domain.ActionCompleteUnit:
		if req.UnitIndex == nil {
			return nil, nil, fmt.Errorf("%w: complete_unit requires a unit index", domain.ErrIdentifierNotFound)
		}
		tokenID, err := s.entityTokenID(req.Entity)
		if err != nil {
			return nil, nil, err
		}
		data, err := s.encoder.EncodeCompleteUnit(tokenID, *req.UnitIndex)
		return data, nil, err

	case domain.ActionVote:
		target, err := s.resolveVoteTarget(ctx, req.SubmissionID)
		if err != nil {
			return nil, nil, err
		}
		data, err := s.encoder.EncodeVote(target)
		if err != nil {
			return nil, nil, err
		}
		voter := actor.ExecutionAddress()
		after := func(ctx context.Context) {
			err := s.store.RecordVote(ctx, &schema.Vote{
				VoterAddress: voter,
				ContestID:    req.Entity.ID,
				SubmissionID: req.SubmissionID,
			})
			if err != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("failed to record settled vote: %w", err),
					zap.String("voterAddress", voter),
					zap.String("contestID", req.Entity.ID))
			}
		}
		return data, after, nil

	case domain.ActionRemoveVote:
		voter := actor.ExecutionAddress()
		target, err := s.currentVoteTarget(ctx, voter, req.Entity)
		if err != nil {
			return nil, nil, err
		}
		data, err := s.encoder.EncodeRemoveVote(target)
		if err != nil {
			return nil, nil, err
		}
		after := func(ctx context.Context) {
			if err := s.store.RemoveVote(ctx, voter, req.Entity.ID); err != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("failed to remove settled vote: %w", err),
					zap.String("voterAddress", voter),
					zap.String("contestID", req.Entity.ID))
			}
		}
		return data, after, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown action %q", domain.ErrIdentifierNotFound, req.Kind)
	}
}

// CreateSubmission creates the database row for a contest entry, submits
// the sponsored ledger write, and schedules reconciliation of the
// ledger-assigned id once the write settles.
func (s *Service) CreateSubmission(ctx context.Context, actor *domain.Actor, input SubmissionInput) (*schema.Submission, *relayer.Handle, error) {
	if input.ContestID == "" || input.Title == "" {
		return nil, nil, fmt.Errorf("%w: contest id and title are required", domain.ErrIdentifierNotFound)
	}

	numericID := s.deriver.NumericID(input.ContestID)
	metadataURI, err := s.metadataURI(input)
	if err != nil {
		return nil, nil, err
	}

	submission := &schema.Submission{
		ID:               ulid.Make().String(),
		ContestID:        input.ContestID,
		NumericContestID: numericID,
		AuthorAddress:    actor.ExecutionAddress(),
		Title:            input.Title,
		Description:      input.Description,
		Media:            datatypes.JSON(input.Media),
		MetadataURI:      metadataURI,
	}
	if err := s.store.CreateSubmission(ctx, submission); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrDatabaseSyncFailure, err)
	}

	data, err := s.encoder.EncodeSubmitEntry(numericID, metadataURI)
	if err != nil {
		return nil, nil, err
	}

	entityRef := domain.EntityRef{Kind: domain.EntityKindContest, ID: input.ContestID}
	handle, err := s.executor.Execute(ctx, actor, entityRef, domain.ActionSubmitEntry, relayer.Call{
		To:   s.book.WriteTarget(),
		Data: data,
	})
	if err != nil {
		// the row stays; the user can retry the ledger write without
		// losing their entry
		return submission, nil, err
	}

	s.optimistic.Set(actor.PrimaryAddress, entityRef.Key())

	job := reconcile.Job{
		SubmissionID:     submission.ID,
		ContestNumericID: numericID,
		AuthorAddress:    submission.AuthorAddress,
	}
	go s.awaitSettlement(handle, func(context.Context) {
		s.reconciler.Enqueue(job)
	})

	return submission, handle, nil
}

// ListSubmissions lists a contest's entries, lazily retrying id resolution
// for rows still pending
func (s *Service) ListSubmissions(ctx context.Context, contestID string) ([]schema.Submission, error) {
	submissions, err := s.store.ListSubmissionsByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseSyncFailure, err)
	}
	for i := range submissions {
		if submissions[i].Pending() {
			s.reconciler.ResolvePending(ctx, &submissions[i])
		}
	}
	return submissions, nil
}

func (s *Service) entityTokenID(ref domain.EntityRef) (uint64, error) {
	switch ref.Kind {
	case domain.EntityKindCourse:
		return s.deriver.CourseTokenID(ref.Slug, ref.ID), nil
	case domain.EntityKindContest:
		return s.deriver.NumericID(ref.ID), nil
	default:
		return 0, fmt.Errorf("%w: unknown entity kind %q", domain.ErrIdentifierNotFound, ref.Kind)
	}
}

// resolveVoteTarget maps a submission database id to its ledger id. A
// submission whose ledger id cannot be resolved is not votable yet; the
// zero id must never reach the executor.
func (s *Service) resolveVoteTarget(ctx context.Context, submissionID string) (domain.SubmissionID, error) {
	if submissionID == "" {
		return "", fmt.Errorf("%w: submission id is required", domain.ErrIdentifierNotFound)
	}
	submission, err := s.store.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDatabaseSyncFailure, err)
	}
	if submission == nil {
		return "", fmt.Errorf("%w: submission %s not found", domain.ErrIdentifierNotFound, submissionID)
	}

	if submission.Pending() {
		submission = s.reconciler.ResolvePending(ctx, submission)
	}
	if submission.Pending() {
		return "", fmt.Errorf("%w: submission %s has no ledger id yet", domain.ErrIdentifierNotFound, submissionID)
	}

	target := domain.SubmissionID(*submission.OnchainID)
	if target.IsZero() {
		return "", fmt.Errorf("%w: submission %s resolved to the zero id", domain.ErrIdentifierNotFound, submissionID)
	}
	return target, nil
}

// currentVoteTarget finds the ledger id of the actor's current vote in a
// contest, falling back to the ledger when the database has no row
func (s *Service) currentVoteTarget(ctx context.Context, voter string, ref domain.EntityRef) (domain.SubmissionID, error) {
	vote, err := s.store.GetVote(ctx, voter, ref.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDatabaseSyncFailure, err)
	}
	if vote != nil {
		return s.resolveVoteTarget(ctx, vote.SubmissionID)
	}

	target, err := s.reader.GetVoteTarget(ctx, s.deriver.NumericID(ref.ID), voter)
	if err != nil {
		return "", err
	}
	if target.IsZero() {
		return "", fmt.Errorf("%w: no vote to remove in contest %s", domain.ErrIdentifierNotFound, ref.ID)
	}
	return target, nil
}

// metadataURI canonicalizes the entry metadata and derives a
// content-addressed pointer from it. Canonical JSON keeps the hash stable
// across map orderings.
func (s *Service) metadataURI(input SubmissionInput) (string, error) {
	media := input.Media
	if len(media) == 0 {
		media = json.RawMessage("[]")
	}
	raw, err := json.Marshal(map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"media":       media,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission metadata: %w", err)
	}

	canonical, err := s.jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize submission metadata: %w", err)
	}

	return "campus://metadata/" + hexutil.Encode(crypto.Keccak256(canonical)), nil
}

// awaitSettlement watches a handle and runs the follow-up once it settles.
// Failed or timed-out handles run nothing.
func (s *Service) awaitSettlement(handle *relayer.Handle, afterSettled func(context.Context)) {
	for {
		switch handle.State() {
		case relayer.StateSettled:
			if afterSettled != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				afterSettled(ctx)
				cancel()
			}
			return
		case relayer.StateFailed:
			return
		}
		s.clock.Sleep(500 * time.Millisecond)
	}
}
