package relayer

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/logger"
)

// Call is one encoded contract invocation to execute through the relayer
type Call struct {
	To    common.Address
	Data  []byte
	Value *big.Int
}

// HandleState tracks a sponsored transaction through its lifecycle
type HandleState string

const (
	StateSubmitted  HandleState = "submitted"
	StateConfirming HandleState = "confirming"
	StateSettled    HandleState = "settled"
	StateFailed     HandleState = "failed"
)

// Handle is the caller's view of one in-flight or completed sponsored
// transaction. State transitions happen on a background goroutine; reads
// go through the accessors.
type Handle struct {
	ID     string
	Actor  string
	Entity domain.EntityRef
	Kind   domain.ActionKind
	TxHash string

	mu         sync.RWMutex
	state      HandleState
	err        error
	finishedAt time.Time
}

// NewHandle creates a handle in the given state
func NewHandle(id string, actor string, entity domain.EntityRef, kind domain.ActionKind, txHash string, state HandleState) *Handle {
	return &Handle{
		ID:     id,
		Actor:  actor,
		Entity: entity,
		Kind:   kind,
		TxHash: txHash,
		state:  state,
	}
}

// State returns the current lifecycle state
func (h *Handle) State() HandleState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Err returns the terminal error for a failed handle, nil otherwise
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

func (h *Handle) transition(state HandleState, err error, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = state
	h.err = err
	if state == StateSettled || state == StateFailed {
		h.finishedAt = now
	}
}

// SettledHook runs after a transaction settles on the ledger
type SettledHook func(actor *domain.Actor, entity domain.EntityRef, kind domain.ActionKind, txHash string)

// Config holds the executor confirmation parameters
type Config struct {
	// GraceDelay is the wait between relayer acceptance and the first
	// receipt poll
	GraceDelay time.Duration

	// PollInterval separates receipt polls
	PollInterval time.Duration

	// MaxPollAttempts bounds the receipt poll loop
	MaxPollAttempts int

	// HandleRetention keeps finished handles queryable for this long
	HandleRetention time.Duration
}

// Executor submits sponsored transactions and tracks them to settlement.
// Execution strictly requires a sponsor-ready delegated account; there is
// no path where the user's own wallet pays gas. One write per
// (actor, entity) pair may be in flight at a time.
type Executor struct {
	client    Client
	eth       adapter.EthClient
	clock     adapter.Clock
	config    Config
	onSettled []SettledHook

	mu       sync.Mutex
	handles  map[string]*Handle
	inFlight map[string]string
}

// NewExecutor creates an Executor. Hooks run in order after settlement.
func NewExecutor(client Client, eth adapter.EthClient, clock adapter.Clock, cfg Config, onSettled ...SettledHook) *Executor {
	if cfg.GraceDelay == 0 {
		cfg.GraceDelay = 3 * time.Second
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxPollAttempts == 0 {
		cfg.MaxPollAttempts = 30
	}
	if cfg.HandleRetention == 0 {
		cfg.HandleRetention = time.Hour
	}
	return &Executor{
		client:    client,
		eth:       eth,
		clock:     clock,
		config:    cfg,
		onSettled: onSettled,
		handles:   make(map[string]*Handle),
		inFlight:  make(map[string]string),
	}
}

func pairKey(actorAddress string, entity domain.EntityRef) string {
	return strings.ToLower(actorAddress) + "|" + entity.Key()
}

// Execute submits one sponsored call for the actor. It fails fast with
// ErrAccountNotReady when the delegated account is missing or not yet
// sponsor-ready, and with ErrActionInFlight when a write for the same
// (actor, entity) pair has not reached a terminal state.
func (e *Executor) Execute(ctx context.Context, actor *domain.Actor, entity domain.EntityRef, kind domain.ActionKind, call Call) (*Handle, error) {
	if !actor.CanSponsor() {
		return nil, domain.ErrAccountNotReady
	}

	execution := actor.ExecutionAddress()
	pair := pairKey(execution, entity)

	e.mu.Lock()
	e.pruneLocked()
	if _, busy := e.inFlight[pair]; busy {
		e.mu.Unlock()
		return nil, domain.ErrActionInFlight
	}
	e.inFlight[pair] = ""
	e.mu.Unlock()

	value := big.NewInt(0)
	if call.Value != nil {
		value = call.Value
	}
	resp, err := e.client.SubmitTransaction(ctx, &SubmitRequest{
		From:  execution,
		To:    call.To.Hex(),
		Data:  hexutil.Encode(call.Data),
		Value: value.String(),
	})
	if err != nil {
		e.mu.Lock()
		delete(e.inFlight, pair)
		e.mu.Unlock()
		return nil, err
	}

	handle := NewHandle(ulid.Make().String(), execution, entity, kind, resp.TxHash, StateSubmitted)

	e.mu.Lock()
	e.handles[handle.ID] = handle
	e.inFlight[pair] = handle.ID
	e.mu.Unlock()

	logger.InfoCtx(ctx, "sponsored transaction submitted",
		zap.String("handleID", handle.ID),
		zap.String("actorAddress", execution),
		zap.String("entity", entity.Key()),
		zap.String("action", string(kind)),
		zap.String("txHash", resp.TxHash))

	go e.confirm(actor, handle, pair)

	return handle, nil
}

// Handle returns a previously created handle by id
func (e *Executor) Handle(id string) (*Handle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.handles[id]
	return h, ok
}

// confirm waits the grace delay then polls for the receipt until the
// transaction settles, fails, or the attempt budget runs out
func (e *Executor) confirm(actor *domain.Actor, handle *Handle, pair string) {
	defer func() {
		e.mu.Lock()
		delete(e.inFlight, pair)
		e.mu.Unlock()
	}()

	e.clock.Sleep(e.config.GraceDelay)
	handle.transition(StateConfirming, nil, e.clock.Now())

	txHash := common.HexToHash(handle.TxHash)
	for attempt := 0; attempt < e.config.MaxPollAttempts; attempt++ {
		if attempt > 0 {
			e.clock.Sleep(e.config.PollInterval)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		receipt, err := e.eth.TransactionReceipt(ctx, txHash)
		cancel()
		if err != nil || receipt == nil {
			continue
		}

		if receipt.Status != types.ReceiptStatusSuccessful {
			e.fail(handle, fmt.Errorf("%w: transaction %s reverted", domain.ErrTransactionRejected, handle.TxHash))
			return
		}

		handle.transition(StateSettled, nil, e.clock.Now())
		logger.Info("sponsored transaction settled",
			zap.String("handleID", handle.ID),
			zap.String("txHash", handle.TxHash))
		for _, hook := range e.onSettled {
			hook(actor, handle.Entity, handle.Kind, handle.TxHash)
		}
		return
	}

	e.fail(handle, fmt.Errorf("%w: transaction %s not confirmed in time", domain.ErrTransactionRejected, handle.TxHash))
}

func (e *Executor) fail(handle *Handle, err error) {
	handle.transition(StateFailed, err, e.clock.Now())
	logger.Error(err,
		zap.String("handleID", handle.ID),
		zap.String("actorAddress", handle.Actor),
		zap.String("entity", handle.Entity.Key()))
}

// pruneLocked drops finished handles past the retention window; caller
// holds e.mu
func (e *Executor) pruneLocked() {
	cutoff := e.clock.Now().Add(-e.config.HandleRetention)
	for id, h := range e.handles {
		h.mu.RLock()
		expired := (h.state == StateSettled || h.state == StateFailed) &&
			!h.finishedAt.IsZero() && h.finishedAt.Before(cutoff)
		h.mu.RUnlock()
		if expired {
			delete(e.handles, id)
		}
	}
}
