package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/logger"
)

// Query names one of the fixed read-only ledger queries
type Query string

const (
	QueryIsEnrolled          Query = "isEnrolled"
	QueryIsUnitCompleted     Query = "isUnitCompleted"
	QueryUnitsCompleted      Query = "unitsCompleted"
	QueryGetSubmissionID     Query = "getSubmissionId"
	QueryGetVoteTarget       Query = "getVoteTarget"
	QueryComputeSubmissionID Query = "computeSubmissionId"
)

// CacheKey identifies one cached (query, args) result
type CacheKey string

// Config holds the reader cache configuration
type Config struct {
	// ShortTTL caches enrollment and vote-target reads; these are the
	// queries most likely to change right after a user acts.
	ShortTTL time.Duration

	// LongTTL caches progress reads
	LongTTL time.Duration

	// StaleWindow bounds how old a cached value may be and still serve as
	// fallback when the ledger transport fails.
	StaleWindow time.Duration
}

// Reader executes read-only queries against the campus contract on one
// hard-configured network target, independent of whatever network the
// actor's wallet is attached to. Results are cached per (query, args) key;
// a transport failure degrades to the last known good value and never
// regresses a previously confirmed positive.
//
//go:generate mockgen -source=reader.go -destination=../mocks/ledger_reader.go -package=mocks -mock_names=Reader=MockLedgerReader
type Reader interface {
	// IsEnrolled reports whether the account holds the course badge
	IsEnrolled(ctx context.Context, account string, tokenID uint64) (bool, error)

	// IsUnitCompleted reports completion of one course unit (0-based)
	IsUnitCompleted(ctx context.Context, account string, tokenID uint64, unitIndex int) (bool, error)

	// UnitsCompleted returns the completed-units bitset; bit i corresponds
	// to the 0-based application unit index i
	UnitsCompleted(ctx context.Context, account string, tokenID uint64) (*big.Int, error)

	// GetSubmissionID returns the account's submission id in a contest, or
	// the zero id when none exists
	GetSubmissionID(ctx context.Context, contestNumericID uint64, account string) (domain.SubmissionID, error)

	// GetVoteTarget returns the submission the account currently votes for
	// in a contest, or the zero id
	GetVoteTarget(ctx context.Context, contestNumericID uint64, account string) (domain.SubmissionID, error)

	// ComputeSubmissionID predicts the submission id the ledger would
	// assign; pure contract call, no state dependency
	ComputeSubmissionID(ctx context.Context, contestNumericID uint64, account string) (domain.SubmissionID, error)

	// InvalidateActorEntity drops every cached result for one
	// (account, entity) pair
	InvalidateActorEntity(account string, entityScope string)

	// CourseScope returns the cache scope for a course entity
	CourseScope(tokenID uint64) string

	// ContestScope returns the cache scope for a contest entity
	ContestScope(contestNumericID uint64) string
}

type cacheEntry struct {
	value    interface{}
	cachedAt time.Time
}

type reader struct {
	client adapter.EthClient
	book   *AddressBook
	abi    abi.ABI
	clock  adapter.Clock
	config Config

	mu    sync.RWMutex
	cache map[CacheKey]cacheEntry
}

// NewReader creates a Reader pinned to the given client and address book.
func NewReader(client adapter.EthClient, book *AddressBook, clock adapter.Clock, cfg Config) (Reader, error) {
	parsed, err := parseABI()
	if err != nil {
		return nil, err
	}
	if cfg.ShortTTL == 0 {
		cfg.ShortTTL = 5 * time.Second
	}
	if cfg.LongTTL == 0 {
		cfg.LongTTL = 30 * time.Second
	}
	if cfg.StaleWindow == 0 {
		cfg.StaleWindow = 10 * time.Minute
	}
	return &reader{
		client: client,
		book:   book,
		abi:    parsed,
		clock:  clock,
		config: cfg,
		cache:  make(map[CacheKey]cacheEntry),
	}, nil
}

// CourseScope returns the cache scope for a course entity
func (r *reader) CourseScope(tokenID uint64) string {
	return fmt.Sprintf("course:%d", tokenID)
}

// ContestScope returns the cache scope for a contest entity
func (r *reader) ContestScope(contestNumericID uint64) string {
	return fmt.Sprintf("contest:%d", contestNumericID)
}

func (r *reader) key(account, entityScope string, query Query, extra ...interface{}) CacheKey {
	k := fmt.Sprintf("%s|%s|%s", strings.ToLower(account), entityScope, query)
	for _, e := range extra {
		k += fmt.Sprintf("|%v", e)
	}
	return CacheKey(k)
}

// InvalidateActorEntity drops every cached result for one (account, entity) pair
func (r *reader) InvalidateActorEntity(account string, entityScope string) {
	prefix := fmt.Sprintf("%s|%s|", strings.ToLower(account), entityScope)

	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.cache {
		if strings.HasPrefix(string(k), prefix) {
			delete(r.cache, k)
		}
	}
}

// readCached serves the cached value within ttl, otherwise fetches. A fetch
// failure falls back to the stale cached value inside the stale window; the
// failure is never written to the cache, so a previously confirmed positive
// survives transient ledger blips.
func (r *reader) readCached(ctx context.Context, key CacheKey, ttl time.Duration, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	r.mu.RLock()
	entry, ok := r.cache[key]
	r.mu.RUnlock()

	now := r.clock.Now()
	if ok && now.Sub(entry.cachedAt) < ttl {
		return entry.value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		if ok && now.Sub(entry.cachedAt) < r.config.StaleWindow {
			logger.WarnCtx(ctx, "ledger read failed, serving last known value",
				zap.String("key", string(key)),
				zap.Error(err))
			return entry.value, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}

	r.mu.Lock()
	r.cache[key] = cacheEntry{value: value, cachedAt: now}
	r.mu.Unlock()

	return value, nil
}

// call executes one eth_call against a specific contract address
func (r *reader) call(ctx context.Context, to common.Address, method string, args ...interface{}) ([]byte, error) {
	data, err := r.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	result, err := r.client.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	return result, nil
}

// fetchBool runs a bool query over the read targets. A false from the
// current contract falls through to the deprecated legacy contracts so
// state recorded before the migration still grants access.
func (r *reader) fetchBool(ctx context.Context, method string, args ...interface{}) (bool, error) {
	var lastErr error
	succeeded := false
	for _, target := range r.book.ReadTargets() {
		result, err := r.call(ctx, target, method, args...)
		if err != nil {
			lastErr = err
			continue
		}
		succeeded = true

		var value bool
		if err := r.abi.UnpackIntoInterface(&value, method, result); err != nil {
			lastErr = fmt.Errorf("failed to unpack %s result: %w", method, err)
			continue
		}
		if value {
			return true, nil
		}
	}
	if succeeded {
		return false, nil
	}
	return false, lastErr
}

// fetchBig runs a uint256 query over the read targets, taking the first
// non-zero result
func (r *reader) fetchBig(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	var lastErr error
	succeeded := false
	for _, target := range r.book.ReadTargets() {
		result, err := r.call(ctx, target, method, args...)
		if err != nil {
			lastErr = err
			continue
		}
		succeeded = true

		var value *big.Int
		if err := r.abi.UnpackIntoInterface(&value, method, result); err != nil {
			lastErr = fmt.Errorf("failed to unpack %s result: %w", method, err)
			continue
		}
		if value != nil && value.Sign() != 0 {
			return value, nil
		}
	}
	if succeeded {
		return big.NewInt(0), nil
	}
	return nil, lastErr
}

// fetchHash runs a bytes32 query over the read targets, taking the first
// non-zero result
func (r *reader) fetchHash(ctx context.Context, method string, args ...interface{}) (common.Hash, error) {
	var lastErr error
	succeeded := false
	for _, target := range r.book.ReadTargets() {
		result, err := r.call(ctx, target, method, args...)
		if err != nil {
			lastErr = err
			continue
		}
		succeeded = true

		var value [32]byte
		if err := r.abi.UnpackIntoInterface(&value, method, result); err != nil {
			lastErr = fmt.Errorf("failed to unpack %s result: %w", method, err)
			continue
		}
		if value != ([32]byte{}) {
			return value, nil
		}
	}
	if succeeded {
		return common.Hash{}, nil
	}
	return common.Hash{}, lastErr
}

// IsEnrolled reports whether the account holds the course badge
func (r *reader) IsEnrolled(ctx context.Context, account string, tokenID uint64) (bool, error) {
	key := r.key(account, r.CourseScope(tokenID), QueryIsEnrolled)
	value, err := r.readCached(ctx, key, r.config.ShortTTL, func(ctx context.Context) (interface{}, error) {
		return r.fetchBool(ctx, "isEnrolled", common.HexToAddress(account), new(big.Int).SetUint64(tokenID))
	})
	if err != nil {
		return false, err
	}
	return value.(bool), nil
}

// IsUnitCompleted reports completion of one course unit. The application
// uses 0-based unit indexes; the contract interface is 1-based.
func (r *reader) IsUnitCompleted(ctx context.Context, account string, tokenID uint64, unitIndex int) (bool, error) {
	ledgerIndex, err := toLedgerUnitIndex(unitIndex)
	if err != nil {
		return false, err
	}

	key := r.key(account, r.CourseScope(tokenID), QueryIsUnitCompleted, unitIndex)
	value, err := r.readCached(ctx, key, r.config.LongTTL, func(ctx context.Context) (interface{}, error) {
		return r.fetchBool(ctx, "isModuleCompleted", common.HexToAddress(account), new(big.Int).SetUint64(tokenID), ledgerIndex)
	})
	if err != nil {
		return false, err
	}
	return value.(bool), nil
}

// UnitsCompleted returns the completed-units bitset
func (r *reader) UnitsCompleted(ctx context.Context, account string, tokenID uint64) (*big.Int, error) {
	key := r.key(account, r.CourseScope(tokenID), QueryUnitsCompleted)
	value, err := r.readCached(ctx, key, r.config.LongTTL, func(ctx context.Context) (interface{}, error) {
		return r.fetchBig(ctx, "getModulesCompleted", common.HexToAddress(account), new(big.Int).SetUint64(tokenID))
	})
	if err != nil {
		return nil, err
	}
	return value.(*big.Int), nil
}

// GetSubmissionID returns the account's submission id in a contest
func (r *reader) GetSubmissionID(ctx context.Context, contestNumericID uint64, account string) (domain.SubmissionID, error) {
	key := r.key(account, r.ContestScope(contestNumericID), QueryGetSubmissionID)
	value, err := r.readCached(ctx, key, r.config.ShortTTL, func(ctx context.Context) (interface{}, error) {
		h, err := r.fetchHash(ctx, "getUserSubmission", new(big.Int).SetUint64(contestNumericID), common.HexToAddress(account))
		if err != nil {
			return nil, err
		}
		return h, nil
	})
	if err != nil {
		return "", err
	}
	return hashToSubmissionID(value.(common.Hash)), nil
}

// GetVoteTarget returns the submission the account currently votes for
func (r *reader) GetVoteTarget(ctx context.Context, contestNumericID uint64, account string) (domain.SubmissionID, error) {
	key := r.key(account, r.ContestScope(contestNumericID), QueryGetVoteTarget)
	value, err := r.readCached(ctx, key, r.config.ShortTTL, func(ctx context.Context) (interface{}, error) {
		h, err := r.fetchHash(ctx, "getUserVoteInContest", new(big.Int).SetUint64(contestNumericID), common.HexToAddress(account))
		if err != nil {
			return nil, err
		}
		return h, nil
	})
	if err != nil {
		return "", err
	}
	return hashToSubmissionID(value.(common.Hash)), nil
}

// ComputeSubmissionID predicts the submission id the ledger would assign.
// Pure function of its inputs, so the current contract alone is consulted
// and the result is cached with the long TTL.
func (r *reader) ComputeSubmissionID(ctx context.Context, contestNumericID uint64, account string) (domain.SubmissionID, error) {
	key := r.key(account, r.ContestScope(contestNumericID), QueryComputeSubmissionID)
	value, err := r.readCached(ctx, key, r.config.LongTTL, func(ctx context.Context) (interface{}, error) {
		result, err := r.call(ctx, r.book.WriteTarget(), "computeSubmissionId", new(big.Int).SetUint64(contestNumericID), common.HexToAddress(account))
		if err != nil {
			return nil, err
		}
		var h [32]byte
		if err := r.abi.UnpackIntoInterface(&h, "computeSubmissionId", result); err != nil {
			return nil, fmt.Errorf("failed to unpack computeSubmissionId result: %w", err)
		}
		return common.Hash(h), nil
	})
	if err != nil {
		return "", err
	}
	return hashToSubmissionID(value.(common.Hash)), nil
}

func hashToSubmissionID(h common.Hash) domain.SubmissionID {
	if h == (common.Hash{}) {
		return ""
	}
	return domain.SubmissionID(h.Hex())
}

// toLedgerUnitIndex translates a 0-based application unit index to the
// contract's 1-based uint8 index
func toLedgerUnitIndex(unitIndex int) (uint8, error) {
	if unitIndex < 0 || unitIndex > 254 {
		return 0, fmt.Errorf("unit index out of range: %d", unitIndex)
	}
	return uint8(unitIndex + 1), nil
}
