package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/logger"
)

// AccountInitializer prepares the delegated smart account for sponsored
// execution. The relayer-backed implementation registers the account with
// the sponsorship service; it may take a while and is called off the
// request path.
//
//go:generate mockgen -source=resolver.go -destination=../mocks/identity.go -package=mocks
type AccountInitializer interface {
	EnsureReady(ctx context.Context, primaryAddress string, delegatedAddress string) error
}

// StateStore persists resolved delegated addresses across restarts so an
// account initialized once is not re-initialized.
type StateStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key string, value string) error
}

// Config holds the counterfactual account derivation parameters. All three
// values are fixed per deployment; changing any of them changes every
// delegated address.
type Config struct {
	FactoryAddress string
	AccountSalt    string
	InitCodeHash   string

	// InitTimeout bounds one background initialization attempt
	InitTimeout time.Duration
}

// Resolver maps an authenticated primary wallet address to the Actor that
// executes on its behalf. The delegated address is derived locally and never
// changes for a given primary address; sponsor readiness flips to true only
// after the initializer confirms the account.
type Resolver struct {
	factory      common.Address
	salt         []byte
	initCodeHash []byte
	initTimeout  time.Duration

	initializer AccountInitializer
	store       StateStore

	mu      sync.RWMutex
	entries map[string]*actorEntry
}

type actorEntry struct {
	delegated    string
	ready        bool
	initializing bool
}

// NewResolver creates a Resolver. store may be nil; initializer may be nil
// when sponsorship is disabled, in which case no actor ever becomes
// sponsor-ready.
func NewResolver(cfg Config, initializer AccountInitializer, store StateStore) (*Resolver, error) {
	if !common.IsHexAddress(cfg.FactoryAddress) {
		return nil, fmt.Errorf("invalid factory address: %s", cfg.FactoryAddress)
	}
	saltBytes := common.FromHex(cfg.AccountSalt)
	if len(saltBytes) == 0 {
		return nil, fmt.Errorf("invalid account salt: %s", cfg.AccountSalt)
	}
	hashBytes := common.FromHex(cfg.InitCodeHash)
	if len(hashBytes) != 32 {
		return nil, fmt.Errorf("invalid init code hash: %s", cfg.InitCodeHash)
	}
	if cfg.InitTimeout == 0 {
		cfg.InitTimeout = 30 * time.Second
	}
	return &Resolver{
		factory:      common.HexToAddress(cfg.FactoryAddress),
		salt:         saltBytes,
		initCodeHash: hashBytes,
		initTimeout:  cfg.InitTimeout,
		initializer:  initializer,
		store:        store,
		entries:      make(map[string]*actorEntry),
	}, nil
}

// Resolve returns the Actor for an authenticated primary address. The first
// call for an address derives the delegated account and kicks off
// initialization in the background; SponsorReady stays false until that
// completes.
func (r *Resolver) Resolve(ctx context.Context, primaryAddress string) (*domain.Actor, error) {
	if !domain.IsValidAddress(primaryAddress) {
		return nil, domain.ErrNotAuthenticated
	}
	primary := domain.NormalizeAddress(primaryAddress)

	r.mu.RLock()
	entry, ok := r.entries[primary]
	r.mu.RUnlock()
	if ok {
		return r.actorFor(primary, entry), nil
	}

	delegated := r.DelegatedAddress(primary)

	r.mu.Lock()
	entry, ok = r.entries[primary]
	if !ok {
		entry = &actorEntry{delegated: delegated}
		if r.restoreReady(ctx, primary) {
			entry.ready = true
		}
		r.entries[primary] = entry
		if !entry.ready && r.initializer != nil {
			entry.initializing = true
			go r.initialize(primary, delegated)
		}
	}
	r.mu.Unlock()

	return r.actorFor(primary, entry), nil
}

// DelegatedAddress derives the counterfactual smart-account address for a
// primary address. Pure function of the resolver configuration.
func (r *Resolver) DelegatedAddress(primaryAddress string) string {
	owner := common.HexToAddress(primaryAddress)
	salt := crypto.Keccak256Hash(append(owner.Bytes(), r.salt...))
	account := crypto.CreateAddress2(r.factory, salt, r.initCodeHash)
	return domain.NormalizeAddress(account.Hex())
}

func (r *Resolver) actorFor(primary string, entry *actorEntry) *domain.Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	delegated := entry.delegated
	return &domain.Actor{
		PrimaryAddress:   primary,
		DelegatedAddress: &delegated,
		SponsorReady:     entry.ready,
	}
}

func (r *Resolver) initialize(primary, delegated string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.initTimeout)
	defer cancel()

	err := r.initializer.EnsureReady(ctx, primary, delegated)

	r.mu.Lock()
	entry := r.entries[primary]
	entry.initializing = false
	if err == nil {
		entry.ready = true
	}
	r.mu.Unlock()

	if err != nil {
		logger.Error(fmt.Errorf("failed to initialize delegated account: %w", err),
			zap.String("primaryAddress", primary),
			zap.String("delegatedAddress", delegated))
		return
	}

	r.persistReady(ctx, primary)
	logger.Info("delegated account ready",
		zap.String("primaryAddress", primary),
		zap.String("delegatedAddress", delegated))
}

func readyKey(primary string) string {
	return "sponsor_ready:" + primary
}

func (r *Resolver) restoreReady(ctx context.Context, primary string) bool {
	if r.store == nil {
		return false
	}
	value, err := r.store.GetValue(ctx, readyKey(primary))
	if err != nil {
		return false
	}
	return value == "true"
}

func (r *Resolver) persistReady(ctx context.Context, primary string) {
	if r.store == nil {
		return
	}
	if err := r.store.SetValue(ctx, readyKey(primary), "true"); err != nil {
		logger.Error(fmt.Errorf("failed to persist account readiness: %w", err),
			zap.String("primaryAddress", primary))
	}
}
