package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBaseMainnet     Chain = "eip155:8453"
	ChainBaseSepolia     Chain = "eip155:84532"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainBaseMainnet ||
		chain == ChainBaseSepolia
}

// Actor is an authenticated platform user in terms of its ledger addresses.
// PrimaryAddress is stable once authenticated. DelegatedAddress is the
// counterfactual smart-account address controlled by the primary address;
// it is nil until account initialization resolves it, and once resolved it
// never changes for a given primary address.
type Actor struct {
	PrimaryAddress   string
	DelegatedAddress *string
	// SponsorReady reports whether the delegated account is accepted by the
	// gas relayer. A non-nil DelegatedAddress with SponsorReady=false must
	// still be treated as incapable of sponsored execution.
	SponsorReady bool
}

// ExecutionAddress returns the address the actor acts from on the ledger:
// the delegated address when resolved, otherwise the primary address.
func (a *Actor) ExecutionAddress() string {
	if a.DelegatedAddress != nil {
		return *a.DelegatedAddress
	}
	return a.PrimaryAddress
}

// CanSponsor reports whether the actor can perform sponsored writes.
func (a *Actor) CanSponsor() bool {
	return a.DelegatedAddress != nil && a.SponsorReady
}

// EntityKind distinguishes the gated entity types
type EntityKind string

const (
	EntityKindCourse  EntityKind = "course"
	EntityKindContest EntityKind = "contest"
)

// EntityRef identifies a gated entity by its human-facing keys.
// For courses both Slug and ID are set; for contests only ID (a free-form
// string, typically a UUID).
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	Slug string     `json:"slug,omitempty"`
	ID   string     `json:"id"`
}

// Key returns the canonical cache/lock key component for the entity.
func (e EntityRef) Key() string {
	if e.Slug != "" {
		return fmt.Sprintf("%s:%s:%s", e.Kind, e.Slug, e.ID)
	}
	return fmt.Sprintf("%s:%s", e.Kind, e.ID)
}

// Valid checks that the reference identifies a known entity kind
func (e EntityRef) Valid() bool {
	switch e.Kind {
	case EntityKindCourse:
		return e.Slug != "" && e.ID != ""
	case EntityKindContest:
		return e.ID != ""
	default:
		return false
	}
}

// AccessSource records which signal granted access
type AccessSource string

const (
	AccessSourceServer     AccessSource = "server"
	AccessSourceLedger     AccessSource = "ledger"
	AccessSourceOptimistic AccessSource = "optimistic"
	AccessSourceNone       AccessSource = ""
)

// AccessRecord is the derived per-decision view of the three access signals.
// It is recomputed on every decision and never stored.
type AccessRecord struct {
	Entity            EntityRef
	Actor             string
	ServerAsserted    bool
	LedgerConfirmed   bool
	LocallyOptimistic bool
}

// ActionKind enumerates the gated state-changing actions
type ActionKind string

const (
	ActionEnroll       ActionKind = "enroll"
	ActionCompleteUnit ActionKind = "complete_unit"
	ActionSubmitEntry  ActionKind = "submit_entry"
	ActionVote         ActionKind = "vote"
	ActionRemoveVote   ActionKind = "remove_vote"
)

// IsValidActionKind checks if an action kind is known
func IsValidActionKind(kind ActionKind) bool {
	switch kind {
	case ActionEnroll, ActionCompleteUnit, ActionSubmitEntry, ActionVote, ActionRemoveVote:
		return true
	default:
		return false
	}
}

// SubmissionID is the ledger-assigned bytes32 identifier of a contest entry
type SubmissionID string

// IsZero reports whether the id is unset or the zero bytes32 value.
// The zero value means "no submission" on the ledger and must never be
// passed to a write.
func (s SubmissionID) IsZero() bool {
	if s == "" {
		return true
	}
	h := common.HexToHash(string(s))
	return h == (common.Hash{})
}

// String returns the 0x-prefixed hex representation
func (s SubmissionID) String() string {
	return string(s)
}

// Progress reports course completion for one actor
type Progress struct {
	CompletedCount int    `json:"completed_count"`
	TotalCount     int    `json:"total_count"`
	PerUnit        []bool `json:"per_unit"`
}

// NormalizeAddress normalizes an EVM address to its checksummed form
func NormalizeAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

// IsValidAddress checks that a string is a plausible EVM address
func IsValidAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}
