package ledger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/campuschain/access-layer/internal/domain"
)

// Encoder packs write calls for the campus contract. The encoded calldata
// is what gets handed to the relayer; the target address always comes from
// the address book's write target.
type Encoder struct {
	abi abi.ABI
}

// NewEncoder creates an Encoder over the campus contract ABI
func NewEncoder() (*Encoder, error) {
	parsed, err := parseABI()
	if err != nil {
		return nil, err
	}
	return &Encoder{abi: parsed}, nil
}

// EncodeEnroll packs an enroll call for a course badge
func (e *Encoder) EncodeEnroll(tokenID uint64) ([]byte, error) {
	data, err := e.abi.Pack("enroll", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to pack enroll call: %w", err)
	}
	return data, nil
}

// EncodeCompleteUnit packs a completeModule call. The unit index is the
// 0-based application index; the contract takes the 1-based one.
func (e *Encoder) EncodeCompleteUnit(tokenID uint64, unitIndex int) ([]byte, error) {
	ledgerIndex, err := toLedgerUnitIndex(unitIndex)
	if err != nil {
		return nil, err
	}
	data, err := e.abi.Pack("completeModule", new(big.Int).SetUint64(tokenID), ledgerIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to pack completeModule call: %w", err)
	}
	return data, nil
}

// EncodeSubmitEntry packs a submitEntry call with the canonicalized
// metadata URI
func (e *Encoder) EncodeSubmitEntry(contestNumericID uint64, metadataURI string) ([]byte, error) {
	data, err := e.abi.Pack("submitEntry", new(big.Int).SetUint64(contestNumericID), metadataURI)
	if err != nil {
		return nil, fmt.Errorf("failed to pack submitEntry call: %w", err)
	}
	return data, nil
}

// EncodeVote packs a vote call for a submission. The zero submission id
// means "no submission" on the ledger and is rejected here before it can
// reach a transaction.
func (e *Encoder) EncodeVote(submissionID domain.SubmissionID) ([]byte, error) {
	target, err := submissionIDToHash(submissionID)
	if err != nil {
		return nil, err
	}
	data, err := e.abi.Pack("vote", target)
	if err != nil {
		return nil, fmt.Errorf("failed to pack vote call: %w", err)
	}
	return data, nil
}

// EncodeRemoveVote packs a removeVote call for a submission
func (e *Encoder) EncodeRemoveVote(submissionID domain.SubmissionID) ([]byte, error) {
	target, err := submissionIDToHash(submissionID)
	if err != nil {
		return nil, err
	}
	data, err := e.abi.Pack("removeVote", target)
	if err != nil {
		return nil, fmt.Errorf("failed to pack removeVote call: %w", err)
	}
	return data, nil
}

func submissionIDToHash(id domain.SubmissionID) ([32]byte, error) {
	if id.IsZero() {
		return [32]byte{}, domain.ErrIdentifierNotFound
	}
	return common.HexToHash(string(id)), nil
}
