package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/campuschain/access-layer/internal/domain"
)

// AddressBook resolves the campus contract addresses for one fixed chain.
// It keeps a two-tier view: the current address, which serves every write
// and is the first read target, and deprecated legacy addresses consulted
// only as read fallback during the contract migration window. Writes must
// never target a legacy address.
type AddressBook struct {
	chain   domain.Chain
	current common.Address
	legacy  []common.Address
}

// NewAddressBook validates and builds the address book for a chain.
func NewAddressBook(chain domain.Chain, current string, legacy []string) (*AddressBook, error) {
	if !domain.IsValidChain(chain) {
		return nil, fmt.Errorf("unsupported chain: %s", chain)
	}
	if !domain.IsValidAddress(current) {
		return nil, fmt.Errorf("invalid current contract address for %s: %s", chain, current)
	}

	book := &AddressBook{
		chain:   chain,
		current: common.HexToAddress(current),
	}
	for _, addr := range legacy {
		if !domain.IsValidAddress(addr) {
			return nil, fmt.Errorf("invalid legacy contract address for %s: %s", chain, addr)
		}
		book.legacy = append(book.legacy, common.HexToAddress(addr))
	}

	return book, nil
}

// Chain returns the chain this book is pinned to
func (b *AddressBook) Chain() domain.Chain {
	return b.chain
}

// WriteTarget returns the only address writes may go to
func (b *AddressBook) WriteTarget() common.Address {
	return b.current
}

// ReadTargets returns the read addresses in consultation order: current
// first, then the deprecated legacy contracts.
func (b *AddressBook) ReadTargets() []common.Address {
	targets := make([]common.Address, 0, 1+len(b.legacy))
	targets = append(targets, b.current)
	targets = append(targets, b.legacy...)
	return targets
}

// HasLegacy reports whether any legacy contracts remain configured
func (b *AddressBook) HasLegacy() bool {
	return len(b.legacy) > 0
}
