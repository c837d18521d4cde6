package access

import "github.com/campuschain/access-layer/internal/domain"

// Decision is the outcome of one access check
type Decision struct {
	Granted bool                `json:"granted"`
	Source  domain.AccessSource `json:"source"`
}

// Decide grants access when any of the three signals grants. Each signal is
// independently sufficient; none is necessary.
func Decide(serverAsserted, ledgerConfirmed, locallyOptimistic bool) bool {
	return serverAsserted || ledgerConfirmed || locallyOptimistic
}

// source picks the reported signal for a granting decision. The ledger is
// the strongest signal, the optimistic flag the weakest.
func source(serverAsserted, ledgerConfirmed, locallyOptimistic bool) domain.AccessSource {
	switch {
	case ledgerConfirmed:
		return domain.AccessSourceLedger
	case serverAsserted:
		return domain.AccessSourceServer
	case locallyOptimistic:
		return domain.AccessSourceOptimistic
	default:
		return domain.AccessSourceNone
	}
}
