package domain

import "time"

// SettlementEvent announces a gated action that settled on the ledger.
// Downstream services (notifications, analytics, search indexing) consume
// these instead of polling the chain themselves.
type SettlementEvent struct {
	ActorAddress string     `json:"actor_address"`
	Entity       EntityRef  `json:"entity"`
	Action       ActionKind `json:"action"`
	TxHash       string     `json:"tx_hash"`
	Chain        Chain      `json:"chain"`
	OccurredAt   time.Time  `json:"occurred_at"`
}
