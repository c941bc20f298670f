package pool

import "time"

// Suggestion actions
const (
	ActionAdd    = "ADD"
	ActionRemove = "REMOVE"
)

// Suggestion statuses. Status is mutated only by the external confirmation
// collaborator; the engine always emits PENDING.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusIgnored   = "IGNORED"
)

// Membership statuses
const (
	MembershipActive  = "ACTIVE"
	MembershipRemoved = "REMOVED"
)

// Suggestion is a pool-membership recommendation emitted by the transition
// engine.
type Suggestion struct {
	UUID      string    `json:"uuid"`
	Symbol    string    `json:"symbol"`
	Action    string    `json:"action"`
	Reason    string    `json:"reason"`
	Score     float64   `json:"score"`
	Date      string    `json:"date"` // score date that triggered the suggestion
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership is one stint of an instrument in the pool. At most one ACTIVE
// membership exists per instrument at any time.
type Membership struct {
	ID          int64   `json:"id"`
	Symbol      string  `json:"symbol"`
	EntryDate   string  `json:"entry_date"`
	ExitDate    *string `json:"exit_date,omitempty"`
	EntryReason string  `json:"entry_reason"`
	ExitReason  *string `json:"exit_reason,omitempty"`
	Status      string  `json:"status"`
}
