package domain

type TransportDirection string

const (
	// DirectionTo is a carry toward the practice location.
	DirectionTo TransportDirection = "to"
	// DirectionFrom is a carry back from the practice location.
	DirectionFrom TransportDirection = "from"
)

// Transport binds one carrier to one board for one direction of one practice.
// At most one record exists per (practice, board, direction).
type Transport struct {
	ID         uint               `json:"id"`
	PracticeID uint               `json:"practice_id"`
	UserID     uint               `json:"user_id"`
	User       User               `json:"user"`
	BoardID    uint               `json:"board_id"`
	Board      Board              `json:"board"`
	Direction  TransportDirection `json:"direction"`
}

type TransportOutcome string

const (
	TransportCreated TransportOutcome = "created"
	TransportRebound TransportOutcome = "rebound"
	TransportKept    TransportOutcome = "kept"
	TransportFailed  TransportOutcome = "failed"
)

// TransportItemResult is the per-board outcome of a bulk transport assignment.
// Bulk assignment applies item by item and does not roll back earlier items
// when a later one fails.
type TransportItemResult struct {
	BoardID uint             `json:"board_id"`
	Outcome TransportOutcome `json:"outcome"`
	Detail  string           `json:"detail,omitempty"`
}

// LotteryResult reports one finished return-carrier draw.
type LotteryResult struct {
	Winners    []User      `json:"winners"`
	Transports []Transport `json:"transports"`
}
