package bookings

import (
	"strings"
	"time"

	"shareit-backend/internal/platform/httpx"
)

// Status is the booking lifecycle state. WAITING is set at creation,
// APPROVED and REJECTED only ever follow WAITING (REJECTED may be set
// again, see Service.Approve).
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State is the listing filter, evaluated against "now" at call time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState rejects unknown values instead of letting them fall through
// to the store. An empty string means ALL.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch s := State(strings.ToUpper(raw)); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", httpx.ErrInvalid("unknown state: " + raw)
	}
}

// Booking is a bookings table row joined with the item and booker names
// needed to build responses.
type Booking struct {
	ID         int64
	ItemID     int64
	ItemName   string
	OwnerID    int64
	BookerID   int64
	BookerName string
	Start      time.Time
	End        time.Time
	Status     Status
}

// ItemInfo is the read-only item lookup the booking flow needs.
type ItemInfo struct {
	ID        int64
	OwnerID   int64
	Name      string
	Available bool
}
