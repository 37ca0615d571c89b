package models

import "errors"

var (
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrNoParticipants     = errors.New("at least one participant required")
	ErrHostNotInGathering = errors.New("host must be one of the participants")
)

// Gathering represents a named event whose expenses are settled together.
// Balances never cross gathering boundaries.
type Gathering struct {
	// ID is the unique identifier for the gathering (UUID format).
	ID string

	// Title is the display name of the gathering (e.g. "Cabin weekend").
	Title string

	// Date is the Unix timestamp of the event date.
	Date int64

	// HostID optionally identifies the hosting participant.
	HostID string

	// Participants is the list of user IDs taking part in the gathering.
	// Every expense's participant list must be a subset of this.
	Participants []string

	// CreatedAt is the Unix timestamp when the gathering was created.
	CreatedAt int64
}

// Validate checks structural invariants that do not require storage lookups.
func (g *Gathering) Validate() error {
	if g.Title == "" {
		return ErrEmptyTitle
	}
	if len(g.Participants) == 0 {
		return ErrNoParticipants
	}
	if g.HostID != "" && !g.HasParticipant(g.HostID) {
		return ErrHostNotInGathering
	}
	return nil
}

// HasParticipant reports whether the given user ID is in the gathering.
func (g *Gathering) HasParticipant(userID string) bool {
	for _, p := range g.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
