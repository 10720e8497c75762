package model

import (
	"fmt"

	"devlog-post-service/internal/custom_errors"
)

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

func (d VoteDirection) IsValid() error {
	switch d {
	case VoteUp, VoteDown:
		return nil
	}
	return fmt.Errorf("%w: %q", custom_errors.ErrInvalidVoteDirection, string(d))
}

func (d *VoteDirection) UnmarshalText(text []byte) error {
	vd := VoteDirection(text)
	if err := vd.IsValid(); err != nil {
		return err
	}
	*d = vd
	return nil
}

type VoteOutcome string

const (
	VoteApplied VoteOutcome = "applied"
	VoteRemoved VoteOutcome = "removed"
)

// Toggle returns the vote a user holds after requesting a vote in the given
// direction. current and the returned direction are nil when the user holds no vote.
func Toggle(current *VoteDirection, requested VoteDirection) (*VoteDirection, VoteOutcome) {
	if current != nil && *current == requested {
		return nil, VoteRemoved
	}
	next := requested
	return &next, VoteApplied
}

// Ledger records who voted on a post. A user id is in at most one of the two
// sets; both keep the order in which the votes were cast.
type Ledger struct {
	Upvotes   []int64 `json:"upvotes"`
	Downvotes []int64 `json:"downvotes"`
}

func (l *Ledger) VoteOf(userID int64) *VoteDirection {
	var d VoteDirection
	switch {
	case containsID(l.Upvotes, userID):
		d = VoteUp
	case containsID(l.Downvotes, userID):
		d = VoteDown
	default:
		return nil
	}
	return &d
}

func (l *Ledger) Apply(userID int64, direction VoteDirection) VoteOutcome {
	next, outcome := Toggle(l.VoteOf(userID), direction)

	l.Upvotes = removeID(l.Upvotes, userID)
	l.Downvotes = removeID(l.Downvotes, userID)
	if next != nil {
		switch *next {
		case VoteUp:
			l.Upvotes = append(l.Upvotes, userID)
		case VoteDown:
			l.Downvotes = append(l.Downvotes, userID)
		}
	}
	return outcome
}

func (l *Ledger) Score() int {
	return len(l.Upvotes) - len(l.Downvotes)
}

func (l Ledger) Clone() Ledger {
	return Ledger{
		Upvotes:   append([]int64{}, l.Upvotes...),
		Downvotes: append([]int64{}, l.Downvotes...),
	}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
