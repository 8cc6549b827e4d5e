package approval

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind discriminates the approval state of a request. The string form
// (pending, approved_n1, ..., approved, rejected, cancelled) exists only at
// the persistence boundary; in memory the state is this tagged value.
type Kind int

const (
	KindPending Kind = iota
	KindAtRank
	KindApproved
	KindRejected
	KindCancelled
)

// State is the in-memory approval state of a request. Rank is meaningful
// only for KindAtRank and names the chain rank whose approval is required
// next.
type State struct {
	Kind Kind
	Rank int
}

func Pending() State        { return State{Kind: KindPending} }
func AtRank(rank int) State { return State{Kind: KindAtRank, Rank: rank} }
func Approved() State       { return State{Kind: KindApproved} }
func Rejected() State       { return State{Kind: KindRejected} }
func Cancelled() State      { return State{Kind: KindCancelled} }

var atRankRegex = regexp.MustCompile(`^approved_n([1-9][0-9]*)$`)

// ParseState converts a persisted status string to a State.
func ParseState(status string) (State, error) {
	switch status {
	case "pending":
		return Pending(), nil
	case "approved":
		return Approved(), nil
	case "rejected":
		return Rejected(), nil
	case "cancelled":
		return Cancelled(), nil
	}
	if m := atRankRegex.FindStringSubmatch(status); m != nil {
		rank, err := strconv.Atoi(m[1])
		if err != nil {
			return State{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
		}
		return AtRank(rank), nil
	}
	return State{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
}

// String returns the persisted form of the state.
func (s State) String() string {
	switch s.Kind {
	case KindPending:
		return "pending"
	case KindAtRank:
		return fmt.Sprintf("approved_n%d", s.Rank)
	case KindApproved:
		return "approved"
	case KindRejected:
		return "rejected"
	case KindCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Level is the chain rank whose approval the request currently requires:
// 0 while pending, k at approved_n{k}. Only meaningful for open states.
func (s State) Level() int {
	if s.Kind == KindAtRank {
		return s.Rank
	}
	return 0
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	switch s.Kind {
	case KindApproved, KindRejected, KindCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the request still awaits a decision.
func (s State) IsOpen() bool {
	return !s.IsTerminal()
}

// Advance returns the state after an approval at the current level, given
// the size of the approval chain: approved_n{level+1} when the chain has an
// approver at that rank, terminal approved otherwise.
func (s State) Advance(chainSize int) State {
	next := s.Level() + 1
	if next < chainSize {
		return AtRank(next)
	}
	return Approved()
}
