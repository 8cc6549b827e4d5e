package approval

// Entry is one approver in an employee's chain. Rank 0 is the direct
// manager, rank 1 the N+1 manager, and so on.
type Entry struct {
	Rank        int    `json:"rank"`
	ManagerID   string `json:"manager_id"`
	ManagerName string `json:"manager_name"`
}

// Chain is the ordered list of an employee's approvers by rank.
type Chain []Entry

// ApproverAt returns the entry at the rank, if any.
func (c Chain) ApproverAt(rank int) (Entry, bool) {
	for _, e := range c {
		if e.Rank == rank {
			return e, true
		}
	}
	return Entry{}, false
}

// CanApprove checks that the manager is the chain entry at exactly the
// required level. A missing entry at the current level is an authorization
// failure, not chain exhaustion: exhaustion only matters when looking at
// the next level during a transition.
func (c Chain) CanApprove(managerEmployeeID string, level int) error {
	entry, ok := c.ApproverAt(level)
	if !ok {
		return ErrNoApproverAtLevel
	}
	if entry.ManagerID != managerEmployeeID {
		return ErrNotCurrentApprover
	}
	return nil
}
