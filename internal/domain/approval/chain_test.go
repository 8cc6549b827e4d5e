package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testChain() Chain {
	return Chain{
		{Rank: 0, ManagerID: "mgr-direct", ManagerName: "Direct Manager"},
		{Rank: 1, ManagerID: "mgr-n1", ManagerName: "N+1 Manager"},
	}
}

func TestChainApproverAt(t *testing.T) {
	t.Parallel()

	chain := testChain()

	entry, ok := chain.ApproverAt(0)
	assert.True(t, ok)
	assert.Equal(t, "mgr-direct", entry.ManagerID)

	entry, ok = chain.ApproverAt(1)
	assert.True(t, ok)
	assert.Equal(t, "mgr-n1", entry.ManagerID)

	_, ok = chain.ApproverAt(2)
	assert.False(t, ok)
}

func TestChainCanApprove(t *testing.T) {
	t.Parallel()

	chain := testChain()

	assert.NoError(t, chain.CanApprove("mgr-direct", 0))
	assert.NoError(t, chain.CanApprove("mgr-n1", 1))

	// Wrong approver at a level that exists.
	assert.ErrorIs(t, chain.CanApprove("mgr-n1", 0), ErrNotCurrentApprover)
	assert.ErrorIs(t, chain.CanApprove("mgr-direct", 1), ErrNotCurrentApprover)

	// Level with no configured approver.
	assert.ErrorIs(t, chain.CanApprove("mgr-direct", 2), ErrNoApproverAtLevel)

	// Empty chain never authorizes anyone.
	assert.ErrorIs(t, Chain{}.CanApprove("mgr-direct", 0), ErrNoApproverAtLevel)
}
