package merger

import (
	"sync"
	"testing"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequests() []model.WithdrawalRequest {
	return []model.WithdrawalRequest{
		{RequestID: "0", Description: "1 ETH requested for withdraw", Amount: "1", Recipient: "0xA", TotalVote: 2, Status: model.WithdrawStatusPending},
		{RequestID: "1", Description: "2 ETH requested for withdraw", Amount: "2", Recipient: "0xA", TotalVote: 0, Status: model.WithdrawStatusPending},
		{RequestID: "2", Description: "3 ETH requested for withdraw", Amount: "3", Recipient: "0xA", TotalVote: 5, Status: model.WithdrawStatusCompleted},
	}
}

func TestApply_VoteIncrementsExactlyOne(t *testing.T) {
	before := sampleRequests()

	after, err := Apply(before, model.Patch{RequestID: "1", Kind: model.PatchVote})
	require.NoError(t, err)

	require.Len(t, after, 3)
	assert.Equal(t, uint64(1), after[1].TotalVote)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])

	// 原列表不被修改
	assert.Equal(t, sampleRequests(), before)
}

func TestApply_Complete(t *testing.T) {
	after, err := Apply(sampleRequests(), model.Patch{RequestID: "0", Kind: model.PatchComplete})
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawStatusCompleted, after[0].Status)
	assert.Equal(t, uint64(2), after[0].TotalVote)
	assert.Equal(t, []string{"0", "1", "2"}, ids(after))
}

func TestApply_UnknownRequestLeavesCollectionUnchanged(t *testing.T) {
	before := sampleRequests()
	after, err := Apply(before, model.Patch{RequestID: "42", Kind: model.PatchVote})

	assert.ErrorIs(t, err, errs.ErrStateInconsistency)
	assert.Equal(t, before, after)
}

func TestApply_UnknownKind(t *testing.T) {
	_, err := Apply(sampleRequests(), model.Patch{RequestID: "0"})
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestCompletedNeverRevertsToPending(t *testing.T) {
	requests := sampleRequests()
	patches := []model.Patch{
		{RequestID: "2", Kind: model.PatchVote},
		{RequestID: "2", Kind: model.PatchComplete},
		{RequestID: "9", Kind: model.PatchComplete},
		{RequestID: "2", Kind: model.PatchVote},
	}
	for _, p := range patches {
		requests, _ = Apply(requests, p)
		assert.Equal(t, model.WithdrawStatusCompleted, requests[2].Status)
	}

	stale := sampleRequests()
	stale[2].Status = model.WithdrawStatusPending
	stale[2].TotalVote = 1
	requests = Reconcile(requests, stale)
	assert.Equal(t, model.WithdrawStatusCompleted, requests[2].Status)
	assert.Equal(t, uint64(7), requests[2].TotalVote)
}

func TestAppend(t *testing.T) {
	before := sampleRequests()
	after, err := Append(before, model.WithdrawalRequest{RequestID: "3", Amount: "4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "3"}, ids(after))
	assert.Len(t, before, 3)

	_, err = Append(after, model.WithdrawalRequest{RequestID: "3"})
	assert.ErrorIs(t, err, errs.ErrStateInconsistency)
}

func TestReconcile_FetchedOrderWins(t *testing.T) {
	local := sampleRequests()
	fetched := []model.WithdrawalRequest{
		{RequestID: "1", TotalVote: 3, Status: model.WithdrawStatusPending},
		{RequestID: "5", TotalVote: 0, Status: model.WithdrawStatusPending},
	}

	got := Reconcile(local, fetched)
	assert.Equal(t, []string{"1", "5"}, ids(got))
	assert.Equal(t, uint64(3), got[0].TotalVote)
}

func TestBoard_ConcurrentMergesAreNotLost(t *testing.T) {
	board := NewBoard("0xProject")
	board.Replace(sampleRequests())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			board.Merge(model.Patch{RequestID: "1", Kind: model.PatchVote})
		}()
	}
	wg.Wait()

	req, ok := board.Find("1")
	require.True(t, ok)
	assert.Equal(t, uint64(50), req.TotalVote)
}

func TestBoard_MergeDropsUnknownPatch(t *testing.T) {
	board := NewBoard("0xProject")
	board.Replace(sampleRequests())

	assert.False(t, board.Merge(model.Patch{RequestID: "99", Kind: model.PatchComplete}))
	assert.Equal(t, sampleRequests(), board.Snapshot())
}

func TestBoard_SnapshotIsACopy(t *testing.T) {
	board := NewBoard("0xProject")
	assert.False(t, board.Loaded())
	board.Replace(sampleRequests())
	assert.True(t, board.Loaded())

	snap := board.Snapshot()
	snap[0].TotalVote = 100

	req, _ := board.Find("0")
	assert.Equal(t, uint64(2), req.TotalVote)
}

func TestBoard_Append(t *testing.T) {
	board := NewBoard("0xProject")
	assert.True(t, board.Append(model.WithdrawalRequest{RequestID: "0"}))
	assert.False(t, board.Append(model.WithdrawalRequest{RequestID: "0"}))
	assert.Len(t, board.Snapshot(), 1)
}

func TestStore_BoardIsSharedPerAddress(t *testing.T) {
	store := NewStore()
	a := store.Board("0xAbC")
	b := store.Board("0xabc")
	assert.Same(t, a, b)
	assert.Equal(t, 1, store.Len())

	store.Drop("0xABC")
	assert.Zero(t, store.Len())
	assert.NotSame(t, a, store.Board("0xabc"))
}

func ids(requests []model.WithdrawalRequest) []string {
	out := make([]string, 0, len(requests))
	for _, r := range requests {
		out = append(out, r.RequestID)
	}
	return out
}
