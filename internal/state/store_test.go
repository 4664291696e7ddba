package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sniperscope/internal/domain"
)

func opp(id string) domain.Opportunity {
	return domain.Opportunity{
		ID:           id,
		TokenAddress: "tok-" + id,
		Status:       domain.StatusDetected,
	}
}

func TestOpportunityStore_PrependKeepsNewestFirst(t *testing.T) {
	t.Parallel()

	s := NewOpportunityStore(10)
	s.Prepend([]domain.Opportunity{opp("a"), opp("b")})
	s.Prepend([]domain.Opportunity{opp("c")})

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].ID)
	assert.Equal(t, "a", snap[1].ID)
	assert.Equal(t, "b", snap[2].ID)
}

func TestOpportunityStore_TruncatesAtCapacity(t *testing.T) {
	t.Parallel()

	s := NewOpportunityStore(3)
	for i := 0; i < 5; i++ {
		s.Prepend([]domain.Opportunity{opp(fmt.Sprintf("o%d", i))})
	}

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	// the two oldest are gone
	assert.Equal(t, "o4", snap[0].ID)
	assert.Equal(t, "o2", snap[2].ID)
}

func TestOpportunityStore_MarkSniped(t *testing.T) {
	t.Parallel()

	s := NewOpportunityStore(10)
	s.Prepend([]domain.Opportunity{opp("a")})

	found := s.MarkSniped("tok-a")
	assert.True(t, found)

	got, ok := s.FindByToken("tok-a")
	require.True(t, ok)
	assert.Equal(t, domain.StatusSniped, got.Status)

	// second flip is a no-op, still found
	assert.True(t, s.MarkSniped("tok-a"))
	got, _ = s.FindByToken("tok-a")
	assert.Equal(t, domain.StatusSniped, got.Status)
}

func TestOpportunityStore_MarkSnipedEvicted(t *testing.T) {
	t.Parallel()

	s := NewOpportunityStore(10)
	assert.False(t, s.MarkSniped("tok-missing"))
}

func TestOpportunityStore_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	s := NewOpportunityStore(10)
	s.Prepend([]domain.Opportunity{opp("a")})

	snap := s.Snapshot()
	snap[0].Status = domain.StatusMissed

	got, _ := s.FindByToken("tok-a")
	assert.Equal(t, domain.StatusDetected, got.Status, "mutating a snapshot must not touch the store")
}
