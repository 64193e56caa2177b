package action

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/table"
)

func newActiveTable(ids ...int) *table.Table {
	t := table.New()
	for _, id := range ids {
		t.Seats[id].Status = table.Active
		t.Seats[id].CurrentBet = table.CurrentBet{Kind: table.NotActed}
	}
	t.CurrentSeat = ids[0]
	return t
}

func TestCheckAcceptedAtZeroCallAmount(t *testing.T) {
	tb := newActiveTable(0, 1)
	err := Apply(tb, 0, Action{Kind: Check})
	require.NoError(t, err)
	require.Equal(t, table.Matched, tb.Seats[0].CurrentBet.Kind)
	require.Equal(t, 0, tb.Seats[0].CurrentBet.Amount)
	require.Equal(t, 1, tb.CurrentSeat)
}

func TestCheckRejectedWhenOwedBet(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.HighestBet = 10
	before := *tb
	err := Apply(tb, 0, Action{Kind: Check})
	require.ErrorIs(t, err, ErrInvalidAction)
	require.Equal(t, before.CurrentSeat, tb.CurrentSeat, "no mutation on NACK")
}

func TestWrongSeatRejected(t *testing.T) {
	tb := newActiveTable(0, 1)
	err := Apply(tb, 1, Action{Kind: Check})
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestCallMovesChipsIntoPot(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.HighestBet = 10
	err := Apply(tb, 0, Action{Kind: Call})
	require.NoError(t, err)
	require.Equal(t, 90, tb.Seats[0].Stack)
	require.Equal(t, 10, tb.Seats[0].CurrentBet.Amount)
	require.Equal(t, 10, tb.PotSize)
	require.Equal(t, table.Active, tb.Seats[0].Status)
}

func TestCallExactStackGoesAllIn(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.Seats[0].Stack = 10
	tb.HighestBet = 10
	err := Apply(tb, 0, Action{Kind: Call})
	require.NoError(t, err)
	require.Equal(t, 0, tb.Seats[0].Stack)
	require.Equal(t, table.AllIn, tb.Seats[0].Status)
	require.Equal(t, 10, tb.PotSize)
}

func TestCallShortStackGoesAllInForLess(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.Seats[0].Stack = 4
	tb.HighestBet = 10
	err := Apply(tb, 0, Action{Kind: Call})
	require.NoError(t, err)
	require.Equal(t, 0, tb.Seats[0].Stack)
	require.Equal(t, table.AllIn, tb.Seats[0].Status)
	require.Equal(t, 4, tb.PotSize)
	require.Equal(t, 4, tb.Seats[0].CurrentBet.Amount, "all-in for less does not owe the shortfall")
}

func TestCallRejectedAtZeroCallAmount(t *testing.T) {
	tb := newActiveTable(0, 1)
	err := Apply(tb, 0, Action{Kind: Call})
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestRaiseMustExceedHighestBet(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.HighestBet = 10
	err := Apply(tb, 0, Action{Kind: Raise, Amount: 10})
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestRaiseResetsOtherActiveSeatsToNotActed(t *testing.T) {
	tb := newActiveTable(0, 1, 2)
	tb.Seats[1].CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: 0}
	tb.Seats[2].CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: 0}
	err := Apply(tb, 0, Action{Kind: Raise, Amount: 10})
	require.NoError(t, err)
	require.Equal(t, 10, tb.HighestBet)
	require.Equal(t, 90, tb.Seats[0].Stack)
	require.Equal(t, 10, tb.PotSize)
	require.Equal(t, table.NotActed, tb.Seats[1].CurrentBet.Kind)
	require.Equal(t, table.NotActed, tb.Seats[2].CurrentBet.Kind)
	require.Equal(t, table.Matched, tb.Seats[0].CurrentBet.Kind, "the raiser itself is not reset")
}

func TestRaiseRejectedWithoutEnoughChips(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.Seats[0].Stack = 5
	err := Apply(tb, 0, Action{Kind: Raise, Amount: 10})
	require.ErrorIs(t, err, ErrInvalidAction)
	require.Equal(t, 5, tb.Seats[0].Stack, "rejected raise does not mutate stack")
}

func TestFoldSetsStatusAndClearsBet(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.Seats[0].CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: 20}
	err := Apply(tb, 0, Action{Kind: Fold})
	require.NoError(t, err)
	require.Equal(t, table.Folded, tb.Seats[0].Status)
	require.Equal(t, 0, tb.Seats[0].CurrentBet.Amount)
}

func TestFoldedSeatCannotActAgain(t *testing.T) {
	tb := newActiveTable(0, 1)
	require.NoError(t, Apply(tb, 0, Action{Kind: Fold}))
	require.Equal(t, 1, tb.CurrentSeat)
	err := Apply(tb, 0, Action{Kind: Fold})
	require.ErrorIs(t, err, ErrInvalidAction, "second fold from the same seat, now out of turn, is a NACK")
}

func TestTurnAdvanceSkipsNonActiveSeats(t *testing.T) {
	tb := newActiveTable(0, 1, 3)
	tb.Seats[1].Status = table.Folded
	require.NoError(t, Apply(tb, 0, Action{Kind: Check}))
	require.Equal(t, 3, tb.CurrentSeat)
}

func TestTurnAdvanceUnchangedWhenNoneLeft(t *testing.T) {
	tb := newActiveTable(0, 1)
	tb.Seats[1].Status = table.Folded
	require.NoError(t, Apply(tb, 0, Action{Kind: Check}))
	require.Equal(t, 0, tb.CurrentSeat, "no other ACTIVE seat: current_seat left unchanged")
}
