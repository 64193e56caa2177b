package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/cards"
)

func mustHand(t *testing.T, specs ...string) [7]cards.Card {
	t.Helper()
	var hand [7]cards.Card
	for i := range hand {
		hand[i] = cards.NoCard
	}
	require.LessOrEqual(t, len(specs), 7)
	for i, s := range specs {
		hand[i] = parseCard(t, s)
	}
	return hand
}

func parseCard(t *testing.T, s string) cards.Card {
	t.Helper()
	require.Len(t, s, 2)
	var r cards.Rank
	switch s[0] {
	case '2':
		r = cards.Two
	case '3':
		r = cards.Three
	case '4':
		r = cards.Four
	case '5':
		r = cards.Five
	case '6':
		r = cards.Six
	case '7':
		r = cards.Seven
	case '8':
		r = cards.Eight
	case '9':
		r = cards.Nine
	case 'T':
		r = cards.Ten
	case 'J':
		r = cards.Jack
	case 'Q':
		r = cards.Queen
	case 'K':
		r = cards.King
	case 'A':
		r = cards.Ace
	default:
		t.Fatalf("bad rank %q", s)
	}
	var su cards.Suit
	switch s[1] {
	case 'c':
		su = cards.Clubs
	case 'd':
		su = cards.Diamonds
	case 'h':
		su = cards.Hearts
	case 's':
		su = cards.Spades
	default:
		t.Fatalf("bad suit %q", s)
	}
	return cards.New(r, su)
}

func TestEvaluateTotality(t *testing.T) {
	hand := mustHand(t, "2c", "7d", "9h", "Js", "Kc", "3d", "4h")
	s, err := Evaluate(hand)
	require.NoError(t, err)
	require.GreaterOrEqual(t, int(s.Category()), int(HighCard))
	require.LessOrEqual(t, int(s.Category()), int(StraightFlush))
}

func TestEvaluateTooFewCards(t *testing.T) {
	hand := mustHand(t, "2c", "7d", "9h", "Js")
	_, err := Evaluate(hand)
	require.ErrorIs(t, err, ErrInvalidHand)
}

func TestAceLowStraightIsFiveHigh(t *testing.T) {
	hand := mustHand(t, "Ac", "2d", "3h", "4s", "5c", "9d", "Kh")
	s, err := Evaluate(hand)
	require.NoError(t, err)
	require.Equal(t, Straight, s.Category())

	sixHigh := mustHand(t, "2c", "3d", "4h", "5s", "6c", "9d", "Kh")
	s2, err := Evaluate(sixHigh)
	require.NoError(t, err)
	require.Equal(t, Straight, s2.Category())
	require.Less(t, s, s2, "five-high wheel must rank below six-high straight")
}

func TestAceLowStraightNotConfusedWithBroadway(t *testing.T) {
	wheel := mustHand(t, "Ac", "2d", "3h", "4s", "5c", "9d", "Kh")
	broadway := mustHand(t, "Ac", "Kd", "Qh", "Js", "Tc", "2d", "3h")
	sw, err := Evaluate(wheel)
	require.NoError(t, err)
	sb, err := Evaluate(broadway)
	require.NoError(t, err)
	require.Equal(t, Straight, sw.Category())
	require.Equal(t, Straight, sb.Category())
	require.Less(t, sw, sb)
}

func TestStraightFlushBeatsFlushAndStraight(t *testing.T) {
	sf := mustHand(t, "5c", "6c", "7c", "8c", "9c", "2d", "Kh")
	s, err := Evaluate(sf)
	require.NoError(t, err)
	require.Equal(t, StraightFlush, s.Category())

	flushOnly := mustHand(t, "2c", "6c", "7c", "8c", "Tc", "9d", "Kh")
	sFlush, err := Evaluate(flushOnly)
	require.NoError(t, err)
	require.Equal(t, Flush, sFlush.Category())

	straightOnly := mustHand(t, "5c", "6d", "7h", "8s", "9c", "2d", "Kh")
	sStraight, err := Evaluate(straightOnly)
	require.NoError(t, err)
	require.Equal(t, Straight, sStraight.Category())

	require.Greater(t, s, sFlush)
	require.Greater(t, sFlush, sStraight)
}

func TestFullHouseTieBreakOnTrips(t *testing.T) {
	aces := mustHand(t, "Ac", "Ad", "Ah", "2c", "2d", "9h", "Kh")
	kings := mustHand(t, "Kc", "Kd", "Kh", "2c", "2d", "9h", "Ah")
	sa, err := Evaluate(aces)
	require.NoError(t, err)
	sk, err := Evaluate(kings)
	require.NoError(t, err)
	require.Equal(t, FullHouse, sa.Category())
	require.Equal(t, FullHouse, sk.Category())
	require.Greater(t, sa, sk)
}

func TestTwoTripsMakeFullHouseWithDemotedPair(t *testing.T) {
	hand := mustHand(t, "Ac", "Ad", "Ah", "Kc", "Kd", "Kh", "2s")
	s, err := Evaluate(hand)
	require.NoError(t, err)
	require.Equal(t, FullHouse, s.Category())
	require.Equal(t, uint64(cards.Ace)<<4|uint64(cards.King), uint64(s)&((1<<60)-1))
}

func TestQuadsPacksKicker(t *testing.T) {
	hand := mustHand(t, "9c", "9d", "9h", "9s", "Kc", "2d", "3h")
	s, err := Evaluate(hand)
	require.NoError(t, err)
	require.Equal(t, Quads, s.Category())
	require.Equal(t, uint64(cards.Nine)<<4|uint64(cards.King), uint64(s)&((1<<60)-1))
}

func TestHighCardKickersOrdered(t *testing.T) {
	hand := mustHand(t, "2c", "7d", "9h", "Js", "Kc", "3d", "4h")
	s, err := Evaluate(hand)
	require.NoError(t, err)
	require.Equal(t, HighCard, s.Category())
	body := uint64(s) & ((1 << 60) - 1)
	want := uint64(cards.King)<<16 | uint64(cards.Jack)<<12 | uint64(cards.Nine)<<8 | uint64(cards.Seven)<<4 | uint64(cards.Four)
	require.Equal(t, want, body)
}

func TestPairKickerSelectionExcludesPairRank(t *testing.T) {
	hand := mustHand(t, "7c", "7d", "Kc", "Qd", "Jh", "2s", "3h")
	s, err := Evaluate(hand)
	require.NoError(t, err)
	require.Equal(t, Pair, s.Category())
	body := uint64(s) & ((1 << 60) - 1)
	pairRank := body >> 12
	require.Equal(t, uint64(cards.Seven), pairRank)
}
