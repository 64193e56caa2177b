// Package table owns the Table value: six seats, the community cards, the
// pot, and the bookkeeping fields the Hand Driver and Action Handler mutate
// between suspension points. It mirrors the original's module-scope table
// state (original_source/src/server/game_logic.c's init_game_state /
// reset_game_state) but as a value passed explicitly, per SPEC_FULL.md's
// resolved Open Question #2 — nothing here is package-level mutable state.
package table

import (
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/cards"
)

// NumSeats is the fixed number of seats a table drives.
const NumSeats = 6

// DefaultStack is the starting stack every seat is dealt, per spec.md §6.
const DefaultStack = 100

// Status is a seat's participation state for the current hand.
type Status uint8

const (
	Active Status = iota
	Folded
	AllIn
	Left
)

func (s Status) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Folded:
		return "FOLDED"
	case AllIn:
		return "ALLIN"
	case Left:
		return "LEFT"
	default:
		return "?"
	}
}

// BetKind distinguishes "hasn't acted this street yet" from "has committed
// a specific amount this street" without resorting to a -1 sentinel. This
// is spec.md §9's preferred alternative encoding, adopted per SPEC_FULL.md's
// resolved Open Question #1: the wire protocol still surfaces the sentinel
// -1 -> 0 mapping, but only at the INFO-packet boundary (Table.Info).
type BetKind uint8

const (
	NotActed BetKind = iota
	Matched
)

// CurrentBet is the tagged current-street commitment for one seat.
type CurrentBet struct {
	Kind   BetKind
	Amount int // meaningful only when Kind == Matched
}

// Amount0 returns the non-negative amount this bet represents: 0 for
// NotActed, Amount for Matched. This is the spec's "current_bet_as_nonneg".
func (b CurrentBet) Amount0() int {
	if b.Kind == NotActed {
		return 0
	}
	return b.Amount
}

// Stage is the current betting street, or a bracketing phase.
type Stage uint8

const (
	Init Stage = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

func (s Stage) String() string {
	switch s {
	case Init:
		return "INIT"
	case Preflop:
		return "PREFLOP"
	case Flop:
		return "FLOP"
	case Turn:
		return "TURN"
	case River:
		return "RIVER"
	case Showdown:
		return "SHOWDOWN"
	default:
		return "?"
	}
}

// Seat holds one player's per-hand state.
type Seat struct {
	ID         int
	Status     Status
	Stack      int
	HoleCards  [2]cards.Card
	CurrentBet CurrentBet
}

// Table is the full shared state a single hand is played against. It is
// created once at server start and threaded explicitly through the Hand
// Driver; nothing here is global.
type Table struct {
	Seats          [NumSeats]Seat
	CommunityCards [5]cards.Card
	PotSize        int
	HighestBet     int
	DealerSeat     int
	CurrentSeat    int
	Stage          Stage

	// handStarted tracks whether any hand has been dealt yet, so the very
	// first DEALING phase can skip dealer rotation (original_source's
	// poker_server.c only rotates from a real prior dealer).
	handStarted bool
}

// New builds a table with all seats empty (Left) and every card slot
// NoCard, every seat starting with DefaultStack chips. Seats become Active
// only once COLLECTING_READY admits them.
func New() *Table {
	return NewWithStack(DefaultStack)
}

// NewWithStack builds a table like New, but with `stack` chips per seat
// instead of DefaultStack — spec.md §6's CLI/config starting-stack knob.
func NewWithStack(stack int) *Table {
	t := &Table{DealerSeat: -1, CurrentSeat: -1}
	for i := range t.Seats {
		t.Seats[i] = Seat{ID: i, Status: Left, Stack: stack}
		t.Seats[i].HoleCards = [2]cards.Card{cards.NoCard, cards.NoCard}
	}
	for i := range t.CommunityCards {
		t.CommunityCards[i] = cards.NoCard
	}
	return t
}

// ActiveCount returns how many seats currently have status Active.
func (t *Table) ActiveCount() int {
	n := 0
	for i := range t.Seats {
		if t.Seats[i].Status == Active {
			n++
		}
	}
	return n
}

// NonLeftCount returns how many seats are not Left (used to drive COLLECTING_READY).
func (t *Table) NonLeftCount() int {
	n := 0
	for i := range t.Seats {
		if t.Seats[i].Status != Left {
			n++
		}
	}
	return n
}

// NextNonLeft returns the seat id of the first non-Left seat strictly after
// `from`, wrapping around, or -1 if none exists. Mirrors poker_server.c's
// dealer-rotation loop, which skips only PLAYER_LEFT seats.
func (t *Table) NextNonLeft(from int) int {
	for step := 1; step <= NumSeats; step++ {
		id := (from + step) % NumSeats
		if t.Seats[id].Status != Left {
			return id
		}
	}
	return -1
}

// NextActive returns the seat id of the first Active seat strictly after
// `from`, wrapping around, or -1 if none exists.
func (t *Table) NextActive(from int) int {
	for step := 1; step <= NumSeats; step++ {
		id := (from + step) % NumSeats
		if t.Seats[id].Status == Active {
			return id
		}
	}
	return -1
}

// RotateDealer advances DealerSeat to the next non-Left seat, skipping
// rotation entirely on the very first hand (tracked by handStarted).
func (t *Table) RotateDealer() {
	if !t.handStarted {
		t.handStarted = true
		// dealer stays wherever COLLECTING_READY / the driver initialized
		// it (seat 0 by convention for the very first hand).
		if t.DealerSeat < 0 {
			t.DealerSeat = 0
		}
		return
	}
	next := t.NextNonLeft(t.DealerSeat)
	if next != -1 {
		t.DealerSeat = next
	}
}

// ResetForHand clears the per-hand fields: community cards, pot, highest
// bet, and every seat's hole cards. It also sets every non-Left seat's bet
// to NotActed (Left seats keep theirs); dealing assigns no bet afterwards.
// Mirrors reset_game_state's ordering — reset happens before dealing.
func (t *Table) ResetForHand() {
	t.PotSize = 0
	t.HighestBet = 0
	for i := range t.CommunityCards {
		t.CommunityCards[i] = cards.NoCard
	}
	for i := range t.Seats {
		s := &t.Seats[i]
		s.HoleCards = [2]cards.Card{cards.NoCard, cards.NoCard}
		if s.Status != Left {
			s.CurrentBet = CurrentBet{Kind: NotActed}
		}
	}
}

// RevealCount returns how many community cards are visible at Stage s.
func (s Stage) RevealCount() int {
	switch s {
	case Preflop, Init:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	default:
		return 0
	}
}
