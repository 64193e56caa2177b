// Package action implements the Action Handler: validates one player action
// against Table state and applies it atomically. Grounded in
// original_source/src/server/client_action_handler.c's handle_client_action,
// generalized from the sentinel -1 to the tagged table.CurrentBet per
// SPEC_FULL.md's resolved Open Question #1.
package action

import (
	"errors"
	"fmt"

	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/table"
)

// Kind is the action a seat submits.
type Kind uint8

const (
	Check Kind = iota
	Call
	Raise
	Fold
)

// Action is one submitted player action. Amount is only meaningful for Raise.
type Action struct {
	Kind   Kind
	Amount int
}

// ErrInvalidAction is returned (via errors.Is) for any precondition failure.
// No state mutation occurs when this is returned, per spec.md §4.2.
var ErrInvalidAction = errors.New("action: invalid action")

// Apply validates and applies `act` from seat `seatID` against `t`. On
// success it returns nil and `t` reflects the new state, with current_seat
// already advanced. On failure it returns a wrapped ErrInvalidAction and `t`
// is untouched.
func Apply(t *table.Table, seatID int, act Action) error {
	if seatID != t.CurrentSeat {
		return invalid("seat %d is not current_seat (%d)", seatID, t.CurrentSeat)
	}
	seat := &t.Seats[seatID]
	if seat.Status != table.Active {
		return invalid("seat %d has status %s, want ACTIVE", seatID, seat.Status)
	}

	have := seat.CurrentBet.Amount0()
	callAmount := t.HighestBet - have

	switch act.Kind {
	case Check:
		if callAmount != 0 {
			return invalid("seat %d: CHECK with call_amount %d", seatID, callAmount)
		}
		applyCheck(seat)
	case Call:
		if callAmount <= 0 {
			return invalid("seat %d: CALL with call_amount %d", seatID, callAmount)
		}
		applyCall(t, seat, callAmount)
	case Raise:
		if act.Amount <= t.HighestBet || act.Amount <= have {
			return invalid("seat %d: RAISE to %d does not exceed highest_bet %d / current %d", seatID, act.Amount, t.HighestBet, have)
		}
		diff := act.Amount - have
		if seat.Stack < diff {
			return invalid("seat %d: RAISE to %d needs %d chips, has %d", seatID, act.Amount, diff, seat.Stack)
		}
		applyRaise(t, seatID, seat, act.Amount, diff)
	case Fold:
		applyFold(seat)
	default:
		return invalid("seat %d: unknown action kind %d", seatID, act.Kind)
	}

	advanceTurn(t)
	return nil
}

func applyCheck(seat *table.Seat) {
	if seat.CurrentBet.Kind == table.NotActed {
		seat.CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: 0}
	}
}

func applyCall(t *table.Table, seat *table.Seat, callAmount int) {
	if seat.Stack <= callAmount {
		t.PotSize += seat.Stack
		seat.CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: seat.CurrentBet.Amount0() + seat.Stack}
		seat.Stack = 0
		seat.Status = table.AllIn
		return
	}
	seat.Stack -= callAmount
	seat.CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: seat.CurrentBet.Amount0() + callAmount}
	t.PotSize += callAmount
}

func applyRaise(t *table.Table, seatID int, seat *table.Seat, amount, diff int) {
	seat.Stack -= diff
	seat.CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: amount}
	t.HighestBet = amount
	t.PotSize += diff
	for i := range t.Seats {
		if i == seatID {
			continue
		}
		if t.Seats[i].Status == table.Active {
			t.Seats[i].CurrentBet = table.CurrentBet{Kind: table.NotActed}
		}
	}
}

func applyFold(seat *table.Seat) {
	seat.Status = table.Folded
	seat.CurrentBet = table.CurrentBet{Kind: table.Matched, Amount: 0}
}

// advanceTurn moves current_seat to the next Active seat in seat-id order.
// If none exists, current_seat is left unchanged — the Hand Driver's
// street-completion predicate will detect HAND_OVER_EARLY before awaiting
// another action (spec.md §9's turn-advance edge case).
func advanceTurn(t *table.Table) {
	next := t.NextActive(t.CurrentSeat)
	if next != -1 {
		t.CurrentSeat = next
	}
}

func invalid(format string, args ...interface{}) error {
	return &invalidActionError{msg: fmt.Sprintf(format, args...)}
}

type invalidActionError struct{ msg string }

func (e *invalidActionError) Error() string { return "action: invalid action: " + e.msg }
func (e *invalidActionError) Unwrap() error { return ErrInvalidAction }
