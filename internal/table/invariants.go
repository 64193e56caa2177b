package table

import (
	"errors"
	"fmt"
)

// ErrInvariant wraps any violation detected by Check. Tests assert
// errors.Is(err, ErrInvariant) rather than matching message text.
var ErrInvariant = errors.New("table: invariant violated")

// Check validates the invariants spec.md §3 requires to hold at every
// quiescent point between actions, except chip conservation (see Total).
// It's called from tests and from the Hand Driver after each accepted
// action; the driver logs a violation at debug level and never treats it
// as fatal.
func (t *Table) Check() error {
	if err := t.checkBetBounds(); err != nil {
		return err
	}
	if err := t.checkAllInZeroStack(); err != nil {
		return err
	}
	if err := t.checkHighestBetDominates(); err != nil {
		return err
	}
	if err := t.checkCurrentSeatUnique(); err != nil {
		return err
	}
	if err := t.checkCommunityCardsDistinct(); err != nil {
		return err
	}
	return nil
}

// Total returns Σ stacks + pot across every seat, the quantity spec.md §8's
// chip-conservation property requires to stay constant within a hand
// (invariant 1). The table has no record of history, so conservation across
// a sequence of actions is checked by callers comparing Total() before and
// after, not by Check() itself.
func (t *Table) Total() int {
	total := t.PotSize
	for i := range t.Seats {
		total += t.Seats[i].Stack
	}
	return total
}

func (t *Table) checkBetBounds() error {
	for i := range t.Seats {
		s := &t.Seats[i]
		if s.Status != Active {
			continue
		}
		if s.CurrentBet.Kind == Matched {
			if s.CurrentBet.Amount < 0 || s.CurrentBet.Amount > t.HighestBet {
				return errInvariantf("seat %d: current_bet %d out of bounds [0,%d]", i, s.CurrentBet.Amount, t.HighestBet)
			}
		}
	}
	return nil
}

func (t *Table) checkAllInZeroStack() error {
	for i := range t.Seats {
		if t.Seats[i].Status == AllIn && t.Seats[i].Stack != 0 {
			return errInvariantf("seat %d: ALLIN with nonzero stack %d", i, t.Seats[i].Stack)
		}
	}
	return nil
}

func (t *Table) checkHighestBetDominates() error {
	for i := range t.Seats {
		s := &t.Seats[i]
		if s.Status != Active && s.Status != AllIn {
			continue
		}
		if s.CurrentBet.Amount0() > t.HighestBet {
			return errInvariantf("seat %d: current_bet %d exceeds highest_bet %d", i, s.CurrentBet.Amount0(), t.HighestBet)
		}
	}
	return nil
}

func (t *Table) checkCurrentSeatUnique() error {
	if t.CurrentSeat < 0 {
		return nil // no seat awaited: hand over or not yet started
	}
	if t.Seats[t.CurrentSeat].Status != Active {
		return errInvariantf("current_seat %d has status %s, want ACTIVE", t.CurrentSeat, t.Seats[t.CurrentSeat].Status)
	}
	return nil
}

func (t *Table) checkCommunityCardsDistinct() error {
	n := t.Stage.RevealCount()
	seen := map[uint8]bool{}
	for i := 0; i < n; i++ {
		c := t.CommunityCards[i]
		if c.IsNone() {
			return errInvariantf("community card %d missing below reveal count %d", i, n)
		}
		key := uint8(c)
		if seen[key] {
			return errInvariantf("community card %d duplicated", i)
		}
		seen[key] = true
	}
	for i := range t.Seats {
		for _, c := range t.Seats[i].HoleCards {
			if c.IsNone() {
				continue
			}
			key := uint8(c)
			if seen[key] {
				return errInvariantf("seat %d hole card collides with a dealt card", i)
			}
			seen[key] = true
		}
	}
	return nil
}

func errInvariantf(format string, args ...interface{}) error {
	return &invariantError{msg: fmt.Sprintf(format, args...)}
}

type invariantError struct{ msg string }

func (e *invariantError) Error() string { return "table: invariant violated: " + e.msg }
func (e *invariantError) Unwrap() error { return ErrInvariant }
