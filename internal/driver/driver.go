// Package driver implements the Hand Driver: the state machine that
// sequences one hand from ready collection through dealing, betting,
// showdown, and pot award, then loops back for the next hand. Grounded in
// original_source/src/server/poker_server.c's main() loop (the actual
// control flow this package reproduces) and the teacher's
// internal/server/hand_runner.go (one Go type owning one hand's lifecycle,
// structured logging throughout).
package driver

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/action"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/cards"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/deck"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/evaluator"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/protocol"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/table"
)

// Conn is the per-seat transport a Driver suspends on. internal/transport
// supplies the real implementation over net.Conn; tests supply an in-memory
// fake. Recv returns protocol.ErrShortRead (via errors.Is) on disconnect.
type Conn interface {
	Recv() (protocol.ClientPacket, error)
	Send(protocol.ServerPacket) error
	Close() error
}

// Driver owns one Table and the six seat connections for its lifetime.
type Driver struct {
	table *table.Table
	conns [table.NumSeats]Conn
	deck  *deck.Deck
	rng   *rand.Rand
	log   *log.Logger
}

// New builds a Driver over an already-joined table: every seat in t must
// already be non-Left (internal/transport completes JOIN before handing
// off to the driver). conns[i] must correspond to t.Seats[i].
func New(t *table.Table, conns [table.NumSeats]Conn, rng *rand.Rand, logger *log.Logger) *Driver {
	return &Driver{table: t, conns: conns, deck: deck.New(), rng: rng, log: logger}
}

// Run drives hands until a HALT condition is reached, then returns.
func (d *Driver) Run() {
	for {
		if halted := d.runHand(); halted {
			return
		}
	}
}

// runHand plays COLLECTING_READY through AWARDING/DONE once, returning
// true if the table should halt instead of looping to another hand.
func (d *Driver) runHand() bool {
	if !d.collectingReady() {
		d.broadcastHalt()
		return true
	}

	d.dealing()

	for d.table.Stage != table.Showdown {
		switch d.streetStatus() {
		case Continue:
			d.awaitAction()
		case StreetDone:
			if d.table.Stage == table.River {
				d.table.Stage = table.Showdown
			} else {
				d.transition()
			}
		case HandOverEarly:
			d.table.Stage = table.Showdown
		}
	}

	winner := d.showdown()
	d.awardAndBroadcastEnd(winner)
	return false
}

// collectingReady implements spec.md §4.3.1. It returns false when the
// table should halt (fewer than two ACTIVE seats afterward).
func (d *Driver) collectingReady() bool {
	for i := range d.table.Seats {
		if d.table.Seats[i].Status == table.Left {
			continue
		}
		pkt, err := d.conns[i].Recv()
		if err != nil {
			d.leaveSeat(i)
			continue
		}
		switch pkt.Type {
		case protocol.TypeLeave:
			d.leaveSeat(i)
		case protocol.TypeReady:
			d.table.Seats[i].Status = table.Active
		default:
			// Unrecognized packet in the ready phase: leave status as-is,
			// mirroring the original's silent fallthrough for anything
			// that isn't READY or LEAVE.
		}
	}
	return d.table.ActiveCount() >= 2
}

func (d *Driver) leaveSeat(seat int) {
	d.table.Seats[seat].Status = table.Left
	_ = d.conns[seat].Close()
}

func (d *Driver) broadcastHalt() {
	for i := range d.table.Seats {
		if d.table.Seats[i].Status == table.Left {
			continue
		}
		_ = d.conns[i].Send(protocol.ServerPacket{Type: protocol.TypeHalt})
		_ = d.conns[i].Close()
	}
}

// dealing implements spec.md §4.3.2: reset, rotate dealer, shuffle, deal
// two hole cards to each ACTIVE seat starting at dealer+1, set current_seat,
// broadcast INFO.
func (d *Driver) dealing() {
	d.table.ResetForHand()
	d.table.RotateDealer()
	d.deck.Shuffle(d.rng)

	seat := d.table.DealerSeat
	for n, count := 0, d.table.ActiveCount(); n < count; n++ {
		next := d.table.NextActive(seat)
		if next == -1 {
			break
		}
		d.table.Seats[next].HoleCards[0] = d.deck.Next()
		d.table.Seats[next].HoleCards[1] = d.deck.Next()
		seat = next
	}

	d.table.CurrentSeat = d.table.NextActive(d.table.DealerSeat)
	d.table.Stage = table.Preflop
	d.broadcastInfo()
}

// StreetStatus is the tri-valued result of spec.md §4.4's predicate.
type StreetStatus int

const (
	Continue StreetStatus = iota
	StreetDone
	HandOverEarly
)

func (d *Driver) streetStatus() StreetStatus {
	inHand := 0
	allMatched := true
	for i := range d.table.Seats {
		st := d.table.Seats[i].Status
		if st == table.Active || st == table.AllIn {
			inHand++
		}
		if st == table.Active {
			bet := d.table.Seats[i].CurrentBet
			if bet.Kind == table.NotActed || bet.Amount != d.table.HighestBet {
				allMatched = false
			}
		}
	}
	if inHand <= 1 {
		return HandOverEarly
	}
	if allMatched {
		return StreetDone
	}
	return Continue
}

// awaitAction receives and processes one message from current_seat, per
// spec.md §4.3.3.
func (d *Driver) awaitAction() {
	seat := d.table.CurrentSeat
	pkt, err := d.conns[seat].Recv()
	if err != nil {
		d.table.Seats[seat].Status = table.Folded
		d.advanceTurnFrom(seat)
		d.broadcastInfo()
		return
	}

	if pkt.Type == protocol.TypeLeave {
		d.leaveSeat(seat)
		d.advanceTurnFrom(seat)
		d.broadcastInfo()
		return
	}

	act, ok := toAction(pkt)
	if !ok {
		_ = d.conns[seat].Send(protocol.ServerPacket{Type: protocol.TypeNack})
		return
	}

	if err := action.Apply(d.table, seat, act); err != nil {
		_ = d.conns[seat].Send(protocol.ServerPacket{Type: protocol.TypeNack})
		return
	}

	_ = d.conns[seat].Send(protocol.ServerPacket{Type: protocol.TypeAck})
	if err := d.table.Check(); err != nil {
		d.log.Debug("invariant check failed after action", "err", err)
	}
	d.broadcastInfo()
}

func (d *Driver) advanceTurnFrom(seat int) {
	next := d.table.NextActive(seat)
	if next != -1 {
		d.table.CurrentSeat = next
	}
}

func toAction(pkt protocol.ClientPacket) (action.Action, bool) {
	switch pkt.Type {
	case protocol.TypeCheck:
		return action.Action{Kind: action.Check}, true
	case protocol.TypeCall:
		return action.Action{Kind: action.Call}, true
	case protocol.TypeRaise:
		return action.Action{Kind: action.Raise, Amount: int(pkt.Params[0])}, true
	case protocol.TypeFold:
		return action.Action{Kind: action.Fold}, true
	default:
		return action.Action{}, false
	}
}

// transition implements spec.md §4.3.4: reveal community cards for the
// upcoming street, reset bets, advance stage, broadcast INFO.
func (d *Driver) transition() {
	switch d.table.Stage {
	case table.Preflop:
		d.table.CommunityCards[0] = d.deck.Next()
		d.table.CommunityCards[1] = d.deck.Next()
		d.table.CommunityCards[2] = d.deck.Next()
		d.table.Stage = table.Flop
	case table.Flop:
		d.table.CommunityCards[3] = d.deck.Next()
		d.table.Stage = table.Turn
	case table.Turn:
		d.table.CommunityCards[4] = d.deck.Next()
		d.table.Stage = table.River
	}

	for i := range d.table.Seats {
		if d.table.Seats[i].Status == table.Active {
			d.table.Seats[i].CurrentBet = table.CurrentBet{Kind: table.NotActed}
		}
	}
	d.table.HighestBet = 0
	d.table.CurrentSeat = d.table.NextActive(d.table.DealerSeat)
	d.broadcastInfo()
}

// showdown implements spec.md §4.3.5, returning the winning seat id. Ties
// resolve to the lowest seat_id per SPEC_FULL.md's resolved Open Question
// #4: only a strictly greater strength replaces the incumbent. When only
// one seat remains in the hand (everyone else folded), it wins outright
// without invoking the evaluator — there is nothing to compare, and the
// hand may not have reached the river, so fewer than five cards could be
// visible.
func (d *Driver) showdown() int {
	var contenders []int
	for i := range d.table.Seats {
		st := d.table.Seats[i].Status
		if st == table.Active || st == table.AllIn {
			contenders = append(contenders, i)
		}
	}

	winner := contenders[0]
	if len(contenders) > 1 {
		bestStrength, err := evaluator.Evaluate(d.sevenCardHand(winner))
		if err != nil {
			d.log.Warn("evaluator error at showdown", "seat", winner, "err", err)
		}
		for _, i := range contenders[1:] {
			strength, err := evaluator.Evaluate(d.sevenCardHand(i))
			if err != nil {
				d.log.Warn("evaluator error at showdown", "seat", i, "err", err)
				continue
			}
			if strength > bestStrength {
				winner = i
				bestStrength = strength
			}
		}
	}

	d.table.Seats[winner].Stack += d.table.PotSize
	d.table.PotSize = 0
	return winner
}

func (d *Driver) sevenCardHand(seat int) [7]cards.Card {
	var hand [7]cards.Card
	hand[0] = d.table.Seats[seat].HoleCards[0]
	hand[1] = d.table.Seats[seat].HoleCards[1]
	copy(hand[2:], d.table.CommunityCards[:])
	return hand
}

func (d *Driver) awardAndBroadcastEnd(winner int) {
	snap := d.table.End(winner)
	pkt := protocol.ServerPacket{
		Type: protocol.TypeEnd,
		End: protocol.EndPayload{
			CommunityCards: snap.CommunityCards,
			PotSize:        int32(snap.PotSize),
			DealerSeat:     int32(snap.DealerSeat),
			WinnerSeat:     int32(snap.WinnerSeat),
		},
	}
	for i := range snap.Stacks {
		pkt.End.Stacks[i] = int32(snap.Stacks[i])
		pkt.End.HoleCards[i] = snap.HoleCards[i]
		pkt.End.Statuses[i] = uint8(snap.Statuses[i])
	}
	for i := range d.table.Seats {
		if d.table.Seats[i].Status == table.Left {
			continue
		}
		_ = d.conns[i].Send(pkt)
	}
}

func (d *Driver) broadcastInfo() {
	for i := range d.table.Seats {
		if d.table.Seats[i].Status == table.Left {
			continue
		}
		snap := d.table.Info(i)
		pkt := protocol.ServerPacket{
			Type: protocol.TypeInfo,
			Info: protocol.InfoPayload{
				CommunityCards: snap.CommunityCards,
				PotSize:        int32(snap.PotSize),
				HighestBet:     int32(snap.HighestBet),
				DealerSeat:     int32(snap.DealerSeat),
				CurrentSeat:    int32(snap.CurrentSeat),
				HoleCards:      snap.HoleCards,
			},
		}
		for j := range snap.Stacks {
			pkt.Info.Stacks[j] = int32(snap.Stacks[j])
			pkt.Info.Bets[j] = int32(snap.Bets[j])
			pkt.Info.Statuses[j] = uint8(snap.Statuses[j])
		}
		_ = d.conns[i].Send(pkt)
	}
}
