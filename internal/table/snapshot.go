package table

import "github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/cards"

// WireStatus is the three-valued status code the wire protocol surfaces,
// per spec.md §6's INFO/END payload (0=folded, 1=active, 2=other). AllIn and
// Left both collapse to "other" from a viewer's perspective, matching
// original_source/src/server/client_action_handler.c's save_state switch.
type WireStatus uint8

const (
	WireFolded WireStatus = 0
	WireActive WireStatus = 1
	WireOther  WireStatus = 2
)

func (s Status) Wire() WireStatus {
	switch s {
	case Active:
		return WireActive
	case Folded:
		return WireFolded
	default:
		return WireOther
	}
}

// InfoSnapshot is the per-viewer INFO payload: public fields identical
// across viewers, hole cards private to the recipient. Grounded in
// client_action_handler.c's save_state + build_info_packet.
type InfoSnapshot struct {
	CommunityCards [5]cards.Card
	Stacks         [NumSeats]int
	Bets           [NumSeats]int // -1 sentinel surfaced as 0, per spec.md §6
	Statuses       [NumSeats]WireStatus
	PotSize        int
	HighestBet     int
	DealerSeat     int
	CurrentSeat    int
	HoleCards      [2]cards.Card // recipient's own hole cards only
}

// Info builds the INFO snapshot visible to seat `viewer`.
func (t *Table) Info(viewer int) InfoSnapshot {
	var snap InfoSnapshot
	snap.CommunityCards = t.CommunityCards
	snap.PotSize = t.PotSize
	snap.HighestBet = t.HighestBet
	snap.DealerSeat = t.DealerSeat
	snap.CurrentSeat = t.CurrentSeat
	for i := range t.Seats {
		s := &t.Seats[i]
		snap.Stacks[i] = s.Stack
		snap.Bets[i] = s.CurrentBet.Amount0()
		snap.Statuses[i] = s.Status.Wire()
	}
	snap.HoleCards = t.Seats[viewer].HoleCards
	return snap
}

// EndSnapshot is the showdown-ending payload: all hole cards revealed, no
// per-viewer variation. Grounded in build_end_packet.
type EndSnapshot struct {
	CommunityCards [5]cards.Card
	Stacks         [NumSeats]int
	HoleCards      [NumSeats][2]cards.Card
	Statuses       [NumSeats]WireStatus
	PotSize        int
	DealerSeat     int
	WinnerSeat     int
}

// End builds the showdown-ending snapshot naming `winner`.
func (t *Table) End(winner int) EndSnapshot {
	var snap EndSnapshot
	snap.CommunityCards = t.CommunityCards
	snap.PotSize = t.PotSize
	snap.DealerSeat = t.DealerSeat
	snap.WinnerSeat = winner
	for i := range t.Seats {
		s := &t.Seats[i]
		snap.Stacks[i] = s.Stack
		snap.HoleCards[i] = s.HoleCards
		snap.Statuses[i] = s.Status.Wire()
	}
	return snap
}
