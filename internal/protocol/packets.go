// Package protocol defines the fixed-size binary wire records spec.md §6
// requires, and the codec that reads/writes them. Field layout mirrors
// original_source/src/server/{poker_client.h-derived structs, game_logic.c}
// exactly; naming follows the teacher's protocol/messages.go convention
// (Type constants, one Go type per wire message) even though the teacher
// itself serializes with msgpack over JSON-ish structs — spec.md §6 calls
// for identical fixed-layout binary records on both directions, so this
// package uses encoding/binary instead, the way
// TylerPetri-P2Poker/internal/netx/codec.go frames its own wire messages.
package protocol

import "github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/cards"

// PacketType is the discriminator every packet leads with.
type PacketType uint8

const (
	// Client -> Server
	TypeJoin PacketType = iota + 1
	TypeReady
	TypeLeave
	TypeCheck
	TypeCall
	TypeRaise
	TypeFold

	// Server -> Client
	TypeAck
	TypeNack
	TypeInfo
	TypeEnd
	TypeHalt
)

func (p PacketType) String() string {
	switch p {
	case TypeJoin:
		return "JOIN"
	case TypeReady:
		return "READY"
	case TypeLeave:
		return "LEAVE"
	case TypeCheck:
		return "CHECK"
	case TypeCall:
		return "CALL"
	case TypeRaise:
		return "RAISE"
	case TypeFold:
		return "FOLD"
	case TypeAck:
		return "ACK"
	case TypeNack:
		return "NACK"
	case TypeInfo:
		return "INFO"
	case TypeEnd:
		return "END"
	case TypeHalt:
		return "HALT"
	default:
		return "UNKNOWN"
	}
}

// NumSeats mirrors table.NumSeats; duplicated as a plain constant here so
// this package has no dependency on internal/table's richer types, only on
// the wire-level shapes client code would see.
const NumSeats = 6

// ClientPacket is the fixed-layout record every client->server message
// uses. Only Params[0] is meaningful, and only for RAISE (the target total
// bet amount), matching the original's single-int params array.
type ClientPacket struct {
	Type   PacketType
	Params [1]int32
}

// ServerPacket is the fixed-layout record every server->client message
// uses. Exactly one of the embedded payloads is meaningful, selected by
// Type; the others are zero. This flattens the original's tagged union
// (server_packet_t { packet_type; union { info_packet_t info; end_packet_t
// end; }; }) into a single Go struct with a fixed size independent of Type,
// which is what a fixed-size binary record requires.
type ServerPacket struct {
	Type PacketType
	Info InfoPayload
	End  EndPayload
}

// InfoPayload is the INFO packet's body, field-for-field from
// client_action_handler.c's save_state + build_info_packet.
type InfoPayload struct {
	CommunityCards [5]cards.Card
	Stacks         [NumSeats]int32
	Bets           [NumSeats]int32 // -1 sentinel already surfaced as 0
	Statuses       [NumSeats]uint8 // 0=folded, 1=active, 2=other
	PotSize        int32
	HighestBet     int32
	DealerSeat     int32
	CurrentSeat    int32
	HoleCards      [2]cards.Card // recipient's own hole cards
}

// EndPayload is the END packet's body, field-for-field from
// client_action_handler.c's build_end_packet.
type EndPayload struct {
	CommunityCards [5]cards.Card
	Stacks         [NumSeats]int32
	HoleCards      [NumSeats][2]cards.Card
	Statuses       [NumSeats]uint8
	PotSize        int32
	DealerSeat     int32
	WinnerSeat     int32
}
