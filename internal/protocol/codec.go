package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrShortRead is returned when a recv yields fewer bytes than a full
// record, or the connection closed — spec.md §4.5's "short reads (<= 0
// bytes) are signaled to the caller as a disconnect event" generalized to
// "any partial record is a disconnect", since a fixed-size framing has no
// partial-message recovery.
var ErrShortRead = errors.New("protocol: short read")

// WriteClient encodes a ClientPacket as a fixed-size binary record.
func WriteClient(w io.Writer, p ClientPacket) error {
	return binary.Write(w, binary.BigEndian, p)
}

// ReadClient decodes one fixed-size ClientPacket, translating io.EOF and
// io.ErrUnexpectedEOF into ErrShortRead per the disconnect contract.
func ReadClient(r io.Reader) (ClientPacket, error) {
	var p ClientPacket
	if err := binary.Read(r, binary.BigEndian, &p); err != nil {
		return ClientPacket{}, shortRead(err)
	}
	return p, nil
}

// WriteServer encodes a ServerPacket as a fixed-size binary record.
func WriteServer(w io.Writer, p ServerPacket) error {
	return binary.Write(w, binary.BigEndian, p)
}

// ReadServer decodes one fixed-size ServerPacket. Used by tests exercising
// the codec's round-trip property; production clients are out of scope
// (spec.md §1 Out of scope: the client-side terminal UI).
func ReadServer(r io.Reader) (ServerPacket, error) {
	var p ServerPacket
	if err := binary.Read(r, binary.BigEndian, &p); err != nil {
		return ServerPacket{}, shortRead(err)
	}
	return p, nil
}

func shortRead(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortRead
	}
	return err
}
