// Package transport is the Transport Adapter: it owns the six per-seat TCP
// listener sockets, completes the JOIN phase, and wraps each accepted
// net.Conn in the fixed-size binary framing internal/protocol defines.
// Grounded in original_source/src/server/poker_server.c's six-listener
// select() loop and TylerPetri-P2Poker/internal/netx/tcp_network.go's
// accept-loop shape, generalized from that repo's broadcast-channel design
// to this spec's synchronous one-recv-per-suspension-point model (spec.md
// §5: the driver reads only from the one connection it is suspended on,
// so there is no inbox channel or background read pump to build).
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/protocol"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/table"
)

// SeatConn adapts one accepted net.Conn to the driver.Conn interface
// (internal/driver declares the interface; this package only needs to
// satisfy it structurally, so it does not import internal/driver).
type SeatConn struct {
	seat   int
	conn   net.Conn
	logger *log.Logger
	clock  quartz.Clock
}

func newSeatConn(seat int, conn net.Conn, logger *log.Logger, clock quartz.Clock) *SeatConn {
	return &SeatConn{seat: seat, conn: conn, logger: logger, clock: clock}
}

// Recv reads one fixed-size ClientPacket. A short read (spec.md §4.5) comes
// back as protocol.ErrShortRead, which the Hand Driver treats as a
// disconnect. Every successful read logs the seat's activity at debug level
// with the time from the injected clock; no idle timer is kept, and no
// protocol action is ever gated or timed out (spec.md §5).
func (c *SeatConn) Recv() (protocol.ClientPacket, error) {
	pkt, err := protocol.ReadClient(c.conn)
	if err != nil {
		return protocol.ClientPacket{}, err
	}
	c.touch(pkt.Type.String())
	return pkt, nil
}

// Send writes one fixed-size ServerPacket.
func (c *SeatConn) Send(pkt protocol.ServerPacket) error {
	return protocol.WriteServer(c.conn, pkt)
}

// Close closes the underlying connection.
func (c *SeatConn) Close() error {
	return c.conn.Close()
}

func (c *SeatConn) touch(what string) {
	now := c.clock.Now()
	if c.logger != nil {
		c.logger.Debug("seat activity", "seat", c.seat, "packet", what, "at", now)
	}
}

// ErrInvalidJoin is logged, not returned, when a connection's first packet
// is not JOIN, per spec.md §7's INVALID_JOIN: the connection is closed and
// the port keeps listening for another.
var ErrInvalidJoin = errors.New("transport: first packet was not JOIN")

// Listener owns the six fixed listen sockets, BASE_PORT..BASE_PORT+5, per
// spec.md §6.
type Listener struct {
	basePort int
	logger   *log.Logger
	clock    quartz.Clock
}

// New builds a Listener. clock may be quartz.NewReal() in production or
// quartz.NewMock() in tests.
func New(basePort int, logger *log.Logger, clock quartz.Clock) *Listener {
	return &Listener{basePort: basePort, logger: logger, clock: clock}
}

// AwaitJoins binds all six ports and blocks until every seat has completed
// JOIN, returning one SeatConn per seat in seat-id order. A bind/listen
// failure on any port is spec.md §7's BIND_FAILURE and aborts the whole
// join phase, closing the listeners already bound.
func (l *Listener) AwaitJoins(ctx context.Context) ([table.NumSeats]*SeatConn, error) {
	var conns [table.NumSeats]*SeatConn
	listeners := make([]net.Listener, table.NumSeats)

	for seat := 0; seat < table.NumSeats; seat++ {
		port := l.basePort + seat
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			for _, other := range listeners {
				if other != nil {
					_ = other.Close()
				}
			}
			return conns, fmt.Errorf("transport: bind seat %d on port %d: %w", seat, port, err)
		}
		listeners[seat] = ln
		l.logger.Info("listening", "seat", seat, "port", port)
	}
	defer func() {
		for _, ln := range listeners {
			_ = ln.Close()
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for seat := 0; seat < table.NumSeats; seat++ {
		seat, ln := seat, listeners[seat]
		g.Go(func() error {
			conn, err := acceptJoin(gctx, ln, seat, l.logger)
			if err != nil {
				return err
			}
			conns[seat] = newSeatConn(seat, conn, l.logger, l.clock)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return conns, err
	}
	return conns, nil
}

// acceptJoin accepts connections on ln until one sends a JOIN as its first
// packet, closing and discarding every other first packet per spec.md §7
// INVALID_JOIN.
func acceptJoin(ctx context.Context, ln net.Listener, seat int, logger *log.Logger) (net.Conn, error) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			return nil, fmt.Errorf("transport: accept seat %d: %w", seat, err)
		}

		pkt, err := protocol.ReadClient(conn)
		if err != nil || pkt.Type != protocol.TypeJoin {
			logger.Warn("rejecting connection", "seat", seat, "err", ErrInvalidJoin)
			_ = conn.Close()
			continue
		}
		logger.Info("seat joined", "seat", seat, "remote", conn.RemoteAddr())
		return conn, nil
	}
}
