// Command holdem-server runs one six-seat Texas Hold'em table: it binds
// the six listen ports, completes the join phase, then hands the table off
// to the Hand Driver until a HALT. Grounded in the teacher's
// cmd/holdem-server/main.go (kong CLI parsing, HCL config loading,
// charmbracelet/log setup), narrowed from its websocket/bot/multi-table
// flags to this table's actual knobs: seed, base port, starting stack,
// config path, log level/file.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/config"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/driver"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/table"
	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/transport"
)

// CLI mirrors spec.md §6: one optional positional RNG seed, plus overrides
// for the knobs an optional HCL config file also supplies.
var CLI struct {
	Seed     int64  `arg:"" optional:"" help:"RNG seed for deterministic shuffling (default: current time)"`
	BasePort int    `name:"base-port" short:"p" help:"first of six consecutive listen ports (overrides config)"`
	Stack    int    `name:"stack" short:"s" help:"starting stack per seat (overrides config)"`
	Config   string `name:"config" short:"c" default:"holdem-server.hcl" help:"path to optional HCL configuration file"`
	LogLevel string `name:"log-level" short:"l" help:"log level override: debug, info, warn, error"`
	LogFile  string `name:"log-file" short:"f" help:"log file path override (default: stderr only)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		ctx.Exit(1)
	}
	if CLI.BasePort != 0 {
		cfg.Server.BasePort = CLI.BasePort
	}
	if CLI.Stack != 0 {
		cfg.Server.StartingStack = CLI.Stack
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.LogFile != "" {
		cfg.Server.LogFile = CLI.LogFile
	}

	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		ctx.Exit(1)
	}
	defer closeLog()

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("starting holdem-server",
		"base_port", cfg.Server.BasePort,
		"starting_stack", cfg.Server.StartingStack,
		"seed", seed)

	listener := transport.New(cfg.Server.BasePort, logger, quartz.NewReal())
	conns, err := listener.AwaitJoins(context.Background())
	if err != nil {
		logger.Error("bind/listen failure", "err", err)
		ctx.Exit(1)
	}

	t := table.NewWithStack(cfg.Server.StartingStack)
	var driverConns [table.NumSeats]driver.Conn
	for i := range conns {
		driverConns[i] = conns[i]
		// Joined seats are no longer Left; COLLECTING_READY makes them Active.
		t.Seats[i].Status = table.Folded
	}

	d := driver.New(t, driverConns, rng, logger)
	d.Run()
	logger.Info("table halted")
}

// buildLogger sets up charmbracelet/log writing to stderr with color, and
// additionally tees to a log file with ANSI codes stripped if --log-file is
// set — the same dual terminal/plain-file writer split as the teacher's
// cmd/holdem-server/main.go (stripANSIWriter/multiTargetWriter), since a
// log file read by `tail` or shipped to another tool should not carry
// terminal escape codes even though the live stderr stream should.
func buildLogger(cfg *config.Config) (*log.Logger, func(), error) {
	noop := func() {}
	if cfg.Server.LogFile == "" {
		logger := log.New(os.Stderr)
		setLevel(logger, cfg.Server.LogLevel)
		return logger, noop, nil
	}

	f, err := os.OpenFile(cfg.Server.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}
	logger := log.New(io.MultiWriter(os.Stderr, &stripANSIWriter{w: f}))
	setLevel(logger, cfg.Server.LogLevel)
	return logger, func() { _ = f.Close() }, nil
}

// stripANSIWriter strips terminal escape sequences before writing through,
// so a --log-file tee stays plain text even while stderr keeps color.
type stripANSIWriter struct {
	w io.Writer
}

func (s *stripANSIWriter) Write(p []byte) (int, error) {
	stripped := make([]byte, 0, len(p))
	inEscape := false
	for i := 0; i < len(p); i++ {
		if p[i] == '\x1b' && i+1 < len(p) && p[i+1] == '[' {
			inEscape = true
			i++
			continue
		}
		if inEscape {
			if (p[i] >= 'A' && p[i] <= 'Z') || (p[i] >= 'a' && p[i] <= 'z') {
				inEscape = false
			}
			continue
		}
		stripped = append(stripped, p[i])
	}
	if _, err := s.w.Write(stripped); err != nil {
		return 0, err
	}
	return len(p), nil
}

func setLevel(logger *log.Logger, level string) {
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}
