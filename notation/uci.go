// Package notation implements the textual formats surrounding the
// engine: the UCI protocol used to drive it from a GUI, and the SAN
// and PGN formats used to read and write games.
package notation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lsanca/chesscore/engine"
)

// ErrQuit is returned by Execute for the "quit" command, the only
// command that should end the read loop.
var ErrQuit = errors.New("quit")

// ParseUCIMove resolves a long algebraic move string (e.g. "e2e4" or
// "e7e8q") against the legal moves available in pos.
func ParseUCIMove(pos *engine.Position, s string) (engine.Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return engine.NullMove, &engine.ParseError{Kind: "uci move", Token: s}
	}
	from, err := engine.SquareFromString(s[0:2])
	if err != nil {
		return engine.NullMove, err
	}
	to, err := engine.SquareFromString(s[2:4])
	if err != nil {
		return engine.NullMove, err
	}

	var moves []engine.Move
	pos.GenerateLegalMoves(engine.All, &moves)
	for _, m := range moves {
		if m.From() != from || m.To() != to {
			continue
		}
		if len(s) == 5 {
			if !m.IsPromotion() || strings.ToLower(m.Promotion().String()) != s[4:5] {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		return m, nil
	}
	return engine.NullMove, &engine.IllegalMove{Move: 0, Fen: pos.String()}
}

// uciLogger formats search progress per the UCI "info" command.
type uciLogger struct {
	start time.Time
	buf   bytes.Buffer
}

func newUCILogger() *uciLogger { return &uciLogger{} }

func (ul *uciLogger) BeginSearch() {
	ul.start = time.Now()
	ul.buf.Reset()
}

func (ul *uciLogger) EndSearch() {}

func (ul *uciLogger) PrintPV(stats engine.Stats, score int32, pv []engine.Move) {
	ul.buf.Reset()
	fmt.Fprintf(&ul.buf, "info depth %d seldepth %d ", stats.Depth, stats.SelDepth)

	switch {
	case score > engine.KnownWinScore:
		fmt.Fprintf(&ul.buf, "score mate %d ", (engine.MateScore-score+1)/2)
	case score < engine.KnownLossScore:
		fmt.Fprintf(&ul.buf, "score mate %d ", (engine.MatedScore-score)/2)
	default:
		fmt.Fprintf(&ul.buf, "score cp %d ", score)
	}

	elapsed := time.Since(ul.start)
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	millis := uint64(elapsed / time.Millisecond)
	nps := stats.Nodes * uint64(time.Second) / uint64(elapsed)
	fmt.Fprintf(&ul.buf, "nodes %d time %d nps %d", stats.Nodes, millis, nps)

	fmt.Fprintf(&ul.buf, " pv")
	for _, m := range pv {
		fmt.Fprintf(&ul.buf, " %v", m.String())
	}
	ul.buf.WriteByte('\n')

	os.Stdout.Write(ul.buf.Bytes())
}

// UCI drives one Engine through the UCI text protocol read from a
// line-oriented input.
type UCI struct {
	Engine *engine.Engine

	timeControl *engine.TimeControl
	done        chan []engine.Move
	cancel      context.CancelFunc
}

// NewUCI constructs a UCI handler with the starting position loaded.
func NewUCI() (*UCI, error) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	if err != nil {
		return nil, err
	}
	eng, err := engine.NewEngine(pos, newUCILogger(), engine.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return &UCI{Engine: eng}, nil
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

// Execute parses and runs one line of UCI input.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("invalid command line")
	}

	switch cmd {
	case "uci":
		return u.uci()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "quit":
		return ErrQuit
	case "stop":
		return u.stop()
	case "ucinewgame":
		return u.ucinewgame()
	case "position":
		return u.position(line)
	case "go":
		return u.go_(line)
	case "setoption":
		return u.setoption(line)
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

func (u *UCI) uci() error {
	fmt.Println("id name chesscore")
	fmt.Println("id author the chesscore contributors")
	fmt.Println()
	fmt.Printf("option name Hash type spin default %d min 1 max 65536\n", engine.DefaultHashTableSizeMB)
	fmt.Println("option name NullMove type check default true")
	fmt.Println("option name Futility type check default true")
	fmt.Println("option name Level type spin default 10 min 1 max 10")
	fmt.Println("uciok")
	return nil
}

func (u *UCI) ucinewgame() error {
	u.Engine.Options = engine.DefaultOptions()
	return nil
}

func (u *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *engine.Position
	var err error

	i := 0
	switch args[0] {
	case "startpos":
		pos, err = engine.PositionFromFEN(engine.FENStartPos)
		i = 1
	case "fen":
		i = 1
		for i < len(args) && args[i] != "moves" {
			i++
		}
		pos, err = engine.PositionFromFEN(strings.Join(args[1:i], " "))
	default:
		return fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}

	u.Engine.SetPosition(pos)

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			m, err := ParseUCIMove(u.Engine.Position, s)
			if err != nil {
				return err
			}
			u.Engine.Position.MakeMove(m)
		}
	}
	return nil
}

func (u *UCI) go_(line string) error {
	tc := engine.NewTimeControl(u.Engine.Position)
	args := strings.Fields(line)[1:]

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
		case "wtime":
			i++
			t, _ := strconv.Atoi(args[i])
			tc.WTime = time.Duration(t) * time.Millisecond
		case "btime":
			i++
			t, _ := strconv.Atoi(args[i])
			tc.BTime = time.Duration(t) * time.Millisecond
		case "winc":
			i++
			t, _ := strconv.Atoi(args[i])
			tc.WInc = time.Duration(t) * time.Millisecond
		case "binc":
			i++
			t, _ := strconv.Atoi(args[i])
			tc.BInc = time.Duration(t) * time.Millisecond
		case "movestogo":
			i++
			t, _ := strconv.Atoi(args[i])
			tc.MovesToGo = t
		case "movetime":
			i++
			t, _ := strconv.Atoi(args[i])
			tc.WTime, tc.BTime = time.Duration(t)*time.Millisecond, time.Duration(t)*time.Millisecond
			tc.WInc, tc.BInc = 0, 0
			tc.MovesToGo = 1
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			tc.Depth = d
		case "ponder":
		case "nodes", "mate", "searchmoves":
			i++
		default:
			return fmt.Errorf("invalid go command %s", args[i])
		}
	}

	tc.Start()
	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	u.timeControl = tc
	u.done = make(chan []engine.Move, 1)
	u.Engine.Go(ctx, tc, u.done)
	go u.awaitBestMove()
	return nil
}

func (u *UCI) awaitBestMove() {
	moves := <-u.done
	if len(moves) == 0 {
		fmt.Println("bestmove (none)")
	} else if len(moves) == 1 {
		fmt.Printf("bestmove %v\n", moves[0].String())
	} else {
		fmt.Printf("bestmove %v ponder %v\n", moves[0].String(), moves[1].String())
	}
}

func (u *UCI) stop() error {
	if u.timeControl != nil {
		u.Engine.Stop(u.timeControl)
	}
	return nil
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) setoption(line string) error {
	option := reOption.FindStringSubmatch(line)
	if option == nil {
		return fmt.Errorf("invalid setoption arguments")
	}
	switch option[1] {
	case "Clear Hash":
		return nil
	case "NullMove":
		if len(option) < 3 {
			return fmt.Errorf("missing setoption value")
		}
		v, err := strconv.ParseBool(option[3])
		if err != nil {
			return err
		}
		u.Engine.Options.NullMove = v
		return nil
	case "Futility":
		if len(option) < 3 {
			return fmt.Errorf("missing setoption value")
		}
		v, err := strconv.ParseBool(option[3])
		if err != nil {
			return err
		}
		u.Engine.Options.Futility = v
		return nil
	case "Hash":
		if len(option) < 3 {
			return fmt.Errorf("missing setoption value")
		}
		mb, err := strconv.Atoi(option[3])
		if err != nil {
			return err
		}
		u.Engine.Options.HashSizeMB = mb
		return nil
	case "Level":
		if len(option) < 3 {
			return fmt.Errorf("missing setoption value")
		}
		n, err := strconv.Atoi(option[3])
		if err != nil {
			return err
		}
		return u.Engine.SetLevel(n)
	default:
		return fmt.Errorf("unhandled option %s", option[1])
	}
}
