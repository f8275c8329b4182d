// facade.go is the engine's public surface: the type a UCI loop or any
// other caller drives, wiring together the position, transposition
// table, move orderer, and time control that the search methods in
// search.go operate on.
package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Options configures one Engine. The zero value reproduces the
// teacher's historical hardcoded defaults once DefaultOptions is
// applied; LoadOptions fills it in from a TOML file instead.
type Options struct {
	HashSizeMB      int   `toml:"hash_size_mb"`
	NullMove        bool  `toml:"null_move"`
	Futility        bool  `toml:"futility"`
	DebugAssertions bool  `toml:"debug_assertions"`
	Contempt        int32 `toml:"contempt"`
	Level           int   `toml:"level"` // 1..10 preset depth/time budget, 0 meaning unset
}

func DefaultOptions() Options {
	return Options{
		HashSizeMB: DefaultHashTableSizeMB,
		NullMove:   true,
		Futility:   true,
	}
}

// Stats reports search progress for one completed (or in-progress)
// iterative-deepening depth, handed to Logger.PrintPV.
type Stats struct {
	Depth    int
	SelDepth int
	Nodes    uint64
	CacheHits uint64
	CacheMisses uint64
}

func (s Stats) CacheHitRatio() float32 {
	if s.CacheHits+s.CacheMisses == 0 {
		return 0
	}
	return float32(s.CacheHits) / float32(s.CacheHits+s.CacheMisses)
}

// Logger reports search progress. Implementations must not block for
// long since they are called from the search goroutine.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []Move)
}

// NulLogger discards everything; it is the default when no logger is
// configured.
type NulLogger struct{}

func (NulLogger) BeginSearch()                             {}
func (NulLogger) EndSearch()                               {}
func (NulLogger) PrintPV(Stats, int32, []Move) {}

// Engine drives iterative-deepening search over one Position. It is
// not safe for concurrent use by multiple goroutines, but Go/Stop let
// one caller goroutine manage a search running on another.
type Engine struct {
	Position   *Position
	Options    Options
	Log        Logger
	Stats      Stats
	Record     *GameRecord
	LastResult GameResult

	hashTable *HashTable
	pvTable   pvTable
	orderer   *moveOrderer

	timeControl *TimeControl
	stopped     bool
	checkpoint  uint64
	rootPly     int

	breakAt []Move // SetBreak hook: search notifies Log when this line is reached
	line    []Move // moves made from the root in the current search branch

	group *errgroup.Group
}

const checkpointStep = 512

// NewEngine constructs an Engine over pos, allocating its
// transposition table per options.HashSizeMB (or the default when
// zero).
func NewEngine(pos *Position, log Logger, options Options) (*Engine, error) {
	if options.HashSizeMB == 0 {
		options.HashSizeMB = DefaultHashTableSizeMB
	}
	if log == nil {
		log = NulLogger{}
	}
	ht, err := NewHashTable(options.HashSizeMB)
	if err != nil {
		return nil, err
	}
	eng := &Engine{
		Position:   pos,
		Options:    options,
		Log:        log,
		Record:     NewGameRecord(pos),
		LastResult: pos.Status(),
		hashTable:  ht,
		pvTable:    newPvTable(),
	}
	eng.orderer = newMoveOrderer(pos)
	return eng, nil
}

// SetPosition installs pos as the position to search and play from,
// discarding whatever transposition-table and move-history state
// belonged to the previous position: those are keyed by and ordered
// around a position this one may have nothing to do with.
func (eng *Engine) SetPosition(pos *Position) {
	eng.Position = pos
	eng.orderer = newMoveOrderer(pos)
	eng.Record = NewGameRecord(pos)
	eng.LastResult = pos.Status()
	eng.hashTable.Clear()
}

// MakeMove applies m to the game in progress, validating that it is
// legal first, and recomputes LastResult. Playing past a game that has
// already ended is the caller's decision; MakeMove does not forbid it.
func (eng *Engine) MakeMove(m Move) error {
	var legal []Move
	eng.Position.GenerateLegalMoves(All, &legal)
	found := false
	for _, cand := range legal {
		if cand == m {
			found = true
			break
		}
	}
	if !found {
		return &IllegalMove{Move: m, Fen: eng.Position.String()}
	}
	eng.Record.Make(m)
	eng.LastResult = eng.Position.Status()
	return nil
}

// UndoMove retreats the game by one move, recomputing LastResult.
func (eng *Engine) UndoMove() error {
	if err := eng.Record.Undo(); err != nil {
		return err
	}
	eng.LastResult = eng.Position.Status()
	return nil
}

// RedoMove reapplies the move most recently undone, recomputing
// LastResult.
func (eng *Engine) RedoMove() error {
	if err := eng.Record.Redo(); err != nil {
		return err
	}
	eng.LastResult = eng.Position.Status()
	return nil
}

// SetLevel validates n against the 1..10 playing-strength presets and
// records it in eng.Options.Level; NewLevelTimeControl(eng.Position,
// n) builds the matching time control for the next Go/Play call.
func (eng *Engine) SetLevel(n int) error {
	if _, err := LevelPresetFor(n); err != nil {
		return err
	}
	eng.Options.Level = n
	return nil
}

// SetBreak arms a debugger hook: when the search reaches a node whose
// move sequence from the root matches line exactly, it calls
// Log.PrintPV with the current stats before continuing. Pass nil to
// disarm it.
func (eng *Engine) SetBreak(line []Move) { eng.breakAt = line }

// Go starts a search in the background, returning immediately so the
// caller (typically a UCI read loop) stays responsive. ctx cancellation
// and Stop both request cooperative cancellation; the goroutine
// abandons its current iteration and delivers the principal variation
// of the last completed iteration to done.
func (eng *Engine) Go(ctx context.Context, tc *TimeControl, done chan<- []Move) {
	g, ctx := errgroup.WithContext(ctx)
	eng.group = g
	g.Go(func() error {
		go func() {
			<-ctx.Done()
			tc.Stop()
		}()
		done <- eng.Play(tc)
		return nil
	})
}

// Stop requests the running search to finish immediately and waits
// for it to deliver its result.
func (eng *Engine) Stop(tc *TimeControl) {
	tc.Stop()
	if eng.group != nil {
		eng.group.Wait()
	}
}
