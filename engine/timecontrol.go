// timecontrol.go computes how long the search is allowed to think and
// provides the one-way cooperative cancellation flag the search loop
// polls periodically instead of being preempted.
package engine

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

const (
	defaultMovesToGo    = 30
	defaultBranchFactor = 2
)

// TimeControl decides, from the clock state at the start of a search,
// both a search deadline and the maximum depth to attempt, and
// exposes a cooperative Stop/Stopped flag.
type TimeControl struct {
	WTime, WInc time.Duration
	BTime, BInc time.Duration
	Depth       int
	MovesToGo   int

	numPieces      int
	sideToMove     Color
	stopped        atomic.Bool
	searchDeadline time.Time
}

// NewTimeControl returns a time control with no time or depth limit;
// set fields before calling Start.
func NewTimeControl(pos *Position) *TimeControl {
	return &TimeControl{
		WTime:      time.Duration(math.MaxInt64),
		BTime:      time.Duration(math.MaxInt64),
		Depth:      64,
		MovesToGo:  defaultMovesToGo,
		numPieces:  pos.Occupied().Count(),
		sideToMove: pos.SideToMove,
	}
}

func NewFixedDepthTimeControl(pos *Position, depth int) *TimeControl {
	tc := NewTimeControl(pos)
	tc.Depth = depth
	tc.MovesToGo = 1
	return tc
}

func NewDeadlineTimeControl(pos *Position, deadline time.Duration) *TimeControl {
	tc := NewTimeControl(pos)
	tc.WTime, tc.BTime = deadline, deadline
	tc.MovesToGo = 1
	return tc
}

// LevelPreset bounds a search by a fixed depth, a fixed move time, or
// both, whichever a playing-strength level names.
type LevelPreset struct {
	MaxDepth int
	MoveTime time.Duration
}

// levelPresets maps the 1..10 playing-strength levels set_level takes
// onto a depth/time budget; weaker levels get both a shallow depth cap
// and a short move-time cap, so neither alone has to do all the work
// of holding the level back. Index 0 is unused.
var levelPresets = [11]LevelPreset{
	{},
	{MaxDepth: 1, MoveTime: 50 * time.Millisecond},
	{MaxDepth: 2, MoveTime: 100 * time.Millisecond},
	{MaxDepth: 3, MoveTime: 200 * time.Millisecond},
	{MaxDepth: 4, MoveTime: 400 * time.Millisecond},
	{MaxDepth: 6, MoveTime: 800 * time.Millisecond},
	{MaxDepth: 8, MoveTime: 1500 * time.Millisecond},
	{MaxDepth: 10, MoveTime: 3 * time.Second},
	{MaxDepth: 14, MoveTime: 6 * time.Second},
	{MaxDepth: 20, MoveTime: 12 * time.Second},
	{MaxDepth: 64, MoveTime: 30 * time.Second},
}

// LevelPresetFor validates and looks up the depth/time preset for
// level, which must be between 1 and 10 inclusive.
func LevelPresetFor(level int) (LevelPreset, error) {
	if level < 1 || level > 10 {
		return LevelPreset{}, fmt.Errorf("level must be between 1 and 10, got %d", level)
	}
	return levelPresets[level], nil
}

// NewLevelTimeControl builds the time control for one of the 1..10
// playing-strength levels set_level selects.
func NewLevelTimeControl(pos *Position, level int) (*TimeControl, error) {
	preset, err := LevelPresetFor(level)
	if err != nil {
		return nil, err
	}
	tc := NewTimeControl(pos)
	tc.Depth = preset.MaxDepth
	tc.WTime, tc.BTime = preset.MoveTime, preset.MoveTime
	tc.MovesToGo = 1
	return tc, nil
}

// thinkingTime splits remaining time t plus increment i over the
// expected number of moves left, never returning more than t itself.
func (tc *TimeControl) thinkingTime(t, i time.Duration) time.Duration {
	n := time.Duration(tc.MovesToGo)
	if tt := (t + (n-1)*i) / n; tt < t {
		return tt
	}
	return t
}

// Start begins the clock for this search. Call it as soon as the
// search is requested, so the deadline reflects the true remaining
// time.
func (tc *TimeControl) Start() {
	branchFactor := time.Duration(defaultBranchFactor)
	for np := tc.numPieces - 2; np > 0; np /= 6 {
		branchFactor++
	}
	for i := 4; i > 0; i /= 2 {
		if tc.MovesToGo <= i {
			branchFactor++
		}
	}

	t, inc := tc.WTime, tc.WInc
	if tc.sideToMove == Black {
		t, inc = tc.BTime, tc.BInc
	}

	tc.stopped.Store(false)
	searchTime := tc.thinkingTime(t, inc) / branchFactor
	tc.searchDeadline = time.Now().Add(searchTime)
}

// NextDepth reports whether the search should begin iteration depth,
// always allowing the first couple of plies through even on a
// near-exhausted clock so the search never returns with no move at
// all.
func (tc *TimeControl) NextDepth(depth int) bool {
	return depth <= tc.Depth && (depth <= 2 || !tc.Stopped())
}

// Stop requests cancellation; the search notices on its next Stopped
// poll, not immediately.
func (tc *TimeControl) Stop() { tc.stopped.Store(true) }

func (tc *TimeControl) Stopped() bool {
	if tc.stopped.Load() {
		return true
	}
	if time.Now().After(tc.searchDeadline) {
		tc.stopped.Store(true)
		return true
	}
	return false
}
