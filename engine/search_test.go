package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, fen string, depth int) []Move {
	t.Helper()
	pos, err := PositionFromFEN(fen)
	require.NoError(t, err)
	eng, err := NewEngine(pos, nil, DefaultOptions())
	require.NoError(t, err)
	tc := NewFixedDepthTimeControl(pos, depth)
	tc.Start()
	return eng.Play(tc)
}

func TestFindsMateInOne(t *testing.T) {
	// Black king cornered on h8 behind its own pawn shield; Qa8 mates
	// along the back rank without coming within the king's reach.
	pv := solve(t, "7k/5ppp/8/8/8/8/8/Q5K1 w - - 0 1", 3)
	require.NotEmpty(t, pv)
	require.Equal(t, SquareFromStringMust("a1"), pv[0].From())
	require.Equal(t, SquareFromStringMust("a8"), pv[0].To())
}

func TestFindsBackRankMateInOne(t *testing.T) {
	// Black king trapped on the back rank by its own pawns; Rh8 mates.
	pv := solve(t, "k7/ppp5/8/8/8/8/8/6KR w - - 0 1", 3)
	require.NotEmpty(t, pv)
	require.Equal(t, SquareFromStringMust("h8"), pv[0].To())
}

func TestFindsFreeQueenCapture(t *testing.T) {
	// Black's queen on d4 is undefended; Qxd4 wins it outright.
	pos, err := PositionFromFEN("4k3/8/8/8/3q4/8/3Q4/4K3 w - - 0 1")
	require.NoError(t, err)
	eng, err := NewEngine(pos, nil, DefaultOptions())
	require.NoError(t, err)
	tc := NewFixedDepthTimeControl(pos, 4)
	tc.Start()
	pv := eng.Play(tc)
	require.NotEmpty(t, pv)
	require.Equal(t, SquareFromStringMust("d2"), pv[0].From())
	require.Equal(t, SquareFromStringMust("d4"), pv[0].To())
}

func TestHashTableRoundTrip(t *testing.T) {
	ht, err := NewHashTable(1)
	require.NoError(t, err)

	ht.Put(12345, MakeMove(0, 1, NoFigure, ColorFigure(White, Pawn), NoFigure, 0, NoCastle), 42, 3, boundExact)
	move, score, depth, bound, ok := ht.Get(12345)
	require.True(t, ok)
	require.Equal(t, int32(42), score)
	require.Equal(t, 3, depth)
	require.Equal(t, boundExact, bound)
	require.Equal(t, Square(1), move.To())
}

func TestSmallHashTableRejected(t *testing.T) {
	_, err := NewHashTable(0)
	require.Error(t, err)
}
