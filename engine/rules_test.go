package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func findLegalMove(t *testing.T, pos *Position, from, to string) Move {
	t.Helper()
	f := SquareFromStringMust(from)
	tt := SquareFromStringMust(to)
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	for _, m := range moves {
		if m.From() == f && m.To() == tt {
			return m
		}
	}
	t.Fatalf("no legal move %s%s in %s", from, to, pos.String())
	return NullMove
}

func TestThreefoldRepetitionDrawnAfterThirdOccurrence(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)

	cycle := [][2]string{
		{"b1", "c3"}, {"b8", "c6"}, {"c3", "b1"}, {"c6", "b8"},
	}

	require.False(t, pos.IsThreeFoldRepetition())
	for rep := 0; rep < 2; rep++ {
		for _, leg := range cycle {
			m := findLegalMove(t, pos, leg[0], leg[1])
			pos.MakeMove(m)
		}
	}
	require.True(t, pos.IsThreeFoldRepetition())
	require.Equal(t, DrawRepetition, pos.Status())
}

func TestFiftyMoveRuleDrawsAfterHundredPlies(t *testing.T) {
	pos, err := PositionFromFEN("7k/8/8/8/8/8/8/K6N w - - 0 1")
	require.NoError(t, err)

	cycle := [][2]string{
		{"h1", "g3"}, {"h8", "g8"}, {"g3", "h1"}, {"g8", "h8"},
	}

	for i := 0; i < 25; i++ {
		for _, leg := range cycle {
			m := findLegalMove(t, pos, leg[0], leg[1])
			require.Less(t, pos.HalfMoveClock, 100, "clock hit 100 early at repetition %d", i)
			pos.MakeMove(m)
		}
	}
	require.GreaterOrEqual(t, pos.HalfMoveClock, 100)
	require.Equal(t, DrawFiftyMove, pos.Status())
}

func TestMakeUndoNullMoveRestoresPosition(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	before := snapshot(pos)
	hadEp, epSq := pos.MakeNullMove()
	require.Equal(t, Black, pos.SideToMove)
	pos.UndoNullMove(hadEp, epSq)
	after := snapshot(pos)

	if diff := cmp.Diff(before, after, cmp.AllowUnexported(positionSnapshot{})); diff != "" {
		t.Fatalf("position changed after make/undo null move (-before +after):\n%s", diff)
	}
}
