package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPositionFromFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		require.NoError(t, err, fen)
		require.Equal(t, fen, pos.String())
	}
}

func TestPositionFromFENRejectsGarbage(t *testing.T) {
	_, err := PositionFromFEN("not a fen")
	require.Error(t, err)
}

func TestMakeUndoMoveRestoresPosition(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)

	before := snapshot(pos)

	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		pos.MakeMove(m)
		pos.UndoMove(m)
		after := snapshot(pos)
		if diff := cmp.Diff(before, after, cmp.AllowUnexported(positionSnapshot{})); diff != "" {
			t.Fatalf("move %v: position changed after make/undo (-before +after):\n%s", m, diff)
		}
	}
}

func TestCastlingRightsLostOnRookMove(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/8/8/8/8/8/6P1/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m := MakeMove(SquareFromStringMust("h1"), SquareFromStringMust("h2"), NoFigure,
		ColorFigure(White, Rook), NoFigure, 0, pos.CastlingAbility)
	pos.MakeMove(m)
	require.False(t, pos.CastlingAbility.Has(WhiteOO))
	require.True(t, pos.CastlingAbility.Has(WhiteOOO))
	pos.UndoMove(m)
	require.True(t, pos.CastlingAbility.Has(WhiteOO))
}

func TestIsInsufficientMaterial(t *testing.T) {
	pos, err := PositionFromFEN("8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	require.NoError(t, err)
	require.True(t, pos.IsInsufficientMaterial())

	pos, err = PositionFromFEN("8/8/4k3/8/8/3KQ3/8/8 w - - 0 1")
	require.NoError(t, err)
	require.False(t, pos.IsInsufficientMaterial())
}

type positionSnapshot struct {
	byFigure [FigureArraySize]Bitboard
	byColor  [2]Bitboard
	side     Color
	castle   Castle
	ep       Square
	hasEp    bool
	clock    int
	full     int
	zobrist  uint64
}

func snapshot(pos *Position) positionSnapshot {
	return positionSnapshot{
		byFigure: pos.ByFigure,
		byColor:  pos.ByColor,
		side:     pos.SideToMove,
		castle:   pos.CastlingAbility,
		ep:       pos.EnpassantSquare,
		hasEp:    pos.HasEnpassant,
		clock:    pos.HalfMoveClock,
		full:     pos.FullMoveNumber,
		zobrist:  pos.Zobrist,
	}
}

func SquareFromStringMust(s string) Square {
	sq, err := SquareFromString(s)
	if err != nil {
		panic(err)
	}
	return sq
}
