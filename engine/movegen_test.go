package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func countLegalMoves(t *testing.T, fen string) int {
	t.Helper()
	pos, err := PositionFromFEN(fen)
	require.NoError(t, err)
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	return len(moves)
}

func TestStartingPositionHas20Moves(t *testing.T) {
	require.Equal(t, 20, countLegalMoves(t, FENStartPos))
}

func TestKiwipeteMoveCount(t *testing.T) {
	require.Equal(t, 48, countLegalMoves(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))
}

func TestStalemateHasNoMoves(t *testing.T) {
	require.Equal(t, 0, countLegalMoves(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"))
}

func TestCheckmateHasNoMoves(t *testing.T) {
	require.Equal(t, 0, countLegalMoves(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"))
}

func TestPinnedPieceCannotMove(t *testing.T) {
	pos, err := PositionFromFEN("4k3/4q3/8/8/4R3/8/4K3/8 w - - 0 1")
	require.NoError(t, err)
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	for _, m := range moves {
		require.False(t, m.From() == SquareFromStringMust("e4") && m.To().File() != 4,
			"pinned rook must stay on the e-file: %v", m)
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := PositionFromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	found := false
	for _, m := range moves {
		if m.IsEnpassant() {
			found = true
			require.Equal(t, SquareFromStringMust("d6"), m.To())
		}
	}
	require.True(t, found, "expected an en passant capture to be generated")
}

func TestCastlingBlockedWhenSquaresAttacked(t *testing.T) {
	// Black rook on f8 controls f1 through the open f-file, so
	// kingside castling is illegal, but queenside remains legal.
	pos, err := PositionFromFEN("4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	for _, m := range moves {
		if m.IsCastle() {
			require.Equal(t, SquareFromStringMust("c1"), m.To(), "only queenside castling should be legal")
		}
	}
}
