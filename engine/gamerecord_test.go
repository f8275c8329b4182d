package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameRecordMakeUndoRedo(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	gr := NewGameRecord(pos)

	e4 := findLegalMove(t, pos, "e2", "e4")
	gr.Make(e4)
	require.Equal(t, 1, gr.Len())
	require.Equal(t, Black, pos.SideToMove)

	e5 := findLegalMove(t, pos, "e7", "e5")
	gr.Make(e5)
	require.Equal(t, 2, gr.Len())

	require.NoError(t, gr.Undo())
	require.Equal(t, White, pos.SideToMove)
	require.Equal(t, 1, gr.Len())
	require.True(t, gr.CanRedo())

	require.NoError(t, gr.Redo())
	require.Equal(t, Black, pos.SideToMove)
	require.Equal(t, 2, gr.Len())
	require.False(t, gr.CanRedo())

	require.Len(t, gr.Moves(), 2)
}

func TestGameRecordUndoEmptyFails(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	gr := NewGameRecord(pos)
	require.ErrorIs(t, gr.Undo(), ErrNoMoveToUndo)
}

func TestGameRecordRedoEmptyFails(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	gr := NewGameRecord(pos)
	m := findLegalMove(t, pos, "e2", "e4")
	gr.Make(m)
	require.ErrorIs(t, gr.Redo(), ErrNoMoveToRedo)
}

func TestGameRecordMakeAfterUndoTruncatesTail(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	gr := NewGameRecord(pos)

	e4 := findLegalMove(t, pos, "e2", "e4")
	gr.Make(e4)
	e5 := findLegalMove(t, pos, "e7", "e5")
	gr.Make(e5)

	require.NoError(t, gr.Undo())
	require.NoError(t, gr.Undo())
	require.Equal(t, 0, gr.Len())

	d4 := findLegalMove(t, pos, "d2", "d4")
	gr.Make(d4)
	require.Equal(t, 1, gr.Len())
	require.False(t, gr.CanRedo())
	require.Equal(t, []Move{d4}, gr.Moves())
}

func TestEngineMakeMoveRejectsIllegal(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	eng, err := NewEngine(pos, nil, DefaultOptions())
	require.NoError(t, err)

	bad := MakeMove(SquareFromStringMust("e2"), SquareFromStringMust("e5"), NoFigure,
		ColorFigure(White, Pawn), NoFigure, 0, pos.CastlingAbility)
	require.Error(t, eng.MakeMove(bad))
}

func TestEngineMakeMoveUpdatesLastResult(t *testing.T) {
	// Black king cornered on h8 behind its own pawn shield; Qa8 mates
	// along the back rank without coming within the king's reach.
	pos, err := PositionFromFEN("7k/5ppp/8/8/8/8/8/Q5K1 w - - 0 1")
	require.NoError(t, err)
	eng, err := NewEngine(pos, nil, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, Ongoing, eng.LastResult)

	mate := findLegalMove(t, pos, "a1", "a8")
	require.NoError(t, eng.MakeMove(mate))
	require.Equal(t, WhiteWins, eng.LastResult)

	require.NoError(t, eng.UndoMove())
	require.Equal(t, Ongoing, eng.LastResult)

	require.NoError(t, eng.RedoMove())
	require.Equal(t, WhiteWins, eng.LastResult)
}
