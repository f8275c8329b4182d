package engine

import "errors"

// ErrNoMoveToUndo is returned by GameRecord.Undo when the cursor is
// already at the start of the recorded moves.
var ErrNoMoveToUndo = errors.New("no move to undo")

// ErrNoMoveToRedo is returned by GameRecord.Redo when the cursor is
// already at the tail of the recorded moves.
var ErrNoMoveToRedo = errors.New("no move to redo")

// GameRecord tracks the moves applied to a Position as an ordered
// list with a cursor, so a caller can undo back toward the start and
// redo forward again as long as no new move has been made in between.
// It is a separate concern from Position.history, which only keeps
// Zobrist keys for repetition detection and is destructively
// truncated on undo with no way to redo.
type GameRecord struct {
	pos    *Position
	moves  []Move
	cursor int // number of moves currently applied; cursor <= len(moves)
}

// NewGameRecord starts an empty record over pos.
func NewGameRecord(pos *Position) *GameRecord {
	return &GameRecord{pos: pos}
}

// Make applies m to the underlying position and appends it to the
// record. If the cursor is behind the tail (some moves were undone),
// the undone tail is discarded first, so redo is no longer possible
// past this point.
func (gr *GameRecord) Make(m Move) {
	gr.moves = append(gr.moves[:gr.cursor], m)
	gr.pos.MakeMove(m)
	gr.cursor++
}

// CanUndo reports whether Undo has a move to retreat over.
func (gr *GameRecord) CanUndo() bool { return gr.cursor > 0 }

// CanRedo reports whether Redo has a move to reapply.
func (gr *GameRecord) CanRedo() bool { return gr.cursor < len(gr.moves) }

// Undo retreats the cursor by one move, undoing it on the underlying
// position. The move stays in the record so Redo can reapply it.
func (gr *GameRecord) Undo() error {
	if !gr.CanUndo() {
		return ErrNoMoveToUndo
	}
	gr.cursor--
	gr.pos.UndoMove(gr.moves[gr.cursor])
	return nil
}

// Redo reapplies the move immediately after the cursor, advancing it.
func (gr *GameRecord) Redo() error {
	if !gr.CanRedo() {
		return ErrNoMoveToRedo
	}
	gr.pos.MakeMove(gr.moves[gr.cursor])
	gr.cursor++
	return nil
}

// Moves returns the moves currently applied, in order, up to the
// cursor. The slice is a copy; mutating it does not affect the record.
func (gr *GameRecord) Moves() []Move {
	out := make([]Move, gr.cursor)
	copy(out, gr.moves[:gr.cursor])
	return out
}

// Len reports how many moves are currently applied.
func (gr *GameRecord) Len() int { return gr.cursor }
