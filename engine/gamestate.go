package engine

// GameResult classifies how a game (or the position at its current
// point) has ended, if at all.
type GameResult int

const (
	Ongoing GameResult = iota
	WhiteWins
	BlackWins
	DrawStalemate
	DrawFiftyMove
	DrawRepetition
	DrawInsufficientMaterial
)

func (r GameResult) IsDraw() bool {
	return r == DrawStalemate || r == DrawFiftyMove || r == DrawRepetition || r == DrawInsufficientMaterial
}

func (r GameResult) IsOver() bool { return r != Ongoing }

// Status inspects pos and reports whether the game is over, checking
// the conditions in the order a referee would: first whether the side
// to move has any legal move at all, then the automatic draw rules.
func (pos *Position) Status() GameResult {
	var moves []Move
	pos.GenerateLegalMoves(All, &moves)
	if len(moves) == 0 {
		if pos.IsChecked(pos.SideToMove) {
			if pos.SideToMove == White {
				return BlackWins
			}
			return WhiteWins
		}
		return DrawStalemate
	}
	if pos.HalfMoveClock >= 100 {
		return DrawFiftyMove
	}
	if pos.IsThreeFoldRepetition() {
		return DrawRepetition
	}
	if pos.IsInsufficientMaterial() {
		return DrawInsufficientMaterial
	}
	return Ongoing
}
