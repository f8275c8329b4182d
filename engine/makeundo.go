package engine

// castleRookMove returns the rook's from/to squares and the rook
// piece for the king's destination square of a castle move.
func castleRookMove(kingTo Square, us Color) (rook Piece, from, to Square) {
	rank := 0
	if us == Black {
		rank = 7
	}
	rook = ColorFigure(us, Rook)
	if kingTo.File() == 6 { // king side
		return rook, RankFile(rank, 7), RankFile(rank, 5)
	}
	return rook, RankFile(rank, 0), RankFile(rank, 3) // queen side
}

// MakeMove applies m, which must be pseudo-legal in the current
// position. It does not check that the mover's king ends up safe;
// pair with IsChecked/GenerateLegalMoves for full legality, and with
// UndoMove to back it out regardless of legality.
func (pos *Position) MakeMove(m Move) {
	us := pos.SideToMove
	from, to := m.From(), m.To()
	piece := m.Piece()

	pos.setCastlingAbility(pos.CastlingAbility &^ lostCastleRights[from] &^ lostCastleRights[to])

	if m.IsCastle() {
		rook, rFrom, rTo := castleRookMove(to, us)
		pos.Remove(rFrom, rook)
		pos.Put(rTo, rook)
	} else if m.IsEnpassant() {
		capSq := to
		if us == White {
			capSq = Square(int(to) - 8)
		} else {
			capSq = Square(int(to) + 8)
		}
		pos.Remove(capSq, ColorFigure(us.Opposite(), Pawn))
	} else if m.Capture() != NoFigure {
		pos.Remove(to, ColorFigure(us.Opposite(), m.Capture()))
	}

	pos.Remove(from, piece)
	if m.IsPromotion() {
		pos.Put(to, ColorFigure(us, m.Promotion()))
	} else {
		pos.Put(to, piece)
	}

	if piece.Figure() == Pawn && (int(to)-int(from) == 16 || int(from)-int(to) == 16) {
		pos.setEnpassant(Square((int(from)+int(to))/2), true)
	} else {
		pos.setEnpassant(0, false)
	}

	pos.clockHistory = append(pos.clockHistory, pos.HalfMoveClock)
	if piece.Figure() == Pawn || m.Capture() != NoFigure {
		pos.HalfMoveClock = 0
	} else {
		pos.HalfMoveClock++
	}
	if us == Black {
		pos.FullMoveNumber++
	}
	pos.setSideToMove(us.Opposite())
	pos.history = append(pos.history, pos.Zobrist)
}

// UndoMove reverses the most recent MakeMove(m). m must be the same
// value passed to that MakeMove call: its embedded prior en-passant
// and castling fields are what make the reversal possible without a
// separate state stack.
func (pos *Position) UndoMove(m Move) {
	pos.history = pos.history[:len(pos.history)-1]
	pos.HalfMoveClock = pos.clockHistory[len(pos.clockHistory)-1]
	pos.clockHistory = pos.clockHistory[:len(pos.clockHistory)-1]
	pos.setSideToMove(pos.SideToMove.Opposite())
	us := pos.SideToMove
	from, to := m.From(), m.To()
	piece := m.Piece()

	if us == Black {
		pos.FullMoveNumber--
	}

	if m.IsPromotion() {
		pos.Remove(to, ColorFigure(us, m.Promotion()))
	} else {
		pos.Remove(to, piece)
	}
	pos.Put(from, piece)

	if m.IsCastle() {
		rook, rFrom, rTo := castleRookMove(to, us)
		pos.Remove(rTo, rook)
		pos.Put(rFrom, rook)
	} else if m.IsEnpassant() {
		capSq := to
		if us == White {
			capSq = Square(int(to) - 8)
		} else {
			capSq = Square(int(to) + 8)
		}
		pos.Put(capSq, ColorFigure(us.Opposite(), Pawn))
	} else if m.Capture() != NoFigure {
		pos.Put(to, ColorFigure(us.Opposite(), m.Capture()))
	}

	if ep, ok := m.PriorEpSquare(us); ok {
		pos.setEnpassant(ep, true)
	} else {
		pos.setEnpassant(0, false)
	}
	pos.setCastlingAbility(m.PriorCastle())
}

// MakeNullMove passes the turn without moving a piece, used by the
// null-move pruning heuristic. It clears any en-passant square, since
// a skipped move can never be captured en passant.
func (pos *Position) MakeNullMove() (hadEnpassant bool, epSquare Square) {
	hadEnpassant, epSquare = pos.HasEnpassant, pos.EnpassantSquare
	pos.setEnpassant(0, false)
	pos.setSideToMove(pos.SideToMove.Opposite())
	pos.history = append(pos.history, pos.Zobrist)
	return hadEnpassant, epSquare
}

func (pos *Position) UndoNullMove(hadEnpassant bool, epSquare Square) {
	pos.history = pos.history[:len(pos.history)-1]
	pos.setSideToMove(pos.SideToMove.Opposite())
	pos.setEnpassant(epSquare, hadEnpassant)
}
