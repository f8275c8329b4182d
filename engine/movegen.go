package engine

// GenKind selects which subset of moves a generator call returns,
// staging move generation instead of generating everything up front.
// Castle and Underpromotion used to be bundled into one opaque
// Tactical bit; splitting them lets a caller ask for exactly the
// "noisy" set quiescence search needs: captures and promotions
// (including underpromotions) and en-passant, without castling.
type GenKind int

const (
	Quiet         GenKind = 1 << iota // no capture, no promotion, no castle
	Castle                            // king-side and queen-side castling
	Underpromotion                    // promotions to rook, bishop, or knight
	Violent                           // captures and queen promotions, including en passant
	Noisy         = Violent | Underpromotion
	All           = Quiet | Castle | Underpromotion | Violent
)

func (pos *Position) priorEpFile() uint8 {
	if !pos.HasEnpassant {
		return 0
	}
	return uint8(pos.EnpassantSquare.File() + 1)
}

// GeneratePseudoLegalMoves appends every pseudo-legal move matching
// kind to moves. A pseudo-legal move may leave the mover's own king in
// check; pair this with MakeMove and IsChecked or use
// GenerateLegalMoves.
func (pos *Position) GeneratePseudoLegalMoves(kind GenKind, moves *[]Move) {
	us := pos.SideToMove
	pos.genPawnMoves(kind, moves)
	pos.genFigureMoves(Knight, kind, moves)
	pos.genFigureMoves(Bishop, kind, moves)
	pos.genFigureMoves(Rook, kind, moves)
	pos.genFigureMoves(Queen, kind, moves)
	pos.genKingMoves(kind, moves)
	if kind&Castle != 0 {
		pos.genCastles(moves)
	}
	_ = us
}

// mask returns the set of target squares a generator of kind may land
// on: empty squares for Quiet, enemy pieces for Violent, both for All.
// Castle and Underpromotion alone contribute no extra targets here
// (castling and underpromotion targets are handled by their own
// generators).
func (pos *Position) mask(kind GenKind) Bitboard {
	us := pos.SideToMove
	occ := pos.Occupied()
	var m Bitboard
	if kind&Quiet != 0 {
		m |= ^occ
	}
	if kind&Violent != 0 {
		m |= pos.ByColor[us.Opposite()]
	}
	return m
}

func (pos *Position) genFigureMoves(fig Figure, kind GenKind, moves *[]Move) {
	us := pos.SideToMove
	occ := pos.Occupied()
	mask := pos.mask(kind)
	from := pos.ByPiece(us, fig)
	epFile, castle := pos.priorEpFile(), pos.CastlingAbility
	for from != 0 {
		var sq Square
		sq, from = from.Pop()
		var att Bitboard
		switch fig {
		case Knight:
			att = KnightAttacks(sq)
		case Bishop:
			att = BishopAttacks(sq, occ)
		case Rook:
			att = RookAttacks(sq, occ)
		case Queen:
			att = QueenAttacks(sq, occ)
		}
		att &= mask
		pi := ColorFigure(us, fig)
		for att != 0 {
			var to Square
			to, att = att.Pop()
			capture := pos.Get(to).Figure()
			*moves = append(*moves, MakeMove(sq, to, NoFigure, pi, capture, epFile, castle))
		}
	}
}

func (pos *Position) genKingMoves(kind GenKind, moves *[]Move) {
	us := pos.SideToMove
	from, _ := pos.ByPiece(us, King).Pop()
	att := KingAttacks(from) & pos.mask(kind)
	pi := ColorFigure(us, King)
	epFile, castle := pos.priorEpFile(), pos.CastlingAbility
	for att != 0 {
		var to Square
		to, att = att.Pop()
		capture := pos.Get(to).Figure()
		*moves = append(*moves, MakeMove(from, to, NoFigure, pi, capture, epFile, castle))
	}
}

func (pos *Position) genCastles(moves *[]Move) {
	us := pos.SideToMove
	them := us.Opposite()
	rank := 0
	oo, ooo := WhiteOO, WhiteOOO
	if us == Black {
		rank, oo, ooo = 7, BlackOO, BlackOOO
	}
	pi := ColorFigure(us, King)
	epFile, castle := pos.priorEpFile(), pos.CastlingAbility
	from := RankFile(rank, 4)

	if pos.CastlingAbility.Has(oo) {
		f, g := RankFile(rank, 5), RankFile(rank, 6)
		if pos.IsEmpty(f) && pos.IsEmpty(g) &&
			!pos.IsAttacked(from, them) && !pos.IsAttacked(f, them) && !pos.IsAttacked(g, them) {
			*moves = append(*moves, MakeMove(from, g, NoFigure, pi, NoFigure, epFile, castle))
		}
	}
	if pos.CastlingAbility.Has(ooo) {
		b, c, d := RankFile(rank, 1), RankFile(rank, 2), RankFile(rank, 3)
		if pos.IsEmpty(b) && pos.IsEmpty(c) && pos.IsEmpty(d) &&
			!pos.IsAttacked(from, them) && !pos.IsAttacked(d, them) && !pos.IsAttacked(c, them) {
			*moves = append(*moves, MakeMove(from, c, NoFigure, pi, NoFigure, epFile, castle))
		}
	}
}

var promotionFigures = [4]Figure{Queen, Rook, Bishop, Knight}

func (pos *Position) genPawnMoves(kind GenKind, moves *[]Move) {
	us := pos.SideToMove
	them := us.Opposite()
	occ := pos.Occupied()
	pawns := pos.ByPiece(us, Pawn)
	pi := ColorFigure(us, Pawn)
	epFile, castle := pos.priorEpFile(), pos.CastlingAbility

	forward, startRank, promoRank := 8, 1, 7
	if us == Black {
		forward, startRank, promoRank = -8, 6, 0
	}

	addMove := func(from, to Square, capture Figure) {
		if to.Rank() == promoRank {
			if kind&Violent != 0 {
				*moves = append(*moves, MakeMove(from, to, Queen, pi, capture, epFile, castle))
			}
			if kind&Underpromotion != 0 {
				for _, promo := range promotionFigures[1:] {
					*moves = append(*moves, MakeMove(from, to, promo, pi, capture, epFile, castle))
				}
			}
			return
		}
		tag := Quiet
		if capture != NoFigure {
			tag = Violent
		}
		if kind&tag != 0 {
			*moves = append(*moves, MakeMove(from, to, NoFigure, pi, capture, epFile, castle))
		}
	}

	p := pawns
	for p != 0 {
		var from Square
		from, p = p.Pop()
		to := Square(int(from) + forward)

		if (kind&Quiet != 0 || to.Rank() == promoRank) && pos.IsEmpty(to) {
			addMove(from, to, NoFigure)
			if from.Rank() == startRank && kind&Quiet != 0 {
				to2 := Square(int(to) + forward)
				if pos.IsEmpty(to2) {
					*moves = append(*moves, MakeMove(from, to2, NoFigure, pi, NoFigure, epFile, castle))
				}
			}
		}

		caps := PawnAttacks(from, us)
		for caps != 0 {
			var to Square
			to, caps = caps.Pop()
			if pos.ByColor[them].Has(to) {
				addMove(from, to, pos.Get(to).Figure())
			} else if pos.HasEnpassant && to == pos.EnpassantSquare {
				addMove(from, to, Pawn)
			}
		}
	}
	_ = occ
}

func (pos *Position) kingInCheck(mover Color) bool { return pos.IsChecked(mover) }

// GenerateLegalMoves appends every legal move matching kind to moves,
// filtering pseudo-legal candidates by make/undo in place: apply,
// test whether the mover's own king is attacked, undo.
func (pos *Position) GenerateLegalMoves(kind GenKind, moves *[]Move) {
	us := pos.SideToMove
	var pseudo []Move
	pos.GeneratePseudoLegalMoves(kind, &pseudo)
	for _, m := range pseudo {
		if m.IsCastle() {
			// Castling legality (king not in/through/into check) was
			// already verified at generation time.
			*moves = append(*moves, m)
			continue
		}
		pos.MakeMove(m)
		if !pos.kingInCheck(us) {
			*moves = append(*moves, m)
		}
		pos.UndoMove(m)
	}
}
