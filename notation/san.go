package notation

import (
	"fmt"
	"strings"

	"github.com/lsanca/chesscore/engine"
)

// ToSAN renders m, played from pos (before the move is made), in
// standard algebraic notation, including file/rank disambiguation and
// the +/# suffix for check and checkmate.
func ToSAN(pos *engine.Position, m engine.Move) string {
	if m.IsCastle() {
		s := "O-O"
		if m.To().File() < m.From().File() {
			s = "O-O-O"
		}
		return s + suffix(pos, m)
	}

	fig := m.Piece().Figure()
	var b strings.Builder

	if fig == engine.Pawn {
		if m.IsCapture() {
			b.WriteByte("abcdefgh"[m.From().File()])
			b.WriteByte('x')
		}
		b.WriteString(m.To().String())
		if m.IsPromotion() {
			b.WriteByte('=')
			b.WriteString(strings.ToUpper(m.Promotion().String()))
		}
		return b.String() + suffix(pos, m)
	}

	b.WriteString(strings.ToUpper(fig.String()))
	b.WriteString(disambiguation(pos, m))
	if m.IsCapture() {
		b.WriteByte('x')
	}
	b.WriteString(m.To().String())
	return b.String() + suffix(pos, m)
}

// disambiguation returns the file, rank, or full-square qualifier
// needed to tell m's origin square apart from any other legal move of
// the same figure to the same destination.
func disambiguation(pos *engine.Position, m engine.Move) string {
	var moves []engine.Move
	pos.GenerateLegalMoves(engine.All, &moves)

	sameFile, sameRank, ambiguous := false, false, false
	for _, o := range moves {
		if o == m || o.To() != m.To() || o.Piece() != m.Piece() {
			continue
		}
		ambiguous = true
		if o.From().File() == m.From().File() {
			sameFile = true
		}
		if o.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return string("abcdefgh"[m.From().File()])
	case !sameRank:
		return string("12345678"[m.From().Rank()])
	default:
		return m.From().String()
	}
}

// suffix plays m on a copy's worth of pos (make/undo, leaving pos
// unchanged) and reports the "+" or "#" suffix, if any.
func suffix(pos *engine.Position, m engine.Move) string {
	pos.MakeMove(m)
	defer pos.UndoMove(m)

	them := pos.SideToMove
	if !pos.IsChecked(them) {
		return ""
	}
	var moves []engine.Move
	pos.GenerateLegalMoves(engine.All, &moves)
	if len(moves) == 0 {
		return "#"
	}
	return "+"
}

// ParseSAN resolves a SAN token against the legal moves available in
// pos. It accepts the check/checkmate suffix but does not verify it.
func ParseSAN(pos *engine.Position, token string) (engine.Move, error) {
	token = strings.TrimRight(token, "+#!?")
	if token == "O-O" || token == "0-0" {
		return findCastle(pos, pos.SideToMove, true)
	}
	if token == "O-O-O" || token == "0-0-0" {
		return findCastle(pos, pos.SideToMove, false)
	}

	var promo engine.Figure
	if i := strings.IndexByte(token, '='); i >= 0 {
		switch strings.ToUpper(token[i+1:]) {
		case "Q":
			promo = engine.Queen
		case "R":
			promo = engine.Rook
		case "B":
			promo = engine.Bishop
		case "N":
			promo = engine.Knight
		}
		token = token[:i]
	}

	fig := engine.Pawn
	rest := token
	if len(token) > 0 && strings.ContainsRune("NBRQK", rune(token[0])) {
		fig = figureFromLetter(token[0])
		rest = token[1:]
	}

	rest = strings.ReplaceAll(rest, "x", "")
	if len(rest) < 2 {
		return engine.NullMove, &engine.ParseError{Kind: "san", Token: token}
	}
	to, err := engine.SquareFromString(rest[len(rest)-2:])
	if err != nil {
		return engine.NullMove, err
	}
	qualifier := rest[:len(rest)-2]

	var moves []engine.Move
	pos.GenerateLegalMoves(engine.All, &moves)
	for _, m := range moves {
		if m.To() != to || m.Piece().Figure() != fig {
			continue
		}
		if promo != engine.NoFigure && m.Promotion() != promo {
			continue
		}
		if !matchesQualifier(m.From(), qualifier) {
			continue
		}
		return m, nil
	}
	return engine.NullMove, &engine.ParseError{Kind: "san", Token: token}
}

func matchesQualifier(from engine.Square, qualifier string) bool {
	for _, r := range qualifier {
		switch {
		case r >= 'a' && r <= 'h':
			if from.File() != int(r-'a') {
				return false
			}
		case r >= '1' && r <= '8':
			if from.Rank() != int(r-'1') {
				return false
			}
		}
	}
	return true
}

func figureFromLetter(b byte) engine.Figure {
	switch b {
	case 'N':
		return engine.Knight
	case 'B':
		return engine.Bishop
	case 'R':
		return engine.Rook
	case 'Q':
		return engine.Queen
	case 'K':
		return engine.King
	}
	return engine.NoFigure
}

func findCastle(pos *engine.Position, us engine.Color, kingside bool) (engine.Move, error) {
	var moves []engine.Move
	pos.GenerateLegalMoves(engine.All, &moves)
	for _, m := range moves {
		if !m.IsCastle() {
			continue
		}
		isKingside := m.To().File() > m.From().File()
		if isKingside == kingside {
			return m, nil
		}
	}
	return engine.NullMove, fmt.Errorf("no castle move available")
}
