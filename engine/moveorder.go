// moveorder.go generates and orders moves for the search lazily: each
// PopMove call advances through a fixed sequence of buckets (hash
// move, then violent moves, then killers, then the rest) and only
// generates a bucket's moves when it is actually reached, so a cutoff
// found early skips generating and sorting moves that would never be
// searched anyway.
package engine

const (
	msHash = iota
	msGenViolent
	msReturnViolent
	msGenKiller
	msReturnKiller
	msGenRest
	msReturnRest
	msDone
)

// historyTable scores quiet moves by how often they have produced a
// cutoff in the past, indexed by a small hash of the move so it need
// not be keyed by the exact position.
type historyTable [1 << 16]int32

func historyIndex(m Move) uint32 {
	h := uint64(m.From())<<6 | uint64(m.To())
	h |= uint64(m.Piece()) << 12
	return uint32(h) & (1<<16 - 1)
}

func (h *historyTable) get(m Move) int32 { return h[historyIndex(m)] }

func (h *historyTable) update(m Move, depth int) {
	idx := historyIndex(m)
	h[idx] += int32(depth * depth)
	if h[idx] > 1<<20 {
		for i := range h {
			h[i] /= 2
		}
	}
}

// moveScore orders a candidate move for sorting: quiet moves by history
// (how often they have caused a cutoff before), captures and
// promotions by the fast evaluation of the position after the move is
// made, negated so that a result good for the opponent sorts low.
func (mo *moveOrderer) moveScore(m Move) int32 {
	if m.Capture() == NoFigure && !m.IsPromotion() {
		return -30000 + mo.history.get(m)
	}
	return mo.captureScore(m)
}

// captureScore plays m, evaluates the resulting position from the
// perspective of the side now to move, and negates it back to the
// mover's perspective, so a capture that wins material scores high
// regardless of which pieces were involved.
func (mo *moveOrderer) captureScore(m Move) int32 {
	mo.pos.MakeMove(m)
	score := -FastEvaluate(mo.pos)
	mo.pos.UndoMove(m)
	return score
}

// plyMoves holds the candidate moves and ordering state for one ply
// of search.
type plyMoves struct {
	moves []Move
	order []int32
	kind  GenKind
	state int
	hash  Move
	killer [2]Move
}

// moveOrderer owns one plyMoves per ply, the history table, and a
// small counter-move table, shared across an entire search call.
type moveOrderer struct {
	pos     *Position
	ply     []plyMoves
	history historyTable
	counter [1 << 12]Move
}

func newMoveOrderer(pos *Position) *moveOrderer {
	return &moveOrderer{pos: pos}
}

func (mo *moveOrderer) at(ply int) *plyMoves {
	for len(mo.ply) <= ply {
		mo.ply = append(mo.ply, plyMoves{moves: make([]Move, 0, 24), order: make([]int32, 0, 24)})
	}
	return &mo.ply[ply]
}

// StartPly resets the ordering state for ply, beginning with hash as
// the principal-variation / transposition-table move to try first.
func (mo *moveOrderer) StartPly(ply int, kind GenKind, hash Move) {
	pm := mo.at(ply)
	pm.moves = pm.moves[:0]
	pm.order = pm.order[:0]
	pm.kind = kind
	pm.state = msHash
	pm.hash = hash
}

var shellSortGaps = [...]int{132, 57, 23, 10, 4, 1}

func sortMoves(moves []Move, order []int32) {
	for _, gap := range shellSortGaps {
		for i := gap; i < len(order); i++ {
			j, to, tm := i, order[i], moves[i]
			for ; j >= gap && order[j-gap] > to; j -= gap {
				order[j] = order[j-gap]
				moves[j] = moves[j-gap]
			}
			order[j], moves[j] = to, tm
		}
	}
}

func popBack(moves *[]Move, order *[]int32) (Move, bool) {
	if len(*moves) == 0 {
		return NullMove, false
	}
	n := len(*moves) - 1
	m := (*moves)[n]
	*moves, *order = (*moves)[:n], (*order)[:n]
	return m, true
}

func (mo *moveOrderer) generate(ply int, kind GenKind) {
	pm := &mo.ply[ply]
	pm.moves = pm.moves[:0]
	pm.order = pm.order[:0]
	mo.pos.GeneratePseudoLegalMoves(pm.kind&kind, &pm.moves)
	for _, m := range pm.moves {
		pm.order = append(pm.order, mo.moveScore(m))
	}
	sortMoves(pm.moves, pm.order)
}

// PopMove returns the next move to try at ply, or NullMove once the
// bucket sequence is exhausted.
func (mo *moveOrderer) PopMove(ply int) Move {
	pm := &mo.ply[ply]
	for {
		switch pm.state {
		case msHash:
			pm.state = msGenViolent
			if pm.hash != NullMove && mo.pos.isPseudoLegal(pm.hash) {
				return pm.hash
			}

		case msGenViolent:
			pm.state = msReturnViolent
			mo.generate(ply, Violent|Underpromotion)

		case msReturnViolent:
			m, ok := popBack(&pm.moves, &pm.order)
			if !ok {
				if pm.kind&Quiet == 0 {
					pm.state = msDone
				} else {
					pm.state = msGenKiller
				}
			} else if m != pm.hash {
				return m
			}

		case msGenKiller:
			pm.state = msReturnKiller
			if cm := mo.counter[mo.counterIndex()]; cm != NullMove && cm != pm.killer[0] && cm != pm.killer[1] {
				pm.moves = append(pm.moves, cm)
				pm.order = append(pm.order, -1)
			}
			for _, k := range pm.killer {
				if k != NullMove {
					pm.moves = append(pm.moves, k)
					pm.order = append(pm.order, 0)
				}
			}

		case msReturnKiller:
			m, ok := popBack(&pm.moves, &pm.order)
			if !ok {
				pm.state = msGenRest
			} else if m != pm.hash && mo.pos.isPseudoLegal(m) {
				return m
			}

		case msGenRest:
			pm.state = msReturnRest
			mo.generate(ply, Quiet|Castle)

		case msReturnRest:
			m, ok := popBack(&pm.moves, &pm.order)
			if !ok {
				pm.state = msDone
			} else if m == pm.hash || mo.isKiller(ply, m) {
				continue
			} else {
				return m
			}

		case msDone:
			return NullMove
		}
	}
}

func (mo *moveOrderer) isKiller(ply int, m Move) bool {
	pm := &mo.ply[ply]
	return m == pm.killer[0] || m == pm.killer[1]
}

// SaveKiller records a quiet move that caused a beta cutoff, so later
// siblings at the same ply try it early.
func (mo *moveOrderer) SaveKiller(ply int, m Move, depth int) {
	if m.Capture() != NoFigure {
		return
	}
	mo.counter[mo.counterIndex()] = m
	pm := &mo.ply[ply]
	if m != pm.killer[0] {
		pm.killer[1] = pm.killer[0]
		pm.killer[0] = m
	}
	mo.history.update(m, depth)
}

func (mo *moveOrderer) counterIndex() int {
	return int(murmurMix(uint64(len(mo.pos.history)), 0x9e3779b97f4a7c15) & (1<<12 - 1))
}

// isPseudoLegal reports whether m could plausibly still be generated
// in the current position — used to validate a hash/killer move that
// was recorded against a position reached by a different move order
// and may no longer apply (the piece moved away, the target changed).
func (pos *Position) isPseudoLegal(m Move) bool {
	if m == NullMove {
		return false
	}
	pi := pos.Get(m.From())
	if pi != m.Piece() || pi.Color() != pos.SideToMove {
		return false
	}
	target := pos.Get(m.To())
	if m.Capture() == NoFigure {
		if target != NoPiece && !m.IsCastle() {
			return false
		}
	} else if m.IsEnpassant() {
		if !pos.HasEnpassant || pos.EnpassantSquare != m.To() {
			return false
		}
	} else if target.Figure() != m.Capture() || target.Color() == pos.SideToMove {
		return false
	}
	return true
}
