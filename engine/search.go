// search.go implements iterative-deepening alpha-beta negamax with
// aspiration windows, principal variation search, null-move pruning,
// late move reductions, and futility/history leaf pruning, following
// the structure of a classical fail-soft negamax search.
package engine

const (
	nullMoveDepthLimit  = 2
	futilityDepthLimit  = 3
	lmrDepthLimit       = 2
	checkDepthExtension = 1

	initialAspirationWindow = 50
)

var futilityFigureBonus = [FigureArraySize]int32{0, 100, 300, 300, 500, 900, 0}

const futilityMargin = 150

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// endPosition reports whether pos is an automatic draw (insufficient
// material, fifty-move rule or threefold repetition), scored 0.
// Checkmate and stalemate are not detected here; searchTree scores
// them when it finds no legal move.
func (eng *Engine) endPosition() (int32, bool) {
	pos := eng.Position
	if pos.IsInsufficientMaterial() {
		return 0, true
	}
	if pos.HalfMoveClock >= 100 {
		return 0, true
	}
	if pos.IsThreeFoldRepetition() {
		return 0, true
	}
	return 0, false
}

func (eng *Engine) retrieveHash() (move Move, score int32, depth int, bound hashBound, ok bool) {
	return eng.hashTable.Get(eng.Position.Zobrist)
}

func (eng *Engine) updateHash(alpha, beta int32, depth int, score int32, move Move) {
	bound := boundFor(alpha, beta, score)
	eng.hashTable.Put(eng.Position.Zobrist, move, scoreToHash(score, eng.ply()), depth, bound)
}

// updateHashNull records a quiescence-only result: depth is exhausted
// so there is no real search tree behind score, only a stand-pat and
// capture sequence, making this the lowest-quality bound kind.
func (eng *Engine) updateHashNull(depth int, score int32) {
	eng.hashTable.Put(eng.Position.Zobrist, NullMove, scoreToHash(score, eng.ply()), depth, boundNull)
}

// ply returns the ply count since the search began (not since the
// game began), used to interpret and adjust mate scores.
func (eng *Engine) ply() int {
	return eng.Position.Ply() - eng.rootPly
}

// Ply counts the moves (null moves included) applied to Position since
// it was loaded, derived from the length of its move history rather
// than a separately maintained counter; eng.ply subtracts the root's
// value to make it search-relative.
func (pos *Position) Ply() int { return len(pos.history) - 1 }

func (eng *Engine) searchQuiescence(alpha, beta int32) int32 {
	eng.Stats.Nodes++
	if score, done := eng.endPosition(); done {
		return score
	}

	static := Evaluate(eng.Position)
	if static >= beta {
		return static
	}
	localAlpha := maxI32(alpha, static)

	pos := eng.Position
	us := pos.SideToMove
	inCheck := pos.IsChecked(us)

	ply := eng.ply()
	if ply > 32 {
		// Safety cap: a pathological exchange sequence should never
		// let quiescence outrun the hash/history stacks.
		return static
	}

	eng.orderer.StartPly(ply, Noisy, NullMove)
	var bestMove Move
	for {
		move := eng.orderer.PopMove(ply)
		if move == NullMove {
			break
		}
		if !inCheck && isFutile(pos, static, localAlpha, futilityMargin, move) {
			continue
		}
		if !inCheck && move.Capture() != NoFigure && seeSign(pos, move) {
			continue
		}
		eng.Position.MakeMove(move)
		if eng.Position.IsChecked(us) {
			eng.Position.UndoMove(move)
			continue
		}
		score := -eng.searchQuiescence(-beta, -localAlpha)
		eng.Position.UndoMove(move)

		if score >= beta {
			return score
		}
		if score > localAlpha {
			localAlpha = score
			bestMove = move
		}
	}

	if alpha < localAlpha && localAlpha < beta {
		eng.pvTable.Put(eng.Position, bestMove)
	}
	return localAlpha
}

// isFutile reports whether m is too weak to possibly raise static
// above alpha even granting it margin centipawns of slack, short
// circuiting for promotions and passed-pawn pushes whose true value
// this cheap estimate badly underrates.
func isFutile(pos *Position, static, alpha, margin int32, m Move) bool {
	if m.IsPromotion() {
		return false
	}
	delta := futilityFigureBonus[m.Capture()]
	return static+delta+margin < alpha && !passed(pos, m)
}

// passed reports whether m creates or removes a passed pawn, the case
// futility pruning must not touch since such a move's value can swing
// far more than the ordinary figure-value margin accounts for.
func passed(pos *Position, m Move) bool {
	check := func(fig Figure, bb Bitboard) bool {
		if fig != Pawn {
			return false
		}
		file := m.To().File()
		span := adjacentFileMask[file] | fileMask[file]
		return bb&span == 0
	}
	rest := pos.ByFigure[Pawn] &^ BbSquare(m.To()) &^ BbSquare(m.From())
	if check(m.Piece().Figure(), rest) || check(m.Capture(), rest) {
		return true
	}
	return false
}

// tryMove searches the subtree after move, which the caller has
// already made (and found legal), with the requested reduction/window
// policy, undoes the move, and returns the score from the mover's
// perspective.
func (eng *Engine) tryMove(alpha, beta int32, depth, lmr int, nullWindow bool, move Move) int32 {
	depth--

	score := alpha + 1
	if lmr > 0 {
		score = -eng.searchTree(-alpha-1, -alpha, depth-lmr)
	}
	if score > alpha {
		if nullWindow {
			score = -eng.searchTree(-alpha-1, -alpha, depth)
			if alpha < score && score < beta {
				score = -eng.searchTree(-beta, -alpha, depth)
			}
		} else {
			score = -eng.searchTree(-beta, -alpha, depth)
		}
	}
	eng.Position.UndoMove(move)
	return score
}

// searchTree is fail-soft negamax: the returned score can lie outside
// (alpha, beta), in which case it is only a bound, not exact — the
// caller distinguishes the two cases from which side of the window it
// falls on.
func (eng *Engine) searchTree(alpha, beta int32, depth int) int32 {
	ply := eng.ply()
	pvNode := alpha+1 < beta
	pos := eng.Position
	us, them := pos.SideToMove, pos.SideToMove.Opposite()

	eng.Stats.Nodes++
	if !eng.stopped && eng.Stats.Nodes >= eng.checkpoint {
		eng.checkpoint = eng.Stats.Nodes + checkpointStep
		if eng.timeControl.Stopped() {
			eng.stopped = true
		}
	}
	if eng.stopped {
		return alpha
	}
	if pvNode && ply > eng.Stats.SelDepth {
		eng.Stats.SelDepth = ply
	}
	if eng.Options.DebugAssertions {
		if err := pos.Verify(); err != nil {
			panic(err)
		}
	}
	if eng.breakAt != nil && eng.atBreak() {
		eng.Log.PrintPV(eng.Stats, Evaluate(pos), eng.line)
	}

	if score, done := eng.endPosition(); done {
		if ply != 0 || score != 0 {
			return score
		}
	}

	if int32(MateScore-ply) <= alpha {
		return KnownWinScore
	}

	hash, hashScore, hashDepth, hashBoundKind, hashOK := eng.retrieveHash()
	if hashOK && depth <= hashDepth {
		score := scoreFromHash(hashScore, ply)
		if isUsable(hashBoundKind, alpha, beta, score) {
			if hashBoundKind == boundExact && alpha < score && score < beta {
				eng.pvTable.Put(pos, hash)
			}
			return score
		}
	}

	if depth <= 0 {
		if alpha >= KnownWinScore || beta <= KnownLossScore {
			return Evaluate(pos)
		}
		score := eng.searchQuiescence(alpha, beta)
		eng.updateHashNull(depth, score)
		return score
	}

	sideIsChecked := pos.IsChecked(us)

	if eng.Options.NullMove &&
		depth > nullMoveDepthLimit &&
		!sideIsChecked &&
		pos.nonPawnMaterial(us) &&
		KnownLossScore < alpha && beta < KnownWinScore {
		hadEp, epSq := pos.MakeNullMove()
		reduction := minI32(int32(pos.ByColor[us].Count()), 2)
		score := eng.tryNullMove(beta-1, beta, depth-int(reduction))
		pos.UndoNullMove(hadEp, epSq)
		if score >= beta {
			return score
		}
	}

	bestMove, bestScore := NullMove, int32(-InfinityScore)

	allowLeafPruning := false
	static := int32(0)
	if eng.Options.Futility &&
		depth <= futilityDepthLimit &&
		!sideIsChecked && !pvNode &&
		KnownLossScore < alpha && beta < KnownWinScore {
		allowLeafPruning = true
		static = Evaluate(pos)
	}

	nullWindow := false
	allowLateMove := !sideIsChecked && depth > lmrDepthLimit
	dropped := false
	numMoves := 0
	localAlpha := alpha

	eng.orderer.StartPly(ply, All, hash)
	for {
		move := eng.orderer.PopMove(ply)
		if move == NullMove {
			break
		}
		critical := move == hash || eng.orderer.isKiller(ply, move)
		numMoves++

		newDepth := depth
		losingCapture := move.Capture() != NoFigure && seeSign(pos, move)
		pos.MakeMove(move)
		if pos.IsChecked(us) {
			pos.UndoMove(move)
			continue
		}
		eng.line = append(eng.line, move)

		givesCheck := pos.IsChecked(them)
		if givesCheck {
			newDepth += checkDepthExtension
		}

		lmr := 0
		if allowLateMove && !givesCheck && !critical && (move.Capture() == NoFigure || losingCapture) {
			lmr = 1 + minI32(int32(depth), int32(numMoves))/5
		}

		if allowLeafPruning && !givesCheck && !critical {
			if stat := eng.orderer.history.get(move); stat < -15 && (move.Capture() == NoFigure || losingCapture) {
				dropped = true
				pos.UndoMove(move)
				eng.line = eng.line[:len(eng.line)-1]
				continue
			}
			if isFutile(pos, static, localAlpha, int32(depth)*futilityMargin, move) {
				bestScore = maxI32(bestScore, static)
				dropped = true
				pos.UndoMove(move)
				eng.line = eng.line[:len(eng.line)-1]
				continue
			}
		}

		score := eng.tryMove(localAlpha, beta, newDepth, lmr, nullWindow, move)
		eng.line = eng.line[:len(eng.line)-1]
		if allowLeafPruning && !givesCheck {
			if score > alpha {
				eng.orderer.history.update(move, depth)
			}
		}

		if score >= beta {
			eng.orderer.SaveKiller(ply, move, depth)
			eng.updateHash(alpha, beta, depth, score, move)
			return score
		}
		if score > bestScore {
			nullWindow = true
			bestMove, bestScore = move, score
			localAlpha = maxI32(localAlpha, score)
		}
	}

	if !dropped {
		if bestMove == NullMove {
			if sideIsChecked {
				bestScore = int32(MatedScore + ply)
			} else {
				bestScore = 0
			}
		}
		eng.updateHash(alpha, beta, depth, bestScore, bestMove)
		if alpha < bestScore && bestScore < beta {
			eng.pvTable.Put(pos, bestMove)
		}
	}

	return bestScore
}

// tryNullMove mirrors tryMove for the null-move-pruning probe, which
// has no Move value to undo through the normal path.
func (eng *Engine) tryNullMove(alpha, beta int32, depth int) int32 {
	return -eng.searchTree(-beta, -alpha, depth)
}

// atBreak reports whether the move sequence played so far from the
// root exactly matches eng.breakAt, the SetBreak debugger hook.
func (eng *Engine) atBreak() bool {
	if len(eng.line) != len(eng.breakAt) {
		return false
	}
	for i, m := range eng.line {
		if m != eng.breakAt[i] {
			return false
		}
	}
	return true
}

func (pos *Position) nonPawnMaterial(c Color) bool {
	return (pos.ByColor[c] &^ (pos.ByFigure[Pawn] | pos.ByFigure[King])) != 0
}

// search runs one iterative-deepening depth with a gradually widening
// aspiration window around the previous depth's score.
func (eng *Engine) search(depth int, estimated int32) int32 {
	gamma, delta := estimated, int32(initialAspirationWindow)
	alpha, beta := maxI32(gamma-delta, -InfinityScore), minI32(gamma+delta, InfinityScore)
	score := estimated

	if depth < 4 {
		alpha, beta = -InfinityScore, InfinityScore
	}

	for !eng.stopped {
		score = eng.searchTree(alpha, beta, depth)
		if score <= alpha {
			alpha = maxI32(alpha-delta, -InfinityScore)
			delta += delta / 2
		} else if score >= beta {
			beta = minI32(beta+delta, InfinityScore)
			delta += delta / 2
		} else {
			return score
		}
	}
	return score
}

// Play runs iterative deepening until tc says to stop, returning the
// principal variation found (moves[0] is the best move), or nil if the
// side to move has no legal move. A root position that is already a
// repetition or fifty-move draw is still searched. tc must already be
// started.
func (eng *Engine) Play(tc *TimeControl) (moves []Move) {
	eng.Log.BeginSearch()
	eng.Stats = Stats{Depth: -1}

	eng.rootPly = eng.Position.Ply()
	eng.timeControl = tc
	eng.stopped = false
	eng.checkpoint = checkpointStep
	eng.line = eng.line[:0]
	eng.hashTable.NewGeneration()

	score := int32(0)
	for depth := 0; depth < 64; depth++ {
		if !tc.NextDepth(depth) {
			break
		}
		eng.Stats.Depth = depth
		score = eng.search(depth, score)

		if !eng.stopped {
			moves = eng.pvTable.Get(eng.Position)
			eng.Log.PrintPV(eng.Stats, score, moves)
		}
	}

	eng.Log.EndSearch()
	return moves
}
