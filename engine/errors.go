package engine

import "fmt"

// ParseError reports malformed input text (FEN, SAN, UCI move text)
// together with the offending token and its byte offset when known.
type ParseError struct {
	Kind   string // "fen", "san", "uci move", "square"
	Token  string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s token %q at offset %d", e.Kind, e.Kind, e.Token, e.Offset)
}

// IllegalMove reports a move that is syntactically well formed but not
// legal in the position it was proposed against.
type IllegalMove struct {
	Move Move
	Fen  string
}

func (e *IllegalMove) Error() string {
	return fmt.Sprintf("illegal move %s in position %q", e.Move, e.Fen)
}

// InvalidPosition reports a position that fails a structural invariant
// (missing or duplicated kings, pawns on the back rank, and so on).
type InvalidPosition struct {
	Invariant string
}

func (e *InvalidPosition) Error() string {
	return fmt.Sprintf("invalid position: %s", e.Invariant)
}

// SearchInterrupted reports a search that was stopped before
// completing its current iteration, carrying whatever best move the
// previous completed iteration had found.
type SearchInterrupted struct {
	Best Move
}

func (e *SearchInterrupted) Error() string { return "search interrupted" }

// SearchTimedOut reports a search that exhausted its allotted time.
type SearchTimedOut struct {
	Best Move
}

func (e *SearchTimedOut) Error() string { return "search timed out" }

// ResourceExhaustion reports a request the engine cannot satisfy with
// its configured resources, such as a hash table size too small to
// allocate a single bucket.
type ResourceExhaustion struct {
	Resource string
}

func (e *ResourceExhaustion) Error() string {
	return fmt.Sprintf("resource exhausted: %s", e.Resource)
}
