package notation

import (
	"fmt"
	"strings"

	"github.com/lsanca/chesscore/engine"
)

// Result is the PGN game-termination token, recorded in both the
// movetext and the "Result" tag pair.
type Result string

const (
	ResultWhiteWins Result = "1-0"
	ResultBlackWins Result = "0-1"
	ResultDraw      Result = "1/2-1/2"
	ResultOngoing   Result = "*"
)

// ResultFromStatus maps a finished game's status to its PGN token.
func ResultFromStatus(status engine.GameResult, sideToMove engine.Color) Result {
	switch status {
	case engine.WhiteWins:
		return ResultWhiteWins
	case engine.BlackWins:
		return ResultBlackWins
	case engine.DrawStalemate, engine.DrawFiftyMove, engine.DrawRepetition, engine.DrawInsufficientMaterial:
		return ResultDraw
	default:
		return ResultOngoing
	}
}

// Game is a sequence of moves played from a starting position, with
// PGN tag-pair metadata.
type Game struct {
	Tags  map[string]string
	Start *engine.Position
	Moves []engine.Move
	Result Result
}

// NewGame starts a game from the standard initial position.
func NewGame() (*Game, error) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	if err != nil {
		return nil, err
	}
	return &Game{
		Tags:   map[string]string{"Event": "?", "Site": "?", "Date": "????.??.??", "Round": "?", "White": "?", "Black": "?"},
		Start:  pos,
		Result: ResultOngoing,
	}, nil
}

// String renders the game as PGN text: tag pairs followed by movetext
// ending in the result token.
func (g *Game) String() string {
	var b strings.Builder

	order := []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}
	tags := map[string]string{}
	for k, v := range g.Tags {
		tags[k] = v
	}
	tags["Result"] = string(g.Result)
	for _, k := range order {
		if v, ok := tags[k]; ok {
			fmt.Fprintf(&b, "[%s %q]\n", k, v)
			delete(tags, k)
		}
	}
	for k, v := range tags {
		fmt.Fprintf(&b, "[%s %q]\n", k, v)
	}
	b.WriteByte('\n')

	pos, err := engine.PositionFromFEN(g.Start.String())
	if err != nil {
		pos = g.Start
	}
	for i, m := range g.Moves {
		if pos.SideToMove == engine.White {
			fmt.Fprintf(&b, "%d. ", pos.FullMoveNumber)
		} else if i == 0 {
			fmt.Fprintf(&b, "%d... ", pos.FullMoveNumber)
		}
		b.WriteString(ToSAN(pos, m))
		b.WriteByte(' ')
		pos.MakeMove(m)
	}
	b.WriteString(string(g.Result))
	b.WriteByte('\n')
	return b.String()
}
