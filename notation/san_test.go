package notation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lsanca/chesscore/engine"
)

func mustPos(t *testing.T, fen string) *engine.Position {
	t.Helper()
	pos, err := engine.PositionFromFEN(fen)
	require.NoError(t, err)
	return pos
}

func findMove(t *testing.T, pos *engine.Position, from, to string) engine.Move {
	t.Helper()
	f, err := engine.SquareFromString(from)
	require.NoError(t, err)
	tt, err := engine.SquareFromString(to)
	require.NoError(t, err)

	var moves []engine.Move
	pos.GenerateLegalMoves(engine.All, &moves)
	for _, m := range moves {
		if m.From() == f && m.To() == tt {
			return m
		}
	}
	t.Fatalf("no legal move %s%s in %s", from, to, pos.String())
	return engine.NullMove
}

func TestToSANPawnAdvance(t *testing.T) {
	pos := mustPos(t, engine.FENStartPos)
	m := findMove(t, pos, "e2", "e4")
	require.Equal(t, "e4", ToSAN(pos, m))
}

func TestToSANPawnCapture(t *testing.T) {
	pos := mustPos(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	m := findMove(t, pos, "e4", "d5")
	require.Equal(t, "exd5", ToSAN(pos, m))
}

func TestToSANKnightDisambiguation(t *testing.T) {
	// Knights on a1 and c1 can both reach b3; SAN must name the file.
	pos := mustPos(t, "4k3/8/8/8/8/8/8/N1N3K1 w - - 0 1")
	m := findMove(t, pos, "a1", "b3")
	require.Equal(t, "Nab3", ToSAN(pos, m))
}

func TestToSANCheckSuffix(t *testing.T) {
	pos := mustPos(t, "4k3/8/8/8/8/8/7R/4K3 w - - 0 1")
	m := findMove(t, pos, "h2", "h8")
	require.Equal(t, "Rh8+", ToSAN(pos, m))
}

func TestToSANCheckmateSuffix(t *testing.T) {
	pos := mustPos(t, "7k/5ppp/8/8/8/8/8/Q5K1 w - - 0 1")
	m := findMove(t, pos, "a1", "a8")
	require.Equal(t, "Qa8#", ToSAN(pos, m))
}

func TestToSANCastle(t *testing.T) {
	pos := mustPos(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	m := findMove(t, pos, "e1", "g1")
	require.Equal(t, "O-O", ToSAN(pos, m))

	m = findMove(t, pos, "e1", "c1")
	require.Equal(t, "O-O-O", ToSAN(pos, m))
}

func TestParseSANRoundTrip(t *testing.T) {
	pos := mustPos(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var moves []engine.Move
	pos.GenerateLegalMoves(engine.All, &moves)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		san := ToSAN(pos, m)
		got, err := ParseSAN(pos, san)
		require.NoError(t, err, san)
		require.Equal(t, m, got, san)
	}
}

func TestParseSANRejectsUnknownMove(t *testing.T) {
	pos := mustPos(t, engine.FENStartPos)
	_, err := ParseSAN(pos, "Qh5")
	require.Error(t, err)
}
