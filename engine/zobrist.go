// zobrist.go precomputes the random numbers used to maintain each
// Position's incremental hash, the way
// research.cs.wisc.edu/techreports/1970/TR88.pdf describes.
package engine

import "math/rand"

var (
	zobristPiece     [16][SquareArraySize]uint64
	zobristEnpassant [SquareArraySize]uint64
	zobristCastle    [16]uint64
	zobristColor     [2]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))
	for p := Piece(0); p < 16; p++ {
		for sq := Square(0); sq < SquareArraySize; sq++ {
			zobristPiece[p][sq] = rand64(r)
		}
	}
	for sq := Square(0); sq < SquareArraySize; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for c := Castle(0); c < 16; c++ {
		zobristCastle[c] = rand64(r)
	}
	zobristColor[White] = rand64(r)
	zobristColor[Black] = rand64(r)
}
