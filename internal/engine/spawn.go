package engine

import (
	"fmt"
	"math/rand/v2"
)

// FourProbability is the chance that a spawned tile is a 4 instead of a 2.
const FourProbability = 0.10

// Source is the randomness a RandomSpawner draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Spawner chooses where a new tile appears and what value it has.
// empty is never nil or empty when NextSpawn is called.
type Spawner interface {
	NextSpawn(empty []Position) (Position, int)
}

// RandomSpawner picks a uniformly random empty cell and spawns a 2 with
// probability 0.9 or a 4 with probability 0.1.
type RandomSpawner struct {
	src Source
}

// NewRandomSpawner creates a spawner drawing from src.
func NewRandomSpawner(src Source) *RandomSpawner {
	return &RandomSpawner{src: src}
}

// NewSeededSpawner creates a spawner backed by a PCG generator, so the same
// seed always yields the same spawn sequence.
func NewSeededSpawner(seed uint64) *RandomSpawner {
	return NewRandomSpawner(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NextSpawn implements Spawner.
func (s *RandomSpawner) NextSpawn(empty []Position) (Position, int) {
	cell := empty[s.src.IntN(len(empty))]

	value := 2
	if s.src.Float64() < FourProbability {
		value = 4
	}
	return cell, value
}

// Spawn places one new tile on a random empty cell of the board.
// On a full board it returns ErrNoEmptyCell and the board unchanged.
func Spawn(board Board, sp Spawner) (Board, Position, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return board, Position{}, ErrNoEmptyCell
	}

	pos, value := sp.NextSpawn(empty)
	if !board.contains(pos) || board.At(pos.Row, pos.Col) != 0 {
		return board, Position{}, fmt.Errorf("%w: cell (%d,%d) is not empty", ErrInvalidSpawn, pos.Row, pos.Col)
	}
	if value != 2 && value != 4 {
		return board, Position{}, fmt.Errorf("%w: value %d", ErrInvalidSpawn, value)
	}

	return board.with(pos, value), pos, nil
}
