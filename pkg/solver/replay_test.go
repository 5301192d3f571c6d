package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hanoitower/pkg/errors"
)

func TestReplayRejectsIllegalMoves(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		moves MoveList
	}{
		{"unknown disk", 2, MoveList{{DiskIndex: 5, DestinationPegIndex: 1}}},
		{"negative disk", 2, MoveList{{DiskIndex: -1, DestinationPegIndex: 1}}},
		{"unknown peg", 2, MoveList{{DiskIndex: 0, DestinationPegIndex: 3}}},
		{"buried disk", 2, MoveList{{DiskIndex: 1, DestinationPegIndex: 1}}},
		{"same peg", 2, MoveList{{DiskIndex: 0, DestinationPegIndex: 0, DestinationDiskCount: 1}}},
		{"larger on smaller", 2, MoveList{
			{DiskIndex: 0, DestinationPegIndex: 1},
			{DiskIndex: 1, DestinationPegIndex: 1, DestinationDiskCount: 1},
		}},
		{"wrong count", 2, MoveList{{DiskIndex: 0, DestinationPegIndex: 1, DestinationDiskCount: 1}}},
		{"empty puzzle", 0, MoveList{{DiskIndex: 0, DestinationPegIndex: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Replay(tt.n, tt.moves)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidMove), "got %v", err)
		})
	}
}

func TestReplayNegativeDisks(t *testing.T) {
	_, err := Replay(-1, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
}

func TestReplayPartial(t *testing.T) {
	moves, err := Solve(3)
	require.NoError(t, err)

	pegs, err := Replay(3, moves[:3])
	require.NoError(t, err)
	assert.Equal(t, []int{2}, pegs[Source])
	assert.Equal(t, []int{1, 0}, pegs[Auxiliary])
	assert.Empty(t, pegs[Destination])
}

func TestVerify(t *testing.T) {
	moves, err := Solve(4)
	require.NoError(t, err)
	require.NoError(t, Verify(4, moves))

	t.Run("truncated", func(t *testing.T) {
		err := Verify(4, moves[:len(moves)-1])
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidMove))
	})

	t.Run("wrong disk count", func(t *testing.T) {
		err := Verify(3, moves)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidMove))
	})

	t.Run("tampered", func(t *testing.T) {
		tampered := append(MoveList(nil), moves...)
		tampered[5].DestinationDiskCount++
		err := Verify(4, tampered)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidMove))
	})

	t.Run("ends on auxiliary", func(t *testing.T) {
		// Solving 1 disk onto peg 1 is legal but incomplete.
		err := Verify(1, MoveList{{DiskIndex: 0, DestinationPegIndex: 1}})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidMove))
	})
}

func TestInitialPegs(t *testing.T) {
	pegs := InitialPegs(4)
	assert.Equal(t, []int{3, 2, 1, 0}, pegs[Source])
	assert.Empty(t, pegs[Auxiliary])
	assert.Empty(t, pegs[Destination])

	// Snapshots are copies.
	pegs[Source][0] = 99
	assert.Equal(t, 3, InitialPegs(4)[Source][0])
}
