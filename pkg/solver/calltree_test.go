package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallTreeEmpty(t *testing.T) {
	assert.Nil(t, CallTree(0))
	assert.Nil(t, CallTree(-3))
	assert.Equal(t, 0, (*Call)(nil).Size())
}

func TestCallTreeShape(t *testing.T) {
	for n := 1; n <= 6; n++ {
		root := CallTree(n)
		require.NotNil(t, root)
		assert.Equal(t, ExpectedMoves(n), root.Size(), "n=%d", n)
		assert.Equal(t, n, root.Disks)
		assert.Equal(t, Source, root.From)
		assert.Equal(t, Auxiliary, root.Using)
		assert.Equal(t, Destination, root.To)
	}
}

func TestCallTreeMatchesMoves(t *testing.T) {
	const n = 4
	moves, err := Solve(n)
	require.NoError(t, err)

	seen := make(map[int]bool)
	CallTree(n).Walk(func(c *Call, depth int) bool {
		assert.Equal(t, n-c.Disks, depth)
		require.Less(t, c.MoveIndex, len(moves))
		assert.Equal(t, c.To, moves[c.MoveIndex].DestinationPegIndex, "frame %+v", *c)
		// Every frame moves the largest disk of its subproblem.
		assert.Equal(t, c.Disks-1, moves[c.MoveIndex].DiskIndex, "frame %+v", *c)
		seen[c.MoveIndex] = true
		return true
	})
	assert.Len(t, seen, len(moves))
}

func TestCallTreeWalkStops(t *testing.T) {
	visited := 0
	CallTree(5).Walk(func(*Call, int) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}
