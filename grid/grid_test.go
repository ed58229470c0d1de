package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	g, ends, err := NewDefault(6, 5)
	require.NoError(t, err)

	assert.Equal(t, 6, g.Width())
	assert.Equal(t, 5, g.Height())
	assert.Equal(t, Point{Row: 0, Col: 0}, ends.Start)
	assert.Equal(t, Point{Row: 4, Col: 5}, ends.Destination)
	assert.Equal(t, 1, g.Count(Start))
	assert.Equal(t, 1, g.Count(Destination))
	assert.Equal(t, 28, g.Count(Open))

	located, err := g.Locate()
	require.NoError(t, err)
	assert.Equal(t, ends, located)
}

func TestNewRejects(t *testing.T) {
	t.Run("too small", func(t *testing.T) {
		_, _, err := NewDefault(1, 1)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("coinciding endpoints", func(t *testing.T) {
		p := Point{Row: 1, Col: 1}
		_, err := New(3, 3, Endpoints{Start: p, Destination: p})
		assert.ErrorIs(t, err, ErrInvalidEndpoints)
	})

	t.Run("endpoint outside", func(t *testing.T) {
		_, err := New(3, 3, Endpoints{Start: Point{}, Destination: Point{Row: 3, Col: 0}})
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestGetSetBounds(t *testing.T) {
	g, err := NewOpen(4, 3)
	require.NoError(t, err)

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		_, err := g.At(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "At%s", p)
		assert.ErrorIs(t, g.Set(p, Wall), ErrOutOfBounds, "Set%s", p)
	}

	require.NoError(t, g.Set(Point{Row: 2, Col: 3}, Wall))
	s, err := g.At(Point{Row: 2, Col: 3})
	require.NoError(t, err)
	assert.Equal(t, Wall, s)
	assert.False(t, g.Passable(Point{Row: 2, Col: 3}))

	assert.ErrorIs(t, g.Set(Point{}, CellState(9)), ErrUnknownCellState)
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]CellState{{Open, Open}, {Open}})
	assert.ErrorIs(t, err, ErrRaggedRows)
}

func TestLocateFirstOccurrence(t *testing.T) {
	g, err := Parse(
		"..D.",
		"S..S",
		"D...",
	)
	require.NoError(t, err)

	ends, err := g.Locate()
	require.NoError(t, err)
	assert.Equal(t, Point{Row: 1, Col: 0}, ends.Start)
	assert.Equal(t, Point{Row: 0, Col: 2}, ends.Destination)

	open, err := Parse("....", "....")
	require.NoError(t, err)
	_, err = open.Locate()
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestCloneIsIndependent(t *testing.T) {
	g, _, err := NewDefault(3, 3)
	require.NoError(t, err)

	c := g.Clone()
	require.NoError(t, c.Set(Point{Row: 1, Col: 1}, Wall))

	assert.False(t, g.Equal(c))
	s, _ := g.At(Point{Row: 1, Col: 1})
	assert.Equal(t, Open, s)
}

func TestWireLabels(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		g, err := Parse("S#", ".D")
		require.NoError(t, err)

		data, err := json.Marshal(g)
		require.NoError(t, err)
		assert.JSONEq(t, `[["start","wall"],["open","destination"]]`, string(data))
	})

	t.Run("decode legacy labels", func(t *testing.T) {
		var g Grid
		require.NoError(t, json.Unmarshal([]byte(`[["start","block"],["blank","destination"]]`), &g))
		assert.Equal(t, "S#\n.D\n", g.String())
	})

	t.Run("unknown label is not a wall", func(t *testing.T) {
		var g Grid
		err := json.Unmarshal([]byte(`[["start","lava"],["open","destination"]]`), &g)
		assert.ErrorIs(t, err, ErrUnknownCellState)
	})

	t.Run("point pair", func(t *testing.T) {
		data, err := json.Marshal(Point{Row: 3, Col: 7})
		require.NoError(t, err)
		assert.Equal(t, `[3,7]`, string(data))

		var p Point
		require.NoError(t, json.Unmarshal([]byte(`[4, 1]`), &p))
		assert.Equal(t, Point{Row: 4, Col: 1}, p)
		assert.Error(t, json.Unmarshal([]byte(`[4]`), &p))
	})
}
