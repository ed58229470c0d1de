package solver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(
		"S...#.",
		"#.....",
		"..###.",
		".#..#.",
		"....D#",
	)
	require.NoError(t, err)
	return g
}

func requireValidPath(t *testing.T, g *grid.Grid, path []grid.Point, start, dest grid.Point) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, dest, path[len(path)-1])

	seen := make(map[grid.Point]struct{})
	for i, p := range path {
		state, err := g.At(p)
		require.NoError(t, err)
		assert.NotEqual(t, grid.Wall, state, "step %d at %s is a wall", i, p)
		_, dup := seen[p]
		assert.False(t, dup, "step %d revisits %s", i, p)
		seen[p] = struct{}{}
		if i > 0 {
			assert.True(t, path[i-1].Adjacent(p), "steps %d and %d are not adjacent", i-1, i)
		}
	}
}

func TestSolveScenario(t *testing.T) {
	g := scenarioGrid(t)
	start := grid.Point{Row: 0, Col: 0}
	dest := grid.Point{Row: 4, Col: 4}

	for _, alg := range Algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			reply, err := Solve(context.Background(), Request{Algorithm: alg, Grid: g, Start: start, Destination: dest})
			require.NoError(t, err)

			requireValidPath(t, g, reply.Path, start, dest)
			assert.Equal(t, alg.ReportsVisited(), reply.WithVisited)
			assert.GreaterOrEqual(t, reply.Elapsed, 0.0)

			if alg != DFS {
				assert.Len(t, reply.Path, 11, "shortest route")
			}
			if alg == AStar {
				assert.Equal(t, start, reply.Visited[0])
				assert.Equal(t, dest, reply.Visited[len(reply.Visited)-1])
				for _, p := range reply.Visited {
					assert.True(t, g.Passable(p))
				}
			}
		})
	}
}

func TestSolveNoPath(t *testing.T) {
	g, err := grid.Parse(
		"S#.",
		"##.",
		"..D",
	)
	require.NoError(t, err)

	for _, alg := range Algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			reply, err := Solve(context.Background(), Request{
				Algorithm:   alg,
				Grid:        g,
				Start:       grid.Point{Row: 0, Col: 0},
				Destination: grid.Point{Row: 2, Col: 2},
			})
			require.NoError(t, err)
			assert.Empty(t, reply.Path)
			assert.Equal(t, NoPath, reply.Classify().Kind)
		})
	}
}

func TestSolveRejectsBadRequest(t *testing.T) {
	g := scenarioGrid(t)

	_, err := Solve(context.Background(), Request{Algorithm: BFS, Grid: g, Start: grid.Point{Row: 9, Col: 0}})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	_, err = Solve(context.Background(), Request{Algorithm: Algorithm(7), Grid: g})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Solve(ctx, Request{Algorithm: DFS, Grid: g})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	g := scenarioGrid(t)
	base := Request{Algorithm: AStar, Grid: g, Start: grid.Point{}, Destination: grid.Point{Row: 4, Col: 4}}

	assert.Equal(t, base.Fingerprint(), base.Fingerprint())

	other := base
	other.Grid = g.Clone()
	require.NoError(t, other.Grid.Set(grid.Point{Row: 1, Col: 1}, grid.Wall))
	assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())

	bfs := base
	bfs.Algorithm = BFS
	assert.NotEqual(t, base.Fingerprint(), bfs.Fingerprint())

	moved := bfs
	moved.Destination = grid.Point{Row: 2, Col: 2}
	assert.Equal(t, bfs.Fingerprint(), moved.Fingerprint(), "BFS ignores the destination field")
}

func TestReplyShapes(t *testing.T) {
	path := []grid.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}}

	t.Run("path only", func(t *testing.T) {
		data, err := json.Marshal(Reply{Path: path, Elapsed: 0.5})
		require.NoError(t, err)
		assert.JSONEq(t, `[[[0,0],[0,1]],0.5]`, string(data))

		var back Reply
		require.NoError(t, json.Unmarshal(data, &back))
		res := back.Classify()
		assert.Equal(t, PathOnly, res.Kind)
		assert.Equal(t, path, res.Path)
	})

	t.Run("path with visited", func(t *testing.T) {
		var r Reply
		require.NoError(t, json.Unmarshal([]byte(`[[[0,0],[0,1]],[[0,0],[1,0],[0,1]],0.01]`), &r))
		res := r.Classify()
		assert.Equal(t, PathWithVisited, res.Kind)
		assert.Len(t, res.Visited, 3)
	})

	t.Run("empty path is no path", func(t *testing.T) {
		var r Reply
		require.NoError(t, json.Unmarshal([]byte(`[[],[[0,0]],0.01]`), &r))
		assert.Equal(t, NoPath, r.Classify().Kind)

		data, err := json.Marshal(Reply{WithVisited: true})
		require.NoError(t, err)
		assert.JSONEq(t, `[[],[],0]`, string(data))
	})

	t.Run("null", func(t *testing.T) {
		var r Reply
		require.NoError(t, json.Unmarshal([]byte(`null`), &r))
		assert.Equal(t, NoPath, r.Classify().Kind)
	})

	t.Run("wrong arity", func(t *testing.T) {
		var r Reply
		assert.ErrorIs(t, json.Unmarshal([]byte(`[[]]`), &r), ErrMalformedReply)
	})
}
