package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/stretchr/testify/require"
)

type logLine struct {
	level string
	msg   string
}

type memLogger struct {
	mu     sync.Mutex
	lines  []logLine
	fields map[string]string
}

func (l *memLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level: level, msg: msg})
}

func (l *memLogger) Info(msg string)    { l.add("info", msg) }
func (l *memLogger) Warning(msg string) { l.add("warning", msg) }
func (l *memLogger) Error(msg string)   { l.add("error", msg) }

// With records the field and keeps writing to the same lines.
func (l *memLogger) With(key, value string) i.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fields == nil {
		l.fields = map[string]string{}
	}
	l.fields[key] = value
	return l
}

func (l *memLogger) field(key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fields[key]
}

func (l *memLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if line.level == level {
			n++
		}
	}
	return n
}

type memNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *memNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *memNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

var errTransport = errors.New("connection refused")

// fakeBackend serves a fixed grid and solves in-process unless told to fail or block.
type fakeBackend struct {
	grid    *grid.Grid
	fail    bool
	gate    chan struct{} // When set, Solve waits for it to close.
	entered chan struct{} // Signalled when Solve is called.
	reply   *solver.Reply // When set, returned as is.
	calls   []solver.Request
	mu      sync.Mutex
}

func (b *fakeBackend) Solve(ctx context.Context, req solver.Request) (solver.Reply, error) {
	b.mu.Lock()
	b.calls = append(b.calls, req)
	b.mu.Unlock()

	if b.entered != nil {
		select {
		case b.entered <- struct{}{}:
		default:
		}
	}
	if b.gate != nil {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return solver.Reply{}, ctx.Err()
		}
	}
	if b.fail {
		return solver.Reply{}, errTransport
	}
	if b.reply != nil {
		return *b.reply, nil
	}
	return solver.Solve(ctx, req)
}

func (b *fakeBackend) GenerateGrid(_ context.Context, width, height int) (*grid.Grid, error) {
	if b.fail {
		return nil, errTransport
	}
	if b.grid != nil {
		return b.grid.Clone(), nil
	}
	g, _, err := grid.NewDefault(width, height)
	return g, err
}

func mustParse(t *testing.T, lines ...string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(lines...)
	require.NoError(t, err)
	return g
}
