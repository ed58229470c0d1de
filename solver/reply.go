package solver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/beka-birhanu/pathviz/grid"
)

var ErrMalformedReply = errors.New("malformed solver reply")

// Reply is the raw answer to a solve command. On the wire it is the tuple
// [path, elapsed] or, when WithVisited is set, [path, visited, elapsed].
// A JSON null decodes to an empty reply.
type Reply struct {
	Path        []grid.Point
	Visited     []grid.Point
	WithVisited bool
	Elapsed     float64 // Search time in seconds.
}

func (r Reply) MarshalJSON() ([]byte, error) {
	path := r.Path
	if path == nil {
		path = []grid.Point{}
	}
	if !r.WithVisited {
		return json.Marshal([]any{path, r.Elapsed})
	}
	visited := r.Visited
	if visited == nil {
		visited = []grid.Point{}
	}
	return json.Marshal([]any{path, visited, r.Elapsed})
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Reply{}
		return nil
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}

	var out Reply
	switch len(parts) {
	case 2:
		if err := decodeParts(parts, &out.Path, &out.Elapsed); err != nil {
			return err
		}
	case 3:
		out.WithVisited = true
		if err := decodeParts(parts, &out.Path, &out.Visited, &out.Elapsed); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %d elements", ErrMalformedReply, len(parts))
	}
	*r = out
	return nil
}

func decodeParts(parts []json.RawMessage, targets ...any) error {
	for i, target := range targets {
		if err := json.Unmarshal(parts[i], target); err != nil {
			return fmt.Errorf("%w: element %d: %w", ErrMalformedReply, i, err)
		}
	}
	return nil
}

// ResultKind tags the variants of Result.
type ResultKind int

const (
	NoPath ResultKind = iota
	PathOnly
	PathWithVisited
)

func (k ResultKind) String() string {
	switch k {
	case PathOnly:
		return "path"
	case PathWithVisited:
		return "path+visited"
	}
	return "no-path"
}

// Result is a classified reply, ready to animate.
type Result struct {
	Kind    ResultKind
	Path    []grid.Point
	Visited []grid.Point
}

// Classify derives the Result from the reply shape only: an empty path is NoPath,
// otherwise the presence of the visited list decides.
func (r Reply) Classify() Result {
	switch {
	case len(r.Path) == 0:
		return Result{Kind: NoPath}
	case r.WithVisited:
		return Result{Kind: PathWithVisited, Path: r.Path, Visited: r.Visited}
	default:
		return Result{Kind: PathOnly, Path: r.Path}
	}
}
