package i

import (
	"context"

	"github.com/beka-birhanu/pathviz/solver"
)

// ResultCache stores solver replies keyed by request fingerprint.
type ResultCache interface {
	// Get returns the cached reply and whether it was present.
	Get(ctx context.Context, key uint64) (solver.Reply, bool, error)
	Put(ctx context.Context, key uint64, reply solver.Reply) error

	// Lock serializes work on key across processes. The returned func releases it.
	Lock(ctx context.Context, key uint64) (func(), error)
}
