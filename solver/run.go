package solver

import (
	"time"

	"github.com/google/uuid"
)

// Run is the diagnostic record of one served solve command.
type Run struct {
	ID           uuid.UUID
	Algorithm    Algorithm
	Width        int
	Height       int
	PathLength   int
	VisitedCount int
	Elapsed      float64 // Seconds spent searching, as reported in the reply.
	Cached       bool    // Served from the result cache.
	CreatedAt    time.Time
}

// NewRun summarizes a reply to req.
func NewRun(req Request, reply Reply, cached bool) Run {
	return Run{
		ID:           uuid.New(),
		Algorithm:    req.Algorithm,
		Width:        req.Grid.Width(),
		Height:       req.Grid.Height(),
		PathLength:   len(reply.Path),
		VisitedCount: len(reply.Visited),
		Elapsed:      reply.Elapsed,
		Cached:       cached,
		CreatedAt:    time.Now().UTC(),
	}
}

// Found reports whether the run produced a path.
func (r Run) Found() bool {
	return r.PathLength > 0
}
