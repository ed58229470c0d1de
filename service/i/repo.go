package i

import (
	"github.com/beka-birhanu/pathviz/solver"
)

// RunRepo defines persistence of solve run diagnostics.
type RunRepo interface {
	// Save inserts or replaces a run by its ID.
	Save(run *solver.Run) error

	// Recent returns up to limit runs, newest first.
	Recent(limit int) ([]solver.Run, error)
}
