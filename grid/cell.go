package grid

import (
	"fmt"
	"strings"
)

// CellState is the closed set of states a grid cell can be in.
type CellState int

const (
	Open CellState = iota
	Wall
	Start
	Destination
)

// Legacy labels still produced by older solver builds.
const (
	legacyOpenLabel = "blank"
	legacyWallLabel = "block"
)

var cellLabels = [...]string{
	Open:        "open",
	Wall:        "wall",
	Start:       "start",
	Destination: "destination",
}

func (s CellState) String() string {
	if s.Valid() {
		return cellLabels[s]
	}
	return fmt.Sprintf("CellState(%d)", int(s))
}

// Valid reports whether s is one of the four known states.
func (s CellState) Valid() bool {
	return s >= 0 && int(s) < len(cellLabels)
}

// ParseCellState maps a wire label to a CellState. Unknown labels are an error,
// they are never read as walls.
func ParseCellState(label string) (CellState, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "open", legacyOpenLabel:
		return Open, nil
	case "wall", legacyWallLabel:
		return Wall, nil
	case "start":
		return Start, nil
	case "destination":
		return Destination, nil
	}
	return Open, fmt.Errorf("%w: %q", ErrUnknownCellState, label)
}

func (s CellState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCellState, int(s))
	}
	return []byte(s.String()), nil
}

func (s *CellState) UnmarshalText(text []byte) error {
	parsed, err := ParseCellState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
