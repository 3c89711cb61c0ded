package game

// Direction is a movement command on the board.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Position is a cell on the board. X grows rightwards, Y grows downwards.
type Position struct {
	X int
	Y int
}

// Move returns p shifted one cell in dir, clamped to a size×size board.
// Unrecognized directions return p unchanged.
func Move(p Position, dir Direction, size int) Position {
	switch dir {
	case DirUp:
		p.Y = max(p.Y-1, 0)
	case DirDown:
		p.Y = min(p.Y+1, size-1)
	case DirLeft:
		p.X = max(p.X-1, 0)
	case DirRight:
		p.X = min(p.X+1, size-1)
	}
	return p
}

// Manhattan returns the Manhattan distance between p and o.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// sign collapses a delta to a single step of -1, 0 or 1.
func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
