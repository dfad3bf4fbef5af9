package battleship

// CellState is the marker shown for one cell of the board's field.
type CellState uint8

const (
	CellStateEmpty CellState = iota
	CellStateShip
	CellStateHit
	CellStateMiss
	CellStateSunk
)

func (cs CellState) String() string {
	switch cs {
	case CellStateShip:
		return "□"
	case CellStateHit:
		return "*"
	case CellStateMiss:
		return "o"
	case CellStateSunk:
		return "x"
	default:
		return "~"
	}
}

type Coordinates struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewCoordinates(row, column int) Coordinates {
	return Coordinates{Row: row, Column: column}
}

func (c Coordinates) isWithin(gridSize int) bool {
	return c.Row >= 0 && c.Row < gridSize && c.Column >= 0 && c.Column < gridSize
}

type Grid [][]CellState

// Creates a new default grid
// All cells are CellStateEmpty
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]CellState, gridSize)
	}
	return grid
}

func (g Grid) clone() Grid {
	cp := make(Grid, len(g))
	for i := range g {
		cp[i] = append([]CellState(nil), g[i]...)
	}
	return cp
}

// neighbours lists the 8 cells around one cell, diagonals included.
var neighbours = [8]Coordinates{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
