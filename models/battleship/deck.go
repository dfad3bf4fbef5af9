package battleship

// Deck is one cell of the grid occupied by a ship.
type Deck struct {
	row     int
	column  int
	isAlive bool
}

func NewDeck(row, column int) *Deck {
	return &Deck{
		row:     row,
		column:  column,
		isAlive: true,
	}
}

// Fire kills the deck and returns its new alive state.
// Firing a dead deck again is harmless.
func (d *Deck) Fire() bool {
	d.isAlive = false
	return d.isAlive
}

func (d *Deck) IsAlive() bool {
	return d.isAlive
}

func (d *Deck) Coordinates() Coordinates {
	return NewCoordinates(d.row, d.column)
}

func (d *Deck) isAt(row, column int) bool {
	return d.row == row && d.column == column
}

func (d *Deck) String() string {
	if d.isAlive {
		return CellStateShip.String()
	}
	return CellStateSunk.String()
}
