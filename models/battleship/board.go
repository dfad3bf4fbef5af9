package battleship

import (
	"fmt"
	"io"
	"os"
	"strings"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

// Board holds the field and the fleet of one player. The field is only
// ever mutated by the board itself; Field returns a copy.
type Board struct {
	rules Rules
	grid  Grid
	ships []*Ship

	// ship index + 1 for each occupied cell, 0 if empty
	occupancy [][]int
}

// NewBoard places a fleet with the default rules.
func NewBoard(specs []ShipSpec) (*Board, error) {
	return NewBoardWithRules(DefaultRules(), specs)
}

func NewBoardWithRules(rules Rules, specs []ShipSpec) (*Board, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		rules:     rules,
		grid:      NewGrid(rules.GridSize),
		ships:     make([]*Ship, 0, len(specs)),
		occupancy: make([][]int, rules.GridSize),
	}
	for i := range b.occupancy {
		b.occupancy[i] = make([]int, rules.GridSize)
	}

	// Shape and end points are checked on the specs so that no deck is
	// built for a ship that cannot fit the grid.
	for _, spec := range specs {
		if !spec.isStraight() {
			return nil, cerr.ErrShipNotStraight(spec.Start.Row, spec.Start.Column, spec.End.Row, spec.End.Column)
		}
	}
	for _, spec := range specs {
		for _, end := range []Coordinates{spec.Start, spec.End} {
			if !end.isWithin(rules.GridSize) {
				return nil, cerr.ErrRowOrColOutOfGridBound(end.Row, end.Column, rules.GridSize)
			}
		}
	}

	for _, spec := range specs {
		ship, err := NewShip(spec.Start, spec.End)
		if err != nil {
			return nil, err
		}
		b.ships = append(b.ships, ship)
	}

	overlap, err := b.placeShips()
	if err != nil {
		return nil, err
	}

	if err := b.validateFleet(overlap); err != nil {
		return nil, err
	}

	return b, nil
}

// placeShips marks every deck on the field. The first cell claimed by
// two ships is returned so validation can report it in order.
func (b *Board) placeShips() (*Coordinates, error) {
	var overlap *Coordinates

	for idx, ship := range b.ships {
		for _, deck := range ship.decks {
			if !deck.Coordinates().isWithin(b.rules.GridSize) {
				return nil, cerr.ErrRowOrColOutOfGridBound(deck.row, deck.column, b.rules.GridSize)
			}

			if owner := b.occupancy[deck.row][deck.column]; owner != 0 && owner != idx+1 && overlap == nil {
				c := deck.Coordinates()
				overlap = &c
			}

			b.occupancy[deck.row][deck.column] = idx + 1
			b.grid[deck.row][deck.column] = CellStateShip
		}
	}

	return overlap, nil
}

func (b *Board) validateFleet(overlap *Coordinates) error {
	if len(b.ships) != b.rules.FleetSize() {
		return cerr.ErrFleetSizeMismatch(b.rules.FleetSize(), len(b.ships))
	}

	lengthCounts := make(map[int]int, len(b.rules.Fleet))
	for _, ship := range b.ships {
		if _, prs := b.rules.Fleet[ship.Length()]; !prs {
			return cerr.ErrShipLengthNotAllowed(ship.Length())
		}
		lengthCounts[ship.Length()]++
	}

	for _, length := range b.rules.Fleet.lengths() {
		if lengthCounts[length] != b.rules.Fleet[length] {
			return cerr.ErrFleetCompositionMismatch(length, b.rules.Fleet[length], lengthCounts[length])
		}
	}

	if overlap != nil {
		return cerr.ErrShipsSharingCell(overlap.Row, overlap.Column)
	}

	return b.checkNoNeighbours()
}

func (b *Board) checkNoNeighbours() error {
	for idx, ship := range b.ships {
		for _, deck := range ship.decks {
			for _, dir := range neighbours {
				n := NewCoordinates(deck.row+dir.Row, deck.column+dir.Column)
				if !n.isWithin(b.rules.GridSize) {
					continue
				}

				owner := b.occupancy[n.Row][n.Column]
				if owner != 0 && owner != idx+1 {
					return cerr.ErrShipsNeighbouring(deck.row, deck.column, n.Row, n.Column)
				}
			}
		}
	}

	return nil
}

// Fire resolves one shot. Ships are asked in fleet order and the first
// one that is not missed decides the result. Sinking a ship marks all
// of its cells as sunk.
func (b *Board) Fire(target Coordinates) (FireResult, error) {
	if !target.isWithin(b.rules.GridSize) {
		return "", cerr.ErrRowOrColOutOfGridBound(target.Row, target.Column, b.rules.GridSize)
	}

	for _, ship := range b.ships {
		result := ship.Fire(target.Row, target.Column)
		switch result {
		case FireResultMiss:
			continue

		case FireResultSunk:
			for _, c := range ship.Coordinates() {
				b.grid[c.Row][c.Column] = CellStateSunk
			}
			return result, nil

		default:
			b.grid[target.Row][target.Column] = CellStateHit
			return result, nil
		}
	}

	b.grid[target.Row][target.Column] = CellStateMiss
	return FireResultMiss, nil
}

func (b *Board) Rules() Rules {
	return b.rules
}

func (b *Board) Cell(c Coordinates) (CellState, error) {
	if !c.isWithin(b.rules.GridSize) {
		return CellStateEmpty, cerr.ErrRowOrColOutOfGridBound(c.Row, c.Column, b.rules.GridSize)
	}
	return b.grid[c.Row][c.Column], nil
}

// Field returns a copy of the current markers.
func (b *Board) Field() Grid {
	return b.grid.clone()
}

func (b *Board) ShipsCount() int {
	return len(b.ships)
}

func (b *Board) OccupiedCells() int {
	var cells int
	for _, ship := range b.ships {
		cells += ship.Length()
	}
	return cells
}

func (b *Board) SunkShips() int {
	var sunk int
	for _, ship := range b.ships {
		if ship.IsSunk() {
			sunk++
		}
	}
	return sunk
}

func (b *Board) IsFleetDestroyed() bool {
	return b.SunkShips() == len(b.ships)
}

// SunkShipCoordinates returns the cells of the ship at c if that ship is
// sunk, nil otherwise.
func (b *Board) SunkShipCoordinates(c Coordinates) []Coordinates {
	if !c.isWithin(b.rules.GridSize) {
		return nil
	}

	owner := b.occupancy[c.Row][c.Column]
	if owner == 0 {
		return nil
	}

	ship := b.ships[owner-1]
	if !ship.IsSunk() || !ship.occupies(c.Row, c.Column) {
		return nil
	}
	return ship.Coordinates()
}

// FieldRows renders each row as space separated markers.
func (b *Board) FieldRows() []string {
	rows := make([]string, 0, len(b.grid))
	for _, row := range b.grid {
		glyphs := make([]string, 0, len(row))
		for _, cell := range row {
			glyphs = append(glyphs, cell.String())
		}
		rows = append(rows, strings.Join(glyphs, " "))
	}
	return rows
}

func (b *Board) FieldString() string {
	var sb strings.Builder
	for _, row := range b.FieldRows() {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) WriteField(w io.Writer) error {
	_, err := io.WriteString(w, b.FieldString())
	return err
}

// PrintField dumps the field to stdout for a human to look at.
func (b *Board) PrintField() {
	if err := b.WriteField(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
