package battleship

import (
	"strings"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

type FireResult string

const (
	FireResultHit  FireResult = "Hit"
	FireResultMiss FireResult = "Miss"
	FireResultSunk FireResult = "Sunk"
)

// ShipSpec is the pair of end points a ship is placed with.
type ShipSpec struct {
	Start Coordinates `json:"start"`
	End   Coordinates `json:"end"`
}

func NewShipSpec(startRow, startCol, endRow, endCol int) ShipSpec {
	return ShipSpec{
		Start: NewCoordinates(startRow, startCol),
		End:   NewCoordinates(endRow, endCol),
	}
}

func (s ShipSpec) isStraight() bool {
	return s.Start.Row == s.End.Row || s.Start.Column == s.End.Column
}

type Ship struct {
	decks  []*Deck
	isSunk bool
}

// NewShip lays decks on every cell between start and end, both included.
// The pair must share a row or a column; decks are kept in increasing
// coordinate order whichever end comes first.
func NewShip(start, end Coordinates) (*Ship, error) {
	var decks []*Deck

	switch {
	case start.Row == end.Row:
		from, to := ordered(start.Column, end.Column)
		decks = make([]*Deck, 0, to-from+1)
		for col := from; col <= to; col++ {
			decks = append(decks, NewDeck(start.Row, col))
		}

	case start.Column == end.Column:
		from, to := ordered(start.Row, end.Row)
		decks = make([]*Deck, 0, to-from+1)
		for row := from; row <= to; row++ {
			decks = append(decks, NewDeck(row, start.Column))
		}

	default:
		return nil, cerr.ErrShipNotStraight(start.Row, start.Column, end.Row, end.Column)
	}

	return &Ship{decks: decks}, nil
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Fire resolves a shot against this ship only. A deck that is already
// dead still counts as a hit; only coordinates decide the outcome.
func (sh *Ship) Fire(row, column int) FireResult {
	for _, deck := range sh.decks {
		if !deck.isAt(row, column) {
			continue
		}

		deck.Fire()
		if sh.allDecksDead() {
			sh.isSunk = true
			return FireResultSunk
		}
		return FireResultHit
	}

	return FireResultMiss
}

func (sh *Ship) allDecksDead() bool {
	for _, deck := range sh.decks {
		if deck.IsAlive() {
			return false
		}
	}
	return true
}

func (sh *Ship) IsSunk() bool {
	return sh.isSunk
}

func (sh *Ship) Length() int {
	return len(sh.decks)
}

func (sh *Ship) Coordinates() []Coordinates {
	coords := make([]Coordinates, 0, len(sh.decks))
	for _, deck := range sh.decks {
		coords = append(coords, deck.Coordinates())
	}
	return coords
}

func (sh *Ship) occupies(row, column int) bool {
	for _, deck := range sh.decks {
		if deck.isAt(row, column) {
			return true
		}
	}
	return false
}

func (sh *Ship) String() string {
	var sb strings.Builder
	for _, deck := range sh.decks {
		sb.WriteString(deck.String())
	}
	return sb.String()
}
