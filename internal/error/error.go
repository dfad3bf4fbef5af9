package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrFireFailed = "fire operation failed"
)

var (
	ErrInvalidFleetSize        = errors.New("invalid fleet size")
	ErrInvalidFleetComposition = errors.New("invalid fleet composition")
	ErrAdjacentShips           = errors.New("adjacent ships")
	ErrShipsOverlap            = errors.New("overlapping ships")
	ErrOutOfBounds             = errors.New("out of bounds")
	ErrInvalidShipShape        = errors.New("invalid ship shape")
	ErrInvalidRules            = errors.New("invalid rules")

	ErrSessionNotFound = errors.New("session not found")
	ErrBoardNotCreated = errors.New("board not created")
)

func ErrFleetSizeMismatch(want, got int) error {
	return fmt.Errorf("%w: there should be exactly %d ships, got %d", ErrInvalidFleetSize, want, got)
}

func ErrFleetCompositionMismatch(length, want, got int) error {
	return fmt.Errorf("%w: there should be exactly %d ships of length %d, got %d", ErrInvalidFleetComposition, want, length, got)
}

func ErrShipLengthNotAllowed(length int) error {
	return fmt.Errorf("%w: ships of length %d are not part of the fleet", ErrInvalidFleetComposition, length)
}

func ErrShipsNeighbouring(row, col, otherRow, otherCol int) error {
	return fmt.Errorf("%w: ships should not be located in neighboring cells\trow: %d col: %d\trow: %d col: %d", ErrAdjacentShips, row, col, otherRow, otherCol)
}

func ErrShipsSharingCell(row, col int) error {
	return fmt.Errorf("%w: more than one ship occupies the cell\trow: %d col: %d", ErrShipsOverlap, row, col)
}

func ErrRowOrColOutOfGridBound(row, col, gridSize int) error {
	return fmt.Errorf("%w: row or column is out of grid bound [0, %d)\trow: %d col: %d", ErrOutOfBounds, gridSize, row, col)
}

func ErrShipNotStraight(startRow, startCol, endRow, endCol int) error {
	return fmt.Errorf("%w: start and end share neither row nor column\tstart: (%d, %d) end: (%d, %d)", ErrInvalidShipShape, startRow, startCol, endRow, endCol)
}

func ErrRulesInvalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRules, reason)
}

func ErrSessionNotExists(sessionId string) error {
	return fmt.Errorf("%w: session with this id does not exist, id: %s", ErrSessionNotFound, sessionId)
}

func ErrSessionBoardNotCreated(sessionId string) error {
	return fmt.Errorf("%w: a fleet must be placed before firing, session id: %s", ErrBoardNotCreated, sessionId)
}
