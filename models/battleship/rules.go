package battleship

import (
	"fmt"
	"sort"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

const GridSize int = 10

// FleetDistribution maps a ship length to how many ships of that length
// the fleet must contain.
type FleetDistribution map[int]int

// DefaultFleetDistribution is the classic fleet of ten ships.
var DefaultFleetDistribution = FleetDistribution{
	1: 4,
	2: 3,
	3: 2,
	4: 1,
}

// sorted lengths so validation reports violations in a stable order
func (fd FleetDistribution) lengths() []int {
	lengths := make([]int, 0, len(fd))
	for length := range fd {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)
	return lengths
}

// Rules describe one variant of the game. Changing the grid size or
// fleet is a configuration change on this struct.
type Rules struct {
	GridSize int
	Fleet    FleetDistribution
}

func DefaultRules() Rules {
	fleet := make(FleetDistribution, len(DefaultFleetDistribution))
	for length, count := range DefaultFleetDistribution {
		fleet[length] = count
	}

	return Rules{
		GridSize: GridSize,
		Fleet:    fleet,
	}
}

func (r Rules) FleetSize() int {
	var size int
	for _, count := range r.Fleet {
		size += count
	}
	return size
}

// Number of cells a valid fleet covers on the grid
func (r Rules) OccupiedCells() int {
	var cells int
	for length, count := range r.Fleet {
		cells += length * count
	}
	return cells
}

func (r Rules) Validate() error {
	if r.GridSize <= 0 {
		return cerr.ErrRulesInvalid(fmt.Sprintf("grid size must be positive, got %d", r.GridSize))
	}
	if len(r.Fleet) == 0 {
		return cerr.ErrRulesInvalid("fleet distribution is empty")
	}

	for _, length := range r.Fleet.lengths() {
		if length <= 0 || length > r.GridSize {
			return cerr.ErrRulesInvalid(fmt.Sprintf("ship length must be between 1 and %d, got %d", r.GridSize, length))
		}
		if r.Fleet[length] <= 0 {
			return cerr.ErrRulesInvalid(fmt.Sprintf("count for ship length %d must be positive, got %d", length, r.Fleet[length]))
		}
	}

	return nil
}
