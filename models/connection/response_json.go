package connection

import (
	mb "github.com/saeidalz13/battleship-rules/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateBoard struct {
	ShipsCount    int `json:"ships_count"`
	OccupiedCells int `json:"occupied_cells"`
}

type RespFire struct {
	Row              int              `json:"row"`
	Column           int              `json:"column"`
	Result           mb.FireResult    `json:"result"`
	SunkShips        int              `json:"sunk_ships"`
	IsFleetDestroyed bool             `json:"is_fleet_destroyed"`
	SunkShipCoords   []mb.Coordinates `json:"sunk_ship_coords,omitempty"`
}

type RespField struct {
	Rows []string `json:"rows"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
