package connection

import (
	mb "github.com/saeidalz13/battleship-rules/models/battleship"
)

type ReqCreateBoard struct {
	Ships []mb.ShipSpec `json:"ships"`
}

type ReqFire struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}
