package api

import (
	"encoding/json"
	"log"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
	mb "github.com/saeidalz13/battleship-rules/models/battleship"
	mc "github.com/saeidalz13/battleship-rules/models/connection"
)

type RequestHandler interface {
	HandleCreateBoard(session *mc.Session) mc.Message[mc.RespCreateBoard]
	HandleFire(session *mc.Session) mc.Message[mc.RespFire]
	HandleField(session *mc.Session) mc.Message[mc.RespField]
}

// Every incoming valid request will have this structure
// The request then is handled in line with RequestHandler interface
type Request struct {
	payload []byte
}

var _ RequestHandler = Request{}

func NewRequest(payload ...[]byte) Request {
	if len(payload) > 1 {
		log.Println("cannot accept more than one payload")
		return Request{}
	}

	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

// The client sends the end points of every ship. The fleet is
// validated as a whole and only a valid fleet replaces the
// session board.
func (r Request) HandleCreateBoard(session *mc.Session) mc.Message[mc.RespCreateBoard] {
	resp := mc.NewMessage[mc.RespCreateBoard](mc.CodeCreateBoard)

	var req mc.Message[mc.ReqCreateBoard]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid create board payload")
		return resp
	}

	board, err := mb.NewBoard(req.Payload.Ships)
	if err != nil {
		resp.AddError(err.Error(), "fleet placement is invalid")
		return resp
	}

	session.SetBoard(board)
	log.Printf("board created, session: %s\n", session.Id())

	resp.AddPayload(mc.RespCreateBoard{
		ShipsCount:    board.ShipsCount(),
		OccupiedCells: board.OccupiedCells(),
	})
	return resp
}

func (r Request) HandleFire(session *mc.Session) mc.Message[mc.RespFire] {
	resp := mc.NewMessage[mc.RespFire](mc.CodeFire)

	board := session.Board()
	if board == nil {
		resp.AddError(cerr.ErrSessionBoardNotCreated(session.Id()).Error(), "place a fleet first")
		return resp
	}

	var req mc.Message[mc.ReqFire]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid fire payload")
		return resp
	}

	target := mb.NewCoordinates(req.Payload.Row, req.Payload.Column)
	result, err := board.Fire(target)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrFireFailed)
		return resp
	}

	respFire := mc.RespFire{
		Row:              target.Row,
		Column:           target.Column,
		Result:           result,
		SunkShips:        board.SunkShips(),
		IsFleetDestroyed: board.IsFleetDestroyed(),
	}
	if result == mb.FireResultSunk {
		respFire.SunkShipCoords = board.SunkShipCoordinates(target)
	}

	resp.AddPayload(respFire)
	return resp
}

func (r Request) HandleField(session *mc.Session) mc.Message[mc.RespField] {
	resp := mc.NewMessage[mc.RespField](mc.CodeField)

	board := session.Board()
	if board == nil {
		resp.AddError(cerr.ErrSessionBoardNotCreated(session.Id()).Error(), "place a fleet first")
		return resp
	}

	resp.AddPayload(mc.RespField{Rows: board.FieldRows()})
	return resp
}
