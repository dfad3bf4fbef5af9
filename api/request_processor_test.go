package api

import (
	"context"
	"math"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-rules/db/sqlc"
	mb "github.com/saeidalz13/battleship-rules/models/battleship"
	mc "github.com/saeidalz13/battleship-rules/models/connection"
	"github.com/sqlc-dev/pqtype"
)

// countingQuerier keeps the counters in memory
type countingQuerier struct {
	mu            sync.Mutex
	boardsCreated int64
	shotsFired    int64
	shipsSunk     int64
}

var _ sqlc.Querier = (*countingQuerier)(nil)

func (q *countingQuerier) AnalyticsIncrementBoardsCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.boardsCreated++
	return nil
}

func (q *countingQuerier) AnalyticsIncrementShotsFiredCount(ctx context.Context, serverIp pqtype.Inet) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shotsFired++
	return nil
}

func (q *countingQuerier) AnalyticsIncrementShipsSunkCount(ctx context.Context, serverIp pqtype.Inet) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shipsSunk++
	return nil
}

func (q *countingQuerier) GetBoardsCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.boardsCreated, nil
}

func (q *countingQuerier) GetShotsFiredCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.shotsFired, nil
}

func (q *countingQuerier) GetShipsSunkCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.shipsSunk, nil
}

func testFleet() []mb.ShipSpec {
	return []mb.ShipSpec{
		mb.NewShipSpec(0, 0, 0, 3),
		mb.NewShipSpec(2, 0, 2, 2),
		mb.NewShipSpec(2, 4, 2, 6),
		mb.NewShipSpec(4, 0, 4, 1),
		mb.NewShipSpec(4, 3, 4, 4),
		mb.NewShipSpec(4, 6, 4, 7),
		mb.NewShipSpec(6, 0, 6, 0),
		mb.NewShipSpec(6, 2, 6, 2),
		mb.NewShipSpec(6, 4, 6, 4),
		mb.NewShipSpec(6, 6, 6, 6),
	}
}

// q may be nil to run without analytics
func newTestServer(t *testing.T, q sqlc.Querier) string {
	t.Helper()

	var dbManager *sqlc.DbManager
	if q != nil {
		dbManager = sqlc.NewDbManager(q)
	}

	rp := NewRequestProcessor(mc.NewBattleshipSessionManager(mc.WithGracePeriod(time.Millisecond*100)), dbManager)
	server := httptest.NewServer(rp)
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

// Dials and consumes the session id message
func dialSession(t *testing.T, wsUrl string) (*websocket.Conn, string) {
	t.Helper()

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial(wsUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	var respSessionId mc.Message[mc.RespSessionId]
	if err := conn.ReadJSON(&respSessionId); err != nil {
		t.Fatal(err)
	}
	if respSessionId.Code != mc.CodeSessionID || respSessionId.Payload.SessionID == "" {
		t.Fatalf("expected session id message\tgot: %+v", respSessionId)
	}

	return conn, respSessionId.Payload.SessionID
}

func roundTrip[T, K any](t *testing.T, conn *websocket.Conn, req T) K {
	t.Helper()

	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp K
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func fireMsg(row, col int) mc.Message[mc.ReqFire] {
	return mc.Message[mc.ReqFire]{Code: mc.CodeFire, Payload: mc.ReqFire{Row: row, Column: col}}
}

func createBoardMsg(ships []mb.ShipSpec) mc.Message[mc.ReqCreateBoard] {
	return mc.Message[mc.ReqCreateBoard]{Code: mc.CodeCreateBoard, Payload: mc.ReqCreateBoard{Ships: ships}}
}

func TestInvalidSignals(t *testing.T) {
	conn, _ := dialSession(t, newTestServer(t, nil))

	resp := roundTrip[mc.Message[mc.NoPayload], mc.Message[mc.NoPayload]](t, conn, mc.NewMessage[mc.NoPayload](200))
	if resp.Code != mc.CodeInvalidSignal {
		t.Fatalf("expected code: %d\tgot: %d", mc.CodeInvalidSignal, resp.Code)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("fire at will")); err != nil {
		t.Fatal(err)
	}
	var absent mc.Message[mc.NoPayload]
	if err := conn.ReadJSON(&absent); err != nil {
		t.Fatal(err)
	}
	if absent.Code != mc.CodeSignalAbsent || absent.Error == nil {
		t.Fatalf("expected code: %d with error\tgot: %+v", mc.CodeSignalAbsent, absent)
	}
}

func TestFireBeforeBoard(t *testing.T) {
	conn, _ := dialSession(t, newTestServer(t, nil))

	respFire := roundTrip[mc.Message[mc.ReqFire], mc.Message[mc.RespFire]](t, conn, fireMsg(0, 0))
	if respFire.Error == nil || !strings.Contains(respFire.Error.ErrorDetails, "board not created") {
		t.Fatalf("expected board not created error\tgot: %+v", respFire.Error)
	}

	respField := roundTrip[mc.Message[mc.NoPayload], mc.Message[mc.RespField]](t, conn, mc.NewMessage[mc.NoPayload](mc.CodeField))
	if respField.Error == nil {
		t.Fatal("expected error for field before board")
	}
}

func TestCreateBoard(t *testing.T) {
	tests := []struct {
		name        string
		ships       []mb.ShipSpec
		expectedErr string
	}{
		{
			name:        "nine ships",
			ships:       testFleet()[:9],
			expectedErr: "there should be exactly 10 ships, got 9",
		},
		{
			name:        "diagonal ship",
			ships:       append(testFleet()[:9], mb.NewShipSpec(8, 8, 9, 9)),
			expectedErr: "invalid ship shape",
		},
		{
			name:        "ship spanning the int range",
			ships:       append(testFleet()[1:], mb.NewShipSpec(0, math.MinInt, 0, math.MaxInt)),
			expectedErr: "out of bounds",
		},
		{
			name:  "valid fleet",
			ships: testFleet(),
		},
	}

	conn, _ := dialSession(t, newTestServer(t, nil))

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := roundTrip[mc.Message[mc.ReqCreateBoard], mc.Message[mc.RespCreateBoard]](t, conn, createBoardMsg(test.ships))
			if resp.Code != mc.CodeCreateBoard {
				t.Fatalf("expected code: %d\tgot: %d", mc.CodeCreateBoard, resp.Code)
			}

			if test.expectedErr != "" {
				if resp.Error == nil || !strings.Contains(resp.Error.ErrorDetails, test.expectedErr) {
					t.Fatalf("expected error: %s\tgot: %+v", test.expectedErr, resp.Error)
				}
				return
			}

			if resp.Error != nil {
				t.Fatalf("error: %s", resp.Error.ErrorDetails)
			}
			if resp.Payload.ShipsCount != 10 || resp.Payload.OccupiedCells != 20 {
				t.Fatalf("unexpected payload: %+v", resp.Payload)
			}
		})
	}
}

func TestFireAndField(t *testing.T) {
	conn, _ := dialSession(t, newTestServer(t, nil))

	resp := roundTrip[mc.Message[mc.ReqCreateBoard], mc.Message[mc.RespCreateBoard]](t, conn, createBoardMsg(testFleet()))
	if resp.Error != nil {
		t.Fatal(resp.Error.ErrorDetails)
	}

	tests := []struct {
		name           string
		row, col       int
		expectedResult mb.FireResult
		expectErr      bool
	}{
		{name: "hit four-decker", row: 0, col: 0, expectedResult: mb.FireResultHit},
		{name: "miss", row: 5, col: 5, expectedResult: mb.FireResultMiss},
		{name: "sink single-decker", row: 6, col: 0, expectedResult: mb.FireResultSunk},
		{name: "out of bounds", row: 10, col: 0, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			respFire := roundTrip[mc.Message[mc.ReqFire], mc.Message[mc.RespFire]](t, conn, fireMsg(test.row, test.col))

			if test.expectErr {
				if respFire.Error == nil || !strings.Contains(respFire.Error.ErrorDetails, "out of bounds") {
					t.Fatalf("expected out of bounds error\tgot: %+v", respFire.Error)
				}
				return
			}

			if respFire.Error != nil {
				t.Fatal(respFire.Error.ErrorDetails)
			}
			if respFire.Payload.Result != test.expectedResult {
				t.Fatalf("expected result: %s\tgot: %s", test.expectedResult, respFire.Payload.Result)
			}
			if test.expectedResult == mb.FireResultSunk && len(respFire.Payload.SunkShipCoords) != 1 {
				t.Fatalf("expected sunk ship coords: %d\tgot: %d", 1, len(respFire.Payload.SunkShipCoords))
			}
		})
	}

	respField := roundTrip[mc.Message[mc.NoPayload], mc.Message[mc.RespField]](t, conn, mc.NewMessage[mc.NoPayload](mc.CodeField))
	if respField.Error != nil {
		t.Fatal(respField.Error.ErrorDetails)
	}

	expected := map[int]string{
		0: "* □ □ □ ~ ~ ~ ~ ~ ~",
		5: "~ ~ ~ ~ ~ o ~ ~ ~ ~",
		6: "x ~ □ ~ □ ~ □ ~ ~ ~",
	}
	if len(respField.Payload.Rows) != 10 {
		t.Fatalf("expected rows: %d\tgot: %d", 10, len(respField.Payload.Rows))
	}
	for idx, row := range expected {
		if respField.Payload.Rows[idx] != row {
			t.Fatalf("row %d\texpected: %q\tgot: %q", idx, row, respField.Payload.Rows[idx])
		}
	}
}

func TestDestroyFleet(t *testing.T) {
	q := &countingQuerier{}
	conn, _ := dialSession(t, newTestServer(t, q))

	resp := roundTrip[mc.Message[mc.ReqCreateBoard], mc.Message[mc.RespCreateBoard]](t, conn, createBoardMsg(testFleet()))
	if resp.Error != nil {
		t.Fatal(resp.Error.ErrorDetails)
	}

	var shots int64
	var last mc.Message[mc.RespFire]
	for _, spec := range testFleet() {
		ship, err := mb.NewShip(spec.Start, spec.End)
		if err != nil {
			t.Fatal(err)
		}

		for _, c := range ship.Coordinates() {
			last = roundTrip[mc.Message[mc.ReqFire], mc.Message[mc.RespFire]](t, conn, fireMsg(c.Row, c.Column))
			if last.Error != nil {
				t.Fatal(last.Error.ErrorDetails)
			}
			shots++
		}
	}

	if last.Payload.Result != mb.FireResultSunk || !last.Payload.IsFleetDestroyed || last.Payload.SunkShips != 10 {
		t.Fatalf("expected destroyed fleet on last shot\tgot: %+v", last.Payload)
	}

	var destroyed mc.Message[mc.NoPayload]
	if err := conn.ReadJSON(&destroyed); err != nil {
		t.Fatal(err)
	}
	if destroyed.Code != mc.CodeFleetDestroyed {
		t.Fatalf("expected code: %d\tgot: %d", mc.CodeFleetDestroyed, destroyed.Code)
	}

	ctx := context.Background()
	inet := pqtype.Inet{Valid: true}
	if got, _ := q.GetBoardsCreatedCount(ctx, inet); got != 1 {
		t.Fatalf("expected boards created: %d\tgot: %d", 1, got)
	}
	if got, _ := q.GetShotsFiredCount(ctx, inet); got != shots {
		t.Fatalf("expected shots fired: %d\tgot: %d", shots, got)
	}
	if got, _ := q.GetShipsSunkCount(ctx, inet); got != 10 {
		t.Fatalf("expected ships sunk: %d\tgot: %d", 10, got)
	}
}

func TestReconnectInvalidSession(t *testing.T) {
	wsUrl := newTestServer(t, nil)

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial(wsUrl+"?"+URLQuerySessionIDKeyword+"=unknown", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var resp mc.Message[mc.NoPayload]
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != mc.CodeReceivedInvalidSessionID {
		t.Fatalf("expected code: %d\tgot: %d", mc.CodeReceivedInvalidSessionID, resp.Code)
	}
}

func TestServerIpNet(t *testing.T) {
	rp := NewRequestProcessor(mc.NewBattleshipSessionManager(), nil)
	ipnet := rp.GetIpNet()

	if ipnet.IP.To4() == nil {
		t.Fatalf("expected an IPv4 address\tgot: %v", ipnet.IP)
	}
	if ones, bits := ipnet.Mask.Size(); ones != 32 || bits != 32 {
		t.Fatalf("expected /32 mask\tgot: /%d of %d", ones, bits)
	}
}
