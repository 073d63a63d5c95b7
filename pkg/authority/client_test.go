package authority

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

type route struct {
	status int
	body   string
}

// newTestClient serves routes on an in-memory listener. Every request is
// passed to inspect before answering.
func newTestClient(t *testing.T, routes map[string]route, inspect func(ctx *fasthttp.RequestCtx)) *Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			if inspect != nil {
				inspect(ctx)
			}
			key := string(ctx.Method()) + " " + string(ctx.Path())
			r, ok := routes[key]
			if !ok {
				ctx.SetStatusCode(fasthttp.StatusNotFound)
				ctx.SetBodyString(`{"detail":"Not Found"}`)
				return
			}
			ctx.SetStatusCode(r.status)
			ctx.SetContentType("application/json")
			ctx.SetBodyString(r.body)
		},
	}
	go srv.Serve(ln)
	t.Cleanup(func() { ln.Close() })

	return NewClient("http://checkers.test/", WithDial(func(addr string) (net.Conn, error) {
		return ln.Dial()
	}))
}

const startingBoard = `{
	"board": [
		[".","b",".","b",".","b",".","b"],
		["b",".","b",".","b",".","b","."],
		[".","b",".","b",".","b",".","b"],
		[".",".",".",".",".",".",".","."],
		[".",".",".",".",".",".",".","."],
		["w",".","w",".","w",".","w","."],
		[".","w",".","w",".","w",".","w"],
		["W",".","w",".","w",".","w","."]
	],
	"current_turn": "w",
	"all_valid_moves": [[0,5,1,4],[2,5,1,4],[2,5,3,4]]
}`

func TestClientBoard(t *testing.T) {
	c := newTestClient(t, map[string]route{
		"GET /get_board": {200, startingBoard},
	}, nil)

	s, err := c.Board(context.Background())
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if s.Turn != checkers.White {
		t.Errorf("turn = %s", s.Turn)
	}
	if got := s.PieceAt(checkers.Coord{Col: 1, Row: 0}); got != checkers.BlackMan {
		t.Errorf("piece at (1,0) = %s", got)
	}
	if got := s.PieceAt(checkers.Coord{Col: 0, Row: 7}); got != checkers.WhiteKing {
		t.Errorf("piece at (0,7) = %s", got)
	}
	if len(s.ValidMoves) != 3 {
		t.Fatalf("got %d moves", len(s.ValidMoves))
	}
	want := checkers.Move{From: checkers.Coord{Col: 2, Row: 5}, To: checkers.Coord{Col: 3, Row: 4}}
	if s.ValidMoves[2] != want {
		t.Errorf("move = %+v, want %+v", s.ValidMoves[2], want)
	}
}

func TestClientBoardMalformed(t *testing.T) {
	tests := map[string]string{
		"short board":  `{"board":[[".","b"]],"current_turn":"w","all_valid_moves":[]}`,
		"bad turn":     `{"board":` + emptyBoardJSON() + `,"current_turn":"x","all_valid_moves":[]}`,
		"bad move":     `{"board":` + emptyBoardJSON() + `,"current_turn":"b","all_valid_moves":[[1,2,3]]}`,
		"not json":     `<html>`,
		"long code":    `{"board":` + emptyBoardJSONWith(`"ww"`) + `,"current_turn":"w","all_valid_moves":[]}`,
		"off-board to": `{"board":` + emptyBoardJSON() + `,"current_turn":"b","all_valid_moves":[[1,2,9,9]]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, map[string]route{"GET /get_board": {200, body}}, nil)
			if _, err := c.Board(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func emptyBoardJSON() string {
	return emptyBoardJSONWith(`"."`)
}

func emptyBoardJSONWith(first string) string {
	rows := make([][]json.RawMessage, checkers.NumRows)
	for r := range rows {
		rows[r] = make([]json.RawMessage, checkers.NumCols)
		for c := range rows[r] {
			rows[r][c] = json.RawMessage(`"."`)
		}
	}
	rows[0][0] = json.RawMessage(first)
	b, _ := json.Marshal(rows)
	return string(b)
}

func TestClientIsValidMove(t *testing.T) {
	var query *fasthttp.Args
	c := newTestClient(t, map[string]route{
		"GET /is_valid_move": {200, `true`},
	}, func(ctx *fasthttp.RequestCtx) {
		query = &fasthttp.Args{}
		ctx.QueryArgs().CopyTo(query)
	})

	m := checkers.Move{From: checkers.Coord{Col: 1, Row: 2}, To: checkers.Coord{Col: 0, Row: 3}}
	ok, err := c.IsValidMove(context.Background(), m)
	if err != nil {
		t.Fatalf("IsValidMove: %v", err)
	}
	if !ok {
		t.Error("expected valid")
	}
	for k, want := range map[string]int{"x1": 1, "y1": 2, "x2": 0, "y2": 3} {
		got, err := query.GetUint(k)
		if err != nil || got != want {
			t.Errorf("query %s = %d (%v), want %d", k, got, err, want)
		}
	}
}

func TestClientExecuteMove(t *testing.T) {
	var body moveRequest
	var contentType, requestID string
	c := newTestClient(t, map[string]route{
		"POST /execute_move": {200, `{"message":"Move executed.","winner":"w"}`},
	}, func(ctx *fasthttp.RequestCtx) {
		contentType = string(ctx.Request.Header.ContentType())
		requestID = string(ctx.Request.Header.Peek(RequestIDHeader))
		json.Unmarshal(ctx.PostBody(), &body)
	})

	m := checkers.Move{From: checkers.Coord{Col: 1, Row: 2}, To: checkers.Coord{Col: 0, Row: 3}}
	res, err := c.ExecuteMove(context.Background(), m)
	if err != nil {
		t.Fatalf("ExecuteMove: %v", err)
	}
	if res.Message != "Move executed." || res.Winner != checkers.White {
		t.Errorf("result = %+v", res)
	}
	if body != (moveRequest{X1: 1, Y1: 2, X2: 0, Y2: 3}) {
		t.Errorf("request body = %+v", body)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}
	if requestID == "" {
		t.Error("missing request id header")
	}
}

func TestClientComputerMove(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		move   *checkers.Move
		msg    string
		winner checkers.Side
	}{
		{
			name: "with move",
			body: `{"move":[2,5,3,4]}`,
			move: &checkers.Move{From: checkers.Coord{Col: 2, Row: 5}, To: checkers.Coord{Col: 3, Row: 4}},
		},
		{
			name:   "winning move",
			body:   `{"move":[2,5,3,4],"winner":"b"}`,
			move:   &checkers.Move{From: checkers.Coord{Col: 2, Row: 5}, To: checkers.Coord{Col: 3, Row: 4}},
			winner: checkers.Black,
		},
		{
			name: "no move",
			body: `{"message":"No valid moves."}`,
			msg:  "No valid moves.",
		},
		{
			name: "null move",
			body: `{"move":null,"message":"Game over."}`,
			msg:  "Game over.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, map[string]route{"POST /monte_carlo_simulation": {200, tt.body}}, nil)
			res, err := c.ComputerMove(context.Background())
			if err != nil {
				t.Fatalf("ComputerMove: %v", err)
			}
			if (res.Move == nil) != (tt.move == nil) || (res.Move != nil && *res.Move != *tt.move) {
				t.Errorf("move = %v, want %v", res.Move, tt.move)
			}
			if res.Message != tt.msg || res.Winner != tt.winner {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestClientMessages(t *testing.T) {
	c := newTestClient(t, map[string]route{
		"POST /start":     {200, `{"message":"New game started."}`},
		"POST /undo_move": {200, `{"message":"Move undone."}`},
	}, nil)
	ctx := context.Background()

	res, err := c.Start(ctx)
	if err != nil || res.Message != "New game started." {
		t.Errorf("Start = %+v, %v", res, err)
	}
	res, err = c.Undo(ctx)
	if err != nil || res.Message != "Move undone." {
		t.Errorf("Undo = %+v, %v", res, err)
	}
}

func TestClientWinner(t *testing.T) {
	for body, want := range map[string]checkers.Side{
		`null`: checkers.NoSide,
		`"w"`:  checkers.White,
		`"b"`:  checkers.Black,
	} {
		c := newTestClient(t, map[string]route{"GET /get_winner": {200, body}}, nil)
		got, err := c.Winner(context.Background())
		if err != nil {
			t.Fatalf("Winner(%s): %v", body, err)
		}
		if got != want {
			t.Errorf("Winner(%s) = %s, want %s", body, got, want)
		}
	}

	c := newTestClient(t, map[string]route{"GET /get_winner": {200, `"red"`}}, nil)
	if _, err := c.Winner(context.Background()); err == nil {
		t.Error("expected error for unknown side")
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"detail string", 400, `{"detail":"Game not started"}`, "Game not started"},
		{"no detail", 500, `{}`, UnknownDetail},
		{"not json", 502, `Bad Gateway`, UnknownDetail},
		{"detail list", 422, `{"detail":[{"loc":["query","x1"]}]}`, `[{"loc":["query","x1"]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, map[string]route{"POST /undo_move": {tt.status, tt.body}}, nil)
			_, err := c.Undo(context.Background())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status || apiErr.Detail != tt.detail {
				t.Errorf("APIError = %+v", apiErr)
			}
			if apiErr.Op != "undo_move" {
				t.Errorf("op = %q", apiErr.Op)
			}
		})
	}
}

func TestClientTransportError(t *testing.T) {
	c := NewClient("http://checkers.test", WithDial(func(addr string) (net.Conn, error) {
		return nil, errors.New("connection refused")
	}))
	_, err := c.Board(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure reported as API error: %v", err)
	}
}

func TestClientCanceledContext(t *testing.T) {
	called := false
	c := newTestClient(t, map[string]route{"GET /get_winner": {200, `null`}}, func(*fasthttp.RequestCtx) {
		called = true
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Winner(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("request sent with a canceled context")
	}
}

func TestClientHeaderProvider(t *testing.T) {
	var session string
	ln := fasthttputil.NewInmemoryListener()
	go fasthttp.Serve(ln, func(ctx *fasthttp.RequestCtx) {
		session = string(ctx.Request.Header.Peek("X-Session-Id"))
		ctx.SetBodyString(`null`)
	})
	defer ln.Close()

	c := NewClient("http://checkers.test",
		WithDial(func(string) (net.Conn, error) { return ln.Dial() }),
		WithHeaderProvider(func() map[string]string {
			return map[string]string{"X-Session-Id": "brave-otter", "X-Empty": " "}
		}),
	)
	if _, err := c.Winner(context.Background()); err != nil {
		t.Fatalf("Winner: %v", err)
	}
	if session != "brave-otter" {
		t.Errorf("session header = %q", session)
	}
}
