package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/qnkhuat/checkersterm/pkg/checkers"
)

const (
	DefaultTimeout  = 10 * time.Second
	RequestIDHeader = "X-Request-Id"
)

// HeaderProvider injects extra headers into every request.
type HeaderProvider func() map[string]string

// Client is the HTTP implementation of Authority. It never retries: a failed
// request is reported and the user decides what to do next.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	headers HeaderProvider
	log     *zap.Logger

	timeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHeaderProvider(h HeaderProvider) Option {
	return func(c *Client) { c.headers = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDial replaces the TCP dialer, used to reach in-memory listeners.
func WithDial(dial func(addr string) (net.Conn, error)) Option {
	return func(c *Client) { c.http.Dial = dial }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			Name:            "checkersterm",
			ReadTimeout:     DefaultTimeout,
			WriteTimeout:    DefaultTimeout,
			MaxConnsPerHost: 4,
		},
		log:     zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Authority = (*Client)(nil)

func (c *Client) Board(ctx context.Context) (*checkers.Snapshot, error) {
	var resp boardResponse
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/get_board", nil, nil, &resp); err != nil {
		return nil, err
	}
	s, err := resp.snapshot()
	if err != nil {
		return nil, fmt.Errorf("get_board: %w", err)
	}
	return s, nil
}

func (c *Client) IsValidMove(ctx context.Context, m checkers.Move) (bool, error) {
	var args fasthttp.Args
	args.SetUint("x1", m.From.Col)
	args.SetUint("y1", m.From.Row)
	args.SetUint("x2", m.To.Col)
	args.SetUint("y2", m.To.Row)
	var valid bool
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/is_valid_move", &args, nil, &valid); err != nil {
		return false, err
	}
	return valid, nil
}

func (c *Client) ExecuteMove(ctx context.Context, m checkers.Move) (*MoveResult, error) {
	var resp messageResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/execute_move", nil, newMoveRequest(m), &resp); err != nil {
		return nil, err
	}
	winner, err := parseWinner(resp.Winner)
	if err != nil {
		return nil, fmt.Errorf("execute_move: %w", err)
	}
	return &MoveResult{Message: resp.Message, Winner: winner}, nil
}

func (c *Client) Start(ctx context.Context) (*Result, error) {
	return c.message(ctx, "/start")
}

func (c *Client) Undo(ctx context.Context) (*Result, error) {
	return c.message(ctx, "/undo_move")
}

func (c *Client) ComputerMove(ctx context.Context) (*ComputerMoveResult, error) {
	var resp computerMoveResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/monte_carlo_simulation", nil, nil, &resp); err != nil {
		return nil, err
	}
	winner, err := parseWinner(resp.Winner)
	if err != nil {
		return nil, fmt.Errorf("monte_carlo_simulation: %w", err)
	}
	res := &ComputerMoveResult{Message: resp.Message, Winner: winner}
	if len(resp.Move) > 0 {
		m, err := moveFromTuple(resp.Move)
		if err != nil {
			return nil, fmt.Errorf("monte_carlo_simulation: %w", err)
		}
		res.Move = &m
	}
	return res, nil
}

func (c *Client) Winner(ctx context.Context) (checkers.Side, error) {
	var w *string
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/get_winner", nil, nil, &w); err != nil {
		return checkers.NoSide, err
	}
	side, err := parseWinner(w)
	if err != nil {
		return checkers.NoSide, fmt.Errorf("get_winner: %w", err)
	}
	return side, nil
}

func (c *Client) message(ctx context.Context, path string) (*Result, error) {
	var resp messageResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &Result{Message: resp.Message}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, args *fasthttp.Args, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	op := strings.TrimPrefix(path, "/")
	uri := c.baseURL + path
	if args != nil && args.Len() > 0 {
		uri += "?" + args.String()
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	reqID := uuid.NewString()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.headers != nil {
		for k, v := range c.headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				req.Header.Set(k, v)
			}
		}
	}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	start := time.Now()
	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		c.log.Error("authority request failed",
			zap.String("op", op), zap.String("request_id", reqID), zap.Error(err))
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	status := resp.StatusCode()
	c.log.Debug("authority request",
		zap.String("op", op),
		zap.String("request_id", reqID),
		zap.Int("status", status),
		zap.Duration("took", time.Since(start)))

	if status < 200 || status >= 300 {
		return &APIError{Op: op, Status: status, Detail: parseDetail(resp.Body())}
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	dl := time.Now().Add(c.timeout)
	if ctxDL, ok := ctx.Deadline(); ok && ctxDL.Before(dl) {
		return ctxDL
	}
	return dl
}
