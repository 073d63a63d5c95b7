package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"

	// SessionNameEnv and SessionIdEnv are set for clients spawned by the
	// server.
	SessionNameEnv = "CHECKERS_SESSION"
	SessionIdEnv   = "CHECKERS_SESSION_ID"
)

type ServerOptions struct {
	Addr        string
	HostKeyFile string
	// ClientPath is the checkersterm binary started for every session.
	ClientPath  string
	ClientArgs  []string
	IdleTimeout time.Duration
	Logger      *zap.Logger
}

// Server hosts the terminal client over SSH: each session gets a pty running
// its own client process.
type Server struct {
	*ssh.Server
	opts ServerOptions
	log  *zap.Logger

	mu      sync.Mutex
	players map[string]*Player
}

func NewServer(opts ServerOptions) (*Server, error) {
	if opts.ClientPath == "" {
		return nil, errors.New("server: client path is required")
	}
	if opts.Addr == "" {
		opts.Addr = SshPort
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = ServerIdleTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		opts:    opts,
		log:     log,
		players: make(map[string]*Player),
	}
	s.Server = &ssh.Server{
		Addr:        opts.Addr,
		IdleTimeout: opts.IdleTimeout,
		Handler:     s.handle,
	}
	if opts.HostKeyFile != "" {
		keyFile, err := ExpandHome(opts.HostKeyFile)
		if err != nil {
			return nil, err
		}
		if err := s.SetOption(ssh.HostKeyFile(keyFile)); err != nil {
			return nil, fmt.Errorf("server: host key: %w", err)
		}
	}
	return s, nil
}

// Players lists the connected players ordered by join time.
func (s *Server) Players() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Joined.Before(out[j].Joined) })
	return out
}

func (s *Server) addPlayer(p *Player) {
	s.mu.Lock()
	s.players[p.Id] = p
	n := len(s.players)
	s.mu.Unlock()
	s.log.Info("player joined", zap.Stringer("player", p), zap.Int("players", n))
}

func (s *Server) removePlayer(p *Player) {
	s.mu.Lock()
	delete(s.players, p.Id)
	n := len(s.players)
	s.mu.Unlock()
	s.log.Info("player left", zap.Stringer("player", p),
		zap.Duration("played", time.Since(p.Joined)), zap.Int("players", n))
}

// command builds the client process. The player's variables come last so a
// visitor cannot override them.
func (s *Server) command(ctx context.Context, p *Player, term string, environ []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.opts.ClientPath, s.opts.ClientArgs...)
	cmd.Env = append(append([]string{}, environ...), "TERM="+term)
	cmd.Env = append(cmd.Env, p.Env()...)
	return cmd
}

func (s *Server) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	p := NewPlayer(sess.User(), sess.RemoteAddr().String())
	s.addPlayer(p)
	defer s.removePlayer(p)

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	cmd := s.command(ctx, p, ptyReq.Term, sess.Environ())
	f, err := pty.StartWithSize(cmd, winsize(ptyReq.Window))
	if err != nil {
		s.log.Error("start client", zap.Stringer("player", p), zap.Error(err))
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, winsize(win)); err != nil {
				s.log.Debug("resize", zap.Stringer("player", p), zap.Error(err))
			}
		}
	}()

	go io.Copy(f, sess)
	io.Copy(sess, f)

	if err := cmd.Wait(); err != nil {
		s.log.Debug("client exited", zap.Stringer("player", p), zap.Error(err))
	}
	sess.Exit(0)
}

func winsize(w ssh.Window) *pty.Winsize {
	return &pty.Winsize{Cols: uint16(w.Width), Rows: uint16(w.Height)}
}
