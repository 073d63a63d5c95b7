package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"github.com/qnkhuat/checkersterm/pkg"
	"github.com/qnkhuat/checkersterm/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "address to listen for SSH")
	client := flag.String("client", "", "path to the checkersterm binary")
	logPath := flag.String("log", "", "path to log file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.SSH.Addr = *addr
		case "client":
			cfg.SSH.ClientPath = *client
		case "log":
			cfg.Log.Path = *logPath
		}
	})

	log, err := pkg.InitLog(cfg.Log.Path, cfg.Log.Level, "server")
	if err != nil {
		fatal(err)
	}
	defer log.Sync()

	s, err := pkg.NewServer(pkg.ServerOptions{
		Addr:        cfg.SSH.Addr,
		HostKeyFile: cfg.SSH.HostKey,
		ClientPath:  cfg.SSH.ClientPath,
		ClientArgs:  clientArgs(cfg, *configPath),
		IdleTimeout: cfg.SSH.IdleTimeout,
		Logger:      log,
	})
	if err != nil {
		log.Error("server", zap.Error(err))
		fatal(err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Info("shutting down", zap.Int("players", len(s.Players())))
		s.Close()
	}()

	log.Info("server started", zap.String("addr", cfg.SSH.Addr))
	color.Cyan("Listening for SSH on %s", cfg.SSH.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("listen", zap.Error(err))
		fatal(err)
	}
}

// clientArgs points spawned clients at the same game server and config.
func clientArgs(cfg *config.Config, configPath string) []string {
	args := []string{
		"-url", cfg.Authority.BaseURL,
		"-timeout", cfg.Authority.Timeout.String(),
		"-log", strings.TrimSuffix(cfg.Log.Path, ".log") + "-client.log",
	}
	if configPath != "" {
		args = append(args, "-config", configPath)
	}
	return args
}

func fatal(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "server: %v\n", err)
	os.Exit(1)
}
