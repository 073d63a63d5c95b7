package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/qnkhuat/checkersterm/pkg"
	"github.com/qnkhuat/checkersterm/pkg/authority"
	"github.com/qnkhuat/checkersterm/pkg/boardimage"
	"github.com/qnkhuat/checkersterm/pkg/config"
	"github.com/qnkhuat/checkersterm/pkg/gui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	baseURL := flag.String("url", "", "base URL of the game server")
	timeout := flag.Duration("timeout", 0, "timeout for each request to the game server")
	logPath := flag.String("log", "", "path to log file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	theme := flag.String("theme", "", "colour theme")
	export := flag.String("export", "", "write the current board to this PNG file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.Authority.BaseURL = *baseURL
		case "timeout":
			cfg.Authority.Timeout = *timeout
		case "log":
			cfg.Log.Path = *logPath
		case "log-level":
			cfg.Log.Level = *logLevel
		case "theme":
			cfg.Theme = *theme
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	name := os.Getenv(pkg.SessionNameEnv)
	if name == "" {
		name = petname.Generate(2, "-")
	}
	log, err := pkg.InitLog(cfg.Log.Path, cfg.Log.Level, "client")
	if err != nil {
		fatal(err)
	}
	defer log.Sync()
	log = log.With(zap.String("session", name))

	client := authority.NewClient(cfg.Authority.BaseURL,
		authority.WithTimeout(cfg.Authority.Timeout),
		authority.WithLogger(log),
		authority.WithHeaderProvider(func() map[string]string {
			return map[string]string{"X-Session-Name": name}
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	if *export != "" {
		if err := exportBoard(ctx, client, *export); err != nil {
			log.Error("export", zap.String("path", *export), zap.Error(err))
			fatal(err)
		}
		color.Green("Board written to %s", *export)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fatal(fmt.Errorf("stdout is not a terminal"))
	}
	th, err := cfg.ResolveTheme()
	if err != nil {
		log.Warn("theme", zap.String("theme", cfg.Theme), zap.Error(err))
		th = gui.ThemeBasic
	}

	log.Info("client started", zap.String("authority", cfg.Authority.BaseURL))
	app := gui.New(client, gui.Options{Theme: th, Title: name, Logger: log})
	if err := app.Run(ctx); err != nil {
		log.Error("ui", zap.Error(err))
		fatal(err)
	}
	log.Info("client stopped")
}

func exportBoard(ctx context.Context, auth authority.Authority, path string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	snap, err := auth.Board(ctx)
	if err != nil {
		return fmt.Errorf("fetch board: %w", err)
	}
	raw, err := boardimage.RenderPNG(ctx, snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func fatal(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "checkersterm: %v\n", err)
	os.Exit(1)
}
