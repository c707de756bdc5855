package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scamquiz/internal/admin"
	"scamquiz/internal/catalog"
	"scamquiz/internal/config"
	"scamquiz/internal/logging"
	"scamquiz/internal/render"
	"scamquiz/internal/session"
)

var (
	playCatalog    string
	playRenderer   string
	playTranscript string
	playAdminAddr  string
	playLogLevel   string
	playLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quiz in the terminal",
	Long:  "play runs an interactive quiz session, optionally recording a transcript and level results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyPlayFlags(cmd, cfg)

		cat, err := loadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}

		mode := resolveRenderer(cfg.Renderer, isTerminal())
		logger, closeLog, err := newLogger(cfg, mode)
		if err != nil {
			return err
		}
		defer closeLog()
		slog.SetDefault(logger)

		rec, tracker, cleanup, err := newRecorders(cfg, false)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		if cfg.AdminAddr != "" {
			srv := admin.NewServer(tracker)
			go func() {
				if err := srv.Start(ctx, cfg.AdminAddr); err != nil {
					logger.Error("admin server failed", "addr", cfg.AdminAddr, "err", err)
				}
			}()
		}

		var r session.Renderer
		if mode == config.RendererTUI {
			tui := render.NewTUI()
			defer tui.Close()
			r = tui
		} else {
			r = render.NewPlain()
		}

		ctrl := session.New(cat, r, session.WithRecorder(rec), session.WithLogger(logger))
		logger.Info("session started", "session_id", ctrl.ID(), "renderer", mode, "levels", cat.Levels())
		err = ctrl.Run(ctx)
		switch {
		case err == nil, errors.Is(err, render.ErrClosed), errors.Is(err, context.Canceled):
			logger.Info("session ended", "session_id", ctrl.ID(), "phase", ctrl.Phase())
			return nil
		default:
			return fmt.Errorf("play: %w", err)
		}
	},
}

func init() {
	playCmd.Flags().StringVar(&playCatalog, "catalog", "", "Path to a scenario catalog YAML (built-in content when empty)")
	playCmd.Flags().StringVar(&playRenderer, "renderer", config.RendererAuto, "Renderer: auto, tui or plain")
	playCmd.Flags().StringVar(&playTranscript, "transcript", "", "Path to export the session transcript (JSONL)")
	playCmd.Flags().StringVar(&playAdminAddr, "admin-addr", "", "Listen address for the status page (disabled when empty)")
	playCmd.Flags().StringVar(&playLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "Path to write logs to")
}

// applyPlayFlags lets explicitly set flags win over file and environment.
func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	set("catalog", &cfg.Catalog, playCatalog)
	set("renderer", &cfg.Renderer, playRenderer)
	set("transcript", &cfg.Transcript, playTranscript)
	set("admin-addr", &cfg.AdminAddr, playAdminAddr)
	set("log-level", &cfg.LogLevel, playLogLevel)
	set("log-file", &cfg.LogFile, playLogFile)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.BuiltIn(), nil
	}
	return catalog.Load(path)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveRenderer turns "auto" into a concrete renderer.
func resolveRenderer(mode string, tty bool) string {
	switch mode {
	case config.RendererTUI, config.RendererPlain:
		return mode
	}
	if tty {
		return config.RendererTUI
	}
	return config.RendererPlain
}

// newLogger writes to the configured log file, or to stderr unless the TUI
// owns the terminal.
func newLogger(cfg *config.Config, mode string) (*slog.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logging.New(f, cfg.LogLevel), func() { f.Close() }, nil
	}
	var w io.Writer = os.Stderr
	if mode == config.RendererTUI {
		w = io.Discard
	}
	return logging.New(w, cfg.LogLevel), func() {}, nil
}
