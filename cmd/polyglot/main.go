package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/polyglot/internal/backend"
	"github.com/csheth/polyglot/internal/config"
	"github.com/csheth/polyglot/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("failed to load configuration:", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.BackendURL, "backend", cfg.BackendURL, "translation service origin (eg. http://127.0.0.1:5000)")
	flag.StringVar(&cfg.SourceLang, "source", cfg.SourceLang, "initial source language (en, fr, ar)")
	flag.StringVar(&cfg.TargetLang, "target", cfg.TargetLang, "initial target language (en, fr, ar)")
	flag.BoolVar(&cfg.DarkMode, "dark", cfg.DarkMode, "start in dark mode")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "diagnostic log path, empty to disable")
	flag.StringVar(&cfg.PDFDir, "pdf-dir", cfg.PDFDir, "directory the PDF picker starts in")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout, 0 waits indefinitely")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		fmt.Println("failed to open log file:", err)
		os.Exit(1)
	}
	defer closeLog()

	client, err := backend.New(backend.Config{BaseURL: cfg.BackendURL, Timeout: cfg.RequestTimeout})
	if err != nil {
		fmt.Println("failed to create service client:", err)
		os.Exit(1)
	}

	source, target := cfg.Languages()
	logger.Info("starting", "backend", cfg.BackendURL, "source", source.String(), "target", target.String())

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Service:    client,
			Logger:     logger,
			SourceLang: source,
			TargetLang: target,
			DarkMode:   cfg.DarkMode,
			PDFDir:     cfg.PDFDir,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		logger.Error("program error", "err", err)
		closeLog()
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

// openLogger writes to a file because the terminal belongs to the program.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = file.Close() }, nil
}
