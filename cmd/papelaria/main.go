package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PedroMGGDev/papelaria-digital/internal/chat"
	"github.com/PedroMGGDev/papelaria-digital/internal/config"
	"github.com/PedroMGGDev/papelaria-digital/internal/format"
	"github.com/PedroMGGDev/papelaria-digital/internal/session"
	"github.com/PedroMGGDev/papelaria-digital/internal/telemetry"
	"github.com/PedroMGGDev/papelaria-digital/internal/transport"
	"github.com/PedroMGGDev/papelaria-digital/internal/ui"
)

func main() {
	var configPath string
	var serverURL string
	var debug bool

	flag.StringVar(&configPath, "config", "", "Path to TOML config file")
	flag.StringVar(&serverURL, "server", "", "Chat backend base URL (overrides config)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if debug {
		cfg.Debug = true
	}

	tel, err := telemetry.Init(context.Background(), cfg.LogDir, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize telemetry: %v\n", err)
		os.Exit(1)
	}
	defer tel.Shutdown()

	var store session.Store
	sqlStore, err := session.OpenSQLiteStore(cfg.DBPath)
	if err != nil {
		tel.Logger.Warn("session storage unavailable, falling back to in-memory", "error", err)
		store = &session.MemoryStore{}
	} else {
		store = sqlStore
		defer sqlStore.Close()
	}
	sessions := session.NewManager(store, tel.Logger)

	client := transport.NewClient(cfg.ServerURL, tel.Logger, tel.Tracer, tel.Meter)

	renderer := lipgloss.DefaultRenderer()
	formatter := format.New(renderer)

	bridge := ui.NewBridge()
	ctrl := chat.NewController(client, sessions, bridge, chat.NewScheduler(), tel.Logger)

	model := ui.New(ctrl, formatter, renderer, tel.Logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge.Attach(program)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
