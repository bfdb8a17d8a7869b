package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"portfolio-chat-backend/internal/chat"
	"portfolio-chat-backend/internal/config"
	"portfolio-chat-backend/internal/logger"
	"portfolio-chat-backend/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML client config file")
	relayURL := flag.String("relay", "", "relay base URL (overrides config and RELAY_URL)")
	flag.Parse()

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *relayURL != "" {
		cfg.RelayURL = *relayURL
	}

	// stdout belongs to the terminal UI, so logs go to a rotating file
	log, err := logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	log.Info("starting chat client", "relay", cfg.RelayURL)

	session := chat.NewSession(chat.NewRelayClient(cfg.RelayURL, nil), log)
	model := tui.New(session)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Error("chat client exited", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
