package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hubgrip/internal/api"
	"hubgrip/internal/config"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/invite"
	"hubgrip/internal/logger"
	"hubgrip/internal/prefs"
	"hubgrip/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		token      string
		apiBaseURL string
		logLevel   string
	)
	flag.StringVar(&token, "token", "", "API auth token")
	flag.StringVar(&token, "t", "", "API auth token (shorthand)")
	flag.StringVar(&apiBaseURL, "api", "", "API base URL (overrides config)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	if token == "" {
		token = os.Getenv("HUBGRIP_TOKEN")
	}

	// Set up logging; the TUI owns the terminal
	log, err := logger.New("hubgrip.log", logLevel)
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create event bus
	bus := eventbus.New(log)

	// Load configuration with event bus support
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Error("config load failed, using defaults")
		cfg = config.DefaultConfig()
	}
	if apiBaseURL != "" {
		cfg.APIBaseURL = apiBaseURL
	}

	// Open the preference store (dev toggles live here)
	store, err := prefs.New(cfg.PrefsPath, bus, log)
	if err != nil {
		fmt.Printf("Error opening preferences: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// API client and the freemail domain checker
	client := api.ForToken(cfg.APIBaseURL, token, api.WithLogger(log))
	checker := invite.NewDomainChecker(cfg.FreemailURL, log)

	// Create UI model
	uiModel := ui.New(client, bus, store, checker, log, cfg.UISettings.ShowResultCounts)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())

	// Forward domain events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn("event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventInviteSent,
		eventbus.EventInviteFailed,
		eventbus.EventDomainWhitelisted,
		eventbus.EventFieldReverted,
		eventbus.EventPrefChanged,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forwardEvent)
	}

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		log.Error("program exited with error")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Stop the bus first so no handler can send on the closed channel
	bus.Close()
	close(eventChan)
}
