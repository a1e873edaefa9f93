package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pdfsearch/internal/backend"
	"pdfsearch/internal/config"
	"pdfsearch/internal/eventbus"
	"pdfsearch/internal/search"
	"pdfsearch/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		endpoint   string
		configPath string
		query      string
		initConfig bool
	)
	flag.StringVar(&endpoint, "endpoint", "", "Search API base URL (overrides config)")
	flag.StringVar(&configPath, "config", "", "Path to config file (default: "+config.DefaultPath()+")")
	flag.StringVar(&query, "q", "", "Initial search query")
	flag.BoolVar(&initConfig, "init-config", false, "Write the effective config to the config path and exit")
	flag.Parse()

	// Remaining args form the initial query
	if query == "" && flag.NArg() > 0 {
		query = strings.Join(flag.Args(), " ")
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config %s: %v\n", configSvc.Path(), err)
		os.Exit(1)
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	if initConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return
	}

	// Set up logging
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = defaultLogPath()
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	subscribeLogging(bus)

	// Backend client, optionally behind the response cache
	var b backend.Backend = backend.NewClient(cfg.Endpoint, backend.WithTimeout(cfg.Timeout()))
	if cfg.Cache.Enabled {
		b = backend.NewCachedBackend(b, cfg.Cache.Size, time.Duration(cfg.Cache.TTL))
	}

	ctrl := search.NewController(b,
		search.WithBus(bus),
		search.WithMinQueryLength(cfg.MinQueryLength),
		search.WithContext(ctx),
	)

	log.Printf("Creating UI model for %s", cfg.Endpoint)
	uiModel := ui.NewModel(ctrl, cfg)
	uiModel.SetInitialQuery(query)

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	if os.Getenv("PDFSEARCH_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	ctrl.Close()
	log.Printf("UI exited normally")
}

// subscribeLogging writes every search lifecycle event to the log file
func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %s (endpoint %s)", event.Path, event.Endpoint)
		}
	})
	bus.Subscribe(eventbus.EventSearchIssued, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchIssuedEvent); ok {
			log.Printf("[%s] search %q page %d (seq %d)",
				event.Request.RequestID, event.Request.Query, event.Request.Page, event.Request.Seq)
		}
	})
	bus.Subscribe(eventbus.EventSearchAccepted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchAcceptedEvent); ok {
			log.Printf("[%s] accepted %d results", event.Request.RequestID, event.ResultCount)
		}
	})
	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("[%s] failed: %v", event.Request.RequestID, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventResponseDiscarded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ResponseDiscardedEvent); ok {
			log.Printf("[%s] discarded: %v", event.Request.RequestID, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventQueryCleared, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.QueryClearedEvent); ok {
			log.Printf("cleared results: %v", event.Reason)
		}
	})
}

// defaultLogPath puts the log under the user cache dir, falling back to the working directory
func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "pdfsearch.log"
	}
	dir = filepath.Join(dir, "pdfsearch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "pdfsearch.log"
	}
	return filepath.Join(dir, "pdfsearch.log")
}
