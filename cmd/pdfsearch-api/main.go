package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdfsearch/internal/searchapi"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n\nConfigured through environment variables.\n\n%s\n", os.Args[0], searchapi.Usage())
	}
	flag.Parse()

	cfg, err := searchapi.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := searchapi.NewESEngine(cfg.ESHost, cfg.Index)
	if err != nil {
		log.Fatal(err)
	}

	var cache searchapi.Cache
	if cfg.RedisAddr != "" {
		rc, err := searchapi.NewRedisCache(ctx, cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			log.Printf("Response cache disabled: %v", err)
		} else {
			defer rc.Close()
			cache = rc
			log.Printf("Caching responses in redis at %s for %s", cfg.RedisAddr, cfg.CacheTTL)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           searchapi.NewServer(engine, cache, cfg).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Search API listening on %s (index %s at %s)", cfg.Addr(), cfg.Index, cfg.ESHost)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
