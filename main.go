// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/rangepoll/auth"
	"github.com/danielhkuo/rangepoll/cliparse"
	"github.com/danielhkuo/rangepoll/middleware"
	"github.com/danielhkuo/rangepoll/polls"
	"github.com/danielhkuo/rangepoll/router"
	"github.com/danielhkuo/rangepoll/store"
)

func main() {
	// Load .env if present; real environment wins
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Template generation mode: write the example record and exit
	if cfg.GenPoll != "" || cfg.GenVoter != "" {
		if cfg.GenPoll != "" {
			if err := store.WriteTemplate(cfg.GenPoll, store.PollTemplate()); err != nil {
				slog.Error("failed to write poll template", "path", cfg.GenPoll, "error", err)
				os.Exit(1)
			}
			slog.Info("poll template written", "path", cfg.GenPoll)
		}
		if cfg.GenVoter != "" {
			if err := store.WriteTemplate(cfg.GenVoter, store.VoterTemplate(true)); err != nil {
				slog.Error("failed to write voter template", "path", cfg.GenVoter, "error", err)
				os.Exit(1)
			}
			slog.Info("voter template written", "path", cfg.GenVoter)
		}
		return
	}

	// Token signing secret, read once
	secret, err := auth.LoadSecret(cfg.SecretFile)
	if err != nil {
		slog.Error("failed to load secret", "file", cfg.SecretFile, "error", err)
		os.Exit(1)
	}

	// Wire stores and services
	clock := clockwork.NewRealClock()
	pollStore := store.NewPollStore(cfg.PollsDir, cfg.DefaultAlgorithm)
	voterStore := store.NewVoterStore(cfg.VotersDir)
	svc := polls.NewService(pollStore, voterStore, clock)
	tokens := auth.NewTokenService(secret, pollStore, clock)

	// Create router
	mux := router.NewRouter(svc, tokens, voterStore, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "polls", cfg.PollsDir, "voters", cfg.VotersDir)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
