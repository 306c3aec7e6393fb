package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mailevents/internal/config"
	"mailevents/internal/importer"
	"mailevents/internal/logging"
	"mailevents/internal/server"
	"mailevents/internal/source"
	"mailevents/internal/source/gmail"
	"mailevents/internal/source/imapmail"
	"mailevents/internal/source/mock"
	"mailevents/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if err := run(*configPath, *debug); err != nil {
		logging.Log.WithError(err).Error("exiting")
		os.Exit(1)
	}
}

func run(configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if debug {
		cfg.LogLevel = "debug"
	}
	logging.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	src, err := buildSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("building %s source: %w", cfg.Source, err)
	}

	srv := server.New(st, importer.New(src, st), cfg.AdminToken)
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.WithFields(map[string]interface{}{
			"listen": cfg.Listen,
			"source": cfg.Source,
			"db":     cfg.DBPath,
		}).Info("server started")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func buildSource(ctx context.Context, cfg *config.Config) (source.Source, error) {
	switch cfg.Source {
	case "gmail":
		return gmail.New(ctx, gmail.Config{
			ClientID:     cfg.Gmail.ClientID,
			ClientSecret: cfg.Gmail.ClientSecret,
			RefreshToken: cfg.Gmail.RefreshToken,
			Query:        cfg.Gmail.Query,
			MaxResults:   cfg.Gmail.MaxResults,
		})
	case "imap":
		return imapmail.New(imapmail.Config{
			Host:       cfg.IMAP.Host,
			Port:       cfg.IMAP.Port,
			Username:   cfg.IMAP.Username,
			Password:   cfg.IMAP.Password,
			Mailbox:    cfg.IMAP.Mailbox,
			TLS:        cfg.IMAP.TLS,
			MaxResults: cfg.IMAP.MaxResults,
		}), nil
	case "mock":
		return mock.New(mock.SampleMessages()), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
