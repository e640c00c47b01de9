package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-livedata/internal/config"
	"github.com/DoyleJ11/lol-livedata/internal/feed"
	"github.com/DoyleJ11/lol-livedata/internal/httpapi"
	"github.com/DoyleJ11/lol-livedata/internal/liveclient"
	"github.com/DoyleJ11/lol-livedata/internal/logging"
	"github.com/DoyleJ11/lol-livedata/internal/notify"
	"github.com/DoyleJ11/lol-livedata/internal/poller"
	"github.com/DoyleJ11/lol-livedata/internal/procscan"
	"github.com/DoyleJ11/lol-livedata/internal/store"
	"github.com/DoyleJ11/lol-livedata/pkg/lcu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("relay stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := feed.New(ctx)
	deps := httpapi.Deps{Feed: f, Log: logger, AllowedOrigins: cfg.HTTP.AllowedOrigins}
	opts := []poller.Option{
		poller.WithInterval(cfg.LiveClient.PollInterval),
		poller.WithTimeout(cfg.LiveClient.Timeout),
	}

	if cfg.StoreEnabled() {
		st, err := store.Open(cfg.Database.DSN, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.AutoMigrate(ctx); err != nil {
			return err
		}
		opts = append(opts, poller.WithStore(st))
		deps.Store = st
	}

	if cfg.DiscordEnabled() {
		d, err := notify.NewDiscord(cfg.Discord.BotToken, cfg.Discord.ChannelID, cfg.Discord.Events, logger)
		if err != nil {
			return err
		}
		opts = append(opts, poller.WithNotifier(d))
	}

	if cfg.LCU.Enabled {
		creds, err := lcu.Discover(ctx, procscan.Finder{})
		if err != nil {
			// The client may start later; the relay works without it.
			logger.Warn("league client not found, /lcu disabled", zap.Error(err))
		} else {
			logger.Info("league client found", zap.Uint16("port", creds.Port))
			deps.LCU = lcu.NewClient(creds)
		}
	}

	p := poller.New(ctx, liveclient.New(cfg.LiveClient.BaseURL), f, logger, opts...)
	deps.Poller = p

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.SetupRoutes(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Websocket handlers return once the feed closes their outboxes.
	select {
	case p.Inbox() <- poller.Shutdown{}:
	case <-p.Done():
	}
	select {
	case f.Inbox() <- feed.Shutdown{}:
	case <-f.Done():
	}
	return srv.Shutdown(shutdownCtx)
}
