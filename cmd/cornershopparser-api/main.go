// Command cornershopparser-api serves one store's catalog over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cornershopparser/internal/apis/cornershop/mapper"
	"cornershopparser/internal/apis/cornershop/usecases"
	"cornershopparser/internal/bootstrap"
	"cornershopparser/internal/config"
	httpserver "cornershopparser/internal/http-server"
	"cornershopparser/internal/logger"
)

const shutdownGrace = 30 * time.Second

type flags struct {
	config     string
	host       string
	port       int
	businessID string
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "./config/config.yaml", "path to config.yaml")
	flag.StringVar(&f.host, "host", "", "listen host, overrides server.host")
	flag.IntVar(&f.port, "port", 0, "listen port, overrides server.port")
	flag.StringVar(&f.businessID, "business-id", "", "store business id, overrides cornershop.business_id")
	flag.Parse()

	cfg, err := config.Load(f.config)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	f.apply(cfg)

	log := logger.Install(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func (f flags) apply(cfg *config.Config) {
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if f.port != 0 {
		cfg.Server.Port = f.port
	}
	if f.businessID != "" {
		cfg.Cornershop.BusinessID = f.businessID
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if cfg.Cornershop.BusinessID == "" {
		return errors.New("business_id is required (config or -business-id)")
	}
	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second

	api, err := buildAPI(ctx, cfg, log, timeout)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	served := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "business_id", cfg.Cornershop.BusinessID)
		served <- srv.ListenAndServe()
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	// traversals in flight get shutdownGrace to finish
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildAPI opens the storefront session, loads the catalog and wires the
// routes. Everything shares one session, so one request at a time.
func buildAPI(ctx context.Context, cfg *config.Config, log *slog.Logger, timeout time.Duration) (*httpserver.Server, error) {
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	svc, _, err := bootstrap.Connect(startCtx, cfg, log, 1)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	store, err := usecases.NewStore(startCtx, svc, usecases.StoreOptions{
		BusinessID: cfg.Cornershop.BusinessID,
		Locality: mapper.Locality{
			Address:  cfg.Cornershop.Address,
			Country:  cfg.Cornershop.Country,
			Language: cfg.Cornershop.Language,
		},
		Delay:  time.Duration(cfg.Traversal.DelayMS) * time.Millisecond,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	api := httpserver.New(log)
	api.RegisterRoutes(httpserver.Deps{
		Catalog:         store,
		Stores:          usecases.NewDirectory(svc, log),
		DefaultLocality: cfg.Cornershop.Address,
		DefaultCountry:  cfg.Cornershop.Country,
		Timeout:         timeout,
	})
	return api, nil
}
