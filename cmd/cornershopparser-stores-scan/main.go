// Command cornershopparser-stores-scan collects the stores delivering to many
// addresses at once, for example every district of a city, and saves them
// deduplicated by store identity.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cornershopparser/internal/apis/cornershop"
	"cornershopparser/internal/apis/cornershop/usecases"
	"cornershopparser/internal/bootstrap"
	"cornershopparser/internal/config"
	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/export"
	"cornershopparser/internal/logger"
)

type options struct {
	config    string
	addresses string
	country   string
	workers   int
	format    string
	outDir    string
	outName   string
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "./config/config.yaml", "path to config.yaml")
	flag.StringVar(&o.addresses, "addresses", "", "file with one address per line")
	flag.StringVar(&o.country, "country", "", "country code, overrides cornershop.country")
	flag.IntVar(&o.workers, "workers", 4, "addresses scanned at once")
	flag.StringVar(&o.format, "format", "json", "export format")
	flag.StringVar(&o.outDir, "out-dir", "./output", "export directory")
	flag.StringVar(&o.outName, "out", "stores", "export file name")
	flag.Parse()

	cfg, err := config.Load(o.config)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	if o.country != "" {
		cfg.Cornershop.Country = strings.ToUpper(o.country)
	}

	log := logger.Install(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, o, log); err != nil {
		log.Error("stores scan failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, o options, log *slog.Logger) error {
	addrs, err := addressList(o.addresses, cfg.Cornershop.Address)
	if err != nil {
		return err
	}

	hc, err := bootstrap.HTTPClient(cfg, log)
	if err != nil {
		return err
	}
	// workers overlap, request starts stay traversal.delay_ms apart
	delay := time.Duration(cfg.Traversal.DelayMS) * time.Millisecond
	tr, err := bootstrap.BuildTransport(cfg, hc, log, o.workers, delay)
	if err != nil {
		return err
	}

	s := &scanner{
		api:      cornershop.New(tr, cfg.Cornershop.BaseURL, log),
		country:  cfg.Cornershop.Country,
		workers:  o.workers,
		progress: 2 * time.Second,
		log:      log,
	}
	stores := usecases.DedupStores(s.scan(ctx, addrs))

	exp := export.New(export.DefaultRegistry(log), export.Config{Format: o.format, Dir: o.outDir, Logger: log})
	res, err := exp.Export(ctx, export.Request{Items: models.Records(stores), FileName: o.outName})
	if err != nil {
		return err
	}

	log.Info("stores: done",
		"addresses", len(addrs),
		"failed", s.failed.Load(),
		"found", len(stores),
		"out", res.Path,
	)
	return nil
}

func addressList(path, fallback string) ([]string, error) {
	var addrs []string
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if addrs, err = readAddresses(f); err != nil {
			return nil, err
		}
	}
	if len(addrs) == 0 && fallback != "" {
		addrs = []string{fallback}
	}
	if len(addrs) == 0 {
		return nil, errors.New("no addresses: pass -addresses or set cornershop.address")
	}
	return addrs, nil
}
