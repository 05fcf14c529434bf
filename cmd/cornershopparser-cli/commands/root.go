package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cornershopparser/internal/apis/cornershop"
	"cornershopparser/internal/apis/cornershop/mapper"
	"cornershopparser/internal/apis/cornershop/usecases"
	"cornershopparser/internal/bootstrap"
	"cornershopparser/internal/config"
	"cornershopparser/internal/export"
	"cornershopparser/internal/logger"
	"cornershopparser/internal/repository"
)

var flags struct {
	config     string
	address    string
	country    string
	language   string
	businessID string

	format   string
	outDir   string
	headers  []string
	delayMS  int
	force    bool
	images   bool
	imageDir string
	toDict   bool
	save     bool
}

// app is what every command works with, built once per run.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	headers repository.Headers

	svc      cornershop.CornershopService
	hc       *http.Client
	exporter *export.Exporter
	store    *usecases.Store
}

var cur *app

var rootCmd = &cobra.Command{
	Use:           "cornershopparser-cli",
	Short:         "Browse a Cornershop store catalog and export it to files.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		cur = a
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "./config/config.yaml", "path to config.yaml")
	pf.StringVar(&flags.address, "address", "", "delivery address (overrides config)")
	pf.StringVar(&flags.country, "country", "", "country code, e.g. BR (overrides config)")
	pf.StringVar(&flags.language, "language", "", "language tag, e.g. pt-br (overrides config)")
	pf.StringVar(&flags.businessID, "business-id", "", "store business id (overrides config)")

	pf.StringVar(&flags.format, "format", "", "export format: csv|xlsx|xml|img|json|sqlite|md")
	pf.StringVar(&flags.outDir, "out-dir", "", "export directory")
	pf.StringSliceVar(&flags.headers, "headers", nil, "exported fields, field or field:label, comma separated")
	pf.IntVar(&flags.delayMS, "delay", 0, "delay between storefront calls in ms")
	pf.BoolVar(&flags.force, "force", false, "overwrite existing per-item files (xml, images)")
	pf.BoolVar(&flags.images, "images", false, "also download item images")
	pf.StringVar(&flags.imageDir, "image-dir", "", "image download directory")
	pf.BoolVar(&flags.toDict, "to-dict", false, "print projected rows as JSON instead of a table")
	pf.BoolVar(&flags.save, "save", false, "export listings too (products and search always export)")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*app, error) {
	cfg, err := config.Load(flags.config)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	case err != nil:
		return nil, fmt.Errorf("load config: %w", err)
	}

	// overrides
	if flags.address != "" {
		cfg.Cornershop.Address = flags.address
	}
	if flags.country != "" {
		cfg.Cornershop.Country = flags.country
	}
	if flags.language != "" {
		cfg.Cornershop.Language = flags.language
	}
	if flags.businessID != "" {
		cfg.Cornershop.BusinessID = flags.businessID
	}
	if flags.format != "" {
		cfg.Export.Format = flags.format
	}
	if flags.outDir != "" {
		cfg.Export.Dir = flags.outDir
	}
	if len(flags.headers) > 0 {
		cfg.Export.Headers = flags.headers
	}
	if flags.delayMS > 0 {
		cfg.Traversal.DelayMS = flags.delayMS
	}
	if flags.force {
		cfg.Export.Force = true
	}
	if flags.imageDir != "" {
		cfg.Export.ImageDir = flags.imageDir
	}

	log := logger.Install(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
	})

	headers, err := repository.ParseHeaders(cfg.Export.Headers)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, headers: headers}, nil
}

// connect opens the storefront session on first use.
func (a *app) connect(ctx context.Context) (cornershop.CornershopService, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, hc, err := bootstrap.Connect(ctx, a.cfg, a.log, 1)
	if err != nil {
		return nil, err
	}
	a.svc, a.hc = svc, hc
	return svc, nil
}

func (a *app) openStore(ctx context.Context) (*usecases.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if a.cfg.Cornershop.BusinessID == "" {
		return nil, fmt.Errorf("business id is required (config cornershop.business_id or --business-id)")
	}
	svc, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}

	st, err := usecases.NewStore(ctx, svc, usecases.StoreOptions{
		BusinessID: a.cfg.Cornershop.BusinessID,
		Locality: mapper.Locality{
			Address:  a.cfg.Cornershop.Address,
			Country:  a.cfg.Cornershop.Country,
			Language: a.cfg.Cornershop.Language,
		},
		Delay:  time.Duration(a.cfg.Traversal.DelayMS) * time.Millisecond,
		Logger: a.log,
	})
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

func (a *app) exp() *export.Exporter {
	if a.exporter == nil {
		var doer repository.Doer
		if a.hc != nil {
			doer = a.hc
		}
		a.exporter = export.New(export.DefaultRegistry(a.log), export.Config{
			Format:     a.cfg.Export.Format,
			Dir:        a.cfg.Export.Dir,
			ImageDir:   a.cfg.Export.ImageDir,
			ImageDelay: time.Duration(a.cfg.Export.ImageDelayMS) * time.Millisecond,
			Force:      a.cfg.Export.Force,
			Doer:       doer,
			Logger:     a.log,
		})
	}
	return a.exporter
}
