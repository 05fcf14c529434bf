package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
	"cornershopparser/internal/repository/imagefile"
)

type Config struct {
	Format     string
	Dir        string
	ImageDir   string
	ImageDelay time.Duration
	// Force overwrites existing files of multiple-file writers.
	Force bool

	Doer   repository.Doer
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *slog.Logger
}

type Exporter struct {
	reg *Registry
	cfg Config
	log *slog.Logger
}

func New(reg *Registry, cfg Config) *Exporter {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if reg == nil {
		reg = DefaultRegistry(cfg.Logger)
	}
	if cfg.ImageDir == "" {
		cfg.ImageDir = cfg.Dir
	}
	return &Exporter{reg: reg, cfg: cfg, log: cfg.Logger}
}

type Request struct {
	Items    []models.Record
	Headers  repository.Headers
	FileName string
	// Format overrides the configured format when set.
	Format string
	// ToDict returns the projected rows in Result.Rows.
	ToDict     bool
	SaveImages bool
}

type Result struct {
	Format string
	Path   string
	Rows   []map[string]any
}

// Export persists req.Items with the selected writer, then downloads their
// images when asked to.
func (e *Exporter) Export(ctx context.Context, req Request) (Result, error) {
	w := e.writer(req.Format)
	res := Result{Format: w.Format(), Path: e.path(w, req.FileName)}

	if len(req.Items) == 0 {
		e.log.Info("nothing to export", "format", res.Format, "file", req.FileName)
		if req.ToDict {
			res.Rows = []map[string]any{}
		}
		return res, nil
	}

	headers := req.Headers.Resolve(req.Items)
	if err := w.Save(ctx, req.Items, req.FileName, headers); err != nil {
		return Result{}, fmt.Errorf("export %s: %w", res.Format, err)
	}

	if req.SaveImages {
		if err := e.SaveImages(ctx, req.Items); err != nil {
			return Result{}, err
		}
	}

	if req.ToDict {
		res.Rows = repository.ProjectMaps(req.Items, headers)
	}
	return res, nil
}

// ExportSheets writes one worksheet per sheet when the writer supports it,
// otherwise all sheets concatenated.
func (e *Exporter) ExportSheets(ctx context.Context, sheets []repository.Sheet, fileName string, headers repository.Headers, format string) (Result, error) {
	w := e.writer(format)
	res := Result{Format: w.Format(), Path: e.path(w, fileName)}

	if sw, ok := w.(repository.SheetWriter); ok {
		if err := sw.SaveSheets(ctx, sheets, fileName, headers); err != nil {
			return Result{}, fmt.Errorf("export %s: %w", res.Format, err)
		}
		return res, nil
	}

	var items []models.Record
	for _, s := range sheets {
		items = append(items, s.Items...)
	}
	return e.Export(ctx, Request{Items: items, Headers: headers, FileName: fileName, Format: format})
}

func (e *Exporter) SaveImages(ctx context.Context, items []models.Record) error {
	w := e.reg.Writer(imagefile.Format, repository.Options{
		Dir:       e.cfg.ImageDir,
		Collision: e.collision(),
		Logger:    e.log,
		Doer:      e.cfg.Doer,
		Delay:     e.cfg.ImageDelay,
		Sleep:     e.cfg.Sleep,
	})
	if err := w.Save(ctx, items, "", nil); err != nil {
		return fmt.Errorf("export images: %w", err)
	}
	return nil
}

// Project returns the rows Export would persist, without writing anything.
func Project(items []models.Record, headers repository.Headers) []map[string]any {
	return repository.ProjectMaps(items, headers.Resolve(items))
}

func (e *Exporter) Formats() []string {
	return e.reg.Formats()
}

func (e *Exporter) writer(format string) repository.Writer {
	if format == "" {
		format = e.cfg.Format
	}
	return e.reg.Writer(format, repository.Options{
		Dir:       e.cfg.Dir,
		Collision: e.collision(),
		Logger:    e.log,
		Doer:      e.cfg.Doer,
		Delay:     e.cfg.ImageDelay,
		Sleep:     e.cfg.Sleep,
	})
}

func (e *Exporter) path(w repository.Writer, fileName string) string {
	if w.MultipleFiles() {
		return e.cfg.Dir
	}
	return w.ResolvePath(fileName)
}

func (e *Exporter) collision() repository.Collision {
	if e.cfg.Force {
		return repository.CollisionOverwrite
	}
	return repository.CollisionDefault
}
