package export

import (
	"log/slog"
	"sort"
	"strings"

	"cornershopparser/internal/repository"
	"cornershopparser/internal/repository/csvfile"
	"cornershopparser/internal/repository/imagefile"
	"cornershopparser/internal/repository/jsonfile"
	"cornershopparser/internal/repository/mdfile"
	"cornershopparser/internal/repository/sqlitefile"
	"cornershopparser/internal/repository/xlsxfile"
	"cornershopparser/internal/repository/xmlfile"
)

const DefaultFormat = csvfile.Format

type Factory func(opts repository.Options) repository.Writer

// Registry maps a format tag to its writer. Unknown tags resolve to the
// fallback format instead of failing.
type Registry struct {
	factories map[string]Factory
	fallback  string
	log       *slog.Logger
}

func NewRegistry(fallback string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factories: make(map[string]Factory),
		fallback:  fallback,
		log:       logger,
	}
}

// DefaultRegistry knows every built-in writer and falls back to csv.
func DefaultRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(DefaultFormat, logger)
	r.Register(csvfile.Format, func(o repository.Options) repository.Writer { return csvfile.New(o) })
	r.Register(xlsxfile.Format, func(o repository.Options) repository.Writer { return xlsxfile.New(o) })
	r.Register(xmlfile.Format, func(o repository.Options) repository.Writer { return xmlfile.New(o) })
	r.Register(imagefile.Format, func(o repository.Options) repository.Writer { return imagefile.New(o) })
	r.Register(jsonfile.Format, func(o repository.Options) repository.Writer { return jsonfile.New(o) })
	r.Register(sqlitefile.Format, func(o repository.Options) repository.Writer { return sqlitefile.New(o) })
	r.Register(mdfile.Format, func(o repository.Options) repository.Writer { return mdfile.New(o) })
	return r
}

func (r *Registry) Register(format string, f Factory) {
	r.factories[normalize(format)] = f
}

func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the format actually used for format.
func (r *Registry) Resolve(format string) string {
	f := normalize(format)
	if _, ok := r.factories[f]; ok {
		return f
	}
	if f != "" {
		r.log.Warn("unknown export format, using fallback", "format", format, "fallback", r.fallback)
	}
	return r.fallback
}

func (r *Registry) Writer(format string, opts repository.Options) repository.Writer {
	f := r.Resolve(format)
	if opts.Logger == nil {
		opts.Logger = r.log
	}
	return r.factories[f](opts)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
