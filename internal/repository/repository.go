package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cornershopparser/internal/domain/models"
)

// Writer persists projected records in one output format.
type Writer interface {
	Format() string
	Extension() string
	// MultipleFiles reports whether Save writes one file per item.
	MultipleFiles() bool
	ResolvePath(fileName string) string
	Save(ctx context.Context, items []models.Record, fileName string, headers Headers) error
}

// Sheet is one named group of records, written as its own worksheet.
type Sheet struct {
	Name  string
	Items []models.Record
}

type SheetWriter interface {
	Writer
	SaveSheets(ctx context.Context, sheets []Sheet, fileName string, headers Headers) error
}

type Collision int

const (
	// CollisionDefault overwrites for single-file writers and skips for
	// multiple-file writers.
	CollisionDefault Collision = iota
	CollisionOverwrite
	CollisionSkip
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	Dir       string
	Collision Collision
	Logger    *slog.Logger

	// image writer
	Doer  Doer
	Delay time.Duration
	Sleep func(ctx context.Context, d time.Duration) error

	// xml writer
	RootName string
}

// Base carries the parts every writer shares: target dir, extension and
// collision policy.
type Base struct {
	Dir       string
	Ext       string
	Multiple  bool
	Collision Collision
	Log       *slog.Logger
}

func NewBase(ext string, multiple bool, opts Options) Base {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return Base{
		Dir:       opts.Dir,
		Ext:       ext,
		Multiple:  multiple,
		Collision: opts.Collision,
		Log:       opts.Logger,
	}
}

func (b Base) Extension() string   { return b.Ext }
func (b Base) MultipleFiles() bool { return b.Multiple }

func (b Base) ResolvePath(fileName string) string {
	name := SetExtension(fileName, b.Ext)
	if b.Dir == "" {
		return name
	}
	return filepath.Join(b.Dir, name)
}

func (b Base) Overwrite() bool {
	switch b.Collision {
	case CollisionOverwrite:
		return true
	case CollisionSkip:
		return false
	default:
		return !b.Multiple
	}
}

// Prepare creates the parent dir of path and reports whether path should
// be written under the collision policy.
func (b Base) Prepare(path string) (bool, error) {
	if !b.Overwrite() {
		exists, err := FileExists(path)
		if err != nil {
			return false, err
		}
		if exists {
			b.Log.Debug("file exists, skipped", "path", path)
			return false, nil
		}
	}
	if err := EnsureDir(path); err != nil {
		return false, err
	}
	return true, nil
}

// SetExtension makes name end with ext: kept when already there, appended
// when name has no extension, otherwise the last extension is replaced.
func SetExtension(name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || strings.HasSuffix(name, "."+ext) {
		return name
	}

	dir, base := filepath.Split(name)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return dir + base + "." + ext
	}
	return dir + base[:i+1] + ext
}

func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// ItemName is the per-item file name of multiple-file writers: the id
// field made safe by SafeName when anything is left of it, else the
// position.
func ItemName(item models.Record, index int) string {
	if v, ok := models.Lookup(item, "id"); ok {
		if s := SafeName(FormatValue(v)); s != "" {
			return s
		}
	}
	return fmt.Sprint(index)
}

// ItemPath joins name and the writer's extension under Dir. The extension
// is always appended: ids such as "1.5" keep their dots.
func (b Base) ItemPath(name string) string {
	if b.Ext != "" {
		name += "." + b.Ext
	}
	return filepath.Join(b.Dir, name)
}

// SafeName turns a remote value into a single path element: separators
// and other unsafe characters become "_" and leading dots are dropped, so
// the result never leaves the directory it is joined to.
func SafeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r < ' ':
			return '_'
		case strings.ContainsRune(`*?"<>|`, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	return strings.TrimLeft(s, ".")
}
