package imagefile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

const (
	Format       = "img"
	DefaultDelay = time.Second

	URLField  = "image_url"
	NameField = "id"

	maxImageBytes = 32 << 20
)

// Writer downloads the image of every item that has one. Downloads are
// sequential with Delay between two consecutive ones.
type Writer struct {
	repository.Base
	Doer  repository.Doer
	Delay time.Duration
	Sleep func(ctx context.Context, d time.Duration) error

	URLField  string
	NameField string
}

func New(opts repository.Options) *Writer {
	w := &Writer{
		Base:      repository.NewBase("", true, opts),
		Doer:      opts.Doer,
		Delay:     opts.Delay,
		Sleep:     opts.Sleep,
		URLField:  URLField,
		NameField: NameField,
	}
	if w.Doer == nil {
		w.Doer = &http.Client{Timeout: 30 * time.Second}
	}
	if w.Delay <= 0 {
		w.Delay = DefaultDelay
	}
	if w.Sleep == nil {
		w.Sleep = sleepCtx
	}
	return w
}

func (w *Writer) Format() string { return Format }

// Save ignores fileName and headers: files are named after NameField with
// the extension of the image URL.
func (w *Writer) Save(ctx context.Context, items []models.Record, _ string, _ repository.Headers) error {
	downloaded := 0
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		rawURL := field(it, w.URLField)
		if rawURL == "" {
			continue
		}

		name, err := FileName(rawURL, field(it, w.NameField))
		if err != nil {
			w.Log.Warn("image skipped", "url", rawURL, "err", err)
			continue
		}

		p := w.ItemPath(name)
		ok, err := w.Prepare(p)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if downloaded > 0 {
			if err := w.Sleep(ctx, w.Delay); err != nil {
				return err
			}
		}
		if err := w.download(ctx, rawURL, p); err != nil {
			return err
		}
		downloaded++
	}

	w.Log.Info("images saved", "dir", w.Dir, "count", len(items), "downloaded", downloaded)
	return nil
}

func (w *Writer) download(ctx context.Context, rawURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := w.Doer.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 32*1024))
		return fmt.Errorf("download %s: status=%d", rawURL, resp.StatusCode)
	}

	tmp := dst + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	w.Log.Debug("image saved", "url", rawURL, "path", dst)
	return nil
}

// URLFileName is the last path segment of rawURL, query and fragment
// dropped.
func URLFileName(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	name := repository.SafeName(path.Base(u.Path))
	if u.Path == "" || name == "" || name == "/" {
		return "", fmt.Errorf("no file name in url %q", rawURL)
	}
	return name, nil
}

// FileName reconciles the caller's name with the real extension of the
// image: the caller's base name with the URL's extension. Without a
// caller name the URL file name is used.
func FileName(rawURL, name string) (string, error) {
	urlName, err := URLFileName(rawURL)
	if err != nil {
		return "", err
	}
	name = CleanName(name)
	if name == "" {
		return urlName, nil
	}

	ext := path.Ext(urlName)
	if ext == "" {
		return name, nil
	}
	// only a guessed extension is replaced: "1.5" is a name, "a.png" is not
	if old := path.Ext(name); strings.IndexFunc(old, unicode.IsLetter) >= 0 {
		name = strings.TrimSuffix(name, old)
	}
	if strings.HasSuffix(name, ext) {
		return name, nil
	}
	return name + ext, nil
}

var (
	unsafeChars = regexp.MustCompile(`[^\w\s.-]`)
	dashRuns    = regexp.MustCompile(`[-\s]+`)
)

// CleanName makes name safe to use as a file name.
func CleanName(name string) string {
	name = unsafeChars.ReplaceAllString(strings.TrimSpace(name), "")
	name = dashRuns.ReplaceAllString(name, "-")
	return strings.Trim(name, "-_.")
}

func field(r models.Record, name string) string {
	v, ok := models.Lookup(r, name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(repository.FormatValue(v))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
