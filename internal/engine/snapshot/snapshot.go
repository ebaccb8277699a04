// Package snapshot writes rendered frames to disk as PNG or WebP.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// ErrUnknownFormat is returned for an image format other than png or webp.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	WebP
)

// ParseFormat accepts "png" or "webp", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) String() string {
	if f == WebP {
		return "webp"
	}
	return "png"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// Encode writes img to w in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	}
	return ErrUnknownFormat
}

const timestampLayout = "2006-01-02_15-04-05"

// Writer saves frames under a directory with timestamped names.
type Writer struct {
	dir    string
	prefix string
	format Format
	now    func() time.Time
}

// NewWriter creates a writer. An empty dir writes to the working directory.
func NewWriter(dir, prefix string, format Format) *Writer {
	return &Writer{dir: dir, prefix: prefix, format: format, now: time.Now}
}

// Format returns the output encoding.
func (w *Writer) Format() Format {
	return w.format
}

// Filename returns the path the next Save would use if nothing exists there yet.
func (w *Writer) Filename() string {
	name := fmt.Sprintf("%s_%s%s", w.prefix, w.now().Format(timestampLayout), w.format.Ext())
	return filepath.Join(w.dir, name)
}

// Save encodes img to a new timestamped file and returns its path. Names
// taken within the same second get a numeric suffix.
func (w *Writer) Save(img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := w.Filename()
	base := strings.TrimSuffix(path, w.format.Ext())
	for i := 2; fileExists(path); i++ {
		path = fmt.Sprintf("%s_%d%s", base, i, w.format.Ext())
	}

	if err := WriteFile(path, img, w.format); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile encodes img to path, replacing any existing file.
func WriteFile(path string, img image.Image, f Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return file.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
