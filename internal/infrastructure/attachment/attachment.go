// Package attachment хранит файлы, приложенные к записям, в локальном каталоге или в S3.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

var ErrInvalidPath = errors.New("invalid attachment path")

type Options struct {
	Driver string
	// Root - каталог для DriverLocal
	Root string
	S3   S3Options
}

type S3Options struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PresignTTL   time.Duration
}

// Storage сохраняет и удаляет вложения. Пути относительные вида "<dir>/<name>".
type Storage interface {
	Store(ctx context.Context, dir, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
	// Handler отдает файлы каталога dir. Путь запроса - имя файла внутри dir.
	Handler(dir string) http.Handler
}

// New выбирает драйвер по opts.Driver.
func New(ctx context.Context, opts Options, log *slog.Logger) (Storage, error) {
	switch opts.Driver {
	case DriverLocal:
		return NewLocal(opts.Root, log), nil
	case DriverS3:
		return NewS3(ctx, opts.S3, log)
	default:
		return nil, fmt.Errorf("unknown files driver %q", opts.Driver)
	}
}

// NewName строит имя "<unix millis>-<8 hex>-<original>" так, чтобы одновременные загрузки не сталкивались.
func NewName(now time.Time, originalName string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), token, sanitize(originalName))
}

func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

func checkDir(dir string) error {
	if strings.Contains(dir, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, dir)
	}
	return checkPath(dir)
}

// checkPath пропускает только относительные пути без сегментов "." и "..".
// Точки внутри имени ("my..photo.png") допустимы.
func checkPath(p string) error {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return nil
}
