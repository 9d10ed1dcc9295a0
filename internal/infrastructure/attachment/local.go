package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// Local хранит вложения на диске под root.
type Local struct {
	root string
	log  *slog.Logger
	now  func() time.Time
}

func NewLocal(root string, log *slog.Logger) *Local {
	return &Local{
		root: root,
		log:  log.With("component", "attachment_local"),
		now:  time.Now,
	}
}

func (l *Local) Store(_ context.Context, dir, originalName string, r io.Reader) (string, error) {
	if err := checkDir(dir); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(l.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	rel := path.Join(dir, NewName(l.now(), originalName))
	full := filepath.Join(l.root, filepath.FromSlash(rel))

	dst, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(full)
		return "", fmt.Errorf("write attachment: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close attachment: %w", err)
	}

	l.log.Debug("attachment stored", "path", rel)

	return rel, nil
}

// Remove удаляет файл. Отсутствующий файл ошибкой не считается.
func (l *Local) Remove(_ context.Context, p string) error {
	if err := checkPath(p); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(p)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove attachment: %w", err)
	}

	return nil
}

func (l *Local) Handler(dir string) http.Handler {
	files := http.FileServer(http.Dir(filepath.Join(l.root, dir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" || strings.HasSuffix(name, "/") || checkPath(name) != nil {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
