package web

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/app"
)

const starsSuffix = "_stars.json"

// watchStars evicts resident engines when a user's stars file changes on
// disk, so edits made by another process (or another Star-Seeker mode)
// are picked up on the next search.
func watchStars(ctx context.Context, dataDir string, a *app.App, logger *slog.Logger) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(dataDir); err != nil {
		return err
	}
	logger.Info("watching stars directory", slog.String("dir", dataDir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			username, ok := usernameFromPath(event.Name)
			if !ok {
				continue
			}
			logger.Info("stars file changed, evicting engine",
				slog.String("username", username),
				slog.String("op", event.Op.String()))
			a.Invalidate(username)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("stars watcher error", slog.String("error", err.Error()))
		}
	}
}

// usernameFromPath extracts the username from a stars file path.
// Temp files from atomic writes do not match.
func usernameFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, starsSuffix) {
		return "", false
	}
	username := strings.TrimSuffix(base, starsSuffix)
	return username, username != ""
}
