package http

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"time"

	"getloanoffer/logger"
)

const indexPage = "index.html"

// SiteHandler serves the marketing pages and the health check.
type SiteHandler struct {
	files fs.FS
	now   func() time.Time
}

func NewSiteHandler(files fs.FS) *SiteHandler {
	return &SiteHandler{files: files, now: time.Now}
}

// Static serves a file from the site root. Directories and unknown paths get
// the index page.
func (h *SiteHandler) Static(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)[1:]
	if name == "" {
		name = indexPage
	}

	info, err := fs.Stat(h.files, name)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to stat static file", "path", name, "error", err)
		}
		name = indexPage
		if _, err := fs.Stat(h.files, name); err != nil {
			respondError(w, http.StatusNotFound, "not found", nil)
			return
		}
	}

	http.ServeFileFS(w, r, h.files, name)
}

func (h *SiteHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": h.now().Format(time.RFC3339),
		"warnings":  logger.TotalWarnings.Load(),
		"errors":    logger.TotalErrors.Load(),
	})
}
