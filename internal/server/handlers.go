package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/shared"
	"github.com/desertthunder/songsite/internal/tasks"
	"github.com/desertthunder/songsite/internal/web"
)

const popularLimit = 10

// IndexHandler renders the search page for `GET /?q=`.
type IndexHandler struct {
	store    *catalog.Store
	resolver *tasks.Resolver
	renderer *web.Renderer
	logger   *log.Logger
}

func (h *IndexHandler) Routes() []string {
	return []string{"/{$}"}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// HEAD never searches, so it cannot call the remote provider or count hits.
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		return
	}

	q := r.URL.Query().Get("q")

	page := web.Page{
		Query:   q,
		Mode:    h.resolver.Mode(),
		Results: h.resolver.Search(r.Context(), q),
		Songs:   h.store.Snapshot().Sorted(),
		Notice:  noticeText(r.URL.Query().Get("notice")),
	}
	if h.resolver.TracksPopularity() {
		page.Popular = h.store.Popular(popularLimit)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page); err != nil {
		h.logger.Error("render failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func noticeText(code string) string {
	switch code {
	case "reset":
		return "Catalog and downloads cleared."
	case "rebuilt":
		return "Catalog rebuilt."
	default:
		return ""
	}
}

// FileHandler serves catalog files by key, either as a whole-file attachment or inline (with range support) for the
// audio player.
//
// Only paths recorded in the catalog are ever opened; the key is never joined onto a filesystem path.
type FileHandler struct {
	store      *catalog.Store
	attachment bool
	logger     *log.Logger
}

func (h *FileHandler) Routes() []string {
	if h.attachment {
		return []string{"/download/{key}"}
	}
	return []string{"/stream/{key}"}
}

func (h *FileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	song, err := h.store.Resolve(key)
	if err != nil {
		h.logger.Debug("file lookup failed", "key", key, "error", err)
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(song.Path)
	if err != nil {
		h.logger.Warn("failed to open song", "key", key, "path", song.Path, "error", err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	name := filepath.Base(song.Path)
	w.Header().Set("Content-Type", contentType(name))

	if !h.attachment {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": name}))
		http.ServeContent(w, r, name, info.ModTime(), f)
		return
	}

	// Downloads are always the whole file.
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Debug("download interrupted", "key", key, "error", err)
	}
}

var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
}

func contentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := audioContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// AdminHandler serves the secret-gated `POST /reset` and `POST /rebuild`.
//
// The admin_key form field must equal the configured secret. With no secret configured both routes answer 403 for
// every request, including one with an empty admin_key.
type AdminHandler struct {
	store        *catalog.Store
	secret       string
	downloadsDir string
	logger       *log.Logger
}

func (h *AdminHandler) Routes() []string {
	return []string{"/reset", "/rebuild"}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	credential := r.PostFormValue("admin_key")

	var (
		err    error
		notice string
	)
	switch r.URL.Path {
	case "/reset":
		_, err = tasks.Reset(h.store, h.downloadsDir, h.secret, credential, h.logger)
		notice = "reset"
	case "/rebuild":
		var n int
		n, err = tasks.Rebuild(h.store, h.secret, credential)
		if err == nil {
			h.logger.Info("catalog rebuilt", "songs", n)
		}
		notice = "rebuilt"
	default:
		http.NotFound(w, r)
		return
	}

	switch {
	case errors.Is(err, shared.ErrForbidden):
		h.logger.Warn("admin credential rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, shared.ErrCatalogUnavailable):
		h.logger.Error("rebuild failed", "error", err)
		http.Error(w, "Songs directory unavailable", http.StatusServiceUnavailable)
	case err != nil:
		h.logger.Error("admin operation failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/?notice="+notice, http.StatusSeeOther)
	}
}

// HealthStatus is the `GET /health` response body.
type HealthStatus struct {
	Status  string `json:"status"`
	Mode    string `json:"mode"`
	Songs   int    `json:"songs"`
	Popular int    `json:"popular"`
}

// HealthHandler reports catalog size and resolver mode.
type HealthHandler struct {
	store    *catalog.Store
	resolver *tasks.Resolver
}

func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:  "ok",
		Mode:    h.resolver.Mode(),
		Songs:   h.store.Len(),
		Popular: len(h.store.Popular(0)),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(status)
}
