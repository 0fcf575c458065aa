// Package static serves a single-page application: a static asset directory
// under a URL prefix, the index document at "/" and, for every other path,
// either the file at that path or the index document so that client-side
// routes resolve.
package static

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/mpilhlt/dhamps-relay/internal/metrics"
	"github.com/mpilhlt/dhamps-relay/internal/models"

	"go.uber.org/zap"
)

// ErrIndexUnavailable is the message returned when the index document cannot be served.
const ErrIndexUnavailable = "Index document unavailable"

// Options configure the file layout of the SPA.
type Options struct {
	// Root is the directory SPA paths are resolved against.
	Root string
	// Index is the path of the index document below Root.
	Index string
	// StaticDir is mounted under StaticPrefix. It is not resolved against Root.
	StaticDir    string
	StaticPrefix string
}

// Handler serves the SPA paths. It implements http.Handler for the catch-all
// route; Register mounts it together with the static directory.
type Handler struct {
	opts Options
	root http.Dir
	log  *zap.Logger
	m    *metrics.Metrics
}

// New creates the handler. m may be nil.
func New(opts Options, log *zap.Logger, m *metrics.Metrics) *Handler {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Index == "" {
		opts.Index = "index.html"
	}
	if opts.StaticDir == "" {
		opts.StaticDir = "static"
	}
	opts.StaticPrefix = "/" + strings.Trim(opts.StaticPrefix, "/")
	if opts.StaticPrefix == "/" {
		opts.StaticPrefix = "/static"
	}

	h := &Handler{opts: opts, root: http.Dir(opts.Root), log: log, m: m}
	if f, _, ok := h.open("/" + opts.Index); ok {
		f.Close()
	} else {
		log.Warn("index document not found", zap.String("root", opts.Root), zap.String("index", opts.Index))
	}
	return h
}

// Register mounts the static directory and the SPA routes on router.
// Only GET (and thereby HEAD) is routed.
func (h *Handler) Register(router *http.ServeMux) {
	files := http.FileServer(http.FS(noDirFS{http.Dir(h.opts.StaticDir)}))
	router.Handle("GET "+h.opts.StaticPrefix+"/", http.StripPrefix(h.opts.StaticPrefix, h.countFiles(files)))
	router.Handle("GET /", h)
}

// ServeHTTP serves "/" and every path no other route claims.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" || r.URL.Path == "" {
		h.serveIndex(w, r, metrics.SourceIndex)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if !hidden(name) {
		if f, info, ok := h.open(name); ok {
			defer f.Close()
			h.count(metrics.SourceFile)
			http.ServeContent(w, r, info.Name(), info.ModTime(), f)
			return
		}
	}

	h.log.Debug("serving index for unmatched path", zap.String("path", name))
	h.serveIndex(w, r, metrics.SourceFallback)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request, source string) {
	f, info, ok := h.open("/" + h.opts.Index)
	if !ok {
		h.log.Error("index document unavailable", zap.String("root", h.opts.Root), zap.String("index", h.opts.Index))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(models.NewErrorBody(http.StatusInternalServerError, ErrIndexUnavailable))
		return
	}
	defer f.Close()

	h.count(source)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// open returns the regular file name below the root. Directories and
// missing files report !ok.
func (h *Handler) open(name string) (http.File, fs.FileInfo, bool) {
	f, err := h.root.Open(name)
	if err != nil {
		return nil, nil, false
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, false
	}
	return f, info, true
}

func (h *Handler) count(source string) {
	if h.m != nil {
		h.m.StaticResponses.WithLabelValues(source).Inc()
	}
}

func (h *Handler) countFiles(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.count(metrics.SourceFile)
		next.ServeHTTP(w, r)
	})
}

// hidden reports whether any segment of the cleaned path starts with a dot.
func hidden(name string) bool {
	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// noDirFS hides directories, so the static mount never lists them.
type noDirFS struct {
	fsys http.FileSystem
}

func (n noDirFS) Open(name string) (fs.File, error) {
	f, err := n.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}

var _ fs.FS = noDirFS{}
