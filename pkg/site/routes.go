package site

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Routes registers the site's pages on router.
func (s *Site) Routes(router *mux.Router) {
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/{slug}/", s.handlePost).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/{slug}", redirectTrailingSlash).Methods(http.MethodGet, http.MethodHead)
	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// Handler returns a router serving the site.
func (s *Site) Handler() http.Handler {
	router := mux.NewRouter()
	s.Routes(router)
	return router
}

func (s *Site) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	out, err := s.RenderIndex(r.Context())
	s.write(w, r, out, err, start)
}

func (s *Site) handlePost(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	out, err := s.RenderPost(r.Context(), mux.Vars(r)["slug"])
	s.write(w, r, out, err, start)
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, "", StatusError{Code: http.StatusNotFound}, time.Now())
}

func redirectTrailingSlash(w http.ResponseWriter, r *http.Request) {
	target := *r.URL
	target.Path += "/"
	http.Redirect(w, r, target.String(), http.StatusMovedPermanently)
}

func (s *Site) write(w http.ResponseWriter, r *http.Request, body string, err error, start time.Time) {
	status := http.StatusOK
	if err != nil {
		status = statusCode(err)
		body = ""
		if status == http.StatusNotFound {
			if page, renderErr := s.RenderNotFound(r.Context()); renderErr == nil {
				body = page
			}
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("render page", "path", r.URL.Path, "error", err)
		}
		if body == "" {
			http.Error(w, http.StatusText(status), status)
			s.logRequest(r, status, start)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte(body))
	}
	s.logRequest(r, status, start)
}

func (s *Site) logRequest(r *http.Request, status int, start time.Time) {
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"duration", time.Since(start),
	)
}
