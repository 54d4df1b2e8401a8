// Package web serves the browser UI and a JSON API over pipeline sessions.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

const cookieName = "lingua_session"

type Options struct {
	SessionTTL time.Duration
	// TempDir holds DOCX exports while they are streamed; empty means os.TempDir.
	TempDir string
}

type Server struct {
	ctrl    pipeline.Controller
	store   *Store
	logger  logger.Logger
	tmpl    *template.Template
	tempDir string
}

// New creates a Server over ctrl
func New(ctrl pipeline.Controller, opts Options, log logger.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		ctrl:    ctrl,
		store:   NewStore(ctrl, opts.SessionTTL),
		logger:  log,
		tmpl:    tmpl,
		tempDir: opts.TempDir,
	}, nil
}

// Store exposes the session store so callers can run its sweeper.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /send", s.handleSendForm)
	mux.HandleFunc("POST /translate", s.handleTranslateForm)
	mux.HandleFunc("POST /summarize", s.handleSummarizeForm)
	mux.HandleFunc("POST /language", s.handleLanguageForm)
	mux.HandleFunc("GET /export.docx", s.handleExport)

	mux.HandleFunc("GET /api/state", s.handleAPIState)
	mux.HandleFunc("GET /api/languages", s.handleAPILanguages)
	mux.HandleFunc("POST /api/send", s.handleAPISend)
	mux.HandleFunc("POST /api/translate", s.handleAPITranslate)
	mux.HandleFunc("POST /api/summarize", s.handleAPISummarize)
	mux.HandleFunc("POST /api/language", s.handleAPILanguage)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return s.logRequests(mux)
}

// session returns the caller's session, creating one (and its cookie) when
// the cookie is missing or expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *pipeline.Session {
	if c, err := r.Cookie(cookieName); err == nil {
		if sess, ok := s.store.Get(c.Value); ok {
			return sess
		}
	}

	id, sess := s.store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug(r.Context(), "New session %s", id)
	return sess
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
