package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vbonduro/foodventory/internal/auth"
	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/service"
)

type Server struct {
	items     *service.ItemService
	pantries  *service.PantryService
	users     *service.UserService
	accounts  *auth.Service
	sessions  *auth.Sessions
	gate      *auth.Gate
	templates embed.FS
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(
	items *service.ItemService,
	pantries *service.PantryService,
	users *service.UserService,
	accounts *auth.Service,
	sessions *auth.Sessions,
	gate *auth.Gate,
	tmpl embed.FS,
	logger *slog.Logger,
) *Server {
	s := &Server{
		items:     items,
		pantries:  pantries,
		users:     users,
		accounts:  accounts,
		sessions:  sessions,
		gate:      gate,
		templates: tmpl,
		mux:       http.NewServeMux(),
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"joinedDisplay": func(t time.Time) string { return t.Format("January 2, 2006") },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)

	s.mux.HandleFunc("GET /signup", s.handleSignupPage)
	s.mux.HandleFunc("POST /signup", s.handleSignup)
	s.mux.HandleFunc("GET /login", s.handleLoginPage)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("POST /logout", s.handleLogout)

	s.mux.HandleFunc("GET /users/{username}", s.handleProfile)
	s.mux.HandleFunc("GET /users/{username}/items", s.handleListItems)
	s.mux.HandleFunc("GET /users/{username}/items/new", s.handleNewItem)
	s.mux.HandleFunc("GET /users/{username}/items/{itemID}", s.handleItemDetail)
	s.mux.HandleFunc("GET /users/{username}/items/{itemID}/edit", s.handleEditItem)
	s.mux.HandleFunc("GET /users/{username}/pantries", s.handleListPantries)
	s.mux.HandleFunc("GET /users/{username}/pantries/new", s.handleNewPantry)
	s.mux.HandleFunc("GET /users/{username}/pantries/{pantryID}", s.handlePantryDetail)
	s.mux.HandleFunc("GET /users/{username}/pantries/{pantryID}/edit", s.handleEditPantry)

	s.mux.HandleFunc("POST /resources/item-editor", s.handleItemEditorAction)
	s.mux.HandleFunc("POST /resources/delete-item", s.handleDeleteItemAction)
	s.mux.HandleFunc("POST /resources/pantry-editor", s.handlePantryEditorAction)
	s.mux.HandleFunc("POST /resources/pantry-scan", s.handlePantryScan)

	s.mux.HandleFunc("GET /images/{imageID}", s.handleGetImage)
	s.mux.HandleFunc("POST /settings/profile/photo", s.handleUploadAvatar)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// currentUser resolves the logged-in user for nav rendering, or nil.
func (s *Server) currentUser(r *http.Request) *domain.User {
	userID := s.gate.UserID(r)
	if userID == "" {
		return nil
	}
	user, err := s.users.ByID(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to load current user", "user_id", userID, "error", err)
		return nil
	}
	return user
}

// renderPage parses and executes a full-page template set with status 200.
func (s *Server) renderPage(w http.ResponseWriter, data map[string]any, files ...string) error {
	return s.renderPageStatus(w, http.StatusOK, data, files...)
}

// renderPageStatus parses and executes a full-page template set, writing the
// given status code before the body.
func (s *Server) renderPageStatus(w http.ResponseWriter, status int, data map[string]any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, append([]string{"base.html", "partials/error_list.html"}, files...)...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "base", data)
}

// parseUsername extracts the {username} path variable.
func parseUsername(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("username"))
}
