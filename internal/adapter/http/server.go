package adapthttp

import (
	"net/http"
	"time"

	"pokedex/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth  *app.AuthService
	users *app.UserService
	dev   bool
	oidc  *OIDCConfig
}

// New creates a Server wired to the given application services. oidc may
// be nil, in which case the SSO routes respond 404.
func New(auth *app.AuthService, users *app.UserService, dev bool, oidc *OIDCConfig) *Server {
	return &Server{auth: auth, users: users, dev: dev, oidc: oidc}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]any{
			"message":   "Pokedex API up",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	api.Handle("/config", s.optionalAuthMiddleware(http.HandlerFunc(s.handleConfig)))

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/auth/me", s.handleMe)
	protected.HandleFunc("/auth/logout", s.handleLogout)
	protected.HandleFunc("/auth/change-password", s.handleChangePassword)
	protected.HandleFunc("/auth/delete-account", s.handleDeleteAccount)

	protected.HandleFunc("/user/profile", s.handleProfile)
	protected.HandleFunc("/user/stats", s.handleStats)
	protected.HandleFunc("/user/favoritos", s.handleFavorites)
	protected.HandleFunc("/user/favoritos/", s.handleFavoriteByID)
	protected.HandleFunc("/user/historial", s.handleHistory)
	protected.HandleFunc("/", notFound)

	api.Handle("/auth/", s.authMiddleware(protected))
	api.Handle("/user/", s.authMiddleware(protected))
	api.HandleFunc("/", notFound)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.HandleFunc("/", notFound)

	return s.loggingMiddleware(root)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "endpoint not found", nil)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{"sso_enabled": s.oidc != nil}
	if u := userFrom(r); u != nil {
		payload["username"] = u.Username
	}
	writeSuccess(w, http.StatusOK, payload)
}
