package auth

import (
	"context"
	"net/http"

	"github.com/vbonduro/foodventory/internal/domain"
)

// userResolver is the subset of store.UserStore that Gate requires.
type userResolver interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Gate resolves the authenticated user for a request. A token is only
// accepted if it verifies and its subject still names an existing user.
type Gate struct {
	sessions *Sessions
	users    userResolver
}

func NewGate(sessions *Sessions, users userResolver) *Gate {
	return &Gate{sessions: sessions, users: users}
}

// UserID returns the authenticated user's id, or "" when the request carries
// no valid session.
func (g *Gate) UserID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}

	userID, err := g.sessions.Verify(cookie.Value)
	if err != nil {
		return ""
	}

	user, err := g.users.GetByID(r.Context(), userID)
	if err != nil || user == nil {
		return ""
	}
	return user.ID
}

// RequireUserID resolves the authenticated user or redirects to /login.
// The second return is false when the caller must stop handling the request.
func (g *Gate) RequireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := g.UserID(r)
	if userID == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return "", false
	}
	return userID, true
}
