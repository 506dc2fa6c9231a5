package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/httpx"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
)

const VisitorCookie = "quiz_visitor"

type visitorKey struct{}

// Visitor scopes the request to one visitor, the server-side stand-in for
// the browser's origin-scoped storage. A visitor without a valid cookie
// gets a fresh id.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(VisitorCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}

		if id == "" {
			fresh, err := uuid.NewRandom()
			if err != nil {
				httpx.LogInternalError(w, r, "visitor.new_id", err)
				return
			}
			id = fresh.String()
			log.Debugf("visitor.new: %s", id)
			http.SetCookie(w, &http.Cookie{
				Path:     "/",
				Name:     VisitorCookie,
				Value:    id,
				MaxAge:   60 * 60 * 24 * 365,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, id)))
	})
}

// VisitorID returns the id set by Visitor, or "" outside of it.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
