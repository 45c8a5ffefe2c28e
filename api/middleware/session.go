package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/yessgo/coin-terminal/api/responses"
	"github.com/yessgo/coin-terminal/internal/terminal"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
	"github.com/yessgo/coin-terminal/pkg/logger"
)

type sessionCtxKey struct{}

// SessionResolver resolves a bearer token to a live terminal session.
type SessionResolver interface {
	Get(token string) (*terminal.Session, error)
}

// Session authenticates terminal requests by bearer token and stashes
// the resolved session in the request context.
func Session(resolver SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := BearerToken(r)
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session token required"))
				return
			}

			session, err := resolver.Get(token)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			if logg != nil {
				ctx = logg.WithPartnerID(ctx, session.PartnerID())
			}
			ctx = WithSession(ctx, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, session *terminal.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionFromContext pulls the authenticated session out of the context.
func SessionFromContext(ctx context.Context) (*terminal.Session, error) {
	session, ok := ctx.Value(sessionCtxKey{}).(*terminal.Session)
	if !ok || session == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session in context")
	}
	return session, nil
}
