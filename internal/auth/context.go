package auth

import (
	"context"
	"errors"
)

type sessionKey struct{}

var ErrNoSession = errors.New("auth: no session in context")

// WithSession returns a copy of ctx carrying the authenticated session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session placed by the auth middleware.
func SessionFromContext(ctx context.Context) (*Session, error) {
	session, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || session == nil {
		return nil, ErrNoSession
	}
	return session, nil
}
