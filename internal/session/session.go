// Package session defines the resolved identity of a request and carries it
// through context.Context from the edge middleware to handlers.
package session

import (
	"context"
	"time"
)

// Provider identifies who issued the session.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderFirebase Provider = "firebase"
)

// Session is a resolved, unexpired identity. Subject is the profile id for
// password sessions and the Firebase UID for Firebase sessions.
type Session struct {
	Subject   string
	Email     string
	Provider  Provider
	ExpiresAt time.Time
}

// ViewerID is the identifier handed to catalog reads. It is nil for an
// absent session.
func (s *Session) ViewerID() *string {
	if s == nil || s.Subject == "" {
		return nil
	}
	id := s.Subject
	return &id
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by NewContext, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// ViewerIDFromContext is FromContext followed by ViewerID.
func ViewerIDFromContext(ctx context.Context) *string {
	s, _ := FromContext(ctx)
	return s.ViewerID()
}
