package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/firebase"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"go.uber.org/zap"
)

// FirebaseAuth is the part of the Firebase Admin SDK the backend relies on.
type FirebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebase.Identity, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*firebase.Identity, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// ProvideFirebaseAuth turns a possibly nil Firebase service into a possibly
// nil FirebaseAuth, keeping the nil check in callers meaningful.
func ProvideFirebaseAuth(svc *firebase.Service) FirebaseAuth {
	if svc == nil {
		return nil
	}
	return svc
}

// Credentials are the raw session cookies of a request.
type Credentials struct {
	AccessToken     string
	RefreshToken    string
	FirebaseSession string
}

// Empty reports whether no credential was presented.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == "" && c.FirebaseSession == ""
}

// Source names the credential a session was resolved from.
type Source string

const (
	SourceAccess    Source = "access"
	SourceRefresh   Source = "refresh"
	SourceFirebase  Source = "firebase"
	SourceAnonymous Source = "anonymous"
)

// Resolution is the outcome of resolving the credentials of one request.
type Resolution struct {
	// Session is nil for an anonymous caller.
	Session *session.Session
	// Refreshed is set when the refresh token was rotated; its cookies must
	// reach the client whatever the response is.
	Refreshed *TokenPair
	// Stale is set when credentials were presented but none was usable, so
	// the client's cookies should be cleared.
	Stale  bool
	Source Source
}

// RefreshReuseGrace is how long a rotated refresh token keeps resolving to
// its session. Parallel requests of one page load all carry the same
// expired pair and only one of them wins the rotation.
const RefreshReuseGrace = 30 * time.Second

// SessionManager resolves and issues sessions.
type SessionManager struct {
	tokens     TokenService
	store      RefreshStore
	firebase   FirebaseAuth
	logger     *zap.Logger
	reuseGrace time.Duration
}

// NewSessionManager creates a session manager. firebase may be nil.
func NewSessionManager(tokens TokenService, store RefreshStore, firebase FirebaseAuth, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		tokens:     tokens,
		store:      store,
		firebase:   firebase,
		logger:     logger.Named("SessionManager"),
		reuseGrace: RefreshReuseGrace,
	}
}

// Resolve turns request credentials into a session. It tries, in order, the
// access token, the refresh token (rotating it), and the Firebase session
// cookie. Failures are never returned: the caller is then anonymous.
func (m *SessionManager) Resolve(ctx context.Context, creds Credentials) Resolution {
	if creds.Empty() {
		return Resolution{Source: SourceAnonymous}
	}

	if creds.AccessToken != "" {
		if claims, err := m.tokens.ParseAccessToken(creds.AccessToken); err == nil {
			return Resolution{Session: passwordSession(claims), Source: SourceAccess}
		}
	}

	transient := false
	if creds.RefreshToken != "" {
		res, err := m.refresh(ctx, creds.RefreshToken)
		if err == nil && res != nil {
			return *res
		}
		if err != nil {
			// The store could not be asked; the token may still be good.
			m.logger.Warn("Refresh token store unavailable", zap.Error(err))
			transient = true
		}
	}

	if creds.FirebaseSession != "" && m.firebase != nil {
		if id, err := m.firebase.VerifySessionCookie(ctx, creds.FirebaseSession); err == nil {
			return Resolution{
				Session: &session.Session{
					Subject:   id.UID,
					Email:     id.Email,
					Provider:  session.ProviderFirebase,
					ExpiresAt: id.ExpiresAt,
				},
				Source: SourceFirebase,
			}
		}
	}

	return Resolution{Stale: !transient, Source: SourceAnonymous}
}

// refresh rotates a refresh token. A nil resolution with a nil error means
// the token is invalid, revoked or reused after the grace period.
func (m *SessionManager) refresh(ctx context.Context, token string) (*Resolution, error) {
	claims, err := m.tokens.ParseRefreshToken(token)
	if err != nil {
		return nil, nil
	}
	pair, err := m.tokens.IssuePair(claims.Subject, claims.Email)
	if err != nil {
		return nil, err
	}
	rotated, err := m.store.Rotate(ctx, claims.Subject, claims.ID, pair.RefreshID, time.Until(pair.RefreshExpiresAt), m.reuseGrace)
	if err != nil {
		return nil, err
	}
	if rotated {
		return &Resolution{
			Session: &session.Session{
				Subject:   claims.Subject,
				Email:     claims.Email,
				Provider:  session.ProviderPassword,
				ExpiresAt: pair.AccessExpiresAt,
			},
			Refreshed: pair,
			Source:    SourceRefresh,
		}, nil
	}

	recent, err := m.store.RotatedRecently(ctx, claims.Subject, claims.ID)
	if err != nil {
		return nil, err
	}
	if !recent {
		m.logger.Info("Refresh token reuse or revoked token presented", zap.String("subject", claims.Subject))
		return nil, nil
	}
	// Lost the race to a concurrent rotation; the winner's response carries
	// the new cookies, so this one leaves them alone.
	m.logger.Debug("Refresh token used within rotation grace", zap.String("subject", claims.Subject))
	return &Resolution{Session: passwordSession(claims), Source: SourceRefresh}, nil
}

// Issue creates a token pair for a password session and stores its
// refresh token.
func (m *SessionManager) Issue(ctx context.Context, subject, email string) (*TokenPair, error) {
	pair, err := m.tokens.IssuePair(subject, email)
	if err != nil {
		return nil, err
	}
	ttl := time.Until(pair.RefreshExpiresAt)
	if err := m.store.Save(ctx, subject, pair.RefreshID, ttl); err != nil {
		return nil, fmt.Errorf("issuing session for %s: %w", subject, err)
	}
	return pair, nil
}

// Revoke ends a session. For password sessions the presented refresh
// token is deleted, or every refresh token of the subject when everywhere
// is set. Firebase sessions are revoked at Firebase.
func (m *SessionManager) Revoke(ctx context.Context, sess *session.Session, refreshToken string, everywhere bool) error {
	if sess == nil {
		return nil
	}
	if sess.Provider == session.ProviderFirebase {
		if m.firebase == nil {
			return nil
		}
		return m.firebase.RevokeRefreshTokens(ctx, sess.Subject)
	}

	if everywhere {
		return m.store.RevokeAll(ctx, sess.Subject)
	}
	if refreshToken == "" {
		return nil
	}
	claims, err := m.tokens.ParseRefreshToken(refreshToken)
	if err != nil || claims.Subject != sess.Subject {
		return nil
	}
	return m.store.Revoke(ctx, claims.Subject, claims.ID)
}

func passwordSession(claims *Claims) *session.Session {
	s := &session.Session{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Provider: session.ProviderPassword,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}
