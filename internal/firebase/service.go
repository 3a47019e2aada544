// Package firebase wraps the Firebase Admin SDK calls used for federated
// sign-in: ID token verification and session cookies.
package firebase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Identity is what a verified Firebase token or session cookie says about
// the caller.
type Identity struct {
	UID       string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// Service provides the Firebase authentication calls the backend needs.
type Service struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewService initializes the Firebase Admin SDK. It returns a nil service
// and no error when Firebase is not configured.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	logger = logger.Named("Firebase")
	if !cfg.FirebaseEnabled() {
		logger.Info("Firebase service account key path is not configured; Firebase sign-in disabled")
		return nil, nil
	}

	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var conf *firebase.Config
	if cfg.FirebaseProjectID != "" {
		conf = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}
	app, err := firebase.NewApp(context.Background(), conf, opt)
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{
		authClient: authClient,
		logger:     logger,
	}, nil
}

// VerifyIDToken verifies a Firebase ID token issued to the browser client.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}
	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}
	return identityFromToken(token), nil
}

// SessionCookie exchanges a fresh ID token for a session cookie valid for
// expiresIn.
func (s *Service) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	cookie, err := s.authClient.SessionCookie(ctx, idToken, expiresIn)
	if err != nil {
		s.logger.Warn("Failed to create Firebase session cookie", zap.Error(err))
		return "", fmt.Errorf("failed to create session cookie: %w", err)
	}
	return cookie, nil
}

// VerifySessionCookie verifies a session cookie and rejects revoked ones.
func (s *Service) VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error) {
	token, err := s.authClient.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		s.logger.Debug("Firebase session cookie rejected", zap.Error(err))
		return nil, fmt.Errorf("invalid session cookie: %w", err)
	}
	return identityFromToken(token), nil
}

// RevokeRefreshTokens revokes all refresh tokens, and with them all session
// cookies, of a user.
func (s *Service) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Revoked Firebase refresh tokens", zap.String("uid", uid))
	return nil
}

func identityFromToken(token *auth.Token) *Identity {
	id := &Identity{
		UID:       token.UID,
		ExpiresAt: time.Unix(token.Expires, 0),
	}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}
	return id
}
