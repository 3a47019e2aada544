package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Profiles is the part of the user service sign-in depends on.
type Profiles interface {
	CreateProfile(ctx context.Context, p user.NewProfile) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	EnsureFirebaseProfile(ctx context.Context, firebaseUID, email, fullName string) (*user.User, bool, error)
	RecordLogin(ctx context.Context, id uuid.UUID)
}

// FirebaseSession is a Firebase session cookie ready to be set.
type FirebaseSession struct {
	Cookie    string
	ExpiresIn time.Duration
}

// Service defines sign-in, sign-up and sign-out.
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*user.User, *TokenPair, error)
	SignIn(ctx context.Context, req SignInRequest, requireAdmin bool) (*user.User, *TokenPair, error)
	SignInWithFirebase(ctx context.Context, idToken string) (*user.User, *FirebaseSession, error)
	SignOut(ctx context.Context, sess *session.Session, refreshToken string, everywhere bool) error
	FirebaseEnabled() bool
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	profiles     Profiles
	sessions     *SessionManager
	firebase     FirebaseAuth
	cookieExpiry time.Duration
	bcryptCost   int
	logger       *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

var errInvalidCredentials = common.ErrUnauthorized.WithDetails("Invalid email or password.")

// NewService creates a new auth service. firebase may be nil.
func NewService(profiles Profiles, sessions *SessionManager, firebase FirebaseAuth, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		profiles:     profiles,
		sessions:     sessions,
		firebase:     firebase,
		cookieExpiry: cfg.FirebaseSessionCookieExpiry,
		bcryptCost:   bcrypt.DefaultCost,
		logger:       logger.Named("AuthService"),
	}
}

func (s *ServiceImplementation) FirebaseEnabled() bool {
	return s.firebase != nil
}

// SignUp creates a customer profile with a password and signs it in.
func (s *ServiceImplementation) SignUp(ctx context.Context, req SignUpRequest) (*user.User, *TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not process password.")
	}
	hashStr := string(hash)

	u, err := s.profiles.CreateProfile(ctx, user.NewProfile{
		Email:        req.Email,
		PasswordHash: &hashStr,
		Provider:     session.ProviderPassword,
		FullName:     req.FullName,
		Company:      req.Company,
		Phone:        req.Phone,
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.sessions.Issue(ctx, u.ID.String(), u.Email)
	if err != nil {
		s.logger.Error("Failed to issue session after sign-up", zap.Error(err), zap.String("userID", u.ID.String()))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not start a session.")
	}
	s.profiles.RecordLogin(ctx, u.ID)
	return u, pair, nil
}

// SignIn checks a password. With requireAdmin, non-admin profiles are
// refused with ErrForbidden before any token is issued.
func (s *ServiceImplementation) SignIn(ctx context.Context, req SignInRequest, requireAdmin bool) (*user.User, *TokenPair, error) {
	u, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, errInvalidCredentials
		}
		return nil, nil, err
	}
	if u.PasswordHash == nil {
		return nil, nil, common.ErrUnauthorized.WithDetails("This account signs in with Google.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("Failed sign-in attempt", zap.String("userID", u.ID.String()))
		return nil, nil, errInvalidCredentials
	}
	if requireAdmin && !u.Role.IsAdmin() {
		s.logger.Warn("Non-admin attempted back-office sign-in", zap.String("userID", u.ID.String()))
		return nil, nil, common.ErrForbidden.WithDetails("This account has no back-office access.")
	}

	pair, err := s.sessions.Issue(ctx, u.ID.String(), u.Email)
	if err != nil {
		s.logger.Error("Failed to issue session", zap.Error(err), zap.String("userID", u.ID.String()))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not start a session.")
	}
	s.profiles.RecordLogin(ctx, u.ID)
	return u, pair, nil
}

// SignInWithFirebase exchanges a Firebase ID token for a session cookie and
// makes sure a profile exists for the Firebase user.
func (s *ServiceImplementation) SignInWithFirebase(ctx context.Context, idToken string) (*user.User, *FirebaseSession, error) {
	if s.firebase == nil {
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Firebase sign-in is not configured.")
	}
	id, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid Firebase ID token.")
	}
	cookie, err := s.firebase.SessionCookie(ctx, idToken, s.cookieExpiry)
	if err != nil {
		return nil, nil, common.ErrUnauthorized.WithDetails("Could not create a Firebase session.")
	}

	u, created, err := s.profiles.EnsureFirebaseProfile(ctx, id.UID, id.Email, id.Name)
	if err != nil {
		return nil, nil, err
	}
	if created {
		s.logger.Info("Profile created from Firebase sign-in", zap.String("userID", u.ID.String()))
	}
	s.profiles.RecordLogin(ctx, u.ID)
	return u, &FirebaseSession{Cookie: cookie, ExpiresIn: s.cookieExpiry}, nil
}

// SignOut revokes the session server-side. Cookies are the handler's job.
func (s *ServiceImplementation) SignOut(ctx context.Context, sess *session.Session, refreshToken string, everywhere bool) error {
	if err := s.sessions.Revoke(ctx, sess, refreshToken, everywhere); err != nil {
		s.logger.Error("Failed to revoke session", zap.Error(err))
		return common.ErrServiceUnavailable.WithDetails("Could not end the session.")
	}
	return nil
}
