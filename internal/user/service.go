package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/access"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines profile operations.
type Service interface {
	CreateProfile(ctx context.Context, p NewProfile) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetBySession(ctx context.Context, s *session.Session) (*User, error)
	EnsureFirebaseProfile(ctx context.Context, firebaseUID, email, fullName string) (*User, bool, error)
	RoleOf(ctx context.Context, s *session.Session) (access.Role, error)
	RecordLogin(ctx context.Context, id uuid.UUID)
	UpdateProfile(ctx context.Context, s *session.Session, req UpdateProfileRequest) (*User, error)

	AdminListUsers(ctx context.Context, q ListQuery) ([]User, *common.Pagination, error)
	AdminSetApproval(ctx context.Context, id uuid.UUID, approved bool) (*User, error)
	AdminSetRole(ctx context.Context, actor *session.Session, id uuid.UUID, role access.Role) (*User, error)
	CountPendingApproval(ctx context.Context) (int64, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("UserService"),
	}
}

// CreateProfile stores a new customer profile. New profiles always start
// as unapproved customers; only an administrator promotes or approves them.
func (s *ServiceImplementation) CreateProfile(ctx context.Context, p NewProfile) (*User, error) {
	email := normalizeEmail(p.Email)
	if email == "" {
		return nil, common.ErrBadRequest.WithDetails("Email is required.")
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrConflict.WithDetails("User with this email already exists.")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	u := &User{
		Email:        email,
		PasswordHash: p.PasswordHash,
		FirebaseUID:  p.FirebaseUID,
		AuthProvider: p.Provider,
		FullName:     strings.TrimSpace(p.FullName),
		Company:      strings.TrimSpace(p.Company),
		Phone:        strings.TrimSpace(p.Phone),
		Role:         access.RoleCustomer,
		IsApproved:   false,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("Failed to create profile", zap.Error(err), zap.String("email", email))
		return nil, err
	}
	s.logger.Info("Profile created", zap.String("userID", u.ID.String()), zap.String("provider", string(u.AuthProvider)))
	return u, nil
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// GetBySession loads the profile behind a session: Firebase sessions by
// UID, password sessions by profile id.
func (s *ServiceImplementation) GetBySession(ctx context.Context, sess *session.Session) (*User, error) {
	if sess == nil {
		return nil, common.ErrUnauthorized
	}
	if sess.Provider == session.ProviderFirebase {
		return s.repo.FindByFirebaseUID(ctx, sess.Subject)
	}
	id, err := uuid.Parse(sess.Subject)
	if err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Malformed session subject.")
	}
	return s.repo.FindByID(ctx, id)
}

// EnsureFirebaseProfile returns the profile linked to firebaseUID, linking an
// existing profile with the same email or creating a new one. The boolean
// reports whether a profile was created.
func (s *ServiceImplementation) EnsureFirebaseProfile(ctx context.Context, firebaseUID, email, fullName string) (*User, bool, error) {
	u, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			uid := firebaseUID
			existing.FirebaseUID = &uid
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, false, err
			}
			s.logger.Info("Linked Firebase account to existing profile", zap.String("userID", existing.ID.String()))
			return existing, false, nil
		case !errors.Is(err, common.ErrNotFound):
			return nil, false, err
		}
	}

	uid := firebaseUID
	created, err := s.CreateProfile(ctx, NewProfile{
		Email:       email,
		FirebaseUID: &uid,
		Provider:    session.ProviderFirebase,
		FullName:    fullName,
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// RoleOf reads the role of the profile behind a session with a single query.
func (s *ServiceImplementation) RoleOf(ctx context.Context, sess *session.Session) (access.Role, error) {
	if sess == nil {
		return access.RoleCustomer, common.ErrUnauthorized
	}
	if sess.Provider == session.ProviderFirebase {
		return s.repo.RoleByFirebaseUID(ctx, sess.Subject)
	}
	id, err := uuid.Parse(sess.Subject)
	if err != nil {
		return access.RoleCustomer, fmt.Errorf("malformed session subject %q: %w", sess.Subject, err)
	}
	return s.repo.RoleByID(ctx, id)
}

// RecordLogin stamps the last login time. Failures are logged only.
func (s *ServiceImplementation) RecordLogin(ctx context.Context, id uuid.UUID) {
	if err := s.repo.TouchLastLogin(ctx, id, time.Now().UTC()); err != nil {
		s.logger.Warn("Failed to record last login", zap.Error(err), zap.String("userID", id.String()))
	}
}

func (s *ServiceImplementation) UpdateProfile(ctx context.Context, sess *session.Session, req UpdateProfileRequest) (*User, error) {
	u, err := s.GetBySession(ctx, sess)
	if err != nil {
		return nil, err
	}
	u.FullName = strings.TrimSpace(req.FullName)
	u.Company = strings.TrimSpace(req.Company)
	u.Phone = strings.TrimSpace(req.Phone)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *ServiceImplementation) AdminListUsers(ctx context.Context, q ListQuery) ([]User, *common.Pagination, error) {
	if q.Page <= 0 {
		q.Page = common.DefaultPage
	}
	if q.PageSize <= 0 || q.PageSize > common.MaxPageSize {
		q.PageSize = common.DefaultPageSize
	}
	return s.repo.List(ctx, q)
}

func (s *ServiceImplementation) AdminSetApproval(ctx context.Context, id uuid.UUID, approved bool) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsApproved = approved
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("Profile approval changed", zap.String("userID", id.String()), zap.Bool("approved", approved))
	return u, nil
}

// AdminSetRole changes a profile's role. Administrators cannot demote
// themselves, which keeps at least the acting admin in place.
func (s *ServiceImplementation) AdminSetRole(ctx context.Context, actor *session.Session, id uuid.UUID, role access.Role) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != nil && u.Role.IsAdmin() && !role.IsAdmin() && s.isActor(actor, u) {
		return nil, common.ErrConflict.WithDetails("Administrators cannot remove their own admin role.")
	}
	u.Role = role
	if role.IsAdmin() {
		u.IsApproved = true
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("Profile role changed", zap.String("userID", id.String()), zap.Stringer("role", role))
	return u, nil
}

func (s *ServiceImplementation) isActor(actor *session.Session, u *User) bool {
	if actor.Provider == session.ProviderFirebase {
		return u.FirebaseUID != nil && *u.FirebaseUID == actor.Subject
	}
	return u.ID.String() == actor.Subject
}

func (s *ServiceImplementation) CountPendingApproval(ctx context.Context) (int64, error) {
	return s.repo.CountPendingApproval(ctx)
}
