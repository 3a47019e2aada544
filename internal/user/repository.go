package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/access"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	Update(ctx context.Context, user *User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	RoleByID(ctx context.Context, id uuid.UUID) (access.Role, error)
	RoleByFirebaseUID(ctx context.Context, firebaseUID string) (access.Role, error)
	List(ctx context.Context, q ListQuery) ([]User, *common.Pagination, error)
	CountPendingApproval(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = normalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("User with this email already exists.")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormRepository) findOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found.")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "email = ?", normalizeEmail(email))
}

func (r *gormRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	return r.findOne(ctx, "firebase_uid = ?", firebaseUID)
}

func (r *gormRepository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func (r *gormRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to record login for user %s: %w", id, err)
	}
	return nil
}

// roleBy reads only the role column, the single query the edge makes per
// guarded request.
func (r *gormRepository) roleBy(ctx context.Context, query string, arg interface{}) (access.Role, error) {
	var row struct {
		Role access.Role
	}
	err := r.db.WithContext(ctx).Model(&User{}).Select("role").Where(query, arg).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.RoleCustomer, common.ErrNotFound.WithDetails("User not found.")
		}
		return access.RoleCustomer, fmt.Errorf("failed to read role: %w", err)
	}
	return row.Role, nil
}

func (r *gormRepository) RoleByID(ctx context.Context, id uuid.UUID) (access.Role, error) {
	return r.roleBy(ctx, "id = ?", id)
}

func (r *gormRepository) RoleByFirebaseUID(ctx context.Context, firebaseUID string) (access.Role, error) {
	return r.roleBy(ctx, "firebase_uid = ?", firebaseUID)
}

func (r *gormRepository) List(ctx context.Context, q ListQuery) ([]User, *common.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&User{})
	if q.Role != nil {
		query = query.Where("role = ?", *q.Role)
	}
	if q.Approved != nil {
		query = query.Where("is_approved = ?", *q.Approved)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(company) LIKE ?", like, like, like)
	}

	// A new session lets the count and the page query share the filters.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting users failed: %w", err)
	}

	var users []User
	err := query.Order("created_at DESC").
		Limit(q.PageSize).
		Offset(common.Offset(q.Page, q.PageSize)).
		Find(&users).Error
	if err != nil {
		return nil, nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, common.NewPagination(total, q.Page, q.PageSize), nil
}

func (r *gormRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("role = ? AND is_approved = ?", access.RoleCustomer, false).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("counting pending users failed: %w", err)
	}
	return total, nil
}
