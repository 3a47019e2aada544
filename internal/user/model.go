package user

import (
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/access"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/google/uuid"
)

// User is the profile record of a customer or administrator. Profiles are
// created at sign-up and never deleted.
type User struct {
	common.BaseModel
	Email        string           `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash *string          `gorm:"type:varchar(255)"`
	FirebaseUID  *string          `gorm:"type:varchar(128);uniqueIndex"`
	AuthProvider session.Provider `gorm:"type:varchar(20);not null"`
	FullName     string           `gorm:"type:varchar(150)"`
	Company      string           `gorm:"type:varchar(150)"`
	Phone        string           `gorm:"type:varchar(30)"`
	Role         access.Role      `gorm:"type:varchar(20);not null;index"`
	IsApproved   bool             `gorm:"not null;default:false;index"`
	LastLoginAt  *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// NewProfile carries what sign-up knows about a new profile.
type NewProfile struct {
	Email        string
	PasswordHash *string
	FirebaseUID  *string
	Provider     session.Provider
	FullName     string
	Company      string
	Phone        string
}

// --- DTOs ---

// UpdateProfileRequest holds the fields a user may change on their own profile.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,max=150"`
	Company  string `json:"company" binding:"max=150"`
	Phone    string `json:"phone" binding:"max=30"`
}

// AdminSetApprovalRequest approves or revokes a customer profile.
type AdminSetApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// AdminSetRoleRequest changes the role of a profile.
type AdminSetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin customer"`
}

// ListQuery filters the back-office profile list.
type ListQuery struct {
	Role     *access.Role
	Approved *bool
	Search   string
	Page     int
	PageSize int
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID           uuid.UUID        `json:"id"`
	Email        string           `json:"email"`
	FullName     string           `json:"full_name"`
	Company      string           `json:"company,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	AuthProvider session.Provider `json:"auth_provider"`
	Role         access.Role      `json:"role"`
	IsApproved   bool             `json:"is_approved"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	LastLoginAt  *time.Time       `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Company:      u.Company,
		Phone:        u.Phone,
		AuthProvider: u.AuthProvider,
		Role:         u.Role,
		IsApproved:   u.IsApproved,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
}
