package auth

import (
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/user"
)

// SignInRequest defines the structure for sign-in requests.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUpRequest defines the structure for customer sign-up requests.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,max=150"`
	Company  string `json:"company" binding:"max=150"`
	Phone    string `json:"phone" binding:"max=30"`
}

// FirebaseSignInRequest carries a Firebase ID token obtained by the browser.
type FirebaseSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// SignOutRequest optionally ends every session of the profile.
type SignOutRequest struct {
	Everywhere bool `json:"everywhere"`
}

// FormField describes one input of a sign-in or sign-up form.
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// FormDescriptor is the page payload of a sign-in or sign-up form.
type FormDescriptor struct {
	Title           string      `json:"title"`
	Action          string      `json:"action"`
	Fields          []FormField `json:"fields"`
	FirebaseEnabled bool        `json:"firebase_enabled"`
}

// SessionResponse is returned after a successful sign-in or sign-up.
type SessionResponse struct {
	User     user.UserResponse `json:"user"`
	Redirect string            `json:"redirect"`
}
