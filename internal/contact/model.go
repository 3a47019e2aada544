package contact

import (
	"time"

	"github.com/google/uuid"
)

// Message is a contact form submission.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(30)"`
	Company   string    `gorm:"type:varchar(150)"`
	Subject   string    `gorm:"type:varchar(200);not null"`
	Body      string    `gorm:"type:text;not null"`
	SenderID  *string   `gorm:"type:varchar(128)"` // session subject when sent while signed in
	ClientIP  string    `gorm:"type:varchar(64)"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_contact_messages_unread"`
	CreatedAt time.Time `gorm:"not null;index:idx_contact_messages_unread"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "contact_messages"
}

// SubmitRequest is the public contact form.
type SubmitRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Company string `json:"company" binding:"omitempty,max=150"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
}

// MessageResponse is a message as shown in the back office.
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	SenderID  *string   `json:"sender_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMessageResponse converts a Message to its API form.
func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Company:   m.Company,
		Subject:   m.Subject,
		Message:   m.Body,
		SenderID:  m.SenderID,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
