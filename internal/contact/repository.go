package contact

import (
	"context"
	"fmt"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for contact message storage.
type Repository interface {
	Create(ctx context.Context, message *Message) error
	List(ctx context.Context, page, pageSize int, unreadOnly bool) ([]Message, *common.Pagination, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
}

// GORMRepository implements the Repository interface using GORM.
type GORMRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM contact message repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &GORMRepository{db: db}
}

// Create inserts a new message.
func (r *GORMRepository) Create(ctx context.Context, message *Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// List retrieves a page of messages, newest first.
func (r *GORMRepository) List(ctx context.Context, page, pageSize int, unreadOnly bool) ([]Message, *common.Pagination, error) {
	var (
		messages []Message
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&Message{})
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting contact messages failed: %w", err)
	}

	pagination := common.NewPagination(total, page, pageSize)
	err := query.Order("created_at DESC").
		Limit(pagination.PageSize).
		Offset(common.Offset(pagination.CurrentPage, pagination.PageSize)).
		Find(&messages).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching contact messages failed: %w", err)
	}
	return messages, pagination, nil
}

// MarkAsRead marks one message as read. Marking a read message again is
// not an error.
func (r *GORMRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Message{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark contact message %s as read: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Message not found.")
	}
	return nil
}

// MarkAllAsRead marks every unread message as read and returns how many
// changed.
func (r *GORMRepository) MarkAllAsRead(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Message{}).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark all contact messages as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes a message.
func (r *GORMRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Message{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact message %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Message not found.")
	}
	return nil
}

// CountUnread counts unread messages.
func (r *GORMRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Message{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
