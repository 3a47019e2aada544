package contact

import (
	"context"
	"strings"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for contact message operations.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest, senderID *string, clientIP string) (*Message, error)
	ListMessages(ctx context.Context, page, pageSize int, unreadOnly bool) ([]MessageResponse, *common.Pagination, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
	DeleteMessage(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
}

// ServiceImplementation implements the contact Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new contact service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("ContactService"),
		now:    time.Now,
	}
}

// Submit stores a contact form submission.
func (s *ServiceImplementation) Submit(ctx context.Context, req SubmitRequest, senderID *string, clientIP string) (*Message, error) {
	message := &Message{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Company:   strings.TrimSpace(req.Company),
		Subject:   strings.TrimSpace(req.Subject),
		Body:      strings.TrimSpace(req.Message),
		SenderID:  senderID,
		ClientIP:  clientIP,
		CreatedAt: s.now().UTC(),
	}
	if message.Name == "" || message.Subject == "" || message.Body == "" {
		return nil, common.NewValidationAPIError(map[string]string{"message": "name, subject and message must not be blank"})
	}

	if err := s.repo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to store contact message", zap.String("email", message.Email), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not send your message.")
	}
	metrics.ContactMessagesTotal.Inc()
	s.logger.Info("Contact message received", zap.String("messageID", message.ID.String()), zap.String("subject", message.Subject))
	return message, nil
}

// ListMessages returns a page of messages for the back office.
func (s *ServiceImplementation) ListMessages(ctx context.Context, page, pageSize int, unreadOnly bool) ([]MessageResponse, *common.Pagination, error) {
	messages, pagination, err := s.repo.List(ctx, page, pageSize, unreadOnly)
	if err != nil {
		s.logger.Error("Failed to list contact messages", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve messages.")
	}

	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses, pagination, nil
}

// MarkAsRead marks one message as read.
func (s *ServiceImplementation) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks every unread message as read.
func (s *ServiceImplementation) MarkAllAsRead(ctx context.Context) (int64, error) {
	count, err := s.repo.MarkAllAsRead(ctx)
	if err != nil {
		s.logger.Error("Failed to mark all contact messages as read", zap.Error(err))
		return 0, common.ErrInternalServer.WithDetails("Could not update messages.")
	}
	return count, nil
}

// DeleteMessage removes a message.
func (s *ServiceImplementation) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// CountUnread counts unread messages for the dashboard.
func (s *ServiceImplementation) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}
