package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockContactRepository is a mock type for contact.Repository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, message *Message) error {
	args := m.Called(ctx, message)
	if args.Error(0) == nil && message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, page, pageSize int, unreadOnly bool) ([]Message, *common.Pagination, error) {
	args := m.Called(ctx, page, pageSize, unreadOnly)
	var messages []Message
	if args.Get(0) != nil {
		messages = args.Get(0).([]Message)
	}
	var pagination *common.Pagination
	if args.Get(1) != nil {
		pagination = args.Get(1).(*common.Pagination)
	}
	return messages, pagination, args.Error(2)
}

func (m *MockContactRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactRepository) MarkAllAsRead(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactRepository) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupContactService(t *testing.T) (*ServiceImplementation, *MockContactRepository) {
	repo := new(MockContactRepository)
	t.Cleanup(func() { repo.AssertExpectations(t) })
	svc := NewService(repo, zap.NewNop()).(*ServiceImplementation)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600)) }
	return svc, repo
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		Name:    "  Siti Rahma ",
		Email:   "Siti@Example.COM",
		Company: "PT Jalan Raya",
		Subject: "Penawaran countdown timer",
		Message: "Kami membutuhkan 20 unit countdown timer untuk proyek kota.",
	}
}

func TestContactService_Submit(t *testing.T) {
	svc, repo := setupContactService(t)
	sender := "profile-42"

	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *Message) bool {
		return m.Name == "Siti Rahma" &&
			m.Email == "siti@example.com" &&
			m.SenderID != nil && *m.SenderID == sender &&
			m.ClientIP == "203.0.113.9" &&
			m.CreatedAt.Location() == time.UTC &&
			!m.IsRead
	})).Return(nil).Once()

	message, err := svc.Submit(context.Background(), validRequest(), &sender, "203.0.113.9")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, message.ID)
}

func TestContactService_Submit_BlankAfterTrim(t *testing.T) {
	svc, _ := setupContactService(t)
	req := validRequest()
	req.Subject = "   "

	_, err := svc.Submit(context.Background(), req, nil, "203.0.113.9")
	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}

func TestContactService_Submit_StoreFailure(t *testing.T) {
	svc, repo := setupContactService(t)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err := svc.Submit(context.Background(), validRequest(), nil, "203.0.113.9")
	assert.True(t, errors.Is(err, common.ErrInternalServer))
}

func TestContactService_ListMessages(t *testing.T) {
	svc, repo := setupContactService(t)
	id := uuid.New()
	repo.On("List", mock.Anything, 1, 20, true).
		Return([]Message{{ID: id, Subject: "Halo", Body: "Isi pesan"}}, common.NewPagination(1, 1, 20), nil).Once()

	messages, pagination, err := svc.ListMessages(context.Background(), 1, 20, true)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, id, messages[0].ID)
	assert.Equal(t, "Isi pesan", messages[0].Message)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestContactService_MarkAllAsRead(t *testing.T) {
	svc, repo := setupContactService(t)
	repo.On("MarkAllAsRead", mock.Anything).Return(int64(4), nil).Once()

	count, err := svc.MarkAllAsRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestContactHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, repo := setupContactService(t)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *Message) bool {
		return m.SenderID == nil
	})).Return(nil).Once()

	router := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group(""), func(c *gin.Context) { c.Next() })

	body := `{"name":"Andi","email":"andi@example.com","subject":"Tanya harga","message":"Berapa harga traffic light 3 aspek?"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/kontak", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["data"])
}

func TestContactHandler_Submit_SignedInSender(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, repo := setupContactService(t)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *Message) bool {
		return m.SenderID != nil && *m.SenderID == "uid-7"
	})).Return(nil).Once()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		s := &session.Session{Subject: "uid-7", Provider: session.ProviderFirebase}
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), s))
		c.Next()
	})
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group(""), func(c *gin.Context) { c.Next() })

	body := `{"name":"Andi","email":"andi@example.com","subject":"Tanya harga","message":"Berapa harga traffic light 3 aspek?"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/kontak", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestContactHandler_Submit_Invalid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := setupContactService(t)
	router := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group(""), func(c *gin.Context) { c.Next() })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/kontak", strings.NewReader(`{"name":"Andi","email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestContactHandler_Submit_Limited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := setupContactService(t)
	router := gin.New()
	limit := func(c *gin.Context) {
		common.RespondWithError(c, common.ErrTooManyRequests)
	}
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group(""), limit)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/kontak", strings.NewReader(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestContactHandler_MarkAsRead_BadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := setupContactService(t)
	router := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group(""), func(c *gin.Context) { c.Next() })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/pesan/nope/read", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
