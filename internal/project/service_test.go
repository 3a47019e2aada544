package project

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/filestorage"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) projectOrNil(args mock.Arguments) (*Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Project), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, p *Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	return m.projectOrNil(m.Called(ctx, id))
}

func (m *MockProjectRepository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	return m.projectOrNil(m.Called(ctx, slug))
}

func (m *MockProjectRepository) List(ctx context.Context, q ListQuery) ([]Project, *common.Pagination, error) {
	args := m.Called(ctx, q)
	var projects []Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]Project)
	}
	var pagination *common.Pagination
	if args.Get(1) != nil {
		pagination = args.Get(1).(*common.Pagination)
	}
	return projects, pagination, args.Error(2)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProjectRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) SaveMediaForm(form *multipart.Form) (filestorage.MediaUpload, error) {
	args := m.Called(form)
	return args.Get(0).(filestorage.MediaUpload), args.Error(1)
}

func (m *MockMediaStore) DeleteFiles(paths []string) {
	m.Called(paths)
}

func setupProjectTest(t *testing.T) (Service, *MockProjectRepository, *MockMediaStore) {
	repo := new(MockProjectRepository)
	media := new(MockMediaStore)
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		media.AssertExpectations(t)
	})
	return NewService(repo, media, zap.NewNop()), repo, media
}

func tollGateProject() Project {
	return Project{
		BaseModel: common.BaseModel{ID: uuid.New()},
		Name:      "Simpang Lima Semarang",
		Slug:      "simpang-lima-semarang",
		Client:    "Dishub Kota Semarang",
		Year:      2023,
		Content: catalog.Content{
			Description:    strings.Repeat("p", 140),
			Features:       pq.StringArray{"ATCS", "Countdown", "Solar", "CCTV"},
			Specifications: datatypes.JSONMap{"junctions": 4},
			DocumentPath:   "documents/report.pdf",
			ImagePath:      "images/site.jpg",
		},
	}
}

func TestProjectService_ListProjects_Anonymous(t *testing.T) {
	svc, repo, _ := setupProjectTest(t)
	q := ListQuery{Page: 1, PageSize: 12}
	repo.On("List", mock.Anything, q).Return([]Project{tollGateProject()}, common.NewPagination(1, 1, 12), nil)

	projects, _, err := svc.ListProjects(context.Background(), q, nil)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, strings.Repeat("p", 100)+catalog.Ellipsis, projects[0].Description)
	assert.Len(t, projects[0].Features, 3)
	assert.Empty(t, projects[0].Specifications)
	assert.Empty(t, projects[0].DocumentPath)
	assert.Equal(t, "Dishub Kota Semarang", projects[0].Client, "public fields stay")
}

func TestProjectService_GetProjectBySlug_SignedIn(t *testing.T) {
	svc, repo, _ := setupProjectTest(t)
	p := tollGateProject()
	repo.On("FindBySlug", mock.Anything, p.Slug).Return(&p, nil)
	id := "c0ffee00-0000-4000-8000-000000000001"

	got, err := svc.GetProjectBySlug(context.Background(), p.Slug, &id)
	require.NoError(t, err)
	assert.Len(t, got.Features, 4)
	assert.Equal(t, "documents/report.pdf", got.DocumentPath)
}

func TestProjectService_AdminCreateProject(t *testing.T) {
	svc, repo, _ := setupProjectTest(t)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Project) bool {
		return p.Slug == "tol-cipali" && p.Year == 2021 && p.Location == "Jawa Barat"
	})).Return(nil)

	_, err := svc.AdminCreateProject(context.Background(), AdminProjectRequest{
		Name: "Tol Cipali", Location: " Jawa Barat ", Year: 2021,
	})
	assert.NoError(t, err)
}

func TestProjectService_AdminCreateProject_EmptySlug(t *testing.T) {
	svc, _, _ := setupProjectTest(t)
	_, err := svc.AdminCreateProject(context.Background(), AdminProjectRequest{Name: "!!!"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestProjectService_AdminDeleteProject_RemovesMedia(t *testing.T) {
	svc, repo, media := setupProjectTest(t)
	p := tollGateProject()
	repo.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	repo.On("Delete", mock.Anything, p.ID).Return(nil)
	media.On("DeleteFiles", []string{"images/site.jpg", "documents/report.pdf", ""}).Return()

	assert.NoError(t, svc.AdminDeleteProject(context.Background(), p.ID))
}

func TestProjectHandler_ListIsRedactedOnTheWire(t *testing.T) {
	svc, repo, _ := setupProjectTest(t)
	repo.On("List", mock.Anything, ListQuery{Page: 1, PageSize: 12, Year: 2023}).
		Return([]Project{tollGateProject()}, common.NewPagination(1, 1, 12), nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), nil))
		c.Next()
	})
	NewHandler(svc, &config.Config{}, zap.NewNop()).RegisterRoutes(&router.RouterGroup)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proyek?year=2023", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, map[string]interface{}{}, body.Data[0]["specifications"])
	assert.Equal(t, "", body.Data[0]["document_url"])
	assert.Equal(t, "/media/images/site.jpg", body.Data[0]["image_url"])
}
