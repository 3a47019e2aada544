package project

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/filestorage"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for project business logic.
type Service interface {
	ListProjects(ctx context.Context, query ListQuery, viewerID *string) ([]Project, *common.Pagination, error)
	GetProjectBySlug(ctx context.Context, slug string, viewerID *string) (*Project, error)
	ListLatest(ctx context.Context, limit int, viewerID *string) ([]Project, error)
	CountProjects(ctx context.Context) (int64, error)

	AdminListProjects(ctx context.Context, query ListQuery) ([]Project, *common.Pagination, error)
	AdminGetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	AdminCreateProject(ctx context.Context, req AdminProjectRequest) (*Project, error)
	AdminUpdateProject(ctx context.Context, id uuid.UUID, req AdminProjectRequest) (*Project, error)
	AdminDeleteProject(ctx context.Context, id uuid.UUID) error
	AdminUploadMedia(ctx context.Context, id uuid.UUID, form *multipart.Form) (*Project, error)
}

type service struct {
	repo   Repository
	media  filestorage.MediaStore
	logger *zap.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, media filestorage.MediaStore, logger *zap.Logger) Service {
	return &service{repo: repo, media: media, logger: logger.Named("ProjectService")}
}

func (s *service) ListProjects(ctx context.Context, q ListQuery, viewerID *string) ([]Project, *common.Pagination, error) {
	projects, pagination, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, nil, err
	}
	policy := catalog.PolicyFor(viewerID)
	for i := range projects {
		projects[i].Content = policy.Apply(projects[i].Content)
	}
	return projects, pagination, nil
}

func (s *service) GetProjectBySlug(ctx context.Context, slugToFind string, viewerID *string) (*Project, error) {
	project, err := s.repo.FindBySlug(ctx, slugToFind)
	if err != nil {
		return nil, err
	}
	project.Content = catalog.Redact(project.Content, viewerID)
	return project, nil
}

func (s *service) ListLatest(ctx context.Context, limit int, viewerID *string) ([]Project, error) {
	projects, _, err := s.ListProjects(ctx, ListQuery{Page: 1, PageSize: limit}, viewerID)
	return projects, err
}

func (s *service) CountProjects(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) AdminListProjects(ctx context.Context, q ListQuery) ([]Project, *common.Pagination, error) {
	return s.repo.List(ctx, q)
}

func (s *service) AdminGetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.FindByID(ctx, id)
}

func applyRequest(project *Project, req AdminProjectRequest) error {
	project.Name = strings.TrimSpace(req.Name)
	project.Slug = slug.Make(req.Name)
	if strings.TrimSpace(req.Slug) != "" {
		project.Slug = slug.Make(req.Slug)
	}
	if project.Slug == "" {
		return common.ErrBadRequest.WithDetails("Project name must contain letters or digits.")
	}
	project.Client = strings.TrimSpace(req.Client)
	project.Location = strings.TrimSpace(req.Location)
	project.Year = req.Year
	project.ShortDescription = strings.TrimSpace(req.ShortDescription)
	req.ContentRequest.ApplyTo(&project.Content)
	return nil
}

func (s *service) AdminCreateProject(ctx context.Context, req AdminProjectRequest) (*Project, error) {
	project := &Project{}
	if err := applyRequest(project, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Error("Failed to create project", zap.Error(err), zap.String("slug", project.Slug))
		return nil, err
	}
	s.logger.Info("Project created", zap.String("id", project.ID.String()))
	return project, nil
}

func (s *service) AdminUpdateProject(ctx context.Context, id uuid.UUID, req AdminProjectRequest) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyRequest(project, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, project); err != nil {
		s.logger.Error("Failed to update project", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return project, nil
}

func (s *service) AdminDeleteProject(ctx context.Context, id uuid.UUID) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.media.DeleteFiles(append(project.Content.Paths(), project.ThumbnailPath))
	s.logger.Info("Project deleted", zap.String("id", id.String()))
	return nil
}

func (s *service) AdminUploadMedia(ctx context.Context, id uuid.UUID, form *multipart.Form) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	upload, err := s.media.SaveMediaForm(form)
	if err != nil {
		return nil, err
	}

	displaced := project.Content.ReplaceMedia(upload.Media)
	if upload.Thumbnail != "" {
		if project.ThumbnailPath != "" && project.ThumbnailPath != upload.Thumbnail {
			displaced = append(displaced, project.ThumbnailPath)
		}
		project.ThumbnailPath = upload.Thumbnail
	}

	if err := s.repo.Update(ctx, project); err != nil {
		s.media.DeleteFiles(upload.Saved())
		return nil, err
	}
	s.media.DeleteFiles(displaced)
	return project, nil
}
