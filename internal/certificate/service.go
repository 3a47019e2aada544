package certificate

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/filestorage"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for certificate business logic.
type Service interface {
	ListCertificates(ctx context.Context, query ListQuery, viewerID *string) ([]Certificate, *common.Pagination, error)
	GetCertificateBySlug(ctx context.Context, slug string, viewerID *string) (*Certificate, error)
	CountCertificates(ctx context.Context) (int64, error)

	AdminListCertificates(ctx context.Context, query ListQuery) ([]Certificate, *common.Pagination, error)
	AdminGetCertificate(ctx context.Context, id uuid.UUID) (*Certificate, error)
	AdminCreateCertificate(ctx context.Context, req AdminCertificateRequest) (*Certificate, error)
	AdminUpdateCertificate(ctx context.Context, id uuid.UUID, req AdminCertificateRequest) (*Certificate, error)
	AdminDeleteCertificate(ctx context.Context, id uuid.UUID) error
	AdminUploadMedia(ctx context.Context, id uuid.UUID, form *multipart.Form) (*Certificate, error)
}

type service struct {
	repo   Repository
	media  filestorage.MediaStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new certificate service.
func NewService(repo Repository, media filestorage.MediaStore, logger *zap.Logger) Service {
	return &service{repo: repo, media: media, logger: logger.Named("CertificateService"), now: time.Now}
}

func (s *service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) ListCertificates(ctx context.Context, q ListQuery, viewerID *string) ([]Certificate, *common.Pagination, error) {
	certificates, pagination, err := s.repo.List(ctx, q, s.today())
	if err != nil {
		s.logger.Error("Failed to list certificates", zap.Error(err))
		return nil, nil, err
	}
	policy := catalog.PolicyFor(viewerID)
	for i := range certificates {
		certificates[i].Content = policy.Apply(certificates[i].Content)
	}
	return certificates, pagination, nil
}

func (s *service) GetCertificateBySlug(ctx context.Context, slugToFind string, viewerID *string) (*Certificate, error) {
	certificate, err := s.repo.FindBySlug(ctx, slugToFind)
	if err != nil {
		return nil, err
	}
	certificate.Content = catalog.Redact(certificate.Content, viewerID)
	return certificate, nil
}

func (s *service) CountCertificates(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) AdminListCertificates(ctx context.Context, q ListQuery) ([]Certificate, *common.Pagination, error) {
	return s.repo.List(ctx, q, s.today())
}

func (s *service) AdminGetCertificate(ctx context.Context, id uuid.UUID) (*Certificate, error) {
	return s.repo.FindByID(ctx, id)
}

func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, common.NewValidationAPIError(map[string]string{field: "must be a date in YYYY-MM-DD format"})
	}
	return &t, nil
}

func applyRequest(certificate *Certificate, req AdminCertificateRequest) error {
	issuedAt, err := parseDate("issued_at", req.IssuedAt)
	if err != nil {
		return err
	}
	expiresAt, err := parseDate("expires_at", req.ExpiresAt)
	if err != nil {
		return err
	}
	if issuedAt != nil && expiresAt != nil && expiresAt.Before(*issuedAt) {
		return common.NewValidationAPIError(map[string]string{"expires_at": "must not be before issued_at"})
	}

	certificate.Name = strings.TrimSpace(req.Name)
	certificate.Slug = slug.Make(req.Name)
	if strings.TrimSpace(req.Slug) != "" {
		certificate.Slug = slug.Make(req.Slug)
	}
	if certificate.Slug == "" {
		return common.ErrBadRequest.WithDetails("Certificate name must contain letters or digits.")
	}
	certificate.Issuer = strings.TrimSpace(req.Issuer)
	certificate.Number = strings.TrimSpace(req.Number)
	certificate.IssuedAt = issuedAt
	certificate.ExpiresAt = expiresAt
	certificate.ShortDescription = strings.TrimSpace(req.ShortDescription)
	req.ContentRequest.ApplyTo(&certificate.Content)
	return nil
}

func (s *service) AdminCreateCertificate(ctx context.Context, req AdminCertificateRequest) (*Certificate, error) {
	certificate := &Certificate{}
	if err := applyRequest(certificate, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, certificate); err != nil {
		s.logger.Error("Failed to create certificate", zap.Error(err), zap.String("slug", certificate.Slug))
		return nil, err
	}
	s.logger.Info("Certificate created", zap.String("id", certificate.ID.String()))
	return certificate, nil
}

func (s *service) AdminUpdateCertificate(ctx context.Context, id uuid.UUID, req AdminCertificateRequest) (*Certificate, error) {
	certificate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyRequest(certificate, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, certificate); err != nil {
		s.logger.Error("Failed to update certificate", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return certificate, nil
}

func (s *service) AdminDeleteCertificate(ctx context.Context, id uuid.UUID) error {
	certificate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.media.DeleteFiles(append(certificate.Content.Paths(), certificate.ThumbnailPath))
	s.logger.Info("Certificate deleted", zap.String("id", id.String()))
	return nil
}

func (s *service) AdminUploadMedia(ctx context.Context, id uuid.UUID, form *multipart.Form) (*Certificate, error) {
	certificate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	upload, err := s.media.SaveMediaForm(form)
	if err != nil {
		return nil, err
	}

	displaced := certificate.Content.ReplaceMedia(upload.Media)
	if upload.Thumbnail != "" {
		if certificate.ThumbnailPath != "" && certificate.ThumbnailPath != upload.Thumbnail {
			displaced = append(displaced, certificate.ThumbnailPath)
		}
		certificate.ThumbnailPath = upload.Thumbnail
	}

	if err := s.repo.Update(ctx, certificate); err != nil {
		s.media.DeleteFiles(upload.Saved())
		return nil, err
	}
	s.media.DeleteFiles(displaced)
	return certificate, nil
}
