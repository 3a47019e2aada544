package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind is the top-level directory a stored file lives in. Images are served
// publicly, documents only to signed-in visitors.
type Kind string

const (
	KindImage    Kind = "images"
	KindDocument Kind = "documents"
)

var allowedExtensions = map[Kind]map[string]bool{
	KindImage:    {".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true},
	KindDocument: {".pdf": true},
}

// Multipart field names of a media upload form.
const (
	FieldThumbnail = "thumbnail"
	FieldImage     = "image"
	FieldMockup    = "mockup"
	FieldHighRes   = "highres"
	FieldDocument  = "document"
)

// MediaUpload holds the relative paths stored from one media form.
type MediaUpload struct {
	Thumbnail string
	catalog.Media
}

// Saved lists every path written for the upload.
func (m MediaUpload) Saved() []string {
	var out []string
	for _, p := range []string{m.Thumbnail, m.Image, m.Mockup, m.HighRes, m.Document} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MediaStore is what catalog services need from storage.
type MediaStore interface {
	SaveMediaForm(form *multipart.Form) (MediaUpload, error)
	DeleteFiles(paths []string)
}

var _ MediaStore = (*FileStorageService)(nil)

// FileStorageService stores uploaded media on local disk.
type FileStorageService struct {
	storagePath string
	maxBytes    int64
	logger      *zap.Logger
}

// NewFileStorageService creates a new FileStorageService rooted at STORAGE_PATH.
func NewFileStorageService(cfg *config.Config, logger *zap.Logger) (*FileStorageService, error) {
	if cfg.StoragePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	logger = logger.Named("FileStorage")
	for _, kind := range []Kind{KindImage, KindDocument} {
		dir := filepath.Join(cfg.StoragePath, string(kind))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Failed to create storage directory", zap.String("path", dir), zap.Error(err))
			return nil, fmt.Errorf("failed to create storage path %s: %w", dir, err)
		}
	}
	logger.Info("FileStorageService initialized", zap.String("storagePath", cfg.StoragePath))
	return &FileStorageService{
		storagePath: cfg.StoragePath,
		maxBytes:    cfg.MaxUploadSizeMB << 20,
		logger:      logger,
	}, nil
}

// Root returns the directory under which files of kind are stored.
func (s *FileStorageService) Root(kind Kind) string {
	return filepath.Join(s.storagePath, string(kind))
}

// SaveUploadedFile stores fileHeader under the directory of kind with a
// random file name and returns its relative path, e.g. "images/<uuid>.jpg".
func (s *FileStorageService) SaveUploadedFile(fileHeader *multipart.FileHeader, kind Kind) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}
	allowed, ok := allowedExtensions[kind]
	if !ok {
		return "", fmt.Errorf("unknown storage kind %q", kind)
	}
	if s.maxBytes > 0 && fileHeader.Size > s.maxBytes {
		return "", common.ErrPayloadTooLarge.WithDetails(fmt.Sprintf("File %s exceeds the %d MB limit.", fileHeader.Filename, s.maxBytes>>20))
	}

	extension := strings.ToLower(filepath.Ext(filepath.Base(fileHeader.Filename)))
	if extension == "" {
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/jpeg"):
			extension = ".jpg"
		case strings.HasPrefix(contentType, "image/png"):
			extension = ".png"
		case strings.HasPrefix(contentType, "application/pdf"):
			extension = ".pdf"
		}
	}
	if !allowed[extension] {
		return "", common.ErrBadRequest.WithDetails(fmt.Sprintf("Unsupported file type for %s: %s", kind, fileHeader.Filename))
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	relativePath := string(kind) + "/" + uuid.New().String() + extension
	destinationPath := filepath.Join(s.storagePath, filepath.FromSlash(relativePath))

	dst, err := os.Create(destinationPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destinationPath), zap.Error(err))
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		s.logger.Error("Failed to copy uploaded file to destination", zap.String("path", destinationPath), zap.Error(err))
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("File saved successfully", zap.String("path", relativePath))
	return relativePath, nil
}

// SaveMediaForm stores every known file field of a media form. On failure
// the files already written for this form are removed again.
func (s *FileStorageService) SaveMediaForm(form *multipart.Form) (MediaUpload, error) {
	var upload MediaUpload
	if form == nil {
		return upload, common.ErrBadRequest.WithDetails("No files uploaded.")
	}

	targets := []struct {
		field string
		kind  Kind
		dst   *string
	}{
		{FieldThumbnail, KindImage, &upload.Thumbnail},
		{FieldImage, KindImage, &upload.Image},
		{FieldMockup, KindImage, &upload.Mockup},
		{FieldHighRes, KindImage, &upload.HighRes},
		{FieldDocument, KindDocument, &upload.Document},
	}
	for _, t := range targets {
		files := form.File[t.field]
		if len(files) == 0 {
			continue
		}
		path, err := s.SaveUploadedFile(files[0], t.kind)
		if err != nil {
			s.DeleteFiles(upload.Saved())
			return MediaUpload{}, err
		}
		*t.dst = path
	}

	if upload.Thumbnail == "" && upload.Media.Empty() {
		return upload, common.ErrBadRequest.WithDetails("No files uploaded.")
	}
	return upload, nil
}

// ResolvePath maps a relative path of kind to a file on disk. It rejects
// paths leaving the kind's directory and paths that do not exist.
func (s *FileStorageService) ResolvePath(kind Kind, relativePath string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimPrefix(filepath.ToSlash(relativePath), string(kind)+"/"))
	if clean == "/" {
		return "", common.ErrNotFound.WithDetails("File not found.")
	}
	fullPath := filepath.Join(s.Root(kind), clean)
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return "", common.ErrNotFound.WithDetails("File not found.")
	}
	return fullPath, nil
}

// DeleteFile deletes a file given its path relative to the storage path.
func (s *FileStorageService) DeleteFile(relativePath string) error {
	if relativePath == "" {
		return fmt.Errorf("relative path cannot be empty")
	}

	cleanRelativePath := filepath.Clean(relativePath)
	if strings.Contains(cleanRelativePath, "..") || filepath.IsAbs(cleanRelativePath) {
		s.logger.Warn("Attempt to delete file with path traversal", zap.String("relativePath", relativePath))
		return fmt.Errorf("invalid file path for deletion")
	}

	fullPath := filepath.Join(s.storagePath, cleanRelativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		s.logger.Warn("Attempt to delete non-existent file", zap.String("path", fullPath))
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete file", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.logger.Info("File deleted successfully", zap.String("path", relativePath))
	return nil
}

// DeleteFiles deletes each path, logging failures instead of returning them.
func (s *FileStorageService) DeleteFiles(paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := s.DeleteFile(p); err != nil {
			s.logger.Warn("Leaving orphaned media file", zap.String("path", p), zap.Error(err))
		}
	}
}
