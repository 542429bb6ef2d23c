package service

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

// ContentService stores uploaded library files through the configured
// storage provider and records their metadata. Videos are probed for
// duration and dimensions on the way in.
type ContentService struct {
	Repo    *repository.ContentRepository
	Storage *StorageService
}

func NewContentService(repo *repository.ContentRepository, storage *StorageService) *ContentService {
	return &ContentService{Repo: repo, Storage: storage}
}

func (s *ContentService) Upload(ctx context.Context, uploaderID uint, title string, file *multipart.FileHeader) (*model.ContentResource, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectKey := model.GenerateObjectKey() + ext
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	res := &model.ContentResource{
		Title:      title,
		Type:       classifyContent(contentType, file.Filename),
		ObjectKey:  objectKey,
		MimeType:   contentType,
		Size:       file.Size,
		UploaderID: uploaderID,
	}

	if res.Type == "video" {
		// Probing needs a local path, so stage the upload through a temp file.
		tmp, err := os.CreateTemp("", "upload-*"+ext)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.ReadFrom(src); err != nil {
			tmp.Close()
			return nil, err
		}
		tmp.Close()

		if info, err := util.GetVideoInfo(tmp.Name()); err != nil {
			logger.Log.Warn("video probe failed, storing without metadata",
				zap.String("filename", file.Filename),
				zap.Error(err))
		} else {
			res.Duration = info.Duration
			res.Width = info.Width
			res.Height = info.Height
		}

		thumbKey := strings.TrimSuffix(objectKey, ext) + ".jpg"
		thumbPath := filepath.Join(os.TempDir(), thumbKey)
		if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err == nil {
			defer os.Remove(thumbPath)
			if thumbURL, err := s.Storage.Provider.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg"); err == nil {
				res.Thumbnail = thumbURL
			}
		}

		url, err := s.Storage.Provider.UploadFile(ctx, objectKey, tmp.Name(), contentType)
		if err != nil {
			return nil, err
		}
		res.URL = url
	} else {
		url, err := s.Storage.Provider.Upload(ctx, objectKey, src, file.Size, contentType)
		if err != nil {
			return nil, err
		}
		res.URL = url
	}

	if err := s.Repo.Create(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ContentService) List(contentType string, page, limit int) ([]model.ContentResource, int64, error) {
	return s.Repo.List(contentType, page, limit)
}

func (s *ContentService) Get(id uint) (*model.ContentResource, error) {
	return s.Repo.FindByID(id)
}

func (s *ContentService) Delete(ctx context.Context, id uint) error {
	res, err := s.Repo.FindByID(id)
	if err != nil || res == nil {
		return err
	}
	if res.ObjectKey != "" {
		if err := s.Storage.Provider.Delete(ctx, res.ObjectKey); err != nil {
			logger.Log.Warn("stored object removal failed",
				zap.String("object_key", res.ObjectKey),
				zap.Error(err))
		}
	}
	return s.Repo.Delete(id)
}

func classifyContent(contentType, filename string) string {
	switch {
	case strings.HasPrefix(contentType, util.MimeVideo) || util.IsVideoFile(filename):
		return "video"
	case strings.HasPrefix(contentType, util.MimeImage):
		return "image"
	default:
		return "document"
	}
}
