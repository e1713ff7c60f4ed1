package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/platform/media"
)

// MediaInput carries the descriptive fields shared by videos and books.
type MediaInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Grade       string `json:"grade" form:"grade"`
}

// Download is a resolved artifact ready for streaming: the on-disk path and
// the attachment name shown to the client.
type Download struct {
	Path           string
	AttachmentName string
}

type VideoService interface {
	// Upload validates the metadata and extension before any byte is
	// written, then stores the file and only afterwards the row. A failed
	// row insert triggers best-effort file cleanup.
	Upload(ctx context.Context, in MediaInput, filename string, file io.Reader) (*domain.Video, error)
	Get(ctx context.Context, id int) (*domain.Video, error)
	List(ctx context.Context, grade, search string) ([]*domain.Video, error)
	UpdateInfo(ctx context.Context, id int, in MediaInput) error
	Delete(ctx context.Context, id int) error
	// ResolveDownload maps an id to a streamable file. A missing row and a
	// missing file are reported identically.
	ResolveDownload(ctx context.Context, id int) (*Download, error)
}

type videoService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  content.VideoRepo
	store *media.Store
}

func NewVideoService(db *gorm.DB, baseLog *logger.Logger, repo content.VideoRepo, store *media.Store) VideoService {
	serviceLog := baseLog.With("service", "VideoService")
	return &videoService{db: db, log: serviceLog, repo: repo, store: store}
}

func validateMedia(in MediaInput) (title, grade string, description *string, err error) {
	title = strings.TrimSpace(in.Title)
	grade = strings.TrimSpace(in.Grade)
	if title == "" || grade == "" {
		return "", "", nil, apierr.InvalidRequest(fmt.Errorf("title and grade are required"))
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		description = &d
	}
	return title, grade, description, nil
}

// extOf returns the lowercase extension of the client-supplied name,
// including the dot, or "" when there is none.
func extOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}

func (s *videoService) Upload(ctx context.Context, in MediaInput, filename string, file io.Reader) (*domain.Video, error) {
	title, grade, description, err := validateMedia(in)
	if err != nil {
		return nil, err
	}
	if filename == "" || file == nil {
		return nil, apierr.InvalidFile(fmt.Errorf("video file is required"))
	}
	if !media.AllowedExt(media.AreaVideo, filename) {
		return nil, apierr.InvalidFile(fmt.Errorf("extension of %q is not an accepted video format", filename))
	}

	stored, size, err := s.store.Save(media.AreaVideo, filename, file)
	if err != nil {
		s.log.Error("failed to store video file", "filename", filename, "error", err)
		return nil, apierr.StoreFailure(err)
	}

	v := &domain.Video{
		Title:       title,
		Description: description,
		Grade:       grade,
		Filename:    stored,
		FileSize:    size,
	}
	created, err := s.repo.Create(ctx, nil, v)
	if err != nil {
		s.log.Error("failed to insert video row", "filename", stored, "error", err)
		if rmErr := s.store.Remove(media.AreaVideo, stored); rmErr != nil {
			s.log.Error("cleanup after failed insert also failed", "filename", stored, "error", rmErr)
			return nil, apierr.OrphanRisk(err)
		}
		return nil, apierr.StoreFailure(err)
	}
	s.log.Info("video uploaded", "id", created.ID, "filename", stored, "size", size)
	return created, nil
}

func (s *videoService) Get(ctx context.Context, id int) (*domain.Video, error) {
	v, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if err == content.ErrNotFound {
			return nil, apierr.NotFound(err)
		}
		s.log.Error("get failed", "id", id, "error", err)
		return nil, apierr.StoreFailure(err)
	}
	return v, nil
}

func (s *videoService) List(ctx context.Context, grade, search string) ([]*domain.Video, error) {
	var (
		items []*domain.Video
		err   error
	)
	switch {
	case search != "":
		items, err = s.repo.SearchByTitle(ctx, nil, search)
	case grade != "":
		items, err = s.repo.ListByGrade(ctx, nil, grade)
	default:
		items, err = s.repo.ListAll(ctx, nil)
	}
	if err != nil {
		s.log.Error("list failed", "error", err)
		return nil, apierr.StoreFailure(err)
	}
	return items, nil
}

func (s *videoService) UpdateInfo(ctx context.Context, id int, in MediaInput) error {
	title, grade, description, err := validateMedia(in)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateInfo(ctx, nil, id, title, description, grade); err != nil {
		s.log.Error("update failed", "id", id, "error", err)
		return apierr.StoreFailure(err)
	}
	return nil
}

func (s *videoService) Delete(ctx context.Context, id int) error {
	v, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if err == content.ErrNotFound {
			return apierr.NotFound(err)
		}
		s.log.Error("delete lookup failed", "id", id, "error", err)
		return apierr.StoreFailure(err)
	}
	if err := s.repo.Delete(ctx, nil, id); err != nil {
		s.log.Error("delete failed", "id", id, "error", err)
		return apierr.StoreFailure(err)
	}
	// The row is authoritative; a leftover file only wastes disk.
	if err := s.store.Remove(media.AreaVideo, v.Filename); err != nil {
		s.log.Warn("failed to remove video file", "id", id, "filename", v.Filename, "error", err)
	}
	return nil
}

func (s *videoService) ResolveDownload(ctx context.Context, id int) (*Download, error) {
	v, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if err != content.ErrNotFound {
			s.log.Error("download lookup failed", "id", id, "error", err)
		}
		return nil, apierr.DownloadFailed(fmt.Errorf("video %d unavailable", id))
	}
	if !s.store.Exists(media.AreaVideo, v.Filename) {
		s.log.Warn("video row has no file on disk", "id", id, "filename", v.Filename)
		return nil, apierr.DownloadFailed(fmt.Errorf("video %d unavailable", id))
	}
	return &Download{
		Path:           s.store.Path(media.AreaVideo, v.Filename),
		AttachmentName: v.Title + extOf(v.Filename),
	}, nil
}
