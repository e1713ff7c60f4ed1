package services

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/platform/media"
)

type BookService interface {
	// Upload stores the pdf and, when present, the cover picture under a
	// shared timestamp prefix, then inserts the row. The picture is
	// optional and a book is never blocked on its absence.
	Upload(ctx context.Context, in MediaInput, pdfName string, pdf io.Reader, pictureName string, picture io.Reader) (*domain.Book, error)
	Get(ctx context.Context, id int) (*domain.Book, error)
	List(ctx context.Context, grade, search string) ([]*domain.Book, error)
	UpdateInfo(ctx context.Context, id int, in MediaInput) error
	Delete(ctx context.Context, id int) error
	ResolveDownload(ctx context.Context, id int) (*Download, error)
}

type bookService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  content.BookRepo
	store *media.Store
}

func NewBookService(db *gorm.DB, baseLog *logger.Logger, repo content.BookRepo, store *media.Store) BookService {
	serviceLog := baseLog.With("service", "BookService")
	return &bookService{db: db, log: serviceLog, repo: repo, store: store}
}

func (s *bookService) Upload(ctx context.Context, in MediaInput, pdfName string, pdf io.Reader, pictureName string, picture io.Reader) (*domain.Book, error) {
	title, grade, description, err := validateMedia(in)
	if err != nil {
		return nil, err
	}
	if pdfName == "" || pdf == nil {
		return nil, apierr.InvalidFile(fmt.Errorf("pdf file is required"))
	}
	if !media.AllowedExt(media.AreaPDF, pdfName) {
		return nil, apierr.InvalidFile(fmt.Errorf("%q is not a pdf", pdfName))
	}
	// A missing or unusable picture never blocks the book itself.
	hasPicture := pictureName != "" && picture != nil
	if hasPicture && !media.AllowedExt(media.AreaPicture, pictureName) {
		s.log.Warn("skipping picture with disallowed extension", "filename", pictureName)
		hasPicture = false
	}

	// One prefix for both artifacts so they visibly belong to the same book.
	prefix := media.Prefix()

	storedPDF := prefix + media.SanitizeFilename(pdfName)
	size, err := s.store.SaveNamed(media.AreaPDF, storedPDF, pdf)
	if err != nil {
		s.log.Error("failed to store pdf", "filename", pdfName, "error", err)
		return nil, apierr.StoreFailure(err)
	}

	var storedPicture *string
	if hasPicture {
		name := prefix + media.SanitizeFilename(pictureName)
		if _, err := s.store.SaveNamed(media.AreaPicture, name, picture); err != nil {
			s.log.Error("failed to store picture", "filename", pictureName, "error", err)
			if rmErr := s.store.Remove(media.AreaPDF, storedPDF); rmErr != nil {
				s.log.Error("pdf cleanup after failed picture also failed", "filename", storedPDF, "error", rmErr)
				return nil, apierr.OrphanRisk(err)
			}
			return nil, apierr.StoreFailure(err)
		}
		storedPicture = &name
	}

	b := &domain.Book{
		Title:           title,
		Description:     description,
		Grade:           grade,
		PDFFilename:     storedPDF,
		PictureFilename: storedPicture,
		FileSize:        size,
	}
	created, err := s.repo.Create(ctx, nil, b)
	if err != nil {
		s.log.Error("failed to insert book row", "filename", storedPDF, "error", err)
		orphaned := false
		if rmErr := s.store.Remove(media.AreaPDF, storedPDF); rmErr != nil {
			s.log.Error("pdf cleanup after failed insert also failed", "filename", storedPDF, "error", rmErr)
			orphaned = true
		}
		if storedPicture != nil {
			if rmErr := s.store.Remove(media.AreaPicture, *storedPicture); rmErr != nil {
				s.log.Error("picture cleanup after failed insert also failed", "filename", *storedPicture, "error", rmErr)
				orphaned = true
			}
		}
		if orphaned {
			return nil, apierr.OrphanRisk(err)
		}
		return nil, apierr.StoreFailure(err)
	}
	s.log.Info("book uploaded", "id", created.ID, "filename", storedPDF, "size", size)
	return created, nil
}

func (s *bookService) Get(ctx context.Context, id int) (*domain.Book, error) {
	b, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if err == content.ErrNotFound {
			return nil, apierr.NotFound(err)
		}
		s.log.Error("get failed", "id", id, "error", err)
		return nil, apierr.StoreFailure(err)
	}
	return b, nil
}

func (s *bookService) List(ctx context.Context, grade, search string) ([]*domain.Book, error) {
	var (
		items []*domain.Book
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

func (s *bookService) UpdateInfo(ctx context.Context, id int, in MediaInput) error {
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

func (s *bookService) Delete(ctx context.Context, id int) error {
	b, err := s.repo.GetByID(ctx, nil, id)
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
	if err := s.store.Remove(media.AreaPDF, b.PDFFilename); err != nil {
		s.log.Warn("failed to remove pdf", "id", id, "filename", b.PDFFilename, "error", err)
	}
	if b.PictureFilename != nil {
		if err := s.store.Remove(media.AreaPicture, *b.PictureFilename); err != nil {
			s.log.Warn("failed to remove picture", "id", id, "filename", *b.PictureFilename, "error", err)
		}
	}
	return nil
}

func (s *bookService) ResolveDownload(ctx context.Context, id int) (*Download, error) {
	b, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if err != content.ErrNotFound {
			s.log.Error("download lookup failed", "id", id, "error", err)
		}
		return nil, apierr.DownloadFailed(fmt.Errorf("book %d unavailable", id))
	}
	if !s.store.Exists(media.AreaPDF, b.PDFFilename) {
		s.log.Warn("book row has no pdf on disk", "id", id, "filename", b.PDFFilename)
		return nil, apierr.DownloadFailed(fmt.Errorf("book %d unavailable", id))
	}
	return &Download{
		Path:           s.store.Path(media.AreaPDF, b.PDFFilename),
		AttachmentName: b.Title + ".pdf",
	}, nil
}
