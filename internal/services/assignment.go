package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
)

// AssignmentInput carries the raw form fields for a create or a
// full-replace update. EndDate uses the minute-precision wire format and
// may be empty.
type AssignmentInput struct {
	Name       string `json:"name" form:"name"`
	Grade      string `json:"grade" form:"grade"`
	EndDate    string `json:"end_date" form:"end_date"`
	UploadLink string `json:"upload_link" form:"upload_link"`
	Professor  string `json:"professor" form:"professor"`
}

type AssignmentService interface {
	Kind() content.Kind
	Create(ctx context.Context, in AssignmentInput) (*domain.Assignment, error)
	Get(ctx context.Context, id int) (*domain.Assignment, error)
	// List dispatches like the admin pages do: a search query wins over a
	// grade filter, and with neither everything is returned newest first.
	List(ctx context.Context, grade, search string) ([]*domain.Assignment, error)
	Update(ctx context.Context, id int, in AssignmentInput) error
	Delete(ctx context.Context, id int) error
}

type assignmentService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo content.AssignmentRepo
}

func NewAssignmentService(db *gorm.DB, baseLog *logger.Logger, repo content.AssignmentRepo) AssignmentService {
	serviceLog := baseLog.With("service", "AssignmentService", "kind", repo.Kind().String())
	return &assignmentService{db: db, log: serviceLog, repo: repo}
}

func (s *assignmentService) Kind() content.Kind { return s.repo.Kind() }

func (s *assignmentService) build(in AssignmentInput) (*domain.Assignment, error) {
	name := strings.TrimSpace(in.Name)
	grade := strings.TrimSpace(in.Grade)
	link := strings.TrimSpace(in.UploadLink)
	if name == "" || grade == "" || link == "" {
		return nil, apierr.InvalidRequest(fmt.Errorf("name, grade and upload_link are required"))
	}

	a := &domain.Assignment{
		Name:       name,
		Grade:      grade,
		UploadLink: link,
	}
	if in.EndDate != "" {
		end, err := time.Parse(domain.EndDateFormat, in.EndDate)
		if err != nil {
			return nil, apierr.InvalidRequest(fmt.Errorf("end_date must use %s: %w", domain.EndDateFormat, err))
		}
		a.EndDate = &end
	}
	if prof := strings.TrimSpace(in.Professor); prof != "" {
		a.Professor = &prof
	}
	return a, nil
}

func (s *assignmentService) Create(ctx context.Context, in AssignmentInput) (*domain.Assignment, error) {
	a, err := s.build(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, nil, a)
	if err != nil {
		s.log.Error("create failed", "error", err)
		return nil, apierr.StoreFailure(err)
	}
	return created, nil
}

func (s *assignmentService) Get(ctx context.Context, id int) (*domain.Assignment, error) {
	a, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if err == content.ErrNotFound {
			return nil, apierr.NotFound(err)
		}
		s.log.Error("get failed", "id", id, "error", err)
		return nil, apierr.StoreFailure(err)
	}
	return a, nil
}

func (s *assignmentService) List(ctx context.Context, grade, search string) ([]*domain.Assignment, error) {
	var (
		items []*domain.Assignment
		err   error
	)
	switch {
	case search != "":
		items, err = s.repo.SearchByName(ctx, nil, search)
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

func (s *assignmentService) Update(ctx context.Context, id int, in AssignmentInput) error {
	a, err := s.build(in)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, nil, id, *a); err != nil {
		s.log.Error("update failed", "id", id, "error", err)
		return apierr.StoreFailure(err)
	}
	return nil
}

func (s *assignmentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, nil, id); err != nil {
		s.log.Error("delete failed", "id", id, "error", err)
		return apierr.StoreFailure(err)
	}
	return nil
}
