package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
)

var ErrNotFound = errors.New("record not found")

type AssignmentRepo interface {
	Kind() Kind
	Create(ctx context.Context, tx *gorm.DB, a *domain.Assignment) (*domain.Assignment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*domain.Assignment, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Assignment, error)
	ListByGrade(ctx context.Context, tx *gorm.DB, grade string) ([]*domain.Assignment, error)
	SearchByName(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Assignment, error)
	Update(ctx context.Context, tx *gorm.DB, id int, a domain.Assignment) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type assignmentRepo struct {
	db   *gorm.DB
	log  *logger.Logger
	kind Kind
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger, kind Kind) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo", "table", kind.Table())
	return &assignmentRepo{db: db, log: repoLog, kind: kind}
}

func (r *assignmentRepo) Kind() Kind { return r.kind }

func (r *assignmentRepo) table(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Table(r.kind.Table())
}

func (r *assignmentRepo) Create(ctx context.Context, tx *gorm.DB, a *domain.Assignment) (*domain.Assignment, error) {
	if err := r.table(ctx, tx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*domain.Assignment, error) {
	var result domain.Assignment
	err := r.table(ctx, tx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *assignmentRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Assignment, error) {
	var results []*domain.Assignment
	if err := r.table(ctx, tx).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assignmentRepo) ListByGrade(ctx context.Context, tx *gorm.DB, grade string) ([]*domain.Assignment, error) {
	var results []*domain.Assignment
	if err := r.table(ctx, tx).
		Where("grade = ?", grade).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SearchByName matches case-insensitively anywhere in the name; an empty
// query matches every row. LOWER/LIKE keeps the query portable across the
// postgres and sqlite drivers.
func (r *assignmentRepo) SearchByName(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Assignment, error) {
	var results []*domain.Assignment
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.table(ctx, tx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Update replaces every editable field and stamps updated_at. RowsAffected
// is deliberately not inspected: updating a missing id reports success,
// matching the store contract callers rely on.
func (r *assignmentRepo) Update(ctx context.Context, tx *gorm.DB, id int, a domain.Assignment) error {
	now := time.Now().UTC()
	return r.table(ctx, tx).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        a.Name,
			"grade":       a.Grade,
			"end_date":    a.EndDate,
			"upload_link": a.UploadLink,
			"professor":   a.Professor,
			"updated_at":  now,
		}).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	return r.table(ctx, tx).Where("id = ?", id).Delete(&domain.Assignment{}).Error
}
