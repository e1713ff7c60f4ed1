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

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, v *domain.Video) (*domain.Video, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*domain.Video, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Video, error)
	ListByGrade(ctx context.Context, tx *gorm.DB, grade string) ([]*domain.Video, error)
	SearchByTitle(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Video, error)
	// UpdateInfo touches descriptive metadata only; the artifact reference
	// is immutable after upload.
	UpdateInfo(ctx context.Context, tx *gorm.DB, id int, title string, description *string, grade string) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	repoLog := baseLog.With("repo", "VideoRepo")
	return &videoRepo{db: db, log: repoLog}
}

func (r *videoRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx)
}

func (r *videoRepo) Create(ctx context.Context, tx *gorm.DB, v *domain.Video) (*domain.Video, error) {
	if err := r.conn(ctx, tx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func (r *videoRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*domain.Video, error) {
	var result domain.Video
	err := r.conn(ctx, tx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *videoRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Video, error) {
	var results []*domain.Video
	if err := r.conn(ctx, tx).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoRepo) ListByGrade(ctx context.Context, tx *gorm.DB, grade string) ([]*domain.Video, error) {
	var results []*domain.Video
	if err := r.conn(ctx, tx).
		Where("grade = ?", grade).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoRepo) SearchByTitle(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Video, error) {
	var results []*domain.Video
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.conn(ctx, tx).
		Where("LOWER(title) LIKE ?", pattern).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoRepo) UpdateInfo(ctx context.Context, tx *gorm.DB, id int, title string, description *string, grade string) error {
	now := time.Now().UTC()
	return r.conn(ctx, tx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       title,
			"description": description,
			"grade":       grade,
			"updated_at":  now,
		}).Error
}

func (r *videoRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	return r.conn(ctx, tx).Where("id = ?", id).Delete(&domain.Video{}).Error
}
