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

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, b *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*domain.Book, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Book, error)
	ListByGrade(ctx context.Context, tx *gorm.DB, grade string) ([]*domain.Book, error)
	SearchByTitle(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Book, error)
	UpdateInfo(ctx context.Context, tx *gorm.DB, id int, title string, description *string, grade string) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	repoLog := baseLog.With("repo", "BookRepo")
	return &bookRepo{db: db, log: repoLog}
}

func (r *bookRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx)
}

func (r *bookRepo) Create(ctx context.Context, tx *gorm.DB, b *domain.Book) (*domain.Book, error) {
	if err := r.conn(ctx, tx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*domain.Book, error) {
	var result domain.Book
	err := r.conn(ctx, tx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *bookRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Book, error) {
	var results []*domain.Book
	if err := r.conn(ctx, tx).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepo) ListByGrade(ctx context.Context, tx *gorm.DB, grade string) ([]*domain.Book, error) {
	var results []*domain.Book
	if err := r.conn(ctx, tx).
		Where("grade = ?", grade).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepo) SearchByTitle(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Book, error) {
	var results []*domain.Book
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.conn(ctx, tx).
		Where("LOWER(title) LIKE ?", pattern).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepo) UpdateInfo(ctx context.Context, tx *gorm.DB, id int, title string, description *string, grade string) error {
	now := time.Now().UTC()
	return r.conn(ctx, tx).
		Model(&domain.Book{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       title,
			"description": description,
			"grade":       grade,
			"updated_at":  now,
		}).Error
}

func (r *bookRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	return r.conn(ctx, tx).Where("id = ?", id).Delete(&domain.Book{}).Error
}
