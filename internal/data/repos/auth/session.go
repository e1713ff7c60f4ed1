package auth

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, s *domain.AdminSession) (*domain.AdminSession, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*domain.AdminSession, error)
	DeleteByToken(ctx context.Context, tx *gorm.DB, token string) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (r *sessionRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx)
}

func (r *sessionRepo) Create(ctx context.Context, tx *gorm.DB, s *domain.AdminSession) (*domain.AdminSession, error) {
	if err := r.conn(ctx, tx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sessionRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*domain.AdminSession, error) {
	var result domain.AdminSession
	if err := r.conn(ctx, tx).Where("access_token = ?", token).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *sessionRepo) DeleteByToken(ctx context.Context, tx *gorm.DB, token string) error {
	return r.conn(ctx, tx).
		Where("access_token = ?", token).
		Delete(&domain.AdminSession{}).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) error {
	return r.conn(ctx, tx).
		Where("expires_at < ?", now).
		Delete(&domain.AdminSession{}).Error
}
