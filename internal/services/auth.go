package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ntvhs/portal-backend/internal/config"
	authrepo "github.com/ntvhs/portal-backend/internal/data/repos/auth"
	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
)

type AuthService interface {
	// Login checks the admin credentials and mints an access token backed
	// by a session row. All failures look the same to the caller.
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
	// Validate accepts a token only when its signature verifies and its
	// session row still exists and has not expired.
	Validate(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	sessions authrepo.SessionRepo
	admin    config.Admin
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, sessions authrepo.SessionRepo, cfg *config.Config) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:       db,
		log:      serviceLog,
		sessions: sessions,
		admin:    cfg.Admin,
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.AccessTTL,
	}
}

func (s *authService) credentialsOK(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	if s.admin.PasswordHash != "" {
		return userOK && bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	return userOK && passOK
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if !s.credentialsOK(username, password) {
		s.log.Warn("login rejected", "username", username)
		return "", time.Time{}, apierr.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)
	sessionID := uuid.New()

	claims := jwt.MapClaims{
		"sub": s.admin.Username,
		"sid": sessionID.String(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.log.Error("failed to sign token", "error", err)
		return "", time.Time{}, apierr.StoreFailure(err)
	}

	session := &domain.AdminSession{
		ID:          sessionID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}
	if _, err := s.sessions.Create(ctx, nil, session); err != nil {
		s.log.Error("failed to persist session", "error", err)
		return "", time.Time{}, apierr.StoreFailure(err)
	}

	// Opportunistic housekeeping; a failure here never blocks the login.
	if err := s.sessions.DeleteExpired(ctx, nil, now); err != nil {
		s.log.Warn("failed to prune expired sessions", "error", err)
	}

	s.log.Info("admin logged in", "username", username, "expires_at", expiresAt)
	return token, expiresAt, nil
}

func (s *authService) Validate(ctx context.Context, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return apierr.Unauthorized(fmt.Errorf("invalid token"))
	}

	session, err := s.sessions.GetByToken(ctx, nil, token)
	if err != nil {
		return apierr.Unauthorized(fmt.Errorf("invalid token"))
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return apierr.Unauthorized(fmt.Errorf("invalid token"))
	}
	return nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteByToken(ctx, nil, token); err != nil {
		s.log.Error("failed to delete session", "error", err)
		return apierr.StoreFailure(err)
	}
	return nil
}
