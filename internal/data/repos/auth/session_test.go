package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	authrepo "github.com/ntvhs/portal-backend/internal/data/repos/auth"
	"github.com/ntvhs/portal-backend/internal/data/repos/testutil"
	"github.com/ntvhs/portal-backend/internal/domain"
)

func newSessionRepo(t *testing.T) authrepo.SessionRepo {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	return authrepo.NewSessionRepo(tx, testutil.Logger(t))
}

func session(token string, expiresAt time.Time) *domain.AdminSession {
	return &domain.AdminSession{
		ID:          uuid.New(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()

	in := session("token-a", time.Now().Add(time.Hour))
	if _, err := repo.Create(ctx, nil, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByToken(ctx, nil, "token-a")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if got.ID != in.ID {
		t.Errorf("id mismatch: %v vs %v", got.ID, in.ID)
	}
	if _, err := repo.GetByToken(ctx, nil, "unknown"); err == nil {
		t.Errorf("unknown token should not resolve")
	}
}

func TestSessionDeleteByToken(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, nil, session("token-b", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.DeleteByToken(ctx, nil, "token-b"); err != nil {
		t.Fatalf("DeleteByToken: %v", err)
	}
	if _, err := repo.GetByToken(ctx, nil, "token-b"); err == nil {
		t.Fatalf("session still present after delete")
	}
	if err := repo.DeleteByToken(ctx, nil, "token-b"); err != nil {
		t.Errorf("deleting an unknown token should succeed, got %v", err)
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	repo := newSessionRepo(t)
	ctx := context.Background()
	now := time.Now()

	if _, err := repo.Create(ctx, nil, session("stale", now.Add(-time.Minute))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, nil, session("fresh", now.Add(time.Hour))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.DeleteExpired(ctx, nil, now); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if _, err := repo.GetByToken(ctx, nil, "stale"); err == nil {
		t.Errorf("expired session survived")
	}
	if _, err := repo.GetByToken(ctx, nil, "fresh"); err != nil {
		t.Errorf("live session pruned: %v", err)
	}
}
