package content_test

import (
	"context"
	"testing"

	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/data/repos/testutil"
	"github.com/ntvhs/portal-backend/internal/domain"
)

func newVideoRepo(t *testing.T) content.VideoRepo {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	return content.NewVideoRepo(tx, testutil.Logger(t))
}

func sampleVideo(title, grade string) *domain.Video {
	return &domain.Video{
		Title:    title,
		Grade:    grade,
		Filename: "20260831_120000_" + title + ".mp4",
		FileSize: 1024,
	}
}

func TestVideoCreateAndGet(t *testing.T) {
	repo := newVideoRepo(t)
	ctx := context.Background()

	desc := "intro to photosynthesis"
	in := sampleVideo("photosynthesis", "6")
	in.Description = &desc

	created, err := repo.Create(ctx, nil, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "photosynthesis" || got.FileSize != 1024 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("description mismatch: %v", got.Description)
	}
}

func TestVideoUpdateInfoLeavesArtifactAlone(t *testing.T) {
	repo := newVideoRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, sampleVideo("old-title", "5"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newDesc := "remastered"
	if err := repo.UpdateInfo(ctx, nil, created.ID, "new-title", &newDesc, "7"); err != nil {
		t.Fatalf("UpdateInfo: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "new-title" || got.Grade != "7" {
		t.Errorf("metadata not updated: %+v", got)
	}
	if got.Filename != created.Filename || got.FileSize != created.FileSize {
		t.Errorf("artifact fields changed: %+v", got)
	}
	if got.UpdatedAt == nil {
		t.Errorf("updated_at not stamped")
	}
}

func TestVideoUpdateInfoMissingIDSucceeds(t *testing.T) {
	repo := newVideoRepo(t)
	if err := repo.UpdateInfo(context.Background(), nil, 999999, "ghost", nil, "1"); err != nil {
		t.Fatalf("update of missing id should report success, got %v", err)
	}
}

func TestVideoSearchByTitle(t *testing.T) {
	repo := newVideoRepo(t)
	ctx := context.Background()

	for _, title := range []string{"Cell Division", "cell membranes", "volcanoes"} {
		if _, err := repo.Create(ctx, nil, sampleVideo(title, "8")); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}

	hits, err := repo.SearchByTitle(ctx, nil, "cell")
	if err != nil {
		t.Fatalf("SearchByTitle: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("search returned %d rows, want 2", len(hits))
	}
}

func TestVideoDelete(t *testing.T) {
	repo := newVideoRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, sampleVideo("doomed", "3"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, nil, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, created.ID); err != content.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
