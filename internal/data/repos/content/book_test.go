package content_test

import (
	"context"
	"testing"

	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/data/repos/testutil"
	"github.com/ntvhs/portal-backend/internal/domain"
)

func newBookRepo(t *testing.T) content.BookRepo {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	return content.NewBookRepo(tx, testutil.Logger(t))
}

func sampleBook(title, grade string) *domain.Book {
	return &domain.Book{
		Title:       title,
		Grade:       grade,
		PDFFilename: "20260831_120000_" + title + ".pdf",
		FileSize:    2048,
	}
}

func TestBookCreateWithoutPicture(t *testing.T) {
	repo := newBookRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, sampleBook("atlas", "4"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PictureFilename != nil {
		t.Errorf("picture should stay unset, got %v", got.PictureFilename)
	}
}

func TestBookCreateWithPicture(t *testing.T) {
	repo := newBookRepo(t)
	ctx := context.Background()

	pic := "20260831_120000_atlas.png"
	in := sampleBook("atlas-illustrated", "4")
	in.PictureFilename = &pic

	created, err := repo.Create(ctx, nil, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PictureFilename == nil || *got.PictureFilename != pic {
		t.Errorf("picture mismatch: %v", got.PictureFilename)
	}
}

func TestBookListByGrade(t *testing.T) {
	repo := newBookRepo(t)
	ctx := context.Background()

	for _, grade := range []string{"4", "4", "9"} {
		if _, err := repo.Create(ctx, nil, sampleBook("reader-"+grade, grade)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	rows, err := repo.ListByGrade(ctx, nil, "4")
	if err != nil {
		t.Fatalf("ListByGrade: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("grade filter returned %d rows, want 2", len(rows))
	}
}

func TestBookUpdateInfoMissingIDSucceeds(t *testing.T) {
	repo := newBookRepo(t)
	if err := repo.UpdateInfo(context.Background(), nil, 999999, "ghost", nil, "1"); err != nil {
		t.Fatalf("update of missing id should report success, got %v", err)
	}
}
