package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/data/repos/testutil"
	"github.com/ntvhs/portal-backend/internal/domain"
)

func newQuizRepo(t *testing.T) content.AssignmentRepo {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	return content.NewAssignmentRepo(tx, testutil.Logger(t), content.KindQuiz)
}

func sampleAssignment(name, grade string) *domain.Assignment {
	return &domain.Assignment{
		Name:       name,
		Grade:      grade,
		UploadLink: "https://forms.example.com/" + name,
	}
}

func TestAssignmentCreateAndGet(t *testing.T) {
	repo := newQuizRepo(t)
	ctx := context.Background()

	end := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	prof := "Ms. Rivera"
	in := sampleAssignment("algebra-quiz", "7")
	in.EndDate = &end
	in.Professor = &prof

	created, err := repo.Create(ctx, nil, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected positive id, got %d", created.ID)
	}

	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "algebra-quiz" || got.Grade != "7" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Errorf("end date mismatch: %v", got.EndDate)
	}
	if got.Professor == nil || *got.Professor != prof {
		t.Errorf("professor mismatch: %v", got.Professor)
	}
	if got.UpdatedAt != nil {
		t.Errorf("fresh row should have nil updated_at, got %v", got.UpdatedAt)
	}
}

func TestAssignmentIDsAreMonotonic(t *testing.T) {
	repo := newQuizRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, nil, sampleAssignment("first", "5"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := repo.Create(ctx, nil, sampleAssignment("second", "5"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("ids not increasing: %d then %d", first.ID, second.ID)
	}
}

func TestAssignmentGetMissing(t *testing.T) {
	repo := newQuizRepo(t)
	if _, err := repo.GetByID(context.Background(), nil, 999999); err != content.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignmentUpdateReplacesAllFields(t *testing.T) {
	repo := newQuizRepo(t)
	ctx := context.Background()

	end := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	prof := "Mr. Okafor"
	in := sampleAssignment("before", "6")
	in.EndDate = &end
	in.Professor = &prof
	created, err := repo.Create(ctx, nil, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Omitted optional fields clear the stored values.
	replacement := domain.Assignment{
		Name:       "after",
		Grade:      "8",
		UploadLink: "https://forms.example.com/after",
	}
	if err := repo.Update(ctx, nil, created.ID, replacement); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "after" || got.Grade != "8" {
		t.Errorf("fields not replaced: %+v", got)
	}
	if got.EndDate != nil || got.Professor != nil {
		t.Errorf("optional fields not cleared: end=%v prof=%v", got.EndDate, got.Professor)
	}
	if got.UpdatedAt == nil {
		t.Errorf("updated_at not stamped")
	}
	if got.CreatedAt.Unix() != created.CreatedAt.Unix() {
		t.Errorf("created_at changed on update")
	}
}

func TestAssignmentUpdateMissingIDSucceeds(t *testing.T) {
	repo := newQuizRepo(t)
	if err := repo.Update(context.Background(), nil, 999999, *sampleAssignment("ghost", "1")); err != nil {
		t.Fatalf("update of missing id should report success, got %v", err)
	}
}

func TestAssignmentDeleteIdempotent(t *testing.T) {
	repo := newQuizRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, sampleAssignment("to-delete", "4"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, nil, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, created.ID); err != content.ErrNotFound {
		t.Fatalf("row still present after delete: %v", err)
	}
	if err := repo.Delete(ctx, nil, created.ID); err != nil {
		t.Fatalf("second delete should succeed, got %v", err)
	}
}

func TestAssignmentListAndFilter(t *testing.T) {
	repo := newQuizRepo(t)
	ctx := context.Background()

	names := []string{"fractions quiz", "Geometry Quiz", "spelling test"}
	grades := []string{"5", "5", "6"}
	for i := range names {
		if _, err := repo.Create(ctx, nil, sampleAssignment(names[i], grades[i])); err != nil {
			t.Fatalf("Create %q: %v", names[i], err)
		}
	}

	all, err := repo.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll returned %d rows, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID < all[i].ID {
			t.Errorf("rows not newest first: %d before %d", all[i-1].ID, all[i].ID)
		}
	}

	fives, err := repo.ListByGrade(ctx, nil, "5")
	if err != nil {
		t.Fatalf("ListByGrade: %v", err)
	}
	if len(fives) != 2 {
		t.Errorf("grade filter returned %d rows, want 2", len(fives))
	}
	for _, a := range fives {
		if a.Grade != "5" {
			t.Errorf("grade filter leaked row with grade %q", a.Grade)
		}
	}

	hits, err := repo.SearchByName(ctx, nil, "QUIZ")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("case-insensitive search returned %d rows, want 2", len(hits))
	}

	none, err := repo.ListByGrade(ctx, nil, "12")
	if err != nil {
		t.Fatalf("ListByGrade empty: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty result, got %d rows", len(none))
	}
}

func TestAssignmentKindsAreIsolated(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	quizzes := content.NewAssignmentRepo(tx, log, content.KindQuiz)
	activities := content.NewAssignmentRepo(tx, log, content.KindActivity)
	ctx := context.Background()

	if _, err := quizzes.Create(ctx, nil, sampleAssignment("only-a-quiz", "3")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rows, err := activities.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("quiz row leaked into activities table")
	}
}
