package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

func sampleMetadata() *dto.DraftMetadataRequest {
	return &dto.DraftMetadataRequest{
		CourseID:            "CS101",
		CourseName:          "Intro to CS",
		DepartmentID:        "CS",
		DepartmentName:      "Computer Science",
		SyllabusDescription: "Fall syllabus",
	}
}

func stageReadyDraft(t *testing.T, env *testEnv, caller *Caller) {
	t.Helper()
	ctx := context.Background()
	if _, err := env.svc.Upload.SaveMetadata(ctx, caller, sampleMetadata()); err != nil {
		t.Fatalf("SaveMetadata error: %v", err)
	}
	if _, err := env.svc.Upload.StageFile(ctx, caller, "syllabus.pdf", samplePDF); err != nil {
		t.Fatalf("StageFile error: %v", err)
	}
	if _, err := env.svc.Upload.OpenPreview(ctx, caller); err != nil {
		t.Fatalf("OpenPreview error: %v", err)
	}
}

func TestUpload_RequiresFacultyView(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	student := env.signIn("stud", model.RoleStudent)
	if _, err := env.svc.Upload.Draft(ctx, student); !errors.Is(err, ErrForbidden) {
		t.Errorf("student error = %v, want ErrForbidden", err)
	}

	prof := env.signIn("prof", model.RoleProfessor)
	if _, err := env.svc.Shell.ToggleViewAsStudent(ctx, prof); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Upload.SaveMetadata(ctx, prof, sampleMetadata()); !errors.Is(err, ErrFacultyViewOnly) {
		t.Errorf("view-as-student error = %v, want ErrFacultyViewOnly", err)
	}
}

func TestStageFile_InvalidClearsPrevious(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	prof := env.signIn("prof", model.RoleProfessor)

	d, err := env.svc.Upload.StageFile(ctx, prof, "syllabus.pdf", samplePDF)
	if err != nil {
		t.Fatalf("StageFile error: %v", err)
	}
	if d.File == nil || d.File.Name != "syllabus.pdf" || d.File.Size != len(samplePDF) {
		t.Fatalf("staged = %+v", d.File)
	}

	_, err = env.svc.Upload.StageFile(ctx, prof, "notes.txt", []byte("plain text"))
	e, ok := errs.As(err)
	if !ok || e.Message != MsgInvalidPDF {
		t.Fatalf("error = %v, want %q", err, MsgInvalidPDF)
	}

	d, _ = env.svc.Upload.Draft(ctx, prof)
	if d.File != nil {
		t.Errorf("previous file still staged: %+v", d.File)
	}
	if _, err := env.svc.Upload.StagedFile(ctx, prof); err == nil {
		t.Error("StagedFile returned bytes after a rejected file")
	}
}

func TestStageFile_RejectsRenamedNonPDF(t *testing.T) {
	env := newTestEnv()
	prof := env.signIn("prof", model.RoleProfessor)

	_, err := env.svc.Upload.StageFile(context.Background(), prof, "fake.pdf", []byte("just some text"))
	if e, ok := errs.As(err); !ok || e.Message != MsgInvalidPDF {
		t.Errorf("error = %v, want %q", err, MsgInvalidPDF)
	}
}

func TestStageFile_TooLarge(t *testing.T) {
	env := newTestEnv()
	prof := env.signIn("prof", model.RoleProfessor)

	big := make([]byte, 2<<20)
	copy(big, samplePDF)
	_, err := env.svc.Upload.StageFile(context.Background(), prof, "big.pdf", big)
	if !errs.IsKind(err, errs.KindValidation) {
		t.Errorf("error = %v, want validation", err)
	}
	if got := errs.UserMessage(err, ""); got != "File exceeds the 1 MB limit." {
		t.Errorf("message = %q", got)
	}
}

func TestCheckPDF_LimitMessageBelowOneMB(t *testing.T) {
	tests := []struct {
		limit int64
		want  string
	}{
		{512 << 10, "File exceeds the 512 KB limit."},
		{100, "File exceeds the 100 bytes limit."},
		{3 << 20, "File exceeds the 3 MB limit."},
	}
	for _, tt := range tests {
		data := make([]byte, tt.limit+1)
		copy(data, samplePDF)
		_, err := checkPDF("big.pdf", data, tt.limit)
		if got := errs.UserMessage(err, ""); got != tt.want {
			t.Errorf("limit %d: message = %q, want %q", tt.limit, got, tt.want)
		}
	}
}

func TestOpenPreview_RequiresFileThenMetadata(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	prof := env.signIn("prof", model.RoleProfessor)

	_, err := env.svc.Upload.OpenPreview(ctx, prof)
	if e, ok := errs.As(err); !ok || e.Message != MsgSelectPDF {
		t.Fatalf("error = %v, want %q", err, MsgSelectPDF)
	}

	if _, err := env.svc.Upload.StageFile(ctx, prof, "syllabus.pdf", samplePDF); err != nil {
		t.Fatal(err)
	}
	_, err = env.svc.Upload.OpenPreview(ctx, prof)
	if e, ok := errs.As(err); !ok || e.Field != "course_id" {
		t.Fatalf("error = %v, want course_id validation", err)
	}

	if _, err := env.svc.Upload.SaveMetadata(ctx, prof, sampleMetadata()); err != nil {
		t.Fatal(err)
	}
	p, err := env.svc.Upload.OpenPreview(ctx, prof)
	if err != nil {
		t.Fatalf("OpenPreview error: %v", err)
	}
	if !p.Draft.PreviewOpen || p.PreviewURL != previewFileURL || p.Draft.CourseName != "Intro to CS" {
		t.Errorf("preview = %+v", p)
	}
}

func TestConfirm_RequiresOpenPreview(t *testing.T) {
	env := newTestEnv()
	prof := env.signIn("prof", model.RoleProfessor)

	if _, _, err := env.svc.Upload.Confirm(context.Background(), prof); !errors.Is(err, ErrPreviewClosed) {
		t.Errorf("error = %v, want ErrPreviewClosed", err)
	}
}

func TestConfirm_Success(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	prof := env.signIn("prof", model.RoleProfessor)

	before, err := env.svc.Catalog.List(ctx, prof, "")
	if err != nil {
		t.Fatal(err)
	}
	stageReadyDraft(t, env, prof)

	msg, cat, err := env.svc.Upload.Confirm(ctx, prof)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if msg != "Syllabus added successfully" {
		t.Errorf("msg = %q", msg)
	}
	if cat == nil || cat.Total != 1 || cat.Version <= before.Version {
		t.Fatalf("catalog = %+v, want one record at a newer version than %d", cat, before.Version)
	}
	if len(env.be.added) != 1 || env.be.added[0].CourseID != "CS101" {
		t.Errorf("added = %+v", env.be.added)
	}

	d, _ := env.svc.Upload.Draft(ctx, prof)
	if d.File != nil || d.CourseID != "" || d.PreviewOpen {
		t.Errorf("draft not cleared: %+v", d)
	}
}

func TestConfirm_FailureKeepsDraft(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	prof := env.signIn("prof", model.RoleProfessor)
	stageReadyDraft(t, env, prof)
	env.be.addErr = errs.Service("add_syllabus", http.StatusInternalServerError, "")

	_, _, err := env.svc.Upload.Confirm(ctx, prof)
	if got := errs.UserMessage(err, ""); got != msgUploadFailed {
		t.Errorf("message = %q, want %q", got, msgUploadFailed)
	}

	d, _ := env.svc.Upload.Draft(ctx, prof)
	if d.File == nil || !d.PreviewOpen || d.CourseID != "CS101" {
		t.Errorf("draft lost after failure: %+v", d)
	}

	env.be.addErr = nil
	if _, _, err := env.svc.Upload.Confirm(ctx, prof); err != nil {
		t.Errorf("retry error: %v", err)
	}
}

func TestSaveMetadata_ClosesPreview(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	prof := env.signIn("prof", model.RoleProfessor)
	stageReadyDraft(t, env, prof)

	d, err := env.svc.Upload.SaveMetadata(ctx, prof, sampleMetadata())
	if err != nil {
		t.Fatal(err)
	}
	if d.PreviewOpen {
		t.Error("editing metadata left the preview open")
	}
	if d.File == nil {
		t.Error("editing metadata dropped the staged file")
	}
}

func TestDiscard(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	prof := env.signIn("prof", model.RoleProfessor)
	stageReadyDraft(t, env, prof)

	if err := env.svc.Upload.Discard(ctx, prof); err != nil {
		t.Fatal(err)
	}
	d, _ := env.svc.Upload.Draft(ctx, prof)
	if d.File != nil || d.PreviewOpen {
		t.Errorf("draft = %+v after discard", d)
	}
}
