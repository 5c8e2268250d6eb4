package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
)

const (
	titleStudent   = "Welcome to Syllabus ChatBot"
	titleProfessor = "Welcome Professor "
)

// ShellService decides which dashboard a session sees
type ShellService interface {
	// Render caller nil renders the auth view
	Render(ctx context.Context, caller *Caller) (dto.ShellView, error)
	SetMode(ctx context.Context, caller *Caller, mode model.DashboardMode) (dto.ShellView, error)
	Return(ctx context.Context, caller *Caller) (dto.ShellView, error)
	SetDrawer(ctx context.Context, caller *Caller, open bool) (dto.ShellView, error)
	ToggleViewAsStudent(ctx context.Context, caller *Caller) (dto.ShellView, error)
	// FacultyView reports whether caller may use authoring features right now
	FacultyView(ctx context.Context, caller *Caller) (bool, error)
}

type shellService struct {
	store  *session.Store
	logger *zap.Logger
}

// NewShellService creates a ShellService
func NewShellService(store *session.Store, logger *zap.Logger) ShellService {
	return &shellService{store: store, logger: logger}
}

func (s *shellService) Render(ctx context.Context, caller *Caller) (dto.ShellView, error) {
	if caller == nil {
		return dto.ShellView{View: dto.ViewAuth}, nil
	}
	vs, err := s.store.ViewState(ctx, caller.SessionID)
	if err != nil {
		return dto.ShellView{}, err
	}
	mode, err := s.store.AdminView(ctx, caller.SessionID)
	if err != nil {
		return dto.ShellView{}, err
	}
	return render(caller.Identity, mode, vs), nil
}

// render pure view decision
func render(id model.Identity, mode model.DashboardMode, vs *model.ViewState) dto.ShellView {
	role := id.Role
	viewAsStudent := role.CanAuthor() && vs.ViewAsStudent
	drawerAvailable := role.IsAdmin() && !viewAsStudent

	v := dto.ShellView{
		Username:        id.Username,
		Role:            role.String(),
		ViewAsStudent:   viewAsStudent,
		CanToggleView:   role.CanAuthor(),
		DrawerAvailable: drawerAvailable,
		DrawerOpen:      drawerAvailable && vs.DrawerOpen,
	}

	if role.IsAdmin() && mode != model.ModeNone {
		v.AdminView = string(mode)
		v.ReturnControl = true
		v.DrawerOpen = false
		switch mode {
		case model.ModeUserList:
			v.View, v.Title = dto.ViewUserList, "User List"
		case model.ModeRegistrationRequests:
			v.View, v.Title = dto.ViewRegistrationRequests, "Registration Requests"
		}
		return v
	}

	if role.CanAuthor() && !viewAsStudent {
		v.View = dto.ViewProfessorDashboard
		v.Title = titleProfessor + id.Username
		v.UploadEnabled = true
		v.CatalogEditable = true
		return v
	}

	v.View = dto.ViewStudentDashboard
	v.Title = titleStudent
	if role.IsGuest() {
		v.Subtitle = "You are browsing as a guest."
	} else {
		v.Subtitle = "You are logged in as a student."
	}
	return v
}

func (s *shellService) SetMode(ctx context.Context, caller *Caller, mode model.DashboardMode) (dto.ShellView, error) {
	if !caller.Identity.Role.IsAdmin() {
		return dto.ShellView{}, ErrForbidden
	}
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	vs, err := s.store.ViewState(ctx, caller.SessionID)
	if err != nil {
		return dto.ShellView{}, err
	}
	vs.DrawerOpen = false
	if err := s.store.SaveViewState(ctx, caller.SessionID, vs); err != nil {
		return dto.ShellView{}, err
	}
	if err := s.store.SetAdminView(ctx, caller.SessionID, mode); err != nil {
		return dto.ShellView{}, err
	}
	return render(caller.Identity, mode, vs), nil
}

func (s *shellService) Return(ctx context.Context, caller *Caller) (dto.ShellView, error) {
	if err := s.store.SetAdminView(ctx, caller.SessionID, model.ModeNone); err != nil {
		return dto.ShellView{}, err
	}
	return s.Render(ctx, caller)
}

func (s *shellService) SetDrawer(ctx context.Context, caller *Caller, open bool) (dto.ShellView, error) {
	if !caller.Identity.Role.IsAdmin() {
		return dto.ShellView{}, ErrForbidden
	}
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	vs, err := s.store.ViewState(ctx, caller.SessionID)
	if err != nil {
		return dto.ShellView{}, err
	}
	if vs.ViewAsStudent && open {
		return dto.ShellView{}, ErrFacultyViewOnly
	}
	vs.DrawerOpen = open
	if err := s.store.SaveViewState(ctx, caller.SessionID, vs); err != nil {
		return dto.ShellView{}, err
	}
	mode, err := s.store.AdminView(ctx, caller.SessionID)
	if err != nil {
		return dto.ShellView{}, err
	}
	return render(caller.Identity, mode, vs), nil
}

func (s *shellService) ToggleViewAsStudent(ctx context.Context, caller *Caller) (dto.ShellView, error) {
	if !caller.Identity.Role.CanAuthor() {
		return dto.ShellView{}, ErrForbidden
	}
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	vs, err := s.store.ViewState(ctx, caller.SessionID)
	if err != nil {
		return dto.ShellView{}, err
	}
	vs.ViewAsStudent = !vs.ViewAsStudent
	vs.DrawerOpen = false
	if err := s.store.SaveViewState(ctx, caller.SessionID, vs); err != nil {
		return dto.ShellView{}, err
	}
	mode, err := s.store.AdminView(ctx, caller.SessionID)
	if err != nil {
		return dto.ShellView{}, err
	}
	return render(caller.Identity, mode, vs), nil
}

func (s *shellService) FacultyView(ctx context.Context, caller *Caller) (bool, error) {
	return facultyView(ctx, s.store, caller)
}
