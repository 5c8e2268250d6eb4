package service

import (
	"context"

	"github.com/aakash-73/Se2-Project-v1/internal/session"
)

// facultyView author role not currently viewing as student
func facultyView(ctx context.Context, store *session.Store, caller *Caller) (bool, error) {
	if !caller.Identity.Role.CanAuthor() {
		return false, nil
	}
	vs, err := store.ViewState(ctx, caller.SessionID)
	if err != nil {
		return false, err
	}
	return !vs.ViewAsStudent, nil
}

// requireAuthor author capability in the faculty view
func requireAuthor(ctx context.Context, store *session.Store, caller *Caller) error {
	if !caller.Identity.Role.CanAuthor() {
		return ErrForbidden
	}
	ok, err := facultyView(ctx, store, caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFacultyViewOnly
	}
	return nil
}

// requireAdmin admin capability
func requireAdmin(caller *Caller) error {
	if !caller.Identity.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
