package model

// DashboardMode admin dashboard selection; empty means the default dashboard
type DashboardMode string

const (
	ModeNone                 DashboardMode = ""
	ModeUserList             DashboardMode = "userList"
	ModeRegistrationRequests DashboardMode = "registrationRequests"
)

// Valid reports whether m is a known mode
func (m DashboardMode) Valid() bool {
	switch m {
	case ModeNone, ModeUserList, ModeRegistrationRequests:
		return true
	}
	return false
}

// ModalAction what the open modal does with its record
type ModalAction string

const (
	ModalView   ModalAction = "view"
	ModalEdit   ModalAction = "edit"
	ModalDelete ModalAction = "delete"
)

// Valid reports whether a is a known action
func (a ModalAction) Valid() bool {
	return a == ModalView || a == ModalEdit || a == ModalDelete
}

// Mutating edit and delete change the catalog
func (a ModalAction) Mutating() bool {
	return a == ModalEdit || a == ModalDelete
}

// Selection the single open modal of a session
type Selection struct {
	Action   ModalAction `json:"action"`
	RecordID string      `json:"record_id"`
}

// ViewState per-session navigation state. AdminView is stored under its own key.
type ViewState struct {
	ViewAsStudent bool       `json:"view_as_student"`
	DrawerOpen    bool       `json:"drawer_open"`
	Modal         *Selection `json:"modal,omitempty"`
}
