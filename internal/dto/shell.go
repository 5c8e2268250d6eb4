package dto

// View names rendered by the shell
const (
	ViewAuth                 = "auth"
	ViewProfessorDashboard   = "professor_dashboard"
	ViewStudentDashboard     = "student_dashboard"
	ViewUserList             = "userList"
	ViewRegistrationRequests = "registrationRequests"
)

// ShellView what the client should render for the current session
type ShellView struct {
	View            string `json:"view"`
	Title           string `json:"title,omitempty"`
	Subtitle        string `json:"subtitle,omitempty"`
	Username        string `json:"username,omitempty"`
	Role            string `json:"role,omitempty"`
	AdminView       string `json:"admin_view,omitempty"`
	ViewAsStudent   bool   `json:"view_as_student"`
	CanToggleView   bool   `json:"can_toggle_view"`
	DrawerAvailable bool   `json:"drawer_available"`
	DrawerOpen      bool   `json:"drawer_open"`
	ReturnControl   bool   `json:"return_control"`
	UploadEnabled   bool   `json:"upload_enabled"`
	CatalogEditable bool   `json:"catalog_editable"`
}

// SetModeRequest admin dashboard selection
type SetModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=userList registrationRequests"`
}

// DrawerRequest open or close the admin drawer
type DrawerRequest struct {
	Open *bool `json:"open" binding:"required"`
}
