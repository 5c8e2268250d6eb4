package model

// Role user_type as reported by the Auth Service
type Role string

const (
	RoleStudent        Role = "student"
	RoleProfessor      Role = "professor"
	RoleProfessorAdmin Role = "professor & admin"
	RoleGuest          Role = "guest"
)

// ParseRole maps a backend user_type onto a known role; unknown values fall back to student
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleProfessor, RoleProfessorAdmin, RoleGuest:
		return Role(s)
	default:
		return RoleStudent
	}
}

// CanAuthor professors may upload, edit and delete syllabi
func (r Role) CanAuthor() bool {
	return r == RoleProfessor || r == RoleProfessorAdmin
}

// IsAdmin admin dashboards and the drawer
func (r Role) IsAdmin() bool {
	return r == RoleProfessorAdmin
}

// IsGuest read-only visitor without backend credentials
func (r Role) IsGuest() bool {
	return r == RoleGuest
}

func (r Role) String() string { return string(r) }

// Identity the signed-in principal of a session
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// GuestIdentity identity created by the guest bypass
func GuestIdentity() Identity {
	return Identity{Username: "guest", Role: RoleGuest}
}
