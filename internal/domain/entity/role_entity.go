package entity

// Role is the authorization role stored on a user.
// Only stored for now; nothing enforces it yet.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned when registration does not name one.
const DefaultRole = RoleUser

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// RoleOrDefault returns r, or DefaultRole when r is empty.
func RoleOrDefault(r Role) Role {
	if r == "" {
		return DefaultRole
	}
	return r
}
