package model

// Permission is the default access level a collection grants team members.
type Permission string

const (
	PermissionReadWrite Permission = "read_write"
	PermissionRead      Permission = "read"
	// PermissionNone marks a private collection, reachable only through memberships.
	PermissionNone Permission = ""
)

// Collection is a named, permissioned grouping of documents.
type Collection struct {
	ID          string
	Name        string
	Icon        string
	Color       string
	Index       int
	Permission  Permission
	Memberships map[string]Permission // user id -> permission
}

// Team is the workspace the current user belongs to.
type Team struct {
	ID    string
	Name  string
	Color string
}

// Initials returns up to two upper-case letters used for the team logo.
func (t Team) Initials() string {
	var out []rune
	word := true
	for _, r := range t.Name {
		if r == ' ' || r == '-' || r == '_' {
			word = true
			continue
		}
		if word {
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			out = append(out, r)
			word = false
			if len(out) == 2 {
				break
			}
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// Role is the team-level role of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// User is the signed-in user.
type User struct {
	ID   string
	Name string
	Role Role
}
