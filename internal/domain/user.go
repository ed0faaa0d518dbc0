package domain

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
)

type User struct {
	Id         string
	Name       string
	Email      string
	PassHash   string
	Role       UserRole
	Department string
	Skills     []string
	CreatedAt  time.Time
}

// UserSnapshot is the display projection embedded into applications,
// invitations and chatroom messages. Captured at creation time and
// intentionally never re-joined against the live user record.
type UserSnapshot struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		Id:         u.Id,
		Name:       u.Name,
		Role:       string(u.Role),
		Department: u.Department,
	}
}
