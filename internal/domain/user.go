package domain

import "time"

// User is the profile document kept alongside the identity provider account.
type User struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the profile unlocks the admin surface.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProfileUpdate holds the fields a user may change on their own profile.
type ProfileUpdate struct {
	FullName string
	Email    string
	Phone    string
}
