package domain

// RoleAdmin is the profile role that unlocks the admin surface.
const RoleAdmin = "admin"

// Principal is the signed-in user as reported by the identity provider.
// A nil *Principal means nobody is logged in.
type Principal struct {
	UserID      string
	DisplayName string
	Role        string
}
