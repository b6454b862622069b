package entity

// Identity is the verified claim set of a session token.
// It is fixed at login; later role or block changes on the account are not
// reflected until a new token is issued.
type Identity struct {
	UserID  int64
	Email   string
	Role    Role
	Blocked bool
}

// IsAdmin reports whether the identity carries the administrator role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
