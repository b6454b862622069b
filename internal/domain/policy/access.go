// Package policy holds the authorization rules for mutating resources.
package policy

import "github.com/oksasatya/go-blog-backend/internal/domain/entity"

// CanMutate reports whether caller may modify a resource owned by ownerID.
// Owners and administrators are allowed. Callers must confirm the resource
// exists first; the blocked flag is enforced by the authentication gate.
func CanMutate(ownerID int64, caller entity.Identity) bool {
	return caller.UserID == ownerID || caller.IsAdmin()
}

// CanManageAccounts reports whether caller may change roles or block status.
func CanManageAccounts(caller entity.Identity) bool {
	return caller.IsAdmin()
}
