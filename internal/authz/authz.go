// Package authz holds the pure authorization predicates used to gate
// privileged operations. No I/O, no state.
package authz

import (
	"github.com/google/uuid"

	"github.com/dtroode/auth-server/internal/model"
)

// HasRole reports whether the user's role is one of the allowed roles.
func HasRole(user model.User, allowed ...model.Role) bool {
	for _, role := range allowed {
		if user.Role == role {
			return true
		}
	}
	return false
}

// IsSelfOrSuperuser reports whether the user is the target account or a
// superuser.
func IsSelfOrSuperuser(user model.User, targetID uuid.UUID) bool {
	return user.ID == targetID || user.IsSuperuser
}

// CanDeleteSelf reports whether the user may delete its own account.
// Superusers cannot: an instance must not lose its last privileged
// account to a self-service endpoint.
func CanDeleteSelf(user model.User) bool {
	return !user.IsSuperuser
}
