package auth

import "github.com/cadotvn/cadot-user/internal/models"

// Access-control predicates. All of them are pure functions over a resolved
// user record; none of them touch the store.

// IsActive reports whether the account is enabled. A disabled account fails
// every authenticated gate regardless of role.
func IsActive(user models.User) bool {
	return user.IsActive
}

// IsSuperuser reports whether the account holds the superuser role.
func IsSuperuser(user models.User) bool {
	return user.IsSuperuser
}

// CanViewUser reports whether requester may read target's record: users see
// themselves, superusers see everyone.
func CanViewUser(requester, target models.User) bool {
	return requester.ID == target.ID || IsSuperuser(requester)
}

// RequireActive translates an inactive account into ErrInactiveAccount.
func RequireActive(user models.User) error {
	if !IsActive(user) {
		return ErrInactiveAccount
	}
	return nil
}

// RequireSuperuser translates a missing superuser role into
// ErrInsufficientPrivilege.
func RequireSuperuser(user models.User) error {
	if !IsSuperuser(user) {
		return ErrInsufficientPrivilege
	}
	return nil
}
