package auth

import "errors"

var ErrForbidden = errors.New("resource belongs to another user")

// Owned is implemented by entities that belong to a user, directly or
// through a parent.
type Owned interface {
	OwnerID() uint
}

// Authorize is the single ownership check applied before any read or write
// of a user-owned entity.
func Authorize(owned Owned, userID uint) error {
	if userID == 0 || owned.OwnerID() != userID {
		return ErrForbidden
	}
	return nil
}
