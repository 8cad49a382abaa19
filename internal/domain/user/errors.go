package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNotDoctor        = errors.New("user is not a doctor")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrBranchRequired   = errors.New("doctors must be assigned to a branch")
	ErrCannotDeactivate = errors.New("you cannot deactivate your own account")
	ErrBranchNotFound   = errors.New("branch not found")

	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account temporarily locked after failed login attempts")
	ErrAccountInactive    = errors.New("account is deactivated")
)
