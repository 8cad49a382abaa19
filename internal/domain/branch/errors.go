package branch

import "errors"

var (
	ErrBranchNotFound  = errors.New("branch not found")
	ErrInvalidHours    = errors.New("working hours start must be before end")
	ErrInvalidDay      = errors.New("invalid working day")
	ErrBranchInactive  = errors.New("branch is not active")
	ErrForbiddenBranch = errors.New("access to this branch is not allowed")
)
