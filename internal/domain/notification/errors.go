package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotSendable          = errors.New("notification was already sent")
	ErrNoRecipients         = errors.New("notification has no recipients")
	ErrInvalidTarget        = errors.New("invalid notification target")
	ErrInvalidChannel       = errors.New("invalid notification channel")
	ErrTargetIDsRequired    = errors.New("specific target requires user or customer ids")
)
