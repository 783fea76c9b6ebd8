package logic

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrRecordNotFound       = errors.New("monthly record not found")
	ErrChangeNotFound       = errors.New("change log entry not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidState         = errors.New("change log entry is not pending review")
	ErrForbidden            = errors.New("permission denied")
	ErrEditConflict         = errors.New("record modified concurrently, retries exhausted")
	ErrInvalidCredential    = errors.New("invalid credential")
	ErrPermanent            = errors.New("a permanent error occurred that should not be retried")
)
