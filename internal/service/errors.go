package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrValidationNoUserID             = errors.New("no user ID was given")
	ErrValidationInvalidVaultBackup   = errors.New("vault backup must be base64 of a sealed blob")
	ErrValidationInvalidInitializedAt = errors.New("vault initialization time is missing or in the future")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
