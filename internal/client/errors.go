package client

import "errors"

var (
	ErrUnknownCommand       = errors.New("unknown command")
	ErrUsage                = errors.New("wrong arguments")
	ErrInputClosed          = errors.New("input closed")
	ErrConfirmationFailed   = errors.New("recovery words do not match")
	ErrAborted              = errors.New("aborted by user")
	ErrBackupNotConfigured  = errors.New("backup server is not configured")
	ErrLocalStorageDisabled = errors.New("local sqlite key store is not configured")
)
