package domain

import "errors"

var (
	ErrNoDeckAPI       = errors.New("deck api client is required")
	ErrNoDeck          = errors.New("no active deck")
	ErrRemoteDeclined  = errors.New("deck service declined the request")
	ErrSessionNotFound = errors.New("session not found")
)
