package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBadPasscode     = errors.New("invalid passcode")
	ErrUnknownTeam     = errors.New("unknown team")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNotStarted      = errors.New("service not started")
)
