package event

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
// Both are startup-fatal: the process cannot serve without a valid event document.
var (
	ErrLoadEvent    = errors.New("load event config failed")
	ErrInvalidEvent = errors.New("invalid event config")
)
