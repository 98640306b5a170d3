package repository

import "errors"

// Sentinel kinds for score store errors.
var (
	ErrNotFound     = errors.New("score record not found")
	ErrCorruptStore = errors.New("score store is corrupt")
	ErrSaveStore    = errors.New("score store save failed")
)
