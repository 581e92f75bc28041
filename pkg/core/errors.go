package core

import "errors"

// Common errors.
var (
	ErrNotFound    = errors.New("memo not found")
	ErrDuplicate   = errors.New("memo already exists")
	ErrInvalidNote = errors.New("memo has no ID")
	ErrStorage     = errors.New("storage error")
	ErrDecode      = errors.New("decode error")
	ErrClosed      = errors.New("service is closed")
)
