package domain

import "errors"

var (
	// ErrMalformedColor signals that a supplied color is not exactly six hex digits.
	ErrMalformedColor = errors.New("malformed color")
	// ErrIconNotFound signals that an icon name is invalid or has no icon file.
	ErrIconNotFound = errors.New("icon not found")
	// ErrIconReadFailure signals that an icon file exists but could not be read.
	ErrIconReadFailure = errors.New("icon read failure")
)
