package repository

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateShortID = errors.New("short ID already in use")
)
