package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

var (
	ErrUserExists   = fmt.Errorf("user %w", ErrConflict)
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrSlugTaken    = fmt.Errorf("slug %w", ErrConflict)
)
