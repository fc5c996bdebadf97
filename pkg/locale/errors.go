package locale

import "errors"

var (
	ErrEmptySet           = errors.New("locale: set requires at least a default code")
	ErrEmptyCode          = errors.New("locale: code cannot be empty")
	ErrDuplicateCode      = errors.New("locale: duplicate code in set")
	ErrStorageUnavailable = errors.New("locale: preference storage unavailable")
)
