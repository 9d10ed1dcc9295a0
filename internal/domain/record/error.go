package record

import (
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("access denied")
	ErrConflict  = errors.New("record already exists for this user")
)
