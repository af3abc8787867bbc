package lifecycle

import "errors"

var (
	ErrScopeNotFound  = errors.New("lifecycle: scope not found")
	ErrRegistryClosed = errors.New("lifecycle: registry is closed")
)
