package pricing

import "errors"

var (
	ErrNoSuchTarget = errors.New("pricing: no base price for target")
	ErrNotFound     = errors.New("pricing: rule not found")
	ErrValidation   = errors.New("pricing: invalid rule")
)
