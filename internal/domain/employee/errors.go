package employee

import "errors"

var (
	ErrWageNotFound = errors.New("wage record not found")
)
