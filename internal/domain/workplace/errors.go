package workplace

import "errors"

var (
	ErrInvalidConfig     = errors.New("workplace configuration is malformed or out of range")
	ErrConfigNotFound    = errors.New("workplace configuration not found")
	ErrNoEffectiveConfig = errors.New("no workplace configuration effective on the requested date")
	ErrVersionExists     = errors.New("workplace configuration version already exists")
)
