package apperror

import "errors"

var (
	ErrInvalidCell       = errors.New("cell is outside of the board")
	ErrLinkUnsupported   = errors.New("don't know how to open this URL")
	ErrInvalidLogLevel   = errors.New("unknown log level")
	ErrInvalidThemeColor = errors.New("theme color must be a #RRGGBB value")
)
