package board

import "errors"

var ErrMissingSecret = errors.New("board auth secret is not configured")
