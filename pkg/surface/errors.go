package surface

import "errors"

var (
	// ErrUnsupportedPayload is returned when a request payload is not surface content
	ErrUnsupportedPayload = errors.New("toast payload is not surface content")

	// ErrEmptyContent is returned when content has neither title nor description
	ErrEmptyContent = errors.New("toast content needs a title or description")
)
