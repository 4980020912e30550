package domain

import "errors"

// Sentinel errors shared across use cases and transport.
var (
	// ErrPostNotFound signals a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidPost signals a post that failed validation.
	ErrInvalidPost = errors.New("invalid post")
	// ErrInvalidOptions signals malformed search or related-posts options.
	ErrInvalidOptions = errors.New("invalid options")
)
