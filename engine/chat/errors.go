package chat

import "errors"

var (
	// ErrNetwork wraps transport failures, non-2xx responses and undecodable reply bodies.
	ErrNetwork = errors.New("chat network failure")

	// ErrEmptyMessage is returned when a message is blank after trimming.
	ErrEmptyMessage = errors.New("empty chat message")

	// ErrClosed is returned by a Client after Close.
	ErrClosed = errors.New("chat client closed")
)
