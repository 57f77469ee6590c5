package model

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when a user has no stored credential for the
// requested platform. Surfaced as 404.
var ErrNotConnected = errors.New("platform not connected")

// ErrPostNotFound is returned when a post does not exist or belongs to
// another user. Surfaced as 404.
var ErrPostNotFound = errors.New("post not found")

// ErrUnsupportedPlatform is returned when no fetcher is registered for the
// requested platform. Surfaced as 400.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrEncryptionKeyNotSet means the process-wide ENCRYPTION_KEY is absent or
// malformed. The process refuses to start in that state rather than storing
// tokens in cleartext.
var ErrEncryptionKeyNotSet = errors.New("encryption key not set")

// DecryptionError wraps a failure to decrypt a stored credential. The wrapped
// cause stays server-side; only the static message is safe for responses.
type DecryptionError struct {
	Cause error
}

func (e *DecryptionError) Error() string { return "credential decryption failed" }

func (e *DecryptionError) Unwrap() error { return e.Cause }

// UpstreamError reports a non-2xx response or transport failure from a
// platform API. Fatal when raised by the top-level fetch, logged and skipped
// when raised fetching one thread's replies.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream request failed: %s", e.Body)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}
