package domain

import "errors"

// Error taxonomy for the conversation subsystem. Collaborator failures are
// always wrapped into one of these before they reach a caller, so clients
// can decide whether to re-establish a session, resend, or give up.
var (
	// ErrSessionRequired: a turn exchange was attempted without a session
	// token. The caller must create a session first.
	ErrSessionRequired = errors.New("session token required")

	// ErrSessionExpired: a commit was attempted against a session past its
	// idle timeout. The caller must re-create a session and resend; the
	// generated reply for the failed exchange is discarded, never carried
	// over to the replacement session.
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionNotFound: an explicit lookup found no session. History
	// queries treat absence as an empty result, not an error.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCompletionFailed: the model backend failed or returned no usable
	// text. Retryable by the caller; never substituted with canned text.
	ErrCompletionFailed = errors.New("completion failed")

	// ErrInvalidInput: empty message list, empty content, or malformed
	// identifiers. Rejected before any collaborator call.
	ErrInvalidInput = errors.New("invalid input")
)
