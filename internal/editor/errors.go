package editor

import "errors"

var (
	// ErrSessionNotFound means the session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownCollection means the URL named a collection the draft does not have.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownImageTarget means the image target string is malformed.
	ErrUnknownImageTarget = errors.New("unknown image target")
	// ErrImageTooLarge means the upload exceeded the inline-image ceiling.
	ErrImageTooLarge = errors.New("image too large")
	// ErrMediaNotFound means no archived media exists under the given key.
	ErrMediaNotFound = errors.New("media not found")

	// ErrWrongOldPassword means the supplied old password does not match the
	// draft's effective password.
	ErrWrongOldPassword = errors.New("old password does not match")
	// ErrPasswordMismatch means new and confirm differ.
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
	// ErrPasswordTooShort means the new password is under the minimum length.
	ErrPasswordTooShort = errors.New("new password too short")

	// ErrInvalidMergeResponse means the rewrite response failed the sanity gate.
	ErrInvalidMergeResponse = errors.New("invalid rewrite response")
)
