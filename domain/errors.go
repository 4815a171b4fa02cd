package domain

import "errors"

var (
	// ErrEmptyComment indicates the comment text is empty after trimming.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrNoProfile indicates a mutation that needs an author had no profile.
	ErrNoProfile = errors.New("no active profile")

	// ErrInvalidUpload indicates the upload draft failed validation.
	ErrInvalidUpload = errors.New("invalid upload")
)
