// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAddress       = errors.New("lsp: invalid address")
	ErrConnect              = errors.New("lsp: connect failed")
	ErrSerialization        = errors.New("lsp: serialization failed")
	ErrIO                   = errors.New("lsp: stream i/o failed")
	ErrMissingContentLength = errors.New("lsp: missing Content-Length header")
	ErrMalformedHeader      = errors.New("lsp: malformed header")
	ErrMalformedBody        = errors.New("lsp: malformed body")
	ErrHeaderTooLarge       = errors.New("lsp: header too large")
	ErrBodyTooLarge         = errors.New("lsp: body too large")
	ErrUnexpectedID         = errors.New("lsp: response id does not match request")
	ErrClosed               = errors.New("lsp: client closed")

	// ErrBroken is returned by every call after a stream failure.
	// The connection must be recreated.
	ErrBroken = errors.New("lsp: connection broken")
)

// MalformedBodyError reports a frame body that is not a JSON response.
// It matches ErrMalformedBody under errors.Is.
type MalformedBodyError struct {
	Body []byte
	Err  error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("%v: %v: %q", ErrMalformedBody, e.Err, e.Body)
}

func (e *MalformedBodyError) Is(target error) bool {
	return target == ErrMalformedBody
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}
