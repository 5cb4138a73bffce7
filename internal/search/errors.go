// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import "fmt"

// Kind classifies the way a search operation failed.
type Kind string

const (
	// KindStoreUnavailable means the postings store or cache could not be
	// reached or returned an unexpected low-level failure.
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"

	// KindNotFound means an item reference did not resolve to an item.
	// Only ref→item lookups use this kind.
	KindNotFound Kind = "NOT_FOUND"

	// KindEncoding means a stored item failed to decode.
	KindEncoding Kind = "ENCODING"

	// KindInvalidInput means a caller-supplied argument was malformed
	// (e.g. page_num == 0).
	KindInvalidInput Kind = "INVALID_INPUT"

	// KindPowRejected means a proof-of-work challenge batch failed
	// validation.
	KindPowRejected Kind = "POW_REJECTED"
)

// Error is the single sum-type error the core ever returns. Presentation
// adapters translate it to a protocol-specific response; the core itself
// never emits HTTP status codes.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func storeUnavailable(cause error) *Error {
	return newError(KindStoreUnavailable, "postings store or cache is unavailable", cause)
}

func notFound(ref ItemRef) *Error {
	return newError(KindNotFound, fmt.Sprintf("item ref %q not found", ref), nil)
}

func invalidInput(message string) *Error {
	return newError(KindInvalidInput, message, nil)
}

func powRejected(message string) *Error {
	return newError(KindPowRejected, message, nil)
}
