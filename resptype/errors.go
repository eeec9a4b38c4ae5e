// Package resptype holds the pieces shared by the resp2 and resp3 packages:
// error kinds, the RESP version tag, HELLO auth credentials, the FrameKind
// tag-byte table, sentinel byte constants, and the cluster keyslot helper.
package resptype

import "fmt"

// DecodeError reports malformed input or an unsupported variant encountered
// while parsing a frame. It is never returned for input that is merely
// incomplete (see the Decode functions in resp2 and resp3 for that contract).
type DecodeError struct {
	// Op identifies the decode step that failed, e.g. "bulk_string.length"
	// or "hello.version".
	Op  string
	Msg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("resp: decode %s: %s", e.Op, e.Msg)
}

// NewDecodeError builds a DecodeError tagged with the failing step.
func NewDecodeError(op, msg string) *DecodeError {
	return &DecodeError{Op: op, Msg: msg}
}

// EncodeError reports a frame with no wire form for the requested encoding
// (an unknown kind, a bare EndStream, or a kind that cannot be streamed) or
// an unrepresentable cross-version frame conversion. The encoders append to
// growable slices, so a full output buffer is never one of its causes.
type EncodeError struct {
	Op  string
	Msg string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("resp: encode %s: %s", e.Op, e.Msg)
}

// NewEncodeError builds an EncodeError tagged with the failing step.
func NewEncodeError(op, msg string) *EncodeError {
	return &EncodeError{Op: op, Msg: msg}
}
