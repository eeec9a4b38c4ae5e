// Package wire holds the CRLF-line scanning and integer-parsing primitives
// shared by the resp2 and resp3 decoders. None of it is part of the public
// API surface described in spec §6.3.
package wire

import (
	"strconv"

	"github.com/machinefabric/resp-go/resptype"
)

// Line scans b[from:] for the first CRLF terminator and returns the text
// before it along with the number of bytes of b consumed through the CRLF,
// counted from the start of b (so the first from bytes are included).
// ok is false when no CRLF has arrived yet (the input is incomplete).
func Line(b []byte, from int) (text []byte, consumed int, ok bool) {
	for i := from; i+1 < len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' {
			return b[from:i], i + 2, true
		}
	}
	return nil, 0, false
}

// Int64 parses a signed 64-bit decimal integer from a line already split by
// Line. op names the caller's decode step for error reporting.
func Int64(op string, text []byte) (int64, error) {
	n, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		return 0, resptype.NewDecodeError(op, "invalid integer: "+err.Error())
	}
	return n, nil
}

// Length parses a RESP length prefix (bulk string or array count), which
// must be >= -1. op names the caller's decode step for error reporting.
func Length(op string, text []byte) (int64, error) {
	n, err := Int64(op, text)
	if err != nil {
		return 0, err
	}
	if n < -1 {
		return 0, resptype.NewDecodeError(op, "length must be >= -1")
	}
	return n, nil
}
