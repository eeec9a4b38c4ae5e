package resp2

import (
	"fmt"

	"github.com/machinefabric/resp-go/internal/wire"
	"github.com/machinefabric/resp-go/resptype"
)

// Decode parses a single frame from the start of b.
//
// It follows the same contract as bufio.SplitFunc: on success it returns
// the frame and the number of bytes consumed (n > 0). When b does not yet
// contain a complete frame it returns a zero Frame, n == 0, and a nil
// error — callers should read more bytes and call Decode again. A non-nil
// error means b's prefix is definitively malformed; Decode never partially
// advances in that case either.
func Decode(b []byte) (Frame, int, error) {
	if len(b) == 0 {
		return Frame{}, 0, nil
	}

	switch b[0] {
	case '+':
		return decodeText(b, resptype.KindSimpleString)
	case '-':
		return decodeText(b, resptype.KindError)
	case ':':
		return decodeInteger(b)
	case '$':
		return decodeBulkString(b)
	case '*':
		return decodeArray(b)
	default:
		return Frame{}, 0, resptype.NewDecodeError("prefix", fmt.Sprintf("unexpected prefix byte %q", b[0]))
	}
}

func decodeText(b []byte, kind resptype.FrameKind) (Frame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return Frame{}, 0, nil
	}
	if kind == resptype.KindError {
		return Error(string(text)), n, nil
	}
	return SimpleString(string(text)), n, nil
}

func decodeInteger(b []byte) (Frame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return Frame{}, 0, nil
	}
	v, err := wire.Int64("integer", text)
	if err != nil {
		return Frame{}, 0, err
	}
	return Integer(v), n, nil
}

func decodeBulkString(b []byte) (Frame, int, error) {
	text, headerLen, ok := wire.Line(b, 1)
	if !ok {
		return Frame{}, 0, nil
	}
	length, err := wire.Length("bulk_string.length", text)
	if err != nil {
		return Frame{}, 0, err
	}
	if length == -1 {
		return Null(), headerLen, nil
	}

	total := headerLen + int(length) + 2
	if len(b) < total {
		return Frame{}, 0, nil
	}
	payload := b[headerLen : headerLen+int(length)]
	if b[headerLen+int(length)] != '\r' || b[headerLen+int(length)+1] != '\n' {
		return Frame{}, 0, resptype.NewDecodeError("bulk_string.terminator", "expected CRLF after payload")
	}
	return BulkString(payload), total, nil
}

func decodeArray(b []byte) (Frame, int, error) {
	text, headerLen, ok := wire.Line(b, 1)
	if !ok {
		return Frame{}, 0, nil
	}
	count, err := wire.Length("array.length", text)
	if err != nil {
		return Frame{}, 0, err
	}
	if count == -1 {
		return Null(), headerLen, nil
	}

	elems := make([]Frame, 0, count)
	consumed := headerLen
	for i := int64(0); i < count; i++ {
		elem, n, err := Decode(b[consumed:])
		if err != nil {
			return Frame{}, 0, err
		}
		if n == 0 {
			return Frame{}, 0, nil
		}
		elems = append(elems, elem)
		consumed += n
	}

	return Array(elems), consumed, nil
}
