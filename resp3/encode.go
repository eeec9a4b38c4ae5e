package resp3

import (
	"math"
	"strconv"
	"strings"

	"github.com/machinefabric/resp-go/resptype"
)

// EncodeLen returns exactly the number of bytes Encode would write for f,
// so callers can pre-reserve buffer capacity.
func EncodeLen(f Frame) int {
	n := 0
	if f.Attrs != nil {
		n += mapHeaderLen(f.Attrs)
	}
	return n + bareEncodeLen(f)
}

func mapHeaderLen(m *FrameMap) int {
	n := 1 + resptype.DigitsInNumber(int64(m.Len())) + 2
	for _, e := range m.Entries() {
		n += EncodeLen(e.Key) + EncodeLen(e.Value)
	}
	return n
}

func bareEncodeLen(f Frame) int {
	switch f.Kind {
	case resptype.KindSimpleString, resptype.KindError, resptype.KindBigNumber:
		return 1 + len(f.Bytes) + 2
	case resptype.KindBlobError, resptype.KindChunkedString:
		return 1 + resptype.DigitsInNumber(int64(len(f.Bytes))) + 2 + len(f.Bytes) + 2
	case resptype.KindVerbatimString:
		payloadLen := 4 + len(f.Bytes)
		return 1 + resptype.DigitsInNumber(int64(payloadLen)) + 2 + payloadLen + 2
	case resptype.KindNumber:
		return 1 + resptype.DigitsInNumber(f.Int) + 2
	case resptype.KindDouble:
		return 1 + len(formatDouble(f.Float)) + 2
	case resptype.KindBoolean:
		return 1 + 1 + 2
	case resptype.KindNull:
		return len(resptype.NullResp3)
	case resptype.KindBulkString:
		return 1 + resptype.DigitsInNumber(int64(len(f.Bytes))) + 2 + len(f.Bytes) + 2
	case resptype.KindArray, resptype.KindPush:
		n := 1 + resptype.DigitsInNumber(int64(len(f.Elems))) + 2
		for _, e := range f.Elems {
			n += EncodeLen(e)
		}
		return n
	case resptype.KindSet:
		n := 1 + resptype.DigitsInNumber(int64(f.SetVal.Len())) + 2
		for _, e := range f.SetVal.Elems() {
			n += EncodeLen(e)
		}
		return n
	case resptype.KindMap:
		n := 1 + resptype.DigitsInNumber(int64(f.MapVal.Len())) + 2
		for _, e := range f.MapVal.Entries() {
			n += EncodeLen(e.Key) + EncodeLen(e.Value)
		}
		return n
	case resptype.KindHello:
		return len(helloWireText(f.HelloVal))
	default:
		return 0
	}
}

// Encode appends f's wire representation to buf, including any attribute
// map carried in f.Attrs, and returns the resulting slice along with the
// number of bytes written for f.
func Encode(buf []byte, f Frame) ([]byte, int, error) {
	start := len(buf)

	if f.Attrs != nil {
		var err error
		buf, err = encodeMapHeader(buf, '|', f.Attrs)
		if err != nil {
			return buf, len(buf) - start, err
		}
	}

	var err error
	buf, err = encodeBare(buf, f)
	return buf, len(buf) - start, err
}

func encodeMapHeader(buf []byte, prefix byte, m *FrameMap) ([]byte, error) {
	buf = append(buf, prefix)
	buf = strconv.AppendInt(buf, int64(m.Len()), 10)
	buf = append(buf, resptype.CRLF...)
	for _, e := range m.Entries() {
		var err error
		buf, _, err = Encode(buf, e.Key)
		if err != nil {
			return buf, err
		}
		buf, _, err = Encode(buf, e.Value)
		if err != nil {
			return buf, err
		}
	}
	return buf, nil
}

func encodeBare(buf []byte, f Frame) ([]byte, error) {
	switch f.Kind {
	case resptype.KindSimpleString:
		buf = append(buf, '+')
		buf = append(buf, f.Bytes...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindError:
		buf = append(buf, '-')
		buf = append(buf, f.Bytes...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindBigNumber:
		buf = append(buf, '(')
		buf = append(buf, f.Bytes...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindChunkedString:
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(len(f.Bytes)), 10)
		buf = append(buf, resptype.CRLF...)
		buf = append(buf, f.Bytes...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindBlobError:
		buf = append(buf, '!')
		buf = strconv.AppendInt(buf, int64(len(f.Bytes)), 10)
		buf = append(buf, resptype.CRLF...)
		buf = append(buf, f.Bytes...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindVerbatimString:
		payloadLen := 4 + len(f.Bytes)
		buf = append(buf, '=')
		buf = strconv.AppendInt(buf, int64(payloadLen), 10)
		buf = append(buf, resptype.CRLF...)
		buf = append(buf, f.VerbatimFormat...)
		buf = append(buf, ':')
		buf = append(buf, f.Bytes...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindNumber:
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, f.Int, 10)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindDouble:
		buf = append(buf, ',')
		buf = append(buf, formatDouble(f.Float)...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindBoolean:
		buf = append(buf, '#')
		if f.Bool {
			buf = append(buf, 't')
		} else {
			buf = append(buf, 'f')
		}
		buf = append(buf, resptype.CRLF...)
	case resptype.KindNull:
		buf = append(buf, resptype.NullResp3...)
	case resptype.KindBulkString:
		buf = append(buf, '$')
		buf = strconv.AppendInt(buf, int64(len(f.Bytes)), 10)
		buf = append(buf, resptype.CRLF...)
		buf = append(buf, f.Bytes...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindArray, resptype.KindPush:
		if f.Kind == resptype.KindArray {
			buf = append(buf, '*')
		} else {
			buf = append(buf, '>')
		}
		buf = strconv.AppendInt(buf, int64(len(f.Elems)), 10)
		buf = append(buf, resptype.CRLF...)
		for _, e := range f.Elems {
			var err error
			buf, _, err = Encode(buf, e)
			if err != nil {
				return buf, err
			}
		}
	case resptype.KindSet:
		buf = append(buf, '~')
		buf = strconv.AppendInt(buf, int64(f.SetVal.Len()), 10)
		buf = append(buf, resptype.CRLF...)
		for _, e := range f.SetVal.Elems() {
			var err error
			buf, _, err = Encode(buf, e)
			if err != nil {
				return buf, err
			}
		}
	case resptype.KindMap:
		return encodeMapHeader(buf, '%', f.MapVal)
	case resptype.KindHello:
		buf = append(buf, helloWireText(f.HelloVal)...)
	case resptype.KindEndStream:
		return buf, resptype.NewEncodeError("kind", "end-of-stream marker has no standalone encoding; use EncodeStreaming")
	default:
		return buf, resptype.NewEncodeError("kind", "unknown RESP3 frame kind")
	}
	return buf, nil
}

func helloWireText(h *Hello) string {
	var sb strings.Builder
	sb.WriteString("HELLO ")
	sb.WriteString(strconv.Itoa(int(h.Version)))
	if h.Auth != nil {
		sb.WriteString(" AUTH ")
		sb.WriteString(h.Auth.Username)
		sb.WriteString(" ")
		sb.WriteString(h.Auth.Password)
	}
	sb.WriteString("\r\n")
	return sb.String()
}

func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// EncodeStreaming writes f using its streamed wire form: a "?" length
// header followed by chunks (for a BlobString, split at chunkSize bytes
// each; chunkSize <= 0 emits the whole payload as a single chunk) or child
// elements (for Array, Set, Map, and Push), terminated by an end-of-stream
// marker. It returns the appended buffer and the number of bytes written.
func EncodeStreaming(buf []byte, f Frame, chunkSize int) ([]byte, int, error) {
	start := len(buf)

	if f.Attrs != nil {
		var err error
		buf, err = encodeMapHeader(buf, '|', f.Attrs)
		if err != nil {
			return buf, len(buf) - start, err
		}
	}

	switch f.Kind {
	case resptype.KindBulkString:
		buf = append(buf, "$?\r\n"...)
		if chunkSize <= 0 {
			chunkSize = len(f.Bytes)
			if chunkSize == 0 {
				chunkSize = 1
			}
		}
		for off := 0; off < len(f.Bytes); off += chunkSize {
			end := off + chunkSize
			if end > len(f.Bytes) {
				end = len(f.Bytes)
			}
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(end-off), 10)
			buf = append(buf, resptype.CRLF...)
			buf = append(buf, f.Bytes[off:end]...)
			buf = append(buf, resptype.CRLF...)
		}
		buf = append(buf, ";0\r\n"...)
	case resptype.KindArray, resptype.KindPush, resptype.KindSet, resptype.KindMap:
		var elems []Frame
		switch f.Kind {
		case resptype.KindArray, resptype.KindPush:
			buf = append(buf, aggregateStreamPrefix(f.Kind)...)
			elems = f.Elems
		case resptype.KindSet:
			buf = append(buf, "~?\r\n"...)
			elems = f.SetVal.Elems()
		case resptype.KindMap:
			buf = append(buf, "%?\r\n"...)
			for _, e := range f.MapVal.Entries() {
				elems = append(elems, e.Key, e.Value)
			}
		}
		for _, e := range elems {
			var err error
			buf, _, err = Encode(buf, e)
			if err != nil {
				return buf, len(buf) - start, err
			}
		}
		buf = append(buf, ".\r\n"...)
	default:
		return buf, 0, resptype.NewEncodeError("kind", f.Kind.String()+" frames cannot be streamed")
	}

	return buf, len(buf) - start, nil
}

func aggregateStreamPrefix(kind resptype.FrameKind) string {
	if kind == resptype.KindPush {
		return ">?\r\n"
	}
	return "*?\r\n"
}
