package resp2

import (
	"strconv"

	"github.com/machinefabric/resp-go/resptype"
)

// EncodeLen returns exactly the number of bytes Encode would write for f,
// so callers can pre-reserve buffer capacity.
func EncodeLen(f Frame) int {
	switch f.Kind {
	case resptype.KindSimpleString, resptype.KindError:
		return 1 + len(f.Str) + 2
	case resptype.KindInteger:
		return 1 + resptype.DigitsInNumber(f.Int) + 2
	case resptype.KindBulkString:
		return 1 + resptype.DigitsInNumber(int64(len(f.Bulk))) + 2 + len(f.Bulk) + 2
	case resptype.KindArray:
		n := 1 + resptype.DigitsInNumber(int64(len(f.Elems))) + 2
		for _, e := range f.Elems {
			n += EncodeLen(e)
		}
		return n
	case resptype.KindNull:
		return len(resptype.NullBulkString)
	default:
		return 0
	}
}

// Encode appends f's wire representation to buf and returns the resulting
// slice along with the number of bytes written for f.
func Encode(buf []byte, f Frame) ([]byte, int, error) {
	start := len(buf)

	switch f.Kind {
	case resptype.KindSimpleString:
		buf = append(buf, '+')
		buf = append(buf, f.Str...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindError:
		buf = append(buf, '-')
		buf = append(buf, f.Str...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindInteger:
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, f.Int, 10)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindBulkString:
		buf = append(buf, '$')
		buf = strconv.AppendInt(buf, int64(len(f.Bulk)), 10)
		buf = append(buf, resptype.CRLF...)
		buf = append(buf, f.Bulk...)
		buf = append(buf, resptype.CRLF...)
	case resptype.KindArray:
		buf = append(buf, '*')
		buf = strconv.AppendInt(buf, int64(len(f.Elems)), 10)
		buf = append(buf, resptype.CRLF...)
		for _, e := range f.Elems {
			var err error
			buf, _, err = Encode(buf, e)
			if err != nil {
				return buf, len(buf) - start, err
			}
		}
	case resptype.KindNull:
		buf = append(buf, resptype.NullBulkString...)
	default:
		return buf, 0, resptype.NewEncodeError("kind", "unknown RESP2 frame kind")
	}

	return buf, len(buf) - start, nil
}
