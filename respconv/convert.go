// Package respconv converts frames between the RESP2 and RESP3 frame
// representations, per the conversion table spec.md §4.5 defines.
package respconv

import (
	"math"
	"strconv"

	"github.com/machinefabric/resp-go/resp2"
	"github.com/machinefabric/resp-go/resp3"
	"github.com/machinefabric/resp-go/resptype"
)

// Resp2ToResp3 lifts a RESP2 frame into its RESP3 equivalent. The result
// never carries attributes, since RESP2 has no concept of them.
func Resp2ToResp3(f resp2.Frame) resp3.Frame {
	switch f.Kind {
	case resptype.KindSimpleString:
		return resp3.SimpleString(f.Str)
	case resptype.KindError:
		return resp3.SimpleError(f.Str)
	case resptype.KindInteger:
		return resp3.Number(f.Int)
	case resptype.KindBulkString:
		return resp3.BlobString(f.Bulk)
	case resptype.KindNull:
		return resp3.Null()
	case resptype.KindArray:
		elems := make([]resp3.Frame, len(f.Elems))
		for i, e := range f.Elems {
			elems[i] = Resp2ToResp3(e)
		}
		return resp3.Array(elems)
	default:
		// resp2.Frame has no other kinds; unreachable for values produced
		// by this module's own constructors and decoder.
		return resp3.Null()
	}
}

// Resp3ToResp2 lowers a RESP3 frame into its RESP2 equivalent. It errors for
// RESP3-only shapes that have no faithful RESP2 representation: Set, Map,
// Push, VerbatimString, BigNumber, Hello, ChunkedString, and EndStream.
// Number converts to Integer directly; both are backed by int64 in this
// module, so the range check the original protocol note calls for can never
// fail here.
func Resp3ToResp2(f resp3.Frame) (resp2.Frame, error) {
	switch f.Kind {
	case resptype.KindSimpleString:
		return resp2.SimpleString(string(f.Bytes)), nil
	case resptype.KindError:
		return resp2.Error(string(f.Bytes)), nil
	case resptype.KindNumber:
		return resp2.Integer(f.Int), nil
	case resptype.KindBulkString:
		return resp2.BulkString(f.Bytes), nil
	case resptype.KindBlobError:
		return resp2.Error(string(f.Bytes)), nil
	case resptype.KindDouble:
		return resp2.BulkString([]byte(formatCanonicalDouble(f.Float))), nil
	case resptype.KindBoolean:
		if f.Bool {
			return resp2.Integer(1), nil
		}
		return resp2.Integer(0), nil
	case resptype.KindNull:
		return resp2.Null(), nil
	case resptype.KindArray:
		elems := make([]resp2.Frame, len(f.Elems))
		for i, e := range f.Elems {
			converted, err := Resp3ToResp2(e)
			if err != nil {
				return resp2.Frame{}, err
			}
			elems[i] = converted
		}
		return resp2.Array(elems), nil
	default:
		return resp2.Frame{}, resptype.NewEncodeError("convert", f.Kind.String()+" has no faithful RESP2 representation")
	}
}

// formatCanonicalDouble renders f the way Redis clients conventionally print
// a RESP3 Double when downgrading it to a RESP2 bulk string.
func formatCanonicalDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
