package resp3

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/machinefabric/resp-go/internal/wire"
	"github.com/machinefabric/resp-go/resptype"
)

// StreamHeader describes an aggregate or blob string that announced itself
// as streamed ("?" length) rather than giving an upfront count or byte
// length. Kind is one of KindArray, KindSet, KindMap, or KindBulkString.
// Attrs carries any attribute map that preceded the header.
type StreamHeader struct {
	Kind  resptype.FrameKind
	Attrs *FrameMap
}

// DecodedFrame is the result of a streaming-aware decode: exactly one of
// Complete or Streaming is non-nil.
type DecodedFrame struct {
	Complete  *Frame
	Streaming *StreamHeader
}

func completeFrame(f Frame) DecodedFrame {
	return DecodedFrame{Complete: &f}
}

// Decode parses a single frame or stream header from the start of b,
// following the bufio.SplitFunc contract used throughout this module: on
// success it returns a DecodedFrame and n > 0 bytes consumed; on an
// incomplete prefix it returns a zero DecodedFrame, n == 0, and a nil
// error; a non-nil error means b's prefix is definitively malformed.
//
// When the decoded value announces itself as streamed (an Array, Set, Map,
// or BlobString header using "?" in place of a length), Decode returns
// DecodedFrame.Streaming and consumes only the header — callers drive a
// StreamedFrame with subsequent Decode calls until a KindEndStream frame
// appears. DecodeComplete is the equivalent entry point for callers that
// never expect to see a stream announced at the position they're decoding.
func Decode(b []byte) (DecodedFrame, int, error) {
	return decodeOne(b)
}

// DecodeComplete parses a single, fully-formed frame from the start of b.
// It fails with an error if the frame at that position announces itself as
// streamed; use Decode plus a StreamedFrame to handle those.
func DecodeComplete(b []byte) (Frame, int, error) {
	df, n, err := decodeOne(b)
	if err != nil || n == 0 {
		return Frame{}, n, err
	}
	if df.Streaming != nil {
		return Frame{}, 0, resptype.NewDecodeError("decode_complete", "unexpected streamed "+df.Streaming.Kind.String()+" header")
	}
	return *df.Complete, n, nil
}

// decodeOneResolved always fully resolves a frame at b's start, including
// reassembling any nested stream headers it encounters, so callers that
// cannot propagate a Streaming result (e.g. children of a fixed-length
// aggregate) get back a single Complete frame.
func decodeOneResolved(b []byte) (Frame, int, error) {
	df, n, err := decodeOne(b)
	if err != nil || n == 0 {
		return Frame{}, n, err
	}
	if df.Complete != nil {
		return *df.Complete, n, nil
	}
	return resolveNestedStream(b[n:], *df.Streaming, n)
}

func resolveNestedStream(b []byte, header StreamHeader, prefixLen int) (Frame, int, error) {
	sf := NewStreamedFrame(header.Kind)
	sf.SetAttributes(header.Attrs)

	consumed := 0
	for !sf.IsFinished() {
		if header.Kind == resptype.KindBulkString && consumed < len(b) && b[consumed] == '|' {
			return Frame{}, 0, resptype.NewDecodeError("stream.attribute", "attribute frames are not allowed between blob string stream chunks")
		}
		child, n, err := decodeOneResolved(b[consumed:])
		if err != nil {
			return Frame{}, 0, err
		}
		if n == 0 {
			return Frame{}, 0, nil
		}
		if err := sf.AddFrame(child); err != nil {
			return Frame{}, 0, err
		}
		consumed += n
	}

	f, err := sf.IntoFrame()
	if err != nil {
		return Frame{}, 0, err
	}
	return f, prefixLen + consumed, nil
}

func decodeOne(b []byte) (DecodedFrame, int, error) {
	if len(b) == 0 {
		return DecodedFrame{}, 0, nil
	}

	switch b[0] {
	case '+':
		return decodeSimpleText(b, resptype.KindSimpleString)
	case '-':
		return decodeSimpleText(b, resptype.KindError)
	case ':':
		return decodeNumber(b)
	case '$':
		return decodeBlobStringOrStream(b)
	case '*':
		return decodeAggregateOrStream(b, resptype.KindArray)
	case '%':
		return decodeAggregateOrStream(b, resptype.KindMap)
	case '~':
		return decodeAggregateOrStream(b, resptype.KindSet)
	case '>':
		return decodeAggregateOrStream(b, resptype.KindPush)
	case '!':
		return decodeBlobError(b)
	case '=':
		return decodeVerbatimString(b)
	case ',':
		return decodeDouble(b)
	case '(':
		return decodeBigNumber(b)
	case '#':
		return decodeBoolean(b)
	case '_':
		return decodeNullResp3(b)
	case ';':
		return decodeChunkedString(b)
	case '.':
		return decodeEndStream(b)
	case '|':
		return decodeAttributeThenFrame(b)
	case 'H':
		return decodeHello(b)
	default:
		return DecodedFrame{}, 0, resptype.NewDecodeError("prefix", fmt.Sprintf("unexpected prefix byte %q", b[0]))
	}
}

func decodeSimpleText(b []byte, kind resptype.FrameKind) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	return completeFrame(Frame{Kind: kind, Bytes: text}), n, nil
}

func decodeNumber(b []byte) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	v, err := wire.Int64("number", text)
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	return completeFrame(Number(v)), n, nil
}

func decodeBlobStringOrStream(b []byte) (DecodedFrame, int, error) {
	text, headerLen, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	if string(text) == "?" {
		return DecodedFrame{Streaming: &StreamHeader{Kind: resptype.KindBulkString}}, headerLen, nil
	}

	length, err := wire.Length("blob_string.length", text)
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	if length == -1 {
		return completeFrame(Null()), headerLen, nil
	}

	total := headerLen + int(length) + 2
	if len(b) < total {
		return DecodedFrame{}, 0, nil
	}
	payload := b[headerLen : headerLen+int(length)]
	if b[headerLen+int(length)] != '\r' || b[headerLen+int(length)+1] != '\n' {
		return DecodedFrame{}, 0, resptype.NewDecodeError("blob_string.terminator", "expected CRLF after payload")
	}
	return completeFrame(BlobString(payload)), total, nil
}

func decodeAggregateOrStream(b []byte, kind resptype.FrameKind) (DecodedFrame, int, error) {
	opPrefix := strings.ToLower(kind.String())

	text, headerLen, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	if string(text) == "?" {
		if kind == resptype.KindPush {
			return DecodedFrame{}, 0, resptype.NewDecodeError(opPrefix+".streaming", "push frames cannot stream")
		}
		return DecodedFrame{Streaming: &StreamHeader{Kind: kind}}, headerLen, nil
	}

	count, err := wire.Length(opPrefix+".length", text)
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	if count == -1 {
		return completeFrame(Null()), headerLen, nil
	}

	childCount := count
	if kind == resptype.KindMap {
		childCount = count * 2
	}

	children := make([]Frame, 0, childCount)
	consumed := headerLen
	for i := int64(0); i < childCount; i++ {
		child, n, err := decodeOneResolved(b[consumed:])
		if err != nil {
			return DecodedFrame{}, 0, err
		}
		if n == 0 {
			return DecodedFrame{}, 0, nil
		}
		children = append(children, child)
		consumed += n
	}

	switch kind {
	case resptype.KindArray:
		return completeFrame(Array(children)), consumed, nil
	case resptype.KindPush:
		return completeFrame(Push(children)), consumed, nil
	case resptype.KindSet:
		return completeFrame(SetFrame(NewFrameSet(children))), consumed, nil
	case resptype.KindMap:
		pairs := make([]MapEntry, 0, count)
		for i := int64(0); i < count; i++ {
			pairs = append(pairs, MapEntry{Key: children[2*i], Value: children[2*i+1]})
		}
		return completeFrame(MapFrame(NewFrameMap(pairs))), consumed, nil
	default:
		return DecodedFrame{}, 0, resptype.NewDecodeError(opPrefix, "unreachable aggregate kind")
	}
}

func decodeBlobError(b []byte) (DecodedFrame, int, error) {
	text, headerLen, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	length, err := wire.Length("blob_error.length", text)
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	if length < 0 {
		return DecodedFrame{}, 0, resptype.NewDecodeError("blob_error.length", "length must be >= 0")
	}
	total := headerLen + int(length) + 2
	if len(b) < total {
		return DecodedFrame{}, 0, nil
	}
	payload := b[headerLen : headerLen+int(length)]
	if b[headerLen+int(length)] != '\r' || b[headerLen+int(length)+1] != '\n' {
		return DecodedFrame{}, 0, resptype.NewDecodeError("blob_error.terminator", "expected CRLF after payload")
	}
	return completeFrame(BlobError(payload)), total, nil
}

func decodeVerbatimString(b []byte) (DecodedFrame, int, error) {
	text, headerLen, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	length, err := wire.Length("verbatim_string.length", text)
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	if length < 4 {
		return DecodedFrame{}, 0, resptype.NewDecodeError("verbatim_string.length", "length must be at least 4")
	}
	total := headerLen + int(length) + 2
	if len(b) < total {
		return DecodedFrame{}, 0, nil
	}
	payload := b[headerLen : headerLen+int(length)]
	if b[headerLen+int(length)] != '\r' || b[headerLen+int(length)+1] != '\n' {
		return DecodedFrame{}, 0, resptype.NewDecodeError("verbatim_string.terminator", "expected CRLF after payload")
	}
	if payload[3] != ':' {
		return DecodedFrame{}, 0, resptype.NewDecodeError("verbatim_string.format", "missing format separator")
	}
	format := string(payload[:3])
	if format != "txt" && format != "mkd" {
		return DecodedFrame{}, 0, resptype.NewDecodeError("verbatim_string.format", "unknown format tag "+format)
	}
	return completeFrame(VerbatimString(format, payload[4:])), total, nil
}

func decodeDouble(b []byte) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	s := string(text)
	if strings.EqualFold(s, "nan") {
		return DecodedFrame{}, 0, resptype.NewDecodeError("double.parse", "nan is not a valid double")
	}

	var f float64
	switch strings.ToLower(s) {
	case "inf", "+inf":
		f = math.Inf(1)
	case "-inf":
		f = math.Inf(-1)
	default:
		var err error
		f, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return DecodedFrame{}, 0, resptype.NewDecodeError("double.parse", "invalid double: "+err.Error())
		}
		if math.IsNaN(f) {
			return DecodedFrame{}, 0, resptype.NewDecodeError("double.parse", "nan is not a valid double")
		}
	}
	return completeFrame(Double(f)), n, nil
}

func decodeBigNumber(b []byte) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	digits := text
	check := digits
	if len(check) > 0 && check[0] == '-' {
		check = check[1:]
	}
	if len(check) == 0 {
		return DecodedFrame{}, 0, resptype.NewDecodeError("big_number.digits", "empty big number")
	}
	for _, c := range check {
		if c < '0' || c > '9' {
			return DecodedFrame{}, 0, resptype.NewDecodeError("big_number.digits", "non-digit byte in big number")
		}
	}
	return completeFrame(BigNumber(digits)), n, nil
}

func decodeBoolean(b []byte) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	switch string(text) {
	case "t":
		return completeFrame(Boolean(true)), n, nil
	case "f":
		return completeFrame(Boolean(false)), n, nil
	default:
		return DecodedFrame{}, 0, resptype.NewDecodeError("boolean.value", "expected 't' or 'f'")
	}
}

func decodeNullResp3(b []byte) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	if len(text) != 0 {
		return DecodedFrame{}, 0, resptype.NewDecodeError("null.trailing_data", "null frame carries no payload")
	}
	return completeFrame(Null()), n, nil
}

func decodeChunkedString(b []byte) (DecodedFrame, int, error) {
	text, headerLen, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	n, err := wire.Length("chunked_string.length", text)
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	if n < 0 {
		return DecodedFrame{}, 0, resptype.NewDecodeError("chunked_string.length", "chunk length must be >= 0")
	}
	if n == 0 {
		return completeFrame(EndStream()), headerLen, nil
	}

	total := headerLen + int(n) + 2
	if len(b) < total {
		return DecodedFrame{}, 0, nil
	}
	payload := b[headerLen : headerLen+int(n)]
	if b[headerLen+int(n)] != '\r' || b[headerLen+int(n)+1] != '\n' {
		return DecodedFrame{}, 0, resptype.NewDecodeError("chunked_string.terminator", "expected CRLF after chunk payload")
	}
	return completeFrame(ChunkedString(payload)), total, nil
}

func decodeEndStream(b []byte) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 1)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	if len(text) != 0 {
		return DecodedFrame{}, 0, resptype.NewDecodeError("end_stream.trailing_data", "end-of-stream marker carries no payload")
	}
	return completeFrame(EndStream()), n, nil
}

// decodeAttributeThenFrame decodes a '|'-prefixed attribute map and the
// frame (or stream header) that must follow it, merging the map into the
// result's Attrs. Per the invariant that Attribute never surfaces as its
// own top-level frame, this is the only place a '|' byte is ever consumed.
func decodeAttributeThenFrame(b []byte) (DecodedFrame, int, error) {
	mapDF, n, err := decodeAggregateOrStream(b, resptype.KindMap)
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	if n == 0 {
		return DecodedFrame{}, 0, nil
	}
	if mapDF.Streaming != nil {
		return DecodedFrame{}, 0, resptype.NewDecodeError("attribute.streaming", "attribute maps cannot stream")
	}
	attrs := mapDF.Complete.MapVal

	next, m, err := decodeOne(b[n:])
	if err != nil {
		return DecodedFrame{}, 0, err
	}
	if m == 0 {
		return DecodedFrame{}, 0, nil
	}

	if next.Streaming != nil {
		next.Streaming.Attrs = attrs
		return next, n + m, nil
	}

	f := *next.Complete
	if !f.Kind.AllowsAttributes() {
		return DecodedFrame{}, 0, resptype.NewDecodeError("attribute.target", f.Kind.String()+" frames cannot carry attributes")
	}
	f.Attrs = attrs
	return completeFrame(f), n + m, nil
}

func decodeHello(b []byte) (DecodedFrame, int, error) {
	text, n, ok := wire.Line(b, 0)
	if !ok {
		return DecodedFrame{}, 0, nil
	}
	fields := strings.Fields(string(text))
	if len(fields) == 0 || fields[0] != "HELLO" {
		return DecodedFrame{}, 0, resptype.NewDecodeError("hello.token", "expected HELLO")
	}
	if len(fields) < 2 {
		return DecodedFrame{}, 0, resptype.NewDecodeError("hello.version", "missing protocol version")
	}

	vn, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return DecodedFrame{}, 0, resptype.NewDecodeError("hello.version", "invalid protocol version")
	}
	version := resptype.Version(vn)
	if !version.Valid() {
		return DecodedFrame{}, 0, resptype.NewDecodeError("hello.version", "protocol version must be 2 or 3")
	}

	var auth *resptype.AuthCredentials
	switch {
	case len(fields) == 2:
	case len(fields) == 5 && strings.EqualFold(fields[2], "AUTH"):
		auth = &resptype.AuthCredentials{Username: fields[3], Password: fields[4]}
	default:
		return DecodedFrame{}, 0, resptype.NewDecodeError("hello.auth", "expected 'AUTH <username> <password>'")
	}

	return completeFrame(HelloFrame(version, auth)), n, nil
}
