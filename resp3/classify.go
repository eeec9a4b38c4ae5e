package resp3

import "github.com/machinefabric/resp-go/resptype"

// IsStreaming reports whether a decode result is an announced stream header
// rather than a complete frame.
func (d DecodedFrame) IsStreaming() bool {
	return d.Streaming != nil
}

// IsError reports whether f is a SimpleError or BlobError frame.
func (f Frame) IsError() bool {
	return f.Kind == resptype.KindError || f.Kind == resptype.KindBlobError
}

// IsNull reports whether f is the dedicated RESP3 null value.
func (f Frame) IsNull() bool {
	return f.Kind == resptype.KindNull
}

// IsPubSubMessage reports whether f is a Push frame shaped like a
// subscription notification: at least three elements, whose first element
// is the text "pubsub" and whose second is "message" or "pmessage".
func (f Frame) IsPubSubMessage() bool {
	if f.Kind != resptype.KindPush || len(f.Elems) < 3 {
		return false
	}
	first, ok := elemText(f.Elems[0])
	if !ok || first != "pubsub" {
		return false
	}
	second, ok := elemText(f.Elems[1])
	if !ok {
		return false
	}
	return second == "message" || second == "pmessage"
}

// IsPatternPubSubMessage is IsPubSubMessage narrowed to pattern-matched
// subscriptions (second element "pmessage").
func (f Frame) IsPatternPubSubMessage() bool {
	if !f.IsPubSubMessage() {
		return false
	}
	second, _ := elemText(f.Elems[1])
	return second == "pmessage"
}

func elemText(f Frame) (string, bool) {
	switch f.Kind {
	case resptype.KindSimpleString, resptype.KindBulkString:
		return string(f.Bytes), true
	default:
		return "", false
	}
}
