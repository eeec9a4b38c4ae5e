package main

import (
	"fmt"
	"io"

	"github.com/machinefabric/resp-go/resp2"
	"github.com/machinefabric/resp-go/resp3"
)

func catResp2(w io.Writer, input []byte) error {
	offset := 0
	for offset < len(input) {
		f, n, err := resp2.Decode(input[offset:])
		if err != nil {
			return fmt.Errorf("respcat: decode at byte %d: %w", offset, err)
		}
		if n == 0 {
			log.WithField("remaining", len(input)-offset).Debug("incomplete frame at end of input")
			break
		}
		fmt.Fprintln(w, describeResp2(f))
		offset += n
	}
	return nil
}

func catResp3(w io.Writer, input []byte) error {
	offset := 0
	for offset < len(input) {
		df, n, err := resp3.Decode(input[offset:])
		if err != nil {
			return fmt.Errorf("respcat: decode at byte %d: %w", offset, err)
		}
		if n == 0 {
			log.WithField("remaining", len(input)-offset).Debug("incomplete frame at end of input")
			break
		}
		if df.IsStreaming() {
			return fmt.Errorf("respcat: streamed %s at byte %d not supported by this demo printer", df.Streaming.Kind, offset)
		}
		fmt.Fprintln(w, describeResp3(*df.Complete))
		offset += n
	}
	return nil
}

func describeResp2(f resp2.Frame) string {
	switch {
	case f.IsNull():
		return "(null)"
	case f.IsError():
		return "(error) " + f.Str
	case f.Kind.String() == "Array":
		parts := make([]string, len(f.Elems))
		for i, e := range f.Elems {
			parts[i] = describeResp2(e)
		}
		return fmt.Sprintf("%v", parts)
	case f.Kind.String() == "Integer":
		return fmt.Sprintf("(integer) %d", f.Int)
	case f.Kind.String() == "BulkString":
		return fmt.Sprintf("%q", f.Bulk)
	default:
		return fmt.Sprintf("%q", f.Str)
	}
}

func describeResp3(f resp3.Frame) string {
	switch {
	case f.IsNull():
		return "(null)"
	case f.IsError():
		return "(error) " + string(f.Bytes)
	case f.Kind.String() == "Array" || f.Kind.String() == "Push":
		parts := make([]string, len(f.Elems))
		for i, e := range f.Elems {
			parts[i] = describeResp3(e)
		}
		return fmt.Sprintf("%v", parts)
	case f.Kind.String() == "Set":
		parts := make([]string, f.SetVal.Len())
		for i, e := range f.SetVal.Elems() {
			parts[i] = describeResp3(e)
		}
		return fmt.Sprintf("%v", parts)
	case f.Kind.String() == "Map":
		parts := make([]string, 0, f.MapVal.Len()*2)
		for _, e := range f.MapVal.Entries() {
			parts = append(parts, describeResp3(e.Key)+" => "+describeResp3(e.Value))
		}
		return fmt.Sprintf("%v", parts)
	case f.Kind.String() == "Number":
		return fmt.Sprintf("(integer) %d", f.Int)
	case f.Kind.String() == "Double":
		return fmt.Sprintf("(double) %v", f.Float)
	case f.Kind.String() == "Boolean":
		return fmt.Sprintf("(boolean) %v", f.Bool)
	case f.Kind.String() == "BulkString" || f.Kind.String() == "VerbatimString" || f.Kind.String() == "BigNumber":
		return fmt.Sprintf("%q", f.Bytes)
	default:
		return fmt.Sprintf("%q", f.Bytes)
	}
}
