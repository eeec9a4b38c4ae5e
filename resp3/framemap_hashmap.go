//go:build hashmap

package resp3

// FrameMap, built with the "hashmap" tag, backs Map frames and attribute
// maps with a native Go map keyed by each entry's canonical wire encoding.
// Iteration order is therefore unspecified; pick this configuration only
// when callers don't depend on the order Map/Set entries were produced in.
type FrameMap struct {
	index map[string]MapEntry
}

// NewFrameMap builds a FrameMap. If entries contains duplicate keys (by
// canonical encoding), the last one wins.
func NewFrameMap(entries []MapEntry) *FrameMap {
	idx := make(map[string]MapEntry, len(entries))
	for _, e := range entries {
		idx[canonicalKey(e.Key)] = e
	}
	return &FrameMap{index: idx}
}

func (m *FrameMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

// Entries returns the map's entries in unspecified order.
func (m *FrameMap) Entries() []MapEntry {
	if m == nil {
		return nil
	}
	out := make([]MapEntry, 0, len(m.index))
	for _, e := range m.index {
		out = append(out, e)
	}
	return out
}

func canonicalKey(f Frame) string {
	buf, _, err := Encode(nil, f)
	if err != nil {
		// Unencodable keys (e.g. a streaming-only shape) still need a
		// distinct bucket; fall back to a kind-tagged marker so lookups
		// don't silently collide.
		return "\x00invalid:" + f.Kind.String()
	}
	return string(buf)
}
