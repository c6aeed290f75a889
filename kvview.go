package weburl

// KVPair is a single decoded (key, value) pair in a KVView.
type KVPair struct {
	Key   []byte
	Value []byte
}

// KVView is a mutable, ordered, index-addressable view over a
// query or fragment component's (key, value) pairs (spec.md §4.8,
// component C8), grounded on values.go's Values/ParseQuery/Encode
// generalized from an unordered map into an ordered slice-of-pairs, the
// way other_examples/e67af412_oleiade-sobek-webapi-url__url-searchparams.go.go's
// URLSearchParams stores and mutates its pair list (see DESIGN.md).
//
// Every mutation is a byte-range splice against the underlying
// component (structure.go's replaceRange), not a full rebuild: a
// segment or delimiter that an operation does not target is left
// exactly as it was, so untouched empty-pair delimiter runs survive a
// mutation elsewhere in the same component (spec.md §8 invariant 5).
type KVView struct {
	url       *URL
	component int // compQuery or compFragment
	schema    *Schema
}

// QueryParams returns a KVView over u's query component, parameterized
// by schema (typically FormEncodedSchema).
func (u *URL) QueryParams(schema *Schema) *KVView {
	return &KVView{url: u, component: compQuery, schema: schema}
}

// FragmentParams returns a KVView over u's fragment component,
// parameterized by schema.
func (u *URL) FragmentParams(schema *Schema) *KVView {
	return &KVView{url: u, component: compFragment, schema: schema}
}

func (v *KVView) raw() []byte {
	switch v.component {
	case compQuery:
		q, _ := v.url.Query()
		return q
	default:
		f, _ := v.url.Fragment()
		return f
	}
}

func (v *KVView) componentStart() int {
	start, _ := v.url.componentBounds(v.component)
	return start
}

// rawSegment is a delimiter-bounded span of the component's raw bytes,
// local to the component (0 == first byte of the component). Unlike a
// KVPair, a rawSegment may be empty: it records every delimiter-bounded
// slot, visible or not, so mutations can address the underlying byte
// layout exactly.
type rawSegment struct {
	start, end int
}

// rawSegments splits v.raw() into every delimiter-bounded span,
// including empty ones.
func (v *KVView) rawSegments() []rawSegment {
	raw := v.raw()
	var segs []rawSegment
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || v.schema.IsPairDelimiter(raw[i]) {
			segs = append(segs, rawSegment{start, i})
			start = i + 1
		}
	}
	return segs
}

// visibleSegmentIndices returns the indices into segs of every
// non-empty segment, in order: these are the segments a KVView index
// addresses (spec.md §4.8 "empty pair invisibility").
func visibleSegmentIndices(segs []rawSegment) []int {
	var idxs []int
	for i, s := range segs {
		if s.end > s.start {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (v *KVView) decodePair(segment []byte) KVPair {
	idx := -1
	for i, b := range segment {
		if b == v.schema.PreferredKeyValueDelimiter {
			idx = i
			break
		}
	}
	var keyRaw, valRaw []byte
	if idx < 0 {
		keyRaw = segment
	} else {
		keyRaw, valRaw = segment[:idx], segment[idx+1:]
	}
	sub := (*SubstitutionMap)(nil)
	if v.schema.DecodePlusAsSpace {
		sub = FormSubstitution
	}
	return KVPair{Key: decode(keyRaw, sub), Value: decode(valRaw, sub)}
}

// pairs parses the current raw component into its visible pairs; a
// segment that is entirely empty (e.g. produced by "a=1&&b=2") is
// invisible and never appears (spec.md §4.8 "empty pair invisibility").
func (v *KVView) pairs() []KVPair {
	raw := v.raw()
	segs := v.rawSegments()
	out := make([]KVPair, 0, len(segs))
	for _, s := range segs {
		if s.end > s.start {
			out = append(out, v.decodePair(raw[s.start:s.end]))
		}
	}
	return out
}

func (v *KVView) encodeWithSchema(b []byte) []byte {
	extra := 0
	for _, c := range b {
		if v.schema.EncodeSpaceAsPlus && c == ' ' {
			continue
		}
		if v.schema.ShouldPercentEncode(c) {
			extra += 2
		}
	}
	out := make([]byte, 0, len(b)+extra)
	for _, c := range b {
		switch {
		case v.schema.EncodeSpaceAsPlus && c == ' ':
			out = append(out, '+')
		case v.schema.ShouldPercentEncode(c):
			enc := PercentEncodeByte(c)
			out = append(out, enc[0], enc[1], enc[2])
		default:
			out = append(out, c)
		}
	}
	return out
}

func (v *KVView) encodePairBytes(p KVPair) []byte {
	var out []byte
	out = append(out, v.encodeWithSchema(p.Key)...)
	out = append(out, v.schema.PreferredKeyValueDelimiter)
	out = append(out, v.encodeWithSchema(p.Value)...)
	return out
}

func (v *KVView) joinPairs(pairs []KVPair) []byte {
	var out []byte
	for i, p := range pairs {
		if i > 0 {
			out = append(out, v.schema.PreferredPairDelimiter)
		}
		out = append(out, v.encodePairBytes(p)...)
	}
	return out
}

func (v *KVView) markPresent() {
	switch v.component {
	case compQuery:
		v.url.flags = v.url.flags.set(flagHasQuery, true)
	default:
		v.url.flags = v.url.flags.set(flagHasFragment, true)
	}
}

// splice replaces component-local byte range [localStart,localEnd)
// with newBytes, translating to the absolute buffer offsets
// structure.go's replaceRange operates on.
func (v *KVView) splice(localStart, localEnd int, newBytes []byte) {
	base := v.componentStart()
	ends := v.url.ends()
	var saved [7]int
	for i := 0; i < v.component; i++ {
		saved[i] = *ends[i]
	}
	v.url.replaceRange(base+localStart, base+localEnd, newBytes)
	for i := 0; i < v.component; i++ {
		*ends[i] = saved[i]
	}
	v.markPresent()
}

// removeRawSegment deletes segs[segIdx] together with the one
// delimiter that separated it from its neighbor: the delimiter that
// preceded it, or, for the first segment, the delimiter that followed
// it (so the rest of the string keeps its leading position)
// (spec.md §8 invariant 5, "delimiter discipline").
func (v *KVView) removeRawSegment(segs []rawSegment, segIdx int) {
	seg := segs[segIdx]
	var localStart, localEnd int
	switch {
	case segIdx == 0 && len(segs) > 1:
		localStart, localEnd = seg.start, segs[segIdx+1].start
	case segIdx == 0:
		localStart, localEnd = seg.start, seg.end
	default:
		localStart, localEnd = segs[segIdx-1].end, seg.end
	}
	v.splice(localStart, localEnd, nil)
}

// Len returns the number of visible pairs.
func (v *KVView) Len() int { return len(v.pairs()) }

// At returns the pair at index i.
func (v *KVView) At(i int) (KVPair, bool) {
	p := v.pairs()
	if i < 0 || i >= len(p) {
		return KVPair{}, false
	}
	return p[i], true
}

// All returns every visible pair, in order.
func (v *KVView) All() []KVPair { return v.pairs() }

// Get returns the value of the first pair whose key matches key.
func (v *KVView) Get(key string) ([]byte, bool) {
	for _, p := range v.pairs() {
		if string(p.Key) == key {
			return p.Value, true
		}
	}
	return nil, false
}

// GetAll returns the values of every pair whose key matches key.
func (v *KVView) GetAll(key string) [][]byte {
	var out [][]byte
	for _, p := range v.pairs() {
		if string(p.Key) == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Has reports whether any pair has the given key.
func (v *KVView) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Append adds a new pair at the end, regardless of existing keys,
// without disturbing any existing byte.
func (v *KVView) Append(key, value string) {
	v.AppendMany(KVPair{Key: []byte(key), Value: []byte(value)})
}

// AppendMany adds every pair in newPairs at the end, in order, without
// disturbing any existing byte.
func (v *KVView) AppendMany(newPairs ...KVPair) {
	if len(newPairs) == 0 {
		return
	}
	raw := v.raw()
	joined := v.joinPairs(newPairs)
	var out []byte
	if len(raw) > 0 && !v.schema.IsPairDelimiter(raw[len(raw)-1]) {
		out = append(out, v.schema.PreferredPairDelimiter)
	}
	out = append(out, joined...)
	v.splice(len(raw), len(raw), out)
}

// Set replaces the value of the first pair matching key, removing any
// further pairs with the same key, or appends a new pair if key is
// absent. Every byte outside the matched pair(s) is left untouched.
func (v *KVView) Set(key, value string) {
	segs := v.rawSegments()
	raw := v.raw()
	var matches []int
	for _, i := range visibleSegmentIndices(segs) {
		if string(v.decodePair(raw[segs[i].start:segs[i].end]).Key) == key {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		v.Append(key, value)
		return
	}
	for i := len(matches) - 1; i >= 1; i-- {
		v.removeRawSegment(segs, matches[i])
	}
	first := segs[matches[0]]
	local := raw[first.start:first.end]
	delimPos := -1
	for i, b := range local {
		if b == v.schema.PreferredKeyValueDelimiter {
			delimPos = i
			break
		}
	}
	newValue := v.encodeWithSchema([]byte(value))
	if delimPos < 0 {
		out := append([]byte{v.schema.PreferredKeyValueDelimiter}, newValue...)
		v.splice(first.end, first.end, out)
	} else {
		v.splice(first.start+delimPos+1, first.end, newValue)
	}
}

// InsertAt inserts newPairs before visible index at.
func (v *KVView) InsertAt(at int, newPairs ...KVPair) error {
	if len(newPairs) == 0 {
		return nil
	}
	segs := v.rawSegments()
	visible := visibleSegmentIndices(segs)
	if at < 0 || at > len(visible) {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: "index out of bounds"}
	}
	joined := v.joinPairs(newPairs)
	if at == len(visible) {
		raw := v.raw()
		var out []byte
		if len(raw) > 0 && !v.schema.IsPairDelimiter(raw[len(raw)-1]) {
			out = append(out, v.schema.PreferredPairDelimiter)
		}
		out = append(out, joined...)
		v.splice(len(raw), len(raw), out)
		return nil
	}
	pos := segs[visible[at]].start
	out := append(append([]byte(nil), joined...), v.schema.PreferredPairDelimiter)
	v.splice(pos, pos, out)
	return nil
}

// RemoveAt removes the pair at visible index i, reusing whichever
// neighboring delimiter the operation doesn't need (spec.md §8
// invariant 5).
func (v *KVView) RemoveAt(i int) error {
	segs := v.rawSegments()
	visible := visibleSegmentIndices(segs)
	if i < 0 || i >= len(visible) {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: "index out of bounds"}
	}
	v.removeRawSegment(segs, visible[i])
	return nil
}

// RemoveRange removes visible pairs [start,end).
func (v *KVView) RemoveRange(start, end int) error {
	segs := v.rawSegments()
	visible := visibleSegmentIndices(segs)
	if start < 0 || end < start || end > len(visible) {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: "range out of bounds"}
	}
	if start == end {
		return nil
	}
	first, last := visible[start], visible[end-1]
	var localStart, localEnd int
	switch {
	case first == 0 && last+1 < len(segs):
		localStart, localEnd = segs[first].start, segs[last+1].start
	case first == 0:
		localStart, localEnd = segs[first].start, segs[last].end
	default:
		localStart, localEnd = segs[first-1].end, segs[last].end
	}
	v.splice(localStart, localEnd, nil)
	return nil
}

// RemoveAllWhere removes every pair for which pred returns true,
// leaving every other byte (including unrelated empty-pair delimiter
// runs) untouched.
func (v *KVView) RemoveAllWhere(pred func(key, value []byte) bool) {
	segs := v.rawSegments()
	raw := v.raw()
	var toRemove []int
	for _, i := range visibleSegmentIndices(segs) {
		p := v.decodePair(raw[segs[i].start:segs[i].end])
		if pred(p.Key, p.Value) {
			toRemove = append(toRemove, i)
		}
	}
	for i := len(toRemove) - 1; i >= 0; i-- {
		v.removeRawSegment(segs, toRemove[i])
	}
}

// ReplaceKeyAt replaces the key of the pair at visible index i,
// leaving its value and every other byte untouched.
func (v *KVView) ReplaceKeyAt(i int, newKey string) error {
	segs := v.rawSegments()
	visible := visibleSegmentIndices(segs)
	if i < 0 || i >= len(visible) {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: "index out of bounds"}
	}
	raw := v.raw()
	seg := segs[visible[i]]
	local := raw[seg.start:seg.end]
	delimPos := -1
	for j, b := range local {
		if b == v.schema.PreferredKeyValueDelimiter {
			delimPos = j
			break
		}
	}
	end := seg.end
	if delimPos >= 0 {
		end = seg.start + delimPos
	}
	v.splice(seg.start, end, v.encodeWithSchema([]byte(newKey)))
	return nil
}

// ReplaceValueAt replaces the value of the pair at visible index i,
// leaving its key and every other byte untouched.
func (v *KVView) ReplaceValueAt(i int, newValue string) error {
	segs := v.rawSegments()
	visible := visibleSegmentIndices(segs)
	if i < 0 || i >= len(visible) {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: "index out of bounds"}
	}
	raw := v.raw()
	seg := segs[visible[i]]
	local := raw[seg.start:seg.end]
	delimPos := -1
	for j, b := range local {
		if b == v.schema.PreferredKeyValueDelimiter {
			delimPos = j
			break
		}
	}
	newValue2 := v.encodeWithSchema([]byte(newValue))
	if delimPos < 0 {
		out := append([]byte{v.schema.PreferredKeyValueDelimiter}, newValue2...)
		v.splice(seg.end, seg.end, out)
		return nil
	}
	v.splice(seg.start+delimPos+1, seg.end, newValue2)
	return nil
}

// ReplaceRange replaces visible pairs [start,end) with newPairs.
// Bytes outside [start,end) — including any embedded empty-pair
// delimiters — are left untouched.
func (v *KVView) ReplaceRange(start, end int, newPairs []KVPair) error {
	segs := v.rawSegments()
	visible := visibleSegmentIndices(segs)
	if start < 0 || end < start || end > len(visible) {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: "range out of bounds"}
	}
	if start == end {
		return v.InsertAt(start, newPairs...)
	}
	first, last := visible[start], visible[end-1]
	joined := v.joinPairs(newPairs)
	switch {
	case first == 0 && last+1 < len(segs):
		v.splice(segs[first].start, segs[last+1].start, append(joined, v.schema.PreferredPairDelimiter))
	case first == 0:
		v.splice(segs[first].start, segs[last].end, joined)
	default:
		v.splice(segs[first-1].end, segs[last].end, append([]byte{v.schema.PreferredPairDelimiter}, joined...))
	}
	return nil
}
