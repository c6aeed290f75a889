package weburl

import "github.com/bits-and-blooms/bitset"

// EncodeSet is a predicate over byte values identifying which bytes must
// be percent-encoded in a given URL context (spec.md §4.1 "Encode sets").
// Sets are layered, each built on an earlier one (Fragment and Query on
// C0Control, SpecialQuery and Path on Query, then UserInfo, Component
// and FormEncoding each on the one before), mirroring the WHATWG URL
// Standard's own layering and
// other_examples/ff30b3e0_..._canon-canonicalizer.go's
// url.NewPercentEncodeSet(33, '#', '%') data-driven construction.
type EncodeSet struct {
	name  string
	table *bitset.BitSet
}

func (s *EncodeSet) String() string { return s.name }

// ShouldEncode reports whether b must be percent-encoded under s.
func (s *EncodeSet) ShouldEncode(b byte) bool { return testClass(s.table, b) }

func buildSet(name string, base *EncodeSet, extra ...byte) *EncodeSet {
	bs := bitset.New(256)
	if base != nil {
		bs = base.table.Clone()
	}
	for _, b := range extra {
		bs.Set(uint(b))
	}
	return &EncodeSet{name: name, table: bs}
}

var (
	// C0Control: C0 controls (< 0x20) and everything above 0x7E.
	C0Control = buildSet("C0Control", &EncodeSet{table: newClass(func(b byte) bool {
		return b < 0x20 || b > 0x7E
	})})

	// Fragment adds space, '"', '<', '>', '`'.
	Fragment = buildSet("Fragment", C0Control, ' ', '"', '<', '>', '`')

	// Query adds space, '"', '#', '<', '>'.
	Query = buildSet("Query", C0Control, ' ', '"', '#', '<', '>')

	// SpecialQuery additionally encodes '\''.
	SpecialQuery = buildSet("SpecialQuery", Query, '\'')

	// Path adds '?', '`', '{', '}' on top of Query.
	Path = buildSet("Path", Query, '?', '`', '{', '}')

	// UserInfo adds '/', ':', ';', '=', '@', '[', '\\', ']', '^', '|'.
	UserInfo = buildSet("UserInfo", Path, '/', ':', ';', '=', '@', '[', '\\', ']', '^', '|')

	// Component adds '$', '%', '&', '+', ','.
	Component = buildSet("Component", UserInfo, '$', '%', '&', '+', ',')

	// FormEncoding adds '!', '\'', '(', ')', '~' on top of Component; space
	// is substituted with '+' rather than percent-encoded (handled by the
	// Encode/Decode entry points below, not the table itself).
	FormEncoding = buildSet("FormEncoding", Component, '!', '\'', '(', ')', '~')
)

const upperHex = "0123456789ABCDEF"

func hexDigit(n byte) byte { return upperHex[n&0xF] }

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// PercentEncodeByte returns the 3-byte "%XX" encoding of b.
func PercentEncodeByte(b byte) [3]byte {
	return [3]byte{'%', hexDigit(b >> 4), hexDigit(b & 0xF)}
}

// Encode percent-encodes src under set. When formSpace is true, space is
// substituted with '+' instead of being percent-encoded (spec.md §4.1
// "FormEncoding ... substitutes space <-> +").
func Encode(src []byte, set *EncodeSet, formSpace bool) []byte {
	extra := 0
	for _, b := range src {
		if formSpace && b == ' ' {
			continue
		}
		if set.ShouldEncode(b) {
			extra += 2
		}
	}
	if extra == 0 && !(formSpace && containsByte(src, ' ')) {
		return src
	}
	out := make([]byte, 0, len(src)+extra)
	for _, b := range src {
		switch {
		case formSpace && b == ' ':
			out = append(out, '+')
		case set.ShouldEncode(b):
			enc := PercentEncodeByte(b)
			out = append(out, enc[0], enc[1], enc[2])
		default:
			out = append(out, b)
		}
	}
	return out
}

func containsByte(src []byte, b byte) bool {
	for _, c := range src {
		if c == b {
			return true
		}
	}
	return false
}

// SubstitutionMap is a bijection applied alongside percent-decoding, such
// as form decoding's '+' -> ' ' (spec.md §4.1 "Substitution map").
type SubstitutionMap struct {
	From, To byte
}

// FormSubstitution reverses application/x-www-form-urlencoded's space<->+
// substitution on decode.
var FormSubstitution = &SubstitutionMap{From: '+', To: ' '}

// hasTrigger reports whether src contains a byte the decoder must act on:
// '%', plus sub.From when a substitution map is supplied. When false, the
// fast path (spec.md §4.1) returns the input unchanged without allocating.
func hasTrigger(src []byte, sub *SubstitutionMap) bool {
	for _, b := range src {
		if b == '%' || (sub != nil && b == sub.From) {
			return true
		}
	}
	return false
}

// Decode scans src for percent-encoded triples, decoding them; any other
// byte (including a lone '%' not followed by two hex digits) is emitted
// unchanged. Decoding never fails (spec.md §4.1 "Errors: None").
func Decode(src []byte) []byte { return decode(src, nil) }

// DecodeForm is Decode plus '+' -> ' ' substitution, for
// application/x-www-form-urlencoded content.
func DecodeForm(src []byte) []byte { return decode(src, FormSubstitution) }

func decode(src []byte, sub *SubstitutionMap) []byte {
	if !hasTrigger(src, sub) {
		return src
	}
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		b := src[i]
		switch {
		case b == '%' && i+2 < len(src) && isHexByte(src[i+1]) && isHexByte(src[i+2]):
			out = append(out, unhex(src[i+1])<<4|unhex(src[i+2]))
			i += 3
		case sub != nil && b == sub.From:
			out = append(out, sub.To)
			i++
		default:
			out = append(out, b)
			i++
		}
	}
	return out
}

// DecodeSpan describes which byte range of the original source a decoded
// output byte came from, so callers can map a decoded index back to the
// source slice (spec.md §4.1 "source_indices").
type DecodeSpan struct {
	Start, End int
}

// DecodeIndexed decodes src like Decode/DecodeForm, additionally recording
// the source span that produced each output byte.
func DecodeIndexed(src []byte, sub *SubstitutionMap) ([]byte, []DecodeSpan) {
	out := make([]byte, 0, len(src))
	spans := make([]DecodeSpan, 0, len(src))
	for i := 0; i < len(src); {
		b := src[i]
		switch {
		case b == '%' && i+2 < len(src) && isHexByte(src[i+1]) && isHexByte(src[i+2]):
			out = append(out, unhex(src[i+1])<<4|unhex(src[i+2]))
			spans = append(spans, DecodeSpan{i, i + 3})
			i += 3
		case sub != nil && b == sub.From:
			out = append(out, sub.To)
			spans = append(spans, DecodeSpan{i, i + 1})
			i++
		default:
			out = append(out, b)
			spans = append(spans, DecodeSpan{i, i + 1})
			i++
		}
	}
	return out, spans
}

// SourceIndices returns the byte range in the original source slice that
// produced decoded[decodedIndex], given the spans returned alongside it by
// DecodeIndexed.
func SourceIndices(spans []DecodeSpan, decodedIndex int) (start, end int) {
	s := spans[decodedIndex]
	return s.Start, s.End
}

// IsByteDecodedOrUnsubstituted reports whether the decoded byte at
// decodedIndex came from a single source byte rather than a "%XX"
// triple (spec.md §4.1, used by the collection views to decide whether
// a byte boundary is "real"). A '+' substituted to ' ' also spans one
// source byte, so it is reported as true as well; spans do not record
// substitution.
func IsByteDecodedOrUnsubstituted(spans []DecodeSpan, decodedIndex int) bool {
	s := spans[decodedIndex]
	return s.End-s.Start == 1
}

// EncodeIterator is a lazy, restartable, optionally bidirectional view
// over the percent-encoding of a byte slice (spec.md §4.1 "lazy sequence
// ... restartable via cloning ... bidirectional when the input is
// bidirectional").
type EncodeIterator struct {
	src       []byte
	set       *EncodeSet
	formSpace bool
	reverse   bool
	pos       int // number of source bytes fully consumed
	chunk     []byte
	chunkPos  int
}

// NewEncodeIterator returns a forward iterator over the percent-encoding
// of src under set.
func NewEncodeIterator(src []byte, set *EncodeSet, formSpace bool) *EncodeIterator {
	return &EncodeIterator{src: src, set: set, formSpace: formSpace}
}

// Clone returns an independent copy of it, positioned identically, so
// iteration can be restarted or forked (spec.md §4.1 "restartable via
// cloning the input iterator").
func (it *EncodeIterator) Clone() *EncodeIterator {
	cp := *it
	cp.chunk = append([]byte(nil), it.chunk...)
	return &cp
}

// Reverse returns an iterator over the same source that yields the
// reverse of it's forward output sequence (spec.md §4.1 "bidirectional
// ... reverse iteration yields the reverse of the forward sequence").
func (it *EncodeIterator) Reverse() *EncodeIterator {
	return &EncodeIterator{src: it.src, set: it.set, formSpace: it.formSpace, reverse: !it.reverse}
}

func encodedChunk(b byte, set *EncodeSet, formSpace bool) []byte {
	switch {
	case formSpace && b == ' ':
		return []byte{'+'}
	case set.ShouldEncode(b):
		enc := PercentEncodeByte(b)
		return []byte{enc[0], enc[1], enc[2]}
	default:
		return []byte{b}
	}
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// Next returns the next output byte, or ok=false at end of sequence.
func (it *EncodeIterator) Next() (b byte, ok bool) {
	for it.chunkPos >= len(it.chunk) {
		if it.pos >= len(it.src) {
			return 0, false
		}
		var srcIdx int
		if it.reverse {
			srcIdx = len(it.src) - 1 - it.pos
		} else {
			srcIdx = it.pos
		}
		it.pos++
		chunk := encodedChunk(it.src[srcIdx], it.set, it.formSpace)
		if it.reverse {
			chunk = reverseBytes(chunk)
		}
		it.chunk = chunk
		it.chunkPos = 0
	}
	b = it.chunk[it.chunkPos]
	it.chunkPos++
	return b, true
}

// Collect drains the iterator into a byte slice.
func (it *EncodeIterator) Collect() []byte {
	var out []byte
	for {
		b, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}
