package weburl

// PathView is a mutable, ordered, index-addressable view over a
// hierarchical URL's path segments (spec.md §4.7, component C7),
// grounded on bytesurl.go's resolvePath segment splitting turned into a
// persistent collection rather than a one-shot normalization pass (see
// DESIGN.md).
type PathView struct {
	url *URL
}

// PathSegmentsView returns a view over u's path segments. The view always reflects
// u's current path; mutating methods on the view mutate u in place.
func (u *URL) PathSegmentsView() *PathView { return &PathView{url: u} }

func (v *PathView) segments() PathSegments {
	segs := SplitPath(v.url.Path(), v.url.IsSpecial())
	if len(segs) > 0 && len(segs[0]) == 0 {
		segs = segs[1:]
	}
	return segs
}

// Len returns the number of path segments.
func (v *PathView) Len() int { return len(v.segments()) }

// At returns the percent-encoded bytes of the segment at i.
func (v *PathView) At(i int) []byte {
	segs := v.segments()
	if i < 0 || i >= len(segs) {
		return nil
	}
	return segs[i]
}

// Decoded returns the percent-decoded bytes of the segment at i.
func (v *PathView) Decoded(i int) []byte { return Decode(v.At(i)) }

// All returns a copy of every segment, percent-encoded.
func (v *PathView) All() PathSegments {
	segs := v.segments()
	out := make(PathSegments, len(segs))
	for i, s := range segs {
		out[i] = append([]byte(nil), s...)
	}
	return out
}

// ReplaceRange replaces segments [start,end) with newSegments (each a
// raw, not-yet-percent-encoded component), applying the Path encode set
// and, at position zero on a file: URL, Windows drive-letter
// normalization. Passing start==end inserts without removing; passing
// newSegments as nil (with start<end) removes without inserting.
func (v *PathView) ReplaceRange(start, end int, newSegments [][]byte) error {
	if v.url.CannotBeABase() {
		return &SetterError{Kind: CannotModifyOpaquePath}
	}
	segs := v.segments()
	if start < 0 || end < start || end > len(segs) {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: "range out of bounds"}
	}

	encoded := make(PathSegments, len(newSegments))
	for i, s := range newSegments {
		enc := Encode(DecodeNonPercent(s), Path, false)
		if v.url.IsFile() && start == 0 && i == 0 && isWindowsDriveLetterSegment(enc) {
			enc = normalizeWindowsDriveLetter(enc)
		}
		encoded[i] = enc
	}

	next := make(PathSegments, 0, len(segs)-(end-start)+len(encoded))
	next = append(next, segs[:start]...)
	next = append(next, encoded...)
	next = append(next, segs[end:]...)
	next = NormalizePathSegments(next, v.url.IsFile())

	if len(next) == 0 && (v.url.IsSpecial() || v.url.HasAuthority()) {
		next = PathSegments{[]byte{}}
	}

	rendered := SerializePath(next, v.url.HasAuthority(), false)
	v.url.replaceComponent(compPath, rendered)
	return nil
}

// InsertSlice inserts newSegments before index at, without removing any
// existing segment.
func (v *PathView) InsertSlice(at int, newSegments [][]byte) error {
	return v.ReplaceRange(at, at, newSegments)
}

// RemoveRange removes segments [start,end) without inserting.
func (v *PathView) RemoveRange(start, end int) error {
	return v.ReplaceRange(start, end, nil)
}

// Append adds newSegments to the end of the path.
func (v *PathView) Append(newSegments ...[]byte) error {
	return v.ReplaceRange(v.Len(), v.Len(), newSegments)
}
