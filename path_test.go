package weburl

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	got := SplitPath([]byte("/a/b/c"), false)
	want := PathSegments{[]byte(""), []byte("a"), []byte("b"), []byte("c")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSplitPathBackslashForSpecial(t *testing.T) {
	got := SplitPath([]byte(`a\b`), true)
	want := PathSegments{[]byte("a"), []byte("b")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	gotNonSpecial := SplitPath([]byte(`a\b`), false)
	wantNonSpecial := PathSegments{[]byte(`a\b`)}
	if !reflect.DeepEqual(gotNonSpecial, wantNonSpecial) {
		t.Fatalf("got %q, want %q", gotNonSpecial, wantNonSpecial)
	}
}

func TestIsDoubleDotPathSegment(t *testing.T) {
	for _, s := range []string{"..", ".%2e", "%2e.", "%2e%2e", ".%2E", "%2E%2E"} {
		if !isDoubleDotPathSegment([]byte(s)) {
			t.Fatalf("%q should be a double-dot segment", s)
		}
	}
	if isDoubleDotPathSegment([]byte(".")) {
		t.Fatal(`"." should not be a double-dot segment`)
	}
}

func TestNormalizePathSegmentsDotDot(t *testing.T) {
	in := SplitPath([]byte("/a/b/../c"), false)
	got := NormalizePathSegments(in, false)
	want := PathSegments{[]byte(""), []byte("a"), []byte("c")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShortenPathKeepsFileDriveLetter(t *testing.T) {
	segs := PathSegments{[]byte("C:")}
	got := shortenPath(segs, true)
	if !reflect.DeepEqual(got, segs) {
		t.Fatalf("drive-letter-only path should not shorten further, got %q", got)
	}
}

func TestNeedsPathSigil(t *testing.T) {
	segs := PathSegments{[]byte(""), []byte("a")}
	if !NeedsPathSigil(segs, false) {
		t.Fatal("expected sigil needed for authority-less path starting with empty segment")
	}
	if NeedsPathSigil(segs, true) {
		t.Fatal("authority present should never need a sigil")
	}
}
