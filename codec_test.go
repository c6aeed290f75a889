package weburl

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		set  *EncodeSet
		want string
	}{
		{"path space", "a b", Path, "a%20b"},
		{"fragment backtick", "a`b", Fragment, "a%60b"},
		{"userinfo at", "a@b", UserInfo, "a%40b"},
		{"component dollar", "a$b", Component, "a%24b"},
		{"unreserved untouched", "abc-._~123", Component, "abc-._~123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode([]byte(tt.in), tt.set, false)
			assert.Equal(t, tt.want, string(got))
			back := Decode(got)
			assert.Equal(t, tt.in, string(back))
		})
	}
}

func TestEncodeNoAllocFastPath(t *testing.T) {
	src := []byte("plainvalue")
	got := Encode(src, Component, false)
	if &got[0] != &src[0] {
		t.Fatalf("expected Encode to return the same backing array when nothing needs escaping")
	}
}

func TestFormSpaceSubstitution(t *testing.T) {
	got := Encode([]byte("a b+c"), FormEncoding, true)
	if string(got) != "a+b%2Bc" {
		t.Fatalf("got %q", got)
	}
	back := DecodeForm(got)
	if string(back) != "a b+c" {
		t.Fatalf("got %q", back)
	}
}

func TestDecodeLeavesInvalidEscapesAlone(t *testing.T) {
	got := Decode([]byte("100%-off%2"))
	if string(got) != "100%-off%2" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeIndexedSourceIndices(t *testing.T) {
	src := []byte("a%20b")
	decoded, spans := DecodeIndexed(src, nil)
	if string(decoded) != "a b" {
		t.Fatalf("got %q", decoded)
	}
	start, end := SourceIndices(spans, 1)
	if start != 1 || end != 4 {
		t.Fatalf("expected span [1,4) for the decoded space, got [%d,%d)", start, end)
	}
	if IsByteDecodedOrUnsubstituted(spans, 1) {
		t.Fatalf("decoded space should not be reported as unsubstituted")
	}
	if !IsByteDecodedOrUnsubstituted(spans, 0) {
		t.Fatalf("literal 'a' should be reported as unsubstituted")
	}
}

func TestEncodeIteratorForwardMatchesEncode(t *testing.T) {
	src := []byte("a b%c")
	want := Encode(src, Path, false)
	it := NewEncodeIterator(src, Path, false)
	got := it.Collect()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("iterator forward = %q, want %q", got, want)
	}
}

func TestEncodeIteratorReverseIsReverseOfForward(t *testing.T) {
	src := []byte("a b%c")
	forward := NewEncodeIterator(src, Path, false).Collect()
	reverse := NewEncodeIterator(src, Path, false).Reverse().Collect()
	if !reflect.DeepEqual(reverse, reverseBytes(forward)) {
		t.Fatalf("reverse iterator = %q, want reverse of forward %q", reverse, forward)
	}
}

func TestEncodeIteratorCloneIsIndependent(t *testing.T) {
	src := []byte("ab%63")
	it := NewEncodeIterator(src, Path, false)
	it.Next()
	clone := it.Clone()
	restOfIt := it.Collect()
	restOfClone := clone.Collect()
	if !reflect.DeepEqual(restOfIt, restOfClone) {
		t.Fatalf("clone diverged: %q vs %q", restOfClone, restOfIt)
	}
}
