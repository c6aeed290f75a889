package weburl

import "testing"

func TestKVViewGetSetAppend(t *testing.T) {
	u, err := Parse("http://example.com/?a=1&b=2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.QueryParams(FormEncodedSchema)
	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2", v.Len())
	}
	val, ok := v.Get("a")
	if !ok || string(val) != "1" {
		t.Fatalf("Get(a) = %q ok=%v", val, ok)
	}
	v.Set("a", "99")
	val, ok = v.Get("a")
	if !ok || string(val) != "99" {
		t.Fatalf("after Set, Get(a) = %q ok=%v", val, ok)
	}
	v.Append("c", "3")
	if v.Len() != 3 {
		t.Fatalf("Len after append = %d, want 3", v.Len())
	}
	q, _ := u.Query()
	if string(q) != "a=99&b=2&c=3" {
		t.Fatalf("query = %q", q)
	}
}

func TestKVViewEmptyPairsInvisible(t *testing.T) {
	u, err := Parse("http://example.com/?a=1&&b=2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.QueryParams(FormEncodedSchema)
	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (empty pair invisible)", v.Len())
	}
}

func TestKVViewInsertAtOffsetZeroWithControlCharacterKey(t *testing.T) {
	u, err := Parse("http://example.com/?a=1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.QueryParams(FormEncodedSchema)
	if err := v.InsertAt(0, KVPair{Key: []byte("\x00k"), Value: []byte("v")}); err != nil {
		t.Fatalf("InsertAt: %v", err)
	}
	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2", v.Len())
	}
	first, _ := v.At(0)
	if string(first.Key) != "\x00k" || string(first.Value) != "v" {
		t.Fatalf("first pair = %+v", first)
	}
	q, _ := u.Query()
	if string(q) != "%00k=v&a=1" {
		t.Fatalf("query = %q", q)
	}
}

func TestKVViewFormSpacePlusSubstitution(t *testing.T) {
	u, err := Parse("http://example.com/?q=a+b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.QueryParams(FormEncodedSchema)
	val, ok := v.Get("q")
	if !ok || string(val) != "a b" {
		t.Fatalf("Get(q) = %q ok=%v, want decoded 'a b'", val, ok)
	}
	v.Set("q", "x y")
	q, _ := u.Query()
	if string(q) != "q=x+y" {
		t.Fatalf("query = %q, want 'q=x+y'", q)
	}
}

func TestKVViewReplaceValueAtPreservesUnrelatedEmptyPairs(t *testing.T) {
	u, err := Parse("http://example.com/?&&a=1&b=2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.QueryParams(FormEncodedSchema)
	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2", v.Len())
	}
	if err := v.ReplaceValueAt(1, "9"); err != nil {
		t.Fatalf("ReplaceValueAt: %v", err)
	}
	q, _ := u.Query()
	if string(q) != "&&a=1&b=9" {
		t.Fatalf("query = %q, want leading \"&&\" preserved: \"&&a=1&b=9\"", q)
	}
}

func TestKVViewRemoveAllWhere(t *testing.T) {
	u, err := Parse("http://example.com/?a=1&b=2&a=3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.QueryParams(FormEncodedSchema)
	v.RemoveAllWhere(func(key, value []byte) bool { return string(key) == "a" })
	if v.Len() != 1 {
		t.Fatalf("Len = %d, want 1", v.Len())
	}
	remaining, _ := v.At(0)
	if string(remaining.Key) != "b" {
		t.Fatalf("remaining key = %q", remaining.Key)
	}
}
