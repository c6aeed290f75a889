package weburl

import "testing"

func TestPathViewLenAndAt(t *testing.T) {
	u, err := Parse("http://example.com/a/b/c")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.PathSegmentsView()
	if v.Len() != 3 {
		t.Fatalf("Len = %d, want 3", v.Len())
	}
	if string(v.At(1)) != "b" {
		t.Fatalf("At(1) = %q", v.At(1))
	}
}

func TestPathViewReplaceRange(t *testing.T) {
	u, err := Parse("http://example.com/a/b/c")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.PathSegmentsView()
	if err := v.ReplaceRange(1, 2, [][]byte{[]byte("x"), []byte("y")}); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if u.Pathname() != "/a/x/y/c" {
		t.Fatalf("path = %q, want /a/x/y/c", u.Pathname())
	}
}

func TestPathViewInsertAtZero(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.PathSegmentsView()
	if err := v.InsertSlice(0, [][]byte{[]byte("\x00special")}); err != nil {
		t.Fatalf("InsertSlice: %v", err)
	}
	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2", v.Len())
	}
	if string(v.At(0)) != "%00special" {
		t.Fatalf("At(0) = %q, want control character percent-encoded", v.At(0))
	}
}

func TestPathViewRemoveRangeToEmptyKeepsSlash(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.PathSegmentsView()
	if err := v.RemoveRange(0, v.Len()); err != nil {
		t.Fatalf("RemoveRange: %v", err)
	}
	if u.Pathname() != "/" {
		t.Fatalf("path = %q, want / (special URL path can't be fully empty)", u.Pathname())
	}
}

func TestPathViewWindowsDriveNormalization(t *testing.T) {
	u, err := Parse("file:///C:/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := u.PathSegmentsView()
	if err := v.ReplaceRange(0, 1, [][]byte{[]byte("D|")}); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if string(v.At(0)) != "D:" {
		t.Fatalf("At(0) = %q, want D: (drive letter normalized)", v.At(0))
	}
}
