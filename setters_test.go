package weburl

import "testing"

func TestSetHostnameSuccess(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := u.SetHostname("other.example"); err != nil {
		t.Fatalf("SetHostname: %v", err)
	}
	if u.Hostname() != "other.example" {
		t.Fatalf("hostname = %q", u.Hostname())
	}
	if u.Pathname() != "/a" {
		t.Fatalf("unrelated path changed: %q", u.Pathname())
	}
}

func TestSetHostnameRejectsEmptyForSpecialNonFile(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	before := u.String()
	err = u.SetHostname("")
	if err == nil {
		t.Fatal("expected error setting empty hostname on special non-file scheme")
	}
	se, ok := err.(*SetterError)
	if !ok || se.Kind != SchemeDoesNotSupportNilOrEmptyHostnames {
		t.Fatalf("wrong error kind: %v", err)
	}
	if u.String() != before {
		t.Fatalf("URL mutated despite setter failure: %q != %q", u.String(), before)
	}
}

func TestSetPortOutOfBounds(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	before := u.String()
	err = u.SetPort(99999, true)
	if err == nil {
		t.Fatal("expected error for out-of-bounds port")
	}
	se, ok := err.(*SetterError)
	if !ok || se.Kind != PortValueOutOfBounds {
		t.Fatalf("wrong error kind: %v", err)
	}
	if u.String() != before {
		t.Fatalf("URL mutated despite setter failure")
	}
}

func TestSetPortRemove(t *testing.T) {
	u, err := Parse("http://example.com:8080/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := u.SetPort(0, false); err != nil {
		t.Fatalf("SetPort remove: %v", err)
	}
	if _, ok := u.Port(); ok {
		t.Fatal("expected port removed")
	}
}

func TestSetQueryAbsentVsEmpty(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := u.Query(); ok {
		t.Fatal("expected no query initially")
	}
	if err := u.SetQuery("", true); err != nil {
		t.Fatalf("SetQuery: %v", err)
	}
	q, ok := u.Query()
	if !ok || len(q) != 0 {
		t.Fatalf("expected present-but-empty query, got %q ok=%v", q, ok)
	}
	if err := u.SetQuery("", false); err != nil {
		t.Fatalf("SetQuery remove: %v", err)
	}
	if _, ok := u.Query(); ok {
		t.Fatal("expected query removed")
	}
}

func TestSetPathOpaqueRejected(t *testing.T) {
	u, err := Parse("mailto:user@example.com")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = u.SetPath("/new")
	if err == nil {
		t.Fatal("expected error modifying opaque path")
	}
	se, ok := err.(*SetterError)
	if !ok || se.Kind != CannotModifyOpaquePath {
		t.Fatalf("wrong error kind: %v", err)
	}
}

func TestSetSchemeRejectsSpecialityChange(t *testing.T) {
	u, err := Parse("http://example.com/a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = u.SetScheme("foo")
	if err == nil {
		t.Fatal("expected error changing special -> non-special scheme")
	}
	se, ok := err.(*SetterError)
	if !ok || se.Kind != ChangeOfSchemeSpecialness {
		t.Fatalf("wrong error kind: %v", err)
	}
}
