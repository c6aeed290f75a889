package weburl

import "testing"

func TestParseIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"192.168.0.1", 0xC0A80001},
		{"0xC0A80001", 0xC0A80001},
		{"0300.0250.0.1", 0xC0A80001}, // octal octets
		{"1.2.3", 0x01020003},         // 3-part shorthand
		{"1", 1},
	}
	for _, tt := range tests {
		got, err := parseIPv4([]byte(tt.in))
		if err != nil {
			t.Fatalf("parseIPv4(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseIPv4(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestParseIPv4Overflow(t *testing.T) {
	if _, err := parseIPv4([]byte("1.2.3.4.5")); err == nil {
		t.Fatal("expected error for too many parts")
	}
	if _, err := parseIPv4([]byte("256.0.0.1")); err == nil {
		t.Fatal("expected error for octet overflow")
	}
}

func TestIPv6RoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"::1", "::1"},
		{"2001:db8::1", "2001:db8::1"},
		{"::ffff:192.168.0.1", "::ffff:c0a8:1"},
		{"1:2:3:4:5:6:7:8", "1:2:3:4:5:6:7:8"},
		{"::", "::"},
	}
	for _, tt := range tests {
		addr, err := parseIPv6([]byte(tt.in))
		if err != nil {
			t.Fatalf("parseIPv6(%q): %v", tt.in, err)
		}
		got := serializeIPv6(addr)
		if got != tt.want {
			t.Fatalf("serializeIPv6(parseIPv6(%q)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIPv6LeadingColonError(t *testing.T) {
	_, err := parseIPv6([]byte(":1"))
	if err == nil {
		t.Fatal("expected error for single leading colon")
	}
	he, ok := err.(*HostError)
	if !ok || he.Kind != UnexpectedLeadingColon {
		t.Fatalf("expected UnexpectedLeadingColon, got %v", err)
	}
}

func TestParseHostDomain(t *testing.T) {
	h, err := ParseHost([]byte("example.com"), true, false)
	if err != nil {
		t.Fatalf("ParseHost: %v", err)
	}
	if h.Kind != HostDomain || string(h.Domain) != "example.com" {
		t.Fatalf("got %+v", h)
	}
}

func TestParseHostOpaque(t *testing.T) {
	h, err := ParseHost([]byte("ex ample"), false, false)
	if err == nil {
		t.Fatalf("expected forbidden host code point error, got host %+v", h)
	}
}

func TestParseHostFileLocalhost(t *testing.T) {
	h, err := ParseHost([]byte("localhost"), true, true)
	if err != nil {
		t.Fatalf("ParseHost: %v", err)
	}
	if h.Kind != HostEmpty {
		t.Fatalf("expected localhost to fold to empty host for file scheme, got %+v", h)
	}
}

func TestEndsInANumber(t *testing.T) {
	if !endsInANumber([]byte("1.2.3.4")) {
		t.Fatal("expected true")
	}
	if !endsInANumber([]byte("0x1")) {
		t.Fatal("expected true for hex literal")
	}
	if endsInANumber([]byte("example.com")) {
		t.Fatal("expected false")
	}
}
