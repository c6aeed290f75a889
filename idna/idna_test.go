package idna

import "testing"

func TestToASCIIPassesThroughPlainDomain(t *testing.T) {
	got, err := ToASCII("example.com")
	if err != nil {
		t.Fatalf("ToASCII: %v", err)
	}
	if got != "example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestToASCIIPunycodesUnicodeLabel(t *testing.T) {
	got, err := ToASCII("café.example")
	if err != nil {
		t.Fatalf("ToASCII: %v", err)
	}
	if got != "xn--caf-dma.example" {
		t.Fatalf("got %q", got)
	}
}

func TestToUnicodeRoundTrip(t *testing.T) {
	ascii, err := ToASCII("café.example")
	if err != nil {
		t.Fatalf("ToASCII: %v", err)
	}
	back, err := ToUnicode(ascii)
	if err != nil {
		t.Fatalf("ToUnicode: %v", err)
	}
	if back != "café.example" {
		t.Fatalf("got %q", back)
	}
}
