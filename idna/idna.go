// Package idna wraps golang.org/x/net/idna with the Unicode
// normalization pass the WHATWG "domain to ASCII" algorithm requires,
// following region23-urlparser's idna.ToUnicode/idna.ToASCII usage and
// nlnwa-whatwg-url's pairing of golang.org/x/net with golang.org/x/text
// (see DESIGN.md).
package idna

import (
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// profile mirrors a non-transitional UTS#46 processing profile with
// VerifyDNSLength disabled: the URL host parser, not IDNA, owns length
// and empty-label validation for the edge cases spec.md carves out
// (single-label hosts, localhost folding).
var profile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.VerifyDNSLength(false),
	idna.BidiRule(),
)

// ToASCII converts a (possibly Unicode) domain to its ASCII
// Punycode-encoded form, normalizing with NFC first per UTS#46 step 1.
func ToASCII(domain string) (string, error) {
	normalized := norm.NFC.String(domain)
	return profile.ToASCII(normalized)
}

// ToUnicode converts an ASCII/Punycode domain back to Unicode, for
// display/round-trip purposes.
func ToUnicode(domain string) (string, error) {
	return profile.ToUnicode(domain)
}
