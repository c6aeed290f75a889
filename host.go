package weburl

import (
	"strconv"
	"strings"

	"github.com/ernestasp/weburl/idna"
)

// HostKind discriminates the closed set of host representations named in
// spec.md §3: domain(bytes), ipv4(u32), ipv6([u16;8]), opaque(bytes),
// empty, absent.
type HostKind int

const (
	HostAbsent HostKind = iota
	HostEmpty
	HostDomain
	HostIPv4
	HostIPv6
	HostOpaque
)

// Host is the parsed representation of a URL's host component.
type Host struct {
	Kind   HostKind
	Domain []byte   // set when Kind == HostDomain: ASCII bytes (post-IDNA)
	IPv4   uint32   // set when Kind == HostIPv4
	IPv6   [8]uint16 // set when Kind == HostIPv6
	Opaque []byte   // set when Kind == HostOpaque

	// cached holds the already-serialized form when a Host is
	// reconstructed from another URL's host bytes (e.g. relative
	// resolution copying a base URL's host): it lets Serialize return
	// the exact original bytes without needing the typed fields
	// (IPv4/IPv6 numeric value, Domain/Opaque bytes) to be replayed.
	cached []byte
}

// Serialize renders h in the form used by URL serialization (spec.md §6):
// IPv4 without leading zeros, IPv6 enclosed in brackets with the longest
// run of zero pieces compressed, domain/opaque verbatim.
func (h Host) Serialize() []byte {
	if h.cached != nil {
		return h.cached
	}
	switch h.Kind {
	case HostAbsent:
		return nil
	case HostEmpty:
		return []byte{}
	case HostDomain:
		return h.Domain
	case HostOpaque:
		return h.Opaque
	case HostIPv4:
		return []byte(serializeIPv4(h.IPv4))
	case HostIPv6:
		out := make([]byte, 0, 41)
		out = append(out, '[')
		out = append(out, serializeIPv6(h.IPv6)...)
		out = append(out, ']')
		return out
	}
	return nil
}

// hostFromURL reconstructs the Host of an already-parsed URL, for
// relative-resolution code paths that copy a base URL's host verbatim
// rather than re-parsing it.
func hostFromURL(u *URL) Host {
	return Host{Kind: u.HostKind(), cached: append([]byte(nil), u.HostBytes()...)}
}

func serializeIPv4(addr uint32) string {
	var b strings.Builder
	for i := 3; i >= 0; i-- {
		octet := byte(addr >> (8 * uint(i)))
		b.WriteString(strconv.Itoa(int(octet)))
		if i != 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func findIPv6Compress(addr [8]uint16) int {
	bestStart, bestLen := -1, 1
	curStart, curLen := -1, 0
	for i := 0; i < 8; i++ {
		if addr[i] == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
		} else {
			if curLen > bestLen {
				bestStart, bestLen = curStart, curLen
			}
			curStart, curLen = -1, 0
		}
	}
	if curLen > bestLen {
		bestStart = curStart
	}
	return bestStart
}

func serializeIPv6(addr [8]uint16) string {
	compress := findIPv6Compress(addr)
	var b strings.Builder
	ignoreZero := false
	for i := 0; i <= 7; i++ {
		if ignoreZero && addr[i] == 0 {
			continue
		}
		if ignoreZero {
			ignoreZero = false
		}
		if compress == i {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			ignoreZero = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(addr[i]), 16))
		if i != 7 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

// ParseHost parses a raw (not yet percent-decoded, for non-domain cases)
// host slice per spec.md §4.2. isSpecial indicates a special scheme
// (http/https/ws/wss/ftp/file); isFile additionally indicates the file
// scheme, which folds a "localhost" domain to the empty host.
func ParseHost(input []byte, isSpecial, isFile bool) (Host, error) {
	h, err := parseHost(input, isSpecial, isFile)
	if err != nil {
		return Host{}, err
	}
	h.cached = h.Serialize()
	return h, nil
}

func parseHost(input []byte, isSpecial, isFile bool) (Host, error) {
	if len(input) == 0 {
		return Host{Kind: HostEmpty}, nil
	}
	if input[0] == '[' {
		if input[len(input)-1] != ']' {
			return Host{}, &HostError{Kind: UnexpectedCharacter, Input: string(input)}
		}
		addr, err := parseIPv6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, err
		}
		return Host{Kind: HostIPv6, IPv6: addr}, nil
	}
	if !isSpecial {
		return parseOpaqueHost(input)
	}
	decoded := Decode(input)
	if endsInANumber(decoded) {
		addr, err := parseIPv4(decoded)
		if err != nil {
			return Host{}, err
		}
		return Host{Kind: HostIPv4, IPv4: addr}, nil
	}
	return parseDomain(decoded, isFile)
}

func parseOpaqueHost(input []byte) (Host, error) {
	for _, b := range input {
		if testClass(forbiddenHostCodePoint, b) && b != '%' {
			return Host{}, &HostError{Kind: ForbiddenHostCodePoint, Input: string(input)}
		}
	}
	// percent-encode every byte in the C0 control encode set (C0
	// controls, DEL and every non-ASCII byte), per spec.md §4.2 step 2;
	// '%' (whether or not it starts a valid triple) and every other byte
	// are copied unchanged.
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b == '%' && i+2 < len(input) && isHexByte(input[i+1]) && isHexByte(input[i+2]) {
			out = append(out, b)
			continue
		}
		if C0Control.ShouldEncode(b) {
			enc := PercentEncodeByte(b)
			out = append(out, enc[0], enc[1], enc[2])
		} else {
			out = append(out, b)
		}
	}
	return Host{Kind: HostOpaque, Opaque: out}, nil
}

func parseDomain(decoded []byte, isFile bool) (Host, error) {
	ascii, err := idna.ToASCII(string(decoded))
	if err != nil {
		return Host{}, &HostError{Kind: UnexpectedCharacter, Input: string(decoded)}
	}
	for i := 0; i < len(ascii); i++ {
		if testClass(forbiddenDomainCodePoint, ascii[i]) {
			return Host{}, &HostError{Kind: ForbiddenHostCodePoint, Input: ascii}
		}
	}
	if endsInANumber([]byte(ascii)) {
		addr, err := parseIPv4([]byte(ascii))
		if err != nil {
			return Host{}, err
		}
		return Host{Kind: HostIPv4, IPv4: addr}, nil
	}
	if isFile && strings.EqualFold(ascii, "localhost") {
		return Host{Kind: HostEmpty}, nil
	}
	if isWindowsDriveLetter([]byte(ascii)) {
		return Host{}, &HostError{Kind: WindowsDriveLetterHost, Input: ascii}
	}
	return Host{Kind: HostDomain, Domain: []byte(ascii)}, nil
}

// endsInANumber implements the WHATWG "ends in a number" check that
// decides whether a special-scheme host should be attempted as IPv4
// rather than a domain.
func endsInANumber(input []byte) bool {
	parts := strings.Split(string(input), ".")
	if len(parts) == 0 {
		return false
	}
	last := parts[len(parts)-1]
	if last == "" {
		if len(parts) == 1 {
			return false
		}
		last = parts[len(parts)-2]
	}
	if last != "" && isAllASCIIDigits(last) {
		return true
	}
	_, err := parseIPv4Number(last)
	return err == nil
}

func isAllASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigitByte(s[i]) {
			return false
		}
	}
	return true
}

func parseIPv4Number(part string) (uint64, error) {
	if part == "" {
		return 0, &HostError{Kind: InvalidIPv4Address, Input: part}
	}
	base := 10
	switch {
	case len(part) >= 2 && part[0] == '0' && (part[1] == 'x' || part[1] == 'X'):
		part = part[2:]
		base = 16
	case len(part) >= 2 && part[0] == '0':
		part = part[1:]
		base = 8
	}
	if part == "" {
		return 0, nil
	}
	for i := 0; i < len(part); i++ {
		switch base {
		case 16:
			if !isHexByte(part[i]) {
				return 0, &HostError{Kind: InvalidIPv4Address, Input: part}
			}
		case 8:
			if part[i] < '0' || part[i] > '7' {
				return 0, &HostError{Kind: InvalidIPv4Address, Input: part}
			}
		default:
			if !isDigitByte(part[i]) {
				return 0, &HostError{Kind: InvalidIPv4Address, Input: part}
			}
		}
	}
	n, err := strconv.ParseUint(part, base, 64)
	if err != nil {
		return 0, &HostError{Kind: InvalidIPv4Address, Input: part}
	}
	return n, nil
}

func parseIPv4(input []byte) (uint32, error) {
	parts := strings.Split(string(input), ".")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 4 {
		return 0, &HostError{Kind: InvalidIPv4Address, Input: string(input)}
	}
	numbers := make([]uint64, 0, len(parts))
	for _, p := range parts {
		n, err := parseIPv4Number(p)
		if err != nil {
			return 0, err
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return 0, &HostError{Kind: InvalidIPv4Address, Input: string(input)}
	}
	last := numbers[len(numbers)-1]
	maxLast := uint64(1)
	for i := 0; i < 5-len(numbers); i++ {
		maxLast *= 256
	}
	if last >= maxLast {
		return 0, &HostError{Kind: InvalidIPv4Address, Input: string(input)}
	}
	var ipv4 uint64 = last
	rest := numbers[:len(numbers)-1]
	for i, n := range rest {
		if n > 255 {
			return 0, &HostError{Kind: InvalidIPv4Address, Input: string(input)}
		}
		shift := uint(3-i) * 8
		ipv4 += n << shift
	}
	return uint32(ipv4), nil
}

func parseIPv6(c []byte) ([8]uint16, error) {
	var address [8]uint16
	pieceIndex := 0
	compress := -1
	pointer := 0

	if len(c) > 0 && c[0] == ':' {
		if len(c) < 2 || c[1] != ':' {
			return address, &HostError{Kind: UnexpectedLeadingColon, Input: string(c)}
		}
		pointer += 2
		pieceIndex++
		compress = pieceIndex
	}

	for pointer < len(c) {
		if pieceIndex == 8 {
			return address, &HostError{Kind: TooManyPieces, Input: string(c)}
		}
		if c[pointer] == ':' {
			if compress != -1 {
				return address, &HostError{Kind: MultipleCompressedPieces, Input: string(c)}
			}
			pointer++
			pieceIndex++
			compress = pieceIndex
			continue
		}
		value := 0
		length := 0
		for length < 4 && pointer < len(c) && isHexByte(c[pointer]) {
			value = value*0x10 + int(unhex(c[pointer]))
			pointer++
			length++
		}
		if pointer < len(c) && c[pointer] == '.' {
			if length == 0 {
				return address, &HostError{Kind: UnexpectedPeriod, Input: string(c)}
			}
			pointer -= length
			if pieceIndex > 6 {
				return address, &HostError{Kind: TooManyPieces, Input: string(c)}
			}
			numbersSeen := 0
			for pointer < len(c) {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if c[pointer] == '.' && numbersSeen < 4 {
						pointer++
					} else {
						return address, &HostError{Kind: UnexpectedCharacter, Input: string(c)}
					}
				}
				if pointer >= len(c) || !isDigitByte(c[pointer]) {
					return address, &HostError{Kind: UnexpectedCharacter, Input: string(c)}
				}
				for pointer < len(c) && isDigitByte(c[pointer]) {
					digit := int(c[pointer] - '0')
					if ipv4Piece == -1 {
						ipv4Piece = digit
					} else if ipv4Piece == 0 {
						return address, &HostError{Kind: InvalidIPv4Address, Input: string(c)}
					} else {
						ipv4Piece = ipv4Piece*10 + digit
					}
					if ipv4Piece > 255 {
						return address, &HostError{Kind: InvalidIPv4Address, Input: string(c)}
					}
					pointer++
				}
				address[pieceIndex] = address[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return address, &HostError{Kind: NotEnoughPieces, Input: string(c)}
			}
			break
		} else if pointer < len(c) && c[pointer] == ':' {
			pointer++
			if pointer >= len(c) {
				return address, &HostError{Kind: UnexpectedTrailingColon, Input: string(c)}
			}
		} else if pointer < len(c) {
			return address, &HostError{Kind: UnexpectedCharacter, Input: string(c)}
		}
		address[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			address[pieceIndex], address[compress+swaps-1] = address[compress+swaps-1], address[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		return address, &HostError{Kind: NotEnoughPieces, Input: string(c)}
	}
	return address, nil
}

// isWindowsDriveLetter reports whether s is a two-byte ASCII-letter
// drive-letter sequence ("C:" or "C|"), used by the file-URL host and
// path parsers (spec.md §4.3).
func isWindowsDriveLetter(s []byte) bool {
	return len(s) == 2 && isAlphaByte(s[0]) && (s[1] == ':' || s[1] == '|')
}

// isNormalizedWindowsDriveLetter reports whether s is "C:" with the
// normalized colon separator (not '|').
func isNormalizedWindowsDriveLetter(s []byte) bool {
	return len(s) == 2 && isAlphaByte(s[0]) && s[1] == ':'
}
