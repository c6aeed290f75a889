package weburl

import (
	"strconv"
	"strings"
)

// state names the WHATWG URL Standard's basic URL parser states
// (spec.md §4.5), grounded on
// other_examples/3ba66546_nlnwa-whatwg-url__url-parser.go.go's
// basicParser state switch, reworked to operate on byte slices instead
// of runes and to splice into this repo's URL/Host/error types instead
// of that file's own (see DESIGN.md, C5).
type state int

const (
	stateSchemeStart state = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	stateHostname
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

// builder accumulates the components of a URL under construction,
// assembled into a URL value only once parsing succeeds.
type builder struct {
	scheme        []byte
	username      []byte
	password      []byte
	hasUsername   bool
	hasPassword   bool
	host          Host
	port          *uint16
	pathSegs      PathSegments
	opaquePath    []byte
	cannotBeABase bool
	query         []byte
	hasQuery      bool
	fragment      []byte
	hasFragment   bool
	hasAuthority  bool
}

func (b *builder) isSpecial(po *parseOptions) bool {
	_, ok := po.isSpecialScheme(string(b.scheme))
	return ok
}

func (b *builder) defaultPort(po *parseOptions) (int, bool) {
	p, ok := po.isSpecialScheme(string(b.scheme))
	if !ok || p < 0 {
		return 0, false
	}
	return p, true
}

func (b *builder) assemble(po *parseOptions) *URL {
	isSpecial := b.isSpecial(po)
	var path []byte
	if b.cannotBeABase {
		path = b.opaquePath
	} else {
		path = SerializePath(b.pathSegs, b.hasAuthority, false)
	}

	var buf []byte
	u := &URL{}
	buf = append(buf, b.scheme...)
	u.schemeEnd = len(buf)
	buf = append(buf, b.username...)
	u.usernameEnd = len(buf)
	buf = append(buf, b.password...)
	u.passwordEnd = len(buf)
	buf = append(buf, b.host.Serialize()...)
	u.hostEnd = len(buf)
	buf = append(buf, path...)
	u.pathEnd = len(buf)
	if b.hasQuery {
		buf = append(buf, b.query...)
	}
	u.queryEnd = len(buf)
	if b.hasFragment {
		buf = append(buf, b.fragment...)
	}
	u.fragmentEnd = len(buf)

	u.storage = newStorage(buf)
	u.hostKind = b.host.Kind
	u.flags = u.flags.set(flagSpecial, isSpecial)
	u.flags = u.flags.set(flagHasAuthority, b.hasAuthority)
	u.flags = u.flags.set(flagHasUsername, b.hasUsername)
	u.flags = u.flags.set(flagHasPassword, b.hasPassword)
	u.flags = u.flags.set(flagHasQuery, b.hasQuery)
	u.flags = u.flags.set(flagHasFragment, b.hasFragment)
	u.flags = u.flags.set(flagCannotBeABase, b.cannotBeABase)
	if b.port != nil {
		u.flags = u.flags.set(flagHasPort, true)
		u.port = *b.port
	}
	return u
}

// Parse parses input into a URL per spec.md §4.5, optionally resolving
// it against a base URL supplied via WithBaseURL.
func Parse(input string, opts ...ParseOption) (*URL, error) {
	po := newParseOptions(opts)
	return parse([]byte(input), po.base, stateSchemeStart, nil, po)
}

// preprocess trims leading/trailing C0-control-or-space and strips all
// ASCII tab and newline bytes, per the basic URL parser's first two
// steps.
func preprocess(input []byte) []byte {
	start, end := 0, len(input)
	for start < end && testClass(c0OrSpace, input[start]) {
		start++
	}
	for end > start && testClass(c0OrSpace, input[end-1]) {
		end--
	}
	input = input[start:end]
	out := make([]byte, 0, len(input))
	for _, b := range input {
		if !testClass(asciiTabOrNewline, b) {
			out = append(out, b)
		}
	}
	return out
}

func parse(rawInput []byte, base *URL, startState state, override *builder, po *parseOptions) (*URL, error) {
	input := preprocess(rawInput)
	b := override
	if b == nil {
		b = &builder{}
	}
	st := startState

	var buffer []byte
	atSignSeen := false
	bracketDepth := 0
	passwordTokenSeen := false
	stateOverride := startState != stateSchemeStart

	pointer := 0
	for {
		var c byte
		eof := pointer >= len(input)
		if !eof {
			c = input[pointer]
		}

		switch st {
		case stateSchemeStart:
			if isAlphaByte(c) {
				buffer = append(buffer, toLowerByte(c))
				st = stateScheme
			} else if !stateOverride {
				st = stateNoScheme
				pointer--
			} else {
				return nil, &Error{Op: "parse", Input: string(rawInput), Err: &SetterError{Kind: InvalidScheme}}
			}

		case stateScheme:
			if testClass(schemeTrailing, c) {
				buffer = append(buffer, toLowerByte(c))
			} else if c == ':' {
				b.scheme = append([]byte(nil), buffer...)
				buffer = nil
				special := b.isSpecial(po)
				if stateOverride {
					if special != (base != nil && base.IsSpecial()) {
						return nil, &Error{Op: "parse", Input: string(rawInput), Err: &SetterError{Kind: ChangeOfSchemeSpecialness}}
					}
					return b.assemble(po), nil
				}
				if string(b.scheme) == "file" {
					st = stateFile
				} else if special && base != nil && sameScheme(base, b.scheme) {
					st = stateSpecialRelativeOrAuthority
				} else if special {
					st = stateSpecialAuthoritySlashes
				} else if pointer+1 < len(input) && input[pointer+1] == '/' {
					st = statePathOrAuthority
					pointer++
				} else {
					b.cannotBeABase = true
					st = stateOpaquePath
				}
			} else if !stateOverride {
				buffer = nil
				st = stateNoScheme
				pointer = -1
			} else {
				return nil, &Error{Op: "parse", Input: string(rawInput), Err: &SetterError{Kind: InvalidScheme}}
			}

		case stateNoScheme:
			if base == nil || (base.CannotBeABase() && c != '#') {
				return nil, &Error{Op: "parse", Input: string(rawInput), Err: &SetterError{Kind: InvalidScheme}}
			}
			if base.CannotBeABase() && c == '#' {
				copyFromBase(b, base, true)
				b.cannotBeABase = true
				st = stateFragment
				pointer++
				continue
			}
			if string(base.Scheme()) != "file" {
				copyFromBase(b, base, false)
				st = stateRelative
			} else {
				copyFromBaseFile(b, base)
				st = stateFile
			}
			continue

		case stateSpecialRelativeOrAuthority:
			if c == '/' && pointer+1 < len(input) && input[pointer+1] == '/' {
				st = stateSpecialAuthoritySlashes
				pointer++
			} else {
				st = stateRelative
				continue
			}

		case statePathOrAuthority:
			if c == '/' {
				st = stateAuthority
			} else {
				st = statePathStart
				continue
			}

		case stateRelative:
			copyFromBase(b, base, false)
			b.cannotBeABase = false
			switch {
			case c == '/':
				st = stateRelativeSlash
			case b.isSpecial(po) && c == '\\':
				st = stateRelativeSlash
			case c == '?':
				b.pathSegs = clonePathSegs(base)
				b.hasQuery = true
				b.query = nil
				st = stateQuery
			case c == '#':
				b.pathSegs = clonePathSegs(base)
				b.hasFragment = true
				b.fragment = nil
				st = stateFragment
			case !eof:
				b.pathSegs = clonePathSegs(base)
				if len(b.pathSegs) > 0 {
					b.pathSegs = b.pathSegs[:len(b.pathSegs)-1]
				}
				st = statePath
				continue
			default:
				b.pathSegs = clonePathSegs(base)
			}

		case stateRelativeSlash:
			switch {
			case b.isSpecial(po) && (c == '/' || c == '\\'):
				st = stateSpecialAuthoritySlashes
			case c == '/':
				st = stateAuthority
			default:
				b.hasUsername = base.HasUsername()
				b.username = append([]byte(nil), base.Username()...)
				b.hasPassword = base.HasPassword()
				b.password = append([]byte(nil), base.Password()...)
				b.host = hostFromURL(base)
				if p, ok := base.Port(); ok {
					pp := p
					b.port = &pp
				}
				b.hasAuthority = base.HasAuthority()
				st = statePathStart
				continue
			}

		case stateSpecialAuthoritySlashes:
			if c == '/' && pointer+1 < len(input) && input[pointer+1] == '/' {
				pointer++
				st = stateSpecialAuthorityIgnoreSlashes
			} else {
				st = stateSpecialAuthorityIgnoreSlashes
				continue
			}

		case stateSpecialAuthorityIgnoreSlashes:
			if c == '/' || c == '\\' {
				pointer++
				continue
			}
			st = stateAuthority
			continue

		case stateAuthority:
			if c == '@' {
				if atSignSeen {
					buffer = append([]byte{'%', '4', '0'}, buffer...)
				}
				atSignSeen = true
				var user, pass []byte
				idx := indexByte(buffer, ':')
				if idx >= 0 {
					user = buffer[:idx]
					pass = buffer[idx+1:]
					passwordTokenSeen = true
				} else {
					user = buffer
				}
				b.username = append(b.username, Encode(user, UserInfo, false)...)
				b.hasUsername = true
				if passwordTokenSeen {
					b.password = append(b.password, Encode(pass, UserInfo, false)...)
					b.hasPassword = true
				}
				buffer = nil
			} else if eof || c == '/' || c == '?' || c == '#' || (b.isSpecial(po) && c == '\\') {
				if atSignSeen && len(buffer) == 0 {
					return nil, &Error{Op: "parse", Input: string(rawInput), Err: &HostError{Kind: EmptyHostNotAllowed}}
				}
				pointer -= len(buffer) + 1
				buffer = nil
				st = stateHost
			} else {
				buffer = append(buffer, c)
			}

		case stateHost, stateHostname:
			if stateOverride && string(b.scheme) == "file" {
				st = stateFileHost
				continue
			}
			if c == ':' && bracketDepth == 0 {
				if len(buffer) == 0 && b.isSpecial(po) {
					return nil, &Error{Op: "parse", Input: string(rawInput), Err: &HostError{Kind: EmptyHostNotAllowed}}
				}
				host, err := ParseHost(buffer, b.isSpecial(po), false)
				if err != nil {
					return nil, &Error{Op: "parse", Input: string(rawInput), Err: err}
				}
				b.host = host
				b.hasAuthority = true
				buffer = nil
				st = statePort
			} else if eof || c == '/' || c == '?' || c == '#' || (b.isSpecial(po) && c == '\\') {
				pointer--
				if b.isSpecial(po) && len(buffer) == 0 {
					return nil, &Error{Op: "parse", Input: string(rawInput), Err: &HostError{Kind: EmptyHostNotAllowed}}
				}
				host, err := ParseHost(buffer, b.isSpecial(po), false)
				if err != nil {
					return nil, &Error{Op: "parse", Input: string(rawInput), Err: err}
				}
				b.host = host
				b.hasAuthority = true
				buffer = nil
				st = statePathStart
			} else {
				if c == '[' {
					bracketDepth++
				} else if c == ']' {
					bracketDepth--
				}
				buffer = append(buffer, c)
			}

		case statePort:
			switch {
			case isDigitByte(c):
				buffer = append(buffer, c)
			case eof || c == '/' || c == '?' || c == '#' || (b.isSpecial(po) && c == '\\') || stateOverride:
				if len(buffer) > 0 {
					n, err := strconv.Atoi(string(buffer))
					if err != nil || n > 65535 {
						return nil, &Error{Op: "parse", Input: string(rawInput), Err: &SetterError{Kind: PortValueOutOfBounds, Value: string(buffer)}}
					}
					if defPort, ok := b.defaultPort(po); !ok || n != defPort {
						port := uint16(n)
						b.port = &port
					}
				}
				buffer = nil
				if stateOverride {
					return b.assemble(po), nil
				}
				st = statePathStart
				continue
			default:
				return nil, &Error{Op: "parse", Input: string(rawInput), Err: &SetterError{Kind: PortValueOutOfBounds, Value: string(buffer)}}
			}

		case stateFile:
			b.scheme = []byte("file")
			b.host = Host{Kind: HostEmpty}
			b.hasAuthority = true
			switch {
			case c == '/' || c == '\\':
				st = stateFileSlash
			case base != nil && string(base.Scheme()) == "file":
				copyFromBaseFile(b, base)
				switch {
				case c == '?':
					b.hasQuery = true
					st = stateQuery
				case c == '#':
					b.hasFragment = true
					st = stateFragment
				case !eof:
					if !startsWithWindowsDriveLetter(SplitPath(input[pointer:], true)) {
						b.pathSegs = shortenPath(b.pathSegs, true)
					}
					st = statePath
					continue
				}
			default:
				st = statePath
				continue
			}

		case stateFileSlash:
			switch {
			case c == '/' || c == '\\':
				st = stateFileHost
			default:
				if base != nil && string(base.Scheme()) == "file" {
					b.host = hostFromURL(base)
					if len(base.Path()) >= 2 {
						firstSeg := SplitPath(base.Path(), true)
						if len(firstSeg) > 0 && isNormalizedWindowsDriveLetterSegment(firstSeg[0]) {
							b.pathSegs = append(b.pathSegs, firstSeg[0])
						}
					}
				}
				st = statePathStart
				continue
			}

		case stateFileHost:
			if eof || c == '/' || c == '\\' || c == '?' || c == '#' {
				pointer--
				if isWindowsDriveLetter(buffer) {
					st = statePathStart
				} else if len(buffer) == 0 {
					b.host = Host{Kind: HostEmpty}
					st = statePathStart
				} else {
					host, err := ParseHost(buffer, true, true)
					if err != nil {
						return nil, &Error{Op: "parse", Input: string(rawInput), Err: err}
					}
					b.host = host
					buffer = nil
					st = statePathStart
				}
			} else {
				buffer = append(buffer, c)
			}

		case statePathStart:
			if b.isSpecial(po) {
				st = statePath
				if c != '/' && c != '\\' {
					continue
				}
			} else if c == '?' {
				b.hasQuery = true
				st = stateQuery
			} else if c == '#' {
				b.hasFragment = true
				st = stateFragment
			} else if !eof {
				st = statePath
				continue
			} else if len(b.pathSegs) == 0 {
				b.pathSegs = PathSegments{}
			}

		case statePath:
			switch {
			case eof, c == '/', b.isSpecial(po) && c == '\\':
				seg := Encode(DecodeNonPercent(buffer), Path, false)
				switch {
				case isDoubleDotPathSegment(seg):
					b.pathSegs = shortenPath(b.pathSegs, b.isFileSchemeBuilder())
					if !(c == '/' || (b.isSpecial(po) && c == '\\')) {
						b.pathSegs = append(b.pathSegs, []byte{})
					}
				case isSingleDotPathSegment(seg):
					if !(c == '/' || (b.isSpecial(po) && c == '\\')) {
						b.pathSegs = append(b.pathSegs, []byte{})
					}
				default:
					if b.isFileSchemeBuilder() && len(b.pathSegs) == 0 && isWindowsDriveLetterSegment(seg) {
						seg = normalizeWindowsDriveLetter(seg)
					}
					b.pathSegs = append(b.pathSegs, seg)
				}
				buffer = nil
			case c == '?':
				seg := Encode(DecodeNonPercent(buffer), Path, false)
				if len(seg) > 0 || len(buffer) > 0 {
					b.pathSegs = append(b.pathSegs, seg)
				}
				buffer = nil
				b.hasQuery = true
				st = stateQuery
			case c == '#':
				seg := Encode(DecodeNonPercent(buffer), Path, false)
				if len(seg) > 0 || len(buffer) > 0 {
					b.pathSegs = append(b.pathSegs, seg)
				}
				buffer = nil
				b.hasFragment = true
				st = stateFragment
			default:
				buffer = append(buffer, c)
			}
			if eof {
				goto done
			}

		case stateOpaquePath:
			switch {
			case c == '?':
				b.opaquePath = append(b.opaquePath, Encode(DecodeNonPercent(buffer), Query, false)...)
				buffer = nil
				b.hasQuery = true
				st = stateQuery
			case c == '#':
				b.opaquePath = append(b.opaquePath, Encode(DecodeNonPercent(buffer), C0Control, false)...)
				buffer = nil
				b.hasFragment = true
				st = stateFragment
			default:
				if eof {
					b.opaquePath = append(b.opaquePath, Encode(DecodeNonPercent(buffer), C0Control, false)...)
					buffer = nil
				} else {
					buffer = append(buffer, c)
				}
			}

		case stateQuery:
			set := Query
			if b.isSpecial(po) {
				set = SpecialQuery
			}
			switch {
			case c == '#':
				b.query = append(b.query, Encode(DecodeNonPercent(buffer), set, false)...)
				buffer = nil
				b.hasFragment = true
				st = stateFragment
			case eof:
				b.query = append(b.query, Encode(DecodeNonPercent(buffer), set, false)...)
				buffer = nil
			default:
				buffer = append(buffer, c)
			}

		case stateFragment:
			if eof {
				b.fragment = append(b.fragment, Encode(DecodeNonPercent(buffer), Fragment, false)...)
				buffer = nil
			} else {
				buffer = append(buffer, c)
			}
		}

		if eof {
			break
		}
		pointer++
	}

done:
	return b.assemble(po), nil
}

func (b *builder) isFileSchemeBuilder() bool { return string(b.scheme) == "file" }

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func indexByte(s []byte, b byte) int {
	for i, c := range s {
		if c == b {
			return i
		}
	}
	return -1
}

func sameScheme(base *URL, scheme []byte) bool {
	return strings.EqualFold(string(base.Scheme()), string(scheme))
}

// DecodeNonPercent leaves already-valid "%XX" triples untouched and
// percent-encodes any lone '%' as "%25", so that re-encoding a raw
// input segment under a Path/Query/Fragment encode set never
// double-decodes existing escapes.
func DecodeNonPercent(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		if src[i] == '%' && (i+2 >= len(src) || !isHexByte(src[i+1]) || !isHexByte(src[i+2])) {
			out = append(out, '%', '2', '5')
			continue
		}
		out = append(out, src[i])
	}
	return out
}

func clonePathSegs(base *URL) PathSegments {
	if base == nil {
		return PathSegments{}
	}
	segs := SplitPath(base.Path(), base.IsSpecial())
	if len(segs) > 0 && len(segs[0]) == 0 {
		segs = segs[1:]
	}
	out := make(PathSegments, len(segs))
	for i, s := range segs {
		out[i] = append([]byte(nil), s...)
	}
	return out
}

func copyFromBase(b *builder, base *URL, pathOnly bool) {
	if base == nil {
		return
	}
	if !pathOnly {
		b.scheme = append([]byte(nil), base.Scheme()...)
		b.hasUsername = base.HasUsername()
		b.username = append([]byte(nil), base.Username()...)
		b.hasPassword = base.HasPassword()
		b.password = append([]byte(nil), base.Password()...)
		b.host = hostFromURL(base)
		if p, ok := base.Port(); ok {
			pp := p
			b.port = &pp
		}
		b.hasAuthority = base.HasAuthority()
	}
	b.pathSegs = clonePathSegs(base)
}

func copyFromBaseFile(b *builder, base *URL) {
	b.scheme = []byte("file")
	b.host = hostFromURL(base)
	b.pathSegs = clonePathSegs(base)
	b.hasAuthority = base.HasAuthority()
}
