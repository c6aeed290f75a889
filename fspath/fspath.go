// Package fspath converts between filesystem paths and file: URLs, the
// supplemented feature named in spec.md's file-URL section. Path-segment
// percent-encoding/decoding is not reimplemented here: it reuses
// codec.go's exported Encode/Decode against the Path encode set, the
// same set parser.go's statePath applies to file: URL path segments, so
// a path produced by this package and one produced by parsing a literal
// file: URL string are byte-identical. Every produced URL string is also
// built and validated through weburl.Parse/URL.String rather than
// hand-assembled, so fspath never drifts out of sync with the engine's
// own serialization (idempotence, spec.md §3 invariant 5). UNC/"\\?\"
// long-path handling follows spec.md §6 directly, since no example repo
// in the pack models Windows path forms (see DESIGN.md).
package fspath

import (
	"errors"
	"strings"

	"github.com/ernestasp/weburl"
)

var (
	// ErrRelativePath is returned when a path conversion requires an
	// absolute path and one was not supplied.
	ErrRelativePath = errors.New("fspath: path must be absolute")
	// ErrNonASCIIHost is returned for a UNC host containing non-ASCII
	// bytes; spec.md's open question on Win32-namespaced UNC hosts with
	// Unicode is resolved by rejecting rather than invoking IDNA here
	// (see DESIGN.md "Open Question decisions").
	ErrNonASCIIHost = errors.New("fspath: non-ASCII UNC host")
)

func encodeSegment(s string) string {
	return string(weburl.Encode([]byte(s), weburl.Path, false))
}

func decodeSegment(s string) string {
	return string(weburl.Decode([]byte(s)))
}

func isDriveLetter(s string) bool {
	return len(s) == 2 && ((s[0] >= 'a' && s[0] <= 'z') || (s[0] >= 'A' && s[0] <= 'Z')) && s[1] == ':'
}

// parseAndSerialize round-trips raw (a hand-assembled file: URL string)
// through the real engine, so the returned string reflects weburl's own
// serialization rules rather than this package's assembly logic.
func parseAndSerialize(raw string) (string, error) {
	u, err := weburl.Parse(raw)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// FromPOSIX converts an absolute POSIX path ("/a/b c") to a file: URL
// string ("file:///a/b%20c").
func FromPOSIX(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", ErrRelativePath
	}
	var b strings.Builder
	b.WriteString("file://")
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(encodeSegment(p))
	}
	if b.Len() == len("file://") {
		b.WriteByte('/')
	}
	return parseAndSerialize(b.String())
}

// ToPOSIX converts a file: URL path ("/a/b%20c") back to a POSIX path.
func ToPOSIX(urlPath string) (string, error) {
	if !strings.HasPrefix(urlPath, "/") {
		return "", ErrRelativePath
	}
	parts := strings.Split(urlPath, "/")
	for i, p := range parts {
		parts[i] = decodeSegment(p)
	}
	return strings.Join(parts, "/"), nil
}

// FromWindows converts an absolute Windows path to a file: URL. UNC
// paths ("\\server\share\...") map to a URL with a non-empty host; a
// "\\?\" long-path prefix is stripped before conversion, matching how
// Windows itself treats it as an escape from MAX_PATH rather than part
// of the logical path; drive-letter paths ("C:\Users\...") map to
// "file:///C:/Users/...".
func FromWindows(path string) (string, error) {
	path = strings.TrimPrefix(path, `\\?\`)
	path = strings.ReplaceAll(path, `\`, "/")

	if strings.HasPrefix(path, "//") {
		rest := strings.TrimPrefix(path, "//")
		segs := strings.SplitN(rest, "/", 2)
		host := segs[0]
		for i := 0; i < len(host); i++ {
			if host[i] > 0x7F {
				return "", ErrNonASCIIHost
			}
		}
		var b strings.Builder
		b.WriteString("file://")
		b.WriteString(host)
		if len(segs) > 1 && segs[1] != "" {
			for _, p := range strings.Split(segs[1], "/") {
				b.WriteByte('/')
				b.WriteString(encodeSegment(p))
			}
		}
		return parseAndSerialize(b.String())
	}

	parts := strings.Split(path, "/")
	if len(parts) == 0 || !isDriveLetter(parts[0]) {
		return "", ErrRelativePath
	}
	var b strings.Builder
	b.WriteString("file:///")
	b.WriteString(strings.ToUpper(parts[0][:1]))
	b.WriteByte(':')
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(encodeSegment(p))
	}
	return parseAndSerialize(b.String())
}

// ToWindows converts a file: URL host+path back to a Windows path: a
// non-empty host produces a UNC path, a drive-letter first segment
// produces "C:\...".
func ToWindows(host, urlPath string) (string, error) {
	urlPath = strings.TrimPrefix(urlPath, "/")
	parts := strings.Split(urlPath, "/")
	for i, p := range parts {
		parts[i] = decodeSegment(p)
	}
	if host != "" {
		return `\\` + host + `\` + strings.Join(parts, `\`), nil
	}
	if len(parts) == 0 || !isDriveLetter(strings.Replace(parts[0], "|", ":", 1)) {
		return "", ErrRelativePath
	}
	parts[0] = strings.Replace(parts[0], "|", ":", 1)
	return strings.Join(parts, `\`), nil
}
