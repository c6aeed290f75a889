package weburl

// Read accessors mirroring the familiar URL/Location surface (Hostname,
// Pathname, Search, Hash, Href), layered over the typed component
// storage in structure.go. Supplemented beyond spec.md's core component
// API since every example parser in the pack exposes a string-returning
// convenience surface alongside its structured one.

// Hostname returns the serialized host as a string ("" for an empty or
// absent host).
func (u *URL) Hostname() string { return string(u.HostBytes()) }

// Pathname returns the raw path string.
func (u *URL) Pathname() string { return string(u.Path()) }

// Search returns the query string including its leading '?', or "" if
// no query is present.
func (u *URL) Search() string {
	q, ok := u.Query()
	if !ok {
		return ""
	}
	return "?" + string(q)
}

// Hash returns the fragment string including its leading '#', or "" if
// no fragment is present.
func (u *URL) Hash() string {
	f, ok := u.Fragment()
	if !ok {
		return ""
	}
	return "#" + string(f)
}

// Href returns the full serialized URL string, equivalent to String().
func (u *URL) Href() string { return u.String() }

// Host returns "hostname[:port]".
func (u *URL) Host() string {
	h := u.Hostname()
	if port, ok := u.Port(); ok {
		return h + ":" + itoa(int(port))
	}
	return h
}

// Origin returns "scheme://host[:port]" for special non-file schemes,
// mirroring the WHATWG notion of a tuple origin; file: and opaque-path
// URLs have no meaningful tuple origin and return "".
func (u *URL) Origin() string {
	if !u.IsSpecial() || u.IsFile() || u.CannotBeABase() {
		return ""
	}
	return string(u.Scheme()) + "://" + u.Host()
}
