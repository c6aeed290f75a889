package weburl

import "strconv"

// Setters implement spec.md §4.6: typed, validating component mutators
// that either fully apply or leave u unchanged (atomicity), grounded on
// bytesurl.go's User/UserPassword/ResolveReference mutator shape,
// generalized to the spec's closed SetterErrorKind enum (see DESIGN.md).

// SetScheme changes u's scheme. The new scheme must parse as a valid
// scheme and must not cross the special/non-special boundary; file:
// additionally forbids credentials/port, and switching away from file:
// into a scheme requiring a non-empty host is rejected when the host is
// empty or absent.
func (u *URL) SetScheme(scheme string, po ...ParseOption) error {
	opts := newParseOptions(po)
	lower := make([]byte, len(scheme))
	for i := 0; i < len(scheme); i++ {
		c := scheme[i]
		if i == 0 {
			if !isAlphaByte(c) {
				return &SetterError{Kind: InvalidScheme, Value: scheme}
			}
		} else if !testClass(schemeTrailing, c) {
			return &SetterError{Kind: InvalidScheme, Value: scheme}
		}
		lower[i] = toLowerByte(c)
	}
	if len(lower) == 0 {
		return &SetterError{Kind: InvalidScheme, Value: scheme}
	}
	_, newSpecial := opts.isSpecialScheme(string(lower))
	if newSpecial != u.IsSpecial() {
		return &SetterError{Kind: ChangeOfSchemeSpecialness, Value: scheme}
	}
	if string(lower) == "file" && (u.HasUsername() || u.HasPassword() || func() bool { _, ok := u.Port(); return ok }()) {
		return &SetterError{Kind: NewSchemeCannotHaveCredentialsOrPort, Value: scheme}
	}
	if u.IsFile() && string(lower) != "file" && (u.hostKind == HostEmpty || u.hostKind == HostAbsent) {
		return &SetterError{Kind: NewSchemeCannotHaveEmptyHostname, Value: scheme}
	}
	u.replaceComponent(compScheme, lower)
	return nil
}

// SetUsername replaces the username, percent-encoding it under the
// UserInfo set. Fails if u has no host (credentials require an
// authority) or the host is empty.
func (u *URL) SetUsername(username string) error {
	if !u.HasAuthority() || u.hostKind == HostEmpty {
		return &SetterError{Kind: CannotHaveCredentialsOrPort, Value: username}
	}
	encoded := Encode([]byte(username), UserInfo, false)
	u.replaceComponent(compUsername, encoded)
	u.flags = u.flags.set(flagHasUsername, len(encoded) > 0 || username != "")
	return nil
}

// SetPassword replaces the password, percent-encoding it under the
// UserInfo set.
func (u *URL) SetPassword(password string) error {
	if !u.HasAuthority() || u.hostKind == HostEmpty {
		return &SetterError{Kind: CannotHaveCredentialsOrPort, Value: password}
	}
	encoded := Encode([]byte(password), UserInfo, false)
	u.replaceComponent(compPassword, encoded)
	u.flags = u.flags.set(flagHasPassword, len(encoded) > 0 || password != "")
	return nil
}

// SetHostname parses and replaces the host. An empty hostname is only
// accepted for non-special schemes and for file:: special schemes other
// than file: reject it outright, and any scheme rejects it while
// credentials or a port are present. u must not have an opaque path.
func (u *URL) SetHostname(hostname string) error {
	if u.CannotBeABase() {
		return &SetterError{Kind: CannotSetHostWithOpaquePath, Value: hostname}
	}
	host, err := ParseHost([]byte(hostname), u.IsSpecial(), u.IsFile())
	if err != nil {
		return &SetterError{Kind: InvalidHostname, Value: hostname}
	}
	if host.Kind == HostEmpty {
		if u.IsSpecial() && !u.IsFile() {
			return &SetterError{Kind: SchemeDoesNotSupportNilOrEmptyHostnames, Value: hostname}
		}
		_, hasPort := u.Port()
		if hasPort || u.HasUsername() || u.HasPassword() {
			return &SetterError{Kind: CannotSetEmptyHostnameWithCredentialsOrPort, Value: hostname}
		}
	}
	u.replaceComponent(compHost, host.Serialize())
	u.hostKind = host.Kind
	u.flags = u.flags.set(flagHasAuthority, true)
	return nil
}

// SetPort replaces the port. Passing ok=false removes the port. Fails
// if u has no host, if the host is empty, if the scheme is file: (which
// never carries a port), or if port is out of the 0..65535 range.
func (u *URL) SetPort(port int, ok bool) error {
	if !u.HasAuthority() || u.hostKind == HostEmpty {
		return &SetterError{Kind: CannotHaveCredentialsOrPort, Value: strconv.Itoa(port)}
	}
	if u.IsFile() {
		return &SetterError{Kind: CannotHaveCredentialsOrPort, Value: strconv.Itoa(port)}
	}
	if !ok {
		u.flags = u.flags.set(flagHasPort, false)
		u.port = 0
		return nil
	}
	if port < 0 || port > 65535 {
		return &SetterError{Kind: PortValueOutOfBounds, Value: strconv.Itoa(port)}
	}
	u.flags = u.flags.set(flagHasPort, true)
	u.port = uint16(port)
	return nil
}

// SetPath replaces the entire path. A cannot-be-a-base URL (opaque
// path) is rejected with CannotModifyOpaquePath; otherwise newPath is
// split, dot-segment normalized, and Windows-drive normalized exactly
// like the parser's path states.
func (u *URL) SetPath(newPath string) error {
	if u.CannotBeABase() {
		return &SetterError{Kind: CannotModifyOpaquePath, Value: newPath}
	}
	segs := SplitPath([]byte(newPath), u.IsSpecial())
	for i, s := range segs {
		segs[i] = Encode(DecodeNonPercent(s), Path, false)
	}
	segs = NormalizePathSegments(segs, u.IsFile())
	rendered := SerializePath(segs, u.HasAuthority(), false)
	u.replaceComponent(compPath, rendered)
	return nil
}

// SetQuery replaces the query. Passing ok=false removes the query
// entirely (distinct from setting it to the empty string).
func (u *URL) SetQuery(query string, ok bool) error {
	if !ok {
		u.replaceComponent(compQuery, nil)
		u.flags = u.flags.set(flagHasQuery, false)
		return nil
	}
	set := Query
	if u.IsSpecial() {
		set = SpecialQuery
	}
	encoded := Encode(DecodeNonPercent([]byte(query)), set, false)
	u.replaceComponent(compQuery, encoded)
	u.flags = u.flags.set(flagHasQuery, true)
	return nil
}

// SetFragment replaces the fragment. Passing ok=false removes it.
func (u *URL) SetFragment(fragment string, ok bool) error {
	if !ok {
		u.replaceComponent(compFragment, nil)
		u.flags = u.flags.set(flagHasFragment, false)
		return nil
	}
	encoded := Encode(DecodeNonPercent([]byte(fragment)), Fragment, false)
	u.replaceComponent(compFragment, encoded)
	u.flags = u.flags.set(flagHasFragment, true)
	return nil
}
