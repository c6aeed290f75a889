// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weburl

import "strconv"

// Error reports an operation, the input that caused it, and the
// underlying cause. It is returned by Parse on fatal failures (spec.md
// §4.5, §7 — "Fatal conditions").
type Error struct {
	Op    string
	Input string
	Err   error
}

func (e *Error) Error() string { return e.Op + " " + strconv.Quote(e.Input) + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// EscapeError describes a '%' that is not followed by two hex digits.
// The decoders in codec.go never return it: they pass such a '%'
// through unchanged.
type EscapeError string

func (e EscapeError) Error() string {
	return "invalid URL escape " + strconv.Quote(string(e))
}

// HostErrorKind enumerates the closed set of host-parsing failures named
// in spec.md §4.2 / §6.
type HostErrorKind int

const (
	_ HostErrorKind = iota
	UnexpectedLeadingColon
	UnexpectedTrailingColon
	UnexpectedCharacter
	MultipleCompressedPieces
	TooManyPieces
	NotEnoughPieces
	InvalidIPv4Address
	UnexpectedPeriod
	ForbiddenHostCodePoint
	EmptyHostNotAllowed
	WindowsDriveLetterHost
)

var hostErrorText = map[HostErrorKind]string{
	UnexpectedLeadingColon:   "unexpected leading colon in IPv6 address",
	UnexpectedTrailingColon:  "unexpected trailing colon in IPv6 address",
	UnexpectedCharacter:      "unexpected character in host",
	MultipleCompressedPieces: "multiple :: compressions in IPv6 address",
	TooManyPieces:            "too many pieces in IPv6 address",
	NotEnoughPieces:          "not enough pieces in IPv6 address",
	InvalidIPv4Address:       "invalid IPv4 address",
	UnexpectedPeriod:         "unexpected period in host",
	ForbiddenHostCodePoint:   "forbidden host code point",
	EmptyHostNotAllowed:      "empty host not allowed for this scheme",
	WindowsDriveLetterHost:   "windows drive letter used as hostname",
}

// HostError is returned by host parsing on failure.
type HostError struct {
	Kind  HostErrorKind
	Input string
}

func (e *HostError) Error() string {
	msg, ok := hostErrorText[e.Kind]
	if !ok {
		msg = "invalid host"
	}
	return msg + ": " + strconv.Quote(e.Input)
}

// SetterErrorKind enumerates the closed set of component-setter failures
// named in spec.md §4.6.
type SetterErrorKind int

const (
	_ SetterErrorKind = iota
	InvalidScheme
	ChangeOfSchemeSpecialness
	NewSchemeCannotHaveCredentialsOrPort
	NewSchemeCannotHaveEmptyHostname
	CannotHaveCredentialsOrPort
	InvalidHostname
	CannotSetHostWithOpaquePath
	SchemeDoesNotSupportNilOrEmptyHostnames
	CannotSetEmptyHostnameWithCredentialsOrPort
	CannotRemoveHostnameWithoutPath
	PortValueOutOfBounds
	CannotModifyOpaquePath
)

var setterErrorText = map[SetterErrorKind]string{
	InvalidScheme:                                "invalid scheme",
	ChangeOfSchemeSpecialness:                     "cannot change between special and non-special scheme",
	NewSchemeCannotHaveCredentialsOrPort:          "new scheme cannot be file: while url has credentials or port",
	NewSchemeCannotHaveEmptyHostname:              "new scheme requires a host but host is empty or absent",
	CannotHaveCredentialsOrPort:                   "url cannot have credentials or port without a host",
	InvalidHostname:                               "invalid hostname",
	CannotSetHostWithOpaquePath:                   "cannot set host on a url with an opaque path",
	SchemeDoesNotSupportNilOrEmptyHostnames:       "scheme does not support nil or empty hostnames",
	CannotSetEmptyHostnameWithCredentialsOrPort:   "cannot set empty hostname while url has credentials or port",
	CannotRemoveHostnameWithoutPath:                "cannot remove hostname unless url has a path",
	PortValueOutOfBounds:                          "port value out of bounds",
	CannotModifyOpaquePath:                        "cannot modify an opaque path",
}

// SetterError is returned by the typed component setters (setters.go) on
// failure. The URL is left unchanged (spec.md §4.6, §7 "Setter atomicity").
type SetterError struct {
	Kind  SetterErrorKind
	Value string
}

func (e *SetterError) Error() string {
	msg, ok := setterErrorText[e.Kind]
	if !ok {
		msg = "setter error"
	}
	if e.Value == "" {
		return msg
	}
	return msg + ": " + strconv.Quote(e.Value)
}
