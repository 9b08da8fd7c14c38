// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbitroute

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrEmptyPattern is returned when a route is registered with a blank pattern
	ErrEmptyPattern = errors.New("the route pattern cannot be empty")
)

// DuplicateTokenError is returned when a pattern captures the same name twice
type DuplicateTokenError struct {
	Pattern string
	Name    string
}

func (dte *DuplicateTokenError) Error() string {
	return fmt.Sprintf("pattern [%s] declares token [%s] more than once", dte.Pattern, dte.Name)
}

// InvalidTokenError is returned when a {...} segment does not hold a valid name
type InvalidTokenError struct {
	Pattern string
	Segment string
}

func (ite *InvalidTokenError) Error() string {
	return fmt.Sprintf("pattern [%s] has an invalid token segment [%s]", ite.Pattern, ite.Segment)
}

// UnknownTokenError is returned when an expression is supplied for a name
// that the pattern never captures
type UnknownTokenError struct {
	Pattern string
	Name    string
}

func (ute *UnknownTokenError) Error() string {
	return fmt.Sprintf("pattern [%s] has no token named [%s]", ute.Pattern, ute.Name)
}

// segment is one '/'-delimited piece of a pattern.  A segment with a non-empty
// token is a capture point, otherwise literal must match exactly.
type segment struct {
	literal string
	token   string
	expr    Expr
}

// path is a pattern or request path split into segments
type path struct {
	segments      []string
	trailingSlash bool
}

// splitPath breaks a path on '/'.  The root path, whether written as "" or "/",
// has no segments and no trailing slash.
func splitPath(v string) (p path) {
	v = strings.TrimPrefix(v, "/")
	if len(v) == 0 {
		return
	}

	if strings.HasSuffix(v, "/") {
		p.trailingSlash = true
		v = v[:len(v)-1]
	}

	p.segments = strings.Split(v, "/")
	return
}

// parsePattern validates a pattern and returns its segments along with the
// ordered capture names.  Expressions are not resolved here.
func parsePattern(pattern string) (p path, tokens []string, err error) {
	if len(strings.TrimSpace(pattern)) == 0 {
		err = ErrEmptyPattern
		return
	}

	p = splitPath(pattern)
	seen := make(map[string]bool, len(p.segments))
	for _, s := range p.segments {
		name, isToken := tokenOf(s)
		switch {
		case !isToken:
			continue

		case !tokenName.MatchString(name):
			err = &InvalidTokenError{Pattern: pattern, Segment: s}
			return

		case seen[name]:
			err = &DuplicateTokenError{Pattern: pattern, Name: name}
			return
		}

		seen[name] = true
		tokens = append(tokens, name)
	}

	return
}

// tokenOf determines if a segment is an entire {name} placeholder
func tokenOf(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1], true
	}

	return "", false
}

// matcher is the compiled form of a route pattern.  It is immutable once built.
type matcher struct {
	segments      []segment
	trailingSlash bool
	strict        bool
}

// newMatcher resolves each capture point of a parsed pattern to its expression
func newMatcher(p path, strict bool, exprs map[string]Expr, def Expr) *matcher {
	m := &matcher{
		segments:      make([]segment, len(p.segments)),
		trailingSlash: p.trailingSlash,
		strict:        strict,
	}

	for i, s := range p.segments {
		if name, isToken := tokenOf(s); isToken {
			expr, ok := exprs[name]
			if !ok {
				expr = def
			}

			m.segments[i] = segment{token: name, expr: expr}
		} else {
			m.segments[i] = segment{literal: s}
		}
	}

	return m
}

// match tests a request path.  When the path is accepted, the captured values
// are returned keyed by token name.
func (m *matcher) match(requestPath string) (Params, bool) {
	p := splitPath(requestPath)
	if m.strict && p.trailingSlash != m.trailingSlash {
		return nil, false
	}

	if len(p.segments) != len(m.segments) {
		return nil, false
	}

	var params Params
	for i, raw := range p.segments {
		value, err := url.PathUnescape(raw)
		if err != nil {
			value = raw
		}

		s := m.segments[i]
		if len(s.token) == 0 {
			if s.literal != raw && s.literal != value {
				return nil, false
			}

			continue
		}

		if !s.expr.MatchString(value) {
			return nil, false
		}

		if params == nil {
			params = make(Params, len(m.segments))
		}

		params[s.token] = value
	}

	if params == nil {
		params = Params{}
	}

	return params, true
}
