// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// HeaderCacheControl is the normalized key of the Cache-Control header.
const HeaderCacheControl = "cache-control"

var (
	// directivePattern matches a single, already split Cache-Control token:
	//
	//   cache-directive = token [ "=" ( token / quoted-string ) ]
	directivePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)\s*(?:=\s*(?:"([^"]*)"|([^\s",]*)))?$`)

	// unquotedValue is the set of argument values that can be emitted without quotes
	unquotedValue = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// CacheControl is an ordered set of Cache-Control directives.  A directive
// with an empty value is a presence-only flag, e.g. no-cache.
//
// The zero value is an empty, usable CacheControl.
type CacheControl struct {
	names  []string
	values map[string]string
}

// ParseCacheControl decodes a Cache-Control header value.  Directive names are
// compared case-insensitively and stored lowercased.  Tokens that carry no
// recognizable directive name are skipped.  When a directive appears more than once,
// it keeps its first position and the last value.
func ParseCacheControl(header string) (cc CacheControl) {
	for _, token := range splitDirectives(header) {
		m := directivePattern.FindStringSubmatch(strings.TrimSpace(token))
		if m == nil {
			continue
		}

		value := m[3]
		if len(m[2]) > 0 {
			value = m[2]
		}

		cc.Set(m[1], value)
	}

	return
}

// splitDirectives splits a header on commas that are not inside a quoted-string.
// A quote that is never closed does not protect the commas after it, so
// everything following an unterminated quote splits on every comma.
func splitDirectives(header string) (tokens []string) {
	var (
		quoted bool
		start  int
	)

	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '"':
			quoted = !quoted

		case ',':
			if !quoted {
				tokens = append(tokens, header[start:i])
				start = i + 1
			}
		}
	}

	if quoted {
		return append(tokens, strings.Split(header[start:], ",")...)
	}

	return append(tokens, header[start:])
}

// Len returns the number of directives
func (cc CacheControl) Len() int {
	return len(cc.names)
}

// Names returns the directive names in the order they were first set
func (cc CacheControl) Names() []string {
	return append([]string(nil), cc.names...)
}

// Get returns the value of a directive along with whether it is present.
// Flags are present with an empty value.
func (cc CacheControl) Get(name string) (string, bool) {
	v, ok := cc.values[strings.ToLower(name)]
	return v, ok
}

// Has tests if the given directive is present
func (cc CacheControl) Has(name string) bool {
	_, ok := cc.Get(name)
	return ok
}

// IsFlag tests if the directive is present and carries no value
func (cc CacheControl) IsFlag(name string) bool {
	v, ok := cc.Get(name)
	return ok && len(v) == 0
}

// MaxAge returns max-age as a duration, along with whether
// a well-formed max-age directive was present.
func (cc CacheControl) MaxAge() (time.Duration, bool) {
	v, ok := cc.Get("max-age")
	if !ok {
		return 0, false
	}

	seconds, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}

	return time.Duration(seconds) * time.Second, true
}

// Set adds or replaces a directive.  An empty value makes the directive a flag.
func (cc *CacheControl) Set(name, value string) {
	name = strings.ToLower(name)
	if cc.values == nil {
		cc.values = make(map[string]string)
	}

	if _, exists := cc.values[name]; !exists {
		cc.names = append(cc.names, name)
	}

	cc.values[name] = value
}

// SetFlag adds a presence-only directive
func (cc *CacheControl) SetFlag(name string) {
	cc.Set(name, "")
}

// Del removes a directive.  Nothing happens if the directive is absent.
func (cc *CacheControl) Del(name string) {
	name = strings.ToLower(name)
	if _, exists := cc.values[name]; !exists {
		return
	}

	delete(cc.values, name)
	for i, n := range cc.names {
		if n == name {
			cc.names = append(cc.names[:i:i], cc.names[i+1:]...)
			break
		}
	}
}

// Clone returns a distinct copy of this CacheControl
func (cc CacheControl) Clone() (clone CacheControl) {
	for _, name := range cc.names {
		clone.Set(name, cc.values[name])
	}

	return
}

// String encodes the directives in insertion order, joined by ", ".
// Values containing anything other than letters, digits, '.', '_', or '-'
// are quoted.
func (cc CacheControl) String() string {
	var o strings.Builder
	for i, name := range cc.names {
		if i > 0 {
			o.WriteString(", ")
		}

		o.WriteString(name)
		value := cc.values[name]
		switch {
		case len(value) == 0:
			// flag

		case unquotedValue.MatchString(value):
			o.WriteByte('=')
			o.WriteString(value)

		default:
			o.WriteString(`="`)
			o.WriteString(value)
			o.WriteByte('"')
		}
	}

	return o.String()
}
