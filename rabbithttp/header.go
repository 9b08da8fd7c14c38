// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"net/http"
	"sort"
	"strings"
)

// Field is a single name/value pair as it appears on the wire.
type Field struct {
	Name  string
	Value string
}

// NormalizeKey produces the form in which header names are stored:
// lowercased, with underscores converted to hyphens.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// CanonicalKey produces the wire form of a header name, with each
// hyphen-delimited segment capitalized, e.g. x-my-flag becomes X-My-Flag.
func CanonicalKey(key string) string {
	segments := strings.Split(NormalizeKey(key), "-")
	for i, s := range segments {
		if len(s) > 0 {
			segments[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}

	return strings.Join(segments, "-")
}

// Header is a multi-valued set of HTTP headers that remembers the order in
// which header names were first written.  All keys are stored normalized,
// so lookups are insensitive to case and to underscores versus hyphens.
//
// The Cache-Control header is additionally kept in decoded form.  Any write
// to that header, whether through Set, Add, Del, or the directive methods,
// re-derives the directives.
//
// A Header is not safe for concurrent writers.  Each request or response owns
// its own instance.
type Header struct {
	keys         []string
	entries      map[string][]string
	cacheControl CacheControl
}

// NewHeader creates an empty Header
func NewHeader() *Header {
	return &Header{
		entries: make(map[string][]string),
	}
}

// NewHeaderFromMap creates a Header from a plain map.  Since map iteration
// order is random, the keys are added in sorted order.
func NewHeaderFromMap(src map[string][]string) *Header {
	h := NewHeader()
	h.AddAll(src)
	return h
}

// NewHeaders provides a variadic way of constructing a Header.  The sequence
// of strings is expected to be in key/value pair order.  Duplicate keys are
// appended.  If the number of values is odd, the last value is a header key
// with an empty value.
func NewHeaders(src ...string) *Header {
	h := NewHeader()
	for i, j := 0, 1; i < len(src); i, j = i+2, j+2 {
		if len(src[i]) == 0 {
			continue
		}

		if j < len(src) {
			h.Add(src[i], src[j])
		} else {
			// dangling key!
			h.Add(src[i], "")
		}
	}

	return h
}

// Len returns the count of header names
func (h *Header) Len() int {
	return len(h.keys)
}

// Keys returns the normalized header names in insertion order
func (h *Header) Keys() []string {
	return append([]string(nil), h.keys...)
}

// Has tests if the given header is present
func (h *Header) Has(key string) bool {
	_, ok := h.entries[NormalizeKey(key)]
	return ok
}

// Get returns the first value of a header, or the empty string if the
// header is absent or has no values.
func (h *Header) Get(key string) string {
	return h.GetDefault(key, "")
}

// GetDefault returns the first value of a header, or def if the header is
// absent or has no values.
func (h *Header) GetDefault(key, def string) string {
	if values := h.entries[NormalizeKey(key)]; len(values) > 0 {
		return values[0]
	}

	return def
}

// Values returns a copy of all the values for a header.  If the header is
// absent, this method returns nil.
func (h *Header) Values(key string) []string {
	values, ok := h.entries[NormalizeKey(key)]
	if !ok {
		return nil
	}

	return append([]string{}, values...)
}

// ValuesDefault is like Values, except that an absent header yields a slice
// containing just def.  A header that is present with no values yields an
// empty, non-nil slice.
func (h *Header) ValuesDefault(key, def string) []string {
	if !h.Has(key) {
		return []string{def}
	}

	return h.Values(key)
}

// Set replaces all values of a header
func (h *Header) Set(key string, values ...string) {
	h.write(NormalizeKey(key), append([]string{}, values...))
}

// Add appends values to a header, creating it if necessary
func (h *Header) Add(key string, values ...string) {
	key = NormalizeKey(key)
	h.write(key, append(append([]string{}, h.entries[key]...), values...))
}

// AddAll appends every entry of src.  Keys are processed in sorted order.
func (h *Header) AddAll(src map[string][]string) {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	for _, key := range keys {
		h.Add(key, src[key]...)
	}
}

// Del removes a header.  Nothing happens if the header is absent.
func (h *Header) Del(key string) {
	key = NormalizeKey(key)
	if _, ok := h.entries[key]; !ok {
		return
	}

	delete(h.entries, key)
	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i:i], h.keys[i+1:]...)
			break
		}
	}

	h.changed(key)
}

// write is the single entry point for storing values.  key must be normalized.
func (h *Header) write(key string, values []string) {
	if h.entries == nil {
		h.entries = make(map[string][]string)
	}

	if _, exists := h.entries[key]; !exists {
		h.keys = append(h.keys, key)
	}

	h.entries[key] = values
	h.changed(key)
}

// changed keeps derived state in sync with the raw entries
func (h *Header) changed(key string) {
	if key == HeaderCacheControl {
		h.cacheControl = ParseCacheControl(
			strings.Join(h.entries[HeaderCacheControl], ", "),
		)
	}
}

// Clone returns a deep copy of this Header
func (h *Header) Clone() *Header {
	clone := NewHeader()
	for _, key := range h.keys {
		clone.write(key, append([]string{}, h.entries[key]...))
	}

	return clone
}

// Fields returns the ordered name/value pairs of this Header, one per value,
// with names in their canonical wire form.
func (h *Header) Fields() []Field {
	fields := make([]Field, 0, len(h.keys))
	for _, key := range h.keys {
		name := CanonicalKey(key)
		for _, value := range h.entries[key] {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}

	return fields
}

// String returns the wire form of this Header:  one "Name: value\r\n" line for
// each value, with names in insertion order.
func (h *Header) String() string {
	var o strings.Builder
	for _, f := range h.Fields() {
		o.WriteString(f.Name)
		o.WriteString(": ")
		o.WriteString(f.Value)
		o.WriteString("\r\n")
	}

	return o.String()
}

// AddTo appends this Header's key/values to the given http.Header.
func (h *Header) AddTo(dst http.Header) {
	for _, f := range h.Fields() {
		dst.Add(f.Name, f.Value)
	}
}

// CacheControl returns a copy of the decoded Cache-Control directives
func (h *Header) CacheControl() CacheControl {
	return h.cacheControl.Clone()
}

// CacheControlDirective returns the value of a Cache-Control directive along
// with whether it is present.  Flags are present with an empty value.
func (h *Header) CacheControlDirective(name string) (string, bool) {
	return h.cacheControl.Get(name)
}

// HasCacheControlDirective tests if a Cache-Control directive is present
func (h *Header) HasCacheControlDirective(name string) bool {
	return h.cacheControl.Has(name)
}

// AddCacheControlDirective sets a Cache-Control directive and re-renders
// the Cache-Control header.  An empty value adds a flag.
func (h *Header) AddCacheControlDirective(name, value string) {
	cc := h.cacheControl.Clone()
	cc.Set(name, value)
	h.renderCacheControl(cc)
}

// AddCacheControlFlag sets a presence-only Cache-Control directive
func (h *Header) AddCacheControlFlag(name string) {
	h.AddCacheControlDirective(name, "")
}

// RemoveCacheControlDirective removes a Cache-Control directive and re-renders
// the Cache-Control header.  Removing the last directive removes the header.
func (h *Header) RemoveCacheControlDirective(name string) {
	if !h.cacheControl.Has(name) {
		return
	}

	cc := h.cacheControl.Clone()
	cc.Del(name)
	h.renderCacheControl(cc)
}

func (h *Header) renderCacheControl(cc CacheControl) {
	if cc.Len() == 0 {
		h.Del(HeaderCacheControl)
	} else {
		h.write(HeaderCacheControl, []string{cc.String()})
	}
}
