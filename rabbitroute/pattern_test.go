// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbitroute

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	testData := []struct {
		value    string
		expected path
	}{
		{"", path{}},
		{"/", path{}},
		{"/user", path{segments: []string{"user"}}},
		{"user", path{segments: []string{"user"}}},
		{"/user/", path{segments: []string{"user"}, trailingSlash: true}},
		{"/user/42/post", path{segments: []string{"user", "42", "post"}}},
		{"/a//b", path{segments: []string{"a", "", "b"}}},
	}

	for i, record := range testData {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			assert.Equal(t, record.expected, splitPath(record.value))
		})
	}
}

func TestParsePattern(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)
		)

		p, tokens, err := parsePattern("/user/{id}/post/{slug}")
		require.NoError(err)
		assert.Equal([]string{"user", "{id}", "post", "{slug}"}, p.segments)
		assert.Equal([]string{"id", "slug"}, tokens)
	})

	t.Run("Literal", func(t *testing.T) {
		_, tokens, err := parsePattern("/static/logo")
		assert.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("PartialBraces", func(t *testing.T) {
		_, tokens, err := parsePattern("/file/{name}.png")
		assert.NoError(t, err)
		assert.Empty(t, tokens, "only whole segments are tokens")
	})

	testData := []struct {
		pattern string
		check   func(*testing.T, error)
	}{
		{
			pattern: "",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyPattern)
			},
		},
		{
			pattern: "   ",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyPattern)
			},
		},
		{
			pattern: "/user/{id}/friend/{id}",
			check: func(t *testing.T, err error) {
				var dte *DuplicateTokenError
				require.True(t, errors.As(err, &dte))
				assert.Equal(t, "id", dte.Name)
				assert.Contains(t, dte.Error(), "/user/{id}/friend/{id}")
			},
		},
		{
			pattern: "/user/{}",
			check: func(t *testing.T, err error) {
				var ite *InvalidTokenError
				require.True(t, errors.As(err, &ite))
				assert.Equal(t, "{}", ite.Segment)
			},
		},
		{
			pattern: "/user/{1st}",
			check: func(t *testing.T, err error) {
				var ite *InvalidTokenError
				assert.True(t, errors.As(err, &ite))
			},
		},
	}

	for i, record := range testData {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, _, err := parsePattern(record.pattern)
			require.Error(t, err)
			record.check(t, err)
		})
	}
}

func testMatcher(t *testing.T, pattern string, strict bool, exprs map[string]Expr) *matcher {
	p, _, err := parsePattern(pattern)
	require.NoError(t, err)
	return newMatcher(p, strict, exprs, defaultExpr)
}

func TestMatcher(t *testing.T) {
	testData := []struct {
		pattern  string
		strict   bool
		exprs    map[string]Expr
		path     string
		expected Params
		matched  bool
	}{
		{
			pattern:  "/user/{id}/post/{slug}",
			path:     "/user/42/post/hello-world",
			expected: Params{"id": "42", "slug": "hello-world"},
			matched:  true,
		},
		{
			pattern: "/user/{id}/post/{slug}",
			path:    "/user/42/post/",
		},
		{
			pattern: "/user/{id}/post/{slug}",
			strict:  true,
			path:    "/user/42/post/",
		},
		{
			pattern:  "/user/{id}/post/{slug}",
			path:     "/user/42/post/hello-world/",
			expected: Params{"id": "42", "slug": "hello-world"},
			matched:  true,
		},
		{
			pattern: "/user/{id}/post/{slug}",
			strict:  true,
			path:    "/user/42/post/hello-world/",
		},
		{
			pattern:  "/docs/",
			strict:   true,
			path:     "/docs/",
			expected: Params{},
			matched:  true,
		},
		{
			pattern: "/docs/",
			strict:  true,
			path:    "/docs",
		},
		{
			pattern:  "/docs/",
			path:     "/docs",
			expected: Params{},
			matched:  true,
		},
		{
			pattern:  "/",
			path:     "/",
			expected: Params{},
			matched:  true,
		},
		{
			pattern:  "/",
			path:     "",
			expected: Params{},
			matched:  true,
		},
		{
			pattern: "/",
			path:    "/index",
		},
		{
			pattern:  "/user/{name}",
			path:     "/user/%E4%B8%AD%E6%96%87",
			expected: Params{"name": "中文"},
			matched:  true,
		},
		{
			pattern:  "/user/{name}",
			path:     "/user/中文",
			expected: Params{"name": "中文"},
			matched:  true,
		},
		{
			pattern: "/user/{name}",
			path:    "/user/a%20b",
		},
		{
			pattern:  "/user/{id}",
			exprs:    map[string]Expr{"id": MustExpr(`[0-9]+`)},
			path:     "/user/123",
			expected: Params{"id": "123"},
			matched:  true,
		},
		{
			pattern: "/user/{id}",
			exprs:   map[string]Expr{"id": MustExpr(`[0-9]+`)},
			path:    "/user/abc",
		},
		{
			pattern: "/user/{id}",
			path:    "/account/42",
		},
		{
			pattern: "/user/{id}",
			path:    "/user//",
		},
		{
			pattern:  "/files/a b",
			path:     "/files/a%20b",
			expected: Params{},
			matched:  true,
		},
	}

	for i, record := range testData {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			var (
				assert = assert.New(t)
				m      = testMatcher(t, record.pattern, record.strict, record.exprs)
			)

			params, matched := m.match(record.path)
			assert.Equal(record.matched, matched)
			assert.Equal(record.expected, params)
		})
	}
}
