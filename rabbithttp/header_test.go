// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestNormalizeKey(t *testing.T) {
	testData := []struct {
		key        string
		normalized string
		canonical  string
	}{
		{"Content-Type", "content-type", "Content-Type"},
		{"CONTENT_TYPE", "content-type", "Content-Type"},
		{"x-my-flag", "x-my-flag", "X-My-Flag"},
		{"etag", "etag", "Etag"},
		{"", "", ""},
	}

	for i, record := range testData {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(record.normalized, NormalizeKey(record.key))
			assert.Equal(record.canonical, CanonicalKey(record.key))
		})
	}
}

type HeaderSuite struct {
	suite.Suite
	header *Header
}

func (suite *HeaderSuite) SetupTest() {
	suite.header = NewHeader()
}

func (suite *HeaderSuite) TestSetAndAdd() {
	suite.header.Set("X", "a")
	suite.header.Add("X", "b")

	suite.Equal([]string{"a", "b"}, suite.header.Values("X"))
	suite.Equal("a", suite.header.Get("x"))

	suite.header.Set("x", "c")
	suite.Equal([]string{"c"}, suite.header.Values("X"))
	suite.Equal(1, suite.header.Len())
}

func (suite *HeaderSuite) TestAbsent() {
	suite.False(suite.header.Has("nosuch"))
	suite.Empty(suite.header.Get("nosuch"))
	suite.Equal("default", suite.header.GetDefault("nosuch", "default"))
	suite.Nil(suite.header.Values("nosuch"))
	suite.Equal([]string{"default"}, suite.header.ValuesDefault("nosuch", "default"))
}

func (suite *HeaderSuite) TestPresentWithoutValues() {
	suite.header.Set("X-Empty")
	suite.True(suite.header.Has("x-empty"))
	suite.Equal("default", suite.header.GetDefault("x-empty", "default"))
	suite.Equal([]string{}, suite.header.Values("x-empty"))
	suite.Equal([]string{}, suite.header.ValuesDefault("x-empty", "default"))
}

func (suite *HeaderSuite) TestValuesAreCopies() {
	suite.header.Set("X", "a")
	values := suite.header.Values("X")
	values[0] = "changed"
	suite.Equal("a", suite.header.Get("X"))
}

func (suite *HeaderSuite) TestInsensitiveKeys() {
	suite.header.Set("Content_Type", "text/plain")
	suite.True(suite.header.Has("content-type"))
	suite.True(suite.header.Has("CONTENT-TYPE"))
	suite.Equal([]string{"content-type"}, suite.header.Keys())
}

func (suite *HeaderSuite) TestDel() {
	suite.header.Set("A", "1")
	suite.header.Set("B", "2")
	suite.header.Set("C", "3")
	suite.header.Del("b")
	suite.header.Del("nosuch")

	suite.Equal([]string{"a", "c"}, suite.header.Keys())
	suite.False(suite.header.Has("B"))

	suite.header.Set("B", "4")
	suite.Equal([]string{"a", "c", "b"}, suite.header.Keys())
}

func (suite *HeaderSuite) TestString() {
	suite.header.Set("content-type", "text/html")
	suite.header.Set("x-my-flag", "1", "2")

	suite.Equal(
		"Content-Type: text/html\r\nX-My-Flag: 1\r\nX-My-Flag: 2\r\n",
		suite.header.String(),
	)

	suite.Equal(
		[]Field{
			{Name: "Content-Type", Value: "text/html"},
			{Name: "X-My-Flag", Value: "1"},
			{Name: "X-My-Flag", Value: "2"},
		},
		suite.header.Fields(),
	)
}

func (suite *HeaderSuite) TestCompositeValueIsOneLine() {
	suite.header.Set("Accept", "text/html, application/json")
	suite.Equal("Accept: text/html, application/json\r\n", suite.header.String())
}

func (suite *HeaderSuite) TestAddTo() {
	suite.header.Set("content-type", "text/html")
	suite.header.Add("x-my-flag", "1", "2")

	actual := make(http.Header)
	suite.header.AddTo(actual)
	suite.Equal(
		http.Header{
			"Content-Type": {"text/html"},
			"X-My-Flag":    {"1", "2"},
		},
		actual,
	)
}

func (suite *HeaderSuite) TestClone() {
	suite.header.Set("Cache-Control", "no-cache")
	suite.header.Set("X", "1")

	clone := suite.header.Clone()
	clone.Add("X", "2")
	clone.RemoveCacheControlDirective("no-cache")

	suite.Equal([]string{"1"}, suite.header.Values("X"))
	suite.True(suite.header.HasCacheControlDirective("no-cache"))
	suite.Equal([]string{"1", "2"}, clone.Values("X"))
	suite.False(clone.Has("cache-control"))
}

func (suite *HeaderSuite) TestCacheControlSync() {
	suite.header.Set("Cache-Control", "no-cache, max-age=100")

	value, ok := suite.header.CacheControlDirective("no-cache")
	suite.True(ok)
	suite.Empty(value)

	value, ok = suite.header.CacheControlDirective("max-age")
	suite.True(ok)
	suite.Equal("100", value)

	suite.header.Add("cache_control", "no-store")
	suite.True(suite.header.HasCacheControlDirective("no-store"))
	suite.True(suite.header.HasCacheControlDirective("no-cache"))

	suite.header.Del("CACHE-CONTROL")
	suite.False(suite.header.HasCacheControlDirective("no-cache"))
	suite.Zero(suite.header.CacheControl().Len())
}

func (suite *HeaderSuite) TestCacheControlDirectives() {
	suite.header.Set("X", "1")
	suite.header.AddCacheControlFlag("no-cache")
	suite.header.AddCacheControlDirective("max-age", "60")
	suite.Equal("no-cache, max-age=60", suite.header.Get("cache-control"))
	suite.Equal([]string{"x", "cache-control"}, suite.header.Keys())

	suite.header.AddCacheControlDirective("max-age", "120")
	suite.Equal("no-cache, max-age=120", suite.header.Get("cache-control"))

	suite.header.RemoveCacheControlDirective("nosuch")
	suite.Equal("no-cache, max-age=120", suite.header.Get("cache-control"))

	suite.header.RemoveCacheControlDirective("no-cache")
	suite.Equal([]string{"max-age=120"}, suite.header.Values("cache-control"))

	suite.header.RemoveCacheControlDirective("max-age")
	suite.False(suite.header.Has("cache-control"))
	suite.Equal([]string{"x"}, suite.header.Keys())
}

func (suite *HeaderSuite) TestCacheControlCopy() {
	suite.header.Set("Cache-Control", "no-cache")
	cc := suite.header.CacheControl()
	cc.Set("max-age", "1")

	suite.False(suite.header.HasCacheControlDirective("max-age"))
	suite.Equal("no-cache", suite.header.Get("cache-control"))
}

func TestHeader(t *testing.T) {
	suite.Run(t, new(HeaderSuite))
}

func TestNewHeaders(t *testing.T) {
	t.Run("Pairs", func(t *testing.T) {
		h := NewHeaders("Content-Type", "text/plain", "X", "1", "x", "2", "", "ignored")
		assert.Equal(t, []string{"content-type", "x"}, h.Keys())
		assert.Equal(t, []string{"1", "2"}, h.Values("X"))
	})

	t.Run("Dangling", func(t *testing.T) {
		h := NewHeaders("X", "1", "Y")
		assert.True(t, h.Has("y"))
		assert.Equal(t, []string{""}, h.Values("y"))
	})

	t.Run("FromMap", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)

			h = NewHeaderFromMap(map[string][]string{
				"Cache-Control": {"max-age=5"},
				"Accept":        {"text/plain"},
				"B":             {"1", "2"},
			})
		)

		require.NotNil(h)
		assert.Equal([]string{"accept", "b", "cache-control"}, h.Keys())
		assert.True(h.HasCacheControlDirective("max-age"))
	})

	t.Run("Zero", func(t *testing.T) {
		var h Header
		h.Set("X", "1")
		assert.Equal(t, "1", h.Get("x"))
	})
}
