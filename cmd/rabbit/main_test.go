// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/rabbit/rabbithttp"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"
)

func newTestKernel(t *testing.T, args ...string) *rabbithttp.Kernel {
	v, err := newViper(args)
	require.NoError(t, err)

	var k *rabbithttp.Kernel
	app := newApp(v, zaptest.NewLogger(t), fx.Populate(&k))
	require.NoError(t, app.Err())
	require.NotNil(t, k)
	return k
}

func TestNewViper(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)
		)

		v, err := newViper(nil)
		require.NoError(err)
		assert.Equal(":8080", v.GetString("server.address"))
		assert.False(v.GetBool("dev"))
	})

	t.Run("File", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)
			file    = filepath.Join(t.TempDir(), "rabbit.yaml")
		)

		require.NoError(os.WriteFile(file, []byte("server:\n  address: \":9090\"\n"), 0600))
		v, err := newViper([]string{"--config", file, "-d"})
		require.NoError(err)
		assert.Equal(":9090", v.GetString("server.address"))
		assert.True(v.GetBool("dev"))
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := newViper([]string{"-f", filepath.Join(t.TempDir(), "nosuch.yaml")})
		assert.Error(t, err)
	})

	t.Run("Help", func(t *testing.T) {
		_, err := newViper([]string{"--help"})
		assert.ErrorIs(t, err, pflag.ErrHelp)
	})
}

func TestHandlers(t *testing.T) {
	k := newTestKernel(t)
	testData := []struct {
		method       string
		target       string
		code         int
		body         string
		cacheControl string
	}{
		{"GET", "/", http.StatusOK, "Hello, world!\n", "max-age=3600, public"},
		{"HEAD", "/", http.StatusOK, "", "max-age=3600, public"},
		{"POST", "/", http.StatusMethodNotAllowed, "405 Method Not Allowed", ""},
		{"GET", "/greet/rabbit", http.StatusOK, "Hello, rabbit!\n", ""},
		{"GET", "/greet/%E5%85%94%E5%AD%90", http.StatusOK, "Hello, 兔子!\n", ""},
		{"GET", "/user/42/post/hello-world", http.StatusOK, `{"id":"42","slug":"hello-world"}`, "max-age=60"},
		{"GET", "/user/bob/post/hello-world", http.StatusNotFound, "404 Not Found", ""},
		{"GET", "/nosuch", http.StatusNotFound, "404 Not Found", ""},
	}

	for i, record := range testData {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			var (
				assert   = assert.New(t)
				recorder = httptest.NewRecorder()
			)

			k.ServeHTTP(recorder, httptest.NewRequest(record.method, record.target, nil))
			assert.Equal(record.code, recorder.Code)
			assert.Equal(record.body, recorder.Body.String())
			assert.Equal(record.cacheControl, recorder.Header().Get("Cache-Control"))
		})
	}
}

func TestEcho(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		k        = newTestKernel(t)
		recorder = httptest.NewRecorder()
		request  = httptest.NewRequest("PUT", "http://example.com/echo?a=1&a=2", nil)

		body echoBody
	)

	request.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	k.ServeHTTP(recorder, request)
	assert.Equal(http.StatusOK, recorder.Code)
	assert.Equal("no-store", recorder.Header().Get("Cache-Control"))
	assert.Equal("application/json", recorder.Header().Get("Content-Type"))

	require.NoError(json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal("PUT", body.Method)
	assert.Equal("http://example.com/echo?a=1&a=2", body.URL)
	assert.Equal("/echo", body.PathInfo)
	assert.Equal([]string{"1", "2"}, body.Query["a"])
	assert.Equal(map[string]string{"session": "abc"}, body.Cookies)
	assert.Contains(body.Headers, rabbithttp.Field{Name: "Host", Value: "example.com"})
}
