// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultipartRequest(t *testing.T) *Request {
	var (
		body bytes.Buffer
		w    = multipart.NewWriter(&body)
	)

	require.NoError(t, w.WriteField("title", "vacation"))
	require.NoError(t, w.WriteField("tag", "beach"))
	require.NoError(t, w.WriteField("tag", "sun"))

	fw, err := w.CreateFormFile("photo", "beach.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("file contents"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return NewRequest(
		Environ{
			EnvRequestMethod: "POST",
			EnvContentType:   w.FormDataContentType(),
		},
		WithBody(&body),
	)
}

func TestMultipartForm(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		r = newMultipartRequest(t)
	)

	f, err := r.MultipartForm(1024)
	require.NoError(err)
	require.NotNil(f)
	defer f.RemoveAll() //nolint:errcheck

	assert.Equal([]string{"vacation"}, f.Value["title"])
	assert.Equal([]string{"beach", "sun"}, f.Value["tag"])
	assert.NotContains(f.Value, "photo")

	require.Len(f.File["photo"], 1)
	attachment := f.File["photo"][0]
	assert.Equal("beach.txt", attachment.Filename)
	assert.Equal(int64(len("file contents")), attachment.Size)
	assert.Equal("application/octet-stream", attachment.Header.Get("content-type"))

	rc, err := attachment.Open()
	require.NoError(err)
	defer rc.Close()

	contents, err := io.ReadAll(rc)
	require.NoError(err)
	assert.Equal("file contents", string(contents))
}

func TestMultipartFormErrors(t *testing.T) {
	t.Run("NoBody", func(t *testing.T) {
		r := NewRequest(Environ{EnvContentType: "multipart/form-data; boundary=x"})
		_, err := r.MultipartForm(1024)
		assert.ErrorIs(t, err, ErrNoBody)
	})

	t.Run("NotMultipart", func(t *testing.T) {
		r := NewRequest(
			Environ{EnvContentType: "application/json"},
			WithBody(strings.NewReader("{}")),
		)

		_, err := r.MultipartForm(1024)
		assert.ErrorIs(t, err, ErrNotMultipart)
	})

	t.Run("NoBoundary", func(t *testing.T) {
		r := NewRequest(
			Environ{EnvContentType: "multipart/form-data"},
			WithBody(strings.NewReader("")),
		)

		_, err := r.MultipartForm(1024)
		assert.ErrorIs(t, err, ErrNotMultipart)
	})

	t.Run("Malformed", func(t *testing.T) {
		r := NewRequest(
			Environ{EnvContentType: "multipart/form-data; boundary=x"},
			WithBody(strings.NewReader("this is not multipart")),
		)

		_, err := r.MultipartForm(1024)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotMultipart)
	})
}
