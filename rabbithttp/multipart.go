// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
)

var (
	// ErrNoBody is returned when form parsing is requested on a request without a body
	ErrNoBody = errors.New("the request has no body")

	// ErrNotMultipart is returned when the request's content type is not multipart/form-data
	ErrNotMultipart = errors.New("the request is not multipart/form-data")
)

// FileAttachment is an uploaded file from a multipart form.  It is kept apart
// from ordinary form values so that handlers never need to inspect raw parts.
type FileAttachment struct {
	// Filename is the name the client gave the file
	Filename string

	// Size is the length of the file in bytes
	Size int64

	// Header holds the part's MIME headers
	Header *Header

	fh *multipart.FileHeader
}

// Open returns a stream over the file's contents.  Callers must close it.
func (fa *FileAttachment) Open() (io.ReadCloser, error) {
	return fa.fh.Open()
}

// Form is a parsed multipart/form-data body
type Form struct {
	// Value holds the ordinary fields
	Value map[string][]string

	// File holds the fields that carried a filename
	File map[string][]*FileAttachment

	mf *multipart.Form
}

// RemoveAll removes any temporary files created while parsing
func (f *Form) RemoveAll() error {
	return f.mf.RemoveAll()
}

// MultipartForm parses the request body as multipart/form-data.  At most
// maxMemory bytes of file content are held in memory; the rest spills to
// temporary files.  The body is consumed by this call.
func (r *Request) MultipartForm(maxMemory int64) (*Form, error) {
	if r.body == nil {
		return nil, ErrNoBody
	}

	mediaType, params, err := mime.ParseMediaType(r.header.Get("content-type"))
	if err != nil || mediaType != "multipart/form-data" || len(params["boundary"]) == 0 {
		return nil, ErrNotMultipart
	}

	mf, err := multipart.NewReader(r.body, params["boundary"]).ReadForm(maxMemory)
	if err != nil {
		return nil, fmt.Errorf("unable to parse multipart form: %w", err)
	}

	f := &Form{
		Value: mf.Value,
		File:  make(map[string][]*FileAttachment, len(mf.File)),
		mf:    mf,
	}

	for name, headers := range mf.File {
		for _, fh := range headers {
			h := NewHeader()
			h.AddAll(fh.Header)
			f.File[name] = append(f.File[name], &FileAttachment{
				Filename: fh.Filename,
				Size:     fh.Size,
				Header:   h,
				fh:       fh,
			})
		}
	}

	return f, nil
}
