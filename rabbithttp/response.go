// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
)

const (
	// DefaultHTTPVersion is the protocol version used when none is set
	DefaultHTTPVersion = "1.1"

	// ContentTypeJSON is the Content-Type forced onto JSON responses
	ContentTypeJSON = "application/json"
)

// ContentKind distinguishes the response variants
type ContentKind int

const (
	// PlainContent is a response whose body is opaque to this package
	PlainContent ContentKind = iota

	// JSONContent is a response that always carries Content-Type: application/json
	JSONContent
)

// Response is the status, headers, and body that a handler produces
type Response struct {
	kind        ContentKind
	content     []byte
	status      Status
	header      *Header
	httpVersion string
}

// NewResponse creates an empty 200 response
func NewResponse() *Response {
	r := new(Response)
	_ = r.Set(nil, StatusOK, nil, DefaultHTTPVersion)
	return r
}

// NewJSONResponse creates an empty 200 response whose Content-Type is
// application/json.  The content is not validated as JSON.
func NewJSONResponse() *Response {
	r := &Response{kind: JSONContent}
	_ = r.Set(nil, StatusOK, nil, DefaultHTTPVersion)
	return r
}

// Set replaces the entire state of this response.  A zero status means 200,
// a nil header means an empty one, and an empty version means DefaultHTTPVersion.
// JSON responses keep their Content-Type regardless of the supplied header.
//
// A status outside the enumerated set is rejected and leaves this response untouched.
func (r *Response) Set(content []byte, status Status, header *Header, httpVersion string) error {
	if status == 0 {
		status = StatusOK
	} else if !status.Valid() {
		return &UnsupportedStatusError{Code: int(status)}
	}

	if header == nil {
		header = NewHeader()
	}

	if len(httpVersion) == 0 {
		httpVersion = DefaultHTTPVersion
	}

	r.content = content
	r.status = status
	r.header = header
	r.httpVersion = httpVersion

	if r.kind == JSONContent {
		r.header.Set("content-type", ContentTypeJSON)
	}

	return nil
}

// Kind returns the variant of this response
func (r *Response) Kind() ContentKind { return r.kind }

// Content returns the body
func (r *Response) Content() []byte { return r.content }

// SetContent replaces the body
func (r *Response) SetContent(content []byte) { r.content = content }

// SetString replaces the body with the given text
func (r *Response) SetString(content string) { r.content = []byte(content) }

// JSON is an alias for Content
func (r *Response) JSON() []byte { return r.content }

// SetJSON is an alias for SetContent
func (r *Response) SetJSON(content []byte) { r.content = content }

// Status returns the response status
func (r *Response) Status() Status { return r.status }

// SetStatus changes the status.  Statuses outside the enumerated set are
// rejected and the current status is kept.
func (r *Response) SetStatus(s Status) error {
	if !s.Valid() {
		return &UnsupportedStatusError{Code: int(s)}
	}

	r.status = s
	return nil
}

// Header returns the mutable response headers
func (r *Response) Header() *Header { return r.header }

// HTTPVersion returns the protocol version, e.g. "1.1"
func (r *Response) HTTPVersion() string { return r.httpVersion }

// StatusLine returns the first line of the wire form, without the trailing CRLF
func (r *Response) StatusLine() string {
	return "HTTP/" + r.httpVersion + " " + r.status.String()
}

// Fields returns the ordered headers to emit
func (r *Response) Fields() []Field {
	return r.header.Fields()
}

// WriteTo writes the full HTTP/1.x wire form of this response.  A Content-Length
// is emitted if the headers do not already carry one.  A 204 response never
// has a body.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	var o bytes.Buffer
	o.WriteString(r.StatusLine())
	o.WriteString("\r\n")
	o.WriteString(r.header.String())
	if !r.header.Has("content-length") && r.status != StatusNoContent {
		o.WriteString("Content-Length: ")
		o.WriteString(strconv.Itoa(len(r.content)))
		o.WriteString("\r\n")
	}

	o.WriteString("\r\n")
	if r.status != StatusNoContent {
		o.Write(r.content)
	}

	return o.WriteTo(w)
}

// Write hands this response to a net/http ResponseWriter
func (r *Response) Write(rw http.ResponseWriter) error {
	r.header.AddTo(rw.Header())
	rw.WriteHeader(r.status.Code())
	if r.status == StatusNoContent {
		return nil
	}

	_, err := rw.Write(r.content)
	return err
}
